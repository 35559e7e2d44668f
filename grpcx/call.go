/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package grpcx

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"dirpx.dev/commerce/adapter"
	"dirpx.dev/commerce/apis"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
)

type callState uint8

const (
	stateActive callState = iota
	stateClosing
	stateClosed
)

// call is the per-call state machine: Active -> Closing -> Closed.
//
// The first failure moves the call to Closing and becomes its outcome. Later
// failures are logged and dropped. finish moves the call to Closed exactly
// once and reports the outcome to the close observer.
type call struct {
	i      *Interceptor
	method string
	log    *zap.Logger
	span   trace.Span

	mu      sync.Mutex
	state   callState
	outcome *gstatus.Status
}

// panicError is a recovered panic. It maps to Internal.
type panicError struct {
	stage Stage
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic in %s stage: %v", e.stage, e.value)
}

// run executes fn with panic recovery. A non-nil result has already been
// recorded through fail.
func (c *call) run(ctx context.Context, stage Stage, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{stage: stage, value: r, stack: debug.Stack()}
		}
		if err != nil {
			c.fail(ctx, stage, err)
		}
	}()
	return fn()
}

// fail records err as the outcome if the call is still active.
func (c *call) fail(ctx context.Context, stage Stage, err error) {
	st := c.i.mapper.Map(err)

	c.mu.Lock()
	first := c.state == stateActive
	if first {
		c.state = stateClosing
		c.outcome = ToStatus(st, c.i.metaFn(ctx, st))
	}
	c.mu.Unlock()

	fields := c.fields(stage, err, st)
	if !first {
		c.log.Warn("failure after call closed, not sent", fields...)
		return
	}

	c.span.RecordError(err)
	c.span.SetStatus(otelcodes.Error, st.Message)
	c.span.SetAttributes(
		attribute.String("commerce.error_code", string(st.Code)),
		attribute.String("commerce.stage", stage.String()),
	)
	if clientFacing(err) {
		c.log.Warn("call failed", fields...)
		return
	}
	c.log.Error("call failed", fields...)
}

func (c *call) fields(stage Stage, err error, st apis.Status) []zap.Field {
	d := adapter.ToDescriptor(err, st)
	fields := []zap.Field{
		zap.Stringer("stage", stage),
		zap.String("code", d.Code),
		zap.Stringer("grpc_code", codes.Code(d.GRPCCode)),
		zap.Int("http_status", d.HTTPStatus),
		zap.String("message", d.Message),
	}
	if d.Kind != "" {
		fields = append(fields, zap.String("kind", d.Kind))
	}
	if d.Reason != "" {
		fields = append(fields, zap.String("reason", d.Reason))
	}
	if !clientFacing(err) {
		fields = append(fields, zap.String("technical", d.Technical), zap.NamedError("cause", err))
	}
	if pe, ok := err.(*panicError); ok {
		fields = append(fields, zap.ByteString("stack", pe.stack))
	}
	return fields
}

// finish closes the call. resp is returned only when no failure was recorded.
func (c *call) finish(resp any) (any, error) {
	c.mu.Lock()
	if c.state == stateClosed {
		c.mu.Unlock()
		panic("grpcx: call finished twice")
	}
	c.state = stateClosed
	out := c.outcome
	c.mu.Unlock()

	if out == nil {
		c.span.SetStatus(otelcodes.Ok, "")
		c.observe(gstatus.New(codes.OK, ""))
		if ce := c.log.Check(zapcore.DebugLevel, "call completed"); ce != nil {
			ce.Write()
		}
		return resp, nil
	}
	c.observe(out)
	return nil, out.Err()
}

func (c *call) observe(st *gstatus.Status) {
	if c.i.onClose != nil {
		c.i.onClose(c.method, st)
	}
}
