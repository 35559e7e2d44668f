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

// Package grpcx adapts the error taxonomy to gRPC: a server interceptor that
// turns every failure of a unary call into exactly one status, the JSON wire
// codec, and helpers shared by handlers and clients.
package grpcx

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"dirpx.dev/commerce/apis"
	"dirpx.dev/commerce/derrors"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// ErrNilMapper is returned by NewInterceptor when no mapper is given.
var ErrNilMapper = errors.New("grpcx: interceptor requires a status mapper")

// CorrelationHeader is the response header carrying the call's correlation id.
const CorrelationHeader = "x-correlation-id"

// Interceptor converts failures of unary calls into gRPC statuses.
//
// Each call runs through the stages message, ready, half_close and complete
// (plus cancel, asynchronously), every one of them guarded against errors and
// panics. The first failure is mapped, logged and becomes the call's status;
// later ones are only logged.
type Interceptor struct {
	mapper   apis.Mapper
	logger   *zap.Logger
	validate *validator.Validate
	tracer   trace.Tracer
	metaFn   MetaFn
	onClose  CloseObserver
}

// NewInterceptor builds an Interceptor around m.
func NewInterceptor(m apis.Mapper, opts ...Option) (*Interceptor, error) {
	if m == nil {
		return nil, ErrNilMapper
	}
	i := &Interceptor{
		mapper:   m,
		logger:   zap.NewNop(),
		validate: NewValidator(),
		tracer:   otel.Tracer("dirpx.dev/commerce/grpcx"),
		metaFn:   defaultMeta,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// NewValidator returns a validator that names fields by their json tag, so
// violations use wire names ("items[0].quantity").
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Unary returns the server interceptor.
func (i *Interceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		id := ulid.Make().String()
		ctx = withCorrelationID(ctx, id)
		_ = grpc.SetHeader(ctx, metadata.Pairs(CorrelationHeader, id))

		ctx, span := i.tracer.Start(ctx, info.FullMethod,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("rpc.method", info.FullMethod),
				attribute.String("commerce.correlation_id", id),
			),
		)
		defer span.End()

		c := &call{
			i:      i,
			method: info.FullMethod,
			span:   span,
			log:    i.logger.With(zap.String("method", info.FullMethod), zap.String("correlation_id", id)),
		}
		if sc := span.SpanContext(); sc.IsValid() {
			c.log = c.log.With(zap.Stringer("trace_id", sc.TraceID()), zap.Stringer("span_id", sc.SpanID()))
		}

		cancelDone := make(chan struct{})
		stop := context.AfterFunc(ctx, func() {
			defer close(cancelDone)
			h, ok := info.Server.(CancelHook)
			if !ok {
				return
			}
			_ = c.run(ctx, StageCancel, func() error {
				return h.OnCancel(context.WithoutCancel(ctx), info.FullMethod)
			})
		})
		// Failures are recorded on c; serve's error only stops the stages.
		resp, _ := i.serve(ctx, c, req, info, handler)
		if !stop() {
			<-cancelDone
		}
		return c.finish(resp)
	}
}

// serve runs the synchronous stages in order and stops at the first failure.
func (i *Interceptor) serve(ctx context.Context, c *call, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	method := info.FullMethod

	if err := c.run(ctx, StageMessage, func() error {
		if err := CheckMessage(ctx, i.validate, req); err != nil {
			return err
		}
		if h, ok := info.Server.(MessageHook); ok {
			return h.OnMessage(ctx, method, req)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if h, ok := info.Server.(ReadyHook); ok {
		if err := c.run(ctx, StageReady, func() error { return h.OnReady(ctx, method) }); err != nil {
			return nil, err
		}
	}

	var resp any
	if err := c.run(ctx, StageHalfClose, func() error {
		var err error
		resp, err = handler(ctx, req)
		return err
	}); err != nil {
		return nil, err
	}

	if h, ok := info.Server.(CompleteHook); ok {
		if err := c.run(ctx, StageComplete, func() error { return h.OnComplete(ctx, method, resp) }); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// CheckMessage validates struct tags on req with v. Requests that are not
// struct pointers are accepted as is. Tag violations become a Validation
// error carrying one detail per field.
func CheckMessage(ctx context.Context, v *validator.Validate, req any) error {
	if req == nil {
		return nil
	}
	if rv := reflect.ValueOf(req); rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil
	}
	err := v.StructCtx(ctx, req)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			return nil
		}
		return err
	}
	return derrors.E(derrors.KindValidation, "Validation failed",
		derrors.WithViolations(Violations(ves)...),
		derrors.WithTechnical(err.Error()),
	)
}

// Violations converts validator errors into details with wire field paths.
func Violations(ves validator.ValidationErrors) []apis.Detail {
	out := make([]apis.Detail, 0, len(ves))
	for _, fe := range ves {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		d := apis.Detail{Type: "field", Field: field, Reason: fe.Tag()}
		if p := fe.Param(); p != "" {
			d.Info = map[string]string{"param": p}
		}
		out = append(out, d)
	}
	return out
}

type correlationKey struct{}

func withCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the id the interceptor assigned to the current call.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// clientFacing reports whether err is a domain error of a client-facing kind.
func clientFacing(err error) bool {
	k, ok := derrors.KindOf(err)
	return ok && k.ClientFacing()
}
