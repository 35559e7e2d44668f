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
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"dirpx.dev/commerce/derrors"
	"dirpx.dev/commerce/mapper"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
)

const testMethod = "/commerce.test.v1.TestService/Do"

var errWidgetNotFound = derrors.Define(derrors.KindNotFound, "WIDGET_NOT_FOUND", "Widget not found")

type closeRecorder struct {
	mu     sync.Mutex
	closes []*gstatus.Status
}

func (r *closeRecorder) observe(_ string, st *gstatus.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closes = append(r.closes, st)
}

func (r *closeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.closes)
}

type harness struct {
	icpt   *Interceptor
	logs   *observer.ObservedLogs
	closes *closeRecorder
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	rec := &closeRecorder{}
	base := []Option{WithLogger(zap.New(core)), WithCloseObserver(rec.observe)}
	icpt, err := NewInterceptor(mapper.Default(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewInterceptor: %v", err)
	}
	return &harness{icpt: icpt, logs: logs, closes: rec}
}

func (h *harness) call(ctx context.Context, srv any, req any, handler grpc.UnaryHandler) (any, error) {
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: testMethod}
	return h.icpt.Unary()(ctx, req, info, handler)
}

func TestNewInterceptor_NilMapper(t *testing.T) {
	if _, err := NewInterceptor(nil); !errors.Is(err, ErrNilMapper) {
		t.Fatalf("err = %v, want ErrNilMapper", err)
	}
}

func TestUnary_Success(t *testing.T) {
	h := newHarness(t)
	resp, err := h.call(context.Background(), nil, nil, func(ctx context.Context, _ any) (any, error) {
		if CorrelationID(ctx) == "" {
			t.Error("handler context has no correlation id")
		}
		return "ok", nil
	})
	if err != nil || resp != "ok" {
		t.Fatalf("got %v, %v", resp, err)
	}
	if h.closes.count() != 1 || h.closes.closes[0].Code() != codes.OK {
		t.Fatalf("closes = %v", h.closes.closes)
	}
}

func TestUnary_DomainError(t *testing.T) {
	h := newHarness(t)
	_, err := h.call(context.Background(), nil, nil, func(context.Context, any) (any, error) {
		return nil, fmt.Errorf("get widget: %w", errWidgetNotFound.Detail("widget id 7"))
	})

	st := gstatus.Convert(err)
	if st.Code() != codes.NotFound || st.Message() != "Widget not found" {
		t.Fatalf("status = %v %q", st.Code(), st.Message())
	}
	info, ok := ExtractErrorInfo(err)
	if !ok {
		t.Fatal("no ErrorInfo detail")
	}
	if info.GetReason() != "WIDGET_NOT_FOUND" || info.GetDomain() != ErrorDomain {
		t.Fatalf("info = %v", info)
	}
	if info.GetMetadata()[MetaHTTPStatus] != "404" || info.GetMetadata()[MetaCorrelationID] == "" {
		t.Fatalf("metadata = %v", info.GetMetadata())
	}
	if strings.Contains(st.Message(), "widget id 7") {
		t.Fatal("technical message leaked")
	}

	entries := h.logs.FilterMessage("call failed").All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("log entries = %v", entries)
	}
	if got := entries[0].ContextMap()["code"]; got != "WIDGET_NOT_FOUND" {
		t.Fatalf("logged code = %v", got)
	}
	if h.closes.count() != 1 {
		t.Fatalf("closes = %d", h.closes.count())
	}
}

func TestUnary_UnclassifiedErrorIsRedacted(t *testing.T) {
	h := newHarness(t)
	_, err := h.call(context.Background(), nil, nil, func(context.Context, any) (any, error) {
		return nil, errors.New("pq: password authentication failed")
	})
	st := gstatus.Convert(err)
	if st.Code() != codes.Internal || st.Message() != "Internal server error" {
		t.Fatalf("status = %v %q", st.Code(), st.Message())
	}
	entries := h.logs.FilterMessage("call failed").All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("log entries = %v", entries)
	}
	if got := entries[0].ContextMap()["technical"]; got != "pq: password authentication failed" {
		t.Fatalf("technical = %v", got)
	}
}

func TestUnary_PanicInHandler(t *testing.T) {
	h := newHarness(t)
	_, err := h.call(context.Background(), nil, nil, func(context.Context, any) (any, error) {
		var m map[string]int
		m["boom"]++
		return nil, nil
	})
	if gstatus.Code(err) != codes.Internal {
		t.Fatalf("code = %v", gstatus.Code(err))
	}
	entries := h.logs.FilterMessage("call failed").All()
	if len(entries) != 1 || entries[0].ContextMap()["stage"] != "half_close" {
		t.Fatalf("log entries = %v", entries)
	}
	if h.closes.count() != 1 {
		t.Fatalf("closes = %d", h.closes.count())
	}
}

type createWidget struct {
	Name     string `json:"name" validate:"required"`
	Quantity int32  `json:"quantity" validate:"gt=0"`
}

func TestUnary_MessageValidation(t *testing.T) {
	h := newHarness(t)
	called := false
	_, err := h.call(context.Background(), nil, &createWidget{}, func(context.Context, any) (any, error) {
		called = true
		return nil, nil
	})
	if called {
		t.Fatal("handler ran for an invalid message")
	}
	if gstatus.Code(err) != codes.InvalidArgument {
		t.Fatalf("code = %v", gstatus.Code(err))
	}
	vs := ExtractFieldViolations(err)
	if len(vs) != 2 || vs[0].Field != "name" || vs[0].Reason != "required" || vs[1].Field != "quantity" {
		t.Fatalf("violations = %+v", vs)
	}
}

type hookedServer struct {
	mu          sync.Mutex
	trace       []string
	readyErr    error
	completeErr error
	cancelErr   error
}

func (s *hookedServer) record(stage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace = append(s.trace, stage)
}

func (s *hookedServer) OnMessage(context.Context, string, any) error {
	s.record("message")
	return nil
}

func (s *hookedServer) OnReady(context.Context, string) error {
	s.record("ready")
	return s.readyErr
}

func (s *hookedServer) OnComplete(context.Context, string, any) error {
	s.record("complete")
	return s.completeErr
}

func (s *hookedServer) OnCancel(context.Context, string) error {
	s.record("cancel")
	return s.cancelErr
}

func TestUnary_StageOrder(t *testing.T) {
	h := newHarness(t)
	srv := &hookedServer{}
	_, err := h.call(context.Background(), srv, nil, func(context.Context, any) (any, error) {
		srv.record("half_close")
		return "ok", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "message,ready,half_close,complete"
	if got := strings.Join(srv.trace, ","); got != want {
		t.Fatalf("stages = %s, want %s", got, want)
	}
}

func TestUnary_ReadyFailureSkipsHandler(t *testing.T) {
	h := newHarness(t)
	srv := &hookedServer{readyErr: fmt.Errorf("warming up: %w", derrors.ErrIllegalState)}
	_, err := h.call(context.Background(), srv, nil, func(context.Context, any) (any, error) {
		srv.record("half_close")
		return "ok", nil
	})
	if gstatus.Code(err) != codes.FailedPrecondition {
		t.Fatalf("code = %v", gstatus.Code(err))
	}
	if got := strings.Join(srv.trace, ","); got != "message,ready" {
		t.Fatalf("stages = %s", got)
	}
}

func TestUnary_CompleteFailureReplacesResponse(t *testing.T) {
	h := newHarness(t)
	srv := &hookedServer{completeErr: errors.ErrUnsupported}
	resp, err := h.call(context.Background(), srv, nil, func(context.Context, any) (any, error) {
		return "ok", nil
	})
	if resp != nil || gstatus.Code(err) != codes.Unimplemented {
		t.Fatalf("got %v, %v", resp, err)
	}
	if h.closes.count() != 1 {
		t.Fatalf("closes = %d", h.closes.count())
	}
}

func TestUnary_CancelHookFailureClosesCall(t *testing.T) {
	h := newHarness(t)
	srv := &hookedServer{cancelErr: fmt.Errorf("release reservation: %w", derrors.ErrIllegalState)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := h.call(ctx, srv, nil, func(context.Context, any) (any, error) {
		cancel()
		return "ok", nil
	})
	if gstatus.Code(err) != codes.FailedPrecondition {
		t.Fatalf("code = %v", gstatus.Code(err))
	}
	if h.closes.count() != 1 {
		t.Fatalf("closes = %d", h.closes.count())
	}
}

func TestUnary_DoubleFailureSentOnce(t *testing.T) {
	h := newHarness(t)
	srv := &hookedServer{cancelErr: errors.New("cleanup failed")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := h.call(ctx, srv, nil, func(context.Context, any) (any, error) {
		cancel()
		return nil, errWidgetNotFound.New()
	})
	if err == nil {
		t.Fatal("expected a failure status")
	}
	if h.closes.count() != 1 {
		t.Fatalf("closes = %d", h.closes.count())
	}
	if n := h.logs.FilterMessage("call failed").Len(); n != 1 {
		t.Fatalf("sent failures = %d", n)
	}
	if n := h.logs.FilterMessage("failure after call closed, not sent").Len(); n != 1 {
		t.Fatalf("dropped failures = %d", n)
	}
}

func TestUnary_CancelAfterCloseDoesNotRunHook(t *testing.T) {
	h := newHarness(t)
	srv := &hookedServer{cancelErr: errors.New("late")}
	ctx, cancel := context.WithCancel(context.Background())

	if _, err := h.call(ctx, srv, nil, func(context.Context, any) (any, error) { return "ok", nil }); err != nil {
		t.Fatal(err)
	}
	cancel()
	for _, s := range srv.trace {
		if s == "cancel" {
			t.Fatal("cancel hook ran after the call closed")
		}
	}
	if h.closes.count() != 1 {
		t.Fatalf("closes = %d", h.closes.count())
	}
}

func TestUnary_ConcurrentCallsCloseOnce(t *testing.T) {
	h := newHarness(t)
	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = h.call(context.Background(), nil, nil, func(context.Context, any) (any, error) {
				switch i % 3 {
				case 0:
					return "ok", nil
				case 1:
					return nil, errWidgetNotFound.New()
				default:
					panic("boom")
				}
			})
		}(i)
	}
	wg.Wait()
	if h.closes.count() != n {
		t.Fatalf("closes = %d, want %d", h.closes.count(), n)
	}
}

func TestUnary_Span(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	h := newHarness(t, WithTracer(tp.Tracer("test")))
	_, err := h.call(context.Background(), nil, nil, func(context.Context, any) (any, error) {
		return nil, errWidgetNotFound.New()
	})

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d", len(spans))
	}
	if spans[0].Name() != testMethod || spans[0].Status().Code != otelcodes.Error {
		t.Fatalf("span = %s %v", spans[0].Name(), spans[0].Status())
	}
	info, _ := ExtractErrorInfo(err)
	if info.GetMetadata()[MetaTraceID] != spans[0].SpanContext().TraceID().String() {
		t.Fatalf("trace id metadata = %v", info.GetMetadata())
	}
}
