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
	"strconv"

	"dirpx.dev/commerce/apis"
	"dirpx.dev/commerce/derrors"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	gstatus "google.golang.org/grpc/status"
)

// ErrorDomain is the google.rpc.ErrorInfo domain of every status produced
// by this package.
const ErrorDomain = "commerce.dirpx.dev"

// ErrorInfo metadata keys.
const (
	MetaCorrelationID = "correlation_id"
	MetaTraceID       = "trace_id"
	MetaSpanID        = "span_id"
	MetaHTTPStatus    = "http_status"
	MetaReason        = "reason"
)

// Extras holds optional metadata embedded into the google.rpc.ErrorInfo
// detail. All fields are optional.
type Extras struct {
	// CorrelationID is the per-call correlation token.
	CorrelationID string

	// TraceID is the distributed trace identifier (W3C traceparent / OpenTelemetry).
	TraceID string

	// SpanID is the span identifier within the trace.
	SpanID string

	// Tags are flat string key/value annotations.
	Tags map[string]string
}

// MetaFn extracts Extras from the call context and the mapped status.
type MetaFn func(ctx context.Context, st apis.Status) Extras

// defaultMeta fills the correlation id and the current span.
func defaultMeta(ctx context.Context, _ apis.Status) Extras {
	ex := Extras{CorrelationID: CorrelationID(ctx)}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		ex.TraceID = sc.TraceID().String()
		ex.SpanID = sc.SpanID().String()
	}
	return ex
}

// ToStatus renders a mapped status as a gRPC status carrying a
// google.rpc.ErrorInfo detail and, for domain errors with field violations,
// a google.rpc.BadRequest detail.
//
// Only the client-facing code and message are sent. The technical message and
// the cause never leave the process.
func ToStatus(st apis.Status, ex Extras) *gstatus.Status {
	base := gstatus.New(st.GRPC, st.Message)
	if st.OK() {
		return base
	}

	md := make(map[string]string, 5+len(ex.Tags))
	for k, v := range ex.Tags {
		md[k] = v
	}
	md[MetaHTTPStatus] = strconv.Itoa(st.HTTP)
	setIf(md, MetaCorrelationID, ex.CorrelationID)
	setIf(md, MetaTraceID, ex.TraceID)
	setIf(md, MetaSpanID, ex.SpanID)

	var br *errdetails.BadRequest
	if de, ok := derrors.As(st.Cause); ok {
		setIf(md, MetaReason, string(de.Reason))
		if len(de.Violations) > 0 {
			br = &errdetails.BadRequest{}
			for _, v := range de.Violations {
				br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
					Field:       v.Field,
					Description: v.Reason,
				})
			}
		}
	}

	info := &errdetails.ErrorInfo{
		Reason:   string(st.Code),
		Domain:   ErrorDomain,
		Metadata: md,
	}

	var (
		with *gstatus.Status
		err  error
	)
	if br != nil {
		with, err = base.WithDetails(info, br)
	} else {
		with, err = base.WithDetails(info)
	}
	if err != nil {
		return base
	}
	return with
}

func setIf(md map[string]string, k, v string) {
	if v != "" {
		md[k] = v
	}
}

// ExtractErrorInfo pulls the google.rpc.ErrorInfo detail out of a gRPC error,
// if present. Useful in tests and client code.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	st, ok := gstatus.FromError(err)
	if !ok || st == nil {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}

// ExtractFieldViolations pulls the google.rpc.BadRequest field violations out
// of a gRPC error.
func ExtractFieldViolations(err error) []apis.Detail {
	st, ok := gstatus.FromError(err)
	if !ok || st == nil {
		return nil
	}
	var out []apis.Detail
	for _, d := range st.Details() {
		br, ok := d.(*errdetails.BadRequest)
		if !ok {
			continue
		}
		for _, fv := range br.GetFieldViolations() {
			out = append(out, apis.Detail{Type: "field", Field: fv.GetField(), Reason: fv.GetDescription()})
		}
	}
	return out
}
