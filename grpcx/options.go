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
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	gstatus "google.golang.org/grpc/status"
)

// CloseObserver is told about the single terminal write of every call: the
// error status, or an OK status for success.
type CloseObserver func(method string, st *gstatus.Status)

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(i *Interceptor) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithValidator replaces the request validator used by the message stage.
func WithValidator(v *validator.Validate) Option {
	return func(i *Interceptor) {
		if v != nil {
			i.validate = v
		}
	}
}

// WithCloseObserver registers fn to observe terminal writes.
func WithCloseObserver(fn CloseObserver) Option {
	return func(i *Interceptor) { i.onClose = fn }
}

// WithTracer sets the tracer used for per-call spans. The default uses the
// global OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(i *Interceptor) {
		if t != nil {
			i.tracer = t
		}
	}
}

// WithMetaFn replaces the function that fills ErrorInfo metadata.
func WithMetaFn(fn MetaFn) Option {
	return func(i *Interceptor) {
		if fn != nil {
			i.metaFn = fn
		}
	}
}
