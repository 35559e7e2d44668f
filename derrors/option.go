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

package derrors

import (
	"fmt"

	"dirpx.dev/commerce/apis"
	"dirpx.dev/commerce/reason"
)

// Option is a functional option for constructing or transforming an Error.
// It always takes an *Error and returns a (possibly new) *Error.
type Option func(*Error) *Error

// WithReason sets the Reason. Intended for New, E and catalog entries.
func WithReason(r reason.Reason) Option {
	return func(e *Error) *Error { return e.WithReason(r) }
}

// WithTechnical sets the technical (log-only) message.
func WithTechnical(msg string) Option {
	return func(e *Error) *Error { return e.WithTechnical(msg) }
}

// WithTechnicalf is WithTechnical with fmt.Sprintf formatting.
func WithTechnicalf(format string, args ...any) Option {
	return WithTechnical(fmt.Sprintf(format, args...))
}

// WithDetail adds a single detail key/value.
func WithDetail(k string, v any) Option {
	return func(e *Error) *Error { return e.WithDetail(k, v) }
}

// WithDetails merges multiple detail key/values.
func WithDetails(kv map[string]any) Option {
	return func(e *Error) *Error { return e.WithDetails(kv) }
}

// WithViolations appends per-field violations.
func WithViolations(vs ...apis.Detail) Option {
	return func(e *Error) *Error { return e.WithViolations(vs...) }
}

// WithCause attaches the underlying cause.
func WithCause(err error) Option {
	return func(e *Error) *Error { return e.WithCause(err) }
}
