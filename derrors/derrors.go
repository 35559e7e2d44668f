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
	"errors"
	"fmt"
	"maps"
	"slices"

	"dirpx.dev/commerce/apis"
	"dirpx.dev/commerce/code"
	"dirpx.dev/commerce/reason"
)

// Error is the domain error type shared by all services.
//
// It carries:
//   - Kind: the closed classification that decides the transport status;
//   - Code: the client-facing code (catalog code, or the kind code);
//   - Reason: the operation that failed, e.g. "order.create";
//   - Message: the user message, the only text allowed to leave the service;
//   - Technical: the log message, always different from Message;
//   - Violations: per-field details for validation failures;
//   - Details: extra key/values for logs;
//   - Cause: the wrapped underlying error.
//
// All WithX helpers return a shallow copy, so an Error is never mutated after
// construction and can be shared between goroutines.
type Error struct {
	Kind       Kind
	Code       code.Code
	Reason     reason.Reason
	Message    string
	Technical  string
	Violations []apis.Detail
	Details    map[string]any
	Cause      error
}

var (
	_ apis.CodedError    = (*Error)(nil)
	_ apis.ReasonedError = (*Error)(nil)
	_ apis.SafeError     = (*Error)(nil)
	_ apis.DetailedError = (*Error)(nil)
)

// New constructs an Error of kind k with an operation-specific code and user
// message. An empty code falls back to the kind code and an empty message to
// the kind's default message.
//
//	return derrors.New(derrors.KindBusinessRule, "ORDER_LOCKED", "Order is locked",
//	    derrors.WithReason("order.update_status"),
//	    derrors.WithTechnical("order 7 locked by batch job"),
//	)
func New(k Kind, c code.Code, userMessage string, opts ...Option) *Error {
	if userMessage == "" {
		userMessage = k.DefaultMessage()
	}
	e := &Error{Kind: k, Code: c.OrDefault(k.Code()), Message: userMessage}
	for _, opt := range opts {
		e = opt(e)
	}
	return e.sealed()
}

// E constructs an Error that uses the kind code as its client-facing code.
func E(k Kind, userMessage string, opts ...Option) *Error {
	return New(k, code.Empty, userMessage, opts...)
}

// sealed enforces that the technical message exists and differs from the
// user message.
func (e *Error) sealed() *Error {
	if e.Technical != "" && e.Technical != e.Message {
		return e
	}
	cp := *e
	cp.Technical = fmt.Sprintf("%s [%s]", e.Message, e.Kind)
	return &cp
}

// Error implements the error interface with the log-oriented form:
//
//	<code>: <technical>
//
// or, when a Reason is present:
//
//	<code>:<reason>: <technical>
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s:%s: %s", e.Code, e.Reason, e.Technical)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Technical)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// ErrorCode implements apis.CodedError.
func (e *Error) ErrorCode() string { return string(e.Code) }

// ErrorReason implements apis.ReasonedError.
func (e *Error) ErrorReason() string { return string(e.Reason) }

// UserMessage implements apis.SafeError.
func (e *Error) UserMessage() string { return e.Message }

// ErrorDetails implements apis.DetailedError.
func (e *Error) ErrorDetails() []apis.Detail { return e.Violations }

// WithReason returns a copy of e with the given Reason.
func (e *Error) WithReason(r reason.Reason) *Error {
	cp := *e
	cp.Reason = r
	return &cp
}

// WithTechnical returns a copy of e with a replaced technical message.
func (e *Error) WithTechnical(msg string) *Error {
	cp := *e
	cp.Technical = msg
	return cp.sealed()
}

// WithDetail returns a copy of e with one extra key/value in Details.
// The map is always copied.
func (e *Error) WithDetail(k string, v any) *Error {
	cp := *e
	m := make(map[string]any, len(cp.Details)+1)
	maps.Copy(m, cp.Details)
	m[k] = v
	cp.Details = m
	return &cp
}

// WithDetails returns a copy of e with kv merged into Details; kv wins on
// conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.Details)+len(kv))
	maps.Copy(m, cp.Details)
	maps.Copy(m, kv)
	cp.Details = m
	return &cp
}

// WithViolations returns a copy of e with vs appended to its Violations.
func (e *Error) WithViolations(vs ...apis.Detail) *Error {
	if len(vs) == 0 {
		return e
	}
	cp := *e
	cp.Violations = append(slices.Clip(cp.Violations), vs...)
	return &cp
}

// WithCause returns a copy of e wrapping err. A nil err returns e unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) && de != nil {
		return de, true
	}
	return nil, false
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	de, ok := As(err)
	if !ok {
		return kindUnset, false
	}
	return de.Kind, true
}
