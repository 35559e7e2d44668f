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

package apis

import (
	"dirpx.dev/commerce/code"
	"dirpx.dev/commerce/reason"
	"google.golang.org/grpc/codes"
)

// Mapper is an immutable, concurrency-safe view of the status mapping rules.
//
// Map is the entry point used by transports: it accepts any error and never
// fails. The code-level methods expose the underlying table for callers that
// already hold a classification.
type Mapper interface {
	// Map resolves an arbitrary error into a transport status.
	//
	// Domain errors resolve through their kind code; other errors are
	// classified by shape, and anything unrecognized becomes Internal with a
	// redacted message. The original error is kept in Status.Cause.
	Map(err error) Status

	// HTTPStatus returns the HTTP status for a kind or class code and reason.
	// Reason-specific rules apply only to the HTTP projection.
	HTTPStatus(c code.Code, r reason.Reason) int

	// GRPCStatus returns the gRPC status for a kind or class code. The reason
	// is accepted for symmetry and never changes the result.
	GRPCStatus(c code.Code, r reason.Reason) codes.Code

	// Status resolves both projections in a single call. Code and Message are
	// left empty; Map fills them.
	Status(c code.Code, r reason.Reason) Status

	// Explain returns a human-readable description of which rule matched.
	Explain(c code.Code, r reason.Reason) string
}

// Status is the resolved outcome of mapping one error.
type Status struct {
	// Code is the client-facing code: the catalog code for domain errors,
	// the class code otherwise.
	Code code.Code

	// HTTP is the resolved HTTP status (net/http compatible).
	HTTP int

	// GRPC is the resolved gRPC status code.
	GRPC codes.Code

	// Message is the description that may cross the service boundary.
	Message string

	// Cause is the original error. It is kept for diagnostics and is never
	// serialized to clients.
	Cause error
}

// OK reports whether the status represents success.
func (s Status) OK() bool { return s.GRPC == codes.OK }
