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

package code

// Kind codes.
//
// Every domain error kind owns exactly one of these. Transport status
// resolution is keyed on them, never on catalog codes, so two catalog entries
// of the same kind always produce the same gRPC status.
const (
	// Validation marks malformed or semantically invalid input.
	// Maps to InvalidArgument / HTTP 400.
	Validation Code = "VALIDATION_ERROR"

	// BusinessRuleViolation marks well-formed input asking for an operation the
	// domain rules do not allow (invalid customer, cancelling a delivered order).
	// Maps to InvalidArgument / HTTP 422.
	BusinessRuleViolation Code = "BUSINESS_RULE_VIOLATION"

	// NotFound marks a referenced entity that does not exist.
	// Maps to NotFound / HTTP 404.
	NotFound Code = "NOT_FOUND"

	// DuplicateResource marks a violated uniqueness constraint, e.g. an email
	// that is already registered. Maps to AlreadyExists / HTTP 409.
	DuplicateResource Code = "DUPLICATE_RESOURCE"

	// Internal marks a server-side failure. Domain errors of this kind carry a
	// safe user message ("Failed to create order"); unclassified errors are
	// reported with a redacted one. Maps to Internal / HTTP 500.
	Internal Code = "INTERNAL_ERROR"
)

// Structural fallback classes.
//
// These are not domain kinds. The mapper assigns them to errors that did not
// come from the taxonomy but still have a recognizable shape.
const (
	// InvalidArgument classifies argument-check failures raised outside the
	// taxonomy. Maps to InvalidArgument / HTTP 400.
	InvalidArgument Code = "INVALID_ARGUMENT"

	// IllegalState classifies invariant or state-check failures raised outside
	// the taxonomy. Maps to FailedPrecondition / HTTP 412.
	IllegalState Code = "ILLEGAL_STATE"

	// Unsupported classifies operations the server does not implement.
	// Maps to Unimplemented / HTTP 501.
	Unsupported Code = "UNSUPPORTED_OPERATION"
)
