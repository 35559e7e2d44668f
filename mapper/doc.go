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


// Package mapper turns errors into transport statuses for gRPC and HTTP.
//
// # Overview
//
// Every failure that leaves a service passes through a single apis.Mapper:
//
//	st := mapper.Default().Map(err)
//	// st.GRPC, st.HTTP, st.Code, st.Message
//
// Map never fails. Domain errors (derrors.Error) resolve through their kind
// code, so two catalog entries of the same kind always produce the same
// status; the client sees the catalog code and the user message. Errors of a
// recognizable shape (invalid argument, illegal state, unsupported) get their
// class status. Anything else becomes Internal with the message
// "Internal server error".
//
// # Resolution model
//
// The gRPC projection is a static table keyed by kind or class code:
//
//	VALIDATION_ERROR         InvalidArgument     400
//	BUSINESS_RULE_VIOLATION  InvalidArgument     422
//	NOT_FOUND                NotFound            404
//	DUPLICATE_RESOURCE       AlreadyExists       409
//	INTERNAL_ERROR           Internal            500
//	INVALID_ARGUMENT         InvalidArgument     400
//	ILLEGAL_STATE            FailedPrecondition  412
//	UNSUPPORTED_OPERATION    Unimplemented       501
//
// The package panics at init if a kind has no row.
//
// The HTTP projection may be refined at build time, resolving in this order:
//
//  1. exact override for the code;
//  2. per-code longest-prefix-match (LPM) on the error's reason;
//  3. the table;
//  4. fallback (500).
//
// Prefix rules are segment-aware: reasons are "."-separated segments and "*"
// matches exactly one segment.
//
//	m, err := mapper.New(
//	    mapper.WithHTTPPrefix(code.BusinessRuleViolation, "order.cancel", http.StatusConflict),
//	)
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of how a (code, reason) pair
// was resolved, including which tier matched and, for prefixes, the pattern.
//
// # Immutability
//
// All inputs are copied during New. A Mapper is safe to share across
// handlers, goroutines and requests.
package mapper
