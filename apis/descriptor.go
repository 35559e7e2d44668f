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

// ErrorDescriptor is a flat description of one mapped failure.
//
// It is the shape the interceptor logs and the shape tests assert on. Unlike
// the client-facing status it also carries the kind and technical message, so
// it must never be written to a response.
type ErrorDescriptor struct {
	// Kind is the domain kind name, e.g. "BusinessRuleViolation". Empty for
	// errors outside the taxonomy.
	Kind string `json:"kind,omitempty"`

	// Code is the client-facing code, e.g. "INVALID_CUSTOMER".
	Code string `json:"code"`

	// Reason is the failing operation, e.g. "order.create".
	Reason string `json:"reason,omitempty"`

	// HTTPStatus is the resolved HTTP status.
	HTTPStatus int `json:"http_status,omitempty"`

	// GRPCCode is the resolved gRPC status code as an integer.
	GRPCCode int `json:"grpc_code"`

	// Message is the client-facing message.
	Message string `json:"message,omitempty"`

	// Technical is the log-only message.
	Technical string `json:"technical,omitempty"`
}
