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

package mapper

import (
	"net/http"

	"dirpx.dev/commerce/code"
	"google.golang.org/grpc/codes"
)

// Option refines the HTTP projection of a mapper. The gRPC projection is the
// static kind table and is the same for every mapper.
type Option func(*builder)

// WithHTTPOverride registers an exact HTTP status for the given kind or class
// code, ignoring reason rules and the table.
func WithHTTPOverride(c code.Code, http int) Option {
	return func(b *builder) { b.httpOverride[c] = http }
}

// WithHTTPPrefix adds a reason rule for the given code. The most specific
// matching prefix wins and "*" stands for one segment.
//
//	// cancelling a delivered order is a conflict with the resource state
//	mapper.WithHTTPPrefix(code.BusinessRuleViolation, "order.cancel", http.StatusConflict)
func WithHTTPPrefix(c code.Code, prefix string, http int) Option {
	return func(b *builder) { b.httpPrefixes[c] = append(b.httpPrefixes[c], prefixRule{prefix, http}) }
}

// prefixRule is a raw reason rule, validated when New compiles it.
type prefixRule struct {
	prefix string
	status int
}

// builder collects options before New freezes them.
type builder struct {
	httpOverride map[code.Code]int
	httpPrefixes map[code.Code][]prefixRule

	// used for codes without a table row
	fallbackHTTP int
	fallbackGRPC codes.Code
}

func newBuilder() *builder {
	return &builder{
		httpOverride: make(map[code.Code]int),
		httpPrefixes: make(map[code.Code][]prefixRule),
		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}
