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
	"fmt"
	"strings"
	"sync"

	"dirpx.dev/commerce/apis"
	"dirpx.dev/commerce/code"
	"dirpx.dev/commerce/derrors"
	"dirpx.dev/commerce/mapper/internal/segmenttrie"
	"dirpx.dev/commerce/reason"
	"google.golang.org/grpc/codes"
)

// New constructs an immutable apis.Mapper snapshot.
//
// Build process overview:
//
//  1. Apply user-provided options (HTTP overrides, HTTP prefix rules).
//  2. Normalize and validate all reason prefixes (via reason.Normalize).
//  3. Build per-code segment tries supporting longest-prefix-match with '*' as
//     a single-segment wildcard.
//  4. Freeze all maps and tries into immutable copies.
//
// Errors returned from this function indicate invalid prefixes.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	httpTrie := make(map[code.Code]*segmenttrie.Trie[int], len(b.httpPrefixes))
	for c, rules := range b.httpPrefixes {
		if len(rules) == 0 {
			continue
		}
		t := segmenttrie.New[int]()
		for _, r := range rules {
			p, err := normalizeAndValidatePrefix(r.prefix)
			if err != nil {
				return nil, fmt.Errorf("mapper: invalid HTTP reason-prefix %q for code %q: %w", r.prefix, c, err)
			}
			if err := t.Insert(p, r.status); err != nil {
				return nil, fmt.Errorf("mapper: cannot insert HTTP prefix %q for code %q: %w", p, c, err)
			}
		}
		httpTrie[c] = t
	}

	return &mapper{
		httpDefault:  freeze(defaultHTTP),
		grpcDefault:  freeze(defaultGRPC),
		httpOverride: freeze(b.httpOverride),
		httpTrie:     freeze(httpTrie),
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}, nil
}

// Default returns the shared mapper built without options.
var Default = sync.OnceValue(func() apis.Mapper {
	m, err := New()
	if err != nil {
		panic(err)
	}
	return m
})

// mapper combines the static kind table, per-code HTTP overrides and per-code
// segment-aware prefix tries for reasons. Lookups are O(depth) and safe for
// concurrent use once constructed.
type mapper struct {
	httpDefault map[code.Code]int
	grpcDefault map[code.Code]codes.Code

	// httpOverride takes precedence over every other HTTP rule.
	httpOverride map[code.Code]int

	// httpTrie resolves HTTP statuses from reason prefixes
	// (dot-separated, with "*" for one-segment wildcards).
	httpTrie map[code.Code]*segmenttrie.Trie[int]

	// fallbacks for codes without a table row.
	fallbackHTTP int
	fallbackGRPC codes.Code
}

// Map resolves err into a transport status. It never fails.
//
//   - nil: OK / 200.
//   - *derrors.Error anywhere in the chain: the status of its kind code, the
//     error's client-facing code and its user message.
//   - structural classes (see derrors.Classify): the class status and code
//     with err.Error() as the message.
//   - anything else: Internal with a redacted message.
func (m *mapper) Map(err error) apis.Status {
	if err == nil {
		return apis.Status{HTTP: 200, GRPC: codes.OK}
	}
	if de, ok := derrors.As(err); ok {
		st := m.Status(de.Kind.Code(), de.Reason)
		st.Code = de.Code.OrDefault(de.Kind.Code())
		st.Message = de.Message
		if st.Message == "" {
			st.Message = de.Kind.DefaultMessage()
		}
		st.Cause = err
		return st
	}

	c := derrors.Classify(err)
	st := m.Status(c, reason.Empty)
	st.Code = c
	st.Cause = err
	if c == code.Internal {
		st.Message = internalMessage
	} else {
		st.Message = err.Error()
	}
	return st
}

// HTTPStatus resolves an HTTP status for the given code and reason.
//
// Resolution order (highest to lowest):
//  1. exact per-code override;
//  2. per-code longest-prefix-match rule on the reason;
//  3. the static table;
//  4. fallback (500).
func (m *mapper) HTTPStatus(c code.Code, r reason.Reason) int {
	if v, ok := m.httpOverride[c]; ok {
		return v
	}
	if idx, ok := m.httpTrie[c]; ok && idx != nil {
		if v, _, ok := idx.Match(string(r)); ok {
			return v
		}
	}
	if v, ok := m.httpDefault[c]; ok {
		return v
	}
	return m.fallbackHTTP
}

// GRPCStatus resolves a gRPC status from the static table. The reason never
// changes the outcome.
func (m *mapper) GRPCStatus(c code.Code, _ reason.Reason) codes.Code {
	if v, ok := m.grpcDefault[c]; ok {
		return v
	}
	return m.fallbackGRPC
}

// Status resolves both HTTP and gRPC using the same inputs.
func (m *mapper) Status(c code.Code, r reason.Reason) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(c, r),
		GRPC: m.GRPCStatus(c, r),
	}
}

// Explain produces a textual trace of how the mapper resolved HTTP and gRPC
// statuses for a particular (code, reason) pair.
//
// Example output:
//
//	code="BUSINESS_RULE_VIOLATION" reason="order.cancel"
//	http: source=prefix pattern="order.cancel" -> 409
//	grpc: source=default -> INVALID_ARGUMENT(3)
//
// source is one of override, prefix, default or fallback. The output is meant
// for people and logs, not for parsing.
func (m *mapper) Explain(c code.Code, r reason.Reason) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "code=%q reason=%q\n", c, r)
	_, _ = fmt.Fprintln(&b, m.explainHTTP(c, r))
	_, _ = fmt.Fprint(&b, m.explainGRPC(c))
	return b.String()
}

func (m *mapper) explainHTTP(c code.Code, r reason.Reason) string {
	if v, ok := m.httpOverride[c]; ok {
		return fmt.Sprintf("http: source=override -> %d", v)
	}
	if idx, ok := m.httpTrie[c]; ok && idx != nil {
		if v, pat, ok2 := idx.Match(string(r)); ok2 {
			return fmt.Sprintf("http: source=prefix pattern=%q -> %d", pat, v)
		}
	}
	if v, ok := m.httpDefault[c]; ok {
		return fmt.Sprintf("http: source=default -> %d", v)
	}
	return fmt.Sprintf("http: source=fallback -> %d", m.fallbackHTTP)
}

func (m *mapper) explainGRPC(c code.Code) string {
	if v, ok := m.grpcDefault[c]; ok {
		return fmt.Sprintf("grpc: source=default -> %s(%d)", grpcName(v.String()), int(v))
	}
	v := m.fallbackGRPC
	return fmt.Sprintf("grpc: source=fallback -> %s(%d)", grpcName(v.String()), int(v))
}

// normalizeAndValidatePrefix ensures a reason prefix is canonical and valid.
func normalizeAndValidatePrefix(raw string) (string, error) {
	p := reason.Normalize(raw)
	if p == "" {
		return "", fmt.Errorf("empty prefix")
	}
	allWild := true
	for _, seg := range strings.Split(p, ".") {
		if !validPrefixSegment(seg) {
			return "", fmt.Errorf("invalid segment %q", seg)
		}
		if seg != "*" {
			allWild = false
		}
	}
	if allWild {
		return "", fmt.Errorf("prefix cannot consist of '*' only")
	}
	return p, nil
}

// validPrefixSegment accepts "*" or [a-z][a-z0-9_]*.
func validPrefixSegment(seg string) bool {
	if seg == "" {
		return false
	}
	if seg == "*" {
		return true
	}
	if seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
