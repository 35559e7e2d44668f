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

package reason

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Reason is the canonical, validated representation of an error reason.
//
// A reason names the operation that failed as a dot-separated path of at most
// four segments, service first:
//
//   - "order.create"
//   - "order.cancel"
//   - "order.create.items"
//   - "user.validate"
//
// Reasons go to logs and ErrorInfo metadata, and HTTP prefix rules in the
// mapper match on them.
type Reason string

// MinLength and MaxLength define the allowed length range for a non-empty reason.
const (
	MinLength = 3
	MaxLength = 128
)

// reasonFmt accepts 1 to 4 segments. Each segment starts with a lowercase
// ASCII letter and continues with lowercase letters, digits or underscores.
// The empty reason is handled separately and never reaches this pattern.
const reasonFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,3}$`

var reasonRe = regexp.MustCompile(reasonFmt)

var (
	// ErrReasonInvalidFormat is returned when a reason does not match reasonFmt.
	ErrReasonInvalidFormat = errors.New("commerce: invalid reason format")
	// ErrReasonInvalidLength is returned when a reason is too short or too long.
	ErrReasonInvalidLength = errors.New("commerce: invalid reason length")
)

var (
	_ encoding.TextMarshaler   = (*Reason)(nil)
	_ encoding.TextUnmarshaler = (*Reason)(nil)
)

// Empty is the zero-value reason, meaning "no reason provided". It is valid.
var Empty Reason = ""

// Normalize performs conservative cleanups: trim, lowercase, "/" to "." and
// "-" to "_". It does not guarantee validity.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "/", ".")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Parse normalizes and validates s. The empty string yields Empty without error.
func Parse(s string) (Reason, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Reason(s), nil
}

// MustParse is the panic-on-error variant of Parse. Unlike Parse it rejects
// the empty string, which is almost always a programming error at a call site
// that bothers to name a reason.
func MustParse(s string) Reason {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if r == Empty {
		panic("commerce: empty reason in MustParse")
	}
	return r
}

// Child returns r extended with one more segment. It panics when the result
// is not a valid reason, so it is meant for package-level declarations.
func (r Reason) Child(segment string) Reason {
	if r == Empty {
		return MustParse(segment)
	}
	return MustParse(string(r) + "." + segment)
}

// Validate checks whether r is canonical. Empty is valid.
func Validate(r Reason) error {
	if r == Empty {
		return nil
	}
	return validate(string(r))
}

// String returns the reason as a plain string.
func (r Reason) String() string {
	return string(r)
}

// MarshalText implements encoding.TextMarshaler. Empty marshals to an empty slice.
func (r Reason) MarshalText() ([]byte, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reason) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrReasonInvalidLength
	}
	if !reasonRe.MatchString(s) {
		return ErrReasonInvalidFormat
	}
	return nil
}
