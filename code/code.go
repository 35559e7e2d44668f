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

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Code is the canonical, validated representation of an error code.
//
// Codes are what clients branch on: they travel in the response envelope
// ("errorCode"), in gRPC ErrorInfo details and in HTTP error bodies. They are
// UPPER_SNAKE_CASE so they read the same in every language a client may use,
// e.g. "ORDER_NOT_FOUND" or "USER_ALREADY_EXISTS".
//
// Empty codes ("") are not valid codes. Every error that reaches a client
// carries a non-empty code.
type Code string

// MinLength and MaxLength define the allowed length range for a code.
const (
	// MinLength is the minimum length for a valid code.
	MinLength = 3

	// MaxLength is the maximum length for a valid code.
	MaxLength = 64
)

// codeFmt is the canonical pattern for codes: an uppercase ASCII letter
// followed by 2..63 uppercase letters, digits or underscores.
//
// The {2,63} quantifier is tied to MinLength / MaxLength above.
const codeFmt = `^[A-Z][A-Z0-9_]{2,63}$`

// codeRe validates codes at runtime.
//
// Examples of valid codes:
//   - "NOT_FOUND"
//   - "INVALID_CUSTOMER"
//   - "ORDER_CANNOT_CANCEL"
//
// Examples of invalid codes:
//   - "not_found"   (lowercase, fixed by Normalize)
//   - "ORDER-ERROR" (dash, fixed by Normalize)
//   - "X"           (too short)
//   - "1ORDER"      (does not start with a letter)
var codeRe = regexp.MustCompile(codeFmt)

// ErrCodeInvalid is returned when a value cannot be parsed or validated as a code.
var ErrCodeInvalid = errors.New("commerce: invalid code")

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero-value code. It means "not provided".
var Empty Code = ""

// Parse normalizes and validates s, returning the canonical Code.
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Code(s), nil
}

// MustParse is the panic-on-error variant of Parse. It is meant for
// package-level catalog declarations.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize brings s closer to the canonical form without guessing:
//
//   - trims surrounding spaces;
//   - uppercases the value;
//   - replaces '-' and inner spaces with '_'.
//
// The result still has to go through Parse or Validate.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Validate checks whether c is a canonical code. Empty is invalid.
func Validate(c Code) error {
	return validate(string(c))
}

// OrDefault returns c, or def when c is empty.
func (c Code) OrDefault(def Code) Code {
	if c == Empty {
		return def
	}
	return c
}

// String returns the code as a plain string.
func (c Code) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The input is normalized
// before validation, so "order-not-found" decodes to ORDER_NOT_FOUND.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func validate(s string) error {
	if !codeRe.MatchString(s) {
		return ErrCodeInvalid
	}
	return nil
}
