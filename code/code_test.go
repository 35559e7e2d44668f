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
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim spaces", "  NOT_FOUND  ", "NOT_FOUND"},
		{"to upper", "order_not_found", "ORDER_NOT_FOUND"},
		{"dash to underscore", "invalid-customer", "INVALID_CUSTOMER"},
		{"inner spaces", "order cannot cancel", "ORDER_CANNOT_CANCEL"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want Code
	}{
		{"NOT_FOUND", NotFound},
		{"  user-already-exists ", Code("USER_ALREADY_EXISTS")},
		{"abc", Code("ABC")},
		{"ORDER_2_ERROR", Code("ORDER_2_ERROR")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too short", "ab"},
		{"starts with digit", "1ORDER"},
		{"starts with underscore", "_ORDER"},
		{"punctuation", "ORDER.NOT.FOUND"},
		{"too long", strings.Repeat("A", MaxLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) = %q, want error", tt.in, got)
			}
			if got != Empty {
				t.Fatalf("Parse(%q) on error must return Empty, got %q", tt.in, got)
			}
		})
	}
}

func TestKindAndClassCodesAreCanonical(t *testing.T) {
	all := []Code{
		Validation, BusinessRuleViolation, NotFound, DuplicateResource, Internal,
		InvalidArgument, IllegalState, Unsupported,
	}
	seen := make(map[Code]bool, len(all))
	for _, c := range all {
		if err := Validate(c); err != nil {
			t.Fatalf("Validate(%q): %v", c, err)
		}
		if seen[c] {
			t.Fatalf("duplicate code %q", c)
		}
		seen[c] = true
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustParse should panic on invalid input")
		}
	}()
	_ = MustParse("?? bad")
}

func TestOrDefault(t *testing.T) {
	if got := Empty.OrDefault(Internal); got != Internal {
		t.Fatalf("Empty.OrDefault = %q, want %q", got, Internal)
	}
	if got := NotFound.OrDefault(Internal); got != NotFound {
		t.Fatalf("NotFound.OrDefault = %q, want %q", got, NotFound)
	}
}

func TestCode_TextRoundTrip(t *testing.T) {
	text, err := NotFound.MarshalText()
	if err != nil || string(text) != "NOT_FOUND" {
		t.Fatalf("MarshalText() = %q, %v", text, err)
	}
	if _, err := Code("bad code").MarshalText(); err == nil {
		t.Fatalf("MarshalText() on invalid code must return error")
	}

	var c Code
	if err := c.UnmarshalText([]byte("  order-not-found ")); err != nil {
		t.Fatalf("UnmarshalText() unexpected error: %v", err)
	}
	if c != Code("ORDER_NOT_FOUND") {
		t.Fatalf("UnmarshalText() = %q", c)
	}
	if err := c.UnmarshalText([]byte("!@#")); err == nil {
		t.Fatalf("UnmarshalText() expected error for invalid input")
	}
}

func TestLengthBounds(t *testing.T) {
	long := "A" + strings.Repeat("B", MaxLength-1)
	if _, err := Parse(long); err != nil {
		t.Fatalf("expected %d-char code to be valid: %v", len(long), err)
	}
	if _, err := Parse(long + "C"); err == nil {
		t.Fatalf("expected %d-char code to be invalid", len(long)+1)
	}
}
