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

import "dirpx.dev/commerce/code"

// Kind is the closed set of domain error kinds.
//
// The zero value is not a kind: it resolves like KindInternal so that a
// half-initialized error can never be mistaken for a client error, let alone
// for success.
type Kind uint8

const (
	kindUnset Kind = iota

	// KindValidation: malformed or semantically invalid input.
	KindValidation
	// KindBusinessRule: valid input, disallowed operation.
	KindBusinessRule
	// KindNotFound: the referenced entity does not exist.
	KindNotFound
	// KindDuplicate: a uniqueness constraint was violated.
	KindDuplicate
	// KindInternal: a server-side failure reported with a safe message.
	KindInternal

	numKinds
)

// kindInfo is one row of the static kind table.
type kindInfo struct {
	name    string
	code    code.Code
	message string
}

// kindTable maps each kind to its code and default user message. It is
// indexed by Kind and sized by numKinds, so every kind has exactly one row.
var kindTable = [numKinds]kindInfo{
	kindUnset:        {name: "Unset", code: code.Internal, message: "Internal server error"},
	KindValidation:   {name: "Validation", code: code.Validation, message: "Validation failed"},
	KindBusinessRule: {name: "BusinessRuleViolation", code: code.BusinessRuleViolation, message: "Business rule violated"},
	KindNotFound:     {name: "NotFound", code: code.NotFound, message: "Resource not found"},
	KindDuplicate:    {name: "DuplicateResource", code: code.DuplicateResource, message: "Resource already exists"},
	KindInternal:     {name: "Internal", code: code.Internal, message: "Internal server error"},
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds-1)
	for k := kindUnset + 1; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k > kindUnset && k < numKinds }

func (k Kind) info() kindInfo {
	if !k.Valid() {
		return kindTable[kindUnset]
	}
	return kindTable[k]
}

// Code returns the kind code. Transport status is resolved from it.
func (k Kind) Code() code.Code { return k.info().code }

// DefaultMessage returns the user message used when a call site gives none.
func (k Kind) DefaultMessage() string { return k.info().message }

// String returns the kind name, e.g. "NotFound".
func (k Kind) String() string { return k.info().name }

// ClientFacing reports whether errors of this kind describe a problem with the
// request rather than with the server.
func (k Kind) ClientFacing() bool {
	switch k {
	case KindValidation, KindBusinessRule, KindNotFound, KindDuplicate:
		return true
	case KindInternal:
		return false
	default:
		return false
	}
}
