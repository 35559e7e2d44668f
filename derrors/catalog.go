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

import (
	"fmt"
	"sync"

	"dirpx.dev/commerce/code"
)

// Entry is a static catalog entry: a code and a user message bound to a kind.
//
// Services declare their entries once, at package level:
//
//	var ErrOrderNotFound = derrors.Define(derrors.KindNotFound, "ORDER_NOT_FOUND", "Order not found")
//
// and raise them at the point of failure with call-site technical detail:
//
//	return ErrOrderNotFound.Detail(fmt.Sprintf("order id %d", id))
//
// Several entries may share a code (with different messages) as long as they
// agree on the kind.
type Entry struct {
	Kind    Kind
	Code    code.Code
	Message string
}

var (
	catalogMu sync.Mutex
	catalog   = make(map[code.Code]Kind)
)

// Define registers a catalog entry. It panics when the kind is invalid, the
// code is malformed, or the code is already bound to a different kind.
func Define(k Kind, c string, message string) Entry {
	if !k.Valid() {
		panic(fmt.Sprintf("commerce: catalog entry %q has no kind", c))
	}
	parsed := code.MustParse(c)

	catalogMu.Lock()
	defer catalogMu.Unlock()
	if prev, ok := catalog[parsed]; ok && prev != k {
		panic(fmt.Sprintf("commerce: code %s already bound to %s, cannot rebind to %s", parsed, prev, k))
	}
	catalog[parsed] = k
	return Entry{Kind: k, Code: parsed, Message: message}
}

// New raises the entry as is.
func (en Entry) New(opts ...Option) *Error {
	return New(en.Kind, en.Code, en.Message, opts...)
}

// Detail raises the entry with "<message>: <detail>" as the technical message.
func (en Entry) Detail(detail string, opts ...Option) *Error {
	return en.New(append([]Option{WithTechnical(en.Message + ": " + detail)}, opts...)...)
}

// Wrap raises the entry around cause. The technical message becomes
// "<message>: <cause>". A nil cause behaves like New.
func (en Entry) Wrap(cause error, opts ...Option) *Error {
	if cause == nil {
		return en.New(opts...)
	}
	return en.New(append([]Option{WithTechnical(en.Message + ": " + cause.Error()), WithCause(cause)}, opts...)...)
}

// Is reports whether err's chain holds an error raised from an entry with the
// same kind and code.
func (en Entry) Is(err error) bool {
	de, ok := As(err)
	return ok && de.Kind == en.Kind && de.Code == en.Code
}
