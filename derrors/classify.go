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
	"errors"

	"dirpx.dev/commerce/code"
)

// Sentinels for errors raised outside the taxonomy that still deserve a
// specific status. Wrap them with fmt.Errorf("...: %w", ErrInvalidArgument).
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIllegalState    = errors.New("illegal state")
)

// Errors may also declare their class by implementing one of these.
type (
	invalidArgument interface{ InvalidArgument() bool }
	illegalState    interface{ IllegalState() bool }
	unsupported     interface{ Unsupported() bool }
)

// Classify returns the code that decides the transport status of err:
//
//   - the kind code of a domain *Error anywhere in the chain;
//   - code.InvalidArgument, code.IllegalState or code.Unsupported for errors
//     of a recognizable shape;
//   - code.Internal for everything else, including nil-pointer panics
//     recovered by the interceptor.
func Classify(err error) code.Code {
	if err == nil {
		return code.Empty
	}
	if de, ok := As(err); ok {
		return de.Kind.Code()
	}
	switch {
	case isInvalidArgument(err):
		return code.InvalidArgument
	case isIllegalState(err):
		return code.IllegalState
	case isUnsupported(err):
		return code.Unsupported
	default:
		return code.Internal
	}
}

func isInvalidArgument(err error) bool {
	if errors.Is(err, ErrInvalidArgument) {
		return true
	}
	var v invalidArgument
	return errors.As(err, &v) && v.InvalidArgument()
}

func isIllegalState(err error) bool {
	if errors.Is(err, ErrIllegalState) {
		return true
	}
	var v illegalState
	return errors.As(err, &v) && v.IllegalState()
}

func isUnsupported(err error) bool {
	if errors.Is(err, errors.ErrUnsupported) {
		return true
	}
	var v unsupported
	return errors.As(err, &v) && v.Unsupported()
}
