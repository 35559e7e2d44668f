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

// CodedError is an error classified with a stable, client-facing code.
//
// Implementations return a canonical code (see package code). Adapters treat
// an empty or invalid code as an internal error.
type CodedError interface {
	error

	// ErrorCode returns the machine-readable error code.
	ErrorCode() string
}

// ReasonedError is an error that names the operation that failed.
type ReasonedError interface {
	error

	// ErrorReason returns the dot-separated reason. May be empty.
	ErrorReason() string
}

// SafeError is an error that carries a message approved for clients.
//
// Error() on such values returns the technical message meant for logs; only
// UserMessage may cross a service boundary.
type SafeError interface {
	error

	// UserMessage returns the externally visible message.
	UserMessage() string
}

// DetailedError exposes structured details, typically one per invalid field.
// Returning nil means "no extra details".
type DetailedError interface {
	error

	// ErrorDetails returns structured details of the error. May return nil.
	ErrorDetails() []Detail
}
