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

// Package envelope defines the success/error wrapper carried by every RPC
// response of the commerce services.
package envelope

import "dirpx.dev/commerce/code"

// Envelope reports the outcome of one call. ErrorCode is set iff Success is
// false.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// Success returns a successful envelope.
func Success(message string) *Envelope {
	return &Envelope{Success: true, Message: message}
}

// Error returns a failed envelope. An empty or malformed code becomes
// INTERNAL_ERROR so that a failed envelope always names a code.
func Error(message string, c code.Code) *Envelope {
	if code.Validate(c) != nil {
		c = code.Internal
	}
	return &Envelope{Success: false, Message: message, ErrorCode: string(c)}
}

// Failed reports whether e describes a failure. A nil envelope is a failure:
// a response without an envelope never counts as success.
func (e *Envelope) Failed() bool { return e == nil || !e.Success }

// Code returns the error code, or code.Empty for success.
func (e *Envelope) Code() code.Code {
	if e == nil {
		return code.Internal
	}
	return code.Code(e.ErrorCode)
}
