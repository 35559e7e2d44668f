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

package adapter

import (
	"dirpx.dev/commerce/apis"
	"dirpx.dev/commerce/derrors"
	"dirpx.dev/commerce/envelope"
)

// ToEnvelope converts a resolved status into an error envelope. A successful
// status yields nil: success envelopes carry an operation-specific message
// that only the handler knows.
func ToEnvelope(st apis.Status) *envelope.Envelope {
	if st.OK() {
		return nil
	}
	return envelope.Error(st.Message, st.Code)
}

// ToDescriptor converts an error together with its resolved transport status
// into an ErrorDescriptor for structured logging.
//
// The descriptor carries the technical message, so it must never be written
// to a response.
func ToDescriptor(err error, st apis.Status) apis.ErrorDescriptor {
	d := apis.ErrorDescriptor{
		Code:       string(st.Code),
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
		Message:    st.Message,
	}
	if err == nil {
		return d
	}
	d.Technical = err.Error()
	if de, ok := derrors.As(err); ok {
		d.Kind = de.Kind.String()
		d.Reason = string(de.Reason)
		d.Technical = de.Technical
	}
	return d
}
