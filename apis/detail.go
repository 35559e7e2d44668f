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

// Detail is a single structured piece of information attached to an error.
//
// Validation failures produce one Detail per offending field; the gRPC
// transport turns them into google.rpc.BadRequest field violations.
type Detail struct {
	// Type is a short classifier, e.g. "field".
	Type string `json:"type,omitempty"`

	// Field is the logical path of the failing field, e.g. "items[0].quantity".
	Field string `json:"field,omitempty"`

	// Reason is a short explanation, e.g. "required" or "gt".
	Reason string `json:"reason,omitempty"`

	// Info carries extra data such as the violated limit.
	Info map[string]string `json:"info,omitempty"`
}
