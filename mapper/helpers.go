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

package mapper

import (
	"maps"
	"strings"
	"unicode"

	"dirpx.dev/commerce/code"
)

// freeze makes an immutable copy of a per-code map so later mutations to the
// builder cannot affect the mapper. Empty maps become nil.
func freeze[V any](src map[code.Code]V) map[code.Code]V {
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}

// grpcName renders a gRPC code in its canonical upper snake form,
// e.g. FailedPrecondition -> FAILED_PRECONDITION.
func grpcName(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	prevLower := false
	for _, r := range s {
		if unicode.IsUpper(r) && prevLower {
			b.WriteByte('_')
		}
		prevLower = unicode.IsLower(r)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
