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
	"fmt"
	"net/http"

	"dirpx.dev/commerce/code"
	"dirpx.dev/commerce/derrors"
	"google.golang.org/grpc/codes"
)

// internalMessage is the only description an unclassified failure ever gets.
const internalMessage = "Internal server error"

// defaultGRPC is the static kind/class table. It is the single source of truth
// for gRPC statuses; no option can change it.
var defaultGRPC = map[code.Code]codes.Code{
	// Domain kinds.
	code.Validation:            codes.InvalidArgument,
	code.BusinessRuleViolation: codes.InvalidArgument, // gRPC has no 422; the HTTP projection keeps the distinction.
	code.NotFound:              codes.NotFound,
	code.DuplicateResource:     codes.AlreadyExists,
	code.Internal:              codes.Internal,

	// Structural classes.
	code.InvalidArgument: codes.InvalidArgument,
	code.IllegalState:    codes.FailedPrecondition,
	code.Unsupported:     codes.Unimplemented,
}

// defaultHTTP is the HTTP projection of the same table. Options may refine it
// per code or per reason prefix.
var defaultHTTP = map[code.Code]int{
	code.Validation:            http.StatusBadRequest,
	code.BusinessRuleViolation: http.StatusUnprocessableEntity,
	code.NotFound:              http.StatusNotFound,
	code.DuplicateResource:     http.StatusConflict,
	code.Internal:              http.StatusInternalServerError,

	code.InvalidArgument: http.StatusBadRequest,
	code.IllegalState:    http.StatusPreconditionFailed,
	code.Unsupported:     http.StatusNotImplemented,
}

func init() {
	if err := checkTables(derrors.Kinds()); err != nil {
		panic(err)
	}
}

// checkTables reports the first kind whose code is missing from either
// projection.
func checkTables(kinds []derrors.Kind) error {
	for _, k := range kinds {
		c := k.Code()
		if _, ok := defaultGRPC[c]; !ok {
			return fmt.Errorf("mapper: kind %s (%s) has no gRPC mapping", k, c)
		}
		if _, ok := defaultHTTP[c]; !ok {
			return fmt.Errorf("mapper: kind %s (%s) has no HTTP mapping", k, c)
		}
	}
	return nil
}
