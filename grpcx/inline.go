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

package grpcx

import (
	"context"
	"strconv"

	"dirpx.dev/commerce/adapter"
	"dirpx.dev/commerce/apis"
	"dirpx.dev/commerce/envelope"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Response trailers set for errors reported inline.
const (
	TrailerErrorCode  = "x-error-code"
	TrailerStatusCode = "x-status-code"
)

// Inline decides how a handler reports err.
//
// Domain errors of a client-facing kind become an error envelope returned
// with an OK status; the mapped code and gRPC status are also set as response
// trailers. Any other error is returned unchanged so the interceptor can
// terminate the call with a status.
//
//	env, err := grpcx.Inline(ctx, h.mapper, err)
//	if err != nil {
//	    return nil, err
//	}
//	return &v1.GetOrderResponse{Response: env}, nil
func Inline(ctx context.Context, m apis.Mapper, err error) (*envelope.Envelope, error) {
	if err == nil || !clientFacing(err) {
		return nil, err
	}
	st := m.Map(err)
	_ = grpc.SetTrailer(ctx, metadata.Pairs(
		TrailerErrorCode, string(st.Code),
		TrailerStatusCode, strconv.Itoa(int(st.GRPC)),
	))
	return adapter.ToEnvelope(st), nil
}
