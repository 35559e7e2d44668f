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

// Package httpx renders mapped errors as HTTP responses.
package httpx

import (
	"net/http"
	"strconv"

	"dirpx.dev/commerce/apis"
	"dirpx.dev/commerce/grpcx"
	"google.golang.org/protobuf/encoding/protojson"
)

// Meta carries extra context that the HTTP layer can add on top of an error.
// All fields are optional and typically come from request context, headers
// or router-level logic.
type Meta struct {
	Correlation       string
	TraceID           string
	SpanID            string
	RetryAfterSeconds int32
}

// Writer turns errors into HTTP responses using the provided status mapper.
//
// The body is a google.rpc.Status in protobuf JSON, the same message a gRPC
// client receives, so both transports expose one error contract:
//
//	{"code":5,"message":"Order not found","details":[{"@type":"type.googleapis.com/google.rpc.ErrorInfo",...}]}
type Writer struct {
	Mapper apis.Mapper
}

// Write maps err and writes it to rw. The HTTP status is resolved via the
// Mapper, including any reason prefix rules. A nil err writes nothing.
func (w Writer) Write(rw http.ResponseWriter, err error, meta Meta) {
	if err == nil {
		return
	}
	st := w.Mapper.Map(err)
	gst := grpcx.ToStatus(st, grpcx.Extras{
		CorrelationID: meta.Correlation,
		TraceID:       meta.TraceID,
		SpanID:        meta.SpanID,
	})

	rw.Header().Set("Content-Type", "application/json")
	if meta.Correlation != "" {
		rw.Header().Set(grpcx.CorrelationHeader, meta.Correlation)
	}
	if meta.RetryAfterSeconds > 0 {
		rw.Header().Set("Retry-After", strconv.Itoa(int(meta.RetryAfterSeconds)))
	}
	rw.WriteHeader(st.HTTP)

	b, mErr := (protojson.MarshalOptions{
		EmitUnpopulated: false,
		UseProtoNames:   false,
	}).Marshal(gst.Proto())
	if mErr != nil {
		return
	}
	_, _ = rw.Write(b)
}
