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
	"errors"
	"fmt"
	"testing"

	"dirpx.dev/commerce/derrors"
	"dirpx.dev/commerce/mapper"
	"dirpx.dev/commerce/reason"
)

var errOrderCancel = derrors.Define(derrors.KindBusinessRule, "ORDER_CANNOT_CANCEL", "Cannot cancel delivered order")

func TestToEnvelope(t *testing.T) {
	m := mapper.Default()

	if env := ToEnvelope(m.Map(nil)); env != nil {
		t.Fatalf("success status produced %+v", env)
	}

	env := ToEnvelope(m.Map(errOrderCancel.Detail("order 9 is DELIVERED")))
	if env == nil || env.Success {
		t.Fatalf("got %+v", env)
	}
	if env.ErrorCode != "ORDER_CANNOT_CANCEL" || env.Message != "Cannot cancel delivered order" {
		t.Fatalf("got %+v", env)
	}

	env = ToEnvelope(m.Map(errors.New("dial tcp: refused")))
	if env.ErrorCode != "INTERNAL_ERROR" || env.Message != "Internal server error" {
		t.Fatalf("got %+v", env)
	}
}

func TestToDescriptor(t *testing.T) {
	m := mapper.Default()
	e := errOrderCancel.Detail("order 9 is DELIVERED", derrors.WithReason(reason.MustParse("order.cancel")))
	wrapped := fmt.Errorf("cancel: %w", e)

	d := ToDescriptor(wrapped, m.Map(wrapped))
	if d.Kind != "BusinessRuleViolation" || d.Code != "ORDER_CANNOT_CANCEL" || d.Reason != "order.cancel" {
		t.Fatalf("got %+v", d)
	}
	if d.Technical != "Cannot cancel delivered order: order 9 is DELIVERED" {
		t.Fatalf("technical = %q", d.Technical)
	}
	if d.GRPCCode != 3 || d.HTTPStatus != 422 {
		t.Fatalf("got grpc=%d http=%d", d.GRPCCode, d.HTTPStatus)
	}

	plain := errors.New("pq: connection refused")
	d = ToDescriptor(plain, m.Map(plain))
	if d.Kind != "" || d.Technical != "pq: connection refused" || d.Message != "Internal server error" {
		t.Fatalf("got %+v", d)
	}
}
