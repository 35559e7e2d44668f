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

package segmenttrie

import (
	"errors"
	"testing"
)

func TestMatchPrefersDeepestRule(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("order", 422))
	must(t, tr.Insert("order.cancel", 409))

	cases := []struct {
		reason  string
		want    int
		pattern string
	}{
		{"order.cancel", 409, "order.cancel"},
		{"order.cancel.delivered", 409, "order.cancel"},
		{"order.update_status", 422, "order"},
	}
	for _, tc := range cases {
		v, p, ok := tr.Match(tc.reason)
		if !ok || v != tc.want || p != tc.pattern {
			t.Errorf("Match(%q) = %d, %q, %v; want %d, %q", tc.reason, v, p, ok, tc.want, tc.pattern)
		}
	}
	if _, _, ok := tr.Match("user.create"); ok {
		t.Fatal("user.create must not match an order rule")
	}
}

func TestWildcardMatchesOneSegment(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("order.*.item", 400))
	must(t, tr.Insert("order.create.item", 422))

	if v, p, ok := tr.Match("order.create.item"); !ok || v != 422 || p != "order.create.item" {
		t.Fatalf("exact rule must win, got %d %q %v", v, p, ok)
	}
	if v, p, ok := tr.Match("order.update.item.price"); !ok || v != 400 || p != "order.*.item" {
		t.Fatalf("wildcard rule must match, got %d %q %v", v, p, ok)
	}
	if _, _, ok := tr.Match("order.item"); ok {
		t.Fatal("wildcard must not match zero segments")
	}
}

func TestDeeperWildcardBeatsShallowExact(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("user.*.email", 409))
	must(t, tr.Insert("user.update", 422))

	if v, p, ok := tr.Match("user.update.email"); !ok || v != 409 || p != "user.*.email" {
		t.Fatalf("got %d %q %v", v, p, ok)
	}
}

func TestInsertReplacesValue(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("order.cancel", 422))
	must(t, tr.Insert("order.cancel", 409))

	if v, _, _ := tr.Match("order.cancel"); v != 409 {
		t.Fatalf("got %d, want 409", v)
	}
}

func TestInvalidInput(t *testing.T) {
	tr := New[int]()
	for _, p := range []string{"", "Order.cancel", "order..cancel", "*", "*.*", "order.cancel-now"} {
		if err := tr.Insert(p, 1); !errors.Is(err, ErrInvalidPrefix) {
			t.Errorf("Insert(%q) = %v, want ErrInvalidPrefix", p, err)
		}
	}

	must(t, tr.Insert("order", 422))
	for _, r := range []string{"", "ORDER", "order..cancel", "order.Cancel"} {
		if _, _, ok := tr.Match(r); ok {
			t.Errorf("Match(%q) must fail", r)
		}
	}
}

func TestNilTrie(t *testing.T) {
	var tr *Trie[int]
	if _, _, ok := tr.Match("order.cancel"); ok {
		t.Fatal("nil trie must not match")
	}
}

func BenchmarkMatch(b *testing.B) {
	tr := New[int]()
	for _, p := range []string{"order", "order.cancel", "order.*.item", "user", "user.create", "user.*.email"} {
		if err := tr.Insert(p, 1); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
	for b.Loop() {
		tr.Match("order.update_status.item")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
