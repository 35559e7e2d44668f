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

// Package segmenttrie indexes dot-separated reason prefixes so the mapper can
// pick the most specific HTTP rule for a reason such as "order.cancel".
package segmenttrie

import (
	"errors"
	"fmt"
	"strings"
)

const wildcard = "*"

// ErrInvalidPrefix is returned for prefixes with empty or malformed segments
// and for prefixes made only of wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// Trie maps reason prefixes to values. A "*" segment matches exactly one
// segment. The zero value is ready to use; it is not safe for concurrent
// inserts, but concurrent lookups on a filled trie are fine.
type Trie[T any] struct {
	root node[T]
}

type node[T any] struct {
	next    map[string]*node[T]
	set     bool
	val     T
	pattern string
}

// New returns an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{}
}

// Insert binds prefix to val. Inserting the same prefix again replaces the
// value.
//
//	t.Insert("order.cancel", http.StatusConflict)
//	t.Insert("order.*.item", http.StatusUnprocessableEntity)
func (t *Trie[T]) Insert(prefix string, val T) error {
	segs := strings.Split(prefix, ".")
	concrete := false
	for _, s := range segs {
		if s == wildcard {
			continue
		}
		if !validSegment(s) {
			return fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
		}
		concrete = true
	}
	if !concrete {
		return fmt.Errorf("%w: %q has no concrete segment", ErrInvalidPrefix, prefix)
	}

	n := &t.root
	for _, s := range segs {
		if n.next == nil {
			n.next = make(map[string]*node[T])
		}
		child, ok := n.next[s]
		if !ok {
			child = &node[T]{}
			n.next[s] = child
		}
		n = child
	}
	n.set, n.val, n.pattern = true, val, prefix
	return nil
}

// Match returns the value and the stored pattern of the deepest prefix that
// covers reason. On equal depth an exact segment beats a wildcard. A
// malformed reason matches nothing.
func (t *Trie[T]) Match(reason string) (val T, pattern string, ok bool) {
	if t == nil || reason == "" {
		return val, "", false
	}
	segs := strings.Split(reason, ".")
	for _, s := range segs {
		if !validSegment(s) {
			return val, "", false
		}
	}

	best := -1
	var walk func(n *node[T], depth int)
	walk = func(n *node[T], depth int) {
		if n.set && depth > best {
			best, val, pattern = depth, n.val, n.pattern
		}
		if depth == len(segs) {
			return
		}
		if child := n.next[segs[depth]]; child != nil {
			walk(child, depth+1)
		}
		if child := n.next[wildcard]; child != nil {
			walk(child, depth+1)
		}
	}
	walk(&t.root, 0)
	return val, pattern, best >= 0
}

// validSegment matches [a-z][a-z0-9_]*.
func validSegment(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}
