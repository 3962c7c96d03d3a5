// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package hash

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Set defines a generic set implementation backed by a Go map.  This is a true
// hashtable in that collisions are handle gracefully using buckets, rather than
// simply discarding them.
type Set[T Hasher[T]] struct {
	// items maps hashcodes to *buckets* of items.
	items map[uint64][]T
	// number of unique items
	size uint
}

// NewSet creates a new Set with a given underlying capacity.
func NewSet[T Hasher[T]](size uint) *Set[T] {
	items := make(map[uint64][]T, size)
	return &Set[T]{items, 0}
}

// Size returns the number of unique items stored in this Set.
func (p *Set[T]) Size() uint {
	return p.size
}

// Insert a new item into this set, returning true if it was already contained
// and false otherwise.
func (p *Set[T]) Insert(item T) bool {
	hash := item.Hash()
	bucket := p.items[hash]
	//
	if bucketContains(bucket, item) {
		// Item already present, so nothing to do.
		return true
	}
	//
	p.items[hash] = append(bucket, item)
	p.size++
	// Item not present
	return false
}

// Contains checks whether the given item is contained within this set, or not.
func (p *Set[T]) Contains(item T) bool {
	return bucketContains(p.items[item.Hash()], item)
}

// All returns an iterator over the items of this set.  The order in which
// items are seen is unspecified.
func (p *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, b := range p.items {
			for _, item := range b {
				if !yield(item) {
					return
				}
			}
		}
	}
}

// Clone returns a copy of this set which can be modified without affecting
// this set.
func (p *Set[T]) Clone() *Set[T] {
	items := make(map[uint64][]T, len(p.items))
	//
	for h, b := range p.items {
		items[h] = slices.Clone(b)
	}
	//
	return &Set[T]{items, p.size}
}

func (p *Set[T]) String() string {
	var (
		r     strings.Builder
		first = true
	)
	// Write opening brace
	r.WriteString("{")
	//
	for item := range p.All() {
		if !first {
			r.WriteString(",")
		}

		first = false

		r.WriteString(fmt.Sprintf("%v", any(item)))
	}
	// Write closing brace
	r.WriteString("}")
	// Done
	return r.String()
}

func bucketContains[T Hasher[T]](bucket []T, item T) bool {
	for _, i := range bucket {
		if item.Equals(i) {
			return true
		}
	}

	return false
}
