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

// Map defines a generic map implementation backed by a Go map.  This is a true
// hashtable in that collisions are handle gracefully using buckets, rather than
// simply discarding them.
type Map[K Hasher[K], V any] struct {
	// buckets maps hashcodes to *buckets* of items.
	buckets map[uint64]hashMapBucket[K, V]
	// number of unique keys
	size uint
}

// NewMap creates a new Map with a given underlying capacity.
func NewMap[K Hasher[K], V any](size uint) *Map[K, V] {
	items := make(map[uint64]hashMapBucket[K, V], size)
	return &Map[K, V]{items, 0}
}

// Size returns the number of unique keys stored in this Map.
func (p *Map[K, V]) Size() uint {
	return p.size
}

// MaxBucket returns the size of the largest bucket.  This is useful for
// detecting poor hash functions.
func (p *Map[K, V]) MaxBucket() uint {
	m := uint(0)
	for _, b := range p.buckets {
		m = max(m, b.size())
	}

	return m
}

// Insert a new key-value pair into this map, returning true if the key was
// already contained (in which case its value is overwritten) and false
// otherwise.
func (p *Map[K, V]) Insert(key K, value V) bool {
	// Compute key's hashcode
	hash := key.Hash()
	// Lookup existing bucket
	bucket := p.buckets[hash]
	// Insert new item
	r := bucket.insert(key, value)
	// Update map
	p.buckets[hash] = bucket
	//
	if !r {
		p.size++
	}
	// Done
	return r
}

// ContainsKey checks whether the given key is contained within this map, or
// not.
func (p *Map[K, V]) ContainsKey(key K) bool {
	_, ok := p.Get(key)
	return ok
}

// Get the value associated with a given key, or return false otherwise.
func (p *Map[K, V]) Get(key K) (V, bool) {
	var empty V
	// Look for bucket
	if bucket, ok := p.buckets[key.Hash()]; ok {
		return bucket.get(key)
	}

	return empty, false
}

// All returns an iterator over all key-value pairs stored in this map.  The
// order in which pairs are seen is unspecified.
func (p *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, b := range p.buckets {
			for i, k := range b.keys {
				if !yield(k, b.values[i]) {
					return
				}
			}
		}
	}
}

// Clone returns a copy of this map which can be modified without affecting
// this map.  Keys and values are copied shallowly.
func (p *Map[K, V]) Clone() *Map[K, V] {
	buckets := make(map[uint64]hashMapBucket[K, V], len(p.buckets))
	//
	for h, b := range p.buckets {
		buckets[h] = hashMapBucket[K, V]{slices.Clone(b.keys), slices.Clone(b.values)}
	}
	//
	return &Map[K, V]{buckets, p.size}
}

func (p *Map[K, V]) String() string {
	var (
		r     strings.Builder
		first = true
	)
	// Write opening brace
	r.WriteString("{")
	//
	for k, v := range p.All() {
		if !first {
			r.WriteString(",")
		}

		first = false

		r.WriteString(fmt.Sprintf("%v:=%v", any(k), any(v)))
	}
	// Write closing brace
	r.WriteString("}")
	// Done
	return r.String()
}

// ============================================================================
// Bucket
// ============================================================================

type hashMapBucket[K Hasher[K], V any] struct {
	keys   []K
	values []V
}

func (b *hashMapBucket[K, V]) size() uint {
	return uint(len(b.keys))
}

func (b *hashMapBucket[K, V]) insert(key K, value V) bool {
	// Determine whether key already present
	for i, k := range b.keys {
		if key.Equals(k) {
			b.values[i] = value
			return true
		}
	}
	// Append item
	b.keys = append(b.keys, key)
	b.values = append(b.values, value)
	// Item not present
	return false
}

func (b *hashMapBucket[K, V]) get(key K) (V, bool) {
	var empty V

	for i, k := range b.keys {
		if key.Equals(k) {
			return b.values[i], true
		}
	}

	return empty, false
}
