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

import "slices"

// A reasonably simple hash table implementation which permits collisions.  We
// cannot assume that a hashcode uniquely identifies the data in question
// (e.g. two structurally distinct terms can share a hashcode), hence equality
// must be checked explicitly within each bucket.

// Hasher provides a generic definition of a hashing function suitable for use
// within the hash map and set.  Implementations must ensure that equal items
// have equal hashcodes.
type Hasher[T any] interface {
	// Check whether two items are equal (or not).
	Equals(T) bool
	// Return a suitable hashcode.
	Hash() uint64
}

const (
	// Offset is the FNV-1a offset basis, and should be used as the starting
	// point when mixing hashcodes.
	Offset uint64 = 14695981039346656037
	prime64 uint64 = 1099511628211
)

// Mix folds a given value into an accumulated FNV-1a style hashcode.
func Mix(hash uint64, value uint64) uint64 {
	hash ^= value
	hash *= prime64
	//
	return hash
}

// ============================================================================
// UintsKey Implementation
// ============================================================================

var _ Hasher[UintsKey] = UintsKey{}

// UintsKey wraps an array of indices as something which can be safely placed
// into a Map or Set.  This is typically used to hash-cons structures whose
// components have already been assigned dense identifiers.
type UintsKey struct {
	items []uint
}

// NewUintsKey constructs a new key from a given array of indices.  The array
// is not copied, hence must not be subsequently modified.
func NewUintsKey(items ...uint) UintsKey {
	return UintsKey{items}
}

// Items returns the underlying indices of this key.
func (p UintsKey) Items() []uint {
	return p.items
}

// Equals compares two keys to check whether they hold the same indices (or
// not).
func (p UintsKey) Equals(other UintsKey) bool {
	return slices.Equal(p.items, other.items)
}

// Hash generates a 64-bit hashcode from the underlying indices.
func (p UintsKey) Hash() uint64 {
	hash := Offset
	//
	for _, c := range p.items {
		hash = Mix(hash, uint64(c))
	}
	//
	return hash
}
