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
package unionfind

import "slices"

// DisjointSet is a union-find forest over the dense indices 0..n-1.  It uses
// union by size together with path halving, giving effectively constant time
// Find and Union operations.  Elements are added with Add, and are initially
// in a singleton class.
type DisjointSet struct {
	// parent[i] is the parent of i, or i itself when i is a root.
	parent []uint
	// size[i] is the number of elements in the class of root i.  This is
	// meaningless for non-root elements.
	size []uint
	// number of distinct classes
	classes uint
}

// NewDisjointSet constructs a disjoint set holding n singleton classes.
func NewDisjointSet(n uint) *DisjointSet {
	ds := &DisjointSet{
		parent: make([]uint, 0, n),
		size:   make([]uint, 0, n),
	}
	//
	for range n {
		ds.Add()
	}
	//
	return ds
}

// Len returns the number of elements in this set.
func (p *DisjointSet) Len() uint {
	return uint(len(p.parent))
}

// Classes returns the number of distinct classes in this set.
func (p *DisjointSet) Classes() uint {
	return p.classes
}

// Add a new element in its own singleton class, returning its index.
func (p *DisjointSet) Add() uint {
	index := uint(len(p.parent))
	p.parent = append(p.parent, index)
	p.size = append(p.size, 1)
	p.classes++
	//
	return index
}

// Find returns the representative of the class containing a given element.
// This compresses paths as it goes and, hence, is not safe for concurrent use.
// See Root for a read-only alternative.
func (p *DisjointSet) Find(x uint) uint {
	for p.parent[x] != x {
		// path halving
		p.parent[x] = p.parent[p.parent[x]]
		x = p.parent[x]
	}
	//
	return x
}

// Root returns the representative of the class containing a given element
// without modifying the forest.  This is safe for concurrent use provided no
// other operations are in progress.
func (p *DisjointSet) Root(x uint) uint {
	for p.parent[x] != x {
		x = p.parent[x]
	}
	//
	return x
}

// Same determines whether two elements are in the same class.
func (p *DisjointSet) Same(x, y uint) bool {
	return p.Find(x) == p.Find(y)
}

// Union merges the classes of two elements.  This returns the representative
// of the merged class and the (former) representative of the class which was
// absorbed.  The final flag is false when both elements were already in the
// same class, in which case nothing changes.
func (p *DisjointSet) Union(x, y uint) (root uint, absorbed uint, merged bool) {
	x, y = p.Find(x), p.Find(y)
	//
	if x == y {
		return x, y, false
	}
	// Ensure smaller class is absorbed by the larger
	if p.size[x] < p.size[y] {
		x, y = y, x
	}
	//
	p.parent[y] = x
	p.size[x] += p.size[y]
	p.classes--
	//
	return x, y, true
}

// Size returns the number of elements in the class of a given element.
func (p *DisjointSet) Size(x uint) uint {
	return p.size[p.Find(x)]
}

// Flatten points every element directly at its representative.  After this,
// Root runs in constant time until the next Union.
func (p *DisjointSet) Flatten() {
	for i := range p.parent {
		p.parent[i] = p.Root(uint(i))
	}
}

// Clone returns a copy of this set which can be modified independently.
func (p *DisjointSet) Clone() *DisjointSet {
	return &DisjointSet{slices.Clone(p.parent), slices.Clone(p.size), p.classes}
}

// Partition returns the classes of this set, where each class lists its
// elements in increasing order and classes are ordered by their smallest
// element.
func (p *DisjointSet) Partition() [][]uint {
	var (
		classes [][]uint
		index   = make(map[uint]int)
	)
	//
	for i := range p.Len() {
		root := p.Root(i)
		//
		if j, ok := index[root]; ok {
			classes[j] = append(classes[j], i)
		} else {
			index[root] = len(classes)
			classes = append(classes, []uint{i})
		}
	}
	//
	return classes
}
