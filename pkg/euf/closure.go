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
package euf

import (
	"maps"
	"slices"

	"github.com/consensys/go-euf/pkg/term"
	"github.com/consensys/go-euf/pkg/util/collection/hash"
	"github.com/consensys/go-euf/pkg/util/collection/unionfind"
	log "github.com/sirupsen/logrus"
)

// Stats summarises the work done in computing a closure.
type Stats struct {
	// Terms is the number of distinct terms in the universe.
	Terms uint
	// Classes is the number of equivalence classes.
	Classes uint
	// Merges is the number of merges performed (including those from
	// premises).
	Merges uint
	// Congruences is the number of merges forced by congruence.
	Congruences uint
	// Expansions is the number of normalizable terms expanded.
	Expansions uint
	// Incomplete indicates the expansion budget was exhausted.
	Incomplete bool
}

// node is an interned term in the universe.  Arguments refer to other nodes
// by index, hence structurally equal terms share the same node.
type node[S comparable] struct {
	term   term.Term[S]
	symbol uint
	args   []uint
}

type merge struct {
	left  uint
	right uint
	// indicates a merge forced by congruence
	congruence bool
}

// closure computes the congruence closure of a set of equalities over a
// universe of interned terms.  Every term is assigned a dense index in an
// arena, and a disjoint-set forest over these indices tracks the current
// partition.  Congruence is detected via a signature table mapping
// (kind, symbol, class of each argument) to a representative application.
// When two classes merge, only the applications using the absorbed class need
// to be re-signed (the "use list"), rather than rescanning the universe.
type closure[S comparable] struct {
	config         Config
	normalizations map[S]Normalization[S]
	// symbols maps each symbol to a dense index.
	symbols map[S]uint
	// arena of interned terms.
	nodes []node[S]
	// maps node keys (kind, symbol, args) to arena indices.
	intern *hash.Map[hash.UintsKey, uint]
	// current partition of the arena.
	classes *unionfind.DisjointSet
	// uses[r] lists applications having an argument in the class rooted at
	// r.  This is only meaningful when r is a root.
	uses [][]uint
	// signatures maps (kind, symbol, argument roots) to an application with
	// that signature.
	signatures *hash.Map[hash.UintsKey, uint]
	// merges not yet performed.
	pending []merge
	// normalizable nodes not yet expanded.
	unexpanded []uint
	stats      Stats
}

func newClosure[S comparable](premise *Premise[S], config Config) *closure[S] {
	c := &closure[S]{
		config:     config,
		symbols:    make(map[S]uint),
		intern:     hash.NewMap[hash.UintsKey, uint](0),
		classes:    unionfind.NewDisjointSet(0),
		signatures: hash.NewMap[hash.UintsKey, uint](0),
	}
	// A nil premise is treated as empty
	if premise == nil {
		return c
	}
	//
	c.normalizations = maps.Clone(premise.normalizations)
	// Base partition
	for _, eq := range premise.equalities {
		c.assert(eq.Left, eq.Right)
	}
	//
	return c
}

// assert that two terms are equal.  This is not propagated until saturate is
// called.
func (c *closure[S]) assert(left, right term.Term[S]) {
	l := c.add(left)
	r := c.add(right)
	c.pending = append(c.pending, merge{l, r, false})
}

// add a term (and, recursively, its arguments) to the universe, returning its
// index.  If the term was already present, its existing index is returned.
func (c *closure[S]) add(t term.Term[S]) uint {
	var (
		arity = t.Arity()
		args  = make([]uint, arity)
	)
	// Intern arguments first
	for i := range arity {
		args[i] = c.add(t.Arg(i))
	}
	//
	symbol := c.symbol(t.Symbol())
	key := nodeKey(t.Kind(), symbol, args)
	//
	if index, ok := c.intern.Get(key); ok {
		return index
	}
	// Allocate fresh node
	index := c.classes.Add()
	c.nodes = append(c.nodes, node[S]{t, symbol, args})
	c.uses = append(c.uses, nil)
	c.intern.Insert(key, index)
	//
	if t.IsLiteral() {
		return index
	}
	// Register as a user of each argument class
	for i, arg := range args {
		root := c.classes.Find(arg)
		// Avoid registering twice for repeated arguments
		if !slices.Contains(args[:i], arg) {
			c.uses[root] = append(c.uses[root], index)
		}
	}
	// Check for a congruent application
	c.sign(index)
	//
	if t.IsNormalizable() {
		c.unexpanded = append(c.unexpanded, index)
	}
	//
	return index
}

// lookup the index of a term without modifying the universe.
func (c *closure[S]) lookup(t term.Term[S]) (uint, bool) {
	var (
		arity = t.Arity()
		args  = make([]uint, arity)
		ok    bool
	)
	//
	for i := range arity {
		if args[i], ok = c.lookup(t.Arg(i)); !ok {
			return 0, false
		}
	}
	//
	symbol, ok := c.symbols[t.Symbol()]
	if !ok {
		return 0, false
	}
	//
	return c.intern.Get(nodeKey(t.Kind(), symbol, args))
}

// sign computes the current signature of a given application.  If another
// application already has this signature, they are congruent and a merge is
// scheduled.  Otherwise, this application becomes the representative of its
// signature.
func (c *closure[S]) sign(index uint) {
	var (
		n    = c.nodes[index]
		args = make([]uint, len(n.args))
	)
	//
	for i, arg := range n.args {
		args[i] = c.classes.Find(arg)
	}
	//
	sig := nodeKey(n.term.Kind(), n.symbol, args)
	//
	if other, ok := c.signatures.Get(sig); !ok {
		c.signatures.Insert(sig, index)
	} else if !c.classes.Same(index, other) {
		c.pending = append(c.pending, merge{index, other, true})
	}
}

// saturate performs all pending merges, along with any merges they imply by
// congruence or normalization, until a fixpoint is reached.
func (c *closure[S]) saturate() {
	for len(c.pending) > 0 || len(c.unexpanded) > 0 {
		c.propagate()
		c.expand()
	}
	//
	c.stats.Terms = c.classes.Len()
	c.stats.Classes = c.classes.Classes()
}

// propagate drains the pending worklist.
func (c *closure[S]) propagate() {
	for len(c.pending) > 0 {
		var (
			n    = len(c.pending) - 1
			next = c.pending[n]
		)
		//
		c.pending = c.pending[:n]
		//
		root, absorbed, merged := c.classes.Union(next.left, next.right)
		if !merged {
			continue
		}
		//
		c.stats.Merges++
		//
		if next.congruence {
			c.stats.Congruences++
		}
		// Applications over the absorbed class now have new signatures.
		users := c.uses[absorbed]
		c.uses[absorbed] = nil
		//
		for _, user := range users {
			c.sign(user)
		}
		//
		c.uses[root] = append(c.uses[root], users...)
	}
}

// expand each normalizable node whose alias is defined, merging it with its
// instantiated body.  Instantiating may introduce further normalizable nodes,
// hence the overall budget.
func (c *closure[S]) expand() {
	for len(c.unexpanded) > 0 {
		var (
			index = c.unexpanded[0]
			t     = c.nodes[index].term
		)
		// First-in first-out, so diverging aliases cannot starve others.
		c.unexpanded = c.unexpanded[1:]
		//
		norm, ok := c.normalizations[t.Symbol()]
		if !ok {
			continue
		}
		//
		body, ok := norm.Instantiate(t.Args())
		if !ok {
			// Arity mismatch, hence remains uninterpreted.
			continue
		} else if c.stats.Expansions >= c.config.maxExpansions {
			if !c.stats.Incomplete {
				log.Warnf("normalization budget of %d exhausted whilst expanding %s", c.config.maxExpansions, t.String())
			}
			//
			c.stats.Incomplete = true
			//
			continue
		}
		//
		c.stats.Expansions++
		c.pending = append(c.pending, merge{index, c.add(body), false})
	}
}

// same checks whether two nodes are in the same class.  This does not modify
// the universe and, hence, is safe for concurrent use.
func (c *closure[S]) same(l, r uint) bool {
	return c.classes.Root(l) == c.classes.Root(r)
}

// partition returns the equivalence classes of the universe as terms.
func (c *closure[S]) partition() [][]term.Term[S] {
	var classes [][]term.Term[S]
	//
	for _, class := range c.classes.Partition() {
		terms := make([]term.Term[S], len(class))
		//
		for i, index := range class {
			terms[i] = c.nodes[index].term
		}
		//
		classes = append(classes, terms)
	}
	//
	return classes
}

// clone returns a copy of this closure which can be extended without affecting
// this closure.
func (c *closure[S]) clone() *closure[S] {
	uses := make([][]uint, len(c.uses))
	// Clipping ensures appends in the clone never write into shared arrays.
	for i, u := range c.uses {
		uses[i] = slices.Clip(u)
	}
	//
	return &closure[S]{
		config:         c.config,
		normalizations: c.normalizations,
		symbols:        maps.Clone(c.symbols),
		nodes:          slices.Clip(c.nodes),
		intern:         c.intern.Clone(),
		classes:        c.classes.Clone(),
		uses:           uses,
		signatures:     c.signatures.Clone(),
		pending:        slices.Clone(c.pending),
		unexpanded:     slices.Clone(c.unexpanded),
		stats:          c.stats,
	}
}

func (c *closure[S]) symbol(s S) uint {
	if index, ok := c.symbols[s]; ok {
		return index
	}
	//
	index := uint(len(c.symbols))
	c.symbols[s] = index
	//
	return index
}

// nodeKey identifies an application (or literal) by its kind, symbol and
// arguments.  Kind is included so that, for example, a literal and a zero-arity
// function with the same symbol remain distinct.
func nodeKey(kind term.Kind, symbol uint, args []uint) hash.UintsKey {
	items := make([]uint, 0, len(args)+2)
	items = append(items, uint(kind), symbol)
	items = append(items, args...)
	//
	return hash.NewUintsKey(items...)
}
