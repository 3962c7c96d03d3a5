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
package property

import (
	"math/rand/v2"

	"github.com/consensys/go-euf/pkg/term"
)

// maximum attempts at generating a constrained property before falling back
// to an identity.
const maxAttempts = 16

// Generator constructs random terms and properties.  A generator is
// deterministic for a given seed, but is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
	// number of distinct symbols
	symbols uint
	// maximum arity of generated functions
	maxArity uint
	// maximum depth of generated terms
	termDepth uint
	// maximum depth of generated properties
	propertyDepth uint
}

// NewGenerator constructs a generator with a given seed and default bounds.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		symbols:       1001,
		maxArity:      4,
		termDepth:     4,
		propertyDepth: 4,
	}
}

// Symbols sets the number of distinct symbols used.  Fewer symbols give more
// sharing between terms.
func (p *Generator) Symbols(n uint) *Generator {
	if n == 0 {
		panic("generator requires at least one symbol")
	}
	//
	p.symbols = n
	//
	return p
}

// MaxArity sets the maximum arity of generated functions.
func (p *Generator) MaxArity(n uint) *Generator {
	p.maxArity = n
	return p
}

// TermDepth sets the maximum depth of generated terms.
func (p *Generator) TermDepth(n uint) *Generator {
	p.termDepth = n
	return p
}

// PropertyDepth sets the maximum depth of generated properties.
func (p *Generator) PropertyDepth(n uint) *Generator {
	p.propertyDepth = n
	return p
}

// Symbol returns a random symbol.
func (p *Generator) Symbol() ID {
	return ID(p.rng.UintN(p.symbols))
}

// Term returns a random term.
func (p *Generator) Term() term.Term[ID] {
	return p.term(p.termDepth)
}

func (p *Generator) term(depth uint) term.Term[ID] {
	if depth <= 1 || p.rng.UintN(3) == 0 {
		return term.NewLiteral(p.Symbol())
	}
	//
	var (
		symbol = p.Symbol()
		args   = make([]term.Term[ID], p.rng.UintN(p.maxArity+1))
	)
	//
	for i := range args {
		args[i] = p.term(depth - 1)
	}
	//
	return term.NewFunction(symbol, args...)
}

// Property returns a random property.
func (p *Generator) Property() Property {
	return p.property(p.propertyDepth)
}

func (p *Generator) property(depth uint) Property {
	if depth == 0 || p.rng.UintN(3) == 0 {
		return p.identity()
	}
	//
	for range maxAttempts {
		var (
			prop Property
			ok   bool
		)
		//
		switch p.rng.UintN(3) {
		case 0:
			prop, ok = p.mapping(depth - 1)
		case 1:
			prop, ok = p.unification(depth - 1), true
		default:
			prop, ok = p.normalization(depth - 1)
		}
		//
		if ok {
			return prop
		}
	}
	//
	return p.identity()
}

func (p *Generator) identity() *Identity {
	return &Identity{p.Term()}
}

func (p *Generator) mapping(depth uint) (*Mapping, bool) {
	var (
		left  = p.property(depth)
		right = p.property(depth)
	)
	//
	prop := &Mapping{left, right}
	lhs, rhs := prop.Terms()
	// filter out trivially equal case
	return prop, !lhs.Equals(rhs)
}

func (p *Generator) unification(depth uint) *Unification {
	args := make([]Property, p.rng.UintN(p.maxArity+1))
	//
	for i := range args {
		args[i] = p.property(depth)
	}
	//
	return &Unification{p.Symbol(), args}
}

func (p *Generator) normalization(depth uint) (*Normalization, bool) {
	var (
		inner    = p.property(depth)
		atLeft   = p.rng.UintN(2) == 0
		param    = p.Symbol()
		lhs, rhs = inner.Terms()
		replaced = rhs
	)
	//
	if atLeft {
		replaced = lhs
	}
	// Parameter cannot occur in the replaced side, since it would then be
	// wrongly instantiated.
	if replaced.Contains(term.NewLiteral(param)) {
		return nil, false
	}
	//
	subterms := replaced.Subterms()
	argument := subterms[p.rng.UintN(uint(len(subterms)))]
	prop := &Normalization{inner, p.Symbol(), param, argument, atLeft}
	lhs, rhs = prop.Terms()
	// filter out trivially equal case
	return prop, !lhs.Equals(rhs)
}
