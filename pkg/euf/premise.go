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
	"fmt"
	"maps"
	"slices"

	"github.com/consensys/go-euf/pkg/term"
	"github.com/consensys/go-euf/pkg/util/collection/hash"
)

// Equality is an unordered pair of terms asserted to be equal.
type Equality[S comparable] struct {
	Left  term.Term[S]
	Right term.Term[S]
}

// NewEquality constructs an equality between two terms.
func NewEquality[S comparable](left, right term.Term[S]) Equality[S] {
	return Equality[S]{left, right}
}

// Equals compares two equalities irrespective of orientation.  That is, a=b is
// the same equality as b=a.
func (p Equality[S]) Equals(other Equality[S]) bool {
	return (p.Left.Equals(other.Left) && p.Right.Equals(other.Right)) ||
		(p.Left.Equals(other.Right) && p.Right.Equals(other.Left))
}

// Hash returns a hashcode which is independent of orientation.
func (p Equality[S]) Hash() uint64 {
	var (
		l = p.Left.Hash()
		r = p.Right.Hash()
	)
	//
	return hash.Mix(hash.Mix(hash.Offset, min(l, r)), max(l, r))
}

func (p Equality[S]) String() string {
	return fmt.Sprintf("%s = %s", p.Left.String(), p.Right.String())
}

// Normalization defines an alias symbol, in a similar fashion to a type alias
// in a programming language.  An application of the alias to some arguments is
// equal to the body where each parameter is replaced by the corresponding
// argument.
type Normalization[S comparable] struct {
	// Parameters of the alias.  Occurrences of these as literals within the
	// body are replaced upon instantiation.
	Parameters []S
	// Body of the alias.
	Body term.Term[S]
}

// Instantiate this normalization with the given arguments.  This fails if the
// number of arguments does not match the number of parameters.
func (p Normalization[S]) Instantiate(args []term.Term[S]) (term.Term[S], bool) {
	if len(args) != len(p.Parameters) {
		return term.Term[S]{}, false
	}
	//
	return p.Body.SubstituteAll(p.Parameters, args), true
}

// Premise is a set of equalities assumed to hold, along with any
// normalizations (aliases) which are in scope.  Equalities are unordered and
// duplicates are ignored, thus inserting a=b and then b=a leaves the premise
// unchanged.  The zero value is an empty premise ready to use.
//
// A premise should not be modified whilst it is being queried.
type Premise[S comparable] struct {
	// equalities in order of (first) insertion.
	equalities []Equality[S]
	// used to detect duplicate equalities.
	index *hash.Set[Equality[S]]
	// normalizations indexed by their alias symbol.
	normalizations map[S]Normalization[S]
}

// NewPremise constructs an empty premise.
func NewPremise[S comparable]() *Premise[S] {
	return &Premise[S]{
		index:          hash.NewSet[Equality[S]](0),
		normalizations: make(map[S]Normalization[S]),
	}
}

// NewPremiseWith constructs a premise from a given set of equalities.
func NewPremiseWith[S comparable](equalities ...Equality[S]) *Premise[S] {
	premise := NewPremise[S]()
	//
	for _, eq := range equalities {
		premise.Insert(eq.Left, eq.Right)
	}
	//
	return premise
}

// Insert an equality into this premise, returning true if it was not already
// present (in either orientation).
func (p *Premise[S]) Insert(left, right term.Term[S]) bool {
	eq := Equality[S]{left, right}
	//
	if p.index == nil {
		p.index = hash.NewSet[Equality[S]](0)
	}
	//
	if p.index.Insert(eq) {
		return false
	}
	//
	p.equalities = append(p.equalities, eq)
	//
	return true
}

// Contains checks whether a given equality was inserted into this premise (in
// either orientation).  This does not consider derivable equalities.
func (p *Premise[S]) Contains(left, right term.Term[S]) bool {
	return p.index != nil && p.index.Contains(Equality[S]{left, right})
}

// Equalities returns the equalities of this premise in order of insertion.
func (p *Premise[S]) Equalities() []Equality[S] {
	return slices.Clone(p.equalities)
}

// Len returns the number of distinct equalities in this premise.
func (p *Premise[S]) Len() uint {
	return uint(len(p.equalities))
}

// InsertNormalization defines an alias symbol with a given set of parameters
// and body.  This returns true if the normalization was inserted, or false if
// the symbol already has a normalization (in which case nothing changes).
func (p *Premise[S]) InsertNormalization(symbol S, params []S, body term.Term[S]) bool {
	if p.normalizations == nil {
		p.normalizations = make(map[S]Normalization[S])
	} else if _, ok := p.normalizations[symbol]; ok {
		return false
	}
	//
	p.normalizations[symbol] = Normalization[S]{slices.Clone(params), body}
	//
	return true
}

// Normalization returns the normalization for a given alias symbol, if one
// exists.
func (p *Premise[S]) Normalization(symbol S) (Normalization[S], bool) {
	n, ok := p.normalizations[symbol]
	return n, ok
}

// Clone returns a copy of this premise which can be modified independently.
func (p *Premise[S]) Clone() *Premise[S] {
	var index *hash.Set[Equality[S]]
	//
	if p.index != nil {
		index = p.index.Clone()
	}
	//
	return &Premise[S]{slices.Clone(p.equalities), index, maps.Clone(p.normalizations)}
}

func (p *Premise[S]) String() string {
	var r = "{"
	//
	for i, eq := range p.equalities {
		if i != 0 {
			r += ", "
		}
		//
		r += eq.String()
	}
	//
	return r + "}"
}
