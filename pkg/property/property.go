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
	"fmt"
	"strings"

	"github.com/consensys/go-euf/pkg/euf"
	"github.com/consensys/go-euf/pkg/term"
)

// ID is the symbol type used by generated terms.
type ID uint

// Property describes a pair of terms which are known to be equal, along with
// the premise needed to show this.  Properties compose, such that (for
// example) applying the same function to the terms of several properties
// gives a new property.
type Property interface {
	fmt.Stringer
	// RequiresPremise determines whether the terms of this property can only
	// be shown equal with a premise (i.e. they are not structurally equal).
	RequiresPremise() bool
	// Terms returns the pair of terms which this property shows equal.
	Terms() (term.Term[ID], term.Term[ID])
	// Apply this property to a premise by inserting whatever is needed to
	// show the terms equal.  This returns false if the property could not be
	// applied (e.g. because a normalization clashed with an existing one).
	Apply(premise *euf.Premise[ID]) bool
}

// ============================================================================
// Identity
// ============================================================================

// Identity is the property that a term equals itself.
type Identity struct {
	Term term.Term[ID]
}

// RequiresPremise implementation for the Property interface.
func (p *Identity) RequiresPremise() bool { return false }

// Terms implementation for the Property interface.
func (p *Identity) Terms() (term.Term[ID], term.Term[ID]) { return p.Term, p.Term }

// Apply implementation for the Property interface.
func (p *Identity) Apply(*euf.Premise[ID]) bool { return true }

func (p *Identity) String() string {
	return fmt.Sprintf("(id %s)", p.Term.String())
}

// ============================================================================
// Mapping
// ============================================================================

// Mapping joins two properties (l1 = r1) and (l2 = r2) by asserting r1 = l2,
// giving l1 = r2 by transitivity.
type Mapping struct {
	Left  Property
	Right Property
}

// RequiresPremise implementation for the Property interface.
func (p *Mapping) RequiresPremise() bool { return true }

// Terms implementation for the Property interface.
func (p *Mapping) Terms() (term.Term[ID], term.Term[ID]) {
	l, _ := p.Left.Terms()
	_, r := p.Right.Terms()
	//
	return l, r
}

// Apply implementation for the Property interface.
func (p *Mapping) Apply(premise *euf.Premise[ID]) bool {
	_, l := p.Left.Terms()
	r, _ := p.Right.Terms()
	//
	premise.Insert(l, r)
	//
	return p.Left.Apply(premise) && p.Right.Apply(premise)
}

func (p *Mapping) String() string {
	return fmt.Sprintf("(map %s %s)", p.Left.String(), p.Right.String())
}

// ============================================================================
// Unification
// ============================================================================

// Unification applies the same function symbol to the terms of zero or more
// properties, giving equality by congruence.
type Unification struct {
	Symbol    ID
	Arguments []Property
}

// RequiresPremise implementation for the Property interface.
func (p *Unification) RequiresPremise() bool {
	for _, arg := range p.Arguments {
		if arg.RequiresPremise() {
			return true
		}
	}
	//
	return false
}

// Terms implementation for the Property interface.
func (p *Unification) Terms() (term.Term[ID], term.Term[ID]) {
	var (
		lhs = make([]term.Term[ID], len(p.Arguments))
		rhs = make([]term.Term[ID], len(p.Arguments))
	)
	//
	for i, arg := range p.Arguments {
		lhs[i], rhs[i] = arg.Terms()
	}
	//
	return term.NewFunction(p.Symbol, lhs...), term.NewFunction(p.Symbol, rhs...)
}

// Apply implementation for the Property interface.
func (p *Unification) Apply(premise *euf.Premise[ID]) bool {
	for _, arg := range p.Arguments {
		if !arg.Apply(premise) {
			return false
		}
	}
	//
	return true
}

func (p *Unification) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("(unify %d", p.Symbol))
	//
	for _, arg := range p.Arguments {
		builder.WriteString(" ")
		builder.WriteString(arg.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ============================================================================
// Normalization
// ============================================================================

// Normalization replaces one side of a property with an application of a fresh
// alias.  The alias is defined such that, when instantiated with the chosen
// subterm, it gives back the replaced side.
type Normalization struct {
	Property Property
	// Alias symbol being defined.
	Alias ID
	// Parameter of the alias.  This must not occur in the replaced side.
	Parameter ID
	// Subterm of the replaced side which becomes the argument of the alias.
	Argument term.Term[ID]
	// Indicates whether the left or right side is replaced.
	AtLeft bool
}

// RequiresPremise implementation for the Property interface.
func (p *Normalization) RequiresPremise() bool { return true }

// Terms implementation for the Property interface.
func (p *Normalization) Terms() (term.Term[ID], term.Term[ID]) {
	alias := term.NewNormalizable(p.Alias, p.Argument)
	lhs, rhs := p.Property.Terms()
	//
	if p.AtLeft {
		return alias, rhs
	}
	//
	return lhs, alias
}

// Apply implementation for the Property interface.
func (p *Normalization) Apply(premise *euf.Premise[ID]) bool {
	if !p.Property.Apply(premise) {
		return false
	}
	//
	body := p.replaced().Substitute(p.Argument, term.NewLiteral(p.Parameter))
	//
	return premise.InsertNormalization(p.Alias, []ID{p.Parameter}, body)
}

func (p *Normalization) String() string {
	return fmt.Sprintf("(normalize %d(%d) %s %s %t)", p.Alias, p.Parameter, p.Argument.String(),
		p.Property.String(), p.AtLeft)
}

func (p *Normalization) replaced() term.Term[ID] {
	lhs, rhs := p.Property.Terms()
	//
	if p.AtLeft {
		return lhs
	}
	//
	return rhs
}
