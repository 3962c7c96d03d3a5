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
package term

import (
	"fmt"
	"hash/maphash"
	"slices"
	"strings"

	"github.com/consensys/go-euf/pkg/util/collection/hash"
)

// Kind identifies the shape of a term.
type Kind uint8

const (
	// Literal is an atomic term identified solely by its symbol.
	Literal Kind = iota
	// Function is an application of an uninterpreted function symbol to zero
	// or more arguments.
	Function
	// Normalizable is an application of an alias symbol.  Where a premise
	// defines a normalization for the symbol, the application equals the
	// alias body instantiated with its arguments.  Otherwise, it behaves as an
	// uninterpreted function (though never as a Function with the same
	// symbol).
	Normalizable
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Function:
		return "function"
	case Normalizable:
		return "normalizable"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// seed used for hashing symbols.  This is fixed for the lifetime of the
// process, thus hashcodes are stable within a process (but not across
// processes).
var seed = maphash.MakeSeed()

var _ hash.Hasher[Term[uint]] = Term[uint]{}

// Term represents a ground term, such as "f(x, g(y))", over symbols of type S.
// Terms are immutable values: constructors copy their arguments and nothing
// modifies a term once constructed.  Since terms are built bottom-up from
// existing values, they are always finite trees.
//
// Observe that a zero-arity function is not the same as a literal with the
// same symbol.  Likewise, a normalizable application is never the same as a
// function application.
type Term[S comparable] struct {
	kind   Kind
	symbol S
	args   []Term[S]
}

// NewLiteral constructs an atomic term with the given symbol.
func NewLiteral[S comparable](symbol S) Term[S] {
	return Term[S]{Literal, symbol, nil}
}

// NewFunction constructs an application of a function symbol to zero or more
// arguments.
func NewFunction[S comparable](symbol S, args ...Term[S]) Term[S] {
	return Term[S]{Function, symbol, slices.Clone(args)}
}

// NewNormalizable constructs an application of an alias symbol to zero or
// more arguments.
func NewNormalizable[S comparable](symbol S, args ...Term[S]) Term[S] {
	return Term[S]{Normalizable, symbol, slices.Clone(args)}
}

// NewLiterals constructs a literal for each of the given symbols.
func NewLiterals[S comparable](symbols ...S) []Term[S] {
	terms := make([]Term[S], len(symbols))
	//
	for i, s := range symbols {
		terms[i] = NewLiteral(s)
	}
	//
	return terms
}

// Kind returns the kind of this term.
func (p Term[S]) Kind() Kind {
	return p.kind
}

// Symbol returns the symbol of this term.  For a literal this is its identity,
// whilst for an application this is the name of the function (or alias) being
// applied.
func (p Term[S]) Symbol() S {
	return p.symbol
}

// IsLiteral checks whether this term is a literal.
func (p Term[S]) IsLiteral() bool {
	return p.kind == Literal
}

// IsFunction checks whether this term is a function application.
func (p Term[S]) IsFunction() bool {
	return p.kind == Function
}

// IsNormalizable checks whether this term is an alias application.
func (p Term[S]) IsNormalizable() bool {
	return p.kind == Normalizable
}

// Arity returns the number of arguments of this term.  This is always zero for
// a literal.
func (p Term[S]) Arity() uint {
	return uint(len(p.args))
}

// Arg returns the ith argument of this term.
func (p Term[S]) Arg(i uint) Term[S] {
	if i >= uint(len(p.args)) {
		panic(fmt.Sprintf("argument %d out-of-bounds for %s", i, p.String()))
	}
	//
	return p.args[i]
}

// Args returns a copy of the arguments of this term.
func (p Term[S]) Args() []Term[S] {
	return slices.Clone(p.args)
}

// Equals implements structural equality.  That is, two terms are equal when
// they have the same kind, the same symbol and pairwise structurally equal
// arguments.  This ignores any premise and, hence, is strictly weaker than
// equality under a premise.
func (p Term[S]) Equals(other Term[S]) bool {
	if p.kind != other.kind || p.symbol != other.symbol || len(p.args) != len(other.args) {
		return false
	}
	//
	for i := range p.args {
		if !p.args[i].Equals(other.args[i]) {
			return false
		}
	}
	//
	return true
}

// Hash returns a hashcode consistent with structural equality.
func (p Term[S]) Hash() uint64 {
	h := hash.Mix(hash.Offset, uint64(p.kind))
	h = hash.Mix(h, maphash.Comparable(seed, p.symbol))
	h = hash.Mix(h, uint64(len(p.args)))
	//
	for _, arg := range p.args {
		h = hash.Mix(h, arg.Hash())
	}
	//
	return h
}

// Depth returns the height of this term, where literals (and applications
// without arguments) have depth 1.
func (p Term[S]) Depth() uint {
	depth := uint(0)
	//
	for _, arg := range p.args {
		depth = max(depth, arg.Depth())
	}
	//
	return depth + 1
}

// Size returns the number of nodes in this term (counting repeated subterms
// repeatedly).
func (p Term[S]) Size() uint {
	size := uint(1)
	//
	for _, arg := range p.args {
		size += arg.Size()
	}
	//
	return size
}

func (p Term[S]) String() string {
	var builder strings.Builder
	//
	p.write(&builder)
	//
	return builder.String()
}

func (p Term[S]) write(builder *strings.Builder) {
	builder.WriteString(fmt.Sprintf("%v", p.symbol))
	//
	switch p.kind {
	case Literal:
		return
	case Normalizable:
		builder.WriteString("!")
	}
	//
	builder.WriteString("(")
	//
	for i, arg := range p.args {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		arg.write(builder)
	}
	//
	builder.WriteString(")")
}
