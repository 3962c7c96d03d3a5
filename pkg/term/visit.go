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

// Visitor is called for each subterm encountered during a traversal.
type Visitor[S comparable] interface {
	// Visit a given subterm, returning false if the traversal should stop.
	Visit(Term[S]) bool
}

// VisitorFunc adapts an ordinary function into a Visitor.
type VisitorFunc[S comparable] func(Term[S]) bool

// Visit implementation for the Visitor interface.
func (f VisitorFunc[S]) Visit(t Term[S]) bool {
	return f(t)
}

// Visit traverses this term in pre-order (i.e. a term is visited before its
// arguments, and arguments are visited left-to-right).  This returns false if
// the visitor stopped the traversal early.
func (p Term[S]) Visit(visitor Visitor[S]) bool {
	if !visitor.Visit(p) {
		return false
	}
	//
	for _, arg := range p.args {
		if !arg.Visit(visitor) {
			return false
		}
	}
	//
	return true
}

// Subterms returns every subterm of this term (including itself) in
// pre-order.  Repeated subterms are repeated.
func (p Term[S]) Subterms() []Term[S] {
	var terms []Term[S]
	//
	p.Visit(VisitorFunc[S](func(t Term[S]) bool {
		terms = append(terms, t)
		return true
	}))
	//
	return terms
}

// Contains checks whether a given term occurs anywhere within this term
// (including this term itself).
func (p Term[S]) Contains(sub Term[S]) bool {
	// Visit stops early (returning false) when the term is found.
	return !p.Visit(VisitorFunc[S](func(t Term[S]) bool {
		return !t.Equals(sub)
	}))
}
