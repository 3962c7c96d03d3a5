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

	"github.com/consensys/go-euf/pkg/term"
	log "github.com/sirupsen/logrus"
)

// Equals determines whether two terms are equal under a given premise, using
// only reflexivity, symmetry, transitivity and congruence (plus any
// normalizations defined by the premise).  This computes the closure of the
// premise afresh for each call and never modifies the premise.  Use a Checker
// when querying the same premise repeatedly.
func Equals[S comparable](left, right term.Term[S], premise *Premise[S]) bool {
	r, _ := Decide(left, right, premise, DefaultConfig())
	return r
}

// Decide determines whether two terms are equal under a given premise, as for
// Equals, using a given configuration.  An error is returned when the answer
// is negative but normalizations could not be fully expanded (i.e. the answer
// may be wrong).
func Decide[S comparable](left, right term.Term[S], premise *Premise[S], config Config) (bool, error) {
	// Structurally equal terms are trivially equal.
	if left.Equals(right) {
		return true, nil
	}
	//
	c := newClosure(premise, config)
	l := c.add(left)
	r := c.add(right)
	c.saturate()
	//
	return verdict(c, left, right, c.same(l, r))
}

// Checker decides equalities against a fixed premise.  The closure of the
// premise is computed once upon construction, and subsequent changes to the
// premise are not seen.  A Checker is safe for concurrent use.
type Checker[S comparable] struct {
	base *closure[S]
}

// NewChecker constructs a checker for a given premise.
func NewChecker[S comparable](premise *Premise[S], config Config) *Checker[S] {
	c := newClosure(premise, config)
	c.saturate()
	// Ensures subsequent lookups need not modify the forest
	c.classes.Flatten()
	//
	log.Debugf("closed universe of %d terms into %d classes (%d merges, %d by congruence, %d expansions)",
		c.stats.Terms, c.stats.Classes, c.stats.Merges, c.stats.Congruences, c.stats.Expansions)
	//
	return &Checker[S]{c}
}

// Equals determines whether two terms are equal under the premise of this
// checker.
func (p *Checker[S]) Equals(left, right term.Term[S]) bool {
	r, _ := p.Decide(left, right)
	return r
}

// Decide determines whether two terms are equal under the premise of this
// checker.  An error is returned when the answer is negative but
// normalizations could not be fully expanded.
func (p *Checker[S]) Decide(left, right term.Term[S]) (bool, error) {
	if left.Equals(right) {
		return true, nil
	}
	// Fast path: both terms already in the universe
	if l, ok := p.base.lookup(left); ok {
		if r, ok := p.base.lookup(right); ok {
			return verdict(p.base, left, right, p.base.same(l, r))
		}
	}
	// Slow path: extend a private copy of the universe
	c := p.base.clone()
	l := c.add(left)
	r := c.add(right)
	c.saturate()
	//
	return verdict(c, left, right, c.same(l, r))
}

// Classes returns the equivalence classes of every term in the premise.
// Classes are ordered by the first appearance of any member.
func (p *Checker[S]) Classes() [][]term.Term[S] {
	return p.base.partition()
}

// Stats returns statistics about the closure of the premise.
func (p *Checker[S]) Stats() Stats {
	return p.base.stats
}

func verdict[S comparable](c *closure[S], left, right term.Term[S], equal bool) (bool, error) {
	if !equal && c.stats.Incomplete {
		return false, fmt.Errorf("deciding %s = %s: %w", left.String(), right.String(), ErrIncomplete)
	}
	//
	return equal, nil
}
