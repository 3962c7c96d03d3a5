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
	"errors"
	"testing"

	"github.com/consensys/go-euf/pkg/term"
	"github.com/stretchr/testify/assert"
)

// ID is an opaque symbol identifier.
type ID uint

func lit(id ID) term.Term[ID] { return term.NewLiteral(id) }

func fn(id ID, args ...term.Term[ID]) term.Term[ID] { return term.NewFunction(id, args...) }

func alias(id ID, args ...term.Term[ID]) term.Term[ID] { return term.NewNormalizable(id, args...) }

// ===================================================================
// Reflexivity
// ===================================================================

func Test_Equals_Reflexivity_01(t *testing.T) {
	check_Equal(t, lit(0), lit(0), NewPremise[ID]())
}

func Test_Equals_Reflexivity_02(t *testing.T) {
	f := fn(0, fn(1, lit(2)), lit(3))
	//
	check_Equal(t, f, f, NewPremise[ID]())
	check_Equal(t, f, f, premiseOf(lit(2), lit(3)))
}

func Test_Equals_Reflexivity_03(t *testing.T) {
	// Structurally equal but separately constructed
	check_Equal(t, fn(0, lit(1)), fn(0, lit(1)), nil)
}

// ===================================================================
// Symmetry
// ===================================================================

func Test_Equals_Symmetry_01(t *testing.T) {
	premise := premiseOf(lit(0), lit(1))
	//
	check_Equal(t, lit(0), lit(1), premise)
	check_NotEqual(t, lit(0), lit(2), premise)
	check_NotEqual(t, lit(1), lit(2), premise)
}

// ===================================================================
// Transitivity
// ===================================================================

func Test_Equals_Transitivity_01(t *testing.T) {
	premise := premiseOf(lit(0), lit(1), lit(1), lit(2))
	//
	check_Equal(t, lit(0), lit(1), premise)
	check_Equal(t, lit(1), lit(2), premise)
	check_Equal(t, lit(0), lit(2), premise)
	check_NotEqual(t, lit(0), lit(3), premise)
	check_NotEqual(t, lit(1), lit(3), premise)
	check_NotEqual(t, lit(2), lit(3), premise)
}

func Test_Equals_Transitivity_02(t *testing.T) {
	// Long chain inserted out of order
	premise := NewPremise[ID]()
	//
	for i := ID(10); i > 0; i-- {
		premise.Insert(lit(i), lit(i-1))
	}
	//
	check_Equal(t, lit(0), lit(10), premise)
	check_NotEqual(t, lit(0), lit(11), premise)
}

// ===================================================================
// Congruence
// ===================================================================

func Test_Equals_Congruence_01(t *testing.T) {
	var (
		term1    = fn(0, lit(1), lit(2))
		term2    = fn(0, lit(3), lit(4))
		notEqual = fn(0, lit(5), lit(6))
		premise  = premiseOf(lit(1), lit(3), lit(2), lit(4))
	)
	//
	check_Equal(t, term1, term2, premise)
	check_NotEqual(t, term1, notEqual, premise)
	check_NotEqual(t, term2, notEqual, premise)
}

func Test_Equals_Congruence_02(t *testing.T) {
	premise := premiseOf(lit(1), lit(3), lit(2), lit(4))
	// different symbol
	check_NotEqual(t, fn(0, lit(1), lit(2)), fn(7, lit(3), lit(4)), premise)
	// different arity
	check_NotEqual(t, fn(0, lit(1), lit(2)), fn(0, lit(3), lit(4), lit(5)), premise)
	// only one argument equal
	check_NotEqual(t, fn(0, lit(1), lit(2)), fn(0, lit(3), lit(5)), premise)
}

func Test_Equals_Congruence_03(t *testing.T) {
	// Congruence through nested structure
	premise := premiseOf(lit(1), lit(2))
	//
	check_Equal(t, fn(0, fn(9, fn(8, lit(1)))), fn(0, fn(9, fn(8, lit(2)))), premise)
	check_NotEqual(t, fn(0, fn(9, fn(8, lit(1)))), fn(0, fn(9, fn(7, lit(2)))), premise)
}

func Test_Equals_Congruence_04(t *testing.T) {
	// g(a)=c and g(b)=d with a=b, hence c=d even though neither mentions a or
	// b.
	premise := premiseOf(fn(0, lit(1)), lit(3), fn(0, lit(2)), lit(4), lit(1), lit(2))
	//
	check_Equal(t, lit(3), lit(4), premise)
}

func Test_Equals_Congruence_05(t *testing.T) {
	// Cascading: a=b gives f(a)=f(b), and hence h(f(a), c)=h(f(b), c).  Also
	// f(b)=d, thus h(f(a),c) = h(d,c).
	premise := premiseOf(lit(1), lit(2), fn(0, lit(2)), lit(4))
	//
	check_Equal(t, fn(5, fn(0, lit(1)), lit(3)), fn(5, lit(4), lit(3)), premise)
	check_NotEqual(t, fn(5, fn(0, lit(1)), lit(3)), fn(5, lit(3), lit(4)), premise)
}

func Test_Equals_Congruence_06(t *testing.T) {
	// Classic: f(f(f(a)))=a and f(f(f(f(f(a)))))=a give f(a)=a
	var (
		a   = lit(1)
		fa  = fn(0, a)
		f3a = fn(0, fn(0, fa))
		f5a = fn(0, fn(0, f3a))
	)
	//
	premise := premiseOf(f3a, a, f5a, a)
	//
	check_Equal(t, fa, a, premise)
	check_Equal(t, fn(0, fn(0, fn(0, fn(0, fa)))), a, premise)
}

func Test_Equals_Congruence_07(t *testing.T) {
	// Zero-arity functions are not literals
	premise := premiseOf(lit(1), lit(2))
	//
	check_NotEqual(t, fn(1), lit(1), premise)
	check_Equal(t, fn(0, fn(1), lit(1)), fn(0, fn(1), lit(2)), premise)
}

// ===================================================================
// Recursive & Mixed Premises
// ===================================================================

func Test_Equals_Recursive_01(t *testing.T) {
	premise := premiseOf(lit(0), fn(0, lit(0)))
	lhs := fn(0, lit(0))
	rhs := fn(0, fn(0, fn(0, fn(0, lit(0)))))
	//
	check_Equal(t, lhs, rhs, premise)
	check_Equal(t, lit(0), rhs, premise)
	check_NotEqual(t, lit(1), rhs, premise)
}

func Test_Equals_Mixed_01(t *testing.T) {
	// A literal asserted equal to a function term
	premise := premiseOf(lit(1), fn(0, lit(2), lit(3)))
	//
	check_Equal(t, fn(5, lit(1)), fn(5, fn(0, lit(2), lit(3))), premise)
	check_NotEqual(t, lit(2), lit(3), premise)
	check_NotEqual(t, lit(1), lit(2), premise)
}

// ===================================================================
// Negative Control
// ===================================================================

func Test_Equals_Negative_01(t *testing.T) {
	check_NotEqual(t, lit(5), lit(6), NewPremise[ID]())
	check_NotEqual(t, fn(0, lit(5)), fn(0, lit(6)), NewPremise[ID]())
}

func Test_Equals_Negative_02(t *testing.T) {
	// Query terms which don't occur in the premise
	premise := premiseOf(lit(1), lit(2))
	//
	check_NotEqual(t, lit(5), lit(6), premise)
	check_Equal(t, fn(9, lit(1)), fn(9, lit(2)), premise)
}

// ===================================================================
// Insertion
// ===================================================================

func Test_Equals_Insertion_01(t *testing.T) {
	var (
		once  = NewPremise[ID]()
		twice = NewPremise[ID]()
	)
	//
	once.Insert(lit(1), lit(2))
	twice.Insert(lit(1), lit(2))
	twice.Insert(lit(2), lit(1))
	twice.Insert(lit(1), lit(2))
	//
	assert.Equal(t, uint(1), twice.Len())
	//
	queries := []term.Term[ID]{lit(1), lit(2), lit(3), fn(0, lit(1)), fn(0, lit(2))}
	//
	for _, l := range queries {
		for _, r := range queries {
			assert.Equal(t, Equals(l, r, once), Equals(l, r, twice), "%s = %s", l, r)
		}
	}
}

func Test_Equals_Insertion_02(t *testing.T) {
	premise := premiseOf(lit(1), lit(2))
	before := premise.Equalities()
	// Queries must not modify the premise
	Equals(fn(0, lit(1)), fn(0, lit(2)), premise)
	//
	assert.Equal(t, before, premise.Equalities())
}

// ===================================================================
// Concrete Scenario
// ===================================================================

func Test_Equals_Scenario_01(t *testing.T) {
	var (
		term1    = fn(0, lit(1), lit(2))
		term2    = fn(0, lit(3), lit(4))
		notEqual = fn(0, lit(5), lit(6))
		premise  = NewPremise[ID]()
	)
	//
	premise.Insert(lit(1), lit(3))
	premise.Insert(lit(2), lit(4))
	//
	assert.True(t, Equals(term1, term2, premise))
	assert.True(t, Equals(term2, term1, premise))
	assert.False(t, Equals(term1, notEqual, premise))
	assert.False(t, Equals(notEqual, term1, premise))
	assert.False(t, Equals(term2, notEqual, premise))
	assert.False(t, Equals(notEqual, term2, premise))
}

// ===================================================================
// Normalization
// ===================================================================

func Test_Equals_Normalization_01(t *testing.T) {
	premise := NewPremise[ID]()
	// alias 100(x) := f(x, x)
	premise.InsertNormalization(100, []ID{200}, fn(0, lit(200), lit(200)))
	//
	check_Equal(t, alias(100, lit(1)), fn(0, lit(1), lit(1)), premise)
	check_NotEqual(t, alias(100, lit(1)), fn(0, lit(1), lit(2)), premise)
	// arity mismatch leaves alias uninterpreted
	check_NotEqual(t, alias(100, lit(1), lit(2)), fn(0, lit(1), lit(1)), premise)
}

func Test_Equals_Normalization_02(t *testing.T) {
	premise := NewPremise[ID]()
	premise.InsertNormalization(100, []ID{200}, fn(0, lit(200)))
	premise.Insert(lit(1), lit(2))
	// Expansion composes with premises and congruence
	check_Equal(t, alias(100, lit(1)), fn(0, lit(2)), premise)
	check_Equal(t, fn(7, alias(100, lit(1))), fn(7, alias(100, lit(2))), premise)
}

func Test_Equals_Normalization_03(t *testing.T) {
	premise := NewPremise[ID]()
	// nested aliases: 100(x) := 101!(x), 101(y) := g(y)
	premise.InsertNormalization(100, []ID{200}, alias(101, lit(200)))
	premise.InsertNormalization(101, []ID{201}, fn(1, lit(201)))
	//
	check_Equal(t, alias(100, lit(3)), fn(1, lit(3)), premise)
}

func Test_Equals_Normalization_04(t *testing.T) {
	premise := NewPremise[ID]()
	// Undefined aliases behave as uninterpreted functions distinct from
	// functions.
	premise.Insert(lit(1), lit(2))
	//
	check_Equal(t, alias(5, lit(1)), alias(5, lit(2)), premise)
	check_NotEqual(t, alias(5, lit(1)), fn(5, lit(1)), premise)
}

func Test_Equals_Normalization_05(t *testing.T) {
	premise := NewPremise[ID]()
	// Diverging alias: 100(x) := 100!(f(x))
	premise.InsertNormalization(100, []ID{200}, alias(100, fn(0, lit(200))))
	//
	config := DefaultConfig().WithMaxExpansions(16)
	// Positive answers remain available
	r, err := Decide(alias(100, lit(1)), alias(100, fn(0, lit(1))), premise, config)
	assert.True(t, r)
	assert.NoError(t, err)
	// Negative answers are flagged
	r, err = Decide(alias(100, lit(1)), lit(2), premise, config)
	assert.False(t, r)
	assert.True(t, errors.Is(err, ErrIncomplete))
}

// ===================================================================
// Test Helpers
// ===================================================================

// premiseOf constructs a premise from consecutive pairs of terms.
func premiseOf(terms ...term.Term[ID]) *Premise[ID] {
	premise := NewPremise[ID]()
	//
	for i := 0; i+1 < len(terms); i += 2 {
		premise.Insert(terms[i], terms[i+1])
	}
	//
	return premise
}

// check_Equal checks two terms are equal, in both directions, using both
// Equals and a Checker.
func check_Equal(t *testing.T, l, r term.Term[ID], premise *Premise[ID]) {
	t.Helper()
	check_Decision(t, l, r, premise, true)
}

func check_NotEqual(t *testing.T, l, r term.Term[ID], premise *Premise[ID]) {
	t.Helper()
	check_Decision(t, l, r, premise, false)
}

func check_Decision(t *testing.T, l, r term.Term[ID], premise *Premise[ID], expected bool) {
	t.Helper()
	//
	if Equals(l, r, premise) != expected {
		t.Errorf("expected (%s = %s) to be %t under %s", l, r, expected, premise)
	}
	//
	if Equals(r, l, premise) != expected {
		t.Errorf("expected (%s = %s) to be %t under %s", r, l, expected, premise)
	}
	//
	checker := NewChecker(premise, DefaultConfig())
	//
	if checker.Equals(l, r) != expected || checker.Equals(r, l) != expected {
		t.Errorf("checker expected (%s = %s) to be %t under %s", l, r, expected, premise)
	}
}
