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
	"sync"
	"testing"

	"github.com/consensys/go-euf/pkg/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Checker_01(t *testing.T) {
	premise := premiseOf(lit(1), lit(3), lit(2), lit(4))
	checker := NewChecker(premise, DefaultConfig())
	// Neither query term occurs in the premise
	assert.True(t, checker.Equals(fn(0, lit(1), lit(2)), fn(0, lit(3), lit(4))))
	assert.False(t, checker.Equals(fn(0, lit(1), lit(2)), fn(0, lit(5), lit(6))))
	// Both query terms occur in the premise
	assert.True(t, checker.Equals(lit(1), lit(3)))
	assert.False(t, checker.Equals(lit(1), lit(2)))
}

func Test_Checker_02(t *testing.T) {
	premise := premiseOf(lit(1), lit(2))
	checker := NewChecker(premise, DefaultConfig())
	stats := checker.Stats()
	// Queries outside the universe do not extend it
	assert.True(t, checker.Equals(fn(0, lit(1)), fn(0, lit(2))))
	assert.Equal(t, stats, checker.Stats())
	assert.Equal(t, uint(2), stats.Terms)
	assert.Equal(t, uint(1), stats.Classes)
}

func Test_Checker_03(t *testing.T) {
	premise := premiseOf(lit(1), lit(2))
	checker := NewChecker(premise, DefaultConfig())
	// Subsequent changes to the premise are not seen
	premise.Insert(lit(2), lit(3))
	//
	assert.False(t, checker.Equals(lit(1), lit(3)))
	assert.True(t, Equals(lit(1), lit(3), premise))
}

func Test_Checker_Classes(t *testing.T) {
	premise := premiseOf(lit(1), lit(2), fn(0, lit(1)), lit(3), lit(4), lit(5))
	checker := NewChecker(premise, DefaultConfig())
	// f(1)=3 and f(2) does not occur
	expected := [][]term.Term[ID]{
		{lit(1), lit(2)},
		{fn(0, lit(1)), lit(3)},
		{lit(4), lit(5)},
	}
	//
	assert.Equal(t, expected, checker.Classes())
	//
	stats := checker.Stats()
	assert.Equal(t, uint(6), stats.Terms)
	assert.Equal(t, uint(3), stats.Classes)
	assert.Equal(t, uint(3), stats.Merges)
	assert.Equal(t, uint(0), stats.Congruences)
	assert.False(t, stats.Incomplete)
}

func Test_Checker_Congruences(t *testing.T) {
	premise := premiseOf(lit(1), lit(2), fn(0, lit(1)), lit(3), fn(0, lit(2)), lit(4))
	checker := NewChecker(premise, DefaultConfig())
	//
	assert.True(t, checker.Equals(lit(3), lit(4)))
	assert.Equal(t, uint(1), checker.Stats().Congruences)
	assert.Equal(t, uint(2), checker.Stats().Classes)
}

func Test_Checker_Concurrent(t *testing.T) {
	var (
		premise = premiseOf(lit(1), lit(3), lit(2), lit(4), fn(9, lit(3)), lit(7))
		checker = NewChecker(premise, DefaultConfig())
		wg      sync.WaitGroup
		results = make([][3]bool, 32)
	)
	//
	for i := range results {
		wg.Add(1)
		//
		go func(i int) {
			defer wg.Done()
			//
			results[i][0] = checker.Equals(fn(0, lit(1), lit(2)), fn(0, lit(3), lit(4)))
			results[i][1] = checker.Equals(fn(9, lit(1)), lit(7))
			results[i][2] = checker.Equals(lit(1), lit(2))
		}(i)
	}
	//
	wg.Wait()
	//
	for _, r := range results {
		require.Equal(t, [3]bool{true, true, false}, r)
	}
}

func Test_Premise_01(t *testing.T) {
	premise := NewPremise[ID]()
	//
	assert.True(t, premise.Insert(lit(1), lit(2)))
	assert.False(t, premise.Insert(lit(2), lit(1)))
	assert.True(t, premise.Insert(lit(1), lit(3)))
	assert.True(t, premise.Contains(lit(3), lit(1)))
	assert.False(t, premise.Contains(lit(2), lit(3)))
	assert.Equal(t, uint(2), premise.Len())
	assert.Equal(t, "{1 = 2, 1 = 3}", premise.String())
}

func Test_Premise_02(t *testing.T) {
	// zero value is usable
	var premise Premise[ID]
	//
	assert.True(t, premise.Insert(lit(1), lit(2)))
	assert.True(t, premise.InsertNormalization(5, []ID{6}, lit(6)))
	assert.False(t, premise.InsertNormalization(5, []ID{7}, lit(7)))
	//
	norm, ok := premise.Normalization(5)
	require.True(t, ok)
	assert.Equal(t, []ID{6}, norm.Parameters)
	assert.True(t, Equals(lit(1), lit(2), &premise))
}

func Test_Premise_Clone(t *testing.T) {
	premise := premiseOf(lit(1), lit(2))
	clone := premise.Clone()
	clone.Insert(lit(3), lit(4))
	//
	assert.Equal(t, uint(1), premise.Len())
	assert.Equal(t, uint(2), clone.Len())
	assert.False(t, premise.Contains(lit(3), lit(4)))
}

func Test_Premise_NewPremiseWith(t *testing.T) {
	premise := NewPremiseWith(NewEquality(lit(1), lit(2)), NewEquality(lit(2), lit(1)))
	//
	assert.Equal(t, uint(1), premise.Len())
	assert.Equal(t, []Equality[ID]{NewEquality(lit(1), lit(2))}, premise.Equalities())
}

func Test_Normalization_Instantiate(t *testing.T) {
	norm := Normalization[ID]{[]ID{10, 11}, fn(0, lit(10), lit(11))}
	//
	actual, ok := norm.Instantiate([]term.Term[ID]{lit(1), lit(2)})
	require.True(t, ok)
	assert.Equal(t, fn(0, lit(1), lit(2)), actual)
	//
	_, ok = norm.Instantiate([]term.Term[ID]{lit(1)})
	assert.False(t, ok)
}
