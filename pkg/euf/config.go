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

import "errors"

// ErrIncomplete indicates that normalizations could not be fully expanded
// within the configured budget.  In such case, a positive answer remains
// sound but a negative answer may be wrong.
var ErrIncomplete = errors.New("normalization budget exhausted")

// DefaultMaxExpansions is the default bound on the number of normalizations
// expanded whilst closing a universe.
const DefaultMaxExpansions = 10_000

// Config encapsulates the options affecting how a closure is computed.
type Config struct {
	maxExpansions uint
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{DefaultMaxExpansions}
}

// WithMaxExpansions sets an upper bound on the number of normalizable terms
// which will be expanded.  This only matters for premises with normalizations
// whose expansion produces fresh normalizable terms without end.
func (c Config) WithMaxExpansions(n uint) Config {
	c.maxExpansions = n
	return c
}

// MaxExpansions returns the configured expansion budget.
func (c Config) MaxExpansions() uint {
	return c.maxExpansions
}
