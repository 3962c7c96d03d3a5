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

// Substitute returns a copy of this term where every subterm structurally
// equal to from is replaced by to.  Substitution proceeds top-down and the
// replacement itself is not searched again, hence substituting x for f(x)
// terminates.
func (p Term[S]) Substitute(from Term[S], to Term[S]) Term[S] {
	if p.Equals(from) {
		return to
	} else if len(p.args) == 0 {
		return p
	}
	//
	var args []Term[S]
	// Only allocate when an argument actually changes.
	for i, arg := range p.args {
		nArg := arg.Substitute(from, to)
		//
		if args == nil && !nArg.Equals(arg) {
			args = make([]Term[S], len(p.args))
			copy(args, p.args[:i])
		}
		//
		if args != nil {
			args[i] = nArg
		}
	}
	//
	if args == nil {
		return p
	}
	//
	return Term[S]{p.kind, p.symbol, args}
}

// SubstituteAll simultaneously replaces each literal whose symbol appears in
// params with the corresponding argument.  Since replacement is simultaneous,
// an argument mentioning a parameter is not itself rewritten.
func (p Term[S]) SubstituteAll(params []S, args []Term[S]) Term[S] {
	if len(params) != len(args) {
		panic("mismatched parameters and arguments")
	}
	//
	switch p.kind {
	case Literal:
		for i, param := range params {
			if p.symbol == param {
				return args[i]
			}
		}
		//
		return p
	default:
		if len(p.args) == 0 {
			return p
		}
		//
		nargs := make([]Term[S], len(p.args))
		//
		for i, arg := range p.args {
			nargs[i] = arg.SubstituteAll(params, args)
		}
		//
		return Term[S]{p.kind, p.symbol, nargs}
	}
}
