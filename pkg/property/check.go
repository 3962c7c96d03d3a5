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
	"errors"
	"fmt"

	"github.com/consensys/go-euf/pkg/euf"
	"github.com/consensys/go-euf/pkg/term"
)

// ErrRejected indicates that a property could not be applied to a premise.
// Such properties are skipped rather than counted as failures.
var ErrRejected = errors.New("property rejected")

// Check a property against the decision procedure.  Specifically, if the
// property requires a premise then its terms should not be equal without one.
// Once the property has been applied, its terms should be equal in either
// orientation, both via Equals and via a Checker.
func Check(prop Property, config euf.Config) error {
	var (
		lhs, rhs = prop.Terms()
		premise  = euf.NewPremise[ID]()
	)
	//
	if prop.RequiresPremise() {
		if eq, err := euf.Decide(lhs, rhs, premise, config); err != nil {
			return fmt.Errorf("%s: %w", prop.String(), err)
		} else if eq {
			return fmt.Errorf("%s: equal without premise", prop.String())
		}
		//
		if !prop.Apply(premise) {
			return ErrRejected
		}
	}
	//
	if err := checkEqual(lhs, rhs, premise, config); err != nil {
		return fmt.Errorf("%s under %s: %w", prop.String(), premise.String(), err)
	}
	//
	return nil
}

func checkEqual(lhs, rhs term.Term[ID], premise *euf.Premise[ID], config euf.Config) error {
	checker := euf.NewChecker(premise, config)
	//
	for _, pair := range [][2]term.Term[ID]{{lhs, rhs}, {rhs, lhs}} {
		if eq, err := euf.Decide(pair[0], pair[1], premise, config); err != nil {
			return err
		} else if !eq {
			return fmt.Errorf("expected %s = %s", pair[0].String(), pair[1].String())
		}
		//
		if eq, err := checker.Decide(pair[0], pair[1]); err != nil {
			return err
		} else if !eq {
			return fmt.Errorf("checker expected %s = %s", pair[0].String(), pair[1].String())
		}
	}
	//
	return nil
}
