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
package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-euf/pkg/euf"
	"github.com/consensys/go-euf/pkg/util/termio"
	"github.com/spf13/cobra"
)

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned integer, or panic if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected 64-bit unsigned integer, or panic if an error arises.
func getUint64(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Construct the closure configuration from the persistent flags.
func getConfig(cmd *cobra.Command) euf.Config {
	return euf.DefaultConfig().WithMaxExpansions(getUint(cmd, "max-expansions"))
}

// Determine whether ANSI escapes should be used, where the default is to use
// them only when writing to a terminal.
func getAnsiEscapes(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("ansi-escapes") {
		return getFlag(cmd, "ansi-escapes")
	}
	//
	return termio.IsTerminal()
}
