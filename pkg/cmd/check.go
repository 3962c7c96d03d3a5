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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/consensys/go-euf/pkg/euf"
	"github.com/consensys/go-euf/pkg/property"
	"github.com/consensys/go-euf/pkg/util"
	"github.com/consensys/go-euf/pkg/util/termio"
	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags]",
	Short: "Check the decision procedure against randomly generated properties.",
	Long: `Generate random pairs of terms which are equal under a known premise,
	and check the decision procedure agrees.  Each property is checked both
	without its premise (where the terms should differ) and with it.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg checkConfig

		if len(args) != 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Setup check config
		cfg.seed = getUint64(cmd, "seed")
		cfg.count = getUint(cmd, "count")
		cfg.workers = getUint(cmd, "workers")
		cfg.symbols = getUint(cmd, "symbols")
		cfg.arity = getUint(cmd, "arity")
		cfg.termDepth = getUint(cmd, "term-depth")
		cfg.propertyDepth = getUint(cmd, "depth")
		cfg.failFast = getFlag(cmd, "fail-fast")
		cfg.closure = getConfig(cmd)
		// Use time as seed, unless one was given
		if !cmd.Flags().Changed("seed") {
			cfg.seed = uint64(time.Now().UnixNano())
		}
		//
		log.Debugf("checking %d properties with seed %d", cfg.count, cfg.seed)
		//
		stats := util.NewPerfStats()
		summary := runChecks(context.Background(), cfg)
		//
		stats.Log("Checking properties")
		//
		printCheckSummary(os.Stdout, summary, getAnsiEscapes(cmd))
		// Report errors
		if summary.err != nil {
			log.Error(summary.err)
			os.Exit(1)
		}
	},
}

// checkConfig encapsulates the options for the check command.
type checkConfig struct {
	// initial seed, where property i is generated from seed+i
	seed uint64
	// number of properties to check
	count uint
	// maximum number of properties checked concurrently
	workers uint
	// number of distinct symbols
	symbols uint
	// maximum function arity
	arity uint
	// maximum term depth
	termDepth uint
	// maximum property depth
	propertyDepth uint
	// stop at the first failure
	failFast bool
	// closure configuration
	closure euf.Config
}

// checkSummary records the outcome of checking a batch of properties.
type checkSummary struct {
	passed   uint64
	rejected uint64
	skipped  uint64
	failed   uint64
	// all failures encountered
	err error
}

// errFailFast signals that remaining checks should be abandoned.
var errFailFast = errors.New("abandoned after failure")

// Check a batch of properties concurrently.  Property i is generated from its
// own seed, hence results are reproducible regardless of scheduling.
func runChecks(ctx context.Context, cfg checkConfig) checkSummary {
	var (
		summary checkSummary
		mutex   sync.Mutex
		errs    *multierror.Error
	)
	//
	group, ctx := errgroup.WithContext(ctx)
	//
	if cfg.workers == 0 {
		cfg.workers = uint(runtime.NumCPU())
	}
	//
	group.SetLimit(int(cfg.workers))
	//
	for i := range cfg.count {
		seed := cfg.seed + uint64(i)
		//
		group.Go(func() error {
			if ctx.Err() != nil {
				atomic.AddUint64(&summary.skipped, 1)
				return nil
			}
			//
			prop := newGenerator(seed, cfg).Property()
			err := property.Check(prop, cfg.closure)
			//
			switch {
			case err == nil:
				atomic.AddUint64(&summary.passed, 1)
				return nil
			case errors.Is(err, property.ErrRejected):
				atomic.AddUint64(&summary.rejected, 1)
				log.Debugf("rejected property (seed %d)", seed)
				//
				return nil
			}
			//
			atomic.AddUint64(&summary.failed, 1)
			mutex.Lock()
			errs = multierror.Append(errs, fmt.Errorf("seed %d: %w", seed, err))
			mutex.Unlock()
			//
			if cfg.failFast {
				return errFailFast
			}
			//
			return nil
		})
	}
	// Errors are accumulated separately, so this only reports fail fast.
	_ = group.Wait()
	//
	summary.err = errs.ErrorOrNil()
	//
	return summary
}

func newGenerator(seed uint64, cfg checkConfig) *property.Generator {
	return property.NewGenerator(seed).
		Symbols(max(cfg.symbols, 1)).
		MaxArity(cfg.arity).
		TermDepth(cfg.termDepth).
		PropertyDepth(cfg.propertyDepth)
}

func printCheckSummary(out io.Writer, summary checkSummary, ansiEscapes bool) {
	tp := termio.NewTablePrinter(2, 4).AnsiEscapes(ansiEscapes)
	//
	tp.SetRow(0, "passed", fmt.Sprintf("%d", summary.passed))
	tp.SetRow(1, "rejected", fmt.Sprintf("%d", summary.rejected))
	tp.SetRow(2, "skipped", fmt.Sprintf("%d", summary.skipped))
	tp.SetRow(3, "failed", fmt.Sprintf("%d", summary.failed))
	//
	tp.SetEscape(1, 0, termio.NewAnsiEscape().FgColour(termio.TERM_GREEN))
	tp.SetEscape(1, 1, termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW))
	//
	if summary.failed > 0 {
		tp.SetEscape(1, 3, termio.BoldAnsiEscape().FgColour(termio.TERM_RED))
	}
	//
	tp.Print(out)
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Uint64("seed", 0, "seed for generating properties (default is time based)")
	checkCmd.Flags().Uint("count", 1000, "number of properties to check")
	checkCmd.Flags().Uint("workers", 0, "number of concurrent workers (default is number of CPUs)")
	checkCmd.Flags().Uint("symbols", 1001, "number of distinct symbols")
	checkCmd.Flags().Uint("arity", 4, "maximum function arity")
	checkCmd.Flags().Uint("term-depth", 4, "maximum term depth")
	checkCmd.Flags().Uint("depth", 4, "maximum property depth")
	checkCmd.Flags().Bool("fail-fast", false, "stop at the first failing property")
	checkCmd.Flags().Bool("ansi-escapes", true, "enable/disable ANSI escapes (e.g. for colour)")
}
