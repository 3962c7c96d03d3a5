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
	"io"
	"os"
	"time"

	"github.com/consensys/go-euf/pkg/euf"
	"github.com/consensys/go-euf/pkg/property"
	"github.com/consensys/go-euf/pkg/term"
	"github.com/consensys/go-euf/pkg/util"
	"github.com/consensys/go-euf/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench [flags]",
	Short: "Benchmark closure construction over random premises.",
	Long: `Construct random premises of a given size, compute their closure and
	then issue random queries against it.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg benchConfig

		if len(args) != 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg.seed = getUint64(cmd, "seed")
		cfg.size = getUint(cmd, "size")
		cfg.rounds = getUint(cmd, "rounds")
		cfg.queries = getUint(cmd, "queries")
		cfg.symbols = getUint(cmd, "symbols")
		cfg.closure = getConfig(cmd)
		//
		results := runBench(cfg)
		//
		printBenchResults(os.Stdout, results, getAnsiEscapes(cmd))
	},
}

// benchConfig encapsulates the options for the bench command.
type benchConfig struct {
	seed    uint64
	size    uint
	rounds  uint
	queries uint
	symbols uint
	closure euf.Config
}

// benchResult records the outcome of a single benchmarking round.
type benchResult struct {
	stats    euf.Stats
	closure  time.Duration
	queries  time.Duration
	positive uint
}

func runBench(cfg benchConfig) []benchResult {
	results := make([]benchResult, cfg.rounds)
	//
	for i := range cfg.rounds {
		var (
			gen     = property.NewGenerator(cfg.seed + uint64(i)).Symbols(max(cfg.symbols, 1)).TermDepth(3)
			premise = euf.NewPremise[property.ID]()
		)
		// Construct random premise
		for range cfg.size {
			premise.Insert(gen.Term(), gen.Term())
		}
		//
		stats := util.NewPerfStats()
		checker := euf.NewChecker(premise, cfg.closure)
		results[i].closure = stats.Snapshot().Elapsed
		results[i].stats = checker.Stats()
		//
		stats.Log(fmt.Sprintf("Closing premise of %d equalities", premise.Len()))
		// Queries over existing and fresh terms
		classes := checker.Classes()
		stats = util.NewPerfStats()
		//
		for q := range cfg.queries {
			lhs, rhs := benchQuery(gen, classes, q)
			//
			if checker.Equals(lhs, rhs) {
				results[i].positive++
			}
		}
		//
		results[i].queries = stats.Snapshot().Elapsed
		//
		log.Debugf("round %d: %d of %d queries positive", i, results[i].positive, cfg.queries)
	}
	//
	return results
}

// Pick a query, alternating between pairs drawn from the universe and pairs of
// fresh random terms.
func benchQuery(gen *property.Generator, classes [][]term.Term[property.ID], q uint) (term.Term[property.ID],
	term.Term[property.ID]) {
	if q%2 == 0 && len(classes) > 0 {
		lhs := classes[uint(gen.Symbol())%uint(len(classes))]
		rhs := classes[uint(gen.Symbol())%uint(len(classes))]
		//
		return lhs[0], rhs[len(rhs)-1]
	}
	//
	return gen.Term(), gen.Term()
}

func printBenchResults(out io.Writer, results []benchResult, ansiEscapes bool) {
	tp := termio.NewTablePrinter(8, uint(len(results))+1).AnsiEscapes(ansiEscapes)
	//
	tp.SetRow(0, "round", "terms", "classes", "merges", "congruences", "closure", "queries", "positive")
	//
	for col := range uint(8) {
		tp.SetEscape(col, 0, termio.BoldAnsiEscape().FgColour(termio.TERM_WHITE))
	}
	//
	for i, r := range results {
		tp.SetRow(uint(i)+1,
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", r.stats.Terms),
			fmt.Sprintf("%d", r.stats.Classes),
			fmt.Sprintf("%d", r.stats.Merges),
			fmt.Sprintf("%d", r.stats.Congruences),
			r.closure.String(),
			r.queries.String(),
			fmt.Sprintf("%d", r.positive))
	}
	//
	tp.Print(out)
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().Uint64("seed", 0, "seed for generating premises")
	benchCmd.Flags().Uint("size", 1000, "number of equalities in each premise")
	benchCmd.Flags().Uint("rounds", 5, "number of premises to benchmark")
	benchCmd.Flags().Uint("queries", 1000, "number of queries per premise")
	benchCmd.Flags().Uint("symbols", 64, "number of distinct symbols")
	benchCmd.Flags().Bool("ansi-escapes", true, "enable/disable ANSI escapes (e.g. for colour)")
}
