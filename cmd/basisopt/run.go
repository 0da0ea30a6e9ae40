/*
 * run.go, part of basisopt.
 *
 *
 * Copyright 2026 The basisopt developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/robashaw/basisopt"
	"github.com/robashaw/basisopt/opt"
	"github.com/robashaw/basisopt/qm"
	"github.com/robashaw/basisopt/viz"
)

//runFile is the YAML surface of one optimization run.
type runFile struct {
	Element     string         `yaml:"element"`
	Strategy    string         `yaml:"strategy"`
	Evaluator   string         `yaml:"evaluator"`
	Limit       float64        `yaml:"limit"`
	Basis       string         `yaml:"basis"`
	Output      string         `yaml:"output"`
	Plot        string         `yaml:"plot"`
	Convergence string         `yaml:"convergence"`
	Options     map[string]any `yaml:"options"`
}

var runCmd = &cobra.Command{
	Use:   "run <runfile.yaml>",
	Short: "Run the optimization described by a run file",
	Long: `Reads a YAML run file naming the element, the strategy (et, wt or
reduce), the evaluator backend and its options, runs the optimization
and writes the optimized basis and any requested plots.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOptimization(args[0], "")
	},
}

//strategyCmd returns a shorthand command that forces one strategy,
//whatever the run file says.
func strategyCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <runfile.yaml>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimization(args[0], name)
		},
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(strategyCmd("et", "Grow an even-tempered expansion"))
	rootCmd.AddCommand(strategyCmd("wt", "Grow a well-tempered expansion"))
	rootCmd.AddCommand(strategyCmd("reduce", "Prune an existing basis"))
}

func readRunFile(path string) (*runFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rf := new(runFile)
	if err := yaml.Unmarshal(raw, rf); err != nil {
		return nil, fmt.Errorf("bad run file %s: %w", path, err)
	}
	return rf, nil
}

func buildEvaluator(rf *runFile) (qm.Evaluator, error) {
	switch rf.Evaluator {
	case "model":
		return qm.NewModel(rf.Limit), nil
	case "hydrogenic":
		return qm.Hydrogenic{}, nil
	case "none", "":
		return qm.None{}, nil
	}
	return nil, fmt.Errorf("unknown evaluator backend %q", rf.Evaluator)
}

func buildStrategy(rf *runFile, c *opt.Config) (opt.Strategy, error) {
	switch rf.Strategy {
	case "et", "eventempered":
		return opt.NewEvenTempered(c.Accuracy, c.MaxN), nil
	case "wt", "welltempered":
		return opt.NewWellTempered(c.Accuracy, c.MaxN), nil
	case "reduce":
		return opt.NewReduce(c.Accuracy, c.ShellMins), nil
	}
	return nil, fmt.Errorf("unknown strategy %q", rf.Strategy)
}

func runOptimization(path, strategy string) error {
	rf, err := readRunFile(path)
	if err != nil {
		return err
	}
	if strategy != "" {
		rf.Strategy = strategy
	}
	c := opt.Config{Logger: logger}
	if err := opt.DecodeOptions(rf.Options, &c); err != nil {
		return err
	}
	if c.Element == "" {
		c.Element = rf.Element
	}
	c.Evaluator, err = buildEvaluator(rf)
	if err != nil {
		return err
	}
	strat, err := buildStrategy(rf, &c)
	if err != nil {
		return err
	}
	basis := basisopt.NewBasis()
	if rf.Basis != "" {
		basis, err = basisopt.LoadBasis(rf.Basis)
		if err != nil {
			return err
		}
	}
	var start basisopt.Basis
	if rf.Strategy == "reduce" {
		if rf.Basis == "" {
			return fmt.Errorf("the reduce strategy needs a starting basis")
		}
		start = basis.Copy()
	}
	run := opt.NewRun(c, strat)
	if err := run.Setup(basis); err != nil {
		return err
	}
	if err := run.Optimize(basis); err != nil {
		return err
	}
	printReport(run, strat)
	if rf.Output != "" {
		if err := basisopt.SaveBasis(basis, rf.Output); err != nil {
			return err
		}
		logger.Infow("basis written", "file", rf.Output)
	}
	if rf.Plot != "" {
		bases := map[string]basisopt.Basis{"optimized": basis}
		if start != nil {
			bases["start"] = start
		}
		if err := viz.ExponentPlot(bases, c.Element, rf.Plot); err != nil {
			return err
		}
	}
	if rf.Convergence != "" {
		if err := viz.ConvergencePlot(run.Steps(), rf.Convergence); err != nil {
			return err
		}
	}
	return nil
}

func printReport(run *opt.Run, strat opt.Strategy) {
	fmt.Printf("outcome: %s  objective: %.8g  evaluations: %d\n",
		run.Outcome(), run.Objective(), run.Evals())
	for _, rep := range strat.Report() {
		fmt.Printf("  %s shell: %s, %d functions, delta %.3g", rep.L, rep.Outcome, rep.N, rep.Delta)
		if rep.Reason != "" {
			fmt.Printf(" (%s)", rep.Reason)
		}
		fmt.Println()
	}
}
