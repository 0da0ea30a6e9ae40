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

package opt

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/robashaw/basisopt"
	"github.com/robashaw/basisopt/qm"
)

//Config collects everything a run needs. The tagged fields can come
//from an options map (see DecodeOptions); the rest are wired in code.
type Config struct {
	Element   string   `mapstructure:"element"`
	Method    string   `mapstructure:"method"`
	EvalType  string   `mapstructure:"eval_type"`
	Accuracy  float64  `mapstructure:"accuracy"`
	MaxN      int      `mapstructure:"max_n"`
	MaxL      int      `mapstructure:"max_l"`
	ShellMins []int    `mapstructure:"shell_mins"`
	ShellMaxs []int    `mapstructure:"shell_maxs"`
	Reference *float64 `mapstructure:"reference"`
	Parallel  bool     `mapstructure:"parallel"`
	Workers   int      `mapstructure:"workers"`
	Params    Settings `mapstructure:"params"`

	Evaluator      qm.Evaluator       `mapstructure:"-"`
	Molecule       *qm.Molecule       `mapstructure:"-"`
	ReferenceBasis basisopt.Basis     `mapstructure:"-"`
	Logger         *zap.SugaredLogger `mapstructure:"-"`
}

//DecodeOptions fills the tagged fields of a Config from an options
//map, as read from a run file. Unknown keys are an error rather than
//silently dropped, so a typo in a run file cannot change the meaning
//of a run.
func DecodeOptions(opts map[string]any, c *Config) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return basisopt.NewError(basisopt.KindConfiguration, err.Error(), "DecodeOptions")
	}
	if err := dec.Decode(opts); err != nil {
		return basisopt.NewError(basisopt.KindConfiguration, err.Error(), "DecodeOptions")
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		return basisopt.NewError(basisopt.KindConfiguration,
			fmt.Sprintf("unknown option keys: %s", strings.Join(md.Unused, ", ")),
			"DecodeOptions")
	}
	return nil
}

//StepRecord is one completed optimization step: its position in the
//run, the parameters it ended with and the objective reached.
type StepRecord struct {
	Step      int
	Params    []float64
	Objective float64
	Evals     int
}

//Run drives one strategy over one element's basis. Build it with
//NewRun, call Setup once, then Optimize.
type Run struct {
	Config
	Strategy Strategy

	reference float64
	useRef    bool
	objective float64
	evalErr   error
	nevals    int
	steps     []StepRecord
	outcome   Outcome
}

//NewRun returns a run over the given strategy.
func NewRun(c Config, s Strategy) *Run {
	return &Run{Config: c, Strategy: s, outcome: Running}
}

//Setup validates the configuration, resolves the reference value and
//initialises the strategy on the given basis. It fails before any
//evaluator call if the evaluator cannot be used at all.
func (r *Run) Setup(b basisopt.Basis) error {
	if r.Evaluator == nil || !r.Evaluator.Usable() {
		return basisopt.NewError(basisopt.KindConfiguration, "the evaluator backend is not usable", "Run.Setup")
	}
	if r.Logger == nil {
		r.Logger = zap.NewNop().Sugar()
	}
	if r.EvalType == "" {
		r.EvalType = "energy"
	}
	if r.Method == "" {
		r.Method = "hf"
	}
	if r.Accuracy <= 0 {
		r.Accuracy = 1e-5
	}
	if r.Workers <= 0 {
		r.Workers = 1
	}
	if !r.Parallel {
		r.Workers = 1
	}
	if !r.Evaluator.Available(r.Method, r.EvalType) {
		return basisopt.NewError(basisopt.KindConfiguration,
			fmt.Sprintf("the evaluator does not support %s/%s", r.Method, r.EvalType), "Run.Setup")
	}
	if r.Element == "" {
		return basisopt.NewError(basisopt.KindConfiguration, "no element to optimize", "Run.Setup")
	}
	r.Element = basisopt.NormalizeSymbol(r.Element)
	if r.Molecule == nil {
		r.Molecule = qm.NewAtom(r.Element, 0, groundMulti(r.Element))
	}
	for i, mn := range r.ShellMins {
		if i < len(r.ShellMaxs) && r.ShellMaxs[i] > 0 && mn > r.ShellMaxs[i] {
			return basisopt.NewError(basisopt.KindConfiguration,
				fmt.Sprintf("shell %d: minimum %d above maximum %d", i, mn, r.ShellMaxs[i]), "Run.Setup")
		}
	}
	if err := r.resolveReference(); err != nil {
		return err
	}
	r.wireStrategy()
	if err := r.Strategy.Initialise(b, r.Element); err != nil {
		return errDecorate(err, "Run.Setup")
	}
	r.Logger.Infow("run ready", "strategy", r.Strategy.Name(), "element", r.Element,
		"method", r.Method, "eval_type", r.EvalType, "accuracy", r.Accuracy, "reference", r.useRef)
	return nil
}

func (r *Run) resolveReference() error {
	switch {
	case r.Reference != nil:
		r.reference = *r.Reference
		r.useRef = true
	case r.ReferenceBasis != nil:
		val, err := r.Evaluator.Evaluate(r.ReferenceBasis, r.Molecule, r.Method, r.EvalType)
		if err != nil {
			return errDecorate(err, "Run.Setup")
		}
		r.reference = val
		r.useRef = true
	}
	return nil
}

//wireStrategy pushes the run options down into the strategy. With a
//reference the objective is already a distance, so the strategies
//compare it to the target directly; without one they fall back to
//successive differences.
func (r *Run) wireStrategy() {
	switch s := r.Strategy.(type) {
	case *EvenTempered:
		if s.Target <= 0 {
			s.Target = r.Accuracy
		}
		if s.MaxN <= 0 {
			s.MaxN = r.MaxN
		}
		s.MaxNs = r.ShellMaxs
		s.MinNs = r.ShellMins
		if s.MaxL <= 0 {
			s.MaxL = r.MaxL
		}
		s.Absolute = r.useRef
	case *WellTempered:
		if s.Target <= 0 {
			s.Target = r.Accuracy
		}
		if s.MaxN <= 0 {
			s.MaxN = r.MaxN
		}
		s.MaxNs = r.ShellMaxs
		s.MinNs = r.ShellMins
		if s.MaxL <= 0 {
			s.MaxL = r.MaxL
		}
		s.Absolute = r.useRef
	case *Reduce:
		if s.Target <= 0 {
			s.Target = r.Accuracy
		}
		if len(s.ShellMins) == 0 {
			s.ShellMins = r.ShellMins
		}
		s.Workers = r.Workers
		s.Absolute = r.useRef
		if s.Probe == nil {
			s.Probe = func(b basisopt.Basis) (float64, error) {
				val, err := r.Evaluator.Evaluate(b, r.Molecule, r.Method, r.EvalType)
				if err != nil {
					return 0, err
				}
				return r.measure(val), nil
			}
		}
	}
}

//measure turns a raw evaluator value into the objective: the distance
//to the reference when one is set, the value itself otherwise.
func (r *Run) measure(val float64) float64 {
	if r.useRef {
		return math.Abs(val - r.reference)
	}
	return val
}

func (r *Run) eval(b basisopt.Basis) (float64, error) {
	r.nevals++
	val, err := r.Evaluator.Evaluate(b, r.Molecule, r.Method, r.EvalType)
	if err != nil {
		return 0, err
	}
	return r.measure(val), nil
}

//Optimize runs the strategy to completion on the given basis. The
//loop asks the strategy whether there is more to do, minimizes over
//the parameters it marks active, writes the winner back and hands the
//new objective to the strategy for the next decision. A Domain error
//from the evaluator marks a single trial infeasible; an Evaluator
//error aborts the run as Failed with no retry.
func (r *Run) Optimize(b basisopt.Basis) error {
	obj, err := r.eval(b)
	if err != nil {
		r.outcome = Failed
		return errDecorate(err, "Run.Optimize")
	}
	r.objective = obj
	r.Logger.Infow("initial point", "objective", obj)
	step := 0
	for {
		more, err := r.Strategy.Next(b, r.Element, r.objective)
		if err != nil {
			r.outcome = Failed
			return errDecorate(err, "Run.Optimize")
		}
		if !more {
			break
		}
		guess := r.Strategy.Active(b, r.Element)
		before := r.nevals
		x, f, err := Minimize(r.trial(b), guess, &r.Params)
		if r.evalErr != nil {
			r.outcome = Failed
			return errDecorate(r.evalErr, "Run.Optimize")
		}
		if err != nil {
			r.outcome = Failed
			return errDecorate(err, "Run.Optimize")
		}
		if err := r.Strategy.SetActive(x, b, r.Element); err != nil {
			r.outcome = Failed
			return errDecorate(err, "Run.Optimize")
		}
		r.objective = f
		rec := StepRecord{Step: step, Params: append([]float64{}, x...), Objective: f, Evals: r.nevals - before}
		r.steps = append(r.steps, rec)
		r.Logger.Infow("step done", "step", step, "objective", f, "evals", rec.Evals)
		step++
	}
	r.outcome = r.Strategy.Outcome()
	//the strategy may have undone its last change (a reinstated
	//removal), so the final objective is measured on the basis as it
	//actually ends up, not on the last minimization
	obj, err = r.eval(b)
	if err != nil {
		r.outcome = Failed
		return errDecorate(err, "Run.Optimize")
	}
	r.objective = obj
	r.Logger.Infow("run finished", "outcome", r.outcome, "objective", r.objective, "evals", r.nevals)
	return nil
}

//trial returns the closure Minimize evaluates. Infeasible parameters
//and Domain errors from the evaluator cost +Inf so the simplex backs
//away from them; an Evaluator error is latched and poisons the rest
//of the minimization, which the caller then aborts.
func (r *Run) trial(b basisopt.Basis) func(x []float64) float64 {
	return func(x []float64) float64 {
		if r.evalErr != nil {
			return math.Inf(1)
		}
		if err := r.Strategy.SetActive(x, b, r.Element); err != nil {
			if basisopt.KindOf(err) == basisopt.KindDomain {
				return math.Inf(1)
			}
			r.evalErr = err
			return math.Inf(1)
		}
		val, err := r.eval(b)
		if err != nil {
			if basisopt.KindOf(err) == basisopt.KindDomain {
				return math.Inf(1)
			}
			r.evalErr = err
			return math.Inf(1)
		}
		return val
	}
}

//Objective returns the objective at the end of the run.
func (r *Run) Objective() float64 { return r.objective }

//Outcome returns the state the run ended in.
func (r *Run) Outcome() Outcome { return r.outcome }

//Evals returns how many evaluator calls the run made.
func (r *Run) Evals() int { return r.nevals }

//Steps returns the per-step records of the run.
func (r *Run) Steps() []StepRecord { return r.steps }

//groundMulti returns the ground-state spin multiplicity of a neutral
//atom, 1 when the element is unknown.
func groundMulti(element string) int {
	if m, ok := groundMultis[element]; ok {
		return m
	}
	return 1
}

var groundMultis = map[string]int{
	"H": 2, "He": 1,
	"Li": 2, "Be": 1, "B": 2, "C": 3, "N": 4, "O": 3, "F": 2, "Ne": 1,
	"Na": 2, "Mg": 1, "Al": 2, "Si": 3, "P": 4, "S": 3, "Cl": 2, "Ar": 1,
	"K": 2, "Ca": 1, "Ga": 2, "Ge": 3, "As": 4, "Se": 3, "Br": 2, "Kr": 1,
}
