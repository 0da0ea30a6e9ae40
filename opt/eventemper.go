/*
 * eventemper.go, part of basisopt.
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

	"github.com/robashaw/basisopt"
)

//Guard rails for the expansion parameters. Exponents below 1e-5 or
//ratios below 1.01 produce numerically impossible bases, so trial
//vectors are clamped here instead of letting the evaluator choke.
const (
	minAlpha = 1e-5
	minRatio = 1.01
)

//The per-shell function cap used when a run configures none.
const defaultMaxN = 18

//The starting point for a shell nobody has optimized yet.
var etSeed = basisopt.ETParams{Alpha: 0.3, K: 2.0, N: 8}

//EvenTempered grows an even-tempered expansion per shell: each shell
//is described by (alpha, k, n), expanded as alpha*k^(i-1) for i=1..n.
//Per shell the loop is: optimize (alpha, k) with n fixed; if the
//objective is within Target the shell converges; if n hit the cap the
//shell stops there (reported as such); otherwise n grows by one and
//the previous (alpha, k) warm-start the next optimization. Shells are
//independent; the strategy is terminal when every shell is.
type EvenTempered struct {
	//Target is the accuracy threshold on the objective.
	Target float64
	//MaxN caps the primitives per shell, 18 when left zero.
	//Per-shell caps in MaxNs take precedence when set.
	MaxN  int
	MaxNs []int
	//MinNs optionally raises the seed n per shell.
	MinNs []int
	//MaxL fixes the number of shells. Zero means take it from the
	//element's minimal configuration.
	MaxL int
	//Seeds optionally replaces the default initial parameters.
	Seeds []basisopt.ETParams
	//Absolute is set by the run driver: true when the objective is
	//|value - reference|, false when it is the raw value and
	//convergence is judged on successive differences.
	Absolute bool

	shells  []basisopt.ETParams
	status  []Outcome
	deltas  []float64
	step    int
	lastObj float64
	first   bool
	outcome Outcome
}

//NewEvenTempered returns the strategy with the given accuracy target
//and per-shell primitive cap.
func NewEvenTempered(target float64, maxN int) *EvenTempered {
	return &EvenTempered{Target: target, MaxN: maxN, step: -1}
}

func (et *EvenTempered) Name() string { return "EvenTemper" }

func (et *EvenTempered) maxN(shell int) int {
	if shell < len(et.MaxNs) && et.MaxNs[shell] > 0 {
		return et.MaxNs[shell]
	}
	return et.MaxN
}

//Initialise seeds (alpha, k, n) for every shell of the element and
//installs the corresponding expansion into b.
func (et *EvenTempered) Initialise(b basisopt.Basis, element string) error {
	if et.MaxN <= 0 {
		et.MaxN = defaultMaxN
	}
	nshells := et.MaxL
	if nshells <= 0 {
		cfg, err := basisopt.MinimalConfig(element)
		if err != nil {
			return errDecorate(err, "EvenTempered.Initialise")
		}
		nshells = len(cfg)
	}
	et.shells = make([]basisopt.ETParams, nshells)
	for i := range et.shells {
		if i < len(et.Seeds) {
			et.shells[i] = et.Seeds[i]
		} else {
			et.shells[i] = etSeed
		}
		if i < len(et.MinNs) && et.shells[i].N < et.MinNs[i] {
			et.shells[i].N = et.MinNs[i]
		}
		if et.shells[i].N > et.maxN(i) {
			return basisopt.NewError(basisopt.KindConfiguration,
				fmt.Sprintf("%s shell starts with %d functions, above the cap of %d", basisopt.AngularMomentum(i), et.shells[i].N, et.maxN(i)),
				"EvenTempered.Initialise")
		}
	}
	et.status = make([]Outcome, nshells)
	et.deltas = make([]float64, nshells)
	et.step = -1
	et.first = true
	et.outcome = Running
	return et.install(b, element)
}

func (et *EvenTempered) install(b basisopt.Basis, element string) error {
	shells, err := basisopt.ETExpansion(et.shells)
	if err != nil {
		return errDecorate(err, "EvenTempered.install")
	}
	return errDecorate(b.SetShells(element, shells), "EvenTempered.install")
}

//Active returns (alpha, k) for the shell being optimized.
func (et *EvenTempered) Active(b basisopt.Basis, element string) []float64 {
	if et.step < 0 || et.step >= len(et.shells) {
		return nil
	}
	p := et.shells[et.step]
	return []float64{p.Alpha, p.K}
}

//SetActive clamps and installs a trial (alpha, k) for the current
//shell.
func (et *EvenTempered) SetActive(x []float64, b basisopt.Basis, element string) error {
	if len(x) != 2 {
		return basisopt.NewError(basisopt.KindDomain, fmt.Sprintf("even-tempered shell takes 2 parameters, got %d", len(x)), "EvenTempered.SetActive")
	}
	p := &et.shells[et.step]
	p.Alpha = math.Max(x[0], minAlpha)
	p.K = math.Max(x[1], minRatio)
	return et.install(b, element)
}

func (et *EvenTempered) Next(b basisopt.Basis, element string, objective float64) (bool, error) {
	if et.outcome != Running {
		return false, nil
	}
	delta := objective
	if !et.Absolute {
		delta = math.Abs(objective - et.lastObj)
	}
	if et.step >= 0 && et.status[et.step] == Running && !et.first {
		et.deltas[et.step] = delta
		switch {
		case delta <= et.Target:
			et.status[et.step] = Converged
		case et.shells[et.step].N >= et.maxN(et.step):
			et.status[et.step] = MaxFunctionsReached
		default:
			//grow: one more primitive, warm-started from the
			//current (alpha, k)
			et.shells[et.step].N++
			et.lastObj = objective
			if err := et.install(b, element); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	et.first = false
	et.lastObj = objective
	for i, st := range et.status {
		if st == Running {
			et.step = i
			return true, nil
		}
	}
	et.outcome = Converged
	for _, st := range et.status {
		if st == MaxFunctionsReached {
			et.outcome = MaxFunctionsReached
			break
		}
	}
	return false, nil
}

func (et *EvenTempered) Outcome() Outcome { return et.outcome }

//Report returns each shell's terminal state and final size.
func (et *EvenTempered) Report() []ShellReport {
	reps := make([]ShellReport, len(et.shells))
	for i, p := range et.shells {
		reps[i] = ShellReport{
			L:       basisopt.AngularMomentum(i),
			Outcome: et.status[i],
			N:       p.N,
			Delta:   et.deltas[i],
		}
		if et.status[i] == MaxFunctionsReached {
			reps[i].Reason = fmt.Sprintf("hit the cap of %d functions before reaching %g", et.maxN(i), et.Target)
		}
	}
	return reps
}

//Params returns the current per-shell expansion parameters, in
//ascending angular momentum order.
func (et *EvenTempered) Params() []basisopt.ETParams {
	return append([]basisopt.ETParams{}, et.shells...)
}

//errDecorate asserts that err is a *basisopt.Error and decorates it
//with the caller's name. Foreign and nil errors pass through.
func errDecorate(err error, caller string) error {
	if e, ok := err.(*basisopt.Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}
