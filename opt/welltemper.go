/*
 * welltemper.go, part of basisopt.
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

//The gamma seed is nearly zero so the initial well-tempered expansion
//is, to first order, the even-tempered one: warm-starting from an
//even-tempered result refines it instead of jumping elsewhere.
var wtSeed = basisopt.WTParams{Alpha: 0.3, K: 2.0, Gamma: 0.01, Delta: 2.0, N: 8}

//WellTempered is the four-parameter sibling of EvenTempered: each
//shell is (alpha, k, gamma, delta, n), expanded as
//alpha*k^(i-1)*(1+gamma*(i/n)^delta) for i=1..n, and n grows by the
//same rule. gamma and delta are unconstrained; parameter sets whose
//expansion turns an exponent non-positive are rejected as infeasible
//trials by the optimizer core.
type WellTempered struct {
	Target float64
	MaxN   int
	MaxNs  []int
	MinNs  []int
	MaxL   int
	Seeds  []basisopt.WTParams
	//Absolute: see EvenTempered.
	Absolute bool

	shells  []basisopt.WTParams
	status  []Outcome
	deltas  []float64
	step    int
	lastObj float64
	first   bool
	outcome Outcome
}

//NewWellTempered returns the strategy with the given accuracy target
//and per-shell primitive cap.
func NewWellTempered(target float64, maxN int) *WellTempered {
	return &WellTempered{Target: target, MaxN: maxN, step: -1}
}

func (wt *WellTempered) Name() string { return "WellTemper" }

func (wt *WellTempered) maxN(shell int) int {
	if shell < len(wt.MaxNs) && wt.MaxNs[shell] > 0 {
		return wt.MaxNs[shell]
	}
	return wt.MaxN
}

//SeedFromEvenTempered sets the seeds from an even-tempered result, so
//the well-tempered search starts as a refinement of it.
func (wt *WellTempered) SeedFromEvenTempered(params []basisopt.ETParams) {
	wt.Seeds = make([]basisopt.WTParams, len(params))
	for i, p := range params {
		wt.Seeds[i] = basisopt.WTParams{Alpha: p.Alpha, K: p.K, Gamma: wtSeed.Gamma, Delta: wtSeed.Delta, N: p.N}
	}
}

func (wt *WellTempered) Initialise(b basisopt.Basis, element string) error {
	if wt.MaxN <= 0 {
		wt.MaxN = defaultMaxN
	}
	nshells := wt.MaxL
	if nshells <= 0 {
		cfg, err := basisopt.MinimalConfig(element)
		if err != nil {
			return errDecorate(err, "WellTempered.Initialise")
		}
		nshells = len(cfg)
	}
	wt.shells = make([]basisopt.WTParams, nshells)
	for i := range wt.shells {
		if i < len(wt.Seeds) {
			wt.shells[i] = wt.Seeds[i]
		} else {
			wt.shells[i] = wtSeed
		}
		if i < len(wt.MinNs) && wt.shells[i].N < wt.MinNs[i] {
			wt.shells[i].N = wt.MinNs[i]
		}
		if wt.shells[i].N > wt.maxN(i) {
			return basisopt.NewError(basisopt.KindConfiguration,
				fmt.Sprintf("%s shell starts with %d functions, above the cap of %d", basisopt.AngularMomentum(i), wt.shells[i].N, wt.maxN(i)),
				"WellTempered.Initialise")
		}
	}
	wt.status = make([]Outcome, nshells)
	wt.deltas = make([]float64, nshells)
	wt.step = -1
	wt.first = true
	wt.outcome = Running
	return wt.install(b, element)
}

func (wt *WellTempered) install(b basisopt.Basis, element string) error {
	shells, err := basisopt.WTExpansion(wt.shells)
	if err != nil {
		return errDecorate(err, "WellTempered.install")
	}
	return errDecorate(b.SetShells(element, shells), "WellTempered.install")
}

//Active returns (alpha, k, gamma, delta) for the shell being
//optimized.
func (wt *WellTempered) Active(b basisopt.Basis, element string) []float64 {
	if wt.step < 0 || wt.step >= len(wt.shells) {
		return nil
	}
	p := wt.shells[wt.step]
	return []float64{p.Alpha, p.K, p.Gamma, p.Delta}
}

func (wt *WellTempered) SetActive(x []float64, b basisopt.Basis, element string) error {
	if len(x) != 4 {
		return basisopt.NewError(basisopt.KindDomain, fmt.Sprintf("well-tempered shell takes 4 parameters, got %d", len(x)), "WellTempered.SetActive")
	}
	p := &wt.shells[wt.step]
	p.Alpha = math.Max(x[0], minAlpha)
	p.K = math.Max(x[1], minRatio)
	p.Gamma = x[2]
	p.Delta = x[3]
	return wt.install(b, element)
}

func (wt *WellTempered) Next(b basisopt.Basis, element string, objective float64) (bool, error) {
	if wt.outcome != Running {
		return false, nil
	}
	delta := objective
	if !wt.Absolute {
		delta = math.Abs(objective - wt.lastObj)
	}
	if wt.step >= 0 && wt.status[wt.step] == Running && !wt.first {
		wt.deltas[wt.step] = delta
		switch {
		case delta <= wt.Target:
			wt.status[wt.step] = Converged
		case wt.shells[wt.step].N >= wt.maxN(wt.step):
			wt.status[wt.step] = MaxFunctionsReached
		default:
			wt.shells[wt.step].N++
			wt.lastObj = objective
			if err := wt.install(b, element); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	wt.first = false
	wt.lastObj = objective
	for i, st := range wt.status {
		if st == Running {
			wt.step = i
			return true, nil
		}
	}
	wt.outcome = Converged
	for _, st := range wt.status {
		if st == MaxFunctionsReached {
			wt.outcome = MaxFunctionsReached
			break
		}
	}
	return false, nil
}

func (wt *WellTempered) Outcome() Outcome { return wt.outcome }

func (wt *WellTempered) Report() []ShellReport {
	reps := make([]ShellReport, len(wt.shells))
	for i, p := range wt.shells {
		reps[i] = ShellReport{
			L:       basisopt.AngularMomentum(i),
			Outcome: wt.status[i],
			N:       p.N,
			Delta:   wt.deltas[i],
		}
		if wt.status[i] == MaxFunctionsReached {
			reps[i].Reason = fmt.Sprintf("hit the cap of %d functions before reaching %g", wt.maxN(i), wt.Target)
		}
	}
	return reps
}

//Params returns the current per-shell expansion parameters.
func (wt *WellTempered) Params() []basisopt.WTParams {
	return append([]basisopt.WTParams{}, wt.shells...)
}
