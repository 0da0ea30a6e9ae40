/*
 * reduce.go, part of basisopt.
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

//Reduce prunes an existing basis one primitive at a time. On each
//round every removable primitive is probed: the basis is re-evaluated
//with that primitive gone, and the one whose removal moves the result
//the least is removed for real. The driver then reoptimizes the
//affected shell, and if the accumulated degradation exceeds Target
//the removal is undone and that shell is frozen.
//
//Probe evaluates a candidate basis without touching the optimization
//state; the probes of one round are independent and are dispatched
//Workers at a time.
type Reduce struct {
	Target    float64
	ShellMins []int
	Probe     func(basisopt.Basis) (float64, error)
	Workers   int
	//Absolute: see EvenTempered.
	Absolute bool

	basis     basisopt.Basis
	element   string
	baseline  float64
	exhausted []bool
	deltas    []float64
	step      int
	last      *removal
	first     bool
	outcome   Outcome
}

type removal struct {
	shell int
	l     basisopt.AngularMomentum
	exp   float64
	prev  []float64
}

//NewReduce returns the strategy with the given degradation threshold
//and per-shell primitive floors.
func NewReduce(target float64, shellMins []int) *Reduce {
	return &Reduce{Target: target, ShellMins: shellMins, step: -1}
}

func (r *Reduce) Name() string { return "Reduce" }

func (r *Reduce) minFor(shell int) int {
	if shell < len(r.ShellMins) && r.ShellMins[shell] > 0 {
		return r.ShellMins[shell]
	}
	return 1
}

//Initialise checks that the basis actually has shells to prune and
//puts every shell in the uncontracted representation.
func (r *Reduce) Initialise(b basisopt.Basis, element string) error {
	if r.Probe == nil {
		return basisopt.NewError(basisopt.KindConfiguration, "reduction needs a probe evaluator", "Reduce.Initialise")
	}
	shells := b.Shells(element)
	if len(shells) == 0 {
		return basisopt.NewError(basisopt.KindConfiguration, fmt.Sprintf("nothing to reduce: no shells for %s", element), "Reduce.Initialise")
	}
	for _, sh := range shells {
		sh.Uncontract()
	}
	r.basis = b
	r.element = element
	r.exhausted = make([]bool, len(shells))
	r.deltas = make([]float64, len(shells))
	r.step = -1
	r.last = nil
	r.first = true
	r.outcome = Running
	return nil
}

//Active returns the exponents of the shell whose primitive was just
//removed, so the driver can relax the survivors.
func (r *Reduce) Active(b basisopt.Basis, element string) []float64 {
	shells := b.Shells(element)
	if r.step < 0 || r.step >= len(shells) {
		return nil
	}
	return append([]float64{}, shells[r.step].Exps...)
}

func (r *Reduce) SetActive(x []float64, b basisopt.Basis, element string) error {
	shells := b.Shells(element)
	if r.step < 0 || r.step >= len(shells) {
		return basisopt.NewError(basisopt.KindDomain, "no shell under reduction", "Reduce.SetActive")
	}
	exps := make([]float64, len(x))
	for i, v := range x {
		exps[i] = math.Abs(v)
	}
	return errDecorate(b.SetExps(element, shells[r.step].L, exps), "Reduce.SetActive")
}

func (r *Reduce) Next(b basisopt.Basis, element string, objective float64) (bool, error) {
	if r.outcome != Running {
		return false, nil
	}
	shells := b.Shells(element)
	if r.first {
		r.baseline = objective
		r.first = false
	} else if r.last != nil {
		delta := objective
		if !r.Absolute {
			delta = objective - r.baseline
		}
		if delta > r.Target {
			//The removal cost too much. Put the primitive back and
			//leave that shell alone from now on.
			if err := b.SetExps(element, r.last.l, r.last.prev); err != nil {
				return false, errDecorate(err, "Reduce.Next")
			}
			r.exhausted[r.last.shell] = true
		} else {
			r.deltas[r.last.shell] = delta
		}
		r.last = nil
	}

	var eligible []int
	for i, sh := range shells {
		if !r.exhausted[i] && sh.NExps() > r.minFor(i) {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		r.outcome = Converged
		for i, sh := range shells {
			if sh.NExps() > r.minFor(i) {
				r.outcome = Partial
				break
			}
		}
		return false, nil
	}

	shell, idx, err := r.rank(b, element, eligible)
	if err != nil {
		return false, errDecorate(err, "Reduce.Next")
	}
	sh := shells[shell]
	prev := append([]float64{}, sh.Exps...)
	exps := append([]float64{}, sh.Exps[:idx]...)
	exps = append(exps, sh.Exps[idx+1:]...)
	if err := b.SetExps(element, sh.L, exps); err != nil {
		return false, errDecorate(err, "Reduce.Next")
	}
	r.last = &removal{shell: shell, l: sh.L, exp: prev[idx], prev: prev}
	r.step = shell
	return true, nil
}

//rank probes the removal of every eligible primitive and returns the
//one whose loss matters least. Ties go to the smaller exponent, then
//to the lower shell and index, so the pick does not depend on how the
//probes interleave.
func (r *Reduce) rank(b basisopt.Basis, element string, eligible []int) (int, int, error) {
	cur, err := r.Probe(b)
	if err != nil {
		return 0, 0, errDecorate(err, "Reduce.rank")
	}
	shells := b.Shells(element)
	type candidate struct {
		shell, idx int
		exp        float64
		trial      basisopt.Basis
		impact     float64
	}
	var cands []*candidate
	for _, i := range eligible {
		sh := shells[i]
		for j := range sh.Exps {
			trial := b.Copy()
			exps := append([]float64{}, sh.Exps[:j]...)
			exps = append(exps, sh.Exps[j+1:]...)
			if err := trial.SetExps(element, sh.L, exps); err != nil {
				return 0, 0, errDecorate(err, "Reduce.rank")
			}
			cands = append(cands, &candidate{shell: i, idx: j, exp: sh.Exps[j], trial: trial})
		}
	}
	err = dispatch(r.Workers, len(cands), func(i int) error {
		val, err := r.Probe(cands[i].trial)
		if err != nil {
			return err
		}
		cands[i].impact = math.Abs(val - cur)
		return nil
	})
	if err != nil {
		return 0, 0, errDecorate(err, "Reduce.rank")
	}
	best := cands[0]
	for _, c := range cands[1:] {
		switch {
		case c.impact < best.impact:
			best = c
		case c.impact == best.impact && c.exp < best.exp:
			best = c
		case c.impact == best.impact && c.exp == best.exp && (c.shell < best.shell || (c.shell == best.shell && c.idx < best.idx)):
			best = c
		}
	}
	return best.shell, best.idx, nil
}

func (r *Reduce) Outcome() Outcome { return r.outcome }

func (r *Reduce) Report() []ShellReport {
	shells := r.basis.Shells(r.element)
	reps := make([]ShellReport, len(shells))
	for i, sh := range shells {
		reps[i] = ShellReport{L: sh.L, N: sh.NExps(), Delta: r.deltas[i]}
		switch {
		case sh.NExps() <= r.minFor(i):
			reps[i].Outcome = Converged
		case r.exhausted[i]:
			reps[i].Outcome = Partial
			reps[i].Reason = fmt.Sprintf("stopped at %d functions: further removal degrades the result beyond %g", sh.NExps(), r.Target)
		default:
			reps[i].Outcome = r.outcome
		}
	}
	return reps
}
