/*
 * opt.go, part of basisopt.
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

//Package opt holds the optimization engine: a derivative-free simplex
//core wrapped around gonum, the growth and reduction strategies that
//decide what to optimize next and when to stop, and the run driver
//that connects a strategy to an evaluator.
package opt

import (
	"fmt"
	"math"

	"github.com/robashaw/basisopt"
	"gonum.org/v1/gonum/optimize"
)

//Settings is the configuration surface of the optimizer core. The
//zero value of any field means "use the default". These are the only
//recognized optimizer options; anything else in a params map is a
//configuration error (see DecodeOptions).
type Settings struct {
	//MaxIter bounds the number of major iterations of the search.
	MaxIter int `mapstructure:"max_iter"`
	//Tol is the absolute convergence tolerance on the objective.
	Tol float64 `mapstructure:"tol"`
	//StepTol additionally requires the parameter vector to move less
	//than this between accepted iterations. Zero disables the check.
	StepTol float64 `mapstructure:"step_tol"`
	//Perturbation is the relative displacement per coordinate used to
	//build the initial simplex around the starting vector.
	Perturbation float64 `mapstructure:"perturbation"`
}

//DefaultSettings returns the defaults used when a run supplies no
//optimizer parameters.
func DefaultSettings() *Settings {
	return &Settings{
		MaxIter:      400,
		Tol:          1e-9,
		Perturbation: 0.1,
	}
}

func (set *Settings) fill() *Settings {
	def := DefaultSettings()
	if set == nil {
		return def
	}
	out := *set
	if out.MaxIter <= 0 {
		out.MaxIter = def.MaxIter
	}
	if out.Tol <= 0 {
		out.Tol = def.Tol
	}
	if out.Perturbation <= 0 {
		out.Perturbation = def.Perturbation
	}
	return &out
}

//stepConverge converges when the objective improvement stays under abs
//and, if step > 0, the best point moves less than step, for iters
//successive major iterations.
type stepConverge struct {
	abs   float64
	step  float64
	iters int
	prevF float64
	prevX []float64
	count int
}

func (c *stepConverge) Init(dim int) {
	c.prevF = math.Inf(1)
	c.prevX = make([]float64, dim)
	for i := range c.prevX {
		c.prevX[i] = math.Inf(1)
	}
	c.count = 0
}

func (c *stepConverge) Converged(loc *optimize.Location) optimize.Status {
	settled := math.Abs(c.prevF-loc.F) < c.abs
	if settled && c.step > 0 {
		for i, x := range loc.X {
			if math.Abs(x-c.prevX[i]) > c.step {
				settled = false
				break
			}
		}
	}
	if settled {
		c.count++
	} else {
		c.count = 0
	}
	c.prevF = loc.F
	copy(c.prevX, loc.X)
	if c.count >= c.iters {
		return optimize.FunctionConvergence
	}
	return optimize.NotTerminated
}

//Minimize runs a Nelder-Mead simplex search on obj starting from
//guess. The initial simplex is guess plus one vertex per coordinate,
//displaced by the relative perturbation in set. obj may return +Inf
//for infeasible trials (e.g. parameters whose expansion leaves the
//domain); the simplex simply moves away from those. Returns the best
//parameter vector found and its objective value.
//
//The search is inherently sequential, every trial depends on the
//previous ones, so Minimize runs entirely on the calling goroutine.
func Minimize(obj func([]float64) float64, guess []float64, set *Settings) ([]float64, float64, error) {
	if len(guess) == 0 {
		return nil, 0, basisopt.NewError(basisopt.KindConfiguration, "empty parameter vector", "Minimize")
	}
	set = set.fill()
	dim := len(guess)
	vertices := make([][]float64, dim+1)
	values := make([]float64, dim+1)
	vertices[0] = append([]float64{}, guess...)
	for i := 0; i < dim; i++ {
		v := append([]float64{}, guess...)
		if v[i] != 0 {
			v[i] *= 1 + set.Perturbation
		} else {
			v[i] = set.Perturbation
		}
		vertices[i+1] = v
	}
	for i, v := range vertices {
		values[i] = obj(v)
	}

	problem := optimize.Problem{Func: obj}
	method := &optimize.NelderMead{
		InitialVertices: vertices,
		InitialValues:   values,
	}
	settings := &optimize.Settings{
		MajorIterations: set.MaxIter,
		Converger: &stepConverge{
			abs:   set.Tol,
			step:  set.StepTol,
			iters: 10,
		},
	}
	result, err := optimize.Minimize(problem, guess, settings, method)
	if result == nil {
		return nil, 0, basisopt.NewError(basisopt.KindEvaluator, fmt.Sprintf("simplex search failed: %v", err), "Minimize")
	}
	//hitting the iteration cap is a usable outcome, not a failure
	if err != nil && result.Status != optimize.IterationLimit && result.Status != optimize.FunctionConvergence {
		return result.X, result.F, basisopt.NewError(basisopt.KindEvaluator, fmt.Sprintf("simplex search stopped: %v", err), "Minimize")
	}
	return result.X, result.F, nil
}
