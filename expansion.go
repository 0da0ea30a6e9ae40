/*
 * expansion.go, part of basisopt.
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

package basisopt

import (
	"fmt"
	"math"
	"sort"
)

//Parameterized exponent expansions. These are pure functions: a small
//parameter vector in, an explicit exponent list out. They never touch
//an evaluator.

//ETParams holds even-tempered expansion parameters for one shell.
//The expanded exponents are Alpha*K^(i-1) for i=1..N.
type ETParams struct {
	Alpha float64
	K     float64
	N     int
}

//WTParams holds well-tempered expansion parameters for one shell.
//The expanded exponents are Alpha*K^(i-1)*(1+Gamma*(i/N)^Delta)
//for i=1..N. With Gamma=0 this reduces to the even-tempered sequence.
type WTParams struct {
	Alpha float64
	K     float64
	Gamma float64
	Delta float64
	N     int
}

//EvenTempered expands (alpha, k, n) into n exponents following the
//geometric progression alpha*k^(i-1), i=1..n. It fails with a
//Domain-kind error if n < 1 or any generated exponent is non-positive
//or non-finite.
func EvenTempered(alpha, k float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, NewError(KindDomain, fmt.Sprintf("even-tempered expansion needs n >= 1, got %d", n), "EvenTempered")
	}
	exps := make([]float64, n)
	for i := 0; i < n; i++ {
		exps[i] = alpha * math.Pow(k, float64(i))
	}
	if err := checkExps(exps); err != nil {
		return nil, errDecorate(err, "EvenTempered")
	}
	return exps, nil
}

//WellTempered expands (alpha, k, gamma, delta, n) into n exponents
//following alpha*k^(i-1)*(1+gamma*(i/n)^delta), i=1..n. Same failure
//modes as EvenTempered.
func WellTempered(alpha, k, gamma, delta float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, NewError(KindDomain, fmt.Sprintf("well-tempered expansion needs n >= 1, got %d", n), "WellTempered")
	}
	exps := make([]float64, n)
	for i := 1; i <= n; i++ {
		mod := 1 + gamma*math.Pow(float64(i)/float64(n), delta)
		exps[i-1] = alpha * math.Pow(k, float64(i-1)) * mod
	}
	if err := checkExps(exps); err != nil {
		return nil, errDecorate(err, "WellTempered")
	}
	return exps, nil
}

func checkExps(exps []float64) error {
	for _, e := range exps {
		if e <= 0 || math.IsInf(e, 0) || math.IsNaN(e) {
			return NewError(KindDomain, fmt.Sprintf("expansion produced a non-positive or non-finite exponent %v", e))
		}
	}
	return nil
}

//ETExpansion builds uncontracted shells, one per parameter set, in
//ascending angular momentum (the first set is the s shell, the second
//p, and so on).
func ETExpansion(params []ETParams) ([]*Shell, error) {
	shells := make([]*Shell, 0, len(params))
	for i, p := range params {
		exps, err := EvenTempered(p.Alpha, p.K, p.N)
		if err != nil {
			return nil, errDecorate(err, "ETExpansion")
		}
		sh, err := NewShell(AngularMomentum(i), exps)
		if err != nil {
			return nil, errDecorate(err, "ETExpansion")
		}
		shells = append(shells, sh)
	}
	return shells, nil
}

//WTExpansion is ETExpansion for well-tempered parameter sets.
func WTExpansion(params []WTParams) ([]*Shell, error) {
	shells := make([]*Shell, 0, len(params))
	for i, p := range params {
		exps, err := WellTempered(p.Alpha, p.K, p.Gamma, p.Delta, p.N)
		if err != nil {
			return nil, errDecorate(err, "WTExpansion")
		}
		sh, err := NewShell(AngularMomentum(i), exps)
		if err != nil {
			return nil, errDecorate(err, "WTExpansion")
		}
		shells = append(shells, sh)
	}
	return shells, nil
}

//FixRatio returns a sorted copy of exps where the ratio between
//successive exponents is at least ratio. Near-degenerate primitives
//cause linear dependence problems in the evaluator, this spaces them
//out.
func FixRatio(exps []float64, ratio float64) []float64 {
	out := append([]float64{}, exps...)
	sort.Float64s(out)
	for i := 0; i < len(out)-1; i++ {
		if out[i+1]/out[i] < ratio {
			out[i+1] = out[i] * ratio
		}
	}
	return out
}
