/*
 * model.go, part of basisopt.
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

package qm

import (
	"fmt"
	"math"

	"github.com/robashaw/basisopt"
	"gonum.org/v1/gonum/mat"
)

//Model is an analytic stand-in for a real quantum chemistry program.
//It exists so the engine can be exercised, and its strategies tested,
//without an external code installed. The model mimics how a basis set
//saturates: each shell accumulates a completeness score
//	S_l = sum_i w(a_i),   w(a) = 1/(1 + 0.1*ln(a)^2)
//and the "energy" approaches Limit from above as
//	E = Limit + sum_l W_l * exp(-S_l)
//Adding any primitive strictly lowers the error, with diminishing
//returns far from a ~ 1, which is qualitatively what a variational
//energy does.
type Model struct {
	//Limit is the asymptotic value, playing the role of the
	//complete-basis-set limit.
	Limit float64
	//Weights holds the per-angular-momentum error prefactors W_l.
	//Nil means the default 0.1*0.3^l.
	Weights []float64
}

var modelMethods = map[string][]string{
	"hf":  {"energy", "dipole"},
	"scf": {"energy", "dipole"},
}

//NewModel returns a Model with the given asymptotic value and default
//weights.
func NewModel(limit float64) *Model {
	return &Model{Limit: limit}
}

func (M *Model) Usable() bool { return true }

func (M *Model) Available(method, property string) bool {
	props, ok := modelMethods[method]
	if !ok {
		return false
	}
	for _, p := range props {
		if p == property {
			return true
		}
	}
	return false
}

func (M *Model) weight(l basisopt.AngularMomentum) float64 {
	if M.Weights != nil {
		if int(l) < len(M.Weights) {
			return M.Weights[l]
		}
		return 0
	}
	return 0.1 * math.Pow(0.3, float64(l))
}

func modelScore(exps []float64) float64 {
	s := 0.0
	for _, a := range exps {
		la := math.Log(a)
		s += 1.0 / (1.0 + 0.1*la*la)
	}
	return s
}

func (M *Model) Evaluate(b basisopt.Basis, mol *Molecule, method, property string) (float64, error) {
	if !M.Available(method, property) {
		return 0, basisopt.NewError(basisopt.KindEvaluator, fmt.Sprintf("model backend cannot compute %s with %s", property, method), "Model.Evaluate")
	}
	if len(mol.Symbols) == 0 {
		return 0, basisopt.NewError(basisopt.KindEvaluator, "empty molecule", "Model.Evaluate")
	}
	deficit := 0.0
	for _, el := range mol.Symbols {
		shells := b.Shells(el)
		if shells == nil {
			return 0, basisopt.NewError(basisopt.KindEvaluator, fmt.Sprintf("no basis for %s", el), "Model.Evaluate")
		}
		for _, sh := range shells {
			deficit += M.weight(sh.L) * math.Exp(-modelScore(sh.Exps))
		}
	}
	switch property {
	case "energy":
		return M.Limit + deficit, nil
	case "dipole":
		return 0.5 * deficit, nil
	}
	return 0, basisopt.NewError(basisopt.KindEvaluator, fmt.Sprintf("unknown property %q", property), "Model.Evaluate")
}

//Hydrogenic computes the actual Rayleigh-Ritz ground state energy of a
//one-electron atom in the s-type Gaussians of the given basis,
//using the closed-form overlap, kinetic and nuclear attraction
//integrals for unnormalized s primitives. The exact limit is -Z^2/2
//Hartree, so this backend gives the engine a real variational problem
//to chew on with no external program involved. Shells above l=0 are
//ignored: a one-electron ground state is pure s.
type Hydrogenic struct{}

var hydrogenicMethods = map[string][]string{
	"hf": {"energy"},
}

func (hy Hydrogenic) Usable() bool { return true }

func (hy Hydrogenic) Available(method, property string) bool {
	props, ok := hydrogenicMethods[method]
	if !ok {
		return false
	}
	for _, p := range props {
		if p == property {
			return true
		}
	}
	return false
}

func (hy Hydrogenic) Evaluate(b basisopt.Basis, mol *Molecule, method, property string) (float64, error) {
	if !hy.Available(method, property) {
		return 0, basisopt.NewError(basisopt.KindEvaluator, fmt.Sprintf("hydrogenic backend cannot compute %s with %s", property, method), "Hydrogenic.Evaluate")
	}
	if len(mol.Symbols) != 1 {
		return 0, basisopt.NewError(basisopt.KindEvaluator, "hydrogenic backend only handles single atoms", "Hydrogenic.Evaluate")
	}
	z, err := basisopt.AtomicNumber(mol.Symbols[0])
	if err != nil {
		return 0, err
	}
	sh := b.Shell(mol.Symbols[0], basisopt.S)
	if sh == nil {
		return 0, basisopt.NewError(basisopt.KindEvaluator, fmt.Sprintf("no s shell for %s", mol.Symbols[0]), "Hydrogenic.Evaluate")
	}
	exps := sh.Exps
	n := len(exps)
	s := mat.NewSymDense(n, nil)
	h := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			aij := exps[i] + exps[j]
			sij := math.Pow(math.Pi/aij, 1.5)
			tij := 3 * exps[i] * exps[j] * math.Pow(math.Pi, 1.5) / math.Pow(aij, 2.5)
			vij := -2 * math.Pi * float64(z) / aij
			s.SetSym(i, j, sij)
			h.Set(i, j, tij+vij)
			h.Set(j, i, tij+vij)
		}
	}
	//solve the generalized problem Hc = ESc as S^-1*H; the
	//eigenvalues are real since the pencil is symmetric definite.
	var chol mat.Cholesky
	if ok := chol.Factorize(s); !ok {
		//near-degenerate exponents make S numerically singular; the
		//trial is infeasible, not fatal
		return 0, basisopt.NewError(basisopt.KindDomain, "overlap matrix not positive definite (linearly dependent exponents)", "Hydrogenic.Evaluate")
	}
	var m mat.Dense
	if err := chol.SolveTo(&m, h); err != nil {
		return 0, basisopt.NewError(basisopt.KindDomain, err.Error(), "Hydrogenic.Evaluate")
	}
	var eig mat.Eigen
	if ok := eig.Factorize(&m, mat.EigenNone); !ok {
		return 0, basisopt.NewError(basisopt.KindEvaluator, "eigendecomposition failed", "Hydrogenic.Evaluate")
	}
	vals := eig.Values(nil)
	min := math.Inf(1)
	for _, v := range vals {
		if real(v) < min {
			min = real(v)
		}
	}
	return min, nil
}
