/*
 * qm_test.go, part of basisopt.
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
	"math"
	"strings"
	"testing"

	"github.com/robashaw/basisopt"
)

func singleShellBasis(Te *testing.T, el string, exps []float64) basisopt.Basis {
	b := basisopt.NewBasis()
	sh, err := basisopt.NewShell(basisopt.S, exps)
	if err != nil {
		Te.Fatal(err)
	}
	if err := b.SetShells(el, []*basisopt.Shell{sh}); err != nil {
		Te.Fatal(err)
	}
	return b
}

func TestNoneIsUnusable(Te *testing.T) {
	var n None
	if n.Usable() {
		Te.Error("the none backend claims to be usable")
	}
	if n.Available("hf", "energy") {
		Te.Error("the none backend claims hf/energy")
	}
	if _, err := n.Evaluate(basisopt.NewBasis(), NewAtom("H", 0, 2), "hf", "energy"); basisopt.KindOf(err) != basisopt.KindConfiguration {
		Te.Errorf("expected a configuration error, got %v", err)
	}
}

func TestMoleculeXYZ(Te *testing.T) {
	mol := NewAtom("ne", 0, 1)
	if mol.Symbols[0] != "Ne" {
		Te.Errorf("NewAtom did not normalize the symbol: %q", mol.Symbols[0])
	}
	xyz := mol.XYZString()
	if !strings.Contains(xyz, "Ne") {
		Te.Errorf("XYZ output lacks the element:\n%s", xyz)
	}
}

func TestModelSaturates(Te *testing.T) {
	m := NewModel(-10.0)
	mol := NewAtom("H", 0, 2)
	if !m.Usable() || !m.Available("hf", "energy") {
		Te.Fatal("model backend should do hf/energy")
	}
	prev := math.Inf(1)
	for n := 2; n <= 12; n += 2 {
		exps, err := basisopt.EvenTempered(0.05, 2.2, n)
		if err != nil {
			Te.Fatal(err)
		}
		e, err := m.Evaluate(singleShellBasis(Te, "H", exps), mol, "hf", "energy")
		if err != nil {
			Te.Fatal(err)
		}
		if e <= -10.0 {
			Te.Errorf("n=%d: model energy %v fell below its own limit", n, e)
		}
		if e >= prev {
			Te.Errorf("n=%d: adding primitives did not lower the energy (%v >= %v)", n, e, prev)
		}
		prev = e
	}
	if math.Abs(prev+10.0) > 1e-2 {
		Te.Errorf("12 primitives should nearly saturate the model, got %v", prev)
	}
}

func TestModelErrors(Te *testing.T) {
	m := NewModel(0)
	mol := NewAtom("H", 0, 2)
	if _, err := m.Evaluate(basisopt.NewBasis(), mol, "hf", "energy"); basisopt.KindOf(err) != basisopt.KindEvaluator {
		Te.Errorf("missing element basis should be an evaluator error, got %v", err)
	}
	b := singleShellBasis(Te, "H", []float64{1.0})
	if _, err := m.Evaluate(b, mol, "ccsd", "energy"); basisopt.KindOf(err) != basisopt.KindEvaluator {
		Te.Errorf("unsupported method should be an evaluator error, got %v", err)
	}
}

func TestHydrogenicSingleGaussian(Te *testing.T) {
	//one s Gaussian on hydrogen: the optimal exponent is 8/(9*pi)
	//and the energy -4/(3*pi), a classic closed-form result.
	var hy Hydrogenic
	mol := NewAtom("H", 0, 2)
	b := singleShellBasis(Te, "H", []float64{8.0 / (9.0 * math.Pi)})
	e, err := hy.Evaluate(b, mol, "hf", "energy")
	if err != nil {
		Te.Fatal(err)
	}
	want := -4.0 / (3.0 * math.Pi)
	if math.Abs(e-want) > 1e-10 {
		Te.Errorf("single Gaussian energy %v, want %v", e, want)
	}
}

func TestHydrogenicVariational(Te *testing.T) {
	var hy Hydrogenic
	mol := NewAtom("H", 0, 2)
	exps, err := basisopt.EvenTempered(0.05, 2.5, 8)
	if err != nil {
		Te.Fatal(err)
	}
	e, err := hy.Evaluate(singleShellBasis(Te, "H", exps), mol, "hf", "energy")
	if err != nil {
		Te.Fatal(err)
	}
	if e < -0.5 {
		Te.Errorf("energy %v below the exact -0.5, the bound is broken", e)
	}
	if math.Abs(e+0.4998792222656316) > 1e-9 {
		Te.Errorf("8 even-tempered primitives should give -0.49987922, got %v", e)
	}
	//helium cation, Z=2, exact limit -2
	he := NewAtom("He", 1, 1)
	exps, _ = basisopt.EvenTempered(0.1, 2.8, 8)
	e, err = hy.Evaluate(singleShellBasis(Te, "He", exps), he, "hf", "energy")
	if err != nil {
		Te.Fatal(err)
	}
	if e < -2.0 || math.Abs(e+1.9995485167735318) > 1e-8 {
		Te.Errorf("He+ energy %v, want about -1.99954852", e)
	}
}

func TestHydrogenicDegenerateExponents(Te *testing.T) {
	var hy Hydrogenic
	mol := NewAtom("H", 0, 2)
	b := singleShellBasis(Te, "H", []float64{1.0, 1.0})
	if _, err := hy.Evaluate(b, mol, "hf", "energy"); basisopt.KindOf(err) != basisopt.KindDomain {
		Te.Errorf("duplicate exponents should be an infeasible (domain) trial, got %v", err)
	}
}
