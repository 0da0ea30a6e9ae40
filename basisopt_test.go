/*
 * basisopt_test.go, part of basisopt.
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
	"testing"
)

func TestShellValidation(Te *testing.T) {
	if _, err := NewShell(S, []float64{0.5, 2.0}); err != nil {
		Te.Error(err)
	}
	if _, err := NewShell(S, []float64{}); err == nil {
		Te.Error("empty shell accepted")
	}
	if _, err := NewShell(S, []float64{0.5, -2.0}); err == nil {
		Te.Error("negative exponent accepted")
	}
	sh, _ := NewShell(P, []float64{0.5, 2.0})
	sh.Coefs = [][]float64{{1.0}}
	if err := sh.Validate(); err == nil {
		Te.Error("short coefficient row accepted")
	}
}

func TestSetShellsOrderAndDuplicates(Te *testing.T) {
	b := NewBasis()
	p, _ := NewShell(P, []float64{0.7})
	s, _ := NewShell(S, []float64{0.3, 1.1})
	if err := b.SetShells("ne", []*Shell{p, s}); err != nil {
		Te.Fatal(err)
	}
	shells := b.Shells("Ne")
	if len(shells) != 2 || shells[0].L != S || shells[1].L != P {
		Te.Errorf("shells not sorted by angular momentum: %v", shells)
	}
	s2, _ := NewShell(S, []float64{0.4})
	if err := b.SetShells("Ne", []*Shell{s, s2}); err == nil {
		Te.Error("duplicate s shell accepted")
	}
}

func TestSetExpsLeavesShellOnFailure(Te *testing.T) {
	b := NewBasis()
	s, _ := NewShell(S, []float64{0.3, 1.1})
	b.SetShells("H", []*Shell{s})
	if err := b.SetExps("H", S, []float64{0.5, -1.0}); err == nil {
		Te.Fatal("invalid replacement accepted")
	}
	got := b.Shell("H", S).Exps
	if len(got) != 2 || got[0] != 0.3 || got[1] != 1.1 {
		Te.Errorf("failed SetExps touched the shell: %v", got)
	}
	if err := b.SetExps("H", P, []float64{0.5}); err == nil {
		Te.Error("SetExps on a missing shell accepted")
	}
}

func TestCopyIsDeep(Te *testing.T) {
	b := NewBasis()
	s, _ := NewShell(S, []float64{0.3, 1.1})
	b.SetShells("H", []*Shell{s})
	cp := b.Copy()
	cp.Shell("H", S).Exps[0] = 99.0
	if b.Shell("H", S).Exps[0] != 0.3 {
		Te.Error("Copy shares exponent storage with the original")
	}
	if !b.Equal(b.Copy()) {
		Te.Error("a fresh copy does not compare equal")
	}
}

func TestMerge(Te *testing.T) {
	a := NewBasis()
	sa, _ := NewShell(S, []float64{0.3})
	a.SetShells("H", []*Shell{sa})
	c := NewBasis()
	sc, _ := NewShell(S, []float64{0.9})
	c.SetShells("H", []*Shell{sc})
	so, _ := NewShell(S, []float64{1.5})
	c.SetShells("He", []*Shell{so})
	m := a.Merge(c)
	if m.Shell("H", S).Exps[0] != 0.3 {
		Te.Error("Merge did not keep the receiver's shell on conflict")
	}
	if m.Shell("He", S) == nil {
		Te.Error("Merge dropped a new element")
	}
	if len(m.Elements()) != 2 {
		Te.Errorf("expected 2 elements, got %v", m.Elements())
	}
}

func TestSymbolsAndLabels(Te *testing.T) {
	for in, want := range map[string]string{"ne": "Ne", "NE": "Ne", "h": "H", "": ""} {
		if got := NormalizeSymbol(in); got != want {
			Te.Errorf("NormalizeSymbol(%q) = %q, want %q", in, got, want)
		}
	}
	l, err := AMFromString("D")
	if err != nil || l != D {
		Te.Errorf("AMFromString(D) = %v, %v", l, err)
	}
	if _, err := AMFromString("x"); KindOf(err) != KindParse {
		Te.Errorf("bad label should give a parse error, got %v", err)
	}
	if D.String() != "d" {
		Te.Errorf("D prints as %q", D.String())
	}
}

func TestErrorKinds(Te *testing.T) {
	err := NewError(KindDomain, "out of range", "TestErrorKinds")
	if KindOf(err) != KindDomain {
		Te.Errorf("KindOf lost the kind: %v", KindOf(err))
	}
	dec := errDecorate(err, "caller2")
	if KindOf(dec) != KindDomain {
		Te.Error("decoration changed the kind")
	}
	if KindOf(nil) != 0 {
		Te.Error("KindOf(nil) should be 0")
	}
	if _, err := AtomicNumber("Xx"); KindOf(err) != KindConfiguration {
		Te.Errorf("unknown element should be a configuration error, got %v", err)
	}
}

func TestAtomicData(Te *testing.T) {
	z, err := AtomicNumber("ne")
	if err != nil || z != 10 {
		Te.Errorf("AtomicNumber(ne) = %d, %v", z, err)
	}
	cfg, err := MinimalConfig("Ne")
	if err != nil {
		Te.Fatal(err)
	}
	if len(cfg) != 2 {
		Te.Errorf("Ne minimal config should have s and p shells, got %v", cfg)
	}
}
