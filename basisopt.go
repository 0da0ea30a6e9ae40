/*
 * basisopt.go, part of basisopt.
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
	"strings"
)

//AngularMomentum labels a shell: s, p, d, etc. Only a small, fixed set
//is supported, which covers everything a Gaussian basis optimization
//will realistically touch.
type AngularMomentum int

const (
	S AngularMomentum = iota
	P
	D
	F
	G
	H
	I
)

var amNames = []string{"s", "p", "d", "f", "g", "h", "i"}

func (l AngularMomentum) String() string {
	if l < 0 || int(l) >= len(amNames) {
		return fmt.Sprintf("l=%d", int(l))
	}
	return amNames[l]
}

//AMFromString returns the AngularMomentum for a one-letter label.
//It fails with a Parse-kind error on anything it doesn't know.
func AMFromString(label string) (AngularMomentum, error) {
	for i, v := range amNames {
		if v == strings.ToLower(label) {
			return AngularMomentum(i), nil
		}
	}
	return 0, NewError(KindParse, fmt.Sprintf("unknown angular momentum label %q", label), "AMFromString")
}

//Shell is a group of basis functions sharing one angular momentum.
//Exps are the exponents of the primitive Gaussians, Coefs contains one
//or more contraction rows, each of the same length as Exps.
type Shell struct {
	L     AngularMomentum
	Exps  []float64
	Coefs [][]float64
}

//NewShell returns an uncontracted shell with the given exponents.
//The exponents are validated: there must be at least one, and all must
//be positive and finite.
func NewShell(l AngularMomentum, exps []float64) (*Shell, error) {
	sh := &Shell{L: l, Exps: exps}
	sh.Uncontract()
	if err := sh.Validate(); err != nil {
		return nil, errDecorate(err, "NewShell")
	}
	return sh, nil
}

//Validate checks the shell invariants: at least one positive, finite
//exponent, and every coefficient row of the same length as the exponents.
func (sh *Shell) Validate() error {
	if len(sh.Exps) < 1 {
		return NewError(KindDomain, fmt.Sprintf("%s shell has no exponents", sh.L), "Shell.Validate")
	}
	for _, e := range sh.Exps {
		if e <= 0 || math.IsInf(e, 0) || math.IsNaN(e) {
			return NewError(KindDomain, fmt.Sprintf("%s shell has a non-positive or non-finite exponent %v", sh.L, e), "Shell.Validate")
		}
	}
	for i, row := range sh.Coefs {
		if len(row) != len(sh.Exps) {
			return NewError(KindDomain, fmt.Sprintf("%s shell: coefficient row %d has %d entries for %d exponents", sh.L, i, len(row), len(sh.Exps)), "Shell.Validate")
		}
	}
	return nil
}

//Uncontract overwrites the contraction coefficients with the identity
//pattern, one row per primitive. This is the representation used
//throughout an optimization.
func (sh *Shell) Uncontract() {
	n := len(sh.Exps)
	sh.Coefs = make([][]float64, n)
	for i := range sh.Coefs {
		row := make([]float64, n)
		row[i] = 1.0
		sh.Coefs[i] = row
	}
}

//NExps returns the number of primitives in the shell.
func (sh *Shell) NExps() int {
	return len(sh.Exps)
}

//Copy returns a deep copy of the shell.
func (sh *Shell) Copy() *Shell {
	n := &Shell{L: sh.L}
	n.Exps = append([]float64{}, sh.Exps...)
	n.Coefs = make([][]float64, len(sh.Coefs))
	for i, row := range sh.Coefs {
		n.Coefs[i] = append([]float64{}, row...)
	}
	return n
}

//Basis maps an element symbol to its shells, kept in ascending angular
//momentum order. In the primitive representation used during
//optimization there is at most one shell per angular momentum.
type Basis map[string][]*Shell

//NewBasis returns an empty basis.
func NewBasis() Basis {
	return make(Basis)
}

//Shells returns the shell list for an element, or nil if the element
//is not in the basis.
func (b Basis) Shells(element string) []*Shell {
	return b[NormalizeSymbol(element)]
}

//SetShells validates and installs the shell list for an element,
//sorting it by angular momentum. It fails if two shells share an
//angular momentum or if any shell is invalid.
func (b Basis) SetShells(element string, shells []*Shell) error {
	seen := make(map[AngularMomentum]bool)
	for _, sh := range shells {
		if err := sh.Validate(); err != nil {
			return errDecorate(err, "SetShells")
		}
		if seen[sh.L] {
			return NewError(KindDomain, fmt.Sprintf("duplicate %s shell for %s", sh.L, element), "SetShells")
		}
		seen[sh.L] = true
	}
	sorted := append([]*Shell{}, shells...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].L < sorted[j].L })
	b[NormalizeSymbol(element)] = sorted
	return nil
}

//Shell returns the shell with angular momentum l for an element, or
//nil if there is none.
func (b Basis) Shell(element string, l AngularMomentum) *Shell {
	for _, sh := range b.Shells(element) {
		if sh.L == l {
			return sh
		}
	}
	return nil
}

//SetExps replaces the exponents of one shell, leaving it uncontracted.
//The replacement is validated before anything is touched.
func (b Basis) SetExps(element string, l AngularMomentum, exps []float64) error {
	sh := b.Shell(element, l)
	if sh == nil {
		return NewError(KindDomain, fmt.Sprintf("no %s shell for %s", l, element), "SetExps")
	}
	tmp := &Shell{L: l, Exps: exps}
	tmp.Uncontract()
	if err := tmp.Validate(); err != nil {
		return errDecorate(err, "SetExps")
	}
	sh.Exps = tmp.Exps
	sh.Coefs = tmp.Coefs
	return nil
}

//SetCoefs replaces the contraction coefficients of one shell.
func (b Basis) SetCoefs(element string, l AngularMomentum, coefs [][]float64) error {
	sh := b.Shell(element, l)
	if sh == nil {
		return NewError(KindDomain, fmt.Sprintf("no %s shell for %s", l, element), "SetCoefs")
	}
	tmp := &Shell{L: l, Exps: sh.Exps, Coefs: coefs}
	if err := tmp.Validate(); err != nil {
		return errDecorate(err, "SetCoefs")
	}
	sh.Coefs = coefs
	return nil
}

//Copy returns a deep copy of the basis.
func (b Basis) Copy() Basis {
	n := NewBasis()
	for el, shells := range b {
		cp := make([]*Shell, len(shells))
		for i, sh := range shells {
			cp[i] = sh.Copy()
		}
		n[el] = cp
	}
	return n
}

//Merge returns a new basis with the elements of b plus any element of
//other that b lacks. b wins on conflicts. It is meant for assembling a
//basis covering several elements from per-element optimizations, and
//for side-by-side comparison of bases.
func (b Basis) Merge(other Basis) Basis {
	n := b.Copy()
	for el, shells := range other {
		if _, ok := n[el]; ok {
			continue
		}
		cp := make([]*Shell, len(shells))
		for i, sh := range shells {
			cp[i] = sh.Copy()
		}
		n[el] = cp
	}
	return n
}

//Elements returns the element symbols present in the basis, sorted.
func (b Basis) Elements() []string {
	els := make([]string, 0, len(b))
	for el := range b {
		els = append(els, el)
	}
	sort.Strings(els)
	return els
}

//Equal reports whether two bases hold exactly the same elements,
//shells, exponents and coefficients. Floats are compared exactly; this
//is meant for round-trip checks, not for numerical comparisons.
func (b Basis) Equal(other Basis) bool {
	if len(b) != len(other) {
		return false
	}
	for el, shells := range b {
		os, ok := other[el]
		if !ok || len(os) != len(shells) {
			return false
		}
		for i, sh := range shells {
			if !shellEqual(sh, os[i]) {
				return false
			}
		}
	}
	return true
}

func shellEqual(a, c *Shell) bool {
	if a.L != c.L || len(a.Exps) != len(c.Exps) || len(a.Coefs) != len(c.Coefs) {
		return false
	}
	for i := range a.Exps {
		if a.Exps[i] != c.Exps[i] {
			return false
		}
	}
	for i := range a.Coefs {
		if len(a.Coefs[i]) != len(c.Coefs[i]) {
			return false
		}
		for j := range a.Coefs[i] {
			if a.Coefs[i][j] != c.Coefs[i][j] {
				return false
			}
		}
	}
	return true
}

//NormalizeSymbol puts an element symbol in the usual capitalization,
//i.e. "ne" and "NE" both become "Ne".
func NormalizeSymbol(symbol string) string {
	if symbol == "" {
		return symbol
	}
	return strings.ToUpper(symbol[:1]) + strings.ToLower(symbol[1:])
}
