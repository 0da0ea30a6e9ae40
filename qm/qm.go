/*
 * qm.go, part of basisopt.
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

//Package qm defines the contract between the optimization engine and
//the external quantum chemistry programs that do the actual
//computing. The engine only ever sees the Evaluator interface; the
//per-program adapters (input generation, process handling, output
//parsing) live with their programs, outside this module.
package qm

import (
	"fmt"
	"strings"

	"github.com/robashaw/basisopt"
)

//Molecule is the minimal system specification an evaluator needs: the
//atoms, their positions, and the electronic state. For single-atom
//basis optimization Coords may be left nil, meaning all atoms at the
//origin.
type Molecule struct {
	Name    string
	Symbols []string
	Coords  [][3]float64
	Charge  int
	Multi   int
}

//NewAtom returns a Molecule holding a single atom at the origin, the
//usual target of an atomic basis optimization.
func NewAtom(symbol string, charge, multi int) *Molecule {
	s := basisopt.NormalizeSymbol(symbol)
	return &Molecule{
		Name:    s + "_atom",
		Symbols: []string{s},
		Charge:  charge,
		Multi:   multi,
	}
}

//XYZString returns the molecule in xyz format, for building program
//inputs.
func (M *Molecule) XYZString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n%s\n", len(M.Symbols), M.Name)
	for i, s := range M.Symbols {
		var c [3]float64
		if M.Coords != nil {
			c = M.Coords[i]
		}
		fmt.Fprintf(&b, "%-3s %12.8f %12.8f %12.8f\n", s, c[0], c[1], c[2])
	}
	return b.String()
}

//Evaluator is the contract with the external calculation backend. The
//engine treats it as an opaque, possibly expensive and possibly flaky
//oracle: same inputs and same backend configuration give the same
//output within numerical noise, nothing more is assumed. Errors are
//never retried here; if a backend wants retries it does them itself.
type Evaluator interface {

	//Usable reports whether the backend can run calculations at all.
	//A non-usable backend still allows basis manipulation and
	//visualization, but any optimization attached to it must fail
	//fast during setup.
	Usable() bool

	//Available reports whether the backend can compute the named
	//property (e.g. "energy", "dipole") with the named method
	//(e.g. "hf", "ccsd(t)").
	Available(method, property string) bool

	//Evaluate computes the property for the molecule with the given
	//basis and method, returning a scalar. It may block for as long
	//as an external program takes to run.
	Evaluate(b basisopt.Basis, mol *Molecule, method, property string) (float64, error)
}

//None is the degraded, calculation-free backend, for when only basis
//manipulation or visualization is wanted.
type None struct{}

func (n None) Usable() bool { return false }

func (n None) Available(method, property string) bool { return false }

func (n None) Evaluate(b basisopt.Basis, mol *Molecule, method, property string) (float64, error) {
	return 0, basisopt.NewError(basisopt.KindConfiguration, "no calculation backend available", "None.Evaluate")
}
