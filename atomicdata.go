/*
 * atomicdata.go, part of basisopt.
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

import "fmt"

//A map for assigning atomic numbers to elements.
//Note that just the first four rows are present, which is where basis
//set development actually happens without ECPs.
var symbolZ = map[string]int{
	"H": 1, "He": 2,
	"Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
	"Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17, "Ar": 18,
	"K": 19, "Ca": 20, "Sc": 21, "Ti": 22, "V": 23, "Cr": 24, "Mn": 25,
	"Fe": 26, "Co": 27, "Ni": 28, "Cu": 29, "Zn": 30, "Ga": 31, "Ge": 32,
	"As": 33, "Se": 34, "Br": 35, "Kr": 36,
}

//A map from element to the number of occupied subshells per angular
//momentum in the ground state, in ascending l order. This is the
//minimal basis configuration: e.g. Ne (1s2s2p) needs 2 s-type and 1
//p-type contracted function.
var symbolMinimal = map[string][]int{
	"H": {1}, "He": {1},
	"Li": {2}, "Be": {2},
	"B": {2, 1}, "C": {2, 1}, "N": {2, 1}, "O": {2, 1}, "F": {2, 1}, "Ne": {2, 1},
	"Na": {3, 1}, "Mg": {3, 1},
	"Al": {3, 2}, "Si": {3, 2}, "P": {3, 2}, "S": {3, 2}, "Cl": {3, 2}, "Ar": {3, 2},
	"K": {4, 2}, "Ca": {4, 2},
	"Sc": {4, 2, 1}, "Ti": {4, 2, 1}, "V": {4, 2, 1}, "Cr": {4, 2, 1},
	"Mn": {4, 2, 1}, "Fe": {4, 2, 1}, "Co": {4, 2, 1}, "Ni": {4, 2, 1},
	"Cu": {4, 2, 1}, "Zn": {4, 2, 1},
	"Ga": {4, 3, 1}, "Ge": {4, 3, 1}, "As": {4, 3, 1}, "Se": {4, 3, 1},
	"Br": {4, 3, 1}, "Kr": {4, 3, 1},
}

//AtomicNumber returns the atomic number for an element symbol, in any
//capitalization. Fails with a Configuration-kind error for unknown
//symbols.
func AtomicNumber(symbol string) (int, error) {
	z, ok := symbolZ[NormalizeSymbol(symbol)]
	if !ok {
		return 0, NewError(KindConfiguration, fmt.Sprintf("unknown element %q", symbol), "AtomicNumber")
	}
	return z, nil
}

//MinimalConfig returns the minimal basis configuration for an element,
//as the number of contracted functions needed per angular momentum in
//ascending l order. The length of the slice is the number of angular
//momentum shells a basis for this element needs at minimum.
func MinimalConfig(symbol string) ([]int, error) {
	c, ok := symbolMinimal[NormalizeSymbol(symbol)]
	if !ok {
		return nil, NewError(KindConfiguration, fmt.Sprintf("no minimal configuration for element %q", symbol), "MinimalConfig")
	}
	return append([]int{}, c...), nil
}
