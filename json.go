/*
 * json.go, part of basisopt.
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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

//The persisted basis format: a JSON object keyed by element symbol,
//each element holding an ordered list of shells. This is the format
//used for exchanging bases between runs and with external tools, and
//it round-trips: ReadBasis(WriteBasis(b)) is value-equal to b.

//JSONShell is the serialized form of a Shell.
type JSONShell struct {
	AngularMomentum string      `json:"angular_momentum"`
	Exponents       []float64   `json:"exponents"`
	Coefficients    [][]float64 `json:"coefficients"`
}

//WriteBasis serializes a basis to out as JSON. Elements appear in
//sorted order, shells in ascending angular momentum.
func WriteBasis(b Basis, out io.Writer) error {
	doc := make(map[string][]JSONShell, len(b))
	for el, shells := range b {
		js := make([]JSONShell, len(shells))
		for i, sh := range shells {
			js[i] = JSONShell{
				AngularMomentum: sh.L.String(),
				Exponents:       sh.Exps,
				Coefficients:    sh.Coefs,
			}
		}
		doc[el] = js
	}
	enc := json.NewEncoder(out)
	if err := enc.Encode(doc); err != nil {
		return NewError(KindParse, err.Error(), "WriteBasis")
	}
	return nil
}

//ReadBasis deserializes a basis from in. On any malformed input
//(missing field, mismatched coefficient/exponent lengths, non-numeric
//exponent) it fails with a Parse-kind error and returns nil, so no
//partially built basis ever escapes.
func ReadBasis(in io.Reader) (Basis, error) {
	var doc map[string][]JSONShell
	dec := json.NewDecoder(in)
	if err := dec.Decode(&doc); err != nil {
		return nil, NewError(KindParse, err.Error(), "ReadBasis")
	}
	b := NewBasis()
	for el, js := range doc {
		shells := make([]*Shell, 0, len(js))
		for _, j := range js {
			if j.AngularMomentum == "" {
				return nil, NewError(KindParse, fmt.Sprintf("%s: shell without angular_momentum", el), "ReadBasis")
			}
			if len(j.Exponents) == 0 {
				return nil, NewError(KindParse, fmt.Sprintf("%s: %s shell without exponents", el, j.AngularMomentum), "ReadBasis")
			}
			l, err := AMFromString(j.AngularMomentum)
			if err != nil {
				return nil, errDecorate(err, "ReadBasis")
			}
			sh := &Shell{L: l, Exps: j.Exponents, Coefs: j.Coefficients}
			if len(sh.Coefs) == 0 {
				sh.Uncontract()
			}
			if err := sh.Validate(); err != nil {
				return nil, NewError(KindParse, err.Error(), "ReadBasis")
			}
			shells = append(shells, sh)
		}
		if err := b.SetShells(el, shells); err != nil {
			return nil, NewError(KindParse, err.Error(), "ReadBasis")
		}
	}
	return b, nil
}

//SaveBasis writes a basis to a file. Files ending in .gz are
//compressed, which matters for the near-saturated starting bases fed
//to the reduction strategy.
func SaveBasis(b Basis, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return NewError(KindParse, err.Error(), "SaveBasis")
	}
	defer f.Close()
	var out io.Writer = f
	if strings.HasSuffix(filename, ".gz") {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		out = gz
	}
	return errDecorate(WriteBasis(b, out), "SaveBasis")
}

//LoadBasis reads a basis from a file written by SaveBasis, compressed
//or not.
func LoadBasis(filename string) (Basis, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, NewError(KindParse, err.Error(), "LoadBasis")
	}
	defer f.Close()
	var in io.Reader = f
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, NewError(KindParse, err.Error(), "LoadBasis")
		}
		defer gz.Close()
		in = gz
	}
	b, err := ReadBasis(in)
	return b, errDecorate(err, "LoadBasis")
}
