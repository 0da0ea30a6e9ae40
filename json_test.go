/*
 * json_test.go, part of basisopt.
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
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func contractedTestBasis(Te *testing.T) Basis {
	b := NewBasis()
	s, err := NewShell(S, []float64{38.5, 5.77, 1.24, 0.30})
	if err != nil {
		Te.Fatal(err)
	}
	//two contracted functions over the four primitives
	s.Coefs = [][]float64{
		{0.024, 0.155, 0.469, 0.513},
		{0.0, 0.0, -0.12, 1.03},
	}
	p, err := NewShell(P, []float64{1.13, 0.29})
	if err != nil {
		Te.Fatal(err)
	}
	if err := b.SetShells("O", []*Shell{s, p}); err != nil {
		Te.Fatal(err)
	}
	return b
}

func TestBasisRoundTrip(Te *testing.T) {
	b := contractedTestBasis(Te)
	var buf bytes.Buffer
	if err := WriteBasis(b, &buf); err != nil {
		Te.Fatal(err)
	}
	got, err := ReadBasis(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if !b.Equal(got) {
		Te.Error("basis did not survive the round trip")
	}
}

func TestReadBasisUncontracts(Te *testing.T) {
	raw := `{"H": [{"angular_momentum": "s", "exponents": [13.0, 1.96, 0.44]}]}`
	b, err := ReadBasis(strings.NewReader(raw))
	if err != nil {
		Te.Fatal(err)
	}
	sh := b.Shell("H", S)
	if sh == nil || len(sh.Coefs) != 3 {
		Te.Fatalf("shell without coefficients should come back uncontracted, got %v", sh)
	}
	if sh.Coefs[1][1] != 1.0 || sh.Coefs[1][0] != 0.0 {
		Te.Error("uncontracted coefficients are not the identity pattern")
	}
}

func TestReadBasisRejectsMalformed(Te *testing.T) {
	bad := []string{
		`{"H": [{"exponents": [1.0]}]}`,
		`{"H": [{"angular_momentum": "s"}]}`,
		`{"H": [{"angular_momentum": "z", "exponents": [1.0]}]}`,
		`{"H": [{"angular_momentum": "s", "exponents": [1.0, -2.0]}]}`,
		`{"H": [{"angular_momentum": "s", "exponents": [1.0], "coefficients": [[0.3, 0.2]]}]}`,
		`{"H": [{"angular_momentum": "s", "exponents": [1.0]}, {"angular_momentum": "s", "exponents": [2.0]}]}`,
		`not json at all`,
	}
	for i, raw := range bad {
		b, err := ReadBasis(strings.NewReader(raw))
		if err == nil {
			Te.Errorf("case %d: malformed input accepted", i)
			continue
		}
		if KindOf(err) != KindParse {
			Te.Errorf("case %d: expected a parse error, got %v", i, err)
		}
		if b != nil {
			Te.Errorf("case %d: partial basis escaped", i)
		}
	}
}

func TestSaveLoadCompressed(Te *testing.T) {
	b := contractedTestBasis(Te)
	dir := Te.TempDir()
	for _, name := range []string{"basis.json", "basis.json.gz"} {
		path := filepath.Join(dir, name)
		if err := SaveBasis(b, path); err != nil {
			Te.Fatal(err)
		}
		got, err := LoadBasis(path)
		if err != nil {
			Te.Fatal(err)
		}
		if !b.Equal(got) {
			Te.Errorf("%s: basis did not survive the file round trip", name)
		}
	}
}
