/*
 * opt_test.go, part of basisopt.
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

package opt

import (
	"math"
	"strings"
	"testing"

	"github.com/robashaw/basisopt"
)

func TestMinimizeQuadratic(Te *testing.T) {
	obj := func(x []float64) float64 {
		return (x[0]-1.0)*(x[0]-1.0) + (x[1]+2.0)*(x[1]+2.0)
	}
	x, f, err := Minimize(obj, []float64{0, 0}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(x[0]-1.0) > 1e-4 || math.Abs(x[1]+2.0) > 1e-4 {
		Te.Errorf("minimum at %v, want (1, -2)", x)
	}
	if f > 1e-7 {
		Te.Errorf("objective at the minimum is %v", f)
	}
}

func TestMinimizeDoesNotLoseTheStart(Te *testing.T) {
	//a spiky objective: the start is the global minimum and the
	//search must not return anything worse
	obj := func(x []float64) float64 {
		if x[0] == 0.5 {
			return -1.0
		}
		return x[0] * x[0]
	}
	_, f, err := Minimize(obj, []float64{0.5}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if f > -1.0 {
		Te.Errorf("search returned %v, worse than the starting point", f)
	}
}

func TestMinimizeRejectsBadInput(Te *testing.T) {
	if _, _, err := Minimize(func(x []float64) float64 { return 0 }, nil, nil); err == nil {
		Te.Error("empty guess accepted")
	}
}

func TestSettingsDefaults(Te *testing.T) {
	set := (&Settings{MaxIter: 10}).fill()
	if set.MaxIter != 10 {
		Te.Error("fill overwrote an explicit value")
	}
	if set.Tol <= 0 || set.Perturbation <= 0 {
		Te.Errorf("fill left zero defaults: %+v", set)
	}
	var nilSet *Settings
	if nilSet.fill().MaxIter != DefaultSettings().MaxIter {
		Te.Error("nil settings should give defaults")
	}
}

func TestDecodeOptions(Te *testing.T) {
	var c Config
	opts := map[string]any{
		"element":    "ne",
		"accuracy":   1e-4,
		"max_n":      18,
		"shell_mins": []int{10},
		"parallel":   true,
		"workers":    4,
		"params":     map[string]any{"max_iter": 250},
	}
	if err := DecodeOptions(opts, &c); err != nil {
		Te.Fatal(err)
	}
	if c.Element != "ne" || c.Accuracy != 1e-4 || c.MaxN != 18 || !c.Parallel || c.Workers != 4 {
		Te.Errorf("options not decoded: %+v", c)
	}
	if len(c.ShellMins) != 1 || c.ShellMins[0] != 10 {
		Te.Errorf("shell_mins not decoded: %v", c.ShellMins)
	}
	if c.Params.MaxIter != 250 {
		Te.Errorf("nested params not decoded: %+v", c.Params)
	}
}

func TestDecodeOptionsRejectsUnknownKeys(Te *testing.T) {
	var c Config
	err := DecodeOptions(map[string]any{"accuracy": 1e-4, "shell_minz": []int{1}}, &c)
	if err == nil {
		Te.Fatal("unknown key accepted")
	}
	if basisopt.KindOf(err) != basisopt.KindConfiguration {
		Te.Errorf("expected a configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "shell_minz") {
		Te.Errorf("error does not name the offending key: %v", err)
	}
}

func TestDispatchOrdering(Te *testing.T) {
	out := make([]int, 64)
	err := dispatch(8, len(out), func(i int) error {
		out[i] = i * i
		return nil
	})
	if err != nil {
		Te.Fatal(err)
	}
	for i, v := range out {
		if v != i*i {
			Te.Fatalf("slot %d holds %d", i, v)
		}
	}
}
