/*
 * viz.go, part of basisopt.
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

//Package viz draws diagnostic plots for optimized basis sets: where
//the exponents of each shell sit on a log scale, and how the
//objective fell over the steps of a run.
package viz

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/robashaw/basisopt"
	"github.com/robashaw/basisopt/opt"
)

//ExponentPlot draws the exponents of one element in every given
//basis, log10 of the exponent against angular momentum, one color per
//basis. Bases are keyed by a label that ends up in the legend. The
//plot is saved to filename, whose extension picks the format.
func ExponentPlot(bases map[string]basisopt.Basis, element string, filename string) error {
	if len(bases) == 0 {
		return fmt.Errorf("ExponentPlot: no bases to plot")
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Exponents for %s", basisopt.NormalizeSymbol(element))
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "log10(exponent)"
	p.Y.Label.Text = "angular momentum"
	p.Add(plotter.NewGrid())
	labels := make([]string, 0, len(bases))
	for label := range bases {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for key, label := range labels {
		shells := bases[label].Shells(element)
		if len(shells) == 0 {
			return fmt.Errorf("ExponentPlot: basis %q has no shells for %s", label, element)
		}
		//Each basis is nudged off the shell line so overlapping
		//exponents stay visible.
		off := 0.1 * float64(key)
		pts := make(plotter.XYs, 0, 16)
		for _, sh := range shells {
			for _, e := range sh.Exps {
				pts = append(pts, plotter.XY{X: math.Log10(e), Y: float64(sh.L) + off})
			}
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		r, g, b := colors(key, len(labels))
		s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		p.Add(s)
		p.Legend.Add(label, s)
	}
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}

//ConvergencePlot draws the objective of each completed step of a run.
//The Y axis is logarithmic when every objective is positive, which is
//the usual case when optimizing against a reference.
func ConvergencePlot(steps []opt.StepRecord, filename string) error {
	if len(steps) == 0 {
		return fmt.Errorf("ConvergencePlot: no steps to plot")
	}
	p := plot.New()
	p.Title.Text = "Convergence"
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "step"
	p.Y.Label.Text = "objective"
	logY := true
	pts := make(plotter.XYs, len(steps))
	for i, st := range steps {
		pts[i] = plotter.XY{X: float64(i), Y: st.Objective}
		if st.Objective <= 0 {
			logY = false
		}
	}
	if logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{}
	}
	p.Add(plotter.NewGrid())
	l, s, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	r, g, b := colors(0, 1)
	l.Color = color.RGBA{R: r, G: g, B: b, A: 255}
	s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
	p.Add(l, s)
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, pp, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	pp = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r = v
		g = t
		b = pp
	case 1:
		r = q
		g = v
		b = pp
	case 2:
		r = pp
		g = v
		b = t
	case 3:
		r = pp
		g = q
		b = v
	case 4:
		r = t
		g = pp
		b = v
	default: //case 5
		r = v
		g = pp
		b = q
	}
	r = r * conversion
	g = g * conversion
	b = b * conversion
	return uint8(r), uint8(g), uint8(b)
}

func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1.0, 1.0)
}
