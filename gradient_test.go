// seehuhn.de/go/swf - a library for writing SWF movie files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package swf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/swf/internal/swftest"
)

func TestGradientRamp(t *testing.T) {
	a := colorRGB(255, 0, 0)
	b := colorRGB(0, 0, 255)

	cases := []struct {
		style GradientStyle
		want  []GradientStop
	}{
		{GradientLinear, []GradientStop{{0, a}, {255, b}}},
		{GradientSquare, []GradientStop{{0, a}, {255, b}}},
		{GradientAxial, []GradientStop{{0, b}, {128, a}, {255, b}}},
		{GradientRadial, []GradientStop{{0, b}, {255, a}}},
		{GradientElliptical, []GradientStop{{0, b}, {255, a}}},
	}
	for _, c := range cases {
		g := &Gradient{Style: c.style, Start: a, End: b}
		if d := cmp.Diff(c.want, g.ramp()); d != "" {
			t.Errorf("style %d: %s", c.style, d)
		}
	}

	stops := []GradientStop{{0, a}, {10, b}, {20, a}}
	g := &Gradient{Style: GradientRadial, Start: a, End: b, Stops: stops}
	if d := cmp.Diff(stops, g.ramp()); d != "" {
		t.Errorf("explicit stops: %s", d)
	}
}

func TestGradientMatrix(t *testing.T) {
	bounds := Rect{XMin: 100, YMin: 200, XMax: 100 + 32768, YMax: 200 + 32768}
	wide := Rect{XMax: 65536, YMax: 32768}

	cases := []struct {
		name   string
		g      Gradient
		bounds Rect
		want   matrix.Matrix
	}{
		{"linear", Gradient{Style: GradientLinear, Angle: 90}, bounds,
			matrix.Matrix{1, 0, 0, 1, 16484, 16584}},
		{"axial", Gradient{Style: GradientAxial, Angle: 90}, wide,
			matrix.Matrix{2, 0, 0, 1, 32768, 16384}},
		{"radial", Gradient{Style: GradientRadial, Angle: 90}, bounds,
			matrix.Matrix{1.2, 0, 0, 1.2, 100, 200}},
		{"radial offset", Gradient{Style: GradientRadial, Angle: 90, OffsetX: 50}, bounds,
			matrix.Matrix{1.2, 0, 0, 1.2, 100 + 16384, 200}},
	}
	opt := cmpopts.EquateApprox(0, 1e-6)
	for _, c := range cases {
		got := c.g.matrix(c.bounds)
		if d := cmp.Diff(c.want, got, opt); d != "" {
			t.Errorf("%s: %s", c.name, d)
		}
	}
}

func TestGradientRotation(t *testing.T) {
	// A linear gradient at angle 0 runs from top to bottom instead of
	// from left to right.
	g := &Gradient{Style: GradientLinear}
	m := g.matrix(Rect{XMax: 32768, YMax: 32768})

	x, y := m[0]*16384+m[4], m[1]*16384+m[5]
	if abs(x-16384) > 1e-6 || (abs(y) > 1e-6 && abs(y-32768) > 1e-6) {
		t.Errorf("gradient end mapped to (%g, %g)", x, y)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestGradientFillTag(t *testing.T) {
	w := newTestWriter(t, nil)

	var stops []GradientStop
	for i := range 10 {
		stops = append(stops, GradientStop{Ratio: uint8(i * 20), Color: colorRGB(uint8(i), 0, 0)})
	}
	pp := square(0, 0, 1000, 1000)
	grad := &Gradient{Style: GradientRadial, Stops: stops}
	id, err := w.DefineShapePoly(pp, GradientFill{Bounds: pp.Bounds(), Gradient: grad})
	if err != nil {
		t.Fatal(err)
	}
	_, tags := store(t, w)

	shapes := tagsWithID(tags, TagDefineShape3)
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes", len(shapes))
	}
	shape, err := swftest.ParseShape3(shapes[0].Data)
	if err != nil {
		t.Fatal(err)
	}
	if shape.ID != id {
		t.Errorf("shape id %d, want %d", shape.ID, id)
	}
	if len(shape.FillStyles) != 1 {
		t.Fatalf("got %d fill styles", len(shape.FillStyles))
	}
	fs := shape.FillStyles[0]
	if fs.Type != uint8(FillRadialGradient) {
		t.Errorf("fill type 0x%02x", fs.Type)
	}
	wantRatios := []uint8{0, 20, 40, 60, 80, 100, 120, 140}
	if d := cmp.Diff(wantRatios, fs.Ratios); d != "" {
		t.Errorf("ratios: %s", d)
	}
}

func TestWithAlpha(t *testing.T) {
	red := colorRGB(255, 0, 0)

	f := withAlpha(SolidFill{Color: red}, 0)
	if d := cmp.Diff(SolidFill{Color: red}, f); d != "" {
		t.Error(d)
	}
	f = withAlpha(SolidFill{Color: red}, 255)
	if got := f.(SolidFill).Color.A; got != 0 {
		t.Errorf("alpha %d, want 0", got)
	}
	f = withAlpha(SolidFill{Color: red}, 128)
	if got := f.(SolidFill).Color.A; got != 127 {
		t.Errorf("alpha %d, want 127", got)
	}

	grad := &Gradient{Start: red, End: red, Stops: []GradientStop{{0, red}, {255, red}}}
	f = withAlpha(GradientFill{Gradient: grad}, 255)
	for _, s := range f.(GradientFill).Gradient.ramp() {
		if s.Color.A != 0 {
			t.Errorf("stop %d: alpha %d", s.Ratio, s.Color.A)
		}
	}
	if grad.Stops[0].Color.A != 255 {
		t.Error("original gradient was modified")
	}

	bm := BitmapFill{ID: 3}
	if d := cmp.Diff(FillStyle(bm), withAlpha(bm, 100)); d != "" {
		t.Error(d)
	}
}
