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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/swf/internal/swftest"
)

func square(x0, y0, x1, y1 int32) PolyPolygon {
	return PolyPolygon{Rect{XMin: x0, YMin: y0, XMax: x1, YMax: y1}.Polygon()}
}

func TestConvexClipErrors(t *testing.T) {
	lShape := NewPolygon(
		Point{0, 0}, Point{100, 0}, Point{100, 50},
		Point{50, 50}, Point{50, 100}, Point{0, 100})

	cases := []struct {
		name string
		pp   PolyPolygon
	}{
		{"empty", nil},
		{"two contours", append(square(0, 0, 10, 10), square(20, 20, 30, 30)...)},
		{"L-shape", PolyPolygon{lShape}},
		{"line", PolyPolygon{NewPolygon(Point{0, 0}, Point{10, 10}, Point{0, 0})}},
	}
	for _, c := range cases {
		_, err := newConvexClip(c.pp, 1)
		if !errors.Is(err, ErrNotConvex) {
			t.Errorf("%s: got %v, want ErrNotConvex", c.name, err)
		}
	}
}

func TestConvexClipOrientation(t *testing.T) {
	ccw := NewPolygon(Point{0, 0}, Point{100, 0}, Point{100, 100}, Point{0, 100})
	cw := NewPolygon(Point{0, 0}, Point{0, 100}, Point{100, 100}, Point{100, 0})
	for _, p := range []Polygon{ccw, cw} {
		c, err := newConvexClip(PolyPolygon{p}, 1)
		if err != nil {
			t.Fatal(err)
		}
		if !c.contains(Point{50, 50}.vec()) {
			t.Errorf("%v: centre not inside", p.Points)
		}
		if c.contains(Point{150, 50}.vec()) {
			t.Errorf("%v: outside point inside", p.Points)
		}
		if !c.contains(Point{100, 50}.vec()) {
			t.Errorf("%v: boundary point not inside", p.Points)
		}
	}
}

func TestClipEllipse(t *testing.T) {
	c, err := newConvexClip(PolyPolygon{Ellipse(Point{0, 0}, 1000, 500)}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !c.contains(Point{900, 0}.vec()) {
		t.Error("point on major axis not inside")
	}
	if c.contains(Point{900, 400}.vec()) {
		t.Error("corner point inside")
	}
}

func TestClipApply(t *testing.T) {
	c, err := newConvexClip(square(0, 0, 100, 100), 1)
	if err != nil {
		t.Fatal(err)
	}

	inside := NewPolygon(Point{10, 10}, Point{90, 10}, Point{50, 90})
	got := c.Apply(inside, 1)
	if d := cmp.Diff(inside, got); d != "" {
		t.Errorf("inside: %s", d)
	}

	partial := square(50, 50, 150, 150)[0]
	got = c.Apply(partial, 1)
	if got.Len() != 4 {
		t.Errorf("partial: got %d points, want 4", got.Len())
	}
	if got.Bounds() != (Rect{XMin: 50, YMin: 50, XMax: 100, YMax: 100}) {
		t.Errorf("partial: got bounds %v", got.Bounds())
	}

	outside := square(200, 200, 300, 300)[0]
	got = c.Apply(outside, 1)
	if got.Len() != 0 {
		t.Errorf("outside: got %v", got.Points)
	}

	pp := c.ApplyAll(PolyPolygon{inside, outside, partial}, 1)
	if len(pp) != 2 {
		t.Errorf("ApplyAll: got %d contours, want 2", len(pp))
	}
}

func TestClipLine(t *testing.T) {
	c, err := newConvexClip(square(0, 0, 100, 100), 1)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		a, b   Point
		ok     bool
		ca, cb Point
	}{
		{Point{10, 10}, Point{90, 90}, true, Point{10, 10}, Point{90, 90}},
		{Point{-50, 50}, Point{150, 50}, true, Point{0, 50}, Point{100, 50}},
		{Point{50, 150}, Point{50, 50}, true, Point{50, 100}, Point{50, 50}},
		{Point{200, 200}, Point{300, 300}, false, Point{}, Point{}},
		{Point{150, -10}, Point{150, 200}, false, Point{}, Point{}},
	}
	for _, tc := range cases {
		ca, cb, ok := c.ApplyLine(tc.a, tc.b)
		if ok != tc.ok {
			t.Errorf("%v-%v: ok=%t", tc.a, tc.b, ok)
			continue
		}
		if ok && (ca != tc.ca || cb != tc.cb) {
			t.Errorf("%v-%v: got %v-%v, want %v-%v", tc.a, tc.b, ca, cb, tc.ca, tc.cb)
		}
	}
}

func TestSetClipping(t *testing.T) {
	w := newTestWriter(t, nil)

	lShape := PolyPolygon{NewPolygon(
		Point{0, 0}, Point{100, 0}, Point{100, 50},
		Point{50, 50}, Point{50, 100}, Point{0, 100})}
	err := w.SetClipping(&lShape)
	if !errors.Is(err, ErrNotConvex) {
		t.Errorf("got %v, want ErrNotConvex", err)
	}

	clip := square(0, 0, 100, 100)
	err = w.SetClipping(&clip)
	if err != nil {
		t.Fatal(err)
	}
	id, err := w.DefineShapePoly(square(200, 200, 300, 300), SolidFill{Color: colorRGB(0, 0, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if id != 0 {
		t.Errorf("shape outside the clip region got id %d", id)
	}

	err = w.SetClipping(nil)
	if err != nil {
		t.Fatal(err)
	}
	id, err = w.DefineShapePoly(square(200, 200, 300, 300), SolidFill{Color: colorRGB(0, 0, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Error("shape not defined after removing the clip region")
	}
}

func TestClipOpen(t *testing.T) {
	c, err := newConvexClip(square(0, 0, 100, 100), 1)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		in   Polygon
		want PolyPolygon
	}{
		{
			name: "inside",
			in:   NewPolygon(Point{10, 10}, Point{90, 10}, Point{90, 90}),
			want: PolyPolygon{NewPolygon(Point{10, 10}, Point{90, 10}, Point{90, 90})},
		},
		{
			name: "corner",
			in:   NewPolygon(Point{50, 150}, Point{50, 50}, Point{150, 50}),
			want: PolyPolygon{NewPolygon(Point{50, 100}, Point{50, 50}, Point{100, 50})},
		},
		{
			name: "leave and return",
			in:   NewPolygon(Point{50, 50}, Point{150, 50}, Point{150, 80}, Point{50, 80}),
			want: PolyPolygon{
				NewPolygon(Point{50, 50}, Point{100, 50}),
				NewPolygon(Point{100, 80}, Point{50, 80}),
			},
		},
		{
			name: "outside",
			in:   NewPolygon(Point{200, 0}, Point{200, 100}),
			want: nil,
		},
	}
	for _, tc := range cases {
		got := c.ApplyOpen(tc.in, 1)
		if d := cmp.Diff(tc.want, got); d != "" {
			t.Errorf("%s: %s", tc.name, d)
		}
	}
}

// TestClipOutline checks that clipping a stroked path does not add edges
// along the boundary of the clip region.
func TestClipOutline(t *testing.T) {
	w := newTestWriter(t, nil)
	clip := square(0, 0, 1000, 1000)
	err := w.SetClipping(&clip)
	if err != nil {
		t.Fatal(err)
	}
	corner := NewPolygon(Point{500, 1500}, Point{500, 500}, Point{1500, 500})
	_, err = w.DefineOutline(PolyPolygon{corner}, 20, colorRGB(0, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	_, tags := store(t, w)

	shape, err := swftest.ParseShape3(tagsWithID(tags, TagDefineShape3)[0].Data)
	if err != nil {
		t.Fatal(err)
	}
	var got []Point
	var p Point
	for _, rec := range shape.Records {
		switch rec.Kind {
		case swftest.RecordStyle:
			if rec.MoveTo {
				p = Point{rec.MoveX, rec.MoveY}
				got = append(got, p)
			}
		case swftest.RecordStraight:
			p.X += rec.DX
			p.Y += rec.DY
			got = append(got, p)
		case swftest.RecordCurve:
			t.Errorf("unexpected curve %v", rec)
		}
	}
	want := []Point{{500, 1000}, {500, 500}, {1000, 500}}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}
