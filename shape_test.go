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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/swf/bitstream"
	"seehuhn.de/go/swf/internal/swftest"
)

// encodeShape runs f on a fresh encoder and decodes the resulting records.
func encodeShape(t *testing.T, filled bool, flatness float64, maxDepth int, f func(e *shapeEncoder)) []swftest.ShapeRecord {
	t.Helper()
	bw := &bitstream.Writer{}
	e := newShapeEncoder(bw, filled, flatness, maxDepth)
	f(e)
	e.End()
	bw.Pad()

	recs, err := swftest.ReadShapeRecords(bitstream.NewReader(bw.Bytes()), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	return recs
}

func moveRecord(x, y int32, filled bool) swftest.ShapeRecord {
	rec := swftest.ShapeRecord{
		Kind:       swftest.RecordStyle,
		MoveTo:     true,
		MoveX:      x,
		MoveY:      y,
		FillStyle0: -1,
		FillStyle1: -1,
		LineStyle:  -1,
	}
	if filled {
		rec.FillStyle0 = 1
	} else {
		rec.LineStyle = 1
	}
	return rec
}

// endPoint follows the edges of a contour and returns the final position.
func endPoint(recs []swftest.ShapeRecord) Point {
	var p Point
	for _, rec := range recs {
		switch rec.Kind {
		case swftest.RecordStyle:
			if rec.MoveTo {
				p = Point{rec.MoveX, rec.MoveY}
			}
		case swftest.RecordStraight:
			p.X += rec.DX
			p.Y += rec.DY
		case swftest.RecordCurve:
			p.X += rec.CX + rec.AX
			p.Y += rec.CY + rec.AY
		}
	}
	return p
}

func countRecords(recs []swftest.ShapeRecord, kind swftest.RecordKind) int {
	n := 0
	for _, rec := range recs {
		if rec.Kind == kind {
			n++
		}
	}
	return n
}

func TestSquare(t *testing.T) {
	recs := encodeShape(t, true, 16, 16, func(e *shapeEncoder) {
		e.AddPolygon(Rect{XMax: 1000, YMax: 1000}.Polygon())
	})

	want := []swftest.ShapeRecord{
		moveRecord(0, 0, true),
		{Kind: swftest.RecordStraight, NumBits: 11, DX: 1000},
		{Kind: swftest.RecordStraight, NumBits: 11, DY: 1000},
		{Kind: swftest.RecordStraight, NumBits: 11, DX: -1000},
		{Kind: swftest.RecordStraight, NumBits: 11, DY: -1000},
		{Kind: swftest.RecordEnd},
	}
	if d := cmp.Diff(want, recs); d != "" {
		t.Error(d)
	}
}

func TestAutoClose(t *testing.T) {
	tri := NewPolygon(Point{10, 10}, Point{110, 10}, Point{10, 60})

	filled := encodeShape(t, true, 16, 16, func(e *shapeEncoder) {
		e.AddPolygon(tri)
	})
	if n := countRecords(filled, swftest.RecordStraight); n != 3 {
		t.Errorf("filled: %d edges, want 3", n)
	}
	if got := endPoint(filled); got != (Point{10, 10}) {
		t.Errorf("filled contour ends at %v", got)
	}

	outline := encodeShape(t, false, 16, 16, func(e *shapeEncoder) {
		e.AddPolygon(tri)
	})
	if d := cmp.Diff(moveRecord(10, 10, false), outline[0]); d != "" {
		t.Error(d)
	}
	if n := countRecords(outline, swftest.RecordStraight); n != 2 {
		t.Errorf("outline: %d edges, want 2", n)
	}
}

func TestShortPolygon(t *testing.T) {
	recs := encodeShape(t, true, 16, 16, func(e *shapeEncoder) {
		e.AddPolygon(NewPolygon(Point{5, 5}))
		e.AddPolygon(Polygon{})
	})
	want := []swftest.ShapeRecord{{Kind: swftest.RecordEnd}}
	if d := cmp.Diff(want, recs); d != "" {
		t.Error(d)
	}
}

func TestLongEdge(t *testing.T) {
	recs := encodeShape(t, false, 16, 16, func(e *shapeEncoder) {
		e.AddPolygon(NewPolygon(Point{0, 0}, Point{100000, 0}))
	})
	want := []swftest.ShapeRecord{
		moveRecord(0, 0, false),
		{Kind: swftest.RecordStraight, NumBits: 17, DX: 50000},
		{Kind: swftest.RecordStraight, NumBits: 17, DX: 50000},
		{Kind: swftest.RecordEnd},
	}
	if d := cmp.Diff(want, recs); d != "" {
		t.Error(d)
	}
}

func TestStraightEdgeForms(t *testing.T) {
	recs := encodeShape(t, false, 16, 16, func(e *shapeEncoder) {
		e.MoveTo(Point{0, 0})
		e.LineTo(Point{1, 0})
		e.LineTo(Point{1, -1})
		e.LineTo(Point{1, -1}) // omitted
		e.LineTo(Point{-300, 200})
	})
	want := []swftest.ShapeRecord{
		moveRecord(0, 0, false),
		{Kind: swftest.RecordStraight, NumBits: 2, DX: 1},
		{Kind: swftest.RecordStraight, NumBits: 2, DY: -1},
		{Kind: swftest.RecordStraight, NumBits: 10, DX: -301, DY: 201},
		{Kind: swftest.RecordEnd},
	}
	if d := cmp.Diff(want, recs); d != "" {
		t.Error(d)
	}
}

func TestQuadTo(t *testing.T) {
	recs := encodeShape(t, false, 16, 16, func(e *shapeEncoder) {
		e.MoveTo(Point{0, 0})
		e.QuadTo(Point{100, 0}, Point{100, 100})
		e.QuadTo(Point{100, 100}, Point{200, 100}) // degenerate
		e.QuadTo(Point{201, 100}, Point{202, 100})
	})
	want := []swftest.ShapeRecord{
		moveRecord(0, 0, false),
		{Kind: swftest.RecordCurve, NumBits: 8, CX: 100, AY: 100},
		{Kind: swftest.RecordStraight, NumBits: 8, DX: 100},
		{Kind: swftest.RecordCurve, NumBits: 3, CX: 1, AX: 1},
		{Kind: swftest.RecordEnd},
	}
	if d := cmp.Diff(want, recs); d != "" {
		t.Error(d)
	}
}

func TestLongCurve(t *testing.T) {
	recs := encodeShape(t, false, 16, 16, func(e *shapeEncoder) {
		e.MoveTo(Point{0, 0})
		e.QuadTo(Point{200000, 0}, Point{200000, 200000})
	})
	if n := countRecords(recs, swftest.RecordCurve); n < 2 {
		t.Errorf("%d curves, want at least 2", n)
	}
	for _, rec := range recs {
		if rec.NumBits > maxEdgeBits {
			t.Errorf("edge uses %d bits", rec.NumBits)
		}
	}
	if got := endPoint(recs); got != (Point{200000, 200000}) {
		t.Errorf("curve ends at %v", got)
	}
}

func TestCubicAlreadyQuadratic(t *testing.T) {
	recs := encodeShape(t, false, 16, 16, func(e *shapeEncoder) {
		e.MoveTo(Point{0, 0})
		e.CubeTo(vec.Vec2{X: 200, Y: 0}, vec.Vec2{X: 300, Y: 100}, vec.Vec2{X: 300, Y: 300})
	})
	want := []swftest.ShapeRecord{
		moveRecord(0, 0, false),
		{Kind: swftest.RecordCurve, NumBits: 10, CX: 300, AY: 300},
		{Kind: swftest.RecordEnd},
	}
	if d := cmp.Diff(want, recs); d != "" {
		t.Error(d)
	}
}

func TestCubicNoSubdivision(t *testing.T) {
	// Without subdivision, each quarter of the circle becomes a single
	// quadratic segment through the intersection of the end tangents.
	recs := encodeShape(t, true, 0, 0, func(e *shapeEncoder) {
		e.AddPolygon(Ellipse(Point{}, 10000, 10000))
	})
	if len(recs) != 6 {
		t.Fatalf("got %d records, want 6", len(recs))
	}
	wantFirst := swftest.ShapeRecord{
		Kind:    swftest.RecordCurve,
		NumBits: 15,
		CY:      10000,
		AX:      -10000,
	}
	if d := cmp.Diff(wantFirst, recs[1]); d != "" {
		t.Error(d)
	}
	if n := countRecords(recs, swftest.RecordCurve); n != 4 {
		t.Errorf("%d curves, want 4", n)
	}
}

func TestCubicFlatness(t *testing.T) {
	circle := Ellipse(Point{X: 20000, Y: 20000}, 10000, 10000)

	var counts []int
	for _, flatness := range []float64{1000, 16, 1} {
		recs := encodeShape(t, true, flatness, 16, func(e *shapeEncoder) {
			e.AddPolygon(circle)
		})
		if got := endPoint(recs); got != (Point{30000, 20000}) {
			t.Errorf("flatness %g: contour ends at %v", flatness, got)
		}
		n := countRecords(recs, swftest.RecordCurve)
		if n < 4 {
			t.Errorf("flatness %g: %d curves", flatness, n)
		}
		counts = append(counts, n)
	}
	if counts[0] > counts[1] || counts[1] > counts[2] {
		t.Errorf("segment counts %v not increasing with precision", counts)
	}
}

func TestCubicStraight(t *testing.T) {
	// A cubic with all control points on a line is approximated by
	// straight edges only.
	recs := encodeShape(t, false, 16, 16, func(e *shapeEncoder) {
		e.MoveTo(Point{0, 0})
		e.CubeTo(vec.Vec2{X: 1000, Y: 0}, vec.Vec2{X: 500, Y: 0}, vec.Vec2{X: 3000, Y: 0})
	})
	if n := countRecords(recs, swftest.RecordCurve); n != 0 {
		t.Errorf("%d curves, want 0", n)
	}
	if got := endPoint(recs); got != (Point{3000, 0}) {
		t.Errorf("ends at %v", got)
	}
}
