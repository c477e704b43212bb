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
	"math"

	"seehuhn.de/go/geom/vec"
)

// Point is a position in twips.
type Point struct {
	X, Y int32
}

func (p Point) vec() vec.Vec2 {
	return vec.Vec2{X: float64(p.X), Y: float64(p.Y)}
}

func pointFromVec(v vec.Vec2) Point {
	return Point{X: roundInt32(v.X), Y: roundInt32(v.Y)}
}

// Rect is an axis-aligned rectangle in twips.
type Rect struct {
	XMin, YMin, XMax, YMax int32
}

// IsZero reports whether the rectangle has zero width and height and lies
// at the origin.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Dx returns the width of the rectangle.
func (r Rect) Dx() int32 {
	return r.XMax - r.XMin
}

// Dy returns the height of the rectangle.
func (r Rect) Dy() int32 {
	return r.YMax - r.YMin
}

// normalized returns a copy of r with XMin <= XMax and YMin <= YMax.
func (r Rect) normalized() Rect {
	if r.XMin > r.XMax {
		r.XMin, r.XMax = r.XMax, r.XMin
	}
	if r.YMin > r.YMax {
		r.YMin, r.YMax = r.YMax, r.YMin
	}
	return r
}

// Polygon returns the outline of the rectangle.  The last point repeats
// the first one, so that the polygon is closed also when it is stroked.
func (r Rect) Polygon() Polygon {
	return Polygon{Points: []Point{
		{r.XMin, r.YMin},
		{r.XMax, r.YMin},
		{r.XMax, r.YMax},
		{r.XMin, r.YMax},
		{r.XMin, r.YMin},
	}}
}

// PointFlag describes the role of a polygon vertex.
type PointFlag uint8

// These are the possible values of PointFlag.
//
// Two consecutive PointControl entries between two on-curve points
// describe a cubic Bézier segment.
const (
	PointNormal PointFlag = iota
	PointSmooth
	PointControl
	PointSymmetric
)

func (f PointFlag) onCurve() bool {
	return f != PointControl
}

// Polygon is a single contour.
//
// If Flags is nil, all points are on the outline and consecutive points
// are joined by straight lines.  Otherwise Flags must have the same length
// as Points.
type Polygon struct {
	Points []Point
	Flags  []PointFlag
}

// NewPolygon returns a polygon with straight edges between the given points.
func NewPolygon(pts ...Point) Polygon {
	return Polygon{Points: pts}
}

// Len returns the number of points in the polygon.
func (p Polygon) Len() int {
	return len(p.Points)
}

// Flag returns the flag of point i.
func (p Polygon) Flag(i int) PointFlag {
	if p.Flags == nil {
		return PointNormal
	}
	return p.Flags[i]
}

// HasCurves reports whether the polygon contains Bézier segments.
func (p Polygon) HasCurves() bool {
	for _, f := range p.Flags {
		if f == PointControl {
			return true
		}
	}
	return false
}

// Bounds returns the bounding box of all points, including control points.
func (p Polygon) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	r := Rect{
		XMin: p.Points[0].X, XMax: p.Points[0].X,
		YMin: p.Points[0].Y, YMax: p.Points[0].Y,
	}
	for _, pt := range p.Points[1:] {
		r.XMin = min(r.XMin, pt.X)
		r.XMax = max(r.XMax, pt.X)
		r.YMin = min(r.YMin, pt.Y)
		r.YMax = max(r.YMax, pt.Y)
	}
	return r
}

// PolyPolygon is a shape made of several contours.
type PolyPolygon []Polygon

// Bounds returns the bounding box of all non-empty contours.
func (pp PolyPolygon) Bounds() Rect {
	var r Rect
	first := true
	for _, p := range pp {
		if p.Len() == 0 {
			continue
		}
		b := p.Bounds()
		if first {
			r = b
			first = false
			continue
		}
		r.XMin = min(r.XMin, b.XMin)
		r.XMax = max(r.XMax, b.XMax)
		r.YMin = min(r.YMin, b.YMin)
		r.YMax = max(r.YMax, b.YMax)
	}
	return r
}

// IsEmpty reports whether all contours are empty.
func (pp PolyPolygon) IsEmpty() bool {
	for _, p := range pp {
		if p.Len() > 0 {
			return false
		}
	}
	return true
}

// kappa is the distance of the control points of a cubic Bézier
// approximation of a quarter circle, relative to the radius.
const kappa = 0.5522847498307936

// Ellipse returns a closed polygon made of four cubic Bézier segments
// approximating the ellipse with the given centre and radii.
func Ellipse(center Point, rx, ry int32) Polygon {
	cx, cy := float64(center.X), float64(center.Y)
	ax, ay := float64(rx), float64(ry)
	kx, ky := kappa*ax, kappa*ay

	pts := []vec.Vec2{
		{X: cx + ax, Y: cy},
		{X: cx + ax, Y: cy + ky}, {X: cx + kx, Y: cy + ay}, {X: cx, Y: cy + ay},
		{X: cx - kx, Y: cy + ay}, {X: cx - ax, Y: cy + ky}, {X: cx - ax, Y: cy},
		{X: cx - ax, Y: cy - ky}, {X: cx - kx, Y: cy - ay}, {X: cx, Y: cy - ay},
		{X: cx + kx, Y: cy - ay}, {X: cx + ax, Y: cy - ky}, {X: cx + ax, Y: cy},
	}
	poly := Polygon{
		Points: make([]Point, len(pts)),
		Flags:  make([]PointFlag, len(pts)),
	}
	for i, v := range pts {
		poly.Points[i] = pointFromVec(v)
		if i%3 != 0 {
			poly.Flags[i] = PointControl
		}
	}
	return poly
}

// RoundedRect returns the outline of r with elliptic corners of radii
// rx and ry.  If either radius is zero, the plain rectangle is returned.
func RoundedRect(r Rect, rx, ry int32) Polygon {
	r = r.normalized()
	rx = min(rx, r.Dx()/2)
	ry = min(ry, r.Dy()/2)
	if rx <= 0 || ry <= 0 {
		return r.Polygon()
	}

	x0, y0 := float64(r.XMin), float64(r.YMin)
	x1, y1 := float64(r.XMax), float64(r.YMax)
	ax, ay := float64(rx), float64(ry)
	kx, ky := (1-kappa)*ax, (1-kappa)*ay

	type pt struct {
		v    vec.Vec2
		flag PointFlag
	}
	var seq []pt
	corner := func(p0, c1, c2, p1 vec.Vec2) {
		seq = append(seq,
			pt{p0, PointNormal}, pt{c1, PointControl},
			pt{c2, PointControl}, pt{p1, PointNormal})
	}
	corner(vec.Vec2{X: x1 - ax, Y: y0}, vec.Vec2{X: x1 - kx, Y: y0},
		vec.Vec2{X: x1, Y: y0 + ky}, vec.Vec2{X: x1, Y: y0 + ay})
	corner(vec.Vec2{X: x1, Y: y1 - ay}, vec.Vec2{X: x1, Y: y1 - ky},
		vec.Vec2{X: x1 - kx, Y: y1}, vec.Vec2{X: x1 - ax, Y: y1})
	corner(vec.Vec2{X: x0 + ax, Y: y1}, vec.Vec2{X: x0 + kx, Y: y1},
		vec.Vec2{X: x0, Y: y1 - ky}, vec.Vec2{X: x0, Y: y1 - ay})
	corner(vec.Vec2{X: x0, Y: y0 + ay}, vec.Vec2{X: x0, Y: y0 + ky},
		vec.Vec2{X: x0 + kx, Y: y0}, vec.Vec2{X: x0 + ax, Y: y0})

	seq = append(seq, pt{seq[0].v, PointNormal})

	poly := Polygon{}
	for _, p := range seq {
		poly.Points = append(poly.Points, pointFromVec(p.v))
		poly.Flags = append(poly.Flags, p.flag)
	}
	return poly
}

func roundInt32(x float64) int32 {
	x = math.Round(x)
	if x > math.MaxInt32 {
		return math.MaxInt32
	} else if x < math.MinInt32 {
		return math.MinInt32
	}
	return int32(x)
}
