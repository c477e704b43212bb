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

	"seehuhn.de/go/geom/vec"
)

// ErrNotConvex is returned by [Writer.SetClipping] if the clip region is
// not a single convex contour.
var ErrNotConvex = errors.New("clip region is not convex")

// convexClip is a convex clip region.  The vertices are in counter-clockwise
// order, for a coordinate system with the y axis pointing up.
type convexClip struct {
	vertices []vec.Vec2
}

func newConvexClip(pp PolyPolygon, tolerance float64) (*convexClip, error) {
	var contour Polygon
	n := 0
	for _, p := range pp {
		if p.Len() > 0 {
			contour = p
			n++
		}
	}
	if n != 1 {
		return nil, ErrNotConvex
	}

	pts := flatten(contour, tolerance)
	pts = dedup(pts)
	if len(pts) < 3 {
		return nil, ErrNotConvex
	}

	var area float64
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		area += a.X*b.Y - a.Y*b.X
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}

	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		c := pts[(i+2)%len(pts)]
		if cross(b.Sub(a), c.Sub(b)) < 0 {
			return nil, ErrNotConvex
		}
	}

	return &convexClip{vertices: pts}, nil
}

// contains reports whether p lies inside the clip region or on its
// boundary.
func (c *convexClip) contains(p vec.Vec2) bool {
	for i, a := range c.vertices {
		b := c.vertices[(i+1)%len(c.vertices)]
		if cross(b.Sub(a), p.Sub(a)) < 0 {
			return false
		}
	}
	return true
}

// Apply intersects p with the clip region.
//
// Contours which lie completely inside the region are returned unchanged.
// Otherwise curves are flattened and the contour is clipped using the
// Sutherland-Hodgman algorithm.  The result may be empty.
func (c *convexClip) Apply(p Polygon, tolerance float64) Polygon {
	inside := true
	for _, pt := range p.Points {
		if !c.contains(pt.vec()) {
			inside = false
			break
		}
	}
	if inside {
		return p
	}

	out := flatten(p, tolerance)
	for i, a := range c.vertices {
		if len(out) == 0 {
			break
		}
		b := c.vertices[(i+1)%len(c.vertices)]
		edge := b.Sub(a)
		side := func(q vec.Vec2) float64 {
			return cross(edge, q.Sub(a))
		}

		in := out
		out = nil
		prev := in[len(in)-1]
		for _, cur := range in {
			sPrev, sCur := side(prev), side(cur)
			if sCur >= 0 {
				if sPrev < 0 {
					out = append(out, intersect(prev, cur, sPrev, sCur))
				}
				out = append(out, cur)
			} else if sPrev >= 0 {
				out = append(out, intersect(prev, cur, sPrev, sCur))
			}
			prev = cur
		}
	}

	var res Polygon
	for _, v := range out {
		pt := pointFromVec(v)
		if n := len(res.Points); n > 0 && res.Points[n-1] == pt {
			continue
		}
		res.Points = append(res.Points, pt)
	}
	if len(res.Points) < 3 {
		return Polygon{}
	}
	return res
}

// ApplyAll clips every contour of pp and drops empty results.
func (c *convexClip) ApplyAll(pp PolyPolygon, tolerance float64) PolyPolygon {
	var res PolyPolygon
	for _, p := range pp {
		q := c.Apply(p, tolerance)
		if q.Len() > 0 {
			res = append(res, q)
		}
	}
	return res
}

// ApplyOpen clips a stroked contour.  The contour is treated as a polyline
// which is only closed if its last point repeats the first one.  Each part
// which lies inside the region becomes a separate contour of the result.
func (c *convexClip) ApplyOpen(p Polygon, tolerance float64) PolyPolygon {
	inside := true
	for _, pt := range p.Points {
		if !c.contains(pt.vec()) {
			inside = false
			break
		}
	}
	if inside {
		return PolyPolygon{p}
	}

	var res PolyPolygon
	var cur []Point
	flush := func() {
		if len(cur) >= 2 {
			res = append(res, NewPolygon(cur...))
		}
		cur = nil
	}

	pts := flattenPath(p, tolerance)
	prev := pointFromVec(pts[0])
	for _, v := range pts[1:] {
		next := pointFromVec(v)
		a, b, ok := c.ApplyLine(prev, next)
		prev = next
		if !ok {
			flush()
			continue
		}
		if len(cur) == 0 || cur[len(cur)-1] != a {
			flush()
			cur = append(cur, a)
		}
		if b != a {
			cur = append(cur, b)
		}
	}
	flush()
	return res
}

// ApplyAllOpen clips every stroked contour of pp.
func (c *convexClip) ApplyAllOpen(pp PolyPolygon, tolerance float64) PolyPolygon {
	var res PolyPolygon
	for _, p := range pp {
		if p.Len() < 2 {
			continue
		}
		res = append(res, c.ApplyOpen(p, tolerance)...)
	}
	return res
}

func intersect(p, q vec.Vec2, sp, sq float64) vec.Vec2 {
	t := sp / (sp - sq)
	return p.Add(q.Sub(p).Mul(t))
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// flatten converts a contour into a closed sequence of points, replacing
// cubic Bézier segments by polylines.  The last point is not repeated.
func flatten(p Polygon, tolerance float64) []vec.Vec2 {
	pts := flattenPath(p, tolerance)
	if len(pts) > 1 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// flattenPath replaces the cubic Bézier segments of p by polylines.
func flattenPath(p Polygon, tolerance float64) []vec.Vec2 {
	n := p.Len()
	var pts []vec.Vec2
	if n == 0 {
		return nil
	}
	pts = append(pts, p.Points[0].vec())
	i := 1
	for i < n {
		if i+2 < n && p.Flag(i) == PointControl && p.Flag(i+1) == PointControl && p.Flag(i+2).onCurve() {
			pts = flattenCubic(pts, p.Points[i-1].vec(), p.Points[i].vec(),
				p.Points[i+1].vec(), p.Points[i+2].vec(), tolerance)
			i += 3
			continue
		}
		pts = append(pts, p.Points[i].vec())
		i++
	}
	return pts
}

// flattenCubic appends points approximating the cubic Bézier curve to pts.
// The start point p0 is not appended.
func flattenCubic(pts []vec.Vec2, p0, p1, p2, p3 vec.Vec2, tolerance float64) []vec.Vec2 {
	const maxDepth = 16
	d2 := tolerance * tolerance

	todo := []cubicSegment{{p0: p0, p1: p1, p2: p2, p3: p3}}
	for len(todo) > 0 {
		seg := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		chord := seg.p3.Sub(seg.p0)
		l1 := seg.p1.Sub(seg.p0).Sub(chord.Mul(1.0 / 3))
		l2 := seg.p2.Sub(seg.p0).Sub(chord.Mul(2.0 / 3))
		if seg.depth >= maxDepth || max(l1.X*l1.X+l1.Y*l1.Y, l2.X*l2.X+l2.Y*l2.Y) < d2 {
			pts = append(pts, seg.p3)
			continue
		}

		a := seg.p0.Add(seg.p1).Mul(0.5)
		h := seg.p1.Add(seg.p2).Mul(0.5)
		d := seg.p2.Add(seg.p3).Mul(0.5)
		b := a.Add(h).Mul(0.5)
		c := h.Add(d).Mul(0.5)
		m := b.Add(c).Mul(0.5)
		todo = append(todo,
			cubicSegment{p0: m, p1: c, p2: d, p3: seg.p3, depth: seg.depth + 1},
			cubicSegment{p0: seg.p0, p1: a, p2: b, p3: m, depth: seg.depth + 1},
		)
	}
	return pts
}

// dedup removes consecutive duplicate points.
func dedup(pts []vec.Vec2) []vec.Vec2 {
	var res []vec.Vec2
	for _, p := range pts {
		if len(res) > 0 && res[len(res)-1] == p {
			continue
		}
		res = append(res, p)
	}
	if len(res) > 1 && res[0] == res[len(res)-1] {
		res = res[:len(res)-1]
	}
	return res
}

// ApplyLine clips the line segment from a to b.  The second return value
// is false if no part of the segment lies inside the region.
func (c *convexClip) ApplyLine(a, b Point) (Point, Point, bool) {
	p, q := a.vec(), b.vec()
	t0, t1 := 0.0, 1.0
	for i, v := range c.vertices {
		w := c.vertices[(i+1)%len(c.vertices)]
		edge := w.Sub(v)
		sp := cross(edge, p.Sub(v))
		sq := cross(edge, q.Sub(v))
		switch {
		case sp < 0 && sq < 0:
			return a, b, false
		case sp < 0:
			t0 = max(t0, sp/(sp-sq))
		case sq < 0:
			t1 = min(t1, sp/(sp-sq))
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	d := q.Sub(p)
	return pointFromVec(p.Add(d.Mul(t0))), pointFromVec(p.Add(d.Mul(t1))), true
}
