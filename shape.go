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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/swf/bitstream"
	"seehuhn.de/go/swf/internal/rangecheck"
)

// Shape records can only express coordinate deltas up to this width.
const (
	maxMoveBits     = 31
	maxEdgeBits     = 17
	minStraightBits = 2
	minCurvedBits   = 3
)

// shapeEncoder appends SHAPERECORDs to a bit stream.
//
// The encoder assumes one fill style and one line style, each addressed
// with a one-bit index.  All positions are in twips, relative to the shape
// origin.
type shapeEncoder struct {
	bw *bitstream.Writer

	filled   bool
	flatness float64
	maxDepth int

	pos   Point
	start Point
}

func newShapeEncoder(bw *bitstream.Writer, filled bool, flatness float64, maxDepth int) *shapeEncoder {
	return &shapeEncoder{
		bw:       bw,
		filled:   filled,
		flatness: flatness,
		maxDepth: maxDepth,
	}
}

// AddPolygon encodes one contour.
//
// The contour starts with a style change record which moves the pen to the
// first point.  Pairs of control points describe cubic Bézier segments.
// Filled contours are closed automatically.  Contours with less than two
// points are ignored.
func (e *shapeEncoder) AddPolygon(p Polygon) {
	n := p.Len()
	if n < 2 {
		return
	}

	e.MoveTo(p.Points[0])
	i := 1
	for i < n {
		if i+2 < n && p.Flag(i) == PointControl && p.Flag(i+1) == PointControl && p.Flag(i+2).onCurve() {
			e.CubeTo(p.Points[i].vec(), p.Points[i+1].vec(), p.Points[i+2].vec())
			i += 3
			continue
		}
		e.LineTo(p.Points[i])
		i++
	}
	if e.filled {
		e.Close()
	}
}

// AddPolyPolygon encodes all contours of pp.
func (e *shapeEncoder) AddPolyPolygon(pp PolyPolygon) {
	for _, p := range pp {
		e.AddPolygon(p)
	}
}

// MoveTo writes a style change record which selects the fill style (or the
// line style, for outlines) and moves the pen to p.
func (e *shapeEncoder) MoveTo(p Point) {
	bw := e.bw
	bw.WriteUB(0, 1) // non-edge record
	bw.WriteUB(0, 1) // StateNewStyles
	if e.filled {
		bw.WriteUB(0, 1) // StateLineStyle
		bw.WriteUB(0, 1) // StateFillStyle1
		bw.WriteUB(1, 1) // StateFillStyle0
	} else {
		bw.WriteUB(1, 1)
		bw.WriteUB(0, 1)
		bw.WriteUB(0, 1)
	}
	bw.WriteUB(1, 1) // StateMoveTo

	nBits := max(bitstream.SignedBits(p.X), bitstream.SignedBits(p.Y))
	rangecheck.Check(nBits <= maxMoveBits, "move target %v out of range", p)
	bw.WriteUB(uint32(nBits&31), 5)
	bw.WriteSB(p.X, nBits)
	bw.WriteSB(p.Y, nBits)

	bw.WriteUB(1, 1) // style index

	e.pos = p
	e.start = p
}

// LineTo writes a straight edge from the current position to p.
// Zero-length edges are omitted.
func (e *shapeEncoder) LineTo(p Point) {
	dx := int64(p.X) - int64(e.pos.X)
	dy := int64(p.Y) - int64(e.pos.Y)
	if dx == 0 && dy == 0 {
		return
	}

	// Edges which are too long for a single record are split in half.
	lim := int64(1) << (maxEdgeBits - 1)
	if dx >= lim || dx < -lim || dy >= lim || dy < -lim {
		mid := Point{
			X: int32(int64(e.pos.X) + dx/2),
			Y: int32(int64(e.pos.Y) + dy/2),
		}
		e.LineTo(mid)
		e.LineTo(p)
		return
	}

	e.straightEdge(int32(dx), int32(dy))
	e.pos = p
}

func (e *shapeEncoder) straightEdge(dx, dy int32) {
	bw := e.bw
	nBits := max(bitstream.SignedBits(dx), bitstream.SignedBits(dy), minStraightBits)

	bw.WriteUB(1, 1) // edge record
	bw.WriteUB(1, 1) // straight
	bw.WriteUB(uint32(nBits-2), 4)
	switch {
	case dx != 0 && dy != 0:
		bw.WriteUB(1, 1) // general line
		bw.WriteSB(dx, nBits)
		bw.WriteSB(dy, nBits)
	case dx == 0:
		bw.WriteUB(0, 1)
		bw.WriteUB(1, 1) // vertical
		bw.WriteSB(dy, nBits)
	default:
		bw.WriteUB(0, 1)
		bw.WriteUB(0, 1)
		bw.WriteSB(dx, nBits)
	}
}

// QuadTo writes a curved edge with control point c, ending at p.
func (e *shapeEncoder) QuadTo(c, p Point) {
	cdx := c.X - e.pos.X
	cdy := c.Y - e.pos.Y
	adx := p.X - c.X
	ady := p.Y - c.Y
	if cdx == 0 && cdy == 0 && adx == 0 && ady == 0 {
		return
	}
	if (cdx == 0 && cdy == 0) || (adx == 0 && ady == 0) {
		e.LineTo(p)
		return
	}

	nBits := max(
		bitstream.SignedBits(cdx), bitstream.SignedBits(cdy),
		bitstream.SignedBits(adx), bitstream.SignedBits(ady),
		minCurvedBits)
	if nBits > maxEdgeBits {
		// Split at t=1/2 until the deltas fit.
		m0 := e.pos.vec().Add(c.vec()).Mul(0.5)
		m1 := c.vec().Add(p.vec()).Mul(0.5)
		mid := m0.Add(m1).Mul(0.5)
		e.QuadTo(pointFromVec(m0), pointFromVec(mid))
		e.QuadTo(pointFromVec(m1), p)
		return
	}

	bw := e.bw
	bw.WriteUB(1, 1) // edge record
	bw.WriteUB(0, 1) // curved
	bw.WriteUB(uint32(nBits-2), 4)
	bw.WriteSB(cdx, nBits)
	bw.WriteSB(cdy, nBits)
	bw.WriteSB(adx, nBits)
	bw.WriteSB(ady, nBits)

	e.pos = p
}

// Close adds a straight edge back to the start of the current contour.
func (e *shapeEncoder) Close() {
	e.LineTo(e.start)
}

// End writes the end-of-shape record.
func (e *shapeEncoder) End() {
	e.bw.WriteUB(0, 6)
}

// cubicSegment is a cubic Bézier curve awaiting approximation.
type cubicSegment struct {
	p0, p1, p2, p3 vec.Vec2
	depth          int
}

// CubeTo approximates the cubic Bézier curve from the current position
// through the control points c1 and c2 to p by quadratic segments.
//
// Each cubic is replaced by the quadratic curve which shares its end points
// and tangents, if the two curves are closer than the flatness tolerance.
// Otherwise, curves which are almost straight are replaced by lines and all
// other curves are split in half.
func (e *shapeEncoder) CubeTo(c1, c2, p vec.Vec2) {
	d2 := e.flatness * e.flatness

	todo := []cubicSegment{{p0: e.pos.vec(), p1: c1, p2: c2, p3: p}}
	for len(todo) > 0 {
		seg := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		P1, P2, P3, P4 := seg.p0, seg.p1, seg.p2, seg.p3

		// already quadratic: P4 = 3 P3 - 3 P2 + P1
		if P4.X == 3*P3.X-3*P2.X+P1.X && P4.Y == 3*P3.Y-3*P2.Y+P1.Y {
			ctrl := P2.Mul(1.5).Sub(P1.Mul(0.5))
			e.QuadTo(pointFromVec(ctrl), pointFromVec(P4))
			continue
		}

		// The control point is the intersection of the tangents at
		// both end points.
		num := (P2.Y-P4.Y)*(P3.X-P4.X) - (P2.X-P4.X)*(P3.Y-P4.Y)
		den := (P1.X-P2.X)*(P3.Y-P4.Y) - (P1.Y-P2.Y)*(P3.X-P4.X)
		var ip vec.Vec2
		if den != 0 {
			ip = P2.Add(P1.Sub(P2).Mul(num / den))

			// distance of the Bernstein coefficients of the cubic and
			// the degree-elevated quadratic
			j1 := P2.Sub(P1.Mul(1.0 / 3)).Sub(ip.Mul(2.0 / 3))
			j2 := P3.Sub(ip.Mul(2.0 / 3)).Sub(P4.Mul(1.0 / 3))
			if max(j1.X*j1.X+j1.Y*j1.Y, j2.X*j2.X+j2.Y*j2.Y) < d2 {
				e.QuadTo(pointFromVec(ip), pointFromVec(P4))
				continue
			}
		}

		// distance from the chord P1 P4
		chord := P4.Sub(P1)
		l1 := P2.Sub(P1).Sub(chord.Mul(1.0 / 3))
		l2 := P3.Sub(P1).Sub(chord.Mul(2.0 / 3))
		if max(l1.X*l1.X+l1.Y*l1.Y, l2.X*l2.X+l2.Y*l2.Y) < d2/16 {
			e.LineTo(pointFromVec(P4))
			continue
		}

		if seg.depth >= e.maxDepth {
			if den != 0 {
				e.QuadTo(pointFromVec(ip), pointFromVec(P4))
			} else {
				e.LineTo(pointFromVec(P4))
			}
			continue
		}

		// de Casteljau subdivision at t=1/2
		L2 := P1.Add(P2).Mul(0.5)
		H := P2.Add(P3).Mul(0.5)
		R3 := P3.Add(P4).Mul(0.5)
		L3 := L2.Add(H).Mul(0.5)
		R2 := H.Add(R3).Mul(0.5)
		M := L3.Add(R2).Mul(0.5)

		// The left half must be processed first, so it goes on top.
		todo = append(todo,
			cubicSegment{p0: M, p1: R2, p2: R3, p3: P4, depth: seg.depth + 1},
			cubicSegment{p0: P1, p1: L2, p2: L3, p3: M, depth: seg.depth + 1},
		)
	}
}
