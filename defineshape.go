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
	"image/color"

	"seehuhn.de/go/swf/bitstream"
)

// DefineShape defines a filled shape with a single contour, given in twips.
// The returned character id is 0 if nothing is left to draw after
// clipping.
func (w *Writer) DefineShape(p Polygon, fill FillStyle) (uint16, error) {
	return w.DefineShapePoly(PolyPolygon{p}, fill)
}

// DefineShapePoly defines a filled shape, given in twips.  Overlapping
// contours are combined using the even-odd rule.
// The returned character id is 0 if nothing is left to draw after
// clipping.
func (w *Writer) DefineShapePoly(pp PolyPolygon, fill FillStyle) (uint16, error) {
	if w.stored {
		return 0, ErrStored
	}
	pp = w.clipped(pp)
	if pp.IsEmpty() {
		return 0, nil
	}
	return w.defineShape3(pp, withAlpha(fill, w.transparency), nil)
}

// DefineOutline defines a shape consisting of the outlines of pp, given in
// twips.  The line width is in twips.
func (w *Writer) DefineOutline(pp PolyPolygon, lineWidth uint16, col color.NRGBA) (uint16, error) {
	if w.stored {
		return 0, ErrStored
	}
	if w.clip != nil {
		pp = w.clip.ApplyAllOpen(pp, w.opt.Flatness/4)
	}
	if pp.IsEmpty() {
		return 0, nil
	}
	line := &lineStyle{Width: lineWidth, Color: fade(col, w.transparency)}
	return w.defineShape3(pp, nil, line)
}

func (w *Writer) clipped(pp PolyPolygon) PolyPolygon {
	if w.clip == nil {
		return pp
	}
	return w.clip.ApplyAll(pp, w.opt.Flatness/4)
}

type lineStyle struct {
	Width uint16
	Color color.NRGBA
}

// defineShape3 writes a DefineShape3 tag.  Exactly one of fill and line
// must be non-nil.
func (w *Writer) defineShape3(pp PolyPolygon, fill FillStyle, line *lineStyle) (uint16, error) {
	id := w.createID()
	t := w.startTag(TagDefineShape3)
	t.AddUI16(id)

	bounds := pp.Bounds()
	if line != nil {
		half := (int32(line.Width) + 1) / 2
		bounds.XMin -= half
		bounds.YMin -= half
		bounds.XMax += half
		bounds.YMax += half
	}
	t.AddRect(bounds)

	if fill != nil {
		t.AddUI8(1)
		fill.addTo(t)
		t.AddUI8(0)
	} else {
		t.AddUI8(0)
		t.AddUI8(1)
		t.AddUI16(line.Width)
		t.AddRGBA(line.Color)
	}

	bw := &bitstream.Writer{}
	bw.WriteUB(1, 4) // NumFillBits
	bw.WriteUB(1, 4) // NumLineBits
	enc := newShapeEncoder(bw, fill != nil, w.opt.Flatness, w.opt.MaxSubdivision)
	enc.AddPolyPolygon(pp)
	enc.End()
	t.AddBits(bw)

	return id, w.endTag()
}
