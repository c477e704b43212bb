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
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/matrix"
)

// Graphic is a sequence of drawing operations in document units.
// It is converted into a single sprite by [Writer.DefineGraphic].
type Graphic []Action

// Action is a single drawing operation of a [Graphic].
//
// The implementations in this package are [PolygonAction],
// [PolyPolygonAction], [LineAction], [RectAction], [EllipseAction],
// [GradientAction], [BitmapAction], [TextAction], [TransparencyAction]
// and [ClipAction].
type Action interface {
	replay(w *Writer, ids []uint16) ([]uint16, error)
}

// Stroke describes how outlines are drawn.
type Stroke struct {
	// Width is the line width in document units.
	Width int32
	Color color.NRGBA
}

// PolygonAction draws a single contour.
// Fill and Stroke are optional.
type PolygonAction struct {
	Polygon Polygon
	Fill    FillStyle
	Stroke  *Stroke
}

func (a PolygonAction) replay(w *Writer, ids []uint16) ([]uint16, error) {
	return w.paint(ids, PolyPolygon{w.MapPolygon(a.Polygon)}, a.Fill, a.Stroke)
}

// PolyPolygonAction draws a shape made of several contours.
type PolyPolygonAction struct {
	PolyPolygon PolyPolygon
	Fill        FillStyle
	Stroke      *Stroke
}

func (a PolyPolygonAction) replay(w *Writer, ids []uint16) ([]uint16, error) {
	return w.paint(ids, w.MapPolyPolygon(a.PolyPolygon), a.Fill, a.Stroke)
}

// LineAction draws a straight line.
type LineAction struct {
	From, To Point
	Stroke   Stroke
}

func (a LineAction) replay(w *Writer, ids []uint16) ([]uint16, error) {
	from, to := w.Map(a.From), w.Map(a.To)
	if w.clip != nil {
		var ok bool
		from, to, ok = w.clip.ApplyLine(from, to)
		if !ok {
			return ids, nil
		}
	}
	line := &lineStyle{
		Width: lineWidth(w.MapRelative(a.Stroke.Width)),
		Color: fade(a.Stroke.Color, w.transparency),
	}
	id, err := w.defineShape3(PolyPolygon{NewPolygon(from, to)}, nil, line)
	if err != nil {
		return nil, err
	}
	return append(ids, id), nil
}

// RectAction draws a rectangle, optionally with rounded corners.
type RectAction struct {
	Rect   Rect
	RX, RY int32
	Fill   FillStyle
	Stroke *Stroke
}

func (a RectAction) replay(w *Writer, ids []uint16) ([]uint16, error) {
	r := w.MapRect(a.Rect)
	p := RoundedRect(r, w.MapRelative(a.RX), w.MapRelative(a.RY))
	return w.paint(ids, PolyPolygon{p}, a.Fill, a.Stroke)
}

// EllipseAction draws the ellipse inscribed in Rect.
type EllipseAction struct {
	Rect   Rect
	Fill   FillStyle
	Stroke *Stroke
}

func (a EllipseAction) replay(w *Writer, ids []uint16) ([]uint16, error) {
	r := w.MapRect(a.Rect).normalized()
	center := Point{X: r.XMin + r.Dx()/2, Y: r.YMin + r.Dy()/2}
	p := Ellipse(center, r.Dx()/2, r.Dy()/2)
	return w.paint(ids, PolyPolygon{p}, a.Fill, a.Stroke)
}

// GradientAction fills an area with a gradient.  The gradient geometry is
// derived from the bounding box of the area.
type GradientAction struct {
	PolyPolygon PolyPolygon
	Gradient    *Gradient
}

func (a GradientAction) replay(w *Writer, ids []uint16) ([]uint16, error) {
	pp := w.MapPolyPolygon(a.PolyPolygon)
	fill := GradientFill{Bounds: pp.Bounds(), Gradient: a.Gradient}
	return w.paint(ids, pp, fill, nil)
}

// BitmapAction draws a bitmap, scaled to fill Dest.
type BitmapAction struct {
	Dest   Rect
	Bitmap Bitmap
}

func (a BitmapAction) replay(w *Writer, ids []uint16) ([]uint16, error) {
	dest := w.MapRect(a.Dest).normalized()
	if dest.Dx() == 0 || dest.Dy() == 0 {
		return ids, nil
	}

	bm := a.Bitmap
	if bm.Image == nil {
		return nil, errEmptyBitmap
	}
	if bm.MaxSize.X == 0 && bm.MaxSize.Y == 0 {
		// one pixel per point is enough
		bm.MaxSize.X = max(int(dest.Dx()/20), 1)
		bm.MaxSize.Y = max(int(dest.Dy()/20), 1)
	}
	bitmapID, err := w.DefineBitmap(bm)
	if err != nil {
		return nil, err
	}

	// DefineBitmap may have scaled the image down; the fill matrix uses
	// the stored size.
	size := toRGBA(bm.Image, bm.MaxSize).Bounds().Size()
	m := matrix.Scale(float64(dest.Dx())/float64(size.X), float64(dest.Dy())/float64(size.Y))
	m = m.Mul(matrix.Translate(float64(dest.XMin), float64(dest.YMin)))
	fill := BitmapFill{ID: bitmapID, Clipped: true, Matrix: m}

	return w.paint(ids, PolyPolygon{dest.Polygon()}, fill, nil)
}

// TextAction draws a line of text.  All positions and sizes in Run are in
// document units.
type TextAction struct {
	Run TextRun
}

func (a TextAction) replay(w *Writer, ids []uint16) ([]uint16, error) {
	run := a.Run
	run.Pos = w.Map(run.Pos)
	run.Style.Size = w.MapRelative(run.Style.Size)
	if run.DX != nil {
		dx := make([]int32, len(run.DX))
		for i, x := range run.DX {
			dx[i] = w.MapRelative(x)
		}
		run.DX = dx
	}
	id, err := w.DrawText(run)
	if err != nil {
		return nil, err
	}
	if id != 0 {
		ids = append(ids, id)
	}
	return ids, nil
}

// TransparencyAction sets the transparency for the following actions,
// from 0 (opaque) to 255 (invisible).
type TransparencyAction struct {
	Transparency uint8
}

func (a TransparencyAction) replay(w *Writer, ids []uint16) ([]uint16, error) {
	w.SetGlobalTransparency(a.Transparency)
	return ids, nil
}

// ClipAction restricts the following actions to a convex region.
// If Clip is nil, clipping is switched off.
type ClipAction struct {
	Clip *PolyPolygon
}

func (a ClipAction) replay(w *Writer, ids []uint16) ([]uint16, error) {
	if a.Clip == nil {
		return ids, w.SetClipping(nil)
	}
	pp := w.MapPolyPolygon(*a.Clip)
	return ids, w.SetClipping(&pp)
}

// DefineGraphic converts g into shapes and returns the id of a sprite
// which shows all of them.  If g draws nothing, the returned id is 0.
//
// Clipping and transparency set by actions in g only apply within g.
// If an action fails, the error is returned and no sprite is created.
func (w *Writer) DefineGraphic(g Graphic) (uint16, error) {
	if w.stored {
		return 0, ErrStored
	}

	savedClip, savedTransparency := w.clip, w.transparency
	defer func() {
		w.clip, w.transparency = savedClip, savedTransparency
	}()

	var ids []uint16
	for i, a := range g {
		var err error
		ids, err = a.replay(w, ids)
		if err != nil {
			return 0, fmt.Errorf("graphic action %d: %w", i, err)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	spriteID, err := w.StartSprite()
	if err != nil {
		return 0, err
	}
	for i, id := range ids {
		err = w.PlaceShape(id, uint16(i+1), 0, 0)
		if err != nil {
			w.discardSprite()
			return 0, err
		}
	}
	err = w.ShowFrame()
	if err != nil {
		w.discardSprite()
		return 0, err
	}
	err = w.EndSprite()
	if err != nil {
		return 0, err
	}
	return spriteID, nil
}

// paint defines the fill and outline shapes for pp, which is in twips.
func (w *Writer) paint(ids []uint16, pp PolyPolygon, fill FillStyle, stroke *Stroke) ([]uint16, error) {
	if fill != nil {
		id, err := w.DefineShapePoly(pp, fill)
		if err != nil {
			return nil, err
		}
		if id != 0 {
			ids = append(ids, id)
		}
	}
	if stroke != nil {
		id, err := w.DefineOutline(pp, lineWidth(w.MapRelative(stroke.Width)), stroke.Color)
		if err != nil {
			return nil, err
		}
		if id != 0 {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// lineWidth converts a width in twips to the range of LINESTYLE records.
// Hairlines are drawn one pixel wide.
func lineWidth(w int32) uint16 {
	if w < 20 {
		return 20
	}
	return uint16(min(w, 0xFFFF))
}
