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

	"seehuhn.de/go/geom/matrix"
)

// FillKind is the fill style type as stored in a FILLSTYLE record.
type FillKind uint8

// These are the fill style types supported by this package.
const (
	FillSolid          FillKind = 0x00
	FillLinearGradient FillKind = 0x10
	FillRadialGradient FillKind = 0x12
	FillTiledBitmap    FillKind = 0x40
	FillClippedBitmap  FillKind = 0x41
)

// FillStyle describes how the interior of a shape is painted.
//
// The implementations in this package are [SolidFill], [GradientFill] and
// [BitmapFill].  No other implementations are possible.
type FillStyle interface {
	// Kind returns the fill style type.
	Kind() FillKind

	addTo(t *Tag)
}

// SolidFill paints a shape in a single color.
type SolidFill struct {
	Color color.NRGBA
}

// Kind implements the [FillStyle] interface.
func (f SolidFill) Kind() FillKind {
	return FillSolid
}

func (f SolidFill) addTo(t *Tag) {
	t.AddUI8(uint8(FillSolid))
	t.AddRGBA(f.Color)
}

// GradientFill paints a shape with a color gradient.
// The gradient geometry is derived from Bounds.
type GradientFill struct {
	Bounds   Rect
	Gradient *Gradient
}

// Kind implements the [FillStyle] interface.
func (f GradientFill) Kind() FillKind {
	switch f.Gradient.Style {
	case GradientRadial, GradientElliptical:
		return FillRadialGradient
	default:
		return FillLinearGradient
	}
}

func (f GradientFill) addTo(t *Tag) {
	t.AddUI8(uint8(f.Kind()))
	t.AddMatrix(f.Gradient.matrix(f.Bounds))

	stops := f.Gradient.ramp()
	if len(stops) > maxGradientStops {
		stops = stops[:maxGradientStops]
	}
	t.AddUI8(uint8(len(stops)))
	for _, s := range stops {
		t.AddUI8(s.Ratio)
		t.AddRGBA(s.Color)
	}
}

// BitmapFill paints a shape with a bitmap defined by [Writer.DefineBitmap].
//
// The matrix maps bitmap pixels to twips.  If Clipped is set, the bitmap is
// not repeated outside its area.
type BitmapFill struct {
	ID      uint16
	Clipped bool
	Matrix  matrix.Matrix
}

// Kind implements the [FillStyle] interface.
func (f BitmapFill) Kind() FillKind {
	if f.Clipped {
		return FillClippedBitmap
	}
	return FillTiledBitmap
}

func (f BitmapFill) addTo(t *Tag) {
	t.AddUI8(uint8(f.Kind()))
	t.AddUI16(f.ID)
	t.AddMatrix(f.Matrix)
}

// withAlpha returns a copy of the fill with all colors made more
// transparent.  Transparency 0 means opaque, 255 means invisible.
func withAlpha(f FillStyle, transparency uint8) FillStyle {
	if transparency == 0 {
		return f
	}
	switch f := f.(type) {
	case SolidFill:
		return SolidFill{Color: fade(f.Color, transparency)}
	case GradientFill:
		g := *f.Gradient
		g.Start = fade(g.Start, transparency)
		g.End = fade(g.End, transparency)
		if g.Stops != nil {
			g.Stops = make([]GradientStop, len(f.Gradient.Stops))
			for i, s := range f.Gradient.Stops {
				g.Stops[i] = GradientStop{Ratio: s.Ratio, Color: fade(s.Color, transparency)}
			}
		}
		return GradientFill{Bounds: f.Bounds, Gradient: &g}
	default:
		return f
	}
}

func fade(c color.NRGBA, transparency uint8) color.NRGBA {
	c.A = uint8((uint32(c.A)*(255-uint32(transparency)) + 127) / 255)
	return c
}
