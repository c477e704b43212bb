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

	"seehuhn.de/go/swf/internal/rangecheck"
)

// GradientStyle selects the geometry of a color gradient.
type GradientStyle uint8

// These are the supported gradient styles.
const (
	GradientLinear GradientStyle = iota
	GradientAxial
	GradientRadial
	GradientElliptical
	GradientSquare
	GradientRect
)

// maxGradientStops is the largest number of color stops a gradient
// record can hold.
const maxGradientStops = 8

// gradientSquare is the edge length of the square in which gradients
// are defined, in twips.
const gradientSquare = 32768.0

// GradientStop is a color at a fixed position of a gradient.
// Ratio 0 is the start and 255 is the end of the gradient.
type GradientStop struct {
	Ratio uint8
	Color color.NRGBA
}

// Gradient describes a color ramp.
type Gradient struct {
	Style GradientStyle

	// Angle is the rotation of the gradient in degrees.
	Angle float64

	Start, End color.NRGBA

	// OffsetX and OffsetY move the centre of radial gradients,
	// in percent of the bounding box.
	OffsetX, OffsetY float64

	// Stops, if set, overrides the ramp derived from Start and End.
	// The ratios must be strictly increasing.
	Stops []GradientStop
}

func (g *Gradient) ramp() []GradientStop {
	if g.Stops != nil {
		for i := 1; i < len(g.Stops); i++ {
			rangecheck.Check(g.Stops[i].Ratio > g.Stops[i-1].Ratio,
				"gradient ratios not increasing at stop %d", i)
		}
		return g.Stops
	}

	switch g.Style {
	case GradientRadial, GradientElliptical:
		return []GradientStop{{0x00, g.End}, {0xFF, g.Start}}
	case GradientAxial:
		return []GradientStop{{0x00, g.End}, {0x80, g.Start}, {0xFF, g.End}}
	default:
		return []GradientStop{{0x00, g.Start}, {0xFF, g.End}}
	}
}

// matrix maps the gradient square to the bounding box.
func (g *Gradient) matrix(bounds Rect) matrix.Matrix {
	bounds = bounds.normalized()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	sx := w / gradientSquare
	sy := h / gradientSquare

	m := matrix.RotateDeg(g.Angle - 90)
	switch g.Style {
	case GradientRadial, GradientElliptical:
		tx := g.OffsetX * gradientSquare / 100
		ty := g.OffsetY * gradientSquare / 100
		m = m.Mul(matrix.Scale(1.2, 1.2))
		if sx > sy {
			m = m.Mul(matrix.Translate(tx, sy/sx*ty))
			m = m.Mul(matrix.Scale(sx, sx))
		} else {
			if sy > 0 {
				m = m.Mul(matrix.Translate(sx/sy*tx, ty))
			}
			m = m.Mul(matrix.Scale(sy, sy))
		}
	case GradientAxial:
		m = m.Mul(matrix.Translate(gradientSquare/2, gradientSquare/2))
		m = m.Mul(matrix.Scale(sx, sy))
	default:
		m = m.Mul(matrix.Scale(sx, sy))
		m = m.Mul(matrix.Translate(w/2, h/2))
	}
	return m.Mul(matrix.Translate(float64(bounds.XMin), float64(bounds.YMin)))
}
