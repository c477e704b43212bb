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
	"io"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/swf/bitstream"
	"seehuhn.de/go/swf/internal/rangecheck"
)

// EMSquare is the size of the glyph coordinate space used by DefineFont.
const EMSquare = 1024

// Face provides glyph outlines for text output.
type Face interface {
	// Glyph returns the outline and advance width of the glyph for r.
	Glyph(r rune) (GlyphOutline, error)

	// FontKey identifies the font.  Faces with the same key share one
	// font definition in the output.
	FontKey() string
}

// GlyphOutline describes a single glyph.
//
// Path and Advance are in font design units, with the baseline at y=0 and
// the y axis pointing upwards.  A nil Path denotes an empty glyph.
type GlyphOutline struct {
	Path    path.Path
	Advance float64

	// UnitsPerEm is the size of the em square in design units.
	// If this is zero, 1024 is used.
	UnitsPerEm float64
}

// ErrNoGlyph indicates that a font has no glyph for a character.
var ErrNoGlyph = errors.New("glyph not found")

// FlashFont is the subset of a font used in a movie.
//
// Glyphs are added on demand.  The first glyph used gets index 0, the next
// one index 1, and so on.
type FlashFont struct {
	Face Face
	ID   uint16

	index    map[rune]uint16
	advances []float64
	offsets  []int
	data     []byte

	flatness float64
	maxDepth int
}

func newFlashFont(face Face, id uint16, flatness float64, maxDepth int) *FlashFont {
	return &FlashFont{
		Face:     face,
		ID:       id,
		index:    make(map[rune]uint16),
		flatness: flatness,
		maxDepth: maxDepth,
	}
}

// NumGlyphs returns the number of glyphs in the subset.
func (f *FlashFont) NumGlyphs() int {
	return len(f.offsets)
}

// Advance returns the advance width of glyph idx, in 1/1024 em.
func (f *FlashFont) Advance(idx uint16) float64 {
	return f.advances[idx]
}

// resolveGlyph returns the glyph index for r, adding the glyph to the
// font if needed.  If the outline cannot be obtained, the font is left
// unchanged.
func (f *FlashFont) resolveGlyph(r rune) (uint16, error) {
	if idx, ok := f.index[r]; ok {
		return idx, nil
	}

	g, err := f.Face.Glyph(r)
	if err != nil {
		return 0, &GlyphError{Rune: r, Font: f.Face.FontKey(), Err: err}
	}

	scale := 1.0
	if g.UnitsPerEm > 0 {
		scale = EMSquare / g.UnitsPerEm
	}
	emPoint := func(x, y float64) Point {
		return Point{X: roundInt32(x * scale), Y: roundInt32(-y * scale)}
	}

	bw := &bitstream.Writer{}
	bw.WriteUB(1, 4) // NumFillBits
	bw.WriteUB(1, 4) // NumLineBits
	enc := newShapeEncoder(bw, true, f.flatness, f.maxDepth)
	open := false
	if g.Path != nil {
		for cmd, pts := range g.Path {
			switch cmd {
			case path.CmdMoveTo:
				if open {
					enc.Close()
				}
				enc.MoveTo(emPoint(pts[0].X, pts[0].Y))
				open = true
			case path.CmdLineTo:
				enc.LineTo(emPoint(pts[0].X, pts[0].Y))
			case path.CmdQuadTo:
				enc.QuadTo(emPoint(pts[0].X, pts[0].Y), emPoint(pts[1].X, pts[1].Y))
			case path.CmdCubeTo:
				c1 := emPoint(pts[0].X, pts[0].Y)
				c2 := emPoint(pts[1].X, pts[1].Y)
				p := emPoint(pts[2].X, pts[2].Y)
				enc.CubeTo(c1.vec(), c2.vec(), p.vec())
			case path.CmdClose:
				if open {
					enc.Close()
					open = false
				}
			}
		}
	}
	if open {
		enc.Close()
	}
	enc.End()
	bw.Pad()

	idx := rangecheck.Uint16(int64(len(f.offsets)))
	f.offsets = append(f.offsets, len(f.data))
	f.data = append(f.data, bw.Bytes()...)
	f.advances = append(f.advances, g.Advance*scale)
	f.index[r] = idx
	return idx, nil
}

// WriteTo writes the DefineFont tag for the glyphs resolved so far.
//
// This implements the [io.WriterTo] interface.
func (f *FlashFont) WriteTo(w io.Writer) (int64, error) {
	t := NewTag(TagDefineFont)
	t.AddUI16(f.ID)
	tableSize := 2 * len(f.offsets)
	for _, o := range f.offsets {
		t.AddUI16(rangecheck.Uint16(int64(tableSize + o)))
	}
	t.AddBytes(f.data)
	return t.WriteTo(w)
}
