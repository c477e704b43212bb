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

// Package sfntface provides glyph outlines from TrueType and OpenType fonts
// for use with [swf.Writer.DrawText].
package sfntface

import (
	"bytes"
	"fmt"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"

	"seehuhn.de/go/swf"
)

// Face implements the [swf.Face] interface for an sfnt font.
type Face struct {
	font *sfnt.Font
	cmap cmap.Subtable
	key  string
}

var _ swf.Face = (*Face)(nil)

// New returns a face for f.  The font must have a character map.
func New(f *sfnt.Font) (*Face, error) {
	if f.Outlines == nil {
		return nil, fmt.Errorf("font %q has no glyph outlines", f.PostScriptName())
	}
	cm, err := f.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", f.PostScriptName(), err)
	}
	return &Face{
		font: f,
		cmap: cm,
		key:  f.PostScriptName(),
	}, nil
}

// Parse reads a TrueType or OpenType font file.
func Parse(data []byte) (*Face, error) {
	f, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return New(f)
}

// FontKey implements the [swf.Face] interface.
// Fonts are identified by their PostScript name.
func (f *Face) FontKey() string {
	return f.key
}

// Glyph implements the [swf.Face] interface.
func (f *Face) Glyph(r rune) (swf.GlyphOutline, error) {
	gid := f.cmap.Lookup(r)
	if gid == 0 {
		return swf.GlyphOutline{}, swf.ErrNoGlyph
	}

	return swf.GlyphOutline{
		Path:       f.font.Outlines.Path(gid),
		Advance:    float64(f.font.GlyphWidth(gid)),
		UnitsPerEm: float64(f.font.UnitsPerEm),
	}, nil
}

// Ascent returns the ascent of the font in units of 1/1024 em.
func (f *Face) Ascent() float64 {
	return f.toEM(f.font.Ascent)
}

// Descent returns the descent of the font in units of 1/1024 em.
// The value is normally negative.
func (f *Face) Descent() float64 {
	return f.toEM(f.font.Descent)
}

func (f *Face) toEM(x funit.Int16) float64 {
	return float64(x) * swf.EMSquare / float64(f.font.UnitsPerEm)
}
