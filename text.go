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
	"image/color"
	"slices"

	"github.com/go-text/typesetting/language"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/swf/bitstream"
	"seehuhn.de/go/swf/internal/rangecheck"
	"seehuhn.de/go/swf/internal/scriptrun"
)

// maxGlyphsPerRecord is the largest number of glyphs in one text record.
const maxGlyphsPerRecord = 127

// TextStyle describes the appearance of a text.
type TextStyle struct {
	// Face is the font used for all scripts not listed in ScriptFaces.
	Face Face

	// ScriptFaces optionally selects different fonts for some scripts.
	ScriptFaces map[language.Script]Face

	// Size is the font size (the height of the em square) in twips.
	Size int32

	Color color.NRGBA

	// Angle rotates the text counter-clockwise around its origin,
	// in degrees.
	Angle float64

	Underline bool
	Strikeout bool
}

// TextRun is a line of text.
type TextRun struct {
	// Pos is the start of the baseline, in twips.
	Pos Point

	Text  string
	Style TextStyle

	// DX optionally gives the glyph positions.  DX[i] is the distance,
	// in twips, from Pos to the end of the i-th character of Text.
	DX []int32
}

var errNoFace = errors.New("no font face for text")

type glyphEntry struct {
	index   uint16
	advance int32
}

type textRecord struct {
	font   *FlashFont
	glyphs []glyphEntry
}

// DrawText defines a text character and returns its id.
//
// If the text is underlined or struck out, the returned id refers to a
// sprite which contains the text and the decoration lines.  Empty texts
// return id 0.
func (w *Writer) DrawText(run TextRun) (uint16, error) {
	if w.stored {
		return 0, ErrStored
	}
	text := []rune(run.Text)
	if len(text) == 0 {
		return 0, nil
	}
	style := run.Style

	var records []textRecord
	var width int32
	for _, sr := range scriptrun.Visual(scriptrun.Split(text)) {
		face := style.Face
		if f, ok := style.ScriptFaces[sr.Script]; ok && f != nil {
			face = f
		}
		if face == nil {
			return 0, errNoFace
		}
		font := w.fontFor(face)

		idx := make([]int, 0, sr.End-sr.Start)
		for i := sr.Start; i < sr.End; i++ {
			idx = append(idx, i)
		}
		if sr.RTL {
			slices.Reverse(idx)
		}

		rec := textRecord{font: font}
		for _, i := range idx {
			gid, err := font.resolveGlyph(text[i])
			if err != nil {
				return 0, err
			}
			var adv int32
			if i < len(run.DX) {
				adv = run.DX[i]
				if i > 0 {
					adv -= run.DX[i-1]
				}
			} else {
				adv = roundInt32(font.Advance(gid) * float64(style.Size) / EMSquare)
			}
			rec.glyphs = append(rec.glyphs, glyphEntry{index: gid, advance: adv})
			width += adv
		}
		records = append(records, rec)
	}

	m := matrix.RotateDeg(-style.Angle).Mul(matrix.Translate(float64(run.Pos.X), float64(run.Pos.Y)))
	col := fade(style.Color, w.transparency)

	// approximate ascent and descent
	bounds := Rect{
		XMin: min(0, width), XMax: max(0, width),
		YMin: -style.Size, YMax: style.Size / 4,
	}

	var decorations PolyPolygon
	thickness := max(style.Size/20, 20)
	if style.Underline {
		y := style.Size / 10
		decorations = append(decorations, transformPolygon(
			Rect{XMin: 0, XMax: width, YMin: y, YMax: y + thickness}.Polygon(), m))
	}
	if style.Strikeout {
		y := -style.Size * 3 / 10
		decorations = append(decorations, transformPolygon(
			Rect{XMin: 0, XMax: width, YMin: y, YMax: y + thickness}.Polygon(), m))
	}

	if decorations == nil {
		return w.defineText(records, bounds, m, style.Size, col)
	}

	spriteID, err := w.StartSprite()
	if err != nil {
		return 0, err
	}
	err = w.decoratedText(records, bounds, m, style.Size, col, decorations)
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

// decoratedText fills the open sprite with a text and its decoration lines.
func (w *Writer) decoratedText(records []textRecord, bounds Rect, m matrix.Matrix, size int32, col color.NRGBA, decorations PolyPolygon) error {
	textID, err := w.defineText(records, bounds, m, size, col)
	if err != nil {
		return err
	}
	err = w.PlaceShape(textID, 1, 0, 0)
	if err != nil {
		return err
	}
	lineID, err := w.defineShape3(decorations, SolidFill{Color: col}, nil)
	if err != nil {
		return err
	}
	err = w.PlaceShape(lineID, 2, 0, 0)
	if err != nil {
		return err
	}
	return w.ShowFrame()
}

// fontFor returns the font subset for face, creating it if needed.
func (w *Writer) fontFor(face Face) *FlashFont {
	key := face.FontKey()
	if f, ok := w.fontByKey[key]; ok {
		return f
	}
	f := newFlashFont(face, w.createID(), w.opt.Flatness, w.opt.MaxSubdivision)
	w.fontByKey[key] = f
	w.fontList = append(w.fontList, f)
	w.log.Debug("new font", "id", f.ID, "key", key)
	return f
}

// defineText writes a DefineText tag, or a DefineText2 tag if the color
// is not opaque.
func (w *Writer) defineText(records []textRecord, bounds Rect, m matrix.Matrix, size int32, col color.NRGBA) (uint16, error) {
	glyphBits := 0
	advanceBits := 0
	for _, rec := range records {
		for _, g := range rec.glyphs {
			glyphBits = max(glyphBits, bitstream.UnsignedBits(uint32(g.index)))
			advanceBits = max(advanceBits, bitstream.SignedBits(g.advance))
		}
	}

	tagID := TagDefineText
	if col.A != 0xFF {
		tagID = TagDefineText2
	}

	id := w.createID()
	t := w.startTag(tagID)
	t.AddUI16(id)
	t.AddRect(bounds)
	t.AddMatrix(m)
	t.AddUI8(uint8(glyphBits))
	t.AddUI8(uint8(advanceBits))

	for _, rec := range records {
		for start := 0; start < len(rec.glyphs); start += maxGlyphsPerRecord {
			chunk := rec.glyphs[start:min(start+maxGlyphsPerRecord, len(rec.glyphs))]
			if start == 0 {
				t.AddUI8(0x8C) // text record with font and color
				t.AddUI16(rec.font.ID)
				if tagID == TagDefineText2 {
					t.AddRGBA(col)
				} else {
					t.AddRGB(col)
				}
				t.AddUI16(rangecheck.Uint16(int64(size)))
			} else {
				t.AddUI8(0x80)
			}
			t.AddUI8(uint8(len(chunk)))

			bw := &bitstream.Writer{}
			for _, g := range chunk {
				bw.WriteUB(uint32(g.index), glyphBits)
				bw.WriteSB(g.advance, advanceBits)
			}
			t.AddBits(bw)
		}
	}
	t.AddUI8(0)

	return id, w.endTag()
}

// transformPolygon applies m to all points of p.
func transformPolygon(p Polygon, m matrix.Matrix) Polygon {
	res := Polygon{Points: make([]Point, len(p.Points)), Flags: p.Flags}
	for i, pt := range p.Points {
		v := vec.Vec2{
			X: m[0]*float64(pt.X) + m[2]*float64(pt.Y) + m[4],
			Y: m[1]*float64(pt.X) + m[3]*float64(pt.Y) + m[5],
		}
		res.Points[i] = pointFromVec(v)
	}
	return res
}
