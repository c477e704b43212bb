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

package sfntface

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/swf"
	"seehuhn.de/go/swf/internal/swftest"
)

func TestGlyph(t *testing.T) {
	face, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if face.FontKey() == "" {
		t.Error("empty font key")
	}

	g, err := face.Glyph('A')
	if err != nil {
		t.Fatal(err)
	}
	if g.Path == nil {
		t.Fatal("missing outline for 'A'")
	}
	if g.UnitsPerEm <= 0 {
		t.Errorf("invalid units per em %g", g.UnitsPerEm)
	}
	if g.Advance <= 0 || g.Advance > 2*g.UnitsPerEm {
		t.Errorf("implausible advance width %g", g.Advance)
	}

	n := 0
	for range g.Path {
		n++
	}
	if n < 3 {
		t.Errorf("outline of 'A' has only %d commands", n)
	}
}

func TestMissingGlyph(t *testing.T) {
	face, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	_, err = face.Glyph('\U0001F600')
	if !errors.Is(err, swf.ErrNoGlyph) {
		t.Errorf("got error %v, want %v", err, swf.ErrNoGlyph)
	}
}

func TestMetrics(t *testing.T) {
	face, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	asc, desc := face.Ascent(), face.Descent()
	if asc <= 0 || asc > 2*swf.EMSquare {
		t.Errorf("implausible ascent %g", asc)
	}
	if desc >= 0 || math.Abs(desc) > swf.EMSquare {
		t.Errorf("implausible descent %g", desc)
	}
}

func TestParseError(t *testing.T) {
	_, err := Parse([]byte("not a font"))
	if err == nil {
		t.Error("invalid font data accepted")
	}
}

func TestMovieText(t *testing.T) {
	face, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	w, err := swf.NewWriter(2000, 2000, 100, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = w.DrawText(swf.TextRun{
		Pos:  swf.Point{X: 100, Y: 1000},
		Text: "Hello",
		Style: swf.TextStyle{
			Face:  face,
			Size:  480,
			Color: color.NRGBA{A: 255},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	err = w.StoreTo(buf)
	if err != nil {
		t.Fatal(err)
	}

	_, tags, err := swftest.Parse(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 3 || swf.TagID(tags[0].ID) != swf.TagDefineFont {
		t.Fatalf("unexpected tags %v", tags)
	}
	font, err := swftest.ParseFont(tags[0].Data)
	if err != nil {
		t.Fatal(err)
	}
	// H, e, l, o
	if len(font.Glyphs) != 4 {
		t.Fatalf("%d glyphs, want 4", len(font.Glyphs))
	}

	count := func(recs []swftest.ShapeRecord, kind swftest.RecordKind) int {
		n := 0
		for _, rec := range recs {
			if rec.Kind == kind {
				n++
			}
		}
		return n
	}
	if n := count(font.Glyphs[3], swftest.RecordCurve); n == 0 {
		t.Error("glyph 'o' has no curves")
	}
	// H has a single contour, o has two
	if n := count(font.Glyphs[0], swftest.RecordStyle); n != 1 {
		t.Errorf("glyph 'H' has %d contours", n)
	}
	if n := count(font.Glyphs[3], swftest.RecordStyle); n != 2 {
		t.Errorf("glyph 'o' has %d contours", n)
	}
}
