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

package swftest

import (
	"encoding/binary"
	"fmt"

	"seehuhn.de/go/swf/bitstream"
)

// Font is a decoded DefineFont tag.
type Font struct {
	ID     uint16
	Glyphs [][]ShapeRecord
}

// ParseFont decodes the content of a DefineFont tag.
func ParseFont(data []byte) (*Font, error) {
	if len(data) < 2 {
		return nil, ErrFormat
	}
	f := &Font{ID: binary.LittleEndian.Uint16(data)}
	body := data[2:]
	if len(body) == 0 {
		return f, nil
	}
	if len(body) < 2 {
		return nil, ErrFormat
	}

	n := int(binary.LittleEndian.Uint16(body)) / 2
	if 2*n > len(body) {
		return nil, ErrFormat
	}
	offsets := make([]int, n+1)
	for i := range n {
		offsets[i] = int(binary.LittleEndian.Uint16(body[2*i:]))
	}
	offsets[n] = len(body)

	for i := range n {
		start, end := offsets[i], offsets[i+1]
		if start > end || end > len(body) {
			return nil, fmt.Errorf("invalid glyph offset: %w", ErrFormat)
		}
		r := bitstream.NewReader(body[start:end])
		fillBits, err := r.ReadUB(4)
		if err != nil {
			return nil, err
		}
		lineBits, err := r.ReadUB(4)
		if err != nil {
			return nil, err
		}
		recs, err := ReadShapeRecords(r, int(fillBits), int(lineBits))
		if err != nil {
			return nil, err
		}
		f.Glyphs = append(f.Glyphs, recs)
	}
	return f, nil
}

// GlyphEntry is a single glyph of a text record.
type GlyphEntry struct {
	Index   uint32
	Advance int32
}

// TextRecord is a decoded TEXTRECORD.
type TextRecord struct {
	Flags  uint8
	FontID uint16
	Color  [4]uint8
	Height uint16
	Glyphs []GlyphEntry
}

// Text is a decoded DefineText or DefineText2 tag.
type Text struct {
	ID          uint16
	Bounds      Rect
	Matrix      Matrix
	GlyphBits   int
	AdvanceBits int
	Records     []TextRecord
}

// ParseText decodes the content of a DefineText tag, or of a DefineText2
// tag if withAlpha is set.
func ParseText(data []byte, withAlpha bool) (*Text, error) {
	if len(data) < 2 {
		return nil, ErrFormat
	}
	t := &Text{ID: binary.LittleEndian.Uint16(data)}
	r := bitstream.NewReader(data[2:])

	var err error
	if t.Bounds, err = ReadRect(r); err != nil {
		return nil, err
	}
	if t.Matrix, err = ReadMatrix(r); err != nil {
		return nil, err
	}
	gb, err := r.ReadUB(8)
	if err != nil {
		return nil, err
	}
	ab, err := r.ReadUB(8)
	if err != nil {
		return nil, err
	}
	t.GlyphBits, t.AdvanceBits = int(gb), int(ab)

	for {
		flags, err := r.ReadUB(8)
		if err != nil {
			return nil, err
		}
		if flags == 0 {
			break
		}
		rec := TextRecord{Flags: uint8(flags)}
		if flags&0x08 != 0 {
			if rec.FontID, err = readUI16(r); err != nil {
				return nil, err
			}
		}
		if flags&0x04 != 0 {
			nc := 3
			if withAlpha {
				nc = 4
			}
			rec.Color[3] = 0xFF
			for i := range nc {
				v, err := r.ReadUB(8)
				if err != nil {
					return nil, err
				}
				rec.Color[i] = uint8(v)
			}
		}
		if flags&0x01 != 0 {
			if _, err := readUI16(r); err != nil {
				return nil, err
			}
		}
		if flags&0x02 != 0 {
			if _, err := readUI16(r); err != nil {
				return nil, err
			}
		}
		if flags&0x08 != 0 {
			if rec.Height, err = readUI16(r); err != nil {
				return nil, err
			}
		}

		count, err := r.ReadUB(8)
		if err != nil {
			return nil, err
		}
		for range count {
			idx, err := r.ReadUB(t.GlyphBits)
			if err != nil {
				return nil, err
			}
			adv, err := r.ReadSB(t.AdvanceBits)
			if err != nil {
				return nil, err
			}
			rec.Glyphs = append(rec.Glyphs, GlyphEntry{Index: idx, Advance: adv})
		}
		r.Align()
		t.Records = append(t.Records, rec)
	}

	if rest := r.Rest(); len(rest) != 0 {
		return nil, fmt.Errorf("%d extra bytes after text: %w", len(rest), ErrFormat)
	}
	return t, nil
}
