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
	"bytes"
	"encoding/binary"
	"image/color"
	"io"
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/swf/bitstream"
	"seehuhn.de/go/swf/internal/rangecheck"
)

// Tag is a single record of an SWF file, under construction.
//
// The content of a tag is append-only.  Once a tag has been handed to a
// [Sprite] or written to a stream, it must no longer be modified.
type Tag struct {
	id  TagID
	buf bytes.Buffer
}

// NewTag allocates a new, empty tag of the given type.
func NewTag(id TagID) *Tag {
	return &Tag{id: id}
}

// ID returns the tag type.
func (t *Tag) ID() TagID {
	return t.id
}

// Len returns the number of content bytes.
func (t *Tag) Len() int {
	return t.buf.Len()
}

// Bytes returns the tag content, without the tag header.
func (t *Tag) Bytes() []byte {
	return t.buf.Bytes()
}

// AddUI8 appends a byte.
func (t *Tag) AddUI8(v uint8) {
	t.buf.WriteByte(v)
}

// AddUI16 appends a 16-bit little-endian integer.
func (t *Tag) AddUI16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	t.buf.Write(b[:])
}

// AddUI32 appends a 32-bit little-endian integer.
func (t *Tag) AddUI32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	t.buf.Write(b[:])
}

// AddRGB appends the color components red, green and blue.
func (t *Tag) AddRGB(c color.NRGBA) {
	t.buf.Write([]byte{c.R, c.G, c.B})
}

// AddRGBA appends the color components red, green, blue and alpha.
func (t *Tag) AddRGBA(c color.NRGBA) {
	t.buf.Write([]byte{c.R, c.G, c.B, c.A})
}

// AddRect appends a RECT record.
func (t *Tag) AddRect(r Rect) {
	bw := &bitstream.Writer{}
	WriteRect(bw, r)
	t.buf.Write(bw.Bytes())
}

// AddMatrix appends a MATRIX record.
func (t *Tag) AddMatrix(m matrix.Matrix) {
	bw := &bitstream.Writer{}
	WriteMatrix(bw, m)
	t.buf.Write(bw.Bytes())
}

// AddBits pads bw to a byte boundary and appends its contents.
func (t *Tag) AddBits(bw *bitstream.Writer) {
	bw.Pad()
	t.buf.Write(bw.Bytes())
}

// AddBytes appends raw data, for example pre-compressed image data.
func (t *Tag) AddBytes(data []byte) {
	t.buf.Write(data)
}

// AddString appends a zero-terminated string.
func (t *Tag) AddString(s string) {
	t.buf.WriteString(s)
	t.buf.WriteByte(0)
}

// WriteTo writes the tag, including the tag header, to w.
//
// Tags with less than 63 bytes of content use the short header form,
// longer tags use the long form with an explicit 32-bit length.
func (t *Tag) WriteTo(w io.Writer) (int64, error) {
	var hdr []byte
	if t.id != TagHeader {
		n := t.buf.Len()
		code := uint16(t.id&0x3FF) << 6
		if n < 0x3F {
			hdr = binary.LittleEndian.AppendUint16(hdr, code|uint16(n))
		} else {
			hdr = binary.LittleEndian.AppendUint16(hdr, code|0x3F)
			hdr = binary.LittleEndian.AppendUint32(hdr, uint32(n))
		}
	}

	n1, err := w.Write(hdr)
	if err != nil {
		return int64(n1), err
	}
	n2, err := w.Write(t.buf.Bytes())
	return int64(n1 + n2), err
}

// WriteRect appends a RECT record to bw and pads the stream.
//
// All four coordinates use the smallest field width which can represent
// each of them.
func WriteRect(bw *bitstream.Writer, r Rect) {
	r = r.normalized()
	nBits := max(
		bitstream.SignedBits(r.XMin), bitstream.SignedBits(r.XMax),
		bitstream.SignedBits(r.YMin), bitstream.SignedBits(r.YMax))

	bw.WriteUB(uint32(nBits), 5)
	bw.WriteSB(r.XMin, nBits)
	bw.WriteSB(r.XMax, nBits)
	bw.WriteSB(r.YMin, nBits)
	bw.WriteSB(r.YMax, nBits)
	bw.Pad()
}

// WriteMatrix appends a MATRIX record to bw and pads the stream.
//
// The matrix maps (x, y) to (m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]).
// The scale and rotation parts are only included if they differ from the
// identity.  Translations are rounded to whole twips.
func WriteMatrix(bw *bitstream.Writer, m matrix.Matrix) {
	if m[0] != 1 || m[3] != 1 {
		nBits := max(bitstream.FixedBits(m[0]), bitstream.FixedBits(m[3]))
		bw.WriteUB(1, 1)
		bw.WriteUB(uint32(fieldWidth(nBits)), 5)
		bw.WriteFB(m[0], nBits)
		bw.WriteFB(m[3], nBits)
	} else {
		bw.WriteUB(0, 1)
	}

	if m[1] != 0 || m[2] != 0 {
		nBits := max(bitstream.FixedBits(m[1]), bitstream.FixedBits(m[2]))
		bw.WriteUB(1, 1)
		bw.WriteUB(uint32(fieldWidth(nBits)), 5)
		bw.WriteFB(m[1], nBits)
		bw.WriteFB(m[2], nBits)
	} else {
		bw.WriteUB(0, 1)
	}

	tx := roundInt32(m[4])
	ty := roundInt32(m[5])
	nBits := max(bitstream.SignedBits(tx), bitstream.SignedBits(ty))
	bw.WriteUB(uint32(fieldWidth(nBits)), 5)
	bw.WriteSB(tx, nBits)
	bw.WriteSB(ty, nBits)
	bw.Pad()
}

// fieldWidth checks that a field width fits into the 5-bit width fields
// used by RECT and MATRIX records.
func fieldWidth(n int) int {
	rangecheck.Check(n < 32, "field width %d exceeds 31 bits", n)
	return n & 31
}

// ToTwips converts a length in points to twips.
func ToTwips(pt float64) int32 {
	if math.IsNaN(pt) {
		return 0
	}
	return roundInt32(pt * 20)
}
