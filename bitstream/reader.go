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

package bitstream

import (
	"errors"
)

// ErrShortData is returned when a field extends beyond the end of the data.
var ErrShortData = errors.New("bitstream: unexpected end of data")

// Reader extracts bit fields from a byte slice.
type Reader struct {
	data []byte
	pos  int // bit position
}

// NewReader returns a Reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadUB reads an unsigned field of width n.
func (r *Reader) ReadUB(n int) (uint32, error) {
	if n < 0 || n > 32 {
		panic("bitstream: invalid field width")
	}
	if r.pos+n > 8*len(r.data) {
		return 0, ErrShortData
	}
	var v uint32
	for i := 0; i < n; i++ {
		b := r.data[r.pos>>3] >> (7 - r.pos&7) & 1
		v = v<<1 | uint32(b)
		r.pos++
	}
	return v, nil
}

// ReadSB reads a two's complement field of width n.
func (r *Reader) ReadSB(n int) (int32, error) {
	v, err := r.ReadUB(n)
	if err != nil || n == 0 {
		return 0, err
	}
	shift := 32 - n
	return int32(v<<shift) >> shift, nil
}

// ReadFB reads a 16.16 fixed point field of width n.
func (r *Reader) ReadFB(n int) (float64, error) {
	v, err := r.ReadSB(n)
	if err != nil {
		return 0, err
	}
	return float64(v) / 0x10000, nil
}

// Align skips to the start of the next byte, unless the reader is
// already byte-aligned.
func (r *Reader) Align() {
	r.pos = (r.pos + 7) &^ 7
}

// BitPos returns the number of bits consumed so far.
func (r *Reader) BitPos() int {
	return r.pos
}

// Rest aligns the reader and returns the remaining bytes.
func (r *Reader) Rest() []byte {
	r.Align()
	if r.pos/8 >= len(r.data) {
		return nil
	}
	return r.data[r.pos/8:]
}
