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

// Package bitstream implements the bit-packed fields used in SWF files.
//
// Fields are stored most significant bit first and are packed without gaps
// across byte boundaries.  Records which must start on a byte boundary are
// aligned explicitly using [Writer.Pad].
package bitstream

import (
	"io"
	"math"
	"math/bits"

	"seehuhn.de/go/swf/internal/rangecheck"
)

// Writer accumulates bit fields in memory.
//
// The zero value is an empty, byte-aligned stream.
type Writer struct {
	data []byte
	cur  byte  // partially filled byte
	used uint8 // number of bits of cur already in use, 0-7
}

// WriteUB appends the n least significant bits of v as an unsigned field.
// The width n must be between 0 and 32.
func (w *Writer) WriteUB(v uint32, n int) {
	if n == 0 {
		rangecheck.Check(v == 0, "value %d does not fit into 0 bits", v)
		return
	}
	if n < 0 || n > 32 {
		panic("bitstream: invalid field width")
	}
	if n < 32 {
		rangecheck.Check(v < 1<<n, "value %d does not fit into %d bits", v, n)
		v &= 1<<n - 1
	}

	for n > 0 {
		free := 8 - int(w.used)
		k := min(free, n)
		chunk := byte(v>>(n-k)) & byte(1<<k-1)
		w.cur |= chunk << (free - k)
		w.used += uint8(k)
		n -= k
		if w.used == 8 {
			w.data = append(w.data, w.cur)
			w.cur = 0
			w.used = 0
		}
	}
}

// WriteSB appends v as a two's complement field of width n.
func (w *Writer) WriteSB(v int32, n int) {
	if n == 0 {
		rangecheck.Check(v == 0, "value %d does not fit into 0 bits", v)
		return
	}
	if n < 32 {
		lim := int32(1) << (n - 1)
		rangecheck.Check(v >= -lim && v < lim,
			"value %d does not fit into %d signed bits", v, n)
		w.WriteUB(uint32(v)&(1<<n-1), n)
		return
	}
	w.WriteUB(uint32(v), n)
}

// WriteFB appends x as a 16.16 fixed point field of width n.
func (w *Writer) WriteFB(x float64, n int) {
	w.WriteSB(int32(Fixed16(x)), n)
}

// Pad fills the remainder of the current byte with zero bits.
// If the stream is already byte-aligned, Pad does nothing.
func (w *Writer) Pad() {
	if w.used == 0 {
		return
	}
	w.data = append(w.data, w.cur)
	w.cur = 0
	w.used = 0
}

// BitOffset returns the number of bits used in the current,
// incomplete byte.  The result is 0 if the stream is byte-aligned.
func (w *Writer) BitOffset() int {
	return int(w.used)
}

// Offset returns the number of complete bytes written so far.
func (w *Writer) Offset() int {
	return len(w.data)
}

// Bytes returns the contents of the stream.
// The stream must be byte-aligned.
func (w *Writer) Bytes() []byte {
	if w.used != 0 {
		panic("bitstream: stream is not byte-aligned")
	}
	return w.data
}

// WriteTo writes the contents of the stream to out.
// The stream must be byte-aligned; call [Writer.Pad] first.
//
// This implements the [io.WriterTo] interface.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	n, err := out.Write(w.Bytes())
	return int64(n), err
}

// Fixed16 converts x to the 16.16 fixed point representation.
// The integer part is rounded towards negative infinity, the fractional
// part is truncated.
func Fixed16(x float64) uint32 {
	fl := math.Floor(x)
	upper := rangecheck.Int16(int64(fl))
	lower := uint16((x - fl) * 0x10000)
	return uint32(int32(upper))<<16 | uint32(lower)
}

// SignedBits returns the minimal width of a two's complement field
// which can hold v.  SignedBits(0) is 0.
func SignedBits(v int32) int {
	if v == 0 {
		return 0
	}
	if v < 0 {
		v = ^v
	}
	return bits.Len32(uint32(v)) + 1
}

// UnsignedBits returns the minimal width of an unsigned field
// which can hold v.  UnsignedBits(0) is 0.
func UnsignedBits(v uint32) int {
	return bits.Len32(v)
}

// FixedBits returns the minimal width of a fixed point field
// which can hold x.
func FixedBits(x float64) int {
	return SignedBits(int32(Fixed16(x)))
}
