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

// Package swftest decodes SWF files, for use in tests.
//
// Only the structures written by this module are understood.
package swftest

import (
	"encoding/binary"
	"errors"
	"fmt"

	"seehuhn.de/go/swf/bitstream"
)

// ErrFormat indicates malformed input.
var ErrFormat = errors.New("swftest: malformed data")

// Header is the decoded file header.
type Header struct {
	Signature  string
	Version    uint8
	FileLength uint32
	Frame      Rect
	FrameRate  uint16 // 8.8 fixed point
	FrameCount uint16
}

// Rect is a decoded RECT record.
type Rect struct {
	XMin, XMax, YMin, YMax int32
}

// Tag is a tag with its raw content.
type Tag struct {
	ID   uint16
	Data []byte
}

// Parse decodes an uncompressed SWF file.  The returned tags include the
// final End tag.
func Parse(data []byte) (*Header, []Tag, error) {
	if len(data) < 8 {
		return nil, nil, ErrFormat
	}
	hdr := &Header{
		Signature:  string(data[:3]),
		Version:    data[3],
		FileLength: binary.LittleEndian.Uint32(data[4:8]),
	}
	if hdr.Signature != "FWS" {
		return nil, nil, fmt.Errorf("unsupported signature %q: %w", hdr.Signature, ErrFormat)
	}
	if int(hdr.FileLength) != len(data) {
		return nil, nil, fmt.Errorf("file length %d, header says %d: %w",
			len(data), hdr.FileLength, ErrFormat)
	}

	r := bitstream.NewReader(data[8:])
	frame, err := ReadRect(r)
	if err != nil {
		return nil, nil, err
	}
	hdr.Frame = frame
	pos := 8 + r.BitPos()/8
	if pos+4 > len(data) {
		return nil, nil, ErrFormat
	}
	hdr.FrameRate = binary.LittleEndian.Uint16(data[pos:])
	hdr.FrameCount = binary.LittleEndian.Uint16(data[pos+2:])

	tags, err := ParseTags(data[pos+4:])
	if err != nil {
		return nil, nil, err
	}
	return hdr, tags, nil
}

// ParseTags decodes a sequence of tags, up to and including the End tag.
func ParseTags(data []byte) ([]Tag, error) {
	var tags []Tag
	pos := 0
	for {
		if pos+2 > len(data) {
			return nil, fmt.Errorf("missing End tag: %w", ErrFormat)
		}
		code := binary.LittleEndian.Uint16(data[pos:])
		pos += 2
		id := code >> 6
		length := int(code & 0x3F)
		if length == 0x3F {
			if pos+4 > len(data) {
				return nil, ErrFormat
			}
			length = int(binary.LittleEndian.Uint32(data[pos:]))
			pos += 4
		}
		if pos+length > len(data) {
			return nil, fmt.Errorf("tag %d truncated: %w", id, ErrFormat)
		}
		tags = append(tags, Tag{ID: id, Data: data[pos : pos+length]})
		pos += length
		if id == 0 {
			return tags, nil
		}
	}
}

// Sprite is a decoded DefineSprite tag.
type Sprite struct {
	ID     uint16
	Frames uint16
	Tags   []Tag
}

// ParseSprite decodes the content of a DefineSprite tag.
func ParseSprite(data []byte) (*Sprite, error) {
	if len(data) < 4 {
		return nil, ErrFormat
	}
	tags, err := ParseTags(data[4:])
	if err != nil {
		return nil, err
	}
	return &Sprite{
		ID:     binary.LittleEndian.Uint16(data),
		Frames: binary.LittleEndian.Uint16(data[2:]),
		Tags:   tags,
	}, nil
}

// ReadRect decodes a RECT record and aligns the reader.
func ReadRect(r *bitstream.Reader) (Rect, error) {
	var rect Rect
	n, err := r.ReadUB(5)
	if err != nil {
		return rect, err
	}
	for _, p := range []*int32{&rect.XMin, &rect.XMax, &rect.YMin, &rect.YMax} {
		*p, err = r.ReadSB(int(n))
		if err != nil {
			return rect, err
		}
	}
	r.Align()
	return rect, nil
}

// Matrix is a decoded MATRIX record, in the form [a b c d e f].
type Matrix [6]float64

// ReadMatrix decodes a MATRIX record and aligns the reader.
func ReadMatrix(r *bitstream.Reader) (Matrix, error) {
	m := Matrix{1, 0, 0, 1, 0, 0}

	hasScale, err := r.ReadUB(1)
	if err != nil {
		return m, err
	}
	if hasScale == 1 {
		n, err := r.ReadUB(5)
		if err != nil {
			return m, err
		}
		if m[0], err = r.ReadFB(int(n)); err != nil {
			return m, err
		}
		if m[3], err = r.ReadFB(int(n)); err != nil {
			return m, err
		}
	}

	hasRotate, err := r.ReadUB(1)
	if err != nil {
		return m, err
	}
	if hasRotate == 1 {
		n, err := r.ReadUB(5)
		if err != nil {
			return m, err
		}
		if m[1], err = r.ReadFB(int(n)); err != nil {
			return m, err
		}
		if m[2], err = r.ReadFB(int(n)); err != nil {
			return m, err
		}
	}

	n, err := r.ReadUB(5)
	if err != nil {
		return m, err
	}
	tx, err := r.ReadSB(int(n))
	if err != nil {
		return m, err
	}
	ty, err := r.ReadSB(int(n))
	if err != nil {
		return m, err
	}
	m[4], m[5] = float64(tx), float64(ty)

	r.Align()
	return m, nil
}
