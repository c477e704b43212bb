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

// RecordKind distinguishes the types of shape records.
type RecordKind int

// These are the shape record types.
const (
	RecordEnd RecordKind = iota
	RecordStyle
	RecordStraight
	RecordCurve
)

// ShapeRecord is a decoded shape record.
type ShapeRecord struct {
	Kind RecordKind

	// style change records
	MoveTo       bool
	MoveX, MoveY int32
	FillStyle0   int32 // -1 if unchanged
	FillStyle1   int32 // -1 if unchanged
	LineStyle    int32 // -1 if unchanged

	// edge records
	NumBits int
	DX, DY  int32 // straight edges
	CX, CY  int32 // curved edges: control point delta
	AX, AY  int32 // curved edges: anchor delta, relative to the control point
}

// ReadShapeRecords decodes shape records up to and including the end record.
// The reader is aligned afterwards.
func ReadShapeRecords(r *bitstream.Reader, fillBits, lineBits int) ([]ShapeRecord, error) {
	var res []ShapeRecord
	for {
		isEdge, err := r.ReadUB(1)
		if err != nil {
			return nil, err
		}

		if isEdge == 0 {
			flags, err := r.ReadUB(5)
			if err != nil {
				return nil, err
			}
			if flags == 0 {
				res = append(res, ShapeRecord{Kind: RecordEnd})
				r.Align()
				return res, nil
			}
			if flags&0x10 != 0 {
				return nil, fmt.Errorf("new styles not supported: %w", ErrFormat)
			}
			rec := ShapeRecord{Kind: RecordStyle, FillStyle0: -1, FillStyle1: -1, LineStyle: -1}
			if flags&0x01 != 0 {
				n, err := r.ReadUB(5)
				if err != nil {
					return nil, err
				}
				rec.MoveTo = true
				if rec.MoveX, err = r.ReadSB(int(n)); err != nil {
					return nil, err
				}
				if rec.MoveY, err = r.ReadSB(int(n)); err != nil {
					return nil, err
				}
			}
			if flags&0x02 != 0 {
				v, err := r.ReadUB(fillBits)
				if err != nil {
					return nil, err
				}
				rec.FillStyle0 = int32(v)
			}
			if flags&0x04 != 0 {
				v, err := r.ReadUB(fillBits)
				if err != nil {
					return nil, err
				}
				rec.FillStyle1 = int32(v)
			}
			if flags&0x08 != 0 {
				v, err := r.ReadUB(lineBits)
				if err != nil {
					return nil, err
				}
				rec.LineStyle = int32(v)
			}
			res = append(res, rec)
			continue
		}

		straight, err := r.ReadUB(1)
		if err != nil {
			return nil, err
		}
		nb, err := r.ReadUB(4)
		if err != nil {
			return nil, err
		}
		n := int(nb) + 2

		if straight == 1 {
			rec := ShapeRecord{Kind: RecordStraight, NumBits: n}
			general, err := r.ReadUB(1)
			if err != nil {
				return nil, err
			}
			if general == 1 {
				if rec.DX, err = r.ReadSB(n); err != nil {
					return nil, err
				}
				if rec.DY, err = r.ReadSB(n); err != nil {
					return nil, err
				}
			} else {
				vert, err := r.ReadUB(1)
				if err != nil {
					return nil, err
				}
				d, err := r.ReadSB(n)
				if err != nil {
					return nil, err
				}
				if vert == 1 {
					rec.DY = d
				} else {
					rec.DX = d
				}
			}
			res = append(res, rec)
			continue
		}

		rec := ShapeRecord{Kind: RecordCurve, NumBits: n}
		for _, p := range []*int32{&rec.CX, &rec.CY, &rec.AX, &rec.AY} {
			if *p, err = r.ReadSB(n); err != nil {
				return nil, err
			}
		}
		res = append(res, rec)
	}
}

// FillStyle is a decoded FILLSTYLE record.
type FillStyle struct {
	Type     uint8
	Color    [4]uint8 // solid fills
	Matrix   Matrix   // gradient and bitmap fills
	Ratios   []uint8  // gradient fills
	Colors   [][4]uint8
	BitmapID uint16
}

// LineStyle is a decoded LINESTYLE record of a DefineShape3 tag.
type LineStyle struct {
	Width uint16
	Color [4]uint8
}

// Shape is a decoded DefineShape3 tag.
type Shape struct {
	ID         uint16
	Bounds     Rect
	FillStyles []FillStyle
	LineStyles []LineStyle
	Records    []ShapeRecord
}

// ParseShape3 decodes the content of a DefineShape3 tag.
func ParseShape3(data []byte) (*Shape, error) {
	if len(data) < 2 {
		return nil, ErrFormat
	}
	s := &Shape{ID: binary.LittleEndian.Uint16(data)}
	r := bitstream.NewReader(data[2:])

	var err error
	s.Bounds, err = ReadRect(r)
	if err != nil {
		return nil, err
	}

	nFill, err := r.ReadUB(8)
	if err != nil {
		return nil, err
	}
	for range nFill {
		fs, err := readFillStyle(r)
		if err != nil {
			return nil, err
		}
		s.FillStyles = append(s.FillStyles, fs)
	}

	nLine, err := r.ReadUB(8)
	if err != nil {
		return nil, err
	}
	for range nLine {
		w, err := readUI16(r)
		if err != nil {
			return nil, err
		}
		c, err := readRGBA(r)
		if err != nil {
			return nil, err
		}
		s.LineStyles = append(s.LineStyles, LineStyle{Width: w, Color: c})
	}

	fillBits, err := r.ReadUB(4)
	if err != nil {
		return nil, err
	}
	lineBits, err := r.ReadUB(4)
	if err != nil {
		return nil, err
	}
	s.Records, err = ReadShapeRecords(r, int(fillBits), int(lineBits))
	if err != nil {
		return nil, err
	}
	if rest := r.Rest(); len(rest) != 0 {
		return nil, fmt.Errorf("%d extra bytes after shape: %w", len(rest), ErrFormat)
	}
	return s, nil
}

func readFillStyle(r *bitstream.Reader) (FillStyle, error) {
	var fs FillStyle
	t, err := r.ReadUB(8)
	if err != nil {
		return fs, err
	}
	fs.Type = uint8(t)

	switch {
	case fs.Type == 0x00:
		fs.Color, err = readRGBA(r)
		return fs, err
	case fs.Type == 0x10 || fs.Type == 0x12:
		fs.Matrix, err = ReadMatrix(r)
		if err != nil {
			return fs, err
		}
		n, err := r.ReadUB(8)
		if err != nil {
			return fs, err
		}
		for range n {
			ratio, err := r.ReadUB(8)
			if err != nil {
				return fs, err
			}
			c, err := readRGBA(r)
			if err != nil {
				return fs, err
			}
			fs.Ratios = append(fs.Ratios, uint8(ratio))
			fs.Colors = append(fs.Colors, c)
		}
		return fs, nil
	case fs.Type >= 0x40 && fs.Type <= 0x43:
		fs.BitmapID, err = readUI16(r)
		if err != nil {
			return fs, err
		}
		fs.Matrix, err = ReadMatrix(r)
		return fs, err
	default:
		return fs, fmt.Errorf("unknown fill style type 0x%02x: %w", fs.Type, ErrFormat)
	}
}

func readUI16(r *bitstream.Reader) (uint16, error) {
	lo, err := r.ReadUB(8)
	if err != nil {
		return 0, err
	}
	hi, err := r.ReadUB(8)
	if err != nil {
		return 0, err
	}
	return uint16(hi<<8 | lo), nil
}

func readRGBA(r *bitstream.Reader) ([4]uint8, error) {
	var c [4]uint8
	for i := range c {
		v, err := r.ReadUB(8)
		if err != nil {
			return c, err
		}
		c[i] = uint8(v)
	}
	return c, nil
}
