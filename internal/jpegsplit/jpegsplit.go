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

// Package jpegsplit separates the coding tables of a JPEG file from the
// image data.
//
// DefineBitsJPEG2 and DefineBitsJPEG3 tags store a JPEG file as two
// concatenated JPEG streams: the first holds the quantization and Huffman
// tables, the second the frame header and the entropy coded data.
package jpegsplit

import (
	"encoding/binary"
	"errors"
)

// JPEG marker codes
const (
	markerTEM  = 0x01
	markerDHT  = 0xC4 // define Huffman table
	markerRST0 = 0xD0
	markerRST7 = 0xD7
	markerSOI  = 0xD8 // start of image
	markerEOI  = 0xD9 // end of image
	markerSOS  = 0xDA // start of scan
	markerDQT  = 0xDB // define quantization table
)

var (
	errNotJPEG   = errors.New("jpegsplit: missing SOI marker")
	errTruncated = errors.New("jpegsplit: truncated JPEG data")
	errMarker    = errors.New("jpegsplit: invalid marker")
	errNoScan    = errors.New("jpegsplit: no image data")
)

// Split splits a JPEG file into a tables stream and an image stream.
// Both streams start with an SOI marker and end with an EOI marker.
func Split(data []byte) (tables, image []byte, err error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != markerSOI {
		return nil, nil, errNotJPEG
	}

	tables = []byte{0xFF, markerSOI}
	image = []byte{0xFF, markerSOI}

	pos := 2
	for {
		// skip fill bytes
		for pos+1 < len(data) && data[pos] == 0xFF && data[pos+1] == 0xFF {
			pos++
		}
		if pos+2 > len(data) {
			return nil, nil, errTruncated
		}
		if data[pos] != 0xFF {
			return nil, nil, errMarker
		}
		marker := data[pos+1]

		switch {
		case marker == markerEOI:
			return nil, nil, errNoScan
		case marker == markerSOI || marker == markerTEM ||
			(marker >= markerRST0 && marker <= markerRST7):
			pos += 2
			continue
		}

		if pos+4 > len(data) {
			return nil, nil, errTruncated
		}
		segLen := int(binary.BigEndian.Uint16(data[pos+2:]))
		if segLen < 2 {
			return nil, nil, errMarker
		}
		end := pos + 2 + segLen
		if end > len(data) {
			return nil, nil, errTruncated
		}

		switch marker {
		case markerDQT, markerDHT:
			tables = append(tables, data[pos:end]...)
		case markerSOS:
			// The scan data runs to the end of the file.
			image = append(image, data[pos:]...)
			n := len(image)
			if image[n-2] != 0xFF || image[n-1] != markerEOI {
				image = append(image, 0xFF, markerEOI)
			}
			tables = append(tables, 0xFF, markerEOI)
			return tables, image, nil
		default:
			image = append(image, data[pos:end]...)
		}
		pos = end
	}
}
