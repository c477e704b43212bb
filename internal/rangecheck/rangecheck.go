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

// Package rangecheck converts integers to narrower types.
//
// A value which does not fit into the destination type indicates a
// programming error.  When the code is built with the "swfdebug" build tag,
// such values cause a panic.  Otherwise the value is silently truncated,
// which keeps the output readable but may distort the geometry.
package rangecheck

import "fmt"

// Int16 converts v to an int16.
func Int16(v int64) int16 {
	if Enabled && (v < -32768 || v > 32767) {
		panic(fmt.Sprintf("value %d does not fit into int16", v))
	}
	return int16(v)
}

// Uint16 converts v to a uint16.
func Uint16(v int64) uint16 {
	if Enabled && (v < 0 || v > 0xFFFF) {
		panic(fmt.Sprintf("value %d does not fit into uint16", v))
	}
	return uint16(v)
}

// Uint8 converts v to a uint8.
func Uint8(v int64) uint8 {
	if Enabled && (v < 0 || v > 0xFF) {
		panic(fmt.Sprintf("value %d does not fit into uint8", v))
	}
	return uint8(v)
}

// Check panics with the given message if range checks are enabled and ok is
// false.
func Check(ok bool, format string, args ...any) {
	if Enabled && !ok {
		panic(fmt.Sprintf(format, args...))
	}
}
