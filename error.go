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
	"fmt"
)

// Errors returned by [Writer] methods.
var (
	// ErrStored is returned by all methods which modify a movie after
	// [Writer.StoreTo] has been called.
	ErrStored = errors.New("movie has already been stored")

	// ErrNoSprite is returned by [Writer.EndSprite] if no sprite is open.
	ErrNoSprite = errors.New("no open sprite")
)

// GlyphError reports a failure to obtain a glyph outline.
type GlyphError struct {
	Rune rune
	Font string
	Err  error
}

func (err *GlyphError) Error() string {
	return fmt.Sprintf("font %q: glyph for %q: %v", err.Font, err.Rune, err.Err)
}

func (err *GlyphError) Unwrap() error {
	return err.Err
}
