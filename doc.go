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

// Package swf writes vector movies in the SWF file format.
//
// A [Writer] collects the definitions and control tags of a movie and
// writes the finished file using [Writer.StoreTo].  Shape definitions take
// coordinates in twips (1/20 point).  Document coordinates are converted
// to twips by [Writer.Map] and its relatives, using the movie and document
// sizes passed to [NewWriter]:
//
//	w, err := swf.NewWriter(20*550, 20*400, 550, 400, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := w.MapRect(swf.Rect{XMax: 100, YMax: 50})
//	id, err := w.DefineShape(r.Polygon(),
//	    swf.SolidFill{Color: color.NRGBA{R: 255, A: 255}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = w.PlaceShape(id, 1, 0, 0)
//	...
//	err = w.ShowFrame()
//	...
//	err = w.StoreTo(out)
//
// Shapes can be filled with solid colors, gradients and bitmaps.  Text is
// converted into embedded DefineFont glyph outlines, with one font per
// [Face].  [Writer.DefineGraphic] combines a sequence of drawing actions
// into a single sprite.  Actions use document coordinates.
//
// Sprites can be nested.  While a sprite is open, control tags such as
// [TagShowFrame] and [TagPlaceObject2] are added to the sprite; character
// definitions always go to the top level of the movie.
package swf
