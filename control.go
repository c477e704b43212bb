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
	"image/color"

	"seehuhn.de/go/geom/matrix"
)

// Flags used in PlaceObject2 tags.
const (
	placeHasMatrix    = 0x04
	placeHasCharacter = 0x02
)

// Action codes used in DoAction tags.
const (
	actionEnd       = 0x00
	actionStop      = 0x07
	actionGotoFrame = 0x81
)

// PlaceShape places the character id at the given depth.
// The position is in document units.
func (w *Writer) PlaceShape(id, depth uint16, x, y int32) error {
	if w.stored {
		return ErrStored
	}
	p := w.Map(Point{x, y})
	t := w.startTag(TagPlaceObject2)
	t.AddUI8(placeHasMatrix | placeHasCharacter)
	t.AddUI16(depth)
	t.AddUI16(id)
	t.AddMatrix(matrix.Translate(float64(p.X), float64(p.Y)))
	return w.endTag()
}

// RemoveShape removes the character at the given depth.
func (w *Writer) RemoveShape(depth uint16) error {
	if w.stored {
		return ErrStored
	}
	t := w.startTag(TagRemoveObject2)
	t.AddUI16(depth)
	return w.endTag()
}

// ShowFrame ends the current frame.
func (w *Writer) ShowFrame() error {
	if w.stored {
		return ErrStored
	}
	w.startTag(TagShowFrame)
	return w.endTag()
}

// Stop adds an action which stops playback at the current frame.
func (w *Writer) Stop() error {
	if w.stored {
		return ErrStored
	}
	t := w.startTag(TagDoAction)
	t.AddUI8(actionStop)
	t.AddUI8(actionEnd)
	return w.endTag()
}

// GotoFrame adds an action which continues playback at the given frame.
// Frames are numbered starting from 0.
func (w *Writer) GotoFrame(frame uint16) error {
	if w.stored {
		return ErrStored
	}
	t := w.startTag(TagDoAction)
	t.AddUI8(actionGotoFrame)
	t.AddUI16(2)
	t.AddUI16(frame)
	t.AddUI8(actionEnd)
	return w.endTag()
}

// WaitOnClick stops playback until the user clicks on the movie.
//
// This is implemented using an invisible button covering the whole movie,
// which is placed at the given depth and removed again once playback
// resumes.
func (w *Writer) WaitOnClick(depth uint16) error {
	if w.stored {
		return ErrStored
	}
	if w.pageButton == 0 {
		id, err := w.definePageButton()
		if err != nil {
			return err
		}
		w.pageButton = id
	}

	err := w.PlaceShape(w.pageButton, depth, 0, 0)
	if err != nil {
		return err
	}
	err = w.Stop()
	if err != nil {
		return err
	}
	err = w.ShowFrame()
	if err != nil {
		return err
	}
	return w.RemoveShape(depth)
}

// definePageButton defines an invisible button of the size of the movie.
// Clicking it continues playback.
func (w *Writer) definePageButton() (uint16, error) {
	frame := Rect{XMax: w.outWidth, YMax: w.outHeight}
	shapeID, err := w.defineShape3(PolyPolygon{frame.Polygon()},
		SolidFill{Color: color.NRGBA{}}, nil)
	if err != nil {
		return 0, err
	}

	id := w.createID()
	t := w.startTag(TagDefineButton)
	t.AddUI16(id)

	// button record: hit test state only
	t.AddUI8(0x08)
	t.AddUI16(shapeID)
	t.AddUI16(0) // depth
	t.AddMatrix(matrix.Identity)
	t.AddUI8(0) // end of button records

	// actions: play, end
	t.AddUI8(0x06)
	t.AddUI8(actionEnd)
	return id, w.endTag()
}

// SetBackgroundColor sets the background color of the movie.
func (w *Writer) SetBackgroundColor(c color.NRGBA) error {
	if w.stored {
		return ErrStored
	}
	t := w.startTag(TagSetBackgroundColor)
	t.AddRGB(c)
	return w.endTag()
}

// FrameLabel names the current frame.
func (w *Writer) FrameLabel(name string) error {
	if w.stored {
		return ErrStored
	}
	t := w.startTag(TagFrameLabel)
	t.AddString(name)
	return w.endTag()
}
