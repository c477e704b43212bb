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
	"io"
)

// Sprite collects the control tags of a movie clip.
//
// The tags are written inside a DefineSprite tag, which is emitted when
// the sprite is closed.
type Sprite struct {
	ID     uint16
	Frames uint16

	tags []*Tag
}

// NewSprite returns an empty sprite with the given character id.
func NewSprite(id uint16) *Sprite {
	return &Sprite{ID: id}
}

// AppendTag transfers ownership of t to the sprite.
// ShowFrame tags advance the frame count.
func (s *Sprite) AppendTag(t *Tag) {
	if t.ID() == TagShowFrame {
		s.Frames++
	}
	s.tags = append(s.tags, t)
}

// Tags returns the tags owned by the sprite, in order.
func (s *Sprite) Tags() []*Tag {
	return s.tags
}

// WriteTo writes all tags of the sprite, followed by an End tag.
//
// This implements the [io.WriterTo] interface.
func (s *Sprite) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, t := range s.tags {
		n, err := t.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := NewTag(TagEnd).WriteTo(w)
	return total + n, err
}

// defineSprite wraps the sprite into a DefineSprite tag.
// The frame count is at least one.
func (s *Sprite) defineSprite() (*Tag, error) {
	t := NewTag(TagDefineSprite)
	t.AddUI16(s.ID)
	t.AddUI16(max(s.Frames, 1))
	_, err := s.WriteTo(&t.buf)
	if err != nil {
		return nil, err
	}
	return t, nil
}
