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

import "strconv"

// TagID identifies the type of a tag in an SWF file.
//
// Only the lower ten bits are stored in the file.
type TagID uint16

// Tag types used by this package.
const (
	TagEnd                 TagID = 0
	TagShowFrame           TagID = 1
	TagDefineShape         TagID = 2
	TagPlaceObject         TagID = 4
	TagRemoveObject        TagID = 5
	TagDefineBits          TagID = 6
	TagDefineButton        TagID = 7
	TagJPEGTables          TagID = 8
	TagSetBackgroundColor  TagID = 9
	TagDefineFont          TagID = 10
	TagDefineText          TagID = 11
	TagDoAction            TagID = 12
	TagStartSound          TagID = 15
	TagSoundStreamHead     TagID = 18
	TagSoundStreamBlock    TagID = 19
	TagDefineBitsLossless  TagID = 20
	TagDefineBitsJPEG2     TagID = 21
	TagPlaceObject2        TagID = 26
	TagRemoveObject2       TagID = 28
	TagDefineShape3        TagID = 32
	TagDefineText2         TagID = 33
	TagDefineBitsJPEG3     TagID = 35
	TagDefineBitsLossless2 TagID = 36
	TagDefineEditText      TagID = 37
	TagDefineSprite        TagID = 39
	TagFrameLabel          TagID = 43
	TagSoundStreamHead2    TagID = 45

	// TagHeader is a pseudo tag used to assemble the file header.
	// It is written without a tag header.
	TagHeader TagID = 0xFF
)

var tagNames = map[TagID]string{
	TagEnd:                 "End",
	TagShowFrame:           "ShowFrame",
	TagDefineShape:         "DefineShape",
	TagPlaceObject:         "PlaceObject",
	TagRemoveObject:        "RemoveObject",
	TagDefineBits:          "DefineBits",
	TagDefineButton:        "DefineButton",
	TagJPEGTables:          "JPEGTables",
	TagSetBackgroundColor:  "SetBackgroundColor",
	TagDefineFont:          "DefineFont",
	TagDefineText:          "DefineText",
	TagDoAction:            "DoAction",
	TagStartSound:          "StartSound",
	TagSoundStreamHead:     "SoundStreamHead",
	TagSoundStreamBlock:    "SoundStreamBlock",
	TagDefineBitsLossless:  "DefineBitsLossless",
	TagDefineBitsJPEG2:     "DefineBitsJPEG2",
	TagPlaceObject2:        "PlaceObject2",
	TagRemoveObject2:       "RemoveObject2",
	TagDefineShape3:        "DefineShape3",
	TagDefineText2:         "DefineText2",
	TagDefineBitsJPEG3:     "DefineBitsJPEG3",
	TagDefineBitsLossless2: "DefineBitsLossless2",
	TagDefineEditText:      "DefineEditText",
	TagDefineSprite:        "DefineSprite",
	TagFrameLabel:          "FrameLabel",
	TagSoundStreamHead2:    "SoundStreamHead2",
	TagHeader:              "Header",
}

func (id TagID) String() string {
	if name, ok := tagNames[id]; ok {
		return name
	}
	return "Tag" + strconv.Itoa(int(id))
}

// IsControl reports whether tags of this type belong to a timeline.
// Control tags are added to the innermost open sprite, if any.  All other
// tags are definitions and are always written to the main movie.
func (id TagID) IsControl() bool {
	switch id {
	case TagEnd, TagShowFrame, TagDoAction, TagStartSound,
		TagPlaceObject, TagPlaceObject2, TagRemoveObject, TagRemoveObject2,
		TagFrameLabel, TagSoundStreamHead, TagSoundStreamHead2,
		TagSoundStreamBlock:
		return true
	default:
		return false
	}
}
