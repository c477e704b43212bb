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

// Package scene reads movie descriptions from TOML files.
//
// A scene lists the frames of a movie.  Each frame consists of drawing
// items (rectangles, ellipses, polygons, lines, text and images), which are
// combined into one sprite per frame.  Coordinates are in document units;
// the document size is mapped to the movie size.
package scene

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"seehuhn.de/go/swf"
)

// Scene is the contents of a scene file.
type Scene struct {
	Movie  Movie             `toml:"movie"`
	Fonts  map[string]string `toml:"fonts"`
	Frames []Frame           `toml:"frame"`

	// Dir is the directory used to resolve relative file names.
	Dir string `toml:"-"`
}

// Movie holds the global movie settings.
type Movie struct {
	// Width and Height give the movie size in points.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// DocWidth and DocHeight give the size of the coordinate system used
	// by the frames.  By default, the movie size is used.
	DocWidth  int32 `toml:"doc-width"`
	DocHeight int32 `toml:"doc-height"`

	FrameRate   float64 `toml:"frame-rate"`
	Background  string  `toml:"background"`
	Compress    string  `toml:"compress"`
	JPEGQuality int     `toml:"jpeg-quality"`
	Flatness    float64 `toml:"flatness"`
}

// Frame describes one frame of the movie.
type Frame struct {
	Label       string `toml:"label"`
	Stop        bool   `toml:"stop"`
	WaitOnClick bool   `toml:"wait-on-click"`
	Items       []Item `toml:"item"`
}

// Item is a single drawing operation.
type Item struct {
	// Kind is one of "rect", "ellipse", "polygon", "line", "text",
	// "image", "gradient", "clip" or "transparency".
	Kind string `toml:"kind"`

	Rect   []int32   `toml:"rect"`   // x0, y0, x1, y1
	Radius []int32   `toml:"radius"` // rx, ry
	Points [][]int32 `toml:"points"`

	Fill        string `toml:"fill"`
	Stroke      string `toml:"stroke"`
	StrokeWidth int32  `toml:"stroke-width"`

	Gradient *Gradient `toml:"gradient"`

	Text      string  `toml:"text"`
	Font      string  `toml:"font"`
	Size      int32   `toml:"size"`
	Angle     float64 `toml:"angle"`
	Underline bool    `toml:"underline"`
	Strikeout bool    `toml:"strikeout"`

	Image string `toml:"image"`

	Transparency uint8 `toml:"transparency"`
}

// Gradient describes a gradient fill.
type Gradient struct {
	Style   string  `toml:"style"`
	Start   string  `toml:"start"`
	End     string  `toml:"end"`
	Angle   float64 `toml:"angle"`
	OffsetX float64 `toml:"offset-x"`
	OffsetY float64 `toml:"offset-y"`
}

// Load reads a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	s, err := Parse(data, dir)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene description.  Relative file names are resolved
// with respect to dir.
func Parse(data []byte, dir string) (*Scene, error) {
	var s Scene
	err := toml.Unmarshal(data, &s)
	if err != nil {
		return nil, err
	}
	s.Dir = dir

	// Defaults
	if s.Movie.Width <= 0 {
		s.Movie.Width = 550
	}
	if s.Movie.Height <= 0 {
		s.Movie.Height = 400
	}
	if s.Movie.DocWidth <= 0 {
		s.Movie.DocWidth = int32(s.Movie.Width)
	}
	if s.Movie.DocHeight <= 0 {
		s.Movie.DocHeight = int32(s.Movie.Height)
	}

	_, err = s.Options()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Options returns the writer options for the scene.
func (s *Scene) Options() (*swf.Options, error) {
	opt := &swf.Options{
		FrameRate:   s.Movie.FrameRate,
		JPEGQuality: s.Movie.JPEGQuality,
		Flatness:    s.Movie.Flatness,
	}
	switch strings.ToLower(s.Movie.Compress) {
	case "", "auto":
		opt.CompressMode = swf.CompressAuto
	case "lossless":
		opt.CompressMode = swf.CompressLossless
	case "jpeg":
		opt.CompressMode = swf.CompressJPEG
	default:
		return nil, fmt.Errorf("unknown compression %q", s.Movie.Compress)
	}
	return opt, nil
}

// resolve returns the absolute path for a file name from the scene.
func (s *Scene) resolve(name string) string {
	if filepath.IsAbs(name) || s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}

// ParseColor decodes colors in the forms "#rrggbb" and "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func parseColorDefault(s, def string) (color.NRGBA, error) {
	if s == "" {
		s = def
	}
	return ParseColor(s)
}
