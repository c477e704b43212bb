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
	"fmt"
	"io"
	"log/slog"

	"seehuhn.de/go/swf/internal/rangecheck"
	"seehuhn.de/go/swf/internal/tempstream"
)

// CompressMode selects how bitmaps are stored.
type CompressMode uint8

// These are the supported bitmap compression modes.
const (
	// CompressAuto uses JPEG compression if this gives a smaller file
	// than lossless compression.
	CompressAuto CompressMode = iota
	CompressLossless
	CompressJPEG
)

func (m CompressMode) String() string {
	switch m {
	case CompressAuto:
		return "auto"
	case CompressLossless:
		return "lossless"
	case CompressJPEG:
		return "jpeg"
	default:
		return fmt.Sprintf("CompressMode(%d)", uint8(m))
	}
}

// Options can be used to control the output of a [Writer].
// The zero value selects the defaults for all fields.
type Options struct {
	// CompressMode selects the bitmap compression.
	CompressMode CompressMode

	// JPEGQuality is the quality used for JPEG compression, between
	// 1 and 100.  If this is zero, 75 is used.
	JPEGQuality int

	// JPEGEncoder is used to compress bitmaps.  If this is nil, the
	// encoder from the standard library is used.
	JPEGEncoder JPEGEncoder

	// FrameRate is the number of frames per second.  The default is 12.
	FrameRate float64

	// Version is the file format version stored in the header.
	// The default is 5.
	Version uint8

	// Flatness is the maximal distance, in twips, between a cubic Bézier
	// curve and its approximation by quadratic curves.  The default is 16.
	Flatness float64

	// MaxSubdivision limits the number of times a cubic Bézier curve is
	// split during approximation.  The default is 16.
	MaxSubdivision int

	// TempDir is the directory used for temporary files.  If this is
	// empty, the system default is used.
	TempDir string

	// SpillThreshold is the size in bytes above which the output is
	// buffered in temporary files instead of in memory.  Zero keeps
	// everything in memory.
	SpillThreshold int64

	// Logger receives debug messages.  If this is nil, nothing is logged.
	Logger *slog.Logger
}

var defaultOptions = Options{
	JPEGQuality:    75,
	FrameRate:      12,
	Version:        5,
	Flatness:       16,
	MaxSubdivision: 16,
}

func (opt *Options) withDefaults() Options {
	var res Options
	if opt != nil {
		res = *opt
	}
	if res.JPEGQuality <= 0 || res.JPEGQuality > 100 {
		res.JPEGQuality = defaultOptions.JPEGQuality
	}
	if res.JPEGEncoder == nil {
		res.JPEGEncoder = stdJPEG{}
	}
	if res.FrameRate <= 0 {
		res.FrameRate = defaultOptions.FrameRate
	}
	if res.Version == 0 {
		res.Version = defaultOptions.Version
	}
	if res.Flatness <= 0 {
		res.Flatness = defaultOptions.Flatness
	}
	if res.MaxSubdivision <= 0 {
		res.MaxSubdivision = defaultOptions.MaxSubdivision
	}
	if res.Logger == nil {
		res.Logger = newNopLogger()
	}
	return res
}

// Writer assembles an SWF movie.
//
// Character definitions (shapes, bitmaps, texts) are written to the movie
// timeline directly.  Control tags go to the innermost open sprite, or to
// the movie timeline if no sprite is open.  Fonts are written when the
// movie is stored, once all glyphs are known.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	opt Options
	log *slog.Logger

	outWidth, outHeight int32
	scaleX, scaleY      float64

	movie *tempstream.Stream
	fonts *tempstream.Stream

	nextID uint16
	frames uint16

	cur     *Tag
	sprites []*Sprite

	bitmaps   map[uint64]uint16
	fontList  []*FlashFont
	fontByKey map[string]*FlashFont

	clip         *convexClip
	transparency uint8
	pageButton   uint16

	stored bool
}

// NewWriter creates a movie of size outWidth x outHeight twips.
// Coordinates passed to the drawing methods are in document units, where
// the document is docWidth x docHeight units in size.
//
// If opt is nil, default options are used.
func NewWriter(outWidth, outHeight, docWidth, docHeight int32, opt *Options) (*Writer, error) {
	if outWidth <= 0 || outHeight <= 0 || docWidth <= 0 || docHeight <= 0 {
		return nil, fmt.Errorf("invalid movie size %dx%d (document %dx%d)",
			outWidth, outHeight, docWidth, docHeight)
	}

	o := opt.withDefaults()
	w := &Writer{
		opt: o,
		log: o.Logger,

		outWidth:  outWidth,
		outHeight: outHeight,
		scaleX:    float64(outWidth) / float64(docWidth),
		scaleY:    float64(outHeight) / float64(docHeight),

		movie: tempstream.New(o.TempDir, o.SpillThreshold),
		fonts: tempstream.New(o.TempDir, o.SpillThreshold),

		bitmaps:   make(map[uint64]uint16),
		fontByKey: make(map[string]*FlashFont),
	}
	return w, nil
}

// createID allocates a new character id.  Ids start at 1 and are never
// reused.
func (w *Writer) createID() uint16 {
	w.nextID++
	rangecheck.Check(w.nextID != 0, "character ids exhausted")
	w.log.Debug("allocate id", "id", w.nextID)
	return w.nextID
}

// startTag opens a new tag.  Only one tag can be open at a time.
func (w *Writer) startTag(id TagID) *Tag {
	if w.cur != nil {
		panic(fmt.Sprintf("swf: tag %s started while %s is open", id, w.cur.ID()))
	}
	w.cur = NewTag(id)
	return w.cur
}

// endTag closes the current tag and writes it to its destination.
func (w *Writer) endTag() error {
	t := w.cur
	if t == nil {
		panic("swf: no open tag")
	}
	w.cur = nil
	return w.emit(t)
}

// discardSprite drops the innermost open sprite together with the control
// tags collected in it.  Definitions already written to the movie are kept.
func (w *Writer) discardSprite() {
	n := len(w.sprites)
	if n == 0 {
		return
	}
	w.log.Debug("discard sprite", "id", w.sprites[n-1].ID)
	w.sprites = w.sprites[:n-1]
}

// emit routes a finished tag.  Control tags and sprite definitions go to
// the innermost open sprite, everything else goes to the movie.
func (w *Writer) emit(t *Tag) error {
	id := t.ID()
	if (id.IsControl() || id == TagDefineSprite) && len(w.sprites) > 0 {
		w.sprites[len(w.sprites)-1].AppendTag(t)
		return nil
	}

	if id == TagShowFrame {
		w.frames++
	}
	_, err := t.WriteTo(w.movie)
	return err
}

// StartSprite opens a new sprite and returns its character id.
// Control tags are collected in the sprite until [Writer.EndSprite] is
// called.  Sprites can be nested.
func (w *Writer) StartSprite() (uint16, error) {
	if w.stored {
		return 0, ErrStored
	}
	if w.cur != nil {
		panic("swf: sprite started while a tag is open")
	}
	s := NewSprite(w.createID())
	w.sprites = append(w.sprites, s)
	return s.ID, nil
}

// EndSprite closes the innermost open sprite.  The DefineSprite tag is
// written to the enclosing sprite, or to the movie.
func (w *Writer) EndSprite() error {
	if w.stored {
		return ErrStored
	}
	n := len(w.sprites)
	if n == 0 {
		return ErrNoSprite
	}
	s := w.sprites[n-1]
	w.sprites = w.sprites[:n-1]

	t, err := s.defineSprite()
	if err != nil {
		return err
	}
	return w.emit(t)
}

// Map converts a point from document units to twips.
func (w *Writer) Map(p Point) Point {
	return Point{
		X: roundInt32(float64(p.X) * w.scaleX),
		Y: roundInt32(float64(p.Y) * w.scaleY),
	}
}

// MapRect converts a rectangle from document units to twips.
func (w *Writer) MapRect(r Rect) Rect {
	p0 := w.Map(Point{r.XMin, r.YMin})
	p1 := w.Map(Point{r.XMax, r.YMax})
	return Rect{XMin: p0.X, YMin: p0.Y, XMax: p1.X, YMax: p1.Y}
}

// MapPolygon converts all points of p from document units to twips.
func (w *Writer) MapPolygon(p Polygon) Polygon {
	res := Polygon{
		Points: make([]Point, len(p.Points)),
		Flags:  p.Flags,
	}
	for i, pt := range p.Points {
		res.Points[i] = w.Map(pt)
	}
	return res
}

// MapPolyPolygon converts all points of pp from document units to twips.
func (w *Writer) MapPolyPolygon(pp PolyPolygon) PolyPolygon {
	res := make(PolyPolygon, len(pp))
	for i, p := range pp {
		res[i] = w.MapPolygon(p)
	}
	return res
}

// MapRelative converts a length from document units to twips.
func (w *Writer) MapRelative(n int32) int32 {
	return roundInt32(float64(n) * w.scaleX)
}

// SetClipping restricts all following drawing operations to the region pp,
// given in twips.  The region must consist of a single convex contour.
// A nil argument removes the clip region.
func (w *Writer) SetClipping(pp *PolyPolygon) error {
	if w.stored {
		return ErrStored
	}
	if pp == nil {
		w.clip = nil
		return nil
	}
	c, err := newConvexClip(*pp, w.opt.Flatness/4)
	if err != nil {
		return err
	}
	w.clip = c
	return nil
}

// SetGlobalTransparency sets the transparency of following drawing
// operations, from 0 (opaque) to 255 (invisible).
func (w *Writer) SetGlobalTransparency(t uint8) {
	w.transparency = t
}

// StoreTo writes the complete movie to out.  Open sprites are closed
// first.  After StoreTo has been called, the Writer can no longer be used.
func (w *Writer) StoreTo(out io.Writer) error {
	if w.stored {
		return ErrStored
	}
	if w.cur != nil {
		panic("swf: movie stored while a tag is open")
	}
	defer w.movie.Close()
	defer w.fonts.Close()

	for len(w.sprites) > 0 {
		w.log.Warn("closing unfinished sprite", "id", w.sprites[len(w.sprites)-1].ID)
		err := w.EndSprite()
		if err != nil {
			return err
		}
	}
	w.stored = true

	for _, f := range w.fontList {
		if f.NumGlyphs() == 0 {
			// all glyph lookups for this font failed
			continue
		}
		w.log.Debug("write font", "id", f.ID, "key", f.Face.FontKey(), "glyphs", f.NumGlyphs())
		_, err := f.WriteTo(w.fonts)
		if err != nil {
			return err
		}
	}
	_, err := NewTag(TagEnd).WriteTo(w.movie)
	if err != nil {
		return err
	}

	hdr := w.header()
	_, err = hdr.WriteTo(out)
	if err != nil {
		return err
	}
	_, err = w.fonts.WriteTo(out)
	if err != nil {
		return err
	}
	_, err = w.movie.WriteTo(out)
	return err
}

// header assembles the file header.  It must be called after all other
// data has been written to the temporary streams.
func (w *Writer) header() *Tag {
	body := NewTag(TagHeader)
	body.AddRect(Rect{XMax: w.outWidth, YMax: w.outHeight})
	rate := rangecheck.Uint16(int64(w.opt.FrameRate * 256))
	body.AddUI8(uint8(rate))
	body.AddUI8(uint8(rate >> 8))
	body.AddUI16(w.frames)

	total := 8 + int64(body.Len()) + w.fonts.Len() + w.movie.Len()

	hdr := NewTag(TagHeader)
	hdr.AddBytes([]byte("FWS"))
	hdr.AddUI8(w.opt.Version)
	hdr.AddUI32(uint32(total))
	hdr.AddBytes(body.Bytes())
	return hdr
}
