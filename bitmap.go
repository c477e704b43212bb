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
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/jpeg"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/zeebo/xxh3"
	xdraw "golang.org/x/image/draw"

	"seehuhn.de/go/swf/internal/jpegsplit"
	"seehuhn.de/go/swf/internal/rangecheck"
)

// JPEGEncoder compresses images for DefineBitsJPEG2 and DefineBitsJPEG3
// tags.  Transparency information is ignored by the encoder.
type JPEGEncoder interface {
	EncodeJPEG(w io.Writer, img image.Image, quality int) error
}

// stdJPEG is the JPEG encoder from the standard library.
type stdJPEG struct{}

func (stdJPEG) EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// Bitmap is an image to be included in the movie.
type Bitmap struct {
	// Image holds the pixel data.
	Image image.Image

	// JPEG, if Image is nil, holds a complete JPEG file which is embedded
	// without recompression.
	JPEG []byte

	// MaxSize, if non-zero, is the largest useful size of the bitmap in
	// pixels.  Larger images are scaled down before they are stored.
	MaxSize image.Point
}

var errEmptyBitmap = errors.New("bitmap has no image data")

// losslessFormat is the bitmap format for 32-bit ARGB data.
const losslessFormat = 5

// DefineBitmap adds a bitmap to the movie and returns its character id.
//
// Bitmaps with identical content are only stored once; subsequent calls
// return the id of the first copy.  Depending on the compression mode,
// the bitmap is stored losslessly or using JPEG compression.
func (w *Writer) DefineBitmap(bm Bitmap) (uint16, error) {
	if w.stored {
		return 0, ErrStored
	}

	var img *image.RGBA
	var key uint64
	switch {
	case bm.Image != nil:
		img = toRGBA(bm.Image, bm.MaxSize)
		key = bitmapChecksum(img)
	case len(bm.JPEG) > 0:
		key = xxh3.Hash(bm.JPEG)
	default:
		return 0, errEmptyBitmap
	}
	if id, ok := w.bitmaps[key]; ok {
		w.log.Debug("bitmap cache hit", "id", id)
		return id, nil
	}

	var tagID TagID
	var body []byte
	var err error
	if img == nil {
		tagID, body, err = jpegBody(bm.JPEG, nil)
	} else {
		tagID, body, err = w.encodeBitmap(img)
	}
	if err != nil {
		return 0, err
	}

	id := w.createID()
	t := w.startTag(tagID)
	t.AddUI16(id)
	t.AddBytes(body)
	err = w.endTag()
	if err != nil {
		return 0, err
	}
	w.bitmaps[key] = id
	w.log.Debug("define bitmap", "id", id, "tag", tagID, "bytes", len(body))
	return id, nil
}

// encodeBitmap chooses the tag type for img and returns the tag content
// following the character id.
func (w *Writer) encodeBitmap(img *image.RGBA) (TagID, []byte, error) {
	var lossless []byte
	if w.opt.CompressMode != CompressJPEG {
		data, err := losslessBody(img)
		if err != nil {
			return 0, nil, err
		}
		if w.opt.CompressMode == CompressLossless {
			return TagDefineBitsLossless2, data, nil
		}
		lossless = data
	}

	buf := &bytes.Buffer{}
	err := w.opt.JPEGEncoder.EncodeJPEG(buf, img, w.opt.JPEGQuality)
	if err != nil {
		if lossless != nil {
			w.log.Debug("JPEG compression failed", "error", err)
			return TagDefineBitsLossless2, lossless, nil
		}
		return 0, nil, err
	}

	var alpha []byte
	if hasAlpha(img) {
		alpha, err = alphaPlane(img)
		if err != nil {
			return 0, nil, err
		}
	}
	tagID, data, err := jpegBody(buf.Bytes(), alpha)
	if err != nil {
		return 0, nil, err
	}

	if lossless != nil && len(lossless) <= len(data) {
		w.log.Debug("choose lossless compression", "lossless", len(lossless), "jpeg", len(data))
		return TagDefineBitsLossless2, lossless, nil
	}
	return tagID, data, nil
}

// jpegBody splits a JPEG file into the coding tables and the image data.
// If alpha is non-nil, the result is the content of a DefineBitsJPEG3 tag,
// otherwise of a DefineBitsJPEG2 tag.
func jpegBody(data []byte, alpha []byte) (TagID, []byte, error) {
	tables, imgData, err := jpegsplit.Split(data)
	if err != nil {
		return 0, nil, err
	}

	var body []byte
	tagID := TagDefineBitsJPEG2
	if alpha != nil {
		tagID = TagDefineBitsJPEG3
		body = binary.LittleEndian.AppendUint32(body, uint32(len(tables)+len(imgData)))
	}
	body = append(body, tables...)
	body = append(body, imgData...)
	body = append(body, alpha...)
	return tagID, body, nil
}

// losslessBody returns the content of a DefineBitsLossless2 tag, following
// the character id.
func losslessBody(img *image.RGBA) ([]byte, error) {
	b := img.Bounds()
	body := []byte{losslessFormat}
	body = binary.LittleEndian.AppendUint16(body, rangecheck.Uint16(int64(b.Dx())))
	body = binary.LittleEndian.AppendUint16(body, rangecheck.Uint16(int64(b.Dy())))

	buf := bytes.NewBuffer(body)
	zw, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	_, err = zw.Write(argb(img))
	if err != nil {
		return nil, err
	}
	err = zw.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// alphaPlane returns the zlib-compressed alpha channel of img.
func alphaPlane(img *image.RGBA) ([]byte, error) {
	b := img.Bounds()
	alpha := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := range b.Dx() {
			alpha = append(alpha, row[4*x+3])
		}
	}

	buf := &bytes.Buffer{}
	zw, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	_, err = zw.Write(alpha)
	if err != nil {
		return nil, err
	}
	err = zw.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// argb returns the pixels of img in premultiplied ARGB byte order.
func argb(img *image.RGBA) []byte {
	b := img.Bounds()
	res := make([]byte, 0, 4*b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := range b.Dx() {
			p := row[4*x : 4*x+4]
			res = append(res, p[3], p[0], p[1], p[2])
		}
	}
	return res
}

func hasAlpha(img *image.RGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := range b.Dx() {
			if row[4*x+3] != 0xFF {
				return true
			}
		}
	}
	return false
}

// bitmapChecksum identifies the bitmap content, including its size.
func bitmapChecksum(img *image.RGBA) uint64 {
	b := img.Bounds()
	h := xxh3.New()
	var size [8]byte
	binary.LittleEndian.PutUint32(size[:4], uint32(b.Dx()))
	binary.LittleEndian.PutUint32(size[4:], uint32(b.Dy()))
	h.Write(size[:])
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		h.Write(img.Pix[start : start+4*b.Dx()])
	}
	return h.Sum64()
}

// toRGBA converts src to premultiplied RGBA, scaling it down if it is
// larger than maxSize.
func toRGBA(src image.Image, maxSize image.Point) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize.X > 0 && maxSize.Y > 0 && (w > maxSize.X || h > maxSize.Y) {
		scale := min(float64(maxSize.X)/float64(w), float64(maxSize.Y)/float64(h))
		w = max(int(float64(w)*scale+0.5), 1)
		h = max(int(float64(h)*scale+0.5), 1)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
		return dst
	}

	if img, ok := src.(*image.RGBA); ok {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}
