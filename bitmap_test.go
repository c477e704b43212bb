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
	"image/color"
	"image/jpeg"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zlib"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func inflate(t *testing.T, data []byte) []byte {
	t.Helper()
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	res, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestBitmapDedup(t *testing.T) {
	w := newTestWriter(t, nil)

	red := solidImage(8, 8, color.RGBA{R: 255, A: 255})
	id1, err := w.DefineBitmap(Bitmap{Image: red})
	if err != nil {
		t.Fatal(err)
	}
	// same content, different image
	id2, err := w.DefineBitmap(Bitmap{Image: solidImage(8, 8, color.RGBA{R: 255, A: 255})})
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Errorf("identical bitmaps got ids %d and %d", id1, id2)
	}

	id3, err := w.DefineBitmap(Bitmap{Image: solidImage(8, 4, color.RGBA{R: 255, A: 255})})
	if err != nil {
		t.Fatal(err)
	}
	if id3 <= id1 {
		t.Errorf("new bitmap got id %d after %d", id3, id1)
	}

	_, tags := store(t, w)
	n := len(tagsWithID(tags, TagDefineBitsLossless2)) +
		len(tagsWithID(tags, TagDefineBitsJPEG2)) +
		len(tagsWithID(tags, TagDefineBitsJPEG3))
	if n != 2 {
		t.Errorf("%d bitmap tags, want 2", n)
	}
}

func TestBitmapLossless(t *testing.T) {
	w := newTestWriter(t, &Options{CompressMode: CompressLossless})

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	copy(img.Pix, []byte{255, 0, 0, 255, 0, 64, 0, 128})
	id, err := w.DefineBitmap(Bitmap{Image: img})
	if err != nil {
		t.Fatal(err)
	}
	_, tags := store(t, w)

	bitmaps := tagsWithID(tags, TagDefineBitsLossless2)
	if len(bitmaps) != 1 {
		t.Fatalf("%d lossless bitmaps, want 1", len(bitmaps))
	}
	data := bitmaps[0].Data
	if got := binary.LittleEndian.Uint16(data); got != id {
		t.Errorf("id %d, want %d", got, id)
	}
	wantHeader := []byte{losslessFormat, 2, 0, 1, 0}
	if d := cmp.Diff(wantHeader, data[2:7]); d != "" {
		t.Errorf("header: %s", d)
	}
	wantPixels := []byte{255, 255, 0, 0, 128, 0, 64, 0}
	if d := cmp.Diff(wantPixels, inflate(t, data[7:])); d != "" {
		t.Errorf("pixels: %s", d)
	}
}

func TestBitmapJPEG(t *testing.T) {
	w := newTestWriter(t, &Options{CompressMode: CompressJPEG})

	opaque := solidImage(16, 16, color.RGBA{G: 200, A: 255})
	_, err := w.DefineBitmap(Bitmap{Image: opaque})
	if err != nil {
		t.Fatal(err)
	}
	translucent := solidImage(16, 16, color.RGBA{G: 100, A: 128})
	_, err = w.DefineBitmap(Bitmap{Image: translucent})
	if err != nil {
		t.Fatal(err)
	}
	_, tags := store(t, w)

	jpeg2 := tagsWithID(tags, TagDefineBitsJPEG2)
	if len(jpeg2) != 1 {
		t.Fatalf("%d DefineBitsJPEG2 tags, want 1", len(jpeg2))
	}
	if !bytes.HasPrefix(jpeg2[0].Data[2:], []byte{0xFF, 0xD8}) {
		t.Error("JPEG data does not start with SOI")
	}

	jpeg3 := tagsWithID(tags, TagDefineBitsJPEG3)
	if len(jpeg3) != 1 {
		t.Fatalf("%d DefineBitsJPEG3 tags, want 1", len(jpeg3))
	}
	body := jpeg3[0].Data[2:]
	offset := binary.LittleEndian.Uint32(body)
	if int(offset)+4 > len(body) {
		t.Fatalf("alpha offset %d beyond tag end", offset)
	}
	alpha := inflate(t, body[4+offset:])
	if len(alpha) != 16*16 {
		t.Fatalf("got %d alpha values, want %d", len(alpha), 16*16)
	}
	for i, a := range alpha {
		if a != 128 {
			t.Fatalf("alpha[%d] = %d, want 128", i, a)
		}
	}
}

func TestBitmapAuto(t *testing.T) {
	// A single-colored image compresses much better without loss.
	w := newTestWriter(t, nil)
	_, err := w.DefineBitmap(Bitmap{Image: solidImage(64, 64, color.RGBA{B: 255, A: 255})})
	if err != nil {
		t.Fatal(err)
	}
	_, tags := store(t, w)
	if n := len(tagsWithID(tags, TagDefineBitsLossless2)); n != 1 {
		t.Errorf("%d lossless bitmaps, want 1", n)
	}
}

func TestBitmapJPEGFile(t *testing.T) {
	buf := &bytes.Buffer{}
	err := jpeg.Encode(buf, solidImage(8, 8, color.RGBA{R: 10, G: 20, B: 30, A: 255}), nil)
	if err != nil {
		t.Fatal(err)
	}

	w := newTestWriter(t, &Options{CompressMode: CompressLossless})
	id1, err := w.DefineBitmap(Bitmap{JPEG: buf.Bytes()})
	if err != nil {
		t.Fatal(err)
	}
	id2, err := w.DefineBitmap(Bitmap{JPEG: bytes.Clone(buf.Bytes())})
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Errorf("identical JPEG files got ids %d and %d", id1, id2)
	}
	_, tags := store(t, w)

	// pre-compressed data is never re-encoded
	jpeg2 := tagsWithID(tags, TagDefineBitsJPEG2)
	if len(jpeg2) != 1 {
		t.Fatalf("%d DefineBitsJPEG2 tags, want 1", len(jpeg2))
	}
	// the tables and image streams each carry their own SOI and EOI
	if got, want := len(jpeg2[0].Data), 2+buf.Len()+4; got != want {
		t.Errorf("tag length %d, want %d", got, want)
	}
}

func TestBitmapErrors(t *testing.T) {
	w := newTestWriter(t, nil)
	_, err := w.DefineBitmap(Bitmap{})
	if !errors.Is(err, errEmptyBitmap) {
		t.Errorf("got %v, want errEmptyBitmap", err)
	}
	_, err = w.DefineBitmap(Bitmap{JPEG: []byte("not a JPEG file")})
	if err == nil {
		t.Error("invalid JPEG data accepted")
	}
}

type failingEncoder struct{}

var errEncoder = errors.New("encoder failed")

func (failingEncoder) EncodeJPEG(io.Writer, image.Image, int) error {
	return errEncoder
}

func TestBitmapEncoderFailure(t *testing.T) {
	img := solidImage(4, 4, color.RGBA{R: 1, A: 255})

	w := newTestWriter(t, &Options{JPEGEncoder: failingEncoder{}})
	_, err := w.DefineBitmap(Bitmap{Image: img})
	if err != nil {
		t.Errorf("auto mode: %v", err)
	}

	w = newTestWriter(t, &Options{JPEGEncoder: failingEncoder{}, CompressMode: CompressJPEG})
	_, err = w.DefineBitmap(Bitmap{Image: img})
	if !errors.Is(err, errEncoder) {
		t.Errorf("JPEG mode: got %v", err)
	}
}

func TestToRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 110, 60))
	for i := range src.Pix {
		src.Pix[i] = 0xFF
	}

	got := toRGBA(src, image.Point{})
	if got.Bounds() != image.Rect(0, 0, 100, 50) {
		t.Errorf("unscaled: bounds %v", got.Bounds())
	}

	got = toRGBA(src, image.Point{X: 10, Y: 10})
	if got.Bounds() != image.Rect(0, 0, 10, 5) {
		t.Errorf("scaled: bounds %v", got.Bounds())
	}

	rgba := solidImage(3, 3, color.RGBA{A: 255})
	if toRGBA(rgba, image.Point{X: 5, Y: 5}) != rgba {
		t.Error("small RGBA image was copied")
	}
}
