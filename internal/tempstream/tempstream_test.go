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

package tempstream

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

var _ io.Writer = (*Stream)(nil)
var _ io.WriterTo = (*Stream)(nil)

func TestInMemory(t *testing.T) {
	s := New("", 0)
	defer s.Close()

	for _, part := range []string{"Hello", ", ", "World!"} {
		n, err := s.Write([]byte(part))
		if err != nil {
			t.Fatal(err)
		}
		if n != len(part) {
			t.Errorf("Write wrote %d bytes; want %d", n, len(part))
		}
	}
	if s.OnDisk() {
		t.Error("stream was moved to disk")
	}
	if s.Len() != 13 {
		t.Errorf("Len() = %d; want 13", s.Len())
	}

	buf := &bytes.Buffer{}
	_, err := s.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Hello, World!" {
		t.Errorf("WriteTo wrote %q", buf.String())
	}
}

func TestSpill(t *testing.T) {
	s := New(t.TempDir(), 8)

	_, err := s.Write([]byte("1234"))
	if err != nil {
		t.Fatal(err)
	}
	if s.OnDisk() {
		t.Fatal("stream spilled too early")
	}
	_, err = s.Write([]byte("56789"))
	if err != nil {
		t.Fatal(err)
	}
	if !s.OnDisk() {
		t.Fatal("stream did not spill")
	}

	buf := &strings.Builder{}
	_, err = s.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "123456789" {
		t.Errorf("WriteTo wrote %q", buf.String())
	}

	// appending after WriteTo continues at the end
	_, err = s.Write([]byte("0"))
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	_, err = s.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "1234567890" {
		t.Errorf("WriteTo wrote %q", buf.String())
	}

	err = s.Close()
	if err != nil {
		t.Fatal(err)
	}
}
