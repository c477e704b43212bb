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

// Package tempstream implements the temporary output streams used while an
// SWF file is assembled.
//
// A stream keeps its contents in memory until a configurable size is
// exceeded.  After this, the data is moved to a temporary file on disk.
package tempstream

import (
	"errors"
	"io"
	"os"
)

// Stream is an append-only temporary byte stream.
//
// The zero value is an in-memory stream which never spills to disk.
type Stream struct {
	// Data holds the stream contents while the stream is in memory.
	Data []byte

	dir       string
	threshold int64

	file *os.File
	size int64
}

// New creates a new stream.  Once more than threshold bytes have been
// written, the contents are moved to a temporary file in dir.  If dir is
// empty, the default directory for temporary files is used.  A threshold of
// zero or less keeps all data in memory.
func New(dir string, threshold int64) *Stream {
	return &Stream{dir: dir, threshold: threshold}
}

// Write appends data to the stream.
// This implements the [io.Writer] interface.
func (s *Stream) Write(p []byte) (int, error) {
	if s.file == nil && s.threshold > 0 && int64(len(s.Data)+len(p)) > s.threshold {
		err := s.spill()
		if err != nil {
			return 0, err
		}
	}

	if s.file != nil {
		n, err := s.file.Write(p)
		s.size += int64(n)
		return n, err
	}

	s.Data = append(s.Data, p...)
	s.size += int64(len(p))
	return len(p), nil
}

func (s *Stream) spill() error {
	fd, err := os.CreateTemp(s.dir, "swf-*.tmp")
	if err != nil {
		return err
	}
	_, err = fd.Write(s.Data)
	if err != nil {
		fd.Close()
		os.Remove(fd.Name())
		return err
	}
	s.file = fd
	s.Data = nil
	return nil
}

// Len returns the number of bytes written so far.
func (s *Stream) Len() int64 {
	return s.size
}

// OnDisk reports whether the stream contents have been moved to a file.
func (s *Stream) OnDisk() bool {
	return s.file != nil
}

// WriteTo copies the complete stream contents to w.
// The stream can still be appended to afterwards.
//
// This implements the [io.WriterTo] interface.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	if s.file == nil {
		n, err := w.Write(s.Data)
		return int64(n), err
	}

	_, err := s.file.Seek(0, io.SeekStart)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, io.LimitReader(s.file, s.size))
	_, seekErr := s.file.Seek(0, io.SeekEnd)
	return n, errors.Join(err, seekErr)
}

// Close releases the resources held by the stream.  Temporary files
// are removed.
func (s *Stream) Close() error {
	s.Data = nil
	if s.file == nil {
		return nil
	}
	name := s.file.Name()
	err := s.file.Close()
	s.file = nil
	return errors.Join(err, os.Remove(name))
}
