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

// Swfdraw converts a TOML scene description into an SWF movie.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"seehuhn.de/go/swf"
	"seehuhn.de/go/swf/scene"
)

// spillThreshold is the amount of output kept in memory.
const spillThreshold = 16 << 20

func main() {
	output := flag.String("o", "", "output file (default: standard output)")
	compress := flag.String("compress", "", "bitmap compression: auto, lossless or jpeg")
	quality := flag.Int("quality", 0, "JPEG quality (1-100)")
	tmpDir := flag.String("tmpdir", "", "directory for temporary files")
	verbose := flag.Bool("v", false, "log progress to standard error")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] scene.toml\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	err := run(flag.Arg(0), *output, *compress, *quality, *tmpDir, *verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "swfdraw:", err)
		os.Exit(1)
	}
}

func run(inputFile, outputFile, compress string, quality int, tmpDir string, verbose bool) error {
	if outputFile == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("refusing to write binary data to a terminal, use -o")
	}

	s, err := scene.Load(inputFile)
	if err != nil {
		return err
	}
	if compress != "" {
		s.Movie.Compress = compress
	}
	if quality != 0 {
		s.Movie.JPEGQuality = quality
	}

	opt, err := s.Options()
	if err != nil {
		return err
	}
	opt.TempDir = tmpDir
	opt.SpillThreshold = spillThreshold
	if verbose {
		opt.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	w, err := swf.NewWriter(
		swf.ToTwips(s.Movie.Width), swf.ToTwips(s.Movie.Height),
		s.Movie.DocWidth, s.Movie.DocHeight, opt)
	if err != nil {
		return err
	}
	err = s.Render(w)
	if err != nil {
		return err
	}

	if outputFile == "" {
		err = w.StoreTo(os.Stdout)
	} else {
		err = storeFile(w, outputFile)
	}
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %d frames\n", len(s.Frames))
	}
	return nil
}

// storeFile writes the movie to fname.  If this fails, the incomplete file
// is removed.
func storeFile(w *swf.Writer, fname string) error {
	out, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = w.StoreTo(out)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(fname)
		return err
	}
	return nil
}
