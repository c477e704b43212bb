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

// Package scriptrun splits text into runs of a single script and writing
// direction.
//
// Run boundaries always fall on grapheme cluster boundaries.  Characters
// which are shared between scripts, like digits, spaces and punctuation,
// are attached to the surrounding run.
package scriptrun

import (
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/segmenter"
	"golang.org/x/text/unicode/bidi"
)

// Run is a sequence of characters in a single script.
type Run struct {
	// Start and End are the rune offsets of the run in the text.
	Start, End int

	Script language.Script

	// RTL is set for right-to-left runs.
	RTL bool
}

// Split divides text into runs, in logical order.
func Split(text []rune) []Run {
	if len(text) == 0 {
		return nil
	}
	rtl := directions(text)

	type cluster struct {
		start, end int
		script     language.Script
		rtl        bool
	}
	var clusters []cluster

	var seg segmenter.Segmenter
	seg.Init(text)
	it := seg.GraphemeIterator()
	for it.Next() {
		g := it.Grapheme()
		clusters = append(clusters, cluster{
			start:  g.Offset,
			end:    g.Offset + len(g.Text),
			script: clusterScript(g.Text),
			rtl:    rtl[g.Offset],
		})
	}

	// Resolve shared characters: use the script of the previous cluster,
	// or of the next one at the start of the text.
	prev := language.Common
	for i := range clusters {
		if isShared(clusters[i].script) {
			clusters[i].script = prev
		} else {
			prev = clusters[i].script
		}
	}
	next := language.Common
	for i := len(clusters) - 1; i >= 0; i-- {
		if isShared(clusters[i].script) {
			clusters[i].script = next
		} else {
			next = clusters[i].script
		}
	}

	var runs []Run
	for _, c := range clusters {
		if n := len(runs); n > 0 && runs[n-1].Script == c.script && runs[n-1].RTL == c.rtl {
			runs[n-1].End = c.end
			continue
		}
		runs = append(runs, Run{Start: c.start, End: c.end, Script: c.script, RTL: c.rtl})
	}
	return runs
}

// Visual returns the runs in display order: every maximal sequence of
// right-to-left runs is reversed.
func Visual(runs []Run) []Run {
	res := make([]Run, len(runs))
	copy(res, runs)
	for i := 0; i < len(res); {
		if !res[i].RTL {
			i++
			continue
		}
		j := i
		for j < len(res) && res[j].RTL {
			j++
		}
		for a, b := i, j-1; a < b; a, b = a+1, b-1 {
			res[a], res[b] = res[b], res[a]
		}
		i = j
	}
	return res
}

func isShared(s language.Script) bool {
	return s == language.Common || s == language.Inherited
}

// clusterScript returns the first specific script of the runes in a
// grapheme cluster.
func clusterScript(cluster []rune) language.Script {
	for _, r := range cluster {
		s := language.LookupScript(r)
		if !isShared(s) {
			return s
		}
	}
	return language.Common
}

// directions reports for every rune whether it belongs to a right-to-left
// run, according to the Unicode bidirectional algorithm.
func directions(text []rune) []bool {
	res := make([]bool, len(text))

	p := bidi.Paragraph{}
	_, err := p.SetString(string(text), bidi.DefaultDirection(bidi.LeftToRight))
	if err != nil {
		return res
	}
	ordering, err := p.Order()
	if err != nil {
		return res
	}
	for i := range ordering.NumRuns() {
		run := ordering.Run(i)
		if run.Direction() != bidi.RightToLeft {
			continue
		}
		start, end := run.Pos()
		for j := start; j <= end && j < len(res); j++ {
			res[j] = true
		}
	}
	return res
}
