// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import (
	"fmt"

	"cogentcore.org/linetok/text/token"
)

// Span is a run of bytes of one token class. The spans of a line are
// consecutive and their lengths sum to the length of the line.
type Span struct {
	Class token.Class
	Len   int
}

// String satisfies the fmt.Stringer interface
func (sp Span) String() string {
	return fmt.Sprintf("%s:%d", sp.Class, sp.Len)
}

// Region is a span located by its start and end byte offsets in the
// line (the end is exclusive).
type Region struct {
	Class      token.Class
	Start, End int
}

// Src returns the text of the region.
func (rg Region) Src(line []byte) []byte {
	return line[rg.Start:rg.End]
}

// ContainsPos returns true if the region contains the given byte offset.
func (rg Region) ContainsPos(pos int) bool {
	return pos >= rg.Start && pos < rg.End
}

// Regions returns the regions of consecutive spans.
func Regions(spans []Span) []Region {
	regs := make([]Region, len(spans))
	pos := 0
	for i, sp := range spans {
		regs[i] = Region{Class: sp.Class, Start: pos, End: pos + sp.Len}
		pos += sp.Len
	}
	return regs
}

// Total returns the sum of the span lengths.
func Total(spans []Span) int {
	n := 0
	for _, sp := range spans {
		n += sp.Len
	}
	return n
}
