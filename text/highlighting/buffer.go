// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package highlighting

import (
	"bytes"
	"fmt"

	"cogentcore.org/linetok/text/tokenizer"
)

// Buffer holds the lines of a text with their spans and states, and
// keeps them up to date across edits. Lines are tokenized lazily, in
// order, when their spans are first asked for. An edit re-tokenizes
// forward from the first edited line until the state entering a line
// equals the one cached for it, at which point all following cached
// lines are known to be unchanged.
//
// A Buffer must only be used from one goroutine at a time.
type Buffer struct {

	// Highlighter tokenizes the lines.
	Highlighter *Highlighter

	// Quick makes lines that are only passed over on the way to a
	// requested line be tokenized in quick mode: their states are kept
	// and their spans are made when they are asked for.
	Quick bool

	// LinesTokenized counts the tokenizer calls made so far.
	LinesTokenized int

	lines []bufLine

	// upto is the number of leading lines whose states are valid.
	upto int
}

type bufLine struct {
	text     []byte
	spans    []tokenizer.Span
	from, to tokenizer.State

	// done is set when to is valid for from.
	done bool

	// quick is set when spans have not been made.
	quick bool
}

// NewBuffer returns a buffer with the given text, split into lines at '\n'.
func NewBuffer(hi *Highlighter, text []byte) *Buffer {
	b := &Buffer{Highlighter: hi}
	b.SetText(text)
	return b
}

// SetText replaces the whole text and drops all cached states.
func (b *Buffer) SetText(text []byte) {
	b.lines = b.lines[:0]
	for _, ln := range bytes.Split(text, []byte("\n")) {
		b.lines = append(b.lines, bufLine{text: ln})
	}
	b.upto = 0
}

// Lines returns the number of lines.
func (b *Buffer) Lines() int {
	return len(b.lines)
}

// Line returns the text of line i.
func (b *Buffer) Line(i int) []byte {
	return b.lines[i].text
}

// Spans returns the spans of line i.
func (b *Buffer) Spans(i int) []tokenizer.Span {
	b.advance(i)
	ln := &b.lines[i]
	if ln.quick {
		b.tokenize(ln, false)
	}
	return ln.spans
}

// State returns the state at the end of line i, which is the state
// entering line i+1.
func (b *Buffer) State(i int) tokenizer.State {
	b.advance(i)
	return b.lines[i].to
}

// Edit replaces lines start to end (exclusive) with the given lines and
// re-tokenizes what the edit invalidated. It returns the end of the
// range of lines whose spans may have changed: lines start up to that
// end should be redrawn.
func (b *Buffer) Edit(start, end int, repl ...[]byte) (int, error) {
	if start < 0 || end < start || end > len(b.lines) {
		return 0, fmt.Errorf("highlighting: edit range [%d, %d) out of bounds for %d lines", start, end, len(b.lines))
	}
	nl := make([]bufLine, len(repl))
	for i, ln := range repl {
		nl[i] = bufLine{text: ln}
	}
	delta := len(repl) - (end - start)
	b.lines = append(b.lines[:start], append(nl, b.lines[end:]...)...)
	if b.upto <= start {
		return start + len(repl), nil
	}
	// lines of the old valid prefix past the edit are still valid
	// relative to their own cached entry states
	valid := start
	if b.upto > end {
		valid = b.upto + delta
	}
	b.upto = start
	i := start
	for ; i < len(b.lines); i++ {
		st := b.stateBefore(i)
		ln := &b.lines[i]
		if i >= start+len(repl) {
			if i >= valid {
				break
			}
			if ln.done && ln.from == st {
				b.upto = valid
				return i, nil
			}
		}
		ln.from = st
		b.tokenize(ln, false)
		b.upto = i + 1
	}
	return i, nil
}

// stateBefore returns the state entering line i, which must be at most
// upto.
func (b *Buffer) stateBefore(i int) tokenizer.State {
	if i == 0 {
		return tokenizer.State{}
	}
	return b.lines[i-1].to
}

// advance makes the states valid through line i.
func (b *Buffer) advance(i int) {
	for ; b.upto <= i && b.upto < len(b.lines); b.upto++ {
		ln := &b.lines[b.upto]
		ln.from = b.stateBefore(b.upto)
		b.tokenize(ln, b.Quick && b.upto < i)
	}
}

func (b *Buffer) tokenize(ln *bufLine, quick bool) {
	b.LinesTokenized++
	ln.spans, ln.to = b.Highlighter.TokenizeLine(ln.text, ln.from, quick)
	ln.done = true
	ln.quick = quick
}
