// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pattern implements the Lua-style pattern dialect used by syntax
// rules: a small backtracking matcher over bytes with character classes,
// sets, quantifiers, anchors, split-point captures and a one-atom
// lookahead (%f).
//
// Captures are not sub-matches: each closing parenthesis splits the match
// into consecutive segments, and a match reports the length of every
// segment. The classes %a, %w, %l, %u and %c also accept any byte >= 128,
// which approximates UTF-8 letters without decoding.
package pattern

import (
	"fmt"

	"cogentcore.org/core/base/errors"
)

// MaxCaptures is the maximum number of closing parentheses in a pattern.
const MaxCaptures = 32

// MaxSegments is the maximum number of segments a match can report.
const MaxSegments = MaxCaptures + 1

// ErrInvalidPattern is wrapped by every compile error.
var ErrInvalidPattern = errors.New("invalid pattern")

// Flags records properties of a compiled pattern.
type Flags uint8

const (
	// Anchored is set when the pattern starts with '^', so it can only
	// match at offset 0.
	Anchored Flags = 1 << iota

	// Lookahead is set when the pattern contains a %f assertion.
	Lookahead
)

// Pattern is a compiled pattern. It is immutable and safe for
// concurrent use.
type Pattern struct {
	src   string
	flags Flags

	// segments is the number of closing parentheses plus one.
	segments int

	// closeAt maps the offset of each closing parenthesis in src
	// to its capture index, and is -1 everywhere else.
	closeAt []int16
}

// Error is a pattern compile error.
type Error struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("pattern %q: %s at offset %d", e.Pattern, e.Msg, e.Pos)
}

func (e *Error) Unwrap() error { return ErrInvalidPattern }

// Compile checks the syntax of src and returns the compiled pattern.
func Compile(src string) (*Pattern, error) {
	pt := &Pattern{src: src, closeAt: make([]int16, len(src))}
	fail := func(pos int, msg string) (*Pattern, error) {
		return nil, &Error{Pattern: src, Pos: pos, Msg: msg}
	}
	for i := range pt.closeAt {
		pt.closeAt[i] = -1
	}
	p := 0
	if len(src) > 0 && src[0] == '^' {
		pt.flags |= Anchored
		p = 1
	}
	depth, closes := 0, 0
	for p < len(src) {
		switch src[p] {
		case '(':
			depth++
			p++
			continue
		case ')':
			if depth == 0 {
				return fail(p, "unmatched ')'")
			}
			if closes == MaxCaptures {
				return fail(p, "too many captures")
			}
			depth--
			pt.closeAt[p] = int16(closes)
			closes++
			p++
			continue
		case '$':
			if p == len(src)-1 {
				p++
				continue
			}
		case '%':
			if p+1 >= len(src) {
				return fail(p, "malformed pattern (ends with '%')")
			}
			if src[p+1] == 'f' {
				pt.flags |= Lookahead
				p += 2
				if p >= len(src) || src[p] == '(' || src[p] == ')' {
					return fail(p, "missing atom after '%f'")
				}
				ep := classEnd(src, p)
				if ep < 0 {
					return fail(p, "malformed pattern (missing ']')")
				}
				p = ep
				continue
			}
		}
		ep := classEnd(src, p)
		if ep < 0 {
			return fail(p, "malformed pattern (missing ']')")
		}
		p = ep
		if p < len(src) && isQuantifier(src[p]) {
			p++
		}
	}
	if depth != 0 {
		return fail(len(src), "unfinished capture")
	}
	pt.segments = closes + 1
	return pt, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(src string) *Pattern {
	return errors.Must1(Compile(src))
}

// String returns the source of the pattern.
func (pt *Pattern) String() string { return pt.src }

// Flags returns the pattern flags.
func (pt *Pattern) Flags() Flags { return pt.flags }

// Segments returns the number of segments every match of the pattern
// reports: the number of closing parentheses plus one.
func (pt *Pattern) Segments() int { return pt.segments }

func isQuantifier(c byte) bool {
	return c == '*' || c == '+' || c == '-' || c == '?'
}

// classEnd returns the offset just past the single atom starting at p,
// or -1 if the atom is malformed.
func classEnd(pat string, p int) int {
	c := pat[p]
	p++
	switch c {
	case '%':
		if p >= len(pat) {
			return -1
		}
		return p + 1
	case '[':
		if p < len(pat) && pat[p] == '^' {
			p++
		}
		// the first byte of a set is always a member, so "[]]" is valid
		for {
			if p >= len(pat) {
				return -1
			}
			cc := pat[p]
			p++
			if cc == '%' && p < len(pat) {
				p++
			}
			if p >= len(pat) {
				return -1
			}
			if pat[p] == ']' {
				return p + 1
			}
		}
	}
	return p
}
