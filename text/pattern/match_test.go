// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pat    string
		text   string
		offset int
		want   []int // nil means no match
	}{
		{"abc", "abc", 0, []int{3}},
		{"abc", "abd", 0, nil},
		{"b", "abc", 1, []int{1}},
		{".", "x", 0, []int{1}},
		{".", "", 0, nil},
		{"", "abc", 1, []int{0}},

		{"a*", "", 0, []int{0}},
		{"a*", "aaa", 0, []int{3}},
		{"a*", "baa", 0, []int{0}},
		{"a+", "aaab", 0, []int{3}},
		{"a+", "b", 0, nil},
		{"a-", "aaa", 0, []int{0}},
		{"a-b", "aaab", 0, []int{4}},
		{"a?b", "ab", 0, []int{2}},
		{"a?b", "b", 0, []int{1}},
		{"a?", "", 0, []int{0}},

		// greedy runs give back what the tail needs
		{"a*a", "aaa", 0, []int{3}},
		{"%d+%.?%d*", "3.14x", 0, []int{4}},
		{"%d+%.?%d*", "42", 0, []int{2}},
		{"\".-\"", `"a" "b"`, 0, []int{3}},
		{"\".*\"", `"a" "b"`, 0, []int{7}},

		{"^a", "aa", 0, []int{1}},
		{"^a", "aa", 1, nil},
		{"a$", "ba", 1, []int{1}},
		{"a$", "ab", 0, nil},
		{"$", "ab", 2, []int{0}},
		{"a$b", "a$b", 0, []int{3}},

		{"[abc]+", "cabd", 0, []int{3}},
		{"[^abc]+", "xyza", 0, []int{3}},
		{"[a-f]+", "cafeg", 0, []int{4}},
		{"[%w_]+", "foo_bar1 x", 0, []int{8}},
		{"[]]", "]", 0, []int{1}},
		{"[%]]", "]", 0, []int{1}},
		{"[a-]+", "a-a", 0, []int{3}},

		{"%s+", " \t\n", 0, []int{3}},
		{"%x+", "0fFg", 0, []int{3}},
		{"%p", "!", 0, []int{1}},
		{"%c", "\x01", 0, []int{1}},
		{"%u%l+", "Hello", 0, []int{5}},
		{"%%", "%", 0, []int{1}},
		{"%.", ".", 0, []int{1}},
		{"%.", "x", 0, nil},

		// bytes >= 128 count as letters
		{"%a+", "é!", 0, []int{2}},
		{"%w+", "日本", 0, []int{6}},
		{"%A", "\xc3", 0, nil},
		{"[^%a]", "\xc3", 0, nil},
		{"%d", "\xc3", 0, nil},

		// captures split the match
		{"(%w+)(%s*)=", "foo = 1", 0, []int{3, 1, 1}},
		{"(%w+)", "foo", 0, []int{3, 0}},
		{"x(%w+)y", "xaby", 0, []int{3, 1}},
		{"()a", "a", 0, []int{0, 1}},
		{"(a*)(b*)", "", 0, []int{0, 0, 0}},

		// %f asserts the next atom without consuming it
		{"%f[%w]%w+", "abc", 0, []int{3}},
		{"%f[%w]%w+", " abc", 0, nil},
		{"%w+%f[^%w]", "abc def", 0, []int{3}},
		{"%w+%f[^%w]", "abc", 0, []int{3}},
		{"%w+%f[%s]", "abc", 0, nil},

		{"a", "a", 2, nil},
		{"a", "a", -1, nil},
	}
	for _, tt := range tests {
		pt := MustCompile(tt.pat)
		got, ok := pt.MatchLengths([]byte(tt.text), tt.offset)
		if tt.want == nil {
			assert.False(t, ok, "%q on %q at %d: got %v", tt.pat, tt.text, tt.offset, got)
			continue
		}
		if assert.True(t, ok, "%q on %q at %d", tt.pat, tt.text, tt.offset) {
			assert.Equal(t, tt.want, got, "%q on %q at %d", tt.pat, tt.text, tt.offset)
		}
	}
}

func TestMatchShortLengths(t *testing.T) {
	pt := MustCompile("(a)(b)c")
	var one [1]int
	assert.Equal(t, 1, pt.Match([]byte("abc"), 0, one[:]))
	assert.Equal(t, 1, one[0])
	assert.Equal(t, 0, pt.Match([]byte("abc"), 0, nil))
}

func TestFirstAtom(t *testing.T) {
	txt := []byte("abc")
	assert.True(t, MustCompile("a+").probe(txt, 0))
	assert.False(t, MustCompile("b+").probe(txt, 0))
	assert.True(t, MustCompile("b*c").probe(txt, 0))
	assert.True(t, MustCompile("(b)").probe(txt, 1))
	assert.False(t, MustCompile("^a").probe(txt, 1))
	assert.True(t, MustCompile("$").probe(txt, 3))
	assert.False(t, MustCompile("$").probe(txt, 2))
	assert.False(t, MustCompile("a").probe(txt, 5))
}

func TestMatchSteps(t *testing.T) {
	pt := MustCompile("%a*%a*%a*%a*b")
	txt := []byte(strings.Repeat("a", 40))

	steps := 1000
	var lens [MaxSegments]int
	assert.Equal(t, 0, pt.MatchSteps(txt, 0, lens[:], &steps))
	assert.Less(t, steps, 0)

	steps = 1000
	assert.Equal(t, 1, pt.MatchSteps([]byte("aab"), 0, lens[:], &steps))
	assert.Equal(t, 3, lens[0])
	assert.GreaterOrEqual(t, steps, 0)
}

func isAlphaRef(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func TestClassAlpha(t *testing.T) {
	lower := MustCompile("%a")
	upper := MustCompile("%A")
	for c := range 128 {
		b := []byte{byte(c)}
		_, ok := lower.MatchLengths(b, 0)
		assert.Equal(t, isAlphaRef(byte(c)), ok, "%%a on %q", b)
		_, ok = upper.MatchLengths(b, 0)
		assert.Equal(t, !isAlphaRef(byte(c)), ok, "%%A on %q", b)
	}
}

const special = "^$*+?.([%-)"

func TestLiteralProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lit := rapid.StringMatching(`[a-zA-Z0-9 _=,;:<>/"'#!&|{}~@]{0,40}`).Draw(rt, "literal")
		if strings.ContainsAny(lit, special) {
			rt.Skip("special character")
		}
		pt := MustCompile(lit)
		got, ok := pt.MatchLengths([]byte(lit), 0)
		if !ok || len(got) != 1 || got[0] != len(lit) {
			rt.Fatalf("literal %q: got %v %v", lit, got, ok)
		}
	})
}

func TestSegmentsSumProperty(t *testing.T) {
	pats := []string{"(%a+)(%s*)(%d*)", "(%w*)%s(%w*)", "([^=]*)=(.*)", "(%a-)b"}
	rapid.Check(t, func(rt *rapid.T) {
		src := pats[rapid.IntRange(0, len(pats)-1).Draw(rt, "pattern")]
		txt := rapid.StringMatching(`[a-c0-9 =]{0,20}`).Draw(rt, "text")
		off := rapid.IntRange(0, len(txt)).Draw(rt, "offset")
		pt := MustCompile(src)
		lens, ok := pt.MatchLengths([]byte(txt), off)
		if !ok {
			return
		}
		if len(lens) != pt.Segments() {
			rt.Fatalf("segments: got %d want %d", len(lens), pt.Segments())
		}
		sum := 0
		for _, l := range lens {
			if l < 0 {
				rt.Fatalf("negative segment in %v", lens)
			}
			sum += l
		}
		if off+sum > len(txt) {
			rt.Fatalf("match past end: %v at %d in %q", lens, off, txt)
		}
	})
}
