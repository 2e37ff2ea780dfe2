// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax holds compiled syntax definitions: ordered rule sets
// with an exact-match symbol table, possibly nesting sub-syntaxes for
// embedded languages. A Syntax is built once with [Build] and is
// read-only afterwards, so it can be shared by any number of goroutines.
package syntax

import (
	"sort"

	"cogentcore.org/linetok/text/token"
)

// MaxLevels is the maximum nesting of syntaxes, counting the outermost
// one. It matches the number of levels a resume state can record.
const MaxLevels = 4

// MaxSymbolLen is the longest word the symbol table looks up.
const MaxSymbolLen = 63

// Symbol is an exact-match override of the class of a word.
type Symbol struct {
	Key   string
	Class token.Class
}

// Syntax is a compiled rule set.
type Syntax struct {

	// Name of the syntax, used in errors and logs.
	Name string

	// Rules in priority order.
	Rules []Rule

	// Symbols sorted by key.
	Symbols []Symbol

	// MaxStateful is the length of the rule prefix that holds every
	// stateful rule: the index of the last stateful rule plus one.
	MaxStateful int

	// height is the number of syntax levels in this tree, 1 for a
	// syntax without sub-syntaxes.
	height int
}

// Height returns the number of nested syntax levels of the tree
// rooted at s, including s itself.
func (s *Syntax) Height() int {
	return s.height
}

// Lookup returns the class of an exact symbol match for word.
// Empty words and words longer than [MaxSymbolLen] are never found.
func (s *Syntax) Lookup(word []byte) (token.Class, bool) {
	if len(word) == 0 || len(word) > MaxSymbolLen {
		return "", false
	}
	i := sort.Search(len(s.Symbols), func(i int) bool {
		return s.Symbols[i].Key >= string(word)
	})
	if i < len(s.Symbols) && s.Symbols[i].Key == string(word) {
		return s.Symbols[i].Class, true
	}
	return "", false
}

// Walk calls fn for s and every sub-syntax below it, depth first, with
// the nesting level of each (0 for s). Sub-syntaxes shared by several
// rules are visited once per rule.
func (s *Syntax) Walk(fn func(level int, syn *Syntax)) {
	s.walk(0, fn)
}

func (s *Syntax) walk(level int, fn func(level int, syn *Syntax)) {
	fn(level, s)
	for i := range s.Rules {
		if sub := s.Rules[i].Sub; sub != nil {
			sub.walk(level+1, fn)
		}
	}
}
