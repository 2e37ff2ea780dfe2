// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import (
	"fmt"

	"cogentcore.org/linetok/text/syntax"
)

// MaxLevels is the capacity of a [State].
const MaxLevels = syntax.MaxLevels

// State is the resume state threaded from one line to the next: a
// fixed-capacity stack of the rules that are open at each nesting
// level. Level 0 is the outermost syntax; a rule at level i that owns a
// sub-syntax makes that sub-syntax the syntax of level i+1.
//
// The zero State means no open rule, and is the state at the start of
// a buffer. States are plain values and can be compared with ==.
type State struct {
	// rules holds 1 + the rule index open at each level, 0 past the top.
	rules [MaxLevels]uint8
	n     uint8
}

// maxRule is the largest rule index a state can record.
const maxRule = 254

// Len returns the number of open rules.
func (st State) Len() int {
	return int(st.n)
}

// IsZero returns true if no rule is open.
func (st State) IsZero() bool {
	return st.n == 0
}

// Rule returns the index of the rule open at the given level.
func (st State) Rule(level int) (int, bool) {
	if level < 0 || level >= int(st.n) {
		return 0, false
	}
	return int(st.rules[level]) - 1, true
}

// Top returns the innermost open rule.
func (st State) Top() (int, bool) {
	return st.Rule(int(st.n) - 1)
}

// Push opens rule at the next level. It returns false if the stack is
// full or the index cannot be recorded.
func (st *State) Push(rule int) bool {
	if st.n == MaxLevels || rule < 0 || rule > maxRule {
		return false
	}
	st.rules[st.n] = uint8(rule + 1)
	st.n++
	return true
}

// Pop closes the innermost open rule and returns it.
func (st *State) Pop() (int, bool) {
	rule, ok := st.Top()
	if ok {
		st.n--
		st.rules[st.n] = 0
	}
	return rule, ok
}

// truncate closes every rule at level n and deeper.
func (st *State) truncate(n int) {
	for i := n; i < int(st.n); i++ {
		st.rules[i] = 0
	}
	st.n = uint8(min(n, int(st.n)))
}

// Uint64 returns the packed form of the state: the field of level i is
// 1 + the open rule index, stored in bits 8i to 8i+7.
func (st State) Uint64() uint64 {
	var v uint64
	for i := range int(st.n) {
		v |= uint64(st.rules[i]) << (8 * i)
	}
	return v
}

// StateFromUint64 unpacks a state packed by [State.Uint64]. Decoding
// stops at the first zero field; bits past the last level are ignored.
func StateFromUint64(v uint64) State {
	var st State
	for i := range MaxLevels {
		f := uint8(v >> (8 * i))
		if f == 0 {
			break
		}
		st.rules[i] = f
		st.n++
	}
	return st
}

// String satisfies the fmt.Stringer interface
func (st State) String() string {
	rules := make([]int, st.n)
	for i := range rules {
		rules[i] = int(st.rules[i]) - 1
	}
	return fmt.Sprint(rules)
}
