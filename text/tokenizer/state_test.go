// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestStateStack(t *testing.T) {
	var st State
	assert.True(t, st.IsZero())
	_, ok := st.Top()
	assert.False(t, ok)
	_, ok = st.Pop()
	assert.False(t, ok)

	assert.True(t, st.Push(0))
	assert.True(t, st.Push(3))
	assert.Equal(t, 2, st.Len())
	assert.Equal(t, "[0 3]", st.String())

	r, ok := st.Rule(0)
	assert.True(t, ok)
	assert.Equal(t, 0, r)
	_, ok = st.Rule(2)
	assert.False(t, ok)

	assert.True(t, st.Push(1))
	assert.True(t, st.Push(maxRule))
	assert.False(t, st.Push(2), "full")
	assert.Equal(t, MaxLevels, st.Len())

	r, ok = st.Pop()
	assert.True(t, ok)
	assert.Equal(t, maxRule, r)
	assert.False(t, st.Push(-1))
	assert.False(t, st.Push(maxRule+1))

	st.truncate(1)
	assert.Equal(t, 1, st.Len())
	top, _ := st.Top()
	assert.Equal(t, 0, top)

	st.Pop()
	assert.Equal(t, State{}, st)
}

func TestStateUint64(t *testing.T) {
	var st State
	assert.Equal(t, uint64(0), st.Uint64())

	st.Push(0)
	assert.Equal(t, uint64(1), st.Uint64())
	st.Push(1)
	assert.Equal(t, uint64(0x0201), st.Uint64())

	// decoding stops at the first empty level
	assert.Equal(t, 1, StateFromUint64(0x0300_01).Len())
	assert.True(t, StateFromUint64(0xff00).IsZero())
	assert.Equal(t, State{}, StateFromUint64(0x0100))

	// bytes past the last level are ignored
	st = StateFromUint64(0x05_04030201)
	assert.Equal(t, MaxLevels, st.Len())
	assert.Equal(t, uint64(0x04030201), st.Uint64())
}

func TestStateUint64RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rules := rapid.SliceOfN(rapid.IntRange(0, maxRule), 0, MaxLevels).Draw(t, "rules")
		var st State
		for _, r := range rules {
			st.Push(r)
		}
		got := StateFromUint64(st.Uint64())
		if got != st {
			t.Fatalf("round trip of %v gave %v", st, got)
		}
	})
}

func TestRegions(t *testing.T) {
	spans := []Span{{"normal", 2}, {"comment", 4}, {"normal", 1}}
	assert.Equal(t, 7, Total(spans))
	regs := Regions(spans)
	assert.Equal(t, []Region{{"normal", 0, 2}, {"comment", 2, 6}, {"normal", 6, 7}}, regs)
	assert.Equal(t, "/* b", string(regs[1].Src([]byte("a /* b c"))))
	assert.True(t, regs[1].ContainsPos(2))
	assert.False(t, regs[1].ContainsPos(6))
	assert.Equal(t, "comment:4", spans[1].String())
}
