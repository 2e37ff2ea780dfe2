// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pattern

import (
	"testing"

	"cogentcore.org/core/base/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileErrors(t *testing.T) {
	bad := []string{
		"%",
		"abc%",
		"[abc",
		"[]",
		"[%",
		"(a",
		"a)",
		"(a))",
		"%f",
		"%f(",
		"%f[a",
	}
	for _, src := range bad {
		_, err := Compile(src)
		if assert.Error(t, err, src) {
			assert.True(t, errors.Is(err, ErrInvalidPattern), src)
			var perr *Error
			assert.True(t, errors.As(err, &perr), src)
		}
	}
}

func TestCompile(t *testing.T) {
	good := []string{
		"",
		"^",
		"$",
		"a$b",
		"[]]",
		"[%]]",
		"[^%s]+",
		"()",
		"(%w+)(%s*)",
		"%f[%w]%w+",
		"*a",
		"a**",
		"%-%-%[%[",
	}
	for _, src := range good {
		pt, err := Compile(src)
		if assert.NoError(t, err, src) {
			assert.Equal(t, src, pt.String())
		}
	}
}

func TestFlagsAndSegments(t *testing.T) {
	pt := MustCompile("^(a)(b)c")
	assert.Equal(t, Anchored, pt.Flags()&Anchored)
	assert.Zero(t, pt.Flags()&Lookahead)
	assert.Equal(t, 3, pt.Segments())

	pt = MustCompile("%f[%a]%a+")
	assert.Equal(t, Lookahead, pt.Flags()&Lookahead)
	assert.Equal(t, 1, pt.Segments())
}

func TestTooManyCaptures(t *testing.T) {
	src := ""
	for range MaxCaptures + 1 {
		src += "(a)"
	}
	_, err := Compile(src)
	assert.True(t, errors.Is(err, ErrInvalidPattern))

	_, err = Compile(src[3:])
	assert.NoError(t, err)
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("[") })
	require.NotPanics(t, func() { MustCompile("[a]") })
}
