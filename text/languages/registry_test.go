// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package languages

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/linetok/text/syntax"
	"cogentcore.org/linetok/text/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, r *Registry, file, src string) *Definition {
	def, err := r.Load(file, []byte(src))
	require.NoError(t, err)
	return def
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	mustLoad(t, r, "ini.toml", iniTOML)
	assert.Equal(t, []string{"Ini"}, r.Names())

	syn, err := r.Syntax("ini")
	require.NoError(t, err)
	assert.Equal(t, "Ini", syn.Name)
	assert.Equal(t, 2, syn.Height())

	again, err := r.Syntax("INI")
	require.NoError(t, err)
	assert.Same(t, syn, again)

	def, ok := r.Match("conf/app.cfg")
	require.True(t, ok)
	assert.Equal(t, "Ini", def.Name)
	assert.Equal(t, "ini.toml", def.Path)

	byFile, err := r.ForFile("app.ini")
	require.NoError(t, err)
	assert.Same(t, syn, byFile)

	_, err = r.ForFile("README")
	assert.True(t, errors.Is(err, ErrUnknownLanguage))
	_, err = r.Syntax("nope")
	assert.True(t, errors.Is(err, ErrUnknownLanguage))

	_, err = r.Load("ini.json", []byte("{}"))
	assert.True(t, errors.Is(err, ErrFormat))

	assert.True(t, r.Remove("Ini"))
	assert.False(t, r.Remove("Ini"))
	_, err = r.Syntax("ini")
	assert.True(t, errors.Is(err, ErrUnknownLanguage))
}

const outerTOML = `
name = "Outer"
files = ["*.outer"]

[[patterns]]
pattern = ['{{', '}}']
type = "keyword"
syntax = "Inner"
`

const innerTOML = `
name = "Inner"
files = ["*.inner"]

[[patterns]]
pattern = '%d+'
type = "number"
`

func TestRegistryRefs(t *testing.T) {
	r := NewRegistry()
	mustLoad(t, r, "outer.toml", outerTOML)

	_, err := r.Syntax("outer")
	assert.True(t, errors.Is(err, ErrUnknownLanguage), "%v", err)

	mustLoad(t, r, "inner.toml", innerTOML)
	outer, err := r.Syntax("outer")
	require.NoError(t, err)
	inner, err := r.Syntax("inner")
	require.NoError(t, err)
	assert.Same(t, inner, outer.Rules[0].Sub)

	sp, st := tokenizer.Tokenize(outer, []byte("a {{ 12 }} b"), tokenizer.State{}, false)
	assert.Equal(t, "[normal:2 keyword:2 normal:1 number:2 normal:1 keyword:2 normal:2]", spansString(sp))
	assert.True(t, st.IsZero())

	// replacing the inner language rebuilds the outer one
	mustLoad(t, r, "inner.toml", strings.Replace(innerTOML, "number", "literal", 1))
	outer2, err := r.Syntax("outer")
	require.NoError(t, err)
	assert.NotSame(t, outer, outer2)
	assert.NotSame(t, inner, outer2.Rules[0].Sub)

	// reference by extension
	mustLoad(t, r, "outer.toml", strings.Replace(outerTOML, `"Inner"`, `".inner"`, 1))
	outer3, err := r.Syntax("outer")
	require.NoError(t, err)
	assert.Equal(t, "Inner", outer3.Rules[0].Sub.Name)

	r.Invalidate()
	outer4, err := r.Syntax("outer")
	require.NoError(t, err)
	assert.NotSame(t, outer3, outer4)
}

func TestRegistryCycle(t *testing.T) {
	r := NewRegistry()
	mustLoad(t, r, "a.toml", strings.NewReplacer("Outer", "A", "Inner", "B").Replace(outerTOML))
	mustLoad(t, r, "b.toml", strings.NewReplacer("Outer", "B", "Inner", "A").Replace(outerTOML))
	_, err := r.Syntax("a")
	assert.True(t, errors.Is(err, syntax.ErrRecursionLimit), "%v", err)

	mustLoad(t, r, "self.toml", strings.NewReplacer("Outer", "Self", "Inner", "Self").Replace(outerTOML))
	_, err = r.Syntax("self")
	assert.True(t, errors.Is(err, syntax.ErrRecursionLimit), "%v", err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ini.toml"), []byte(iniTOML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inner.yaml"), []byte("name: Inner\npatterns:\n  - pattern: '%d+'\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.toml"), []byte("name = "), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	r := NewRegistry()
	err := r.LoadDir(dir)
	assert.True(t, errors.Is(err, ErrFormat))
	assert.ErrorContains(t, err, "broken.toml")
	assert.Equal(t, []string{"Ini", "Inner"}, r.Names())

	names := r.RemovePath(filepath.Join(dir, "ini.toml"))
	assert.Equal(t, []string{"Ini"}, names)
	assert.Equal(t, []string{"Inner"}, r.Names())

	assert.Error(t, r.LoadDir(filepath.Join(dir, "missing")))
}

func TestRegistryConcurrent(t *testing.T) {
	r := Builtin()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, name := range r.Names() {
				syn, err := r.Syntax(name)
				assert.NoError(t, err)
				tokenizer.Tokenize(syn, []byte(`x = "y" /* z`), tokenizer.State{}, false)
			}
			r.Invalidate("JavaScript")
		}()
	}
	wg.Wait()
}

func spansString(sp []tokenizer.Span) string {
	strs := make([]string, len(sp))
	for i, s := range sp {
		strs[i] = s.String()
	}
	return "[" + strings.Join(strs, " ") + "]"
}
