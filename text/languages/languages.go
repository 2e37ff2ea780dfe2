// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package languages loads declarative language definitions written in
// TOML or YAML and keeps them in a [Registry] that builds, caches and
// resolves the corresponding [syntax.Syntax] values, including named
// sub-syntaxes such as the scripts embedded in HTML.
//
// A definition has a name, the file name globs it applies to, an
// ordered list of patterns and a symbol table:
//
//	name = "C"
//	files = ["*.c", "*.h"]
//
//	[[patterns]]
//	pattern = ["/%*", "%*/"]
//	type = "comment"
//
//	[symbols]
//	return = "keyword"
//
// A pattern entry holds one to three patterns (trigger, end, escape),
// one type per match segment, and optionally a sub-syntax given either
// inline or by the name of another definition.
package languages

import (
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/linetok/text/syntax"
	"cogentcore.org/linetok/text/token"
	"github.com/gobwas/glob"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownLanguage is returned for names no definition answers to.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrFormat is returned for definition files that do not decode or
	// do not have the expected shape.
	ErrFormat = errors.New("invalid language definition")
)

// Format is the encoding of a definition file.
type Format int

const (
	TOML Format = iota
	YAML
)

// FormatOf returns the format of a file from its extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, true
	case ".yaml", ".yml":
		return YAML, true
	}
	return 0, false
}

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// Definition is a parsed language definition.
type Definition struct {

	// Name of the language; registry lookups ignore case.
	Name string

	// Files are the file name globs the language applies to.
	Files []string

	// Spec is the declarative syntax, ready for [syntax.Build].
	Spec *syntax.Spec

	// Path is the file the definition was loaded from, if any.
	Path string

	globs []glob.Glob
}

// MatchFile returns true if the base name of filename matches one of
// the file globs of the definition.
func (d *Definition) MatchFile(filename string) bool {
	base := filepath.Base(filename)
	for _, g := range d.globs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// Refs returns the names of the sub-syntaxes the definition refers to,
// including those of its inline sub-syntaxes.
func (d *Definition) Refs() []string {
	var refs []string
	var walk func(spec *syntax.Spec, depth int)
	walk = func(spec *syntax.Spec, depth int) {
		if spec == nil || depth > syntax.MaxLevels {
			return
		}
		for i := range spec.Rules {
			rs := &spec.Rules[i]
			if rs.SyntaxRef != "" {
				refs = append(refs, rs.SyntaxRef)
			}
			walk(rs.Syntax, depth+1)
		}
	}
	walk(d.Spec, 1)
	return refs
}

// Parse decodes a definition.
func Parse(data []byte, format Format) (*Definition, error) {
	var m map[string]any
	var err error
	if format == YAML {
		err = yaml.Unmarshal(data, &m)
	} else {
		err = toml.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, format, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: empty %s document", ErrFormat, format)
	}
	return definitionFromMap(m)
}

func definitionFromMap(m map[string]any) (*Definition, error) {
	name, ok := m["name"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrFormat)
	}
	def := &Definition{Name: name}
	files, err := stringList(m["files"], "files")
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", name, err)
	}
	def.Files = files
	for _, f := range files {
		g, err := glob.Compile(f)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w: file glob %q: %w", name, ErrFormat, f, err)
		}
		def.globs = append(def.globs, g)
	}
	def.Spec, err = specFromMap(m, 1)
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", name, err)
	}
	def.Spec.Name = name
	return def, nil
}

// specFromMap converts the patterns and symbols of a decoded table.
// depth bounds inline nesting, which [syntax.Build] rejects anyway.
func specFromMap(m map[string]any, depth int) (*syntax.Spec, error) {
	if depth > syntax.MaxLevels {
		return nil, fmt.Errorf("inline syntax: %w", syntax.ErrRecursionLimit)
	}
	spec := &syntax.Spec{}
	spec.Name, _ = m["name"].(string)
	if v, ok := m["patterns"]; ok {
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: patterns is %T, want list", ErrFormat, v)
		}
		for i, e := range list {
			pm, err := table(e)
			if err != nil {
				return nil, fmt.Errorf("%w: patterns[%d]: %w", ErrFormat, i, err)
			}
			rs, err := ruleFromMap(pm, depth)
			if err != nil {
				return nil, fmt.Errorf("patterns[%d]: %w", i, err)
			}
			spec.Rules = append(spec.Rules, rs)
		}
	}
	if v, ok := m["symbols"]; ok {
		sm, err := table(v)
		if err != nil {
			return nil, fmt.Errorf("%w: symbols: %w", ErrFormat, err)
		}
		spec.Symbols = make(map[string]token.Class, len(sm))
		for word, cl := range sm {
			s, ok := cl.(string)
			if !ok {
				return nil, fmt.Errorf("%w: symbol %q has type %T, want string", ErrFormat, word, cl)
			}
			spec.Symbols[word] = token.Class(s)
		}
	}
	return spec, nil
}

func ruleFromMap(m map[string]any, depth int) (syntax.RuleSpec, error) {
	var rs syntax.RuleSpec
	if _, ok := m["regex"]; ok {
		return rs, fmt.Errorf("%w: regex patterns are not supported", ErrFormat)
	}
	pats, err := stringList(m["pattern"], "pattern")
	if err != nil {
		return rs, err
	}
	if len(pats) == 0 {
		return rs, fmt.Errorf("%w: missing pattern", ErrFormat)
	}
	rs.Patterns = pats
	types, err := stringList(m["type"], "type")
	if err != nil {
		return rs, err
	}
	for _, t := range types {
		rs.Types = append(rs.Types, token.Class(t))
	}
	switch sub := m["syntax"].(type) {
	case nil:
	case string:
		rs.SyntaxRef = sub
	default:
		sm, err := table(sub)
		if err != nil {
			return rs, fmt.Errorf("%w: syntax: %w", ErrFormat, err)
		}
		rs.Syntax, err = specFromMap(sm, depth+1)
		if err != nil {
			return rs, err
		}
	}
	return rs, nil
}

// stringList accepts a string or a list of strings.
func stringList(v any, field string) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{x}, nil
	case []any:
		out := make([]string, len(x))
		for i, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] is %T, want string", ErrFormat, field, i, e)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s is %T, want string or list", ErrFormat, field, v)
}

// table returns a decoded table with string keys. YAML decodes tables
// with non-string keys, such as a bare true, as map[any]any.
func table(v any) (map[string]any, error) {
	switch x := v.(type) {
	case map[string]any:
		return x, nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[fmt.Sprint(k)] = e
		}
		return m, nil
	}
	return nil, fmt.Errorf("%T is not a table", v)
}
