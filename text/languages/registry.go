// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package languages

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/linetok/text/syntax"
	gocache "github.com/patrickmn/go-cache"
)

// Registry holds language definitions by name and the syntaxes built
// from them. Sub-syntax references in a definition are resolved through
// the registry, by language name or, for names starting with a dot, by
// file extension. A Registry is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition

	// built syntaxes by lower-case name
	cache *gocache.Cache
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:  make(map[string]*Definition),
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

func key(name string) string {
	return strings.ToLower(name)
}

// Add adds def, replacing any definition with the same name, and
// invalidates the syntaxes built from the old one.
func (r *Registry) Add(def *Definition) {
	r.mu.Lock()
	r.defs[key(def.Name)] = def
	r.mu.Unlock()
	r.Invalidate(def.Name)
}

// Remove removes the named definition.
func (r *Registry) Remove(name string) bool {
	r.Invalidate(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.defs[key(name)]
	delete(r.defs, key(name))
	return ok
}

// RemovePath removes the definitions loaded from the given file and
// returns their names.
func (r *Registry) RemovePath(file string) []string {
	names := r.pathNames(file)
	for _, name := range names {
		r.Remove(name)
	}
	return names
}

func (r *Registry) pathNames(file string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for _, def := range r.defs {
		if def.Path == file {
			names = append(names, def.Name)
		}
	}
	return names
}

// Load parses data as the definition file at the given path, whose
// extension selects the format, and adds it.
func (r *Registry) Load(file string, data []byte) (*Definition, error) {
	format, ok := FormatOf(file)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unknown file extension", ErrFormat, file)
	}
	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	def.Path = file
	r.Add(def)
	slog.Debug("languages: loaded definition", "language", def.Name, "path", file)
	return def, nil
}

// LoadFile loads one definition file.
func (r *Registry) LoadFile(file string) (*Definition, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return r.Load(file, data)
}

// LoadDir loads every definition file in dir. It loads what it can and
// returns the joined errors of the rest.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var errs []error
	for _, e := range entries {
		if _, ok := FormatOf(e.Name()); e.IsDir() || !ok {
			continue
		}
		_, err := r.LoadFile(filepath.Join(dir, e.Name()))
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadFS is like [Registry.LoadDir] for a directory of fsys.
func (r *Registry) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	var errs []error
	for _, e := range entries {
		if _, ok := FormatOf(e.Name()); e.IsDir() || !ok {
			continue
		}
		file := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, file)
		if err == nil {
			_, err = r.Load(file, data)
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Definition returns the definition for a language name, or for a file
// extension such as ".js".
func (r *Registry) Definition(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(name)
}

func (r *Registry) lookup(name string) (*Definition, bool) {
	if def, ok := r.defs[key(name)]; ok {
		return def, true
	}
	if strings.HasPrefix(name, ".") && len(name) > 1 {
		return r.matchLocked("file" + name)
	}
	return nil, false
}

// Match returns the definition whose file globs match filename. When
// several match, the one whose name sorts first wins.
func (r *Registry) Match(filename string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.matchLocked(filename)
}

func (r *Registry) matchLocked(filename string) (*Definition, bool) {
	for _, k := range r.sortedKeys() {
		if def := r.defs[k]; def.MatchFile(filename) {
			return def, true
		}
	}
	return nil, false
}

func (r *Registry) sortedKeys() []string {
	keys := make([]string, 0, len(r.defs))
	for k := range r.defs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Names returns the names of all languages, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for _, k := range r.sortedKeys() {
		names = append(names, r.defs[k].Name)
	}
	return names
}

// Syntax returns the built syntax of a language, building it and the
// sub-syntaxes it refers to on first use. A chain of references that
// comes back to a language it started from fails with
// [syntax.ErrRecursionLimit].
func (r *Registry) Syntax(name string) (*syntax.Syntax, error) {
	return r.syntax(name, nil)
}

// ForFile returns the built syntax for a file name.
func (r *Registry) ForFile(filename string) (*syntax.Syntax, error) {
	def, ok := r.Match(filename)
	if !ok {
		return nil, fmt.Errorf("%w: no language for %q", ErrUnknownLanguage, filepath.Base(filename))
	}
	return r.Syntax(def.Name)
}

// syntax builds name; stack holds the languages being built further up
// the reference chain.
func (r *Registry) syntax(name string, stack []string) (*syntax.Syntax, error) {
	def, ok := r.Definition(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	k := key(def.Name)
	if v, ok := r.cache.Get(k); ok {
		return v.(*syntax.Syntax), nil
	}
	if slices.Contains(stack, k) {
		return nil, fmt.Errorf("%w: %s -> %s", syntax.ErrRecursionLimit, strings.Join(stack, " -> "), k)
	}
	stack = append(slices.Clip(stack), k)
	syn, err := syntax.Build(def.Spec, syntax.ResolverFunc(func(ref string) (*syntax.Syntax, error) {
		return r.syntax(ref, stack)
	}))
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", def.Name, err)
	}
	r.cache.Set(k, syn, gocache.NoExpiration)
	slog.Debug("languages: built syntax", "language", def.Name, "rules", len(syn.Rules), "levels", syn.Height())
	return syn, nil
}

// Invalidate discards the built syntaxes of the named languages and of
// every language that refers to them, directly or not. With no names it
// discards every built syntax. Syntaxes already handed out stay valid.
func (r *Registry) Invalidate(names ...string) {
	if len(names) == 0 {
		r.cache.Flush()
		return
	}
	r.mu.RLock()
	stale := make(map[string]bool)
	for _, name := range names {
		stale[key(name)] = true
	}
	for changed := true; changed; {
		changed = false
		for k, def := range r.defs {
			if stale[k] {
				continue
			}
			for _, ref := range def.Refs() {
				if d, ok := r.lookup(ref); ok && stale[key(d.Name)] {
					stale[k] = true
					changed = true
					break
				}
			}
		}
	}
	r.mu.RUnlock()
	for k := range stale {
		r.cache.Delete(k)
	}
}
