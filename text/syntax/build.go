// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/linetok/text/pattern"
	"cogentcore.org/linetok/text/token"
)

var (
	// ErrInvalidPattern is returned when a pattern does not compile.
	ErrInvalidPattern = pattern.ErrInvalidPattern

	// ErrInvalidRule is returned for rules that are structurally wrong,
	// independent of their patterns.
	ErrInvalidRule = errors.New("invalid rule")

	// ErrRecursionLimit is returned when sub-syntaxes nest deeper than
	// [MaxLevels], including cyclic references.
	ErrRecursionLimit = errors.New("sub-syntax recursion limit exceeded")
)

// Spec is the declarative form of a [Syntax].
type Spec struct {

	// Name of the syntax.
	Name string

	// Rules in priority order.
	Rules []RuleSpec

	// Symbols maps exact words to the class they take.
	Symbols map[string]token.Class
}

// RuleSpec is the declarative form of a [Rule].
type RuleSpec struct {

	// Patterns are the trigger and the optional end and escape patterns.
	// A rule with two or three patterns is stateful.
	Patterns []string

	// Types are the classes of the match segments; none means normal.
	Types []token.Class

	// Syntax is an inline sub-syntax.
	Syntax *Spec

	// SyntaxRef names a sub-syntax obtained from the [Resolver].
	SyntaxRef string
}

// Resolver returns built syntaxes by name, for [RuleSpec.SyntaxRef].
type Resolver interface {
	Resolve(name string) (*Syntax, error)
}

// ResolverFunc adapts a function to the [Resolver] interface.
type ResolverFunc func(name string) (*Syntax, error)

func (f ResolverFunc) Resolve(name string) (*Syntax, error) { return f(name) }

// Build compiles spec into a [Syntax]. res resolves named sub-syntaxes
// and may be nil if spec has none. Build fails as a whole: it never
// returns a partially built syntax.
func Build(spec *Spec, res Resolver) (*Syntax, error) {
	return build(spec, res, 1)
}

// build compiles spec as the syntax at the given 1-based nesting level.
func build(spec *Spec, res Resolver, level int) (*Syntax, error) {
	if level > MaxLevels {
		return nil, fmt.Errorf("syntax %q at level %d: %w", spec.Name, level, ErrRecursionLimit)
	}
	syn := &Syntax{Name: spec.Name, Rules: make([]Rule, len(spec.Rules)), height: 1}
	for i := range spec.Rules {
		if err := buildRule(&syn.Rules[i], &spec.Rules[i], res, level); err != nil {
			return nil, fmt.Errorf("syntax %q: rule %d: %w", spec.Name, i+1, err)
		}
		rule := &syn.Rules[i]
		if rule.Stateful() {
			syn.MaxStateful = i + 1
		}
		if rule.Sub != nil {
			syn.height = max(syn.height, rule.Sub.height+1)
		}
	}
	syn.Symbols = buildSymbols(spec)
	return syn, nil
}

func buildRule(rule *Rule, rs *RuleSpec, res Resolver, level int) error {
	np := len(rs.Patterns)
	if np == 0 || np > MaxPatterns {
		return fmt.Errorf("%w: %d patterns, want 1 to %d", ErrInvalidRule, np, MaxPatterns)
	}
	for j, src := range rs.Patterns {
		pt, err := pattern.Compile(src)
		if err != nil {
			return err
		}
		rule.Patterns[j] = pt
	}
	if len(rs.Types) == 0 {
		rule.Types = []token.Class{token.Normal}
	} else {
		rule.Types = slices.Clone(rs.Types)
	}
	if rs.Syntax == nil && rs.SyntaxRef == "" {
		return nil
	}
	if !rule.Stateful() {
		return fmt.Errorf("%w: sub-syntax on a rule without end pattern", ErrInvalidRule)
	}
	if rs.Syntax != nil && rs.SyntaxRef != "" {
		return fmt.Errorf("%w: both inline sub-syntax and reference %q", ErrInvalidRule, rs.SyntaxRef)
	}
	if rs.Syntax != nil {
		sub, err := build(rs.Syntax, res, level+1)
		if err != nil {
			return err
		}
		rule.Sub = sub
		return nil
	}
	if res == nil {
		return fmt.Errorf("%w: no resolver for sub-syntax %q", ErrInvalidRule, rs.SyntaxRef)
	}
	sub, err := res.Resolve(rs.SyntaxRef)
	if err != nil {
		return fmt.Errorf("sub-syntax %q: %w", rs.SyntaxRef, err)
	}
	if sub == nil {
		return fmt.Errorf("%w: unresolved sub-syntax %q", ErrInvalidRule, rs.SyntaxRef)
	}
	if level+sub.height > MaxLevels {
		return fmt.Errorf("sub-syntax %q of height %d at level %d: %w", rs.SyntaxRef, sub.height, level, ErrRecursionLimit)
	}
	rule.Sub = sub
	return nil
}

// buildSymbols returns the symbols of spec sorted by key.
func buildSymbols(spec *Spec) []Symbol {
	syms := make([]Symbol, 0, len(spec.Symbols))
	for key, class := range spec.Symbols {
		if key == "" || len(key) > MaxSymbolLen {
			slog.Warn("syntax: dropping symbol that can never match", "syntax", spec.Name, "symbol", key)
			continue
		}
		syms = append(syms, Symbol{Key: key, Class: class})
	}
	slices.SortFunc(syms, func(a, b Symbol) int {
		return strings.Compare(a.Key, b.Key)
	})
	return syms
}
