// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"cogentcore.org/linetok/text/pattern"
	"cogentcore.org/linetok/text/token"
)

// Pattern slots of a [Rule].
const (
	// Trigger is the pattern that engages the rule.
	Trigger = iota

	// End closes a stateful rule.
	End

	// Escape is tried before End while a stateful rule is open;
	// a match skips the escaped byte.
	Escape

	// MaxPatterns is the number of pattern slots.
	MaxPatterns
)

// Rule binds up to three patterns to the token classes they produce.
//
// A rule with only a trigger is single-shot: its match is emitted at
// once. A rule with an end pattern is stateful: once triggered it stays
// open, possibly across lines, until the end pattern matches. A stateful
// rule can own a sub-syntax that tokenizes the text between its trigger
// and its end.
type Rule struct {

	// Patterns holds the trigger, end and escape patterns; End and
	// Escape may be nil.
	Patterns [MaxPatterns]*pattern.Pattern

	// Types are the classes of the match segments, one per capture
	// segment. Segments beyond the list are normal text.
	Types []token.Class

	// Sub is the nested syntax entered when the rule opens, or nil.
	Sub *Syntax
}

// Stateful returns true if the rule has an end pattern.
func (r *Rule) Stateful() bool {
	return r.Patterns[End] != nil
}

// Type returns the class of match segment i.
func (r *Rule) Type(i int) token.Class {
	if i < 0 || i >= len(r.Types) {
		return token.Normal
	}
	return r.Types[i]
}

// String returns the trigger pattern source, for logging.
func (r *Rule) String() string {
	if r.Patterns[Trigger] == nil {
		return ""
	}
	return r.Patterns[Trigger].String()
}
