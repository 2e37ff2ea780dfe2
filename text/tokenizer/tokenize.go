// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tokenizer turns lines of text into classified spans using a
// [syntax.Syntax], one line at a time. Each call takes the [State] left
// by the previous line and returns the state for the next one, so a
// caller can re-tokenize any line without looking at the lines before
// it, as long as it keeps the states.
package tokenizer

import (
	"cogentcore.org/linetok/text/pattern"
	"cogentcore.org/linetok/text/syntax"
	"cogentcore.org/linetok/text/token"
)

// DefaultStepBudget is the number of pattern byte comparisons allowed
// per line when [Tokenizer.StepBudget] is 0.
const DefaultStepBudget = 1 << 20

// Tokenizer tokenizes lines with one syntax. It holds no per-line state
// and is safe for concurrent use.
type Tokenizer struct {

	// Syntax is the outermost syntax.
	Syntax *syntax.Syntax

	// StepBudget bounds the pattern matching work per line. A line that
	// exceeds it fails closed: it comes back as normal text and the
	// state is the input state with its invalid levels closed.
	// 0 means [DefaultStepBudget], and a negative value means no limit.
	StepBudget int
}

// Result is the outcome of tokenizing one line.
type Result struct {

	// Spans are the classified spans, nil in quick mode.
	Spans []Span

	// State is the state at the end of the line.
	State State

	// Steps is the number of pattern comparisons spent.
	Steps int

	// Exhausted is set when the step budget ran out.
	Exhausted bool
}

// Tokenize tokenizes one line with syn, starting from state st, with
// the default step budget. In quick mode only the stateful rule prefix
// is tried and no spans are returned.
func Tokenize(syn *syntax.Syntax, text []byte, st State, quick bool) ([]Span, State) {
	tk := Tokenizer{Syntax: syn}
	res := tk.Line(text, st, quick)
	return res.Spans, res.State
}

// Line tokenizes one line starting from state st.
func (tk *Tokenizer) Line(text []byte, st State, quick bool) Result {
	budget := tk.StepBudget
	if budget == 0 {
		budget = DefaultStepBudget
	}
	if tk.Syntax == nil {
		res := Result{}
		if !quick && len(text) > 0 {
			res.Spans = []Span{{Class: token.Normal, Len: len(text)}}
		}
		return res
	}
	lx := lexer{text: text, quick: quick, st: st}
	if budget > 0 {
		lx.steps = &budget
	}
	lx.resolve(tk.Syntax)
	resolved := lx.st
	lx.run()
	res := Result{Spans: lx.spans, State: lx.st}
	if lx.steps != nil {
		res.Steps = tk.budget() - max(budget, 0)
	}
	if lx.out {
		res.Exhausted = true
		res.State = resolved
		res.Spans = nil
		if !quick && len(text) > 0 {
			res.Spans = []Span{{Class: token.Normal, Len: len(text)}}
		}
	}
	return res
}

func (tk *Tokenizer) budget() int {
	if tk.StepBudget == 0 {
		return DefaultStepBudget
	}
	return tk.StepBudget
}

// lexer is the state of tokenizing one line.
type lexer struct {
	text  []byte
	quick bool
	st    State

	// syns are the syntaxes of the levels up to the active one.
	syns [MaxLevels]*syntax.Syntax

	// level is the active level: the level of the syntax whose rules
	// are tried. A rule may be open at this level only if it has no
	// sub-syntax.
	level int

	spans []Span

	// last is the end of the last emitted span.
	last int

	steps *int
	out   bool
	lens  [pattern.MaxSegments]int
}

// resolve finds the syntax of every open level, closing the rules that
// do not exist or cannot be open, and sets the active level.
func (lx *lexer) resolve(root *syntax.Syntax) {
	lx.syns[0] = root
	for level := 0; level < lx.st.Len(); level++ {
		syn := lx.syns[level]
		ri, _ := lx.st.Rule(level)
		if ri >= len(syn.Rules) || !syn.Rules[ri].Stateful() {
			lx.st.truncate(level)
			break
		}
		sub := subOf(&syn.Rules[ri], level)
		if sub == nil {
			lx.st.truncate(level + 1)
			break
		}
		lx.syns[level+1] = sub
	}
	lx.level = lx.st.Len()
	if lx.level > 0 {
		top, _ := lx.st.Top()
		if subOf(&lx.syns[lx.level-1].Rules[top], lx.level-1) == nil {
			lx.level--
		}
	}
}

// subOf returns the sub-syntax a rule at level opens, or nil if it has
// none or the levels are used up.
func subOf(rule *syntax.Rule, level int) *syntax.Syntax {
	if level+1 >= MaxLevels {
		return nil
	}
	return rule.Sub
}

// openRule returns the rule open at the active level, if any.
func (lx *lexer) openRule() *syntax.Rule {
	if ri, ok := lx.st.Rule(lx.level); ok {
		return &lx.syns[lx.level].Rules[ri]
	}
	return nil
}

// parentRule returns the rule that owns the active sub-syntax, if any.
func (lx *lexer) parentRule() *syntax.Rule {
	if lx.level == 0 {
		return nil
	}
	ri, _ := lx.st.Rule(lx.level - 1)
	return &lx.syns[lx.level-1].Rules[ri]
}

// match matches pt at off and returns the number of segments in lx.lens.
func (lx *lexer) match(pt *pattern.Pattern, off int) int {
	if pt == nil || lx.out {
		return 0
	}
	k := pt.MatchSteps(lx.text, off, lx.lens[:], lx.steps)
	if lx.steps != nil && *lx.steps < 0 {
		lx.out = true
		return 0
	}
	return k
}

// total returns the length of a match of k segments.
func (lx *lexer) total(k int) int {
	n := 0
	for _, l := range lx.lens[:k] {
		n += l
	}
	return n
}

// stallLimit is the number of loop iterations allowed without moving
// the cursor; zero-length matches that push and pop levels could
// otherwise cycle forever.
const stallLimit = 2*MaxLevels + 2

func (lx *lexer) run() {
	n := len(lx.text)
	off, stallAt, stall := 0, -1, 0
	for off < n && !lx.out {
		if off == stallAt {
			stall++
			if stall > stallLimit {
				off++
				stall = 0
				continue
			}
		} else {
			stallAt, stall = off, 0
		}
		if parent := lx.parentRule(); parent != nil {
			if k := lx.match(parent.Patterns[syntax.End], off); k > 0 {
				off = lx.closeParent(parent, off, k)
				continue
			}
		}
		if rule := lx.openRule(); rule != nil {
			if k := lx.match(rule.Patterns[syntax.Escape], off); k > 0 {
				off = min(n, off+lx.total(k)+1)
				continue
			}
			if k := lx.match(rule.Patterns[syntax.End], off); k > 0 {
				off = lx.emitSegments(lx.syns[lx.level], rule, lx.last, off, k)
				lx.st.Pop()
				continue
			}
			off++
			continue
		}
		off = lx.scan(off)
	}
	if lx.out {
		return
	}
	// end patterns that match the empty end of the line, such as "$"
	if parent := lx.parentRule(); parent != nil {
		if k := lx.match(parent.Patterns[syntax.End], n); k > 0 {
			lx.closeParent(parent, n, k)
		}
	}
	if rule := lx.openRule(); rule != nil {
		if k := lx.match(rule.Patterns[syntax.End], n); k > 0 {
			lx.emitSegments(lx.syns[lx.level], rule, lx.last, n, k)
			lx.st.Pop()
		}
	}
	lx.flush(n)
}

// closeParent closes the rule that owns the active sub-syntax with an
// end match of k segments at off, abandoning any rule open inside, and
// returns the offset after the match.
func (lx *lexer) closeParent(parent *syntax.Rule, off, k int) int {
	lx.flush(off)
	off = lx.emitSegments(lx.syns[lx.level-1], parent, off, off, k)
	lx.st.truncate(lx.level - 1)
	lx.level--
	return off
}

// scan tries the rule triggers of the active syntax at off, with no
// rule open, and returns the offset to continue from.
func (lx *lexer) scan(off int) int {
	syn := lx.syns[lx.level]
	rules := syn.Rules
	if lx.quick {
		rules = rules[:syn.MaxStateful]
	}
	for i := range rules {
		rule := &rules[i]
		k := lx.match(rule.Patterns[syntax.Trigger], off)
		if k == 0 {
			continue
		}
		if !rule.Stateful() {
			if lx.total(k) == 0 {
				continue
			}
			lx.flush(off)
			return lx.emitSegments(syn, rule, off, off, k)
		}
		lx.flush(off)
		if !lx.st.Push(i) {
			continue
		}
		if sub := subOf(rule, lx.level); sub != nil {
			off = lx.emitSegments(syn, rule, off, off, k)
			lx.level++
			lx.syns[lx.level] = sub
			return off
		}
		// the trigger text joins the span of the open rule
		return off + lx.total(k)
	}
	if !pattern.IsAlnum(lx.text[off]) {
		return off + 1
	}
	end := off + 1
	for end < len(lx.text) && pattern.IsAlnum(lx.text[end]) {
		end++
	}
	if !lx.quick {
		if class, ok := syn.Lookup(lx.text[off:end]); ok {
			lx.flush(off)
			lx.emit(class, end-off)
			lx.last = end
		}
	}
	return end
}

// emitSegments emits the k segments of a match of rule at off, except
// that the first segment starts at start (at or before off) to take in
// pending text. It returns the offset after the match.
func (lx *lexer) emitSegments(syn *syntax.Syntax, rule *syntax.Rule, start, off, k int) int {
	for j := range k {
		off += lx.lens[j]
		lx.emitClassified(syn, rule.Type(j), start, off)
		start = off
	}
	lx.last = off
	return off
}

// emitClassified emits text[start:end] with class, unless the symbol
// table of syn overrides it.
func (lx *lexer) emitClassified(syn *syntax.Syntax, class token.Class, start, end int) {
	if lx.quick || end <= start {
		return
	}
	if sym, ok := syn.Lookup(lx.text[start:end]); ok {
		class = sym
	}
	lx.emit(class, end-start)
}

// flush emits the pending text before off: it belongs to the open
// rule if there is one, and is normal text otherwise.
func (lx *lexer) flush(off int) {
	if off <= lx.last {
		return
	}
	if rule := lx.openRule(); rule != nil {
		lx.emitClassified(lx.syns[lx.level], rule.Type(0), lx.last, off)
	} else {
		lx.emit(token.Normal, off-lx.last)
	}
	lx.last = off
}

func (lx *lexer) emit(class token.Class, n int) {
	if lx.quick || n <= 0 {
		return
	}
	lx.spans = append(lx.spans, Span{Class: class, Len: n})
}
