// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package highlighting

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/linetok/text/languages"
	"cogentcore.org/linetok/text/syntax"
	"cogentcore.org/linetok/text/token"
	"cogentcore.org/linetok/text/tokenizer"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Highlighter performs syntax highlighting,
// using a rule-based [syntax.Syntax] if available,
// otherwise falls back on chroma.
type Highlighter struct {

	// syntax highlighting style to use
	StyleName StyleName

	// Language is the name of the language in use.
	Language string

	// Has is whether there are highlighting parameters set
	// (only valid after [Highlighter.Init] has been called).
	Has bool

	// tab size, in chars
	TabSize int

	// StepBudget is passed on to the rule tokenizer.
	StepBudget int

	// Style is the current highlighting style.
	Style *Style

	// rule tokenizer, when Syntax is set
	tok tokenizer.Tokenizer

	// external toggle to turn off automatic highlighting
	off       bool
	lexer     chroma.Lexer
	formatter *html.Formatter
}

// UsingRules returns true if the highlighter tokenizes with a
// rule-based syntax rather than a chroma lexer.
func (hi *Highlighter) UsingRules() bool {
	return hi.tok.Syntax != nil
}

// Syntax returns the rule-based syntax in use, or nil.
func (hi *Highlighter) Syntax() *syntax.Syntax {
	return hi.tok.Syntax
}

// Init initializes the syntax highlighting for the given file name:
// the language registry is tried first, then the chroma lexers.
// reg may be nil.
func (hi *Highlighter) Init(reg *languages.Registry, filename string) {
	hi.tok.Syntax = nil
	hi.lexer = nil
	hi.Language = ""
	if reg != nil {
		if def, ok := reg.Match(filename); ok {
			if syn, err := reg.Syntax(def.Name); errors.Log(err) == nil {
				hi.SetSyntax(def.Name, syn)
			}
		}
	}
	if hi.tok.Syntax == nil {
		if lexer := lexers.Match(filename); lexer != nil {
			hi.setLexer(lexer)
		}
	}
	hi.finishInit()
}

// SetLanguage initializes the syntax highlighting for a language name,
// looked up like in [Highlighter.Init].
func (hi *Highlighter) SetLanguage(reg *languages.Registry, name string) error {
	hi.tok.Syntax = nil
	hi.lexer = nil
	hi.Language = ""
	var err error
	if reg != nil {
		var syn *syntax.Syntax
		syn, err = reg.Syntax(name)
		if err == nil {
			hi.SetSyntax(name, syn)
		}
	}
	if hi.tok.Syntax == nil {
		if lexer := lexers.Get(name); lexer != nil {
			hi.setLexer(lexer)
			err = nil
		} else if err == nil {
			err = fmt.Errorf("%w: %q", languages.ErrUnknownLanguage, name)
		}
	}
	hi.finishInit()
	return err
}

// SetSyntax sets a rule-based syntax directly.
func (hi *Highlighter) SetSyntax(name string, syn *syntax.Syntax) {
	hi.lexer = nil
	hi.Language = name
	hi.tok.Syntax = syn
	hi.finishInit()
}

func (hi *Highlighter) setLexer(lexer chroma.Lexer) {
	hi.Language = lexer.Config().Name
	hi.lexer = chroma.Coalesce(lexer)
}

func (hi *Highlighter) finishInit() {
	if hi.Style == nil || hi.Style.Name != hi.StyleName {
		if hi.StyleName == "" {
			hi.StyleName = DefaultStyle
		}
		hi.Style = AvailableStyle(hi.StyleName)
	}
	hi.tok.StepBudget = hi.StepBudget
	hi.Has = hi.tok.Syntax != nil || hi.lexer != nil
	hi.formatter = html.New(html.WithClasses(true), html.TabWidth(hi.TabSize))
}

// SetStyle sets the highlighting style and updates corresponding settings
func (hi *Highlighter) SetStyle(style StyleName) {
	if style == "" {
		return
	}
	if !HasStyle(style) {
		slog.Error("Highlighter Style not found:", "style", style)
		return
	}
	hi.StyleName = style
	hi.Style = AvailableStyle(style)
}

// SetOff turns highlighting off or back on.
func (hi *Highlighter) SetOff(off bool) {
	hi.off = off
}

// TokenizeLine returns the spans of one line and the state for the next
// line. The chroma fallback has no state to carry and returns st as is.
func (hi *Highlighter) TokenizeLine(txt []byte, st tokenizer.State, quick bool) ([]tokenizer.Span, tokenizer.State) {
	switch {
	case hi.off:
	case hi.tok.Syntax != nil:
		res := hi.tok.Line(txt, st, quick)
		if res.Exhausted {
			slog.Debug("highlighting: step budget exhausted", "language", hi.Language, "len", len(txt))
		}
		return res.Spans, res.State
	case hi.lexer != nil && !quick:
		sp, err := ChromaSpansLine(hi.lexer, string(txt))
		if errors.Log(err) == nil {
			return sp, st
		}
	}
	if quick || len(txt) == 0 {
		return nil, st
	}
	return []tokenizer.Span{{Class: token.Normal, Len: len(txt)}}, st
}

// chromaSpansForLine generates the spans for one line of chroma tokens
func chromaSpansForLine(toks []chroma.Token) []tokenizer.Span {
	var spans []tokenizer.Span
	for _, tok := range toks {
		n := len(strings.TrimSuffix(tok.Value, "\n"))
		if n == 0 {
			continue
		}
		cl := token.Normal
		if tok.Type != chroma.None { // always a parsing err AFAIK
			cl = token.FromChroma(tok.Type)
		}
		spans = append(spans, tokenizer.Span{Class: cl, Len: n})
	}
	return spans
}

// SpansAll returns the spans of all the lines. Rule-based syntaxes
// thread the state from line to line; chroma lexes the whole text at
// once so that constructs spanning lines are seen.
func (hi *Highlighter) SpansAll(lines [][]byte) [][]tokenizer.Span {
	spans := make([][]tokenizer.Span, len(lines))
	if hi.lexer != nil && !hi.off {
		all, err := hi.chromaSpansAll(bytes.Join(lines, []byte("\n")))
		if errors.Log(err) == nil && len(all) >= len(lines) {
			copy(spans, all)
			return spans
		}
	}
	var st tokenizer.State
	for i, ln := range lines {
		spans[i], st = hi.TokenizeLine(ln, st, false)
	}
	return spans
}

// chromaSpansAll returns the spans of all lines of txt, with the
// chroma lexer.
func (hi *Highlighter) chromaSpansAll(txt []byte) ([][]tokenizer.Span, error) {
	iterator, err := hi.lexer.Tokenise(nil, string(txt)+"\n")
	if err != nil {
		return nil, err
	}
	lines := chroma.SplitTokensIntoLines(iterator.Tokens())
	spans := make([][]tokenizer.Span, len(lines))
	for li, lt := range lines {
		spans[li] = chromaSpansForLine(lt)
	}
	return spans, nil
}

// ChromaSpansLine returns the spans of one line according to the given
// chroma lexer.
func ChromaSpansLine(clex chroma.Lexer, txt string) ([]tokenizer.Span, error) {
	n := len(txt)
	if n == 0 {
		return nil, nil
	}
	if txt[n-1] != '\n' {
		txt += "\n"
	}
	iterator, err := clex.Tokenise(nil, txt)
	if err != nil {
		return nil, err
	}
	return chromaSpansForLine(iterator.Tokens()), nil
}
