// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package highlighting

import (
	"bytes"
	"html"
	"io"
	"strings"

	"cogentcore.org/linetok/text/token"
	"cogentcore.org/linetok/text/tokenizer"
	"github.com/alecthomas/chroma/v2"
	"github.com/muesli/termenv"
)

// maxLineLen prevents overflow in allocating line length
const (
	maxLineLen = 64 * 1024
	maxNumTags = 1024
)

// Values for the escapeHTML argument of [MarkupLineHTML].
const (
	EscapeHTML   = true
	NoEscapeHTML = false
)

// ClassName returns the CSS class name of a token class, which is the
// short pygments name of its chroma token type, such as "k" for
// keyword. Normal text has no class name.
func ClassName(cl token.Class) string {
	return chroma.StandardTypes[cl.Chroma()]
}

// clip returns the spans limited to n bytes in total.
func clip(spans []tokenizer.Span, n int) []tokenizer.Span {
	pos := 0
	for i, sp := range spans {
		if pos+sp.Len >= n {
			out := append([]tokenizer.Span{}, spans[:i+1]...)
			out[i].Len = n - pos
			return out
		}
		pos += sp.Len
	}
	return spans
}

// MarkupLineHTML returns the line with html class tags added for each
// span: <span class="k">. Text past the spans is emitted unstyled.
// If escapeHTML is true, the text is html-escaped.
func MarkupLineHTML(line []byte, spans []tokenizer.Span, escapeHTML bool) []byte {
	if len(line) > maxLineLen { // avoid overflow
		line = line[:maxLineLen]
	}
	sz := len(line)
	if sz == 0 {
		return nil
	}
	esc := func(b []byte) string {
		if escapeHTML {
			return html.EscapeString(string(b))
		}
		return string(b)
	}
	if len(spans) > maxNumTags {
		return []byte(esc(line))
	}
	var mu bytes.Buffer
	cp := 0
	for _, rg := range tokenizer.Regions(clip(spans, sz)) {
		src := rg.Src(line)
		cp = rg.End
		if len(src) == 0 {
			continue
		}
		cnm := ClassName(rg.Class)
		if cnm == "" {
			mu.WriteString(esc(src))
			continue
		}
		mu.WriteString(`<span class="` + cnm + `">`)
		mu.WriteString(esc(src))
		mu.WriteString(`</span>`)
	}
	if cp < sz {
		mu.WriteString(esc(line[cp:]))
	}
	return mu.Bytes()
}

// MarkupLineANSI returns the line with terminal escape sequences for
// the style of each span, in the given color profile. Normal text keeps
// the terminal colors.
func MarkupLineANSI(p termenv.Profile, hs *Style, line []byte, spans []tokenizer.Span) string {
	var sb strings.Builder
	cp := 0
	for _, rg := range tokenizer.Regions(clip(spans, len(line))) {
		src := string(rg.Src(line))
		cp = rg.End
		if rg.Class.IsNormal() || src == "" {
			sb.WriteString(src)
			continue
		}
		sb.WriteString(ansiStyle(p, hs.Tag(rg.Class), src).String())
	}
	sb.Write(line[min(cp, len(line)):])
	return sb.String()
}

func ansiStyle(p termenv.Profile, se StyleEntry, s string) termenv.Style {
	st := p.String(s)
	if !isNil(se.Color) {
		st = st.Foreground(p.Color(hex(se.Color)))
	}
	if !isNil(se.Background) {
		st = st.Background(p.Color(hex(se.Background)))
	}
	if se.Bold == Yes {
		st = st.Bold()
	}
	if se.Italic == Yes {
		st = st.Italic()
	}
	if se.Underline == Yes {
		st = st.Underline()
	}
	return st
}

// ChromaTokens returns the lines as chroma tokens, one per span plus a
// newline token per line.
func ChromaTokens(lines [][]byte, spans [][]tokenizer.Span) []chroma.Token {
	var toks []chroma.Token
	for li, line := range lines {
		var ls []tokenizer.Span
		if li < len(spans) {
			ls = spans[li]
		}
		cp := 0
		for _, rg := range tokenizer.Regions(clip(ls, len(line))) {
			cp = rg.End
			if rg.Start == rg.End {
				continue
			}
			toks = append(toks, chroma.Token{Type: rg.Class.Chroma(), Value: string(rg.Src(line))})
		}
		if cp < len(line) {
			toks = append(toks, chroma.Token{Type: chroma.Text, Value: string(line[cp:])})
		}
		toks = append(toks, chroma.Token{Type: chroma.Text, Value: "\n"})
	}
	return toks
}

// FormatHTML writes the lines as an html block with the chroma html
// formatter, using css classes for the style of the highlighter.
func (hi *Highlighter) FormatHTML(w io.Writer, lines [][]byte, spans [][]tokenizer.Span) error {
	if hi.formatter == nil {
		hi.finishInit()
	}
	return hi.formatter.Format(w, hi.Style.Chroma(), chroma.Literator(ChromaTokens(lines, spans)...))
}

// WriteCSS writes the css classes used by [Highlighter.FormatHTML].
func (hi *Highlighter) WriteCSS(w io.Writer) error {
	if hi.formatter == nil {
		hi.finishInit()
	}
	return hi.formatter.WriteCSS(w, hi.Style.Chroma())
}
