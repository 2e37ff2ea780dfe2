// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package highlighting renders tokenized lines: it keeps an incremental
// per-line cache of tokenizer states for editing buffers, and turns
// spans into HTML or ANSI terminal output using the
// github.com/alecthomas/chroma styles, which in turn were based on the
// python pygments package. Files without a rule-based language fall
// back on the chroma lexers.
package highlighting

import (
	"fmt"
	"image/color"
	"strings"

	"cogentcore.org/linetok/text/token"
	"github.com/alecthomas/chroma/v2"
)

// StyleName is the name of a highlighting style.
type StyleName string

// Trilean value for StyleEntry value inheritance.
type Trilean int32

const (
	Pass Trilean = iota
	Yes
	No
)

func (t Trilean) Prefix(s string) string {
	if t == Yes {
		return s
	} else if t == No {
		return "no" + s
	}
	return ""
}

// StyleEntry is the style of one token class.
type StyleEntry struct {

	// Color is the text color.
	Color color.RGBA

	// Background color.
	// In general it is not good to use this because it obscures highlighting.
	Background color.RGBA

	// Bold font.
	Bold Trilean

	// Italic font.
	Italic Trilean

	// Underline.
	Underline Trilean
}

// StyleEntryFromChroma returns the entry for a chroma style entry.
func StyleEntryFromChroma(ce chroma.StyleEntry) StyleEntry {
	se := StyleEntry{
		Bold:      Trilean(ce.Bold),
		Italic:    Trilean(ce.Italic),
		Underline: Trilean(ce.Underline),
	}
	if ce.Colour.IsSet() {
		se.Color = rgba(ce.Colour)
	}
	if ce.Background.IsSet() {
		se.Background = rgba(ce.Background)
	}
	return se
}

func rgba(c chroma.Colour) color.RGBA {
	return color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 255}
}

func isNil(c color.RGBA) bool {
	return c.A == 0
}

// hex returns the #rrggbb form of c.
func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (se StyleEntry) String() string {
	out := []string{}
	if se.Bold != Pass {
		out = append(out, se.Bold.Prefix("bold"))
	}
	if se.Italic != Pass {
		out = append(out, se.Italic.Prefix("italic"))
	}
	if se.Underline != Pass {
		out = append(out, se.Underline.Prefix("underline"))
	}
	if !isNil(se.Color) {
		out = append(out, hex(se.Color))
	}
	if !isNil(se.Background) {
		out = append(out, "bg:"+hex(se.Background))
	}
	return strings.Join(out, " ")
}

// ToCSS converts StyleEntry to CSS attributes.
func (se StyleEntry) ToCSS() string {
	styles := []string{}
	if !isNil(se.Color) {
		styles = append(styles, "color: "+hex(se.Color))
	}
	if !isNil(se.Background) {
		styles = append(styles, "background-color: "+hex(se.Background))
	}
	if se.Bold == Yes {
		styles = append(styles, "font-weight: bold")
	}
	if se.Italic == Yes {
		styles = append(styles, "font-style: italic")
	}
	if se.Underline == Yes {
		styles = append(styles, "text-decoration: underline")
	}
	return strings.Join(styles, "; ")
}

func (se StyleEntry) IsZero() bool {
	return isNil(se.Color) && isNil(se.Background) && se.Bold == Pass && se.Italic == Pass && se.Underline == Pass
}

////////  Style

// Style maps token classes to style entries. It is read-only once
// made and can be shared.
type Style struct {

	// Name of the style.
	Name StyleName

	// Background is the style of the text background.
	Background StyleEntry

	// chroma style the entries come from
	chroma *chroma.Style

	entries map[token.Class]StyleEntry
}

// NewStyle returns the style for a chroma style.
func NewStyle(cs *chroma.Style) *Style {
	hs := &Style{
		Name:       StyleName(cs.Name),
		Background: StyleEntryFromChroma(cs.Get(chroma.Background)),
		chroma:     cs,
		entries:    make(map[token.Class]StyleEntry, len(token.Classes)),
	}
	for _, cl := range token.Classes {
		hs.entries[cl] = StyleEntryFromChroma(cs.Get(cl.Chroma()))
	}
	return hs
}

// Chroma returns the underlying chroma style.
func (hs *Style) Chroma() *chroma.Style {
	return hs.chroma
}

// Tag returns the StyleEntry for a token class. Classes that are not
// well known take the style of their chroma token type.
func (hs *Style) Tag(cl token.Class) StyleEntry {
	if se, ok := hs.entries[cl]; ok {
		return se
	}
	return StyleEntryFromChroma(hs.chroma.Get(cl.Chroma()))
}

// ToCSS generates a CSS style sheet for this style, by class name
// as used in [MarkupLineHTML].
func (hs *Style) ToCSS() map[string]string {
	css := map[string]string{}
	for _, cl := range token.Classes {
		entry := hs.Tag(cl)
		if entry.IsZero() || cl.IsNormal() {
			continue
		}
		css[ClassName(cl)] = entry.ToCSS()
	}
	return css
}
