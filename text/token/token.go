// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package token defines the token classes that syntax rules assign to
// spans of text. Classes are plain labels chosen by the rule author; the
// well-known ones map onto the alecthomas/chroma (pygments) token types
// so that standard highlighting styles apply to them.
package token

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// Class is the label of a token class, such as "keyword" or "comment".
type Class string

// The well-known classes.
const (
	// Normal is unclassified text.
	Normal Class = "normal"

	Keyword  Class = "keyword"
	Keyword2 Class = "keyword2"
	String   Class = "string"
	Comment  Class = "comment"
	Number   Class = "number"
	Operator Class = "operator"
	Function Class = "function"
	Literal  Class = "literal"
	Symbol   Class = "symbol"
)

// Classes lists the well-known classes.
var Classes = []Class{Normal, Keyword, Keyword2, String, Comment, Number, Operator, Function, Literal, Symbol}

// chromaMap is the chroma token type for each well-known class.
var chromaMap = map[Class]chroma.TokenType{
	Normal:   chroma.Text,
	Keyword:  chroma.Keyword,
	Keyword2: chroma.KeywordType,
	String:   chroma.LiteralString,
	Comment:  chroma.Comment,
	Number:   chroma.LiteralNumber,
	Operator: chroma.Operator,
	Function: chroma.NameFunction,
	Literal:  chroma.Literal,
	Symbol:   chroma.Name,
}

// String satisfies the fmt.Stringer interface
func (c Class) String() string { return string(c) }

// IsNormal returns true for unclassified text, including the empty class.
func (c Class) IsNormal() bool { return c == Normal || c == "" }

// Chroma returns the chroma token type used to style the class.
// Unknown classes are matched by their prefix before a '.', so that
// "string.escape" styles like "string"; anything else is plain text.
func (c Class) Chroma() chroma.TokenType {
	if tt, ok := chromaMap[c]; ok {
		return tt
	}
	if base, _, ok := strings.Cut(string(c), "."); ok {
		if tt, ok := chromaMap[Class(base)]; ok {
			return tt
		}
	}
	return chroma.Text
}

// FromChroma returns the class for a chroma token type, going up the
// chroma category tree until a well-known class is found.
func FromChroma(tt chroma.TokenType) Class {
	switch {
	case tt == chroma.KeywordType:
		return Keyword2
	case tt == chroma.NameFunction || tt == chroma.NameFunctionMagic:
		return Function
	case tt.InCategory(chroma.Keyword):
		return Keyword
	case tt.InCategory(chroma.Comment):
		return Comment
	case tt.InSubCategory(chroma.LiteralString):
		return String
	case tt.InSubCategory(chroma.LiteralNumber):
		return Number
	case tt.InCategory(chroma.Literal):
		return Literal
	case tt.InCategory(chroma.Operator):
		return Operator
	case tt.InCategory(chroma.Name):
		return Symbol
	}
	return Normal
}
