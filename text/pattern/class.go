// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pattern

func isAlpha(c byte) bool  { return isLower(c) || isUpper(c) }
func isLower(c byte) bool  { return 'a' <= c && c <= 'z' }
func isUpper(c byte) bool  { return 'A' <= c && c <= 'Z' }
func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
func isCntrl(c byte) bool  { return c < 0x20 || c == 0x7f }
func isGraph(c byte) bool  { return 0x21 <= c && c <= 0x7e }
func isPunct(c byte) bool  { return isGraph(c) && !isAlpha(c) && !isDigit(c) }
func isXDigit(c byte) bool { return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F') }

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// IsAlnum reports whether c is an ASCII letter or digit. It is the
// word test the tokenizer uses for runs of unmatched text.
func IsAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

// matchClass reports whether c is in the class named by cl (the byte
// following a '%'). An uppercase class letter inverts the class, and any
// other byte matches itself.
func matchClass(c, cl byte) bool {
	high := c >= 0x80
	var res bool
	switch cl | 0x20 {
	case 'a':
		res = isAlpha(c) || high
	case 'c':
		res = isCntrl(c) || high
	case 'd':
		res = isDigit(c)
	case 'g':
		res = isGraph(c)
	case 'l':
		res = isLower(c) || high
	case 'p':
		res = isPunct(c)
	case 's':
		res = isSpace(c)
	case 'u':
		res = isUpper(c) || high
	case 'w':
		res = IsAlnum(c) || high
	case 'x':
		res = isXDigit(c)
	default:
		return cl == c
	}
	if isUpper(cl) {
		return !res
	}
	return res
}

// matchSet reports whether c is in the set pat[p:ec], where pat[p] is
// the opening '[' and pat[ec] the closing ']'.
func matchSet(c byte, pat string, p, ec int) bool {
	member := true
	if pat[p+1] == '^' {
		member = false
		p++
	}
	for p++; p < ec; p++ {
		switch {
		case pat[p] == '%':
			p++
			if matchClass(c, pat[p]) {
				return member
			}
		case pat[p+1] == '-' && p+2 < ec:
			p += 2
			if pat[p-2] <= c && c <= pat[p] {
				return member
			}
		case pat[p] == c:
			return member
		}
	}
	return !member
}

// singleMatch reports whether c matches the atom pat[p:ep].
func singleMatch(c byte, pat string, p, ep int) bool {
	switch pat[p] {
	case '.':
		return true
	case '%':
		return matchClass(c, pat[p+1])
	case '[':
		return matchSet(c, pat, p, ep-1)
	}
	return pat[p] == c
}
