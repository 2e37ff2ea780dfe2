// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pattern

const noMatch = -1

// Match matches the pattern against text starting at offset. It returns
// the number of segments stored in lengths, or 0 if there is no match.
// lengths should hold at least [Pattern.Segments] values; segments that
// do not fit are dropped. A zero-length match is a match: it returns
// one or more segments of length 0.
func (pt *Pattern) Match(text []byte, offset int, lengths []int) int {
	return pt.MatchSteps(text, offset, lengths, nil)
}

// MatchSteps is like [Pattern.Match] but charges every byte comparison
// to *steps. When *steps drops below zero the match fails, and *steps
// stays negative so the caller can tell exhaustion from a plain
// mismatch. A nil steps means no limit.
func (pt *Pattern) MatchSteps(text []byte, offset int, lengths []int, steps *int) int {
	if offset < 0 || offset > len(text) {
		return 0
	}
	start := 0
	if pt.flags&Anchored != 0 {
		if offset != 0 {
			return 0
		}
		start = 1
	}
	m := matcher{src: text, pat: pt.src, closeAt: pt.closeAt, steps: steps}
	end := m.match(offset, start)
	if end == noMatch {
		return 0
	}
	n := min(pt.segments, len(lengths))
	prev := offset
	for k := range n {
		e := end
		if k < pt.segments-1 {
			e = m.ends[k]
		}
		lengths[k] = e - prev
		prev = e
	}
	return n
}

// MatchLengths returns the segment lengths of a match at offset.
func (pt *Pattern) MatchLengths(text []byte, offset int) ([]int, bool) {
	lengths := make([]int, pt.segments)
	n := pt.Match(text, offset, lengths)
	return lengths[:n], n > 0
}

// probe reports whether the first atom of the pattern can match at
// offset. It consumes nothing and is a necessary condition for
// [Pattern.Match].
func (pt *Pattern) probe(text []byte, offset int) bool {
	if offset < 0 || offset > len(text) {
		return false
	}
	start := 0
	if pt.flags&Anchored != 0 {
		if offset != 0 {
			return false
		}
		start = 1
	}
	m := matcher{src: text, pat: pt.src, closeAt: pt.closeAt}
	return m.probe(offset, start)
}

// matcher holds the state of one match attempt.
type matcher struct {
	src     []byte
	pat     string
	closeAt []int16

	// ends records the text offset of each closing parenthesis on the
	// current path. Every successful path passes every ')' exactly once,
	// so the final values belong to the match.
	ends [MaxCaptures]int

	steps *int
	out   bool
}

// step charges one comparison to the budget.
func (m *matcher) step() bool {
	if m.steps == nil {
		return true
	}
	*m.steps--
	if *m.steps < 0 {
		m.out = true
		return false
	}
	return true
}

// match returns the end offset of a match of pat[p:] at src[s:],
// or noMatch.
func (m *matcher) match(s, p int) int {
	for {
		if m.out {
			return noMatch
		}
		if p == len(m.pat) {
			return s
		}
		switch m.pat[p] {
		case '(':
			p++
			continue
		case ')':
			m.ends[m.closeAt[p]] = s
			p++
			continue
		case '$':
			if p+1 == len(m.pat) {
				if s == len(m.src) {
					return s
				}
				return noMatch
			}
		case '%':
			if m.pat[p+1] == 'f' {
				p += 2
				ep := classEnd(m.pat, p)
				var c byte // end of text reads as 0
				if s < len(m.src) {
					c = m.src[s]
				}
				if !m.step() || !singleMatch(c, m.pat, p, ep) {
					return noMatch
				}
				p = ep
				continue
			}
		}
		ep := classEnd(m.pat, p)
		if !m.step() {
			return noMatch
		}
		ok := s < len(m.src) && singleMatch(m.src[s], m.pat, p, ep)
		if ep < len(m.pat) {
			switch m.pat[ep] {
			case '?':
				if ok {
					if e := m.match(s+1, ep+1); e != noMatch {
						return e
					}
				}
				p = ep + 1
				continue
			case '+':
				if !ok {
					return noMatch
				}
				return m.maxExpand(s+1, p, ep)
			case '*':
				return m.maxExpand(s, p, ep)
			case '-':
				return m.minExpand(s, p, ep)
			}
		}
		if !ok {
			return noMatch
		}
		s++
		p = ep
	}
}

// maxExpand matches the greedy repetition of the atom pat[p:ep] at s
// followed by the tail after the quantifier. The run is counted forward
// and the tail is re-attempted from the longest run down.
func (m *matcher) maxExpand(s, p, ep int) int {
	i := 0
	for s+i < len(m.src) && m.step() && singleMatch(m.src[s+i], m.pat, p, ep) {
		i++
	}
	for ; i >= 0; i-- {
		if m.out {
			return noMatch
		}
		if !m.probe(s+i, ep+1) {
			continue
		}
		if e := m.match(s+i, ep+1); e != noMatch {
			return e
		}
	}
	return noMatch
}

// minExpand matches the lazy repetition of the atom pat[p:ep] at s: the
// tail is attempted first and the run only grows when the tail fails.
func (m *matcher) minExpand(s, p, ep int) int {
	for {
		if m.probe(s, ep+1) {
			if e := m.match(s, ep+1); e != noMatch {
				return e
			}
		}
		if m.out {
			return noMatch
		}
		if s < len(m.src) && m.step() && singleMatch(m.src[s], m.pat, p, ep) {
			s++
			continue
		}
		return noMatch
	}
}

// probe reports whether the first atom of pat[p:] can match at s.
// Atoms that may match empty always pass.
func (m *matcher) probe(s, p int) bool {
	for p < len(m.pat) && (m.pat[p] == '(' || m.pat[p] == ')') {
		p++
	}
	if p == len(m.pat) {
		return true
	}
	switch m.pat[p] {
	case '$':
		if p+1 == len(m.pat) {
			return s == len(m.src)
		}
	case '%':
		if m.pat[p+1] == 'f' {
			return true
		}
	}
	ep := classEnd(m.pat, p)
	if ep < len(m.pat) {
		switch m.pat[ep] {
		case '*', '-', '?':
			return true
		}
	}
	return s < len(m.src) && singleMatch(m.src[s], m.pat, p, ep)
}
