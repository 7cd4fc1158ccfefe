// Package textmatch provides whole-word regexp matching for mixed-script text.
//
// Go's RE2 engine treats \b as an ASCII word boundary, so \b never fires
// between two Cyrillic letters (or between a Cyrillic letter and the string
// edge). Vocabulary matching against Russian transcripts therefore cannot use
// \b at all; this package compiles boundary-free patterns and validates the
// match edges against rune classes instead.
package textmatch

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Pattern is a compiled regexp whose matches are accepted only when both match
// edges sit on a word boundary (letter/digit on the inside, anything else on
// the outside).
type Pattern struct {
	re *regexp.Regexp
}

// Match is one boundary-valid occurrence of a Pattern.
type Match struct {
	Start  int // byte offset of the match start
	End    int // byte offset just past the match end
	groups []string
}

// Group returns the text of capture group i (0 is the whole match).
// Unmatched optional groups return "".
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.groups) {
		return ""
	}
	return m.groups[i]
}

// Text returns the whole matched span.
func (m Match) Text() string { return m.groups[0] }

// MustCompile compiles expr, panicking on error. Patterns are fixed at build
// time, so a failure here is a programming defect.
func MustCompile(expr string) *Pattern {
	return &Pattern{re: regexp.MustCompile(expr)}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// boundaryOK reports whether the span [start,end) of s does not cut a word:
// the rune before start and the rune at end must not be letters or digits.
func boundaryOK(s string, start, end int) bool {
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(prev) {
			return false
		}
	}
	if end < len(s) {
		next, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(next) {
			return false
		}
	}
	return true
}

// Find returns the first boundary-valid match in s.
func (p *Pattern) Find(s string) (Match, bool) {
	offset := 0
	for offset <= len(s) {
		idx := p.re.FindStringSubmatchIndex(s[offset:])
		if idx == nil {
			return Match{}, false
		}
		start, end := offset+idx[0], offset+idx[1]
		if boundaryOK(s, start, end) {
			m := Match{Start: start, End: end}
			for g := 0; g*2 < len(idx); g++ {
				gs, ge := idx[g*2], idx[g*2+1]
				if gs < 0 {
					m.groups = append(m.groups, "")
				} else {
					m.groups = append(m.groups, s[offset+gs:offset+ge])
				}
			}
			return m, true
		}
		// Skip one rune past the rejected start and retry.
		_, w := utf8.DecodeRuneInString(s[start:])
		if w == 0 {
			w = 1
		}
		offset = start + w
	}
	return Match{}, false
}

// Matches reports whether s contains at least one boundary-valid match.
func (p *Pattern) Matches(s string) bool {
	_, ok := p.Find(s)
	return ok
}

// RemoveFirst removes the first boundary-valid match from s and renormalizes
// whitespace. The second return value reports whether anything was removed.
func (p *Pattern) RemoveFirst(s string) (string, bool) {
	m, ok := p.Find(s)
	if !ok {
		return s, false
	}
	return CollapseSpaces(s[:m.Start] + " " + s[m.End:]), true
}

// RemoveAll removes every boundary-valid match from s and renormalizes
// whitespace.
func (p *Pattern) RemoveAll(s string) string {
	for {
		next, removed := p.RemoveFirst(s)
		if !removed {
			return s
		}
		s = next
	}
}

// CollapseSpaces squeezes whitespace runs to single spaces and trims.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
