// Package address pulls a postal address out of a task fragment. Two forms
// are recognized: an explicit prefix ("по адресу ...", "адрес: ...") and a
// bare street marker (улица, проспект, street, straße и т.д.).
package address

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"voicetask/pkg/textmatch"
)

// Result is the extraction outcome. Address is empty when nothing matched;
// Cleaned is the fragment with the address portion removed.
type Result struct {
	Address string
	Cleaned string
}

// The prefix form captures everything up to the next clause separator.
var prefixPattern = textmatch.MustCompile(`(?:по\s+адресу|адрес)\s*[:\-]?\s*([^,;]+)`)

// Street markers by language. Longer markers go first so that "пр-т" is not
// shadowed by a shorter alternative.
var streetMarkers = []string{
	// Russian
	`улица`, `ул\.`, `проспект`, `пр-т`, `переулок`, `пер\.`, `площадь`, `шоссе`,
	// English
	`street`, `st\.`, `road`, `rd\.`, `avenue`, `ave\.`, `boulevard`, `blvd`,
	// German
	`straße`, `str\.`, `strasse`, `weg`, `platz`, `allee`,
	// Polish
	`ulica`, `ul\.`, `aleja`, `al\.`, `plac`,
}

var streetPattern = textmatch.MustCompile(
	`(?:` + strings.Join(streetMarkers, "|") + `)\s+[^\n,;]+`,
)

// Extract finds the first address in text and removes it. Matching is
// case-insensitive; the returned address keeps the original casing.
func Extract(text string) Result {
	collapsed := textmatch.CollapseSpaces(text)
	lower := lowerSameLen(collapsed)

	if m, ok := prefixPattern.Find(lower); ok {
		// The captured address is the tail of the match, so its start can be
		// recovered from the group's byte length.
		start := m.End - len(m.Group(1))
		addr := trimAddress(collapsed[start:m.End])
		if addr != "" {
			return Result{
				Address: addr,
				Cleaned: spliceOut(collapsed, m.Start, m.End),
			}
		}
	}

	if m, ok := streetPattern.Find(lower); ok {
		addr := trimAddress(collapsed[m.Start:m.End])
		if addr != "" {
			return Result{
				Address: addr,
				Cleaned: spliceOut(collapsed, m.Start, m.End),
			}
		}
	}

	return Result{Cleaned: collapsed}
}

// lowerSameLen lowercases per rune but keeps any rune whose lowercase form has
// a different byte width (ẞ, the Kelvin sign), so match offsets computed on
// the lowered string stay valid on the original.
func lowerSameLen(s string) string {
	return strings.Map(func(r rune) rune {
		l := unicode.ToLower(r)
		if utf8.RuneLen(l) != utf8.RuneLen(r) {
			return r
		}
		return l
	}, s)
}

func trimAddress(s string) string {
	return strings.Trim(s, " .,:;-")
}

func spliceOut(s string, start, end int) string {
	out := textmatch.CollapseSpaces(s[:start] + " " + s[end:])
	return strings.Trim(out, " ,:;-")
}
