// Package segment turns one free-form voice transcript into an ordered list of
// candidate task fragments. It is the first stage of the extraction pipeline:
// pure text-in, text-out, no clock and no locale state.
//
// The vocabulary is Russian-first with a small set of English markers, matching
// the speech input the service is built for.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"voicetask/pkg/textmatch"
)

// shield temporarily replaces dots that are not sentence terminators
// (abbreviations, numeric dates) so the terminator split cannot eat them.
const shield = "\x1f"

// Transition phrases become sentence boundaries. Longest variants first so
// "и потом" is not half-eaten by "потом".
var transitionPatterns = []*textmatch.Pattern{
	textmatch.MustCompile(`и\s+потом`),
	textmatch.MustCompile(`потом\s+же`),
	textmatch.MustCompile(`потом`),
	textmatch.MustCompile(`затем`),
	textmatch.MustCompile(`после\s+этого`),
	textmatch.MustCompile(`и\s+дальше`),
	textmatch.MustCompile(`далее`),
	textmatch.MustCompile(`дальше`),
	textmatch.MustCompile(`что\s+ещё`),
	textmatch.MustCompile(`что\s+еще`),
	textmatch.MustCompile(`и\s+ещё`),
	textmatch.MustCompile(`и\s+еще`),
	textmatch.MustCompile(`а\s+ещё`),
	textmatch.MustCompile(`а\s+еще`),
	textmatch.MustCompile(`ещё`),
	textmatch.MustCompile(`еще`),
	textmatch.MustCompile(`а\s+также`),
	textmatch.MustCompile(`также`),
	textmatch.MustCompile(`кроме\s+того`),
	textmatch.MustCompile(`плюс`),
	textmatch.MustCompile(`after\s+that`),
	textmatch.MustCompile(`and\s+then`),
	textmatch.MustCompile(`then`),
	textmatch.MustCompile(`also`),
}

// Abbreviations whose internal dots must not terminate a sentence. Multi-dot
// forms go first so "т.д." is shielded whole before "д." can take its tail.
var shieldedAbbrevs = []string{
	"т.д.", "т.п.",
	"ул.", "пр.", "пер.", "пл.", "д.", "кв.",
	"st.", "ave.", "blvd.", "rd.", "str.", "al.",
}

// Explicit date patterns that open a new task when spoken mid-stream. A bare
// number is never one of these, so "купить 2 литра" stays whole. Numeric dates
// are matched in shielded form because shieldDots runs first.
var dateBoundaryPatterns = []*textmatch.Pattern{
	textmatch.MustCompile(`\d{1,2}\s+(январ[ья]|феврал[ья]|март[еа]?|апрел[ья]|ма[йя]|июн[ья]|июл[ья]|август[еа]?|сентябр[ья]|октябр[ья]|ноябр[ья]|декабр[ья]|january|february|march|april|may|june|july|august|september|october|november|december)`),
	textmatch.MustCompile(`\d{1,2}[` + shield + `/-]\d{1,2}([` + shield + `/-]\d{2,4})?`),
	textmatch.MustCompile(`\d{1,2}\s*-?\s*(го|е)`),
	textmatch.MustCompile(`\d{1,2}\s+(числа|дня|день)`),
	textmatch.MustCompile(`(?:(?:on\s+)?the\s+)?\d{1,2}(?:st|nd|rd|th)`),
	textmatch.MustCompile(`day\s+\d{1,2}`),
}

// Conversational openers cut from the front of a fragment.
var leadingOpeners = []string{
	"итак", "ну", "короче", "в общем", "значит", "так", "получается",
}

// "I need to ..." style prefixes carry no task content of their own.
var needPrefixes = []string{
	"мне нужно ", "мне надо ", "надо ", "нужно ", "i need to ", "need to ",
}

// Whole fragments that are pure filler and never become tasks.
var fillerExact = map[string]bool{
	"всё": true, "все": true, "ну вот и всё": true, "я ну вот и всё": true,
	"вот и всё": true, "вот и все": true,
	"что дальше": true, "в принципе всё": true, "вот": true, "ладно": true,
	"итак": true, "ну": true, "короче": true, "в общем": true,
	"значит": true, "так": true, "получается": true,
	"well": true, "so": true, "anyway": true, "ok": true, "okay": true,
}

// Short command verbs that rescue an otherwise too-short fragment.
var shortCommands = []string{"купи", "позвони", "сходи", "иди", "buy", "call", "pay", "go"}

const longFragmentRunes = 55

// Soft connectors used only to break up overlong run-on fragments.
var softConnectors = []string{" и ", " может быть "}

// Split segments a raw transcript into trimmed, non-empty task fragments in
// speech order. It never fails; the worst case is an empty result.
func Split(transcript string) []string {
	s := strings.ToLower(strings.TrimSpace(transcript))
	s = textmatch.CollapseSpaces(s)
	if s == "" {
		return nil
	}

	s = shieldDots(s)
	for _, p := range transitionPatterns {
		s = replaceAll(p, s, " . ")
	}
	s = insertDateBoundaries(s)

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == ';' || r == '\n'
	})

	var out []string
	for _, part := range parts {
		frag := cleanFragment(restoreDots(part))
		if frag == "" {
			continue
		}
		for _, piece := range splitLongFragment(frag) {
			piece = cleanFragment(piece)
			if piece != "" && IsTaskCandidate(piece) {
				out = append(out, piece)
			}
		}
	}
	return out
}

// IsTaskCandidate applies the task-quality filter shared by the segmenter and
// the extraction orchestrator: non-empty, not pure filler, at least three
// letters, and at least four runes unless it starts with a known short command.
func IsTaskCandidate(s string) bool {
	t := strings.ToLower(textmatch.CollapseSpaces(s))
	if t == "" || fillerExact[t] {
		return false
	}

	letters := 0
	for _, r := range t {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < 3 {
		return false
	}

	if utf8.RuneCountInString(t) >= 4 {
		return true
	}
	for _, cmd := range shortCommands {
		if strings.HasPrefix(t, cmd) {
			return true
		}
	}
	return false
}

func shieldDots(s string) string {
	for _, a := range shieldedAbbrevs {
		s = shieldAbbrev(s, a)
	}
	// Numeric dates: 24.02, 24.02.2026
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r == '.' && i > 0 && i < len(runes)-1 &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			b.WriteString(shield)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// shieldAbbrev shields a only where it starts its own word. "обед." and
// "list." end in the letters of "д." and "st." but their periods are real
// sentence terminators and must survive.
func shieldAbbrev(s, a string) string {
	shielded := strings.ReplaceAll(a, ".", shield)
	var b strings.Builder
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], a)
		if j < 0 {
			b.WriteString(s[i:])
			return b.String()
		}
		at := i + j
		b.WriteString(s[i:at])
		prev, _ := utf8.DecodeLastRuneInString(s[:at])
		if at == 0 || !unicode.IsLetter(prev) {
			b.WriteString(shielded)
		} else {
			b.WriteString(a)
		}
		i = at + len(a)
	}
	return b.String()
}

func restoreDots(s string) string {
	return strings.ReplaceAll(s, shield, ".")
}

// insertDateBoundaries puts a sentence boundary in front of an explicit date
// expression that starts mid-sentence and still has task text after it within
// the same sentence. "купить молоко 5 марта позвонить маме" becomes two
// sentences; a trailing "... 5 марта" keeps its date attached.
func insertDateBoundaries(s string) string {
	for {
		pos := -1
		for _, p := range dateBoundaryPatterns {
			if at, ok := boundaryInsertionPoint(p, s); ok && (pos == -1 || at < pos) {
				pos = at
			}
		}
		if pos == -1 {
			return s
		}
		s = s[:pos] + ". " + s[pos:]
	}
}

func boundaryInsertionPoint(p *textmatch.Pattern, s string) (int, bool) {
	offset := 0
	for offset < len(s) {
		m, ok := p.Find(s[offset:])
		if !ok {
			return 0, false
		}
		start, end := offset+m.Start, offset+m.End
		if start > 0 && !atSentenceStart(s, start) && hasTaskTextAfter(s, end) {
			return start, true
		}
		offset = end
	}
	return 0, false
}

// atSentenceStart reports whether only whitespace separates position i from
// the preceding sentence terminator (or the start of the string).
func atSentenceStart(s string, i int) bool {
	for i > 0 {
		r, w := utf8.DecodeLastRuneInString(s[:i])
		i -= w
		if unicode.IsSpace(r) {
			continue
		}
		return strings.ContainsRune(".!?;", r)
	}
	return true
}

// hasTaskTextAfter reports whether a letter occurs after position i before the
// next sentence terminator.
func hasTaskTextAfter(s string, i int) bool {
	for _, r := range s[i:] {
		if strings.ContainsRune(".!?;\n", r) {
			return false
		}
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func cleanFragment(s string) string {
	t := textmatch.CollapseSpaces(s)
	t = strings.Trim(t, " ,:-–")

	for changed := true; changed; {
		changed = false
		for _, w := range leadingOpeners {
			if strings.HasPrefix(t, w+" ") {
				t = strings.TrimSpace(t[len(w)+1:])
				changed = true
			}
		}
		for _, p := range needPrefixes {
			if strings.HasPrefix(t, p) {
				t = strings.TrimSpace(t[len(p):])
				changed = true
			}
		}
	}
	return strings.Trim(t, " ,:-–")
}

func splitLongFragment(s string) []string {
	if utf8.RuneCountInString(s) <= longFragmentRunes {
		return []string{s}
	}
	parts := []string{s}
	for _, c := range softConnectors {
		var next []string
		for _, part := range parts {
			next = append(next, strings.Split(part, c)...)
		}
		parts = next
	}
	return parts
}

func replaceAll(p *textmatch.Pattern, s, with string) string {
	for {
		m, ok := p.Find(s)
		if !ok {
			return s
		}
		s = s[:m.Start] + with + s[m.End:]
	}
}
