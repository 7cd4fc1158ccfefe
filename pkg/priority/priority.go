// Package priority classifies a task fragment by urgency vocabulary and strips
// the matched words from the text.
package priority

import (
	"strings"

	"voicetask/pkg/textmatch"
)

// Priority is the task priority level. The ordering matters: when both urgent
// and important vocabulary occur in one fragment, urgent wins.
type Priority int

const (
	Normal Priority = iota
	Important
	Urgent
)

// String implements fmt.Stringer.
func (p Priority) String() string {
	switch p {
	case Urgent:
		return "urgent"
	case Important:
		return "important"
	default:
		return "normal"
	}
}

// ParsePriority maps a priority name back to its level. Unknown names resolve
// to Normal.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urgent":
		return Urgent
	case "important":
		return Important
	default:
		return Normal
	}
}

// Result is the classification outcome: the level and the fragment with all
// matched vocabulary removed.
type Result struct {
	Priority Priority
	Cleaned  string
}

var urgentPatterns = []*textmatch.Pattern{
	textmatch.MustCompile(`очень\s+срочно`),
	textmatch.MustCompile(`прям\s+срочно`),
	textmatch.MustCompile(`срочно`),
	textmatch.MustCompile(`немедленно`),
	textmatch.MustCompile(`как\s+можно\s+скорее`),
	textmatch.MustCompile(`в\s+крайние\s+сроки`),
	textmatch.MustCompile(`в\s+кратчайшие\s+сроки`),
	textmatch.MustCompile(`до\s+конца\s+дня`),
	textmatch.MustCompile(`urgent`),
	textmatch.MustCompile(`asap`),
	textmatch.MustCompile(`sofort`),
	textmatch.MustCompile(`dringend`),
}

var importantPatterns = []*textmatch.Pattern{
	textmatch.MustCompile(`очень\s+важно`),
	textmatch.MustCompile(`крайне\s+важно`),
	textmatch.MustCompile(`это\s+важно`),
	textmatch.MustCompile(`важно`),
	textmatch.MustCompile(`приоритетно`),
	textmatch.MustCompile(`приоритет`),
	// Classified as important for now; product has not decided whether
	// "необходимо" should escalate to urgent.
	textmatch.MustCompile(`необходимо`),
	textmatch.MustCompile(`important`),
	textmatch.MustCompile(`priority`),
	textmatch.MustCompile(`wichtig`),
}

// Extract classifies text and strips every occurrence of the matched
// category's vocabulary. Urgent vocabulary is tried first; a fragment with no
// urgency words comes back unchanged at Normal.
func Extract(text string) Result {
	t := normalize(text)

	if matchesAny(t, urgentPatterns) {
		return Result{Priority: Urgent, Cleaned: removeAll(t, urgentPatterns)}
	}
	if matchesAny(t, importantPatterns) {
		return Result{Priority: Important, Cleaned: removeAll(t, importantPatterns)}
	}
	return Result{Priority: Normal, Cleaned: t}
}

func normalize(s string) string {
	s = strings.ToLower(s)
	// Speech-to-text is inconsistent about ё.
	s = strings.ReplaceAll(s, "ё", "е")
	return textmatch.CollapseSpaces(s)
}

func matchesAny(s string, patterns []*textmatch.Pattern) bool {
	for _, p := range patterns {
		if p.Matches(s) {
			return true
		}
	}
	return false
}

func removeAll(s string, patterns []*textmatch.Pattern) string {
	for _, p := range patterns {
		s = p.RemoveAll(s)
	}
	s = textmatch.CollapseSpaces(s)
	s = strings.TrimLeft(s, " ,:-")
	return strings.TrimSpace(s)
}
