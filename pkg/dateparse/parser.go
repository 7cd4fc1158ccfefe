// Package dateparse resolves spoken temporal expressions inside a task
// fragment to an absolute instant, and returns the fragment with the matched
// span removed.
//
// Resolution order is fixed: relative-day words, clock times (HH:MM, spaced
// "17 00", bare "в 17"), numeric dates, named-month dates, marked day-of-month.
// More specific forms run first so generic digit patterns cannot shadow them.
package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"voicetask/pkg/textmatch"
)

// Parser resolves temporal expressions against a fixed timezone. The reference
// time is passed per call, so a Parser is immutable and safe for concurrent
// use.
type Parser struct {
	loc *time.Location
}

// NewParser creates a parser for the given IANA timezone string,
// e.g. "Europe/Berlin".
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{loc: loc}, nil
}

const (
	// Dates spoken without a time default to a 09:00 reminder slot.
	defaultHour = 9
)

type relativeDay struct {
	pattern *textmatch.Pattern
	days    int
}

// Ordered so that longer forms win: "после завтра" (a speech-to-text spelling
// of "послезавтра") and "day after tomorrow" must be tried before the plain
// tomorrow words they contain.
var relativeDays = []relativeDay{
	{textmatch.MustCompile(`после\s+завтра`), 2},
	{textmatch.MustCompile(`послезавтра`), 2},
	{textmatch.MustCompile(`завтра`), 1},
	{textmatch.MustCompile(`сегодня`), 0},
	{textmatch.MustCompile(`day\s+after\s+tomorrow`), 2},
	{textmatch.MustCompile(`tomorrow`), 1},
	{textmatch.MustCompile(`today`), 0},
}

var (
	timeHHMM     = textmatch.MustCompile(`(?:в\s*|at\s+)?(\d{1,2}):(\d{2})`)
	timeSpaced   = textmatch.MustCompile(`(?:в\s+|at\s+)?(\d{1,2})\s+(\d{2})`)
	timeHourOnly = textmatch.MustCompile(`(?:в|at)\s+(\d{1,2})`)

	numericDate = textmatch.MustCompile(`(\d{1,2})[./-](\d{1,2})(?:[./-](\d{2,4}))?`)
	namedDate   = textmatch.MustCompile(`(\d{1,2})\s*(` + monthAlternation + `)`)
	dayMarked   = textmatch.MustCompile(`(?:(?:on\s+)?the\s+)?(\d{1,2})(?:\s*-?\s*(?:го|е)|(?:st|nd|rd|th)|\s+(?:числа|дня|день))`)
	dayNumbered = textmatch.MustCompile(`day\s+(\d{1,2})`)

	// RE2 has no lookahead, so the "в 17 is an hour, в 22-го is a day" rule is
	// enforced by inspecting the text right after the candidate match.
	daySuffixAhead = regexp.MustCompile(`^\s*-?\s*(?:го|е|числа|дня|день|st|nd|rd|th)(?:$|[^\p{L}\d])`)

	hyphenRuns = regexp.MustCompile(`\s*-\s*`)

	strayLeadingZeros  = regexp.MustCompile(`^(?:0|00)\s+`)
	strayTrailingZeros = regexp.MustCompile(`\s+(?:0|00)$`)
	strayEdgeHyphen    = regexp.MustCompile(`(^-|-$)`)
)

const monthAlternation = `января|февраля|марта|апреля|мая|июня|июля|августа|сентября|октября|ноября|декабря|` +
	`january|february|march|april|may|june|july|august|september|october|november|december`

var monthNumbers = map[string]time.Month{
	"января": time.January, "февраля": time.February, "марта": time.March,
	"апреля": time.April, "мая": time.May, "июня": time.June,
	"июля": time.July, "августа": time.August, "сентября": time.September,
	"октября": time.October, "ноября": time.November, "декабря": time.December,
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// Extract resolves the first temporal expression in text against now and
// returns the fragment with the matched span removed and whitespace
// renormalized. When nothing matches, the fragment comes back unchanged except
// for normalization.
func (p *Parser) Extract(text string, now time.Time) (Result, string) {
	t := normalize(text)
	if t == "" {
		return Result{}, ""
	}
	now = now.In(p.loc)

	var (
		date     time.Time
		hasDate  bool
		hh, mm   int
		hasClock bool
	)

	// Relative-day words first: they also fix the default time to start of day.
	for _, rel := range relativeDays {
		if rel.pattern.Matches(t) {
			date = p.startOfDay(now).AddDate(0, 0, rel.days)
			hasDate = true
			t, _ = rel.pattern.RemoveFirst(t)
			break
		}
	}

	// Clock time, most specific form first.
	if m, ok := timeHHMM.Find(t); ok {
		if h, min, valid := clockValues(m.Group(1), m.Group(2)); valid {
			hh, mm, hasClock = h, min, true
			t = removeMatch(t, m)
		}
	}
	if !hasClock {
		if m, ok := timeSpaced.Find(t); ok {
			if h, min, valid := clockValues(m.Group(1), m.Group(2)); valid {
				hh, mm, hasClock = h, min, true
				t = removeMatch(t, m)
			}
		}
	}
	if !hasClock {
		if m, ok := timeHourOnly.Find(t); ok && !daySuffixAhead.MatchString(t[m.End:]) {
			if h, err := strconv.Atoi(m.Group(1)); err == nil && h <= 23 {
				hh, mm, hasClock = h, 0, true
				t = removeMatch(t, m)
			}
		}
	}

	if !hasDate {
		if d, rest, ok := p.extractNumericDate(t, now); ok {
			date, hasDate, t = d, true, rest
		}
	}
	if !hasDate {
		if d, rest, ok := p.extractNamedDate(t, now); ok {
			date, hasDate, t = d, true, rest
		}
	}
	if !hasDate {
		m, ok := dayMarked.Find(t)
		if !ok {
			m, ok = dayNumbered.Find(t)
		}
		if ok {
			if day, err := strconv.Atoi(m.Group(1)); err == nil && day >= 1 && day <= 31 {
				date, hasDate = p.nearestFutureDay(day, now), true
				t = removeMatch(t, m)
			}
		}
	}

	title := cleanTitle(t)

	switch {
	case !hasDate && !hasClock:
		return Result{}, title
	case hasDate && !hasClock:
		return Result{Due: date, Found: true}, title
	case !hasDate:
		date = p.startOfDay(now)
	}
	due := time.Date(date.Year(), date.Month(), date.Day(), hh, mm, 0, 0, p.loc)
	return Result{Due: due, Found: true}, title
}

// HasRelativeDay reports whether text contains a relative-day word, regardless
// of whether full resolution would succeed. The orchestrator uses this to
// reset its carried date instead of letting a stale one leak past a broken
// relative marker.
func (p *Parser) HasRelativeDay(text string) bool {
	t := normalize(text)
	for _, rel := range relativeDays {
		if rel.pattern.Matches(t) {
			return true
		}
	}
	return false
}

func (p *Parser) extractNumericDate(t string, now time.Time) (time.Time, string, bool) {
	m, ok := numericDate.Find(t)
	if !ok {
		return time.Time{}, t, false
	}

	day, _ := strconv.Atoi(m.Group(1))
	month, _ := strconv.Atoi(m.Group(2))
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, t, false
	}

	year := now.Year()
	explicitYear := false
	if raw := m.Group(3); raw != "" {
		y, _ := strconv.Atoi(raw)
		if len(raw) == 2 {
			y += 2000
		}
		year, explicitYear = y, true
	}

	date := time.Date(year, time.Month(month), day, defaultHour, 0, 0, 0, p.loc)
	if !explicitYear && p.startOfDay(date).Before(p.startOfDay(now)) {
		date = date.AddDate(1, 0, 0)
	}
	return date, removeMatch(t, m), true
}

func (p *Parser) extractNamedDate(t string, now time.Time) (time.Time, string, bool) {
	m, ok := namedDate.Find(t)
	if !ok {
		return time.Time{}, t, false
	}

	day, _ := strconv.Atoi(m.Group(1))
	month, ok := monthNumbers[m.Group(2)]
	if !ok || day < 1 || day > 31 {
		return time.Time{}, t, false
	}

	date := time.Date(now.Year(), month, day, defaultHour, 0, 0, 0, p.loc)
	if p.startOfDay(date).Before(p.startOfDay(now)) {
		date = date.AddDate(1, 0, 0)
	}
	return date, removeMatch(t, m), true
}

// nearestFutureDay resolves a bare marked day-of-month to its soonest
// occurrence on or after today, rolling into next month (clamped to its last
// valid day) when the day has already passed or does not exist this month.
func (p *Parser) nearestFutureDay(day int, now time.Time) time.Time {
	candidate := time.Date(now.Year(), now.Month(), day, defaultHour, 0, 0, 0, p.loc)
	if candidate.Day() == day && !p.startOfDay(candidate).Before(p.startOfDay(now)) {
		return candidate
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, p.loc).AddDate(0, 1, 0)
	lastDay := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, p.loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, defaultHour, 0, 0, 0, p.loc)
}

func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc)
}

func clockValues(hourRaw, minuteRaw string) (int, int, bool) {
	h, err := strconv.Atoi(hourRaw)
	if err != nil || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(minuteRaw)
	if err != nil || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

func removeMatch(t string, m textmatch.Match) string {
	return textmatch.CollapseSpaces(t[:m.Start] + " " + t[m.End:])
}

// normalize lowercases, joins spaced hyphens ("22 - го" comes out of
// speech-to-text with spaces) and collapses whitespace.
func normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = hyphenRuns.ReplaceAllString(s, "-")
	return textmatch.CollapseSpaces(s)
}

// cleanTitle tidies what removal leaves behind: stray zeros that
// speech-to-text sometimes keeps from a time, lone edge hyphens, whitespace.
func cleanTitle(t string) string {
	s := textmatch.CollapseSpaces(t)
	s = strayLeadingZeros.ReplaceAllString(s, "")
	s = strayTrailingZeros.ReplaceAllString(s, "")
	s = strayEdgeHyphen.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
