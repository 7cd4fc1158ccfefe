package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// capitalizeFirst uppercases the first letter of a title, leaving the rest
// untouched.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// eventID derives the calendar event ID from the draft ID. Google accepts
// lowercase hex, so a dashless UUID works as-is.
func eventID(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
