package http

import (
	"errors"

	"voicetask/internal/extraction"
)

var errInternal = errors.New("internal error")

// mapError translates domain errors into what the client is allowed to see.
// Validation-class errors pass through; anything else is masked.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, extraction.ErrEmptyTranscript),
		errors.Is(err, extraction.ErrNoDrafts),
		errors.Is(err, extraction.ErrUntitledDraft):
		return err
	default:
		return errInternal
	}
}
