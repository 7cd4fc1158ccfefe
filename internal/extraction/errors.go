package extraction

import "errors"

// Domain-specific errors for the extraction package.
var (
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrNoDrafts        = errors.New("no drafts to confirm")
	ErrUntitledDraft   = errors.New("draft has an empty title")
)
