package extraction

import (
	"time"

	"github.com/google/uuid"

	"voicetask/internal/model"
)

// ExtractInput is the input for transcript extraction.
type ExtractInput struct {
	Transcript string // Raw speech-to-text output, any length
}

// ExtractOutput is the ordered result of one extraction run.
type ExtractOutput struct {
	Drafts    []model.TaskDraft
	TaskCount int
}

// ConfirmInput carries the drafts the user approved, possibly edited.
type ConfirmInput struct {
	Drafts []model.TaskDraft
}

// ConfirmedTask describes what actually happened to one confirmed draft.
type ConfirmedTask struct {
	TaskID       uuid.UUID
	Title        string
	CalendarLink string            // Deep link to the calendar event (may be empty)
	Coordinate   *model.Coordinate // Geocoded address (nil when unavailable)
	ReminderAt   *time.Time        // When the reminder will fire (nil when none)
}

// ConfirmOutput is the result of confirming a batch of drafts.
type ConfirmOutput struct {
	Tasks     []ConfirmedTask
	TaskCount int
}
