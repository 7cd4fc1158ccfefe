package model

import (
	"time"

	"github.com/google/uuid"

	"voicetask/pkg/priority"
)

// DefaultReminderLeadMinutes is how long before the due instant a reminder
// fires when the user has not chosen a lead time.
const DefaultReminderLeadMinutes = 10

// TaskDraft is one extracted task, ready to be shown to the user for
// confirmation. It is a draft: nothing is persisted or scheduled until the
// user confirms it.
type TaskDraft struct {
	ID                  uuid.UUID         // Assigned at extraction time, unique per draft
	Title               string            // Capitalized, never empty
	DueAt               *time.Time        // nil when no temporal expression resolved
	Address             string            // Empty when no address was spoken
	Priority            priority.Priority // Normal unless urgency vocabulary matched
	ReminderEnabled     bool              // Off by default, the user opts in on confirm
	ReminderLeadMinutes int
}

// NewTaskDraft builds a draft with a fresh ID and reminder defaults.
func NewTaskDraft(title string) TaskDraft {
	return TaskDraft{
		ID:                  uuid.New(),
		Title:               title,
		ReminderLeadMinutes: DefaultReminderLeadMinutes,
	}
}

// ContentEquals compares two drafts by what they say, ignoring the generated
// ID. Two independent extraction runs over the same transcript produce drafts
// that are ContentEquals but never ==.
func (t TaskDraft) ContentEquals(other TaskDraft) bool {
	if t.Title != other.Title ||
		t.Address != other.Address ||
		t.Priority != other.Priority ||
		t.ReminderEnabled != other.ReminderEnabled ||
		t.ReminderLeadMinutes != other.ReminderLeadMinutes {
		return false
	}
	switch {
	case t.DueAt == nil && other.DueAt == nil:
		return true
	case t.DueAt == nil || other.DueAt == nil:
		return false
	default:
		return t.DueAt.Equal(*other.DueAt)
	}
}

// Coordinate is a geocoded point for a draft's address.
type Coordinate struct {
	Lat float64
	Lon float64
}
