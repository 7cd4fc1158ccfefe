package extraction

import (
	"context"

	"voicetask/internal/model"
)

// UseCase defines the business logic interface for the extraction domain.
type UseCase interface {
	// Extract turns a raw voice transcript into an ordered list of task
	// drafts. A transcript with no recognizable tasks yields an empty list,
	// not an error.
	Extract(ctx context.Context, sc model.Scope, input ExtractInput) (ExtractOutput, error)

	// Confirm accepts user-approved drafts: schedules calendar events and
	// reminders, geocodes addresses. External integrations degrade
	// gracefully; a failed calendar call never loses the task.
	Confirm(ctx context.Context, sc model.Scope, input ConfirmInput) (ConfirmOutput, error)
}
