package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"voicetask/internal/reminder"
	"voicetask/pkg/dateparse"
	"voicetask/pkg/gcalendar"
	"voicetask/pkg/geocode"
	pkgLog "voicetask/pkg/log"
)

// Calendar is the slice of the Google Calendar client the usecase needs.
type Calendar interface {
	UpsertEvent(ctx context.Context, req gcalendar.UpsertEventRequest) (*gcalendar.Event, error)
}

// Geocoder resolves spoken addresses to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, address string) (geocode.Coordinate, bool, error)
}

// Reminders arms and disarms reminder timers.
type Reminders interface {
	Schedule(r reminder.Reminder)
	Cancel(taskID uuid.UUID)
}

type implUseCase struct {
	l          pkgLog.Logger
	dates      *dateparse.Parser
	calendar   Calendar  // nil when calendar integration is disabled
	geocoder   Geocoder  // nil when geocoding is disabled
	reminders  Reminders // nil when reminders are disabled
	timezone   string
	calendarID string // empty means the primary calendar
	now        func() time.Time
}

// New creates a new extraction UseCase instance. calendar, geocoder and
// reminders may each be nil; the corresponding step is then skipped.
func New(
	l pkgLog.Logger,
	dates *dateparse.Parser,
	calendar Calendar,
	geocoder Geocoder,
	reminders Reminders,
	timezone string,
	calendarID string,
) *implUseCase {
	return &implUseCase{
		l:          l,
		dates:      dates,
		calendar:   calendar,
		geocoder:   geocoder,
		reminders:  reminders,
		timezone:   timezone,
		calendarID: calendarID,
		now:        time.Now,
	}
}
