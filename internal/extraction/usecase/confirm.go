package usecase

import (
	"context"
	"strings"
	"time"

	"voicetask/internal/extraction"
	"voicetask/internal/model"
	"voicetask/internal/reminder"
	"voicetask/pkg/gcalendar"
)

// Confirm finalizes user-approved drafts. Calendar, geocoding and reminder
// steps are each best-effort: an integration failure is logged and the task
// is still confirmed.
func (uc *implUseCase) Confirm(ctx context.Context, sc model.Scope, input extraction.ConfirmInput) (extraction.ConfirmOutput, error) {
	if len(input.Drafts) == 0 {
		return extraction.ConfirmOutput{}, extraction.ErrNoDrafts
	}
	for _, d := range input.Drafts {
		if strings.TrimSpace(d.Title) == "" {
			return extraction.ConfirmOutput{}, extraction.ErrUntitledDraft
		}
	}

	uc.l.Infof(ctx, "Confirm: user=%s drafts=%d", sc.UserID, len(input.Drafts))

	tasks := make([]extraction.ConfirmedTask, 0, len(input.Drafts))
	for _, d := range input.Drafts {
		confirmed := extraction.ConfirmedTask{
			TaskID: d.ID,
			Title:  d.Title,
		}

		confirmed.CalendarLink = uc.tryUpsertCalendarEvent(ctx, d)
		confirmed.Coordinate = uc.tryGeocode(ctx, d)
		confirmed.ReminderAt = uc.tryScheduleReminder(ctx, d)

		tasks = append(tasks, confirmed)
	}

	return extraction.ConfirmOutput{
		Tasks:     tasks,
		TaskCount: len(tasks),
	}, nil
}

// tryUpsertCalendarEvent creates or updates the calendar event for a dated
// draft. Returns the event HTML link, or empty string when skipped or failed.
func (uc *implUseCase) tryUpsertCalendarEvent(ctx context.Context, d model.TaskDraft) string {
	if uc.calendar == nil || d.DueAt == nil {
		return ""
	}

	start := *d.DueAt
	event, err := uc.calendar.UpsertEvent(ctx, gcalendar.UpsertEventRequest{
		CalendarID: uc.calendarID,
		EventID:    eventID(d.ID),
		Summary:    d.Title,
		Location:   d.Address,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Timezone:   uc.timezone,
	})
	if err != nil {
		uc.l.Warnf(ctx, "Confirm: calendar upsert failed for %q (non-fatal): %v", d.Title, err)
		return ""
	}
	return event.HtmlLink
}

// tryGeocode resolves the draft's address, if any.
func (uc *implUseCase) tryGeocode(ctx context.Context, d model.TaskDraft) *model.Coordinate {
	if uc.geocoder == nil || d.Address == "" {
		return nil
	}

	coord, found, err := uc.geocoder.Lookup(ctx, d.Address)
	if err != nil {
		uc.l.Warnf(ctx, "Confirm: geocoding failed for %q (non-fatal): %v", d.Address, err)
		return nil
	}
	if !found {
		return nil
	}
	return &model.Coordinate{Lat: coord.Lat, Lon: coord.Lon}
}

// tryScheduleReminder arms a reminder ahead of the due instant when the user
// enabled one.
func (uc *implUseCase) tryScheduleReminder(ctx context.Context, d model.TaskDraft) *time.Time {
	if uc.reminders == nil || !d.ReminderEnabled || d.DueAt == nil {
		return nil
	}

	lead := d.ReminderLeadMinutes
	if lead <= 0 {
		lead = model.DefaultReminderLeadMinutes
	}
	fireAt := d.DueAt.Add(-time.Duration(lead) * time.Minute)

	uc.reminders.Schedule(reminder.Reminder{
		TaskID: d.ID,
		Title:  d.Title,
		FireAt: fireAt,
	})
	return &fireAt
}
