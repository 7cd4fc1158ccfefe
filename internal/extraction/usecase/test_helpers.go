package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"voicetask/internal/reminder"
	"voicetask/pkg/dateparse"
	"voicetask/pkg/gcalendar"
	"voicetask/pkg/geocode"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type mockCalendar struct {
	requests []gcalendar.UpsertEventRequest
	link     string
	err      error
}

func (m *mockCalendar) UpsertEvent(ctx context.Context, req gcalendar.UpsertEventRequest) (*gcalendar.Event, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &gcalendar.Event{ID: req.EventID, HtmlLink: m.link}, nil
}

type mockGeocoder struct {
	coord geocode.Coordinate
	found bool
	err   error
}

func (m *mockGeocoder) Lookup(ctx context.Context, address string) (geocode.Coordinate, bool, error) {
	return m.coord, m.found, m.err
}

type mockReminders struct {
	scheduled []reminder.Reminder
	cancelled []uuid.UUID
}

func (m *mockReminders) Schedule(r reminder.Reminder) {
	m.scheduled = append(m.scheduled, r)
}

func (m *mockReminders) Cancel(taskID uuid.UUID) {
	m.cancelled = append(m.cancelled, taskID)
}

func newTestParser(t *testing.T) *dateparse.Parser {
	t.Helper()
	p, err := dateparse.NewParser("UTC")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	return p
}
