package reminder

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
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

func TestScheduleFires(t *testing.T) {
	var fired atomic.Int64
	done := make(chan Reminder, 1)

	s := New(&mockLogger{}, func(ctx context.Context, r Reminder) {
		fired.Add(1)
		done <- r
	})
	defer s.Stop()

	id := uuid.New()
	s.Schedule(Reminder{TaskID: id, Title: "Позвонить маме", FireAt: time.Now().Add(20 * time.Millisecond)})

	select {
	case r := <-done:
		if r.TaskID != id {
			t.Errorf("fired wrong reminder: %v", r.TaskID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reminder never fired")
	}
	if s.Pending() != 0 {
		t.Errorf("expected no pending reminders, got %d", s.Pending())
	}
}

func TestSchedulePastIsDropped(t *testing.T) {
	s := New(&mockLogger{}, func(ctx context.Context, r Reminder) {
		t.Error("past reminder must not fire")
	})
	defer s.Stop()

	s.Schedule(Reminder{TaskID: uuid.New(), FireAt: time.Now().Add(-time.Minute)})
	if s.Pending() != 0 {
		t.Errorf("expected 0 pending, got %d", s.Pending())
	}
}

func TestRescheduleReplaces(t *testing.T) {
	fired := make(chan string, 2)
	s := New(&mockLogger{}, func(ctx context.Context, r Reminder) {
		fired <- r.Title
	})
	defer s.Stop()

	id := uuid.New()
	s.Schedule(Reminder{TaskID: id, Title: "first", FireAt: time.Now().Add(time.Hour)})
	s.Schedule(Reminder{TaskID: id, Title: "second", FireAt: time.Now().Add(20 * time.Millisecond)})

	if s.Pending() != 1 {
		t.Fatalf("expected 1 pending after reschedule, got %d", s.Pending())
	}

	select {
	case title := <-fired:
		if title != "second" {
			t.Errorf("expected replacement reminder, got %q", title)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("rescheduled reminder never fired")
	}
}

func TestCancel(t *testing.T) {
	s := New(&mockLogger{}, func(ctx context.Context, r Reminder) {
		t.Error("cancelled reminder must not fire")
	})
	defer s.Stop()

	id := uuid.New()
	s.Schedule(Reminder{TaskID: id, FireAt: time.Now().Add(30 * time.Millisecond)})
	s.Cancel(id)

	if s.Pending() != 0 {
		t.Errorf("expected 0 pending after cancel, got %d", s.Pending())
	}
	time.Sleep(60 * time.Millisecond)
}
