// Package reminder schedules in-process reminder notifications for confirmed
// tasks. Reminders live in memory only; restarting the service drops them,
// which is acceptable because confirmed tasks also land in the calendar.
package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgLog "voicetask/pkg/log"
)

// Reminder is one pending notification.
type Reminder struct {
	TaskID uuid.UUID
	Title  string
	FireAt time.Time
}

// NotifyFunc delivers a due reminder to the user.
type NotifyFunc func(ctx context.Context, r Reminder)

// Scheduler owns the reminder timers. Scheduling the same task twice replaces
// the earlier timer.
type Scheduler struct {
	l      pkgLog.Logger
	notify NotifyFunc
	now    func() time.Time

	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
}

// New creates a scheduler that calls notify when a reminder fires.
func New(l pkgLog.Logger, notify NotifyFunc) *Scheduler {
	return &Scheduler{
		l:      l,
		notify: notify,
		now:    time.Now,
		timers: make(map[uuid.UUID]*time.Timer),
	}
}

// Schedule arms a timer for r. A reminder whose FireAt is already in the past
// is dropped silently: firing a stale notification right after confirmation
// is worse than not firing at all.
func (s *Scheduler) Schedule(r Reminder) {
	delay := r.FireAt.Sub(s.now())
	if delay <= 0 {
		s.l.Infof(context.Background(), "reminder: skipping past reminder for task %s (fire_at=%s)", r.TaskID, r.FireAt)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.timers[r.TaskID]; ok {
		old.Stop()
	}
	s.timers[r.TaskID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, r.TaskID)
		s.mu.Unlock()
		s.notify(context.Background(), r)
	})
}

// Cancel disarms the reminder for a task, if one is pending.
func (s *Scheduler) Cancel(taskID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[taskID]; ok {
		t.Stop()
		delete(s.timers, taskID)
	}
}

// Pending reports how many reminders are armed.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop disarms every pending reminder. Used on shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
