package scheduler

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Task is a pending delayed action.
type Task interface {
	// Cancel prevents the action from running.
	// It returns false if the action already ran or was already cancelled.
	Cancel() bool
}

// Scheduler schedules fn to run once after d.
type Scheduler interface {
	After(d time.Duration, fn func()) Task
}

// Clock is implemented by schedulers that also tell the time.
// Owners use it to timestamp work on the same clock that runs their timers.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to the Scheduler interface.
type Func func(d time.Duration, fn func()) Task

func (f Func) After(d time.Duration, fn func()) Task {
	return f(d, fn)
}

// Timers schedules actions on a clockwork clock.
// Actions run on their own goroutine.
type Timers struct {
	clock clockwork.Clock
}

// NewTimers returns a Scheduler backed by the wall clock.
func NewTimers() *Timers {
	return NewTimersWithClock(clockwork.NewRealClock())
}

// NewTimersWithClock returns a Scheduler whose timers come from clock.
func NewTimersWithClock(clock clockwork.Clock) *Timers {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timers{clock: clock}
}

func (t *Timers) After(d time.Duration, fn func()) Task {
	return timerTask{t: t.clock.AfterFunc(max(d, 0), fn)}
}

// Now returns the time of the underlying clock.
func (t *Timers) Now() time.Time {
	return t.clock.Now()
}

type timerTask struct {
	t clockwork.Timer
}

func (t timerTask) Cancel() bool {
	return t.t.Stop()
}

// Slot holds at most one pending task. It is not safe for concurrent use;
// owners serialise access with their own lock.
type Slot struct {
	task Task
}

// Set cancels the current task, if any, and stores t.
func (s *Slot) Set(t Task) {
	s.Stop()
	s.task = t
}

// Stop cancels the current task, if any.
// It reports whether a pending action was prevented from running.
func (s *Slot) Stop() bool {
	if s.task == nil {
		return false
	}
	stopped := s.task.Cancel()
	s.task = nil
	return stopped
}

// Pending reports whether the slot holds a task that has not been stopped.
func (s *Slot) Pending() bool {
	return s.task != nil
}
