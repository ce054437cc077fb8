package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// fakeClock is the part of clockwork's fake clock Manual drives.
type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
}

// Manual is a deterministic Scheduler for tests, built on a clockwork fake
// clock. Nothing runs until Advance moves the clock forward; due actions then
// run synchronously on the caller's goroutine, earliest deadline first and in
// scheduling order on ties.
type Manual struct {
	clock fakeClock

	mu      sync.Mutex
	seq     uint64
	pending map[uint64]*manualTask
}

type manualTask struct {
	m        *Manual
	id       uint64
	deadline time.Time
	timer    clockwork.Timer
	expired  chan struct{}
	fn       func()
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		clock:   clockwork.NewFakeClockAt(start),
		pending: make(map[uint64]*manualTask),
	}
}

func (m *Manual) After(d time.Duration, fn func()) Task {
	d = max(d, 0)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTask{
		m:        m,
		id:       m.seq,
		deadline: m.clock.Now().Add(d),
		expired:  make(chan struct{}),
		fn:       fn,
	}
	// The clockwork timer only marks the task due; fn runs inside Advance.
	t.timer = m.clock.AfterFunc(d, func() { close(t.expired) })
	m.pending[t.id] = t
	return t
}

func (t *manualTask) Cancel() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if _, ok := t.m.pending[t.id]; !ok {
		return false
	}
	delete(t.m.pending, t.id)
	t.timer.Stop()
	return true
}

// Advance moves the clock forward by d and runs every action that becomes due,
// including actions scheduled by those actions. It returns how many ran.
func (m *Manual) Advance(d time.Duration) int {
	target := m.clock.Now().Add(d)

	ran := 0
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.advanceTo(t.deadline)
		<-t.expired
		t.fn()
		ran++
	}
	m.advanceTo(target)
	return ran
}

func (m *Manual) advanceTo(at time.Time) {
	if step := at.Sub(m.clock.Now()); step >= 0 {
		m.clock.Advance(step)
	}
}

// nextDue removes and returns the earliest task due at or before target.
func (m *Manual) nextDue(target time.Time) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	due := make([]*manualTask, 0, len(m.pending))
	for _, t := range m.pending {
		if !t.deadline.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].id < due[j].id
		}
		return due[i].deadline.Before(due[j].deadline)
	})

	t := due[0]
	delete(m.pending, t.id)
	return t
}

// Now returns the current fake time.
func (m *Manual) Now() time.Time {
	return m.clock.Now()
}

// Pending returns the number of scheduled actions that have not run or been cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
