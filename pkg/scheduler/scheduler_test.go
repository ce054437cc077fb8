package scheduler_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/scheduler"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManual_Advance(t *testing.T) {
	t.Parallel()

	t.Run("runs nothing before the deadline", func(t *testing.T) {
		t.Parallel()
		m := scheduler.NewManual(epoch)
		ran := false
		m.After(5*time.Second, func() { ran = true })

		assert.Equal(t, 0, m.Advance(4*time.Second))
		assert.False(t, ran)
		assert.Equal(t, 1, m.Pending())

		assert.Equal(t, 1, m.Advance(time.Second))
		assert.True(t, ran)
		assert.Equal(t, 0, m.Pending())
		assert.Equal(t, epoch.Add(5*time.Second), m.Now())
	})

	t.Run("runs in deadline order then scheduling order", func(t *testing.T) {
		t.Parallel()
		m := scheduler.NewManual(epoch)
		var order []string
		m.After(2*time.Second, func() { order = append(order, "b") })
		m.After(time.Second, func() { order = append(order, "a") })
		m.After(2*time.Second, func() { order = append(order, "c") })

		assert.Equal(t, 3, m.Advance(10*time.Second))
		assert.Equal(t, []string{"a", "b", "c"}, order)
	})

	t.Run("runs actions scheduled by actions when they fall due", func(t *testing.T) {
		t.Parallel()
		m := scheduler.NewManual(epoch)
		var at []time.Time
		m.After(time.Second, func() {
			at = append(at, m.Now())
			m.After(time.Second, func() { at = append(at, m.Now()) })
		})

		assert.Equal(t, 2, m.Advance(3*time.Second))
		assert.Equal(t, []time.Time{epoch.Add(time.Second), epoch.Add(2 * time.Second)}, at)
		assert.Equal(t, epoch.Add(3*time.Second), m.Now())
	})

	t.Run("negative delay runs on next advance", func(t *testing.T) {
		t.Parallel()
		m := scheduler.NewManual(epoch)
		ran := false
		m.After(-time.Second, func() { ran = true })
		m.Advance(0)
		assert.True(t, ran)
	})
}

func TestManual_Cancel(t *testing.T) {
	t.Parallel()

	m := scheduler.NewManual(epoch)
	ran := false
	task := m.After(time.Second, func() { ran = true })

	assert.True(t, task.Cancel())
	assert.False(t, task.Cancel(), "second cancel reports nothing to stop")
	m.Advance(time.Minute)
	assert.False(t, ran)

	done := m.After(time.Second, func() {})
	m.Advance(time.Second)
	assert.False(t, done.Cancel(), "cancel after run reports false")
}

func TestSlot(t *testing.T) {
	t.Parallel()

	m := scheduler.NewManual(epoch)
	var slot scheduler.Slot
	var fired []string

	assert.False(t, slot.Pending())
	assert.False(t, slot.Stop())

	slot.Set(m.After(5*time.Second, func() { fired = append(fired, "first") }))
	m.Advance(2 * time.Second)
	slot.Set(m.After(5*time.Second, func() { fired = append(fired, "second") }))
	assert.True(t, slot.Pending())

	m.Advance(3 * time.Second)
	assert.Empty(t, fired, "replaced task must not fire")

	m.Advance(2 * time.Second)
	assert.Equal(t, []string{"second"}, fired)

	slot.Set(m.After(time.Second, func() { fired = append(fired, "third") }))
	assert.True(t, slot.Stop())
	assert.False(t, slot.Pending())
	m.Advance(time.Minute)
	assert.Equal(t, []string{"second"}, fired)
}

func TestTimers(t *testing.T) {
	t.Parallel()

	s := scheduler.NewTimers()

	var n atomic.Int32
	done := make(chan struct{})
	s.After(5*time.Millisecond, func() {
		n.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Equal(t, int32(1), n.Load())

	cancelled := s.After(time.Hour, func() { n.Add(1) })
	require.True(t, cancelled.Cancel())
}

func TestTimers_FakeClock(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(epoch)
	s := scheduler.NewTimersWithClock(clock)
	assert.Equal(t, epoch, s.Now())

	fired := make(chan time.Time, 1)
	s.After(5*time.Second, func() { fired <- clock.Now() })
	stopped := s.After(5*time.Second, func() { t.Error("cancelled task ran") })
	require.True(t, stopped.Cancel())

	clock.Advance(4 * time.Second)
	select {
	case <-fired:
		t.Fatal("fired before the deadline")
	default:
	}

	clock.Advance(time.Second)
	select {
	case at := <-fired:
		assert.Equal(t, epoch.Add(5*time.Second), at)
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestClock(t *testing.T) {
	t.Parallel()

	var _ scheduler.Clock = scheduler.NewManual(epoch)
	var _ scheduler.Clock = scheduler.NewTimers()

	m := scheduler.NewManual(epoch)
	m.Advance(90 * time.Second)
	assert.Equal(t, epoch.Add(90*time.Second), m.Now())
}

func TestFunc(t *testing.T) {
	t.Parallel()

	m := scheduler.NewManual(epoch)
	var got time.Duration
	s := scheduler.Func(func(d time.Duration, fn func()) scheduler.Task {
		got = d
		return m.After(d, fn)
	})

	s.After(3*time.Second, func() {})
	assert.Equal(t, 3*time.Second, got)
	assert.Equal(t, 1, m.Pending())
}
