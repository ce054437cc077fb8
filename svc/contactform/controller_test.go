package contactform_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/scheduler"
	"github.com/dmitrymomot/contactform/svc/contactform"
)

// recorder is a Surface that keeps what it was last told.
type recorder struct {
	mu             sync.Mutex
	values         map[contactform.Field]string
	errors         map[contactform.Field]string
	styles         map[contactform.Field]contactform.Style
	count          contactform.CharCount
	submitting     bool
	formVisible    bool
	successVisible bool
	banner         string
	bannersShown   []string
}

func newRecorder() *recorder {
	return &recorder{
		values:      map[contactform.Field]string{},
		errors:      map[contactform.Field]string{},
		styles:      map[contactform.Field]contactform.Style{},
		formVisible: true,
	}
}

func (r *recorder) SetFieldValue(f contactform.Field, v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[f] = v
}

func (r *recorder) SetFieldError(f contactform.Field, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors[f] = msg
}

func (r *recorder) SetFieldStyle(f contactform.Field, s contactform.Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles[f] = s
}

func (r *recorder) SetCharCount(c contactform.CharCount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count = c
}

func (r *recorder) SetSubmitting(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitting = v
}

func (r *recorder) SetFormVisible(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formVisible = v
}

func (r *recorder) SetSuccessVisible(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successVisible = v
}

func (r *recorder) ShowBanner(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banner = msg
	r.bannersShown = append(r.bannersShown, msg)
}

func (r *recorder) HideBanner() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banner = ""
}

func (r *recorder) get(fn func(r *recorder)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r)
}

// gate is a submitter whose outcome the test decides.
type gate struct {
	results chan error
	calls   atomic.Int32
	last    atomic.Pointer[contactform.Submission]
}

func newGate() *gate {
	return &gate{results: make(chan error, 1)}
}

func (g *gate) Submit(ctx context.Context, s contactform.Submission) error {
	g.calls.Add(1)
	g.last.Store(&s)
	select {
	case err := <-g.results:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type harness struct {
	c     *contactform.Controller
	ui    *recorder
	clock *scheduler.Manual
	sub   *gate
}

func newHarness(t *testing.T, opts ...func(h *harness) contactform.Option) *harness {
	t.Helper()
	h := &harness{
		ui:    newRecorder(),
		clock: scheduler.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		sub:   newGate(),
	}
	options := []contactform.Option{
		contactform.WithScheduler(h.clock),
		contactform.WithSubmitter(h.sub),
	}
	for _, opt := range opts {
		options = append(options, opt(h))
	}
	h.c = contactform.New(h.ui, options...)
	t.Cleanup(func() { _ = h.c.Close() })
	return h
}

func (h *harness) dispatch(t *testing.T, ev contactform.Event) {
	t.Helper()
	require.NoError(t, h.c.Dispatch(context.Background(), ev))
}

func (h *harness) fillValid(t *testing.T) {
	t.Helper()
	h.dispatch(t, contactform.Fill{Preset: contactform.PresetValid})
}

// finish releases the outstanding submission and waits for its result to be applied.
func (h *harness) finish(err error) {
	h.sub.results <- err
	h.c.Wait()
}

func TestController_Input(t *testing.T) {
	t.Parallel()

	t.Run("formats the phone as typed", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		h.dispatch(t, contactform.Input{Field: contactform.FieldPhone, Value: "5551234"})
		assert.Equal(t, "(555) 123-4", h.c.Snapshot().Value(contactform.FieldPhone))
		h.ui.get(func(r *recorder) { assert.Equal(t, "(555) 123-4", r.values[contactform.FieldPhone]) })
	})

	t.Run("clears the field error", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		h.dispatch(t, contactform.Blur{Field: contactform.FieldName})
		require.Equal(t, contactform.MsgNameRequired, h.c.Snapshot().Errors[contactform.FieldName])

		h.dispatch(t, contactform.Input{Field: contactform.FieldName, Value: "J"})
		snap := h.c.Snapshot()
		assert.Empty(t, snap.Errors[contactform.FieldName])
		assert.Equal(t, contactform.StyleNeutral, snap.Styles[contactform.FieldName])
		h.ui.get(func(r *recorder) {
			assert.Empty(t, r.errors[contactform.FieldName])
			assert.Equal(t, contactform.StyleNeutral, r.styles[contactform.FieldName])
		})
	})

	t.Run("updates the counter from the raw message", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		h.dispatch(t, contactform.Input{Field: contactform.FieldMessage, Value: strings.Repeat("a", 399) + "  "})
		assert.Equal(t, 401, h.c.Snapshot().Count.Used)
		h.ui.get(func(r *recorder) {
			assert.Equal(t, "401/500 characters", r.count.String())
			assert.Equal(t, contactform.LevelWarning, r.count.Level)
		})
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		err := h.c.Dispatch(context.Background(), contactform.Input{Field: "address", Value: "x"})
		assert.ErrorIs(t, err, contactform.ErrUnknownField)
	})
}

func TestController_Blur(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field contactform.Field
		value string
		msg   string
		style contactform.Style
	}{
		{contactform.FieldName, "J", contactform.MsgNameTooShort, contactform.StyleError},
		{contactform.FieldName, "John Doe", "", contactform.StyleSuccess},
		{contactform.FieldEmail, "nope", contactform.MsgEmailInvalid, contactform.StyleError},
		{contactform.FieldPhone, "", "", contactform.StyleSuccess},
		{contactform.FieldPhone, "123", contactform.MsgPhoneInvalid, contactform.StyleError},
		{contactform.FieldSubject, "Hi", contactform.MsgSubjectTooShort, contactform.StyleError},
		{contactform.FieldMessage, strings.Repeat("m", 501), contactform.MsgMessageTooLong, contactform.StyleError},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"="+tt.value, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t)

			h.dispatch(t, contactform.Input{Field: tt.field, Value: tt.value})
			h.dispatch(t, contactform.Blur{Field: tt.field})

			snap := h.c.Snapshot()
			assert.Equal(t, tt.msg, snap.Errors[tt.field])
			assert.Equal(t, tt.style, snap.Styles[tt.field])
			h.ui.get(func(r *recorder) {
				assert.Equal(t, tt.msg, r.errors[tt.field])
				assert.Equal(t, tt.style, r.styles[tt.field])
			})
		})
	}

	t.Run("newsletter is ignored", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		h.dispatch(t, contactform.Blur{Field: contactform.FieldNewsletter})
		assert.Empty(t, h.c.Snapshot().Styles)
	})
}

func TestController_SubmitInvalid(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.dispatch(t, contactform.Fill{Preset: contactform.PresetInvalid})
	h.dispatch(t, contactform.Submit{})

	snap := h.c.Snapshot()
	assert.Equal(t, contactform.StatusIdle, snap.Status)
	assert.Equal(t, contactform.MsgCorrectErrors, snap.Banner)
	assert.Equal(t, contactform.MsgNameTooShort, snap.Errors[contactform.FieldName])
	assert.Equal(t, contactform.MsgPhoneInvalid, snap.Errors[contactform.FieldPhone])
	assert.Equal(t, contactform.MsgMessageTooShort, snap.Errors[contactform.FieldMessage])
	assert.Zero(t, h.sub.calls.Load(), "invalid form must not be submitted")

	h.clock.Advance(4 * time.Second)
	assert.Equal(t, contactform.MsgCorrectErrors, h.c.Snapshot().Banner)
	h.clock.Advance(time.Second)
	assert.Empty(t, h.c.Snapshot().Banner)
	h.ui.get(func(r *recorder) { assert.Empty(t, r.banner) })
}

func TestController_BannerTimerRestarts(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.dispatch(t, contactform.Submit{})
	h.clock.Advance(3 * time.Second)
	h.dispatch(t, contactform.Submit{})

	// The first timer's deadline passes without hiding the second banner.
	h.clock.Advance(2 * time.Second)
	assert.Equal(t, contactform.MsgCorrectErrors, h.c.Snapshot().Banner)

	h.clock.Advance(3 * time.Second)
	assert.Empty(t, h.c.Snapshot().Banner)
	h.ui.get(func(r *recorder) { assert.Len(t, r.bannersShown, 2) })
}

// stuckTask is a task that has already left the timer queue:
// Cancel cannot stop it and its action still runs.
type stuckTask struct{}

func (stuckTask) Cancel() bool { return false }

// lateTimers schedules on the harness clock but never cancels, and keeps
// every action so a test can deliver one again after it went stale.
type lateTimers struct {
	mu      sync.Mutex
	actions []func()
}

func (l *lateTimers) install(h *harness) contactform.Option {
	return contactform.WithScheduler(scheduler.Func(func(d time.Duration, fn func()) scheduler.Task {
		l.mu.Lock()
		l.actions = append(l.actions, fn)
		l.mu.Unlock()
		h.clock.After(d, fn)
		return stuckTask{}
	}))
}

func (l *lateTimers) action(i int) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.actions[i]
}

func TestController_LateTimers(t *testing.T) {
	t.Parallel()

	t.Run("expired banner timer leaves a newer banner alone", func(t *testing.T) {
		t.Parallel()
		late := &lateTimers{}
		h := newHarness(t, late.install)

		h.dispatch(t, contactform.Submit{})
		h.clock.Advance(3 * time.Second)
		h.dispatch(t, contactform.DismissBanner{})
		require.Equal(t, 1, h.clock.Pending(), "dismissal could not cancel the first timer")

		h.dispatch(t, contactform.Submit{})
		require.Equal(t, contactform.MsgCorrectErrors, h.c.Snapshot().Banner)

		// First timer fires at 5s, three seconds into the second banner.
		assert.Equal(t, 1, h.clock.Advance(2*time.Second))
		assert.Equal(t, contactform.MsgCorrectErrors, h.c.Snapshot().Banner)
		h.ui.get(func(r *recorder) { assert.Equal(t, contactform.MsgCorrectErrors, r.banner) })

		h.clock.Advance(3 * time.Second)
		assert.Empty(t, h.c.Snapshot().Banner)
	})

	t.Run("failure banner timer after resubmission keeps the form submitting", func(t *testing.T) {
		t.Parallel()
		late := &lateTimers{}
		h := newHarness(t, late.install)

		h.fillValid(t)
		h.dispatch(t, contactform.Submit{})
		h.finish(errors.New("network down"))
		require.Equal(t, contactform.StatusFailed, h.c.Snapshot().Status)

		h.dispatch(t, contactform.Submit{})
		require.Equal(t, contactform.StatusSubmitting, h.c.Snapshot().Status)

		h.clock.Advance(5 * time.Second)
		snap := h.c.Snapshot()
		assert.Equal(t, contactform.StatusSubmitting, snap.Status)
		assert.Empty(t, snap.Banner)

		h.finish(nil)
		assert.Equal(t, contactform.StatusSuccess, h.c.Snapshot().Status)
	})

	t.Run("repeated reset leaves the next submission alone", func(t *testing.T) {
		t.Parallel()
		late := &lateTimers{}
		h := newHarness(t, late.install)

		h.fillValid(t)
		h.dispatch(t, contactform.Submit{})
		h.finish(nil)
		firstReset := late.action(0)

		h.clock.Advance(5 * time.Second)
		require.Equal(t, contactform.StatusIdle, h.c.Snapshot().Status)

		h.dispatch(t, contactform.Input{Field: contactform.FieldName, Value: "Jane Roe"})
		firstReset()
		assert.Equal(t, "Jane Roe", h.c.Snapshot().Value(contactform.FieldName))

		h.fillValid(t)
		h.dispatch(t, contactform.Submit{})
		h.finish(nil)
		require.Equal(t, contactform.StatusSuccess, h.c.Snapshot().Status)

		firstReset()
		snap := h.c.Snapshot()
		assert.Equal(t, contactform.StatusSuccess, snap.Status)
		assert.True(t, snap.SuccessVisible)
		assert.False(t, snap.FormVisible)
		assert.Equal(t, "John Doe", snap.Value(contactform.FieldName))

		h.clock.Advance(5 * time.Second)
		snap = h.c.Snapshot()
		assert.Equal(t, contactform.StatusIdle, snap.Status)
		assert.Empty(t, snap.Value(contactform.FieldName))
	})
}

func TestController_DismissBanner(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.dispatch(t, contactform.Submit{})
	h.dispatch(t, contactform.DismissBanner{})
	assert.Empty(t, h.c.Snapshot().Banner)
	assert.Zero(t, h.clock.Pending(), "dismissal cancels the timer")

	h.dispatch(t, contactform.DismissBanner{})
}

func TestController_EmptyPhoneIsNeutralOnSubmit(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.dispatch(t, contactform.Input{Field: contactform.FieldPhone, Value: "12"})
	h.dispatch(t, contactform.Blur{Field: contactform.FieldPhone})
	require.Equal(t, contactform.StyleError, h.c.Snapshot().Styles[contactform.FieldPhone])

	h.dispatch(t, contactform.Input{Field: contactform.FieldPhone, Value: ""})
	h.dispatch(t, contactform.Submit{})

	snap := h.c.Snapshot()
	assert.Empty(t, snap.Errors[contactform.FieldPhone])
	assert.Equal(t, contactform.StyleNeutral, snap.Styles[contactform.FieldPhone])
	assert.Equal(t, contactform.StyleError, snap.Styles[contactform.FieldName])
}

func TestController_SubmitSuccess(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	h.fillValid(t)
	h.dispatch(t, contactform.Input{Field: contactform.FieldName, Value: "  John Doe  "})
	h.dispatch(t, contactform.Input{Field: contactform.FieldNewsletter, Value: "true"})
	h.dispatch(t, contactform.Submit{})

	snap := h.c.Snapshot()
	assert.Equal(t, contactform.StatusSubmitting, snap.Status)
	assert.Empty(t, snap.Banner)
	h.ui.get(func(r *recorder) { assert.True(t, r.submitting) })

	assert.ErrorIs(t, h.c.Dispatch(ctx, contactform.Submit{}), contactform.ErrSubmissionInProgress)

	h.finish(nil)
	assert.EqualValues(t, 1, h.sub.calls.Load())
	got := h.sub.last.Load()
	require.NotNil(t, got)
	assert.Equal(t, "John Doe", got.Name)
	assert.Equal(t, "(555) 123-4567", got.Phone)
	assert.True(t, got.Newsletter)
	assert.Equal(t, h.clock.Now(), got.SubmittedAt)

	snap = h.c.Snapshot()
	assert.Equal(t, contactform.StatusSuccess, snap.Status)
	assert.False(t, snap.FormVisible)
	assert.True(t, snap.SuccessVisible)
	h.ui.get(func(r *recorder) {
		assert.False(t, r.submitting)
		assert.False(t, r.formVisible)
		assert.True(t, r.successVisible)
	})

	assert.ErrorIs(t, h.c.Dispatch(ctx, contactform.Submit{}), contactform.ErrSubmissionCompleted)

	h.clock.Advance(5 * time.Second)

	snap = h.c.Snapshot()
	assert.Equal(t, contactform.StatusIdle, snap.Status)
	assert.True(t, snap.FormVisible)
	assert.False(t, snap.SuccessVisible)
	assert.Equal(t, 0, snap.Count.Used)
	for _, f := range contactform.Fields {
		assert.Empty(t, snap.Value(f), "field %s", f)
	}
	assert.Empty(t, snap.Styles)
	h.ui.get(func(r *recorder) {
		assert.Empty(t, r.values[contactform.FieldEmail])
		assert.Equal(t, contactform.StyleNeutral, r.styles[contactform.FieldEmail])
		assert.True(t, r.formVisible)
		assert.False(t, r.successVisible)
	})
}

func TestController_SubmitFailure(t *testing.T) {
	t.Parallel()

	t.Run("shows the failure banner and keeps values", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		h.fillValid(t)
		h.dispatch(t, contactform.Submit{})
		h.finish(errors.New("network down"))

		snap := h.c.Snapshot()
		assert.Equal(t, contactform.StatusFailed, snap.Status)
		assert.Equal(t, contactform.MsgSubmissionFailed, snap.Banner)
		assert.Equal(t, "John Doe", snap.Value(contactform.FieldName))
		assert.True(t, snap.FormVisible)
		h.ui.get(func(r *recorder) { assert.False(t, r.submitting) })

		h.clock.Advance(5 * time.Second)
		snap = h.c.Snapshot()
		assert.Equal(t, contactform.StatusIdle, snap.Status)
		assert.Empty(t, snap.Banner)
	})

	t.Run("dismissal returns to idle", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		h.fillValid(t)
		h.dispatch(t, contactform.Submit{})
		h.finish(errors.New("network down"))
		h.dispatch(t, contactform.DismissBanner{})

		assert.Equal(t, contactform.StatusIdle, h.c.Snapshot().Status)
	})

	t.Run("resubmitting retries", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		h.fillValid(t)
		h.dispatch(t, contactform.Submit{})
		h.finish(errors.New("network down"))

		h.dispatch(t, contactform.Submit{})
		snap := h.c.Snapshot()
		assert.Equal(t, contactform.StatusSubmitting, snap.Status)
		assert.Empty(t, snap.Banner)

		h.finish(nil)
		assert.Equal(t, contactform.StatusSuccess, h.c.Snapshot().Status)
		assert.EqualValues(t, 2, h.sub.calls.Load())
	})

	t.Run("resubmitting an invalid form shows the validation banner", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		h.fillValid(t)
		h.dispatch(t, contactform.Submit{})
		h.finish(errors.New("network down"))

		h.dispatch(t, contactform.Input{Field: contactform.FieldEmail, Value: "broken"})
		h.dispatch(t, contactform.Submit{})
		snap := h.c.Snapshot()
		assert.Equal(t, contactform.StatusIdle, snap.Status)
		assert.Equal(t, contactform.MsgCorrectErrors, snap.Banner)
	})
}

func TestController_ConcurrentSubmits(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.fillValid(t)

	var wg sync.WaitGroup
	var accepted atomic.Int32
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := h.c.Dispatch(context.Background(), contactform.Submit{}); err == nil {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	h.finish(nil)
	assert.EqualValues(t, 1, accepted.Load())
	assert.EqualValues(t, 1, h.sub.calls.Load())
}

func TestController_Fill(t *testing.T) {
	t.Parallel()

	t.Run("writes values without validating", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		h.dispatch(t, contactform.Fill{Preset: contactform.PresetInvalid})
		snap := h.c.Snapshot()
		assert.Equal(t, "J", snap.Value(contactform.FieldName))
		assert.Equal(t, "123", snap.Value(contactform.FieldPhone))
		assert.Empty(t, snap.Errors)
		assert.Equal(t, 5, snap.Count.Used)
		h.ui.get(func(r *recorder) { assert.Equal(t, "invalid-email", r.values[contactform.FieldEmail]) })
	})

	t.Run("keeps fields the preset omits", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		h.fillValid(t)
		h.dispatch(t, contactform.Fill{Preset: contactform.PresetSpecial})
		snap := h.c.Snapshot()
		assert.Equal(t, "(555) 123-4567", snap.Value(contactform.FieldPhone))
		assert.Equal(t, "José María O'Connor-Smith", snap.Value(contactform.FieldName))
	})

	t.Run("unknown preset", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		err := h.c.Dispatch(context.Background(), contactform.Fill{Preset: "bogus"})
		assert.ErrorIs(t, err, contactform.ErrUnknownPreset)
	})
}

func TestController_Close(t *testing.T) {
	t.Parallel()

	t.Run("cancels the outstanding submission", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		h.fillValid(t)
		h.dispatch(t, contactform.Submit{})

		done := make(chan struct{})
		go func() {
			_ = h.c.Close()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Close did not return")
		}

		assert.ErrorIs(t, h.c.Dispatch(context.Background(), contactform.Submit{}), contactform.ErrClosed)
		assert.Equal(t, contactform.StatusSubmitting, h.c.Snapshot().Status)
	})

	t.Run("stops pending timers", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)

		h.dispatch(t, contactform.Submit{})
		require.Equal(t, 1, h.clock.Pending())
		require.NoError(t, h.c.Close())
		assert.Zero(t, h.clock.Pending())
		require.NoError(t, h.c.Close())
	})
}

func TestController_UnknownEvent(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	assert.ErrorIs(t, h.c.Dispatch(context.Background(), nil), contactform.ErrUnknownEvent)
	assert.ErrorIs(t, h.c.Dispatch(context.Background(), &contactform.Input{Field: contactform.FieldName}), contactform.ErrUnknownEvent)
}

func TestController_DefaultSubmitter(t *testing.T) {
	t.Parallel()

	cfg := contactform.DefaultConfig()
	cfg.SubmitDelay = 0
	cfg.SuccessRate = 1
	c := contactform.New(nil, contactform.WithConfig(cfg), contactform.WithScheduler(scheduler.NewManual(time.Now())))
	defer c.Close()

	require.NoError(t, c.Dispatch(context.Background(), contactform.Fill{Preset: contactform.PresetValid}))
	require.NoError(t, c.Dispatch(context.Background(), contactform.Submit{}))
	c.Wait()
	assert.Equal(t, contactform.StatusSuccess, c.Snapshot().Status)
}
