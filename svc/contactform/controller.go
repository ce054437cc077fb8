package contactform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/dmitrymomot/contactform/pkg/async"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/scheduler"
	"github.com/dmitrymomot/contactform/pkg/statemachine"
)

type handlerFunc func(c *Controller, ctx context.Context, ev Event) error

// Controller owns the state of one contact form. Events are applied one at a
// time under a single lock; every change is mirrored to the Surface.
type Controller struct {
	mu sync.Mutex

	cfg       Config
	surface   Surface
	submitter Submitter
	sched     scheduler.Scheduler
	log       *slog.Logger
	now       func() time.Time
	lifecycle *statusMachine
	handlers  map[Kind]handlerFunc

	values         map[Field]string
	errors         map[Field]string
	styles         map[Field]Style
	count          CharCount
	banner         string
	formVisible    bool
	successVisible bool

	submitGen  uint64
	bannerGen  uint64
	resetGen   uint64
	bannerSlot scheduler.Slot
	resetSlot  scheduler.Slot

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
	closed   bool
}

// Option configures a Controller.
type Option func(*Controller)

func WithConfig(cfg Config) Option {
	return func(c *Controller) { c.cfg = cfg }
}

func WithSubmitter(s Submitter) Option {
	return func(c *Controller) {
		if s != nil {
			c.submitter = s
		}
	}
}

// WithScheduler replaces the timer source used for banner dismissal and form reset.
// A scheduler that is also a scheduler.Clock timestamps submissions too,
// unless WithClock comes later.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(c *Controller) {
		if s == nil {
			return
		}
		c.sched = s
		if clock, ok := s.(scheduler.Clock); ok {
			c.now = clock.Now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock sets the clock used to timestamp submissions.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a controller in the Idle state with an empty, visible form.
// Without WithSubmitter, submissions go to a SimulatedSubmitter built from the config.
func New(surface Surface, opts ...Option) *Controller {
	if surface == nil {
		surface = NopSurface{}
	}
	c := &Controller{
		cfg:         DefaultConfig(),
		surface:     surface,
		sched:       scheduler.NewTimers(),
		log:         slog.Default(),
		now:         time.Now,
		values:      make(map[Field]string, len(Fields)),
		errors:      make(map[Field]string, len(Fields)),
		styles:      make(map[Field]Style, len(Fields)),
		count:       Count(""),
		formVisible: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.submitter == nil {
		c.submitter = NewSimulatedSubmitter(c.cfg.SubmitDelay, c.cfg.SuccessRate)
	}
	c.log = c.log.With(logger.Component("contactform"))
	c.lifecycle = newLifecycle(c.log)
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.handlers = map[Kind]handlerFunc{
		KindInput:          (*Controller).onInput,
		KindBlur:           (*Controller).onBlur,
		KindSubmit:         (*Controller).onSubmit,
		KindDismissBanner:  (*Controller).onDismissBanner,
		KindFill:           (*Controller).onFill,
		kindSubmissionDone: (*Controller).onSubmissionDone,
		kindBannerExpired:  (*Controller).onBannerExpired,
		kindResetDue:       (*Controller).onResetDue,
	}
	return c
}

// Dispatch applies ev. It returns an error when the event is not allowed in
// the current state; the form is left unchanged in that case.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	if ev == nil {
		return fmt.Errorf("%w: nil", ErrUnknownEvent)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	h, ok := c.handlers[ev.Kind()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Kind())
	}
	return h(c, ctx, ev)
}

// Snapshot returns a copy of the current form state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Values:         maps.Clone(c.values),
		Errors:         maps.Clone(c.errors),
		Styles:         maps.Clone(c.styles),
		Count:          c.count,
		Status:         c.status(),
		Banner:         c.banner,
		FormVisible:    c.formVisible,
		SuccessVisible: c.successVisible,
	}
}

// Wait blocks until the outstanding submission, if any, has been applied.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Close cancels pending timers and the outstanding submission and waits for
// it to finish. Events dispatched afterwards fail with ErrClosed.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.cancel()
	c.bannerSlot.Stop()
	c.resetSlot.Stop()
	c.mu.Unlock()

	c.inflight.Wait()
	return nil
}

// as narrows ev to the concrete type registered for its kind.
func as[T Event](ev Event) (T, error) {
	e, ok := ev.(T)
	if !ok {
		return e, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
	return e, nil
}

func (c *Controller) status() Status {
	return c.lifecycle.Current()
}

func (c *Controller) onInput(_ context.Context, ev Event) error {
	e, err := as[Input](ev)
	if err != nil {
		return err
	}
	if _, err := ParseField(string(e.Field)); err != nil {
		return err
	}

	value := e.Value
	if e.Field == FieldPhone {
		if formatted := FormatPhone(value); formatted != value {
			value = formatted
			c.surface.SetFieldValue(FieldPhone, value)
		}
	}
	c.values[e.Field] = value

	if e.Field.Validated() {
		c.setError(e.Field, "")
		c.setStyle(e.Field, StyleNeutral)
	}
	if e.Field == FieldMessage {
		c.setCount(Count(value))
	}
	return nil
}

func (c *Controller) onBlur(_ context.Context, ev Event) error {
	e, err := as[Blur](ev)
	if err != nil {
		return err
	}
	if _, err := ParseField(string(e.Field)); err != nil {
		return err
	}
	if e.Field.Validated() {
		c.apply(e.Field, Validate(e.Field, c.values[e.Field]))
	}
	return nil
}

func (c *Controller) onSubmit(ctx context.Context, _ Event) error {
	switch c.status() {
	case StatusSubmitting:
		return ErrSubmissionInProgress
	case StatusSuccess:
		return ErrSubmissionCompleted
	case StatusFailed:
		c.dismissBanner(ctx)
	}

	valid := c.validateAll()
	if err := c.lifecycle.Fire(ctx, triggerSubmit, valid); err != nil {
		if errors.Is(err, statemachine.ErrRejected) {
			c.showBanner(MsgCorrectErrors)
			return nil
		}
		return err
	}

	c.surface.SetSubmitting(true)
	c.submitGen++
	c.startSubmission(c.submitGen, newSubmission(c.values, c.now()))
	return nil
}

// startSubmission runs the submitter off the lock and feeds its result back
// through Dispatch. Caller holds the lock.
func (c *Controller) startSubmission(gen uint64, sub Submission) {
	ctx, cancel := context.WithTimeout(c.ctx, c.cfg.SubmitTimeout)
	c.inflight.Add(1)

	async.Async(ctx, sub, func(ctx context.Context, s Submission) (struct{}, error) {
		return struct{}{}, c.submitter.Submit(ctx, s)
	}).Then(func(_ struct{}, err error) {
		defer c.inflight.Done()
		cancel()
		_ = c.Dispatch(c.ctx, submissionDone{gen: gen, err: err})
	})
}

func (c *Controller) onSubmissionDone(ctx context.Context, ev Event) error {
	e := ev.(submissionDone)
	if e.gen != c.submitGen || c.status() != StatusSubmitting {
		return nil
	}

	c.surface.SetSubmitting(false)
	if e.err != nil {
		c.log.WarnContext(ctx, "contact form submission failed", logger.Error(e.err))
		if err := c.lifecycle.Fire(ctx, triggerFail, nil); err != nil {
			return err
		}
		c.showBanner(MsgSubmissionFailed)
		return nil
	}

	if err := c.lifecycle.Fire(ctx, triggerSucceed, nil); err != nil {
		return err
	}
	c.log.InfoContext(ctx, "contact form submitted")
	c.hideBanner()
	c.setFormVisible(false)
	c.setSuccessVisible(true)

	c.resetGen++
	gen := c.resetGen
	c.resetSlot.Set(c.sched.After(c.cfg.ResetAfter, func() {
		_ = c.Dispatch(c.ctx, resetDue{gen: gen})
	}))
	return nil
}

func (c *Controller) onResetDue(ctx context.Context, ev Event) error {
	e := ev.(resetDue)
	if e.gen != c.resetGen || c.status() != StatusSuccess {
		return nil
	}
	c.resetSlot.Stop()

	for _, f := range Fields {
		c.values[f] = ""
		c.surface.SetFieldValue(f, "")
		if f.Validated() {
			c.setError(f, "")
			c.setStyle(f, StyleNeutral)
		}
	}
	c.setCount(Count(""))
	c.setSuccessVisible(false)
	c.setFormVisible(true)
	return c.lifecycle.Fire(ctx, triggerReset, nil)
}

func (c *Controller) onDismissBanner(ctx context.Context, _ Event) error {
	if c.banner != "" {
		c.dismissBanner(ctx)
	}
	return nil
}

func (c *Controller) onBannerExpired(ctx context.Context, ev Event) error {
	if ev.(bannerExpired).gen == c.bannerGen && c.banner != "" {
		c.dismissBanner(ctx)
	}
	return nil
}

func (c *Controller) onFill(_ context.Context, ev Event) error {
	e, err := as[Fill](ev)
	if err != nil {
		return err
	}
	values, err := Preset(e.Preset)
	if err != nil {
		return err
	}
	for _, f := range Fields {
		v, ok := values[f]
		if !ok {
			continue
		}
		c.values[f] = v
		c.surface.SetFieldValue(f, v)
		if f == FieldMessage {
			c.setCount(Count(v))
		}
	}
	return nil
}

// validateAll checks every required field and a non-blank phone, updating
// their feedback. A blank phone is reset to neutral.
func (c *Controller) validateAll() bool {
	report := CheckAll(c.values)
	for _, f := range Fields {
		if !f.Validated() {
			continue
		}
		if res, ok := report.Results[f]; ok {
			c.apply(f, res)
			continue
		}
		c.setError(f, "")
		c.setStyle(f, StyleNeutral)
	}
	return report.Valid()
}

func (c *Controller) apply(f Field, res Result) {
	c.setError(f, res.Message)
	if res.Valid {
		c.setStyle(f, StyleSuccess)
	} else {
		c.setStyle(f, StyleError)
	}
}

func (c *Controller) setError(f Field, msg string) {
	if msg == "" {
		delete(c.errors, f)
	} else {
		c.errors[f] = msg
	}
	c.surface.SetFieldError(f, msg)
}

func (c *Controller) setStyle(f Field, s Style) {
	if s == StyleNeutral {
		delete(c.styles, f)
	} else {
		c.styles[f] = s
	}
	c.surface.SetFieldStyle(f, s)
}

func (c *Controller) setCount(cc CharCount) {
	c.count = cc
	c.surface.SetCharCount(cc)
}

func (c *Controller) setFormVisible(v bool) {
	c.formVisible = v
	c.surface.SetFormVisible(v)
}

func (c *Controller) setSuccessVisible(v bool) {
	c.successVisible = v
	c.surface.SetSuccessVisible(v)
}

// showBanner replaces any visible banner and restarts the dismissal timer.
func (c *Controller) showBanner(msg string) {
	c.banner = msg
	c.surface.ShowBanner(msg)

	c.bannerGen++
	gen := c.bannerGen
	c.bannerSlot.Set(c.sched.After(c.cfg.DismissAfter, func() {
		_ = c.Dispatch(c.ctx, bannerExpired{gen: gen})
	}))
}

func (c *Controller) hideBanner() {
	c.bannerSlot.Stop()
	c.bannerGen++
	if c.banner != "" {
		c.banner = ""
		c.surface.HideBanner()
	}
}

// dismissBanner hides the banner and, after a failed submission, returns the form to Idle.
func (c *Controller) dismissBanner(ctx context.Context) {
	c.hideBanner()
	if c.status() == StatusFailed {
		if err := c.lifecycle.Fire(ctx, triggerAcknowledge, nil); err != nil {
			c.log.ErrorContext(ctx, "acknowledge failed submission", logger.Error(err))
		}
	}
}
