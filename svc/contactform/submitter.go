package contactform

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/contactform/pkg/sanitizer"
)

// Submission is the validated content of a form at the moment it was submitted.
type Submission struct {
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
	Newsletter  bool
	SubmittedAt time.Time
}

var cleanValue = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.NormalizeUnicode, sanitizer.Trim)

func newSubmission(values map[Field]string, at time.Time) Submission {
	return Submission{
		Name:        cleanValue(values[FieldName]),
		Email:       cleanValue(values[FieldEmail]),
		Phone:       cleanValue(values[FieldPhone]),
		Subject:     sanitizer.SingleLine(cleanValue(values[FieldSubject])),
		Message:     cleanValue(values[FieldMessage]),
		Newsletter:  Checked(values[FieldNewsletter]),
		SubmittedAt: at,
	}
}

// Submitter delivers a submission. A nil error means the message was accepted.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, s Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// SimulatedSubmitter stands in for a backend: it waits, then succeeds with
// the configured probability.
type SimulatedSubmitter struct {
	delay       time.Duration
	successRate float64
	random      func() float64
}

// SimulatedOption configures a SimulatedSubmitter.
type SimulatedOption func(*SimulatedSubmitter)

// WithRandom replaces the random source, which must return values in [0, 1).
func WithRandom(fn func() float64) SimulatedOption {
	return func(s *SimulatedSubmitter) {
		if fn != nil {
			s.random = fn
		}
	}
}

func NewSimulatedSubmitter(delay time.Duration, successRate float64, opts ...SimulatedOption) *SimulatedSubmitter {
	s := &SimulatedSubmitter{
		delay:       delay,
		successRate: successRate,
		random:      rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SimulatedSubmitter) Submit(ctx context.Context, _ Submission) error {
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	if s.random() >= s.successRate {
		return ErrSimulatedNetwork
	}
	return nil
}

// ThrottledSubmitter rejects submissions above a token-bucket rate before
// they reach the wrapped submitter.
type ThrottledSubmitter struct {
	next    Submitter
	limiter *rate.Limiter
}

func NewThrottledSubmitter(next Submitter, perSecond float64, burst int) *ThrottledSubmitter {
	return &ThrottledSubmitter{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), max(burst, 1)),
	}
}

func (t *ThrottledSubmitter) Submit(ctx context.Context, s Submission) error {
	if !t.limiter.Allow() {
		return ErrThrottled
	}
	return t.next.Submit(ctx, s)
}
