package contactform_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/email"
	"github.com/dmitrymomot/contactform/svc/contactform"
)

func TestSimulatedSubmitter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fixed := func(v float64) contactform.SimulatedOption {
		return contactform.WithRandom(func() float64 { return v })
	}

	t.Run("succeeds below the success rate", func(t *testing.T) {
		t.Parallel()
		s := contactform.NewSimulatedSubmitter(0, 0.9, fixed(0.5))
		assert.NoError(t, s.Submit(ctx, contactform.Submission{}))
	})

	t.Run("fails at or above the success rate", func(t *testing.T) {
		t.Parallel()
		s := contactform.NewSimulatedSubmitter(0, 0.9, fixed(0.9))
		assert.ErrorIs(t, s.Submit(ctx, contactform.Submission{}), contactform.ErrSimulatedNetwork)
	})

	t.Run("waits for the delay", func(t *testing.T) {
		t.Parallel()
		s := contactform.NewSimulatedSubmitter(20*time.Millisecond, 1, fixed(0))
		start := time.Now()
		require.NoError(t, s.Submit(ctx, contactform.Submission{}))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		t.Parallel()
		s := contactform.NewSimulatedSubmitter(time.Hour, 1)
		ctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, s.Submit(ctx, contactform.Submission{}), context.DeadlineExceeded)
	})
}

func TestThrottledSubmitter(t *testing.T) {
	t.Parallel()

	calls := 0
	next := contactform.SubmitterFunc(func(context.Context, contactform.Submission) error {
		calls++
		return nil
	})
	s := contactform.NewThrottledSubmitter(next, 0.001, 2)

	ctx := context.Background()
	require.NoError(t, s.Submit(ctx, contactform.Submission{}))
	require.NoError(t, s.Submit(ctx, contactform.Submission{}))
	assert.ErrorIs(t, s.Submit(ctx, contactform.Submission{}), contactform.ErrThrottled)
	assert.Equal(t, 2, calls)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	return m.Called(ctx, params).Error(0)
}

func TestEmailSubmitter(t *testing.T) {
	t.Parallel()

	sub := contactform.Submission{
		Name:        "John <b>Doe</b>",
		Email:       "john.doe@example.com",
		Subject:     "Test Subject",
		Message:     "Hello & goodbye",
		SubmittedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	t.Run("requires an inbox", func(t *testing.T) {
		t.Parallel()
		_, err := contactform.NewEmailSubmitter(new(mockSender), " ")
		assert.ErrorIs(t, err, contactform.ErrMissingInbox)
	})

	t.Run("sends to the inbox with the visitor as reply-to", func(t *testing.T) {
		t.Parallel()
		sender := new(mockSender)
		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return p.SendTo == "inbox@example.com" &&
				p.ReplyTo == "john.doe@example.com" &&
				p.Subject == "Contact form: Test Subject" &&
				p.Tag == "contact-form"
		})).Return(nil).Run(func(args mock.Arguments) {
			p := args.Get(1).(email.SendEmailParams)
			assert.Contains(t, p.BodyHTML, "John &lt;b&gt;Doe&lt;/b&gt;")
			assert.Contains(t, p.BodyHTML, "Hello &amp; goodbye")
			assert.Contains(t, p.BodyHTML, "not provided")
			assert.Contains(t, p.BodyHTML, "2024-01-01 12:00:00 UTC")
		})

		s, err := contactform.NewEmailSubmitter(sender, "inbox@example.com")
		require.NoError(t, err)
		require.NoError(t, s.Submit(context.Background(), sub))
		sender.AssertExpectations(t)
	})

	t.Run("propagates delivery errors", func(t *testing.T) {
		t.Parallel()
		boom := errors.Join(email.ErrFailedToSendEmail, errors.New("boom"))
		sender := new(mockSender)
		sender.On("SendEmail", mock.Anything, mock.Anything).Return(boom)

		s, err := contactform.NewEmailSubmitter(sender, "inbox@example.com")
		require.NoError(t, err)
		assert.ErrorIs(t, s.Submit(context.Background(), sub), email.ErrFailedToSendEmail)
	})
}
