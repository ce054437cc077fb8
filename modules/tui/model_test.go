package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/scheduler"
	"github.com/dmitrymomot/contactform/svc/contactform"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, sub contactform.Submitter) (Model, *scheduler.Manual) {
	t.Helper()
	sched := scheduler.NewManual(epoch)
	if sub == nil {
		sub = contactform.SubmitterFunc(func(context.Context, contactform.Submission) error { return nil })
	}
	m := NewModel(
		contactform.WithScheduler(sched),
		contactform.WithSubmitter(sub),
		contactform.WithLogger(logger.Discard()),
	)
	t.Cleanup(func() { _ = m.Close() })
	return m, sched
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func focusOn(m Model, f contactform.Field) Model {
	for m.focus < submitSlot && contactform.Fields[m.focus] != f {
		m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	return m
}

func TestModel_Typing(t *testing.T) {
	t.Parallel()

	t.Run("input goes to the focused field", func(t *testing.T) {
		t.Parallel()
		m, _ := newTestModel(t, nil)

		m = typeText(m, "Jo")
		assert.Equal(t, "Jo", m.Snapshot().Value(contactform.FieldName))
		assert.Equal(t, "Jo", m.inputs[contactform.FieldName].Value())
	})

	t.Run("phone is formatted as typed", func(t *testing.T) {
		t.Parallel()
		m, _ := newTestModel(t, nil)

		m = focusOn(m, contactform.FieldPhone)
		m = typeText(m, "5551234567")
		assert.Equal(t, "(555) 123-4567", m.Snapshot().Value(contactform.FieldPhone))
		assert.Equal(t, "(555) 123-4567", m.inputs[contactform.FieldPhone].Value())
	})

	t.Run("backspace over formatting removes a digit", func(t *testing.T) {
		t.Parallel()
		m, _ := newTestModel(t, nil)

		m = focusOn(m, contactform.FieldPhone)
		m = typeText(m, "555")
		require.Equal(t, "(555) ", m.Snapshot().Value(contactform.FieldPhone))

		m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
		assert.Equal(t, "55", m.Snapshot().Value(contactform.FieldPhone))
	})

	t.Run("message updates the counter", func(t *testing.T) {
		t.Parallel()
		m, _ := newTestModel(t, nil)

		m = focusOn(m, contactform.FieldMessage)
		m = typeText(m, "hello")
		assert.Equal(t, "5/500 characters", m.Snapshot().Count.String())
		assert.Contains(t, m.View(), "5/500 characters")
	})

	t.Run("pasted escape sequences are stripped", func(t *testing.T) {
		t.Parallel()
		m, _ := newTestModel(t, nil)

		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Jo\x1b[31mhn"), Paste: true})
		assert.Equal(t, "John", m.Snapshot().Value(contactform.FieldName))
	})
}

func TestModel_Focus(t *testing.T) {
	t.Parallel()

	t.Run("leaving a field validates it", func(t *testing.T) {
		t.Parallel()
		m, _ := newTestModel(t, nil)

		m = typeText(m, "J")
		assert.Empty(t, m.Snapshot().Errors[contactform.FieldName])

		m = send(m, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, 1, m.focus)
		assert.Equal(t, contactform.MsgNameTooShort, m.Snapshot().Errors[contactform.FieldName])
		assert.Contains(t, m.View(), contactform.MsgNameTooShort)
	})

	t.Run("shift+tab wraps to the send button", func(t *testing.T) {
		t.Parallel()
		m, _ := newTestModel(t, nil)

		m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
		assert.Equal(t, submitSlot, m.focus)
		m = send(m, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, 0, m.focus)
	})

	t.Run("enter in a single line field moves on", func(t *testing.T) {
		t.Parallel()
		m, _ := newTestModel(t, nil)

		m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, 1, m.focus)
	})
}

func TestModel_Newsletter(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, nil)

	m = focusOn(m, contactform.FieldNewsletter)
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	m = send(m, space)
	assert.True(t, m.Snapshot().Subscribed())
	assert.Contains(t, m.View(), "[x]")

	m = send(m, space)
	assert.False(t, m.Snapshot().Subscribed())
	assert.Contains(t, m.View(), "[ ]")
}

func TestModel_Submit(t *testing.T) {
	t.Parallel()

	t.Run("invalid form shows the banner until dismissed", func(t *testing.T) {
		t.Parallel()
		m, _ := newTestModel(t, nil)

		m = send(m, tea.KeyMsg{Type: tea.KeyCtrlX})
		m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyEnter})

		snap := m.Snapshot()
		assert.Equal(t, contactform.MsgCorrectErrors, snap.Banner)
		assert.Equal(t, contactform.MsgEmailInvalid, snap.Errors[contactform.FieldEmail])
		assert.Contains(t, m.View(), contactform.MsgCorrectErrors)

		m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
		assert.Empty(t, m.Snapshot().Banner)
	})

	t.Run("valid form is sent and reset", func(t *testing.T) {
		t.Parallel()
		m, sched := newTestModel(t, nil)

		m = send(m, tea.KeyMsg{Type: tea.KeyCtrlF})
		assert.Equal(t, "John Doe", m.Snapshot().Value(contactform.FieldName))
		assert.Equal(t, "John Doe", m.inputs[contactform.FieldName].Value())

		m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyEnter})
		m.form.Wait()
		m = send(m, changedMsg{})

		snap := m.Snapshot()
		assert.Equal(t, contactform.StatusSuccess, snap.Status)
		assert.True(t, snap.SuccessVisible)
		assert.False(t, snap.FormVisible)
		assert.Contains(t, m.View(), "Thank you!")

		sched.Advance(5 * time.Second)
		m = send(m, changedMsg{})
		assert.True(t, m.Snapshot().FormVisible)
		assert.Empty(t, m.Snapshot().Value(contactform.FieldName))
		assert.Empty(t, m.inputs[contactform.FieldName].Value())
	})

	t.Run("edits are ignored while sending", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		m, _ := newTestModel(t, contactform.SubmitterFunc(func(ctx context.Context, _ contactform.Submission) error {
			select {
			case <-release:
			case <-ctx.Done():
			}
			return nil
		}))
		t.Cleanup(func() { close(release) })

		m = send(m, tea.KeyMsg{Type: tea.KeyCtrlF})
		m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyEnter})
		require.True(t, m.Snapshot().Submitting())
		assert.Contains(t, m.View(), "Sending...")

		m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		assert.False(t, m.Snapshot().Subscribed())

		m = send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
		assert.ErrorIs(t, m.err, contactform.ErrSubmissionInProgress)
	})
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok, "ctrl+c should quit")
}

func TestPhoneEdit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{"typing passes through", "(555) ", "(555) 1", "(555) 1"},
		{"deleting a digit passes through", "(555) 12", "(555) 1", "(555) 1"},
		{"deleting the group space drops a digit", "(555) ", "(555)", "55"},
		{"deleting the dash drops a digit", "(555) 123-", "(555) 123", "55512"},
		{"clearing", "1", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, phoneEdit(tt.before, tt.after))
		})
	}
}
