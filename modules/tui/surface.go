package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrymomot/contactform/svc/contactform"
)

// changedMsg reports that the controller updated its surface.
type changedMsg struct{}

// notifySurface coalesces surface updates into one pending wake-up. The model
// reads the state itself from a snapshot.
type notifySurface struct {
	ch chan struct{}
}

func (s notifySurface) notify() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

func (s notifySurface) SetFieldValue(contactform.Field, string) { s.notify() }
func (s notifySurface) SetFieldError(contactform.Field, string) { s.notify() }
func (s notifySurface) SetFieldStyle(contactform.Field, contactform.Style) { s.notify() }
func (s notifySurface) SetCharCount(contactform.CharCount) { s.notify() }
func (s notifySurface) SetSubmitting(bool) { s.notify() }
func (s notifySurface) SetFormVisible(bool) { s.notify() }
func (s notifySurface) SetSuccessVisible(bool) { s.notify() }
func (s notifySurface) ShowBanner(string) { s.notify() }
func (s notifySurface) HideBanner() { s.notify() }

// waitForChange blocks until the controller reports a change.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}
