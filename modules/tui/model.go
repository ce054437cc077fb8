// Package tui runs the contact form in a terminal with Bubble Tea. The
// model owns no form state: it dispatches key presses to a
// contactform.Controller and redraws from its snapshot whenever the
// controller reports a change.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrymomot/contactform/pkg/sanitizer"
	"github.com/dmitrymomot/contactform/svc/contactform"
)

// submitSlot is the focus index of the send button, after every field.
var submitSlot = len(contactform.Fields)

// Model is the Bubble Tea model for the contact form.
type Model struct {
	form    *contactform.Controller
	changes chan struct{}
	snap    contactform.Snapshot

	inputs  map[contactform.Field]textinput.Model
	message textarea.Model
	focus   int

	keys    formKeys
	help    help.Model
	spinner spinner.Model
	err     error
	width   int
}

// NewModel creates a model driving a fresh controller built with opts.
// Call Close when the program exits.
func NewModel(opts ...contactform.Option) Model {
	changes := make(chan struct{}, 1)
	form := contactform.New(notifySurface{ch: changes}, opts...)

	inputs := make(map[contactform.Field]textinput.Model, 4)
	for _, f := range contactform.Fields {
		if f == contactform.FieldMessage || f == contactform.FieldNewsletter {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 48
		switch f {
		case contactform.FieldPhone:
			ti.Placeholder = "(555) 123-4567"
			ti.CharLimit = len("(555) 123-4567")
		case contactform.FieldEmail:
			ti.Placeholder = "you@example.com"
		}
		inputs[f] = ti
	}

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 2 * contactform.MessageMaxLen
	ta.SetWidth(50)
	ta.SetHeight(5)

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		form:    form,
		changes: changes,
		snap:    form.Snapshot(),
		inputs:  inputs,
		message: ta,
		keys:    FormKeyMap(),
		help:    help.New(),
		spinner: s,
	}
	m.setFocus(0)
	return m
}

// Close stops the controller's timers and waits for an outstanding submission.
func (m Model) Close() error {
	return m.form.Close()
}

// Init waits for controller changes and starts the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForChange(m.changes), m.spinner.Tick, textinput.Blink)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		m.refresh()
		return m, waitForChange(m.changes)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Dismiss):
		m.dispatch(contactform.DismissBanner{})
		return m, nil
	case key.Matches(msg, m.keys.FillValid):
		m.dispatch(contactform.Fill{Preset: contactform.PresetValid})
		return m, nil
	case key.Matches(msg, m.keys.FillInvalid):
		m.dispatch(contactform.Fill{Preset: contactform.PresetInvalid})
		return m, nil
	case key.Matches(msg, m.keys.FillSpecial):
		m.dispatch(contactform.Fill{Preset: contactform.PresetSpecial})
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m, m.move(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.move(-1)
	}

	if m.focus == submitSlot {
		if key.Matches(msg, m.keys.Submit) {
			m.dispatch(contactform.Submit{})
		}
		return m, nil
	}
	if !m.editable() {
		return m, nil
	}

	field := contactform.Fields[m.focus]
	switch field {
	case contactform.FieldNewsletter:
		if key.Matches(msg, m.keys.Toggle) {
			m.dispatch(contactform.Input{Field: field, Value: boolValue(!m.snap.Subscribed())})
		}
		return m, nil
	case contactform.FieldMessage:
	default:
		if key.Matches(msg, m.keys.Submit) {
			return m, m.move(1)
		}
	}

	if msg.Paste {
		msg.Runes = []rune(sanitizer.RemoveControlSequences(string(msg.Runes)))
	}
	return m.forward(msg)
}

// forward passes msg to the focused editor and dispatches any value change.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus == submitSlot {
		return m, nil
	}
	field := contactform.Fields[m.focus]

	var cmd tea.Cmd
	var before, after string
	switch field {
	case contactform.FieldNewsletter:
		return m, nil
	case contactform.FieldMessage:
		before = m.message.Value()
		m.message, cmd = m.message.Update(msg)
		after = m.message.Value()
	default:
		ti := m.inputs[field]
		before = ti.Value()
		ti, cmd = ti.Update(msg)
		m.inputs[field] = ti
		after = ti.Value()
	}

	if after == before {
		return m, cmd
	}
	if field == contactform.FieldPhone {
		after = phoneEdit(before, after)
	}
	m.dispatch(contactform.Input{Field: field, Value: after})
	return m, cmd
}

// phoneEdit makes deleting a formatting character remove the digit before it.
// Otherwise reformatting would restore the character and the edit would be lost.
func phoneEdit(before, after string) string {
	if len(after) >= len(before) || contactform.FormatPhone(after) != before {
		return after
	}
	digits := sanitizer.KeepDigits(after)
	if digits == "" {
		return ""
	}
	return digits[:len(digits)-1]
}

// move shifts focus by delta, blurring the field being left.
func (m *Model) move(delta int) tea.Cmd {
	if m.focus < submitSlot {
		if f := contactform.Fields[m.focus]; f.Validated() {
			m.dispatch(contactform.Blur{Field: f})
		}
	}
	n := submitSlot + 1
	return m.setFocus(((m.focus+delta)%n + n) % n)
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmds []tea.Cmd
	for f, ti := range m.inputs {
		if i < submitSlot && contactform.Fields[i] == f {
			cmds = append(cmds, ti.Focus())
		} else {
			ti.Blur()
		}
		m.inputs[f] = ti
	}
	if i < submitSlot && contactform.Fields[i] == contactform.FieldMessage {
		cmds = append(cmds, m.message.Focus())
	} else {
		m.message.Blur()
	}
	return tea.Batch(cmds...)
}

// dispatch applies ev and redraws from the new snapshot straight away.
func (m *Model) dispatch(ev contactform.Event) {
	m.err = m.form.Dispatch(context.Background(), ev)
	m.refresh()
}

// refresh copies controller values the user did not type (formatting,
// presets, reset) into the editors.
func (m *Model) refresh() {
	m.snap = m.form.Snapshot()
	for f, ti := range m.inputs {
		if v := m.snap.Value(f); ti.Value() != v {
			ti.SetValue(v)
			ti.CursorEnd()
			m.inputs[f] = ti
		}
	}
	if v := m.snap.Value(contactform.FieldMessage); m.message.Value() != v {
		m.message.SetValue(v)
	}
}

// editable reports whether the form accepts edits.
func (m Model) editable() bool {
	return m.snap.FormVisible && !m.snap.Submitting()
}

// Snapshot returns the state last drawn.
func (m Model) Snapshot() contactform.Snapshot {
	return m.snap
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
