package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrymomot/contactform/svc/contactform"
)

// View renders the form, or the thank-you panel after a successful submission.
func (m Model) View() string {
	var sections []string
	sections = append(sections, titleStyle.Render("Contact us"))

	if m.snap.Banner != "" {
		sections = append(sections, bannerStyle.Render(m.snap.Banner+"  "+dimStyle.Render("esc")))
	}

	if m.snap.SuccessVisible {
		sections = append(sections, successStyle.Render("Thank you!\nYour message has been sent."))
	}
	if m.snap.FormVisible {
		for i, f := range contactform.Fields {
			sections = append(sections, m.viewField(f, m.focus == i))
		}
		sections = append(sections, m.viewButton())
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(m.err.Error()))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewField(f contactform.Field, focused bool) string {
	label := labelStyle.Render(f.Label())
	if f.Required() {
		label += errorStyle.Render(" *")
	}

	if f == contactform.FieldNewsletter {
		box := "[ ]"
		if m.snap.Subscribed() {
			box = "[x]"
		}
		line := box + " " + f.Label()
		if focused {
			return labelStyle.Foreground(colorAccent).Render(line)
		}
		return line
	}

	var editor string
	if f == contactform.FieldMessage {
		editor = m.message.View()
	} else {
		editor = m.inputs[f].View()
	}
	lines := []string{label, fieldBorder(m.snap.Styles[f], focused).Render(editor)}

	if f == contactform.FieldMessage {
		lines = append(lines, counterStyle(m.snap.Count.Level).Render(m.snap.Count.String()))
	}
	if msg := m.snap.Errors[f]; msg != "" {
		lines = append(lines, errorStyle.Render(msg))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewButton() string {
	label := "Send message"
	if m.snap.Submitting() {
		label = m.spinner.View() + " Sending..."
	}
	return buttonStyle(m.focus == submitSlot, m.snap.Submitting()).Render(label)
}
