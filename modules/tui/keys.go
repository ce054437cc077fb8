package tui

import "github.com/charmbracelet/bubbles/key"

// formKeys holds the bindings that act on the form rather than the focused input.
type formKeys struct {
	Next        key.Binding
	Prev        key.Binding
	Toggle      key.Binding
	Submit      key.Binding
	Dismiss     key.Binding
	FillValid   key.Binding
	FillInvalid key.Binding
	FillSpecial key.Binding
	Quit        key.Binding
}

// ShortHelp returns the bindings shown in the help bar.
func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Toggle, k.Submit, k.Dismiss, k.Quit}
}

// FullHelp returns every binding grouped for expanded help.
func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Toggle, k.Submit},
		{k.FillValid, k.FillInvalid, k.FillSpecial},
		{k.Dismiss, k.Quit},
	}
}

// FormKeyMap returns the default key bindings.
func FormKeyMap() formKeys {
	return formKeys{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle newsletter"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		FillValid: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "fill valid"),
		),
		FillInvalid: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "fill invalid"),
		),
		FillSpecial: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "fill special"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
