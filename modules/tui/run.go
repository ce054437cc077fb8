package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrymomot/contactform/svc/contactform"
)

// Run shows the form on out, reading keys from in, until ctrl+c or ctx is done.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts ...contactform.Option) error {
	m := NewModel(opts...)
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	return errors.Join(err, m.Close())
}
