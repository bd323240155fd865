package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/nepalqubit/contact-qr-generator/internal/session"
)

// ErrNotTerminal is returned by Run when the output is not a terminal.
var ErrNotTerminal = errors.New("tui: output is not a terminal")

// RunOptions configures Run.
type RunOptions struct {
	Input     io.Reader // Key input (default: stdin).
	Output    io.Writer // Output destination (default: os.Stdout).
	AltScreen bool      // Use the alternate screen buffer.
}

// Run shows the form for s and blocks until the user quits or ctx ends.
func Run(ctx context.Context, s *session.Session, opts RunOptions) error {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if !isTTY(opts.Output) {
		return ErrNotTerminal
	}

	progOpts := []tea.ProgramOption{tea.WithOutput(opts.Output), tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(NewModel(s, WithContext(ctx)), progOpts...)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
