// Package tui holds Momentum's terminal interfaces.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures Run.
type Options struct {
	In  io.Reader
	Out io.Writer
	// Inline renders in the normal screen instead of the alternate one.
	Inline bool
	// Headless disables the renderer, for tests and piped output.
	Headless bool
}

// Run drives m until it quits or ctx is cancelled. Cancellation is not
// reported as an error.
func Run(ctx context.Context, m tea.Model, opts Options) (tea.Model, error) {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.In != nil {
		progOpts = append(progOpts, tea.WithInput(opts.In))
	}
	if opts.Out != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Out))
	}
	if !opts.Inline && !opts.Headless {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Headless {
		progOpts = append(progOpts, tea.WithoutRenderer())
	}

	final, err := tea.NewProgram(m, progOpts...).Run()
	if err != nil {
		if ctx.Err() != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled)) {
			return final, nil
		}
		return final, fmt.Errorf("run terminal ui: %w", err)
	}
	return final, nil
}
