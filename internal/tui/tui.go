// Package tui is a terminal reader for markdown files. Known terms are
// highlighted; moving the cursor onto one asks the overlay engine for an
// explanation and draws it next to the term.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/termlens/internal/overlay"
)

// Config wires a reader.
type Config struct {
	Title     string
	Document  *Document
	Explainer overlay.Explainer
	Options   overlay.Options
	Logger    *slog.Logger
	// ProgramOptions are appended after tea.WithAltScreen.
	ProgramOptions []tea.ProgramOption
}

// Run opens the reader and blocks until the user quits or ctx is done.
func Run(ctx context.Context, cfg Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	surface := NewSurface()
	session, err := overlay.New(overlay.Config{
		Options:   cfg.Options,
		Explainer: cfg.Explainer,
		Surface:   surface,
		Logger:    cfg.Logger,
	})
	if err != nil {
		return err
	}

	model := NewModel(cfg.Title, cfg.Document, session, surface)
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, cfg.ProgramOptions...)
	p := tea.NewProgram(model, opts...)
	surface.Attach(p.Send)

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		_ = session.Run(ctx)
	}()

	_, err = p.Run()
	cancel()
	<-runDone
	surface.Close()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// Options adapts overlay options to terminal cells: the tooltip sits
// directly next to the term and one cell from the screen edges.
func Options(opts overlay.Options) overlay.Options {
	opts.TooltipOffset = 0
	opts.Margin = 1
	return opts
}
