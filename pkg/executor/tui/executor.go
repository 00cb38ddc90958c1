// Package tui provides the interactive Bubble Tea front-end. It shows the
// move history in a scrolling viewport above a single-line input and runs
// each submitted line through the controller off the UI goroutine.
//
// The package is split into:
// - executor.go: program lifecycle
// - model.go: model state and messages
// - update.go: Bubble Tea Update function and message handling
// - view.go: Bubble Tea View function and rendering
// - styles.go: container styles
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/tilted/pkg/controller"
	"github.com/entrhq/tilted/pkg/logging"
	"github.com/entrhq/tilted/pkg/ui"
)

// Handler processes one terminal line.
type Handler interface {
	Handle(ctx context.Context, line string) controller.Result
}

// Executor runs the TUI until the user quits.
type Executor struct {
	handler Handler
	painter ui.Painter
	style   string
	version string
	logger  *logging.Logger
	options []tea.ProgramOption
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithHighlightStyle sets the chroma style for JSON output.
func WithHighlightStyle(style string) ExecutorOption {
	return func(e *Executor) {
		e.style = style
	}
}

// WithVersion sets the version shown in the tips line.
func WithVersion(version string) ExecutorOption {
	return func(e *Executor) {
		e.version = version
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithProgramOptions appends Bubble Tea program options.
func WithProgramOptions(opts ...tea.ProgramOption) ExecutorOption {
	return func(e *Executor) {
		e.options = append(e.options, opts...)
	}
}

// NewExecutor creates a new TUI executor for the given handler. The TUI
// always renders in color.
func NewExecutor(handler Handler, opts ...ExecutorOption) *Executor {
	e := &Executor{
		handler: handler,
		painter: ui.NewPainter(true),
		style:   ui.DefaultHighlightStyle,
		version: "dev",
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run starts the program and blocks until the user exits or ctx is done.
func (e *Executor) Run(ctx context.Context) error {
	m := newModel(ctx, e.handler, e.painter, e.style, e.version)
	m.logger = e.logger

	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}, e.options...)

	e.logger.Debugf("starting TUI")
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to run TUI program: %w", err)
	}
	return nil
}
