// Package cli provides the line-based terminal executor: it prints a prompt,
// reads one line, hands it to the controller and prints the outcome.
//
// Example usage:
//
//	ctrl := controller.New(session, chessBoard)
//	executor := cli.NewExecutor(ctrl,
//	    cli.WithPainter(ui.NewPainter(true)),
//	)
//
//	if err := executor.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/entrhq/tilted/pkg/controller"
	"github.com/entrhq/tilted/pkg/logging"
	"github.com/entrhq/tilted/pkg/ui"
)

// Prompt is printed before every line read.
const Prompt = "> "

// Handler processes one terminal line.
type Handler interface {
	Handle(ctx context.Context, line string) controller.Result
}

// Executor runs the read-handle-print loop.
type Executor struct {
	handler Handler
	reader  io.Reader
	writer  io.Writer

	painter ui.Painter
	style   string
	banner  string
	logger  *logging.Logger
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithWriter sets a custom output writer (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithReader sets a custom input reader (default is os.Stdin).
func WithReader(r io.Reader) ExecutorOption {
	return func(e *Executor) {
		e.reader = r
	}
}

// WithPainter sets how output is styled.
func WithPainter(p ui.Painter) ExecutorOption {
	return func(e *Executor) {
		e.painter = p
	}
}

// WithHighlightStyle sets the chroma style for JSON output.
func WithHighlightStyle(style string) ExecutorOption {
	return func(e *Executor) {
		e.style = style
	}
}

// WithBanner sets text printed once before the first prompt.
func WithBanner(banner string) ExecutorOption {
	return func(e *Executor) {
		e.banner = banner
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// NewExecutor creates a new CLI executor for the given handler.
func NewExecutor(handler Handler, opts ...ExecutorOption) *Executor {
	e := &Executor{
		handler: handler,
		reader:  os.Stdin,
		writer:  os.Stdout,
		painter: ui.NewPainter(false),
		style:   ui.DefaultHighlightStyle,
		logger:  logging.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run reads lines until quit, end of input or ctx is cancelled. Only a read
// failure is returned as an error; cancellation returns ctx.Err().
func (e *Executor) Run(ctx context.Context) error {
	if e.banner != "" {
		fmt.Fprintln(e.writer, e.banner)
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go e.readLines(ctx, lines, readErr)

	for {
		fmt.Fprint(e.writer, e.painter.Paint(ui.PromptStyle, Prompt))

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(e.writer)
			return ctx.Err()
		case err := <-readErr:
			fmt.Fprintln(e.writer)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			e.logger.Debugf("input closed")
			return nil
		case line = <-lines:
		}

		result := e.handler.Handle(ctx, line)
		if out := ui.FormatResult(result, e.painter, e.style); out != "" {
			fmt.Fprintln(e.writer, out)
		}

		if result.Kind == controller.KindQuit {
			return nil
		}
	}
}

// readLines feeds lines until EOF, then reports nil on readErr.
func (e *Executor) readLines(ctx context.Context, lines chan<- string, readErr chan<- error) {
	scanner := bufio.NewScanner(e.reader)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	readErr <- scanner.Err()
}
