package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/entrhq/tilted/pkg/controller"
	"github.com/entrhq/tilted/pkg/logging"
	"github.com/entrhq/tilted/pkg/ui"
)

const (
	statusSuccess        = "success"
	statusFailed         = "failed"
	statusPartialSuccess = "partial_success"
	statusCancelled      = "cancelled"
)

// ErrScriptFailed is returned when at least one line was rejected or failed.
var ErrScriptFailed = errors.New("headless: script did not complete cleanly")

// Handler processes one line.
type Handler interface {
	Handle(ctx context.Context, line string) controller.Result
}

// Executor plays a Config's moves through a Handler.
type Executor struct {
	handler        Handler
	config         *Config
	artifactWriter *ArtifactWriter
	writer         io.Writer
	painter        ui.Painter
	logger         *logging.Logger
	sleep          func(ctx context.Context, d time.Duration) error
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithWriter sets where progress is printed (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithPainter sets how progress is styled.
func WithPainter(p ui.Painter) ExecutorOption {
	return func(e *Executor) {
		e.painter = p
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// NewExecutor creates a headless executor for a validated config.
func NewExecutor(handler Handler, config *Config, opts ...ExecutorOption) (*Executor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	e := &Executor{
		handler: handler,
		config:  config,
		writer:  os.Stdout,
		painter: ui.NewPainter(false),
		logger:  logging.Nop(),
		sleep:   sleepContext,
	}
	if config.Artifacts.Enabled {
		e.artifactWriter = NewArtifactWriter(config.Artifacts.OutputDir)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run plays every line and returns the summary. The error is
// ErrScriptFailed when a line failed, ctx.Err() on cancellation, or an
// artifact write failure.
func (e *Executor) Run(ctx context.Context) (*ExecutionSummary, error) {
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	summary := &ExecutionSummary{
		StartTime: time.Now(),
		Total:     len(e.config.Moves),
	}
	e.logger.Infof("playing script of %d lines", summary.Total)

	runErr := e.play(ctx, summary)

	summary.EndTime = time.Now()
	summary.Duration = summary.EndTime.Sub(summary.StartTime).Round(time.Millisecond).String()
	summary.Status = e.status(summary, runErr)
	if runErr != nil {
		summary.Error = runErr.Error()
	}

	if e.artifactWriter != nil {
		if err := e.artifactWriter.WriteAll(summary); err != nil {
			return summary, fmt.Errorf("failed to write artifacts: %w", err)
		}
		e.logger.Infof("artifacts written to %s", e.artifactWriter.outputDir)
	}

	if runErr != nil {
		return summary, runErr
	}
	if summary.Failed > 0 {
		return summary, ErrScriptFailed
	}
	return summary, nil
}

func (e *Executor) play(ctx context.Context, summary *ExecutionSummary) error {
	for i, line := range e.config.Moves {
		if i > 0 && e.config.Delay > 0 {
			if err := e.sleep(ctx, e.config.Delay); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(e.writer, "%s%s\n", e.painter.Paint(ui.PromptStyle, fmt.Sprintf("[%d/%d] ", i+1, summary.Total)), line)
		result := e.handler.Handle(ctx, line)
		if out := ui.FormatResult(result, e.painter, ui.DefaultHighlightStyle); out != "" {
			fmt.Fprintln(e.writer, out)
		}

		summary.record(line, result)

		if result.Kind == controller.KindQuit {
			e.logger.Infof("script quit at line %d", i+1)
			return nil
		}
		if result.IsError() && e.config.StopOnError {
			e.logger.Warnf("stopping at line %d: %s", i+1, result.Message)
			return nil
		}
	}
	return nil
}

func (e *Executor) status(summary *ExecutionSummary, runErr error) string {
	switch {
	case runErr != nil && errors.Is(runErr, context.Canceled):
		return statusCancelled
	case runErr != nil:
		return statusFailed
	case summary.Failed == 0:
		return statusSuccess
	case summary.Played > 0:
		return statusPartialSuccess
	default:
		return statusFailed
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
