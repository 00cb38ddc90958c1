package controller

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/entrhq/tilted/pkg/board"
	"github.com/entrhq/tilted/pkg/logging"
	"github.com/entrhq/tilted/pkg/uci"
)

// Controller owns the browser session and runs one line at a time.
type Controller struct {
	mu      sync.Mutex
	session Session
	board   Board

	pages       PageMatcher
	requirePage bool
	reconnect   ReconnectFunc
	clipboard   func(string) error
	logger      *logging.Logger

	// played holds confirmed moves in order
	played []uci.Move
}

// Option configures a Controller.
type Option func(*Controller)

// WithPageMatcher rejects moves when the tab is not a board page and require
// is set; the matcher is also used for status output.
func WithPageMatcher(m PageMatcher, require bool) Option {
	return func(c *Controller) {
		c.pages = m
		c.requirePage = require
	}
}

// WithReconnect enables the reconnect command.
func WithReconnect(fn ReconnectFunc) Option {
	return func(c *Controller) {
		c.reconnect = fn
	}
}

// WithClipboard sets the writer used by `debug copy`; nil disables copying.
func WithClipboard(fn func(string) error) Option {
	return func(c *Controller) {
		c.clipboard = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a controller for session and b.
func New(session Session, b Board, opts ...Option) *Controller {
	c := &Controller{
		session: session,
		board:   b,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Handle processes one terminal line. Commands are matched before the line
// is treated as a move.
func (c *Controller) Handle(ctx context.Context, line string) Result {
	line = strings.TrimSpace(line)
	if line == "" {
		return Result{Kind: KindNone}
	}

	fields := strings.Fields(line)
	if cmd, ok := lookupCommand(fields[0]); ok {
		return c.runCommand(ctx, cmd, fields[1:])
	}

	move, err := uci.Parse(line)
	if err != nil {
		c.logger.Debugf("rejected input %q: %v", line, err)
		return Result{Kind: KindInputError, Message: err.Error(), Err: err}
	}
	return c.Play(ctx, move)
}

func (c *Controller) runCommand(ctx context.Context, cmd *Command, args []string) Result {
	if len(args) < cmd.MinArgs || (cmd.MaxArgs != -1 && len(args) > cmd.MaxArgs) {
		return Result{Kind: KindInputError, Message: "usage: " + cmd.usage()}
	}
	c.logger.Debugf("command %s %v", cmd.Name, args)
	return cmd.Handler(ctx, c, args)
}

// Play executes m on the board: locate both squares, snapshot the last-move
// highlight, drag, promote when needed, then confirm against the snapshot.
// Any failure is an automation error; nothing retries. Played moves are
// recorded for the movelist command.
func (c *Controller) Play(ctx context.Context, m uci.Move) Result {
	start := time.Now()

	err := c.withSession(ctx, true, func(_ Session, b Board) error {
		from, err := b.Locate(ctx, m.Source)
		if err != nil {
			return fmt.Errorf("locate %s: %w", uci.SquareName(m.Source), err)
		}
		to, err := b.Locate(ctx, m.Destination)
		if err != nil {
			return fmt.Errorf("locate %s: %w", uci.SquareName(m.Destination), err)
		}

		before, err := b.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}

		if err := b.Drag(ctx, from, to); err != nil {
			return fmt.Errorf("drag: %w", err)
		}

		if m.HasPromotion() {
			if err := b.Promote(ctx, m.Promotion, board.PromotionColor(m.Destination)); err != nil {
				return fmt.Errorf("promote: %w", err)
			}
		}

		if err := b.Confirm(ctx, m, before); err != nil {
			return fmt.Errorf("confirm: %w", err)
		}
		c.played = append(c.played, m)
		return nil
	})

	elapsed := time.Since(start)
	if err != nil {
		r := c.automationError("failed to execute move "+m.String(), err)
		r.Move = m
		r.Elapsed = elapsed
		return r
	}

	c.logger.Infof("played %s in %v", m, elapsed)
	return Result{
		Kind:    KindMove,
		Message: "Played " + m.Describe(),
		Move:    m,
		Elapsed: elapsed,
	}
}

// withSession runs fn while holding the session, after checking it is
// alive and, when checkPage is set, on a board page.
func (c *Controller) withSession(ctx context.Context, checkPage bool, fn func(Session, Board) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil || c.board == nil || !c.session.Alive(ctx) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrNoSession
	}

	if checkPage && c.requirePage && c.pages != nil {
		if url := c.session.URL(); !c.pages.Match(url) {
			return fmt.Errorf("%w: %s", ErrNotBoardPage, url)
		}
	}

	return fn(c.session, c.board)
}

func (c *Controller) automationError(message string, err error) Result {
	c.logger.Errorf("%s: %v", message, err)
	if errors.Is(err, ErrNoSession) {
		message += " (type 'reconnect' to relaunch the browser)"
	}
	return Result{Kind: KindAutomationError, Message: message, Err: err}
}

// Played returns the moves played so far, oldest first.
func (c *Controller) Played() []uci.Move {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.played)
}

// SessionAlive reports whether the current session answers.
func (c *Controller) SessionAlive(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil && c.session.Alive(ctx)
}
