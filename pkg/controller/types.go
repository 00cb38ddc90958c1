// Package controller turns terminal lines into either commands or moves and
// runs each move against the board as one serialized gesture sequence.
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/corentings/chess/v2"
	"github.com/entrhq/tilted/pkg/board"
	"github.com/entrhq/tilted/pkg/browser"
	"github.com/entrhq/tilted/pkg/uci"
)

var (
	// ErrNoSession is returned when no live browser session is attached.
	ErrNoSession = errors.New("controller: browser session lost")

	// ErrNotBoardPage is returned when the tab is not on a board page.
	ErrNotBoardPage = errors.New("controller: tab is not a board page")

	// ErrReconnectUnavailable is returned when no reconnect function was given.
	ErrReconnectUnavailable = errors.New("controller: reconnect not available")
)

// Board is the website capability the controller drives.
type Board interface {
	Locate(ctx context.Context, sq chess.Square) (board.Point, error)
	Drag(ctx context.Context, from, to board.Point) error
	Promote(ctx context.Context, piece chess.PieceType, color chess.Color) error
	Snapshot(ctx context.Context) (board.Highlight, error)
	Confirm(ctx context.Context, m uci.Move, before board.Highlight) error
	Orientation(ctx context.Context) (board.Orientation, error)
	Inspect(ctx context.Context) (*board.Inspection, error)
}

// Session is the browser handle the controller owns.
type Session interface {
	Alive(ctx context.Context) bool
	URL() string
	BringToFront(ctx context.Context) error
	Info() browser.Info
}

// PageMatcher recognises board page URLs.
type PageMatcher interface {
	Match(url string) bool
}

// ReconnectFunc relaunches the browser and returns the new session and board.
type ReconnectFunc func(ctx context.Context) (Session, Board, error)

// Kind classifies a Result for display.
type Kind int

const (
	KindNone Kind = iota
	KindInfo
	KindMove
	KindInputError
	KindAutomationError
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindMove:
		return "move"
	case KindInputError:
		return "input error"
	case KindAutomationError:
		return "automation error"
	case KindQuit:
		return "quit"
	default:
		return "none"
	}
}

// Result is the outcome of one terminal line.
type Result struct {
	Kind    Kind
	Message string

	// Detail is extra output, JSON when DetailJSON is set
	Detail     string
	DetailJSON bool

	// Move is set for KindMove
	Move uci.Move

	// Err is the underlying error for error kinds
	Err error

	Elapsed time.Duration
}

// IsError reports whether the result is an input or automation error.
func (r Result) IsError() bool {
	return r.Kind == KindInputError || r.Kind == KindAutomationError
}

var (
	_ Session = (*browser.Session)(nil)
	_ Board   = (*board.ChessCom)(nil)
)
