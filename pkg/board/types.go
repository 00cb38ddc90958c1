// Package board plays moves on the chess.com web board by locating squares
// on screen and synthesising pointer drags over a browser Surface.
package board

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrBoardNotFound is returned when no selector matches a visible board.
	ErrBoardNotFound = errors.New("board: board element not found")

	// ErrSquareNotFound is returned for a square that cannot be placed on the board.
	ErrSquareNotFound = errors.New("board: square not found")

	// ErrMoveNotConfirmed is returned when the board never shows the move as played.
	ErrMoveNotConfirmed = errors.New("board: move not confirmed")

	// ErrPromotionFailed is returned when the promotion piece could not be chosen.
	ErrPromotionFailed = errors.New("board: promotion piece not selected")
)

// Surface is the slice of a browser tab the board needs.
type Surface interface {
	Evaluate(ctx context.Context, script string, arg any) (any, error)
	MouseMove(ctx context.Context, x, y float64, steps int) error
	MouseDown(ctx context.Context) error
	MouseUp(ctx context.Context) error
	Click(ctx context.Context, selector string, timeout time.Duration) error
	URL() string
}

// Orientation says which side is drawn at the bottom of the board.
type Orientation int

const (
	WhiteBottom Orientation = iota
	BlackBottom
)

// How an orientation was decided, as reported by Geometry and Inspect.
const (
	MethodConfigured = "configured"
	MethodClass      = "css-class"
	MethodLabels     = "coordinate-labels"
	MethodDefault    = "default"
)

func (o Orientation) String() string {
	if o == BlackBottom {
		return "black"
	}
	return "white"
}

// Point is a viewport coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Options tune how moves are played.
type Options struct {
	// Selectors are tried in order to find the board element
	Selectors []string

	// DragSteps is the number of intermediate pointer moves
	DragSteps int

	// PromotionTimeout bounds the wait for the promotion window
	PromotionTimeout time.Duration

	// ConfirmMoves requires the last-move highlight before a move counts
	ConfirmMoves bool

	// ConfirmTimeout bounds the wait for the highlight
	ConfirmTimeout time.Duration

	// Orientation is "auto", "white" or "black"
	Orientation string
}

// Default values
const (
	DefaultDragSteps        = 3
	DefaultPromotionTimeout = 2 * time.Second
	DefaultConfirmTimeout   = 1500 * time.Millisecond

	// Pauses that let the site's pointer handlers register each phase.
	hoverPause   = 30 * time.Millisecond
	pressPause   = 50 * time.Millisecond
	stepPause    = 10 * time.Millisecond
	releasePause = 150 * time.Millisecond

	confirmPollInterval = 50 * time.Millisecond
)

// DefaultSelectors match the board on the variants and standard pages.
var DefaultSelectors = []string{
	".TheBoard-squares",
	`[class*="Board-squares"]`,
	".board",
	`[class*="board"]`,
}

func (o Options) withDefaults() Options {
	if len(o.Selectors) == 0 {
		o.Selectors = DefaultSelectors
	}
	if o.DragSteps < 1 {
		o.DragSteps = DefaultDragSteps
	}
	if o.PromotionTimeout <= 0 {
		o.PromotionTimeout = DefaultPromotionTimeout
	}
	if o.ConfirmTimeout <= 0 {
		o.ConfirmTimeout = DefaultConfirmTimeout
	}
	if o.Orientation == "" {
		o.Orientation = "auto"
	}
	return o
}
