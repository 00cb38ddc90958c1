package board

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corentings/chess/v2"
	"github.com/entrhq/tilted/pkg/logging"
	"github.com/entrhq/tilted/pkg/uci"
)

// ChessCom plays moves on chess.com through a Surface.
type ChessCom struct {
	surface Surface
	opts    Options
	logger  *logging.Logger
	sleep   func(context.Context, time.Duration) error
}

// NewChessCom creates a chess.com board driver.
func NewChessCom(surface Surface, opts Options, logger *logging.Logger) *ChessCom {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ChessCom{
		surface: surface,
		opts:    opts.withDefaults(),
		logger:  logger,
		sleep:   sleepContext,
	}
}

// Options returns the effective options.
func (c *ChessCom) Options() Options {
	return c.opts
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// decode converts an Evaluate result into out. Results arrive as generic
// maps, so they take one trip through JSON.
func decode(result any, out any) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode page result: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unexpected page result %s: %w", raw, err)
	}
	return nil
}

type locateResult struct {
	Found    bool    `json:"found"`
	Selector string  `json:"selector"`
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Flipped  bool    `json:"flipped"`
	Method   string  `json:"method"`
}

// Geometry reads the board's current position on screen.
func (c *ChessCom) Geometry(ctx context.Context) (Geometry, error) {
	result, err := c.surface.Evaluate(ctx, locateScript, c.opts.Selectors)
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to locate board: %w", err)
	}

	var r locateResult
	if err := decode(result, &r); err != nil {
		return Geometry{}, err
	}
	if !r.Found || r.Width <= 0 || r.Height <= 0 {
		return Geometry{}, fmt.Errorf("%w (tried %d selectors)", ErrBoardNotFound, len(c.opts.Selectors))
	}

	g := Geometry{
		Selector: r.Selector,
		Left:     r.Left,
		Top:      r.Top,
		Width:    r.Width,
		Height:   r.Height,
	}
	g.Orientation, g.OrientationMethod = c.resolveOrientation(r)
	return g, nil
}

// resolveOrientation applies the configured orientation, falling back to
// what the page reported.
func (c *ChessCom) resolveOrientation(r locateResult) (Orientation, string) {
	switch c.opts.Orientation {
	case "white":
		return WhiteBottom, MethodConfigured
	case "black":
		return BlackBottom, MethodConfigured
	}

	method := r.Method
	if method == "" {
		method = MethodDefault
		if r.Flipped {
			method = MethodClass
		}
	}
	if r.Flipped {
		return BlackBottom, method
	}
	return WhiteBottom, method
}

// Orientation reports which side is at the bottom of the board.
func (c *ChessCom) Orientation(ctx context.Context) (Orientation, error) {
	g, err := c.Geometry(ctx)
	if err != nil {
		return WhiteBottom, err
	}
	return g.Orientation, nil
}

// Locate returns the screen centre of sq.
func (c *ChessCom) Locate(ctx context.Context, sq chess.Square) (Point, error) {
	g, err := c.Geometry(ctx)
	if err != nil {
		return Point{}, err
	}
	p, err := g.Center(sq)
	if err != nil {
		return Point{}, err
	}
	c.logger.Debugf("square %s at (%.1f, %.1f) on %s board", uci.SquareName(sq), p.X, p.Y, g.Orientation)
	return p, nil
}

// Drag presses on from, moves to to in interpolated steps and releases.
func (c *ChessCom) Drag(ctx context.Context, from, to Point) error {
	if err := c.surface.MouseMove(ctx, from.X, from.Y, 1); err != nil {
		return err
	}
	if err := c.sleep(ctx, hoverPause); err != nil {
		return err
	}
	if err := c.surface.MouseDown(ctx); err != nil {
		return err
	}

	if err := c.dragTo(ctx, from, to); err != nil {
		// Never leave the button held down on the page.
		_ = c.surface.MouseUp(context.WithoutCancel(ctx))
		return err
	}

	if err := c.surface.MouseUp(ctx); err != nil {
		return err
	}
	return c.sleep(ctx, releasePause)
}

func (c *ChessCom) dragTo(ctx context.Context, from, to Point) error {
	if err := c.sleep(ctx, pressPause); err != nil {
		return err
	}
	steps := c.opts.DragSteps
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := from.X + (to.X-from.X)*t
		y := from.Y + (to.Y-from.Y)*t
		if err := c.surface.MouseMove(ctx, x, y, 1); err != nil {
			return err
		}
		if err := c.sleep(ctx, stepPause); err != nil {
			return err
		}
	}
	return nil
}

// Promote picks piece from the promotion window for color.
func (c *ChessCom) Promote(ctx context.Context, piece chess.PieceType, color chess.Color) error {
	selector, err := promotionSelector(piece, color)
	if err != nil {
		return err
	}
	if err := c.surface.Click(ctx, selector, c.opts.PromotionTimeout); err != nil {
		return fmt.Errorf("%w: %v", ErrPromotionFailed, err)
	}
	c.logger.Debugf("promotion %s clicked", selector)
	return nil
}
