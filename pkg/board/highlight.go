package board

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/corentings/chess/v2"
	"github.com/entrhq/tilted/pkg/uci"
)

// Highlight is the set of squares the board marks as the last move, sorted
// and without duplicates.
type Highlight []chess.Square

func newHighlight(squares ...chess.Square) Highlight {
	h := slices.Clone(squares)
	slices.Sort(h)
	return slices.Compact(h)
}

func highlightFromClasses(classes []string) Highlight {
	var squares []chess.Square
	for _, class := range classes {
		if sq, ok := parseSquareClass(class); ok {
			squares = append(squares, sq)
		}
	}
	return newHighlight(squares...)
}

// Equal reports whether both highlights mark the same squares.
func (h Highlight) Equal(other Highlight) bool {
	return slices.Equal(h, other)
}

// Complete reports whether h marks a whole move, one source and one
// destination square.
func (h Highlight) Complete() bool {
	return len(h) == 2
}

// Shows reports whether h is exactly the highlight m leaves behind.
func (h Highlight) Shows(m uci.Move) bool {
	return h.Equal(newHighlight(m.Source, m.Destination))
}

func (h Highlight) String() string {
	if len(h) == 0 {
		return "none"
	}
	names := make([]string, len(h))
	for i, sq := range h {
		names[i] = uci.SquareName(sq)
	}
	return strings.Join(names, " ")
}

// Snapshot reads the current last-move highlight. Take it before dragging and
// hand it to Confirm. It returns nil without touching the page when
// confirmation is disabled.
func (c *ChessCom) Snapshot(ctx context.Context) (Highlight, error) {
	if !c.opts.ConfirmMoves {
		return nil, nil
	}
	return c.readHighlight(ctx)
}

func (c *ChessCom) readHighlight(ctx context.Context) (Highlight, error) {
	result, err := c.surface.Evaluate(ctx, lastMoveScript, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read move highlight: %w", err)
	}
	var classes []string
	if err := decode(result, &classes); err != nil {
		return nil, err
	}
	return highlightFromClasses(classes), nil
}

// Confirm waits until the last-move highlight differs from before and marks a
// complete move. A highlight showing m confirms it. A different move also
// confirms it: an opponent premove can answer before the first poll and
// replace our highlight. A highlight still equal to before fails once
// ConfirmTimeout passes, even when before already showed m's squares.
func (c *ChessCom) Confirm(ctx context.Context, m uci.Move, before Highlight) error {
	if !c.opts.ConfirmMoves {
		return nil
	}

	deadline := time.Now().Add(c.opts.ConfirmTimeout)
	for {
		now, err := c.readHighlight(ctx)
		if err != nil {
			return err
		}
		if now.Complete() && !now.Equal(before) {
			if !now.Shows(m) {
				c.logger.Infof("board shows %s after %s, treating it as an opponent premove", now, m)
			}
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w: last move still %s after %v", ErrMoveNotConfirmed, now, c.opts.ConfirmTimeout)
		}
		if err := c.sleep(ctx, confirmPollInterval); err != nil {
			return err
		}
	}
}
