package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corentings/chess/v2"
	"github.com/entrhq/tilted/pkg/uci"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChessCom_Locate(t *testing.T) {
	ctx := context.Background()

	t.Run("white at bottom", func(t *testing.T) {
		surface := &fakeSurface{locate: boardAt(false)}
		b := newTestBoard(surface, Options{})

		p, err := b.Locate(ctx, chess.E2)
		require.NoError(t, err)
		assert.Equal(t, Point{550, 700}, p)
		assert.Equal(t, DefaultSelectors, surface.evalArgs[0])
	})

	t.Run("flipped board", func(t *testing.T) {
		b := newTestBoard(&fakeSurface{locate: boardAt(true)}, Options{})

		p, err := b.Locate(ctx, chess.E2)
		require.NoError(t, err)
		assert.Equal(t, Point{450, 200}, p)
	})

	t.Run("configured orientation overrides class", func(t *testing.T) {
		b := newTestBoard(&fakeSurface{locate: boardAt(true)}, Options{Orientation: "white"})
		o, err := b.Orientation(ctx)
		require.NoError(t, err)
		assert.Equal(t, WhiteBottom, o)

		b = newTestBoard(&fakeSurface{locate: boardAt(false)}, Options{Orientation: "black"})
		o, err = b.Orientation(ctx)
		require.NoError(t, err)
		assert.Equal(t, BlackBottom, o)
	})

	t.Run("no board", func(t *testing.T) {
		b := newTestBoard(&fakeSurface{}, Options{})
		_, err := b.Locate(ctx, chess.E2)
		assert.ErrorIs(t, err, ErrBoardNotFound)
	})

	t.Run("zero-sized board", func(t *testing.T) {
		loc := boardAt(false)
		loc["width"] = 0.0
		b := newTestBoard(&fakeSurface{locate: loc}, Options{})
		_, err := b.Locate(ctx, chess.E2)
		assert.ErrorIs(t, err, ErrBoardNotFound)
	})

	t.Run("page error", func(t *testing.T) {
		boom := errors.New("target closed")
		b := newTestBoard(&fakeSurface{evalErr: boom}, Options{})
		_, err := b.Locate(ctx, chess.E2)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("custom selectors are passed", func(t *testing.T) {
		surface := &fakeSurface{locate: boardAt(false)}
		b := newTestBoard(surface, Options{Selectors: []string{"#board"}})
		_, err := b.Locate(ctx, chess.A1)
		require.NoError(t, err)
		assert.Equal(t, []string{"#board"}, surface.evalArgs[0])
	})
}

func TestChessCom_OrientationMethod(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		locate     map[string]any
		want       Orientation
		wantMethod string
	}{
		{"flipped class", "auto", boardOriented(true, MethodClass), BlackBottom, MethodClass},
		{"rank 1 label on top", "auto", boardOriented(true, MethodLabels), BlackBottom, MethodLabels},
		{"rank 8 label on top", "auto", boardOriented(false, MethodLabels), WhiteBottom, MethodLabels},
		{"no class or labels", "auto", boardOriented(false, MethodDefault), WhiteBottom, MethodDefault},
		{"older page without method", "auto", map[string]any{
			"found": true, "left": 0.0, "top": 0.0, "width": 400.0, "height": 400.0, "flipped": true,
		}, BlackBottom, MethodClass},
		{"configured black", "black", boardOriented(false, MethodLabels), BlackBottom, MethodConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(&fakeSurface{locate: tt.locate}, Options{Orientation: tt.configured})

			g, err := b.Geometry(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.Orientation)
			assert.Equal(t, tt.wantMethod, g.OrientationMethod)
		})
	}
}

func TestChessCom_Drag(t *testing.T) {
	surface := &fakeSurface{}
	b := newTestBoard(surface, Options{DragSteps: 3})

	require.NoError(t, b.Drag(context.Background(), Point{550, 700}, Point{550, 400}))
	assert.Equal(t, []string{
		"move(550,700)",
		"down",
		"move(550,600)",
		"move(550,500)",
		"move(550,400)",
		"up",
	}, surface.calls)
}

func TestChessCom_DragReleasesOnFailure(t *testing.T) {
	boom := errors.New("mouse gone")
	surface := &fakeSurface{moveErr: boom, failMoveAt: 3}
	b := newTestBoard(surface, Options{DragSteps: 3})

	err := b.Drag(context.Background(), Point{0, 0}, Point{30, 30})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "up", surface.calls[len(surface.calls)-1])
}

func TestChessCom_DragCancelled(t *testing.T) {
	surface := &fakeSurface{}
	b := NewChessCom(surface, Options{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Drag(ctx, Point{0, 0}, Point{10, 10})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, surface.calls, "down")
}

func TestChessCom_Promote(t *testing.T) {
	surface := &fakeSurface{}
	b := newTestBoard(surface, Options{})

	require.NoError(t, b.Promote(context.Background(), chess.Queen, chess.White))
	require.NoError(t, b.Promote(context.Background(), chess.Rook, chess.Black))
	assert.Equal(t, []string{".promotion-piece.wq", ".promotion-piece.br"}, surface.clicked)

	surface.clickErr = errors.New("timeout 2000ms exceeded")
	err := b.Promote(context.Background(), chess.Bishop, chess.White)
	assert.ErrorIs(t, err, ErrPromotionFailed)
}

func TestChessCom_Confirm(t *testing.T) {
	ctx := context.Background()
	move, err := uci.Parse("e2e4")
	require.NoError(t, err)

	confirming := func(surface *fakeSurface, timeout time.Duration) *ChessCom {
		b := newTestBoard(surface, Options{ConfirmMoves: true, ConfirmTimeout: timeout})
		b.sleep = func(ctx context.Context, d time.Duration) error {
			return sleepContext(ctx, time.Millisecond)
		}
		return b
	}

	t.Run("confirmed after polling", func(t *testing.T) {
		surface := &fakeSurface{lastMoves: [][]string{
			{"square-57", "square-55"},
			{"square-57", "square-55"},
			{"square-52"},
			{"square-54", "square-52"},
		}}
		b := confirming(surface, time.Minute)

		before, err := b.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, Highlight{chess.E5, chess.E7}, before)

		require.NoError(t, b.Confirm(ctx, move, before))
		assert.Equal(t, 4, surface.lastMoveN)
	})

	t.Run("first move of the game", func(t *testing.T) {
		surface := &fakeSurface{lastMoves: [][]string{{}, {"square-52", "square-54"}}}
		b := confirming(surface, time.Minute)

		before, err := b.Snapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, before)
		require.NoError(t, b.Confirm(ctx, move, before))
	})

	t.Run("stale highlight of the same squares is not a confirmation", func(t *testing.T) {
		surface := &fakeSurface{lastMoves: [][]string{{"square-52", "square-54"}}}
		b := confirming(surface, 5*time.Millisecond)

		before, err := b.Snapshot(ctx)
		require.NoError(t, err)
		require.True(t, before.Shows(move))

		err = b.Confirm(ctx, move, before)
		assert.ErrorIs(t, err, ErrMoveNotConfirmed)
		assert.Contains(t, err.Error(), "e2 e4")
	})

	t.Run("opponent premove replaces our highlight", func(t *testing.T) {
		surface := &fakeSurface{lastMoves: [][]string{
			{"square-57", "square-55"},
			{"square-47", "square-45"},
		}}
		b := confirming(surface, time.Minute)

		before, err := b.Snapshot(ctx)
		require.NoError(t, err)
		require.NoError(t, b.Confirm(ctx, move, before))
		assert.Equal(t, 2, surface.lastMoveN)
	})

	t.Run("times out when nothing changes", func(t *testing.T) {
		surface := &fakeSurface{lastMoves: [][]string{{"square-57", "square-55"}}}
		b := confirming(surface, time.Millisecond)

		err := b.Confirm(ctx, move, Highlight{chess.E5, chess.E7})
		assert.ErrorIs(t, err, ErrMoveNotConfirmed)
		assert.GreaterOrEqual(t, surface.lastMoveN, 1)
	})

	t.Run("page error", func(t *testing.T) {
		surface := &fakeSurface{evalErr: errors.New("target closed")}
		b := confirming(surface, time.Minute)

		_, err := b.Snapshot(ctx)
		assert.ErrorContains(t, err, "target closed")
		assert.ErrorContains(t, b.Confirm(ctx, move, nil), "target closed")
	})

	t.Run("disabled", func(t *testing.T) {
		surface := &fakeSurface{}
		b := newTestBoard(surface, Options{ConfirmMoves: false})

		before, err := b.Snapshot(ctx)
		require.NoError(t, err)
		assert.Nil(t, before)
		require.NoError(t, b.Confirm(ctx, move, before))
		assert.Empty(t, surface.calls)
	})
}

func TestHighlight(t *testing.T) {
	h := highlightFromClasses([]string{"square-54", "square-52", "square-54", "hover-square", "square-99"})
	assert.Equal(t, Highlight{chess.E2, chess.E4}, h)
	assert.True(t, h.Complete())
	assert.Equal(t, "e2 e4", h.String())

	m, err := uci.Parse("e4e2")
	require.NoError(t, err)
	assert.True(t, h.Shows(m))

	assert.False(t, Highlight{chess.E2}.Complete())
	assert.Equal(t, "none", Highlight(nil).String())
	assert.True(t, Highlight(nil).Equal(Highlight{}))
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultSelectors, o.Selectors)
	assert.Equal(t, DefaultDragSteps, o.DragSteps)
	assert.Equal(t, DefaultPromotionTimeout, o.PromotionTimeout)
	assert.Equal(t, DefaultConfirmTimeout, o.ConfirmTimeout)
	assert.Equal(t, "auto", o.Orientation)
}
