package board

import (
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometry_Center(t *testing.T) {
	g := Geometry{Left: 100, Top: 50, Width: 800, Height: 800}

	tests := []struct {
		name        string
		orientation Orientation
		sq          chess.Square
		want        Point
	}{
		{"a1 white bottom", WhiteBottom, chess.A1, Point{150, 800}},
		{"h8 white bottom", WhiteBottom, chess.H8, Point{850, 100}},
		{"e2 white bottom", WhiteBottom, chess.E2, Point{550, 700}},
		{"a1 black bottom", BlackBottom, chess.A1, Point{850, 100}},
		{"h8 black bottom", BlackBottom, chess.H8, Point{150, 800}},
		{"e2 black bottom", BlackBottom, chess.E2, Point{450, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Orientation = tt.orientation
			got, err := g.Center(tt.sq)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.X, got.X, 0.001)
			assert.InDelta(t, tt.want.Y, got.Y, 0.001)
		})
	}
}

func TestGeometry_CenterErrors(t *testing.T) {
	g := Geometry{Width: 800, Height: 800}
	_, err := g.Center(chess.NoSquare)
	assert.ErrorIs(t, err, ErrSquareNotFound)

	_, err = Geometry{}.Center(chess.E4)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestSquareClass(t *testing.T) {
	assert.Equal(t, "square-52", squareClass(chess.E2))
	assert.Equal(t, "square-11", squareClass(chess.A1))
	assert.Equal(t, "square-88", squareClass(chess.H8))

	for sq := chess.A1; sq <= chess.H8; sq++ {
		got, ok := parseSquareClass(squareClass(sq))
		require.True(t, ok)
		assert.Equal(t, sq, got)
	}

	for _, bad := range []string{"square-09", "square-90", "square-5", "square-ab", "piece-52", "square-523"} {
		_, ok := parseSquareClass(bad)
		assert.False(t, ok, bad)
	}
}

func TestPromotionColor(t *testing.T) {
	assert.Equal(t, chess.White, PromotionColor(chess.D8))
	assert.Equal(t, chess.Black, PromotionColor(chess.D1))
}

func TestPromotionSelector(t *testing.T) {
	sel, err := promotionSelector(chess.Queen, chess.White)
	require.NoError(t, err)
	assert.Equal(t, ".promotion-piece.wq", sel)

	sel, err = promotionSelector(chess.Knight, chess.Black)
	require.NoError(t, err)
	assert.Equal(t, ".promotion-piece.bn", sel)

	_, err = promotionSelector(chess.King, chess.White)
	assert.ErrorIs(t, err, ErrPromotionFailed)
}
