package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBoard = `<wc-chess-board class="board flipped" id="board-single">
  <svg class="coordinates"><text>8</text></svg>
  <div class="highlight square-52"></div>
  <div class="highlight square-54"></div>
  <div class="piece wp square-54"></div>
  <div class="piece bk square-58"></div>
  <div class="piece square-11 wr"></div>
  <div class="piece wn square-21"></div>
  <div class="hover-square square-33"></div>
</wc-chess-board>`

func TestChessCom_Inspect(t *testing.T) {
	surface := &fakeSurface{
		url:    "https://www.chess.com/variants/fog-of-war/game/1",
		locate: boardAt(true),
		inspect: map[string]any{
			"boards":   2.0,
			"squares":  64.0,
			"pieces":   32.0,
			"selector": ".board",
			"html":     sampleBoard,
		},
	}
	b := newTestBoard(surface, Options{})

	insp, err := b.Inspect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://www.chess.com/variants/fog-of-war/game/1", insp.URL)
	assert.Equal(t, ".board", insp.Selector)
	assert.Equal(t, "board flipped", insp.BoardClass)
	assert.Equal(t, "black", insp.Orientation)
	assert.Equal(t, MethodClass, insp.OrientationBy)
	assert.Equal(t, 2, insp.BoardCount)
	assert.Equal(t, 64, insp.SquareCount)
	assert.Equal(t, 32, insp.PieceCount)

	assert.Len(t, insp.SquareSamples, 5)
	assert.Equal(t, "highlight square-52", insp.SquareSamples[0])
	assert.Equal(t, []string{"piece wp square-54", "piece bk square-58", "piece square-11 wr"}, insp.PieceSamples)

	assert.Equal(t, map[string]string{"e4": "wp", "e8": "bk", "a1": "wr", "b1": "wn"}, insp.Pieces)
	assert.Equal(t, []string{"e2", "e4"}, insp.Highlighted)
	require.NotNil(t, insp.Geometry)
	assert.Equal(t, 800.0, insp.Geometry.Width)
}

func TestChessCom_InspectWithoutBoard(t *testing.T) {
	surface := &fakeSurface{
		url:     "https://www.chess.com/home",
		inspect: map[string]any{"boards": 0.0, "squares": 0.0, "pieces": 0.0, "selector": "", "html": ""},
	}
	b := newTestBoard(surface, Options{})

	insp, err := b.Inspect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "unknown", insp.Orientation)
	assert.Empty(t, insp.OrientationBy)
	assert.Nil(t, insp.Geometry)
	assert.Empty(t, insp.Pieces)
	assert.Empty(t, insp.BoardClass)
}
