package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/entrhq/tilted/pkg/uci"
)

// Geometry is the board's bounding box in viewport coordinates.
type Geometry struct {
	Selector    string      `json:"selector"`
	Left        float64     `json:"left"`
	Top         float64     `json:"top"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Orientation Orientation `json:"-"`

	// OrientationMethod says how Orientation was decided
	OrientationMethod string `json:"-"`
}

// SquareSize is the edge length of one square.
func (g Geometry) SquareSize() float64 {
	return g.Width / 8
}

// Center returns the centre of sq on screen.
func (g Geometry) Center(sq chess.Square) (Point, error) {
	if sq < chess.A1 || sq > chess.H8 {
		return Point{}, fmt.Errorf("%w: %d", ErrSquareNotFound, sq)
	}
	if g.Width <= 0 || g.Height <= 0 {
		return Point{}, ErrBoardNotFound
	}

	file := float64(sq.File())
	rank := float64(sq.Rank())

	var fileIdx, rankIdx float64
	if g.Orientation == BlackBottom {
		fileIdx, rankIdx = 7-file, rank
	} else {
		fileIdx, rankIdx = file, 7-rank
	}

	size := g.SquareSize()
	return Point{
		X: g.Left + fileIdx*size + size/2,
		Y: g.Top + rankIdx*size + size/2,
	}, nil
}

// squareClass is chess.com's class for a square: file and rank as digits,
// so e2 is "square-52".
func squareClass(sq chess.Square) string {
	return fmt.Sprintf("square-%d%d", int(sq.File())+1, int(sq.Rank())+1)
}

// parseSquareClass reverses squareClass.
func parseSquareClass(class string) (chess.Square, bool) {
	digits, ok := strings.CutPrefix(class, "square-")
	if !ok || len(digits) != 2 {
		return chess.NoSquare, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return chess.NoSquare, false
	}
	file, rank := n/10, n%10
	if file < 1 || file > 8 || rank < 1 || rank > 8 {
		return chess.NoSquare, false
	}
	return chess.NewSquare(chess.File(file-1), chess.Rank(rank-1)), true
}

// PromotionColor is the side promoting onto dest: rank 8 is white, rank 1 black.
func PromotionColor(dest chess.Square) chess.Color {
	if dest.Rank() == chess.Rank1 {
		return chess.Black
	}
	return chess.White
}

// promotionSelector is the button for piece in the promotion window, e.g.
// ".promotion-piece.wq".
func promotionSelector(piece chess.PieceType, color chess.Color) (string, error) {
	letter := uci.Move{Promotion: piece}.PromotionLetter()
	if letter == "" {
		return "", fmt.Errorf("%w: %s is not a promotion piece", ErrPromotionFailed, uci.PieceName(piece))
	}
	side := "w"
	if color == chess.Black {
		side = "b"
	}
	return ".promotion-piece." + side + letter, nil
}
