// Package uci parses moves typed in UCI long algebraic notation
// (e2e4, d7d8q) into board squares.
//
// Parsing is pure: the same input always yields an equal Move or the same
// rejection, and nothing outside the input string influences the result.
// Command words such as "debug" or "quit" are the caller's business and are
// never passed here.
package uci

import (
	"errors"
	"fmt"
	"strings"

	chess "github.com/corentings/chess/v2"
)

// Rejection reasons. Every ParseError unwraps to exactly one of these.
var (
	ErrMalformedLength  = errors.New("malformed length")
	ErrInvalidFile      = errors.New("invalid file")
	ErrInvalidRank      = errors.New("invalid rank")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
	ErrNullMove         = errors.New("null move")
)

const (
	plainLength     = 4
	promotionLength = 5
)

// Move is a parsed UCI move. Promotion is chess.NoPieceType unless the input
// carried a fifth character.
type Move struct {
	Source      chess.Square
	Destination chess.Square
	Promotion   chess.PieceType
}

// ParseError describes why an input was rejected.
type ParseError struct {
	Input  string
	Reason error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Input)
}

// Unwrap exposes the reason so callers can use errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Reason
}

// promotionPieces maps the lowercase promotion letter to its piece type.
var promotionPieces = map[byte]chess.PieceType{
	'q': chess.Queen,
	'r': chess.Rook,
	'b': chess.Bishop,
	'n': chess.Knight,
}

// Parse converts a UCI move string into a Move. Surrounding whitespace is
// ignored. The checks run in a fixed order and the first failing one decides
// the reason: length, files, ranks, promotion piece, then null move.
func Parse(input string) (Move, error) {
	s := strings.TrimSpace(input)

	if len(s) != plainLength && len(s) != promotionLength {
		return Move{}, &ParseError{Input: s, Reason: ErrMalformedLength}
	}
	if !isFile(s[0]) || !isFile(s[2]) {
		return Move{}, &ParseError{Input: s, Reason: ErrInvalidFile}
	}
	if !isRank(s[1]) || !isRank(s[3]) {
		return Move{}, &ParseError{Input: s, Reason: ErrInvalidRank}
	}

	move := Move{
		Source:      square(s[0], s[1]),
		Destination: square(s[2], s[3]),
		Promotion:   chess.NoPieceType,
	}

	if len(s) == promotionLength {
		piece, ok := promotionPieces[toLower(s[4])]
		if !ok {
			return Move{}, &ParseError{Input: s, Reason: ErrInvalidPromotion}
		}
		move.Promotion = piece
	}

	if move.Source == move.Destination {
		return Move{}, &ParseError{Input: s, Reason: ErrNullMove}
	}

	return move, nil
}

// HasPromotion reports whether the move names a promotion piece.
func (m Move) HasPromotion() bool {
	return m.Promotion != chess.NoPieceType
}

// PromotionLetter returns the lowercase promotion letter, or "" when the move
// does not promote.
func (m Move) PromotionLetter() string {
	for letter, piece := range promotionPieces {
		if piece == m.Promotion {
			return string(letter)
		}
	}
	return ""
}

// String returns the canonical UCI form, e.g. "d7d8q".
func (m Move) String() string {
	return SquareName(m.Source) + SquareName(m.Destination) + m.PromotionLetter()
}

// Describe returns a human readable rendering for terminal feedback.
func (m Move) Describe() string {
	base := fmt.Sprintf("%s -> %s", SquareName(m.Source), SquareName(m.Destination))
	if m.HasPromotion() {
		base += fmt.Sprintf(" (promotes to %s)", PieceName(m.Promotion))
	}
	return base
}

// SquareName renders a square as file letter plus rank digit.
func SquareName(sq chess.Square) string {
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// PieceName returns the English name of a promotion piece.
func PieceName(p chess.PieceType) string {
	switch p {
	case chess.Queen:
		return "queen"
	case chess.Rook:
		return "rook"
	case chess.Bishop:
		return "bishop"
	case chess.Knight:
		return "knight"
	default:
		return "none"
	}
}

func square(file, rank byte) chess.Square {
	return chess.NewSquare(chess.File(file-'a'), chess.Rank(rank-'1'))
}

func isFile(c byte) bool { return c >= 'a' && c <= 'h' }

func isRank(c byte) bool { return c >= '1' && c <= '8' }

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
