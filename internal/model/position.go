package model

import "fmt"

const BoardSize = 8

// Position addresses a square. Row 0 is Black's back rank (rank 8), row 7 is
// White's (rank 1); column 0 is the a-file.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// String returns the square in algebraic form, e.g. "e2".
func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, BoardSize-p.Row)
}

// ParseSquare converts "e2" style coordinates into a Position.
func ParseSquare(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	file, rank := s[0], s[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	return Position{Row: BoardSize - int(rank-'0'), Col: int(file - 'a')}, nil
}

// MustSquare is ParseSquare for constant squares; it panics on bad input.
func MustSquare(s string) Position {
	p, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return p
}

type Side string

const (
	White Side = "white"
	Black Side = "black"
)

func (s Side) Opposite() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) Valid() bool {
	return s == White || s == Black
}

// forward is the row delta a pawn of this side advances by.
func (s Side) forward() int {
	if s == White {
		return -1
	}
	return 1
}

func (s Side) backRank() int {
	if s == White {
		return BoardSize - 1
	}
	return 0
}

// promotionRow is the last rank for this side's pawns.
func (s Side) promotionRow() int {
	return s.Opposite().backRank()
}
