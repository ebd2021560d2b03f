package model

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func piece(kind PieceKind, side Side) *Piece {
	return NewPiece(kind, side)
}

func moved(p *Piece) *Piece {
	p.HasMoved = true
	return p
}

// boardWith builds a board from square -> piece placements.
func boardWith(t *testing.T, placements map[string]*Piece) *Board {
	t.Helper()
	b := NewBoard()
	for sq, p := range placements {
		pos, err := ParseSquare(sq)
		if err != nil {
			t.Fatalf("ParseSquare(%q) error: %v", sq, err)
		}
		if err := b.Place(pos, p); err != nil {
			t.Fatalf("Place(%s) error: %v", sq, err)
		}
	}
	return b
}

func gameWith(t *testing.T, turn Side, placements map[string]*Piece) *Game {
	t.Helper()
	g, err := NewGameFrom(boardWith(t, placements), turn)
	if err != nil {
		t.Fatalf("NewGameFrom() error: %v", err)
	}
	return g
}

func squares(names ...string) []Position {
	out := make([]Position, 0, len(names))
	for _, n := range names {
		out = append(out, MustSquare(n))
	}
	return out
}

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for i := 0; i+1 < len(moves); i += 2 {
		if _, err := g.AttemptMove(MustSquare(moves[i]), MustSquare(moves[i+1])); err != nil {
			t.Fatalf("AttemptMove(%s, %s) error: %v", moves[i], moves[i+1], err)
		}
	}
}

var sortPositions = cmpopts.SortSlices(func(a, b Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
})

var cmpEmptyAsNil = cmpopts.EquateEmpty()
