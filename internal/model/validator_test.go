package model

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateMoveRejections(t *testing.T) {
	b := NewStandardBoard()
	tests := []struct {
		name     string
		from, to Position
		side     Side
		want     error
	}{
		{"off board", MustSquare("e2"), Position{Row: 8, Col: 4}, White, ErrOutOfRange},
		{"empty square", MustSquare("e4"), MustSquare("e5"), White, ErrNoPiece},
		{"opponent piece", MustSquare("e7"), MustSquare("e5"), White, ErrWrongSide},
		{"unreachable", MustSquare("e2"), MustSquare("e5"), White, ErrUnreachable},
		{"own piece", MustSquare("d1"), MustSquare("d2"), White, ErrUnreachable},
		{"castle blocked", MustSquare("e1"), MustSquare("g1"), White, ErrCastlingNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.ValidateMove(tt.from, tt.to, tt.side)
			if !errors.Is(err, ErrIllegalMove) || !errors.Is(err, tt.want) {
				t.Errorf("ValidateMove() error = %v, want %v", err, tt.want)
			}
			if b.IsMoveValid(tt.from, tt.to, tt.side) {
				t.Errorf("IsMoveValid() = true")
			}
		})
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	b := boardWith(t, map[string]*Piece{
		"e1": piece(King, White),
		"e2": piece(Bishop, White),
		"e8": piece(Rook, Black),
		"a8": piece(King, Black),
	})
	err := b.ValidateMove(MustSquare("e2"), MustSquare("d3"), White)
	if !errors.Is(err, ErrSelfCheck) {
		t.Errorf("ValidateMove() error = %v, want ErrSelfCheck", err)
	}
	legal, err := b.LegalMoves(MustSquare("e2"), White)
	if err != nil || len(legal) != 0 {
		t.Errorf("LegalMoves(pinned bishop) = %v, %v; want none", legal, err)
	}
}

func TestEnPassantDiscoveredCheck(t *testing.T) {
	b := boardWith(t, map[string]*Piece{
		"a5": moved(piece(King, White)),
		"b5": moved(piece(Pawn, White)),
		"c5": moved(piece(Pawn, Black)),
		"h5": moved(piece(Rook, Black)),
		"e8": piece(King, Black),
	})
	b.PreviousMove = &Move{From: MustSquare("c7"), To: MustSquare("c5"), Kind: Pawn}

	if !slices.Contains(b.at(MustSquare("b5")).Attacks(MustSquare("b5"), b), MustSquare("c6")) {
		t.Fatalf("en passant should be a candidate")
	}
	err := b.ValidateMove(MustSquare("b5"), MustSquare("c6"), White)
	if !errors.Is(err, ErrSelfCheck) {
		t.Errorf("ValidateMove() error = %v, want ErrSelfCheck", err)
	}
}

func TestValidateCastling(t *testing.T) {
	base := func() map[string]*Piece {
		return map[string]*Piece{
			"e1": piece(King, White),
			"a1": piece(Rook, White),
			"h1": piece(Rook, White),
			"e8": piece(King, Black),
		}
	}
	tests := []struct {
		name   string
		modify func(map[string]*Piece)
		to     string
		ok     bool
	}{
		{name: "kingside", to: "g1", ok: true},
		{name: "queenside", to: "c1", ok: true},
		{
			name:   "kingside blocked",
			modify: func(p map[string]*Piece) { p["f1"] = piece(Bishop, White) },
			to:     "g1",
		},
		{
			name:   "queenside blocked on b-file",
			modify: func(p map[string]*Piece) { p["b1"] = piece(Knight, White) },
			to:     "c1",
		},
		{
			name:   "king in check",
			modify: func(p map[string]*Piece) { p["e5"] = piece(Rook, Black) },
			to:     "g1",
		},
		{
			name:   "crosses attacked square",
			modify: func(p map[string]*Piece) { p["f8"] = piece(Rook, Black) },
			to:     "g1",
		},
		{
			name:   "lands on attacked square",
			modify: func(p map[string]*Piece) { p["g8"] = piece(Rook, Black) },
			to:     "g1",
		},
		{
			name:   "attacked b-file does not matter",
			modify: func(p map[string]*Piece) { p["b8"] = piece(Rook, Black) },
			to:     "c1",
			ok:     true,
		},
		{
			name:   "rook has moved",
			modify: func(p map[string]*Piece) { p["h1"] = moved(piece(Rook, White)) },
			to:     "g1",
		},
		{
			name:   "king has moved",
			modify: func(p map[string]*Piece) { p["e1"] = moved(piece(King, White)) },
			to:     "g1",
		},
		{
			name:   "rook missing",
			modify: func(p map[string]*Piece) { delete(p, "a1") },
			to:     "c1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces := base()
			if tt.modify != nil {
				tt.modify(pieces)
			}
			b := boardWith(t, pieces)
			before := b.Squares()
			err := b.ValidateMove(MustSquare("e1"), MustSquare(tt.to), White)
			if tt.ok && err != nil {
				t.Errorf("ValidateMove(e1, %s) error: %v", tt.to, err)
			}
			if !tt.ok && !errors.Is(err, ErrCastlingNotAllowed) {
				t.Errorf("ValidateMove(e1, %s) error = %v, want ErrCastlingNotAllowed", tt.to, err)
			}
			if diff := cmp.Diff(before, b.Squares()); diff != "" {
				t.Errorf("validation mutated the board (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLegalMovesForOpponentPiece(t *testing.T) {
	b := NewStandardBoard()
	got, err := b.LegalMoves(MustSquare("e7"), White)
	if err != nil || len(got) != 0 {
		t.Errorf("LegalMoves(e7, white) = %v, %v; want empty", got, err)
	}
	if _, err := b.LegalMoves(Position{Row: 9, Col: 9}, White); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("LegalMoves(off board) error = %v, want ErrOutOfRange", err)
	}
	got, err = b.LegalMoves(MustSquare("g1"), White)
	if err != nil {
		t.Fatalf("LegalMoves(g1) error: %v", err)
	}
	if diff := cmp.Diff(squares("f3", "h3"), got, sortPositions); diff != "" {
		t.Errorf("LegalMoves(g1) mismatch (-want +got):\n%s", diff)
	}
}

func TestValidationIsPure(t *testing.T) {
	b := NewStandardBoard()
	before := b.Squares()
	for _, m := range b.PseudoLegalMoves(White) {
		_ = b.ValidateMove(m.From, m.To, White)
	}
	if _, err := b.IsCheckmate(White); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, b.Squares()); diff != "" {
		t.Errorf("board changed during validation (-want +got):\n%s", diff)
	}
}
