package model

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPieceKindParse(t *testing.T) {
	tests := []struct {
		in      string
		want    PieceKind
		wantErr bool
	}{
		{in: "q", want: Queen},
		{in: "N", want: Knight},
		{in: "rook", want: Rook},
		{in: "Bishop", want: Bishop},
		{in: "x", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePieceKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePieceKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePieceKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPieceValues(t *testing.T) {
	want := map[PieceKind]int{Queen: 10, Rook: 5, Bishop: 3, Knight: 3, Pawn: 1, King: 0}
	for kind, value := range want {
		if got := kind.Value(); got != value {
			t.Errorf("%s.Value() = %d, want %d", kind, got, value)
		}
	}
	for _, kind := range []PieceKind{Queen, Rook, Bishop, Knight} {
		if !kind.Promotable() {
			t.Errorf("%s should be promotable", kind)
		}
	}
	for _, kind := range []PieceKind{King, Pawn, "dragon"} {
		if kind.Promotable() {
			t.Errorf("%s should not be promotable", kind)
		}
	}
}

func TestPieceMoves(t *testing.T) {
	tests := []struct {
		name   string
		pieces map[string]*Piece
		from   string
		want   []Position
	}{
		{
			name:   "knight in corner",
			pieces: map[string]*Piece{"a1": piece(Knight, White)},
			from:   "a1",
			want:   squares("b3", "c2"),
		},
		{
			name: "knight ignores blockers but not friends",
			pieces: map[string]*Piece{
				"g1": piece(Knight, White),
				"f2": piece(Pawn, White),
				"g2": piece(Pawn, White),
				"e2": piece(Pawn, White),
				"f3": piece(Pawn, Black),
			},
			from: "g1",
			want: squares("f3", "h3"),
		},
		{
			name: "rook stops at friend and captures enemy",
			pieces: map[string]*Piece{
				"d4": piece(Rook, White),
				"d6": piece(Pawn, White),
				"f4": piece(Pawn, Black),
			},
			from: "d4",
			want: squares("d5", "d3", "d2", "d1", "c4", "b4", "a4", "e4", "f4"),
		},
		{
			name:   "bishop in centre",
			pieces: map[string]*Piece{"d4": piece(Bishop, Black)},
			from:   "d4",
			want: squares("c5", "b6", "a7", "e5", "f6", "g7", "h8",
				"c3", "b2", "a1", "e3", "f2", "g1"),
		},
		{
			name:   "unmoved pawn double step",
			pieces: map[string]*Piece{"e2": piece(Pawn, White)},
			from:   "e2",
			want:   squares("e3", "e4"),
		},
		{
			name:   "moved pawn single step",
			pieces: map[string]*Piece{"e3": moved(piece(Pawn, White))},
			from:   "e3",
			want:   squares("e4"),
		},
		{
			name: "blocked pawn",
			pieces: map[string]*Piece{
				"e7": piece(Pawn, Black),
				"e6": piece(Knight, White),
			},
			from: "e7",
			want: nil,
		},
		{
			name: "double step blocked on second square",
			pieces: map[string]*Piece{
				"e7": piece(Pawn, Black),
				"e5": piece(Knight, White),
			},
			from: "e7",
			want: squares("e6"),
		},
		{
			name: "pawn does not capture forward",
			pieces: map[string]*Piece{
				"e4": moved(piece(Pawn, White)),
				"e5": piece(Pawn, Black),
			},
			from: "e4",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(t, tt.pieces)
			from := MustSquare(tt.from)
			p := b.at(from)
			got := p.Moves(from, b)
			if diff := cmp.Diff(tt.want, got, sortPositions, cmpEmptyAsNil); diff != "" {
				t.Errorf("Moves(%s) mismatch (-want +got):\n%s", tt.from, diff)
			}
		})
	}
}

func TestPawnAttacks(t *testing.T) {
	t.Run("diagonal enemies only", func(t *testing.T) {
		b := boardWith(t, map[string]*Piece{
			"d4": moved(piece(Pawn, White)),
			"c5": piece(Knight, Black),
			"e5": piece(Knight, White),
		})
		got := b.at(MustSquare("d4")).Attacks(MustSquare("d4"), b)
		if diff := cmp.Diff(squares("c5"), got, sortPositions); diff != "" {
			t.Errorf("Attacks mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("en passant after double step", func(t *testing.T) {
		b := boardWith(t, map[string]*Piece{
			"e5": moved(piece(Pawn, White)),
			"d5": moved(piece(Pawn, Black)),
		})
		b.PreviousMove = &Move{From: MustSquare("d7"), To: MustSquare("d5"), Kind: Pawn}
		got := b.at(MustSquare("e5")).Attacks(MustSquare("e5"), b)
		if diff := cmp.Diff(squares("d6"), got, sortPositions); diff != "" {
			t.Errorf("Attacks mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no en passant after single step", func(t *testing.T) {
		b := boardWith(t, map[string]*Piece{
			"e5": moved(piece(Pawn, White)),
			"d5": moved(piece(Pawn, Black)),
		})
		b.PreviousMove = &Move{From: MustSquare("d6"), To: MustSquare("d5"), Kind: Pawn}
		if got := b.at(MustSquare("e5")).Attacks(MustSquare("e5"), b); len(got) != 0 {
			t.Errorf("Attacks = %v, want none", got)
		}
	})

	t.Run("no en passant against a non-pawn", func(t *testing.T) {
		b := boardWith(t, map[string]*Piece{
			"e5": moved(piece(Pawn, White)),
			"d5": piece(Rook, Black),
		})
		b.PreviousMove = &Move{From: MustSquare("d7"), To: MustSquare("d5"), Kind: Pawn}
		if got := b.at(MustSquare("e5")).Attacks(MustSquare("e5"), b); len(got) != 0 {
			t.Errorf("Attacks = %v, want none", got)
		}
	})
}

func TestKingCastlingCandidates(t *testing.T) {
	b := boardWith(t, map[string]*Piece{
		"e1": piece(King, White),
		"h1": piece(Rook, White),
		"a1": piece(Rook, White),
		"e8": piece(King, Black),
	})
	king := b.at(MustSquare("e1"))

	moves := king.Moves(MustSquare("e1"), b)
	for _, sq := range squares("g1", "c1") {
		if !slices.Contains(moves, sq) {
			t.Errorf("Moves(e1) missing castling square %s: %v", sq, moves)
		}
	}
	attacks := king.Attacks(MustSquare("e1"), b)
	for _, sq := range squares("g1", "c1") {
		if slices.Contains(attacks, sq) {
			t.Errorf("Attacks(e1) contains castling square %s", sq)
		}
	}

	king.HasMoved = true
	moves = king.Moves(MustSquare("e1"), b)
	if slices.Contains(moves, MustSquare("g1")) || slices.Contains(moves, MustSquare("c1")) {
		t.Errorf("moved king still offers castling: %v", moves)
	}
}

func TestStartingPositionMoveCount(t *testing.T) {
	b := NewStandardBoard()
	for _, side := range []Side{White, Black} {
		if got := len(b.PseudoLegalMoves(side)); got != 20 {
			t.Errorf("PseudoLegalMoves(%s) = %d moves, want 20", side, got)
		}
		legal, err := b.AllLegalMoves(side)
		if err != nil {
			t.Fatalf("AllLegalMoves(%s) error: %v", side, err)
		}
		if len(legal) != 20 {
			t.Errorf("AllLegalMoves(%s) = %d moves, want 20", side, len(legal))
		}
	}
}

func TestPieceCloneIsIndependent(t *testing.T) {
	owner := NewPlayer(White)
	p := &Piece{Kind: Rook, Side: White, Owner: owner}
	c := p.Clone()
	c.HasMoved = true
	c.Kind = Queen
	if p.HasMoved || p.Kind != Rook {
		t.Errorf("original changed through clone: %+v", p)
	}
	if c.Owner != owner {
		t.Errorf("clone lost owner")
	}
	var nilPiece *Piece
	if nilPiece.Clone() != nil {
		t.Errorf("nil.Clone() should be nil")
	}
}
