package model

import "fmt"

// Move is compared structurally; the board keeps the last one to recognise
// a pawn double step that enables en passant.
type Move struct {
	From Position  `json:"from"`
	To   Position  `json:"to"`
	Kind PieceKind `json:"piece"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s -> %s", m.From, m.To)
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Capture describes a completed capturing move for display collaborators.
type Capture struct {
	Mover     *Piece   `json:"mover"`
	Captured  *Piece   `json:"captured"`
	From      Position `json:"from"`
	To        Position `json:"to"`
	EnPassant bool     `json:"enPassant,omitempty"`
}

// Ply is one half-move in the game history.
type Ply struct {
	Move
	Side           Side            `json:"side"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceKind       `json:"promotion,omitempty"`
}

// MoveResult is what AttemptMove and CompletePromotion report back.
type MoveResult struct {
	Ply              Ply       `json:"ply"`
	Capture          *Capture  `json:"capture,omitempty"`
	PendingPromotion bool      `json:"pendingPromotion"`
	State            GameState `json:"state"`
	ToMove           Side      `json:"toMove"`
}
