package model

import (
	"fmt"
	"slices"
	"strings"
)

type PieceKind string

const (
	King   PieceKind = "king"
	Queen  PieceKind = "queen"
	Rook   PieceKind = "rook"
	Bishop PieceKind = "bishop"
	Knight PieceKind = "knight"
	Pawn   PieceKind = "pawn"
)

// Value is the material value of the kind. The king has none.
func (k PieceKind) Value() int {
	switch k {
	case Queen:
		return 10
	case Rook:
		return 5
	case Bishop, Knight:
		return 3
	case Pawn:
		return 1
	}
	return 0
}

func (k PieceKind) Letter() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return "?"
}

// Promotable reports whether a pawn may be promoted to k.
func (k PieceKind) Promotable() bool {
	return k == Queen || k == Rook || k == Bishop || k == Knight
}

// ParsePieceKind accepts a full name ("queen") or a letter ("q").
func ParsePieceKind(s string) (PieceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "k", "king":
		return King, nil
	case "q", "queen":
		return Queen, nil
	case "r", "rook":
		return Rook, nil
	case "b", "bishop":
		return Bishop, nil
	case "n", "knight":
		return Knight, nil
	case "p", "pawn":
		return Pawn, nil
	}
	return "", fmt.Errorf("unknown piece kind %q", s)
}

type Piece struct {
	Kind     PieceKind `json:"type"`
	Side     Side      `json:"color"`
	HasMoved bool      `json:"hasMoved"`
	Owner    *Player   `json:"-"`
}

func NewPiece(kind PieceKind, side Side) *Piece {
	return &Piece{Kind: kind, Side: side}
}

// Clone copies the piece. The owner is a reference and stays shared.
func (p *Piece) Clone() *Piece {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

var (
	rookDirections   = []Position{{Row: 1}, {Row: -1}, {Col: 1}, {Col: -1}}
	bishopDirections = []Position{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	queenDirections  = append(append([]Position{}, rookDirections...), bishopDirections...)
	knightOffsets    = []Position{
		{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1},
		{Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2},
	}
	kingOffsets = queenDirections
)

// Moves returns the pseudo-legal destinations of the piece standing on from.
// Self-check is not considered.
func (p *Piece) Moves(from Position, b *Board) []Position {
	switch p.Kind {
	case Pawn:
		return p.pawnAdvances(from, b)
	case Knight:
		return p.steps(from, b, knightOffsets)
	case Bishop:
		return p.rayCast(from, b, bishopDirections)
	case Rook:
		return p.rayCast(from, b, rookDirections)
	case Queen:
		return p.rayCast(from, b, queenDirections)
	case King:
		return append(p.steps(from, b, kingOffsets), p.castlingCandidates(from, b)...)
	}
	return nil
}

// Attacks returns the squares the piece threatens. It differs from Moves for
// pawns (diagonal captures only) and kings (no castling squares).
func (p *Piece) Attacks(from Position, b *Board) []Position {
	switch p.Kind {
	case Pawn:
		return p.pawnCaptures(from, b)
	case King:
		return p.steps(from, b, kingOffsets)
	}
	return p.Moves(from, b)
}

// candidates is Moves ∪ Attacks without duplicates.
func (p *Piece) candidates(from Position, b *Board) []Position {
	moves := p.Moves(from, b)
	for _, sq := range p.Attacks(from, b) {
		if !slices.Contains(moves, sq) {
			moves = append(moves, sq)
		}
	}
	return moves
}

// threatens reports whether the piece on from attacks target. Pawns threaten
// both forward diagonals whether or not they are occupied.
func (p *Piece) threatens(from, target Position, b *Board) bool {
	if p.Kind == Pawn {
		fwd := p.Side.forward()
		return target == from.Add(fwd, -1) || target == from.Add(fwd, 1)
	}
	return slices.Contains(p.Attacks(from, b), target)
}

func (p *Piece) rayCast(from Position, b *Board, directions []Position) []Position {
	var squares []Position
	for _, dir := range directions {
		target := from.Add(dir.Row, dir.Col)
		for target.InBounds() {
			if b.IsEmpty(target) {
				squares = append(squares, target)
			} else {
				if b.IsEnemy(target, p.Side) {
					squares = append(squares, target)
				}
				break
			}
			target = target.Add(dir.Row, dir.Col)
		}
	}
	return squares
}

func (p *Piece) steps(from Position, b *Board, offsets []Position) []Position {
	var squares []Position
	for _, off := range offsets {
		target := from.Add(off.Row, off.Col)
		if b.IsEmpty(target) || b.IsEnemy(target, p.Side) {
			squares = append(squares, target)
		}
	}
	return squares
}

func (p *Piece) pawnAdvances(from Position, b *Board) []Position {
	var squares []Position
	fwd := p.Side.forward()
	one := from.Add(fwd, 0)
	if b.IsEmpty(one) {
		squares = append(squares, one)
		two := one.Add(fwd, 0)
		if !p.HasMoved && b.IsEmpty(two) {
			squares = append(squares, two)
		}
	}
	return squares
}

func (p *Piece) pawnCaptures(from Position, b *Board) []Position {
	var squares []Position
	fwd := p.Side.forward()
	for _, dc := range []int{-1, 1} {
		diag := from.Add(fwd, dc)
		if b.IsEnemy(diag, p.Side) || p.canCaptureEnPassant(from, dc, b) {
			squares = append(squares, diag)
		}
	}
	return squares
}

// canCaptureEnPassant reports whether the enemy pawn beside from, in column
// direction dc, has just double-stepped past this pawn.
func (p *Piece) canCaptureEnPassant(from Position, dc int, b *Board) bool {
	if b.PreviousMove == nil {
		return false
	}
	beside := from.Add(0, dc)
	if !b.IsEnemy(beside, p.Side) || b.at(beside).Kind != Pawn {
		return false
	}
	doubleStep := Move{From: beside.Add(2*p.Side.forward(), 0), To: beside, Kind: Pawn}
	return *b.PreviousMove == doubleStep
}

// castlingCandidates advertises the king's castling destinations. Full
// legality (attacked transit squares) is left to ValidateCastling.
func (p *Piece) castlingCandidates(from Position, b *Board) []Position {
	home := Position{Row: p.Side.backRank(), Col: 4}
	if p.HasMoved || from != home || b.IsSquareAttacked(from, p.Side.Opposite()) {
		return nil
	}
	var squares []Position
	for _, dir := range []int{1, -1} {
		if b.castlingPathClear(from, dir, p.Side) {
			squares = append(squares, from.Add(0, 2*dir))
		}
	}
	return squares
}
