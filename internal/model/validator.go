package model

import (
	"errors"
	"fmt"
	"slices"
)

func rejected(reason error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrIllegalMove, reason, fmt.Sprintf(format, args...))
}

// ValidateMove is the single legality gate. A nil result means side may move
// the piece on from to to. Rule violations wrap ErrIllegalMove; a corrupted
// board yields an ErrIllegalPosition error instead.
func (b *Board) ValidateMove(from, to Position, side Side) error {
	if !from.InBounds() || !to.InBounds() {
		return rejected(ErrOutOfRange, "%s -> %s", from, to)
	}
	piece := b.at(from)
	if piece == nil {
		return rejected(ErrNoPiece, "%s", from)
	}
	if piece.Side != side {
		return rejected(ErrWrongSide, "%s on %s is %s", piece.Kind, from, piece.Side)
	}

	if piece.Kind == King && isCastlingMove(from, to) {
		return b.ValidateCastling(from, to, side)
	}

	if !slices.Contains(piece.candidates(from, b), to) {
		return rejected(ErrUnreachable, "%s %s -> %s", piece.Kind, from, to)
	}

	selfCheck, err := b.wouldCauseSelfCheck(from, to, side)
	if err != nil {
		return err
	}
	if selfCheck {
		return rejected(ErrSelfCheck, "%s -> %s", from, to)
	}
	return nil
}

func (b *Board) IsMoveValid(from, to Position, side Side) bool {
	return b.ValidateMove(from, to, side) == nil
}

// ValidateCastling checks king and rook are home and unmoved, the squares
// between them are empty, the king is not in check, and no square the king
// crosses or lands on is attacked once the castling is played on a clone.
func (b *Board) ValidateCastling(kingFrom, kingTo Position, side Side) error {
	king := b.at(kingFrom)
	if king == nil || king.Kind != King || king.Side != side || king.HasMoved {
		return rejected(ErrCastlingNotAllowed, "king on %s has moved or is missing", kingFrom)
	}
	dir := 1
	if kingTo.Col < kingFrom.Col {
		dir = -1
	}
	if !b.castlingPathClear(kingFrom, dir, side) {
		return rejected(ErrCastlingNotAllowed, "rook missing, moved or path blocked")
	}
	opponent := side.Opposite()
	if b.IsSquareAttacked(kingFrom, opponent) {
		return rejected(ErrCastlingNotAllowed, "king is in check")
	}

	sim := b.Clone()
	if err := sim.ApplyCastling(kingFrom, kingTo); err != nil {
		return err
	}
	lo, hi := min(kingFrom.Col, kingTo.Col), max(kingFrom.Col, kingTo.Col)
	for col := lo; col <= hi; col++ {
		sq := Position{Row: kingFrom.Row, Col: col}
		if sim.IsSquareAttacked(sq, opponent) {
			return rejected(ErrCastlingNotAllowed, "%s is attacked", sq)
		}
	}
	return nil
}

func (b *Board) wouldCauseSelfCheck(from, to Position, side Side) (bool, error) {
	sim := b.Clone()
	if _, err := sim.applyMove(from, to, true); err != nil {
		return false, err
	}
	return sim.IsInCheck(side)
}

// isLegal separates a rule rejection (false, nil) from a corrupt board.
func (b *Board) isLegal(from, to Position, side Side) (bool, error) {
	err := b.ValidateMove(from, to, side)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrIllegalMove):
		return false, nil
	}
	return false, err
}

// LegalMoves lists the destinations the piece on from may move to when it is
// side's turn.
func (b *Board) LegalMoves(from Position, side Side) ([]Position, error) {
	piece, err := b.Piece(from)
	if err != nil {
		return nil, err
	}
	legal := make([]Position, 0)
	if piece == nil || piece.Side != side {
		return legal, nil
	}
	for _, to := range piece.candidates(from, b) {
		ok, err := b.isLegal(from, to, side)
		if err != nil {
			return nil, err
		}
		if ok {
			legal = append(legal, to)
		}
	}
	return legal, nil
}

// AllLegalMoves lists every legal move of side.
func (b *Board) AllLegalMoves(side Side) ([]Move, error) {
	var moves []Move
	for _, pp := range b.piecesOf(side) {
		dests, err := b.LegalMoves(pp.pos, side)
		if err != nil {
			return nil, err
		}
		for _, to := range dests {
			moves = append(moves, Move{From: pp.pos, To: to, Kind: pp.piece.Kind})
		}
	}
	return moves, nil
}

// PseudoLegalMoves lists Moves ∪ Attacks for every piece of side, ignoring
// self-check.
func (b *Board) PseudoLegalMoves(side Side) []Move {
	var moves []Move
	for _, pp := range b.piecesOf(side) {
		for _, to := range pp.piece.candidates(pp.pos, b) {
			moves = append(moves, Move{From: pp.pos, To: to, Kind: pp.piece.Kind})
		}
	}
	return moves
}
