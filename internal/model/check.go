package model

import "fmt"

// KingPosition locates side's king. A board without one is corrupt.
func (b *Board) KingPosition(side Side) (Position, error) {
	for _, pp := range b.piecesOf(side) {
		if pp.piece.Kind == King {
			return pp.pos, nil
		}
	}
	return Position{}, fmt.Errorf("%w: no %s king on the board", ErrIllegalPosition, side)
}

func (b *Board) IsInCheck(side Side) (bool, error) {
	king, err := b.KingPosition(side)
	if err != nil {
		return false, err
	}
	return b.IsSquareAttacked(king, side.Opposite()), nil
}

// IsSquareAttacked reports whether any piece of attacker threatens target.
func (b *Board) IsSquareAttacked(target Position, attacker Side) bool {
	for _, pp := range b.piecesOf(attacker) {
		if pp.piece.threatens(pp.pos, target, b) {
			return true
		}
	}
	return false
}

// IsCheckmate is true when side is in check and no candidate move of any of
// its pieces, simulated on a clone, gets the king out of check.
func (b *Board) IsCheckmate(side Side) (bool, error) {
	inCheck, err := b.IsInCheck(side)
	if err != nil || !inCheck {
		return false, err
	}
	canMove, err := b.HasLegalMove(side)
	return !canMove, err
}

// IsStalemate is true when side is not in check but has no move that keeps
// its king safe.
func (b *Board) IsStalemate(side Side) (bool, error) {
	inCheck, err := b.IsInCheck(side)
	if err != nil || inCheck {
		return false, err
	}
	canMove, err := b.HasLegalMove(side)
	return !canMove, err
}

// HasLegalMove stops at the first move of side that passes validation.
func (b *Board) HasLegalMove(side Side) (bool, error) {
	for _, pp := range b.piecesOf(side) {
		for _, to := range pp.piece.candidates(pp.pos, b) {
			ok, err := b.isLegal(pp.pos, to, side)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}
