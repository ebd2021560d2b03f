package model

import "errors"

var (
	// ErrOutOfRange is returned when a position outside the 8x8 grid is
	// used to index the board.
	ErrOutOfRange = errors.New("position out of range")

	// ErrIllegalPosition signals a corrupted board, e.g. a missing king or a
	// missing castling rook. It is never a player error.
	ErrIllegalPosition = errors.New("illegal position")

	// ErrIllegalMove wraps every reason a move attempt is rejected.
	ErrIllegalMove = errors.New("illegal move")

	ErrNoPiece            = errors.New("no piece at from square")
	ErrWrongSide          = errors.New("piece belongs to the other side")
	ErrUnreachable        = errors.New("piece cannot reach destination")
	ErrSelfCheck          = errors.New("move would leave own king in check")
	ErrCastlingNotAllowed = errors.New("castling not allowed")

	ErrInvalidPromotion   = errors.New("invalid promotion piece")
	ErrPromotionPending   = errors.New("promotion choice pending")
	ErrNoPendingPromotion = errors.New("no promotion pending")
	ErrGameOver           = errors.New("game is over")
)
