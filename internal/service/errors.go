package service

import "errors"

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameFull     = errors.New("game is full")
	ErrNotInGame    = errors.New("player is not seated in this game")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrTooManyGames = errors.New("too many active games")
	ErrBadRequest   = errors.New("bad request")
)
