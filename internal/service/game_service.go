package service

import (
	"fmt"
	"log"
	"slices"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

// GameService is the string-level facade used by the REST and websocket
// controllers.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	s, err := gs.gameManager.CreateGame()
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return s.ID, nil
}

func (gs *GameService) Exists(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Side, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return s.Join(playerID)
}

func (gs *GameService) GetGameState(gameID string) (View, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return View{}, err
	}
	return s.View(), nil
}

// LegalMoves returns the destinations, as square names, of the piece on the
// named square.
func (gs *GameService) LegalMoves(gameID string, from string) ([]string, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	pos, err := model.ParseSquare(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	dests, err := s.LegalMoves(pos)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(dests))
	for _, d := range dests {
		names = append(names, d.String())
	}
	slices.Sort(names)
	return names, nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, move ws.MovePayload) (model.MoveResult, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}
	from, to, promotion, err := parseMove(move)
	if err != nil {
		return model.MoveResult{}, err
	}
	result, err := s.Move(playerID, from, to, promotion)
	if err != nil {
		log.Printf("game %s: rejected move %s-%s from %s: %v", gameID, move.From, move.To, playerID, err)
	}
	return result, err
}

func (gs *GameService) HandlePromotion(gameID string, playerID string, piece string) (model.MoveResult, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}
	kind, err := model.ParsePieceKind(piece)
	if err != nil {
		return model.MoveResult{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return s.Promote(playerID, kind)
}

func (gs *GameService) Resign(gameID string, playerID string) error {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return s.Resign(playerID)
}

func (gs *GameService) OfferDraw(gameID string, playerID string) (bool, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return false, err
	}
	return s.OfferDraw(playerID)
}

func (gs *GameService) ResetGame(gameID string, playerID string) error {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return s.Reset(playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	s.RegisterConnection(playerID, conn)
	return nil
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	s.UnregisterConnection(playerID, conn)
}

// SendError replies to one connection of the game. Without a session there
// is no other writer, so the error is written directly.
func (gs *GameService) SendError(gameID string, conn Conn, cause error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		writeError(conn, cause)
		return
	}
	s.SendError(conn, cause)
}

func parseMove(move ws.MovePayload) (from, to model.Position, promotion model.PieceKind, err error) {
	if from, err = model.ParseSquare(move.From); err != nil {
		return from, to, "", fmt.Errorf("%w: from: %w", ErrBadRequest, err)
	}
	if to, err = model.ParseSquare(move.To); err != nil {
		return from, to, "", fmt.Errorf("%w: to: %w", ErrBadRequest, err)
	}
	if move.Promotion != "" {
		if promotion, err = model.ParsePieceKind(move.Promotion); err != nil {
			return from, to, "", fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
	}
	return from, to, promotion, nil
}
