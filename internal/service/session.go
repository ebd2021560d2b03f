package service

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v any) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type gameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

// Session wraps one engine game with its seated players, observers and
// clocks. All engine access goes through the session mutex.
type Session struct {
	ID string

	mu        sync.Mutex
	game      *model.Game
	players   map[model.Side]string
	drawOffer model.Side
	clockTime time.Duration
	clocks    map[model.Side]*Clock
	conns     *gameConnections
}

// View is the state sent to clients: the engine snapshot plus session data.
type View struct {
	ID string `json:"id"`
	model.Snapshot
	Players   Seats      `json:"players"`
	Clocks    *ClockView `json:"clocks,omitempty"`
	DrawOffer model.Side `json:"drawOffer,omitempty"`
}

type Seats struct {
	White string `json:"white"`
	Black string `json:"black"`
}

// ClockView holds remaining time in milliseconds.
type ClockView struct {
	White int64 `json:"white"`
	Black int64 `json:"black"`
}

func newSession(id string, clockTime time.Duration) *Session {
	s := &Session{
		ID:        id,
		game:      model.NewGame(),
		players:   make(map[model.Side]string),
		clockTime: clockTime,
		conns:     &gameConnections{connections: make(map[string]Conn)},
	}
	s.resetClocks()
	return s
}

func (s *Session) resetClocks() {
	for _, c := range s.clocks {
		c.Stop()
	}
	s.clocks = nil
	if s.clockTime <= 0 {
		return
	}
	s.clocks = make(map[model.Side]*Clock, 2)
	for _, side := range []model.Side{model.White, model.Black} {
		s.clocks[side] = NewClock(s.clockTime, func() { s.flag(side) })
	}
}

// startOpeningClock starts White's clock once both seats are taken, so the
// first move is timed too.
func (s *Session) startOpeningClock() {
	if s.clocks == nil || s.players[model.White] == "" || s.players[model.Black] == "" {
		return
	}
	if len(s.game.History()) > 0 || s.game.State().Terminal() {
		return
	}
	s.clocks[s.game.Turn()].Start()
}

// Join seats playerID on the first free side. A player already seated gets
// their side back.
func (s *Session) Join(playerID string) (model.Side, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if side, ok := s.sideOf(playerID); ok {
		return side, nil
	}
	for _, side := range []model.Side{model.White, model.Black} {
		if s.players[side] == "" {
			s.players[side] = playerID
			log.Printf("game %s: player %s joined as %s", s.ID, playerID, side)
			s.startOpeningClock()
			s.broadcastLocked()
			return side, nil
		}
	}
	return "", ErrGameFull
}

func (s *Session) sideOf(playerID string) (model.Side, bool) {
	for side, id := range s.players {
		if id == playerID {
			return side, true
		}
	}
	return "", false
}

func (s *Session) SideOf(playerID string) (model.Side, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sideOf(playerID)
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		ID:        s.ID,
		Snapshot:  s.game.Snapshot(),
		Players:   Seats{White: s.players[model.White], Black: s.players[model.Black]},
		DrawOffer: s.drawOffer,
	}
	if s.clocks != nil {
		v.Clocks = &ClockView{
			White: s.clocks[model.White].TimeLeft().Milliseconds(),
			Black: s.clocks[model.Black].TimeLeft().Milliseconds(),
		}
	}
	return v
}

func (s *Session) LegalMoves(from model.Position) ([]model.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalMoves(from)
}

// seatedToMove returns the side of playerID, failing when the player is not
// seated or it is not their turn.
func (s *Session) seatedToMove(playerID string) (model.Side, error) {
	side, ok := s.sideOf(playerID)
	if !ok {
		return "", ErrNotInGame
	}
	if side != s.game.Turn() {
		return "", fmt.Errorf("%w: %s to move", ErrNotYourTurn, s.game.Turn())
	}
	return side, nil
}

// Move plays from -> to for playerID. A non-empty promotion completes a
// promotion in the same call.
func (s *Session) Move(playerID string, from, to model.Position, promotion model.PieceKind) (model.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.seatedToMove(playerID); err != nil {
		return model.MoveResult{}, err
	}
	result, err := s.game.AttemptMoveWithPromotion(from, to, promotion)
	if err != nil {
		return result, err
	}
	s.afterPly(result)
	return result, nil
}

func (s *Session) Promote(playerID string, kind model.PieceKind) (model.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.seatedToMove(playerID); err != nil {
		return model.MoveResult{}, err
	}
	result, err := s.game.CompletePromotion(kind)
	if err != nil {
		return result, err
	}
	s.afterPly(result)
	return result, nil
}

func (s *Session) afterPly(result model.MoveResult) {
	if result.PendingPromotion {
		s.broadcastLocked()
		return
	}
	s.drawOffer = ""
	log.Printf("game %s: %s played %s (%s)", s.ID, result.Ply.Side, result.Ply.Move, result.State)

	if s.clocks != nil {
		s.clocks[result.Ply.Side].Stop()
		if !result.State.Terminal() {
			s.clocks[result.ToMove].Start()
		}
	}
	if result.Capture != nil {
		s.sendLocked(ws.MessageTypeCapture, result.Capture)
	}
	s.broadcastLocked()
}

func (s *Session) Resign(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	side, ok := s.sideOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if err := s.game.Resign(side); err != nil {
		return err
	}
	log.Printf("game %s: %s resigned", s.ID, side)
	s.stopClocks()
	s.broadcastLocked()
	return nil
}

// OfferDraw records a draw offer from playerID. When the opponent already
// offered, the game ends drawn and accepted is true.
func (s *Session) OfferDraw(playerID string) (accepted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	side, ok := s.sideOf(playerID)
	if !ok {
		return false, ErrNotInGame
	}
	if s.game.State().Terminal() {
		return false, model.ErrGameOver
	}
	if s.drawOffer == side.Opposite() {
		if err := s.game.AgreeDraw(); err != nil {
			return false, err
		}
		s.drawOffer = ""
		log.Printf("game %s: draw agreed", s.ID)
		s.stopClocks()
		s.broadcastLocked()
		return true, nil
	}
	s.drawOffer = side
	s.sendLocked(ws.MessageTypeDrawOffer, ws.DrawOfferPayload{From: string(side)})
	s.broadcastLocked()
	return false, nil
}

// Reset starts a fresh game with the same seats.
func (s *Session) Reset(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sideOf(playerID); !ok {
		return ErrNotInGame
	}
	s.game = model.NewGame()
	s.drawOffer = ""
	s.resetClocks()
	s.startOpeningClock()
	log.Printf("game %s: reset by %s", s.ID, playerID)
	s.broadcastLocked()
	return nil
}

// flag is the clock expiry callback.
func (s *Session) flag(side model.Side) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clock, ok := s.clocks[side]
	if !ok || clock.TimeLeft() > 0 || s.game.State().Terminal() {
		return
	}
	if err := s.game.Flag(side); err != nil {
		log.Printf("game %s: flag %s: %v", s.ID, side, err)
		return
	}
	log.Printf("game %s: %s ran out of time", s.ID, side)
	s.stopClocks()
	s.broadcastLocked()
}

func (s *Session) stopClocks() {
	for _, c := range s.clocks {
		c.Stop()
	}
}

// RegisterConnection attaches conn for playerID, who may be a spectator. A
// second connection for the same player is closed.
func (s *Session) RegisterConnection(playerID string, conn Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conns.mu.Lock()
	if _, exists := s.conns.connections[playerID]; exists {
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		s.conns.mu.Unlock()
		return
	}
	s.conns.connections[playerID] = conn
	s.conns.mu.Unlock()
	log.Printf("game %s: registered connection for %s", s.ID, playerID)

	s.broadcastLocked()
}

// UnregisterConnection drops the connection of playerID if it is still conn.
func (s *Session) UnregisterConnection(playerID string, conn Conn) {
	s.conns.mu.Lock()
	defer s.conns.mu.Unlock()

	if current, exists := s.conns.connections[playerID]; exists && current == conn {
		delete(s.conns.connections, playerID)
		log.Printf("game %s: unregistered connection for %s", s.ID, playerID)
	}
}

func (s *Session) ConnectionCount() int {
	s.conns.mu.Lock()
	defer s.conns.mu.Unlock()
	return len(s.conns.connections)
}

func (s *Session) broadcastLocked() {
	s.sendLocked(ws.MessageTypeGameState, s.viewLocked())
}

// sendLocked writes one message to every connection, dropping those that
// fail. Callers hold s.mu so messages keep the order of state changes. Every
// write to a connection happens under conns.mu.
func (s *Session) sendLocked(t ws.MessageType, payload any) {
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		log.Printf("game %s: marshal %s: %v", s.ID, t, err)
		return
	}

	s.conns.mu.Lock()
	defer s.conns.mu.Unlock()
	for playerID, conn := range s.conns.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: failed to send %s to %s: %v", s.ID, t, playerID, err)
			delete(s.conns.connections, playerID)
		}
	}
}

// SendError writes an error message to conn. It shares the connection lock
// with broadcasts so a connection never has two writers.
func (s *Session) SendError(conn Conn, cause error) {
	s.conns.mu.Lock()
	defer s.conns.mu.Unlock()
	writeError(conn, cause)
}

func writeError(conn Conn, cause error) {
	payload, _ := json.Marshal(ws.ErrorPayload{Error: cause.Error()})
	if err := conn.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload}); err != nil {
		log.Printf("failed to send error: %v", err)
	}
}
