package model

import (
	"errors"
	"fmt"
)

type GameState string

const (
	InProgress GameState = "in_progress"
	Check      GameState = "check"
	Checkmate  GameState = "checkmate"
	Stalemate  GameState = "stalemate"
	Draw       GameState = "draw"
	Resigned   GameState = "resigned"
)

// Terminal reports whether no further moves are allowed.
func (s GameState) Terminal() bool {
	switch s {
	case Checkmate, Stalemate, Draw, Resigned:
		return true
	}
	return false
}

// Game is a single match. It is not safe for concurrent use; callers
// serialise access.
type Game struct {
	board   *Board
	toMove  Side
	state   GameState
	players map[Side]*Player
	history []Ply
	pending *pendingPromotion
	winner  Side
}

type pendingPromotion struct {
	at      Position
	ply     Ply
	capture *Capture
}

// Snapshot is the serialisable view of a game: enough to render, resume or
// replay it.
type Snapshot struct {
	Board           [][]*Piece     `json:"board"`
	ToMove          Side           `json:"toMove"`
	State           GameState      `json:"state"`
	IsCheck         bool           `json:"isCheck"`
	MoveHistory     []Ply          `json:"moveHistory"`
	CapturedPieces  CapturedPieces `json:"capturedPieces"`
	CapturedCounts  CaptureCounts  `json:"capturedCounts"`
	PromotionSquare *Position      `json:"promotionSquare"`
	LastMove        *Move          `json:"lastMove"`
	Winner          *Side          `json:"winner"`
	MaterialBalance int            `json:"materialBalance"`
}

// CaptureCounts holds, per side, how many pieces of each kind it has taken.
type CaptureCounts struct {
	White map[PieceKind]int `json:"white"`
	Black map[PieceKind]int `json:"black"`
}

// CapturedPieces lists, per side, the pieces that side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame() *Game {
	g := &Game{
		board:  NewStandardBoard(),
		toMove: White,
		state:  InProgress,
		players: map[Side]*Player{
			White: NewPlayer(White),
			Black: NewPlayer(Black),
		},
		history: make([]Ply, 0),
	}
	g.adoptPieces()
	return g
}

// NewGameFrom starts a game from an arbitrary position with turn to move. The
// board is copied. Both kings must be present and the side not to move must
// not be in check.
func NewGameFrom(board *Board, turn Side) (*Game, error) {
	if !turn.Valid() {
		return nil, fmt.Errorf("invalid side %q", turn)
	}
	g := &Game{
		board:  board.Clone(),
		toMove: turn,
		state:  InProgress,
		players: map[Side]*Player{
			White: NewPlayer(White),
			Black: NewPlayer(Black),
		},
		history: make([]Ply, 0),
	}
	g.adoptPieces()

	opponentInCheck, err := g.board.IsInCheck(turn.Opposite())
	if err != nil {
		return nil, err
	}
	if opponentInCheck {
		return nil, fmt.Errorf("%w: %s to move but %s is in check", ErrIllegalPosition, turn, turn.Opposite())
	}
	if err := g.updateState(turn); err != nil {
		return nil, err
	}
	if g.state == Checkmate {
		g.winner = turn.Opposite()
	}
	return g, nil
}

func (g *Game) adoptPieces() {
	for _, side := range []Side{White, Black} {
		for _, pp := range g.board.piecesOf(side) {
			pp.piece.Owner = g.players[side]
		}
	}
}

func (g *Game) Turn() Side {
	return g.toMove
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) Player(side Side) *Player {
	return g.players[side]
}

// Board returns a copy of the current board.
func (g *Game) Board() *Board {
	return g.board.Clone()
}

func (g *Game) PieceAt(pos Position) (*Piece, error) {
	piece, err := g.board.Piece(pos)
	return piece.Clone(), err
}

func (g *Game) History() []Ply {
	return append([]Ply(nil), g.history...)
}

// PendingPromotion returns the square awaiting a promotion choice.
func (g *Game) PendingPromotion() (Position, bool) {
	if g.pending == nil {
		return Position{}, false
	}
	return g.pending.at, true
}

// LegalMoves lists the destinations of the piece on from for highlighting.
// It is empty for the side not to move and once the game is over.
func (g *Game) LegalMoves(from Position) ([]Position, error) {
	if g.state.Terminal() || g.pending != nil {
		if !from.InBounds() {
			return nil, fmt.Errorf("%w: %s", ErrOutOfRange, from)
		}
		return []Position{}, nil
	}
	return g.board.LegalMoves(from, g.toMove)
}

// AttemptMove validates and applies a move for the side to move. Illegal
// moves return an error wrapping ErrIllegalMove and leave the game untouched.
// When a pawn reaches its last rank the result has PendingPromotion set and
// the ply is only finished by CompletePromotion.
func (g *Game) AttemptMove(from, to Position) (MoveResult, error) {
	if g.state.Terminal() {
		return MoveResult{}, ErrGameOver
	}
	if g.pending != nil {
		return MoveResult{}, fmt.Errorf("%w: %w on %s", ErrIllegalMove, ErrPromotionPending, g.pending.at)
	}
	if err := g.board.ValidateMove(from, to, g.toMove); err != nil {
		return MoveResult{}, err
	}

	piece := g.board.at(from)
	ply := Ply{
		Move:          Move{From: from, To: to, Kind: piece.Kind},
		Side:          g.toMove,
		CapturedPiece: g.board.at(to).Clone(),
	}
	if piece.Kind == King && isCastlingMove(from, to) {
		rookFrom, rookTo := castlingRookSquares(from, to)
		ply.CastleRookMove = &CastleRookMove{From: rookFrom, To: rookTo}
	}

	capture, err := g.board.applyMove(from, to, false)
	if err != nil {
		return MoveResult{}, err
	}
	if capture != nil {
		ply.CapturedPiece = capture.Captured
	}
	piece.HasMoved = true

	if piece.Kind == Pawn && to.Row == piece.Side.promotionRow() {
		g.pending = &pendingPromotion{at: to, ply: ply, capture: capture}
		return MoveResult{
			Ply:              ply,
			Capture:          capture,
			PendingPromotion: true,
			State:            g.state,
			ToMove:           g.toMove,
		}, nil
	}
	return g.finishPly(ply, capture)
}

// AttemptMoveWithPromotion plays a move and, if it promotes, immediately
// completes the promotion with kind. An invalid kind is rejected before the
// board is touched.
func (g *Game) AttemptMoveWithPromotion(from, to Position, kind PieceKind) (MoveResult, error) {
	if kind != "" && !kind.Promotable() {
		return MoveResult{}, fmt.Errorf("%w: %q", ErrInvalidPromotion, kind)
	}
	result, err := g.AttemptMove(from, to)
	if err != nil || !result.PendingPromotion || kind == "" {
		return result, err
	}
	return g.CompletePromotion(kind)
}

// TryMove reports whether the move was applied.
func (g *Game) TryMove(from, to Position) bool {
	_, err := g.AttemptMove(from, to)
	return err == nil
}

// CompletePromotion replaces the pawn awaiting promotion with kind and
// finishes the ply. An invalid kind leaves the promotion pending.
func (g *Game) CompletePromotion(kind PieceKind) (MoveResult, error) {
	if g.pending == nil {
		return MoveResult{}, ErrNoPendingPromotion
	}
	if !kind.Promotable() {
		return MoveResult{}, fmt.Errorf("%w: %q", ErrInvalidPromotion, kind)
	}
	pawn := g.board.at(g.pending.at)
	if pawn == nil || pawn.Kind != Pawn {
		return MoveResult{}, fmt.Errorf("%w: no pawn awaiting promotion on %s", ErrIllegalPosition, g.pending.at)
	}
	g.board.set(g.pending.at, &Piece{Kind: kind, Side: pawn.Side, HasMoved: true, Owner: pawn.Owner})

	ply, capture := g.pending.ply, g.pending.capture
	ply.Promotion = kind
	g.pending = nil
	return g.finishPly(ply, capture)
}

func (g *Game) finishPly(ply Ply, capture *Capture) (MoveResult, error) {
	move := ply.Move
	g.board.PreviousMove = &move

	opponent := g.toMove.Opposite()
	if err := g.updateState(opponent); err != nil {
		return MoveResult{}, err
	}
	if g.state == Checkmate {
		g.winner = g.toMove
	}
	if !g.state.Terminal() {
		g.toMove = opponent
	}
	g.history = append(g.history, ply)

	return MoveResult{
		Ply:     ply,
		Capture: capture,
		State:   g.state,
		ToMove:  g.toMove,
	}, nil
}

// updateState recomputes the state for side, in priority order checkmate,
// stalemate, check.
func (g *Game) updateState(side Side) error {
	mate, err := g.board.IsCheckmate(side)
	if err != nil {
		return err
	}
	if mate {
		g.state = Checkmate
		return nil
	}
	stale, err := g.board.IsStalemate(side)
	if err != nil {
		return err
	}
	if stale {
		g.state = Stalemate
		return nil
	}
	inCheck, err := g.board.IsInCheck(side)
	if err != nil {
		return err
	}
	if inCheck {
		g.state = Check
	} else {
		g.state = InProgress
	}
	return nil
}

// Resign ends the game with side as the loser.
func (g *Game) Resign(side Side) error {
	if !side.Valid() {
		return fmt.Errorf("invalid side %q", side)
	}
	if g.state.Terminal() {
		return ErrGameOver
	}
	g.pending = nil
	g.state = Resigned
	g.winner = side.Opposite()
	return nil
}

// Flag records that side ran out of time. The engine treats it as a
// resignation.
func (g *Game) Flag(side Side) error {
	return g.Resign(side)
}

func (g *Game) AgreeDraw() error {
	if g.state.Terminal() {
		return ErrGameOver
	}
	g.pending = nil
	g.state = Draw
	return nil
}

// Winner returns the winning side after checkmate or resignation.
func (g *Game) Winner() (Side, bool) {
	if g.state == Checkmate || g.state == Resigned {
		return g.winner, true
	}
	return "", false
}

func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Board:       g.board.Grid(),
		ToMove:      g.toMove,
		State:       g.state,
		IsCheck:     g.state == Check || g.state == Checkmate,
		MoveHistory: g.History(),
		CapturedPieces: CapturedPieces{
			White: capturedValues(g.players[White]),
			Black: capturedValues(g.players[Black]),
		},
		CapturedCounts: CaptureCounts{
			White: g.players[White].CapturedCounts(),
			Black: g.players[Black].CapturedCounts(),
		},
		MaterialBalance: g.players[White].Material() - g.players[Black].Material(),
	}
	if g.pending != nil {
		at := g.pending.at
		snap.PromotionSquare = &at
	}
	if g.board.PreviousMove != nil {
		last := *g.board.PreviousMove
		snap.LastMove = &last
	}
	if winner, ok := g.Winner(); ok {
		snap.Winner = &winner
	}
	return snap
}

func capturedValues(p *Player) []Piece {
	pieces := make([]Piece, 0, len(p.Captured))
	for _, piece := range p.Captured {
		pieces = append(pieces, *piece)
	}
	return pieces
}

// IsRuleViolation reports whether err is an ordinary rejected move rather
// than a broken invariant.
func IsRuleViolation(err error) bool {
	return errors.Is(err, ErrIllegalMove) || errors.Is(err, ErrGameOver) ||
		errors.Is(err, ErrInvalidPromotion) || errors.Is(err, ErrNoPendingPromotion)
}
