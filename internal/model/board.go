package model

import "fmt"

// Board is an 8x8 arena of optional pieces. Each piece is owned by exactly one
// cell; Clone copies every piece so simulations never alias the real game.
type Board struct {
	squares      [BoardSize][BoardSize]*Piece
	PreviousMove *Move
}

// Square is one cell of the board as exposed to collaborators.
type Square struct {
	Position Position `json:"position"`
	Piece    *Piece   `json:"piece"`
}

func NewBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns the initial chess position.
func NewStandardBoard() *Board {
	b := NewBoard()
	backRank := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, kind := range backRank {
		b.squares[0][col] = NewPiece(kind, Black)
		b.squares[1][col] = NewPiece(Pawn, Black)
		b.squares[6][col] = NewPiece(Pawn, White)
		b.squares[7][col] = NewPiece(kind, White)
	}
	return b
}

// Piece returns the piece on pos, or nil for an empty square.
func (b *Board) Piece(pos Position) (*Piece, error) {
	if !pos.InBounds() {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, pos)
	}
	return b.squares[pos.Row][pos.Col], nil
}

// Place puts piece on pos, replacing whatever was there. A nil piece clears
// the square.
func (b *Board) Place(pos Position, piece *Piece) error {
	if !pos.InBounds() {
		return fmt.Errorf("%w: %s", ErrOutOfRange, pos)
	}
	b.squares[pos.Row][pos.Col] = piece
	return nil
}

// at is the unchecked accessor for callers that already validated pos.
func (b *Board) at(pos Position) *Piece {
	return b.squares[pos.Row][pos.Col]
}

func (b *Board) set(pos Position, piece *Piece) {
	b.squares[pos.Row][pos.Col] = piece
}

func (b *Board) Clone() *Board {
	clone := &Board{}
	for row := range b.squares {
		for col, piece := range b.squares[row] {
			clone.squares[row][col] = piece.Clone()
		}
	}
	if b.PreviousMove != nil {
		prev := *b.PreviousMove
		clone.PreviousMove = &prev
	}
	return clone
}

// IsEmpty is false for out-of-range positions.
func (b *Board) IsEmpty(pos Position) bool {
	return pos.InBounds() && b.at(pos) == nil
}

// IsEnemy reports whether pos holds a piece not belonging to side. It is false
// for empty and out-of-range positions.
func (b *Board) IsEnemy(pos Position, side Side) bool {
	if !pos.InBounds() {
		return false
	}
	piece := b.at(pos)
	return piece != nil && piece.Side != side
}

// Squares lists every cell in row-major order.
func (b *Board) Squares() []Square {
	squares := make([]Square, 0, BoardSize*BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			pos := Position{Row: row, Col: col}
			squares = append(squares, Square{Position: pos, Piece: b.at(pos).Clone()})
		}
	}
	return squares
}

// Grid returns a row-major copy of the board for JSON snapshots.
func (b *Board) Grid() [][]*Piece {
	grid := make([][]*Piece, BoardSize)
	for row := range grid {
		grid[row] = make([]*Piece, BoardSize)
		for col := range grid[row] {
			grid[row][col] = b.squares[row][col].Clone()
		}
	}
	return grid
}

type placedPiece struct {
	pos   Position
	piece *Piece
}

func (b *Board) piecesOf(side Side) []placedPiece {
	var pieces []placedPiece
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if piece := b.squares[row][col]; piece != nil && piece.Side == side {
				pieces = append(pieces, placedPiece{pos: Position{Row: row, Col: col}, piece: piece})
			}
		}
	}
	return pieces
}

// MovePiece relocates the piece on from to to, clearing from. Outside a
// simulation a captured piece is credited to the mover's player and
// returned; simulations return no capture and touch no player.
func (b *Board) MovePiece(from, to Position, simulation bool) (*Capture, error) {
	if !from.InBounds() || !to.InBounds() {
		return nil, fmt.Errorf("%w: %s -> %s", ErrOutOfRange, from, to)
	}
	piece := b.at(from)
	if piece == nil {
		return nil, fmt.Errorf("%w: no piece on %s", ErrIllegalPosition, from)
	}
	captured := b.at(to)
	b.set(from, nil)
	b.set(to, piece)
	if simulation || captured == nil {
		return nil, nil
	}
	return recordCapture(piece, captured, from, to), nil
}

// ApplyCastling moves the king two files and the matching rook to the square
// the king crossed, marking both as moved.
func (b *Board) ApplyCastling(kingFrom, kingTo Position) error {
	if !kingFrom.InBounds() || !kingTo.InBounds() {
		return fmt.Errorf("%w: %s -> %s", ErrOutOfRange, kingFrom, kingTo)
	}
	king := b.at(kingFrom)
	if king == nil || king.Kind != King {
		return fmt.Errorf("%w: no king on %s", ErrIllegalPosition, kingFrom)
	}
	rookFrom, rookTo := castlingRookSquares(kingFrom, kingTo)
	rook := b.at(rookFrom)
	if rook == nil || rook.Kind != Rook || rook.Side != king.Side {
		return fmt.Errorf("%w: no rook on %s for castling", ErrIllegalPosition, rookFrom)
	}

	b.set(kingFrom, nil)
	b.set(kingTo, king)
	king.HasMoved = true

	b.set(rookFrom, nil)
	b.set(rookTo, rook)
	rook.HasMoved = true
	return nil
}

func castlingRookSquares(kingFrom, kingTo Position) (from, to Position) {
	if kingTo.Col > kingFrom.Col {
		return Position{Row: kingFrom.Row, Col: 7}, Position{Row: kingFrom.Row, Col: 5}
	}
	return Position{Row: kingFrom.Row, Col: 0}, Position{Row: kingFrom.Row, Col: 3}
}

// castlingPathClear reports whether an unmoved rook of side sits at the end of
// the king's rank in direction dir with only empty squares in between.
func (b *Board) castlingPathClear(kingPos Position, dir int, side Side) bool {
	rookCol := 7
	if dir < 0 {
		rookCol = 0
	}
	rookPos := Position{Row: kingPos.Row, Col: rookCol}
	rook := b.at(rookPos)
	if rook == nil || rook.Kind != Rook || rook.Side != side || rook.HasMoved {
		return false
	}
	for col := kingPos.Col + dir; col != rookCol; col += dir {
		if !b.IsEmpty(Position{Row: kingPos.Row, Col: col}) {
			return false
		}
	}
	return true
}

func isCastlingMove(from, to Position) bool {
	for _, row := range []int{0, BoardSize - 1} {
		if from == (Position{Row: row, Col: 4}) && (to == Position{Row: row, Col: 6} || to == Position{Row: row, Col: 2}) {
			return true
		}
	}
	return false
}

func isEnPassantCapture(piece *Piece, from, to Position, b *Board) bool {
	return piece.Kind == Pawn && from.Col != to.Col && b.at(to) == nil
}

// applyMove performs every board-level side effect of a validated move:
// castling, en-passant removal, then the plain relocation.
func (b *Board) applyMove(from, to Position, simulation bool) (*Capture, error) {
	piece := b.at(from)
	if piece == nil {
		return nil, fmt.Errorf("%w: no piece on %s", ErrIllegalPosition, from)
	}
	if piece.Kind == King && isCastlingMove(from, to) {
		return nil, b.ApplyCastling(from, to)
	}
	if isEnPassantCapture(piece, from, to, b) {
		passed := Position{Row: from.Row, Col: to.Col}
		victim := b.at(passed)
		b.set(passed, nil)
		b.set(from, nil)
		b.set(to, piece)
		if simulation || victim == nil {
			return nil, nil
		}
		capture := recordCapture(piece, victim, from, to)
		capture.EnPassant = true
		return capture, nil
	}
	return b.MovePiece(from, to, simulation)
}

func recordCapture(mover, captured *Piece, from, to Position) *Capture {
	if mover.Owner != nil {
		mover.Owner.Captured = append(mover.Owner.Captured, captured)
	}
	return &Capture{
		Mover:    mover.Clone(),
		Captured: captured.Clone(),
		From:     from,
		To:       to,
	}
}
