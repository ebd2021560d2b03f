package model

// Player tracks the pieces a side has captured from its opponent. It takes no
// part in rule decisions.
type Player struct {
	Side     Side     `json:"color"`
	Captured []*Piece `json:"captured"`
}

func NewPlayer(side Side) *Player {
	return &Player{Side: side, Captured: make([]*Piece, 0)}
}

// Material is the summed value of the captured pieces.
func (p *Player) Material() int {
	total := 0
	for _, piece := range p.Captured {
		total += piece.Kind.Value()
	}
	return total
}

func (p *Player) CapturedCounts() map[PieceKind]int {
	counts := map[PieceKind]int{Pawn: 0, Bishop: 0, Knight: 0, Rook: 0, Queen: 0, King: 0}
	for _, piece := range p.Captured {
		counts[piece.Kind]++
	}
	return counts
}
