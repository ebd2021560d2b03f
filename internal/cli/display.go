package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/model"
)

// Terminal color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

func paint(color bool, code, text string) string {
	if !color {
		return text
	}
	return code + text + Reset
}

// PieceSymbol is the letter for a piece, upper case for White.
func PieceSymbol(p *model.Piece) string {
	if p == nil {
		return "."
	}
	if p.Side == model.White {
		return strings.ToUpper(p.Kind.Letter())
	}
	return strings.ToLower(p.Kind.Letter())
}

// RenderBoard writes the board with rank 8 at the top. Highlighted squares
// are shown as '*' when empty.
func RenderBoard(w io.Writer, b *model.Board, color bool, highlight []model.Position) {
	files := "  a b c d e f g h"
	fmt.Fprintln(w, paint(color, Cyan, files))
	for row := 0; row < model.BoardSize; row++ {
		rank := fmt.Sprintf("%d", model.BoardSize-row)
		var line strings.Builder
		line.WriteString(paint(color, Cyan, rank))
		for col := 0; col < model.BoardSize; col++ {
			pos := model.Position{Row: row, Col: col}
			p, _ := b.Piece(pos)
			line.WriteByte(' ')
			switch {
			case p == nil && slices.Contains(highlight, pos):
				line.WriteString(paint(color, Green, "*"))
			case p == nil:
				line.WriteString(".")
			case slices.Contains(highlight, pos):
				line.WriteString(paint(color, Yellow, PieceSymbol(p)))
			case p.Side == model.White:
				line.WriteString(paint(color, Blue, PieceSymbol(p)))
			default:
				line.WriteString(paint(color, Red, PieceSymbol(p)))
			}
		}
		line.WriteByte(' ')
		line.WriteString(paint(color, Cyan, rank))
		fmt.Fprintln(w, line.String())
	}
	fmt.Fprintln(w, paint(color, Cyan, files))
}
