// Package cli is a hot-seat terminal front end for the engine: it renders the
// board and turns typed commands into engine calls.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/model"
)

const helpText = `Commands:
  e2 e4        move a piece (e7 e8 q promotes directly)
  moves e2     show legal destinations of the piece on e2
  promote q    choose the promotion piece (q, r, b, n)
  resign       the side to move resigns
  draw         both players agree to a draw
  new          start a new game
  board        show the board
  help         show this help
  quit         leave`

type CLI struct {
	game  *model.Game
	out   io.Writer
	color bool
}

func New(out io.Writer, color bool) *CLI {
	return &CLI{game: model.NewGame(), out: out, color: color}
}

func (c *CLI) Game() *model.Game {
	return c.game
}

// Prompt shows whose turn it is.
func (c *CLI) Prompt() string {
	side := paint(c.color, Blue, "White")
	if c.game.Turn() == model.Black {
		side = paint(c.color, Red, "Black")
	}
	if _, pending := c.game.PendingPromotion(); pending {
		return fmt.Sprintf("chess [%s promote] > ", side)
	}
	return fmt.Sprintf("chess [%s] > ", side)
}

// Execute runs one command line and reports whether the user asked to quit.
func (c *CLI) Execute(line string) (quit bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(c.out, helpText)
	case "board":
		c.showBoard(nil)
	case "new":
		c.game = model.NewGame()
		c.showBoard(nil)
	case "moves":
		c.moves(fields[1:])
	case "promote":
		c.promote(fields[1:])
	case "resign":
		side := c.game.Turn()
		c.report(c.game.Resign(side))
	case "draw":
		c.report(c.game.AgreeDraw())
	default:
		c.move(fields)
	}
	return false
}

func (c *CLI) showBoard(highlight []model.Position) {
	RenderBoard(c.out, c.game.Board(), c.color, highlight)
}

func (c *CLI) errorf(format string, args ...any) {
	fmt.Fprintln(c.out, paint(c.color, Red, fmt.Sprintf(format, args...)))
}

func (c *CLI) moves(args []string) {
	if len(args) != 1 {
		c.errorf("usage: moves e2")
		return
	}
	from, err := model.ParseSquare(args[0])
	if err != nil {
		c.errorf("%v", err)
		return
	}
	dests, err := c.game.LegalMoves(from)
	if err != nil {
		c.errorf("%v", err)
		return
	}
	if len(dests) == 0 {
		fmt.Fprintf(c.out, "no legal moves from %s\n", from)
		return
	}
	c.showBoard(append(dests, from))
	names := make([]string, 0, len(dests))
	for _, d := range dests {
		names = append(names, d.String())
	}
	fmt.Fprintf(c.out, "%s: %s\n", from, strings.Join(names, " "))
}

// move accepts "e2 e4", "e2e4" and an optional promotion piece.
func (c *CLI) move(fields []string) {
	args := fields
	if len(fields) == 1 && len(fields[0]) >= 4 {
		args = []string{fields[0][:2], fields[0][2:4]}
		if len(fields[0]) > 4 {
			args = append(args, fields[0][4:])
		}
	}
	if len(args) < 2 || len(args) > 3 {
		c.errorf("unknown command %q, type 'help'", strings.Join(fields, " "))
		return
	}

	from, err := model.ParseSquare(args[0])
	if err != nil {
		c.errorf("%v", err)
		return
	}
	to, err := model.ParseSquare(args[1])
	if err != nil {
		c.errorf("%v", err)
		return
	}
	var kind model.PieceKind
	if len(args) == 3 {
		if kind, err = model.ParsePieceKind(args[2]); err != nil {
			c.errorf("%v", err)
			return
		}
	}

	result, err := c.game.AttemptMoveWithPromotion(from, to, kind)
	if err != nil {
		c.errorf("%v", err)
		return
	}
	c.announce(result)
}

func (c *CLI) promote(args []string) {
	if len(args) != 1 {
		c.errorf("usage: promote q")
		return
	}
	kind, err := model.ParsePieceKind(args[0])
	if err != nil {
		c.errorf("%v", err)
		return
	}
	result, err := c.game.CompletePromotion(kind)
	if err != nil {
		c.errorf("%v", err)
		return
	}
	c.announce(result)
}

func (c *CLI) announce(result model.MoveResult) {
	c.showBoard(nil)
	if result.PendingPromotion {
		fmt.Fprintf(c.out, "pawn on %s promotes: choose with 'promote q|r|b|n'\n", result.Ply.To)
		return
	}
	if result.Capture != nil {
		fmt.Fprintf(c.out, "%s %s captured %s %s on %s\n",
			result.Capture.Mover.Side, result.Capture.Mover.Kind,
			result.Capture.Captured.Side, result.Capture.Captured.Kind, result.Capture.To)
	}
	c.status()
}

func (c *CLI) report(err error) {
	if err != nil {
		c.errorf("%v", err)
		return
	}
	c.status()
}

func (c *CLI) status() {
	switch c.game.State() {
	case model.Check:
		fmt.Fprintln(c.out, paint(c.color, Yellow, fmt.Sprintf("%s is in check", c.game.Turn())))
	case model.Checkmate, model.Resigned:
		winner, _ := c.game.Winner()
		fmt.Fprintln(c.out, paint(c.color, Green, fmt.Sprintf("%s: %s wins", c.game.State(), winner)))
	case model.Stalemate, model.Draw:
		fmt.Fprintln(c.out, paint(c.color, Green, fmt.Sprintf("%s: game drawn", c.game.State())))
	}
}
