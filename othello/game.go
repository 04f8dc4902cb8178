package othello

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

const (
	Black = 0
	White = 1
)

// Game layers colour bookkeeping on top of a Position. Side is the colour
// about to move. Forced passes are taken automatically after each move.
type Game struct {
	Pos   Position
	Side  int
	Over  bool
	Moves []Cell
}

func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

func (g *Game) Reset() {
	g.Pos = Initial()
	g.Side = Black
	g.Over = false
	g.Moves = g.Moves[:0]
}

// Load replaces the current position. A side that cannot move passes
// straight away, as it would after a regular move.
func (g *Game) Load(p Position, side int) {
	g.Pos = p
	g.Side = side
	g.Over = false
	g.Moves = g.Moves[:0]
	g.settle()
}

func (g *Game) Play(c Cell) error {
	if g.Over {
		return ErrGameOver
	}
	next, ok := g.Pos.Move(c)
	if !ok {
		return fmt.Errorf("%w: %s", ErrIllegalMove, c)
	}
	g.Pos = next
	g.Side ^= 1
	g.Moves = append(g.Moves, c)
	g.settle()
	return nil
}

func (g *Game) settle() {
	if LegalMoves(g.Pos) != 0 {
		return
	}
	g.Pos = g.Pos.Pass()
	g.Side ^= 1
	if LegalMoves(g.Pos) == 0 {
		g.Over = true
	}
}

// Score returns the disc counts by colour.
func (g *Game) Score() (black, white int) {
	mover, other := g.Pos.DiscCount()
	if g.Side == Black {
		return mover, other
	}
	return other, mover
}

// Board renders the position in the ParseBoard format with '0' for black.
func (g *Game) Board() string {
	return FormatBoard(g.Pos, g.Side)
}
