package othello

import "math/bits"

// Cell indexes the 64 board cells. Bit i of a mask is cell i.
type Cell int

const (
	NoCell   Cell = -1
	NumCells      = 64
)

// Starting discs, from the point of view of the side to move (black).
const (
	initialPlayer   uint64 = 0x0000000810000000
	initialOpponent uint64 = 0x0000001008000000
)

// Position is a bitboard pair. Player holds the discs of the side about to
// move, Opponent the other side's discs. The masks are always disjoint.
type Position struct {
	Player   uint64
	Opponent uint64
}

// Flip is the result of playing at Cell: Mask holds the opponent discs it
// captures.
type Flip struct {
	Cell Cell
	Mask uint64
}

// Initial returns the four-disc starting layout with black to move.
func Initial() Position {
	return Position{Player: initialPlayer, Opponent: initialOpponent}
}

// Apply plays f and hands the turn to the other side.
func (p Position) Apply(f Flip) Position {
	p.Player ^= f.Mask | 1<<uint(f.Cell)
	p.Opponent ^= f.Mask
	return Position{Player: p.Opponent, Opponent: p.Player}
}

// Undo is the inverse of Apply for the same flip.
func (p Position) Undo(f Flip) Position {
	p.Player, p.Opponent = p.Opponent, p.Player
	p.Player ^= f.Mask | 1<<uint(f.Cell)
	p.Opponent ^= f.Mask
	return p
}

// Pass swaps the sides without touching the board.
func (p Position) Pass() Position {
	return Position{Player: p.Opponent, Opponent: p.Player}
}

func (p Position) Occupied() uint64 { return p.Player | p.Opponent }

func (p Position) Empties() uint64 { return ^(p.Player | p.Opponent) }

func (p Position) IsFull() bool { return p.Player|p.Opponent == ^uint64(0) }

// DiscCount returns the number of discs for the side to move and the other side.
func (p Position) DiscCount() (player, opponent int) {
	return bits.OnesCount64(p.Player), bits.OnesCount64(p.Opponent)
}

// Valid reports whether the two masks are disjoint.
func (p Position) Valid() bool { return p.Player&p.Opponent == 0 }

// GameOver reports whether neither side has a legal move.
func (p Position) GameOver() bool {
	return LegalMoves(p) == 0 && LegalMoves(p.Pass()) == 0
}

// PopCell removes the lowest set bit of *mask and returns its cell.
func PopCell(mask *uint64) Cell {
	c := Cell(bits.TrailingZeros64(*mask))
	*mask &= *mask - 1
	return c
}

// Cells lists the set bits of mask in ascending index order.
func Cells(mask uint64) []Cell {
	out := make([]Cell, 0, bits.OnesCount64(mask))
	for mask != 0 {
		out = append(out, PopCell(&mask))
	}
	return out
}
