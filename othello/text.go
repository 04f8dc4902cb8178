package othello

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedBoard = errors.New("malformed board")

// ParseBoard reads a 64-character board, a1 first and h8 last. '0' and '1'
// mark the two sides' discs, '.' and '-' mark empty cells. side names which
// of '0'/'1' is about to move.
func ParseBoard(s string, side int) (Position, error) {
	var p Position
	if side != 0 && side != 1 {
		return p, fmt.Errorf("%w: side %d", ErrMalformedBoard, side)
	}
	if len(s) != NumCells {
		return p, fmt.Errorf("%w: want %d cells, got %d", ErrMalformedBoard, NumCells, len(s))
	}
	var zero, one uint64
	for i := 0; i < NumCells; i++ {
		bit := uint64(1) << uint(63-i)
		switch s[i] {
		case '0':
			zero |= bit
		case '1':
			one |= bit
		case '.', '-':
		default:
			return Position{}, fmt.Errorf("%w: unexpected %q at %s", ErrMalformedBoard, s[i], Cell(63-i))
		}
	}
	if side == 0 {
		return Position{Player: zero, Opponent: one}, nil
	}
	return Position{Player: one, Opponent: zero}, nil
}

// FormatBoard is the inverse of ParseBoard.
func FormatBoard(p Position, side int) string {
	var b strings.Builder
	b.Grow(NumCells)
	mover, other := byte('0'), byte('1')
	if side == 1 {
		mover, other = other, mover
	}
	for i := 0; i < NumCells; i++ {
		bit := uint64(1) << uint(63-i)
		switch {
		case p.Player&bit != 0:
			b.WriteByte(mover)
		case p.Opponent&bit != 0:
			b.WriteByte(other)
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

// String draws the board with X for the side to move, O for the other side
// and * on legal cells.
func (p Position) String() string {
	var b strings.Builder
	legal := LegalMoves(p)
	b.WriteString("  a b c d e f g h\n")
	for rank := 0; rank < 8; rank++ {
		fmt.Fprintf(&b, "%d", rank+1)
		for file := 0; file < 8; file++ {
			bit := CellAt(file, rank).Bit()
			switch {
			case p.Player&bit != 0:
				b.WriteString(" X")
			case p.Opponent&bit != 0:
				b.WriteString(" O")
			case legal&bit != 0:
				b.WriteString(" *")
			default:
				b.WriteString(" .")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
