package othello

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedCell = errors.New("malformed cell name")

const fileNames = "abcdefgh"

// File returns the column 0..7 (a..h) of c.
func (c Cell) File() int { return 7 - int(c)%8 }

// Rank returns the row 0..7 (1..8) of c.
func (c Cell) Rank() int { return 7 - int(c)/8 }

// CellAt is the inverse of File and Rank.
func CellAt(file, rank int) Cell {
	return Cell((7-rank)*8 + 7 - file)
}

// String names the cell "a1".."h8", or "pass" for NoCell.
func (c Cell) String() string {
	if c < 0 || c >= NumCells {
		return "pass"
	}
	return fmt.Sprintf("%c%d", fileNames[c.File()], c.Rank()+1)
}

// Bit returns the single-bit mask of c.
func (c Cell) Bit() uint64 { return 1 << uint(c) }

// ParseCell reads a name such as "d3". Case is ignored.
func ParseCell(s string) (Cell, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return NoCell, fmt.Errorf("%w: %q", ErrMalformedCell, s)
	}
	file := strings.IndexByte(fileNames, s[0])
	rank := int(s[1] - '1')
	if file < 0 || rank < 0 || rank > 7 {
		return NoCell, fmt.Errorf("%w: %q", ErrMalformedCell, s)
	}
	return CellAt(file, rank), nil
}
