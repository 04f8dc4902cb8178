package othello

// Ray directions as signed shifts. Each pair shares the mask that strips
// the edge columns (and rows, for verticals) a shift would wrap across.
var (
	shifts = [8]int{1, -1, 8, -8, 7, -7, 9, -9}
	masks  = [4]uint64{
		0x7E7E7E7E7E7E7E7E,
		0x00FFFFFFFFFFFF00,
		0x007E7E7E7E7E7E00,
		0x007E7E7E7E7E7E00,
	}
)

func shift(x uint64, s int) uint64 {
	if s >= 0 {
		return x << uint(s)
	}
	return x >> uint(-s)
}

// LegalMoves returns the empty cells where the side to move can play.
// A zero result means the side to move has to pass.
func LegalMoves(p Position) uint64 {
	var legal uint64
	for i, s := range shifts {
		o := p.Opponent & masks[i/2]
		l := o & shift(p.Player, s)
		// a run holds at most six discs: one above plus five here
		for j := 0; j < 5; j++ {
			l |= o & shift(l, s)
		}
		legal |= shift(l, s)
	}
	return legal & p.Empties()
}

// ComputeFlip returns the opponent discs captured by playing at c. The result
// is empty when c is occupied or flanks nothing.
func ComputeFlip(p Position, c Cell) Flip {
	f := Flip{Cell: c}
	x := uint64(1) << uint(c)
	if p.Occupied()&x != 0 {
		return f
	}
	for i, s := range shifts {
		f.Mask |= flipRay(p, s, masks[i/2], x)
	}
	return f
}

// flipRay walks from x along s through opponent discs. The run counts only
// when it ends on one of the mover's discs.
func flipRay(p Position, s int, mask, x uint64) uint64 {
	o := p.Opponent & mask
	run := shift(x, s) & o
	for i := 0; i < 8 && run != 0; i++ {
		next := shift(run, s)
		if next&p.Player != 0 {
			return run
		}
		grown := run | next&o
		if grown == run {
			return 0
		}
		run = grown
	}
	return 0
}

// Move plays c if it is legal and reports whether it was.
func (p Position) Move(c Cell) (Position, bool) {
	if c < 0 || c >= NumCells || LegalMoves(p)&(1<<uint(c)) == 0 {
		return p, false
	}
	return p.Apply(ComputeFlip(p, c)), true
}
