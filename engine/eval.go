package engine

import (
	"math/bits"

	"othello-engine/othello"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// ScoreMax bounds every score the search can return, exact or not.
	ScoreMax = othello.NumCells
	// Infinity is one past any reachable score; cancelled nodes return -Infinity.
	Infinity = ScoreMax + 1
	// WeightScale is the number of weight units per disc of score.
	WeightScale = 256
)

// NumRegions is the number of symmetric board regions the evaluator weighs.
const NumRegions = 10

// RegionMasks partitions the board into rings of symmetric cells, corners
// first and the four centre cells last.
var RegionMasks = [NumRegions]uint64{
	0x8100000000000081, // corners
	0x4281000000008142, // C-squares
	0x2400810000810024, // A-squares
	0x1800008181000018, // B-squares
	0x0042000000004200, // X-squares
	0x0024420000422400,
	0x0018004242001800,
	0x0000240000240000,
	0x0000182424180000,
	0x0000001818000000, // centre
}

// Weights holds one value per region, in WeightScale units.
type Weights [NumRegions]int

// FlatWeights counts discs only.
var FlatWeights = Weights{
	WeightScale, WeightScale, WeightScale, WeightScale, WeightScale,
	WeightScale, WeightScale, WeightScale, WeightScale, WeightScale,
}

// Evaluate scores p from the side to move's point of view. The result is
// clamped to ±ScoreMax so it never exceeds an exact end-of-game score.
func Evaluate(p othello.Position, w *Weights) int {
	return Clamp(roundDiv(RawEvaluate(p, w), WeightScale), -ScoreMax, ScoreMax)
}

// RawEvaluate is the unscaled, unclamped weighted region sum.
func RawEvaluate(p othello.Position, w *Weights) int {
	var sum int
	for i, m := range RegionMasks {
		sum += w[i] * (bits.OnesCount64(p.Player&m) - bits.OnesCount64(p.Opponent&m))
	}
	return sum
}

// FinalScore is the exact result of a finished game: the disc differential
// with the empty cells credited to whoever leads. A drawn game scores 0 even
// with empty cells left. Engines that hand the empties to the opponent score
// that draw as minus the number of empties instead; this one does not.
func FinalScore(p othello.Position) int {
	mover, other := p.DiscCount()
	empties := othello.NumCells - mover - other
	switch {
	case mover > other:
		return mover - other + empties
	case mover < other:
		return mover - other - empties
	}
	return 0
}
