// tuner/types.go
package tuner

import (
	"time"

	"lukechampine.com/frand"

	"othello-engine/othello"
)

// Sample is one labelled training position. Value is the final disc
// differential from the point of view of Pos's side to move.
type Sample struct {
	Pos   othello.Position
	Value int
}

type ClimbConfig struct {
	MaxIters int           // 0 = run until the context is done
	Step     int           // largest single perturbation, in weight units
	Workers  int           // loss evaluation goroutines
	RNG      *frand.RNG    // nil = fresh random stream
	Report   time.Duration // progress log interval (0 = silent)
}

// Stats describes the state of a hill-climbing run.
type Stats struct {
	Iterations int
	Accepted   int
	MSE        float64
	MAE        float64
	Elapsed    time.Duration
}
