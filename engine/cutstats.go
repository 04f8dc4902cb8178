package engine

import (
	"fmt"
	"io"
)

// CutStatistics counts how the nodes of one search ended.
type CutStatistics struct {
	BetaCutoffs uint64
	Passes      uint64
	EvalLeaves  uint64
	ExactLeaves uint64
}

// Dump writes the counters in the protocol's info string form.
func (c CutStatistics) Dump(w io.Writer) {
	fmt.Fprintln(w, "info string Cut statistics:")
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", c.BetaCutoffs)
	fmt.Fprintf(w, "info string   Passes: %d\n", c.Passes)
	fmt.Fprintf(w, "info string   Evaluated leaves: %d\n", c.EvalLeaves)
	fmt.Fprintf(w, "info string   Exact leaves: %d\n", c.ExactLeaves)
}
