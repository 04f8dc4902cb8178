package othello

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Perft counts the leaves of the game tree to the given depth. A forced pass
// uses up a ply; a finished game is a single leaf.
func Perft(p Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	legal := LegalMoves(p)
	if legal == 0 {
		passed := p.Pass()
		if LegalMoves(passed) == 0 {
			return 1
		}
		return Perft(passed, depth-1)
	}
	var nodes uint64
	for legal != 0 {
		c := PopCell(&legal)
		nodes += Perft(p.Apply(ComputeFlip(p, c)), depth-1)
	}
	return nodes
}

// PerftDivide runs Perft below every root move in parallel. A root without
// moves is reported under NoCell.
func PerftDivide(ctx context.Context, p Position, depth int) (map[Cell]uint64, error) {
	legal := LegalMoves(p)
	if legal == 0 || depth <= 0 {
		return map[Cell]uint64{NoCell: Perft(p, depth)}, nil
	}
	cells := Cells(legal)
	counts := make([]uint64, len(cells))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range cells {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			counts[i] = Perft(p.Apply(ComputeFlip(p, c)), depth-1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[Cell]uint64, len(cells))
	for i, c := range cells {
		out[c] = counts[i]
	}
	return out, nil
}
