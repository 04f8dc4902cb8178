// tuner/loss.go
package tuner

import (
	"context"
	"errors"
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"othello-engine/engine"
)

var ErrNoSamples = errors.New("no training samples")

// minChunk keeps goroutine overhead small against the per-sample cost.
const minChunk = 4096

type partial struct {
	sq, abs float64
}

// Loss returns the mean squared error of the evaluation against the labels,
// each error normalised by the score range, and the mean absolute error in
// discs.
func Loss(ctx context.Context, samples []Sample, w *engine.Weights, workers int) (mse, mae float64, err error) {
	if len(samples) == 0 {
		return 0, 0, ErrNoSamples
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	size := max(minChunk, (len(samples)+workers-1)/workers)
	chunks := lo.Chunk(samples, size)
	parts := make([]partial, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i] = chunkLoss(chunk, w)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	var total partial
	for _, p := range parts {
		total.sq += p.sq
		total.abs += p.abs
	}
	n := float64(len(samples))
	return total.sq / n, total.abs / n, nil
}

func chunkLoss(samples []Sample, w *engine.Weights) partial {
	var p partial
	for _, s := range samples {
		diff := float64(engine.Evaluate(s.Pos, w) - s.Value)
		if diff < 0 {
			diff = -diff
		}
		e := diff / (2 * engine.ScoreMax)
		p.sq += e * e
		p.abs += diff
	}
	return p
}
