// tuner/hillclimb.go
package tuner

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"othello-engine/engine"
)

// DefaultStep is the largest perturbation tried on one region weight.
const DefaultStep = 5 * engine.WeightScale

// RandomWeights draws every region weight uniformly from
// [-WeightScale*ScoreMax, WeightScale*ScoreMax].
func RandomWeights(rng *frand.RNG) engine.Weights {
	var w engine.Weights
	const span = engine.WeightScale * engine.ScoreMax
	for i := range w {
		w[i] = rng.Intn(2*span+1) - span
	}
	return w
}

// HillClimb perturbs one region weight at a time and keeps the change when
// the loss does not get worse. It stops after cfg.MaxIters iterations or
// when ctx is done; running out of time is not an error. w holds the best
// table found when it returns.
func HillClimb(ctx context.Context, samples []Sample, w *engine.Weights, cfg ClimbConfig) (Stats, error) {
	start := time.Now()
	rng := cfg.RNG
	if rng == nil {
		rng = frand.New()
	}
	step := cfg.Step
	if step <= 0 {
		step = DefaultStep
	}

	var st Stats
	var err error
	st.MSE, st.MAE, err = Loss(ctx, samples, w, cfg.Workers)
	if err != nil {
		return st, err
	}
	log.Info().Float64("mse", st.MSE).Float64("mae", st.MAE).Int("samples", len(samples)).Msg("initial loss")

	lastReport := start
	for cfg.MaxIters == 0 || st.Iterations < cfg.MaxIters {
		if ctx.Err() != nil {
			break
		}
		st.Iterations++
		idx := rng.Intn(engine.NumRegions)
		old := w[idx]
		for w[idx] == old {
			w[idx] += rng.Intn(2*step+1) - step
		}
		mse, mae, err := Loss(ctx, samples, w, cfg.Workers)
		if err != nil {
			w[idx] = old
			if ctx.Err() != nil {
				break
			}
			return st, err
		}
		if mse <= st.MSE {
			st.MSE, st.MAE = mse, mae
			st.Accepted++
		} else {
			w[idx] = old
		}
		if cfg.Report > 0 && time.Since(lastReport) >= cfg.Report {
			lastReport = time.Now()
			log.Info().Int("iter", st.Iterations).Int("accepted", st.Accepted).
				Float64("mse", st.MSE).Float64("mae", st.MAE).Msg("hill-climb")
		}
	}
	st.Elapsed = time.Since(start)
	log.Info().Int("iter", st.Iterations).Int("accepted", st.Accepted).
		Float64("mse", st.MSE).Float64("mae", st.MAE).Dur("elapsed", st.Elapsed).Msg("hill-climb done")
	return st, nil
}
