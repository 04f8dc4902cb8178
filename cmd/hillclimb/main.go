// cmd/hillclimb/main.go
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"othello-engine/config"
	"othello-engine/engine"
	"othello-engine/tuner"
)

var (
	dataDir  = flag.String("data", "", "Directory holding numbered corpus files (0000000.txt, ...)")
	numFiles = flag.Int("files", 1, "Number of corpus files to load")
	binPath  = flag.String("bin", "", "Binary sample cache from cmd/convert, used instead of -data")
	maxRows  = flag.Int("max_rows", 0, "Optional cap on cached samples loaded (0=all)")
	outJSON  = flag.String("out", "weights.json", "Where to write the tuned weights")
	inJSON   = flag.String("init", "", "Optional weights JSON to start from (default: random table)")
	minutes  = flag.Float64("minutes", 10, "Wall-clock budget in minutes")
	maxIters = flag.Int("iters", 0, "Optional cap on iterations (0 = until the budget runs out)")
	step     = flag.Int("step", tuner.DefaultStep, "Largest perturbation of one weight")
	seed     = flag.Uint64("seed", 0, "RNG seed (0 = random)")
	threads  = flag.Int("threads", runtime.NumCPU(), "Loss evaluation workers")
	report   = flag.Duration("report", 10*time.Second, "Progress log interval")
	level    = flag.String("log", "info", "Log level")
)

func main() {
	flag.Parse()
	if *dataDir == "" && *binPath == "" {
		fmt.Println("Usage:")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err := config.SetupLogging(*level, true); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var samples []tuner.Sample
	var err error
	if *binPath != "" {
		samples, err = tuner.LoadBinaryCorpus(*binPath, *maxRows)
	} else {
		samples, err = tuner.LoadCorpus(tuner.CorpusPaths(*dataDir, *numFiles))
	}
	if err != nil {
		log.Fatal().Err(err).Msg("loading corpus")
	}
	if len(samples) == 0 {
		log.Fatal().Str("data", *dataDir).Msg("no samples loaded")
	}
	log.Info().Int("samples", len(samples)).Msg("corpus loaded")

	rng := frand.New()
	if *seed != 0 {
		key := make([]byte, 32)
		binary.LittleEndian.PutUint64(key, *seed)
		rng = frand.NewCustom(key, 1024, 12)
	}

	var w engine.Weights
	if *inJSON != "" {
		if w, err = tuner.LoadWeights(*inJSON); err != nil {
			log.Fatal().Err(err).Msg("loading initial weights")
		}
		log.Info().Str("path", *inJSON).Ints("weights", w[:]).Msg("loaded initial weights")
	} else {
		w = tuner.RandomWeights(rng)
	}

	budget := time.Duration(*minutes * float64(time.Minute))
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	st, err := tuner.HillClimb(ctx, samples, &w, tuner.ClimbConfig{
		MaxIters: *maxIters,
		Step:     *step,
		Workers:  *threads,
		RNG:      rng,
		Report:   *report,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("hill-climb failed")
	}

	if err := os.MkdirAll(filepath.Dir(*outJSON), 0o755); err != nil && !os.IsExist(err) {
		log.Fatal().Err(err).Msg("creating output directory")
	}
	if err := tuner.SaveWeights(*outJSON, &w, st); err != nil {
		log.Fatal().Err(err).Msg("saving weights")
	}
	log.Info().Str("path", *outJSON).Ints("weights", w[:]).Float64("mse", st.MSE).Msg("saved tuned weights")
}
