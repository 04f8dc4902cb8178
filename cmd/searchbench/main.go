package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog/log"

	"othello-engine/config"
	"othello-engine/engine"
	"othello-engine/othello"
	"othello-engine/tuner"
)

func main() {
	depthFlag := flag.Int("depth", 10, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	boardFlag := flag.String("board", "", "64-character board to search (empty = initial position)")
	sideFlag := flag.Int("side", 0, "side to move for -board")
	weightsFlag := flag.String("weights", "", "weights JSON (empty = built-in table)")
	cutStats := flag.Bool("cutstats", false, "print cut statistics after each search")
	levelFlag := flag.String("log", "info", "log level (debug shows root move scores)")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if err := config.SetupLogging(*levelFlag, true); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *depthFlag <= 0 || *depthFlag > engine.MaxDepth {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be in 1..60")
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	pos := othello.Initial()
	if *boardFlag != "" {
		var err error
		if pos, err = othello.ParseBoard(*boardFlag, *sideFlag); err != nil {
			log.Fatal().Err(err).Msg("parsing board")
		}
	}
	weights := engine.DefaultWeights
	if *weightsFlag != "" {
		var err error
		if weights, err = tuner.LoadWeights(*weightsFlag); err != nil {
			log.Fatal().Err(err).Msg("loading weights")
		}
	}

	fmt.Printf("searchbench: board=%s depth=%d repeat=%d\n", othello.FormatBoard(pos, *sideFlag), *depthFlag, *repeatFlag)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		s := engine.NewSearcher(&weights, nil)
		iterStart := time.Now()
		res, err := s.BestMove(pos, *depthFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("search failed")
		}
		iterElapsed := time.Since(iterStart)
		totalNodes += res.Nodes
		fmt.Printf("iteration %d: bestmove %s score %d nodes=%d time=%v\n", i+1, res.Cell, res.Score, res.Nodes, iterElapsed)
		if *cutStats {
			s.Cuts.Dump(os.Stdout)
		}
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v nodes=%d nps=%.0f\n", totalElapsed, totalNodes, float64(totalNodes)/totalElapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}
