package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"othello-engine/engine"
	"othello-engine/tuner"
)

var regionNames = [engine.NumRegions]string{
	"corner", "C", "A", "B", "X", "", "", "", "", "centre",
}

// render formats w as the engine's DefaultWeights declaration.
func render(w engine.Weights, source string) string {
	var b strings.Builder
	b.WriteString("package engine\n\n")
	fmt.Fprintf(&b, "// DefaultWeights was tuned by cmd/hillclimb (%s).\n", filepath.Base(source))
	b.WriteString("// cmd/export_eval regenerates this file from a tuned table.\n")
	b.WriteString("var DefaultWeights = Weights{\n")
	for i, v := range w {
		if regionNames[i] != "" {
			fmt.Fprintf(&b, "\t%d, // %s\n", v, regionNames[i])
		} else {
			fmt.Fprintf(&b, "\t%d,\n", v)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func main() {
	inPath := flag.String("in", "weights.json", "input weights JSON path")
	outPath := flag.String("out", "engine/eval_defaults.go", "output path for the generated table")
	flag.Parse()

	// Allow a positional output path after flags.
	if args := flag.Args(); len(args) > 0 && !strings.HasPrefix(args[len(args)-1], "-") {
		*outPath = args[len(args)-1]
	}

	w, err := tuner.LoadWeights(*inPath)
	if err != nil {
		panic(err)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(*outPath, []byte(render(w, *inPath)), 0o644); err != nil {
		panic(err)
	}
}
