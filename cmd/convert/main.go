package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"othello-engine/config"
	"othello-engine/tuner"
)

func main() {
	dataDir := flag.String("data", "", "Directory holding numbered corpus files")
	numFiles := flag.Int("files", 1, "Number of corpus files to convert")
	output := flag.String("out", "", "Output binary file")
	flag.Parse()

	if *dataDir == "" || *output == "" {
		fmt.Println("Usage: convert -data <dir> -files N -out <output.bin>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if err := config.SetupLogging("info", true); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*output), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}
	n, err := tuner.ConvertToBinary(tuner.CorpusPaths(*dataDir, *numFiles), *output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conversion failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Converted %d samples to %s\n", n, *output)
}
