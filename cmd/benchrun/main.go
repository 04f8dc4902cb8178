package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// run streams a tool's output to ours and reports the exit status it ended
// with, or 1 when it could not be started at all.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stdout
	err := cmd.Run()
	var exit *exec.ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return exit.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "benchrun: %s: %v\n", name, err)
	return 1
}

func main() {
	// Usage: go run ./cmd/benchrun
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s")
	if code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for _, depth := range []string{"6", "8", "10"} {
		run("go", "run", "./cmd/perft", "-depth", depth, "-label", "Initial")
	}
	// Corners taken, centre as in the opening.
	_ = run("go", "run", "./cmd/perft",
		"-board", "0......1...................10......01...................1......0",
		"-depth", "6", "-label", "Corners")

	fmt.Println("\nSearch:")
	_ = run("go", "run", "./cmd/searchbench", "-depth", "10")
	os.Exit(0)
}
