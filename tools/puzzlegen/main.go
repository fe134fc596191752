package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/anupsv/juggler-pow/juggler"
)

func main() {
	// Define command-line flags
	count := flag.Int("count", 1, "Number of puzzles to generate")
	outputFile := flag.String("output", "", "Output file for puzzle hex lines (optional)")
	flag.Parse()

	if *count < 1 {
		fmt.Fprintln(os.Stderr, "Error: count must be at least 1")
		os.Exit(1)
	}

	var lines []byte
	for i := 0; i < *count; i++ {
		puzzle, err := juggler.NewPuzzle(nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating puzzle: %v\n", err)
			os.Exit(1)
		}
		lines = append(lines, hex.EncodeToString(puzzle[:])...)
		lines = append(lines, '\n')
	}

	// Write to file or stdout
	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, lines, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d puzzle(s) to %s\n", *count, *outputFile)
		return
	}
	os.Stdout.Write(lines)
}
