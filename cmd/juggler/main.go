// Command juggler is a utility for creating puzzles and producing and
// checking solutions across a process boundary. Puzzles travel as hex
// strings; solutions travel as binary files in the canonical wire layout.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/anupsv/juggler-pow/juggler"
)

// Command represents a subcommand
type Command struct {
	Name        string
	Description string
	Execute     func(args []string) error
}

func main() {
	commands := []Command{
		{
			Name:        "puzzle",
			Description: "Generate a new random puzzle",
			Execute:     cmdPuzzle,
		},
		{
			Name:        "solve",
			Description: "Find a solution to a puzzle",
			Execute:     cmdSolve,
		},
		{
			Name:        "verify",
			Description: "Check a solution against a puzzle",
			Execute:     cmdVerify,
		},
	}

	if len(os.Args) < 2 {
		showHelp(commands)
		os.Exit(1)
	}

	for _, cmd := range commands {
		if cmd.Name == os.Args[1] {
			if err := cmd.Execute(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
	showHelp(commands)
	os.Exit(1)
}

func showHelp(commands []Command) {
	fmt.Println("Usage: juggler <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	for _, cmd := range commands {
		fmt.Printf("  %-10s %s\n", cmd.Name, cmd.Description)
	}
}

// paramFlags registers the parameter flags shared by solve and verify.
func paramFlags(fs *flag.FlagSet) *juggler.Params {
	params := &juggler.Params{}
	fs.IntVar(&params.PrefixBits, "prefix-bits", juggler.DefaultParams.PrefixBits, "Width of the bucket prefix")
	fs.IntVar(&params.BucketSizeBits, "bucket-bits", juggler.DefaultParams.BucketSizeBits, "Log2 of the slot count per bucket")
	fs.IntVar(&params.InputBuckets, "input-buckets", juggler.DefaultParams.InputBuckets, "Buckets fed into the outer proof-of-work")
	fs.IntVar(&params.DifficultyBits, "difficulty", 0, "Trailing zero bits of the outer proof-of-work (0 = memory bits - 2)")
	return params
}

func resolveParams(params *juggler.Params) error {
	if params.DifficultyBits == 0 {
		params.DifficultyBits = params.MemoryBits() - 2
	}
	return params.Validate()
}

// readPuzzle decodes a puzzle from its hex form.
func readPuzzle(hexStr string) (*juggler.Puzzle, error) {
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("decoding puzzle hex: %w", err)
	}
	if len(raw) != juggler.PuzzleSize {
		return nil, fmt.Errorf("puzzle must be %d bytes, got %d", juggler.PuzzleSize, len(raw))
	}
	var p juggler.Puzzle
	copy(p[:], raw)
	return &p, nil
}

func cmdPuzzle(args []string) error {
	fs := flag.NewFlagSet("puzzle", flag.ExitOnError)
	out := fs.String("out", "", "Write the puzzle hex to a file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	puzzle, err := juggler.NewPuzzle(nil)
	if err != nil {
		return err
	}

	encoded := hex.EncodeToString(puzzle[:])
	if *out != "" {
		return os.WriteFile(*out, []byte(encoded+"\n"), 0644)
	}
	fmt.Println(encoded)
	return nil
}

func cmdSolve(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	params := paramFlags(fs)
	puzzleHex := fs.String("puzzle", "", "Puzzle to solve, as hex")
	out := fs.String("out", "solution.bin", "Output file for the solution bytes")
	workers := fs.Int("workers", runtime.NumCPU(), "Goroutines for the prover's preimage classification")
	printSolution := fs.Bool("print", false, "Print the solution")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := resolveParams(params); err != nil {
		return err
	}
	if *puzzleHex == "" {
		return fmt.Errorf("--puzzle is required")
	}

	puzzle, err := readPuzzle(*puzzleHex)
	if err != nil {
		return err
	}

	solver, err := juggler.NewSolver(*params)
	if err != nil {
		return err
	}
	solver.Workers = *workers

	fmt.Printf("Solving with working set %s...\n", juggler.MemoryFootprint(*params))
	start := time.Now()
	solution, err := solver.Solve(puzzle)
	if err != nil {
		return err
	}
	fmt.Printf("Solved in %.3fs (extra nonce %d, selector %d)\n",
		time.Since(start).Seconds(), solution.ExtraNonce, solution.Selector)

	wire, err := solution.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, wire, 0644); err != nil {
		return fmt.Errorf("writing solution: %w", err)
	}
	fmt.Printf("Wrote %d solution bytes to %s\n", len(wire), *out)

	if *printSolution {
		fmt.Print(juggler.FormatSolution(solution))
	}
	return nil
}

func cmdVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	params := paramFlags(fs)
	puzzleHex := fs.String("puzzle", "", "Puzzle the solution claims to answer, as hex")
	in := fs.String("in", "solution.bin", "Solution file to check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := resolveParams(params); err != nil {
		return err
	}
	if *puzzleHex == "" {
		return fmt.Errorf("--puzzle is required")
	}

	puzzle, err := readPuzzle(*puzzleHex)
	if err != nil {
		return err
	}

	wire, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("reading solution: %w", err)
	}
	solution, err := juggler.UnmarshalSolution(*params, wire)
	if err != nil {
		return err
	}

	start := time.Now()
	ok := juggler.CheckSolution(*params, puzzle, solution)
	elapsed := time.Since(start).Seconds()
	if !ok {
		return fmt.Errorf("solution is INVALID (checked in %.3fs)", elapsed)
	}
	fmt.Printf("Solution is valid (checked in %.3fs)\n", elapsed)
	return nil
}
