// Juggler proof-of-work - Main entry point
//
// Runs the puzzle end to end: create a random puzzle, solve it, check the
// solution, and print wall-clock timings for each phase. Exits nonzero if
// the freshly produced solution fails verification (a bug indicator) or a
// fatal resource error occurs.
package main

import (
	goflag "flag"
	"fmt"
	"os"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/anupsv/juggler-pow/juggler"
)

func main() {
	prefixBits := flag.Int("prefix-bits", juggler.DefaultParams.PrefixBits, "Width of the bucket prefix")
	bucketBits := flag.Int("bucket-bits", juggler.DefaultParams.BucketSizeBits, "Log2 of the slot count per bucket")
	difficulty := flag.Int("difficulty", 0, "Trailing zero bits of the outer proof-of-work (0 = memory bits - 2)")
	inputBuckets := flag.Int("input-buckets", juggler.DefaultParams.InputBuckets, "Buckets fed into the outer proof-of-work")
	workers := flag.Int("workers", runtime.NumCPU(), "Goroutines for the prover's preimage classification")
	printSolution := flag.Bool("print", false, "Print the solution after verifying it")

	klogFlags := goflag.NewFlagSet("klog", goflag.ExitOnError)
	klog.InitFlags(klogFlags)
	flag.CommandLine.AddGoFlagSet(klogFlags)
	flag.Parse()

	params := juggler.Params{
		PrefixBits:     *prefixBits,
		BucketSizeBits: *bucketBits,
		InputBuckets:   *inputBuckets,
		DifficultyBits: *difficulty,
	}
	if params.DifficultyBits == 0 {
		params.DifficultyBits = params.MemoryBits() - 2
	}
	if err := params.Validate(); err != nil {
		klog.Exitf("juggler: %v", err)
	}

	fmt.Printf("Puzzle size: %d bytes\n", juggler.PuzzleSize)
	fmt.Printf("Solution size: %d bytes\n", params.SolutionBytes())
	fmt.Printf("Working set: %s\n", juggler.MemoryFootprint(params))

	start := time.Now()
	puzzle, err := juggler.NewPuzzle(nil)
	if err != nil {
		klog.Exitf("juggler: %v", err)
	}
	fmt.Printf("Time to create a puzzle: %.5fs\n", time.Since(start).Seconds())

	solver, err := juggler.NewSolver(params)
	if err != nil {
		klog.Exitf("juggler: %v", err)
	}
	solver.Workers = *workers

	start = time.Now()
	solution, err := solver.Solve(puzzle)
	if err != nil {
		klog.Exitf("juggler: %v", err)
	}
	fmt.Printf("Time to find a solution: %.5fs\n", time.Since(start).Seconds())

	start = time.Now()
	ok := juggler.CheckSolution(params, puzzle, solution)
	fmt.Printf("Time to check a solution: %.5fs\n", time.Since(start).Seconds())

	if !ok {
		fmt.Println("Solution is wrong (BUG!)")
		os.Exit(1)
	}
	fmt.Println("Solution found.")
	if *printSolution {
		fmt.Print(juggler.FormatSolution(solution))
	}
}
