// Command bench measures solve and verify latency across parameter scales
// and optionally renders the series to a PNG chart.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	flag "github.com/spf13/pflag"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/anupsv/juggler-pow/juggler"
)

func main() {
	minPrefix := flag.Int("min-prefix", 8, "Smallest prefix width to benchmark")
	maxPrefix := flag.Int("max-prefix", 12, "Largest prefix width to benchmark")
	bucketBits := flag.Int("bucket-bits", 4, "Log2 of the slot count per bucket")
	inputBuckets := flag.Int("input-buckets", juggler.DefaultParams.InputBuckets, "Buckets fed into the outer proof-of-work")
	iterations := flag.Int("iterations", 3, "Puzzles solved per parameter set")
	workers := flag.Int("workers", runtime.NumCPU(), "Goroutines for the prover's preimage classification")
	chartOut := flag.String("chart", "", "Render the latency series to this PNG file")
	flag.Parse()

	if *minPrefix > *maxPrefix {
		fmt.Fprintln(os.Stderr, "Error: min-prefix must not exceed max-prefix")
		os.Exit(1)
	}
	if *iterations < 1 {
		fmt.Fprintln(os.Stderr, "Error: iterations must be at least 1")
		os.Exit(1)
	}

	var xs, solveMs, verifyMs []float64

	fmt.Printf("%-12s %-10s %-12s %-12s\n", "prefix bits", "memory", "solve", "verify")
	for p := *minPrefix; p <= *maxPrefix; p++ {
		params := juggler.Params{
			PrefixBits:     p,
			BucketSizeBits: *bucketBits,
			InputBuckets:   *inputBuckets,
			DifficultyBits: p + *bucketBits - 2,
		}
		if err := params.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		solver, err := juggler.NewSolver(params)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		solver.Workers = *workers

		var solveTotal, verifyTotal time.Duration
		for i := 0; i < *iterations; i++ {
			puzzle, err := juggler.NewPuzzle(nil)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			start := time.Now()
			solution, err := solver.Solve(puzzle)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			solveTotal += time.Since(start)

			start = time.Now()
			if !juggler.CheckSolution(params, puzzle, solution) {
				fmt.Fprintln(os.Stderr, "Error: produced solution failed verification (BUG)")
				os.Exit(1)
			}
			verifyTotal += time.Since(start)
		}

		solveAvg := solveTotal / time.Duration(*iterations)
		verifyAvg := verifyTotal / time.Duration(*iterations)
		fmt.Printf("%-12d %-10s %-12s %-12s\n",
			p, humanize.IBytes(params.ProverMemory()), solveAvg.Round(time.Microsecond), verifyAvg.Round(time.Microsecond))

		xs = append(xs, float64(p))
		solveMs = append(solveMs, float64(solveAvg.Microseconds())/1000)
		verifyMs = append(verifyMs, float64(verifyAvg.Microseconds())/1000)
	}

	if *chartOut != "" {
		if err := renderChart(*chartOut, xs, solveMs, verifyMs); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote chart to %s\n", *chartOut)
	}
}

func renderChart(path string, xs, solveMs, verifyMs []float64) error {
	graph := chart.Chart{
		Title: "Juggler solve/verify latency",
		XAxis: chart.XAxis{Name: "prefix bits"},
		YAxis: chart.YAxis{Name: "milliseconds"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "solve", XValues: xs, YValues: solveMs},
			chart.ContinuousSeries{Name: "verify", XValues: xs, YValues: verifyMs},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}
