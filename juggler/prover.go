package juggler

import (
	"fmt"
	"sync"

	"k8s.io/klog/v2"
)

// classifyChunk is the number of preimages the parallel prover hashes per
// fan-out round. Bucket updates are applied between rounds, in ascending
// preimage order, so parallel and sequential provers emit identical bytes.
const classifyChunk = 1 << 16

// Solver owns the bucket table for one prover. The table is the expensive
// part of proving (2^PrefixBits buckets; see Params.ProverMemory), so a
// Solver is built once and reused across puzzles. A Solver is not safe for
// concurrent use; run one Solver per goroutine instead.
type Solver struct {
	// Workers sets the number of goroutines used to classify preimages
	// during the bucket fill. Zero or one selects the sequential reference
	// path. Any setting produces byte-identical solutions.
	Workers int

	params   Params
	store    *bucketStore
	prefixes []Word // selector expansion scratch
	concat   []byte // outer proof-of-work input scratch
	chunk    []Word // parallel classification scratch, nil until needed
}

// NewSolver validates the parameter set and allocates the bucket table.
func NewSolver(params Params) (*Solver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Solver{
		params:   params,
		store:    newBucketStore(params),
		prefixes: make([]Word, 0, params.InputBuckets),
		concat:   make([]byte, 0, params.InputBuckets*params.BucketBytes()),
	}, nil
}

// Params returns the parameter set the solver was built for.
func (s *Solver) Params() Params { return s.params }

// FindSolution solves a puzzle with a freshly allocated solver. Callers
// solving more than one puzzle should build a Solver once and reuse it.
func FindSolution(params Params, puzzle *Puzzle) (*Solution, error) {
	solver, err := NewSolver(params)
	if err != nil {
		return nil, err
	}
	return solver.Solve(puzzle)
}

// Solve searches for a solution to the puzzle. Each attempt fills the entire
// bucket table for the current extra nonce, then scans selectors for an
// outer proof-of-work hit; an exhausted selector budget is not an error,
// just a retry with the next extra nonce. The returned Solution is complete
// and valid; Solve never returns a partial one.
func (s *Solver) Solve(puzzle *Puzzle) (*Solution, error) {
	for extraNonce := uint32(0); ; extraNonce++ {
		o := newOracle(s.params, puzzle, extraNonce)

		klog.V(2).Infof("juggler: filling %d buckets for extra nonce %d", s.params.NumBuckets(), extraNonce)
		s.store.reset()
		s.fill(puzzle, extraNonce, o)

		if sol := s.search(puzzle, extraNonce, o); sol != nil {
			return sol, nil
		}

		klog.V(1).Infof("juggler: no solution within selector budget, retrying with extra nonce %d", extraNonce+1)
		if extraNonce == ^uint32(0) {
			// The extra nonce space is 2^32 attempts; running it dry does
			// not happen for honest parameter sets.
			return nil, fmt.Errorf("extra nonce space exhausted")
		}
	}
}

// fill streams every preimage in [0, 2^MemoryBits) into the bucket table.
func (s *Solver) fill(puzzle *Puzzle, extraNonce uint32, o *oracle) {
	total := s.params.PreimageCount()
	if s.Workers <= 1 {
		for x := Word(0); x < total; x++ {
			s.store.update(o.hashPrefix(x), x)
		}
		return
	}
	s.fillParallel(puzzle, extraNonce, total)
}

// fillParallel hashes preimages in fixed chunks across worker goroutines and
// applies the resulting updates sequentially. Only the classification runs
// concurrently; the arrival order seen by every bucket is exactly the
// ascending order of the sequential path.
func (s *Solver) fillParallel(puzzle *Puzzle, extraNonce uint32, total Word) {
	workers := s.Workers
	oracles := make([]*oracle, workers)
	for i := range oracles {
		oracles[i] = newOracle(s.params, puzzle, extraNonce)
	}
	if s.chunk == nil {
		s.chunk = make([]Word, classifyChunk)
	}

	for start := Word(0); start < total; start += classifyChunk {
		end := start + classifyChunk
		if end > total {
			end = total
		}
		span := end - start
		per := (span + Word(workers) - 1) / Word(workers)

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			lo := start + Word(w)*per
			if lo >= end {
				break
			}
			hi := lo + per
			if hi > end {
				hi = end
			}
			wg.Add(1)
			go func(o *oracle, lo, hi Word) {
				defer wg.Done()
				for x := lo; x < hi; x++ {
					s.chunk[x-start] = o.hashPrefix(x)
				}
			}(oracles[w], lo, hi)
		}
		wg.Wait()

		for x := start; x < end; x++ {
			s.store.update(s.chunk[x-start], x)
		}
	}
}

// search scans the selector space for an outer proof-of-work hit over the
// filled bucket table. Returns nil when the budget is exhausted.
func (s *Solver) search(puzzle *Puzzle, extraNonce uint32, o *oracle) *Solution {
	bound := s.params.SelectorBound()
	for selector := Word(0); selector < bound; selector++ {
		s.prefixes = o.selectPrefixes(selector, s.prefixes)

		s.concat = s.concat[:0]
		for _, prefix := range s.prefixes {
			s.concat = s.store.appendBucket(s.concat, prefix)
		}

		if o.powValue(s.concat) != 0 {
			if selector > 0 && selector%100000 == 0 {
				klog.V(2).Infof("juggler: tried %d selectors", selector)
			}
			continue
		}

		sol := &Solution{
			Puzzle:     *puzzle,
			ExtraNonce: extraNonce,
			Selector:   selector,
			Buckets:    make([]Bucket, s.params.InputBuckets),
		}
		for i, prefix := range s.prefixes {
			sol.Buckets[i] = s.store.extract(prefix)
		}
		return sol
	}
	return nil
}
