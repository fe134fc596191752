package juggler

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solveFixture solves the fixed 0x01-filled puzzle at test parameters.
func solveFixture(t *testing.T) (*Puzzle, *Solution) {
	t.Helper()
	puzzle := testPuzzle(0x01)
	sol, err := FindSolution(testParams, puzzle)
	require.NoError(t, err)
	return puzzle, sol
}

// cloneSolution deep-copies a solution through its wire form.
func cloneSolution(t *testing.T, sol *Solution) *Solution {
	t.Helper()
	wire, err := sol.MarshalBinary()
	require.NoError(t, err)
	clone, err := UnmarshalSolution(testParams, wire)
	require.NoError(t, err)
	return clone
}

// Every solution the reference prover produces must verify.
func TestSolveAndVerify(t *testing.T) {
	puzzle, sol := solveFixture(t)

	require.Len(t, sol.Buckets, testParams.InputBuckets)
	assert.Less(t, sol.Selector, testParams.SelectorBound())
	assert.True(t, CheckSolution(testParams, puzzle, sol), "fresh solution failed verification")
}

// Solving the same puzzle twice from fresh state is byte-identical.
func TestSolveDeterminism(t *testing.T) {
	puzzle := testPuzzle(0x01)

	first, err := FindSolution(testParams, puzzle)
	require.NoError(t, err)
	second, err := FindSolution(testParams, puzzle)
	require.NoError(t, err)

	a, err := first.MarshalBinary()
	require.NoError(t, err)
	b, err := second.MarshalBinary()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "two fresh solves produced different solutions")
}

// The parallel prover must emit the same bytes as the sequential one.
func TestSolveParallelMatchesSequential(t *testing.T) {
	puzzle := testPuzzle(0x01)

	seq, err := NewSolver(testParams)
	require.NoError(t, err)
	par, err := NewSolver(testParams)
	require.NoError(t, err)
	par.Workers = 4

	a, err := seq.Solve(puzzle)
	require.NoError(t, err)
	b, err := par.Solve(puzzle)
	require.NoError(t, err)

	aw, err := a.MarshalBinary()
	require.NoError(t, err)
	bw, err := b.MarshalBinary()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(aw, bw), "parallel solve differs from sequential solve")
}

// A reused solver must behave like a fresh one.
func TestSolverReuse(t *testing.T) {
	solver, err := NewSolver(testParams)
	require.NoError(t, err)

	first := testPuzzle(0x01)
	second := testPuzzle(0x07)

	solA, err := solver.Solve(first)
	require.NoError(t, err)
	require.True(t, CheckSolution(testParams, first, solA))

	solB, err := solver.Solve(second)
	require.NoError(t, err)
	require.True(t, CheckSolution(testParams, second, solB))

	// Solving the first puzzle again reproduces the original bytes.
	solA2, err := solver.Solve(first)
	require.NoError(t, err)
	aw, err := solA.MarshalBinary()
	require.NoError(t, err)
	a2w, err := solA2.MarshalBinary()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(aw, a2w), "solver reuse changed the solution")
}

// Mutating any byte of the embedded puzzle detaches the solution.
func TestRejectsWrongPuzzle(t *testing.T) {
	puzzle, sol := solveFixture(t)

	other := *puzzle
	other[PuzzleSize-1] = 0x02
	assert.False(t, CheckSolution(testParams, &other, sol), "solution verified against the wrong puzzle")
}

// Flipping a single bucket bit must be rejected by the re-derivation.
func TestRejectsTamperedBucket(t *testing.T) {
	puzzle, sol := solveFixture(t)

	tampered := cloneSolution(t, sol)
	tampered.Buckets[0].Indices[0] ^= 1
	assert.False(t, CheckSolution(testParams, puzzle, tampered), "tampered bucket verified")
}

// Replacing the selector with one that draws a different prefix set must be
// rejected at the selector-derivation step.
func TestRejectsTamperedSelector(t *testing.T) {
	puzzle, sol := solveFixture(t)

	o := newOracle(testParams, puzzle, sol.ExtraNonce)
	original := slices.Clone(o.selectPrefixes(sol.Selector, nil))

	bound := testParams.SelectorBound()
	for delta := Word(1); delta < bound; delta++ {
		mutated := (sol.Selector + delta) % bound
		if slices.Equal(o.selectPrefixes(mutated, nil), original) {
			continue // same draw; such a selector is legitimately valid
		}
		tampered := cloneSolution(t, sol)
		tampered.Selector = mutated
		assert.False(t, CheckSolution(testParams, puzzle, tampered),
			"selector %d verified against buckets drawn for %d", mutated, sol.Selector)
		return
	}
	t.Skip("every selector draws the fixture's prefix set")
}

// Relabeling a bucket's prefix must be rejected even when its contents are
// untouched.
func TestRejectsRelabeledPrefix(t *testing.T) {
	puzzle, sol := solveFixture(t)

	tampered := cloneSolution(t, sol)
	tampered.Buckets[0].Prefix = (tampered.Buckets[0].Prefix + 1) & testParams.PrefixMask()
	assert.False(t, CheckSolution(testParams, puzzle, tampered), "relabeled bucket verified")
}

// Changing the extra nonce re-keys every oracle and must be rejected.
func TestRejectsTamperedExtraNonce(t *testing.T) {
	puzzle, sol := solveFixture(t)

	tampered := cloneSolution(t, sol)
	tampered.ExtraNonce++
	assert.False(t, CheckSolution(testParams, puzzle, tampered), "tampered extra nonce verified")
}

// A selector at or beyond the prover's budget is rejected up front, before
// the verifier commits to the preimage scan.
func TestRejectsSelectorOutOfRange(t *testing.T) {
	puzzle, sol := solveFixture(t)

	tampered := cloneSolution(t, sol)
	tampered.Selector = testParams.SelectorBound()
	assert.False(t, CheckSolution(testParams, puzzle, tampered), "out-of-range selector verified")

	// The range check precedes the scan, so even absurd bucket contents
	// never reach the expensive path.
	for i := range tampered.Buckets {
		for j := range tampered.Buckets[i].Indices {
			tampered.Buckets[i].Indices[j] = ^Word(0)
		}
	}
	assert.False(t, CheckSolution(testParams, puzzle, tampered))
}

// Honest buckets under a selector whose hash does not clear the difficulty
// bits must fail the outer proof-of-work check.
func TestRejectsFailedOuterPow(t *testing.T) {
	puzzle, sol := solveFixture(t)

	solver, err := NewSolver(testParams)
	require.NoError(t, err)
	o := newOracle(testParams, puzzle, sol.ExtraNonce)
	solver.store.reset()
	solver.fill(puzzle, sol.ExtraNonce, o)

	prefixes := make([]Word, 0, testParams.InputBuckets)
	var concat []byte
	for selector := Word(0); selector < testParams.SelectorBound(); selector++ {
		prefixes = o.selectPrefixes(selector, prefixes)
		concat = concat[:0]
		for _, prefix := range prefixes {
			concat = solver.store.appendBucket(concat, prefix)
		}
		if o.powValue(concat) == 0 {
			continue // a genuine solution
		}

		honest := &Solution{
			Puzzle:     *puzzle,
			ExtraNonce: sol.ExtraNonce,
			Selector:   selector,
			Buckets:    make([]Bucket, testParams.InputBuckets),
		}
		for i, prefix := range prefixes {
			honest.Buckets[i] = solver.store.extract(prefix)
		}
		assert.False(t, CheckSolution(testParams, puzzle, honest),
			"selector %d verified without clearing the difficulty bits", selector)
		return
	}
	t.Skip("every selector in the budget solves the outer proof-of-work")
}

// Hostile shapes are rejected cleanly, never a panic.
func TestRejectsMalformedShapes(t *testing.T) {
	puzzle, sol := solveFixture(t)

	assert.False(t, CheckSolution(testParams, puzzle, nil))

	short := cloneSolution(t, sol)
	short.Buckets = short.Buckets[:1]
	assert.False(t, CheckSolution(testParams, puzzle, short))

	ragged := cloneSolution(t, sol)
	ragged.Buckets[1].Indices = ragged.Buckets[1].Indices[:2]
	assert.False(t, CheckSolution(testParams, puzzle, ragged))

	empty := cloneSolution(t, sol)
	empty.Buckets = nil
	assert.False(t, CheckSolution(testParams, puzzle, empty))
}

// End to end through the wire form, the way a server would consume it.
func TestWireRoundTripVerifies(t *testing.T) {
	puzzle, sol := solveFixture(t)

	wire, err := sol.MarshalBinary()
	require.NoError(t, err)
	decoded, err := UnmarshalSolution(testParams, wire)
	require.NoError(t, err)
	assert.True(t, CheckSolution(testParams, puzzle, decoded))
}
