/*
Package juggler implements the Juggler memory-hard proof-of-work puzzle.

Producing a solution requires holding a large table of bucket digests in
memory (2^PrefixBits buckets at hundreds of megabytes under DefaultParams),
while checking a solution needs only constant memory and a single scan of
the preimage space. The asymmetry makes the puzzle a client-puzzle / anti-DoS
primitive where specialized hardware gains little over a commodity CPU.

The scheme has three operations:

 1. Create a random 32-byte puzzle (NewPuzzle).
 2. Find a solution (FindSolution, or a reusable Solver): fill one bucket
    per possible hash prefix with the XOR digest of every preimage landing
    in it, then search selectors until the hash of the selected buckets
    solves a hashcash condition.
 3. Check a solution (CheckSolution): re-derive only the selected buckets
    from scratch and recheck the hashcash.

All hashing goes through a domain-separated BLAKE2b oracle bound to the
puzzle and the prover's extra nonce.

Usage example:

	puzzle, _ := juggler.NewPuzzle(nil)

	solver, _ := juggler.NewSolver(juggler.DefaultParams)
	solution, _ := solver.Solve(puzzle)

	if !juggler.CheckSolution(juggler.DefaultParams, puzzle, solution) {
		// reject the client
	}

	wire, _ := solution.MarshalBinary()
	again, _ := juggler.UnmarshalSolution(juggler.DefaultParams, wire)
*/
package juggler
