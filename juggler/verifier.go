package juggler

import (
	"bytes"

	"k8s.io/klog/v2"
)

// CheckSolution reports whether the solution is valid for the puzzle under
// the given parameters. It is deterministic and single-pass, short-circuits
// on the first failed predicate, and never panics on hostile input: any
// malformed or malicious solution is a clean false.
//
// The expensive step is the re-derivation of the selected buckets, which
// scans the full preimage space the way the prover did but keeps only
// InputBuckets digests in memory. The selector range check runs before that
// scan so untrusted input cannot force unbounded work.
func CheckSolution(params Params, puzzle *Puzzle, sol *Solution) bool {
	klog.V(2).Info("juggler: checking solution")
	if sol == nil || params.Validate() != nil {
		return false
	}

	// Shape checks so the rest of the verifier can index freely.
	if len(sol.Buckets) != params.InputBuckets {
		klog.V(2).Info("juggler:   wrong bucket count")
		return false
	}
	for i := range sol.Buckets {
		if len(sol.Buckets[i].Indices) != params.BucketLen() {
			klog.V(2).Info("juggler:   wrong bucket length")
			return false
		}
	}

	// It must be a solution to the right puzzle.
	if sol.Puzzle != *puzzle {
		klog.V(2).Info("juggler:   solution to the wrong puzzle")
		return false
	}

	// The proof-of-work input selector must be within the prover's budget.
	// Checked before any scan, bounding the work hostile input can demand.
	if sol.Selector >= params.SelectorBound() {
		klog.V(2).Info("juggler:   selector out of range")
		return false
	}

	o := newOracle(params, puzzle, sol.ExtraNonce)
	sc := defaultPool.getScratch(params)
	defer defaultPool.putScratch(sc)

	// The given buckets must be the ones the selector picks.
	sc.prefixes = o.selectPrefixes(sol.Selector, sc.prefixes)
	for i, prefix := range sc.prefixes {
		if sol.Buckets[i].Prefix != prefix {
			klog.V(2).Info("juggler:   buckets are not the ones selected by the selector")
			return false
		}
	}

	// Re-accumulate the selected buckets from scratch. The XOR digest
	// admits no partial or reordered verification, so the single full scan
	// is both necessary and sufficient: a submitted bucket that is not the
	// exact accumulation of its preimage class cannot match.
	slotMask := params.SlotMask()
	total := params.PreimageCount()
	for x := Word(0); x < total; x++ {
		prefix := o.hashPrefix(x)
		for i := range sc.prefixes {
			if prefix == sc.prefixes[i] {
				sc.accs[i].update(x, slotMask)
			}
		}
	}

	sc.want = sc.want[:0]
	sc.got = sc.got[:0]
	for i := range sol.Buckets {
		sc.want = appendBucketWire(sc.want, &sol.Buckets[i])
		sc.got = sc.accs[i].appendFinalized(sc.got, sc.prefixes[i])
	}
	if !bytes.Equal(sc.want, sc.got) {
		// The structural checks already passed, so a digest mismatch means
		// malicious or corrupted input. Reject, never crash.
		klog.V(2).Info("juggler:   bucket digests do not re-derive")
		return false
	}

	// The buckets must solve the outer hashcash.
	if o.powValue(sc.want) != 0 {
		klog.V(2).Info("juggler:   not a solution to the hashcash proof of work")
		return false
	}

	return true
}
