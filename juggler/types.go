package juggler

import (
	"fmt"

	"github.com/anupsv/juggler-pow/internal/common"
)

// Word is the unsigned integer the protocol is defined over. It must be wide
// enough to hold a preimage in [0, 2^MemoryBits); Params.Validate rejects
// parameter sets that would overflow it.
type Word uint32

// Puzzle is an opaque block of cryptographic randomness. It is created once
// by NewPuzzle and never mutated.
type Puzzle [PuzzleSize]byte

// Bucket is the finalized digest of one prefix class: the prefix label and
// the XOR accumulation of every preimage whose hash prefix equals that label,
// spread over 2^BucketSizeBits slots by arrival count.
type Bucket struct {
	Prefix  Word
	Indices []Word
}

// Solution is a complete answer to a puzzle. It is written once by the
// prover and never mutated after return.
type Solution struct {
	Puzzle     Puzzle
	ExtraNonce uint32
	Selector   Word
	Buckets    []Bucket
}

// Params fixes one instance of the puzzle. A Params value is immutable after
// construction; Validate enforces every structural constraint before a
// solver or verifier will accept it.
type Params struct {
	// PrefixBits is the width of the bucket prefix extracted from a
	// preimage hash. The prover keeps 2^PrefixBits buckets in memory.
	PrefixBits int

	// BucketSizeBits sets the number of XOR slots per bucket to
	// 2^BucketSizeBits. Expected bucket occupancy matches the slot count;
	// the accumulator handles over- and underflow transparently.
	BucketSizeBits int

	// InputBuckets is the number of buckets fed into the outer
	// proof-of-work.
	InputBuckets int

	// DifficultyBits is the number of trailing zero bits required of the
	// outer proof-of-work. Independent of MemoryBits, but bounded by the
	// Word width.
	DifficultyBits int
}

// DefaultParams is the production parameter set. The prover's working set at
// these parameters is on the order of a quarter gigabyte.
var DefaultParams = Params{
	PrefixBits:     common.DefaultPrefixBits,
	BucketSizeBits: common.DefaultBucketSizeBits,
	InputBuckets:   common.DefaultInputBuckets,
	DifficultyBits: common.DefaultDifficultyBits,
}

// MemoryBits is the log2 of the preimage space the prover scans.
func (p Params) MemoryBits() int { return p.PrefixBits + p.BucketSizeBits }

// NumBuckets is the size of the prover's bucket table.
func (p Params) NumBuckets() int { return 1 << p.PrefixBits }

// BucketLen is the number of XOR slots per bucket.
func (p Params) BucketLen() int { return 1 << p.BucketSizeBits }

// PreimageCount is the number of preimages scanned per attempt, 2^MemoryBits.
func (p Params) PreimageCount() Word { return Word(1) << p.MemoryBits() }

// PrefixMask masks a hash word down to a bucket prefix.
func (p Params) PrefixMask() Word { return Word(1)<<p.PrefixBits - 1 }

// SlotMask masks an arrival count down to a slot index.
func (p Params) SlotMask() Word { return Word(1)<<p.BucketSizeBits - 1 }

// DifficultyMask masks a hash word down to the outer proof-of-work bits.
func (p Params) DifficultyMask() Word { return Word(1)<<p.DifficultyBits - 1 }

// SelectorBound is the exclusive upper bound on the selector, 2^(D+2). The
// prover abandons an extra nonce after this many selector trials, and the
// verifier rejects any selector at or beyond it before doing expensive work.
func (p Params) SelectorBound() Word { return Word(1) << (p.DifficultyBits + 2) }

// BucketBytes is the wire size of one finalized bucket.
func (p Params) BucketBytes() int { return (1 + p.BucketLen()) * WordSize }

// SolutionBytes is the wire size of a complete solution.
func (p Params) SolutionBytes() int {
	return PuzzleSize + ExtraNonceSize + WordSize + p.InputBuckets*p.BucketBytes()
}

// ProverMemory is the prover's working set in bytes: counts plus XOR slots
// for every bucket.
func (p Params) ProverMemory() uint64 {
	return uint64(p.NumBuckets()) * uint64(1+p.BucketLen()) * WordSize
}

// VerifierMemory is the verifier's working set in bytes.
func (p Params) VerifierMemory() uint64 {
	return uint64(p.InputBuckets) * uint64(1+p.BucketLen()) * WordSize
}

// Validate checks the structural constraints on the parameter set:
//
//   - the preimage space must fit the Word type
//   - the selector bound and difficulty mask must fit the Word type
//   - all InputBuckets prefixes must come out of a single hash call
//   - the bucket wire layout must match its arithmetic size exactly,
//     since bucket bytes are hashed directly and any slack would hand the
//     prover free grinding bits
func (p Params) Validate() error {
	if p.PrefixBits < 1 || p.BucketSizeBits < 1 {
		return fmt.Errorf("%w: prefix bits %d and bucket size bits %d must be positive", ErrInvalidParams, p.PrefixBits, p.BucketSizeBits)
	}
	if p.MemoryBits() > 30 {
		return fmt.Errorf("%w: memory bits %d overflow the %d-byte word", ErrInvalidParams, p.MemoryBits(), WordSize)
	}
	if p.InputBuckets < 1 {
		return fmt.Errorf("%w: input buckets %d must be positive", ErrInvalidParams, p.InputBuckets)
	}
	if p.InputBuckets*WordSize >= 64 {
		return fmt.Errorf("%w: %d input buckets need more than one selection hash", ErrInvalidParams, p.InputBuckets)
	}
	if p.DifficultyBits < 1 || p.DifficultyBits+2 > 31 {
		return fmt.Errorf("%w: difficulty bits %d out of range for the word", ErrInvalidParams, p.DifficultyBits)
	}
	b := Bucket{Indices: make([]Word, p.BucketLen())}
	if wire := appendBucketWire(nil, &b); len(wire) != p.BucketBytes() {
		return fmt.Errorf("%w: bucket layout is %d bytes, want %d", ErrInvalidParams, len(wire), p.BucketBytes())
	}
	return nil
}

// fullNonce concatenates the puzzle with the little-endian extra nonce. Every
// hash oracle call is bound to this value.
func fullNonce(puzzle *Puzzle, extraNonce uint32) [FullNonceSize]byte {
	var n [FullNonceSize]byte
	copy(n[:PuzzleSize], puzzle[:])
	putWord(n[PuzzleSize:], Word(extraNonce))
	return n
}
