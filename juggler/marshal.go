package juggler

import (
	"fmt"
)

// The wire layout is fixed and canonical because it is hashed directly:
//
//	Puzzle (32) || extra_nonce (4, LE) || selector (4, LE) || InputBuckets x Bucket
//	Bucket = prefix (4, LE) || 2^BucketSizeBits x index (4, LE)
//
// There is no padding and no framing; Params.Validate asserts the bucket
// arithmetic matches this layout exactly.

// appendBucketWire appends a finalized bucket in its wire form.
func appendBucketWire(dst []byte, b *Bucket) []byte {
	dst = appendWord(dst, b.Prefix)
	for _, w := range b.Indices {
		dst = appendWord(dst, w)
	}
	return dst
}

// MarshalBinary encodes the solution in its canonical wire layout.
func (s *Solution) MarshalBinary() ([]byte, error) {
	if len(s.Buckets) == 0 {
		return nil, fmt.Errorf("%w: no buckets", ErrMalformedSolution)
	}
	bucketLen := len(s.Buckets[0].Indices)
	for i := range s.Buckets {
		if len(s.Buckets[i].Indices) != bucketLen {
			return nil, fmt.Errorf("%w: ragged bucket lengths", ErrMalformedSolution)
		}
	}

	out := make([]byte, 0, PuzzleSize+ExtraNonceSize+WordSize+len(s.Buckets)*(1+bucketLen)*WordSize)
	out = append(out, s.Puzzle[:]...)
	out = appendWord(out, Word(s.ExtraNonce))
	out = appendWord(out, s.Selector)
	for i := range s.Buckets {
		out = appendBucketWire(out, &s.Buckets[i])
	}
	return out, nil
}

// UnmarshalSolution decodes solution bytes under the given parameters. The
// input length must match the parameter set exactly; anything else is
// rejected before any field is read.
func UnmarshalSolution(params Params, data []byte) (*Solution, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(data) != params.SolutionBytes() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSolutionData, len(data), params.SolutionBytes())
	}

	sol := &Solution{}
	copy(sol.Puzzle[:], data[:PuzzleSize])
	off := PuzzleSize
	sol.ExtraNonce = uint32(wordAt(data, off))
	off += ExtraNonceSize
	sol.Selector = wordAt(data, off)
	off += WordSize

	sol.Buckets = make([]Bucket, params.InputBuckets)
	for i := range sol.Buckets {
		b := Bucket{Indices: make([]Word, params.BucketLen())}
		b.Prefix = wordAt(data, off)
		off += WordSize
		for j := range b.Indices {
			b.Indices[j] = wordAt(data, off)
			off += WordSize
		}
		sol.Buckets[i] = b
	}
	return sol, nil
}
