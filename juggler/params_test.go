package juggler

import (
	"errors"
	"testing"
)

// testParams is the small parameter set used throughout the tests: 16
// buckets of 4 slots over a 64-preimage space, two input buckets, and a
// 2-bit outer proof-of-work.
var testParams = Params{
	PrefixBits:     4,
	BucketSizeBits: 2,
	InputBuckets:   2,
	DifficultyBits: 2,
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		ok     bool
	}{
		{"test preset", testParams, true},
		{"production preset", DefaultParams, true},
		{"zero prefix bits", Params{0, 2, 2, 2}, false},
		{"zero bucket bits", Params{4, 0, 2, 2}, false},
		{"memory overflows word", Params{25, 6, 4, 24}, false},
		{"zero input buckets", Params{4, 2, 0, 2}, false},
		{"selection hash too wide", Params{4, 2, 16, 2}, false},
		{"zero difficulty", Params{4, 2, 2, 0}, false},
		{"selector bound overflows word", Params{4, 2, 2, 30}, false},
	}

	for _, test := range tests {
		err := test.params.Validate()
		if test.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
		if !test.ok {
			if err == nil {
				t.Errorf("%s: expected an error", test.name)
			} else if !errors.Is(err, ErrInvalidParams) {
				t.Errorf("%s: error %v is not ErrInvalidParams", test.name, err)
			}
		}
	}
}

func TestParamsDerivedSizes(t *testing.T) {
	p := testParams

	if got := p.MemoryBits(); got != 6 {
		t.Errorf("MemoryBits = %d, want 6", got)
	}
	if got := p.NumBuckets(); got != 16 {
		t.Errorf("NumBuckets = %d, want 16", got)
	}
	if got := p.BucketLen(); got != 4 {
		t.Errorf("BucketLen = %d, want 4", got)
	}
	if got := p.PreimageCount(); got != 64 {
		t.Errorf("PreimageCount = %d, want 64", got)
	}
	if got := p.SelectorBound(); got != 16 {
		t.Errorf("SelectorBound = %d, want 16", got)
	}
	if got := p.BucketBytes(); got != (1+4)*WordSize {
		t.Errorf("BucketBytes = %d, want %d", got, (1+4)*WordSize)
	}
	wantSolution := PuzzleSize + ExtraNonceSize + WordSize + 2*(1+4)*WordSize
	if got := p.SolutionBytes(); got != wantSolution {
		t.Errorf("SolutionBytes = %d, want %d", got, wantSolution)
	}
	if got := p.ProverMemory(); got != 16*5*WordSize {
		t.Errorf("ProverMemory = %d, want %d", got, 16*5*WordSize)
	}
}

// The bucket wire form is hashed directly, so its length must match the
// arithmetic size exactly for every parameter set we ship.
func TestBucketWireSize(t *testing.T) {
	for _, p := range []Params{testParams, DefaultParams} {
		b := Bucket{Prefix: 3, Indices: make([]Word, p.BucketLen())}
		wire := appendBucketWire(nil, &b)
		if len(wire) != p.BucketBytes() {
			t.Errorf("bucket wire is %d bytes, want %d", len(wire), p.BucketBytes())
		}
	}
}
