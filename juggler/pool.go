package juggler

import (
	"sync"
)

// verifyScratch holds the verifier's working memory: InputBuckets
// accumulators plus the wire buffers compared at the end. Pooling it keeps
// concurrent verifications from churning allocations.
type verifyScratch struct {
	params   Params
	accs     []accumulator
	prefixes []Word
	want     []byte
	got      []byte
}

// objectPool recycles verifier scratch memory. Scratch is parameterized by
// its Params; an entry pulled for a different parameter set is discarded
// rather than resized.
type objectPool struct {
	scratch sync.Pool
}

var defaultPool = &objectPool{}

func newVerifyScratch(params Params) *verifyScratch {
	accs := make([]accumulator, params.InputBuckets)
	for i := range accs {
		accs[i] = newAccumulator(params)
	}
	wire := params.InputBuckets * params.BucketBytes()
	return &verifyScratch{
		params:   params,
		accs:     accs,
		prefixes: make([]Word, 0, params.InputBuckets),
		want:     make([]byte, 0, wire),
		got:      make([]byte, 0, wire),
	}
}

// getScratch returns zeroed scratch for the parameter set.
func (p *objectPool) getScratch(params Params) *verifyScratch {
	sc, ok := p.scratch.Get().(*verifyScratch)
	if !ok || sc.params != params {
		return newVerifyScratch(params)
	}
	for i := range sc.accs {
		sc.accs[i].reset()
	}
	return sc
}

// putScratch returns scratch to the pool.
func (p *objectPool) putScratch(sc *verifyScratch) {
	if sc != nil {
		p.scratch.Put(sc)
	}
}
