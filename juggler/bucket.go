package juggler

// The bucket digest is a commutative XOR accumulator: every preimage that
// hashes into a bucket is XORed into the slot selected by the bucket's
// arrival count modulo the slot count. The digest therefore covers the
// entire preimage class of the bucket exactly once each, which blocks a
// prover from permuting indices within a bucket, omitting a preimage, or
// swapping a spare one in. The accumulating count lives outside the wire
// layout; finalizing a bucket writes the prefix label where the count would
// otherwise sit, so a finalized bucket carries its own label on the wire.

// accumulator is one bucket in its accumulating state. The verifier uses a
// handful of these directly; the prover packs 2^PrefixBits of them into a
// bucketStore.
type accumulator struct {
	count Word
	slots []Word
}

func newAccumulator(params Params) accumulator {
	return accumulator{slots: make([]Word, params.BucketLen())}
}

func (a *accumulator) reset() {
	a.count = 0
	clear(a.slots)
}

// update folds one preimage into the digest.
func (a *accumulator) update(preimage, slotMask Word) {
	a.slots[a.count&slotMask] ^= preimage
	a.count++
}

// appendFinalized appends the bucket's wire form, labeled with its prefix.
func (a *accumulator) appendFinalized(dst []byte, prefix Word) []byte {
	dst = appendWord(dst, prefix)
	for _, s := range a.slots {
		dst = appendWord(dst, s)
	}
	return dst
}

// bucketStore is the prover's full bucket table: one bucket per possible
// prefix, stored as two flat slices so the gigabyte-scale allocation is a
// single block per slice. It is allocated once per Solver, re-initialized
// per extra-nonce attempt, and reused across puzzles.
type bucketStore struct {
	params   Params
	slotMask Word
	counts   []Word // arrival count per bucket, indexed by prefix
	slots    []Word // XOR slots, bucket p at [p<<BucketSizeBits, (p+1)<<BucketSizeBits)
}

func newBucketStore(params Params) *bucketStore {
	return &bucketStore{
		params:   params,
		slotMask: params.SlotMask(),
		counts:   make([]Word, params.NumBuckets()),
		slots:    make([]Word, params.NumBuckets()<<params.BucketSizeBits),
	}
}

func (s *bucketStore) reset() {
	clear(s.counts)
	clear(s.slots)
}

// update folds one preimage into the bucket for the given prefix.
func (s *bucketStore) update(prefix, preimage Word) {
	base := int(prefix) << s.params.BucketSizeBits
	s.slots[base+int(s.counts[prefix]&s.slotMask)] ^= preimage
	s.counts[prefix]++
}

// appendBucket appends the finalized wire form of the bucket for the given
// prefix: the prefix label followed by its XOR slots, all little-endian.
func (s *bucketStore) appendBucket(dst []byte, prefix Word) []byte {
	dst = appendWord(dst, prefix)
	base := int(prefix) << s.params.BucketSizeBits
	for _, w := range s.slots[base : base+s.params.BucketLen()] {
		dst = appendWord(dst, w)
	}
	return dst
}

// extract copies the bucket for the given prefix out of the store in its
// finalized form.
func (s *bucketStore) extract(prefix Word) Bucket {
	base := int(prefix) << s.params.BucketSizeBits
	indices := make([]Word, s.params.BucketLen())
	copy(indices, s.slots[base:base+s.params.BucketLen()])
	return Bucket{Prefix: prefix, Indices: indices}
}
