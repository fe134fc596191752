package juggler

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// oracle is the domain-separated hash shared by the prover and verifier.
// Every call hashes fullNonce || tag || message with BLAKE2b, using the
// digest length to produce exactly the bytes the caller needs: one word for
// prefix extraction and the proof-of-work, InputBuckets words for selector
// expansion. The two digest lengths are distinct BLAKE2b instances, which
// adds a second layer of separation on top of the tags.
//
// An oracle is bound to one full nonce and is not safe for concurrent use;
// the parallel prover gives each worker its own.
type oracle struct {
	params Params
	nonce  [FullNonceSize]byte

	wordHash hash.Hash // WordSize-byte digest
	selHash  hash.Hash // InputBuckets*WordSize-byte digest

	msg [WordSize]byte
	sum [64]byte
}

func newOracle(params Params, puzzle *Puzzle, extraNonce uint32) *oracle {
	wh, err := blake2b.New(WordSize, nil)
	if err != nil {
		panic(err) // digest size is fixed and valid
	}
	sh, err := blake2b.New(params.InputBuckets*WordSize, nil)
	if err != nil {
		panic(err) // bounded by Validate to at most 64 bytes
	}
	return &oracle{
		params:   params,
		nonce:    fullNonce(puzzle, extraNonce),
		wordHash: wh,
		selHash:  sh,
	}
}

// digest runs one oracle call into o.sum and returns the output bytes.
func (o *oracle) digest(h hash.Hash, tag []byte, msg []byte) []byte {
	h.Reset()
	h.Write(o.nonce[:])
	h.Write(tag)
	h.Write(msg)
	return h.Sum(o.sum[:0])
}

// hashPrefix maps a preimage to the prefix of the bucket it populates: the
// low PrefixBits of a one-word hash under the getprefix tag.
func (o *oracle) hashPrefix(preimage Word) Word {
	binary.LittleEndian.PutUint32(o.msg[:], uint32(preimage))
	out := o.digest(o.wordHash, getPrefixTag, o.msg[:])
	return Word(binary.LittleEndian.Uint32(out)) & o.params.PrefixMask()
}

// selectPrefixes expands a selector into InputBuckets bucket prefixes with a
// single hash call under the selection tag, splitting the digest into
// little-endian words and masking each to PrefixBits. The same prefix may
// appear more than once in one draw.
func (o *oracle) selectPrefixes(selector Word, dst []Word) []Word {
	binary.LittleEndian.PutUint32(o.msg[:], uint32(selector))
	out := o.digest(o.selHash, selectionTag, o.msg[:])
	dst = dst[:0]
	for i := 0; i < o.params.InputBuckets; i++ {
		w := Word(binary.LittleEndian.Uint32(out[i*WordSize:]))
		dst = append(dst, w&o.params.PrefixMask())
	}
	return dst
}

// powValue hashes the concatenated bucket bytes under the proofwork tag and
// returns the low DifficultyBits. A value of zero is a valid proof-of-work.
func (o *oracle) powValue(bucketBytes []byte) Word {
	out := o.digest(o.wordHash, proofWorkTag, bucketBytes)
	return Word(binary.LittleEndian.Uint32(out)) & o.params.DifficultyMask()
}
