package common

// Domain separation tags fed to the hash oracle. Each use of the hash gets
// its own tag so the three derived oracles are independent. The tags are
// hashed as raw ASCII bytes, no length prefix or terminator.
const (
	// PurposeSelection is the domain separation tag for expanding a selector
	// into bucket prefixes
	PurposeSelection = "juggler_selection"

	// PurposeGetPrefix is the domain separation tag for mapping a preimage
	// to its bucket prefix
	PurposeGetPrefix = "juggler_getprefix"

	// PurposeProofWork is the domain separation tag for the outer hashcash
	// over the selected buckets
	PurposeProofWork = "juggler_proofwork"
)

// Production parameter constants
const (
	// DefaultPrefixBits is the width of the bucket prefix in the production
	// parameter set
	DefaultPrefixBits = 20

	// DefaultBucketSizeBits sets each bucket to hold 2^6 preimage slots
	DefaultBucketSizeBits = 6

	// DefaultMemoryBits is the log2 of the prover's preimage space
	DefaultMemoryBits = DefaultPrefixBits + DefaultBucketSizeBits

	// DefaultDifficultyBits is the number of trailing zero bits the outer
	// proof-of-work must hit
	DefaultDifficultyBits = DefaultMemoryBits - 2

	// DefaultInputBuckets is the number of buckets fed into the outer
	// proof-of-work
	DefaultInputBuckets = 4
)
