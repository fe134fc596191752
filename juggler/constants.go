// Package juggler implements a memory-hard proof-of-work puzzle.
package juggler

import (
	"errors"

	"github.com/anupsv/juggler-pow/internal/common"
)

// Errors returned by puzzle creation, solving and solution decoding. The
// verifier itself never returns an error: an invalid solution is a clean
// boolean false, no matter how the solution is malformed.
var (
	// ErrInvalidParams is returned when a parameter set violates one of the
	// structural constraints (word width, selector budget, hash output size)
	ErrInvalidParams = errors.New("invalid juggler parameters")

	// ErrRandomSource is returned when the cryptographic random source
	// cannot supply puzzle bytes
	ErrRandomSource = errors.New("random source unavailable")

	// ErrInvalidSolutionData is returned when solution bytes cannot be
	// deserialized under the given parameters
	ErrInvalidSolutionData = errors.New("invalid solution data")

	// ErrMalformedSolution is returned when an in-memory Solution has the
	// wrong bucket count or bucket length for the given parameters
	ErrMalformedSolution = errors.New("malformed solution structure")
)

// Fixed sizes shared by every parameter set. All multi-byte integers are
// little-endian on the wire.
const (
	// PuzzleSize is the byte length of a puzzle
	PuzzleSize = 32

	// ExtraNonceSize is the byte length of the prover's retry counter
	ExtraNonceSize = 4

	// FullNonceSize is the byte length of puzzle plus extra nonce, the
	// binding context for every hash oracle call
	FullNonceSize = PuzzleSize + ExtraNonceSize

	// WordSize is the byte width of a Word on the wire
	WordSize = 4
)

// Domain separation tags, re-exported from internal/common for callers that
// implement external tooling around the oracle.
const (
	PurposeSelection = common.PurposeSelection
	PurposeGetPrefix = common.PurposeGetPrefix
	PurposeProofWork = common.PurposeProofWork
)

var (
	selectionTag = []byte(common.PurposeSelection)
	getPrefixTag = []byte(common.PurposeGetPrefix)
	proofWorkTag = []byte(common.PurposeProofWork)
)
