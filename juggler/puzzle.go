package juggler

import (
	"crypto/rand"
	"fmt"
	"io"
)

// NewPuzzle fills a fresh puzzle from the given random source. If rng is
// nil, crypto/rand is used. A short or failing read is the one fatal
// condition of puzzle creation; callers that cannot continue without
// randomness should treat the error as terminal.
func NewPuzzle(rng io.Reader) (*Puzzle, error) {
	if rng == nil {
		rng = rand.Reader
	}

	var p Puzzle
	if _, err := io.ReadFull(rng, p[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return &p, nil
}
