package juggler

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// putWord writes a word into dst in little-endian order.
func putWord(dst []byte, w Word) {
	binary.LittleEndian.PutUint32(dst, uint32(w))
}

// appendWord appends the little-endian encoding of a word.
func appendWord(dst []byte, w Word) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(w))
}

// wordAt reads the little-endian word starting at b[off].
func wordAt(b []byte, off int) Word {
	return Word(binary.LittleEndian.Uint32(b[off:]))
}

// MemoryFootprint describes the prover and verifier working sets for a
// parameter set in human-readable form.
func MemoryFootprint(params Params) string {
	return fmt.Sprintf("prover %s, verifier %s",
		humanize.IBytes(params.ProverMemory()),
		humanize.IBytes(params.VerifierMemory()))
}

// FormatSolution renders a solution for terminal output: header fields on
// one line each, then every bucket with its prefix and slot values in hex.
func FormatSolution(sol *Solution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "puzzle:      %x\n", sol.Puzzle[:])
	fmt.Fprintf(&b, "extra nonce: %d\n", sol.ExtraNonce)
	fmt.Fprintf(&b, "selector:    %d\n", sol.Selector)
	for i := range sol.Buckets {
		fmt.Fprintf(&b, "bucket[%d]:   prefix=%06x indices=", i, sol.Buckets[i].Prefix)
		for j, w := range sol.Buckets[i].Indices {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%08x", uint32(w))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
