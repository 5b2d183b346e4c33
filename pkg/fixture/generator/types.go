package generator

import (
	"encoding/csv"
	"math/rand/v2"
)

// Generator produces rows of synthetic CSV fixture data
type Generator interface {
	// Init initializes the generator with a per-instance random source
	// This eliminates lock contention on the global rand source
	Init(r *rand.Rand)

	// Header returns the column names written as the first CSV record
	Header() []string

	// WriteRow writes a single data record to the writer
	WriteRow(w *csv.Writer) error

	// Description returns a human-readable description of the data format
	Description() string

	// DefaultRows returns the suggested default number of data rows
	DefaultRows() int64
}

// NewRand returns a random source for generator use. A zero seed draws
// the source state from the auto-seeded global generator, so runs are
// independent; any other seed reproduces the same row stream.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s))
}
