package generator

import (
	"encoding/csv"
	"math/rand/v2"
	"strconv"
)

// Default location of the dummy table fixture, relative to the working directory
const (
	DummyTableDir  = "test_data"
	DummyTableFile = "dummy.csv"
)

// DummyTableGenerator generates the mixed-type dummy table fixture:
// an integer column A in [0,100), a float column B in [0.0,1.0), and
// a label column C drawn from a fixed three-label set
type DummyTableGenerator struct {
	rand *rand.Rand
}

var labels = []string{"foo", "bar", "baz"}

func (g *DummyTableGenerator) Init(r *rand.Rand) {
	g.rand = r
}

func (g *DummyTableGenerator) Header() []string {
	return []string{"A", "B", "C"}
}

func (g *DummyTableGenerator) WriteRow(w *csv.Writer) error {
	return w.Write([]string{
		strconv.Itoa(g.rand.IntN(100)),
		strconv.FormatFloat(g.rand.Float64(), 'g', -1, 64),
		labels[g.rand.IntN(len(labels))],
	})
}

func (g *DummyTableGenerator) Description() string {
	return "Mixed-type dummy table: int A, float B, label C"
}

func (g *DummyTableGenerator) DefaultRows() int64 {
	return 10
}
