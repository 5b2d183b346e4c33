package generator

import (
	"encoding/csv"
	"math/rand/v2"
	"strconv"
)

// timeseriesEpoch is 2024-01-01T00:00:00Z; rows step forward one minute each
const timeseriesEpoch = 1704067200

// TimeseriesGenerator generates minutely metric samples: a unix timestamp
// column and a gauge value in [0,100) with two decimal places
type TimeseriesGenerator struct {
	rand *rand.Rand
	next int64
}

func (g *TimeseriesGenerator) Init(r *rand.Rand) {
	g.rand = r
	g.next = 0
}

func (g *TimeseriesGenerator) Header() []string {
	return []string{"timestamp", "value"}
}

func (g *TimeseriesGenerator) WriteRow(w *csv.Writer) error {
	ts := timeseriesEpoch + g.next*60
	g.next++

	return w.Write([]string{
		strconv.FormatInt(ts, 10),
		strconv.FormatFloat(g.rand.Float64()*100, 'f', 2, 64),
	})
}

func (g *TimeseriesGenerator) Description() string {
	return "Minutely metric samples: timestamp,value"
}

func (g *TimeseriesGenerator) DefaultRows() int64 {
	return 1440 // one day of minutes
}
