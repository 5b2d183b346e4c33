package generator

import (
	"encoding/csv"
	"strconv"
	"strings"
	"testing"
)

func TestTimeseriesRows(t *testing.T) {
	out := writeRows(t, &TimeseriesGenerator{}, 11, 5)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse output: %v", err)
	}

	prev := int64(0)
	for i, rec := range records[1:] {
		ts, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			t.Fatalf("Row %d: timestamp is not an integer: %q", i, rec[0])
		}
		if i > 0 && ts != prev+60 {
			t.Errorf("Row %d: expected timestamp %d, got %d", i, prev+60, ts)
		}
		prev = ts

		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			t.Fatalf("Row %d: value is not a float: %q", i, rec[1])
		}
		if v < 0 || v >= 100 {
			t.Errorf("Row %d: value out of range [0,100): %g", i, v)
		}
	}
}

func TestTimeseriesInitResets(t *testing.T) {
	g := &TimeseriesGenerator{}

	first := writeRows(t, g, 5, 3)
	second := writeRows(t, g, 5, 3)

	if first != second {
		t.Error("Init should reset the timestamp counter between runs")
	}
}
