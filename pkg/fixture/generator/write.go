package generator

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
)

// WriteFile generates rows with g and writes them as a CSV file at path,
// header first, creating missing parent directories. An existing file at
// path is overwritten.
func WriteFile(g Generator, r *rand.Rand, rows int64, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(g.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	g.Init(r)
	for i := int64(0); i < rows; i++ {
		if err := g.WriteRow(w); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	// Close explicitly so write-back errors surface; the deferred close
	// then becomes a no-op
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}
