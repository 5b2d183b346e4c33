package fixtured

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/iamaray/fixturegen/pkg/fixture"
)

// StartSweeper starts a goroutine that re-stats every catalogued file on an
// interval, flipping manifests between ok and missing as files come and go.
// It stops when ctx is cancelled.
func (c *Catalog) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("sweeper shutting down")
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()

	slog.Info("sweeper started", "interval", interval)
}

// sweep checks each catalogued file on disk and updates manifest status
func (c *Catalog) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, m := range c.fixtures {
		_, err := os.Stat(m.StoredPath)

		switch {
		case err == nil && m.Status == fixture.StatusMissing:
			m.Status = fixture.StatusOK
			slog.Info("fixture file reappeared", "id", id, "path", m.StoredPath)
		case os.IsNotExist(err) && m.Status == fixture.StatusOK:
			m.Status = fixture.StatusMissing
			slog.Warn("fixture file missing", "id", id, "path", m.StoredPath)
		default:
			continue
		}

		if err := c.storage.SaveFixture(m); err != nil {
			slog.Error("failed to persist status change", "id", id, "error", err)
		}
	}
}
