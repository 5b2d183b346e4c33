package fixtured

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iamaray/fixturegen/pkg/fixture"
	"github.com/iamaray/fixturegen/pkg/fixture/generator"
)

// Catalog tracks every fixture file the service knows about. State lives
// in memory and is written through to storage on every mutation.
type Catalog struct {
	uploadDir      string
	maxUploadBytes int64
	storage        Storage

	fixtures map[string]*fixture.Manifest

	mu sync.RWMutex
}

// NewCatalog creates a catalog, restoring prior state from storage
func NewCatalog(cfg Config) (*Catalog, error) {
	var storage Storage
	if cfg.DBPath != "" {
		bboltStorage, err := NewBboltStorage(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
		storage = bboltStorage
		slog.Info("catalog persistence enabled", "db", cfg.DBPath)
	} else {
		storage = NewMemoryStorage()
		slog.Info("catalog persistence disabled (no db path configured)")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		storage.Close()
		return nil, fmt.Errorf("create upload dir %s: %w", cfg.UploadDir, err)
	}

	c := &Catalog{
		uploadDir:      cfg.UploadDir,
		maxUploadBytes: cfg.MaxUploadBytes(),
		storage:        storage,
		fixtures:       make(map[string]*fixture.Manifest),
	}

	if err := c.restore(); err != nil {
		slog.Warn("failed to restore catalog state", "error", err)
	}

	return c, nil
}

// restore loads manifests from storage and re-stats their files
func (c *Catalog) restore() error {
	fixtures, err := c.storage.LoadFixtures()
	if err != nil {
		return err
	}

	for id, m := range fixtures {
		if _, err := os.Stat(m.StoredPath); os.IsNotExist(err) {
			if m.Status != fixture.StatusMissing {
				slog.Warn("fixture file gone since last run", "id", id, "path", m.StoredPath)
				m.Status = fixture.StatusMissing
			}
		}
		c.fixtures[id] = m
	}

	slog.Info("catalog state restored", "fixtures", len(c.fixtures))
	return nil
}

// SaveFixture catalogs a manifest and writes it through to storage
func (c *Catalog) SaveFixture(m *fixture.Manifest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.storage.SaveFixture(m); err != nil {
		return fmt.Errorf("persist fixture %s: %w", m.ID, err)
	}

	// The map holds its own copy; manifests handed back to callers
	// never alias catalog state
	cp := *m
	c.fixtures[m.ID] = &cp

	return nil
}

// GetFixture returns a copy of one manifest, or nil if unknown
func (c *Catalog) GetFixture(id string) *fixture.Manifest {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, exists := c.fixtures[id]
	if !exists {
		return nil
	}

	cp := *m
	return &cp
}

// ListFixtures returns all manifests ordered by creation time
func (c *Catalog) ListFixtures() []fixture.Manifest {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := make([]fixture.Manifest, 0, len(c.fixtures))
	for _, m := range c.fixtures {
		list = append(list, *m)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})

	return list
}

// DeleteFixture removes the fixture file, the manifest, and its stored record
func (c *Catalog) DeleteFixture(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, exists := c.fixtures[id]
	if !exists {
		return fixture.ErrFixtureNotFound
	}

	if err := os.Remove(m.StoredPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", m.StoredPath, err)
	}

	if err := c.storage.DeleteFixture(id); err != nil {
		return fmt.Errorf("delete fixture record %s: %w", id, err)
	}
	delete(c.fixtures, id)

	slog.Info("fixture deleted", "id", id, "filename", m.Filename)
	return nil
}

// GenerateFixture runs a registered generator into the fixture tree and
// catalogs the result
func (c *Catalog) GenerateFixture(req fixture.GenerateRequest) (*fixture.Manifest, error) {
	g, err := generator.Get(req.Generator)
	if err != nil {
		return nil, err
	}

	rows := req.Rows
	if rows <= 0 {
		rows = g.DefaultRows()
	}

	id := uuid.New().String()
	now := time.Now()

	dir := filepath.Join(c.uploadDir, now.Format("2006"), now.Format("01"))
	storedPath := filepath.Join(dir, id+".csv")

	if err := generator.WriteFile(g, generator.NewRand(req.Seed), rows, storedPath); err != nil {
		return nil, fmt.Errorf("run generator %s: %w", req.Generator, err)
	}

	sum, size, err := fileDigest(storedPath)
	if err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("fingerprint %s: %w", storedPath, err)
	}

	m := &fixture.Manifest{
		ID:          id,
		Filename:    req.Generator + ".csv",
		StoredPath:  storedPath,
		Bytes:       size,
		SHA256:      sum,
		ContentType: "text/csv",
		Source:      fixture.SourceGenerated,
		Generator:   req.Generator,
		Rows:        rows,
		CreatedAt:   now,
		Status:      fixture.StatusOK,
	}

	if err := c.SaveFixture(m); err != nil {
		os.Remove(storedPath)
		return nil, err
	}

	slog.Info("fixture generated", "id", id, "generator", req.Generator, "rows", rows, "bytes", size)
	return m, nil
}

// Status aggregates catalog totals
func (c *Catalog) Status() fixture.StatusResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var resp fixture.StatusResponse
	resp.Fixtures = len(c.fixtures)
	for _, m := range c.fixtures {
		switch m.Source {
		case fixture.SourceUploaded:
			resp.Uploaded++
		case fixture.SourceGenerated:
			resp.Generated++
		}
		if m.Status == fixture.StatusMissing {
			resp.Missing++
		} else {
			resp.TotalBytes += m.Bytes
		}
	}

	return resp
}

// Close closes the storage connection
func (c *Catalog) Close() error {
	return c.storage.Close()
}

// fileDigest returns the sha256 hex digest and size of a file
func fileDigest(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}

	return hex.EncodeToString(h.Sum(nil)), size, nil
}
