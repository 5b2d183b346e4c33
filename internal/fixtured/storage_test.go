package fixtured

import (
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/iamaray/fixturegen/pkg/fixture"
)

func sampleManifest(id string) *fixture.Manifest {
	return &fixture.Manifest{
		ID:          id,
		Filename:    "sample.csv",
		StoredPath:  "/data/uploads/2026/08/" + id + ".csv",
		Bytes:       128,
		SHA256:      "0c7e317c6cc9a0525eaf6e1e5e2f9a0bd9a5ba06bf375d7c2c24b0b2a8c0f27e",
		ContentType: "text/csv",
		Source:      fixture.SourceUploaded,
		CreatedAt:   time.Now().UTC(),
		Status:      fixture.StatusOK,
	}
}

// storageTestSuite runs a shared test suite against any Storage implementation
func storageTestSuite(t *testing.T, newStorage func() (Storage, func(), error)) {
	t.Run("SaveAndLoad", func(t *testing.T) {
		storage, cleanup, err := newStorage()
		if err != nil {
			t.Fatalf("failed to create storage: %v", err)
		}
		defer cleanup()

		m := sampleManifest("fixture-1")
		if err := storage.SaveFixture(m); err != nil {
			t.Fatalf("SaveFixture failed: %v", err)
		}
		if err := storage.SaveFixture(sampleManifest("fixture-2")); err != nil {
			t.Fatalf("SaveFixture failed: %v", err)
		}

		fixtures, err := storage.LoadFixtures()
		if err != nil {
			t.Fatalf("LoadFixtures failed: %v", err)
		}
		if len(fixtures) != 2 {
			t.Fatalf("Expected 2 fixtures, got %d", len(fixtures))
		}

		got, exists := fixtures["fixture-1"]
		if !exists {
			t.Fatal("fixture-1 not found after save")
		}
		if got.Filename != m.Filename {
			t.Errorf("Expected filename %s, got %s", m.Filename, got.Filename)
		}
		if got.SHA256 != m.SHA256 {
			t.Errorf("Expected sha %s, got %s", m.SHA256, got.SHA256)
		}
		if got.Source != fixture.SourceUploaded {
			t.Errorf("Expected source %s, got %s", fixture.SourceUploaded, got.Source)
		}
		if !got.CreatedAt.Equal(m.CreatedAt) {
			t.Errorf("Expected created at %v, got %v", m.CreatedAt, got.CreatedAt)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		storage, cleanup, err := newStorage()
		if err != nil {
			t.Fatalf("failed to create storage: %v", err)
		}
		defer cleanup()

		m := sampleManifest("fixture-1")
		if err := storage.SaveFixture(m); err != nil {
			t.Fatalf("SaveFixture failed: %v", err)
		}

		m.Status = fixture.StatusMissing
		if err := storage.SaveFixture(m); err != nil {
			t.Fatalf("SaveFixture failed: %v", err)
		}

		fixtures, err := storage.LoadFixtures()
		if err != nil {
			t.Fatalf("LoadFixtures failed: %v", err)
		}
		if len(fixtures) != 1 {
			t.Fatalf("Expected 1 fixture after overwrite, got %d", len(fixtures))
		}
		if fixtures["fixture-1"].Status != fixture.StatusMissing {
			t.Errorf("Expected status %s, got %s", fixture.StatusMissing, fixtures["fixture-1"].Status)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		storage, cleanup, err := newStorage()
		if err != nil {
			t.Fatalf("failed to create storage: %v", err)
		}
		defer cleanup()

		if err := storage.SaveFixture(sampleManifest("fixture-1")); err != nil {
			t.Fatalf("SaveFixture failed: %v", err)
		}
		if err := storage.DeleteFixture("fixture-1"); err != nil {
			t.Fatalf("DeleteFixture failed: %v", err)
		}

		fixtures, err := storage.LoadFixtures()
		if err != nil {
			t.Fatalf("LoadFixtures failed: %v", err)
		}
		if len(fixtures) != 0 {
			t.Errorf("Expected no fixtures after delete, got %d", len(fixtures))
		}

		// Idempotent
		if err := storage.DeleteFixture("fixture-1"); err != nil {
			t.Errorf("DeleteFixture should be idempotent: %v", err)
		}
	})
}

func TestMemoryStorage(t *testing.T) {
	storageTestSuite(t, func() (Storage, func(), error) {
		storage := NewMemoryStorage()
		return storage, func() { storage.Close() }, nil
	})
}

func TestBboltStorage(t *testing.T) {
	storageTestSuite(t, func() (Storage, func(), error) {
		dbPath := filepath.Join(t.TempDir(), "catalog.db")

		storage, err := NewBboltStorage(dbPath)
		if err != nil {
			return nil, nil, err
		}

		return storage, func() { storage.Close() }, nil
	})
}

func TestBboltStorageReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	storage, err := NewBboltStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if err := storage.SaveFixture(sampleManifest("fixture-1")); err != nil {
		t.Fatalf("SaveFixture failed: %v", err)
	}
	if err := storage.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewBboltStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	defer reopened.Close()

	fixtures, err := reopened.LoadFixtures()
	if err != nil {
		t.Fatalf("LoadFixtures failed: %v", err)
	}
	if _, exists := fixtures["fixture-1"]; !exists {
		t.Error("Fixture lost across close and reopen")
	}
}

func TestBboltStorageSkipsCorruptedRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	storage, err := NewBboltStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer storage.Close()

	if err := storage.SaveFixture(sampleManifest("fixture-1")); err != nil {
		t.Fatalf("SaveFixture failed: %v", err)
	}

	// Plant a record that is not valid JSON next to the good one
	err = storage.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(fixturesBucket).Put([]byte("corrupted"), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("Failed to write corrupted record: %v", err)
	}

	fixtures, err := storage.LoadFixtures()
	if err != nil {
		t.Fatalf("LoadFixtures failed: %v", err)
	}

	if len(fixtures) != 1 {
		t.Fatalf("Expected the corrupted record to be skipped, got %d fixtures", len(fixtures))
	}
	if _, exists := fixtures["fixture-1"]; !exists {
		t.Error("Valid record lost alongside the corrupted one")
	}
}
