package fixtured

import (
	"encoding/json"
	"fmt"
	"log/slog"

	bolt "go.etcd.io/bbolt"

	"github.com/iamaray/fixturegen/pkg/fixture"
)

var fixturesBucket = []byte("fixtures")

// BboltStorage implements Storage using bbolt, manifests JSON-encoded by id
type BboltStorage struct {
	db *bolt.DB
}

// NewBboltStorage opens (or creates) the catalog database at dbPath
func NewBboltStorage(dbPath string) (*BboltStorage, error) {
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(fixturesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BboltStorage{db: db}, nil
}

// SaveFixture persists a manifest
func (s *BboltStorage) SaveFixture(m *fixture.Manifest) error {
	data, err := encodeManifest(m)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(fixturesBucket).Put([]byte(m.ID), data)
	})
}

// LoadFixtures loads all manifests. Corrupted records are skipped with a
// warning rather than failing the whole load.
func (s *BboltStorage) LoadFixtures() (map[string]*fixture.Manifest, error) {
	fixtures := make(map[string]*fixture.Manifest)

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(fixturesBucket).ForEach(func(k, v []byte) error {
			m, err := decodeManifest(v)
			if err != nil {
				slog.Warn("skipping corrupted fixture record", "id", string(k), "error", err)
				return nil
			}
			fixtures[m.ID] = m
			return nil
		})
	})

	return fixtures, err
}

// DeleteFixture removes a manifest
func (s *BboltStorage) DeleteFixture(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(fixturesBucket).Delete([]byte(id))
	})
}

// Close closes the database
func (s *BboltStorage) Close() error {
	return s.db.Close()
}

// encodeManifest marshals a manifest to JSON bytes
func encodeManifest(m *fixture.Manifest) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return data, nil
}

// decodeManifest unmarshals JSON bytes to a manifest
func decodeManifest(data []byte) (*fixture.Manifest, error) {
	var m fixture.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}
