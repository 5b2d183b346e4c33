package fixtured

import (
	"os"
	"testing"

	"github.com/iamaray/fixturegen/pkg/fixture"
)

func TestSweepMarksMissing(t *testing.T) {
	catalog := createTestCatalog(t)

	m, err := catalog.GenerateFixture(fixture.GenerateRequest{Generator: "dummytable", Seed: 1})
	if err != nil {
		t.Fatalf("GenerateFixture failed: %v", err)
	}

	if err := os.Remove(m.StoredPath); err != nil {
		t.Fatalf("Failed to remove fixture file: %v", err)
	}

	catalog.sweep()

	got := catalog.GetFixture(m.ID)
	if got.Status != fixture.StatusMissing {
		t.Errorf("Expected status %s after sweep, got %s", fixture.StatusMissing, got.Status)
	}
}

func TestSweepMarksReappeared(t *testing.T) {
	catalog := createTestCatalog(t)

	m, err := catalog.GenerateFixture(fixture.GenerateRequest{Generator: "dummytable", Seed: 1})
	if err != nil {
		t.Fatalf("GenerateFixture failed: %v", err)
	}

	data, err := os.ReadFile(m.StoredPath)
	if err != nil {
		t.Fatalf("Failed to read fixture file: %v", err)
	}

	if err := os.Remove(m.StoredPath); err != nil {
		t.Fatalf("Failed to remove fixture file: %v", err)
	}
	catalog.sweep()

	if got := catalog.GetFixture(m.ID); got.Status != fixture.StatusMissing {
		t.Fatalf("Expected status %s after removal, got %s", fixture.StatusMissing, got.Status)
	}

	if err := os.WriteFile(m.StoredPath, data, 0644); err != nil {
		t.Fatalf("Failed to restore fixture file: %v", err)
	}
	catalog.sweep()

	if got := catalog.GetFixture(m.ID); got.Status != fixture.StatusOK {
		t.Errorf("Expected status %s after the file returned, got %s", fixture.StatusOK, got.Status)
	}
}
