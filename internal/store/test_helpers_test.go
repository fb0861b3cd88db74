package store

import (
	"path/filepath"
	"testing"
)

// createTestStore creates a new temp-dir store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createSeededStore creates a test store loaded with the demo fixtures.
func createSeededStore(t *testing.T) *Store {
	t.Helper()
	s := createTestStore(t)
	if _, err := s.SeedDemo(t.Context()); err != nil {
		t.Fatalf("SeedDemo() failed: %v", err)
	}
	return s
}
