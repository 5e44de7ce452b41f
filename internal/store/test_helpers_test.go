package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/nvfuse/internal/passes"
)

// createTestStore creates a new store in a temp directory for testing.
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

// createTestEvents returns the trace of add(x, mul(y, z)).
func createTestEvents() []passes.Event {
	return []passes.Event{
		{Seq: 1, Category: "operation", Variant: "BinaryOp", Node: 1},
		{Seq: 2, Category: "value", Variant: "Int", Node: 0},
		{Seq: 3, Category: "operation", Variant: "BinaryOp", Node: 0},
		{Seq: 4, Category: "value", Variant: "Int", Node: 1},
		{Seq: 5, Category: "value", Variant: "Int", Node: 2},
	}
}
