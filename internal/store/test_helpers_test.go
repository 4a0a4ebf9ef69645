package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/rotorgraph/internal/model"
)

// createTestStore creates a new file-backed store in a temp dir.
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

// seedMachine inserts a quorum and a four-letter machine ("abcd") with its
// combinations. Combination ids are "c-<letter>".
func seedMachine(t *testing.T, s *Store) model.Machine {
	t.Helper()
	ctx := context.Background()

	q, err := s.InsertQuorum(ctx, model.Quorum{
		ID:          "q-1",
		Key:         "key",
		Main:        "abcd",
		Environment: model.Environment{Galaxy: "g", Star: "s", Core: "c"},
	})
	if err != nil {
		t.Fatalf("InsertQuorum() failed: %v", err)
	}

	m, err := s.InsertMachine(ctx, model.Machine{
		ID:                     "m-1",
		Seed:                   "key",
		Order:                  1,
		Quorum:                 q.ID,
		Alphabet:               "abcd",
		Main:                   "abcd",
		TargetRotorCount:       2,
		TargetCombinationCount: 4,
		LayerBy:                " ",
	})
	if err != nil {
		t.Fatalf("InsertMachine() failed: %v", err)
	}

	for i, letter := range []string{"a", "b", "c", "d"} {
		c := model.Combination{ID: fmt.Sprintf("c-%s", letter), Letter: letter, Number: i + 1, Machine: m.ID}
		if err := s.InsertCombination(ctx, c); err != nil {
			t.Fatalf("InsertCombination() failed: %v", err)
		}
		m.Combinations = append(m.Combinations, c.ID)
	}
	return m
}
