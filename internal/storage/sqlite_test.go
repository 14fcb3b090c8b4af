package storage

import (
	"errors"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	store, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

func TestStoresAreIndependent(t *testing.T) {
	a := openTestStore(t)
	b := openTestStore(t)

	if _, err := a.RecordCompletion("alice", 1, 3); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}

	c, err := b.Completion("alice", 1)
	if err != nil {
		t.Fatalf("Completion() failed: %v", err)
	}
	if c.Completed {
		t.Error("in-memory stores should not share data")
	}
}

func TestRecordCompletionIsMonotonic(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		stars        int
		wantImproved bool
		wantStored   int
	}{
		{1, true, 1},
		{1, false, 1},
		{3, true, 3},
		{2, false, 3},
		{3, false, 3},
	}

	for i, tc := range tests {
		improved, err := store.RecordCompletion("alice", 4, tc.stars)
		if err != nil {
			t.Fatalf("step %d: RecordCompletion() failed: %v", i, err)
		}
		if improved != tc.wantImproved {
			t.Errorf("step %d: improved = %v, want %v", i, improved, tc.wantImproved)
		}

		c, err := store.Completion("alice", 4)
		if err != nil {
			t.Fatalf("step %d: Completion() failed: %v", i, err)
		}
		if c.Stars != tc.wantStored || !c.Completed {
			t.Errorf("step %d: stored %d stars (completed=%v), want %d", i, c.Stars, c.Completed, tc.wantStored)
		}
	}
}

func TestRecordCompletionRejectsInvalidStars(t *testing.T) {
	store := openTestStore(t)

	for _, stars := range []int{0, -1, 4} {
		_, err := store.RecordCompletion("alice", 1, stars)
		if !errors.Is(err, ErrInvalidStars) {
			t.Errorf("RecordCompletion(stars=%d) error = %v, want ErrInvalidStars", stars, err)
		}
	}
}

func TestCompletionUnknownLevel(t *testing.T) {
	store := openTestStore(t)

	c, err := store.Completion("bob", 9)
	if err != nil {
		t.Fatalf("Completion() failed: %v", err)
	}
	if c.Completed || c.Stars != 0 || c.LevelID != 9 || c.Player != "bob" {
		t.Errorf("Completion() = %+v, want empty record for level 9", c)
	}
}

func TestAllAndStarsByLevel(t *testing.T) {
	store := openTestStore(t)

	store.RecordCompletion("alice", 3, 2)
	store.RecordCompletion("alice", 1, 3)
	store.RecordCompletion("bob", 2, 1)

	all, err := store.All("alice")
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(all))
	}
	if all[0].LevelID != 1 || all[1].LevelID != 3 {
		t.Errorf("records not ordered by level: %d, %d", all[0].LevelID, all[1].LevelID)
	}
	if all[0].UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}

	stars, err := store.ForPlayer("alice").StarsByLevel()
	if err != nil {
		t.Fatalf("StarsByLevel() failed: %v", err)
	}
	if stars[1] != 3 || stars[3] != 2 || stars[2] != 0 {
		t.Errorf("StarsByLevel() = %v", stars)
	}
}

func TestReset(t *testing.T) {
	store := openTestStore(t)

	store.RecordCompletion("alice", 1, 2)
	store.RecordCompletion("bob", 1, 2)

	if err := store.Reset("alice"); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	if all, _ := store.All("alice"); len(all) != 0 {
		t.Errorf("Expected no records after reset, got %d", len(all))
	}
	if all, _ := store.All("bob"); len(all) != 1 {
		t.Error("Reset should only affect the given player")
	}
}

func TestPlayerProgressRecord(t *testing.T) {
	store := openTestStore(t)
	p := store.ForPlayer("carol")

	if err := p.RecordCompletion(2, 2); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	if err := p.RecordCompletion(2, 5); !errors.Is(err, ErrInvalidStars) {
		t.Errorf("expected ErrInvalidStars, got %v", err)
	}

	c, _ := store.Completion("carol", 2)
	if c.Stars != 2 {
		t.Errorf("Stars = %d, want 2", c.Stars)
	}
}

func TestConcurrentRecords(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(stars int) {
			defer wg.Done()
			if _, err := store.RecordCompletion("dave", 1, stars); err != nil {
				t.Errorf("RecordCompletion() failed: %v", err)
			}
		}(i%3 + 1)
	}
	wg.Wait()

	c, _ := store.Completion("dave", 1)
	if c.Stars != 3 {
		t.Errorf("Stars = %d, want the highest rating 3", c.Stars)
	}
}
