package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRun(id string, startedAt time.Time) *Run {
	return &Run{
		ID:                id,
		Source:            "contacts.vcf",
		Destination:       "contacts.clean.vcf",
		StartedAt:         startedAt,
		Duration:          42 * time.Millisecond,
		BlocksParsed:      10,
		RecordsKept:       7,
		RecordsNoPhone:    1,
		DuplicatesRemoved: 2,
		FieldsRemoved:     5,
		DiscardedLines:    3,
	}
}

func TestRecordAndReadRun(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	want := testRun("run-1", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	if err := store.RecordRun(ctx, want); err != nil {
		t.Fatalf("Failed to record run: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to read runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.ID != want.ID {
		t.Errorf("Expected ID %q, got %q", want.ID, got.ID)
	}
	if got.Source != want.Source {
		t.Errorf("Expected source %q, got %q", want.Source, got.Source)
	}
	if got.Destination != want.Destination {
		t.Errorf("Expected destination %q, got %q", want.Destination, got.Destination)
	}
	if !got.StartedAt.Equal(want.StartedAt) {
		t.Errorf("Expected started_at %v, got %v", want.StartedAt, got.StartedAt)
	}
	if got.Duration != want.Duration {
		t.Errorf("Expected duration %v, got %v", want.Duration, got.Duration)
	}
	if got.BlocksParsed != want.BlocksParsed {
		t.Errorf("Expected %d blocks parsed, got %d", want.BlocksParsed, got.BlocksParsed)
	}
	if got.RecordsKept != want.RecordsKept {
		t.Errorf("Expected %d records kept, got %d", want.RecordsKept, got.RecordsKept)
	}
	if got.RecordsNoPhone != want.RecordsNoPhone {
		t.Errorf("Expected %d records without phone, got %d", want.RecordsNoPhone, got.RecordsNoPhone)
	}
	if got.DuplicatesRemoved != want.DuplicatesRemoved {
		t.Errorf("Expected %d duplicates removed, got %d", want.DuplicatesRemoved, got.DuplicatesRemoved)
	}
	if got.FieldsRemoved != want.FieldsRemoved {
		t.Errorf("Expected %d fields removed, got %d", want.FieldsRemoved, got.FieldsRemoved)
	}
	if got.DiscardedLines != want.DiscardedLines {
		t.Errorf("Expected %d discarded lines, got %d", want.DiscardedLines, got.DiscardedLines)
	}
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := testRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := store.RecordRun(ctx, run); err != nil {
			t.Fatalf("Failed to record run %d: %v", i, err)
		}
	}

	t.Run("NewestFirst", func(t *testing.T) {
		runs, err := store.RecentRuns(ctx, 10)
		if err != nil {
			t.Fatalf("Failed to read runs: %v", err)
		}
		if len(runs) != 5 {
			t.Fatalf("Expected 5 runs, got %d", len(runs))
		}
		for i := 1; i < len(runs); i++ {
			if runs[i].StartedAt.After(runs[i-1].StartedAt) {
				t.Errorf("Run %d (%v) is newer than run %d (%v)",
					i, runs[i].StartedAt, i-1, runs[i-1].StartedAt)
			}
		}
		if runs[0].ID != "run-4" {
			t.Errorf("Expected newest run run-4 first, got %s", runs[0].ID)
		}
	})

	t.Run("LimitApplies", func(t *testing.T) {
		runs, err := store.RecentRuns(ctx, 2)
		if err != nil {
			t.Fatalf("Failed to read runs: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("Expected 2 runs, got %d", len(runs))
		}
		if runs[0].ID != "run-4" || runs[1].ID != "run-3" {
			t.Errorf("Expected run-4, run-3; got %s, %s", runs[0].ID, runs[1].ID)
		}
	})

	t.Run("ZeroLimitDefaults", func(t *testing.T) {
		runs, err := store.RecentRuns(ctx, 0)
		if err != nil {
			t.Fatalf("Failed to read runs: %v", err)
		}
		if len(runs) != 5 {
			t.Fatalf("Expected all 5 runs under default limit, got %d", len(runs))
		}
	})
}

func TestRecordRunValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	run := testRun("", time.Now())
	if err := store.RecordRun(ctx, run); err == nil {
		t.Error("Expected error for empty run id")
	}

	// Duplicate IDs violate the primary key.
	run = testRun("run-dup", time.Now())
	if err := store.RecordRun(ctx, run); err != nil {
		t.Fatalf("Failed to record run: %v", err)
	}
	if err := store.RecordRun(ctx, run); err == nil {
		t.Error("Expected error for duplicate run id")
	}
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := testRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := store.RecordRun(ctx, run); err != nil {
			t.Fatalf("Failed to record run %d: %v", i, err)
		}
	}

	t.Run("KeepsNewest", func(t *testing.T) {
		deleted, err := store.Prune(ctx, 2)
		if err != nil {
			t.Fatalf("Prune() error: %v", err)
		}
		if deleted != 3 {
			t.Errorf("Prune() deleted %d runs, want 3", deleted)
		}

		runs, err := store.RecentRuns(ctx, 10)
		if err != nil {
			t.Fatalf("Failed to read runs: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("Expected 2 surviving runs, got %d", len(runs))
		}
		if runs[0].ID != "run-4" || runs[1].ID != "run-3" {
			t.Errorf("Survivors = %s, %s; want run-4, run-3", runs[0].ID, runs[1].ID)
		}
	})

	t.Run("NothingToDelete", func(t *testing.T) {
		deleted, err := store.Prune(ctx, 10)
		if err != nil {
			t.Fatalf("Prune() error: %v", err)
		}
		if deleted != 0 {
			t.Errorf("Prune() deleted %d runs, want 0", deleted)
		}
	})

	t.Run("NegativeKeep", func(t *testing.T) {
		if _, err := store.Prune(ctx, -1); err == nil {
			t.Error("Expected error for negative keep")
		}
	})

	t.Run("KeepZeroEmptiesTable", func(t *testing.T) {
		deleted, err := store.Prune(ctx, 0)
		if err != nil {
			t.Fatalf("Prune() error: %v", err)
		}
		if deleted != 2 {
			t.Errorf("Prune() deleted %d runs, want 2", deleted)
		}
		runs, err := store.RecentRuns(ctx, 10)
		if err != nil {
			t.Fatalf("Failed to read runs: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("Expected empty table, got %d runs", len(runs))
		}
	})
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	run := testRun("run-1", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	if err := store.RecordRun(ctx, run); err != nil {
		t.Fatalf("Failed to record run: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to read runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "run-1" {
		t.Fatalf("Expected run-1 to survive reopen, got %d runs", len(runs))
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open store in nested directory: %v", err)
	}
	defer store.Close()

	if err := store.RecordRun(context.Background(), testRun("run-1", time.Now())); err != nil {
		t.Fatalf("Failed to record run: %v", err)
	}
}
