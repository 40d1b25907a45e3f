package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vertextoedge/space-reclaimer/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal", "runs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_Memory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	r := &domain.RunResult{TargetPath: "/data", Outcome: domain.OutcomeExhausted, StartedAt: time.Now()}
	if err := store.RecordRun(r); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	runs, err := store.RecentRuns(1)
	if err != nil || len(runs) != 1 || runs[0].ID != r.ID {
		t.Errorf("RecentRuns() = %v, %v", runs, err)
	}
}

func TestStore_RecordAndRecentRuns(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	first := &domain.RunResult{
		TargetPath:      "/data",
		ThresholdBytes:  100 << 30,
		Outcome:         domain.OutcomeAlreadySatisfied,
		FreeBytesBefore: 200 << 30,
		FreeBytesAfter:  200 << 30,
		StartedAt:       base,
		Elapsed:         12 * time.Millisecond,
	}
	second := &domain.RunResult{
		TargetPath:      "/data",
		ThresholdBytes:  100 << 30,
		FreeBytesBefore: 50 << 30,
		StartedAt:       base.Add(time.Hour),
		Elapsed:         3 * time.Second,
	}
	second.RecordDeletion(domain.DeletedDirectory{
		Name: "old", Path: "/data/old", CreatedAt: base.Add(-48 * time.Hour),
		SizeBytes: 30 << 30, SkippedEntries: 2, FreeBytesAfter: 80 << 30, DeletedAt: base.Add(time.Hour + time.Second),
	})
	second.RecordDeletion(domain.DeletedDirectory{
		Name: "older", Path: "/data/older", CreatedAt: base.Add(-24 * time.Hour),
		SizeBytes: 25 << 30, FreeBytesAfter: 105 << 30, DeletedAt: base.Add(time.Hour + 2*time.Second),
	})
	second.Outcome = domain.OutcomeFailed
	second.Error = "delete /data/x: permission denied"

	for _, r := range []*domain.RunResult{first, second} {
		if err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
		if r.ID == 0 {
			t.Error("RecordRun() did not set ID")
		}
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns() returned %d runs, want 2", len(runs))
	}

	got := runs[0]
	if got.ID != second.ID {
		t.Errorf("newest run ID = %d, want %d", got.ID, second.ID)
	}
	if got.Outcome != domain.OutcomeFailed || got.Error != second.Error {
		t.Errorf("Outcome/Error = %s/%q", got.Outcome, got.Error)
	}
	if got.DirectoriesDeleted != 2 || got.BytesFreed != 55<<30 || got.FreeBytesAfter != 105<<30 {
		t.Errorf("counters = %d/%d/%d", got.DirectoriesDeleted, got.BytesFreed, got.FreeBytesAfter)
	}
	if !got.StartedAt.Equal(second.StartedAt) || got.Elapsed != second.Elapsed {
		t.Errorf("StartedAt/Elapsed = %v/%v", got.StartedAt, got.Elapsed)
	}
	if len(got.Deleted) != 2 || got.Deleted[0].Name != "old" || got.Deleted[1].Name != "older" {
		t.Fatalf("Deleted = %+v", got.Deleted)
	}
	if got.Deleted[0].SkippedEntries != 2 || !got.Deleted[0].CreatedAt.Equal(base.Add(-48*time.Hour)) {
		t.Errorf("Deleted[0] = %+v", got.Deleted[0])
	}

	if runs[1].Error != "" || len(runs[1].Deleted) != 0 {
		t.Errorf("older run = %+v", runs[1])
	}
}

func TestStore_RecentRunsLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.Now()
	for i := 0; i < 5; i++ {
		r := &domain.RunResult{TargetPath: "/data", Outcome: domain.OutcomeGoalMet, StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("RecentRuns(3) returned %d runs", len(runs))
	}

	runs, err = store.RecentRuns(0)
	if err != nil || runs != nil {
		t.Errorf("RecentRuns(0) = %v, %v, want nil", runs, err)
	}
}
