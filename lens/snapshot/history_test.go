package snapshot

import (
	"testing"
	"time"

	"github.com/PrivacyLens/go-api/lens"
)

func snapAt(minute int) lens.Snapshot {
	return lens.Snapshot{
		TakenAt: time.Date(2026, 8, 30, 10, minute, 0, 0, time.UTC),
		Score:   minute,
	}
}

func TestAppendHistoryGrowsUntilCapacity(t *testing.T) {
	var history []lens.Snapshot
	for i := 0; i < 5; i++ {
		history = AppendHistory(history, snapAt(i), 30)
	}

	if len(history) != 5 {
		t.Fatalf("history length = %d, want 5", len(history))
	}
	for i, snap := range history {
		if snap.Score != i {
			t.Errorf("history[%d].Score = %d, want %d (oldest first)", i, snap.Score, i)
		}
	}
}

func TestAppendHistoryEvictsOldest(t *testing.T) {
	var history []lens.Snapshot
	for i := 0; i < 35; i++ {
		history = AppendHistory(history, snapAt(i), 30)
		if len(history) > 30 {
			t.Fatalf("history exceeded capacity after append %d: len=%d", i, len(history))
		}
	}

	if len(history) != 30 {
		t.Fatalf("history length = %d, want 30", len(history))
	}
	if history[0].Score != 5 {
		t.Errorf("oldest surviving snapshot = %d, want 5 (first 5 evicted)", history[0].Score)
	}
	if history[29].Score != 34 {
		t.Errorf("newest snapshot = %d, want 34", history[29].Score)
	}
}

func TestAppendHistorySmallCapacity(t *testing.T) {
	var history []lens.Snapshot
	for i := 0; i < 4; i++ {
		history = AppendHistory(history, snapAt(i), 3)
	}

	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	if history[0].Score != 1 || history[2].Score != 3 {
		t.Errorf("unexpected window after eviction: first=%d last=%d", history[0].Score, history[2].Score)
	}
}

func TestAppendHistoryNonPositiveCapacityMeansUnbounded(t *testing.T) {
	var history []lens.Snapshot
	for i := 0; i < 40; i++ {
		history = AppendHistory(history, snapAt(i), 0)
	}

	if len(history) != 40 {
		t.Errorf("history length = %d, want 40 with no cap", len(history))
	}
}
