package snapshot

import (
	"reflect"
	"testing"
	"time"

	"github.com/PrivacyLens/go-api/lens"
)

func prevSnapshot(sightings int) *lens.Snapshot {
	return &lens.Snapshot{
		TakenAt:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		SightingCount: sightings,
	}
}

func TestDetectFirstScan(t *testing.T) {
	counters := lens.Counters{SightingCount: 1, UniqueTrackerDomainCount: 1}

	change := Detect([]string{"x.com"}, nil, nil, counters)

	if change.Reason != lens.ReasonFirstScan {
		t.Errorf("reason = %s, want first_scan", change.Reason)
	}
	if !change.HasChanges {
		t.Error("first scan must report changes")
	}
	if len(change.TrackersAdded) != 0 || len(change.TrackersRemoved) != 0 {
		t.Errorf("first scan diff sets must be empty, got added=%v removed=%v",
			change.TrackersAdded, change.TrackersRemoved)
	}
}

func TestDetectNewTracker(t *testing.T) {
	counters := lens.Counters{SightingCount: 2, UniqueTrackerDomainCount: 2}

	change := Detect([]string{"x.com", "y.com"}, []string{"x.com"}, prevSnapshot(1), counters)

	if change.Reason != lens.ReasonNewTracker {
		t.Errorf("reason = %s, want new_tracker", change.Reason)
	}
	if !reflect.DeepEqual(change.TrackersAdded, []string{"y.com"}) {
		t.Errorf("added = %v, want [y.com]", change.TrackersAdded)
	}
	if change.Description != "Detected 1 new tracker(s): y.com" {
		t.Errorf("unexpected description %q", change.Description)
	}
}

func TestDetectNewTrackerWinsOverRemoved(t *testing.T) {
	// Precedence: an addition dominates a simultaneous removal.
	counters := lens.Counters{SightingCount: 3}

	change := Detect([]string{"x.com", "z.com"}, []string{"x.com", "y.com"}, prevSnapshot(2), counters)

	if change.Reason != lens.ReasonNewTracker {
		t.Errorf("reason = %s, want new_tracker", change.Reason)
	}
	if !reflect.DeepEqual(change.TrackersAdded, []string{"z.com"}) {
		t.Errorf("added = %v, want [z.com]", change.TrackersAdded)
	}
	if !reflect.DeepEqual(change.TrackersRemoved, []string{"y.com"}) {
		t.Errorf("removed = %v, want [y.com]", change.TrackersRemoved)
	}
}

func TestDetectTrackerRemoved(t *testing.T) {
	counters := lens.Counters{SightingCount: 3}

	change := Detect([]string{"x.com"}, []string{"x.com", "y.com"}, prevSnapshot(2), counters)

	if change.Reason != lens.ReasonTrackerRemoved {
		t.Errorf("reason = %s, want tracker_removed", change.Reason)
	}
	if change.Description != "1 tracker(s) no longer detected: y.com" {
		t.Errorf("unexpected description %q", change.Description)
	}
}

func TestDetectFrequencyShifts(t *testing.T) {
	domains := []string{"x.com"}

	up := Detect(domains, domains, prevSnapshot(2), lens.Counters{SightingCount: 5})
	if up.Reason != lens.ReasonIncreasedFrequency {
		t.Errorf("reason = %s, want increased_frequency", up.Reason)
	}
	if up.Description != "Tracking activity increased from 2 to 5 sightings" {
		t.Errorf("unexpected description %q", up.Description)
	}

	down := Detect(domains, domains, prevSnapshot(5), lens.Counters{SightingCount: 2})
	if down.Reason != lens.ReasonDecreasedFrequency {
		t.Errorf("reason = %s, want decreased_frequency", down.Reason)
	}
}

func TestDetectPeriodicSnapshot(t *testing.T) {
	domains := []string{"x.com", "y.com"}

	change := Detect(domains, domains, prevSnapshot(4), lens.Counters{SightingCount: 4})

	if change.Reason != lens.ReasonPeriodicSnapshot {
		t.Errorf("reason = %s, want periodic_snapshot", change.Reason)
	}
	if change.HasChanges {
		t.Error("periodic snapshot must not report changes")
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	// Same inputs, same output, including the ordering inside the rendered
	// description. The history is audit-facing.
	current := []string{"c.com", "a.com", "b.com"}
	previous := []string{"a.com"}
	counters := lens.Counters{SightingCount: 3}

	first := Detect(current, previous, prevSnapshot(1), counters)
	for i := 0; i < 50; i++ {
		again := Detect(current, previous, prevSnapshot(1), counters)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("detection diverged: %+v vs %+v", first, again)
		}
	}

	if first.Description != "Detected 2 new tracker(s): b.com, c.com" {
		t.Errorf("added domains should render sorted, got %q", first.Description)
	}
}

func TestNewSnapshotCarriesChangeRecord(t *testing.T) {
	takenAt := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	counters := lens.Counters{
		SightingCount:            2,
		UniqueTrackerDomainCount: 2,
		ThirdPartyCount:          1,
	}
	change := lens.ChangeRecord{
		Reason:          lens.ReasonNewTracker,
		Description:     "Detected 1 new tracker(s): y.com",
		TrackersAdded:   []string{"y.com"},
		TrackersRemoved: []string{},
		HasChanges:      true,
	}

	snap := NewSnapshot(takenAt, 7, counters, change)

	if snap.TakenAt != takenAt || snap.Score != 7 {
		t.Errorf("snapshot header mismatch: %+v", snap)
	}
	if snap.SightingCount != 2 || snap.UniqueTrackerDomainCount != 2 || snap.ThirdPartyCount != 1 {
		t.Errorf("snapshot counters mismatch: %+v", snap)
	}
	if snap.ChangeReason != lens.ReasonNewTracker || len(snap.TrackersAdded) != 1 {
		t.Errorf("snapshot change record mismatch: %+v", snap)
	}
}
