// Package snapshot implements the change-detection diff between a site's
// current tracker set and its most recent stored snapshot, and the capped
// score history that records the result.
package snapshot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PrivacyLens/go-api/lens"
)

// Detect compares the current tracker-domain set against the previous one and
// classifies the dominant reason for change. previousDomains and previous are
// nil/empty on a site's first scan.
//
// Classification precedence, first match wins:
// no previous snapshot, new tracker, tracker removed, sighting count up,
// sighting count down, periodic snapshot.
//
// The output is deterministic for a given input: added/removed domain lists
// are sorted, and the description is templated from them. This feeds an
// audit-facing history, so nothing here may depend on map iteration order.
func Detect(currentDomains, previousDomains []string, previous *lens.Snapshot, current lens.Counters) lens.ChangeRecord {
	if previous == nil {
		return lens.ChangeRecord{
			Reason:          lens.ReasonFirstScan,
			Description:     fmt.Sprintf("First scan completed: %d tracker(s) detected", current.UniqueTrackerDomainCount),
			TrackersAdded:   []string{},
			TrackersRemoved: []string{},
			HasChanges:      true,
		}
	}

	added := diff(currentDomains, previousDomains)
	removed := diff(previousDomains, currentDomains)

	record := lens.ChangeRecord{
		TrackersAdded:   added,
		TrackersRemoved: removed,
		HasChanges:      true,
	}

	switch {
	case len(added) > 0:
		record.Reason = lens.ReasonNewTracker
		record.Description = fmt.Sprintf("Detected %d new tracker(s): %s", len(added), strings.Join(added, ", "))
	case len(removed) > 0:
		record.Reason = lens.ReasonTrackerRemoved
		record.Description = fmt.Sprintf("%d tracker(s) no longer detected: %s", len(removed), strings.Join(removed, ", "))
	case current.SightingCount > previous.SightingCount:
		record.Reason = lens.ReasonIncreasedFrequency
		record.Description = fmt.Sprintf("Tracking activity increased from %d to %d sightings", previous.SightingCount, current.SightingCount)
	case current.SightingCount < previous.SightingCount:
		record.Reason = lens.ReasonDecreasedFrequency
		record.Description = fmt.Sprintf("Tracking activity decreased from %d to %d sightings", previous.SightingCount, current.SightingCount)
	default:
		record.Reason = lens.ReasonPeriodicSnapshot
		record.Description = "No significant changes detected"
		record.HasChanges = false
	}

	return record
}

// NewSnapshot builds the history entry for one ingest from the computed score,
// counters, and change record.
func NewSnapshot(takenAt time.Time, riskScore int, counters lens.Counters, change lens.ChangeRecord) lens.Snapshot {
	return lens.Snapshot{
		TakenAt:                  takenAt,
		Score:                    riskScore,
		SightingCount:            counters.SightingCount,
		UniqueTrackerDomainCount: counters.UniqueTrackerDomainCount,
		ThirdPartyCount:          counters.ThirdPartyCount,
		TrackersAdded:            change.TrackersAdded,
		TrackersRemoved:          change.TrackersRemoved,
		ChangeReason:             change.Reason,
		ChangeDescription:        change.Description,
	}
}

// diff returns the members of a that are absent from b, sorted.
func diff(a, b []string) []string {
	seen := make(map[string]struct{}, len(b))
	for _, d := range b {
		seen[d] = struct{}{}
	}

	out := []string{}
	dedup := make(map[string]struct{}, len(a))
	for _, d := range a {
		if _, ok := seen[d]; ok {
			continue
		}
		if _, ok := dedup[d]; ok {
			continue
		}
		dedup[d] = struct{}{}
		out = append(out, d)
	}

	sort.Strings(out)
	return out
}
