// Package sighting owns the per-site sighting event log: the pure aggregation
// of the log into site counters, and the gorm-backed queries over it.
package sighting

import "github.com/PrivacyLens/go-api/lens"

// Aggregate recomputes the four site counters from the complete event log for
// one domain. It is a pure function of the log: it must be re-run from the
// authoritative event set on every ingest rather than patched incrementally,
// which keeps the counters consistent even after a partially applied write.
// An empty log yields all-zero counters.
func Aggregate(events []lens.SightingEvent) lens.Counters {
	counters := lens.Counters{SightingCount: len(events)}
	if len(events) == 0 {
		return counters
	}

	unique := make(map[string]struct{}, len(events))
	for _, ev := range events {
		if ev.TrackerDomain != "" {
			unique[ev.TrackerDomain] = struct{}{}
		}
		if ev.IsThirdParty {
			counters.ThirdPartyCount++
		}
		if ev.TrackerType == lens.TypeCookie {
			counters.CookieCount++
		}
	}

	counters.UniqueTrackerDomainCount = len(unique)
	if counters.UniqueTrackerDomainCount == 0 {
		// A non-empty log always counts at least one tracker, even when every
		// sighting carried an empty tracker domain.
		counters.UniqueTrackerDomainCount = 1
	}

	return counters
}

// UniqueDomains returns the distinct non-empty tracker domains in the log,
// unordered.
func UniqueDomains(events []lens.SightingEvent) []string {
	seen := make(map[string]struct{}, len(events))
	domains := make([]string, 0, len(events))
	for _, ev := range events {
		if ev.TrackerDomain == "" {
			continue
		}
		if _, ok := seen[ev.TrackerDomain]; ok {
			continue
		}
		seen[ev.TrackerDomain] = struct{}{}
		domains = append(domains, ev.TrackerDomain)
	}
	return domains
}
