package sighting

import (
	"reflect"
	"sort"
	"testing"

	"github.com/PrivacyLens/go-api/lens"
)

func ev(tracker string, trackerType lens.TrackerType, thirdParty bool) lens.SightingEvent {
	return lens.SightingEvent{
		SiteDomain:    "a.com",
		TrackerDomain: tracker,
		TrackerType:   trackerType,
		IsThirdParty:  thirdParty,
	}
}

func TestAggregateEmptyLog(t *testing.T) {
	counters := Aggregate(nil)
	if counters != (lens.Counters{}) {
		t.Errorf("empty log should yield zero counters, got %+v", counters)
	}
}

func TestAggregateCounters(t *testing.T) {
	log := []lens.SightingEvent{
		ev("x.com", lens.TypeScript, false),
		ev("y.com", lens.TypeCookie, true),
		ev("y.com", lens.TypePixel, true),
		ev("z.com", lens.TypeCookie, true),
	}

	counters := Aggregate(log)

	want := lens.Counters{
		SightingCount:            4,
		UniqueTrackerDomainCount: 3,
		ThirdPartyCount:          3,
		CookieCount:              2,
	}
	if counters != want {
		t.Errorf("Aggregate = %+v, want %+v", counters, want)
	}
}

func TestAggregateEmptyTrackerDomainsStillCountOneUnique(t *testing.T) {
	// Sightings can arrive without a tracker domain; a non-empty log still
	// counts at least one unique tracker.
	log := []lens.SightingEvent{
		ev("", lens.TypeOther, false),
		ev("", lens.TypeOther, false),
	}

	counters := Aggregate(log)
	if counters.SightingCount != 2 {
		t.Errorf("SightingCount = %d, want 2", counters.SightingCount)
	}
	if counters.UniqueTrackerDomainCount != 1 {
		t.Errorf("UniqueTrackerDomainCount = %d, want 1", counters.UniqueTrackerDomainCount)
	}
}

func TestAggregateInvariants(t *testing.T) {
	logs := [][]lens.SightingEvent{
		nil,
		{ev("x.com", lens.TypeScript, false)},
		{ev("x.com", lens.TypeScript, false), ev("x.com", lens.TypeScript, false)},
		{ev("x.com", lens.TypeCookie, true), ev("y.com", lens.TypePixel, true), ev("", lens.TypeOther, false)},
	}

	for i, log := range logs {
		counters := Aggregate(log)
		if counters.UniqueTrackerDomainCount > counters.SightingCount {
			t.Errorf("log %d: unique %d exceeds sightings %d",
				i, counters.UniqueTrackerDomainCount, counters.SightingCount)
		}
		if (counters.UniqueTrackerDomainCount == 0) != (counters.SightingCount == 0) {
			t.Errorf("log %d: unique count zero iff sighting count zero violated: %+v", i, counters)
		}
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	log := []lens.SightingEvent{
		ev("x.com", lens.TypeScript, false),
		ev("y.com", lens.TypeCookie, true),
	}

	first := Aggregate(log)
	second := Aggregate(log)
	if first != second {
		t.Errorf("recomputation diverged: %+v vs %+v", first, second)
	}
}

func TestUniqueDomains(t *testing.T) {
	log := []lens.SightingEvent{
		ev("y.com", lens.TypeScript, true),
		ev("x.com", lens.TypeScript, false),
		ev("y.com", lens.TypePixel, true),
		ev("", lens.TypeOther, false),
	}

	domains := UniqueDomains(log)
	sort.Strings(domains)
	if !reflect.DeepEqual(domains, []string{"x.com", "y.com"}) {
		t.Errorf("UniqueDomains = %v, want [x.com y.com]", domains)
	}
}
