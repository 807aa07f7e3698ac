// Package site orchestrates the ingest pipeline: validate, classify,
// aggregate, score, diff against history, persist. It owns the SiteProfile;
// callers never mutate profiles directly.
package site

import (
	"context"
	"time"

	"github.com/PrivacyLens/go-api/lens"
)

// UpdateFunc recomputes a site profile in place given the complete event log
// for the domain, including the just-appended sighting. It must be pure apart
// from mutating profile; the store may call it more than once when a write
// conflicts and is retried.
type UpdateFunc func(profile *lens.SiteProfile, log []lens.SightingEvent) error

// ProfileStore is the atomicity contract for the engine's persistence. A
// backend satisfies it with a transaction, an optimistic-concurrency retry
// loop, or a mutex-guarded map; the engine does not care which.
type ProfileStore interface {
	// ApplySighting appends ev to the domain's event log and updates the
	// site profile through update, as one logical unit: event, counters,
	// score, scan count, and the history-appended snapshot all land
	// atomically, or none of them do. Concurrent applies for the same
	// domain must not lose updates; applies for different domains are
	// independent.
	ApplySighting(ctx context.Context, ev lens.SightingEvent, update UpdateFunc) (*lens.SiteProfile, error)

	// GetProfile returns the current profile for a domain, or nil when the
	// site has never been scanned.
	GetProfile(ctx context.Context, domain string) (*lens.SiteProfile, error)

	// RecordTrackerSighting upserts the global tracker registry row and
	// increments its sighting counter. Advisory; eventually consistent
	// relative to ApplySighting.
	RecordTrackerSighting(ctx context.Context, domain string, class lens.Classification, seenAt time.Time) error
}
