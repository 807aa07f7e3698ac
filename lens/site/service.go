package site

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/PrivacyLens/go-api/lens"
	"github.com/PrivacyLens/go-api/lens/config"
	"github.com/PrivacyLens/go-api/lens/score"
	"github.com/PrivacyLens/go-api/lens/sighting"
	"github.com/PrivacyLens/go-api/lens/snapshot"
	"github.com/PrivacyLens/go-api/lens/tracker"
)

// Service is the engine's single entry point for raw sighting events.
type Service struct {
	store      ProfileStore
	classifier *tracker.Classifier
	policy     score.TierPolicy
	cfg        *config.EngineConfig
	now        func() time.Time
}

// NewService creates a Service over the given store. A nil cfg uses the
// engine defaults.
func NewService(store ProfileStore, cfg *config.EngineConfig) *Service {
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}
	return &Service{
		store:      store,
		classifier: tracker.NewClassifier(),
		policy:     score.TierPolicy{High: cfg.HighRiskThreshold, Medium: cfg.MediumRiskThreshold},
		cfg:        cfg,
		now:        time.Now,
	}
}

// Ingest runs one raw event through the full pipeline and returns the updated
// profile plus the change-detection record. The change record is nil when the
// ingest produced only a periodic snapshot.
//
// On any error the profile is untouched: validation rejects before any write,
// and the store applies the recompute atomically or not at all.
func (s *Service) Ingest(ctx context.Context, raw lens.RawEvent) (*lens.IngestResult, error) {
	siteDomain := strings.ToLower(strings.TrimSpace(raw.SiteDomain))
	if siteDomain == "" {
		return nil, fmt.Errorf("rejecting sighting: %w", lens.ErrInvalidInput)
	}

	trackerDomain := strings.ToLower(strings.TrimSpace(raw.TrackerDomain))
	class := s.classifier.Classify(trackerDomain)
	now := s.now().UTC()

	ev := lens.SightingEvent{
		SiteDomain:       siteDomain,
		RequestURL:       raw.RequestURL,
		TrackerDomain:    trackerDomain,
		TrackerType:      class.Type,
		Category:         class.Category,
		RiskTier:         class.RiskTier,
		IsThirdParty:     tracker.IsThirdParty(trackerDomain, siteDomain),
		IsFingerprinting: tracker.DetectFingerprinting(raw.Metadata),
		ObservedAt:       now,
		Metadata:         raw.Metadata,
	}

	var change lens.ChangeRecord
	profile, err := s.store.ApplySighting(ctx, ev, func(profile *lens.SiteProfile, log []lens.SightingEvent) error {
		change = s.recompute(profile, log, now)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist sighting for %s: %w", siteDomain, err)
	}

	if change.HasChanges {
		slog.Info("Site profile changed",
			"domain", siteDomain,
			"reason", change.Reason,
			"description", change.Description)
	}

	// The registry counter is advisory; a failed increment never fails the
	// ingest.
	if trackerDomain != "" {
		if err := s.store.RecordTrackerSighting(ctx, trackerDomain, class, now); err != nil {
			slog.Warn("Failed to update tracker registry", "tracker", trackerDomain, "error", err)
		}
	}

	result := &lens.IngestResult{SiteProfile: profile}
	if change.HasChanges {
		c := change
		result.ChangeDetection = &c
	}
	return result, nil
}

// recompute rebuilds the profile from the authoritative log: counters, score,
// tier, tracker set, and the history-appended snapshot. History truncation
// happens in the same step as the append so the cap is never transiently
// exceeded.
func (s *Service) recompute(profile *lens.SiteProfile, log []lens.SightingEvent, now time.Time) lens.ChangeRecord {
	counters := sighting.Aggregate(log)

	domains := sighting.UniqueDomains(log)
	sort.Strings(domains)

	var previous *lens.Snapshot
	if n := len(profile.History); n > 0 {
		previous = &profile.History[n-1]
	}

	change := snapshot.Detect(domains, profile.TrackerDomains, previous, counters)
	riskScore := score.CalculateFromCounters(counters)

	snap := snapshot.NewSnapshot(now, riskScore, counters, change)
	profile.History = snapshot.AppendHistory(profile.History, snap, s.cfg.HistoryCapacity)

	profile.Counters = counters
	profile.Score = riskScore
	profile.RiskTier = s.policy.Tier(riskScore)
	profile.ScanCount++
	profile.LastScanned = now
	profile.TrackerDomains = domains

	return change
}

// GetProfile exposes the stored profile for a domain. Read-only; returns nil
// when the site has never been scanned.
func (s *Service) GetProfile(ctx context.Context, domain string) (*lens.SiteProfile, error) {
	normalized := strings.ToLower(strings.TrimSpace(domain))
	if normalized == "" {
		return nil, fmt.Errorf("looking up profile: %w", lens.ErrInvalidInput)
	}
	return s.store.GetProfile(ctx, normalized)
}
