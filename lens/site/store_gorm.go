package site

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/PrivacyLens/go-api/lens"
	"github.com/PrivacyLens/go-api/lens/config"
	"github.com/PrivacyLens/go-api/lens/postgres/models"
	"github.com/PrivacyLens/go-api/lens/sighting"
)

// GormStore is the PostgreSQL-backed ProfileStore. Each apply runs in a
// transaction conditioned on the profile's version column; a stale version
// rolls the whole unit back (event row included) and the apply is retried
// with backoff. Conflicts are surfaced only after retries are exhausted.
type GormStore struct {
	db         *gorm.DB
	retries    int
	retryDelay time.Duration
}

// NewGormStore creates a GormStore over an open connection handle.
func NewGormStore(db *gorm.DB, cfg *config.EngineConfig) *GormStore {
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}
	return &GormStore{
		db:         db,
		retries:    cfg.WriteRetries,
		retryDelay: cfg.WriteRetryDelay,
	}
}

// ApplySighting implements ProfileStore with an optimistic-concurrency retry
// loop around a transactional read-recompute-write.
func (g *GormStore) ApplySighting(ctx context.Context, ev lens.SightingEvent, update UpdateFunc) (*lens.SiteProfile, error) {
	if g.db == nil {
		return nil, fmt.Errorf("database connection not available")
	}

	var lastErr error
	for attempt := 0; attempt <= g.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(g.retryDelay * time.Duration(attempt)):
			}
		}

		profile, err := g.applyOnce(ctx, ev, update)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, lens.ErrWriteConflict) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("site profile write for %s failed after %d retries: %w", ev.SiteDomain, g.retries, lastErr)
}

// applyOnce runs a single transactional apply. Returns ErrWriteConflict when
// another writer got there first.
func (g *GormStore) applyOnce(ctx context.Context, ev lens.SightingEvent, update UpdateFunc) (*lens.SiteProfile, error) {
	var result *lens.SiteProfile

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Site
		found := true
		if err := tx.Where("domain = ?", ev.SiteDomain).First(&row).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to load site %s: %w", ev.SiteDomain, err)
			}
			found = false
		}

		eventRow := sighting.MapToModel(ev)
		if err := tx.Create(&eventRow).Error; err != nil {
			return fmt.Errorf("failed to append sighting for %s: %w", ev.SiteDomain, err)
		}

		log, err := sighting.Log(tx, ev.SiteDomain)
		if err != nil {
			return err
		}

		profile := mapSiteModel(row)
		if !found {
			profile = &lens.SiteProfile{Domain: ev.SiteDomain}
		}

		if err := update(profile, log); err != nil {
			return err
		}

		if found {
			res := tx.Model(&models.Site{}).
				Where("domain = ? AND version = ?", ev.SiteDomain, row.Version).
				Updates(siteColumns(profile, row.Version+1))
			if res.Error != nil {
				return fmt.Errorf("failed to update site %s: %w", ev.SiteDomain, res.Error)
			}
			if res.RowsAffected == 0 {
				return lens.ErrWriteConflict
			}
		} else {
			created := mapToSiteModel(profile)
			created.Version = 1
			if err := tx.Create(&created).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Another writer created the row between our read and
					// write. Retryable.
					return lens.ErrWriteConflict
				}
				return fmt.Errorf("failed to create site %s: %w", ev.SiteDomain, err)
			}
		}

		result = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetProfile implements ProfileStore.
func (g *GormStore) GetProfile(ctx context.Context, domain string) (*lens.SiteProfile, error) {
	if g.db == nil {
		return nil, fmt.Errorf("database connection not available")
	}

	var row models.Site
	err := g.db.WithContext(ctx).Where("domain = ?", domain).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load site %s: %w", domain, err)
	}
	return mapSiteModel(row), nil
}

// RecordTrackerSighting implements ProfileStore. The registry row is upserted
// and its counter incremented server-side; no version discipline is needed
// because the increment commutes.
func (g *GormStore) RecordTrackerSighting(ctx context.Context, domain string, class lens.Classification, seenAt time.Time) error {
	if g.db == nil {
		return fmt.Errorf("database connection not available")
	}

	db := g.db.WithContext(ctx)

	var existing models.Tracker
	err := db.Where("domain = ?", domain).First(&existing).Error
	if err == nil {
		return db.Model(&existing).Updates(map[string]any{
			"category":       string(class.Category),
			"type":           string(class.Type),
			"risk_tier":      string(class.RiskTier),
			"sighting_count": gorm.Expr("sighting_count + 1"),
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load tracker %s: %w", domain, err)
	}

	record := models.Tracker{
		Domain:        domain,
		Category:      string(class.Category),
		Type:          string(class.Type),
		RiskTier:      string(class.RiskTier),
		FirstSeenAt:   seenAt,
		SightingCount: 1,
	}
	if err := db.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the insert race; fold into the existing row instead.
			return db.Model(&models.Tracker{}).
				Where("domain = ?", domain).
				Update("sighting_count", gorm.Expr("sighting_count + 1")).Error
		}
		return fmt.Errorf("failed to create tracker %s: %w", domain, err)
	}
	return nil
}

/* =========== Mapping Functions ============ */

func mapSiteModel(row models.Site) *lens.SiteProfile {
	return &lens.SiteProfile{
		Domain: row.Domain,
		Counters: lens.Counters{
			SightingCount:            row.SightingCount,
			UniqueTrackerDomainCount: row.UniqueTrackerCount,
			ThirdPartyCount:          row.ThirdPartyCount,
			CookieCount:              row.CookieCount,
		},
		Score:          row.Score,
		RiskTier:       lens.RiskTier(row.RiskTier),
		ScanCount:      row.ScanCount,
		LastScanned:    row.LastScanned,
		TrackerDomains: []string(row.TrackerDomains),
		History:        []lens.Snapshot(row.History),
	}
}

func mapToSiteModel(profile *lens.SiteProfile) models.Site {
	return models.Site{
		Domain:             profile.Domain,
		Score:              profile.Score,
		RiskTier:           string(profile.RiskTier),
		SightingCount:      profile.Counters.SightingCount,
		UniqueTrackerCount: profile.Counters.UniqueTrackerDomainCount,
		ThirdPartyCount:    profile.Counters.ThirdPartyCount,
		CookieCount:        profile.Counters.CookieCount,
		ScanCount:          profile.ScanCount,
		LastScanned:        profile.LastScanned,
		TrackerDomains:     models.StringList(profile.TrackerDomains),
		History:            models.SnapshotList(profile.History),
	}
}

// siteColumns renders the versioned column set for a conditional update.
func siteColumns(profile *lens.SiteProfile, version int64) map[string]any {
	return map[string]any{
		"score":                profile.Score,
		"risk_tier":            string(profile.RiskTier),
		"sighting_count":       profile.Counters.SightingCount,
		"unique_tracker_count": profile.Counters.UniqueTrackerDomainCount,
		"third_party_count":    profile.Counters.ThirdPartyCount,
		"cookie_count":         profile.Counters.CookieCount,
		"scan_count":           profile.ScanCount,
		"last_scanned":         profile.LastScanned,
		"tracker_domains":      models.StringList(profile.TrackerDomains),
		"history":              models.SnapshotList(profile.History),
		"version":              version,
	}
}
