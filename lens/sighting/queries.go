package sighting

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/PrivacyLens/go-api/lens"
	"github.com/PrivacyLens/go-api/lens/postgres/models"
)

// Log retrieves the complete sighting log for a site domain, oldest first.
// This is the authoritative event set the aggregator recomputes from.
func Log(db *gorm.DB, domain string) ([]lens.SightingEvent, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection not available")
	}

	var rows []models.SightingEvent
	err := db.Where("site_domain = ?", domain).
		Order("observed_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query sighting log for %s: %w", domain, err)
	}

	events := make([]lens.SightingEvent, len(rows))
	for i, row := range rows {
		events[i] = MapModel(row)
	}
	return events, nil
}

// CountForDomain returns the number of recorded sightings for a site.
func CountForDomain(db *gorm.DB, domain string) (int64, error) {
	if db == nil {
		return 0, fmt.Errorf("database connection not available")
	}

	var total int64
	err := db.Model(&models.SightingEvent{}).
		Where("site_domain = ?", domain).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count sightings for %s: %w", domain, err)
	}
	return total, nil
}

/* =========== Mapping Functions ============ */

// MapModel converts a persisted sighting row to the domain event.
func MapModel(row models.SightingEvent) lens.SightingEvent {
	return lens.SightingEvent{
		SiteDomain:       row.SiteDomain,
		RequestURL:       row.RequestURL,
		TrackerDomain:    row.TrackerDomain,
		TrackerType:      lens.TrackerType(row.TrackerType),
		Category:         lens.Category(row.Category),
		RiskTier:         lens.RiskTier(row.RiskTier),
		IsThirdParty:     row.IsThirdParty,
		IsFingerprinting: row.IsFingerprinting,
		ObservedAt:       row.ObservedAt,
		Metadata:         map[string]any(row.Metadata),
	}
}

// MapToModel converts a domain event to its persisted form.
func MapToModel(ev lens.SightingEvent) models.SightingEvent {
	return models.SightingEvent{
		SiteDomain:       ev.SiteDomain,
		RequestURL:       ev.RequestURL,
		TrackerDomain:    ev.TrackerDomain,
		TrackerType:      string(ev.TrackerType),
		Category:         string(ev.Category),
		RiskTier:         string(ev.RiskTier),
		IsThirdParty:     ev.IsThirdParty,
		IsFingerprinting: ev.IsFingerprinting,
		ObservedAt:       ev.ObservedAt,
		Metadata:         models.JSONB(ev.Metadata),
	}
}
