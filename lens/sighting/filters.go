package sighting

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/PrivacyLens/go-api/lens"
	"github.com/PrivacyLens/go-api/lens/postgres/models"
)

// ListFilters narrows a sighting query. Zero values mean "no filter".
type ListFilters struct {
	Limit         int
	Offset        int
	SiteDomain    string
	TrackerDomain string
	TrackerType   string
	Category      string
	ThirdParty    *bool
	StartTime     *time.Time
	EndTime       *time.Time
}

// List retrieves sightings matching the filters, newest first, and the total
// match count before pagination.
func List(db *gorm.DB, filters ListFilters) ([]lens.SightingEvent, int, error) {
	if db == nil {
		return nil, 0, fmt.Errorf("database connection not available")
	}

	query := db.Model(&models.SightingEvent{})

	if filters.SiteDomain != "" {
		query = query.Where("site_domain = ?", filters.SiteDomain)
	}
	if filters.TrackerDomain != "" {
		query = query.Where("tracker_domain = ?", filters.TrackerDomain)
	}
	if filters.TrackerType != "" {
		query = query.Where("tracker_type = ?", filters.TrackerType)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.ThirdParty != nil {
		query = query.Where("is_third_party = ?", *filters.ThirdParty)
	}
	if filters.StartTime != nil {
		query = query.Where("observed_at >= ?", filters.StartTime)
	}
	if filters.EndTime != nil {
		query = query.Where("observed_at <= ?", filters.EndTime)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sightings: %w", err)
	}

	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	if filters.Limit > 500 {
		filters.Limit = 500
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	var rows []models.SightingEvent
	err := query.
		Order("observed_at DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query sightings: %w", err)
	}

	events := make([]lens.SightingEvent, len(rows))
	for i, row := range rows {
		events[i] = MapModel(row)
	}
	return events, int(total), nil
}

// DeleteOldSightings deletes sightings observed before the retention window.
// The per-site aggregates are not recomputed here; the next ingest for a site
// rebuilds them from whatever survives.
func DeleteOldSightings(db *gorm.DB, olderThan time.Duration) (int64, error) {
	if db == nil {
		return 0, fmt.Errorf("database connection not available")
	}

	cutoff := time.Now().Add(-olderThan)
	result := db.Where("observed_at < ?", cutoff).Delete(&models.SightingEvent{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old sightings: %w", result.Error)
	}
	return result.RowsAffected, nil
}
