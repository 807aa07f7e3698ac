// Package analytics provides the aggregated read models consumed by the
// dashboard: top trackers, global summary, daily sighting trends, and the
// recent-changes feed derived from site score histories.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/PrivacyLens/go-api/lens"
	"github.com/PrivacyLens/go-api/lens/postgres/models"
)

// TrackerStat is one row of the top-trackers ranking.
type TrackerStat struct {
	Name     string `json:"name" gorm:"column:domain"`
	Count    int    `json:"count" gorm:"column:sighting_count"`
	Category string `json:"category" gorm:"column:category"`
	Risk     string `json:"risk" gorm:"column:risk_tier"`
}

// Summary is the global dashboard rollup.
type Summary struct {
	TotalSites       int64   `json:"total_sites"`
	TotalTrackers    int64   `json:"total_trackers"`
	TotalSightings   int64   `json:"total_sightings"`
	AverageRiskScore float64 `json:"average_risk_score"`
}

// TrendPoint is one day's sighting volume.
type TrendPoint struct {
	Date      string `json:"date" gorm:"column:day"`
	Sightings int    `json:"sightings" gorm:"column:sightings"`
}

// SiteChange is one entry of the recent-changes feed.
type SiteChange struct {
	Domain          string            `json:"domain"`
	Date            time.Time         `json:"date"`
	Description     string            `json:"description"`
	Reason          lens.ChangeReason `json:"reason"`
	TrackersAdded   []string          `json:"trackers_added"`
	TrackersRemoved []string          `json:"trackers_removed"`
	Score           int               `json:"score"`
}

// RecentChangesResponse wraps the feed with its window metadata.
type RecentChangesResponse struct {
	Timeframe   string       `json:"timeframe"`
	ChangeCount int          `json:"change_count"`
	Changes     []SiteChange `json:"changes"`
}

// TopTrackers returns the most-sighted tracker domains across all sites.
func TopTrackers(db *gorm.DB, limit int) ([]TrackerStat, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection not available")
	}
	if limit <= 0 {
		limit = 10
	}

	var stats []TrackerStat
	err := db.Model(&models.Tracker{}).
		Select("domain, sighting_count, category, risk_tier").
		Order("sighting_count DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query top trackers: %w", err)
	}
	return stats, nil
}

// GetSummary returns the global counts and the average privacy risk score.
func GetSummary(db *gorm.DB) (*Summary, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection not available")
	}

	summary := &Summary{}
	if err := db.Model(&models.Site{}).Count(&summary.TotalSites).Error; err != nil {
		return nil, fmt.Errorf("failed to count sites: %w", err)
	}
	if err := db.Model(&models.Tracker{}).Count(&summary.TotalTrackers).Error; err != nil {
		return nil, fmt.Errorf("failed to count trackers: %w", err)
	}
	if err := db.Model(&models.SightingEvent{}).Count(&summary.TotalSightings).Error; err != nil {
		return nil, fmt.Errorf("failed to count sightings: %w", err)
	}

	var avg struct {
		AvgScore float64
	}
	err := db.Model(&models.Site{}).
		Select("COALESCE(AVG(score), 0) as avg_score").
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to average site scores: %w", err)
	}
	summary.AverageRiskScore = avg.AvgScore

	return summary, nil
}

// DailyTrends returns per-day sighting counts, oldest first, capped at days
// buckets.
func DailyTrends(db *gorm.DB, days int) ([]TrendPoint, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection not available")
	}
	if days <= 0 || days > 90 {
		days = 30
	}

	query := `
		SELECT to_char(observed_at, 'YYYY-MM-DD') as day,
		       COUNT(*) as sightings
		FROM sighting_events
		GROUP BY day
		ORDER BY day ASC
		LIMIT ?
	`

	var points []TrendPoint
	if err := db.Raw(query, days).Scan(&points).Error; err != nil {
		return nil, fmt.Errorf("failed to query daily trends: %w", err)
	}
	return points, nil
}

// RecentChanges collects the non-periodic snapshots across all site histories
// within the given window, newest first, capped at maxChanges entries.
// Snapshots that classify as frequency shifts without a tracker-set change
// are excluded; the feed answers "when did the tracker set move".
func RecentChanges(db *gorm.DB, days, maxChanges int) (*RecentChangesResponse, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection not available")
	}
	if days <= 0 {
		days = 7
	}
	if maxChanges <= 0 {
		maxChanges = 50
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	// History lives in a jsonb column, so the snapshot filtering happens
	// here rather than in SQL. The updated_at predicate keeps the scan to
	// sites that moved inside the window.
	var sites []models.Site
	err := db.Where("updated_at >= ?", cutoff).Find(&sites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query changed sites: %w", err)
	}

	changes := []SiteChange{}
	for _, site := range sites {
		for _, snap := range site.History {
			if snap.TakenAt.Before(cutoff) {
				continue
			}
			if snap.ChangeReason == lens.ReasonPeriodicSnapshot {
				continue
			}
			if len(snap.TrackersAdded) == 0 && len(snap.TrackersRemoved) == 0 {
				continue
			}
			changes = append(changes, SiteChange{
				Domain:          site.Domain,
				Date:            snap.TakenAt,
				Description:     snap.ChangeDescription,
				Reason:          snap.ChangeReason,
				TrackersAdded:   snap.TrackersAdded,
				TrackersRemoved: snap.TrackersRemoved,
				Score:           snap.Score,
			})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Date.After(changes[j].Date)
	})
	total := len(changes)
	if len(changes) > maxChanges {
		changes = changes[:maxChanges]
	}

	return &RecentChangesResponse{
		Timeframe:   fmt.Sprintf("Last %d days", days),
		ChangeCount: total,
		Changes:     changes,
	}, nil
}
