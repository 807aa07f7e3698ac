// File: sighting.go
package models

import (
	"time"
)

// SightingEvent is one tracker sighting as persisted in PostgreSQL. Rows are
// append-only: created by ingestion and never mutated. The only deletion path
// is the retention sweep over old rows.
type SightingEvent struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SiteDomain       string    `gorm:"not null;size:255;index:idx_sightings_site" json:"site_domain"`
	RequestURL       string    `gorm:"type:text" json:"request_url,omitempty"`
	TrackerDomain    string    `gorm:"size:255;index:idx_sightings_tracker" json:"tracker_domain"`
	TrackerType      string    `gorm:"not null;size:20" json:"tracker_type"`
	Category         string    `gorm:"not null;size:20" json:"category"`
	RiskTier         string    `gorm:"not null;size:20" json:"risk"`
	IsThirdParty     bool      `gorm:"not null" json:"is_third_party"`
	IsFingerprinting bool      `gorm:"not null" json:"is_fingerprinting"`
	ObservedAt       time.Time `gorm:"not null;default:NOW();index:idx_sightings_observed,sort:desc" json:"observed_at"`
	Metadata         JSONB     `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt        time.Time `gorm:"not null;default:NOW()" json:"created_at"`
}

// TableName specifies the table name for the SightingEvent model
func (SightingEvent) TableName() string {
	return "sighting_events"
}
