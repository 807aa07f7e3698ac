// File: site.go
package models

import (
	"time"
)

// Site is the persisted per-site profile. One row per lowercase-normalized
// domain. The Version column backs the optimistic-concurrency write loop:
// every profile update increments it, and a write conditioned on a stale
// version affects zero rows.
type Site struct {
	ID                 uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Domain             string       `gorm:"uniqueIndex;not null;size:255" json:"domain"`
	Score              int          `gorm:"not null;default:0" json:"score"`
	RiskTier           string       `gorm:"not null;size:20;default:low" json:"risk_tier"`
	SightingCount      int          `gorm:"not null;default:0" json:"sighting_count"`
	UniqueTrackerCount int          `gorm:"not null;default:0" json:"unique_tracker_count"`
	ThirdPartyCount    int          `gorm:"not null;default:0" json:"third_party_count"`
	CookieCount        int          `gorm:"not null;default:0" json:"cookie_count"`
	ScanCount          int          `gorm:"not null;default:0" json:"scan_count"`
	LastScanned        time.Time    `json:"last_scanned"`
	TrackerDomains     StringList   `gorm:"type:jsonb" json:"tracker_domains"`
	History            SnapshotList `gorm:"type:jsonb" json:"history"`
	Version            int64        `gorm:"not null;default:0" json:"-"`
	CreatedAt          time.Time    `gorm:"not null;default:NOW()" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"not null;default:NOW()" json:"updated_at"`
}

// TableName specifies the table name for the Site model
func (Site) TableName() string {
	return "sites"
}
