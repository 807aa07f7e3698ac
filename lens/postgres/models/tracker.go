// File: tracker.go
package models

import (
	"time"
)

// Tracker is the global registry row for a tracker domain, shared across all
// sites. Its sighting counter is an advisory increment, eventually consistent
// relative to site profile writes.
type Tracker struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Domain        string    `gorm:"uniqueIndex;not null;size:255" json:"domain"`
	Category      string    `gorm:"not null;size:20;default:other" json:"category"`
	Type          string    `gorm:"not null;size:20;default:other" json:"type"`
	RiskTier      string    `gorm:"not null;size:20;default:low" json:"risk"`
	FirstSeenAt   time.Time `json:"first_seen_at"`
	SightingCount int       `gorm:"not null;default:0" json:"sighting_count"`
	CreatedAt     time.Time `gorm:"not null;default:NOW()" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:NOW()" json:"updated_at"`
}

// TableName specifies the table name for the Tracker model
func (Tracker) TableName() string {
	return "trackers"
}
