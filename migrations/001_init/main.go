package main

import (
	"log"

	"gorm.io/gorm"

	"github.com/PrivacyLens/go-api/lens/postgres"
)

func main() {
	log.Println("🔄 Starting migration 001: Initial engine schema")

	db, err := postgres.Connect(postgres.DefaultConfig())
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer postgres.Close(db)

	if err := migrateUp(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Migration 001 completed successfully")
}

func migrateUp(db *gorm.DB) error {
	log.Println("📊 Creating engine tables...")

	createSitesSQL := `
	CREATE TABLE IF NOT EXISTS sites (
		id BIGSERIAL PRIMARY KEY,
		domain VARCHAR(255) UNIQUE NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		risk_tier VARCHAR(20) NOT NULL DEFAULT 'low',
		sighting_count INTEGER NOT NULL DEFAULT 0,
		unique_tracker_count INTEGER NOT NULL DEFAULT 0,
		third_party_count INTEGER NOT NULL DEFAULT 0,
		cookie_count INTEGER NOT NULL DEFAULT 0,
		scan_count INTEGER NOT NULL DEFAULT 0,
		last_scanned TIMESTAMPTZ,
		tracker_domains JSONB NOT NULL DEFAULT '[]',
		history JSONB NOT NULL DEFAULT '[]',
		version BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	if err := db.Exec(createSitesSQL).Error; err != nil {
		return err
	}

	createSightingsSQL := `
	CREATE TABLE IF NOT EXISTS sighting_events (
		id BIGSERIAL PRIMARY KEY,
		site_domain VARCHAR(255) NOT NULL,
		request_url TEXT,
		tracker_domain VARCHAR(255),
		tracker_type VARCHAR(20) NOT NULL,
		category VARCHAR(20) NOT NULL,
		risk_tier VARCHAR(20) NOT NULL,
		is_third_party BOOLEAN NOT NULL DEFAULT FALSE,
		is_fingerprinting BOOLEAN NOT NULL DEFAULT FALSE,
		observed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	if err := db.Exec(createSightingsSQL).Error; err != nil {
		return err
	}

	createTrackersSQL := `
	CREATE TABLE IF NOT EXISTS trackers (
		id BIGSERIAL PRIMARY KEY,
		domain VARCHAR(255) UNIQUE NOT NULL,
		category VARCHAR(20) NOT NULL DEFAULT 'other',
		type VARCHAR(20) NOT NULL DEFAULT 'other',
		risk_tier VARCHAR(20) NOT NULL DEFAULT 'low',
		first_seen_at TIMESTAMPTZ,
		sighting_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	if err := db.Exec(createTrackersSQL).Error; err != nil {
		return err
	}

	log.Println("📊 Creating indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_sightings_site ON sighting_events(site_domain);",
		"CREATE INDEX IF NOT EXISTS idx_sightings_tracker ON sighting_events(tracker_domain);",
		"CREATE INDEX IF NOT EXISTS idx_sightings_observed ON sighting_events(observed_at DESC);",
		"CREATE INDEX IF NOT EXISTS idx_trackers_sighting_count ON trackers(sighting_count DESC);",
		"CREATE INDEX IF NOT EXISTS idx_sites_updated_at ON sites(updated_at);",
	}
	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			return err
		}
	}

	return nil
}
