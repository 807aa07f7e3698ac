// File: connection.go
//
// Package postgres owns the database connection lifecycle. The handle is an
// explicit value created by Connect and owned by the host application; it is
// passed into the engine rather than held as ambient package state, so its
// lifecycle (open, in use, closed) is visible at the call sites.
package postgres

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/PrivacyLens/go-api/lens/postgres/models"
)

// Config holds the PostgreSQL connection parameters.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DefaultConfig returns connection parameters from the LENS_POSTGRES_*
// environment variables, with local-development fallbacks.
func DefaultConfig() Config {
	cfg := Config{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "password",
		DBName:   "privacylens",
		SSLMode:  "disable",
	}

	if host := os.Getenv("LENS_POSTGRES_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("LENS_POSTGRES_PORT"); port != "" {
		cfg.Port = port
	}
	if user := os.Getenv("LENS_POSTGRES_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("LENS_POSTGRES_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if name := os.Getenv("LENS_POSTGRES_DB"); name != "" {
		cfg.DBName = name
	}
	if ssl := os.Getenv("LENS_POSTGRES_SSLMODE"); ssl != "" {
		cfg.SSLMode = ssl
	}

	return cfg
}

// DSN renders the config as a gorm/pgx connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}

// Connect opens a connection and migrates the engine schema. The returned
// handle belongs to the caller; close it with Close when done.
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the engine schema to an open handle.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Site{},
		&models.SightingEvent{},
		&models.Tracker{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return nil
}

// IsConnected reports whether the handle can still reach the database.
func IsConnected(db *gorm.DB) bool {
	if db == nil {
		return false
	}
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
