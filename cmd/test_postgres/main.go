package main

import (
	"fmt"
	"log"

	"github.com/PrivacyLens/go-api/lens/postgres"
)

func main() {
	log.Println("Starting app PostgreSQL connection test...")

	// Open a connection using our application's database code
	db, err := postgres.Connect(postgres.DefaultConfig())
	if err != nil {
		log.Fatalf("❌ Failed to establish database connection: %v", err)
	}
	defer postgres.Close(db)

	// Try to execute a simple query
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		log.Fatalf("❌ Failed to execute query: %v", err)
	}

	// Check the handle reports healthy
	if !postgres.IsConnected(db) {
		log.Fatalf("❌ Connection not marked as healthy")
	}

	// Success!
	fmt.Println("✅ App PostgreSQL connection test successful!")
	fmt.Println("✅ Database is properly connected and migrated")
}
