// Command ingestd consumes raw tracker-sighting reports from the extension
// queue and runs each through the privacy score engine.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/PrivacyLens/go-api/lens"
	"github.com/PrivacyLens/go-api/lens/config"
	"github.com/PrivacyLens/go-api/lens/postgres"
	"github.com/PrivacyLens/go-api/lens/queue"
	"github.com/PrivacyLens/go-api/lens/site"
	"github.com/PrivacyLens/go-api/lens/slogger"
)

func main() {
	slogger.Init()

	cfg := config.LoadConfigFromEnv()

	db, err := postgres.Connect(postgres.DefaultConfig())
	if err != nil {
		slog.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer postgres.Close(db)

	service := site.NewService(site.NewGormStore(db, cfg), cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Ingest daemon starting",
		"queue", queue.SightingQueue,
		"history_capacity", cfg.HistoryCapacity)

	queue.Listen(ctx, queue.SightingQueue, func(msg string) {
		var raw lens.RawEvent
		if err := json.Unmarshal([]byte(msg), &raw); err != nil {
			slog.Warn("Dropping malformed sighting report", "error", err)
			return
		}

		result, err := service.Ingest(ctx, raw)
		if err != nil {
			slog.Error("Failed to ingest sighting", "domain", raw.SiteDomain, "error", err)
			return
		}

		if result.ChangeDetection != nil {
			slog.Info("Change detected",
				"domain", result.SiteProfile.Domain,
				"reason", result.ChangeDetection.Reason,
				"score", result.SiteProfile.Score)
		}
	})
}
