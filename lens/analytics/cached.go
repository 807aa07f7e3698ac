package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/PrivacyLens/go-api/lens/store"
)

const (
	// CacheKeySummary is the key for the cached dashboard summary.
	CacheKeySummary = "lens:analytics:summary"
	// CacheKeyTopTrackers is the base key for the cached top-trackers ranking.
	CacheKeyTopTrackers = "lens:analytics:top_trackers"
	// CacheKeyRecentChanges is the base key for the cached changes feed.
	CacheKeyRecentChanges = "lens:analytics:recent_changes"
	// CacheTTL is the cache time-to-live in seconds (5 minutes)
	CacheTTL = 300
)

// SummaryResponse wraps the summary with cache provenance for API consumers.
type SummaryResponse struct {
	Data     *Summary `json:"data"`
	Cached   bool     `json:"cached"`
	CachedAt *string  `json:"cached_at,omitempty"`
	TTL      int      `json:"ttl"`
}

// TopTrackersResponse wraps the ranking with cache provenance.
type TopTrackersResponse struct {
	Data     []TrackerStat `json:"data"`
	Cached   bool          `json:"cached"`
	CachedAt *string       `json:"cached_at,omitempty"`
	TTL      int           `json:"ttl"`
}

// GetSummaryCached returns the dashboard summary through a read-through
// Valkey cache. A dead or unreadable cache never fails the read; it falls
// back to a direct query and repopulates on the way out.
func GetSummaryCached(ctx context.Context, db *gorm.DB, kv store.KVStore) (SummaryResponse, error) {
	if kv != nil {
		if cached, err := kv.GetValue(ctx, CacheKeySummary); err == nil {
			var resp SummaryResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				resp.Cached = true
				return resp, nil
			}
			slog.Warn("Discarding unreadable analytics cache entry", "key", CacheKeySummary)
		}
	}

	summary, err := GetSummary(db)
	if err != nil {
		return SummaryResponse{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	resp := SummaryResponse{
		Data:     summary,
		Cached:   false,
		CachedAt: &now,
		TTL:      CacheTTL,
	}

	cacheResponse(ctx, kv, CacheKeySummary, resp)
	return resp, nil
}

// TopTrackersCached returns the top-trackers ranking through the same
// read-through cache discipline as GetSummaryCached.
func TopTrackersCached(ctx context.Context, db *gorm.DB, kv store.KVStore, limit int) (TopTrackersResponse, error) {
	cacheKey := fmt.Sprintf("%s:%d", CacheKeyTopTrackers, limit)

	if kv != nil {
		if cached, err := kv.GetValue(ctx, cacheKey); err == nil {
			var resp TopTrackersResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				resp.Cached = true
				return resp, nil
			}
			slog.Warn("Discarding unreadable analytics cache entry", "key", cacheKey)
		}
	}

	stats, err := TopTrackers(db, limit)
	if err != nil {
		return TopTrackersResponse{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	resp := TopTrackersResponse{
		Data:     stats,
		Cached:   false,
		CachedAt: &now,
		TTL:      CacheTTL,
	}

	cacheResponse(ctx, kv, cacheKey, resp)
	return resp, nil
}

// RecentChangesCached returns the changes feed through the read-through
// cache. The feed is cheap to keep slightly stale; CacheTTL bounds how stale.
func RecentChangesCached(ctx context.Context, db *gorm.DB, kv store.KVStore, days, maxChanges int) (*RecentChangesResponse, error) {
	cacheKey := fmt.Sprintf("%s:%d:%d", CacheKeyRecentChanges, days, maxChanges)

	if kv != nil {
		if cached, err := kv.GetValue(ctx, cacheKey); err == nil {
			var resp RecentChangesResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			slog.Warn("Discarding unreadable analytics cache entry", "key", cacheKey)
		}
	}

	resp, err := RecentChanges(db, days, maxChanges)
	if err != nil {
		return nil, err
	}

	cacheResponse(ctx, kv, cacheKey, resp)
	return resp, nil
}

// cacheResponse serializes and stores a response with the standard TTL.
// Cache write failures are advisory: logged, never surfaced.
func cacheResponse(ctx context.Context, kv store.KVStore, key string, resp any) {
	if kv == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := kv.SetValueWithTTL(ctx, key, string(payload), CacheTTL); err != nil {
		slog.Warn("Failed to cache analytics response", "key", key, "error", err)
	}
}
