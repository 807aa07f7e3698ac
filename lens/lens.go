package lens

import (
	"errors"
	"time"
)

// Errors surfaced by the engine. Anything else coming out of the ingest
// pipeline is a wrapped storage-layer fault.
var (
	// ErrInvalidInput is returned when a raw event is missing its site domain.
	// Rejected before any state mutation.
	ErrInvalidInput = errors.New("site domain is required")

	// ErrWriteConflict indicates a concurrent read-modify-write collision on
	// the same site profile. Recoverable; the store retries with backoff and
	// only surfaces it once retries are exhausted.
	ErrWriteConflict = errors.New("concurrent write conflict")
)

// TrackerType classifies the mechanism a tracker was observed using.
type TrackerType string

const (
	TypeCookie      TrackerType = "cookie"
	TypePixel       TrackerType = "pixel"
	TypeScript      TrackerType = "script"
	TypeAPICall     TrackerType = "api_call"
	TypeFingerprint TrackerType = "fingerprint"
	TypeOther       TrackerType = "other"
)

// Category groups trackers by business purpose.
type Category string

const (
	CategoryAnalytics   Category = "analytics"
	CategoryAdvertising Category = "advertising"
	CategorySocial      Category = "social"
	CategoryCDN         Category = "cdn"
	CategoryPayment     Category = "payment"
	CategoryTracking    Category = "tracking"
	CategoryData        Category = "data"
	CategoryOther       Category = "other"
)

// RiskTier is the discrete bucket derived from a numeric score.
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// ChangeReason is the dominant classification for why a site's profile moved
// between two snapshots.
type ChangeReason string

const (
	ReasonFirstScan          ChangeReason = "first_scan"
	ReasonNewTracker         ChangeReason = "new_tracker"
	ReasonTrackerRemoved     ChangeReason = "tracker_removed"
	ReasonIncreasedFrequency ChangeReason = "increased_frequency"
	ReasonDecreasedFrequency ChangeReason = "decreased_frequency"
	ReasonPeriodicSnapshot   ChangeReason = "periodic_snapshot"
)

// Classification is the static registry verdict for a tracker domain.
type Classification struct {
	Category Category    `json:"category"`
	Type     TrackerType `json:"type"`
	RiskTier RiskTier    `json:"risk"`
}

// SightingEvent is one observed instance of a tracker domain being contacted
// from a given site. Immutable once recorded; the per-site event log is
// append-only.
type SightingEvent struct {
	SiteDomain       string         `json:"site_domain"`
	RequestURL       string         `json:"request_url,omitempty"`
	TrackerDomain    string         `json:"tracker_domain"`
	TrackerType      TrackerType    `json:"tracker_type"`
	Category         Category       `json:"category"`
	RiskTier         RiskTier       `json:"risk"`
	IsThirdParty     bool           `json:"is_third_party"`
	IsFingerprinting bool           `json:"is_fingerprinting"`
	ObservedAt       time.Time      `json:"observed_at"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// Counters are the per-site aggregates recomputed from the full event log on
// every ingest. Invariant: UniqueTrackerDomainCount <= SightingCount, and it
// is zero exactly when SightingCount is zero.
type Counters struct {
	SightingCount            int `json:"sighting_count"`
	UniqueTrackerDomainCount int `json:"unique_tracker_count"`
	ThirdPartyCount          int `json:"third_party_count"`
	CookieCount              int `json:"cookie_count"`
}

// Snapshot is one point in a site's score history. Immutable once appended.
type Snapshot struct {
	TakenAt                  time.Time    `json:"taken_at"`
	Score                    int          `json:"score"`
	SightingCount            int          `json:"sighting_count"`
	UniqueTrackerDomainCount int          `json:"unique_tracker_count"`
	ThirdPartyCount          int          `json:"third_party_count"`
	TrackersAdded            []string     `json:"trackers_added"`
	TrackersRemoved          []string     `json:"trackers_removed"`
	ChangeReason             ChangeReason `json:"change_reason"`
	ChangeDescription        string       `json:"change_description"`
}

// SiteProfile is the per-site rollup owned exclusively by the profile
// service; callers never mutate it directly. History is ordered oldest to
// newest and capped by the configured history capacity.
type SiteProfile struct {
	Domain         string     `json:"domain"`
	Counters       Counters   `json:"counters"`
	Score          int        `json:"score"`
	RiskTier       RiskTier   `json:"risk_tier"`
	ScanCount      int        `json:"scan_count"`
	LastScanned    time.Time  `json:"last_scanned"`
	TrackerDomains []string   `json:"tracker_domains"`
	History        []Snapshot `json:"history"`
}

// TrackerRecord is the global registry row for a tracker domain, maintained
// across all sites as a side effect of each ingest. Advisory data; it is
// eventually consistent relative to site profile writes.
type TrackerRecord struct {
	Domain        string      `json:"domain"`
	Category      Category    `json:"category"`
	Type          TrackerType `json:"type"`
	RiskTier      RiskTier    `json:"risk"`
	FirstSeenAt   time.Time   `json:"first_seen_at"`
	SightingCount int         `json:"sighting_count"`
}

// RawEvent is the ingest contract consumed from the transport layer.
type RawEvent struct {
	SiteDomain    string         `json:"domain"`
	RequestURL    string         `json:"request_url,omitempty"`
	TrackerDomain string         `json:"tracker_domain"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// ChangeRecord is the rendered change-detection output for one ingest.
type ChangeRecord struct {
	Reason          ChangeReason `json:"change_reason"`
	Description     string       `json:"change_description"`
	TrackersAdded   []string     `json:"trackers_added"`
	TrackersRemoved []string     `json:"trackers_removed"`
	HasChanges      bool         `json:"has_changes"`
}

// IngestResult is what the profile service returns to the caller. The change
// record is nil when nothing beyond a periodic snapshot happened.
type IngestResult struct {
	SiteProfile     *SiteProfile  `json:"site_profile"`
	ChangeDetection *ChangeRecord `json:"change_detection,omitempty"`
}
