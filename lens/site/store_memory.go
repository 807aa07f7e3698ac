package site

import (
	"context"
	"sync"
	"time"

	"github.com/PrivacyLens/go-api/lens"
)

// MemoryStore is a mutex-guarded in-memory ProfileStore. Applies are
// serialized per domain; different domains proceed independently. Suitable
// for tests and single-process embedding.
type MemoryStore struct {
	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	profiles map[string]*lens.SiteProfile
	logs     map[string][]lens.SightingEvent

	trackMu  sync.Mutex
	trackers map[string]*lens.TrackerRecord
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		locks:    make(map[string]*sync.Mutex),
		profiles: make(map[string]*lens.SiteProfile),
		logs:     make(map[string][]lens.SightingEvent),
		trackers: make(map[string]*lens.TrackerRecord),
	}
}

// ApplySighting implements ProfileStore. The update runs against working
// copies; nothing is committed if it returns an error.
func (m *MemoryStore) ApplySighting(ctx context.Context, ev lens.SightingEvent, update UpdateFunc) (*lens.SiteProfile, error) {
	lock := m.domainLock(ev.SiteDomain)
	lock.Lock()
	defer lock.Unlock()

	m.mu.Lock()
	log := append(cloneLog(m.logs[ev.SiteDomain]), ev)
	working := cloneProfile(m.profiles[ev.SiteDomain])
	m.mu.Unlock()

	if working == nil {
		working = &lens.SiteProfile{Domain: ev.SiteDomain}
	}

	if err := update(working, log); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.logs[ev.SiteDomain] = log
	m.profiles[ev.SiteDomain] = working
	m.mu.Unlock()

	return cloneProfile(working), nil
}

// GetProfile implements ProfileStore.
func (m *MemoryStore) GetProfile(ctx context.Context, domain string) (*lens.SiteProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneProfile(m.profiles[domain]), nil
}

// RecordTrackerSighting implements ProfileStore.
func (m *MemoryStore) RecordTrackerSighting(ctx context.Context, domain string, class lens.Classification, seenAt time.Time) error {
	m.trackMu.Lock()
	defer m.trackMu.Unlock()

	record, ok := m.trackers[domain]
	if !ok {
		record = &lens.TrackerRecord{Domain: domain, FirstSeenAt: seenAt}
		m.trackers[domain] = record
	}
	record.Category = class.Category
	record.Type = class.Type
	record.RiskTier = class.RiskTier
	record.SightingCount++
	return nil
}

// Tracker returns the registry record for a tracker domain, or nil.
func (m *MemoryStore) Tracker(domain string) *lens.TrackerRecord {
	m.trackMu.Lock()
	defer m.trackMu.Unlock()
	record, ok := m.trackers[domain]
	if !ok {
		return nil
	}
	copied := *record
	return &copied
}

// domainLock returns the per-domain apply lock, creating it on first use.
func (m *MemoryStore) domainLock(domain string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[domain]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[domain] = lock
	}
	return lock
}

func cloneLog(log []lens.SightingEvent) []lens.SightingEvent {
	out := make([]lens.SightingEvent, len(log))
	copy(out, log)
	return out
}

func cloneProfile(p *lens.SiteProfile) *lens.SiteProfile {
	if p == nil {
		return nil
	}
	copied := *p
	copied.TrackerDomains = append([]string(nil), p.TrackerDomains...)
	copied.History = append([]lens.Snapshot(nil), p.History...)
	return &copied
}
