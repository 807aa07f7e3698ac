// Package tracker classifies tracker domains against the static registry and
// applies the fingerprinting and third-party heuristics to raw sightings.
package tracker

import (
	"strings"

	"github.com/PrivacyLens/go-api/lens"
)

// RegistryEntry pairs a domain pattern with its classification. Entries are
// evaluated in slice order, so the registry's ordering is the documented
// match priority for substring lookups.
type RegistryEntry struct {
	Pattern        string
	Classification lens.Classification
}

// KnownTrackers is the built-in tracker registry. Substring matching scans
// top to bottom; keep more specific patterns above more general ones.
var KnownTrackers = []RegistryEntry{
	{"google-analytics.com", lens.Classification{Category: lens.CategoryAnalytics, Type: lens.TypeScript, RiskTier: lens.RiskLow}},
	{"analytics.google.com", lens.Classification{Category: lens.CategoryAnalytics, Type: lens.TypeAPICall, RiskTier: lens.RiskLow}},
	{"facebook-pixel.com", lens.Classification{Category: lens.CategoryTracking, Type: lens.TypePixel, RiskTier: lens.RiskHigh}},
	{"facebook.com", lens.Classification{Category: lens.CategoryAdvertising, Type: lens.TypePixel, RiskTier: lens.RiskHigh}},
	{"twitter-pixel.com", lens.Classification{Category: lens.CategoryTracking, Type: lens.TypePixel, RiskTier: lens.RiskMedium}},
	{"twitter.com", lens.Classification{Category: lens.CategorySocial, Type: lens.TypeScript, RiskTier: lens.RiskMedium}},
	{"linkedin-insight.com", lens.Classification{Category: lens.CategoryTracking, Type: lens.TypePixel, RiskTier: lens.RiskMedium}},
	{"linkedin.com", lens.Classification{Category: lens.CategorySocial, Type: lens.TypeScript, RiskTier: lens.RiskMedium}},
	{"doubleclick.net", lens.Classification{Category: lens.CategoryAdvertising, Type: lens.TypeScript, RiskTier: lens.RiskHigh}},
	{"amazon.com", lens.Classification{Category: lens.CategoryAdvertising, Type: lens.TypeScript, RiskTier: lens.RiskLow}},
	{"hotjar.com", lens.Classification{Category: lens.CategoryAnalytics, Type: lens.TypeScript, RiskTier: lens.RiskMedium}},
	{"mixpanel.com", lens.Classification{Category: lens.CategoryAnalytics, Type: lens.TypeScript, RiskTier: lens.RiskLow}},
	{"segment.com", lens.Classification{Category: lens.CategoryAnalytics, Type: lens.TypeScript, RiskTier: lens.RiskMedium}},
	{"amplitude.com", lens.Classification{Category: lens.CategoryAnalytics, Type: lens.TypeScript, RiskTier: lens.RiskLow}},
	{"intercom.io", lens.Classification{Category: lens.CategoryData, Type: lens.TypeScript, RiskTier: lens.RiskMedium}},
	{"zendesk.com", lens.Classification{Category: lens.CategoryData, Type: lens.TypeScript, RiskTier: lens.RiskLow}},
}

// DefaultClassification is returned when a domain matches nothing in the
// registry. Classification misses are not errors.
var DefaultClassification = lens.Classification{
	Category: lens.CategoryOther,
	Type:     lens.TypeOther,
	RiskTier: lens.RiskLow,
}

// Classifier resolves tracker domains against an ordered registry.
type Classifier struct {
	registry []RegistryEntry
}

// NewClassifier creates a Classifier over the built-in registry.
func NewClassifier() *Classifier {
	return &Classifier{registry: KnownTrackers}
}

// NewClassifierWithRegistry creates a Classifier over a custom registry.
// Entries keep their slice order as match priority.
func NewClassifierWithRegistry(registry []RegistryEntry) *Classifier {
	return &Classifier{registry: registry}
}

// Classify maps a tracker domain to its classification. Exact pattern match
// wins first; otherwise the first registry entry where either string contains
// the other wins. Unknown or empty domains get DefaultClassification.
func (c *Classifier) Classify(domain string) lens.Classification {
	normalized := strings.ToLower(strings.TrimSpace(domain))
	if normalized == "" {
		return DefaultClassification
	}

	for _, entry := range c.registry {
		if entry.Pattern == normalized {
			return entry.Classification
		}
	}

	for _, entry := range c.registry {
		if strings.Contains(normalized, entry.Pattern) || strings.Contains(entry.Pattern, normalized) {
			return entry.Classification
		}
	}

	return DefaultClassification
}
