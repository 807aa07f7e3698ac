// Package score maps aggregate sighting counters to a 0-100 privacy risk
// score and a discrete risk tier.
package score

import (
	"math"

	"github.com/PrivacyLens/go-api/lens"
)

// TierPolicy holds the score thresholds for each risk tier. It is deliberately
// separate from the numeric formula so thresholds can be tuned without
// touching the scoring math.
type TierPolicy struct {
	High   int
	Medium int
}

// DefaultTierPolicy matches the live ingestion path: >=81 high, >=61 medium.
var DefaultTierPolicy = TierPolicy{High: 81, Medium: 61}

// Tier buckets a score under this policy.
func (p TierPolicy) Tier(score int) lens.RiskTier {
	switch {
	case score >= p.High:
		return lens.RiskHigh
	case score >= p.Medium:
		return lens.RiskMedium
	default:
		return lens.RiskLow
	}
}

// Calculate computes the privacy risk score from the aggregate counters.
//
// The sqrt/log scaling compresses high counts so a site with 50-100 sightings
// does not saturate at 100 prematurely:
//
//	score = round(sqrt(trackers)*5 + ln(max(thirdParty,1))*4 + sqrt(max(cookies,0))*1.5)
//
// clamped to [0, 100].
func Calculate(trackerCount, thirdPartyCount, cookieCount int) int {
	trackers := math.Sqrt(float64(max(trackerCount, 0))) * 5
	thirdParty := math.Log(float64(max(thirdPartyCount, 1))) * 4
	cookies := math.Sqrt(float64(max(cookieCount, 0))) * 1.5

	score := int(math.Round(trackers + thirdParty + cookies))
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// CalculateFromCounters is a convenience wrapper over Calculate for a full
// counter set.
func CalculateFromCounters(c lens.Counters) int {
	return Calculate(c.SightingCount, c.ThirdPartyCount, c.CookieCount)
}
