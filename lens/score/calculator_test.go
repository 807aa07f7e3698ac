package score

import (
	"testing"

	"github.com/PrivacyLens/go-api/lens"
)

func TestCalculateKnownValues(t *testing.T) {
	tests := []struct {
		name       string
		trackers   int
		thirdParty int
		cookies    int
		want       int
	}{
		{"first sighting", 1, 0, 0, 5},
		{"two sightings one third party", 2, 1, 0, 7},
		{"all zero", 0, 0, 0, 0},
		{"cookies only", 0, 0, 4, 3},
		{"hundred trackers", 100, 0, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.trackers, tt.thirdParty, tt.cookies)
			if got != tt.want {
				t.Errorf("Calculate(%d, %d, %d) = %d, want %d",
					tt.trackers, tt.thirdParty, tt.cookies, got, tt.want)
			}
		})
	}
}

func TestCalculateBounds(t *testing.T) {
	// Score stays in [0, 100] across a wide sweep including degenerate
	// negative inputs.
	for _, trackers := range []int{-5, 0, 1, 10, 100, 1000, 100000} {
		for _, thirdParty := range []int{-1, 0, 1, 50, 10000} {
			for _, cookies := range []int{-1, 0, 3, 500, 10000} {
				got := Calculate(trackers, thirdParty, cookies)
				if got < 0 || got > 100 {
					t.Fatalf("Calculate(%d, %d, %d) = %d, out of [0,100]",
						trackers, thirdParty, cookies, got)
				}
			}
		}
	}
}

func TestCalculateMonotonic(t *testing.T) {
	// Non-decreasing in each argument independently.
	base := []int{0, 1, 2, 5, 10, 50, 200}
	for _, t1 := range base {
		for _, p := range base {
			for _, c := range base {
				ref := Calculate(t1, p, c)
				if Calculate(t1+1, p, c) < ref {
					t.Fatalf("score decreased when tracker count rose at (%d,%d,%d)", t1, p, c)
				}
				if Calculate(t1, p+1, c) < ref {
					t.Fatalf("score decreased when third-party count rose at (%d,%d,%d)", t1, p, c)
				}
				if Calculate(t1, p, c+1) < ref {
					t.Fatalf("score decreased when cookie count rose at (%d,%d,%d)", t1, p, c)
				}
			}
		}
	}
}

func TestCalculateGrowthIsSubLinear(t *testing.T) {
	// The sqrt/log scaling exists so moderate tracker counts do not pin the
	// score at 100: quadrupling the tracker count must not double the score
	// past it, and 100 trackers alone must land well under the cap.
	if got := Calculate(100, 0, 0); got >= 100 {
		t.Errorf("100 trackers scored %d; expected well below the cap", got)
	}

	s50 := Calculate(50, 0, 0)
	s200 := Calculate(200, 0, 0)
	if s200 >= s50*4 {
		t.Errorf("4x trackers scored %d vs %d; growth should be sub-linear", s200, s50)
	}
}

func TestTierPolicy(t *testing.T) {
	tests := []struct {
		score int
		want  lens.RiskTier
	}{
		{0, lens.RiskLow},
		{60, lens.RiskLow},
		{61, lens.RiskMedium},
		{80, lens.RiskMedium},
		{81, lens.RiskHigh},
		{100, lens.RiskHigh},
	}

	for _, tt := range tests {
		if got := DefaultTierPolicy.Tier(tt.score); got != tt.want {
			t.Errorf("Tier(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestTierPolicyCustomThresholds(t *testing.T) {
	policy := TierPolicy{High: 70, Medium: 40}

	if got := policy.Tier(45); got != lens.RiskMedium {
		t.Errorf("custom policy Tier(45) = %s, want medium", got)
	}
	if got := policy.Tier(70); got != lens.RiskHigh {
		t.Errorf("custom policy Tier(70) = %s, want high", got)
	}
}

func TestCalculateFromCounters(t *testing.T) {
	counters := lens.Counters{
		SightingCount:            2,
		UniqueTrackerDomainCount: 2,
		ThirdPartyCount:          1,
		CookieCount:              0,
	}
	if got := CalculateFromCounters(counters); got != 7 {
		t.Errorf("CalculateFromCounters = %d, want 7", got)
	}
}
