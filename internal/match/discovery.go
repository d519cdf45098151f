package match

import (
	"math"

	"github.com/glowlink/creator-cli/internal/contact"
	"github.com/glowlink/creator-cli/internal/model"
)

// DiscoveryScores are the enrichment scores computed for a discovered
// creator at import time: how ready they look for brand work, how fast
// their audience is growing relative to its size, and how healthy the
// engagement looks for that size.
type DiscoveryScores struct {
	BrandReadiness  float64 `json:"brand_readiness"`
	RisingStar      float64 `json:"rising_star"`
	AudienceQuality float64 `json:"audience_quality"`
}

// ComputeDiscoveryScores derives the three discovery scores from the raw
// record. Deterministic; safe to run over a whole import batch.
func ComputeDiscoveryScores(dc *model.DiscoveredCreator) DiscoveryScores {
	parsed := contact.ExtractContacts(dc.Description, "discovered_bio")

	return DiscoveryScores{
		BrandReadiness:  scoreBrandReadiness(dc, parsed),
		RisingStar:      scoreRisingStar(dc),
		AudienceQuality: scoreAudienceQuality(dc),
	}
}

// scoreBrandReadiness rewards reachable creators with a workable audience.
// A creator with business contact info in the bio is far easier to onboard.
func scoreBrandReadiness(dc *model.DiscoveredCreator, parsed contact.Result) float64 {
	var score float64

	if len(parsed.Emails) > 0 {
		score += 40 * parsed.Emails[0].Confidence
	}
	if parsed.HubURL != "" {
		score += 15
	}
	if len(parsed.SocialLinks) > 0 {
		score += math.Min(float64(len(parsed.SocialLinks))*5, 15)
	}

	// Audience size: log-scaled so mid-tier creators are not drowned out.
	if dc.FollowerCount > 0 {
		score += math.Min(math.Log10(float64(dc.FollowerCount))*6, 30)
	}

	return clamp100(score)
}

// scoreRisingStar estimates growth momentum: high engagement on a small or
// mid-size audience is the classic rising profile.
func scoreRisingStar(dc *model.DiscoveredCreator) float64 {
	if dc.EngagementRate == nil || dc.FollowerCount <= 0 {
		return 0
	}
	er := *dc.EngagementRate

	// Expected engagement decays with audience size; ratio above expectation
	// is the momentum signal.
	expected := 8.0 / math.Max(1, math.Log10(float64(dc.FollowerCount)))
	ratio := er / expected

	return clamp100(ratio * 60)
}

// scoreAudienceQuality flags audiences whose engagement is implausibly low
// for their size (bought followers) or healthy.
func scoreAudienceQuality(dc *model.DiscoveredCreator) float64 {
	if dc.FollowerCount <= 0 {
		return 0
	}
	if dc.EngagementRate == nil {
		return neutral
	}
	er := *dc.EngagementRate

	switch {
	case er >= 6:
		return 100
	case er >= 3:
		return 80
	case er >= 1.5:
		return 60
	case er >= 0.5:
		return 35
	default:
		return 10
	}
}

func clamp100(v float64) float64 {
	return math.Round(math.Min(100, math.Max(0, v))*100) / 100
}
