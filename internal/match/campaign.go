package match

import (
	"strings"

	"github.com/glowlink/creator-cli/internal/config"
	"github.com/glowlink/creator-cli/internal/model"
)

// Tier buckets a continuous campaign score for UI grouping.
type Tier string

const (
	TierPerfect   Tier = "perfect"
	TierStrong    Tier = "strong"
	TierPotential Tier = "potential"
)

// CampaignScore is the result of scoring a creator against one campaign.
// Tier is empty when the follower gate failed; such creators are never
// ranked, only advised via the Gap.
type CampaignScore struct {
	Score      float64      `json:"score"`
	Tier       Tier         `json:"tier,omitempty"`
	Reasons    []string     `json:"reasons"`
	Highlights []string     `json:"highlights,omitempty"`
	Misses     []string     `json:"misses,omitempty"`
	GatePassed bool         `json:"gate_passed"`
	Gap        *FollowerGap `json:"gap,omitempty"`
}

// FollowerGap explains a follower-gate failure. Needed is the shortfall
// when below range; TooLarge marks creators above the campaign maximum.
type FollowerGap struct {
	Below    bool  `json:"below"`
	Needed   int64 `json:"needed,omitempty"`
	TooLarge bool  `json:"too_large,omitempty"`
	Max      int64 `json:"max,omitempty"`
}

// missFloor marks a sub-score weak enough to call out as a miss.
const missFloor = 30

// ScoreAgainstCampaign scores a creator against a campaign. The follower
// range is a hard gate: out-of-range creators get a score for "how close"
// advice only and carry a Gap instead of a Tier.
func ScoreAgainstCampaign(campaign *model.Campaign, c Creator, cfg config.MatchConfig) CampaignScore {
	sub := computeSubScores(
		campaign.TargetNiches, campaign.MinFollowers, campaign.MaxFollowers,
		campaign.Platforms, campaign.MinEngagementRate, campaign.Description, c,
	)

	result := CampaignScore{
		Score:   combine(sub, cfg),
		Reasons: reasonsFor(sub, campaign.MinEngagementRate, campaign.MinFollowers, campaign.MaxFollowers, c, cfg),
	}

	if gap := followerGate(campaign, c.Followers); gap != nil {
		result.Gap = gap
		result.Misses = append(result.Misses, gapAdvice(gap))
		return result
	}

	result.GatePassed = true
	result.Tier = tierFor(result.Score, cfg)
	result.Highlights = highlightsFor(sub, c)
	result.Misses = missesFor(sub, campaign, c)
	return result
}

// followerGate returns nil when the creator is inside the campaign range.
func followerGate(campaign *model.Campaign, followers int64) *FollowerGap {
	if campaign.MinFollowers > 0 && followers < campaign.MinFollowers {
		return &FollowerGap{Below: true, Needed: campaign.MinFollowers - followers}
	}
	if campaign.MaxFollowers > 0 && followers > campaign.MaxFollowers {
		return &FollowerGap{TooLarge: true, Max: campaign.MaxFollowers}
	}
	return nil
}

// gapAdvice renders the "how close are you" message for a gated creator.
func gapAdvice(gap *FollowerGap) string {
	if gap.Below {
		return numPrinter.Sprintf("Needs %d more followers to qualify", gap.Needed)
	}
	return numPrinter.Sprintf("Audience too large for this campaign (max %d followers)", gap.Max)
}

// tierFor buckets a campaign score.
func tierFor(score float64, cfg config.MatchConfig) Tier {
	switch {
	case score >= cfg.PerfectThreshold:
		return TierPerfect
	case score >= cfg.StrongThreshold:
		return TierStrong
	default:
		return TierPotential
	}
}

// highlightsFor produces short badges for the strongest components.
func highlightsFor(sub subScores, c Creator) []string {
	var highlights []string
	if len(sub.nicheHits) > 0 {
		highlights = append(highlights, "Niche overlap: "+strings.Join(sub.nicheHits, ", "))
	}
	if sub.follower >= 100 {
		highlights = append(highlights, "In follower range")
	}
	if sub.engagement >= 90 && c.EngagementRate != nil {
		highlights = append(highlights, numPrinter.Sprintf("Engagement %.1f%%", *c.EngagementRate))
	}
	if sub.platform >= 100 {
		highlights = append(highlights, "On campaign platform: "+string(c.Platform))
	}
	return highlights
}

// missesFor explains the weakest components so brands see what is lacking.
func missesFor(sub subScores, campaign *model.Campaign, c Creator) []string {
	var misses []string
	if sub.niche <= missFloor && len(campaign.TargetNiches) > 0 {
		misses = append(misses, "Little overlap with target niches: "+strings.Join(campaign.TargetNiches, ", "))
	}
	if sub.engagement <= missFloor && campaign.MinEngagementRate != nil {
		if c.EngagementRate != nil {
			misses = append(misses, numPrinter.Sprintf(
				"Engagement %.1f%% below your %.0f%% minimum", *c.EngagementRate, *campaign.MinEngagementRate))
		} else {
			misses = append(misses, "Engagement rate unknown")
		}
	}
	if sub.platform == 0 && len(campaign.Platforms) > 0 {
		misses = append(misses, "Not active on campaign platforms: "+strings.Join(campaign.Platforms, ", "))
	}
	return misses
}
