package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowlink/creator-cli/internal/model"
)

func testCampaign() *model.Campaign {
	return &model.Campaign{
		ID:           100,
		BrandProfileID: 10,
		Name:         "Spring Glow",
		TargetNiches: []string{"beauty"},
		MinFollowers: 10_000,
		MaxFollowers: 50_000,
		Platforms:    []string{"instagram"},
		Description:  "skincare launch with makeup tutorials",
	}
}

func TestScoreAgainstCampaign_StrongOrPerfect(t *testing.T) {
	cfg := DefaultConfig()
	result := ScoreAgainstCampaign(testCampaign(), testCreator(), cfg)

	require.True(t, result.GatePassed)
	assert.Contains(t, []Tier{TierPerfect, TierStrong}, result.Tier)
	assert.Nil(t, result.Gap)

	var nicheHighlight bool
	for _, h := range result.Highlights {
		if h == "Niche overlap: beauty" {
			nicheHighlight = true
		}
	}
	assert.True(t, nicheHighlight, "highlights: %v", result.Highlights)
}

func TestScoreAgainstCampaign_GateBelow(t *testing.T) {
	cfg := DefaultConfig()
	creator := testCreator()
	creator.Followers = 4_000

	result := ScoreAgainstCampaign(testCampaign(), creator, cfg)

	assert.False(t, result.GatePassed)
	assert.Empty(t, result.Tier)
	require.NotNil(t, result.Gap)
	assert.True(t, result.Gap.Below)
	assert.Equal(t, int64(6_000), result.Gap.Needed)
	assert.Contains(t, result.Misses, "Needs 6,000 more followers to qualify")
}

func TestScoreAgainstCampaign_GateAbove(t *testing.T) {
	cfg := DefaultConfig()
	creator := testCreator()
	creator.Followers = 500_000

	result := ScoreAgainstCampaign(testCampaign(), creator, cfg)

	assert.False(t, result.GatePassed)
	assert.Empty(t, result.Tier)
	require.NotNil(t, result.Gap)
	assert.True(t, result.Gap.TooLarge)
	assert.Equal(t, int64(50_000), result.Gap.Max)
}

func TestScoreAgainstCampaign_Misses(t *testing.T) {
	cfg := DefaultConfig()
	campaign := testCampaign()
	campaign.TargetNiches = []string{"gaming"}
	campaign.Platforms = []string{"twitch"}
	campaign.MinEngagementRate = ptrFloat64(8)
	campaign.Description = "esports sponsorship"

	creator := testCreator()
	creator.EngagementRate = ptrFloat64(1.0)

	result := ScoreAgainstCampaign(campaign, creator, cfg)
	require.True(t, result.GatePassed)
	assert.Equal(t, TierPotential, result.Tier)
	assert.Contains(t, result.Misses, "Little overlap with target niches: gaming")
	assert.Contains(t, result.Misses, "Engagement 1.0% below your 8% minimum")
	assert.Contains(t, result.Misses, "Not active on campaign platforms: twitch")
}

func TestScoreAgainstCampaign_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	campaign := testCampaign()
	creator := testCreator()

	first := ScoreAgainstCampaign(campaign, creator, cfg)
	second := ScoreAgainstCampaign(campaign, creator, cfg)
	assert.Equal(t, first, second)
}

func TestTierFor(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, TierPerfect, tierFor(90, cfg))
	assert.Equal(t, TierPerfect, tierFor(85, cfg))
	assert.Equal(t, TierStrong, tierFor(70, cfg))
	assert.Equal(t, TierPotential, tierFor(50, cfg))
}

func TestRankForCampaign(t *testing.T) {
	cfg := DefaultConfig()
	campaign := testCampaign()

	inRange := testCreator()
	below := testCreator()
	below.ID = 2
	below.DisplayName = "Small Creator"
	below.Followers = 2_000
	above := testCreator()
	above.ID = 3
	above.DisplayName = "Huge Creator"
	above.Followers = 900_000
	weak := Creator{
		ID:          4,
		DisplayName: "Off Topic",
		Platform:    model.PlatformTwitch,
		Niches:      []string{"gaming"},
		Followers:   20_000,
		Bio:         "speedruns",
	}

	list, err := RankForCampaign(context.Background(), campaign, []Creator{inRange, below, above, weak}, cfg)
	require.NoError(t, err)

	// Gated creators never appear in any tier bucket.
	total := len(list.Perfect) + len(list.Strong) + len(list.Potential)
	assert.Equal(t, 2, total)
	require.Len(t, list.Missed, 2)

	for _, m := range list.Missed {
		require.NotNil(t, m.Gap)
		if m.Gap.Below {
			assert.Equal(t, int64(8_000), m.Gap.Needed)
		} else {
			assert.Equal(t, int64(50_000), m.Gap.Max)
		}
	}
}

func TestRankForCampaign_DeterministicAcrossWorkerCounts(t *testing.T) {
	campaign := testCampaign()
	var creators []Creator
	for i := int64(1); i <= 40; i++ {
		c := testCreator()
		c.ID = i
		c.Followers = 9_000 + i*1_000
		creators = append(creators, c)
	}

	serial := DefaultConfig()
	serial.RankWorkers = 1
	parallel := DefaultConfig()
	parallel.RankWorkers = 8

	a, err := RankForCampaign(context.Background(), campaign, creators, serial)
	require.NoError(t, err)
	b, err := RankForCampaign(context.Background(), campaign, creators, parallel)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
