package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glowlink/creator-cli/internal/model"
)

func TestComputeDiscoveryScores_Reachable(t *testing.T) {
	dc := &model.DiscoveredCreator{
		Platform:       model.PlatformInstagram,
		PlatformID:     "jane",
		Description:    "business inquiries: jane@brandmail.com | linktr.ee/jane | tiktok.com/@jane",
		FollowerCount:  25_000,
		EngagementRate: ptrFloat64(6.5),
	}

	scores := ComputeDiscoveryScores(dc)
	assert.Greater(t, scores.BrandReadiness, 70.0)
	assert.Greater(t, scores.RisingStar, 50.0)
	assert.Equal(t, 100.0, scores.AudienceQuality)
}

func TestComputeDiscoveryScores_NoContact(t *testing.T) {
	dc := &model.DiscoveredCreator{
		Description:   "just vibes",
		FollowerCount: 25_000,
	}

	scores := ComputeDiscoveryScores(dc)
	assert.Less(t, scores.BrandReadiness, 40.0)
	assert.Zero(t, scores.RisingStar)
	assert.Equal(t, float64(neutral), scores.AudienceQuality)
}

func TestComputeDiscoveryScores_LowEngagementLargeAudience(t *testing.T) {
	dc := &model.DiscoveredCreator{
		Description:    "huge page",
		FollowerCount:  2_000_000,
		EngagementRate: ptrFloat64(0.2),
	}

	scores := ComputeDiscoveryScores(dc)
	assert.Equal(t, 10.0, scores.AudienceQuality)
	assert.Less(t, scores.RisingStar, 15.0)
}

func TestComputeDiscoveryScores_Deterministic(t *testing.T) {
	dc := &model.DiscoveredCreator{
		Description:    "collab: a@b.com",
		FollowerCount:  10_000,
		EngagementRate: ptrFloat64(4),
	}
	assert.Equal(t, ComputeDiscoveryScores(dc), ComputeDiscoveryScores(dc))
}
