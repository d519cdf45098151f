package outreach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowlink/creator-cli/internal/model"
)

func TestLoadTemplates_AllActionsCovered(t *testing.T) {
	set, err := LoadTemplates()
	require.NoError(t, err)

	wantUrgency := map[model.OutreachAction]Urgency{
		model.ActionUnlock:        UrgencyLow,
		model.ActionMessage:       UrgencyMedium,
		model.ActionCampaignMatch: UrgencyHigh,
		model.ActionContacted:     UrgencyCritical,
	}

	for action, urgency := range wantUrgency {
		tmplType, ok := TemplateFor(action)
		require.True(t, ok, "action %s has no template", action)

		rendered, err := set.Render(tmplType, map[string]any{
			"creator_name":   "Jane",
			"brand_name":     "Acme",
			"follower_count": int64(25000),
			"platform":       "instagram",
			"signup_url":     "https://glowlink.app/join",
		})
		require.NoError(t, err)
		assert.Equal(t, urgency, rendered.Urgency, "action %s", action)
		assert.NotEmpty(t, rendered.Subject)
		assert.NotEmpty(t, rendered.HTML)
	}
}

func TestRender_InterestAlert(t *testing.T) {
	set, err := LoadTemplates()
	require.NoError(t, err)

	rendered, err := set.Render(model.TemplateInterestAlert, map[string]any{
		"creator_name":   "Jane",
		"brand_name":     "Acme Beauty",
		"follower_count": int64(25000),
		"platform":       "instagram",
		"signup_url":     "https://glowlink.app/join?ref=abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Beauty wants to work with you", rendered.Subject)
	assert.Contains(t, rendered.HTML, "Hi Jane,")
	assert.Contains(t, rendered.HTML, "25,000 followers")
	assert.Contains(t, rendered.HTML, `href="https://glowlink.app/join?ref=abc"`)
}

func TestRender_DefaultCreatorName(t *testing.T) {
	set, err := LoadTemplates()
	require.NoError(t, err)

	rendered, err := set.Render(model.TemplateDirectMessage, map[string]any{
		"creator_name": "",
		"brand_name":   "Acme",
		"signup_url":   "https://glowlink.app/join",
	})
	require.NoError(t, err)
	assert.Contains(t, rendered.HTML, "Hi there,")
}

func TestRender_CampaignNameFallsBackToBrand(t *testing.T) {
	set, err := LoadTemplates()
	require.NoError(t, err)

	rendered, err := set.Render(model.TemplateCampaignMatch, map[string]any{
		"creator_name":  "Jane",
		"brand_name":    "Acme",
		"campaign_name": "",
		"signup_url":    "https://glowlink.app/join",
	})
	require.NoError(t, err)
	assert.Equal(t, "You're a match for Acme", rendered.Subject)
}

func TestRender_MessagePreviewTruncated(t *testing.T) {
	set, err := LoadTemplates()
	require.NoError(t, err)

	long := ""
	for i := 0; i < 30; i++ {
		long += "we would love to work with you "
	}

	rendered, err := set.Render(model.TemplateDirectMessage, map[string]any{
		"creator_name":    "Jane",
		"brand_name":      "Acme",
		"message_preview": long,
		"signup_url":      "https://glowlink.app/join",
	})
	require.NoError(t, err)
	assert.Contains(t, rendered.HTML, "...")
	assert.NotContains(t, rendered.HTML, long)
}

func TestRender_UnknownTemplate(t *testing.T) {
	set, err := LoadTemplates()
	require.NoError(t, err)

	_, err = set.Render(model.TemplateType("bogus"), nil)
	assert.Error(t, err)
}
