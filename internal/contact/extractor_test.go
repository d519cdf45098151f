package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowlink/creator-cli/internal/model"
)

func TestExtractContacts_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		result := ExtractContacts(input, "bio")
		assert.Empty(t, result.Emails)
		assert.Empty(t, result.SocialLinks)
		assert.Empty(t, result.HubURL)
		assert.True(t, result.Empty())
	}
}

func TestExtractContacts_BareEmail(t *testing.T) {
	result := ExtractContacts("reach me at jane@creatormail.com sometime", "bio")
	require.Len(t, result.Emails, 1)
	assert.Equal(t, "jane@creatormail.com", result.Emails[0].Email)
	assert.Equal(t, 0.5, result.Emails[0].Confidence)
	assert.Equal(t, "bio", result.Emails[0].Source)
}

func TestExtractContacts_ConfidenceRules(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"business label", "business inquiries: jane@x.com", 0.9},
		{"inquiries label", "for inquiries jane@x.com", 0.9},
		{"contact label", "contact: jane@x.com", 0.8},
		{"email label", "email jane@x.com", 0.8},
		{"collab label", "collab: jane@x.com", 0.7},
		{"partnership label", "partnerships - jane@x.com", 0.7},
		{"no label", "jane@x.com", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractContacts(tt.text, "bio")
			require.Len(t, result.Emails, 1)
			assert.Equal(t, tt.want, result.Emails[0].Confidence)
		})
	}
}

func TestExtractContacts_LabeledSortsFirst(t *testing.T) {
	text := "b@x.com\nbusiness email: a@x.com"
	result := ExtractContacts(text, "bio")
	require.Len(t, result.Emails, 2)
	assert.Equal(t, "a@x.com", result.Emails[0].Email)
	assert.GreaterOrEqual(t, result.Emails[0].Confidence, 0.8)
	assert.Equal(t, "b@x.com", result.Emails[1].Email)
	assert.Equal(t, 0.5, result.Emails[1].Confidence)
}

func TestExtractContacts_LabelDoesNotBleedAcrossLines(t *testing.T) {
	text := "business email: a@x.com\nb@x.com"
	result := ExtractContacts(text, "bio")
	require.Len(t, result.Emails, 2)
	assert.Equal(t, 0.9, result.Emails[0].Confidence)
	assert.Equal(t, 0.5, result.Emails[1].Confidence)
}

func TestExtractContacts_Obfuscated(t *testing.T) {
	result := ExtractContacts("write to jane (at) creatormail (dot) com", "bio")
	require.Len(t, result.Emails, 1)
	assert.Equal(t, "jane@creatormail.com", result.Emails[0].Email)
}

func TestExtractContacts_DedupCaseInsensitive(t *testing.T) {
	result := ExtractContacts("Jane@X.com and jane@x.com", "bio")
	assert.Len(t, result.Emails, 1)
}

func TestExtractContacts_RejectsPlaceholders(t *testing.T) {
	for _, text := range []string{
		"mail me: someone@example.com",
		"email@domain.com is where templates go",
		"your@site.com",
	} {
		result := ExtractContacts(text, "bio")
		assert.Empty(t, result.Emails, "input %q", text)
	}
}

func TestExtractContacts_SocialHandles(t *testing.T) {
	text := "insta: @janedoes | tiktok.com/@janetok | youtube.com/@janetube | twitch.tv/janestream"
	result := ExtractContacts(text, "bio")

	assert.Equal(t, "janedoes", result.SocialLinks[model.PlatformInstagram])
	assert.Equal(t, "janetok", result.SocialLinks[model.PlatformTikTok])
	assert.Equal(t, "janetube", result.SocialLinks[model.PlatformYouTube])
	assert.Equal(t, "janestream", result.SocialLinks[model.PlatformTwitch])
}

func TestExtractContacts_HandleRejectsBareDomain(t *testing.T) {
	result := ExtractContacts("find me on instagram.com/www.mysite.com", "bio")
	assert.Empty(t, result.SocialLinks[model.PlatformInstagram])
}

func TestExtractContacts_HubURL(t *testing.T) {
	result := ExtractContacts("all my links: linktr.ee/janedoes", "bio")
	assert.Equal(t, "linktr.ee/janedoes", result.HubURL)

	result = ExtractContacts("https://beacons.ai/jane and more", "bio")
	assert.Equal(t, "https://beacons.ai/jane", result.HubURL)
}

func TestExtractContacts_EndToEndBio(t *testing.T) {
	result := ExtractContacts("collab: jane@brandmail.com, insta: @janedoes", "discovered_bio")
	require.Len(t, result.Emails, 1)
	assert.Equal(t, "jane@brandmail.com", result.Emails[0].Email)
	assert.Equal(t, 0.7, result.Emails[0].Confidence)
	assert.Equal(t, "janedoes", result.SocialLinks[model.PlatformInstagram])
}

func TestExtractContacts_Deterministic(t *testing.T) {
	text := "business: a@x.com, collab b@y.com, c@z.com, insta: @jane, linktr.ee/jane"
	first := ExtractContacts(text, "bio")
	second := ExtractContacts(text, "bio")
	assert.Equal(t, first, second)
}
