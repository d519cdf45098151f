// Package model defines the typed records shared across the discovery,
// matching and outreach pipeline.
package model

import "time"

// Platform identifies an external social platform.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformTwitch    Platform = "twitch"
)

// IdentityStatus is the lifecycle state of a creator identity. Transitions
// are monotonic: discovered -> contacted -> joined.
type IdentityStatus string

const (
	StatusDiscovered IdentityStatus = "discovered"
	StatusContacted  IdentityStatus = "contacted"
	StatusJoined     IdentityStatus = "joined"
)

// Rank orders statuses for monotonicity checks.
func (s IdentityStatus) Rank() int {
	switch s {
	case StatusDiscovered:
		return 0
	case StatusContacted:
		return 1
	case StatusJoined:
		return 2
	default:
		return -1
	}
}

// MatchMethod records how a platform account was linked to an identity.
type MatchMethod string

const (
	MatchDirectDiscovery MatchMethod = "direct_discovery"
	MatchHubEnrichment   MatchMethod = "hub_enrichment"
)

// DiscoveredCreator is a creator record harvested from an external platform,
// not yet claimed by a signed-up user.
type DiscoveredCreator struct {
	ID                   int64     `json:"id"`
	Platform             Platform  `json:"platform"`
	PlatformID           string    `json:"platform_id"`
	DisplayName          string    `json:"display_name"`
	Description          string    `json:"description"`
	FollowerCount        int64     `json:"follower_count"`
	EngagementRate       *float64  `json:"engagement_rate,omitempty"`
	Niches               []string  `json:"niches,omitempty"`
	BrandReadinessScore  *float64  `json:"brand_readiness_score,omitempty"`
	RisingStarScore      *float64  `json:"rising_star_score,omitempty"`
	AudienceQualityScore *float64  `json:"audience_quality_score,omitempty"`
	CreatorIdentityID    *int64    `json:"creator_identity_id,omitempty"`
	ClaimedBy            *int64    `json:"claimed_by,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CreatorIdentity is the canonical, platform-agnostic record for a creator
// who has not yet joined as a user. It is the outreach target and dedup key.
type CreatorIdentity struct {
	ID                     int64          `json:"id"`
	DisplayName            string         `json:"display_name"`
	ProfileImageURL        string         `json:"profile_image_url,omitempty"`
	Bio                    string         `json:"bio,omitempty"`
	ContactEmail           *string        `json:"contact_email,omitempty"`
	ContactEmailSource     string         `json:"contact_email_source,omitempty"`
	ContactEmailConfidence *float64       `json:"contact_email_confidence,omitempty"`
	BackupEmails           []string       `json:"backup_emails,omitempty"`
	LinkHubURL             string         `json:"link_hub_url,omitempty"`
	TotalFollowers         int64          `json:"total_followers"`
	PrimaryNiche           string         `json:"primary_niche,omitempty"`
	PrimaryPlatform        Platform       `json:"primary_platform,omitempty"`
	Status                 IdentityStatus `json:"status"`
	CreatorProfileID       *int64         `json:"creator_profile_id,omitempty"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

// Joined reports whether the creator behind this identity has signed up.
func (ci *CreatorIdentity) Joined() bool {
	return ci.Status == StatusJoined || ci.CreatorProfileID != nil
}

// HasContactEmail reports whether a usable contact email is present.
func (ci *CreatorIdentity) HasContactEmail() bool {
	return ci.ContactEmail != nil && *ci.ContactEmail != ""
}

// PlatformAccount is one external account owned by exactly one identity.
type PlatformAccount struct {
	ID                int64       `json:"id"`
	CreatorIdentityID int64       `json:"creator_identity_id"`
	Platform          Platform    `json:"platform"`
	PlatformID        string      `json:"platform_id"`
	Handle            string      `json:"handle,omitempty"`
	Followers         int64       `json:"followers"`
	Bio               string      `json:"bio,omitempty"`
	MatchMethod       MatchMethod `json:"match_method"`
	CreatedAt         time.Time   `json:"created_at"`
}

// ContactCandidate is one extracted email with its confidence and source.
type ContactCandidate struct {
	Email      string  `json:"email"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}
