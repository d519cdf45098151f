package model

import "time"

// BrandProfile holds a brand's standing targeting criteria. Read-only from
// the pipeline's perspective; mutated only through brand-authored edits.
type BrandProfile struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	TargetNiches       []string `json:"target_niches,omitempty"`
	MinFollowers       int64    `json:"min_followers"`
	MaxFollowers       int64    `json:"max_followers"`
	PreferredPlatforms []string `json:"preferred_platforms,omitempty"`
	MinEngagementRate  *float64 `json:"min_engagement_rate,omitempty"`
	MonthlyBudget      *int64   `json:"monthly_budget,omitempty"`
	Description        string   `json:"description,omitempty"`
}

// Campaign is a single brand campaign with its own targeting window.
type Campaign struct {
	ID                int64     `json:"id"`
	BrandProfileID    int64     `json:"brand_profile_id"`
	Name              string    `json:"name"`
	TargetNiches      []string  `json:"target_niches,omitempty"`
	MinFollowers      int64     `json:"min_followers"`
	MaxFollowers      int64     `json:"max_followers"`
	Platforms         []string  `json:"platforms,omitempty"`
	MinEngagementRate *float64  `json:"min_engagement_rate,omitempty"`
	Budget            *int64    `json:"budget,omitempty"`
	Description       string    `json:"description,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
