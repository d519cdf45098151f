// Package store persists the discovery, identity and outreach data model.
// Two backends implement the same interface: postgres (pgx) for production
// and sqlite (modernc) for local development.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/glowlink/creator-cli/internal/config"
	"github.com/glowlink/creator-cli/internal/identity"
	"github.com/glowlink/creator-cli/internal/model"
	"github.com/glowlink/creator-cli/internal/outreach"
)

// CreatorFilter specifies criteria for listing discovered creators.
type CreatorFilter struct {
	Platform     model.Platform `json:"platform,omitempty"`
	Niche        string         `json:"niche,omitempty"`
	MinFollowers int64          `json:"min_followers,omitempty"`
	Limit        int            `json:"limit,omitempty"`
	Offset       int            `json:"offset,omitempty"`
}

// Store is the full persistence interface for the pipeline. It subsumes
// the narrow interfaces the resolver and orchestrator consume.
type Store interface {
	identity.Store
	outreach.EventStore

	// Targeting criteria (read-only from the pipeline's perspective)
	GetCampaign(ctx context.Context, id int64) (*model.Campaign, error)

	// Discovered creators
	ListDiscoveredCreators(ctx context.Context, filter CreatorFilter) ([]model.DiscoveredCreator, error)
	UpsertDiscoveredCreators(ctx context.Context, creators []model.DiscoveredCreator) (int64, error)

	// Outreach audit
	ListOutreachEvents(ctx context.Context, identityID int64, limit int) ([]model.OutreachEvent, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates the store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgres(ctx, cfg)
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
