package identity

import (
	"context"

	"github.com/glowlink/creator-cli/internal/model"
)

// Store defines the persistence operations the resolver needs.
type Store interface {
	// GetDiscoveredCreator fetches a discovered creator by id; nil when missing.
	GetDiscoveredCreator(ctx context.Context, id int64) (*model.DiscoveredCreator, error)

	// GetIdentity fetches an identity by id; nil when missing.
	GetIdentity(ctx context.Context, id int64) (*model.CreatorIdentity, error)

	// CreateIdentityForDiscovered atomically creates the identity and
	// back-links the discovered creator to it. When another caller won the
	// race, the insert is rolled back and the winner's identity is returned
	// with created=false.
	CreateIdentityForDiscovered(ctx context.Context, identity *model.CreatorIdentity, discoveredID int64) (*model.CreatorIdentity, bool, error)

	// UpsertPlatformAccount inserts or refreshes a platform account keyed
	// on (platform, platform_id).
	UpsertPlatformAccount(ctx context.Context, acct *model.PlatformAccount) error

	// UpdateIdentityContact persists contact fields after enrichment.
	UpdateIdentityContact(ctx context.Context, identity *model.CreatorIdentity) error

	// ListIdentitiesMissingEmail returns identities with a hub link but no
	// contact email, for hub-page enrichment.
	ListIdentitiesMissingEmail(ctx context.Context, limit int) ([]model.CreatorIdentity, error)

	// CreatorProfileHasUser reports whether a claimed creator profile is
	// linked to a real user account.
	CreatorProfileHasUser(ctx context.Context, profileID int64) (bool, error)
}
