// Package identity deduplicates discovered creators into canonical
// creator identities and links platform accounts to them.
package identity

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/glowlink/creator-cli/internal/contact"
	"github.com/glowlink/creator-cli/internal/model"
)

// Resolution is the outcome of resolving a discovered creator.
type Resolution struct {
	Identity *model.CreatorIdentity
	Created  bool
	// AlreadyJoined means the creator behind this identity has signed up;
	// callers must not proceed to outreach.
	AlreadyJoined bool
}

// Resolver finds or creates the canonical identity for a discovered creator.
type Resolver struct {
	store Store
}

// NewResolver creates an identity resolver.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// ResolveOrCreate returns the canonical identity for a discovered creator,
// creating it on first outreach-worthy contact.
//
// The fast path follows the existing back-reference and is idempotent. The
// creation path extracts contact info from the description and relies on
// the store's transactional compare-and-set, so two concurrent callers for
// the same discovered creator can never produce two identities.
func (r *Resolver) ResolveOrCreate(ctx context.Context, dc *model.DiscoveredCreator) (*Resolution, error) {
	if dc == nil {
		return nil, eris.New("identity: nil discovered creator")
	}

	// Fast path: already linked.
	if dc.CreatorIdentityID != nil {
		existing, err := r.store.GetIdentity(ctx, *dc.CreatorIdentityID)
		if err != nil {
			return nil, eris.Wrapf(err, "identity: get %d", *dc.CreatorIdentityID)
		}
		if existing == nil {
			return nil, eris.Errorf("identity: discovered creator %d references missing identity %d", dc.ID, *dc.CreatorIdentityID)
		}
		zap.L().Debug("resolve: matched by back-reference",
			zap.Int64("discovered_creator_id", dc.ID),
			zap.Int64("identity_id", existing.ID),
		)
		return &Resolution{Identity: existing, AlreadyJoined: existing.Joined()}, nil
	}

	parsed := contact.ExtractContacts(dc.Description, "discovered_bio")
	candidate := buildIdentity(dc, parsed)

	winner, created, err := r.store.CreateIdentityForDiscovered(ctx, candidate, dc.ID)
	if err != nil {
		return nil, eris.Wrapf(err, "identity: create for discovered creator %d", dc.ID)
	}

	acct := &model.PlatformAccount{
		CreatorIdentityID: winner.ID,
		Platform:          dc.Platform,
		PlatformID:        dc.PlatformID,
		Handle:            dc.DisplayName,
		Followers:         dc.FollowerCount,
		Bio:               dc.Description,
		MatchMethod:       model.MatchDirectDiscovery,
	}
	if err := r.store.UpsertPlatformAccount(ctx, acct); err != nil {
		zap.L().Warn("resolve: link platform account failed",
			zap.Int64("identity_id", winner.ID),
			zap.Error(err),
		)
	}

	if created {
		zap.L().Info("resolve: created new identity",
			zap.Int64("discovered_creator_id", dc.ID),
			zap.Int64("identity_id", winner.ID),
			zap.String("platform", string(dc.Platform)),
			zap.Bool("has_email", winner.HasContactEmail()),
		)
	} else {
		zap.L().Debug("resolve: lost creation race, adopted winner",
			zap.Int64("discovered_creator_id", dc.ID),
			zap.Int64("identity_id", winner.ID),
		)
	}

	return &Resolution{Identity: winner, Created: created, AlreadyJoined: winner.Joined()}, nil
}

// buildIdentity assembles a new identity from a discovered record and its
// parsed contact details. The top-confidence email becomes primary, the
// rest become backups.
func buildIdentity(dc *model.DiscoveredCreator, parsed contact.Result) *model.CreatorIdentity {
	identity := &model.CreatorIdentity{
		DisplayName:     dc.DisplayName,
		Bio:             dc.Description,
		LinkHubURL:      parsed.HubURL,
		TotalFollowers:  dc.FollowerCount,
		PrimaryPlatform: dc.Platform,
		Status:          model.StatusDiscovered,
	}
	if len(dc.Niches) > 0 {
		identity.PrimaryNiche = dc.Niches[0]
	}
	if len(parsed.Emails) > 0 {
		primary := parsed.Emails[0]
		identity.ContactEmail = &primary.Email
		identity.ContactEmailSource = primary.Source
		identity.ContactEmailConfidence = &primary.Confidence
		for _, backup := range parsed.Emails[1:] {
			identity.BackupEmails = append(identity.BackupEmails, backup.Email)
		}
	}
	return identity
}

// MergeContacts folds new candidates into an identity by confidence: a
// higher-confidence email takes over as primary, everything else lands in
// backups. Returns true when anything changed.
func MergeContacts(identity *model.CreatorIdentity, parsed contact.Result, method model.MatchMethod) bool {
	changed := false

	for _, cand := range parsed.Emails {
		if identity.ContactEmail == nil ||
			(identity.ContactEmailConfidence != nil && cand.Confidence > *identity.ContactEmailConfidence) {
			if identity.ContactEmail != nil && *identity.ContactEmail != cand.Email {
				identity.BackupEmails = appendUnique(identity.BackupEmails, *identity.ContactEmail)
			}
			email := cand.Email
			conf := cand.Confidence
			identity.ContactEmail = &email
			identity.ContactEmailSource = cand.Source
			identity.ContactEmailConfidence = &conf
			changed = true
			continue
		}
		if *identity.ContactEmail != cand.Email {
			before := len(identity.BackupEmails)
			identity.BackupEmails = appendUnique(identity.BackupEmails, cand.Email)
			if len(identity.BackupEmails) != before {
				changed = true
			}
		}
	}

	if identity.LinkHubURL == "" && parsed.HubURL != "" {
		identity.LinkHubURL = parsed.HubURL
		changed = true
	}

	return changed
}

func appendUnique(list []string, email string) []string {
	for _, e := range list {
		if e == email {
			return list
		}
	}
	return append(list, email)
}
