package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowlink/creator-cli/internal/contact"
	"github.com/glowlink/creator-cli/internal/model"
)

// fakeStore is an in-memory Store for resolver tests.
type fakeStore struct {
	discovered map[int64]*model.DiscoveredCreator
	identities map[int64]*model.CreatorIdentity
	accounts   map[string]*model.PlatformAccount
	profiles   map[int64]bool
	nextID     int64

	createCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		discovered: map[int64]*model.DiscoveredCreator{},
		identities: map[int64]*model.CreatorIdentity{},
		accounts:   map[string]*model.PlatformAccount{},
		profiles:   map[int64]bool{},
		nextID:     1,
	}
}

func (f *fakeStore) GetDiscoveredCreator(_ context.Context, id int64) (*model.DiscoveredCreator, error) {
	return f.discovered[id], nil
}

func (f *fakeStore) GetIdentity(_ context.Context, id int64) (*model.CreatorIdentity, error) {
	return f.identities[id], nil
}

func (f *fakeStore) CreateIdentityForDiscovered(_ context.Context, identity *model.CreatorIdentity, discoveredID int64) (*model.CreatorIdentity, bool, error) {
	f.createCalls++
	dc := f.discovered[discoveredID]
	if dc != nil && dc.CreatorIdentityID != nil {
		// Lost the race: adopt the winner.
		return f.identities[*dc.CreatorIdentityID], false, nil
	}
	identity.ID = f.nextID
	f.nextID++
	f.identities[identity.ID] = identity
	if dc != nil {
		id := identity.ID
		dc.CreatorIdentityID = &id
	}
	return identity, true, nil
}

func (f *fakeStore) UpsertPlatformAccount(_ context.Context, acct *model.PlatformAccount) error {
	f.accounts[string(acct.Platform)+":"+acct.PlatformID] = acct
	return nil
}

func (f *fakeStore) UpdateIdentityContact(_ context.Context, identity *model.CreatorIdentity) error {
	f.identities[identity.ID] = identity
	return nil
}

func (f *fakeStore) ListIdentitiesMissingEmail(_ context.Context, _ int) ([]model.CreatorIdentity, error) {
	return nil, nil
}

func (f *fakeStore) CreatorProfileHasUser(_ context.Context, profileID int64) (bool, error) {
	return f.profiles[profileID], nil
}

func discoveredFixture() *model.DiscoveredCreator {
	return &model.DiscoveredCreator{
		ID:            7,
		Platform:      model.PlatformInstagram,
		PlatformID:    "jane_ig",
		DisplayName:   "Jane Does",
		Description:   "collab: jane@brandmail.com, insta: @janedoes",
		FollowerCount: 25_000,
		Niches:        []string{"beauty"},
	}
}

func TestResolveOrCreate_CreatesIdentity(t *testing.T) {
	store := newFakeStore()
	dc := discoveredFixture()
	store.discovered[dc.ID] = dc

	res, err := NewResolver(store).ResolveOrCreate(context.Background(), dc)
	require.NoError(t, err)
	require.NotNil(t, res.Identity)

	assert.True(t, res.Created)
	assert.False(t, res.AlreadyJoined)
	assert.Equal(t, model.StatusDiscovered, res.Identity.Status)
	require.NotNil(t, res.Identity.ContactEmail)
	assert.Equal(t, "jane@brandmail.com", *res.Identity.ContactEmail)
	require.NotNil(t, res.Identity.ContactEmailConfidence)
	assert.Equal(t, 0.7, *res.Identity.ContactEmailConfidence)
	assert.Equal(t, "beauty", res.Identity.PrimaryNiche)

	// Back-link written and platform account recorded with provenance.
	require.NotNil(t, dc.CreatorIdentityID)
	acct := store.accounts["instagram:jane_ig"]
	require.NotNil(t, acct)
	assert.Equal(t, model.MatchDirectDiscovery, acct.MatchMethod)
	assert.Equal(t, res.Identity.ID, acct.CreatorIdentityID)
}

func TestResolveOrCreate_IdempotentSecondCall(t *testing.T) {
	store := newFakeStore()
	dc := discoveredFixture()
	store.discovered[dc.ID] = dc
	resolver := NewResolver(store)

	first, err := resolver.ResolveOrCreate(context.Background(), dc)
	require.NoError(t, err)
	second, err := resolver.ResolveOrCreate(context.Background(), dc)
	require.NoError(t, err)

	assert.Equal(t, first.Identity.ID, second.Identity.ID)
	assert.False(t, second.Created)
	assert.Len(t, store.identities, 1)
	// Fast path never reaches the create step again.
	assert.Equal(t, 1, store.createCalls)
}

func TestResolveOrCreate_LostRaceAdoptsWinner(t *testing.T) {
	store := newFakeStore()
	dc := discoveredFixture()
	store.discovered[dc.ID] = dc

	// Simulate a concurrent winner: back-link set after our caller loaded dc.
	winner := &model.CreatorIdentity{ID: 99, Status: model.StatusDiscovered}
	store.identities[99] = winner
	winnerID := int64(99)
	stale := *dc
	stale.CreatorIdentityID = nil
	dc.CreatorIdentityID = &winnerID

	res, err := NewResolver(store).ResolveOrCreate(context.Background(), &stale)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, int64(99), res.Identity.ID)
	assert.Len(t, store.identities, 1)
}

func TestResolveOrCreate_AlreadyJoined(t *testing.T) {
	store := newFakeStore()
	profileID := int64(42)
	identityID := int64(5)
	store.identities[identityID] = &model.CreatorIdentity{
		ID:               identityID,
		Status:           model.StatusJoined,
		CreatorProfileID: &profileID,
	}
	dc := discoveredFixture()
	dc.CreatorIdentityID = &identityID
	store.discovered[dc.ID] = dc

	res, err := NewResolver(store).ResolveOrCreate(context.Background(), dc)
	require.NoError(t, err)
	assert.True(t, res.AlreadyJoined)
	assert.False(t, res.Created)
}

func TestResolveOrCreate_NoEmailInBio(t *testing.T) {
	store := newFakeStore()
	dc := discoveredFixture()
	dc.Description = "just vibes, no contact"
	store.discovered[dc.ID] = dc

	res, err := NewResolver(store).ResolveOrCreate(context.Background(), dc)
	require.NoError(t, err)
	assert.Nil(t, res.Identity.ContactEmail)
	assert.False(t, res.Identity.HasContactEmail())
}

func TestMergeContacts_HigherConfidenceTakesOver(t *testing.T) {
	oldEmail := "old@x.com"
	oldConf := 0.5
	identity := &model.CreatorIdentity{
		ContactEmail:           &oldEmail,
		ContactEmailSource:     "discovered_bio",
		ContactEmailConfidence: &oldConf,
	}

	parsed := contact.ExtractContacts("business inquiries: new@x.com", "hub_page")
	changed := MergeContacts(identity, parsed, model.MatchHubEnrichment)

	assert.True(t, changed)
	assert.Equal(t, "new@x.com", *identity.ContactEmail)
	assert.Equal(t, "hub_page", identity.ContactEmailSource)
	assert.Equal(t, 0.9, *identity.ContactEmailConfidence)
	assert.Contains(t, identity.BackupEmails, "old@x.com")
}

func TestMergeContacts_LowerConfidenceGoesToBackups(t *testing.T) {
	oldEmail := "primary@x.com"
	oldConf := 0.9
	identity := &model.CreatorIdentity{
		ContactEmail:           &oldEmail,
		ContactEmailConfidence: &oldConf,
	}

	parsed := contact.ExtractContacts("extra@x.com", "hub_page")
	changed := MergeContacts(identity, parsed, model.MatchHubEnrichment)

	assert.True(t, changed)
	assert.Equal(t, "primary@x.com", *identity.ContactEmail)
	assert.Equal(t, []string{"extra@x.com"}, identity.BackupEmails)
}

func TestMergeContacts_NoChange(t *testing.T) {
	email := "primary@x.com"
	conf := 0.9
	identity := &model.CreatorIdentity{
		ContactEmail:           &email,
		ContactEmailConfidence: &conf,
		LinkHubURL:             "linktr.ee/jane",
	}

	parsed := contact.ExtractContacts("", "hub_page")
	assert.False(t, MergeContacts(identity, parsed, model.MatchHubEnrichment))
}
