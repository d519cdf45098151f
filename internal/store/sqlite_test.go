package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowlink/creator-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func seedDiscoveredRow(t *testing.T, st *SQLiteStore) *model.DiscoveredCreator {
	t.Helper()
	ctx := context.Background()

	er := 6.2
	n, err := st.UpsertDiscoveredCreators(ctx, []model.DiscoveredCreator{{
		Platform:       model.PlatformInstagram,
		PlatformID:     "jane_ig",
		DisplayName:    "Jane Does",
		Description:    "collab: jane@brandmail.com",
		FollowerCount:  25_000,
		EngagementRate: &er,
		Niches:         []string{"beauty", "skincare"},
	}})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	creators, err := st.ListDiscoveredCreators(ctx, CreatorFilter{})
	require.NoError(t, err)
	require.Len(t, creators, 1)
	return &creators[0]
}

// --- Discovered creators ---

func TestSQLite_UpsertDiscovered_RefreshesOnConflict(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	dc := seedDiscoveredRow(t, st)

	_, err := st.UpsertDiscoveredCreators(ctx, []model.DiscoveredCreator{{
		Platform:      model.PlatformInstagram,
		PlatformID:    "jane_ig",
		DisplayName:   "Jane Does Official",
		FollowerCount: 30_000,
	}})
	require.NoError(t, err)

	refreshed, err := st.GetDiscoveredCreator(ctx, dc.ID)
	require.NoError(t, err)
	require.NotNil(t, refreshed)
	assert.Equal(t, dc.ID, refreshed.ID)
	assert.Equal(t, "Jane Does Official", refreshed.DisplayName)
	assert.EqualValues(t, 30_000, refreshed.FollowerCount)

	all, err := st.ListDiscoveredCreators(ctx, CreatorFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLite_UpsertDiscovered_PreservesIdentityLink(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	dc := seedDiscoveredRow(t, st)

	_, created, err := st.CreateIdentityForDiscovered(ctx, &model.CreatorIdentity{
		DisplayName: dc.DisplayName,
		Status:      model.StatusDiscovered,
	}, dc.ID)
	require.NoError(t, err)
	require.True(t, created)

	// Re-importing the same creator must not clear the back-link.
	_, err = st.UpsertDiscoveredCreators(ctx, []model.DiscoveredCreator{{
		Platform:      model.PlatformInstagram,
		PlatformID:    "jane_ig",
		FollowerCount: 26_000,
	}})
	require.NoError(t, err)

	after, err := st.GetDiscoveredCreator(ctx, dc.ID)
	require.NoError(t, err)
	require.NotNil(t, after.CreatorIdentityID)
}

func TestSQLite_GetDiscoveredCreator_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	dc, err := st.GetDiscoveredCreator(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, dc)
}

func TestSQLite_ListDiscoveredCreators_Filters(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertDiscoveredCreators(ctx, []model.DiscoveredCreator{
		{Platform: model.PlatformInstagram, PlatformID: "a", FollowerCount: 10_000, Niches: []string{"beauty"}},
		{Platform: model.PlatformYouTube, PlatformID: "b", FollowerCount: 50_000, Niches: []string{"gaming"}},
		{Platform: model.PlatformInstagram, PlatformID: "c", FollowerCount: 2_000, Niches: []string{"beauty"}},
	})
	require.NoError(t, err)

	byPlatform, err := st.ListDiscoveredCreators(ctx, CreatorFilter{Platform: model.PlatformInstagram})
	require.NoError(t, err)
	assert.Len(t, byPlatform, 2)

	byNiche, err := st.ListDiscoveredCreators(ctx, CreatorFilter{Niche: "gaming"})
	require.NoError(t, err)
	assert.Len(t, byNiche, 1)
	assert.Equal(t, "b", byNiche[0].PlatformID)

	byFollowers, err := st.ListDiscoveredCreators(ctx, CreatorFilter{MinFollowers: 5_000})
	require.NoError(t, err)
	assert.Len(t, byFollowers, 2)
	// Sorted by follower count descending.
	assert.Equal(t, "b", byFollowers[0].PlatformID)
}

// --- Identities ---

func TestSQLite_CreateIdentity_WinsAndBackLinks(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	dc := seedDiscoveredRow(t, st)

	email := "jane@brandmail.com"
	conf := 0.7
	ident := &model.CreatorIdentity{
		DisplayName:            "Jane Does",
		ContactEmail:           &email,
		ContactEmailSource:     "discovered_bio",
		ContactEmailConfidence: &conf,
		BackupEmails:           []string{"backup@brandmail.com"},
		TotalFollowers:         25_000,
		PrimaryNiche:           "beauty",
		PrimaryPlatform:        model.PlatformInstagram,
		Status:                 model.StatusDiscovered,
	}

	created, wasNew, err := st.CreateIdentityForDiscovered(ctx, ident, dc.ID)
	require.NoError(t, err)
	assert.True(t, wasNew)
	assert.NotZero(t, created.ID)

	stored, err := st.GetIdentity(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "jane@brandmail.com", *stored.ContactEmail)
	assert.Equal(t, []string{"backup@brandmail.com"}, stored.BackupEmails)
	assert.Equal(t, model.StatusDiscovered, stored.Status)

	linked, err := st.GetDiscoveredCreator(ctx, dc.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.CreatorIdentityID)
	assert.Equal(t, created.ID, *linked.CreatorIdentityID)
}

func TestSQLite_CreateIdentity_LostRaceAdoptsWinner(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	dc := seedDiscoveredRow(t, st)

	winner, wasNew, err := st.CreateIdentityForDiscovered(ctx, &model.CreatorIdentity{
		DisplayName: "Jane Does",
		Status:      model.StatusDiscovered,
	}, dc.ID)
	require.NoError(t, err)
	require.True(t, wasNew)

	// Second create for the same discovered creator loses the CAS.
	adopted, wasNew, err := st.CreateIdentityForDiscovered(ctx, &model.CreatorIdentity{
		DisplayName: "Jane Duplicate",
		Status:      model.StatusDiscovered,
	}, dc.ID)
	require.NoError(t, err)
	assert.False(t, wasNew)
	assert.Equal(t, winner.ID, adopted.ID)
	assert.Equal(t, "Jane Does", adopted.DisplayName)
}

func TestSQLite_UpdateIdentityContact(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	dc := seedDiscoveredRow(t, st)

	ident, _, err := st.CreateIdentityForDiscovered(ctx, &model.CreatorIdentity{
		DisplayName: "Jane Does",
		LinkHubURL:  "linktr.ee/jane",
		Status:      model.StatusDiscovered,
	}, dc.ID)
	require.NoError(t, err)

	email := "found@brandmail.com"
	conf := 0.9
	ident.ContactEmail = &email
	ident.ContactEmailSource = "hub_page"
	ident.ContactEmailConfidence = &conf
	require.NoError(t, st.UpdateIdentityContact(ctx, ident))

	stored, err := st.GetIdentity(ctx, ident.ID)
	require.NoError(t, err)
	assert.Equal(t, "found@brandmail.com", *stored.ContactEmail)
	assert.Equal(t, "hub_page", stored.ContactEmailSource)
}

func TestSQLite_ListIdentitiesMissingEmail(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertDiscoveredCreators(ctx, []model.DiscoveredCreator{
		{Platform: model.PlatformInstagram, PlatformID: "a"},
		{Platform: model.PlatformInstagram, PlatformID: "b"},
		{Platform: model.PlatformInstagram, PlatformID: "c"},
	})
	require.NoError(t, err)
	creators, err := st.ListDiscoveredCreators(ctx, CreatorFilter{})
	require.NoError(t, err)
	require.Len(t, creators, 3)

	email := "has@mail.com"
	// Has hub link, no email: should be listed.
	_, _, err = st.CreateIdentityForDiscovered(ctx, &model.CreatorIdentity{
		DisplayName: "NoEmail", LinkHubURL: "linktr.ee/a", Status: model.StatusDiscovered,
	}, creators[0].ID)
	require.NoError(t, err)
	// Has email: skipped.
	_, _, err = st.CreateIdentityForDiscovered(ctx, &model.CreatorIdentity{
		DisplayName: "HasEmail", ContactEmail: &email, LinkHubURL: "linktr.ee/b", Status: model.StatusDiscovered,
	}, creators[1].ID)
	require.NoError(t, err)
	// No hub link: skipped.
	_, _, err = st.CreateIdentityForDiscovered(ctx, &model.CreatorIdentity{
		DisplayName: "NoHub", Status: model.StatusDiscovered,
	}, creators[2].ID)
	require.NoError(t, err)

	missing, err := st.ListIdentitiesMissingEmail(ctx, 10)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "NoEmail", missing[0].DisplayName)
}

func TestSQLite_MarkContacted_Monotonic(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	dc := seedDiscoveredRow(t, st)

	ident, _, err := st.CreateIdentityForDiscovered(ctx, &model.CreatorIdentity{
		DisplayName: "Jane Does",
		Status:      model.StatusDiscovered,
	}, dc.ID)
	require.NoError(t, err)

	require.NoError(t, st.MarkContacted(ctx, ident.ID))
	stored, err := st.GetIdentity(ctx, ident.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusContacted, stored.Status)

	// Advancing to joined elsewhere must never be undone by MarkContacted.
	_, err = st.db.ExecContext(ctx, `UPDATE creator_identities SET status = 'joined' WHERE id = ?`, ident.ID)
	require.NoError(t, err)
	require.NoError(t, st.MarkContacted(ctx, ident.ID))
	stored, err = st.GetIdentity(ctx, ident.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusJoined, stored.Status)
}

func TestSQLite_CreatorProfileHasUser(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.db.ExecContext(ctx,
		`INSERT INTO creator_profiles (id, user_id, display_name) VALUES (1, 42, 'claimed'), (2, NULL, 'unclaimed')`)
	require.NoError(t, err)

	claimed, err := st.CreatorProfileHasUser(ctx, 1)
	require.NoError(t, err)
	assert.True(t, claimed)

	unclaimed, err := st.CreatorProfileHasUser(ctx, 2)
	require.NoError(t, err)
	assert.False(t, unclaimed)

	absent, err := st.CreatorProfileHasUser(ctx, 404)
	require.NoError(t, err)
	assert.False(t, absent)
}

// --- Targeting criteria ---

func TestSQLite_GetBrandProfileAndCampaign(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.db.ExecContext(ctx,
		`INSERT INTO brand_profiles (id, name, target_niches, min_followers, max_followers, preferred_platforms, min_engagement_rate, description)
		 VALUES (1, 'Acme Beauty', '["beauty","skincare"]', 10000, 50000, '["instagram"]', 5.0, 'clean beauty brand')`)
	require.NoError(t, err)
	_, err = st.db.ExecContext(ctx,
		`INSERT INTO campaigns (id, brand_profile_id, name, target_niches, min_followers, max_followers, platforms, budget, description, created_at)
		 VALUES (7, 1, 'Summer Launch', '["beauty"]', 10000, 50000, '["instagram","tiktok"]', 20000, 'summer skincare push', datetime('now'))`)
	require.NoError(t, err)

	brand, err := st.GetBrandProfile(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, brand)
	assert.Equal(t, "Acme Beauty", brand.Name)
	assert.Equal(t, []string{"beauty", "skincare"}, brand.TargetNiches)
	require.NotNil(t, brand.MinEngagementRate)
	assert.Equal(t, 5.0, *brand.MinEngagementRate)

	campaign, err := st.GetCampaign(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, campaign)
	assert.Equal(t, []string{"instagram", "tiktok"}, campaign.Platforms)
	require.NotNil(t, campaign.Budget)
	assert.EqualValues(t, 20000, *campaign.Budget)

	missing, err := st.GetBrandProfile(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// --- Outreach events ---

func TestSQLite_OutreachEvents_AppendListAndDedupe(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	dc := seedDiscoveredRow(t, st)

	ident, _, err := st.CreateIdentityForDiscovered(ctx, &model.CreatorIdentity{
		DisplayName: "Jane Does",
		Status:      model.StatusDiscovered,
	}, dc.ID)
	require.NoError(t, err)

	now := time.Now().UTC()
	sent := &model.OutreachEvent{
		ID:                "evt-1",
		CreatorIdentityID: ident.ID,
		EmailSentTo:       "jane@brandmail.com",
		TemplateType:      model.TemplateInterestAlert,
		TriggeringBrandID: 1,
		TriggeringAction:  model.ActionUnlock,
		ProviderMessageID: "ses-1",
		Status:            model.EventSent,
		CreatedAt:         now,
	}
	require.NoError(t, st.AppendEvent(ctx, sent))

	failed := &model.OutreachEvent{
		ID:                "evt-2",
		CreatorIdentityID: ident.ID,
		EmailSentTo:       "jane@brandmail.com",
		TemplateType:      model.TemplateDirectMessage,
		TriggeringBrandID: 1,
		TriggeringAction:  model.ActionMessage,
		Status:            model.EventFailed,
		CreatedAt:         now.Add(time.Second),
	}
	require.NoError(t, st.AppendEvent(ctx, failed))

	events, err := st.ListOutreachEvents(ctx, ident.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "evt-2", events[0].ID)

	// Only sent events count toward dedupe.
	dupSent, err := st.HasSentTemplate(ctx, ident.ID, model.TemplateInterestAlert, time.Time{})
	require.NoError(t, err)
	assert.True(t, dupSent)

	dupFailed, err := st.HasSentTemplate(ctx, ident.ID, model.TemplateDirectMessage, time.Time{})
	require.NoError(t, err)
	assert.False(t, dupFailed)

	// A window after the send excludes it.
	windowed, err := st.HasSentTemplate(ctx, ident.ID, model.TemplateInterestAlert, now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, windowed)
}

func TestSQLite_Open_Dispatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "open.db")
	st, err := Open(context.Background(), configFor("sqlite", dbPath))
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))

	_, err = Open(context.Background(), configFor("oracle", ""))
	assert.Error(t, err)
}
