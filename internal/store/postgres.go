package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/glowlink/creator-cli/internal/config"
	"github.com/glowlink/creator-cli/internal/db"
	"github.com/glowlink/creator-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, cfg config.StoreConfig) (*PostgresStore, error) {
	pool, err := db.Connect(ctx, cfg.DatabaseURL, cfg.MaxConns, cfg.MinConns)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS creator_identities (
	id                       BIGSERIAL PRIMARY KEY,
	display_name             TEXT NOT NULL DEFAULT '',
	profile_image_url        TEXT NOT NULL DEFAULT '',
	bio                      TEXT NOT NULL DEFAULT '',
	contact_email            TEXT,
	contact_email_source     TEXT NOT NULL DEFAULT '',
	contact_email_confidence DOUBLE PRECISION,
	backup_emails            JSONB,
	link_hub_url             TEXT NOT NULL DEFAULT '',
	total_followers          BIGINT NOT NULL DEFAULT 0,
	primary_niche            TEXT NOT NULL DEFAULT '',
	primary_platform         TEXT NOT NULL DEFAULT '',
	status                   TEXT NOT NULL DEFAULT 'discovered',
	creator_profile_id       BIGINT,
	created_at               TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at               TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS discovered_creators (
	id                     BIGSERIAL PRIMARY KEY,
	platform               TEXT NOT NULL,
	platform_id            TEXT NOT NULL,
	display_name           TEXT NOT NULL DEFAULT '',
	description            TEXT NOT NULL DEFAULT '',
	follower_count         BIGINT NOT NULL DEFAULT 0,
	engagement_rate        DOUBLE PRECISION,
	niches                 JSONB,
	brand_readiness_score  DOUBLE PRECISION,
	rising_star_score      DOUBLE PRECISION,
	audience_quality_score DOUBLE PRECISION,
	creator_identity_id    BIGINT REFERENCES creator_identities(id),
	claimed_by             BIGINT,
	created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (platform, platform_id)
);

CREATE TABLE IF NOT EXISTS creator_platform_accounts (
	id                  BIGSERIAL PRIMARY KEY,
	creator_identity_id BIGINT NOT NULL REFERENCES creator_identities(id),
	platform            TEXT NOT NULL,
	platform_id         TEXT NOT NULL,
	handle              TEXT NOT NULL DEFAULT '',
	followers           BIGINT NOT NULL DEFAULT 0,
	bio                 TEXT NOT NULL DEFAULT '',
	match_method        TEXT NOT NULL DEFAULT 'direct_discovery',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (platform, platform_id)
);

CREATE TABLE IF NOT EXISTS creator_profiles (
	id           BIGSERIAL PRIMARY KEY,
	user_id      BIGINT,
	display_name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS brand_profiles (
	id                  BIGSERIAL PRIMARY KEY,
	name                TEXT NOT NULL,
	target_niches       JSONB,
	min_followers       BIGINT NOT NULL DEFAULT 0,
	max_followers       BIGINT NOT NULL DEFAULT 0,
	preferred_platforms JSONB,
	min_engagement_rate DOUBLE PRECISION,
	monthly_budget      BIGINT,
	description         TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS campaigns (
	id                  BIGSERIAL PRIMARY KEY,
	brand_profile_id    BIGINT NOT NULL REFERENCES brand_profiles(id),
	name                TEXT NOT NULL,
	target_niches       JSONB,
	min_followers       BIGINT NOT NULL DEFAULT 0,
	max_followers       BIGINT NOT NULL DEFAULT 0,
	platforms           JSONB,
	min_engagement_rate DOUBLE PRECISION,
	budget              BIGINT,
	description         TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS outreach_events (
	id                     TEXT PRIMARY KEY,
	creator_identity_id    BIGINT NOT NULL REFERENCES creator_identities(id),
	discovered_creator_id  BIGINT,
	email_sent_to          TEXT NOT NULL,
	template_type          TEXT NOT NULL,
	triggering_brand_id    BIGINT NOT NULL,
	triggering_campaign_id BIGINT,
	triggering_action      TEXT NOT NULL,
	provider_message_id    TEXT NOT NULL DEFAULT '',
	status                 TEXT NOT NULL,
	created_at             TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_discovered_identity ON discovered_creators(creator_identity_id);
CREATE INDEX IF NOT EXISTS idx_discovered_platform ON discovered_creators(platform);
CREATE INDEX IF NOT EXISTS idx_identities_status ON creator_identities(status);
CREATE INDEX IF NOT EXISTS idx_accounts_identity ON creator_platform_accounts(creator_identity_id);
CREATE INDEX IF NOT EXISTS idx_events_identity ON outreach_events(creator_identity_id, template_type, status);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const discoveredColumns = `id, platform, platform_id, display_name, description,
	follower_count, engagement_rate, niches, brand_readiness_score,
	rising_star_score, audience_quality_score, creator_identity_id, claimed_by,
	created_at, updated_at`

func scanDiscovered(row scanner) (*model.DiscoveredCreator, error) {
	var dc model.DiscoveredCreator
	var nichesJSON []byte
	err := row.Scan(
		&dc.ID, &dc.Platform, &dc.PlatformID, &dc.DisplayName, &dc.Description,
		&dc.FollowerCount, &dc.EngagementRate, &nichesJSON, &dc.BrandReadinessScore,
		&dc.RisingStarScore, &dc.AudienceQualityScore, &dc.CreatorIdentityID,
		&dc.ClaimedBy, &dc.CreatedAt, &dc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(nichesJSON) > 0 {
		if err := json.Unmarshal(nichesJSON, &dc.Niches); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal niches")
		}
	}
	return &dc, nil
}

func (s *PostgresStore) GetDiscoveredCreator(ctx context.Context, id int64) (*model.DiscoveredCreator, error) {
	dc, err := scanDiscovered(s.pool.QueryRow(ctx,
		`SELECT `+discoveredColumns+` FROM discovered_creators WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get discovered creator %d", id)
	}
	return dc, nil
}

func (s *PostgresStore) ListDiscoveredCreators(ctx context.Context, filter CreatorFilter) ([]model.DiscoveredCreator, error) {
	query := `SELECT ` + discoveredColumns + ` FROM discovered_creators WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Platform != "" {
		query += fmt.Sprintf(` AND platform = $%d`, argIdx)
		args = append(args, string(filter.Platform))
		argIdx++
	}
	if filter.Niche != "" {
		query += fmt.Sprintf(` AND niches @> $%d`, argIdx)
		nicheJSON, err := json.Marshal([]string{filter.Niche})
		if err != nil {
			return nil, eris.Wrap(err, "postgres: marshal niche filter")
		}
		args = append(args, nicheJSON)
		argIdx++
	}
	if filter.MinFollowers > 0 {
		query += fmt.Sprintf(` AND follower_count >= $%d`, argIdx)
		args = append(args, filter.MinFollowers)
		argIdx++
	}
	query += ` ORDER BY follower_count DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list discovered creators")
	}
	defer rows.Close()

	var creators []model.DiscoveredCreator
	for rows.Next() {
		dc, err := scanDiscovered(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan discovered creator")
		}
		creators = append(creators, *dc)
	}
	return creators, eris.Wrap(rows.Err(), "postgres: list discovered creators iterate")
}

// UpsertDiscoveredCreators bulk-loads discovered creators, refreshing
// existing rows on the (platform, platform_id) key. Identity back-links
// are never touched by the upsert.
func (s *PostgresStore) UpsertDiscoveredCreators(ctx context.Context, creators []model.DiscoveredCreator) (int64, error) {
	if len(creators) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, len(creators))
	for _, dc := range creators {
		nichesJSON, err := json.Marshal(dc.Niches)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: marshal niches for %s/%s", dc.Platform, dc.PlatformID)
		}
		rows = append(rows, []any{
			string(dc.Platform), dc.PlatformID, dc.DisplayName, dc.Description,
			dc.FollowerCount, dc.EngagementRate, nichesJSON,
			dc.BrandReadinessScore, dc.RisingStarScore, dc.AudienceQualityScore,
			now, now,
		})
	}

	return db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table: "discovered_creators",
		Columns: []string{
			"platform", "platform_id", "display_name", "description",
			"follower_count", "engagement_rate", "niches",
			"brand_readiness_score", "rising_star_score", "audience_quality_score",
			"created_at", "updated_at",
		},
		ConflictKeys: []string{"platform", "platform_id"},
		UpdateCols: []string{
			"display_name", "description", "follower_count", "engagement_rate",
			"niches", "brand_readiness_score", "rising_star_score",
			"audience_quality_score", "updated_at",
		},
	}, rows)
}

const identityColumns = `id, display_name, profile_image_url, bio, contact_email,
	contact_email_source, contact_email_confidence, backup_emails, link_hub_url,
	total_followers, primary_niche, primary_platform, status, creator_profile_id,
	created_at, updated_at`

func scanIdentity(row scanner) (*model.CreatorIdentity, error) {
	var ci model.CreatorIdentity
	var backupJSON []byte
	err := row.Scan(
		&ci.ID, &ci.DisplayName, &ci.ProfileImageURL, &ci.Bio, &ci.ContactEmail,
		&ci.ContactEmailSource, &ci.ContactEmailConfidence, &backupJSON,
		&ci.LinkHubURL, &ci.TotalFollowers, &ci.PrimaryNiche, &ci.PrimaryPlatform,
		&ci.Status, &ci.CreatorProfileID, &ci.CreatedAt, &ci.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(backupJSON) > 0 {
		if err := json.Unmarshal(backupJSON, &ci.BackupEmails); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal backup emails")
		}
	}
	return &ci, nil
}

func (s *PostgresStore) GetIdentity(ctx context.Context, id int64) (*model.CreatorIdentity, error) {
	ci, err := scanIdentity(s.pool.QueryRow(ctx,
		`SELECT `+identityColumns+` FROM creator_identities WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get identity %d", id)
	}
	return ci, nil
}

// CreateIdentityForDiscovered inserts the identity and back-links the
// discovered creator in one transaction. The back-link UPDATE is guarded
// by creator_identity_id IS NULL; zero rows affected means a concurrent
// caller won, so the insert is rolled back and the winner returned.
func (s *PostgresStore) CreateIdentityForDiscovered(ctx context.Context, identity *model.CreatorIdentity, discoveredID int64) (*model.CreatorIdentity, bool, error) {
	backupJSON, err := json.Marshal(identity.BackupEmails)
	if err != nil {
		return nil, false, eris.Wrap(err, "postgres: marshal backup emails")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, false, eris.Wrap(err, "postgres: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	err = tx.QueryRow(ctx,
		`INSERT INTO creator_identities
		 (display_name, profile_image_url, bio, contact_email, contact_email_source,
		  contact_email_confidence, backup_emails, link_hub_url, total_followers,
		  primary_niche, primary_platform, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		identity.DisplayName, identity.ProfileImageURL, identity.Bio,
		identity.ContactEmail, identity.ContactEmailSource, identity.ContactEmailConfidence,
		backupJSON, identity.LinkHubURL, identity.TotalFollowers,
		identity.PrimaryNiche, string(identity.PrimaryPlatform), string(identity.Status),
	).Scan(&identity.ID, &identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		return nil, false, eris.Wrap(err, "postgres: insert identity")
	}

	tag, err := tx.Exec(ctx,
		`UPDATE discovered_creators SET creator_identity_id = $1, updated_at = now()
		 WHERE id = $2 AND creator_identity_id IS NULL`,
		identity.ID, discoveredID,
	)
	if err != nil {
		return nil, false, eris.Wrapf(err, "postgres: back-link discovered creator %d", discoveredID)
	}
	if tag.RowsAffected() == 0 {
		if err := tx.Rollback(ctx); err != nil {
			return nil, false, eris.Wrap(err, "postgres: rollback lost race")
		}
		var winnerID *int64
		err := s.pool.QueryRow(ctx,
			`SELECT creator_identity_id FROM discovered_creators WHERE id = $1`,
			discoveredID,
		).Scan(&winnerID)
		if err != nil {
			return nil, false, eris.Wrapf(err, "postgres: load race winner for %d", discoveredID)
		}
		if winnerID == nil {
			return nil, false, eris.Errorf("postgres: discovered creator %d has no identity after lost race", discoveredID)
		}
		winner, err := s.GetIdentity(ctx, *winnerID)
		if err != nil {
			return nil, false, err
		}
		if winner == nil {
			return nil, false, eris.Errorf("postgres: race winner identity %d missing", *winnerID)
		}
		return winner, false, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, eris.Wrap(err, "postgres: commit identity create")
	}
	return identity, true, nil
}

func (s *PostgresStore) UpsertPlatformAccount(ctx context.Context, acct *model.PlatformAccount) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO creator_platform_accounts
		 (creator_identity_id, platform, platform_id, handle, followers, bio, match_method)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (platform, platform_id) DO UPDATE SET
		   handle = $4, followers = $5, bio = $6`,
		acct.CreatorIdentityID, string(acct.Platform), acct.PlatformID,
		acct.Handle, acct.Followers, acct.Bio, string(acct.MatchMethod),
	)
	return eris.Wrap(err, "postgres: upsert platform account")
}

func (s *PostgresStore) UpdateIdentityContact(ctx context.Context, identity *model.CreatorIdentity) error {
	backupJSON, err := json.Marshal(identity.BackupEmails)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal backup emails")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE creator_identities SET
		   contact_email = $1, contact_email_source = $2, contact_email_confidence = $3,
		   backup_emails = $4, link_hub_url = $5, updated_at = now()
		 WHERE id = $6`,
		identity.ContactEmail, identity.ContactEmailSource, identity.ContactEmailConfidence,
		backupJSON, identity.LinkHubURL, identity.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update identity contact %d", identity.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("identity not found: %d", identity.ID)
	}
	return nil
}

func (s *PostgresStore) ListIdentitiesMissingEmail(ctx context.Context, limit int) ([]model.CreatorIdentity, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+identityColumns+` FROM creator_identities
		 WHERE (contact_email IS NULL OR contact_email = '')
		   AND link_hub_url <> '' AND status <> 'joined'
		 ORDER BY id LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list identities missing email")
	}
	defer rows.Close()

	var identities []model.CreatorIdentity
	for rows.Next() {
		ci, err := scanIdentity(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan identity")
		}
		identities = append(identities, *ci)
	}
	return identities, eris.Wrap(rows.Err(), "postgres: list identities iterate")
}

func (s *PostgresStore) CreatorProfileHasUser(ctx context.Context, profileID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM creator_profiles WHERE id = $1 AND user_id IS NOT NULL)`,
		profileID,
	).Scan(&exists)
	return exists, eris.Wrapf(err, "postgres: check creator profile %d", profileID)
}

func (s *PostgresStore) GetBrandProfile(ctx context.Context, id int64) (*model.BrandProfile, error) {
	var bp model.BrandProfile
	var nichesJSON, platformsJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, target_niches, min_followers, max_followers,
		        preferred_platforms, min_engagement_rate, monthly_budget, description
		 FROM brand_profiles WHERE id = $1`,
		id,
	).Scan(&bp.ID, &bp.Name, &nichesJSON, &bp.MinFollowers, &bp.MaxFollowers,
		&platformsJSON, &bp.MinEngagementRate, &bp.MonthlyBudget, &bp.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get brand profile %d", id)
	}
	if err := unmarshalStrings(nichesJSON, &bp.TargetNiches); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal target niches")
	}
	if err := unmarshalStrings(platformsJSON, &bp.PreferredPlatforms); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal preferred platforms")
	}
	return &bp, nil
}

func (s *PostgresStore) GetCampaign(ctx context.Context, id int64) (*model.Campaign, error) {
	var c model.Campaign
	var nichesJSON, platformsJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, brand_profile_id, name, target_niches, min_followers, max_followers,
		        platforms, min_engagement_rate, budget, description, created_at
		 FROM campaigns WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.BrandProfileID, &c.Name, &nichesJSON, &c.MinFollowers,
		&c.MaxFollowers, &platformsJSON, &c.MinEngagementRate, &c.Budget,
		&c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get campaign %d", id)
	}
	if err := unmarshalStrings(nichesJSON, &c.TargetNiches); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal target niches")
	}
	if err := unmarshalStrings(platformsJSON, &c.Platforms); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal platforms")
	}
	return &c, nil
}

func (s *PostgresStore) AppendEvent(ctx context.Context, event *model.OutreachEvent) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO outreach_events
		 (id, creator_identity_id, discovered_creator_id, email_sent_to, template_type,
		  triggering_brand_id, triggering_campaign_id, triggering_action,
		  provider_message_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		event.ID, event.CreatorIdentityID, event.DiscoveredCreatorID,
		event.EmailSentTo, string(event.TemplateType), event.TriggeringBrandID,
		event.TriggeringCampaignID, string(event.TriggeringAction),
		event.ProviderMessageID, string(event.Status), event.CreatedAt,
	)
	return eris.Wrap(err, "postgres: append outreach event")
}

func (s *PostgresStore) HasSentTemplate(ctx context.Context, identityID int64, tmplType model.TemplateType, since time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM outreach_events
		   WHERE creator_identity_id = $1 AND template_type = $2
		     AND status = 'sent' AND created_at > $3
		 )`,
		identityID, string(tmplType), since,
	).Scan(&exists)
	return exists, eris.Wrap(err, "postgres: check sent template")
}

func (s *PostgresStore) MarkContacted(ctx context.Context, identityID int64) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE creator_identities SET status = 'contacted', updated_at = now()
		 WHERE id = $1 AND status = 'discovered'`,
		identityID,
	)
	return eris.Wrapf(err, "postgres: mark contacted %d", identityID)
}

func (s *PostgresStore) ListOutreachEvents(ctx context.Context, identityID int64, limit int) ([]model.OutreachEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, creator_identity_id, discovered_creator_id, email_sent_to,
		        template_type, triggering_brand_id, triggering_campaign_id,
		        triggering_action, provider_message_id, status, created_at
		 FROM outreach_events WHERE creator_identity_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		identityID, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list outreach events")
	}
	defer rows.Close()

	var events []model.OutreachEvent
	for rows.Next() {
		var e model.OutreachEvent
		if err := rows.Scan(&e.ID, &e.CreatorIdentityID, &e.DiscoveredCreatorID,
			&e.EmailSentTo, &e.TemplateType, &e.TriggeringBrandID,
			&e.TriggeringCampaignID, &e.TriggeringAction, &e.ProviderMessageID,
			&e.Status, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan outreach event")
		}
		events = append(events, e)
	}
	return events, eris.Wrap(rows.Err(), "postgres: list outreach events iterate")
}

// unmarshalStrings decodes a jsonb string array, tolerating NULL.
func unmarshalStrings(data []byte, dst *[]string) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
