package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/glowlink/creator-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS creator_identities (
	id                       INTEGER PRIMARY KEY AUTOINCREMENT,
	display_name             TEXT NOT NULL DEFAULT '',
	profile_image_url        TEXT NOT NULL DEFAULT '',
	bio                      TEXT NOT NULL DEFAULT '',
	contact_email            TEXT,
	contact_email_source     TEXT NOT NULL DEFAULT '',
	contact_email_confidence REAL,
	backup_emails            TEXT,
	link_hub_url             TEXT NOT NULL DEFAULT '',
	total_followers          INTEGER NOT NULL DEFAULT 0,
	primary_niche            TEXT NOT NULL DEFAULT '',
	primary_platform         TEXT NOT NULL DEFAULT '',
	status                   TEXT NOT NULL DEFAULT 'discovered',
	creator_profile_id       INTEGER,
	created_at               DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at               DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS discovered_creators (
	id                     INTEGER PRIMARY KEY AUTOINCREMENT,
	platform               TEXT NOT NULL,
	platform_id            TEXT NOT NULL,
	display_name           TEXT NOT NULL DEFAULT '',
	description            TEXT NOT NULL DEFAULT '',
	follower_count         INTEGER NOT NULL DEFAULT 0,
	engagement_rate        REAL,
	niches                 TEXT,
	brand_readiness_score  REAL,
	rising_star_score      REAL,
	audience_quality_score REAL,
	creator_identity_id    INTEGER REFERENCES creator_identities(id),
	claimed_by             INTEGER,
	created_at             DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at             DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE (platform, platform_id)
);

CREATE TABLE IF NOT EXISTS creator_platform_accounts (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	creator_identity_id INTEGER NOT NULL REFERENCES creator_identities(id),
	platform            TEXT NOT NULL,
	platform_id         TEXT NOT NULL,
	handle              TEXT NOT NULL DEFAULT '',
	followers           INTEGER NOT NULL DEFAULT 0,
	bio                 TEXT NOT NULL DEFAULT '',
	match_method        TEXT NOT NULL DEFAULT 'direct_discovery',
	created_at          DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE (platform, platform_id)
);

CREATE TABLE IF NOT EXISTS creator_profiles (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id      INTEGER,
	display_name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS brand_profiles (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	name                TEXT NOT NULL,
	target_niches       TEXT,
	min_followers       INTEGER NOT NULL DEFAULT 0,
	max_followers       INTEGER NOT NULL DEFAULT 0,
	preferred_platforms TEXT,
	min_engagement_rate REAL,
	monthly_budget      INTEGER,
	description         TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS campaigns (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	brand_profile_id    INTEGER NOT NULL REFERENCES brand_profiles(id),
	name                TEXT NOT NULL,
	target_niches       TEXT,
	min_followers       INTEGER NOT NULL DEFAULT 0,
	max_followers       INTEGER NOT NULL DEFAULT 0,
	platforms           TEXT,
	min_engagement_rate REAL,
	budget              INTEGER,
	description         TEXT NOT NULL DEFAULT '',
	created_at          DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS outreach_events (
	id                     TEXT PRIMARY KEY,
	creator_identity_id    INTEGER NOT NULL REFERENCES creator_identities(id),
	discovered_creator_id  INTEGER,
	email_sent_to          TEXT NOT NULL,
	template_type          TEXT NOT NULL,
	triggering_brand_id    INTEGER NOT NULL,
	triggering_campaign_id INTEGER,
	triggering_action      TEXT NOT NULL,
	provider_message_id    TEXT NOT NULL DEFAULT '',
	status                 TEXT NOT NULL,
	created_at             DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_discovered_identity ON discovered_creators(creator_identity_id);
CREATE INDEX IF NOT EXISTS idx_discovered_platform ON discovered_creators(platform);
CREATE INDEX IF NOT EXISTS idx_identities_status ON creator_identities(status);
CREATE INDEX IF NOT EXISTS idx_accounts_identity ON creator_platform_accounts(creator_identity_id);
CREATE INDEX IF NOT EXISTS idx_events_identity ON outreach_events(creator_identity_id, template_type, status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanDiscoveredSQLite(row scanner) (*model.DiscoveredCreator, error) {
	var dc model.DiscoveredCreator
	var nichesJSON sql.NullString
	err := row.Scan(
		&dc.ID, &dc.Platform, &dc.PlatformID, &dc.DisplayName, &dc.Description,
		&dc.FollowerCount, &dc.EngagementRate, &nichesJSON, &dc.BrandReadinessScore,
		&dc.RisingStarScore, &dc.AudienceQualityScore, &dc.CreatorIdentityID,
		&dc.ClaimedBy, &dc.CreatedAt, &dc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if nichesJSON.Valid && nichesJSON.String != "" {
		if err := json.Unmarshal([]byte(nichesJSON.String), &dc.Niches); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal niches")
		}
	}
	return &dc, nil
}

func (s *SQLiteStore) GetDiscoveredCreator(ctx context.Context, id int64) (*model.DiscoveredCreator, error) {
	dc, err := scanDiscoveredSQLite(s.db.QueryRowContext(ctx,
		`SELECT `+discoveredColumns+` FROM discovered_creators WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get discovered creator %d", id)
	}
	return dc, nil
}

func (s *SQLiteStore) ListDiscoveredCreators(ctx context.Context, filter CreatorFilter) ([]model.DiscoveredCreator, error) {
	query := `SELECT ` + discoveredColumns + ` FROM discovered_creators WHERE 1=1`
	var args []any

	if filter.Platform != "" {
		query += ` AND platform = ?`
		args = append(args, string(filter.Platform))
	}
	if filter.Niche != "" {
		query += ` AND EXISTS (SELECT 1 FROM json_each(niches) WHERE json_each.value = ?)`
		args = append(args, filter.Niche)
	}
	if filter.MinFollowers > 0 {
		query += ` AND follower_count >= ?`
		args = append(args, filter.MinFollowers)
	}
	query += ` ORDER BY follower_count DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list discovered creators")
	}
	defer rows.Close()

	var creators []model.DiscoveredCreator
	for rows.Next() {
		dc, err := scanDiscoveredSQLite(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan discovered creator")
		}
		creators = append(creators, *dc)
	}
	return creators, eris.Wrap(rows.Err(), "sqlite: list discovered creators iterate")
}

func (s *SQLiteStore) UpsertDiscoveredCreators(ctx context.Context, creators []model.DiscoveredCreator) (int64, error) {
	if len(creators) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	var total int64
	for _, dc := range creators {
		nichesJSON, err := json.Marshal(dc.Niches)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: marshal niches for %s/%s", dc.Platform, dc.PlatformID)
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO discovered_creators
			 (platform, platform_id, display_name, description, follower_count,
			  engagement_rate, niches, brand_readiness_score, rising_star_score,
			  audience_quality_score, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (platform, platform_id) DO UPDATE SET
			   display_name = excluded.display_name,
			   description = excluded.description,
			   follower_count = excluded.follower_count,
			   engagement_rate = excluded.engagement_rate,
			   niches = excluded.niches,
			   brand_readiness_score = excluded.brand_readiness_score,
			   rising_star_score = excluded.rising_star_score,
			   audience_quality_score = excluded.audience_quality_score,
			   updated_at = excluded.updated_at`,
			string(dc.Platform), dc.PlatformID, dc.DisplayName, dc.Description,
			dc.FollowerCount, dc.EngagementRate, string(nichesJSON),
			dc.BrandReadinessScore, dc.RisingStarScore, dc.AudienceQualityScore,
			now, now,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert %s/%s", dc.Platform, dc.PlatformID)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, eris.Wrap(err, "sqlite: rows affected")
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit upsert")
	}
	return total, nil
}

func scanIdentitySQLite(row scanner) (*model.CreatorIdentity, error) {
	var ci model.CreatorIdentity
	var backupJSON sql.NullString
	err := row.Scan(
		&ci.ID, &ci.DisplayName, &ci.ProfileImageURL, &ci.Bio, &ci.ContactEmail,
		&ci.ContactEmailSource, &ci.ContactEmailConfidence, &backupJSON,
		&ci.LinkHubURL, &ci.TotalFollowers, &ci.PrimaryNiche, &ci.PrimaryPlatform,
		&ci.Status, &ci.CreatorProfileID, &ci.CreatedAt, &ci.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if backupJSON.Valid && backupJSON.String != "" {
		if err := json.Unmarshal([]byte(backupJSON.String), &ci.BackupEmails); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal backup emails")
		}
	}
	return &ci, nil
}

func (s *SQLiteStore) GetIdentity(ctx context.Context, id int64) (*model.CreatorIdentity, error) {
	ci, err := scanIdentitySQLite(s.db.QueryRowContext(ctx,
		`SELECT `+identityColumns+` FROM creator_identities WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get identity %d", id)
	}
	return ci, nil
}

func (s *SQLiteStore) CreateIdentityForDiscovered(ctx context.Context, identity *model.CreatorIdentity, discoveredID int64) (*model.CreatorIdentity, bool, error) {
	backupJSON, err := json.Marshal(identity.BackupEmails)
	if err != nil {
		return nil, false, eris.Wrap(err, "sqlite: marshal backup emails")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO creator_identities
		 (display_name, profile_image_url, bio, contact_email, contact_email_source,
		  contact_email_confidence, backup_emails, link_hub_url, total_followers,
		  primary_niche, primary_platform, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		identity.DisplayName, identity.ProfileImageURL, identity.Bio,
		identity.ContactEmail, identity.ContactEmailSource, identity.ContactEmailConfidence,
		string(backupJSON), identity.LinkHubURL, identity.TotalFollowers,
		identity.PrimaryNiche, string(identity.PrimaryPlatform), string(identity.Status),
		now, now,
	)
	if err != nil {
		return nil, false, eris.Wrap(err, "sqlite: insert identity")
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return nil, false, eris.Wrap(err, "sqlite: last insert id")
	}
	identity.ID = newID
	identity.CreatedAt = now
	identity.UpdatedAt = now

	linkRes, err := tx.ExecContext(ctx,
		`UPDATE discovered_creators SET creator_identity_id = ?, updated_at = ?
		 WHERE id = ? AND creator_identity_id IS NULL`,
		newID, now, discoveredID,
	)
	if err != nil {
		return nil, false, eris.Wrapf(err, "sqlite: back-link discovered creator %d", discoveredID)
	}
	linked, err := linkRes.RowsAffected()
	if err != nil {
		return nil, false, eris.Wrap(err, "sqlite: rows affected")
	}
	if linked == 0 {
		if err := tx.Rollback(); err != nil {
			return nil, false, eris.Wrap(err, "sqlite: rollback lost race")
		}
		var winnerID sql.NullInt64
		err := s.db.QueryRowContext(ctx,
			`SELECT creator_identity_id FROM discovered_creators WHERE id = ?`,
			discoveredID,
		).Scan(&winnerID)
		if err != nil {
			return nil, false, eris.Wrapf(err, "sqlite: load race winner for %d", discoveredID)
		}
		if !winnerID.Valid {
			return nil, false, eris.Errorf("sqlite: discovered creator %d has no identity after lost race", discoveredID)
		}
		winner, err := s.GetIdentity(ctx, winnerID.Int64)
		if err != nil {
			return nil, false, err
		}
		if winner == nil {
			return nil, false, eris.Errorf("sqlite: race winner identity %d missing", winnerID.Int64)
		}
		return winner, false, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, false, eris.Wrap(err, "sqlite: commit identity create")
	}
	return identity, true, nil
}

func (s *SQLiteStore) UpsertPlatformAccount(ctx context.Context, acct *model.PlatformAccount) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO creator_platform_accounts
		 (creator_identity_id, platform, platform_id, handle, followers, bio, match_method)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (platform, platform_id) DO UPDATE SET
		   handle = excluded.handle,
		   followers = excluded.followers,
		   bio = excluded.bio`,
		acct.CreatorIdentityID, string(acct.Platform), acct.PlatformID,
		acct.Handle, acct.Followers, acct.Bio, string(acct.MatchMethod),
	)
	return eris.Wrap(err, "sqlite: upsert platform account")
}

func (s *SQLiteStore) UpdateIdentityContact(ctx context.Context, identity *model.CreatorIdentity) error {
	backupJSON, err := json.Marshal(identity.BackupEmails)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal backup emails")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE creator_identities SET
		   contact_email = ?, contact_email_source = ?, contact_email_confidence = ?,
		   backup_emails = ?, link_hub_url = ?, updated_at = ?
		 WHERE id = ?`,
		identity.ContactEmail, identity.ContactEmailSource, identity.ContactEmailConfidence,
		string(backupJSON), identity.LinkHubURL, time.Now().UTC(), identity.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update identity contact %d", identity.ID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("identity not found: %d", identity.ID)
	}
	return nil
}

func (s *SQLiteStore) ListIdentitiesMissingEmail(ctx context.Context, limit int) ([]model.CreatorIdentity, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+identityColumns+` FROM creator_identities
		 WHERE (contact_email IS NULL OR contact_email = '')
		   AND link_hub_url <> '' AND status <> 'joined'
		 ORDER BY id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list identities missing email")
	}
	defer rows.Close()

	var identities []model.CreatorIdentity
	for rows.Next() {
		ci, err := scanIdentitySQLite(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan identity")
		}
		identities = append(identities, *ci)
	}
	return identities, eris.Wrap(rows.Err(), "sqlite: list identities iterate")
}

func (s *SQLiteStore) CreatorProfileHasUser(ctx context.Context, profileID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM creator_profiles WHERE id = ? AND user_id IS NOT NULL)`,
		profileID,
	).Scan(&exists)
	return exists, eris.Wrapf(err, "sqlite: check creator profile %d", profileID)
}

func (s *SQLiteStore) GetBrandProfile(ctx context.Context, id int64) (*model.BrandProfile, error) {
	var bp model.BrandProfile
	var nichesJSON, platformsJSON sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, target_niches, min_followers, max_followers,
		        preferred_platforms, min_engagement_rate, monthly_budget, description
		 FROM brand_profiles WHERE id = ?`,
		id,
	).Scan(&bp.ID, &bp.Name, &nichesJSON, &bp.MinFollowers, &bp.MaxFollowers,
		&platformsJSON, &bp.MinEngagementRate, &bp.MonthlyBudget, &bp.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get brand profile %d", id)
	}
	if err := unmarshalNullStrings(nichesJSON, &bp.TargetNiches); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal target niches")
	}
	if err := unmarshalNullStrings(platformsJSON, &bp.PreferredPlatforms); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal preferred platforms")
	}
	return &bp, nil
}

func (s *SQLiteStore) GetCampaign(ctx context.Context, id int64) (*model.Campaign, error) {
	var c model.Campaign
	var nichesJSON, platformsJSON sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, brand_profile_id, name, target_niches, min_followers, max_followers,
		        platforms, min_engagement_rate, budget, description, created_at
		 FROM campaigns WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.BrandProfileID, &c.Name, &nichesJSON, &c.MinFollowers,
		&c.MaxFollowers, &platformsJSON, &c.MinEngagementRate, &c.Budget,
		&c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get campaign %d", id)
	}
	if err := unmarshalNullStrings(nichesJSON, &c.TargetNiches); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal target niches")
	}
	if err := unmarshalNullStrings(platformsJSON, &c.Platforms); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal platforms")
	}
	return &c, nil
}

func (s *SQLiteStore) AppendEvent(ctx context.Context, event *model.OutreachEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outreach_events
		 (id, creator_identity_id, discovered_creator_id, email_sent_to, template_type,
		  triggering_brand_id, triggering_campaign_id, triggering_action,
		  provider_message_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.CreatorIdentityID, event.DiscoveredCreatorID,
		event.EmailSentTo, string(event.TemplateType), event.TriggeringBrandID,
		event.TriggeringCampaignID, string(event.TriggeringAction),
		event.ProviderMessageID, string(event.Status), event.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: append outreach event")
}

func (s *SQLiteStore) HasSentTemplate(ctx context.Context, identityID int64, tmplType model.TemplateType, since time.Time) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM outreach_events
		   WHERE creator_identity_id = ? AND template_type = ?
		     AND status = 'sent' AND created_at > ?
		 )`,
		identityID, string(tmplType), since,
	).Scan(&exists)
	return exists, eris.Wrap(err, "sqlite: check sent template")
}

func (s *SQLiteStore) MarkContacted(ctx context.Context, identityID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE creator_identities SET status = 'contacted', updated_at = ?
		 WHERE id = ? AND status = 'discovered'`,
		time.Now().UTC(), identityID,
	)
	return eris.Wrapf(err, "sqlite: mark contacted %d", identityID)
}

func (s *SQLiteStore) ListOutreachEvents(ctx context.Context, identityID int64, limit int) ([]model.OutreachEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, creator_identity_id, discovered_creator_id, email_sent_to,
		        template_type, triggering_brand_id, triggering_campaign_id,
		        triggering_action, provider_message_id, status, created_at
		 FROM outreach_events WHERE creator_identity_id = ?
		 ORDER BY created_at DESC LIMIT ?`,
		identityID, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list outreach events")
	}
	defer rows.Close()

	var events []model.OutreachEvent
	for rows.Next() {
		var e model.OutreachEvent
		if err := rows.Scan(&e.ID, &e.CreatorIdentityID, &e.DiscoveredCreatorID,
			&e.EmailSentTo, &e.TemplateType, &e.TriggeringBrandID,
			&e.TriggeringCampaignID, &e.TriggeringAction, &e.ProviderMessageID,
			&e.Status, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan outreach event")
		}
		events = append(events, e)
	}
	return events, eris.Wrap(rows.Err(), "sqlite: list outreach events iterate")
}

func unmarshalNullStrings(src sql.NullString, dst *[]string) error {
	if !src.Valid || src.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(src.String), dst)
}
