package outreach

import (
	"context"
	"time"

	"github.com/glowlink/creator-cli/internal/model"
)

// EventStore defines the persistence operations the orchestrator needs.
type EventStore interface {
	// GetBrandProfile fetches a brand profile by id; nil when missing.
	GetBrandProfile(ctx context.Context, id int64) (*model.BrandProfile, error)

	// AppendEvent writes one outreach event. The log is append-only.
	AppendEvent(ctx context.Context, event *model.OutreachEvent) error

	// HasSentTemplate reports whether a sent event of the given template
	// type already exists for the identity. A zero since means any time.
	HasSentTemplate(ctx context.Context, identityID int64, tmplType model.TemplateType, since time.Time) (bool, error)

	// MarkContacted advances an identity from discovered to contacted.
	// Identities already contacted or joined are left untouched.
	MarkContacted(ctx context.Context, identityID int64) error
}
