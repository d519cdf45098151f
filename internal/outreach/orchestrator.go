package outreach

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/glowlink/creator-cli/internal/config"
	"github.com/glowlink/creator-cli/internal/identity"
	"github.com/glowlink/creator-cli/internal/model"
)

// Outcome reason codes. These are stable API values, not display strings.
const (
	ReasonCreatorJoined       = "creator_joined"
	ReasonNoDiscoveredCreator = "no_discovered_creator"
	ReasonNotFound            = "not_found"
	ReasonNoEmail             = "no_email"
	ReasonDuplicateOutreach   = "duplicate_outreach"
	ReasonDispatchFailed      = "dispatch_failed"
)

// TriggerRequest describes one brand action that may warrant outreach.
type TriggerRequest struct {
	DiscoveredCreatorID *int64               `json:"discovered_creator_id,omitempty"`
	CreatorProfileID    *int64               `json:"creator_profile_id,omitempty"`
	BrandProfileID      int64                `json:"brand_profile_id"`
	Action              model.OutreachAction `json:"action"`
	CampaignID          *int64               `json:"campaign_id,omitempty"`
	CampaignName        string               `json:"campaign_name,omitempty"`
	MessagePreview      string               `json:"message_preview,omitempty"`
}

// Result is the outcome of a trigger. Sent=false with a reason is a
// normal outcome, not an error.
type Result struct {
	Sent                bool   `json:"sent"`
	Reason              string `json:"reason,omitempty"`
	EmailID             string `json:"email_id,omitempty"`
	NeedsManualOutreach bool   `json:"needs_manual_outreach,omitempty"`
}

// Orchestrator runs the outreach state machine for brand actions.
type Orchestrator struct {
	events     EventStore
	identities identity.Store
	resolver   *identity.Resolver
	templates  *TemplateSet
	mailer     Mailer
	cfg        config.OutreachConfig
	signupURL  string
}

// NewOrchestrator wires the outreach pipeline together.
func NewOrchestrator(events EventStore, identities identity.Store, templates *TemplateSet, mailer Mailer, cfg config.OutreachConfig, signupURL string) *Orchestrator {
	return &Orchestrator{
		events:     events,
		identities: identities,
		resolver:   identity.NewResolver(identities),
		templates:  templates,
		mailer:     mailer,
		cfg:        cfg,
		signupURL:  signupURL,
	}
}

// Trigger evaluates one brand action and sends outreach when warranted.
//
// Precondition failures (joined creator, no email, duplicate) come back as
// Sent=false with a reason code. Errors are reserved for infrastructure
// failures: store errors, template errors, a failed event append. A failed
// email dispatch is NOT an error; it is recorded as a failed event.
func (o *Orchestrator) Trigger(ctx context.Context, req TriggerRequest) (*Result, error) {
	if !req.Action.Valid() {
		return nil, eris.Errorf("outreach: unknown action %q", req.Action)
	}

	// A claimed profile linked to a real user never gets automated email.
	if req.CreatorProfileID != nil {
		hasUser, err := o.identities.CreatorProfileHasUser(ctx, *req.CreatorProfileID)
		if err != nil {
			return nil, eris.Wrapf(err, "outreach: check profile %d", *req.CreatorProfileID)
		}
		if hasUser {
			return &Result{Reason: ReasonCreatorJoined}, nil
		}
	}

	if req.DiscoveredCreatorID == nil {
		return &Result{Reason: ReasonNoDiscoveredCreator}, nil
	}

	dc, err := o.identities.GetDiscoveredCreator(ctx, *req.DiscoveredCreatorID)
	if err != nil {
		return nil, eris.Wrapf(err, "outreach: get discovered creator %d", *req.DiscoveredCreatorID)
	}
	if dc == nil {
		return &Result{Reason: ReasonNotFound}, nil
	}

	resolution, err := o.resolver.ResolveOrCreate(ctx, dc)
	if err != nil {
		return nil, eris.Wrap(err, "outreach: resolve identity")
	}
	ident := resolution.Identity
	if resolution.AlreadyJoined {
		return &Result{Reason: ReasonCreatorJoined}, nil
	}

	if !ident.HasContactEmail() {
		zap.L().Info("outreach: no contact email, flagging for manual outreach",
			zap.Int64("identity_id", ident.ID),
			zap.String("action", string(req.Action)),
		)
		return &Result{Reason: ReasonNoEmail, NeedsManualOutreach: true}, nil
	}

	tmplType, _ := TemplateFor(req.Action)

	if o.cfg.DedupeSameTemplate {
		since := time.Time{}
		if o.cfg.DedupeWindowHours > 0 {
			since = time.Now().Add(-time.Duration(o.cfg.DedupeWindowHours) * time.Hour)
		}
		dup, err := o.events.HasSentTemplate(ctx, ident.ID, tmplType, since)
		if err != nil {
			return nil, eris.Wrap(err, "outreach: dedupe check")
		}
		if dup {
			return &Result{Reason: ReasonDuplicateOutreach}, nil
		}
	}

	brand, err := o.events.GetBrandProfile(ctx, req.BrandProfileID)
	if err != nil {
		return nil, eris.Wrapf(err, "outreach: get brand %d", req.BrandProfileID)
	}
	brandName := "A brand"
	if brand != nil {
		brandName = brand.Name
	}

	rendered, err := o.templates.Render(tmplType, map[string]any{
		"creator_name":    ident.DisplayName,
		"brand_name":      brandName,
		"campaign_name":   req.CampaignName,
		"message_preview": req.MessagePreview,
		"follower_count":  ident.TotalFollowers,
		"platform":        string(ident.PrimaryPlatform),
		"signup_url":      o.signupURL,
	})
	if err != nil {
		return nil, err
	}

	event := &model.OutreachEvent{
		ID:                   uuid.NewString(),
		CreatorIdentityID:    ident.ID,
		DiscoveredCreatorID:  req.DiscoveredCreatorID,
		EmailSentTo:          *ident.ContactEmail,
		TemplateType:         tmplType,
		TriggeringBrandID:    req.BrandProfileID,
		TriggeringCampaignID: req.CampaignID,
		TriggeringAction:     req.Action,
		Status:               model.EventSent,
		CreatedAt:            time.Now().UTC(),
	}

	messageID, sendErr := o.mailer.Send(ctx, Email{
		To:      *ident.ContactEmail,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
	})
	if sendErr != nil {
		event.Status = model.EventFailed
	}
	event.ProviderMessageID = messageID

	// The event is written regardless of delivery outcome so the audit
	// trail is never silently lost.
	if err := o.events.AppendEvent(ctx, event); err != nil {
		return nil, eris.Wrap(err, "outreach: append event")
	}

	if sendErr != nil {
		zap.L().Warn("outreach: dispatch failed",
			zap.Int64("identity_id", ident.ID),
			zap.String("template", string(tmplType)),
			zap.Error(sendErr),
		)
		return &Result{Reason: ReasonDispatchFailed}, nil
	}

	if err := o.events.MarkContacted(ctx, ident.ID); err != nil {
		zap.L().Warn("outreach: mark contacted failed",
			zap.Int64("identity_id", ident.ID),
			zap.Error(err),
		)
	}

	zap.L().Info("outreach: sent",
		zap.Int64("identity_id", ident.ID),
		zap.String("template", string(tmplType)),
		zap.String("urgency", string(rendered.Urgency)),
		zap.String("event_id", event.ID),
	)

	return &Result{Sent: true, EmailID: event.ID}, nil
}
