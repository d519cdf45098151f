package model

import "time"

// OutreachAction is the brand-side action that can trigger outreach.
type OutreachAction string

const (
	ActionUnlock        OutreachAction = "unlock"
	ActionMessage       OutreachAction = "message"
	ActionCampaignMatch OutreachAction = "campaign_match"
	ActionContacted     OutreachAction = "contacted"
)

// Valid reports whether the action is one of the four known actions.
func (a OutreachAction) Valid() bool {
	switch a {
	case ActionUnlock, ActionMessage, ActionCampaignMatch, ActionContacted:
		return true
	}
	return false
}

// TemplateType identifies the email template used for an outreach send.
type TemplateType string

const (
	TemplateInterestAlert  TemplateType = "interest_alert"
	TemplateDirectMessage  TemplateType = "direct_message"
	TemplateCampaignMatch  TemplateType = "campaign_match"
	TemplateActiveOutreach TemplateType = "active_outreach"
)

// EventStatus is the delivery outcome recorded on an outreach event.
type EventStatus string

const (
	EventSent   EventStatus = "sent"
	EventFailed EventStatus = "failed"
)

// OutreachEvent is one append-only audit row per outreach attempt. It is
// written regardless of delivery success and never updated afterwards
// except by a delivery-provider callback.
type OutreachEvent struct {
	ID                   string         `json:"id"`
	CreatorIdentityID    int64          `json:"creator_identity_id"`
	DiscoveredCreatorID  *int64         `json:"discovered_creator_id,omitempty"`
	EmailSentTo          string         `json:"email_sent_to"`
	TemplateType         TemplateType   `json:"template_type"`
	TriggeringBrandID    int64          `json:"triggering_brand_id"`
	TriggeringCampaignID *int64         `json:"triggering_campaign_id,omitempty"`
	TriggeringAction     OutreachAction `json:"triggering_action"`
	ProviderMessageID    string         `json:"provider_message_id,omitempty"`
	Status               EventStatus    `json:"status"`
	CreatedAt            time.Time      `json:"created_at"`
}
