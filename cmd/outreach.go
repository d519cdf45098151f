package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/glowlink/creator-cli/internal/model"
	"github.com/glowlink/creator-cli/internal/outreach"
)

var outreachCmd = &cobra.Command{
	Use:   "outreach",
	Short: "Trigger an outreach email for a brand action",
	Long: `Runs the outreach state machine for one brand action against a
discovered creator: resolves the canonical identity, renders the
template matching the action, sends the email via SES, and appends
an audit event.

A skipped send (creator already joined, no email, duplicate) is a
normal outcome and exits zero; the reason is printed.

Examples:
  # A brand unlocked a discovered creator's contact info
  outreach --discovered 42 --brand 3 --action unlock

  # A brand matched the creator to a campaign
  outreach --discovered 42 --brand 3 --action campaign_match \
    --campaign 7 --campaign-name "Summer Glow"

  # A brand sent a direct message
  outreach --discovered 42 --brand 3 --action message \
    --preview "Hey! We'd love to send you our new serum line..."`,
	RunE: runOutreach,
}

func init() {
	f := outreachCmd.Flags()
	f.Int64("discovered", 0, "discovered creator id")
	f.Int64("profile", 0, "claimed creator profile id, when the action targeted one")
	f.Int64("brand", 0, "triggering brand profile id (required)")
	f.String("action", "", "brand action: unlock, message, campaign_match or contacted (required)")
	f.Int64("campaign", 0, "triggering campaign id")
	f.String("campaign-name", "", "campaign name for the email body")
	f.String("preview", "", "message preview for the email body")

	_ = outreachCmd.MarkFlagRequired("brand")
	_ = outreachCmd.MarkFlagRequired("action")
	rootCmd.AddCommand(outreachCmd)
}

func runOutreach(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	orch, err := newOrchestrator(ctx, st)
	if err != nil {
		return err
	}

	req := outreach.TriggerRequest{}
	req.BrandProfileID, _ = cmd.Flags().GetInt64("brand")
	if v, _ := cmd.Flags().GetInt64("discovered"); v > 0 {
		req.DiscoveredCreatorID = &v
	}
	if v, _ := cmd.Flags().GetInt64("profile"); v > 0 {
		req.CreatorProfileID = &v
	}
	if v, _ := cmd.Flags().GetInt64("campaign"); v > 0 {
		req.CampaignID = &v
	}
	action, _ := cmd.Flags().GetString("action")
	req.Action = model.OutreachAction(action)
	req.CampaignName, _ = cmd.Flags().GetString("campaign-name")
	req.MessagePreview, _ = cmd.Flags().GetString("preview")

	result, err := orch.Trigger(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return eris.Wrap(err, "outreach: encode result")
	}
	if !result.Sent && result.NeedsManualOutreach {
		fmt.Fprintln(cmd.OutOrStdout(), "No contact email on file; flagged for manual outreach.")
	}
	return nil
}
