package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glowlink/creator-cli/internal/contact"
	"github.com/glowlink/creator-cli/internal/identity"
	"github.com/glowlink/creator-cli/internal/model"
)

var enrichLimit int

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fetch link-hub pages for identities missing a contact email",
	Long: `Finds creator identities that have a link-hub URL (linktree and friends)
but no contact email, fetches each hub page, and merges any extracted
emails and social handles back into the identity.

Fetch failures are logged and skipped; the run continues.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := zap.L().With(zap.String("command", "enrich"))

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		identities, err := st.ListIdentitiesMissingEmail(ctx, enrichLimit)
		if err != nil {
			return eris.Wrap(err, "enrich: list candidates")
		}
		if len(identities) == 0 {
			log.Info("no identities need enrichment")
			return nil
		}

		fetcher := contact.NewHubFetcher(
			time.Duration(cfg.Extract.HubTimeoutSecs)*time.Second,
			cfg.Extract.HubMaxBodyBytes,
			cfg.Extract.UserAgent,
		)

		var updated, linked int
		for i := range identities {
			if err := ctx.Err(); err != nil {
				return err
			}
			ident := &identities[i]

			parsed := fetcher.FetchHubLinks(ctx, ident.LinkHubURL)
			if parsed.Empty() {
				continue
			}

			if identity.MergeContacts(ident, parsed, model.MatchHubEnrichment) {
				if err := st.UpdateIdentityContact(ctx, ident); err != nil {
					log.Warn("enrich: update contact failed",
						zap.Int64("identity_id", ident.ID),
						zap.Error(err),
					)
					continue
				}
				updated++
			}

			for platform, handle := range parsed.SocialLinks {
				acct := &model.PlatformAccount{
					CreatorIdentityID: ident.ID,
					Platform:          platform,
					PlatformID:        handle,
					Handle:            handle,
					MatchMethod:       model.MatchHubEnrichment,
				}
				if err := st.UpsertPlatformAccount(ctx, acct); err != nil {
					log.Warn("enrich: link platform account failed",
						zap.Int64("identity_id", ident.ID),
						zap.String("platform", string(platform)),
						zap.Error(err),
					)
					continue
				}
				linked++
			}
		}

		log.Info("enrichment complete",
			zap.Int("candidates", len(identities)),
			zap.Int("contacts_updated", updated),
			zap.Int("accounts_linked", linked),
		)
		return nil
	},
}

func init() {
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 100, "maximum identities to enrich")
	rootCmd.AddCommand(enrichCmd)
}
