package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glowlink/creator-cli/internal/identity"
)

var resolveID int64

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a discovered creator into a canonical identity",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		dc, err := st.GetDiscoveredCreator(ctx, resolveID)
		if err != nil {
			return err
		}
		if dc == nil {
			return eris.Errorf("resolve: discovered creator %d not found", resolveID)
		}

		res, err := identity.NewResolver(st).ResolveOrCreate(ctx, dc)
		if err != nil {
			return err
		}

		zap.L().Info("resolved",
			zap.Int64("discovered_creator_id", resolveID),
			zap.Int64("identity_id", res.Identity.ID),
			zap.Bool("created", res.Created),
			zap.Bool("already_joined", res.AlreadyJoined),
		)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(res.Identity), "resolve: encode identity")
	},
}

func init() {
	resolveCmd.Flags().Int64Var(&resolveID, "id", 0, "discovered creator id (required)")
	_ = resolveCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(resolveCmd)
}
