package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glowlink/creator-cli/internal/match"
	"github.com/glowlink/creator-cli/internal/model"
	"github.com/glowlink/creator-cli/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score discovered creators against a brand or campaign",
	Long: `Score the discovered creator corpus against a brand profile's standing
criteria or a campaign's targeting criteria.

Brand mode produces a 0-100 compatibility score and letter grade per
creator. Campaign mode applies the campaign follower gate, buckets the
survivors into perfect/strong/potential tiers, and reports near-miss
creators with "how close" advice.

Examples:
  # Score every beauty creator on Instagram against brand 3
  score --brand 3 --platform instagram --niche beauty

  # Rank creators for campaign 7, export the tiers as JSON
  score --campaign 7 --format json --output matches.json

  # Top 50 by brand fit as CSV
  score --brand 3 --limit 50 --format csv`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.Int64("brand", 0, "brand profile id to score against")
	f.Int64("campaign", 0, "campaign id to rank for")
	f.String("platform", "", "restrict corpus to one platform")
	f.String("niche", "", "restrict corpus to creators tagged with a niche")
	f.Int64("min-followers", 0, "restrict corpus to creators at or above a follower floor")
	f.Int("limit", 0, "maximum creators to load (0=no limit)")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table, csv or json")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	brandID, _ := cmd.Flags().GetInt64("brand")
	campaignID, _ := cmd.Flags().GetInt64("campaign")
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	if (brandID > 0) == (campaignID > 0) {
		return eris.New("score: exactly one of --brand or --campaign is required")
	}
	if format != "table" && format != "csv" && format != "json" {
		return eris.Errorf("score: --format must be table, csv or json (got %q)", format)
	}

	log := zap.L().With(zap.String("command", "score"))

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	filter := store.CreatorFilter{}
	platform, _ := cmd.Flags().GetString("platform")
	filter.Platform = model.Platform(platform)
	filter.Niche, _ = cmd.Flags().GetString("niche")
	filter.MinFollowers, _ = cmd.Flags().GetInt64("min-followers")
	filter.Limit, _ = cmd.Flags().GetInt("limit")

	discovered, err := st.ListDiscoveredCreators(ctx, filter)
	if err != nil {
		return eris.Wrap(err, "score: load creators")
	}
	if len(discovered) == 0 {
		fmt.Println("No creators match the filters. Run 'import' first.")
		return nil
	}

	creators := make([]match.Creator, len(discovered))
	for i := range discovered {
		creators[i] = match.FromDiscovered(&discovered[i])
	}

	out := os.Stdout
	if outputPath != "" {
		out, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "score: create output file %s", outputPath)
		}
		defer out.Close() //nolint:errcheck
	}

	if brandID > 0 {
		brand, err := st.GetBrandProfile(ctx, brandID)
		if err != nil {
			return eris.Wrap(err, "score: load brand")
		}
		if brand == nil {
			return eris.Errorf("score: brand profile %d not found", brandID)
		}

		log.Info("scoring corpus against brand",
			zap.Int64("brand_id", brandID),
			zap.Int("creators", len(creators)),
		)

		scored := make([]brandScoreRow, len(creators))
		for i, c := range creators {
			scored[i] = brandScoreRow{Creator: c, Result: match.ScoreAgainstBrand(brand, c, cfg.Match)}
		}
		sortBrandRows(scored)

		return writeBrandScores(out, scored, format)
	}

	campaign, err := st.GetCampaign(ctx, campaignID)
	if err != nil {
		return eris.Wrap(err, "score: load campaign")
	}
	if campaign == nil {
		return eris.Errorf("score: campaign %d not found", campaignID)
	}

	log.Info("ranking corpus for campaign",
		zap.Int64("campaign_id", campaignID),
		zap.Int("creators", len(creators)),
	)

	list, err := match.RankForCampaign(ctx, campaign, creators, cfg.Match)
	if err != nil {
		return eris.Wrap(err, "score: rank for campaign")
	}

	if err := writeMatchList(out, list, format); err != nil {
		return err
	}
	if out == os.Stdout && format == "table" {
		printMatchSummary(list)
	}
	return nil
}

// brandScoreRow pairs a creator with its brand score for output.
type brandScoreRow struct {
	Creator match.Creator    `json:"creator"`
	Result  match.BrandScore `json:"result"`
}

func sortBrandRows(rows []brandScoreRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Result.Score != rows[j].Result.Score {
			return rows[i].Result.Score > rows[j].Result.Score
		}
		return rows[i].Creator.ID < rows[j].Creator.ID
	})
}

func writeBrandScores(w *os.File, rows []brandScoreRow, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(rows), "score: encode json")

	case "csv":
		cw := csv.NewWriter(w)
		defer cw.Flush()
		if err := cw.Write([]string{"id", "display_name", "platform", "followers", "score", "grade"}); err != nil {
			return eris.Wrap(err, "score: write CSV header")
		}
		for _, r := range rows {
			record := []string{
				fmt.Sprintf("%d", r.Creator.ID),
				r.Creator.DisplayName,
				string(r.Creator.Platform),
				fmt.Sprintf("%d", r.Creator.Followers),
				fmt.Sprintf("%.1f", r.Result.Score),
				r.Result.Grade,
			}
			if err := cw.Write(record); err != nil {
				return eris.Wrap(err, "score: write CSV row")
			}
		}
		return nil

	default:
		header := fmt.Sprintf("%-8s %-30s %-10s %12s %7s %-3s\n",
			"ID", "Creator", "Platform", "Followers", "Score", "Grd")
		if _, err := fmt.Fprint(w, header); err != nil {
			return eris.Wrap(err, "score: write table header")
		}
		if _, err := fmt.Fprintln(w, strings.Repeat("-", 76)); err != nil {
			return eris.Wrap(err, "score: write table separator")
		}
		for _, r := range rows {
			name := r.Creator.DisplayName
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			line := fmt.Sprintf("%-8d %-30s %-10s %12d %7.1f %-3s\n",
				r.Creator.ID, name, r.Creator.Platform, r.Creator.Followers,
				r.Result.Score, r.Result.Grade)
			if _, err := fmt.Fprint(w, line); err != nil {
				return eris.Wrap(err, "score: write table row")
			}
		}
		return nil
	}
}

func writeMatchList(w *os.File, list *match.MatchList, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(list), "score: encode json")

	case "csv":
		cw := csv.NewWriter(w)
		defer cw.Flush()
		if err := cw.Write([]string{"tier", "id", "display_name", "platform", "followers", "score"}); err != nil {
			return eris.Wrap(err, "score: write CSV header")
		}
		writeTier := func(tier string, bucket []match.RankedMatch) error {
			for _, m := range bucket {
				record := []string{
					tier,
					fmt.Sprintf("%d", m.Creator.ID),
					m.Creator.DisplayName,
					string(m.Creator.Platform),
					fmt.Sprintf("%d", m.Creator.Followers),
					fmt.Sprintf("%.1f", m.Result.Score),
				}
				if err := cw.Write(record); err != nil {
					return eris.Wrap(err, "score: write CSV row")
				}
			}
			return nil
		}
		for _, tier := range []struct {
			name   string
			bucket []match.RankedMatch
		}{
			{"perfect", list.Perfect},
			{"strong", list.Strong},
			{"potential", list.Potential},
		} {
			if err := writeTier(tier.name, tier.bucket); err != nil {
				return err
			}
		}
		for _, m := range list.Missed {
			record := []string{
				"missed",
				fmt.Sprintf("%d", m.Creator.ID),
				m.Creator.DisplayName,
				string(m.Creator.Platform),
				fmt.Sprintf("%d", m.Creator.Followers),
				fmt.Sprintf("%.1f", m.Score),
			}
			if err := cw.Write(record); err != nil {
				return eris.Wrap(err, "score: write CSV row")
			}
		}
		return nil

	default:
		printTier := func(label string, bucket []match.RankedMatch) {
			if len(bucket) == 0 {
				return
			}
			fmt.Fprintf(w, "\n%s (%d)\n", label, len(bucket))
			fmt.Fprintln(w, strings.Repeat("-", 70))
			for _, m := range bucket {
				fmt.Fprintf(w, "%-8d %-30s %12d %7.1f\n",
					m.Creator.ID, m.Creator.DisplayName, m.Creator.Followers, m.Result.Score)
				for _, h := range m.Result.Highlights {
					fmt.Fprintf(w, "         + %s\n", h)
				}
				for _, miss := range m.Result.Misses {
					fmt.Fprintf(w, "         - %s\n", miss)
				}
			}
		}
		printTier("PERFECT MATCHES", list.Perfect)
		printTier("STRONG MATCHES", list.Strong)
		printTier("POTENTIAL MATCHES", list.Potential)
		if len(list.Missed) > 0 {
			fmt.Fprintf(w, "\nMISSED OPPORTUNITIES (%d)\n", len(list.Missed))
			fmt.Fprintln(w, strings.Repeat("-", 70))
			for _, m := range list.Missed {
				fmt.Fprintf(w, "%-8d %-30s %12d %7.1f  %s\n",
					m.Creator.ID, m.Creator.DisplayName, m.Creator.Followers, m.Score, m.Advice)
			}
		}
		return nil
	}
}

func printMatchSummary(list *match.MatchList) {
	fmt.Printf("\n--- Summary ---\n")
	fmt.Printf("Perfect:   %d\n", len(list.Perfect))
	fmt.Printf("Strong:    %d\n", len(list.Strong))
	fmt.Printf("Potential: %d\n", len(list.Potential))
	fmt.Printf("Missed:    %d\n", len(list.Missed))
}
