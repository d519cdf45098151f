package main

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glowlink/creator-cli/internal/match"
	"github.com/glowlink/creator-cli/internal/model"
)

var (
	importFilePath string
	importFormat   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-load discovered creators from a platform export",
	Long: `Reads a JSON or CSV export of discovered creators, computes discovery
scores (brand readiness, rising star, audience quality) for each record,
and upserts them on (platform, platform_id).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		f, err := os.Open(importFilePath)
		if err != nil {
			return eris.Wrapf(err, "import: open %s", importFilePath)
		}
		defer f.Close()

		var creators []model.DiscoveredCreator
		switch importFormat {
		case "json":
			creators, err = parseCreatorsJSON(f)
		case "csv":
			creators, err = parseCreatorsCSV(f)
		default:
			return eris.Errorf("import: unknown format %q (json or csv)", importFormat)
		}
		if err != nil {
			return err
		}
		if len(creators) == 0 {
			zap.L().Warn("import: no creators in file", zap.String("file", importFilePath))
			return nil
		}

		for i := range creators {
			scores := match.ComputeDiscoveryScores(&creators[i])
			creators[i].BrandReadinessScore = &scores.BrandReadiness
			creators[i].RisingStarScore = &scores.RisingStar
			creators[i].AudienceQualityScore = &scores.AudienceQuality
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		n, err := st.UpsertDiscoveredCreators(ctx, creators)
		if err != nil {
			return eris.Wrap(err, "import: upsert")
		}

		zap.L().Info("import complete",
			zap.Int("parsed", len(creators)),
			zap.Int64("upserted", n),
			zap.String("file", importFilePath),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFilePath, "file", "", "path to export file (required)")
	importCmd.Flags().StringVar(&importFormat, "format", "json", "input format: json or csv")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

// parseCreatorsJSON decodes an array of discovered creators.
func parseCreatorsJSON(r io.Reader) ([]model.DiscoveredCreator, error) {
	var creators []model.DiscoveredCreator
	if err := json.NewDecoder(r).Decode(&creators); err != nil {
		return nil, eris.Wrap(err, "import: decode json")
	}
	return creators, nil
}

// parseCreatorsCSV decodes a header-first CSV export. Expected columns:
// platform, platform_id, display_name, description, follower_count,
// engagement_rate, niches (pipe-separated). Extra columns are ignored.
func parseCreatorsCSV(r io.Reader) ([]model.DiscoveredCreator, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrap(err, "import: read csv header")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"platform", "platform_id"} {
		if _, ok := col[required]; !ok {
			return nil, eris.Errorf("import: csv missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var creators []model.DiscoveredCreator
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "import: read csv line %d", line)
		}

		dc := model.DiscoveredCreator{
			Platform:    model.Platform(strings.ToLower(field(record, "platform"))),
			PlatformID:  field(record, "platform_id"),
			DisplayName: field(record, "display_name"),
			Description: field(record, "description"),
		}
		if v := field(record, "follower_count"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, eris.Wrapf(err, "import: bad follower_count on line %d", line)
			}
			dc.FollowerCount = n
		}
		if v := field(record, "engagement_rate"); v != "" {
			rate, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, eris.Wrapf(err, "import: bad engagement_rate on line %d", line)
			}
			dc.EngagementRate = &rate
		}
		if v := field(record, "niches"); v != "" {
			for _, n := range strings.Split(v, "|") {
				if n = strings.TrimSpace(n); n != "" {
					dc.Niches = append(dc.Niches, n)
				}
			}
		}
		creators = append(creators, dc)
	}
	return creators, nil
}
