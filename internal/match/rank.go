package match

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/glowlink/creator-cli/internal/config"
	"github.com/glowlink/creator-cli/internal/model"
)

// RankedMatch pairs a creator with its campaign score.
type RankedMatch struct {
	Creator Creator       `json:"creator"`
	Result  CampaignScore `json:"result"`
}

// MissedOpportunity is a creator excluded by the follower gate, kept for
// "how close are you" advice rather than ranking.
type MissedOpportunity struct {
	Creator Creator      `json:"creator"`
	Score   float64      `json:"score"`
	Gap     *FollowerGap `json:"gap"`
	Advice  string       `json:"advice"`
}

// MatchList is the ranked output for one campaign over a creator corpus.
type MatchList struct {
	Perfect   []RankedMatch       `json:"perfect"`
	Strong    []RankedMatch       `json:"strong"`
	Potential []RankedMatch       `json:"potential"`
	Missed    []MissedOpportunity `json:"missed"`
}

// RankForCampaign scores every creator against the campaign, sharded across
// workers. Scoring is side-effect-free, so shards share no mutable state;
// results are merged by sort for a deterministic order.
func RankForCampaign(ctx context.Context, campaign *model.Campaign, creators []Creator, cfg config.MatchConfig) (*MatchList, error) {
	workers := cfg.RankWorkers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(creators) {
		workers = len(creators)
	}

	scored := make([]CampaignScore, len(creators))

	if workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		var next int
		var mu sync.Mutex
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				for {
					if err := gctx.Err(); err != nil {
						return err
					}
					mu.Lock()
					i := next
					next++
					mu.Unlock()
					if i >= len(creators) {
						return nil
					}
					scored[i] = ScoreAgainstCampaign(campaign, creators[i], cfg)
				}
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, c := range creators {
			scored[i] = ScoreAgainstCampaign(campaign, c, cfg)
		}
	}

	list := &MatchList{}
	for i, result := range scored {
		if !result.GatePassed {
			list.Missed = append(list.Missed, MissedOpportunity{
				Creator: creators[i],
				Score:   result.Score,
				Gap:     result.Gap,
				Advice:  gapAdvice(result.Gap),
			})
			continue
		}
		ranked := RankedMatch{Creator: creators[i], Result: result}
		switch result.Tier {
		case TierPerfect:
			list.Perfect = append(list.Perfect, ranked)
		case TierStrong:
			list.Strong = append(list.Strong, ranked)
		default:
			list.Potential = append(list.Potential, ranked)
		}
	}

	for _, bucket := range [][]RankedMatch{list.Perfect, list.Strong, list.Potential} {
		sortRanked(bucket)
	}
	sort.SliceStable(list.Missed, func(i, j int) bool {
		return list.Missed[i].Score > list.Missed[j].Score
	})

	return list, nil
}

// sortRanked orders a bucket by score descending, then id for stability.
func sortRanked(bucket []RankedMatch) {
	sort.SliceStable(bucket, func(i, j int) bool {
		if bucket[i].Result.Score != bucket[j].Result.Score {
			return bucket[i].Result.Score > bucket[j].Result.Score
		}
		return bucket[i].Creator.ID < bucket[j].Creator.ID
	})
}
