// Package match computes compatibility scores between creators and
// brand/campaign targeting criteria. Scoring is pure: identical inputs
// produce identical outputs, no I/O, no side effects.
package match

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/glowlink/creator-cli/internal/config"
	"github.com/glowlink/creator-cli/internal/model"
)

// Creator is the normalized scoring input, built from either a discovered
// record or a claimed profile.
type Creator struct {
	ID             int64
	DisplayName    string
	Platform       model.Platform
	Niches         []string
	Followers      int64
	EngagementRate *float64
	Bio            string
}

// FromDiscovered normalizes a discovered creator for scoring.
func FromDiscovered(dc *model.DiscoveredCreator) Creator {
	return Creator{
		ID:             dc.ID,
		DisplayName:    dc.DisplayName,
		Platform:       dc.Platform,
		Niches:         dc.Niches,
		Followers:      dc.FollowerCount,
		EngagementRate: dc.EngagementRate,
		Bio:            dc.Description,
	}
}

// BrandScore is the result of scoring a creator against a brand profile.
type BrandScore struct {
	Score   float64  `json:"score"`
	Grade   string   `json:"grade"`
	Reasons []string `json:"reasons"`
}

// subScores holds the independently computed 0-100 components.
type subScores struct {
	niche      float64
	follower   float64
	engagement float64
	platform   float64
	keyword    float64

	nicheHits   []string
	keywordHits []string
}

// neutral is the component score used when a criterion is unspecified on
// either side, so missing data neither rewards nor punishes.
const neutral = 50

// numPrinter renders follower counts with thousands separators in reasons.
var numPrinter = message.NewPrinter(language.English)

// DefaultConfig returns the scoring weights and thresholds used when no
// configuration file overrides them. Mirrors the viper defaults.
func DefaultConfig() config.MatchConfig {
	return config.MatchConfig{
		NicheWeight:      0.30,
		FollowerWeight:   0.20,
		EngagementWeight: 0.20,
		PlatformWeight:   0.15,
		KeywordWeight:    0.15,
		PerfectThreshold: 85,
		StrongThreshold:  65,
		SignalThreshold:  70,
		RankWorkers:      8,
	}
}

// ScoreAgainstBrand computes a 0-100 compatibility score and letter grade
// for a creator against a brand's standing criteria.
func ScoreAgainstBrand(brand *model.BrandProfile, c Creator, cfg config.MatchConfig) BrandScore {
	sub := computeSubScores(
		brand.TargetNiches, brand.MinFollowers, brand.MaxFollowers,
		brand.PreferredPlatforms, brand.MinEngagementRate, brand.Description, c,
	)

	score := combine(sub, cfg)
	return BrandScore{
		Score:   score,
		Grade:   gradeFor(score),
		Reasons: reasonsFor(sub, brand.MinEngagementRate, brand.MinFollowers, brand.MaxFollowers, c, cfg),
	}
}

// computeSubScores derives each 0-100 component from normalized features.
func computeSubScores(niches []string, minFollowers, maxFollowers int64, platforms []string, minEngagement *float64, description string, c Creator) subScores {
	var sub subScores
	sub.niche, sub.nicheHits = scoreNicheOverlap(niches, c.Niches)
	sub.follower = scoreFollowerFit(c.Followers, minFollowers, maxFollowers)
	sub.engagement = scoreEngagement(c.EngagementRate, minEngagement)
	sub.platform = scorePlatformMatch(platforms, c.Platform)
	sub.keyword, sub.keywordHits = scoreKeywordOverlap(description, niches, c)
	return sub
}

// combine applies the configured weights and normalizes to 0-100.
func combine(sub subScores, cfg config.MatchConfig) float64 {
	weightSum := cfg.NicheWeight + cfg.FollowerWeight + cfg.EngagementWeight +
		cfg.PlatformWeight + cfg.KeywordWeight
	if weightSum <= 0 {
		return 0
	}

	total := sub.niche*cfg.NicheWeight +
		sub.follower*cfg.FollowerWeight +
		sub.engagement*cfg.EngagementWeight +
		sub.platform*cfg.PlatformWeight +
		sub.keyword*cfg.KeywordWeight

	return math.Round(total/weightSum*100) / 100
}

// scoreNicheOverlap returns coverage of the target niche set, plus the
// matched niches for explanation strings.
func scoreNicheOverlap(target, creator []string) (float64, []string) {
	if len(target) == 0 {
		return neutral, nil
	}
	if len(creator) == 0 {
		return 0, nil
	}

	creatorSet := make(map[string]bool, len(creator))
	for _, n := range creator {
		creatorSet[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var hits []string
	for _, n := range target {
		if creatorSet[strings.ToLower(strings.TrimSpace(n))] {
			hits = append(hits, strings.ToLower(strings.TrimSpace(n)))
		}
	}
	sort.Strings(hits)

	return float64(len(hits)) / float64(len(target)) * 100, hits
}

// scoreFollowerFit returns 100 inside the range with partial credit for
// being close, decaying proportionally outside.
func scoreFollowerFit(followers, minFollowers, maxFollowers int64) float64 {
	if followers <= 0 {
		return 0
	}
	if minFollowers <= 0 && maxFollowers <= 0 {
		return neutral
	}
	if maxFollowers <= 0 {
		if followers >= minFollowers {
			return 100
		}
		return float64(followers) / float64(minFollowers) * 100
	}
	if followers >= minFollowers && followers <= maxFollowers {
		return 100
	}
	if followers < minFollowers {
		return float64(followers) / float64(minFollowers) * 100
	}
	// Above max: gentle decay.
	return float64(maxFollowers) / float64(followers) * 100
}

// scoreEngagement compares the creator's rate to the requested floor.
func scoreEngagement(rate, minRate *float64) float64 {
	if minRate == nil || *minRate <= 0 {
		return neutral
	}
	if rate == nil {
		return neutral
	}
	if *rate >= *minRate {
		// Full marks at the floor, small bonus headroom capped at 100.
		return math.Min(100, 90+(*rate-*minRate)*2)
	}
	return *rate / *minRate * 90
}

// scorePlatformMatch checks membership in the preferred platform set.
func scorePlatformMatch(preferred []string, platform model.Platform) float64 {
	if len(preferred) == 0 {
		return neutral
	}
	for _, p := range preferred {
		if strings.EqualFold(p, string(platform)) {
			return 100
		}
	}
	return 0
}

// scoreKeywordOverlap measures free-text overlap between the brand or
// campaign description and the creator's bio and niches.
func scoreKeywordOverlap(description string, targetNiches []string, c Creator) (float64, []string) {
	keywords := tokenize(description)
	for _, n := range targetNiches {
		keywords = append(keywords, strings.ToLower(strings.TrimSpace(n)))
	}
	if len(keywords) == 0 {
		return neutral, nil
	}

	haystack := strings.ToLower(c.Bio + " " + strings.Join(c.Niches, " "))
	seen := map[string]bool{}
	var hits []string
	for _, kw := range keywords {
		if seen[kw] {
			continue
		}
		seen[kw] = true
		if strings.Contains(haystack, kw) {
			hits = append(hits, kw)
		}
	}
	sort.Strings(hits)

	score := math.Min(float64(len(hits))*25, 100)
	return score, hits
}

// tokenize splits a description into lowercase keywords worth matching.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	var out []string
	for _, f := range fields {
		if len(f) < 4 || stopWords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

var stopWords = map[string]bool{
	"with": true, "that": true, "this": true, "from": true, "your": true,
	"have": true, "will": true, "been": true, "they": true, "their": true,
	"about": true, "looking": true, "want": true, "need": true, "creators": true,
	"creator": true, "brand": true, "campaign": true, "content": true,
}

// gradeFor buckets a brand score into a letter grade.
func gradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 55:
		return "C"
	default:
		return "D"
	}
}

// reasonsFor surfaces every sub-score at or above the signal threshold as a
// human-readable explanation. These strings feed the brand UI verbatim.
func reasonsFor(sub subScores, minEngagement *float64, minFollowers, maxFollowers int64, c Creator, cfg config.MatchConfig) []string {
	var reasons []string

	if sub.niche >= cfg.SignalThreshold && len(sub.nicheHits) > 0 {
		reasons = append(reasons, "Niche match: "+strings.Join(sub.nicheHits, ", "))
	}
	if sub.follower >= cfg.SignalThreshold && maxFollowers > 0 {
		reasons = append(reasons, numPrinter.Sprintf(
			"Follower count %d fits the %d-%d range", c.Followers, minFollowers, maxFollowers))
	}
	if sub.engagement >= cfg.SignalThreshold && minEngagement != nil && c.EngagementRate != nil {
		reasons = append(reasons, numPrinter.Sprintf(
			"Engagement %.1f%% exceeds your %.0f%% minimum", *c.EngagementRate, *minEngagement))
	}
	if sub.platform >= cfg.SignalThreshold && sub.platform > neutral {
		reasons = append(reasons, "Active on "+string(c.Platform)+", a preferred platform")
	}
	if sub.keyword >= cfg.SignalThreshold && len(sub.keywordHits) > 0 {
		reasons = append(reasons, "Brief overlaps creator profile: "+strings.Join(sub.keywordHits, ", "))
	}

	return reasons
}
