package contact

import (
	"regexp"

	"github.com/glowlink/creator-cli/internal/model"
)

// emailPattern is one extraction rule. Patterns run in order; the first
// capture group (or the whole match when there is none) is the address.
// New rules are additive: append to the table, never branch inline.
type emailPattern struct {
	name string
	re   *regexp.Regexp
	// assemble rebuilds an address from capture groups for obfuscated
	// forms; nil means take the capture/match verbatim.
	assemble func(groups []string) string
}

var emailPatterns = []emailPattern{
	{
		name: "bare",
		re:   regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
	},
	{
		name: "labeled",
		re:   regexp.MustCompile(`(?i)(?:business|contact|inquir(?:y|ies)|collabs?|partnerships?|email)[^\n@]{0,24}?[:\-]\s*([a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,})`),
	},
	{
		name: "obfuscated",
		re:   regexp.MustCompile(`(?i)([a-z0-9._%+\-]+)\s*[\[({]\s*at\s*[\])}]\s*([a-z0-9\-]+)\s*[\[({]\s*dot\s*[\])}]\s*([a-z]{2,})`),
		assemble: func(groups []string) string {
			return groups[1] + "@" + groups[2] + "." + groups[3]
		},
	},
}

// confidenceRule maps context keywords near a match to a confidence score.
// Rules run in order; the first hit wins. Confidence is a property of the
// surrounding text, not of which pattern matched.
type confidenceRule struct {
	keywords   []string
	confidence float64
}

var confidenceRules = []confidenceRule{
	{keywords: []string{"business", "inquir"}, confidence: 0.9},
	{keywords: []string{"contact", "email"}, confidence: 0.8},
	{keywords: []string{"collab", "partner"}, confidence: 0.7},
}

// baseConfidence applies when no context keyword is found.
const baseConfidence = 0.5

// contextWindow is how far back from a match context keywords are searched.
const contextWindow = 48

// socialPatterns holds one ordered regex family per platform. The handle is
// capture group 1. The first match longer than one character that is not a
// bare domain wins.
var socialPatterns = map[model.Platform][]*regexp.Regexp{
	model.PlatformYouTube: {
		regexp.MustCompile(`(?i)youtube\.com/(?:@|c/|channel/|user/)([\w.\-]+)`),
		regexp.MustCompile(`(?i)\byt\s*[:\-]\s*@?([\w.\-]+)`),
	},
	model.PlatformInstagram: {
		regexp.MustCompile(`(?i)instagram\.com/([\w.]+)`),
		regexp.MustCompile(`(?i)\b(?:insta(?:gram)?|ig)\s*[:\-]\s*@?([\w.]+)`),
	},
	model.PlatformTikTok: {
		regexp.MustCompile(`(?i)tiktok\.com/@([\w.]+)`),
		regexp.MustCompile(`(?i)\btiktok\s*[:\-]\s*@?([\w.]+)`),
	},
	model.PlatformTwitter: {
		regexp.MustCompile(`(?i)(?:twitter|x)\.com/([\w]+)`),
		regexp.MustCompile(`(?i)\btwitter\s*[:\-]\s*@?([\w]+)`),
	},
	model.PlatformTwitch: {
		regexp.MustCompile(`(?i)twitch\.tv/([\w]+)`),
	},
}

// socialPlatformOrder keeps extraction deterministic across runs.
var socialPlatformOrder = []model.Platform{
	model.PlatformYouTube,
	model.PlatformInstagram,
	model.PlatformTikTok,
	model.PlatformTwitter,
	model.PlatformTwitch,
}

// hubDomains is the fixed list of known link-aggregator hosts.
var hubDomains = []string{
	"linktr.ee",
	"beacons.ai",
	"linkin.bio",
	"stan.store",
	"komi.io",
	"allmylinks.com",
	"campsite.bio",
	"hoo.be",
	"lnk.bio",
	"solo.to",
	"snipfeed.co",
}

var hubPattern = buildHubPattern()

func buildHubPattern() *regexp.Regexp {
	alt := ""
	for i, d := range hubDomains {
		if i > 0 {
			alt += "|"
		}
		alt += regexp.QuoteMeta(d)
	}
	return regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:` + alt + `)/[\w.\-/]+`)
}
