// Package contact parses free-text creator bios into candidate contact
// details: email addresses scored by confidence, per-platform social
// handles, and link-hub URLs.
package contact

import (
	"regexp"
	"sort"
	"strings"

	"github.com/glowlink/creator-cli/internal/model"
)

// Result is the outcome of one extraction pass. Emails are sorted by
// confidence descending; callers treat index 0 as the primary candidate.
type Result struct {
	Emails      []model.ContactCandidate
	SocialLinks map[model.Platform]string
	HubURL      string
}

// Empty reports whether nothing was extracted.
func (r Result) Empty() bool {
	return len(r.Emails) == 0 && len(r.SocialLinks) == 0 && r.HubURL == ""
}

// ExtractContacts parses text for contact details. It never fails: malformed
// or empty input yields an empty result. No I/O happens here.
func ExtractContacts(text, sourceLabel string) Result {
	result := Result{SocialLinks: map[model.Platform]string{}}
	if strings.TrimSpace(text) == "" {
		return result
	}

	result.Emails = extractEmails(text, sourceLabel)
	for _, platform := range socialPlatformOrder {
		if handle := extractHandle(text, socialPatterns[platform]); handle != "" {
			result.SocialLinks[platform] = handle
		}
	}
	if loc := hubPattern.FindString(text); loc != "" {
		result.HubURL = loc
	}

	return result
}

// extractEmails runs the pattern table in priority order, deduplicates
// case-insensitively and sorts by confidence descending.
func extractEmails(text, sourceLabel string) []model.ContactCandidate {
	seen := map[string]bool{}
	var candidates []model.ContactCandidate

	for _, p := range emailPatterns {
		prevEnd := 0
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			email := assembleEmail(text, p, m)
			floor := prevEnd
			prevEnd = m[1]
			key := strings.ToLower(email)
			if seen[key] || isPlaceholder(key) {
				continue
			}
			seen[key] = true
			candidates = append(candidates, model.ContactCandidate{
				Email:      email,
				Confidence: confidenceFor(text, m[0], floor),
				Source:     sourceLabel,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates
}

// assembleEmail pulls the address out of a match, rebuilding obfuscated forms.
func assembleEmail(text string, p emailPattern, m []int) string {
	if p.assemble != nil {
		groups := make([]string, 0, len(m)/2)
		for i := 0; i < len(m); i += 2 {
			if m[i] < 0 {
				groups = append(groups, "")
				continue
			}
			groups = append(groups, text[m[i]:m[i+1]])
		}
		return strings.ToLower(p.assemble(groups))
	}
	// Prefer capture group 1 when present.
	if len(m) >= 4 && m[2] >= 0 {
		return text[m[2]:m[3]]
	}
	return text[m[0]:m[1]]
}

// confidenceFor applies the rule table to the text preceding the match.
// The window never crosses a line break or an earlier match, so one labeled
// address does not lend its context to the next.
func confidenceFor(text string, matchStart, floor int) float64 {
	start := matchStart - contextWindow
	if start < floor {
		start = floor
	}
	if start < 0 {
		start = 0
	}
	window := strings.ToLower(text[start:matchStart])
	if nl := strings.LastIndexByte(window, '\n'); nl >= 0 {
		window = window[nl+1:]
	}

	for _, rule := range confidenceRules {
		for _, kw := range rule.keywords {
			if strings.Contains(window, kw) {
				return rule.confidence
			}
		}
	}
	return baseConfidence
}

// isPlaceholder rejects obviously fake addresses. The key is lowercased.
func isPlaceholder(key string) bool {
	if strings.Contains(key, "example") {
		return true
	}
	at := strings.Index(key, "@")
	if at <= 0 {
		return true
	}
	local := key[:at]
	switch local {
	case "email", "your", "yourname", "name", "someone":
		return true
	}
	return false
}

// extractHandle returns the first plausible handle from a pattern family.
func extractHandle(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			handle := strings.TrimSuffix(m[1], ".")
			if len(handle) <= 1 {
				continue
			}
			if isBareDomain(handle) {
				continue
			}
			return handle
		}
	}
	return ""
}

// isBareDomain filters matches that are domains rather than handles.
func isBareDomain(handle string) bool {
	lower := strings.ToLower(handle)
	if lower == "www" {
		return true
	}
	for _, tld := range []string{".com", ".net", ".org", ".io", ".tv", ".co"} {
		if strings.HasSuffix(lower, tld) {
			return true
		}
	}
	return false
}
