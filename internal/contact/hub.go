package contact

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// HubFetcher fetches link-hub pages (linktree and friends) and re-runs
// extraction over their content. Failures degrade to an empty result;
// they never propagate to the caller.
type HubFetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// NewHubFetcher builds a fetcher with an SSRF-guarded client. Private,
// loopback and metadata addresses are blocked at the dialer level.
func NewHubFetcher(timeout time.Duration, maxBody int64, userAgent string) *HubFetcher {
	cfg := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()

	return &HubFetcher{
		client:    safeurl.Client(cfg).Client,
		userAgent: userAgent,
		maxBody:   maxBody,
	}
}

// FetchHubLinks downloads a hub page and extracts contacts from its link
// targets and visible text. Network errors and non-2xx responses yield an
// empty result.
func (f *HubFetcher) FetchHubLinks(ctx context.Context, pageURL string) Result {
	log := zap.L().With(zap.String("hub_url", pageURL))

	if !strings.HasPrefix(pageURL, "http://") && !strings.HasPrefix(pageURL, "https://") {
		pageURL = "https://" + pageURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		log.Debug("hub: build request failed", zap.Error(err))
		return ExtractContacts("", "hub_page")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		log.Debug("hub: fetch failed", zap.Error(err))
		return ExtractContacts("", "hub_page")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug("hub: non-2xx response", zap.Int("status", resp.StatusCode))
		return ExtractContacts("", "hub_page")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		log.Debug("hub: read body failed", zap.Error(err))
		return ExtractContacts("", "hub_page")
	}

	text := flattenHTML(string(body))
	result := ExtractContacts(text, "hub_page")
	log.Debug("hub: page parsed",
		zap.Int("emails", len(result.Emails)),
		zap.Int("social_links", len(result.SocialLinks)),
	)
	return result
}

// flattenHTML collects href targets and visible text into one string the
// extractor can scan. Malformed HTML is tolerated; the tokenizer consumes
// whatever it can.
func flattenHTML(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) / 2)

	tokenizer := html.NewTokenizer(strings.NewReader(raw))
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key == "href" {
					b.WriteString(attr.Val)
					b.WriteByte('\n')
				}
			}
		case html.TextToken:
			text := strings.TrimSpace(tokenizer.Token().Data)
			if text != "" {
				b.WriteString(text)
				b.WriteByte('\n')
			}
		}
	}
}
