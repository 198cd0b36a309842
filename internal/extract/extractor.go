package extract

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"tripcraft/internal/browser"
	"tripcraft/internal/config"
	"tripcraft/internal/logging"
	"tripcraft/internal/observability"
)

// Extractor turns one source URL into structured content.
//
// The contract every platform honors: an invalid URL is an error; a scraping
// failure is not. Under the default mock policy any selector miss, timeout,
// or anti-bot block silently degrades to the platform's example payload —
// a user pasting a broken link still gets a plausible itinerary.
type Extractor interface {
	Platform() Platform
	Extract(ctx context.Context, url string) (*ExtractedContent, error)
	CheckStatus(ctx context.Context) bool
}

// Policy controls whether live scraping runs and what a failure degrades to.
type Policy struct {
	RealExtraction bool
	OnFailure      config.FallbackMode
}

// fieldSelectors lists CSS selector synonyms per field, tried in order.
// Platform markup differs between logged-in/out and A/B variants, so every
// field has several candidates.
type fieldSelectors struct {
	ready       []string // any of these visible means content has loaded
	title       []string
	description []string
	author      []string
	avatar      []string
	likes       []string
	comments    []string
	shares      []string
	tags        []string
	thumbnail   []string
	duration    []string // video platforms only: player's total-time display
}

// platformExtractor is the shared scraping skeleton the four platforms embed.
type platformExtractor struct {
	platform   Platform
	urlPattern *regexp.Regexp
	homeURL    string
	selectors  fieldSelectors
	scroll     bool // long-form pages need a scroll pass before snapshot
	mock       func(url string) *ExtractedContent

	browser *browser.Service
	policy  Policy
	logger  logging.Logger
	metrics *observability.Metrics
	probe   *http.Client
}

func newPlatformExtractor(platform Platform, svc *browser.Service, policy Policy, metrics *observability.Metrics) platformExtractor {
	return platformExtractor{
		platform: platform,
		browser:  svc,
		policy:   policy,
		logger:   logging.NewComponentLogger(strings.ToLower(string(platform)) + "-extractor"),
		metrics:  metrics,
		probe:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (e *platformExtractor) Platform() Platform { return e.platform }

func (e *platformExtractor) Extract(ctx context.Context, url string) (*ExtractedContent, error) {
	if !e.urlPattern.MatchString(url) {
		return nil, fmt.Errorf("invalid %s url: %s", strings.ToLower(string(e.platform)), url)
	}

	if !e.policy.RealExtraction {
		e.logger.Debug("real extraction disabled, returning example payload for %s", url)
		return e.mock(url), nil
	}

	content, err := e.scrape(ctx, url)
	if err != nil {
		if e.policy.OnFailure == config.FallbackPropagate {
			return nil, fmt.Errorf("%s extraction failed: %w", strings.ToLower(string(e.platform)), err)
		}
		// Deliberate product behavior: scraping failures never reach the
		// caller, only the log.
		e.logger.Warn("extraction failed for %s, degrading to example payload: %v", url, err)
		e.metrics.MockFallback(string(e.platform))
		return e.mock(url), nil
	}
	return content, nil
}

// CheckStatus is a best-effort liveness probe against the platform homepage.
func (e *platformExtractor) CheckStatus(ctx context.Context) bool {
	if !e.policy.RealExtraction {
		return true
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.homeURL, nil)
	if err != nil {
		return false
	}
	resp, err := e.probe.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode < http.StatusInternalServerError
}

// scrape drives a browser tab through the page and parses the snapshot.
func (e *platformExtractor) scrape(ctx context.Context, url string) (*ExtractedContent, error) {
	page, cleanup, err := e.browser.NewPage(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := page.BypassAntiBot(); err != nil {
		return nil, err
	}
	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	if err := page.WaitAny(10*time.Second, e.selectors.ready...); err != nil {
		return nil, err
	}
	if e.scroll {
		if err := page.ScrollToBottom(5, 500*time.Millisecond); err != nil {
			return nil, err
		}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}

	return e.parseDocument(doc, url)
}

// parseDocument assembles an ExtractedContent from a rendered page snapshot.
// Pure with respect to the browser, so platform selector sets are testable
// against static HTML.
func (e *platformExtractor) parseDocument(doc *goquery.Document, url string) (*ExtractedContent, error) {
	title := firstText(doc, e.selectors.title)
	if title == "" {
		return nil, fmt.Errorf("no title found on page")
	}

	description := firstText(doc, e.selectors.description)
	tags := collectTexts(doc, e.selectors.tags, 20)

	content := &ExtractedContent{
		Title:            title,
		Description:      description,
		Platform:         e.platform,
		URL:              url,
		VideoDurationSec: ParseDurationSeconds(firstText(doc, e.selectors.duration)),
		Tags:             tags,
		Author: Author{
			Name:   firstText(doc, e.selectors.author),
			Avatar: firstAttr(doc, e.selectors.avatar, "src"),
		},
		Stats: Stats{
			Likes:    ParseCount(firstText(doc, e.selectors.likes)),
			Comments: ParseCount(firstText(doc, e.selectors.comments)),
			Shares:   ParseCount(firstText(doc, e.selectors.shares)),
		},
		Locations:  DeriveLocations(title + " " + description),
		Activities: DeriveActivities(title+" "+description, tags),
	}

	if thumb := firstAttr(doc, e.selectors.thumbnail, "src"); thumb != "" {
		content.Media = append(content.Media, Media{Type: MediaImage, URL: thumb})
	}

	return content, nil
}

// firstText returns the first non-empty trimmed text among the selector
// synonyms.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// firstAttr returns the first non-empty attribute among the selector
// synonyms.
func firstAttr(doc *goquery.Document, selectors []string, attr string) string {
	for _, sel := range selectors {
		if value, ok := doc.Find(sel).First().Attr(attr); ok {
			if value = strings.TrimSpace(value); value != "" {
				return value
			}
		}
	}
	return ""
}

// collectTexts gathers up to limit distinct texts from the first selector
// that matches anything.
func collectTexts(doc *goquery.Document, selectors []string, limit int) []string {
	for _, sel := range selectors {
		var texts []string
		seen := make(map[string]bool)
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if len(texts) >= limit {
				return
			}
			text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s.Text()), "#"))
			if text != "" && !seen[text] {
				seen[text] = true
				texts = append(texts, text)
			}
		})
		if len(texts) > 0 {
			return texts
		}
	}
	return nil
}
