// Package browser owns the headless Chrome lifecycle so extractors never
// manage chromedp contexts directly. One shared Chrome process is launched
// lazily; each extraction gets its own tab.
package browser

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"tripcraft/internal/config"
	"tripcraft/internal/logging"
)

// blockedResourcePatterns speeds navigation up: itinerary extraction only
// needs the DOM, not stylesheets, fonts, or images.
var blockedResourcePatterns = []string{
	"*.css", "*.woff", "*.woff2", "*.ttf", "*.otf",
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg", "*.ico",
}

// Service manages a single shared Chrome process and hands out tabs.
// Initialize/Close and tab creation are guarded by one mutex, so concurrent
// extractions are safe against allocator races.
type Service struct {
	cfg    config.BrowserConfig
	logger logging.Logger

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewService creates a browser service. Chrome is not launched until the
// first page is requested.
func NewService(cfg config.BrowserConfig) *Service {
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger("browser"),
	}
}

// Initialize eagerly launches the shared Chrome process. Calling it is
// optional and idempotent; NewPage launches on demand.
func (s *Service) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureAllocator()
}

// ensureAllocator lazily starts the shared Chrome process. Must be called
// with s.mu held.
func (s *Service) ensureAllocator() error {
	if s.allocCtx != nil && s.allocCtx.Err() == nil {
		return nil
	}
	// Previous allocator dead (Chrome crashed or first call) — recreate.
	if s.allocCancel != nil {
		s.allocCancel()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("disable-gpu", s.cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	if path := strings.TrimSpace(s.cfg.ChromePath); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}
	if dir := strings.TrimSpace(s.cfg.UserDataDir); dir != "" {
		userDataDir := filepath.Join(dir, "shared")
		if err := os.MkdirAll(userDataDir, 0o755); err == nil {
			opts = append(opts, chromedp.UserDataDir(userDataDir))
		}
	}

	s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	s.logger.Info("Chrome allocator started (headless=%v)", s.cfg.Headless)
	return nil
}

// NewPage opens a fresh tab with the fixed user agent, viewport, and
// resource blocking applied. The returned cleanup closes the tab; the shared
// Chrome keeps running.
func (s *Service) NewPage(parent context.Context) (*Page, func(), error) {
	s.mu.Lock()
	if err := s.ensureAllocator(); err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}
	allocCtx := s.allocCtx
	s.mu.Unlock()

	tabCtx, cancel := chromedp.NewContext(allocCtx)
	if parent != nil {
		go func() {
			select {
			case <-parent.Done():
				cancel()
			case <-tabCtx.Done():
			}
		}()
	}

	p := &Page{ctx: tabCtx, timeout: s.cfg.Timeout(), logger: s.logger}

	err := p.run(
		network.Enable(),
		network.SetBlockedURLs(blockedResourcePatterns),
		emulation.SetUserAgentOverride(s.cfg.UserAgent),
		emulation.SetDeviceMetricsOverride(int64(s.cfg.ViewportWidth), int64(s.cfg.ViewportHeight), 1, false),
	)
	if err != nil {
		cancel()
		// Chrome may have crashed between allocator check and tab creation;
		// reset so the next call relaunches.
		s.mu.Lock()
		if s.allocCtx != nil && s.allocCtx.Err() != nil {
			s.allocCancel()
			s.allocCtx = nil
			s.allocCancel = nil
		}
		s.mu.Unlock()
		return nil, nil, fmt.Errorf("create page: %w", err)
	}

	return p, cancel, nil
}

// Close terminates the shared Chrome process.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allocCancel != nil {
		s.allocCancel()
		s.allocCancel = nil
		s.allocCtx = nil
		s.logger.Info("Chrome allocator closed")
	}
}

// Page is one browser tab.
type Page struct {
	ctx     context.Context
	timeout time.Duration
	logger  logging.Logger
}

func (p *Page) run(actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// Navigate loads a URL and waits for the document to become ready. Failures
// are returned as wrapped errors for the extractor to convert into its
// fallback path.
func (p *Page) Navigate(url string) error {
	if err := p.run(
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// WaitAny waits until any of the candidate selectors is visible. Page
// markup differs between logged-in/logged-out and A/B variants, so content
// readiness is a race across synonyms.
func (p *Page) WaitAny(timeout time.Duration, selectors ...string) error {
	if len(selectors) == 0 {
		return fmt.Errorf("wait: no selectors given")
	}
	waitCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()

	type result struct{ err error }
	done := make(chan result, len(selectors))
	for _, sel := range selectors {
		go func(sel string) {
			done <- result{chromedp.Run(waitCtx, chromedp.WaitVisible(sel, chromedp.ByQuery))}
		}(sel)
	}

	var lastErr error
	for range selectors {
		r := <-done
		if r.err == nil {
			return nil
		}
		lastErr = r.err
	}
	return fmt.Errorf("no content selector appeared: %w", lastErr)
}

// Text returns the trimmed text of the first element matching sel. A missing
// element reports ok=false, never an error.
func (p *Page) Text(sel string) (string, bool) {
	var text string
	var nodes int
	err := p.run(
		chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll(%q).length`, sel), &nodes),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if nodes == 0 {
				return nil
			}
			return chromedp.Text(sel, &text, chromedp.ByQuery).Do(ctx)
		}),
	)
	if err != nil || nodes == 0 {
		return "", false
	}
	text = strings.TrimSpace(text)
	return text, text != ""
}

// Attribute returns an attribute of the first element matching sel.
func (p *Page) Attribute(sel, attr string) (string, bool) {
	var value string
	var ok bool
	if err := p.run(chromedp.AttributeValue(sel, attr, &value, &ok, chromedp.ByQuery)); err != nil {
		return "", false
	}
	return value, ok && value != ""
}

// HTML snapshots the full rendered document for offline selector matching.
func (p *Page) HTML() (string, error) {
	var html string
	if err := p.run(chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("page snapshot: %w", err)
	}
	return html, nil
}

// ScrollToBottom performs a stepped scroll-and-wait loop for infinite-scroll
// pages.
func (p *Page) ScrollToBottom(steps int, pause time.Duration) error {
	if steps <= 0 {
		steps = 5
	}
	for i := 0; i < steps; i++ {
		if err := p.run(chromedp.Evaluate(`window.scrollBy(0, window.innerHeight)`, nil)); err != nil {
			return fmt.Errorf("scroll step %d: %w", i+1, err)
		}
		select {
		case <-time.After(pause):
		case <-p.ctx.Done():
			return p.ctx.Err()
		}
	}
	return nil
}

// Screenshot captures the viewport as PNG. Failures are logged, not fatal.
func (p *Page) Screenshot() ([]byte, error) {
	var buf []byte
	if err := p.run(chromedp.CaptureScreenshot(&buf)); err != nil {
		p.logger.Warn("screenshot failed: %v", err)
		return nil, err
	}
	return buf, nil
}

// stealthScript hides the usual headless fingerprints before any page script
// runs.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
Object.defineProperty(navigator, 'languages', { get: () => ['zh-CN', 'zh', 'en'] });
window.chrome = window.chrome || { runtime: {} };
`

// BypassAntiBot applies evasion heuristics: the stealth script is installed
// for subsequent navigations, a randomized human-ish delay passes, and the
// mouse wanders once across the viewport.
func (p *Page) BypassAntiBot() error {
	if err := p.run(chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
		return err
	})); err != nil {
		return fmt.Errorf("install stealth script: %w", err)
	}

	delay := time.Duration(500+rand.Intn(1500)) * time.Millisecond
	select {
	case <-time.After(delay):
	case <-p.ctx.Done():
		return p.ctx.Err()
	}

	x := float64(100 + rand.Intn(600))
	y := float64(100 + rand.Intn(400))
	if err := p.run(chromedp.MouseEvent(input.MouseMoved, x, y)); err != nil {
		// Synthetic movement is best-effort.
		p.logger.Debug("synthetic mouse move failed: %v", err)
	}
	return nil
}
