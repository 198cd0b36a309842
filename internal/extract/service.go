package extract

import (
	"context"
	"net/url"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"tripcraft/internal/config"
	triperrors "tripcraft/internal/errors"
	"tripcraft/internal/logging"
	"tripcraft/internal/observability"
)

// maxConcurrentExtractions bounds the batch fan-out so one request cannot
// spawn unbounded browser tabs.
const maxConcurrentExtractions = 4

// Service dispatches extraction requests to the right platform extractor.
// Construct one per process and inject it; it has no package-level state.
type Service struct {
	extractors map[Platform]Extractor
	retryCfg   triperrors.RetryConfig
	cache      *expirable.LRU[string, *ExtractedContent]
	logger     logging.Logger
	metrics    *observability.Metrics
}

// NewService wires a Service from explicitly constructed extractors.
func NewService(cfg config.ExtractionConfig, metrics *observability.Metrics, extractors ...Extractor) *Service {
	byPlatform := make(map[Platform]Extractor, len(extractors))
	for _, e := range extractors {
		byPlatform[e.Platform()] = e
	}

	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = 256
	}

	return &Service{
		extractors: byPlatform,
		retryCfg:   triperrors.FixedRetryConfig(cfg.RetryAttempts, cfg.RetryDelay()),
		cache:      expirable.NewLRU[string, *ExtractedContent](cacheSize, nil, cfg.CacheTTL()),
		logger:     logging.NewComponentLogger("extraction"),
		metrics:    metrics,
	}
}

// DetectPlatform determines the platform from the URL shape.
func DetectPlatform(rawURL string) (Platform, bool) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return "", false
	}
	switch {
	case xiaohongshuURLPattern.MatchString(rawURL):
		return PlatformXiaohongshu, true
	case bilibiliURLPattern.MatchString(rawURL):
		return PlatformBilibili, true
	case douyinURLPattern.MatchString(rawURL):
		return PlatformDouyin, true
	case mafengwoURLPattern.MatchString(rawURL):
		return PlatformMafengwo, true
	}
	return "", false
}

// ExtractContent extracts one URL. Unsupported platforms and malformed URLs
// come back as a structured failure, not an error return; scraping itself is
// retried and, under the default policy, can only ever succeed.
func (s *Service) ExtractContent(ctx context.Context, rawURL string) Result {
	platform, ok := DetectPlatform(rawURL)
	if !ok {
		return Result{Success: false, Error: ErrUnsupportedPlatform.Error(), URL: rawURL}
	}

	extractor, ok := s.extractors[platform]
	if !ok {
		return Result{Success: false, Error: ErrUnsupportedPlatform.Error(), Platform: platform, URL: rawURL}
	}

	if cached, ok := s.cache.Get(rawURL); ok {
		s.logger.Debug("cache hit for %s", rawURL)
		return Result{Success: true, Data: cached, Platform: platform, URL: rawURL}
	}

	s.metrics.ExtractionStarted()
	defer s.metrics.ExtractionFinished()

	content, err := triperrors.RetryWithResultAndLog(ctx, s.retryCfg, func(ctx context.Context) (*ExtractedContent, error) {
		return extractor.Extract(ctx, rawURL)
	}, s.logger)
	if err != nil {
		s.metrics.ExtractionFailed(string(platform))
		return Result{Success: false, Error: err.Error(), Platform: platform, URL: rawURL}
	}

	s.metrics.ExtractionSucceeded(string(platform))
	s.cache.Add(rawURL, content)
	return Result{Success: true, Data: content, Platform: platform, URL: rawURL}
}

// ExtractMultipleContents fans out over all URLs with settle-all semantics:
// one URL's failure never aborts the batch, and results keep input order.
func (s *Service) ExtractMultipleContents(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentExtractions)
	for i, u := range urls {
		g.Go(func() error {
			results[i] = s.ExtractContent(ctx, u)
			return nil // failures are recorded per-slot, never propagated
		})
	}
	_ = g.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	s.logger.Info("batch extraction finished: %d/%d succeeded", succeeded, len(urls))

	return results
}

// GetSupportedPlatforms lists platforms with a registered extractor.
func (s *Service) GetSupportedPlatforms() []Platform {
	var platforms []Platform
	for _, p := range SupportedPlatforms() {
		if _, ok := s.extractors[p]; ok {
			platforms = append(platforms, p)
		}
	}
	return platforms
}

// IsPlatformSupported reports whether an extractor is registered for p.
func (s *Service) IsPlatformSupported(p Platform) bool {
	_, ok := s.extractors[p]
	return ok
}

// GetPlatformStatus probes every platform in parallel. A probe that fails or
// panics reports false, never an error.
func (s *Service) GetPlatformStatus(ctx context.Context) map[Platform]bool {
	status := make(map[Platform]bool, len(s.extractors))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for platform, extractor := range s.extractors {
		wg.Add(1)
		go func(platform Platform, extractor Extractor) {
			defer wg.Done()
			alive := false
			func() {
				defer func() {
					if r := recover(); r != nil {
						s.logger.Warn("status probe for %s panicked: %v", platform, r)
					}
				}()
				alive = extractor.CheckStatus(ctx)
			}()
			mu.Lock()
			status[platform] = alive
			mu.Unlock()
		}(platform, extractor)
	}
	wg.Wait()

	return status
}

// CacheLen reports how many extraction results are currently cached.
func (s *Service) CacheLen() int {
	return s.cache.Len()
}
