package owm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"weather-now/internal/config"
)

// CacheMetrics is implemented by the metrics collector; nil disables
// recording.
type CacheMetrics interface {
	RecordIconCacheHit()
	RecordIconCacheMiss()
}

type iconCacheEntry struct {
	data      []byte
	fetchedAt time.Time
}

// IconFetcher retrieves condition icon images (the @2x PNGs keyed by the
// icon code from a weather result) and caches them with a TTL. The icon
// fetch is independent of the text flow; it has no ordering guarantee
// relative to it.
type IconFetcher struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	metrics CacheMetrics

	mutex sync.Mutex
	cache map[string]*iconCacheEntry
	ttl   time.Duration
}

func NewIconFetcher(cfg config.OpenWeatherConfig, logger *zap.Logger, metrics CacheMetrics) *IconFetcher {
	return &IconFetcher{
		baseURL: cfg.IconBaseURL,
		client: &http.Client{
			Timeout: cfg.HTTPTimeout(),
		},
		logger:  logger,
		metrics: metrics,
		cache:   make(map[string]*iconCacheEntry),
		ttl:     time.Duration(cfg.IconCacheTTL) * time.Second,
	}
}

// Fetch returns the PNG bytes for an icon code, from cache when fresh.
func (f *IconFetcher) Fetch(ctx context.Context, code string) ([]byte, error) {
	if code == "" {
		return nil, fmt.Errorf("icon code must not be empty")
	}

	if data := f.getFromCache(code); data != nil {
		if f.metrics != nil {
			f.metrics.RecordIconCacheHit()
		}
		return data, nil
	}

	if f.metrics != nil {
		f.metrics.RecordIconCacheMiss()
	}

	u := fmt.Sprintf("%s/img/wn/%s@2x.png", f.baseURL, url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building icon request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("icon request failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	f.setCache(code, data)

	f.logger.Debug("Icon fetched",
		zap.String("icon_code", code),
		zap.Int("bytes", len(data)))

	return data, nil
}

func (f *IconFetcher) getFromCache(code string) []byte {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	entry, exists := f.cache[code]
	if !exists {
		return nil
	}

	if time.Since(entry.fetchedAt) > f.ttl {
		delete(f.cache, code)
		return nil
	}

	return entry.data
}

func (f *IconFetcher) setCache(code string, data []byte) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.cache[code] = &iconCacheEntry{
		data:      data,
		fetchedAt: time.Now(),
	}
}

func (f *IconFetcher) ClearCache() {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.cache = make(map[string]*iconCacheEntry)
}

func (f *IconFetcher) CacheStats() map[string]interface{} {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return map[string]interface{}{
		"cache_size": len(f.cache),
		"cache_ttl":  f.ttl.String(),
	}
}
