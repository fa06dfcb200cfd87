// Package quote fetches near-real-time quotes from the two external data
// sources: eastmoney fund estimates and Tencent stock quotes. Successful
// results are cached in memory for a short TTL.
package quote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hliang/fundglance/internal/apperrors"
	"github.com/hliang/fundglance/internal/model"
)

const (
	defaultFundBaseURL  = "https://fundgz.1234567.com.cn"
	defaultStockBaseURL = "https://qt.gtimg.cn"
)

// Provider issues outbound quote requests and caches successful results.
// The cache is shared, keyed by "{asset_type}:{code}", with no per-key
// locking: two concurrent requests for the same expired key may both fetch,
// last writer wins.
type Provider struct {
	httpClient   *http.Client
	cacheTTL     time.Duration
	fundBaseURL  string
	stockBaseURL string
	log          zerolog.Logger

	mu    sync.RWMutex
	cache map[string]cachedQuote

	// now is swapped out in tests to control cache staleness.
	now func() time.Time
}

type cachedQuote struct {
	fetchedAt time.Time
	quote     model.RawQuote
}

// NewProvider creates a quote provider with the given request timeout and
// cache TTL.
func NewProvider(timeout, cacheTTL time.Duration, log zerolog.Logger) *Provider {
	return &Provider{
		httpClient:   &http.Client{Timeout: timeout},
		cacheTTL:     cacheTTL,
		fundBaseURL:  defaultFundBaseURL,
		stockBaseURL: defaultStockBaseURL,
		log:          log.With().Str("component", "quote").Logger(),
		cache:        make(map[string]cachedQuote),
		now:          time.Now,
	}
}

// GetQuote returns a quote for the given asset, serving a cached entry when
// one younger than the TTL exists. Failures are never cached.
func (p *Provider) GetQuote(ctx context.Context, assetType model.AssetType, code string) (model.RawQuote, error) {
	code = strings.TrimSpace(code)
	key := string(assetType) + ":" + code

	if quote, ok := p.cached(key); ok {
		return quote, nil
	}

	var (
		quote model.RawQuote
		err   error
	)
	switch assetType {
	case model.AssetTypeFund:
		quote, err = p.fetchFundQuote(ctx, code)
	case model.AssetTypeStock:
		quote, err = p.fetchStockQuote(ctx, code)
	default:
		return model.RawQuote{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedAssetType, assetType)
	}
	if err != nil {
		p.log.Debug().Err(err).Str("asset_type", string(assetType)).Str("code", code).Msg("quote fetch failed")
		return model.RawQuote{}, err
	}

	p.store(key, quote)
	return quote, nil
}

func (p *Provider) cached(key string) (model.RawQuote, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entry, ok := p.cache[key]
	if !ok || p.now().Sub(entry.fetchedAt) >= p.cacheTTL {
		return model.RawQuote{}, false
	}
	return entry.quote, true
}

func (p *Provider) store(key string, quote model.RawQuote) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache[key] = cachedQuote{fetchedAt: p.now(), quote: quote}
}

// fetchBody executes a GET against a quote endpoint and returns the raw body.
// A non-200 status is an upstream data error.
func (p *Provider) fetchBody(ctx context.Context, url, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (FundGlance/1.0)")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", apperrors.ErrUpstreamStatus, source, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// parseFloat parses a numeric field, reporting false for empty or
// non-numeric values.
func parseFloat(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
