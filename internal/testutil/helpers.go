// Package testutil provides helpers for building portfolio stores and
// services against temp config files and stubbed quote providers.
package testutil

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hliang/fundglance/internal/model"
	"github.com/hliang/fundglance/internal/service"
	"github.com/hliang/fundglance/internal/store"
)

// WriteConfigFile writes the config as JSON into a temp dir and returns the
// file path.
func WriteConfigFile(t *testing.T, config model.PortfolioConfig) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "portfolio.json")
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

// NewStore creates a store over a temp config file seeded with the given config.
func NewStore(t *testing.T, config model.PortfolioConfig) *store.Store {
	t.Helper()
	return store.New(WriteConfigFile(t, config), zerolog.Nop())
}

// NewPortfolioService wires a portfolio service over the given store and provider.
func NewPortfolioService(t *testing.T, st *store.Store, provider service.QuoteProvider) *service.PortfolioService {
	t.Helper()
	return service.NewPortfolioService(st, provider, zerolog.Nop())
}

// StubProvider serves canned quotes keyed by "{asset_type}:{code}". Unknown
// keys fail with the configured error.
type StubProvider struct {
	Quotes map[string]model.RawQuote
	Errs   map[string]error
	Calls  map[string]int
}

// NewStubProvider creates an empty stub provider.
func NewStubProvider() *StubProvider {
	return &StubProvider{
		Quotes: make(map[string]model.RawQuote),
		Errs:   make(map[string]error),
		Calls:  make(map[string]int),
	}
}

// WithQuote registers a successful quote for the given asset.
func (s *StubProvider) WithQuote(assetType model.AssetType, code string, quote model.RawQuote) *StubProvider {
	s.Quotes[string(assetType)+":"+code] = quote
	return s
}

// WithError registers a fetch failure for the given asset.
func (s *StubProvider) WithError(assetType model.AssetType, code string, err error) *StubProvider {
	s.Errs[string(assetType)+":"+code] = err
	return s
}

// GetQuote implements service.QuoteProvider.
func (s *StubProvider) GetQuote(_ context.Context, assetType model.AssetType, code string) (model.RawQuote, error) {
	key := string(assetType) + ":" + code
	s.Calls[key]++
	if err, ok := s.Errs[key]; ok {
		return model.RawQuote{}, err
	}
	if quote, ok := s.Quotes[key]; ok {
		return quote, nil
	}
	return model.RawQuote{}, s.unknownKeyError(key)
}

func (s *StubProvider) unknownKeyError(key string) error {
	return &unknownQuoteError{key: key}
}

type unknownQuoteError struct {
	key string
}

func (e *unknownQuoteError) Error() string {
	return "no stubbed quote for " + e.key
}

// FloatPtr returns a pointer to the given float, for optional fields.
func FloatPtr(value float64) *float64 {
	return &value
}

// StringPtr returns a pointer to the given string, for optional fields.
func StringPtr(value string) *string {
	return &value
}
