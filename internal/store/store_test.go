package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hliang/fundglance/internal/apperrors"
	"github.com/hliang/fundglance/internal/model"
	"github.com/hliang/fundglance/internal/store"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "portfolio.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestStore_Load(t *testing.T) {
	t.Run("loads a full config", func(t *testing.T) {
		path := writeFile(t, `{
  "base_currency": "CNY",
  "refresh_seconds": 30,
  "positions": [
    {"asset_type": "fund", "code": "161725", "name": "白酒", "units": 100.5, "cost_price": 1.2}
  ]
}`)
		s := store.New(path, zerolog.Nop())

		config, err := s.Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if config.BaseCurrency != "CNY" {
			t.Errorf("Expected base currency CNY, got '%s'", config.BaseCurrency)
		}
		if config.RefreshSeconds != 30 {
			t.Errorf("Expected refresh 30, got %d", config.RefreshSeconds)
		}
		if len(config.Positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(config.Positions))
		}
		if config.Positions[0].Code != "161725" {
			t.Errorf("Expected code '161725', got '%s'", config.Positions[0].Code)
		}
	})

	t.Run("applies defaults for absent global settings", func(t *testing.T) {
		path := writeFile(t, `{"positions": []}`)
		s := store.New(path, zerolog.Nop())

		config, err := s.Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if config.BaseCurrency != model.DefaultBaseCurrency {
			t.Errorf("Expected default base currency, got '%s'", config.BaseCurrency)
		}
		if config.RefreshSeconds != model.DefaultRefreshSeconds {
			t.Errorf("Expected default refresh seconds, got %d", config.RefreshSeconds)
		}
		if config.Positions == nil {
			t.Error("Expected positions to be an empty slice, got nil")
		}
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		s := store.New(filepath.Join(t.TempDir(), "absent.json"), zerolog.Nop())

		_, err := s.Load()
		if !errors.Is(err, apperrors.ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("fails on malformed JSON", func(t *testing.T) {
		path := writeFile(t, "{not json")
		s := store.New(path, zerolog.Nop())

		_, err := s.Load()
		if !errors.Is(err, apperrors.ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("fails on out-of-range refresh seconds", func(t *testing.T) {
		path := writeFile(t, `{"refresh_seconds": 500, "positions": []}`)
		s := store.New(path, zerolog.Nop())

		_, err := s.Load()
		if !errors.Is(err, apperrors.ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("fails on a position with non-positive units", func(t *testing.T) {
		path := writeFile(t, `{"positions": [{"asset_type": "fund", "code": "161725", "units": 0, "cost_price": 1.2}]}`)
		s := store.New(path, zerolog.Nop())

		_, err := s.Load()
		if !errors.Is(err, apperrors.ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("fails on an unknown asset type", func(t *testing.T) {
		path := writeFile(t, `{"positions": [{"asset_type": "bond", "code": "161725", "units": 1, "cost_price": 1.2}]}`)
		s := store.New(path, zerolog.Nop())

		_, err := s.Load()
		if !errors.Is(err, apperrors.ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestStore_Save(t *testing.T) {
	t.Run("round-trips a config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "portfolio.json")
		s := store.New(path, zerolog.Nop())

		saved := model.PortfolioConfig{
			BaseCurrency:   "CNY",
			RefreshSeconds: 15,
			Positions: []model.Position{
				{AssetType: model.AssetTypeStock, Code: "sh600000", Units: 200, CostPrice: 9.8},
			},
		}
		if err := s.Save(saved); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		loaded, err := s.Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(loaded.Positions) != 1 || loaded.Positions[0].Code != "sh600000" {
			t.Errorf("Expected saved position to round-trip, got %+v", loaded.Positions)
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "portfolio.json")
		s := store.New(path, zerolog.Nop())

		if err := s.Save(model.DefaultConfig()); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("Failed to read dir: %v", err)
		}
		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), ".tmp") {
				t.Errorf("Expected no temp files, found %s", entry.Name())
			}
		}
	})

	t.Run("writes human-readable output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "portfolio.json")
		s := store.New(path, zerolog.Nop())

		if err := s.Save(model.DefaultConfig()); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read saved file: %v", err)
		}
		if !strings.Contains(string(data), "\n  \"base_currency\"") {
			t.Errorf("Expected indented JSON, got %s", data)
		}
	})
}

func TestStore_EnsureExists(t *testing.T) {
	t.Run("creates the data directory and a default config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "portfolio.json")
		s := store.New(path, zerolog.Nop())

		if err := s.EnsureExists(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		config, err := s.Load()
		if err != nil {
			t.Fatalf("Expected the created default config to load, got %v", err)
		}
		if config.BaseCurrency != model.DefaultBaseCurrency || len(config.Positions) != 0 {
			t.Errorf("Expected default config, got %+v", config)
		}
	})

	t.Run("does not overwrite an existing file", func(t *testing.T) {
		path := writeFile(t, `{"refresh_seconds": 60, "positions": []}`)
		s := store.New(path, zerolog.Nop())

		if err := s.EnsureExists(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		config, err := s.Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if config.RefreshSeconds != 60 {
			t.Errorf("Expected existing config to survive, got refresh %d", config.RefreshSeconds)
		}
	})
}
