// Package store owns the portfolio config file: a single flat JSON document
// that is re-read on every request and replaced whole on every save.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hliang/fundglance/internal/apperrors"
	"github.com/hliang/fundglance/internal/model"
)

// Store reads and writes the portfolio config file.
type Store struct {
	path string
	log  zerolog.Logger
}

// New creates a store bound to the given config file path.
func New(path string, log zerolog.Logger) *Store {
	return &Store{
		path: path,
		log:  log.With().Str("component", "store").Logger(),
	}
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// EnsureExists creates the data directory and a default empty config when the
// file is missing, so a first boot does not require manual seeding.
func (s *Store) EnsureExists() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	s.log.Info().Str("path", s.path).Msg("creating default portfolio config")
	return s.Save(model.DefaultConfig())
}

// Load parses and validates the on-disk config. Absent global settings fall
// back to defaults; a malformed document or an out-of-range field is a
// structural error, fatal to the request that triggered the load.
func (s *Store) Load() (model.PortfolioConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return model.PortfolioConfig{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}

	var config model.PortfolioConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.PortfolioConfig{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}

	if config.BaseCurrency == "" {
		config.BaseCurrency = model.DefaultBaseCurrency
	}
	if config.RefreshSeconds == 0 {
		config.RefreshSeconds = model.DefaultRefreshSeconds
	}
	if config.Positions == nil {
		config.Positions = []model.Position{}
	}

	if err := validate(config); err != nil {
		return model.PortfolioConfig{}, err
	}

	return config, nil
}

// Save serializes the full config, human-readable, and replaces the file in
// one step: write to a uniquely named temp file in the same directory, then
// rename over the target. No partial writes are possible.
func (s *Store) Save(config model.PortfolioConfig) error {
	if config.Positions == nil {
		config.Positions = []model.Position{}
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmpPath := fmt.Sprintf("%s.%s.tmp", s.path, uuid.NewString())
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func validate(config model.PortfolioConfig) error {
	if n := len(config.BaseCurrency); n < 3 || n > 6 {
		return fmt.Errorf("%w: base_currency must be 3-6 characters", apperrors.ErrInvalidConfig)
	}
	if config.RefreshSeconds < model.MinRefreshSeconds || config.RefreshSeconds > model.MaxRefreshSeconds {
		return fmt.Errorf("%w: refresh_seconds must be between %d and %d",
			apperrors.ErrInvalidConfig, model.MinRefreshSeconds, model.MaxRefreshSeconds)
	}
	for i, position := range config.Positions {
		if err := validatePosition(position); err != nil {
			return fmt.Errorf("%w (position %d)", err, i)
		}
	}
	return nil
}

func validatePosition(position model.Position) error {
	if !position.AssetType.Valid() {
		return fmt.Errorf("%w: asset_type must be fund or stock", apperrors.ErrInvalidConfig)
	}
	if n := len(position.Code); n < 2 || n > 20 {
		return fmt.Errorf("%w: code must be 2-20 characters", apperrors.ErrInvalidConfig)
	}
	if len(position.Name) > 50 {
		return fmt.Errorf("%w: name must be 50 characters or less", apperrors.ErrInvalidConfig)
	}
	if position.Units <= 0 {
		return fmt.Errorf("%w: units must be positive", apperrors.ErrInvalidConfig)
	}
	if position.CostPrice <= 0 {
		return fmt.Errorf("%w: cost_price must be positive", apperrors.ErrInvalidConfig)
	}
	return nil
}
