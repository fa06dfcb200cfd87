package service

import (
	"fmt"
	"strings"

	"github.com/hliang/fundglance/internal/api/request"
	"github.com/hliang/fundglance/internal/apperrors"
	"github.com/hliang/fundglance/internal/model"
)

// AddPosition appends a new position and persists the config. A position with
// the same (asset type, code) identity must not already exist.
func (s *PortfolioService) AddPosition(req request.CreatePositionRequest) (model.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := s.store.Load()
	if err != nil {
		return model.Position{}, err
	}

	assetType := model.AssetType(req.AssetType)
	code := strings.TrimSpace(req.Code)
	if findPosition(config.Positions, assetType, code) >= 0 {
		return model.Position{}, fmt.Errorf("%w: %s/%s", apperrors.ErrDuplicatePosition, assetType, code)
	}

	position := model.Position{
		AssetType: assetType,
		Code:      code,
		Name:      strings.TrimSpace(req.Name),
		Units:     req.Units,
		CostPrice: req.CostPrice,
	}
	config.Positions = append(config.Positions, position)

	if err := s.store.Save(config); err != nil {
		return model.Position{}, err
	}
	s.log.Info().Str("asset_type", string(assetType)).Str("code", code).Msg("position added")
	return position, nil
}

// UpdatePosition applies the supplied fields to the first position matching
// the (asset type, code) identity and persists the config.
func (s *PortfolioService) UpdatePosition(assetType model.AssetType, code string, req request.UpdatePositionRequest) (model.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := s.store.Load()
	if err != nil {
		return model.Position{}, err
	}

	index := findPosition(config.Positions, assetType, strings.TrimSpace(code))
	if index < 0 {
		return model.Position{}, fmt.Errorf("%w: %s/%s", apperrors.ErrPositionNotFound, assetType, code)
	}

	position := &config.Positions[index]
	if req.Name != nil {
		position.Name = strings.TrimSpace(*req.Name)
	}
	if req.Units != nil {
		position.Units = *req.Units
	}
	if req.CostPrice != nil {
		position.CostPrice = *req.CostPrice
	}

	if err := s.store.Save(config); err != nil {
		return model.Position{}, err
	}
	s.log.Info().Str("asset_type", string(assetType)).Str("code", code).Msg("position updated")
	return *position, nil
}

// DeletePosition removes the first position matching the (asset type, code)
// identity and persists the config.
func (s *PortfolioService) DeletePosition(assetType model.AssetType, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := s.store.Load()
	if err != nil {
		return err
	}

	index := findPosition(config.Positions, assetType, strings.TrimSpace(code))
	if index < 0 {
		return fmt.Errorf("%w: %s/%s", apperrors.ErrPositionNotFound, assetType, code)
	}

	config.Positions = append(config.Positions[:index], config.Positions[index+1:]...)

	if err := s.store.Save(config); err != nil {
		return err
	}
	s.log.Info().Str("asset_type", string(assetType)).Str("code", code).Msg("position deleted")
	return nil
}

func findPosition(positions []model.Position, assetType model.AssetType, code string) int {
	for i := range positions {
		if positions[i].AssetType == assetType && strings.TrimSpace(positions[i].Code) == code {
			return i
		}
	}
	return -1
}
