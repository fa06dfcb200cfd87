package service

import (
	"context"
	"strings"

	"github.com/hliang/fundglance/internal/api/request"
	"github.com/hliang/fundglance/internal/apperrors"
	"github.com/hliang/fundglance/internal/model"
)

// ImportFunds converts each (code, amount) pair into fund units at the
// current estimated price and merges it into the config: existing fund
// positions get a weighted-average cost basis, unknown codes become new
// positions. Items fail independently; one bad item never aborts the batch.
// The config is persisted once, after all items, and only when at least one
// item succeeded.
func (s *PortfolioService) ImportFunds(ctx context.Context, items []request.FundImportItem) (model.FundImportResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, err := s.store.Load()
	if err != nil {
		return model.FundImportResponse{}, err
	}

	response := model.FundImportResponse{Items: make([]model.FundImportResult, 0, len(items))}
	hasChanges := false

	for _, item := range items {
		code := strings.TrimSpace(item.Code)
		amount := round2(item.Amount)

		result, err := s.importItem(ctx, &config, item, code, amount)
		if err != nil {
			response.Failed++
			response.Items = append(response.Items, model.FundImportResult{
				Code:   code,
				Amount: amount,
				Status: model.ImportStatusFailed,
				Error:  err.Error(),
			})
			continue
		}

		hasChanges = true
		switch result.Status {
		case model.ImportStatusAdded:
			response.Added++
		case model.ImportStatusUpdated:
			response.Updated++
		}
		response.Items = append(response.Items, result)
	}

	if hasChanges {
		if err := s.store.Save(config); err != nil {
			return model.FundImportResponse{}, err
		}
		s.log.Info().Int("added", response.Added).Int("updated", response.Updated).
			Int("failed", response.Failed).Msg("fund import persisted")
	}

	return response, nil
}

func (s *PortfolioService) importItem(
	ctx context.Context,
	config *model.PortfolioConfig,
	item request.FundImportItem,
	code string,
	amount float64,
) (model.FundImportResult, error) {
	quote, err := s.provider.GetQuote(ctx, model.AssetTypeFund, code)
	if err != nil {
		return model.FundImportResult{}, err
	}
	if quote.Price <= 0 {
		return model.FundImportResult{}, apperrors.ErrInvalidPrice
	}

	importedUnits := round4(amount / quote.Price)
	if importedUnits <= 0 {
		return model.FundImportResult{}, apperrors.ErrAmountTooSmall
	}

	observedPrice := round6(quote.Price)
	displayName := firstNonEmpty(item.Name, quote.Name, code)
	result := model.FundImportResult{
		Code:      code,
		Name:      displayName,
		Amount:    amount,
		Units:     &importedUnits,
		CostPrice: &observedPrice,
	}

	// First match wins: pre-existing duplicate codes in the config are a data
	// anomaly this path preserves rather than resolves.
	existing := findFundPosition(config.Positions, code)
	if existing != nil {
		previousCost := existing.Units * existing.CostPrice
		totalCost := previousCost + amount
		totalUnits := round4(existing.Units + importedUnits)
		existing.Units = totalUnits
		existing.CostPrice = round6(totalCost / totalUnits)
		if item.Name != "" {
			existing.Name = item.Name
		}
		result.Status = model.ImportStatusUpdated
		return result, nil
	}

	config.Positions = append(config.Positions, model.Position{
		AssetType: model.AssetTypeFund,
		Code:      code,
		Name:      displayName,
		Units:     importedUnits,
		CostPrice: observedPrice,
	})
	result.Status = model.ImportStatusAdded
	return result, nil
}

func findFundPosition(positions []model.Position, code string) *model.Position {
	for i := range positions {
		if positions[i].AssetType == model.AssetTypeFund && strings.TrimSpace(positions[i].Code) == code {
			return &positions[i]
		}
	}
	return nil
}
