// Package service implements the valuation, import and mutation logic on top
// of the portfolio store and the quote provider.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hliang/fundglance/internal/model"
	"github.com/hliang/fundglance/internal/store"
)

// QuoteProvider fetches a quote for one asset. Implemented by quote.Provider.
type QuoteProvider interface {
	GetQuote(ctx context.Context, assetType model.AssetType, code string) (model.RawQuote, error)
}

// PortfolioService handles portfolio valuation and config mutations.
//
// All mutation paths (fund import, add, update, delete) share one mutex so
// that concurrent read-modify-write cycles of the config file cannot
// interleave.
type PortfolioService struct {
	store    *store.Store
	provider QuoteProvider
	log      zerolog.Logger

	mu sync.Mutex
}

// NewPortfolioService creates a PortfolioService with the provided store and
// quote provider dependencies.
func NewPortfolioService(store *store.Store, provider QuoteProvider, log zerolog.Logger) *PortfolioService {
	return &PortfolioService{
		store:    store,
		provider: provider,
		log:      log.With().Str("component", "portfolio").Logger(),
	}
}

// LoadConfig re-reads the config file. No cross-request caching.
func (s *PortfolioService) LoadConfig() (model.PortfolioConfig, error) {
	return s.store.Load()
}

// Snapshot loads the config and evaluates every position concurrently.
// The result order matches the config's position order regardless of
// completion order. Only a structural config error fails the snapshot;
// per-position quote failures are contained in the position views.
func (s *PortfolioService) Snapshot(ctx context.Context) (model.PortfolioSnapshot, error) {
	config, err := s.store.Load()
	if err != nil {
		return model.PortfolioSnapshot{}, err
	}

	positions := make([]model.PositionQuote, len(config.Positions))
	g, ctx := errgroup.WithContext(ctx)
	for i, position := range config.Positions {
		i, position := i, position
		g.Go(func() error {
			positions[i] = s.evaluate(ctx, position)
			return nil
		})
	}
	// evaluate never fails, so the group never returns an error.
	_ = g.Wait()

	return model.PortfolioSnapshot{
		Meta: model.PortfolioMeta{
			BaseCurrency:   config.BaseCurrency,
			RefreshSeconds: config.RefreshSeconds,
			UpdatedAt:      time.Now().Format(time.RFC3339),
		},
		Totals:    computeTotals(positions),
		Positions: positions,
	}, nil
}

// evaluate computes the view for one position. It never fails: a quote fetch
// error yields a status=error view with the cost fields still populated.
func (s *PortfolioService) evaluate(ctx context.Context, position model.Position) model.PositionQuote {
	costValue := round2(position.Units * position.CostPrice)

	view := model.PositionQuote{
		AssetType: position.AssetType,
		Code:      position.Code,
		Name:      firstNonEmpty(position.Name, position.Code),
		Units:     position.Units,
		CostPrice: position.CostPrice,
		CostValue: costValue,
		Status:    model.StatusError,
	}

	rawQuote, err := s.provider.GetQuote(ctx, position.AssetType, position.Code)
	if err != nil {
		view.Error = err.Error()
		return view
	}

	marketValue := round2(position.Units * rawQuote.Price)
	pnlAmount := round2(marketValue - costValue)
	pnlPercent := 0.0
	if costValue > 0 {
		pnlPercent = round2(pnlAmount / costValue * 100)
	}
	currentPrice := round4(rawQuote.Price)

	view.Code = rawQuote.Code
	view.Name = firstNonEmpty(position.Name, rawQuote.Name, position.Code)
	view.CurrentPrice = &currentPrice
	view.MarketValue = &marketValue
	view.PnlAmount = &pnlAmount
	view.PnlPercent = &pnlPercent
	view.Source = rawQuote.Source
	view.QuoteTime = rawQuote.QuoteTime
	view.Status = model.StatusOK

	if rawQuote.ChangePercent != nil {
		changePercent := round2(*rawQuote.ChangePercent)
		view.ChangePercent = &changePercent
	}

	return view
}

func computeTotals(positions []model.PositionQuote) model.PortfolioTotals {
	var totalCost, totalMarketValue float64
	successful := 0
	for _, position := range positions {
		totalCost += position.CostValue
		if position.Status == model.StatusOK && position.MarketValue != nil {
			totalMarketValue += *position.MarketValue
			successful++
		}
	}

	totalCost = round2(totalCost)
	totalMarketValue = round2(totalMarketValue)
	totalPnlAmount := round2(totalMarketValue - totalCost)
	totalPnlPercent := 0.0
	if totalCost > 0 {
		totalPnlPercent = round2(totalPnlAmount / totalCost * 100)
	}

	return model.PortfolioTotals{
		TotalCost:           totalCost,
		TotalMarketValue:    totalMarketValue,
		TotalPnlAmount:      totalPnlAmount,
		TotalPnlPercent:     totalPnlPercent,
		SuccessfulPositions: successful,
		FailedPositions:     len(positions) - successful,
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
