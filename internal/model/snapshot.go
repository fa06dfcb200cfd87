package model

// Position evaluation statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// PositionQuote is the per-position view served in a snapshot: the stored
// position fields plus computed valuation. Cost fields are always populated;
// a failed quote fetch leaves the market/pnl fields nil and sets Status to
// "error" with the error text.
type PositionQuote struct {
	AssetType     AssetType `json:"asset_type"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Units         float64   `json:"units"`
	CostPrice     float64   `json:"cost_price"`
	CurrentPrice  *float64  `json:"current_price"`
	ChangePercent *float64  `json:"change_percent"`
	MarketValue   *float64  `json:"market_value"`
	CostValue     float64   `json:"cost_value"`
	PnlAmount     *float64  `json:"pnl_amount"`
	PnlPercent    *float64  `json:"pnl_percent"`
	Source        string    `json:"source,omitempty"`
	QuoteTime     string    `json:"quote_time,omitempty"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
}

// PortfolioTotals aggregates all position views of a snapshot. Failed
// positions contribute their cost value but no market value.
type PortfolioTotals struct {
	TotalCost           float64 `json:"total_cost"`
	TotalMarketValue    float64 `json:"total_market_value"`
	TotalPnlAmount      float64 `json:"total_pnl_amount"`
	TotalPnlPercent     float64 `json:"total_pnl_percent"`
	SuccessfulPositions int     `json:"successful_positions"`
	FailedPositions     int     `json:"failed_positions"`
}

// PortfolioMeta carries the global settings and the snapshot timestamp.
type PortfolioMeta struct {
	BaseCurrency   string `json:"base_currency"`
	RefreshSeconds int    `json:"refresh_seconds"`
	UpdatedAt      string `json:"updated_at"`
}

// PortfolioSnapshot is the full GET /api/portfolio response: meta, totals and
// the position views in config order.
type PortfolioSnapshot struct {
	Meta      PortfolioMeta   `json:"meta"`
	Totals    PortfolioTotals `json:"totals"`
	Positions []PositionQuote `json:"positions"`
}
