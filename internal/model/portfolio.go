package model

// AssetType identifies which quote source a position is priced from.
type AssetType string

// Supported asset types.
const (
	AssetTypeFund  AssetType = "fund"
	AssetTypeStock AssetType = "stock"
)

// Valid reports whether the asset type is one of the supported values.
func (a AssetType) Valid() bool {
	return a == AssetTypeFund || a == AssetTypeStock
}

// Position is a single holding in the portfolio config. Identity is the
// (AssetType, Code) pair; the store owns the lifecycle.
type Position struct {
	AssetType AssetType `json:"asset_type"`
	Code      string    `json:"code"`
	Name      string    `json:"name,omitempty"`
	Units     float64   `json:"units"`
	CostPrice float64   `json:"cost_price"`
}

// PortfolioConfig is the on-disk document: global settings plus the ordered
// list of positions. It is re-read from disk on every request, mutated in
// memory and written back whole.
type PortfolioConfig struct {
	BaseCurrency   string     `json:"base_currency"`
	RefreshSeconds int        `json:"refresh_seconds"`
	Positions      []Position `json:"positions"`
}

// Defaults applied when the config file omits the optional global settings.
const (
	DefaultBaseCurrency   = "CNY"
	DefaultRefreshSeconds = 15
)

// RefreshSeconds bounds.
const (
	MinRefreshSeconds = 5
	MaxRefreshSeconds = 300
)

// DefaultConfig returns an empty portfolio with default global settings.
func DefaultConfig() PortfolioConfig {
	return PortfolioConfig{
		BaseCurrency:   DefaultBaseCurrency,
		RefreshSeconds: DefaultRefreshSeconds,
		Positions:      []Position{},
	}
}
