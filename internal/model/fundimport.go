package model

// Fund import item statuses.
const (
	ImportStatusAdded   = "added"
	ImportStatusUpdated = "updated"
	ImportStatusFailed  = "failed"
)

// FundImportResult records the outcome of a single import item. Units and
// CostPrice are the units purchased by this item and the observed price, set
// only when the item succeeded.
type FundImportResult struct {
	Code      string   `json:"code"`
	Name      string   `json:"name,omitempty"`
	Amount    float64  `json:"amount"`
	Units     *float64 `json:"units,omitempty"`
	CostPrice *float64 `json:"cost_price,omitempty"`
	Status    string   `json:"status"`
	Error     string   `json:"error,omitempty"`
}

// FundImportResponse summarizes a whole import batch.
type FundImportResponse struct {
	Added   int                `json:"added"`
	Updated int                `json:"updated"`
	Failed  int                `json:"failed"`
	Items   []FundImportResult `json:"items"`
}
