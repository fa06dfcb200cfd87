package request

// FundImportItem is one (code, purchase amount) pair of an import batch.
type FundImportItem struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
	Name   string  `json:"name,omitempty"`
}

// ImportFundsRequest is the POST /api/portfolio/import-funds body.
type ImportFundsRequest struct {
	Items []FundImportItem `json:"items"`
}
