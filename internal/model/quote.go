package model

// Quote sources.
const (
	SourceEastmoney = "eastmoney"
	SourceTencent   = "tencent"
)

// RawQuote is a normalized quote from one of the external data sources.
// Ephemeral: produced by the quote provider, cached briefly, consumed once
// per valuation.
type RawQuote struct {
	Code          string
	Name          string
	Price         float64
	ChangePercent *float64
	QuoteTime     string
	Source        string
}
