package service

import "github.com/shopspring/decimal"

// Monetary values round to 2 decimals, prices to 4, cost basis to 6.

func round2(value float64) float64 {
	return roundTo(value, 2)
}

func round4(value float64) float64 {
	return roundTo(value, 4)
}

func round6(value float64) float64 {
	return roundTo(value, 6)
}

func roundTo(value float64, places int32) float64 {
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}
