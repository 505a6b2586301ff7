package model

import "github.com/shopspring/decimal"

func init() {
	// The backend reads and writes currency amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
