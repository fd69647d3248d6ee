// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementRecord represents one parsed investment statement.
// All scalar fields are optional; completeness is checked by the caller,
// not by the parser (see the validation package).
type StatementRecord struct {
	Institution   string                        `json:"institution"`
	AccountNumber string                        `json:"account_number"`
	AccountType   string                        `json:"account_type"`
	StatementDate time.Time                     `json:"statement_date"`
	PeriodStart   time.Time                     `json:"period_start"`
	PeriodEnd     time.Time                     `json:"period_end"`
	TotalValue    *decimal.Decimal              `json:"total_value,omitempty"`
	CashBalance   *decimal.Decimal              `json:"cash_balance,omitempty"`
	Holdings      []HoldingRecord               `json:"holdings"`
	Performance   map[string]map[string]float64 `json:"performance,omitempty"`
}

// HoldingRecord represents one line-item position within a statement.
// A record exists only when quantity, price and market value all parsed;
// partially parsed rows are dropped by the parsers.
type HoldingRecord struct {
	SecurityName  string           `json:"security_name" csv:"SecurityName"`
	Quantity      decimal.Decimal  `json:"quantity" csv:"Quantity"`
	Price         decimal.Decimal  `json:"price" csv:"Price"`
	BookValue     *decimal.Decimal `json:"book_value,omitempty" csv:"BookValue"`
	MarketValue   decimal.Decimal  `json:"market_value" csv:"MarketValue"`
	AccountType   string           `json:"account_type" csv:"AccountType"`
	AssetType     string           `json:"asset_type" csv:"AssetType"`
	AssetCategory string           `json:"asset_category" csv:"AssetCategory"`
	Currency      string           `json:"currency" csv:"Currency"`
}

// NewStatementRecord returns an empty record for the given institution.
// Parsers create one of these per Parse call; nothing is shared between
// two invocations.
func NewStatementRecord(institution string) *StatementRecord {
	return &StatementRecord{
		Institution: institution,
		Holdings:    []HoldingRecord{},
		Performance: map[string]map[string]float64{},
	}
}

// HasPeriod reports whether both period bounds were extracted.
func (r *StatementRecord) HasPeriod() bool {
	return !r.PeriodStart.IsZero() && !r.PeriodEnd.IsZero()
}
