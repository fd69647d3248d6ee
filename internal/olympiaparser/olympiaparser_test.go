package olympiaparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khahmed/personal-finance/internal/logging"
	"github.com/khahmed/personal-finance/internal/models"
)

const trustStatement = `Olympia Trust Company
Statement of Account RRSP - Self-Directed #262412
July 1, 2025 To September 30, 2025
Total Plan Value: $152,450.00
Total Cash Balance: $2,450.00

SECURITIES HELD (CAD)
EXEMPT MARKET SECURITIES
Units Item Description Book Value Unit Price Market Value
50,000.00 PARKLAND REIT LP $50,000.00 $1.10 $55,000.00
CLASS A UNITS
95,000.00 WESTPOINT CAPITAL MORTGAGE INVESTMENT CORP $95,000.00 $1.00 $95,000.00
Total Securities: $150,000.00
`

func newTestParser() (*Parser, *logging.MockLogger) {
	mock := &logging.MockLogger{}
	return New(mock), mock
}

func TestParseStatement(t *testing.T) {
	p, _ := newTestParser()
	rec := p.Parse(trustStatement)

	assert.Equal(t, "Olympia", rec.Institution)
	assert.Equal(t, "262412", rec.AccountNumber)

	// The plan label is kept verbatim rather than normalized.
	assert.Equal(t, "RRSP - Self-Directed", rec.AccountType)

	assert.Equal(t, "2025-07-01", rec.PeriodStart.Format("2006-01-02"))
	assert.Equal(t, "2025-09-30", rec.PeriodEnd.Format("2006-01-02"))
	assert.Equal(t, rec.PeriodEnd, rec.StatementDate)

	require.NotNil(t, rec.TotalValue)
	assert.Equal(t, "152450", rec.TotalValue.String())
	require.NotNil(t, rec.CashBalance)
	assert.Equal(t, "2450", rec.CashBalance.String())
}

func TestExtractHoldings(t *testing.T) {
	p, _ := newTestParser()
	rec := p.Parse(trustStatement)

	require.Len(t, rec.Holdings, 2)

	reit := rec.Holdings[0]
	// The CLASS A UNITS line continues the issuer name.
	assert.Equal(t, "PARKLAND REIT LP CLASS A UNITS", reit.SecurityName)
	assert.Equal(t, "50000", reit.Quantity.String())
	require.NotNil(t, reit.BookValue)
	assert.Equal(t, "50000", reit.BookValue.String())
	assert.Equal(t, "1.1", reit.Price.String())
	assert.Equal(t, "55000", reit.MarketValue.String())

	mic := rec.Holdings[1]
	assert.Equal(t, "WESTPOINT CAPITAL MORTGAGE INVESTMENT CORP", mic.SecurityName)
	assert.Equal(t, "95000", mic.Quantity.String())

	// Exempt market rows are classified without consulting security names.
	for _, h := range rec.Holdings {
		assert.Equal(t, models.AssetTypeExempt, h.AssetType)
		assert.Equal(t, models.CategoryAlternative, h.AssetCategory)
		assert.Equal(t, models.CurrencyCAD, h.Currency)
		assert.Equal(t, "RRSP - Self-Directed", h.AccountType)
	}
}

func TestNoSecuritiesSection(t *testing.T) {
	p, mock := newTestParser()
	rec := p.Parse("Statement of Account TFSA - Self-Directed #100\nJanuary 1, 2025 To March 31, 2025")

	assert.Empty(t, rec.Holdings)
	assert.True(t, mock.HasMessage("No securities held section found"))
}

func TestNoExemptSubsection(t *testing.T) {
	p, _ := newTestParser()
	text := "SECURITIES HELD (CAD)\nUnits Item Description\nTotal Securities: $0.00\n"
	rec := models.NewStatementRecord("Olympia")
	assert.Empty(t, p.ExtractHoldings(text, rec))
}

func TestDefaultAccountType(t *testing.T) {
	p, _ := newTestParser()
	text := "SECURITIES HELD (CAD)\nEXEMPT MARKET SECURITIES\n100.00 ACME EXEMPT FUND $100.00 $1.00 $100.00\nTotal Securities: $100.00\n"
	rec := models.NewStatementRecord("Olympia")

	holdings := p.ExtractHoldings(text, rec)
	require.Len(t, holdings, 1)
	assert.Equal(t, models.AccountTypeRRSP, holdings[0].AccountType)
}

func TestParseIsIdempotent(t *testing.T) {
	p, _ := newTestParser()
	assert.Equal(t, p.Parse(trustStatement), p.Parse(trustStatement))
}
