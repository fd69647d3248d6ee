// Package cibcedgeparser parses CIBC Investor's Edge self-directed
// statement text. It handles RRSP, TFSA and non-registered investment
// accounts, including statements split into Canadian-dollar and U.S.-dollar
// portfolio sections.
package cibcedgeparser

import (
	"regexp"
	"strings"

	"github.com/khahmed/personal-finance/internal/classifier"
	"github.com/khahmed/personal-finance/internal/currencyutils"
	"github.com/khahmed/personal-finance/internal/dateutils"
	"github.com/khahmed/personal-finance/internal/logging"
	"github.com/khahmed/personal-finance/internal/models"
	"github.com/khahmed/personal-finance/internal/tablescan"
	"github.com/khahmed/personal-finance/internal/textutils"
)

const institution = "CIBC"

var (
	// Account # 596-30991
	accountPattern = regexp.MustCompile(`(?i)Account\s*#\s*(\d+-\d+)`)

	// October 1-October 31, 2025
	periodPattern = regexp.MustCompile(`([A-Za-z]+)\s+(\d+)-([A-Za-z]+)\s+(\d+),\s+(\d{4})`)

	// total portfolio 100% $114,324.32
	totalPattern = regexp.MustCompile(`(?i)total\s+portfolio\s+\d+%\s+\$?([\d,]+\.?\d*)`)

	// Cash & Cash Equivalents 18% $20,224.15
	cashPattern = regexp.MustCompile(`(?i)Cash\s*&\s*Cash\s+Equivalents\s+\d+%\s+\$?([\d,]+\.?\d*)`)

	// Bounds of the Portfolio Assets table: from the column header to the
	// first trailing section.
	portfolioPattern = regexp.MustCompile(`(?is)Portfolio Assets.*?description\s+quantity\s+book\s+value\s+current\s+market\s+value.*?(.*?)(?:Messages|Disclosures|total portfolio in)`)

	usDollarsPattern  = regexp.MustCompile(`(?i)U\.?S\.?\s+Dollars`)
	cadDollarsPattern = regexp.MustCompile(`(?i)Canadian Dollars`)

	// TELUS CORPORATION 400 $9,074.20 20.510 $8,204.00 400
	// Transferred positions carry an optional marker before the price:
	// INTERNATIONAL BUSINESS 737 $99,988.79 ƒ 307.410 $226,561.17 737
	holdingPattern = regexp.MustCompile(`^(.+?)\s+([\d,]+(?:\.\d+)?)\s+\$?([\d,]+\.\d+)\s+ƒ?\s*([\d,]+\.\d+)\s+\$?([\d,]+\.\d+)\s*(\d+)?`)
)

// Parser extracts account information and holdings from CIBC Investor's
// Edge statements. One instance is scoped to one document; Parse shares no
// state between calls.
type Parser struct {
	logger logging.Logger
}

var _ models.StatementParser = (*Parser)(nil)

// New creates a parser. A nil logger falls back to the default.
func New(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{logger: logger}
}

// Parse extracts account information then holdings from the statement text.
func (p *Parser) Parse(text string) *models.StatementRecord {
	rec := models.NewStatementRecord(institution)
	p.ExtractAccountInfo(text, rec)
	p.ExtractHoldings(text, rec)
	return rec
}

// ExtractAccountInfo populates account metadata. Every field degrades
// independently: a pattern that does not match leaves its field unset.
func (p *Parser) ExtractAccountInfo(text string, rec *models.StatementRecord) {
	if m := accountPattern.FindStringSubmatch(text); m != nil {
		rec.AccountNumber = m[1]
	}

	// The account type comes from the statement title.
	switch {
	case strings.Contains(text, "Registered Retirement Savings Plan"):
		rec.AccountType = models.AccountTypeRRSP
	case strings.Contains(text, "Tax Free Savings Account"):
		rec.AccountType = models.AccountTypeTFSA
	case strings.Contains(text, "Investment Account") && strings.Contains(text, "Investor's Edge"):
		rec.AccountType = models.AccountTypeNonRegistered
	}

	if m := periodPattern.FindStringSubmatch(text); m != nil {
		start, sok := dateutils.ParseDate(m[1] + " " + m[2] + ", " + m[5])
		end, eok := dateutils.ParseDate(m[3] + " " + m[4] + ", " + m[5])
		if sok {
			rec.PeriodStart = start
		}
		if eok {
			rec.PeriodEnd = end
			rec.StatementDate = end
		}
	}

	if m := totalPattern.FindStringSubmatch(text); m != nil {
		rec.TotalValue = currencyutils.CleanCurrencyPtr(m[1])
	}

	if m := cashPattern.FindStringSubmatch(text); m != nil {
		rec.CashBalance = currencyutils.CleanCurrencyPtr(m[1])
	}
}

// ExtractHoldings locates the Portfolio Assets table and parses its rows.
// The table can contain several category sections and separate Canadian
// and U.S. dollar currency sections.
func (p *Parser) ExtractHoldings(text string, rec *models.StatementRecord) []models.HoldingRecord {
	m := portfolioPattern.FindStringSubmatch(text)
	if m == nil {
		p.logger.Debug("No portfolio assets section found",
			logging.Field{Key: logging.FieldParser, Value: institution})
		return rec.Holdings
	}

	cfg := tablescan.Config{
		DefaultCurrency: models.CurrencyCAD,
		Currency:        currencySection,
		Category: tablescan.ExactCategories(
			"Cash & Cash Equivalents", "Equities", "Mutual Funds", "Fixed Income"),
		Skip:  skipLine,
		Match: matchHoldingRow,
	}

	tablescan.Scan(textutils.SplitLines(m[1]), cfg, func(st tablescan.State, row tablescan.Row) {
		if holding, ok := p.buildHolding(st, row, rec); ok {
			rec.Holdings = append(rec.Holdings, holding)
		}
	})

	return rec.Holdings
}

// currencySection recognizes the currency headers. A U.S. dollar header is
// purely a header and is consumed; a "Canadian Dollars" mention may sit on
// a subtotal line that still has to pass through the skip rules.
func currencySection(line string) (string, bool, bool) {
	if usDollarsPattern.MatchString(line) {
		return models.CurrencyUSD, true, true
	}
	if cadDollarsPattern.MatchString(line) {
		return models.CurrencyCAD, false, true
	}
	return "", false, false
}

func skipLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "subtotal") || strings.HasPrefix(lower, "total portfolio") {
		return true
	}
	// Column headers and repeated page headers.
	if strings.Contains(lower, "description") && strings.Contains(lower, "quantity") {
		return true
	}
	return strings.Contains(line, "Investor's Edge") || strings.Contains(line, "Account #")
}

func matchHoldingRow(line, _ string) (tablescan.Row, bool) {
	m := holdingPattern.FindStringSubmatch(line)
	if m == nil {
		return tablescan.Row{}, false
	}
	return tablescan.Row{
		SecurityName: strings.TrimSpace(m[1]),
		Quantity:     m[2],
		BookValue:    m[3],
		Price:        m[4],
		MarketValue:  m[5],
	}, true
}

func (p *Parser) buildHolding(st tablescan.State, row tablescan.Row, rec *models.StatementRecord) (models.HoldingRecord, bool) {
	quantity, qok := currencyutils.CleanCurrencyValue(row.Quantity)
	price, pok := currencyutils.CleanCurrencyValue(row.Price)
	market, mok := currencyutils.CleanCurrencyValue(row.MarketValue)
	if !qok || !pok || !mok {
		p.logger.Debug("Dropping holding row with unparsed numeric columns",
			logging.Field{Key: logging.FieldSecurity, Value: row.SecurityName})
		return models.HoldingRecord{}, false
	}

	c := classifier.Classify(row.SecurityName)

	accountType := rec.AccountType
	if accountType == "" {
		accountType = models.AccountTypeRRSP
	}

	return models.HoldingRecord{
		SecurityName:  row.SecurityName,
		Quantity:      quantity,
		Price:         price,
		BookValue:     currencyutils.CleanCurrencyPtr(row.BookValue),
		MarketValue:   market,
		AccountType:   accountType,
		AssetType:     c.AssetType,
		AssetCategory: classifier.ApplySection(c, st.Category),
		Currency:      st.Currency,
	}, true
}
