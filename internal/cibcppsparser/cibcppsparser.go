// Package cibcppsparser parses CIBC Personal Portfolio Services managed
// account statements. PPS holdings tables interleave asset-class labels
// with the rows: a label can stand on its own line or prefix the first row
// of its section, so the row matcher carries the label back into the
// scanner state.
package cibcppsparser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/khahmed/personal-finance/internal/classifier"
	"github.com/khahmed/personal-finance/internal/currencyutils"
	"github.com/khahmed/personal-finance/internal/dateutils"
	"github.com/khahmed/personal-finance/internal/logging"
	"github.com/khahmed/personal-finance/internal/models"
	"github.com/khahmed/personal-finance/internal/tablescan"
	"github.com/khahmed/personal-finance/internal/textutils"
)

// Both CIBC formats record the same institution so holdings group together
// downstream; the account type distinguishes PPS accounts.
const institution = "CIBC"

// categoryLabels is the alternation of asset-class labels that appear in
// PPS holdings tables, standalone or prefixed to a row.
const categoryLabels = `Cash and Cash Equivalents|Fixed Income|Canadian Short-Term Bonds?|Canadian Long-Term Bonds?|Canadian Bonds?|Equities|Canadian Equities|U\.S\. Equities|International and Global Equities`

var (
	accountNumberPattern = regexp.MustCompile(`(?i)Account\s+Number:\s*(\d+)`)
	accountTypePattern   = regexp.MustCompile(`(?i)Account\s+Type:\s*([^\n]+)`)
	periodEndPattern     = regexp.MustCompile(`(?i)For\s+the\s+period\s+ending:\s*([A-Za-z]+\s+\d{1,2},\s+\d{4})`)
	endingValuePattern   = regexp.MustCompile(`(?i)Ending\s+Account\s+Value\s+([\d,]+\.\d+)`)

	// The Total Cash row carries book value then market value; the market
	// value is the cash balance.
	cashPattern = regexp.MustCompile(`(?is)Cash\s+and\s+Cash\s+Equivalents\s+Total\s+Cash.*?\s([\d,]+\.\d+)\s+([\d,]+\.\d+)`)

	// The holdings section header is letter-spaced in the document text.
	holdingsPattern = regexp.MustCompile(`(?is)Y\s*O\s*U\s*R\s+A\s*C\s*C\s*O\s*U\s*N\s*T\s+H\s*O\s*L\s*D\s*I\s*N\s*G\s*S.*?Number.*?Description.*?(.*?)(?:Total\s+Account|Holdings|\*\d+\*)`)

	standaloneCategoryPattern = regexp.MustCompile(`(?i)^(` + categoryLabels + `)$`)

	// Columns: units, description, book cost, unit price, market value.
	// 2214.7673 Imperial Short-Term Bond Pool 22,157.41 10.0983 22,365.38
	plainRowPattern = regexp.MustCompile(`^([\d,]+\.\d+)\s+(.+?)\s+([\d,]+\.\d+)\s+([\d,]+\.\d+)\s+([\d,]+\.\d+)$`)

	// The same columns with the section label prefixed to the row.
	// Fixed Income 2214.7673 Imperial Short-Term Bond Pool 22,157.41 10.0983 22,365.38
	categoryRowPattern = regexp.MustCompile(`(?i)^(` + categoryLabels + `)\s+([\d,]+\.\d+)\s+(.+?)\s+([\d,]+\.\d+)\s+([\d,]+\.\d+)\s+([\d,]+\.\d+)$`)
)

// Parser extracts account information and holdings from CIBC PPS
// statements.
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

// ExtractAccountInfo populates account metadata. PPS account types are
// recorded as the raw label printed on the statement.
func (p *Parser) ExtractAccountInfo(text string, rec *models.StatementRecord) {
	if number, ok := textutils.FirstGroup(text, accountNumberPattern); ok {
		rec.AccountNumber = number
	}
	if accountType, ok := textutils.FirstGroup(text, accountTypePattern); ok {
		rec.AccountType = accountType
	}

	if raw, ok := textutils.FirstGroup(text, periodEndPattern); ok {
		if date, dok := dateutils.ParseDate(dateutils.CleanDateString(raw)); dok {
			rec.StatementDate = date
			rec.PeriodEnd = date
		}
	}

	if m := endingValuePattern.FindStringSubmatch(text); m != nil {
		rec.TotalValue = currencyutils.CleanCurrencyPtr(m[1])
	}

	// Managed accounts are often fully invested; the cash balance defaults
	// to zero when the Total Cash row is absent.
	if m := cashPattern.FindStringSubmatch(text); m != nil {
		rec.CashBalance = currencyutils.CleanCurrencyPtr(m[2])
	} else {
		zero := decimal.Zero
		rec.CashBalance = &zero
	}
}

// ExtractHoldings locates the account holdings table and parses its rows.
func (p *Parser) ExtractHoldings(text string, rec *models.StatementRecord) []models.HoldingRecord {
	m := holdingsPattern.FindStringSubmatch(text)
	if m == nil {
		p.logger.Debug("No account holdings section found",
			logging.Field{Key: logging.FieldParser, Value: institution})
		return rec.Holdings
	}

	cfg := tablescan.Config{
		DefaultCurrency: models.CurrencyCAD,
		Category: func(line string) (string, bool) {
			if sm := standaloneCategoryPattern.FindStringSubmatch(line); sm != nil {
				return sm[1], true
			}
			return "", false
		},
		Skip: func(line string) bool {
			return strings.HasPrefix(line, "Total ")
		},
		Match: matchHoldingRow,
	}

	tablescan.Scan(textutils.SplitLines(m[1]), cfg, func(st tablescan.State, row tablescan.Row) {
		if holding, ok := p.buildHolding(st, row, rec); ok {
			rec.Holdings = append(rec.Holdings, holding)
		}
	})

	return rec.Holdings
}

// matchHoldingRow recognizes both row shapes. A category-prefixed row both
// emits a holding and moves the scanner into that category for the rows
// that follow it.
func matchHoldingRow(line, _ string) (tablescan.Row, bool) {
	if m := categoryRowPattern.FindStringSubmatch(line); m != nil {
		return tablescan.Row{
			Category:     m[1],
			Quantity:     m[2],
			SecurityName: strings.TrimSpace(m[3]),
			BookValue:    m[4],
			Price:        m[5],
			MarketValue:  m[6],
		}, true
	}
	if m := plainRowPattern.FindStringSubmatch(line); m != nil {
		return tablescan.Row{
			Quantity:     m[1],
			SecurityName: strings.TrimSpace(m[2]),
			BookValue:    m[3],
			Price:        m[4],
			MarketValue:  m[5],
		}, true
	}
	return tablescan.Row{}, false
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
		AssetType:     poolAssetType(row.SecurityName, c),
		AssetCategory: sectionCategory(c, st.Category),
		Currency:      st.Currency,
	}, true
}

// poolAssetType refines the classification for CIBC's proprietary pooled
// funds, whose names rarely carry the keywords the classifier relies on.
func poolAssetType(name string, c classifier.Classification) string {
	if !strings.Contains(name, "Pool") {
		return c.AssetType
	}
	switch {
	case strings.Contains(name, "Bond"):
		return models.AssetTypeMutualFundFixedIncome
	case strings.Contains(name, "Equity") || strings.Contains(name, "Dividend"):
		return models.AssetTypeMutualFundEquity
	default:
		return models.AssetTypeMutualFund
	}
}

// sectionCategory maps PPS section labels onto categories. PPS labels are
// authoritative for this format, stronger than the shared section rule:
// every row under a Cash and Cash Equivalents label is cash regardless of
// how its name classifies.
func sectionCategory(c classifier.Classification, section string) string {
	if section == "" {
		return c.AssetCategory
	}
	label := strings.ToLower(section)
	switch {
	case strings.Contains(label, "equit"):
		return models.CategoryEquity
	case strings.Contains(label, "fixed income") || strings.Contains(label, "bond"):
		return models.CategoryFixedIncome
	case strings.Contains(label, "cash"):
		return models.CategoryCash
	}
	return c.AssetCategory
}
