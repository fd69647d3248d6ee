// Package olympiaparser parses Olympia Trust Company self-directed
// statement text. Olympia accounts hold exempt market securities, so the
// holdings all come out of the EXEMPT MARKET SECURITIES subsection and are
// recorded as alternatives without consulting the name classifier.
package olympiaparser

import (
	"regexp"
	"strings"

	"github.com/khahmed/personal-finance/internal/currencyutils"
	"github.com/khahmed/personal-finance/internal/dateutils"
	"github.com/khahmed/personal-finance/internal/logging"
	"github.com/khahmed/personal-finance/internal/models"
	"github.com/khahmed/personal-finance/internal/tablescan"
	"github.com/khahmed/personal-finance/internal/textutils"
)

const institution = "Olympia"

var (
	// Statement of Account RRSP - Self-Directed #262412
	accountPattern = regexp.MustCompile(`Statement of Account\s+([A-Z][A-Za-z\s-]+?)\s+#(\d+)`)

	// July 1, 2025 To September 30, 2025
	periodPattern = regexp.MustCompile(`(\w+ \d+, \d{4})\s+To\s+(\w+ \d+, \d{4})`)

	totalValuePattern = regexp.MustCompile(`Total Plan Value:\s+\$?([\d,]+\.?\d*)`)
	cashPattern       = regexp.MustCompile(`Total Cash Balance:\s+\$?([\d,]+\.?\d*)`)

	securitiesPattern = regexp.MustCompile(`(?s)SECURITIES HELD \(CAD\)(.*?)Total Securities:`)
	exemptPattern     = regexp.MustCompile(`(?s)EXEMPT MARKET SECURITIES\s*\n(.*)`)

	// Columns: units, item description, book value, unit price, market
	// value. Long issuer names continue on the following line.
	holdingPattern = regexp.MustCompile(`^([\d,]+\.?\d*)\s+(.+?)\s+\$?([\d,]+\.?\d*)\s+\$?([\d.]+)\s+\$?([\d,]+\.?\d*)$`)

	leadingDigitPattern = regexp.MustCompile(`^\d`)
)

// Parser extracts account information and exempt market holdings from
// Olympia Trust statements.
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

// ExtractAccountInfo populates account metadata. The account type is the
// raw plan label from the statement heading, e.g. "RRSP - Self-Directed".
func (p *Parser) ExtractAccountInfo(text string, rec *models.StatementRecord) {
	if m := accountPattern.FindStringSubmatch(text); m != nil {
		rec.AccountType = strings.TrimSpace(m[1])
		rec.AccountNumber = m[2]
	}

	if m := periodPattern.FindStringSubmatch(text); m != nil {
		if start, ok := dateutils.ParseDate(m[1]); ok {
			rec.PeriodStart = start
		}
		if end, ok := dateutils.ParseDate(m[2]); ok {
			rec.PeriodEnd = end
			rec.StatementDate = end
		}
	}

	if m := totalValuePattern.FindStringSubmatch(text); m != nil {
		rec.TotalValue = currencyutils.CleanCurrencyPtr(m[1])
	}

	if m := cashPattern.FindStringSubmatch(text); m != nil {
		rec.CashBalance = currencyutils.CleanCurrencyPtr(m[1])
	}
}

// ExtractHoldings parses the EXEMPT MARKET SECURITIES subsection of the
// SECURITIES HELD table.
func (p *Parser) ExtractHoldings(text string, rec *models.StatementRecord) []models.HoldingRecord {
	sm := securitiesPattern.FindStringSubmatch(text)
	if sm == nil {
		p.logger.Debug("No securities held section found",
			logging.Field{Key: logging.FieldParser, Value: institution})
		return rec.Holdings
	}

	em := exemptPattern.FindStringSubmatch(sm[1])
	if em == nil {
		return rec.Holdings
	}

	cfg := tablescan.Config{
		DefaultCurrency: models.CurrencyCAD,
		Skip: func(line string) bool {
			return strings.Contains(line, "Item Description") || strings.Contains(line, "Units")
		},
		Match: matchHoldingRow,
	}

	tablescan.Scan(textutils.SplitLines(em[1]), cfg, func(_ tablescan.State, row tablescan.Row) {
		if holding, ok := p.buildHolding(row, rec); ok {
			rec.Holdings = append(rec.Holdings, holding)
		}
	})

	return rec.Holdings
}

// matchHoldingRow matches one exempt market row, folding in the next line
// when it continues the security name.
func matchHoldingRow(line, next string) (tablescan.Row, bool) {
	m := holdingPattern.FindStringSubmatch(line)
	if m == nil {
		return tablescan.Row{}, false
	}

	row := tablescan.Row{
		Quantity:     m[1],
		SecurityName: strings.TrimSpace(m[2]),
		BookValue:    m[3],
		Price:        m[4],
		MarketValue:  m[5],
	}

	if next != "" && !leadingDigitPattern.MatchString(next) && !strings.Contains(next, "$") {
		row.SecurityName += " " + next
		row.Consumed = 2
	}

	return row, true
}

func (p *Parser) buildHolding(row tablescan.Row, rec *models.StatementRecord) (models.HoldingRecord, bool) {
	quantity, qok := currencyutils.CleanCurrencyValue(row.Quantity)
	price, pok := currencyutils.CleanCurrencyValue(row.Price)
	market, mok := currencyutils.CleanCurrencyValue(row.MarketValue)
	if !qok || !pok || !mok {
		p.logger.Debug("Dropping holding row with unparsed numeric columns",
			logging.Field{Key: logging.FieldSecurity, Value: row.SecurityName})
		return models.HoldingRecord{}, false
	}

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
		AssetType:     models.AssetTypeExempt,
		AssetCategory: models.CategoryAlternative,
		Currency:      models.CurrencyCAD,
	}, true
}
