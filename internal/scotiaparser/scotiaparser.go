// Package scotiaparser parses ScotiaBank (ScotiaMcLeod) statement text.
// ScotiaMcLeod documents come in two layouts: monthly statements, whose
// text extraction sometimes collapses the spaces out of field labels, and
// trade confirmation notices. Every field is therefore probed with a
// primary pattern plus collapsed and confirmation alternates.
package scotiaparser

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

const institution = "ScotiaBank"

var (
	// Confirmation notices print U+2212 minus signs inside account numbers.
	accountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Account\s*Number:\s*(\d+-\d+-\d+)`),
		regexp.MustCompile(`AccountNumber:\s*(\d+-\d+-\d+)`),
		regexp.MustCompile(`ACCOUNT\s*NO\.\s*(\d+[−\-]\d+[−\-]?\d*)`),
	}

	accountTypePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Account\s*Type:\s*([^\n]+)`),
		regexp.MustCompile(`AccountType:\s*([^\n]+)`),
		regexp.MustCompile(`ACCOUNT\s*NO\.\s*\d+[−\-]\d+(?:[−\-]\d+)?[−\s]*(GRSP|RRSP|TFSA)`),
	}

	periodPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)For\s*the\s*Period:\s*(\w+)\s*(\d+)\s*to\s*(\d+),\s*(\d{4})`),
		regexp.MustCompile(`ForthePeriod:\s*(\w+)(\d+)to(\d+),(\d{4})`),
	}

	// OCTOBER 6, 2025
	confirmationDatePattern = regexp.MustCompile(`([A-Z]+)\s+(\d+),\s+(\d{4})`)

	totalValuePattern = regexp.MustCompile(`Total Value of Account\s+\$?([\d,]+\.?\d*)`)
	cashPattern       = regexp.MustCompile(`(?m)^Cash\s+\$?([\d,]+\.?\d*)$`)

	holdingsPattern = regexp.MustCompile(`(?s)Details of Your Account Holdings.*?Security.*?Description.*?Quantity.*?(.*?)(?:Total Account Holdings|\z)`)

	// Columns: quantity, average cost, book value, price, market value.
	// The average cost column is not recorded.
	numbersPattern = regexp.MustCompile(`^([\d,]+\.?\d*)\s+([\d.]+)\s+([\d,]+\.?\d*)\s+([\d.]+)\s+([\d,]+\.?\d*)$`)

	// Single-line form with the security name leading the same columns.
	singleLinePattern = regexp.MustCompile(`^(.+?)\s+([\d,]+\.?\d*)\s+([\d.]+)\s+([\d,]+\.?\d*)\s+([\d.]+)\s+([\d,]+\.?\d*)$`)
)

// accountTypeLabels normalizes the labels Scotia prints, including the
// collapsed-space forms, onto account types. GRSP group plans are
// registered retirement accounts.
var accountTypeLabels = map[string]string{
	"RegisteredRetirementSavingsPlan": models.AccountTypeRRSP,
	"Tax-FreeSavingsAccount":          models.AccountTypeTFSA,
	"GRSP":                            models.AccountTypeRRSP,
}

// Parser extracts account information and holdings from ScotiaBank
// statements and confirmation notices.
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

// ExtractAccountInfo populates account metadata, probing the statement
// patterns first and the confirmation notice forms last.
func (p *Parser) ExtractAccountInfo(text string, rec *models.StatementRecord) {
	if number, ok := textutils.FirstGroup(text, accountPatterns...); ok {
		rec.AccountNumber = strings.ReplaceAll(number, "−", "-")
	}

	if label, ok := textutils.FirstGroup(text, accountTypePatterns...); ok {
		if mapped, known := accountTypeLabels[label]; known {
			rec.AccountType = mapped
		} else {
			rec.AccountType = label
		}
	}

	if m := textutils.FirstSubmatch(text, periodPatterns...); m != nil {
		month := titleMonth(m[1])
		start, sok := dateutils.ParseDate(month + " " + m[2] + ", " + m[4])
		end, eok := dateutils.ParseDate(month + " " + m[3] + ", " + m[4])
		if sok {
			rec.PeriodStart = start
		}
		if eok {
			rec.PeriodEnd = end
			rec.StatementDate = end
		}
	} else if cm := confirmationDatePattern.FindStringSubmatch(text); cm != nil {
		if date, ok := dateutils.ParseDate(titleMonth(cm[1]) + " " + cm[2] + ", " + cm[3]); ok {
			rec.StatementDate = date
		}
	}

	if m := totalValuePattern.FindStringSubmatch(text); m != nil {
		rec.TotalValue = currencyutils.CleanCurrencyPtr(m[1])
	}

	if m := cashPattern.FindStringSubmatch(text); m != nil {
		rec.CashBalance = currencyutils.CleanCurrencyPtr(m[1])
	}
}

// ExtractHoldings locates the Details of Your Account Holdings table.
// Rows appear either on a single line or split across two, with the
// security name alone on the first. Rows before the first section header
// belong to the Cash section.
func (p *Parser) ExtractHoldings(text string, rec *models.StatementRecord) []models.HoldingRecord {
	m := holdingsPattern.FindStringSubmatch(text)
	if m == nil {
		p.logger.Debug("No account holdings section found",
			logging.Field{Key: logging.FieldParser, Value: institution})
		return rec.Holdings
	}

	cfg := tablescan.Config{
		InitialCategory: "Cash",
		DefaultCurrency: models.CurrencyCAD,
		Category:        tablescan.ExactCategories("Cash", "Fixed Income", "Equity", "Multi-Asset"),
		Skip: func(line string) bool {
			return strings.Contains(line, "Subtotal") ||
				strings.Contains(line, "Total") ||
				strings.Contains(line, "Pending")
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

func matchHoldingRow(line, next string) (tablescan.Row, bool) {
	// A line without digits is a candidate security name for the two-line
	// form; the numeric columns must then follow on the next line.
	if !textutils.ContainsDigit(line) {
		if m := numbersPattern.FindStringSubmatch(next); m != nil {
			return tablescan.Row{
				SecurityName: line,
				Quantity:     m[1],
				BookValue:    m[3],
				Price:        m[4],
				MarketValue:  m[5],
				Consumed:     2,
			}, true
		}
		return tablescan.Row{}, false
	}

	if m := singleLinePattern.FindStringSubmatch(line); m != nil {
		return tablescan.Row{
			SecurityName: strings.TrimSpace(m[1]),
			Quantity:     m[2],
			BookValue:    m[4],
			Price:        m[5],
			MarketValue:  m[6],
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
		AssetType:     c.AssetType,
		AssetCategory: classifier.ApplySection(c, st.Category),
		Currency:      st.Currency,
	}, true
}

// titleMonth normalizes an all-caps month name from a confirmation notice
// to the capitalization the date layouts expect.
func titleMonth(month string) string {
	if month == "" {
		return month
	}
	return strings.ToUpper(month[:1]) + strings.ToLower(month[1:])
}
