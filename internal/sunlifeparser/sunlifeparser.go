// Package sunlifeparser parses Sun Life group retirement statement text.
// A single Sun Life document can cover several plans: the RRSP and LIRA
// holdings each live in their own "My investments" section, and the
// personal rates of return are reported per plan as well.
package sunlifeparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/khahmed/personal-finance/internal/classifier"
	"github.com/khahmed/personal-finance/internal/currencyutils"
	"github.com/khahmed/personal-finance/internal/dateutils"
	"github.com/khahmed/personal-finance/internal/logging"
	"github.com/khahmed/personal-finance/internal/models"
	"github.com/khahmed/personal-finance/internal/tablescan"
	"github.com/khahmed/personal-finance/internal/textutils"
)

const institution = "SunLife"

var (
	accountPattern = regexp.MustCompile(`Account number:\s*(\d+)`)

	rrspTitlePattern = regexp.MustCompile(`Registered Retirement Savings Plan \(RRSP\)`)
	liraTitlePattern = regexp.MustCompile(`Locked-in Retirement Account \(LIRA\)`)
	groupPattern     = regexp.MustCompile(`Group Choices Plan`)

	// For the period January 1 to June 30, 2025
	periodPattern = regexp.MustCompile(`For the period\s+(\w+ \d+)\s+to\s+(\w+ \d+,\s*\d{4})`)

	// Value of my plans on June 30, 2025 ............ $118,000.00
	totalValuePattern = regexp.MustCompile(`Value of my plans on \w+ \d+, \d{4}\s*\.+\s*\$?([\d,]+\.?\d*)`)

	rrspHoldingsPattern = regexp.MustCompile(`(?s)My Registered Retirement Savings Plan \(RRSP\).*?My investments.*?INVESTMENT NAME.*?\n(.*?)(?:Total investments|\z)`)
	liraHoldingsPattern = regexp.MustCompile(`(?s)My Locked-in Retirement Account \(LIRA\).*?My investments.*?INVESTMENT NAME.*?\n(.*?)(?:Total investments|\z)`)

	// Columns: investment name, units, unit price, market value. Sun Life
	// tables carry no book cost.
	holdingPattern = regexp.MustCompile(`^(.+?)\s+([\d,]+\.?\d*)\s+\$?([\d,]+\.?\d*)\s+\$?([\d,]+\.?\d*)$`)

	// The 5 YEAR column prints "-" for plans younger than five years, so
	// it is matched loosely and dropped; the final column is the return
	// since inception.
	rrspPerformancePattern = regexp.MustCompile(`(?s)Personal rates of return for my Registered Retirement Savings\s*Plan.*?3 MONTH\s+YEAR-TO-DATE\s+1 YEAR\s+3 YEAR\s+5 YEAR.*?([\d.]+)%\s+([\d.]+)%\s+([\d.]+)%\s+([\d.]+)%\s+[-\d.]+\s+([\d.]+)%`)
	liraPerformancePattern = regexp.MustCompile(`(?s)Personal rates of return for my Locked-in Retirement Account.*?3 MONTH\s+YEAR-TO-DATE\s+1 YEAR\s+3 YEAR\s+5 YEAR.*?([\d.]+)%\s+([\d.]+)%\s+([\d.]+)%\s+([\d.]+)%\s+[-\d.]+\s+([\d.]+)%`)
)

var sectionLabels = []string{
	"Foreign/global equity", "Balanced", "Fixed income",
	"Canadian equity", "U.S. equity", "International equity",
}

// Parser extracts account information, per-plan holdings and personal
// rates of return from Sun Life statements.
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

// Parse extracts account information, holdings and performance from the
// statement text.
func (p *Parser) Parse(text string) *models.StatementRecord {
	rec := models.NewStatementRecord(institution)
	p.ExtractAccountInfo(text, rec)
	p.ExtractHoldings(text, rec)
	p.ExtractPerformance(text, rec)
	return rec
}

// ExtractAccountInfo populates account metadata. When a statement covers
// several plans the account type records the highest-priority one: RRSP,
// then LIRA, then the group plan.
func (p *Parser) ExtractAccountInfo(text string, rec *models.StatementRecord) {
	if m := accountPattern.FindStringSubmatch(text); m != nil {
		rec.AccountNumber = m[1]
	}

	switch {
	case rrspTitlePattern.MatchString(text):
		rec.AccountType = models.AccountTypeRRSP
	case liraTitlePattern.MatchString(text):
		rec.AccountType = models.AccountTypeLIRA
	case groupPattern.MatchString(text):
		rec.AccountType = models.AccountTypeGroupPlan
	default:
		rec.AccountType = models.AccountTypeGroupPlan
	}

	if m := periodPattern.FindStringSubmatch(text); m != nil {
		endStr := dateutils.CleanDateString(m[2])
		startStr := m[1]
		// The start date borrows its year from the end date.
		if year := yearPattern.FindString(endStr); year != "" {
			startStr += ", " + year
		}
		if start, ok := dateutils.ParseDate(startStr); ok {
			rec.PeriodStart = start
		}
		if end, ok := dateutils.ParseDate(endStr); ok {
			rec.PeriodEnd = end
			rec.StatementDate = end
		}
	}

	if m := totalValuePattern.FindStringSubmatch(text); m != nil {
		rec.TotalValue = currencyutils.CleanCurrencyPtr(m[1])
	}
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// ExtractHoldings parses the RRSP and LIRA investment sections. Each
// section's rows carry that plan's account type regardless of the
// statement-level one.
func (p *Parser) ExtractHoldings(text string, rec *models.StatementRecord) []models.HoldingRecord {
	if m := rrspHoldingsPattern.FindStringSubmatch(text); m != nil {
		p.parseSection(m[1], models.AccountTypeRRSP, rec)
	}
	if m := liraHoldingsPattern.FindStringSubmatch(text); m != nil {
		p.parseSection(m[1], models.AccountTypeLIRA, rec)
	}
	return rec.Holdings
}

func (p *Parser) parseSection(section, accountType string, rec *models.StatementRecord) {
	containsSection := tablescan.ContainsCategories(sectionLabels...)

	cfg := tablescan.Config{
		DefaultCurrency: models.CurrencyCAD,
		// Fund names can embed label words ("Granite Balanced
		// Portfolio"), so only digit-free lines count as headers.
		Category: func(line string) (string, bool) {
			if textutils.ContainsDigit(line) {
				return "", false
			}
			return containsSection(line)
		},
		Match: func(line, _ string) (tablescan.Row, bool) {
			m := holdingPattern.FindStringSubmatch(line)
			if m == nil {
				return tablescan.Row{}, false
			}
			return tablescan.Row{
				SecurityName: strings.TrimSpace(m[1]),
				Quantity:     m[2],
				Price:        m[3],
				MarketValue:  m[4],
			}, true
		},
	}

	tablescan.Scan(textutils.SplitLines(section), cfg, func(st tablescan.State, row tablescan.Row) {
		if holding, ok := p.buildHolding(st, row, accountType); ok {
			rec.Holdings = append(rec.Holdings, holding)
		}
	})
}

func (p *Parser) buildHolding(st tablescan.State, row tablescan.Row, accountType string) (models.HoldingRecord, bool) {
	quantity, qok := currencyutils.CleanCurrencyValue(row.Quantity)
	price, pok := currencyutils.CleanCurrencyValue(row.Price)
	market, mok := currencyutils.CleanCurrencyValue(row.MarketValue)
	if !qok || !pok || !mok {
		p.logger.Debug("Dropping holding row with unparsed numeric columns",
			logging.Field{Key: logging.FieldSecurity, Value: row.SecurityName})
		return models.HoldingRecord{}, false
	}

	c := classifier.Classify(row.SecurityName)

	return models.HoldingRecord{
		SecurityName:  row.SecurityName,
		Quantity:      quantity,
		Price:         price,
		MarketValue:   market,
		AccountType:   accountType,
		AssetType:     c.AssetType,
		AssetCategory: classifier.ApplySection(c, st.Category),
		Currency:      st.Currency,
	}, true
}

// ExtractPerformance parses the per-plan personal rates of return into
// rec.Performance under the plan keys "rrsp" and "lira".
func (p *Parser) ExtractPerformance(text string, rec *models.StatementRecord) {
	if horizons := matchPerformance(rrspPerformancePattern, text); horizons != nil {
		rec.Performance["rrsp"] = horizons
	}
	if horizons := matchPerformance(liraPerformancePattern, text); horizons != nil {
		rec.Performance["lira"] = horizons
	}
}

func matchPerformance(pattern *regexp.Regexp, text string) map[string]float64 {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	keys := []string{
		models.HorizonThreeMonth,
		models.HorizonYearToDate,
		models.HorizonOneYear,
		models.HorizonThreeYear,
		models.HorizonInception,
	}
	horizons := make(map[string]float64, len(keys))
	for i, key := range keys {
		value, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return nil
		}
		horizons[key] = value
	}
	return horizons
}
