package sunlifeparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khahmed/personal-finance/internal/logging"
	"github.com/khahmed/personal-finance/internal/models"
)

const groupStatement = `Sun Life Group Retirement Services
Account number: 1234567
For the period January 1 to June 30, 2025
Value of my plans on June 30, 2025 ............ $118,000.00

My Registered Retirement Savings Plan (RRSP)
My investments
INVESTMENT NAME NUMBER OF UNITS UNIT VALUE TOTAL VALUE ($)
Canadian equity
BlackRock LifePath Index 2045 Fund 1,000.0000 25.0000 25,000.00
Fixed income
Sun Life Bond Fund 500.0000 20.0000 10,000.00
Total investments $35,000.00

My Locked-in Retirement Account (LIRA)
My investments
INVESTMENT NAME NUMBER OF UNITS UNIT VALUE TOTAL VALUE ($)
Balanced
Granite Balanced Portfolio 2,000.0000 41.5000 83,000.00
Total investments $83,000.00

Personal rates of return for my Registered Retirement Savings Plan
3 MONTH YEAR-TO-DATE 1 YEAR 3 YEAR 5 YEAR SINCE INCEPTION
2.50% 5.10% 8.30% 6.20% - 7.10%

Personal rates of return for my Locked-in Retirement Account
3 MONTH YEAR-TO-DATE 1 YEAR 3 YEAR 5 YEAR SINCE INCEPTION
1.80% 4.20% 7.50% 5.90% - 6.40%
`

func newTestParser() (*Parser, *logging.MockLogger) {
	mock := &logging.MockLogger{}
	return New(mock), mock
}

func TestParseStatement(t *testing.T) {
	p, _ := newTestParser()
	rec := p.Parse(groupStatement)

	assert.Equal(t, "SunLife", rec.Institution)
	assert.Equal(t, "1234567", rec.AccountNumber)

	// RRSP outranks LIRA when a statement covers both plans.
	assert.Equal(t, models.AccountTypeRRSP, rec.AccountType)

	// The period start borrows its year from the period end.
	assert.Equal(t, "2025-01-01", rec.PeriodStart.Format("2006-01-02"))
	assert.Equal(t, "2025-06-30", rec.PeriodEnd.Format("2006-01-02"))
	assert.Equal(t, rec.PeriodEnd, rec.StatementDate)

	require.NotNil(t, rec.TotalValue)
	assert.Equal(t, "118000", rec.TotalValue.String())
}

func TestAccountTypePriority(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"LIRA only", "My Locked-in Retirement Account (LIRA)", models.AccountTypeLIRA},
		{"Group plan", "Sun Life Group Choices Plan", models.AccountTypeGroupPlan},
		{"Default", "Sun Life statement", models.AccountTypeGroupPlan},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, _ := newTestParser()
			rec := models.NewStatementRecord("SunLife")
			p.ExtractAccountInfo(tc.text, rec)
			assert.Equal(t, tc.expected, rec.AccountType)
		})
	}
}

func TestExtractHoldingsPerPlan(t *testing.T) {
	p, _ := newTestParser()
	rec := p.Parse(groupStatement)

	require.Len(t, rec.Holdings, 3)

	lifepath := rec.Holdings[0]
	assert.Equal(t, "BlackRock LifePath Index 2045 Fund", lifepath.SecurityName)
	assert.Equal(t, "1000", lifepath.Quantity.String())
	assert.Equal(t, "25", lifepath.Price.String())
	assert.Equal(t, "25000", lifepath.MarketValue.String())
	assert.Equal(t, models.AccountTypeRRSP, lifepath.AccountType)
	assert.Equal(t, models.CategoryEquity, lifepath.AssetCategory)
	assert.Equal(t, models.CurrencyCAD, lifepath.Currency)

	// Sun Life tables carry no book cost column.
	assert.Nil(t, lifepath.BookValue)

	bond := rec.Holdings[1]
	assert.Equal(t, "Sun Life Bond Fund", bond.SecurityName)
	assert.Equal(t, models.AssetTypeMutualFundFixedIncome, bond.AssetType)
	assert.Equal(t, models.CategoryFixedIncome, bond.AssetCategory)
	assert.Equal(t, models.AccountTypeRRSP, bond.AccountType)

	// LIRA rows carry the LIRA account type even though the statement
	// level type is RRSP.
	granite := rec.Holdings[2]
	assert.Equal(t, "Granite Balanced Portfolio", granite.SecurityName)
	assert.Equal(t, models.AccountTypeLIRA, granite.AccountType)
	assert.Equal(t, models.CategoryBalanced, granite.AssetCategory)
}

func TestFixedIncomeSectionOverridesName(t *testing.T) {
	// The fund name carries no fixed-income keyword; the lowercase
	// "Fixed income" header must still force the category.
	text := `My Registered Retirement Savings Plan (RRSP)
My investments
INVESTMENT NAME NUMBER OF UNITS UNIT VALUE TOTAL VALUE ($)
Fixed income
TDAM Canadian Core Plus 100.0000 10.0000 1,000.00
Total investments $1,000.00
`
	p, _ := newTestParser()
	rec := models.NewStatementRecord("SunLife")

	holdings := p.ExtractHoldings(text, rec)
	require.Len(t, holdings, 1)
	assert.Equal(t, models.CategoryFixedIncome, holdings[0].AssetCategory)

	// Section context changes the category only, never the asset type.
	assert.Equal(t, models.AssetTypeStock, holdings[0].AssetType)
}

func TestExtractPerformance(t *testing.T) {
	p, _ := newTestParser()
	rec := p.Parse(groupStatement)

	require.Contains(t, rec.Performance, "rrsp")
	rrsp := rec.Performance["rrsp"]
	assert.Equal(t, 2.5, rrsp[models.HorizonThreeMonth])
	assert.Equal(t, 5.1, rrsp[models.HorizonYearToDate])
	assert.Equal(t, 8.3, rrsp[models.HorizonOneYear])
	assert.Equal(t, 6.2, rrsp[models.HorizonThreeYear])

	// The dashed 5 YEAR column is skipped; the final value is since
	// inception.
	assert.Equal(t, 7.1, rrsp[models.HorizonInception])

	require.Contains(t, rec.Performance, "lira")
	assert.Equal(t, 6.4, rec.Performance["lira"][models.HorizonInception])
}

func TestNoPerformanceSection(t *testing.T) {
	p, _ := newTestParser()
	rec := p.Parse("Account number: 99\nFor the period January 1 to June 30, 2025")
	assert.Empty(t, rec.Performance)
}

func TestParseIsIdempotent(t *testing.T) {
	p, _ := newTestParser()
	assert.Equal(t, p.Parse(groupStatement), p.Parse(groupStatement))
}
