package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khahmed/personal-finance/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name             string
		securityName     string
		expectedType     string
		expectedCategory string
	}{
		{"Bank GIC", "ROYAL BANK OF CANADA GIC 4.5%", models.AssetTypeGIC, models.CategoryFixedIncome},
		{"Trust company deposit", "HOME TRUST COMPANY CASHABLE", models.AssetTypeGIC, models.CategoryFixedIncome},
		{"Guaranteed investment", "EQUITABLE GUARANTEED INVESTMENT CERT", models.AssetTypeGIC, models.CategoryFixedIncome},
		{"Equity ETF", "VANGUARD GROWTH ETF", models.AssetTypeETF, models.CategoryEquity},
		{"Bond ETF", "ISHARES CORE BOND ETF", models.AssetTypeETF, models.CategoryFixedIncome},
		{"Canadian index fund", "TD CDN Index Fund - e", models.AssetTypeIndexCanadian, models.CategoryEquity},
		{"US index fund", "TD U.S. Index Fund - e", models.AssetTypeIndexUS, models.CategoryEquity},
		{"International index fund", "TD Intl Index Fund - e", models.AssetTypeIndexIntl, models.CategoryEquity},
		{"Bond index fund", "TD Canadian Bond Index Fund", models.AssetTypeIndexFixedIncome, models.CategoryFixedIncome},
		{"Balanced index fund", "Balanced Index Fund", models.AssetTypeIndexBalanced, models.CategoryBalanced},
		{"Generic index fund", "Total Market Index Fund", models.AssetTypeETF, models.CategoryEquity},
		{"Balanced fund", "MACKENZIE BALANCED FUND", models.AssetTypeMutualFundBalanced, models.CategoryBalanced},
		{"Asset allocation fund", "FIDELITY ASSET ALLOCATION", models.AssetTypeMutualFundBalanced, models.CategoryBalanced},
		{"Bond fund", "PH&N TOTAL RETURN BOND FUND", models.AssetTypeMutualFundFixedIncome, models.CategoryFixedIncome},
		{"Income fund", "RBC MONTHLY INCOME FUND", models.AssetTypeMutualFundFixedIncome, models.CategoryFixedIncome},
		{"Equity fund", "BEUTEL GOODMAN CANADIAN EQUITY", models.AssetTypeMutualFundEquity, models.CategoryEquity},
		{"Exempt security", "PRIVATE DEBENTURE SERIES A", models.AssetTypeExempt, models.CategoryAlternative},
		{"Plain stock", "TELUS CORPORATION", models.AssetTypeStock, models.CategoryEquity},
		{"Unknown defaults to stock", "XYZZY HOLDINGS", models.AssetTypeStock, models.CategoryEquity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Classify(tc.securityName)
			assert.Equal(t, tc.expectedType, c.AssetType)
			assert.Equal(t, tc.expectedCategory, c.AssetCategory)
		})
	}
}

func TestClassifyRuleOrdering(t *testing.T) {
	// Issuer names win over generic keywords: a bank-issued product is a
	// GIC even when its name also says "equity" or "fund".
	c := Classify("NATIONAL BANK EQUITY LINKED GIC")
	assert.Equal(t, models.AssetTypeGIC, c.AssetType)
	assert.Equal(t, models.CategoryFixedIncome, c.AssetCategory)

	// The ETF rule runs before the index rule.
	c = Classify("CDN INDEX ETF")
	assert.Equal(t, models.AssetTypeETF, c.AssetType)
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	upper := Classify("VANGUARD GROWTH ETF")
	lower := Classify("vanguard growth etf")
	assert.Equal(t, upper, lower)
}

func TestApplySection(t *testing.T) {
	equity := Classification{models.AssetTypeStock, models.CategoryEquity}
	fixedIncome := Classification{models.AssetTypeGIC, models.CategoryFixedIncome}
	balanced := Classification{models.AssetTypeMutualFundBalanced, models.CategoryBalanced}

	tests := []struct {
		name     string
		c        Classification
		section  string
		expected string
	}{
		{"No section keeps classification", equity, "", models.CategoryEquity},
		{"Fixed income section always wins", equity, "Fixed Income", models.CategoryFixedIncome},
		{"Bond section always wins", balanced, "Canadian Bonds", models.CategoryFixedIncome},
		{"Equity section over generic equity", equity, "Equities", models.CategoryEquity},
		{"Equity section keeps fixed income", fixedIncome, "Equities", models.CategoryFixedIncome},
		{"Equity section keeps balanced", balanced, "Equities", models.CategoryBalanced},
		{"Multi-Asset becomes balanced", equity, "Multi-Asset", models.CategoryBalanced},
		{"Multi-Asset keeps fixed income", fixedIncome, "Multi-Asset", models.CategoryFixedIncome},
		{"Balanced section", equity, "Balanced", models.CategoryBalanced},
		{"Lowercase fixed income section always wins", equity, "Fixed income", models.CategoryFixedIncome},
		{"Lowercase equity section", equity, "Canadian equity", models.CategoryEquity},
		{"Lowercase equity section keeps fixed income", fixedIncome, "U.S. equity", models.CategoryFixedIncome},
		{"Cash section never overrides", fixedIncome, "Cash & Cash Equivalents", models.CategoryFixedIncome},
		{"Unknown section keeps classification", equity, "Other Assets", models.CategoryEquity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ApplySection(tc.c, tc.section))
		})
	}
}
