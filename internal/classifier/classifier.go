// Package classifier maps free-text security names to asset types and
// categories through an ordered chain of keyword heuristics.
package classifier

import (
	"strings"

	"github.com/khahmed/personal-finance/internal/models"
)

// Classification is the (asset type, asset category) pair assigned to a
// security name.
type Classification struct {
	AssetType     string
	AssetCategory string
}

// Classify assigns a Classification to a security name. Rules are evaluated
// top to bottom on a lowercased copy of the name and the first match wins.
// The ordering is a contract, not an implementation detail: bank and trust
// issuer names frequently contain generic words like "fund" or "equity", so
// the GIC rule must run before everything else or bank-issued GICs would be
// misclassified as equity funds.
func Classify(securityName string) Classification {
	name := strings.ToLower(securityName)

	// GICs and bank deposits. Fixed income instruments issued by banks.
	if containsAny(name, "bank", "trust company", "trust co", "gic", "guaranteed investment") {
		return Classification{models.AssetTypeGIC, models.CategoryFixedIncome}
	}

	if strings.Contains(name, "etf") {
		category := models.CategoryEquity
		if containsAny(name, "bond", "fixed income") {
			category = models.CategoryFixedIncome
		}
		return Classification{models.AssetTypeETF, category}
	}

	if strings.Contains(name, "index") {
		return classifyIndexFund(name)
	}

	if containsAny(name, "balanced", "asset allocation") {
		return Classification{models.AssetTypeMutualFundBalanced, models.CategoryBalanced}
	}

	if containsAny(name, "bond", "fixed income", "fixedincome", "income fund") {
		return Classification{models.AssetTypeMutualFundFixedIncome, models.CategoryFixedIncome}
	}

	if containsAny(name, "equity", "stock") {
		return Classification{models.AssetTypeMutualFundEquity, models.CategoryEquity}
	}

	if containsAny(name, "exempt", "private") {
		return Classification{models.AssetTypeExempt, models.CategoryAlternative}
	}

	return Classification{models.AssetTypeStock, models.CategoryEquity}
}

// classifyIndexFund resolves the index-fund subtypes from secondary
// keywords, falling back to a generic equity ETF.
func classifyIndexFund(name string) Classification {
	switch {
	case containsAny(name, "bond", "fixed income"):
		return Classification{models.AssetTypeIndexFixedIncome, models.CategoryFixedIncome}
	case strings.Contains(name, "balanced"):
		return Classification{models.AssetTypeIndexBalanced, models.CategoryBalanced}
	case containsAny(name, "cdn", "canadian"):
		return Classification{models.AssetTypeIndexCanadian, models.CategoryEquity}
	case containsAny(name, "u.s", "us ", "american"):
		return Classification{models.AssetTypeIndexUS, models.CategoryEquity}
	case containsAny(name, "intl", "international"):
		return Classification{models.AssetTypeIndexIntl, models.CategoryEquity}
	case strings.Contains(name, "global"):
		return Classification{models.AssetTypeIndexGlobal, models.CategoryEquity}
	default:
		return Classification{models.AssetTypeETF, models.CategoryEquity}
	}
}

// ApplySection reconciles a classification against the holdings-table
// section the row appeared under, returning the category to record. The
// precedence is deliberately asymmetric and mirrors real statements: an
// explicit Fixed Income section always wins, but an Equities section only
// wins when the classifier did not identify fixed income or a balanced
// fund, because issuers do bundle GICs and bonds into equity sections.
// Section context never changes the asset type, only the category. Labels
// are compared case-insensitively: Sun Life prints "Fixed income" where
// Scotiabank prints "Fixed Income".
func ApplySection(c Classification, section string) string {
	if section == "" {
		return c.AssetCategory
	}
	label := strings.ToLower(section)

	switch {
	case strings.Contains(label, "fixed income") || strings.Contains(label, "bond"):
		return models.CategoryFixedIncome
	case strings.Contains(label, "equit"):
		if c.AssetCategory == models.CategoryFixedIncome || c.AssetCategory == models.CategoryBalanced {
			return c.AssetCategory
		}
		return models.CategoryEquity
	case strings.Contains(label, "multi-asset") || strings.Contains(label, "balanced"):
		if c.AssetCategory == models.CategoryFixedIncome {
			return c.AssetCategory
		}
		return models.CategoryBalanced
	default:
		return c.AssetCategory
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
