// Package currencyutils provides common currency and decimal operations used
// throughout the application.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var symbolPattern = regexp.MustCompile(`[\$,\s]`)

// CleanCurrencyValue converts a currency string to a decimal value.
// It handles formats like "$1,234.56", "($1,234.56)" and "-$1,234.56":
// currency symbols, thousands separators and whitespace are stripped, and a
// parenthesized amount becomes negative. The second return value is false
// when the input is empty or does not parse as a number; this function
// never panics and never returns an error.
func CleanCurrencyValue(value string) (decimal.Decimal, bool) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, false
	}

	cleaned := symbolPattern.ReplaceAllString(value, "")

	if strings.Contains(cleaned, "(") && strings.Contains(cleaned, ")") {
		cleaned = strings.ReplaceAll(cleaned, "(", "")
		cleaned = strings.ReplaceAll(cleaned, ")", "")
		cleaned = "-" + cleaned
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}

	return amount, true
}

// CleanCurrencyPtr is CleanCurrencyValue returning a pointer, for the
// optional amount fields on StatementRecord. Nil means the value did not
// parse.
func CleanCurrencyPtr(value string) *decimal.Decimal {
	amount, ok := CleanCurrencyValue(value)
	if !ok {
		return nil
	}
	return &amount
}
