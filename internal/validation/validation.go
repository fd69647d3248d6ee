// Package validation checks parsed statements for completeness. Parsers
// extract what they can and never fail; whether a partial record is
// acceptable is the caller's decision, made here.
package validation

import (
	"github.com/khahmed/personal-finance/internal/models"
	"github.com/khahmed/personal-finance/internal/parsererror"
)

// ValidateStatement reports whether the record carries the fields required
// to store it: an account number and a statement date. The returned error
// is an IncompleteRecordError naming every missing field.
func ValidateStatement(rec *models.StatementRecord, filePath string) error {
	var missing []string
	if rec.AccountNumber == "" {
		missing = append(missing, "account_number")
	}
	if rec.StatementDate.IsZero() {
		missing = append(missing, "statement_date")
	}
	if len(missing) > 0 {
		return &parsererror.IncompleteRecordError{FilePath: filePath, Missing: missing}
	}
	return nil
}
