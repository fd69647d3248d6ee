package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khahmed/personal-finance/internal/models"
	"github.com/khahmed/personal-finance/internal/parsererror"
)

func TestValidateStatement(t *testing.T) {
	date := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		accountNumber string
		statementDate time.Time
		missing       []string
	}{
		{"complete", "500-123", date, nil},
		{"missing account number", "", date, []string{"account_number"}},
		{"missing statement date", "500-123", time.Time{}, []string{"statement_date"}},
		{"missing both", "", time.Time{}, []string{"account_number", "statement_date"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := models.NewStatementRecord("CIBC")
			rec.AccountNumber = tc.accountNumber
			rec.StatementDate = tc.statementDate

			err := ValidateStatement(rec, "statements/june.txt")
			if tc.missing == nil {
				assert.NoError(t, err)
				return
			}

			var incomplete *parsererror.IncompleteRecordError
			require.ErrorAs(t, err, &incomplete)
			assert.Equal(t, tc.missing, incomplete.Missing)
			assert.Equal(t, "statements/june.txt", incomplete.FilePath)
		})
	}
}
