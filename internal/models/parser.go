package models

// StatementParser defines the interface every institution parser implements.
// Implementations work over a document's already-extracted text: they never
// open files, touch a database or call out to anything.
type StatementParser interface {
	// Parse orchestrates account-info extraction followed by holdings
	// extraction and always returns a record. The record may be incomplete;
	// rejecting incomplete records is the caller's concern.
	Parse(text string) *StatementRecord

	// ExtractAccountInfo populates institution, account number/type, the
	// statement date and period bounds, total value and cash balance on rec.
	// Each field degrades independently: a pattern that does not match
	// simply leaves its field unset.
	ExtractAccountInfo(text string, rec *StatementRecord)

	// ExtractHoldings locates the holdings block(s) in text, parses the
	// interior rows, appends them to rec.Holdings and returns them.
	ExtractHoldings(text string, rec *StatementRecord) []HoldingRecord
}
