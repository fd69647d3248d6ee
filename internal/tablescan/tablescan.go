// Package tablescan implements the line scanner shared by the institution
// parsers' holdings-table extraction. The scanner threads an explicit state
// (current section category, current currency) through the lines of a
// holdings block and hands successfully matched rows to a callback, so the
// category/currency carry-over is a testable transition rather than a pair
// of loop variables inside each parser.
package tablescan

import "strings"

// State is the scanner state threaded across lines: the most recently seen
// section header and the currency section in effect.
type State struct {
	Category string
	Currency string
}

// Row carries the raw column captures of one matched holding row. Values
// are uncleaned text; the parser converts them and decides whether the row
// is complete enough to emit. Consumed is the number of input lines the
// match used (2 for two-line and continuation formats); zero means one.
type Row struct {
	SecurityName string
	Quantity     string
	BookValue    string
	Price        string
	MarketValue  string
	Consumed     int

	// Category is set by matchers for formats whose rows carry their own
	// section label inline; it replaces State.Category before the row is
	// emitted.
	Category string
}

// MatchFunc attempts to match a holding row starting at line. next is the
// following line (empty at end of input) so two-line formats can decide to
// consume both.
type MatchFunc func(line, next string) (Row, bool)

// Config describes one parser's table dialect. The optional hooks run in
// the fixed order blank → currency → category → skip → match; a nil hook
// is a no-op.
type Config struct {
	// InitialCategory seeds State.Category ("" for most formats, "Cash"
	// for formats whose leading rows precede any header).
	InitialCategory string

	// DefaultCurrency seeds State.Currency, normally CAD.
	DefaultCurrency string

	// Currency recognizes a currency-section header. consume reports
	// whether the line is only a header; when false the line continues
	// through the remaining hooks (some statements switch currency on a
	// subtotal line that must still be skipped as a subtotal).
	Currency func(line string) (code string, consume, ok bool)

	// Category recognizes a section header line.
	Category func(line string) (category string, ok bool)

	// Skip recognizes subtotal/total/pending, column-header and page
	// boilerplate lines.
	Skip func(line string) bool

	// Match attempts the holding-row pattern(s).
	Match MatchFunc
}

// Scan walks the lines of a holdings block, applying the transition order
// of Config and invoking emit for every matched row together with the state
// in effect on that line.
func Scan(lines []string, cfg Config, emit func(State, Row)) {
	state := State{Category: cfg.InitialCategory, Currency: cfg.DefaultCurrency}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if cfg.Currency != nil {
			if code, consume, ok := cfg.Currency(line); ok {
				state.Currency = code
				if consume {
					continue
				}
			}
		}

		if cfg.Category != nil {
			if category, ok := cfg.Category(line); ok {
				state.Category = category
				continue
			}
		}

		if cfg.Skip != nil && cfg.Skip(line) {
			continue
		}

		next := ""
		if i+1 < len(lines) {
			next = strings.TrimSpace(lines[i+1])
		}

		if row, ok := cfg.Match(line, next); ok {
			if row.Category != "" {
				state.Category = row.Category
			}
			emit(state, row)
			if row.Consumed > 1 {
				i += row.Consumed - 1
			}
		}
	}
}

// ExactCategories builds a Category hook matching a line that equals one of
// the labels, ignoring case. The label's canonical spelling is returned.
func ExactCategories(labels ...string) func(string) (string, bool) {
	return func(line string) (string, bool) {
		for _, label := range labels {
			if strings.EqualFold(line, label) {
				return label, true
			}
		}
		return "", false
	}
}

// ContainsCategories builds a Category hook matching a line that contains
// one of the labels, for formats whose headers carry extra text.
func ContainsCategories(labels ...string) func(string) (string, bool) {
	return func(line string) (string, bool) {
		for _, label := range labels {
			if strings.Contains(line, label) {
				return line, true
			}
		}
		return "", false
	}
}
