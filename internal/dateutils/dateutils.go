// Package dateutils provides the date parsing used by the statement parsers.
package dateutils

import (
	"regexp"
	"strings"
	"time"
)

// Date layout constants for the formats seen in statement text.
const (
	DateLayoutMonthName = "January 2, 2006"
	DateLayoutMonthAbbr = "Jan 2, 2006"
	DateLayoutISO       = "2006-01-02"
	DateLayoutUSSlash   = "01/02/2006"
	DateLayoutEuroSlash = "02/01/2006"
)

// StatementFormats is the ordered list of layouts tried when parsing a date
// from statement text. The ordering is significant: more specific formats
// precede generic ones so that, e.g., an ISO date is never consumed by a
// slash layout.
var StatementFormats = []string{
	DateLayoutMonthName,
	DateLayoutMonthAbbr,
	DateLayoutISO,
	DateLayoutUSSlash,
	DateLayoutEuroSlash,
}

var (
	monthRangePattern = regexp.MustCompile(`^([A-Za-z]+ \d{1,2}) to ([A-Za-z]+ \d{1,2}), (\d{4})$`)
	isoRangePattern   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}) - (\d{4}-\d{2}-\d{2})$`)
)

// ParseDate attempts to parse a date string using the given layouts, or
// StatementFormats when none are supplied, returning the first successful
// parse. Compound period forms ("January 1 to October 31, 2025",
// "2025-10-01 - 2025-10-31") are tried last and resolve to the period end.
// The second return value is false when nothing matched.
func ParseDate(dateStr string, formats ...string) (time.Time, bool) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, false
	}

	layouts := formats
	if len(layouts) == 0 {
		layouts = StatementFormats
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}

	if len(formats) == 0 {
		if _, end, ok := ParseDateRange(cleaned); ok {
			return end, true
		}
	}

	return time.Time{}, false
}

// ParseDateRange parses the compound period forms found on statement
// covers: "January 1 to October 31, 2025" and "2025-10-01 - 2025-10-31".
func ParseDateRange(dateStr string) (start, end time.Time, ok bool) {
	cleaned := CleanDateString(dateStr)

	if m := monthRangePattern.FindStringSubmatch(cleaned); m != nil {
		start, sok := ParseDate(m[1]+", "+m[3], DateLayoutMonthName, DateLayoutMonthAbbr)
		end, eok := ParseDate(m[2]+", "+m[3], DateLayoutMonthName, DateLayoutMonthAbbr)
		if sok && eok {
			return start, end, true
		}
		return time.Time{}, time.Time{}, false
	}

	if m := isoRangePattern.FindStringSubmatch(cleaned); m != nil {
		start, sok := ParseDate(m[1], DateLayoutISO)
		end, eok := ParseDate(m[2], DateLayoutISO)
		if sok && eok {
			return start, end, true
		}
	}

	return time.Time{}, time.Time{}, false
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// CleanDateString trims a date string and collapses runs of whitespace.
func CleanDateString(dateStr string) string {
	return whitespacePattern.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}
