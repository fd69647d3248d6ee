// Package parsererror defines the typed errors surfaced by the statement
// parsing core and its callers.
package parsererror

import (
	"fmt"
	"strings"
)

// ParseError represents a field-level extraction failure inside a parser.
// These are expected and common; the affected field stays unset and the
// rest of the document is still processed.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IncompleteRecordError reports a finished StatementRecord that lacks the
// fields required for persistence. The parsing core never returns this
// itself; the caller raises it when validating a parsed record.
type IncompleteRecordError struct {
	FilePath string
	Missing  []string
}

func (e *IncompleteRecordError) Error() string {
	return fmt.Sprintf("incomplete statement record for %s: missing %s",
		e.FilePath, strings.Join(e.Missing, ", "))
}

// DispatchError reports that no configured parser matched an input file.
// This is a caller-visible condition, not a crash.
type DispatchError struct {
	FilePath string
	Reason   string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("no parser resolved for %s: %s", e.FilePath, e.Reason)
}

// ConfigError reports a parser identifier in the institutions configuration
// that does not resolve to a registered parser. Fatal at load time.
type ConfigError struct {
	Identifier string
	Reason     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid parser configuration for %q: %s", e.Identifier, e.Reason)
}
