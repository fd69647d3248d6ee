// Package parser provides the registry of compiled-in statement parsers.
// The dispatch configuration refers to parsers by identifier; the registry
// maps those identifiers onto constructors so a bad identifier is caught
// when the configuration loads, not when the first file is parsed.
package parser

import (
	"sort"

	"github.com/khahmed/personal-finance/internal/cibcedgeparser"
	"github.com/khahmed/personal-finance/internal/cibcppsparser"
	"github.com/khahmed/personal-finance/internal/logging"
	"github.com/khahmed/personal-finance/internal/models"
	"github.com/khahmed/personal-finance/internal/olympiaparser"
	"github.com/khahmed/personal-finance/internal/parsererror"
	"github.com/khahmed/personal-finance/internal/scotiaparser"
	"github.com/khahmed/personal-finance/internal/sunlifeparser"
)

// ID identifies a registered parser in dispatch configuration files.
type ID string

// Built-in parser identifiers.
const (
	CIBCInvestorsEdge ID = "cibc-investors-edge"
	CIBCPPS           ID = "cibc-pps"
	ScotiaBank        ID = "scotiabank"
	SunLife           ID = "sunlife"
	Olympia           ID = "olympia"
)

// Constructor builds a parser instance bound to the given logger.
type Constructor func(logger logging.Logger) models.StatementParser

// Registry maps parser identifiers onto constructors.
type Registry struct {
	constructors map[ID]Constructor
}

// NewRegistry returns a registry populated with the built-in parsers.
func NewRegistry() *Registry {
	r := &Registry{constructors: make(map[ID]Constructor)}
	r.constructors[CIBCInvestorsEdge] = func(l logging.Logger) models.StatementParser { return cibcedgeparser.New(l) }
	r.constructors[CIBCPPS] = func(l logging.Logger) models.StatementParser { return cibcppsparser.New(l) }
	r.constructors[ScotiaBank] = func(l logging.Logger) models.StatementParser { return scotiaparser.New(l) }
	r.constructors[SunLife] = func(l logging.Logger) models.StatementParser { return sunlifeparser.New(l) }
	r.constructors[Olympia] = func(l logging.Logger) models.StatementParser { return olympiaparser.New(l) }
	return r
}

// Register adds a parser constructor under the given identifier,
// replacing any existing registration.
func (r *Registry) Register(id ID, constructor Constructor) error {
	if id == "" {
		return &parsererror.ConfigError{Identifier: string(id), Reason: "empty parser identifier"}
	}
	if constructor == nil {
		return &parsererror.ConfigError{Identifier: string(id), Reason: "nil parser constructor"}
	}
	r.constructors[id] = constructor
	return nil
}

// Resolve returns the constructor registered under id.
func (r *Registry) Resolve(id ID) (Constructor, error) {
	constructor, ok := r.constructors[id]
	if !ok {
		return nil, &parsererror.ConfigError{Identifier: string(id), Reason: "unknown parser identifier"}
	}
	return constructor, nil
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.constructors))
	for id := range r.constructors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
