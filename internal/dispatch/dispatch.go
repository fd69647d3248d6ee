// Package dispatch routes statement files to parsers using the
// institutions configuration. A file is matched first by its parent
// directory name, then by institution keywords in the filename. Parser
// identifiers are validated against the registry when the dispatcher is
// built, so a typo in the configuration fails at startup.
package dispatch

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/khahmed/personal-finance/internal/logging"
	"github.com/khahmed/personal-finance/internal/models"
	"github.com/khahmed/personal-finance/internal/parser"
	"github.com/khahmed/personal-finance/internal/parsererror"
)

// Dispatcher resolves statement file paths to parser instances.
// Construction of a parser for a given identifier happens once per
// dispatcher; subsequent resolutions reuse the cached instance. The
// parsers are stateless between Parse calls, so sharing one instance
// across goroutines is safe.
type Dispatcher struct {
	config   *Config
	registry *parser.Registry
	logger   logging.Logger
	cache    sync.Map // parser.ID -> models.StatementParser
}

// New builds a dispatcher over the given configuration. Every parser
// identifier the configuration mentions must resolve in the registry.
func New(cfg *Config, registry *parser.Registry, logger logging.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	for key, inst := range cfg.Institutions {
		for _, entry := range inst.Parsers {
			if entry.Parser == "" {
				return nil, &parsererror.ConfigError{
					Identifier: key,
					Reason:     "parser entry without a parser identifier",
				}
			}
			if _, err := registry.Resolve(parser.ID(entry.Parser)); err != nil {
				return nil, err
			}
		}
	}

	return &Dispatcher{config: cfg, registry: registry, logger: logger}, nil
}

// Resolve returns the parser for the given statement file path.
func (d *Dispatcher) Resolve(filePath string) (models.StatementParser, error) {
	entry, err := d.ResolveEntry(filePath)
	if err != nil {
		return nil, err
	}
	return d.instance(parser.ID(entry.Parser))
}

// ResolveEntry returns the configuration entry matching the file path
// without constructing the parser. The parent directory's institution
// block is consulted first, its patterns in declaration order; when the
// directory is not an institution key, an institution keyword in the
// filename selects that institution's wildcard entry.
func (d *Dispatcher) ResolveEntry(filePath string) (ParserEntry, error) {
	filename := filepath.Base(filePath)
	parentDir := filepath.Base(filepath.Dir(filePath))

	if inst, ok := d.config.Institutions[parentDir]; ok {
		for _, entry := range inst.Parsers {
			if matchPattern(filename, entry.Pattern) {
				return entry, nil
			}
		}
	}

	lower := strings.ToLower(filename)
	for _, key := range d.institutionKeys() {
		if !strings.Contains(lower, strings.ToLower(key)) {
			continue
		}
		for _, entry := range d.config.Institutions[key].Parsers {
			if entry.Pattern == "*" {
				return entry, nil
			}
		}
	}

	return ParserEntry{}, &parsererror.DispatchError{
		FilePath: filePath,
		Reason:   "no configured institution matches the file",
	}
}

// ListInstitutions returns the configured institution keys in sorted
// order together with their parser entries.
func (d *Dispatcher) ListInstitutions() []ListedInstitution {
	keys := d.institutionKeys()
	listed := make([]ListedInstitution, 0, len(keys))
	for _, key := range keys {
		inst := d.config.Institutions[key]
		listed = append(listed, ListedInstitution{
			Key:     key,
			Name:    inst.Name,
			Parsers: inst.Parsers,
		})
	}
	return listed
}

// ListedInstitution is one institution in a ListInstitutions result.
type ListedInstitution struct {
	Key     string
	Name    string
	Parsers []ParserEntry
}

func (d *Dispatcher) instance(id parser.ID) (models.StatementParser, error) {
	if cached, ok := d.cache.Load(id); ok {
		return cached.(models.StatementParser), nil
	}

	constructor, err := d.registry.Resolve(id)
	if err != nil {
		return nil, err
	}

	instance := constructor(d.logger)
	actual, _ := d.cache.LoadOrStore(id, instance)
	return actual.(models.StatementParser), nil
}

// institutionKeys returns the institution keys in sorted order so the
// filename fallback scan is deterministic.
func (d *Dispatcher) institutionKeys() []string {
	keys := make([]string, 0, len(d.config.Institutions))
	for key := range d.config.Institutions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func matchPattern(filename, pattern string) bool {
	if pattern == "*" {
		return true
	}
	return strings.Contains(strings.ToLower(filename), strings.ToLower(pattern))
}
