package dispatch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParserEntry binds a filename pattern to a parser identifier. A pattern
// is either "*" or a case-insensitive substring of the filename.
type ParserEntry struct {
	Pattern     string `yaml:"pattern"`
	Parser      string `yaml:"parser"`
	Description string `yaml:"description"`
}

// Institution is one institution's block in the dispatch configuration.
// The map key the block sits under doubles as the directory name and the
// filename keyword for fallback matching.
type Institution struct {
	Name    string        `yaml:"name"`
	Parsers []ParserEntry `yaml:"parsers"`
}

// Config is the parsed institutions configuration file.
type Config struct {
	Institutions map[string]Institution `yaml:"institutions"`
}

// LoadConfig reads and parses an institutions configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading institutions config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing institutions config %s: %w", path, err)
	}

	// An entry without a pattern is a wildcard.
	for key, inst := range cfg.Institutions {
		for i, entry := range inst.Parsers {
			if entry.Pattern == "" {
				inst.Parsers[i].Pattern = "*"
			}
		}
		cfg.Institutions[key] = inst
	}

	return &cfg, nil
}
