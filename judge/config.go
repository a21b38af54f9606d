package judge

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

// Config defines judgement parameters.
type Config struct {
	// NaturalLanguage is a language of feedback, "en" or "nl".
	NaturalLanguage string `json:"natural_language" yaml:"natural_language" toml:"natural_language"`

	// TimeLimit is a total time limit in seconds, default 10.
	TimeLimit int `json:"time_limit" yaml:"time_limit" toml:"time_limit"`

	// Source is a path to submitted SQL file.
	Source string `json:"source" yaml:"source" toml:"source"`

	// Resources is a directory with solution and database files.
	Resources string `json:"resources" yaml:"resources" toml:"resources"`

	// Workdir is a directory for temporary database copies.
	Workdir string `json:"workdir" yaml:"workdir" toml:"workdir"`

	// SolutionFile is a name of solution file in Resources, default "solution.sql".
	SolutionFile string `json:"solution_file" yaml:"solution_file" toml:"solution_file"`

	// DatabaseFile is a name of SQLite database file in Resources, default "database.sqlite".
	DatabaseFile string `json:"database_file" yaml:"database_file" toml:"database_file"`

	// StrictRowOrder enables row order comparison even if solution has no ORDER BY.
	StrictRowOrder bool `json:"strict_row_order" yaml:"strict_row_order" toml:"strict_row_order"`

	// CheckTypes enables comparison of column SQL types.
	CheckTypes bool `json:"check_types" yaml:"check_types" toml:"check_types"`

	// AllowMissingSemicolon disables the missing semicolon hint.
	AllowMissingSemicolon bool `json:"allow_missing_semicolon" yaml:"allow_missing_semicolon" toml:"allow_missing_semicolon"`

	// Phrases overrides multi-word keywords recognized as single lexemes.
	Phrases []string `json:"phrases" yaml:"phrases" toml:"phrases"`
}

// LoadConfig reads configuration from .json, .yaml or .toml file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Config{}, err
	}

	defer f.Close() //nolint:errcheck // Read-only file.

	var cfg Config

	switch {
	case strings.HasSuffix(path, ".toml"):
		_, err = toml.NewDecoder(f).Decode(&cfg)
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		err = yaml.NewDecoder(f).Decode(&cfg)
	case strings.HasSuffix(path, ".json"):
		err = json.NewDecoder(f).Decode(&cfg)
	default:
		return Config{}, fmt.Errorf("unknown config format type: %s, use .toml, .yaml or .json suffix in filename", path)
	}

	if err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg.setDefaults()

	return cfg, nil
}

// ReadConfig reads JSON configuration.
func ReadConfig(r io.Reader) (Config, error) {
	var cfg Config

	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.TimeLimit <= 0 {
		c.TimeLimit = 10
	}

	if c.SolutionFile == "" {
		c.SolutionFile = "solution.sql"
	}

	if c.DatabaseFile == "" {
		c.DatabaseFile = "database.sqlite"
	}
}

// Timeout returns time limit as duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeLimit) * time.Second
}

// SolutionPath returns path to solution file.
func (c Config) SolutionPath() string {
	return filepath.Join(c.Resources, c.SolutionFile)
}

// DatabasePath returns path to exercise database.
func (c Config) DatabasePath() string {
	return filepath.Join(c.Resources, c.DatabaseFile)
}
