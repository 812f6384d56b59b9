package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidMode     = errors.New("invalid tokenize mode")
	ErrInvalidEncoding = errors.New("invalid input encoding")
)

// Config holds all configuration for sentok.
type Config struct {
	Tokenize TokenizeConfig `yaml:"tokenize"`
	Index    IndexConfig    `yaml:"index"`
	Vocab    VocabConfig    `yaml:"vocab"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TokenizeConfig holds tokenizer configuration.
type TokenizeConfig struct {
	Mode     string `yaml:"mode"`     // "keep" or "strip"
	Encoding string `yaml:"encoding"` // "utf-8", "latin1", "cp1252", "cp437"
}

// IndexConfig holds corpus indexing configuration.
type IndexConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// VocabConfig holds vocabulary report configuration.
type VocabConfig struct {
	TopN int `yaml:"top_n"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tokenize: TokenizeConfig{
			Mode:     "strip",
			Encoding: "utf-8",
		},
		Index: IndexConfig{
			Includes: []string{"**/*.txt", "**/*.md", "**/*.csv", "**/*.tsv", "**/*.log"},
			Excludes: []string{"**/.git/**", "**/.sentok/**", "**/node_modules/**", "**/vendor/**"},
		},
		Vocab: VocabConfig{
			TopN: 25,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// NormalizeMode maps a tokenize mode name or alias to "keep" or "strip".
func NormalizeMode(mode string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "keep":
		return "keep", nil
	case "strip", "remove":
		return "strip", nil
	default:
		return "", fmt.Errorf("%w: %q (want keep or strip)", ErrInvalidMode, mode)
	}
}

// NormalizeEncoding maps an encoding name or alias to one of "utf-8",
// "latin1", "cp1252" or "cp437". An empty name means UTF-8.
func NormalizeEncoding(encoding string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return "utf-8", nil
	case "latin1", "iso-8859-1":
		return "latin1", nil
	case "cp1252", "windows-1252":
		return "cp1252", nil
	case "cp437":
		return "cp437", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEncoding, encoding)
	}
}

// Validate reports the first invalid setting, if any, and rewrites the
// tokenize mode and encoding to their canonical names.
func (c *Config) Validate() error {
	mode, err := NormalizeMode(c.Tokenize.Mode)
	if err != nil {
		return err
	}
	encoding, err := NormalizeEncoding(c.Tokenize.Encoding)
	if err != nil {
		return err
	}

	c.Tokenize.Mode = mode
	c.Tokenize.Encoding = encoding
	return nil
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for sentok.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "sentok.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, DataDirName, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DataDirName is the per-corpus directory holding the vocabulary database.
const DataDirName = ".sentok"

// IndexDBPath returns the path to the vocabulary database.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, DataDirName, "vocab.db")
}

// EnsureDataDir ensures the .sentok directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, DataDirName), 0755)
}
