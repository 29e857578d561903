package lib

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxIdentLen  = 15
	DefaultMaxStringLen = 255
)

type LexerConfig struct {
	MaxIdentLen  int `toml:"max_ident_len" yaml:"max_ident_len"`
	MaxStringLen int `toml:"max_string_len" yaml:"max_string_len"`
	// MaxErrors stops a scan after that many errors; zero means no limit.
	MaxErrors int `toml:"max_errors" yaml:"max_errors"`
}

func (c LexerConfig) withDefaults() LexerConfig {
	if c.MaxIdentLen <= 0 {
		c.MaxIdentLen = DefaultMaxIdentLen
	}
	if c.MaxStringLen <= 0 {
		c.MaxStringLen = DefaultMaxStringLen
	}
	return c
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

type OutputConfig struct {
	Color bool `toml:"color" yaml:"color"`
}

type HistoryConfig struct {
	// Driver is "postgres" or "sqlite3". Empty disables history.
	Driver string `toml:"driver" yaml:"driver"`
	DSN    string `toml:"dsn" yaml:"dsn"`
}

func (c HistoryConfig) Enabled() bool {
	return c.Driver != ""
}

type Config struct {
	Lexer   LexerConfig   `toml:"lexer" yaml:"lexer"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	History HistoryConfig `toml:"history" yaml:"history"`
}

func DefaultConfig() Config {
	return Config{
		Lexer: LexerConfig{
			MaxIdentLen:  DefaultMaxIdentLen,
			MaxStringLen: DefaultMaxStringLen,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// LoadConfig reads a TOML or YAML file, chosen by extension, on top of
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(content)).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	cfg.Lexer = cfg.Lexer.withDefaults()
	return cfg, nil
}
