package lib

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 15, cfg.Lexer.MaxIdentLen)
	require.Equal(t, 255, cfg.Lexer.MaxStringLen)
	require.Equal(t, 0, cfg.Lexer.MaxErrors)
	require.Equal(t, "warn", cfg.Log.Level)
	require.False(t, cfg.History.Enabled())
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeTemp(t, "kplc.toml", `
[lexer]
max_ident_len = 8
max_errors = 5

[log]
level = "debug"
format = "json"

[output]
color = true

[history]
driver = "sqlite3"
dsn = "history.db"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Lexer.MaxIdentLen)
	require.Equal(t, DefaultMaxStringLen, cfg.Lexer.MaxStringLen)
	require.Equal(t, 5, cfg.Lexer.MaxErrors)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.True(t, cfg.Output.Color)
	require.True(t, cfg.History.Enabled())
	require.Equal(t, "history.db", cfg.History.DSN)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeTemp(t, "kplc.yaml", `
lexer:
  max_string_len: 40
log:
  level: error
history:
  driver: postgres
  dsn: postgres://localhost/kpl?sslmode=disable
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultMaxIdentLen, cfg.Lexer.MaxIdentLen)
	require.Equal(t, 40, cfg.Lexer.MaxStringLen)
	require.Equal(t, "error", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, "postgres", cfg.History.Driver)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeTemp(t, "kplc.ini", "level=debug"))
	require.ErrorContains(t, err, "unsupported config format")

	_, err = LoadConfig(writeTemp(t, "broken.toml", "[lexer\nmax_ident_len = 3"))
	require.ErrorContains(t, err, "parsing config")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorContains(t, err, "reading config")
}

func TestNewLogger(t *testing.T) {
	out := &bytes.Buffer{}
	logger, err := NewLogger(LogConfig{Level: "info", Format: "json"}, out)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "file", "a.kpl")
	require.NotContains(t, out.String(), "hidden")
	require.Contains(t, out.String(), `"msg":"shown"`)
	require.Contains(t, out.String(), `"file":"a.kpl"`)

	_, err = NewLogger(LogConfig{Level: "loud"}, out)
	require.ErrorContains(t, err, "unknown log level")

	_, err = NewLogger(LogConfig{Format: "xml"}, out)
	require.ErrorContains(t, err, "unknown log format")
}
