package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "holidays.json", cfg.Files.Input)
	require.Equal(t, "holidays_output.json", cfg.Files.Output)
	require.True(t, cfg.Scrape.Enabled)
	require.Equal(t, 2, cfg.Scrape.YearsBack)
	require.Equal(t, "New York", cfg.Weather.Location)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
files:
  input: in.json
  output: out.json
scrape:
  enabled: false
  years_back: 1
  fallback: none
  timeout: 3s
weather:
  location: Boston
exporter:
  interval: 1m
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "in.json", cfg.Files.Input)
	require.False(t, cfg.Scrape.Enabled)
	require.Equal(t, 1, cfg.Scrape.YearsBack)
	require.Equal(t, 2, cfg.Scrape.YearsAhead)
	require.Equal(t, 3*time.Second, cfg.Scrape.Timeout)
	require.Equal(t, "Boston", cfg.Weather.Location)
	require.Equal(t, time.Minute, cfg.Exporter.Interval)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOLIDAY_INPUT", "env-in.json")
	t.Setenv("HOLIDAY_OUTPUT", "env-out.json")
	t.Setenv("WEATHERAPI_KEY", "k")
	t.Setenv("WEATHERAPI_LOCATION", "Chicago")
	t.Setenv("HOLIDAY_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "env-in.json", cfg.Files.Input)
	require.Equal(t, "env-out.json", cfg.Files.Output)
	require.Equal(t, "k", cfg.Weather.APIKey)
	require.Equal(t, "Chicago", cfg.Weather.Location)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scrape:\n  fallback: carrier-pigeon\n"), 0o644))
	_, err := Load(bad)
	require.Error(t, err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("files: [unclosed"), 0o644))
	_, err = Load(broken)
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}
