// Package config loads holiday-manager settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultPath is read when --config is not given.
const DefaultPath = "config/holiday_manager.yaml"

type Config struct {
	Files struct {
		Input  string `yaml:"input"`
		Output string `yaml:"output"`
	} `yaml:"files"`
	Scrape struct {
		Enabled    bool          `yaml:"enabled"`
		URL        string        `yaml:"url"`
		YearsBack  int           `yaml:"years_back"`
		YearsAhead int           `yaml:"years_ahead"`
		Fallback   string        `yaml:"fallback"` // "none" or "federal"
		Timeout    time.Duration `yaml:"timeout"`
		Retries    uint          `yaml:"retries"`
	} `yaml:"scrape"`
	Weather struct {
		Host     string        `yaml:"host"`
		APIKey   string        `yaml:"api_key"`
		Location string        `yaml:"location"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"weather"`
	Exporter struct {
		Listen   string        `yaml:"listen"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"exporter"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	var c Config
	c.Files.Input = "holidays.json"
	c.Files.Output = "holidays_output.json"
	c.Scrape.Enabled = true
	c.Scrape.URL = "https://www.timeanddate.com/calendar/print.html?year=%d&country=1&hol=33554809&df=1"
	c.Scrape.YearsBack = 2
	c.Scrape.YearsAhead = 2
	c.Scrape.Fallback = "federal"
	c.Scrape.Timeout = 15 * time.Second
	c.Scrape.Retries = 2
	c.Weather.Host = "weatherapi-com.p.rapidapi.com"
	c.Weather.Location = "New York"
	c.Weather.Timeout = 10 * time.Second
	c.Exporter.Listen = ":9110"
	c.Exporter.Interval = 30 * time.Second
	c.Log.Level = "info"
	return c
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HOLIDAY_INPUT"); v != "" {
		c.Files.Input = v
	}
	if v := os.Getenv("HOLIDAY_OUTPUT"); v != "" {
		c.Files.Output = v
	}
	if v := os.Getenv("HOLIDAY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("WEATHERAPI_KEY"); v != "" {
		c.Weather.APIKey = v
	}
	if v := os.Getenv("WEATHERAPI_LOCATION"); v != "" {
		c.Weather.Location = v
	}
}

func (c Config) Validate() error {
	if c.Files.Input == "" || c.Files.Output == "" {
		return errors.New("config: files.input and files.output are required")
	}
	if c.Scrape.YearsBack < 0 || c.Scrape.YearsAhead < 0 {
		return errors.New("config: scrape year span cannot be negative")
	}
	switch c.Scrape.Fallback {
	case "", "none", "federal":
	default:
		return fmt.Errorf("config: unknown scrape.fallback %q", c.Scrape.Fallback)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("config: unknown log level %q", s)
}
