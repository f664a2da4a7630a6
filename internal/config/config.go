package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lumafolio/studio-core/internal/domain/curation"
	"github.com/lumafolio/studio-core/internal/domain/scoring"
)

// Config defines engine configuration.
type Config struct {
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Scoring  scoring.Config `yaml:"scoring"`
	Curation CurationConfig `yaml:"curation"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// CatalogConfig points at an optional shot catalog file; empty means the
// built-in catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// CurationConfig tunes selection, highlights, and run timeouts.
type CurationConfig struct {
	SelectionRatio       float64 `yaml:"selection_ratio"`
	HighlightQuality     float64 `yaml:"highlight_quality"`
	HighlightTopFraction float64 `yaml:"highlight_top_fraction"`
	PhotoTimeoutMS       int     `yaml:"photo_timeout_ms"`
	MaxParallelScores    int     `yaml:"max_parallel_scores"`
	RunTimeoutMS         int     `yaml:"run_timeout_ms"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		DB: DBConfig{
			Path: "studio.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Scoring: scoring.DefaultConfig(),
	}

	if path := os.Getenv("STUDIO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("STUDIO_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("STUDIO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if catalogPath := os.Getenv("STUDIO_CATALOG_PATH"); catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// CuratorConfig converts the curation tuning into the curator's form.
// Unset fields fall back to curator defaults.
func (c Config) CuratorConfig() curation.CuratorConfig {
	return curation.CuratorConfig{
		SelectionRatio:       c.Curation.SelectionRatio,
		HighlightQuality:     c.Curation.HighlightQuality,
		HighlightTopFraction: c.Curation.HighlightTopFraction,
		PhotoTimeout:         time.Duration(c.Curation.PhotoTimeoutMS) * time.Millisecond,
		MaxParallelScores:    c.Curation.MaxParallelScores,
	}
}

// RunTimeout returns the configured whole-run timeout; zero disables it.
func (c Config) RunTimeout() time.Duration {
	return time.Duration(c.Curation.RunTimeoutMS) * time.Millisecond
}
