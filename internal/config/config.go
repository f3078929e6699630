// Package config defines the configuration schema for the search engine and
// its ambient services (logging, cache, metrics, history persistence, report
// export), loaded through internal/config.Loader.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the top-level configuration struct, unmarshalled from koanf.
type Config struct {
	App     AppConfig     `koanf:"app"`
	Search  SearchConfig  `koanf:"search"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
	Cache   CacheConfig   `koanf:"cache"`
	History HistoryConfig `koanf:"history"`
	Report  ReportConfig  `koanf:"report"`
}

// AppConfig carries general application metadata.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

// SearchConfig mirrors spec.md §6's configuration table.
type SearchConfig struct {
	NVehicles      int     `koanf:"n_vehicles"`
	MaxTravelTime  float64 `koanf:"max_travel_time"`
	BetaMin        float64 `koanf:"beta_min"`
	BetaMax        float64 `koanf:"beta_max"`
	MaxIter        int     `koanf:"maxiter"`
	NElites        int     `koanf:"n_elites"`
	SimTrialsInner int     `koanf:"sim_trials_inner"`
	SimTrialsFinal int     `koanf:"sim_trials_final"`
	PVariance      float64 `koanf:"pvariance"`
	GammaStep      float64 `koanf:"gamma_step"`
	GammaMaxSteps  int     `koanf:"gamma_max_steps"`
	SeedSearch     int64   `koanf:"seed_search"`
	SeedSim        int64   `koanf:"seed_sim"`
}

// LogConfig controls internal/logger.
type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	Output     string `koanf:"output"`
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig controls internal/metrics.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Addr      string `koanf:"addr"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// CacheConfig controls internal/cache.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	MaxEntries int           `koanf:"max_entries"`
	DefaultTTL time.Duration `koanf:"default_ttl"`
}

// HistoryConfig controls internal/history persistence of search runs.
type HistoryConfig struct {
	Enabled         bool   `koanf:"enabled"`
	Driver          string `koanf:"driver"` // postgres, memory
	Host            string `koanf:"host"`
	Port            int    `koanf:"port"`
	Database        string `koanf:"database"`
	Username        string `koanf:"username"`
	Password        string `koanf:"password"`
	SSLMode         string `koanf:"ssl_mode"`
	AutoMigrate     bool   `koanf:"auto_migrate"`
}

// DSN returns the Postgres connection string for HistoryConfig.
func (h HistoryConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		h.Username, h.Password, h.Host, h.Port, h.Database, h.SSLMode,
	)
}

// ReportConfig controls internal/report default output.
type ReportConfig struct {
	DefaultFormat string `koanf:"default_format"` // csv, json, markdown, excel
	OutputDir     string `koanf:"output_dir"`
}

// Validate checks the loaded configuration for obviously invalid values.
func (c *Config) Validate() error {
	var errs []string

	if c.Search.NVehicles <= 0 {
		errs = append(errs, "search.n_vehicles must be positive")
	}
	if c.Search.MaxTravelTime <= 0 {
		errs = append(errs, "search.max_travel_time must be positive")
	}
	if c.Search.BetaMin <= 0 || c.Search.BetaMax >= 1 || c.Search.BetaMin >= c.Search.BetaMax {
		errs = append(errs, "search.beta_min/beta_max must satisfy 0 < beta_min < beta_max < 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of debug, info, warn, error, got %s", c.Log.Level))
	}

	validFormats := map[string]bool{"csv": true, "json": true, "markdown": true, "excel": true}
	if c.Report.DefaultFormat != "" && !validFormats[c.Report.DefaultFormat] {
		errs = append(errs, fmt.Sprintf("report.default_format must be one of csv, json, markdown, excel, got %s", c.Report.DefaultFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
