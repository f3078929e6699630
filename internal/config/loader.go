package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix    = "VRPSTW_"
	configEnvVar = "VRPSTW_CONFIG_PATH"
)

// Loader loads Config from defaults, an optional YAML file, and environment
// variables, in that order of increasing priority.
type Loader struct {
	k           *koanf.Koanf
	configPaths []string
	envPrefix   string
}

// NewLoader creates a Loader with the default search paths.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k: koanf.New("."),
		configPaths: []string{
			"config.yaml",
			"config/config.yaml",
			"/etc/vrpstw/config.yaml",
		},
		envPrefix: envPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithConfigPaths overrides the file search paths.
func WithConfigPaths(paths ...string) LoaderOption {
	return func(l *Loader) { l.configPaths = paths }
}

// WithEnvPrefix overrides the environment variable prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) { l.envPrefix = prefix }
}

// Load reads defaults, overlays the first config file found (if any), then
// overlays environment variables, and validates the result.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadDefaults(); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := l.loadConfigFile(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (l *Loader) loadDefaults() error {
	defaults := map[string]any{
		"app.name":        "vrpstw",
		"app.version":     "0.1.0",
		"app.environment": "development",

		"search.n_vehicles":       5,
		"search.max_travel_time":  float64(100),
		"search.beta_min":         0.1,
		"search.beta_max":         0.3,
		"search.maxiter":          3000,
		"search.n_elites":         5,
		"search.sim_trials_inner": 50,
		"search.sim_trials_final": 10000,
		"search.pvariance":        0.25,
		"search.gamma_step":       float64(10),
		"search.gamma_max_steps":  500,
		"search.seed_search":      int64(1),
		"search.seed_sim":         int64(2),

		"log.level":       "info",
		"log.format":      "json",
		"log.output":      "stdout",
		"log.max_size":    100,
		"log.max_backups": 3,
		"log.max_age":     7,
		"log.compress":    true,

		"metrics.enabled":   false,
		"metrics.addr":      ":9090",
		"metrics.path":      "/metrics",
		"metrics.namespace": "vrpstw",
		"metrics.subsystem": "search",

		"cache.enabled":     true,
		"cache.max_entries": 126,

		"history.enabled":      false,
		"history.driver":       "memory",
		"history.ssl_mode":     "disable",
		"history.auto_migrate": true,

		"report.default_format": "csv",
		"report.output_dir":     ".",
	}
	return l.k.Load(confmap.Provider(defaults, "."), nil)
}

func (l *Loader) loadConfigFile() error {
	path := os.Getenv(configEnvVar)
	if path != "" {
		return l.k.Load(file.Provider(path), yaml.Parser())
	}

	for _, p := range l.configPaths {
		if _, err := os.Stat(p); err == nil {
			return l.k.Load(file.Provider(p), yaml.Parser())
		}
	}
	return fmt.Errorf("no config file found in %v, using defaults", l.configPaths)
}

// loadEnv overlays environment variables, e.g. VRPSTW_SEARCH_MAXITER -> search.maxiter.
// Keys with any underscore in their leaf name (n_vehicles,
// max_travel_time, ...) cannot be set this way and must go through the
// config file; this mirrors the teacher's single-level env mapping exactly.
func (l *Loader) loadEnv() error {
	return l.k.Load(env.Provider(l.envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, l.envPrefix)),
			"_", ".",
		)
	}), nil)
}

// MustLoad loads configuration or panics.
func MustLoad(opts ...LoaderOption) *Config {
	cfg, err := NewLoader(opts...).Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// Load is a convenience wrapper around NewLoader().Load().
func Load() (*Config, error) {
	return NewLoader().Load()
}

// Default returns a Config populated purely from defaults, useful for tests
// and as a library entry point that does not want file/env overrides.
func Default() *Config {
	l := NewLoader(WithConfigPaths())
	cfg, err := l.Load()
	if err != nil {
		panic(fmt.Sprintf("default configuration must always be valid: %v", err))
	}
	return cfg
}
