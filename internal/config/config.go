package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the docfind API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Search   SearchConfig   `yaml:"search"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error (default: determined by env)
	Encoding string `yaml:"encoding"` // json or console (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey (default: redis)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	DialTimeoutMS    int      `yaml:"dial_timeout_ms"` // 0 keeps the client default
}

// DialTimeout bounds a single connection attempt.
func (d DatabaseConfig) DialTimeout() time.Duration {
	return time.Duration(d.DialTimeoutMS) * time.Millisecond
}

// SearchConfig holds pagination, scoring and history settings.
type SearchConfig struct {
	DefaultPageSize int           `yaml:"default_page_size"`
	MaxPageSize     int           `yaml:"max_page_size"`
	MaxImportBatch  int           `yaml:"max_import_batch"`
	SuggestionLimit int           `yaml:"suggestion_limit"`
	Weights         WeightsConfig `yaml:"weights"`
	Fuzzy           FuzzyConfig   `yaml:"fuzzy"`
	History         HistoryConfig `yaml:"history"`
}

// WeightsConfig holds per-field scoring weights. An omitted section gets
// the defaults as a whole; a present one is taken literally.
type WeightsConfig struct {
	Title       float64 `yaml:"title"`
	Tag         float64 `yaml:"tag"`
	Body        float64 `yaml:"body"`
	PhraseBoost float64 `yaml:"phrase_boost"`
}

// FuzzyConfig holds typo tolerance thresholds by query term length in runes.
type FuzzyConfig struct {
	ExactMaxLen   int `yaml:"exact_max_len"`
	OneEditMaxLen int `yaml:"one_edit_max_len"`
	MaxEdits      int `yaml:"max_edits"`
}

// HistoryConfig holds search history retention.
type HistoryConfig struct {
	MaxEntries int `yaml:"max_entries"`
	TTLHours   int `yaml:"ttl_hours"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	data, err = expandEnvVars(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment: DOCFIND_ENV, then ENV, then "local".
func GetEnv() string {
	for _, name := range []string{"DOCFIND_ENV", "ENV"} {
		if env := os.Getenv(name); env != "" {
			return env
		}
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 5
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 50
	}
	if c.Search.MaxImportBatch <= 0 {
		c.Search.MaxImportBatch = 500
	}
	if c.Search.SuggestionLimit <= 0 {
		c.Search.SuggestionLimit = 10
	}
	if c.Search.Weights == (WeightsConfig{}) {
		c.Search.Weights = WeightsConfig{Title: 3, Tag: 2, Body: 1, PhraseBoost: 1.5}
	}
	if c.Search.Fuzzy == (FuzzyConfig{}) {
		c.Search.Fuzzy = FuzzyConfig{ExactMaxLen: 3, OneEditMaxLen: 6, MaxEdits: 2}
	}
	if c.Search.History.MaxEntries <= 0 {
		c.Search.History.MaxEntries = 100
	}
	if c.Search.History.TTLHours <= 0 {
		c.Search.History.TTLHours = 24 * 30
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "docfind:"
	}
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		fail("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "redis", "valkey":
	default:
		fail("database.driver must be \"redis\" or \"valkey\", got %q", c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		fail("database.addrs is required")
	}
	if c.Database.DialTimeoutMS < 0 {
		fail("database.dial_timeout_ms must not be negative, got %d", c.Database.DialTimeoutMS)
	}
	if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		fail("search.default_page_size (%d) must not exceed search.max_page_size (%d)",
			c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	if c.Search.MaxPageSize > 100 {
		fail("search.max_page_size must be at most 100, got %d", c.Search.MaxPageSize)
	}
	if w := c.Search.Weights; !finite(w.Title, w.Tag, w.Body, w.PhraseBoost) {
		fail("search.weights must be finite numbers")
	} else if w.Title < 0 || w.Tag < 0 || w.Body < 0 || w.PhraseBoost < 0 {
		fail("search.weights must not be negative")
	}
	if f := c.Search.Fuzzy; f.ExactMaxLen < 0 || f.OneEditMaxLen < f.ExactMaxLen || f.MaxEdits < 1 {
		fail("search.fuzzy needs 0 <= exact_max_len <= one_edit_max_len and max_edits >= 1, got %d/%d/%d",
			f.ExactMaxLen, f.OneEditMaxLen, f.MaxEdits)
	}
	switch c.Logging.Encoding {
	case "", "json", "console":
	default:
		fail("logging.encoding must be \"json\" or \"console\", got %q", c.Logging.Encoding)
	}
	return errors.Join(errs...)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// HistoryTTL returns the search history retention.
func (c *Config) HistoryTTL() time.Duration {
	return time.Duration(c.Search.History.TTLHours) * time.Hour
}

// findConfigPath locates {env}.yaml: DOCFIND_CONFIG_DIR, ./config, then the
// config directory of the source tree.
func findConfigPath(env string) string {
	filename := env + ".yaml"

	if dir := os.Getenv("DOCFIND_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, filename)
	}
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}
	_, src, _, _ := runtime.Caller(0)
	root := filepath.Dir(filepath.Dir(filepath.Dir(src))) // internal/config -> module root
	if path := filepath.Join(root, "config", filename); fileExists(path) {
		return path
	}
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars substitutes ${VAR}, ${VAR:-default} and ${VAR:?}. The last
// form fails when VAR is unset or empty.
func expandEnvVars(data []byte) ([]byte, error) {
	var missing []string
	out := envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		if name, ok := strings.CutSuffix(expr, ":?"); ok {
			val := os.Getenv(name)
			if val == "" {
				missing = append(missing, name)
			}
			return []byte(val)
		}
		name, def, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(name)
		if val == "" && hasDefault {
			val = def
		}
		return []byte(val)
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	return out, nil
}
