package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 }},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }},
		{"missing addrs", func(c *Config) { c.Database.Addrs = nil }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "memcached" }},
		{"negative dial timeout", func(c *Config) { c.Database.DialTimeoutMS = -1 }},
		{"default above max", func(c *Config) { c.Search.DefaultPageSize = 60 }},
		{"max page size too large", func(c *Config) { c.Search.MaxPageSize = 1000 }},
		{"negative weight", func(c *Config) { c.Search.Weights.Body = -1 }},
		{"negative phrase boost", func(c *Config) { c.Search.Weights.PhraseBoost = -0.5 }},
		{"NaN weight", func(c *Config) { c.Search.Weights.Title = math.NaN() }},
		{"infinite weight", func(c *Config) { c.Search.Weights.Body = math.Inf(1) }},
		{"fuzzy thresholds inverted", func(c *Config) { c.Search.Fuzzy.OneEditMaxLen = 2 }},
		{"fuzzy zero edits", func(c *Config) { c.Search.Fuzzy.MaxEdits = 0 }},
		{"unknown log encoding", func(c *Config) { c.Logging.Encoding = "logfmt" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidate_ValkeyDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "valkey"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("http timeouts = %+v", cfg.HTTP)
	}
	if cfg.Database.Driver != "redis" {
		t.Errorf("expected Driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Search.DefaultPageSize != 5 {
		t.Errorf("expected DefaultPageSize=5, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Search.MaxPageSize != 50 {
		t.Errorf("expected MaxPageSize=50, got %d", cfg.Search.MaxPageSize)
	}
	if cfg.Search.MaxImportBatch != 500 {
		t.Errorf("expected MaxImportBatch=500, got %d", cfg.Search.MaxImportBatch)
	}
	if cfg.Search.SuggestionLimit != 10 {
		t.Errorf("expected SuggestionLimit=10, got %d", cfg.Search.SuggestionLimit)
	}
	if want := (WeightsConfig{Title: 3, Tag: 2, Body: 1, PhraseBoost: 1.5}); cfg.Search.Weights != want {
		t.Errorf("Weights = %+v, want %+v", cfg.Search.Weights, want)
	}
	if want := (FuzzyConfig{ExactMaxLen: 3, OneEditMaxLen: 6, MaxEdits: 2}); cfg.Search.Fuzzy != want {
		t.Errorf("Fuzzy = %+v, want %+v", cfg.Search.Fuzzy, want)
	}
	if cfg.HistoryTTL() != 720*time.Hour {
		t.Errorf("HistoryTTL() = %v", cfg.HistoryTTL())
	}
	if cfg.Storage.KeyPrefix != "docfind:" {
		t.Errorf("expected KeyPrefix='docfind:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: "valkey", ReadinessTimeout: 15},
		Search: SearchConfig{
			DefaultPageSize: 10,
			MaxPageSize:     20,
			Weights:         WeightsConfig{Title: 1},
			Fuzzy:           FuzzyConfig{ExactMaxLen: 0, OneEditMaxLen: 4, MaxEdits: 1},
		},
		Storage: StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 || cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("http = %+v", cfg.HTTP)
	}
	if cfg.Database.Driver != "valkey" {
		t.Errorf("Driver = %q", cfg.Database.Driver)
	}
	if cfg.Search.DefaultPageSize != 10 || cfg.Search.MaxPageSize != 20 {
		t.Errorf("page sizes = %d/%d", cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	}
	// a present weights section is taken literally
	if cfg.Search.Weights != (WeightsConfig{Title: 1}) {
		t.Errorf("Weights = %+v", cfg.Search.Weights)
	}
	if cfg.Search.Fuzzy.OneEditMaxLen != 4 || cfg.Search.Fuzzy.MaxEdits != 1 {
		t.Errorf("Fuzzy = %+v", cfg.Search.Fuzzy)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: ${DOCFIND_TEST_PORT}
database:
  addrs: ["${DOCFIND_TEST_ADDR:-localhost:6379}"]
search:
  default_page_size: 8
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unit.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCFIND_TEST_PORT", "9090")
	t.Chdir(dir)

	cfg, err := Load("unit")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.HTTP.Port)
	}
	if len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "localhost:6379" {
		t.Errorf("Addrs = %v", cfg.Database.Addrs)
	}
	if cfg.Search.DefaultPageSize != 8 || cfg.Search.MaxPageSize != 50 {
		t.Errorf("Search = %+v", cfg.Search)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "bad.yaml"), []byte("http:\n  port: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	if _, err := Load("bad"); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestLoad_RequiredEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "http:\n  port: 8080\ndatabase:\n  addrs: [\"${DOCFIND_TEST_REQUIRED:?}\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "req.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCFIND_CONFIG_DIR", dir)

	t.Setenv("DOCFIND_TEST_REQUIRED", "")
	_, err := Load("req")
	if err == nil || !strings.Contains(err.Error(), "DOCFIND_TEST_REQUIRED") {
		t.Fatalf("expected missing variable error, got %v", err)
	}

	t.Setenv("DOCFIND_TEST_REQUIRED", "redis:6379")
	cfg, err := Load("req")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Addrs[0] != "redis:6379" {
		t.Errorf("Addrs = %v", cfg.Database.Addrs)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	cfg.Database.Addrs = nil
	cfg.Logging.Encoding = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"http.port", "database.addrs", "logging.encoding"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestDialTimeout(t *testing.T) {
	d := DatabaseConfig{DialTimeoutMS: 1500}
	if got := d.DialTimeout(); got != 1500*time.Millisecond {
		t.Errorf("DialTimeout() = %v", got)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name, docfindEnv, env, want string
	}{
		{"default", "", "", "local"},
		{"ENV", "", "prod", "prod"},
		{"DOCFIND_ENV wins", "dev", "prod", "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DOCFIND_ENV", tt.docfindEnv)
			t.Setenv("ENV", tt.env)
			if got := GetEnv(); got != tt.want {
				t.Errorf("GetEnv() = %q, want %q", got, tt.want)
			}
		})
	}
}
