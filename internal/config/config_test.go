package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "memcached" }, "database.driver"},
		{"missing addrs", func(c *Config) { c.Database.Addrs = nil }, "database.addrs is required"},
		{"negative db", func(c *Config) { c.Database.DB = -1 }, "database.db"},
		{"prefix without colon", func(c *Config) { c.Storage.KeyPrefix = "recipes" }, "storage.key_prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.HTTP.MaxBodyBytes != 4<<20 {
		t.Errorf("expected MaxBodyBytes=4MiB, got %d", cfg.HTTP.MaxBodyBytes)
	}
	if cfg.Database.Driver != "valkey" {
		t.Errorf("expected Driver=valkey, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Database.DialTimeoutSec != 5 || cfg.Database.WriteTimeoutSec != 3 {
		t.Errorf("expected dial/write timeouts 5/3, got %d/%d", cfg.Database.DialTimeoutSec, cfg.Database.WriteTimeoutSec)
	}
	if cfg.Index.MaxBatchSize != 100 {
		t.Errorf("expected MaxBatchSize=100, got %d", cfg.Index.MaxBatchSize)
	}
	if cfg.Storage.KeyPrefix != "recipes:" {
		t.Errorf("expected KeyPrefix='recipes:', got %q", cfg.Storage.KeyPrefix)
	}
	if !cfg.Breaker.IsEnabled() {
		t.Error("breaker should be enabled by default")
	}
	if cfg.Breaker.ConsecutiveFailures != 5 || cfg.Breaker.TimeoutSec != 30 || cfg.Breaker.MaxRequests != 1 {
		t.Errorf("unexpected breaker defaults: %+v", cfg.Breaker)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	disabled := false
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: "redis", ReadinessTimeout: 15},
		Index:    IndexConfig{MaxBatchSize: 50},
		Storage:  StorageConfig{KeyPrefix: "custom:"},
		Breaker:  BreakerConfig{Enabled: &disabled, ConsecutiveFailures: 2},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.Driver != "redis" {
		t.Errorf("expected Driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.Index.MaxBatchSize != 50 {
		t.Errorf("expected MaxBatchSize=50, got %d", cfg.Index.MaxBatchSize)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Breaker.IsEnabled() {
		t.Error("explicitly disabled breaker must stay disabled")
	}
	if cfg.Breaker.ConsecutiveFailures != 2 {
		t.Errorf("expected ConsecutiveFailures=2, got %d", cfg.Breaker.ConsecutiveFailures)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("RECIPEDEX_TEST_HOST", "valkey.internal")

	in := "addrs: [${RECIPEDEX_TEST_HOST}:6379]\nport: ${RECIPEDEX_TEST_UNSET:-8080}\nkey: ${RECIPEDEX_TEST_UNSET}"
	want := "addrs: [valkey.internal:6379]\nport: 8080\nkey: "

	if got := string(expandEnvVars([]byte(in))); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoad_FromFileWithDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() { _ = os.Unsetenv("RECIPEDEX_TEST_PORT") })

	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: ${RECIPEDEX_TEST_PORT:-8080}
database:
  addrs: ["localhost:6379"]
index:
  max_batch_size: 25
`
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RECIPEDEX_TEST_PORT=9091\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9091 {
		t.Errorf("expected port from .env, got %d", cfg.HTTP.Port)
	}
	if cfg.Index.MaxBatchSize != 25 {
		t.Errorf("expected MaxBatchSize=25, got %d", cfg.Index.MaxBatchSize)
	}
	if cfg.Storage.KeyPrefix != "recipes:" {
		t.Errorf("defaults not applied, KeyPrefix=%q", cfg.Storage.KeyPrefix)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := Load("nonexistent-env"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
