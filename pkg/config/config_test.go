package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	APIKey  string        `yaml:"api_key" env:"TEST_NEWS_API_KEY"`
	Port    int           `yaml:"port" env:"TEST_SMTP_PORT"`
	Debug   bool          `yaml:"debug" env:"TEST_DEBUG"`
	Timeout time.Duration `yaml:"timeout" env:"TEST_TIMEOUT"`
	Mail    struct {
		From string `yaml:"from" env:"TEST_SENDER_EMAIL"`
	} `yaml:"mail"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `
api_key: abc123
port: 587
debug: false
timeout: 15s
mail:
  from: me@example.com
`)

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.APIKey != "abc123" {
		t.Fatalf("expected 'abc123', got '%s'", cfg.APIKey)
	}
	if cfg.Port != 587 {
		t.Fatalf("expected 587, got %d", cfg.Port)
	}
	if cfg.Timeout != 15*time.Second {
		t.Fatalf("expected 15s, got %s", cfg.Timeout)
	}
	if cfg.Mail.From != "me@example.com" {
		t.Fatalf("expected nested field to load, got '%s'", cfg.Mail.From)
	}
}

func TestEnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", `
api_key: from-file
port: 25
`)

	t.Setenv("TEST_NEWS_API_KEY", "from-env")
	t.Setenv("TEST_SMTP_PORT", "465")
	t.Setenv("TEST_DEBUG", "true")
	t.Setenv("TEST_TIMEOUT", "2m")
	t.Setenv("TEST_SENDER_EMAIL", "env@example.com")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.APIKey != "from-env" {
		t.Fatalf("expected 'from-env', got '%s'", cfg.APIKey)
	}
	if cfg.Port != 465 {
		t.Fatalf("expected 465, got %d", cfg.Port)
	}
	if !cfg.Debug {
		t.Fatal("expected debug to be true from env")
	}
	if cfg.Timeout != 2*time.Minute {
		t.Fatalf("expected 2m, got %s", cfg.Timeout)
	}
	if cfg.Mail.From != "env@example.com" {
		t.Fatalf("expected nested env override, got '%s'", cfg.Mail.From)
	}
}

func TestLoad_ExpandsVariables(t *testing.T) {
	t.Setenv("TEST_EXPANDED_KEY", "expanded")
	path := writeFile(t, "config.yaml", "api_key: ${TEST_EXPANDED_KEY}\n")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "expanded" {
		t.Fatalf("expected 'expanded', got '%s'", cfg.APIKey)
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg := testConfig{Port: 587}
	if err := LoadOrDefault("/nonexistent/config.yaml", &cfg); err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Port != 587 {
		t.Fatalf("expected defaults to survive, got %d", cfg.Port)
	}
}

func TestLoadOrDefault_MissingFileStillAppliesEnv(t *testing.T) {
	t.Setenv("TEST_NEWS_API_KEY", "env-only")

	var cfg testConfig
	if err := LoadOrDefault("", &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "env-only" {
		t.Fatalf("expected env override without a file, got '%s'", cfg.APIKey)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "TEST_DOTENV_VALUE=from-dotenv\n")
	t.Setenv("TEST_DOTENV_VALUE", "")
	os.Unsetenv("TEST_DOTENV_VALUE")

	if err := LoadDotEnv(path, "/nonexistent/.env"); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("TEST_DOTENV_VALUE"); got != "from-dotenv" {
		t.Fatalf("expected 'from-dotenv', got '%s'", got)
	}
}

func TestLoadDotEnv_DoesNotOverrideProcessEnv(t *testing.T) {
	path := writeFile(t, ".env", "TEST_DOTENV_KEEP=from-dotenv\n")
	t.Setenv("TEST_DOTENV_KEEP", "from-process")

	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("TEST_DOTENV_KEEP"); got != "from-process" {
		t.Fatalf("expected process env to win, got '%s'", got)
	}
}
