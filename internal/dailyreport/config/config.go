// Package config provides Daily Report configuration management.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/newsapi"
	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/report"
	appconfig "github.com/RobinCoderZhao/daily-report/pkg/config"
	"github.com/RobinCoderZhao/daily-report/pkg/logging"
	"github.com/RobinCoderZhao/daily-report/pkg/notify"
	"github.com/RobinCoderZhao/daily-report/pkg/storage"
)

// AppName names the XDG config directory.
const AppName = "dailyreport"

// Config is the main configuration for Daily Report.
type Config struct {
	NewsAPI newsapi.Config       `yaml:"newsapi"`
	Email   notify.EmailConfig   `yaml:"email"`
	Webhook notify.WebhookConfig `yaml:"webhook"`
	Storage storage.Config       `yaml:"storage"`
	Log     logging.Config       `yaml:"log"`
	Report  ReportConfig         `yaml:"report"`
	Server  ServerConfig         `yaml:"server"`
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	Footer   string `yaml:"footer"`
	JSONPath string `yaml:"json_path" env:"DAILYREPORT_JSON_PATH"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"DAILYREPORT_ADDR"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig returns a Config with Gmail SMTP and report.json defaults.
func DefaultConfig() Config {
	return Config{
		NewsAPI: newsapi.Config{
			BaseURL: newsapi.DefaultBaseURL,
			Timeout: 15 * time.Second,
		},
		Email:   notify.DefaultEmailConfig(),
		Storage: storage.Config{Driver: storage.SQLite},
		Log:     logging.Config{Level: "info"},
		Report: ReportConfig{
			Footer:   report.DefaultFooter,
			JSONPath: report.DefaultJSONPath,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

// ErrMissingAPIKey is returned when no NewsAPI key is configured.
var ErrMissingAPIKey = errors.New("NEWS_API_KEY is not set")

// Validate checks settings every command needs.
func (c Config) Validate() error {
	if c.NewsAPI.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// SearchPaths returns the config files tried when no path is given:
// the working directory first, then the XDG config home.
func SearchPaths() []string {
	return []string{
		"dailyreport.yaml",
		filepath.Join(xdg.ConfigHome, AppName, "config.yaml"),
	}
}

// Load loads .env, then the config file, then environment overrides.
// When path is empty the first existing file from SearchPaths is used,
// and with none present only defaults and environment apply.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if err := appconfig.LoadDotEnv(); err != nil {
		return cfg, err
	}

	if path != "" {
		if err := appconfig.Load(path, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	if err := appconfig.LoadOrDefault(findConfig(SearchPaths()), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// findConfig returns the first path that exists, or "" when none do.
func findConfig(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
