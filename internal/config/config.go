package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	TimingGuardSnapshot = "snapshot"
	TimingGuardStore    = "store"

	defaultReminderCron        = "*/30 * * * *"
	defaultReminderWindowHours = 24
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		// TrustProxy reads the client IP from X-Forwarded-For / X-Real-IP.
		TrustProxy  bool   `yaml:"trust_proxy"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Predictions struct {
		// TimingGuard selects where the kickoff time used to lock predictions comes from.
		TimingGuard string `yaml:"timing_guard"`
	} `yaml:"predictions"`

	Reminders struct {
		Enabled     bool   `yaml:"enabled"`
		Cron        string `yaml:"cron"`
		WindowHours int    `yaml:"window_hours"`
	} `yaml:"reminders"`

	Email struct {
		Region          string `yaml:"region"`
		Sender          string `yaml:"sender"`
		AccessKeyID     string `yaml:"-"`
		SecretAccessKey string `yaml:"-"`
	} `yaml:"email"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	cfg.Email.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration and fills defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Predictions.TimingGuard) == "" {
		c.Predictions.TimingGuard = TimingGuardSnapshot
	}
	if strings.TrimSpace(c.Reminders.Cron) == "" {
		c.Reminders.Cron = defaultReminderCron
	}
	if c.Reminders.WindowHours == 0 {
		c.Reminders.WindowHours = defaultReminderWindowHours
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.App.SecretKey == "" && c.App.Environment != "development" {
		return fmt.Errorf("APP_SECRET_KEY is required outside development")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	switch c.Predictions.TimingGuard {
	case TimingGuardSnapshot, TimingGuardStore:
	default:
		return fmt.Errorf("unsupported predictions timing_guard: %s", c.Predictions.TimingGuard)
	}

	if _, err := cron.ParseStandard(c.Reminders.Cron); err != nil {
		return fmt.Errorf("invalid reminders cron %q: %w", c.Reminders.Cron, err)
	}
	if c.Reminders.WindowHours < 0 {
		return fmt.Errorf("reminders window_hours must be 0 or greater")
	}
	if c.Reminders.Enabled && c.Email.Sender == "" {
		return fmt.Errorf("email sender is required when reminders are enabled")
	}

	return nil
}

// EmailConfigured reports whether SES credentials and a sender are available.
func (c *Config) EmailConfigured() bool {
	return c.Email.AccessKeyID != "" && c.Email.SecretAccessKey != "" && c.Email.Region != "" && c.Email.Sender != ""
}
