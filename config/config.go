// Package config holds the settings of the rbk command line tool.
//
// Settings are read from a YAML file, then overridden by RBK_* environment
// variables. A .env file in the working directory is loaded first, so the
// variables can live there.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the file settings.
const (
	EnvStore        = "RBK_STORE"
	EnvCurrency     = "RBK_CURRENCY"
	EnvLogLevel     = "RBK_LOG_LEVEL"
	EnvSMTPHost     = "RBK_SMTP_HOST"
	EnvSMTPPort     = "RBK_SMTP_PORT"
	EnvSMTPUsername = "RBK_SMTP_USERNAME"
	EnvSMTPPassword = "RBK_SMTP_PASSWORD"
	EnvSMTPFrom     = "RBK_SMTP_FROM"
	EnvRemindTo     = "RBK_REMIND_TO"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "rbk.yaml"

// StoreConfig selects where the book is persisted. DSN wins over Path.
type StoreConfig struct {
	// Path of the JSON snapshot file.
	Path string `yaml:"path"`
	// DSN of a SQL database: "sqlite:<file>" or a "postgres://" URL.
	DSN string `yaml:"dsn"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// SMTPConfig holds the mail server used to send reminders.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Addr returns the "host:port" address of the server.
func (s SMTPConfig) Addr() string { return s.Host + ":" + strconv.Itoa(s.Port) }

// RemindConfig holds the reminder digest settings.
type RemindConfig struct {
	To          []string `yaml:"to"`
	Schedule    string   `yaml:"schedule"` // standard 5 fields cron expression.
	HorizonDays int      `yaml:"horizon_days"`
}

// AssistConfig holds the advisor settings.
type AssistConfig struct {
	Model string `yaml:"model"`
}

// Config represents the complete configuration of rbk.
type Config struct {
	Store    StoreConfig  `yaml:"store"`
	Currency string       `yaml:"currency"`
	Log      LogConfig    `yaml:"log"`
	SMTP     SMTPConfig   `yaml:"smtp"`
	Remind   RemindConfig `yaml:"remind"`
	Assist   AssistConfig `yaml:"assist"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads the configuration file at path, applies the defaults and the
// environment. A missing file is not an error: the defaults are used.
func Load(path string) (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults sets default values for unspecified configuration
func setDefaults(cfg *Config) {
	if cfg.Store.Path == "" && cfg.Store.DSN == "" {
		cfg.Store.Path = "rentbook.json"
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.Remind.Schedule == "" {
		cfg.Remind.Schedule = "0 8 * * *"
	}
	if cfg.Remind.HorizonDays == 0 {
		cfg.Remind.HorizonDays = 60
	}
	if cfg.Assist.Model == "" {
		cfg.Assist.Model = "gemini-2.5-pro"
	}
}

// applyEnv overrides the settings with the non empty environment variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvStore); v != "" {
		if IsDSN(v) {
			c.Store = StoreConfig{DSN: v}
		} else {
			c.Store = StoreConfig{Path: v}
		}
	}
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Currency, EnvCurrency)
	set(&c.Log.Level, EnvLogLevel)
	set(&c.SMTP.Host, EnvSMTPHost)
	set(&c.SMTP.Username, EnvSMTPUsername)
	set(&c.SMTP.Password, EnvSMTPPassword)
	set(&c.SMTP.From, EnvSMTPFrom)
	if v := getenv(EnvSMTPPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be a port number, got %q", EnvSMTPPort, v)
		}
		c.SMTP.Port = port
	}
	if v := getenv(EnvRemindTo); v != "" {
		c.Remind.To = nil
		for _, addr := range strings.Split(v, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				c.Remind.To = append(c.Remind.To, addr)
			}
		}
	}
	return nil
}

// IsDSN reports whether a store location is a database DSN rather than a file path.
func IsDSN(s string) bool {
	return strings.HasPrefix(s, "sqlite:") || strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Store.DSN != "" && !IsDSN(c.Store.DSN) {
		return fmt.Errorf("store.dsn must start with sqlite: or postgres://, got %q", c.Store.DSN)
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("currency must be an ISO 4217 code, got %q", c.Currency)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return fmt.Errorf("smtp.port must be between 1 and 65535")
	}
	if _, err := cron.ParseStandard(c.Remind.Schedule); err != nil {
		return fmt.Errorf("remind.schedule %q: %w", c.Remind.Schedule, err)
	}
	if c.Remind.HorizonDays < 0 {
		return fmt.Errorf("remind.horizon_days must not be negative")
	}
	return nil
}

// CanMail reports whether reminders can be sent by email.
func (c *Config) CanMail() bool {
	return c.SMTP.Host != "" && c.SMTP.From != "" && len(c.Remind.To) > 0
}
