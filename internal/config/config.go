package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Data source modes.
const (
	ModeYahoo = "yahoo"
	ModeRelay = "relay"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Mode      string        `yaml:"mode" envconfig:"DATA_SOURCE_MODE"`
		BaseURL   string        `yaml:"base_url" envconfig:"YAHOO_BASE_URL"`
		RelayURL  string        `yaml:"relay_url" envconfig:"RELAY_URL"`
		Range     string        `yaml:"range" envconfig:"DATA_RANGE"`
		Interval  string        `yaml:"interval" envconfig:"DATA_INTERVAL"`
		Timeout   time.Duration `yaml:"timeout" envconfig:"FETCH_TIMEOUT"`
		RateLimit float64       `yaml:"rate_limit" envconfig:"FETCH_RATE_LIMIT"`
	} `yaml:"data_source"`
	Advisor struct {
		Symbol string `yaml:"symbol" envconfig:"ADVISOR_SYMBOL"`
	} `yaml:"advisor"`
	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`
	Schedule struct {
		ReportCron string `yaml:"report_cron" envconfig:"CRON_REPORT"`
	} `yaml:"schedule"`
	Relay struct {
		Listen string `yaml:"listen" envconfig:"RELAY_LISTEN"`
	} `yaml:"relay"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional; variables already set in the environment win.
	_ = godotenv.Load()

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Mode == "" {
		c.DataSource.Mode = ModeYahoo
	}
	if c.DataSource.Range == "" {
		c.DataSource.Range = "1y"
	}
	if c.DataSource.Interval == "" {
		c.DataSource.Interval = "1d"
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 15 * time.Second
	}
	if c.DataSource.RateLimit == 0 {
		c.DataSource.RateLimit = 4
	}
	if c.Schedule.ReportCron == "" {
		c.Schedule.ReportCron = "0 30 16 * * 1-5"
	}
	if c.Relay.Listen == "" {
		c.Relay.Listen = ":8787"
	}
}

// Validate checks that the data source settings are usable.
func (c *Config) Validate() error {
	switch c.DataSource.Mode {
	case ModeYahoo:
	case ModeRelay:
		if c.DataSource.RelayURL == "" {
			return fmt.Errorf("data_source.relay_url is required in relay mode")
		}
	default:
		return fmt.Errorf("data_source.mode must be %q or %q, got %q", ModeYahoo, ModeRelay, c.DataSource.Mode)
	}
	if c.DataSource.Timeout < 0 {
		return fmt.Errorf("data_source.timeout must not be negative")
	}
	if c.DataSource.RateLimit < 0 {
		return fmt.Errorf("data_source.rate_limit must not be negative")
	}
	return nil
}

// ValidateBot checks the extra settings needed by the Telegram bot.
func (c *Config) ValidateBot() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
