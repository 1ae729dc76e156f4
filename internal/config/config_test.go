package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_YAMLAndDefaults(t *testing.T) {
	path := writeConfig(t, `
data_source:
  mode: relay
  relay_url: https://example.netlify.app/.netlify/functions/fetchStock
  timeout: 5s
advisor:
  symbol: RPOWER.NS
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataSource.Mode != ModeRelay || cfg.DataSource.Timeout != 5*time.Second {
		t.Errorf("yaml not applied: %+v", cfg.DataSource)
	}
	if cfg.Advisor.Symbol != "RPOWER.NS" {
		t.Errorf("symbol: %q", cfg.Advisor.Symbol)
	}
	if cfg.DataSource.Range != "1y" || cfg.DataSource.Interval != "1d" {
		t.Errorf("defaults not applied: %+v", cfg.DataSource)
	}
	if cfg.DataSource.RateLimit != 4 || cfg.Relay.Listen != ":8787" {
		t.Errorf("defaults not applied: rate=%v listen=%q", cfg.DataSource.RateLimit, cfg.Relay.Listen)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataSource.Timeout != 15*time.Second {
		t.Errorf("timeout: %v", cfg.DataSource.Timeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "data_source:\n  mode: yahoo\n  timeout: 5s\n")
	t.Setenv("DATA_SOURCE_MODE", "relay")
	t.Setenv("RELAY_URL", "http://localhost:8787/")
	t.Setenv("FETCH_TIMEOUT", "2s")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("ADVISOR_SYMBOL", "TCS.NS")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataSource.Mode != ModeRelay || cfg.DataSource.RelayURL != "http://localhost:8787/" {
		t.Errorf("env not applied: %+v", cfg.DataSource)
	}
	if cfg.DataSource.Timeout != 2*time.Second {
		t.Errorf("timeout: %v", cfg.DataSource.Timeout)
	}
	if cfg.Telegram.BotToken != "token" || cfg.Advisor.Symbol != "TCS.NS" {
		t.Errorf("env not applied: token=%q symbol=%q", cfg.Telegram.BotToken, cfg.Advisor.Symbol)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "data_source: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}

	cfg.DataSource.Mode = ModeRelay
	if err := cfg.Validate(); err == nil {
		t.Error("relay mode without relay_url should fail")
	}

	cfg.DataSource.Mode = "bloomberg"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown mode should fail")
	}

	if err := cfg.ValidateBot(); err == nil {
		t.Error("bot without token should fail")
	}
	cfg.Telegram.BotToken, cfg.Telegram.ChatID = "t", "c"
	if err := cfg.ValidateBot(); err != nil {
		t.Errorf("validate bot: %v", err)
	}
}
