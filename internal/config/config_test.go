package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
discord:
  token: "d-token"
telegram:
  token: "t-token"
  allowlist:
    - 12345
    - 67890
openai:
  token: "o-token"
  model: "gpt-4o-mini"
auction:
  catalog_path: "items.json"
  fuzzy_cutoff: 75
rapidapi_token: "r-token"
openweather_token: "w-token"
log_file: "/tmp/peon.log"
debug: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Discord.Token != "d-token" {
		t.Errorf("Discord.Token = %q", cfg.Discord.Token)
	}
	if cfg.Telegram.Token != "t-token" {
		t.Errorf("Telegram.Token = %q", cfg.Telegram.Token)
	}
	if len(cfg.Telegram.Allowlist) != 2 || cfg.Telegram.Allowlist[0] != 12345 {
		t.Errorf("Telegram.Allowlist = %v", cfg.Telegram.Allowlist)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("OpenAI.Model = %q", cfg.OpenAI.Model)
	}
	if cfg.Auction.FuzzyCutoff != 75 {
		t.Errorf("Auction.FuzzyCutoff = %d", cfg.Auction.FuzzyCutoff)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "t-token"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !strings.Contains(cfg.Auction.BaseURL, "wowauctions.net") {
		t.Errorf("Auction.BaseURL default = %q", cfg.Auction.BaseURL)
	}
	if cfg.DatabasePath != "peon.db" {
		t.Errorf("DatabasePath default = %q", cfg.DatabasePath)
	}
}

func TestLoadRequiresAPlatformToken(t *testing.T) {
	path := writeConfig(t, `
debug: true
`)
	if _, err := Load(path); err == nil {
		t.Error("Load() should error when no platform token is set")
	}
}

func TestLoadRejectsBadCutoff(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "t-token"
auction:
  fuzzy_cutoff: 150
`)
	if _, err := Load(path); err == nil {
		t.Error("Load() should error on an out-of-range cutoff")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "file-token"
`)
	t.Setenv("PEON_TELEGRAM_TOKEN", "env-token")
	t.Setenv("PEON_DEBUG", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Telegram.Token != "env-token" {
		t.Errorf("Telegram.Token = %q, want env override", cfg.Telegram.Token)
	}
	if !cfg.Debug {
		t.Error("Debug should follow PEON_DEBUG")
	}
}
