// Package config loads the bot configuration from YAML, a .env file and
// PEON_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DiscordConfig holds Discord-specific settings.
type DiscordConfig struct {
	Token string `yaml:"token"` // bot token from the developer portal
}

// TelegramConfig holds Telegram-specific settings.
type TelegramConfig struct {
	Token     string  `yaml:"token"`     // bot token from @BotFather
	Allowlist []int64 `yaml:"allowlist"` // user IDs allowed to use the bot; empty admits everyone
}

// OpenAIConfig holds completion settings.
type OpenAIConfig struct {
	Token string `yaml:"token"`
	Model string `yaml:"model"` // empty selects the default model
}

// AuctionConfig holds auction-house lookup settings.
type AuctionConfig struct {
	BaseURL     string `yaml:"base_url"`
	CatalogPath string `yaml:"catalog_path"` // item id to name JSON
	FuzzyCutoff int    `yaml:"fuzzy_cutoff"` // minimum similarity percent, 0 selects the default
}

// Config holds the full peon configuration.
type Config struct {
	Discord          DiscordConfig  `yaml:"discord"`
	Telegram         TelegramConfig `yaml:"telegram"`
	OpenAI           OpenAIConfig   `yaml:"openai"`
	Auction          AuctionConfig  `yaml:"auction"`
	RapidAPIToken    string         `yaml:"rapidapi_token"`    // urban dictionary access
	OpenWeatherToken string         `yaml:"openweather_token"` // weather access
	DatabasePath     string         `yaml:"database_path"`     // sqlite file for persisted state
	LogFile          string         `yaml:"log_file"`          // path to log file, empty logs to stderr only
	Debug            bool           `yaml:"debug"`             // enable debug logging
}

// envOverrides maps PEON_* variables onto config fields. Secrets usually
// arrive this way so tokens never land in the YAML file.
var envOverrides = map[string]func(*Config, string){
	"PEON_DISCORD_TOKEN":     func(c *Config, v string) { c.Discord.Token = v },
	"PEON_TELEGRAM_TOKEN":    func(c *Config, v string) { c.Telegram.Token = v },
	"PEON_OPENAI_TOKEN":      func(c *Config, v string) { c.OpenAI.Token = v },
	"PEON_RAPIDAPI_TOKEN":    func(c *Config, v string) { c.RapidAPIToken = v },
	"PEON_OPENWEATHER_TOKEN": func(c *Config, v string) { c.OpenWeatherToken = v },
	"PEON_DATABASE_PATH":     func(c *Config, v string) { c.DatabasePath = v },
	"PEON_LOG_FILE":          func(c *Config, v string) { c.LogFile = v },
	"PEON_DEBUG": func(c *Config, v string) {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	},
}

// Load reads the config file, overlays a .env file when one is present and
// applies PEON_* environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// missing .env is the normal case outside local development
	_ = godotenv.Load()

	for name, apply := range envOverrides {
		if v := os.Getenv(name); v != "" {
			apply(&cfg, v)
		}
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Auction.BaseURL == "" {
		c.Auction.BaseURL = "https://www.wowauctions.net/auctionHouse/turtle-wow/nordanaar/mergedAh"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "peon.db"
	}
}

func (c *Config) validate() error {
	if c.Discord.Token == "" && c.Telegram.Token == "" {
		return fmt.Errorf("at least one of discord.token or telegram.token is required")
	}
	if c.Auction.FuzzyCutoff < 0 || c.Auction.FuzzyCutoff > 100 {
		return fmt.Errorf("auction.fuzzy_cutoff must be between 0 and 100")
	}
	return nil
}
