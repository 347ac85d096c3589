package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Discord DiscordConfig `yaml:"discord"`
	Scan    ScanConfig    `yaml:"scan"`
	Media   MediaConfig   `yaml:"media"`
	Archive ArchiveConfig `yaml:"archive"`
	Status  StatusConfig  `yaml:"status"`
	Tools   ToolsConfig   `yaml:"tools"`

	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"`
}

// DiscordConfig holds the chat platform connection and channel selection.
type DiscordConfig struct {
	Token        string   `yaml:"token" envconfig:"DISCORD_BOT_TOKEN"`
	ChannelIDs   []string `yaml:"channel_ids" envconfig:"CHANNEL_IDS"`
	LogChannelID string   `yaml:"log_channel_id" envconfig:"LOG_CHANNEL_ID"`
}

// ScanConfig controls how channel history is walked.
type ScanConfig struct {
	LookbackDays int `yaml:"lookback_days" envconfig:"LOOKBACK_DAYS"`

	// HistoryScanLimit caps the backward scan for the bot's own last
	// message. A bot message older than the cap is not found and the
	// lookback window applies instead.
	HistoryScanLimit int `yaml:"history_scan_limit" envconfig:"HISTORY_SCAN_LIMIT"`

	// ChannelPause is the minimum interval between finishing one channel
	// and starting the next.
	ChannelPause time.Duration `yaml:"channel_pause" envconfig:"CHANNEL_PAUSE"`
}

// MediaConfig controls artifact handling.
type MediaConfig struct {
	MaxAttachmentMB float64 `yaml:"max_attachment_mb" envconfig:"MAX_ATTACHMENT_MB"`
	WorkDir         string  `yaml:"work_dir" envconfig:"WORK_DIR"`
}

// ArchiveConfig holds the optional run-history database. An empty path
// disables archiving.
type ArchiveConfig struct {
	Path string `yaml:"path" envconfig:"ARCHIVE_PATH"`
}

// StatusConfig holds the optional HTTP status server. An empty address
// disables it.
type StatusConfig struct {
	Addr string `yaml:"addr" envconfig:"STATUS_ADDR"`
}

// ToolsConfig overrides external tool locations. Empty values fall back
// to a PATH lookup.
type ToolsConfig struct {
	YTDLPPath   string `yaml:"ytdlp_path" envconfig:"YTDLP_PATH"`
	FFmpegPath  string `yaml:"ffmpeg_path" envconfig:"FFMPEG_PATH"`
	FFprobePath string `yaml:"ffprobe_path" envconfig:"FFPROBE_PATH"`
}

// defaults returns a Config populated with the built-in values. Struct
// fields must not carry envconfig default tags: Process applies a
// default whenever the env var is unset, clobbering the file overlay.
func defaults() *Config {
	return &Config{
		Scan: ScanConfig{
			LookbackDays:     3,
			HistoryScanLimit: 500,
			ChannelPause:     60 * time.Second,
		},
		Media: MediaConfig{
			MaxAttachmentMB: 8,
			WorkDir:         ".",
		},
		LogFormat: "text",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables override file values, file values override
// the built-in defaults.
func Load(configPath string) (*Config, error) {
	cfg := defaults()

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if len(c.Discord.ChannelIDs) == 0 {
		return fmt.Errorf("CHANNEL_IDS is required")
	}
	if c.Discord.LogChannelID == "" {
		return fmt.Errorf("LOG_CHANNEL_ID is required")
	}
	if c.Scan.LookbackDays <= 0 {
		return fmt.Errorf("LOOKBACK_DAYS must be positive")
	}
	if c.Scan.HistoryScanLimit <= 0 {
		return fmt.Errorf("HISTORY_SCAN_LIMIT must be positive")
	}
	if c.Media.MaxAttachmentMB <= 0 {
		return fmt.Errorf("MAX_ATTACHMENT_MB must be positive")
	}
	return nil
}

// Lookback returns the fallback window used when a channel has no prior
// bot activity.
func (c *ScanConfig) Lookback() time.Duration {
	return time.Duration(c.LookbackDays) * 24 * time.Hour
}
