package config

import (
	"os"
	"strconv"
)

// FromEnv overlays KILLBOT_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("KILLBOT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("KILLBOT_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("KILLBOT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("KILLBOT_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("KILLBOT_FEED_BASE_URL"); v != "" {
		cfg.Feed.BaseURL = v
	}
	if v := os.Getenv("KILLBOT_FEED_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Feed.PageSize = n
		}
	}
	if v := os.Getenv("KILLBOT_FEED_MAX_OFFSET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Feed.MaxOffset = n
		}
	}
	if v := os.Getenv("KILLBOT_FEED_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Feed.MaxRetries = n
		}
	}
	if v := os.Getenv("KILLBOT_DISCORD_TOKEN"); v != "" {
		cfg.Discord.Token = v
	}
}
