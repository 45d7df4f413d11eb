package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mabry1985/albion-killbot/internal/tracking"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	DataDir  string `json:"dataDir" yaml:"dataDir"`
	HTTPAddr string `json:"httpAddr" yaml:"httpAddr"`

	Log      Log      `json:"log" yaml:"log"`
	Feed     Feed     `json:"feed" yaml:"feed"`
	Notify   Notify   `json:"notify" yaml:"notify"`
	Schedule Schedule `json:"schedule" yaml:"schedule"`
	Discord  Discord  `json:"discord" yaml:"discord"`

	// Guilds maps Discord guild ids to their tracking configuration. This is
	// the subscriber directory's backing data.
	Guilds map[string]*tracking.Config `json:"guilds" yaml:"guilds"`
}

// Log captures logging settings.
type Log struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Feed captures upstream feed and catch-up settings.
type Feed struct {
	BaseURL             string `json:"baseUrl" yaml:"baseUrl"`
	TimeoutSeconds      int    `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	PageSize            int    `json:"pageSize" yaml:"pageSize"`
	MaxOffset           int    `json:"maxOffset" yaml:"maxOffset"`
	RetryBackoffSeconds int    `json:"retryBackoffSeconds" yaml:"retryBackoffSeconds"`
	// MaxRetries bounds transport retries per page; 0 retries forever.
	MaxRetries int `json:"maxRetries" yaml:"maxRetries"`
}

// Notify captures delivery settings.
type Notify struct {
	BatchLimit             int `json:"batchLimit" yaml:"batchLimit"`
	DeliveryTimeoutSeconds int `json:"deliveryTimeoutSeconds" yaml:"deliveryTimeoutSeconds"`
}

// Schedule captures pipeline cadence.
type Schedule struct {
	IngestIntervalSeconds int `json:"ingestIntervalSeconds" yaml:"ingestIntervalSeconds"`
	NotifyIntervalSeconds int `json:"notifyIntervalSeconds" yaml:"notifyIntervalSeconds"`
}

// Discord captures the delivery channel credentials.
type Discord struct {
	Token string `json:"token" yaml:"token"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		DataDir:  "./data",
		HTTPAddr: ":8080",
		Log:      Log{Level: "info", Format: "text"},
		Feed: Feed{
			TimeoutSeconds:      60,
			PageSize:            51,
			MaxOffset:           1000,
			RetryBackoffSeconds: 5,
		},
		Notify: Notify{
			BatchLimit:             1000,
			DeliveryTimeoutSeconds: 7,
		},
		Schedule: Schedule{
			IngestIntervalSeconds: 120,
			NotifyIntervalSeconds: 60,
		},
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If path
// is empty, returns defaults. Environment overlays are applied separately
// via FromEnv.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}
