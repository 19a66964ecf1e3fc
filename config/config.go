package config

import (
	"os"

	"github.com/nholloway/clockface/clock"
	"github.com/nholloway/clockface/face"
	"github.com/nholloway/clockface/logger"
	"github.com/nholloway/clockface/sampler"
	"github.com/nholloway/clockface/webui"
	"go.uber.org/config"
)

// ClockConfig holds time-source configuration.
type ClockConfig struct {
	// NTP enables the drift-corrected time source; when false the
	// system clock is used directly.
	NTP  bool         `yaml:"ntp"`
	Sync clock.Config `yaml:"sync"`
}

// AppConfig holds all application configuration.
type AppConfig struct {
	Logger  logger.Config  `yaml:"logger"`
	Clock   ClockConfig    `yaml:"clock"`
	Sampler sampler.Config `yaml:"sampler"`
	Face    face.Config    `yaml:"face"`
	WebUI   webui.Config   `yaml:"webui"`
}

// Load reads configuration from the specified YAML files.
// Files are merged in order, with later files overriding earlier ones.
// Missing files are silently ignored.
func Load(files ...string) (*AppConfig, error) {
	opts := make([]config.YAMLOption, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			opts = append(opts, config.File(f))
		}
	}

	if len(opts) == 0 {
		return nil, os.ErrNotExist
	}

	provider, err := config.NewYAML(opts...)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := provider.Get(config.Root).Populate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and fills every section's
// missing values with its defaults.
func LoadWithDefaults(files ...string) (*AppConfig, error) {
	cfg, err := Load(files...)
	if err != nil {
		return nil, err
	}
	cfg.defaults()
	return cfg, nil
}

// Default returns an AppConfig with every section at its defaults.
func Default() *AppConfig {
	cfg := &AppConfig{}
	cfg.defaults()
	return cfg
}

func (cfg *AppConfig) defaults() {
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if len(cfg.Logger.OutputPaths) == 0 {
		cfg.Logger.OutputPaths = []string{"stdout"}
	}
	cfg.Clock.Sync.Defaults()
	cfg.Sampler.Defaults()
	cfg.Face.Defaults()
	cfg.WebUI.Defaults()
}
