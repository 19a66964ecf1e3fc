package clock

import "time"

// Config holds NTP time-source configuration.
type Config struct {
	Server       string        `yaml:"server"`
	SyncInterval time.Duration `yaml:"sync_interval"`
	Timeout      time.Duration `yaml:"timeout"`
}

// Defaults applies default values to the config.
func (c *Config) Defaults() {
	if c.Server == "" {
		c.Server = "pool.ntp.org"
	}
	if c.SyncInterval <= 0 {
		c.SyncInterval = 30 * time.Minute
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
}
