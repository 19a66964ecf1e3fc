package sampler

import "time"

// Config holds time-sampler configuration.
type Config struct {
	// Period is the polling interval. It should be much finer than the
	// one-second display granularity so second-boundary crossings are
	// picked up with low latency.
	Period time.Duration `yaml:"period"`
	// Discrete selects whole-second display updates at startup.
	Discrete bool `yaml:"discrete"`
}

// Defaults applies default values to the config.
func (c *Config) Defaults() {
	if c.Period <= 0 {
		c.Period = 10 * time.Millisecond
	}
}
