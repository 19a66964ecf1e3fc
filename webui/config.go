package webui

import "time"

// Config holds display-stream server configuration.
type Config struct {
	Addr         string        `yaml:"addr"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	PingPeriod   time.Duration `yaml:"ping_period"`
	PongWait     time.Duration `yaml:"pong_wait"`
	SendBuffer   int           `yaml:"send_buffer"`
}

// Defaults applies default values to the config. PongWait is kept
// above PingPeriod so healthy clients are never timed out between pings.
func (c *Config) Defaults() {
	if c.Addr == "" {
		c.Addr = ":8484"
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.PingPeriod <= 0 {
		c.PingPeriod = 30 * time.Second
	}
	if c.PongWait <= c.PingPeriod {
		c.PongWait = 4 * c.PingPeriod
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = 8
	}
}
