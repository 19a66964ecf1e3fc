package face

// Config holds dial geometry configuration.
type Config struct {
	Size   float64 `yaml:"size"`
	Radius float64 `yaml:"radius"`
}

// Defaults applies default values to the config.
func (c *Config) Defaults() {
	if c.Size <= 0 {
		c.Size = DefaultSize
	}
	if c.Radius <= 0 {
		c.Radius = DefaultRadius
	}
}

// Face returns the dial described by the config.
func (c Config) Face() Face {
	return Face{Size: c.Size, Radius: c.Radius}
}
