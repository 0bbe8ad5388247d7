package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration file shape.
type Config struct {
	Version  string   `yaml:"version" json:"version"`
	Schedule Schedule `yaml:"schedule" json:"schedule"`
}

func (c *Config) ApplyDefaults() {
	c.Schedule.ApplyDefaults()
}

// Load reads a YAML config file and fills in defaults. A missing file
// is not an error; callers get the stock configuration.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.ApplyDefaults()
			return &c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}
