package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Retention describes which log files stay out of version control.
type Retention struct {
	Exclude []string `yaml:"exclude"`
	Except  []string `yaml:"except"`
}

type Config struct {
	Name           string    `yaml:"name"`
	LogDir         string    `yaml:"log-dir"`
	StorePath      string    `yaml:"knowledge-store"`
	IndexPath      string    `yaml:"index-path"`
	ObservationCap int       `yaml:"observation-cap"`
	SlugMaxLen     int       `yaml:"slug-max-length"`
	Domains        []string  `yaml:"domains"`
	Retention      Retention `yaml:"retention"`
}

// Load reads a YAML config file and returns a validated Config.
func Load(path, projectRoot string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg, projectRoot); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DomainAllowed reports whether tag is an accepted domain tag.
// An empty domains list accepts any tag.
func (c *Config) DomainAllowed(tag string) bool {
	if len(c.Domains) == 0 {
		return true
	}
	for _, d := range c.Domains {
		if d == tag {
			return true
		}
	}
	return false
}
