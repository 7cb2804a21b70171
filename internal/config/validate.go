package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

const (
	DefaultLogDir         = "log/workflow"
	DefaultStorePath      = "project_knowledge.json"
	DefaultIndexPath      = ".akis/index.db"
	DefaultObservationCap = 10
	DefaultSlugMaxLen     = 50
)

// DefaultRetention is applied when the config declares no retention block.
var DefaultRetention = Retention{
	Exclude: []string{"log/**/*.md"},
	Except:  []string{"**/README.md"},
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config, projectRoot string) error {
	if cfg.Name == "" {
		return fmt.Errorf("config: 'name' is required")
	}

	if cfg.LogDir == "" {
		cfg.LogDir = DefaultLogDir
	}
	if filepath.IsAbs(cfg.LogDir) {
		return fmt.Errorf("config: 'log-dir' must be relative to the project root")
	}

	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath
	}
	if filepath.IsAbs(cfg.StorePath) {
		return fmt.Errorf("config: 'knowledge-store' must be relative to the project root")
	}

	if cfg.IndexPath == "" {
		cfg.IndexPath = DefaultIndexPath
	}

	if cfg.ObservationCap == 0 {
		cfg.ObservationCap = DefaultObservationCap
	}
	if cfg.ObservationCap < 1 {
		return fmt.Errorf("config: 'observation-cap' must be >= 1")
	}

	if cfg.SlugMaxLen == 0 {
		cfg.SlugMaxLen = DefaultSlugMaxLen
	}
	if cfg.SlugMaxLen < 8 {
		return fmt.Errorf("config: 'slug-max-length' must be >= 8")
	}

	seen := make(map[string]bool)
	for _, d := range cfg.Domains {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("config: 'domains' entries must be non-empty")
		}
		if seen[d] {
			return fmt.Errorf("config: duplicate domain tag %q", d)
		}
		seen[d] = true
	}

	if len(cfg.Retention.Exclude) == 0 && len(cfg.Retention.Except) == 0 {
		cfg.Retention = DefaultRetention
	}
	for _, p := range append(append([]string{}, cfg.Retention.Exclude...), cfg.Retention.Except...) {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("config: retention patterns must be non-empty")
		}
		if _, err := glob.Compile(p, '/'); err != nil {
			return fmt.Errorf("config: invalid retention pattern %q: %w", p, err)
		}
	}

	return nil
}
