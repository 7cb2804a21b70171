package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jorge-barreto/akis/internal/config"
	"github.com/jorge-barreto/akis/internal/logrec"
)

var logTemplate = `---
id: %s
session: %s
date: "%s"
complexity: %s
domain: %s
skills_loaded: []
files_modified: []
agents_delegated: []
gates_passed: []
gates_violated: []
root_causes: []
gotchas: []
---
# Summary

## Tasks

- [ ]

## Decisions

## Files Modified

## Gotchas

## Verification

## Notes
`

// NewLog creates a workflow log skeleton and returns its path. The slug is
// derived from title; complexity and domain seed the frontmatter.
func NewLog(projectRoot string, cfg *config.Config, title, complexity, domain string, now time.Time) (string, error) {
	slug := logrec.Slugify(title, cfg.SlugMaxLen)
	if err := logrec.ValidSlug(slug, cfg.SlugMaxLen); err != nil {
		return "", fmt.Errorf("cannot derive a slug from %q: %w", title, err)
	}
	if complexity == "" {
		complexity = "medium"
	}
	switch complexity {
	case "simple", "medium", "complex":
	default:
		return "", fmt.Errorf("complexity %q is not one of simple, medium, complex", complexity)
	}
	if domain != "" && !cfg.DomainAllowed(domain) {
		return "", fmt.Errorf("domain %q is not in the configured domain list", domain)
	}

	dir := filepath.Join(projectRoot, cfg.LogDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating log dir: %w", err)
	}

	name := logrec.FormatName(now, slug)
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("log %s already exists", path)
	}

	date := now.Format("2006-01-02")
	id := date + "_" + slug
	session := uuid.NewString()

	content := fmt.Sprintf(logTemplate, id, session, date, complexity, domain)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing log: %w", err)
	}
	return path, nil
}
