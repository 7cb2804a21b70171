package logrec

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jorge-barreto/akis/internal/config"
)

const (
	LevelError = "error"
	LevelWarn  = "warn"
)

// Finding is one lint result for one file.
type Finding struct {
	Path    string
	Level   string
	Message string
}

var validComplexity = map[string]bool{
	"":        true,
	"simple":  true,
	"medium":  true,
	"complex": true,
}

// Lint checks every scanned record against the log format rules:
// filename convention, internal date consistency, frontmatter health,
// and cross-file duplicate detection.
func Lint(scan *ScanResult, cfg *config.Config) []Finding {
	var findings []Finding
	add := func(path, level, format string, args ...any) {
		findings = append(findings, Finding{Path: path, Level: level, Message: fmt.Sprintf(format, args...)})
	}

	for _, p := range scan.Problems {
		level := LevelError
		if errors.Is(p.Err, ErrUnterminatedFrontmatter) {
			add(p.Path, level, "frontmatter fence is never closed")
			continue
		}
		add(p.Path, level, "%v", p.Err)
	}

	bySession := make(map[string][]string)
	byChecksum := make(map[string][]string)

	for _, rec := range scan.Records {
		name := filepath.Base(rec.Path)
		ts, slug, err := ParseName(name)
		if err != nil {
			add(rec.Path, LevelError, "%v", err)
			continue
		}
		if err := ValidSlug(slug, cfg.SlugMaxLen); err != nil {
			add(rec.Path, LevelError, "%v", err)
		}

		m := &rec.Meta
		if !validComplexity[m.Complexity] {
			add(rec.Path, LevelError, "complexity %q is not one of simple, medium, complex", m.Complexity)
		}
		if m.Domain != "" && !cfg.DomainAllowed(m.Domain) {
			add(rec.Path, LevelWarn, "domain %q is not in the configured domain list", m.Domain)
		}

		if m.Date != "" {
			date, err := m.DateValue()
			if err != nil {
				add(rec.Path, LevelError, "date %q does not parse as YYYY-MM-DD", m.Date)
			} else {
				// Filename timestamps must not precede the stated
				// session date; a gap over a day is suspicious.
				if ts.Before(date) {
					add(rec.Path, LevelError, "filename timestamp %s precedes stated date %s", ts.Format(TimestampLayout), m.Date)
				} else if ts.Sub(date) > 48*time.Hour {
					add(rec.Path, LevelWarn, "filename timestamp %s is more than two days after stated date %s", ts.Format(TimestampLayout), m.Date)
				}
			}
			if m.ID != "" && m.IDDate() != "" && m.IDDate() != m.Date {
				add(rec.Path, LevelError, "id date prefix %q disagrees with date %q", m.IDDate(), m.Date)
			}
		}

		if m.Session != "" {
			bySession[m.Session] = append(bySession[m.Session], rec.Path)
		} else if m.ID != "" {
			bySession[m.ID] = append(bySession[m.ID], rec.Path)
		}
		byChecksum[rec.Checksum] = append(byChecksum[rec.Checksum], rec.Path)

		if err := roundTrip(rec); err != nil {
			add(rec.Path, LevelError, "frontmatter does not round-trip: %v", err)
		}
	}

	for session, paths := range bySession {
		if len(paths) > 1 {
			for _, p := range paths[1:] {
				add(p, LevelWarn, "duplicate log for session %q (first: %s)", session, paths[0])
			}
		}
	}
	for _, paths := range byChecksum {
		if len(paths) > 1 {
			for _, p := range paths[1:] {
				add(p, LevelWarn, "body is identical to %s", paths[0])
			}
		}
	}

	return findings
}

// Errors reports how many findings are at error level.
func Errors(findings []Finding) int {
	n := 0
	for _, f := range findings {
		if f.Level == LevelError {
			n++
		}
	}
	return n
}

// roundTrip re-serializes and re-parses the record, checking that the
// frontmatter mapping and body survive unchanged.
func roundTrip(rec *Record) error {
	out, err := Serialize(rec)
	if err != nil {
		return err
	}
	again, err := Parse(rec.Path, out)
	if err != nil {
		return err
	}
	if again.Body != rec.Body {
		return fmt.Errorf("body changed")
	}
	if len(again.Fields) != len(rec.Fields) {
		return fmt.Errorf("frontmatter key count changed: %d != %d", len(again.Fields), len(rec.Fields))
	}
	return nil
}
