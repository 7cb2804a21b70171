// Package retention evaluates which log files stay local versus tracked in
// version control, using gitignore-style glob patterns with exceptions.
package retention

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Policy is a compiled set of exclusion patterns plus exceptions.
// Exceptions win: a path matching both stays tracked.
type Policy struct {
	exclude []glob.Glob
	except  []glob.Glob

	ExcludeSrc []string
	ExceptSrc  []string
}

// New compiles a policy. Patterns use '/' as the separator, so `*` does not
// cross directories and `**` does.
func New(exclude, except []string) (*Policy, error) {
	p := &Policy{ExcludeSrc: exclude, ExceptSrc: except}
	for _, pat := range exclude {
		g, err := glob.Compile(pat, '/')
		if err != nil {
			return nil, fmt.Errorf("retention: invalid pattern %q: %w", pat, err)
		}
		p.exclude = append(p.exclude, g)
	}
	for _, pat := range except {
		g, err := glob.Compile(pat, '/')
		if err != nil {
			return nil, fmt.Errorf("retention: invalid exception %q: %w", pat, err)
		}
		p.except = append(p.except, g)
	}
	return p, nil
}

// Excluded reports whether a slash-separated relative path stays local.
func (p *Policy) Excluded(path string) bool {
	path = filepath.ToSlash(path)
	for _, g := range p.except {
		if g.Match(path) {
			return false
		}
	}
	for _, g := range p.exclude {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Report classifies the files under a directory tree.
type Report struct {
	Local   []string // excluded from version control
	Tracked []string
}

// Evaluate walks dir and classifies every file against the policy.
// Paths in the report are relative to root.
func (p *Policy) Evaluate(root, dir string) (*Report, error) {
	report := &Report{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, "..") {
			return fmt.Errorf("retention: %s is outside the project root", path)
		}
		if p.Excluded(rel) {
			report.Local = append(report.Local, rel)
		} else {
			report.Tracked = append(report.Tracked, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(report.Local)
	sort.Strings(report.Tracked)
	return report, nil
}
