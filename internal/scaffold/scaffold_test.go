package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jorge-barreto/akis/internal/config"
	"github.com/jorge-barreto/akis/internal/logrec"
)

func TestInit_CreatesLayout(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatal(err)
	}
	for _, rel := range []string{
		".akis/config.yaml",
		"log/workflow/README.md",
		"project_knowledge.json",
		".akis/.gitignore.example",
	} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Fatalf("missing %s: %v", rel, err)
		}
	}

	// Scaffolded config must validate.
	cfg, err := config.Load(filepath.Join(dir, ".akis", "config.yaml"), dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogDir != "log/workflow" {
		t.Fatalf("LogDir = %q", cfg.LogDir)
	}
}

func TestInit_RefusesExisting(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatal(err)
	}
	if err := Init(dir); err == nil {
		t.Fatal("expected error on second init")
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{Name: "nop", Domains: []string{"fullstack"}}
	if err := config.Validate(cfg, t.TempDir()); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestNewLog_CreatesValidRecord(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(t)
	now := time.Date(2025, 6, 1, 14, 30, 22, 0, time.UTC)

	path, err := NewLog(root, cfg, "Fix the Session Tracker", "medium", "fullstack", now)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "2025-06-01_143022_fix-the-session-tracker.md" {
		t.Fatalf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := logrec.Parse(path, string(data))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Meta.ID != "2025-06-01_fix-the-session-tracker" {
		t.Fatalf("ID = %q", rec.Meta.ID)
	}
	if rec.Meta.Session == "" {
		t.Fatal("expected a session uuid")
	}
	if rec.Meta.Date != "2025-06-01" {
		t.Fatalf("Date = %q", rec.Meta.Date)
	}
	if !strings.Contains(rec.Body, "# Summary") {
		t.Fatal("body missing section headers")
	}

	// The skeleton must lint clean.
	scan, err := logrec.Scan(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if findings := logrec.Lint(scan, cfg); len(findings) != 0 {
		t.Fatalf("skeleton has lint findings: %v", findings)
	}
}

func TestNewLog_RejectsBadComplexity(t *testing.T) {
	if _, err := NewLog(t.TempDir(), testConfig(t), "thing", "heroic", "", time.Now()); err == nil {
		t.Fatal("expected complexity error")
	}
}

func TestNewLog_RejectsUnknownDomain(t *testing.T) {
	if _, err := NewLog(t.TempDir(), testConfig(t), "thing", "simple", "kernelspace", time.Now()); err == nil {
		t.Fatal("expected domain error")
	}
}

func TestNewLog_RefusesDuplicate(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(t)
	now := time.Date(2025, 6, 1, 14, 30, 22, 0, time.UTC)
	if _, err := NewLog(root, cfg, "same slug", "simple", "", now); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLog(root, cfg, "same slug", "simple", "", now); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestNewLog_UnsluggableTitle(t *testing.T) {
	if _, err := NewLog(t.TempDir(), testConfig(t), "!!!", "simple", "", time.Now()); err == nil {
		t.Fatal("expected slug error")
	}
}
