package retention

import (
	"os"
	"path/filepath"
	"testing"
)

func defaultPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := New([]string{"log/**/*.md"}, []string{"**/README.md"})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExcluded_LogsStayLocal(t *testing.T) {
	p := defaultPolicy(t)
	if !p.Excluded("log/workflow/2025-06-01_090000_fix-thing.md") {
		t.Fatal("workflow log should be excluded")
	}
}

func TestExcluded_READMEException(t *testing.T) {
	p := defaultPolicy(t)
	if p.Excluded("log/workflow/README.md") {
		t.Fatal("README.md should survive the exclusion")
	}
}

func TestExcluded_OutsideLogTree(t *testing.T) {
	p := defaultPolicy(t)
	if p.Excluded("docs/guide.md") {
		t.Fatal("files outside log/ should be tracked")
	}
	if p.Excluded("log/data.json") {
		t.Fatal("non-markdown files under log/ should be tracked")
	}
}

func TestNew_BadPattern(t *testing.T) {
	if _, err := New([]string{"log/[*.md"}, nil); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestEvaluate_ClassifiesTree(t *testing.T) {
	root := t.TempDir()
	mkfile := func(rel string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	mkfile("log/workflow/2025-06-01_090000_one.md")
	mkfile("log/workflow/README.md")
	mkfile("log/workflow/notes.txt")

	p := defaultPolicy(t)
	report, err := p.Evaluate(root, filepath.Join(root, "log"))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Local) != 1 || report.Local[0] != "log/workflow/2025-06-01_090000_one.md" {
		t.Fatalf("Local = %v", report.Local)
	}
	if len(report.Tracked) != 2 {
		t.Fatalf("Tracked = %v", report.Tracked)
	}
}
