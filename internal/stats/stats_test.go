package stats

import (
	"testing"
	"time"

	"github.com/jorge-barreto/akis/internal/knowledge"
	"github.com/jorge-barreto/akis/internal/logrec"
)

func record(t *testing.T, name, content string) *logrec.Record {
	t.Helper()
	rec, err := logrec.Parse(name, content)
	if err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestCollect(t *testing.T) {
	records := []*logrec.Record{
		record(t, "2025-06-01_090000_first.md", `---
complexity: simple
domain: frontend_only
skills_loaded: [react-patterns]
gates_passed: [G0, G1]
files_modified:
  - path: src/App.tsx
    type: component
    domain: frontend
---
- [x] fix stale closure
- [ ] add regression test
`),
		record(t, "2025-06-03_110000_second.md", `---
complexity: complex
domain: fullstack
skills_loaded: [react-patterns, db-migrations]
gates_passed: [G0]
gates_violated: [G3]
---
body
`),
	}
	set := &knowledge.Set{
		Entities: []knowledge.Entity{
			{Name: "X", Observations: []string{"a", "b"}},
			{Name: "Y", Observations: []string{"c"}},
		},
		Relations: []knowledge.Relation{
			{From: "X", To: "Y", RelationType: "USES"},
		},
	}

	s := Collect(records, set)
	if s.Logs != 2 {
		t.Fatalf("Logs = %d", s.Logs)
	}
	wantFirst := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	if !s.First.Equal(wantFirst) {
		t.Fatalf("First = %v", s.First)
	}
	wantLast := time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC)
	if !s.Last.Equal(wantLast) {
		t.Fatalf("Last = %v", s.Last)
	}
	if s.Complexity["simple"] != 1 || s.Complexity["complex"] != 1 {
		t.Fatalf("Complexity = %v", s.Complexity)
	}
	if s.GatesPassed != 3 || s.GatesViolated != 1 {
		t.Fatalf("gates = %d/%d", s.GatesPassed, s.GatesViolated)
	}
	if s.FilesModified != 1 {
		t.Fatalf("FilesModified = %d", s.FilesModified)
	}
	if s.TasksDone != 1 || s.TasksOpen != 1 {
		t.Fatalf("tasks = %d/%d", s.TasksDone, s.TasksOpen)
	}
	if len(s.TopSkills) != 2 || s.TopSkills[0].Skill != "react-patterns" || s.TopSkills[0].Count != 2 {
		t.Fatalf("TopSkills = %v", s.TopSkills)
	}
	if s.Entities != 2 || s.Relations != 1 || s.Observations != 3 {
		t.Fatalf("knowledge = %d/%d/%d", s.Entities, s.Relations, s.Observations)
	}
}

func TestCollect_EmptyCorpus(t *testing.T) {
	s := Collect(nil, nil)
	if s.Logs != 0 || !s.First.IsZero() {
		t.Fatalf("summary = %+v", s)
	}
}
