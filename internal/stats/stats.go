// Package stats aggregates a scanned log corpus and knowledge set into the
// report rendered by `akis status`.
package stats

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/jorge-barreto/akis/internal/knowledge"
	"github.com/jorge-barreto/akis/internal/logrec"
)

// SkillCount pairs a skill name with how many sessions loaded it.
type SkillCount struct {
	Skill string
	Count int
}

// Summary is the aggregated view of the corpus.
type Summary struct {
	Logs  int
	First time.Time
	Last  time.Time

	Complexity map[string]int
	Domains    map[string]int

	GatesPassed   int
	GatesViolated int
	FilesModified int
	TasksDone     int
	TasksOpen     int

	TopSkills []SkillCount

	Entities     int
	Relations    int
	Observations int
}

// Collect builds a summary from scanned records and an optional knowledge
// set. Records with unparseable filenames still count toward totals but not
// the date range.
func Collect(records []*logrec.Record, set *knowledge.Set) *Summary {
	s := &Summary{
		Complexity: make(map[string]int),
		Domains:    make(map[string]int),
	}

	skills := make(map[string]int)
	for _, rec := range records {
		s.Logs++

		if ts, _, err := logrec.ParseName(filepath.Base(rec.Path)); err == nil {
			if s.First.IsZero() || ts.Before(s.First) {
				s.First = ts
			}
			if ts.After(s.Last) {
				s.Last = ts
			}
		}

		m := &rec.Meta
		if m.Complexity != "" {
			s.Complexity[m.Complexity]++
		}
		if m.Domain != "" {
			s.Domains[m.Domain]++
		}
		s.GatesPassed += len(m.GatesPassed)
		s.GatesViolated += len(m.GatesViolated)
		s.FilesModified += len(m.FilesModified)
		for _, skill := range m.SkillsLoaded {
			skills[skill]++
		}

		tasks := logrec.CountTasks(rec.Body)
		s.TasksDone += tasks.Done
		s.TasksOpen += tasks.Open
	}

	for skill, count := range skills {
		s.TopSkills = append(s.TopSkills, SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(s.TopSkills, func(i, j int) bool {
		if s.TopSkills[i].Count != s.TopSkills[j].Count {
			return s.TopSkills[i].Count > s.TopSkills[j].Count
		}
		return s.TopSkills[i].Skill < s.TopSkills[j].Skill
	})

	if set != nil {
		s.Entities = len(set.Entities)
		s.Relations = len(set.Relations)
		for _, e := range set.Entities {
			s.Observations += len(e.Observations)
		}
	}

	return s
}
