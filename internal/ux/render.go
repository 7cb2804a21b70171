package ux

import (
	"fmt"
	"sort"

	"github.com/jorge-barreto/akis/internal/index"
	"github.com/jorge-barreto/akis/internal/logrec"
	"github.com/jorge-barreto/akis/internal/retention"
	"github.com/jorge-barreto/akis/internal/stats"
	"github.com/jorge-barreto/akis/internal/store"
)

// RenderLint prints lint findings grouped by file, then a summary line.
func RenderLint(findings []logrec.Finding, scanned int) {
	if len(findings) == 0 {
		Success("%d logs checked, no findings", scanned)
		return
	}

	byPath := make(map[string][]logrec.Finding)
	var paths []string
	for _, f := range findings {
		if _, seen := byPath[f.Path]; !seen {
			paths = append(paths, f.Path)
		}
		byPath[f.Path] = append(byPath[f.Path], f)
	}
	sort.Strings(paths)

	for _, path := range paths {
		fmt.Printf("%s%s%s\n", Bold, path, Reset)
		for _, f := range byPath[path] {
			if f.Level == logrec.LevelError {
				fmt.Printf("  %serror%s %s\n", Red, Reset, f.Message)
			} else {
				fmt.Printf("  %swarn%s  %s\n", Yellow, Reset, f.Message)
			}
		}
	}

	errs := logrec.Errors(findings)
	fmt.Printf("\n%d logs checked: %s%d errors%s, %s%d warnings%s\n",
		scanned, Red, errs, Reset, Yellow, len(findings)-errs, Reset)
}

// RenderStatus prints the corpus summary for `akis status`.
func RenderStatus(name string, s *stats.Summary) {
	fmt.Printf("%sProject:%s %s\n", Bold, Reset, name)
	fmt.Printf("%sLogs:%s    %d", Bold, Reset, s.Logs)
	if !s.First.IsZero() {
		fmt.Printf("  %s(%s — %s)%s", Dim, s.First.Format("2006-01-02"), s.Last.Format("2006-01-02"), Reset)
	}
	fmt.Println()

	if len(s.Complexity) > 0 {
		Header("Complexity:")
		for _, c := range []string{"simple", "medium", "complex"} {
			if n := s.Complexity[c]; n > 0 {
				fmt.Printf("  %-8s %d\n", c, n)
			}
		}
	}

	if len(s.Domains) > 0 {
		Header("Domains:")
		var tags []string
		for tag := range s.Domains {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			fmt.Printf("  %-16s %d\n", tag, s.Domains[tag])
		}
	}

	Header("Gates:")
	fmt.Printf("  %spassed%s   %d\n", Green, Reset, s.GatesPassed)
	fmt.Printf("  %sviolated%s %d\n", Red, Reset, s.GatesViolated)

	if s.TasksDone+s.TasksOpen > 0 {
		Header("Tasks:")
		fmt.Printf("  %sdone%s %d  %sopen%s %d\n", Green, Reset, s.TasksDone, Yellow, Reset, s.TasksOpen)
	}

	if len(s.TopSkills) > 0 {
		Header("Most-loaded skills:")
		top := s.TopSkills
		if len(top) > 5 {
			top = top[:5]
		}
		for _, sc := range top {
			fmt.Printf("  %-24s %d\n", sc.Skill, sc.Count)
		}
	}

	Header("Knowledge store:")
	fmt.Printf("  entities     %d\n", s.Entities)
	fmt.Printf("  relations    %d\n", s.Relations)
	fmt.Printf("  observations %d\n", s.Observations)
}

// RenderMerge prints the outcome of a compaction pass.
func RenderMerge(st *store.CompactStats, dryRun bool) {
	verb := "merged"
	if dryRun {
		verb = "would merge"
	}
	fmt.Printf("entities:  %d → %d\n", st.EntitiesBefore, st.EntitiesAfter)
	fmt.Printf("relations: %d → %d\n", st.RelationsBefore, st.RelationsAfter)
	if st.MalformedLines > 0 {
		Warn("%d malformed lines dropped", st.MalformedLines)
	}
	if st.Changed {
		Success("store %s", verb)
	} else {
		fmt.Println("store already canonical")
	}
}

// RenderRetention prints the retention classification.
func RenderRetention(report *retention.Report) {
	Header("Local (excluded from version control):")
	if len(report.Local) == 0 {
		fmt.Printf("  %snone%s\n", Dim, Reset)
	}
	for _, p := range report.Local {
		fmt.Printf("  %s%s%s\n", Dim, p, Reset)
	}

	Header("Tracked:")
	if len(report.Tracked) == 0 {
		fmt.Printf("  %snone%s\n", Dim, Reset)
	}
	for _, p := range report.Tracked {
		fmt.Printf("  %s\n", p)
	}
	fmt.Printf("\n%d local, %d tracked\n", len(report.Local), len(report.Tracked))
}

// RenderSearch prints ranked search hits.
func RenderSearch(hits []index.Hit) {
	if len(hits) == 0 {
		fmt.Println("no matches")
		return
	}
	for _, h := range hits {
		fmt.Printf("%s%-6s%s %s%s%s\n", Cyan, h.Kind, Reset, Bold, h.Ref, Reset)
		if h.Snippet != "" {
			fmt.Printf("       %s\n", h.Snippet)
		}
	}
}
