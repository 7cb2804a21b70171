package logrec

import (
	"regexp"
	"strings"
)

// Tasks tallies markdown checklist items in a log body.
type Tasks struct {
	Done int
	Open int
}

var taskRe = regexp.MustCompile(`^[-*] \[([ xX])\] `)

// CountTasks scans a markdown body for checklist items ("- [ ]", "- [x]").
// Items inside fenced code blocks are ignored.
func CountTasks(body string) Tasks {
	var t Tasks
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		m := taskRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		if m[1] == " " {
			t.Open++
		} else {
			t.Done++
		}
	}
	return t
}
