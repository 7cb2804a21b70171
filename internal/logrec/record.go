package logrec

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrUnterminatedFrontmatter marks a file that opens a frontmatter fence
// and never closes it. Scanning tolerates this (the whole file becomes the
// body); lint reports it.
var ErrUnterminatedFrontmatter = errors.New("unterminated frontmatter")

const delimiter = "---"

// FileMod is one entry of the files_modified frontmatter list.
type FileMod struct {
	Path   string `yaml:"path"`
	Type   string `yaml:"type"`
	Domain string `yaml:"domain"`
}

// RootCause is one entry of the root_causes frontmatter list.
type RootCause struct {
	Problem  string `yaml:"problem"`
	Solution string `yaml:"solution"`
	Skill    string `yaml:"skill"`
}

// Gotcha is one entry of the gotchas frontmatter list.
type Gotcha struct {
	Pattern   string `yaml:"pattern"`
	Warning   string `yaml:"warning"`
	Solution  string `yaml:"solution"`
	AppliesTo string `yaml:"applies_to"`
}

// Meta is the typed view of a workflow log's frontmatter. Every field is
// optional; unknown keys survive in Record.Fields.
type Meta struct {
	ID              string      `yaml:"id"`
	Session         string      `yaml:"session"`
	Date            string      `yaml:"date"`
	Complexity      string      `yaml:"complexity"`
	Domain          string      `yaml:"domain"`
	SkillsLoaded    []string    `yaml:"skills_loaded"`
	FilesModified   []FileMod   `yaml:"files_modified"`
	AgentsDelegated []string    `yaml:"agents_delegated"`
	GatesPassed     []string    `yaml:"gates_passed"`
	GatesViolated   []string    `yaml:"gates_violated"`
	RootCauses      []RootCause `yaml:"root_causes"`
	Gotchas         []Gotcha    `yaml:"gotchas"`
}

// DateValue parses the date field as a calendar date.
func (m *Meta) DateValue() (time.Time, error) {
	return time.Parse("2006-01-02", m.Date)
}

// IDDate returns the date prefix of the session id (everything before the
// first underscore), or "" if the id has no underscore.
func (m *Meta) IDDate() string {
	if i := strings.Index(m.ID, "_"); i > 0 {
		return m.ID[:i]
	}
	return ""
}

// Record is one parsed workflow log file.
type Record struct {
	Path string // as given to Parse/Scan, may be relative

	Meta   Meta
	Fields map[string]any // full frontmatter mapping, preserved for round-trip
	Body   string

	// Checksum is the first 16 hex chars of the body's SHA-256,
	// used for near-duplicate detection.
	Checksum string
}

// HasFrontmatter reports whether the file carried a frontmatter block.
func (r *Record) HasFrontmatter() bool {
	return len(r.Fields) > 0
}

// split separates an optional frontmatter block from the markdown body.
// found is false when the content does not open with a fence.
func split(content string) (front, body string, found bool, err error) {
	if content != delimiter && !strings.HasPrefix(content, delimiter+"\n") && !strings.HasPrefix(content, delimiter+"\r\n") {
		return "", content, false, nil
	}

	lines := strings.SplitAfter(content, "\n")
	var buf strings.Builder
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == delimiter {
			return buf.String(), strings.Join(lines[i+1:], ""), true, nil
		}
		buf.WriteString(lines[i])
	}
	return "", content, false, ErrUnterminatedFrontmatter
}

// Parse parses a workflow log file's content. A file with no frontmatter is
// a valid record with empty metadata and the full content as body. An
// unterminated fence returns the whole file as body alongside
// ErrUnterminatedFrontmatter.
func Parse(path, content string) (*Record, error) {
	r := &Record{Path: path}

	front, body, found, err := split(content)
	r.Body = body
	r.Checksum = checksum(body)
	if err != nil {
		return r, fmt.Errorf("%s: %w", path, err)
	}
	if !found {
		return r, nil
	}

	if err := yaml.Unmarshal([]byte(front), &r.Meta); err != nil {
		return nil, fmt.Errorf("%s: frontmatter: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(front), &r.Fields); err != nil {
		return nil, fmt.Errorf("%s: frontmatter: %w", path, err)
	}
	return r, nil
}

// Serialize renders the record back to file content. Records without
// frontmatter round-trip to their body unchanged. Key order of the
// frontmatter mapping is not preserved; values are.
func Serialize(r *Record) (string, error) {
	if !r.HasFrontmatter() {
		return r.Body, nil
	}
	data, err := yaml.Marshal(r.Fields)
	if err != nil {
		return "", fmt.Errorf("%s: serializing frontmatter: %w", r.Path, err)
	}
	return delimiter + "\n" + string(data) + delimiter + "\n" + r.Body, nil
}

func checksum(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:8])
}
