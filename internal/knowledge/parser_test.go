package knowledge

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleStore = `{"type":"entity","name":"nop.backend.session-tracker","entityType":"component","observations":["tracks session state","written at session end"]}
{"type":"entity","name":"nop.frontend.dashboard","entityType":"component"}
{"type":"relation","from":"nop.frontend.dashboard","to":"nop.backend.session-tracker","relationType":"USES"}
`

func TestParse_Store(t *testing.T) {
	result, err := NewParser().Parse(strings.NewReader(sampleStore))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Set.Entities) != 2 {
		t.Fatalf("entities = %d, want 2", len(result.Set.Entities))
	}
	if len(result.Set.Relations) != 1 {
		t.Fatalf("relations = %d, want 1", len(result.Set.Relations))
	}
	e := result.Set.Entities[0]
	if e.Name != "nop.backend.session-tracker" || len(e.Observations) != 2 {
		t.Fatalf("entity = %+v", e)
	}
	r := result.Set.Relations[0]
	if r.RelationType != "USES" {
		t.Fatalf("relation = %+v", r)
	}
	if result.Checksum == "" {
		t.Fatal("expected a checksum")
	}
}

func TestParse_SkipsBlankAndMalformed(t *testing.T) {
	input := sampleStore + "\nnot json\n{\"type\":\"widget\"}\n{\"type\":\"entity\"}\n"
	result, err := NewParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if result.MalformedLines != 3 {
		t.Fatalf("malformed = %d, want 3", result.MalformedLines)
	}
	if len(result.Set.Entities) != 2 {
		t.Fatalf("entities = %d, want 2", len(result.Set.Entities))
	}
	if len(result.Errors) != 3 {
		t.Fatalf("errors = %d, want 3", len(result.Errors))
	}
}

func TestParse_StrictFailsFast(t *testing.T) {
	p := &Parser{SkipMalformed: false}
	_, err := p.Parse(strings.NewReader("garbage\n"))
	if err == nil {
		t.Fatal("expected error in strict mode")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("err = %T, want *ParseError", err)
	}
	if perr.Line != 1 {
		t.Fatalf("line = %d, want 1", perr.Line)
	}
}

func TestParseFile_MissingIsEmpty(t *testing.T) {
	result, err := NewParser().ParseFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Set.Entities) != 0 || len(result.Set.Relations) != 0 {
		t.Fatal("missing file should parse empty")
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	result, err := NewParser().Parse(strings.NewReader(sampleStore))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, &result.Set); err != nil {
		t.Fatal(err)
	}
	again, err := NewParser().Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(&result.Set, &again.Set) {
		t.Fatalf("round-trip changed the set:\n%+v\n%+v", result.Set, again.Set)
	}
}

func TestParseFile_ReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project_knowledge.json")
	if err := os.WriteFile(path, []byte(sampleStore), 0644); err != nil {
		t.Fatal(err)
	}
	result, err := NewParser().ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Set.Entities) != 2 {
		t.Fatalf("entities = %d, want 2", len(result.Set.Entities))
	}
}
