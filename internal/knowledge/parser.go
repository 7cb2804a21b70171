package knowledge

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Parser handles streaming JSONL parsing of a knowledge store.
type Parser struct {
	// SkipMalformed records malformed lines as errors instead of failing.
	SkipMalformed bool
}

// NewParser creates a parser with default settings.
func NewParser() *Parser {
	return &Parser{SkipMalformed: true}
}

// ParseError is a structured per-line parse failure.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ParseResult contains the decoded set plus parse diagnostics.
type ParseResult struct {
	Set            Set
	TotalLines     int
	MalformedLines int
	Errors         []error

	// Checksum is the first 16 hex chars of the SHA-256 of all
	// non-empty lines, for change detection.
	Checksum string
}

// typed peeks at the discriminator before full decoding.
type typed struct {
	Type string `json:"type"`
}

// Parse reads JSONL from r. Blank lines are skipped. Malformed lines are
// counted and collected; they are fatal only when SkipMalformed is false.
func (p *Parser) Parse(r io.Reader) (*ParseResult, error) {
	result := &ParseResult{}

	hasher := sha256.New()
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		result.TotalLines = lineNum

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		_, _ = hasher.Write(line)
		_, _ = hasher.Write([]byte("\n"))

		if err := p.parseLine(line, &result.Set); err != nil {
			result.MalformedLines++
			perr := &ParseError{Line: lineNum, Message: err.Error()}
			result.Errors = append(result.Errors, perr)
			if !p.SkipMalformed {
				return result, perr
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanner error: %w", err)
	}

	sum := hasher.Sum(nil)
	result.Checksum = hex.EncodeToString(sum[:8])
	return result, nil
}

func (p *Parser) parseLine(line []byte, set *Set) error {
	var head typed
	if err := json.Unmarshal(line, &head); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	switch head.Type {
	case TypeEntity:
		var e Entity
		if err := json.Unmarshal(line, &e); err != nil {
			return fmt.Errorf("entity: %w", err)
		}
		if err := e.Validate(); err != nil {
			return err
		}
		set.Entities = append(set.Entities, e)
	case TypeRelation:
		var rel Relation
		if err := json.Unmarshal(line, &rel); err != nil {
			return fmt.Errorf("relation: %w", err)
		}
		if err := rel.Validate(); err != nil {
			return err
		}
		set.Relations = append(set.Relations, rel)
	default:
		return fmt.Errorf("unknown record type %q", head.Type)
	}
	return nil
}

// ParseFile parses a JSONL store by path. A missing file yields an empty
// result, matching the store's lazy-creation lifecycle.
func (p *Parser) ParseFile(path string) (result *ParseResult, err error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &ParseResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return p.Parse(f)
}

// Encode writes the set back out as JSONL, entities first, in order.
func Encode(w io.Writer, set *Set) error {
	enc := json.NewEncoder(w)
	for i := range set.Entities {
		set.Entities[i].Type = TypeEntity
		if err := enc.Encode(&set.Entities[i]); err != nil {
			return err
		}
	}
	for i := range set.Relations {
		set.Relations[i].Type = TypeRelation
		if err := enc.Encode(&set.Relations[i]); err != nil {
			return err
		}
	}
	return nil
}
