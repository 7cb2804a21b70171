// Package store persists the project knowledge set as a JSONL file.
// Appends deduplicate on write so the file stays canonical; full rewrites
// are atomic.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jorge-barreto/akis/internal/knowledge"
)

// Store is a file-backed knowledge store. Safe for concurrent use within
// one process; no cross-process locking.
type Store struct {
	path string
	cap  int

	mu sync.Mutex
}

// Open returns a store for the given path. The file is created lazily on
// first write. observationCap bounds per-entity observations on merge.
func Open(path string, observationCap int) *Store {
	return &Store{path: path, cap: observationCap}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load parses the backing file. A missing file yields an empty set.
func (s *Store) Load() (*knowledge.ParseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return knowledge.NewParser().ParseFile(s.path)
}

// CompactStats reports the effect of a compaction pass.
type CompactStats struct {
	EntitiesBefore  int
	EntitiesAfter   int
	RelationsBefore int
	RelationsAfter  int
	MalformedLines  int
	Changed         bool
}

// Compact merges the store in place: entities deduplicated by name,
// relations by composite key, observations capped. Malformed lines are
// dropped. The rewrite only happens when the merge changed something.
func (s *Store) Compact() (*CompactStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := knowledge.NewParser().ParseFile(s.path)
	if err != nil {
		return nil, err
	}

	merged := knowledge.Merge(&result.Set, s.cap)
	stats := &CompactStats{
		EntitiesBefore:  len(result.Set.Entities),
		EntitiesAfter:   len(merged.Entities),
		RelationsBefore: len(result.Set.Relations),
		RelationsAfter:  len(merged.Relations),
		MalformedLines:  result.MalformedLines,
	}

	if knowledge.Equal(&result.Set, merged) && result.MalformedLines == 0 {
		return stats, nil
	}
	stats.Changed = true
	return stats, s.rewrite(merged)
}

// Preview returns compaction stats without touching the file.
func (s *Store) Preview() (*CompactStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := knowledge.NewParser().ParseFile(s.path)
	if err != nil {
		return nil, err
	}
	merged := knowledge.Merge(&result.Set, s.cap)
	return &CompactStats{
		EntitiesBefore:  len(result.Set.Entities),
		EntitiesAfter:   len(merged.Entities),
		RelationsBefore: len(result.Set.Relations),
		RelationsAfter:  len(merged.Relations),
		MalformedLines:  result.MalformedLines,
		Changed:         !knowledge.Equal(&result.Set, merged) || result.MalformedLines > 0,
	}, nil
}

// AddEntity merges an entity into the store. A brand-new name appends a
// single line; an existing name folds observations in and rewrites.
// Returns true if the store changed.
func (s *Store) AddEntity(e knowledge.Entity) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}
	e.Type = knowledge.TypeEntity

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := knowledge.NewParser().ParseFile(s.path)
	if err != nil {
		return false, err
	}

	for _, existing := range result.Set.Entities {
		if existing.Name == e.Name {
			before := knowledge.Merge(&result.Set, s.cap)
			result.Set.Entities = append(result.Set.Entities, e)
			after := knowledge.Merge(&result.Set, s.cap)
			if knowledge.Equal(before, after) {
				return false, nil
			}
			return true, s.rewrite(after)
		}
	}

	return true, s.appendLine(&e)
}

// AddRelation appends a relation unless its composite key already exists.
// Returns true if the store changed.
func (s *Store) AddRelation(r knowledge.Relation) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}
	r.Type = knowledge.TypeRelation

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := knowledge.NewParser().ParseFile(s.path)
	if err != nil {
		return false, err
	}
	for _, existing := range result.Set.Relations {
		if existing.Key() == r.Key() {
			return false, nil
		}
	}
	return true, s.appendLine(&r)
}

func (s *Store) rewrite(set *knowledge.Set) error {
	var buf bytes.Buffer
	if err := knowledge.Encode(&buf, set); err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := writeFileAtomic(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("rewriting store: %w", err)
	}
	return nil
}

func (s *Store) appendLine(v any) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating store dir: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("appending record: %w", err)
	}
	return f.Sync()
}
