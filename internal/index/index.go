// Package index maintains a SQLite full-text index over workflow logs and
// knowledge entities. The index is derived data: it is rebuilt from the
// corpus and never treated as a source of truth.
package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jorge-barreto/akis/internal/knowledge"
	"github.com/jorge-barreto/akis/internal/logrec"
)

type Index struct {
	db *sql.DB
}

// Open opens (creating if needed) the index database at path.
func Open(path string) (*Index, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("index: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("index: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("index: pragma %q: %w", p, err)
		}
	}

	ix := &Index{db: db}
	if err := ix.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("index: migration: %w", err)
	}
	return ix, nil
}

func (ix *Index) Close() error {
	return ix.db.Close()
}

func (ix *Index) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS logs (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			path    TEXT NOT NULL,
			session TEXT,
			date    TEXT,
			domain  TEXT,
			body    TEXT NOT NULL
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS logs_fts USING fts5(
			path,
			domain,
			body,
			content='logs',
			content_rowid='id'
		);

		CREATE TABLE IF NOT EXISTS entities (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			name         TEXT NOT NULL,
			entity_type  TEXT,
			observations TEXT
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS entities_fts USING fts5(
			name,
			entity_type,
			observations,
			content='entities',
			content_rowid='id'
		);
	`
	if _, err := ix.db.Exec(schema); err != nil {
		return err
	}

	var name string
	err := ix.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='logs_fts_insert'",
	).Scan(&name)
	if err == sql.ErrNoRows {
		triggers := `
			CREATE TRIGGER logs_fts_insert AFTER INSERT ON logs BEGIN
				INSERT INTO logs_fts(rowid, path, domain, body)
				VALUES (new.id, new.path, new.domain, new.body);
			END;

			CREATE TRIGGER logs_fts_delete AFTER DELETE ON logs BEGIN
				INSERT INTO logs_fts(logs_fts, rowid, path, domain, body)
				VALUES ('delete', old.id, old.path, old.domain, old.body);
			END;

			CREATE TRIGGER entities_fts_insert AFTER INSERT ON entities BEGIN
				INSERT INTO entities_fts(rowid, name, entity_type, observations)
				VALUES (new.id, new.name, new.entity_type, new.observations);
			END;

			CREATE TRIGGER entities_fts_delete AFTER DELETE ON entities BEGIN
				INSERT INTO entities_fts(entities_fts, rowid, name, entity_type, observations)
				VALUES ('delete', old.id, old.name, old.entity_type, old.observations);
			END;
		`
		if _, err := ix.db.Exec(triggers); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return nil
}

// Rebuild replaces the indexed corpus with the given records and knowledge
// set, in one transaction.
func (ix *Index) Rebuild(records []*logrec.Record, set *knowledge.Set) (err error) {
	tx, err := ix.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM logs"); err != nil {
		return err
	}
	if _, err = tx.Exec("DELETE FROM entities"); err != nil {
		return err
	}

	for _, rec := range records {
		_, err = tx.Exec(
			`INSERT INTO logs (path, session, date, domain, body) VALUES (?, ?, ?, ?, ?)`,
			rec.Path, rec.Meta.Session, rec.Meta.Date, rec.Meta.Domain, rec.Body,
		)
		if err != nil {
			return fmt.Errorf("indexing %s: %w", rec.Path, err)
		}
	}

	if set != nil {
		for _, e := range set.Entities {
			_, err = tx.Exec(
				`INSERT INTO entities (name, entity_type, observations) VALUES (?, ?, ?)`,
				e.Name, e.EntityType, strings.Join(e.Observations, "\n"),
			)
			if err != nil {
				return fmt.Errorf("indexing entity %s: %w", e.Name, err)
			}
		}
	}

	return tx.Commit()
}

// Hit is one search result.
type Hit struct {
	Kind    string // "log" or "entity"
	Ref     string // log path or entity name
	Snippet string
	Rank    float64
}

// Search runs a ranked full-text query across logs and entities.
func (ix *Index) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 20
	}
	q := sanitize(query)
	if q == "" {
		return nil, fmt.Errorf("index: empty query")
	}

	var hits []Hit

	rows, err := ix.db.Query(
		`SELECT path, snippet(logs_fts, 2, '', '', '…', 12), rank
		 FROM logs_fts WHERE logs_fts MATCH ? ORDER BY rank LIMIT ?`, q, limit)
	if err != nil {
		return nil, fmt.Errorf("index: log search: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var h Hit
		h.Kind = "log"
		if err := rows.Scan(&h.Ref, &h.Snippet, &h.Rank); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	erows, err := ix.db.Query(
		`SELECT name, snippet(entities_fts, 2, '', '', '…', 12), rank
		 FROM entities_fts WHERE entities_fts MATCH ? ORDER BY rank LIMIT ?`, q, limit)
	if err != nil {
		return nil, fmt.Errorf("index: entity search: %w", err)
	}
	defer erows.Close()
	for erows.Next() {
		var h Hit
		h.Kind = "entity"
		if err := erows.Scan(&h.Ref, &h.Snippet, &h.Rank); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	if err := erows.Err(); err != nil {
		return nil, err
	}

	// bm25 rank: lower is better
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].Rank < hits[j-1].Rank; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Counts returns the number of indexed logs and entities.
func (ix *Index) Counts() (logs, entities int, err error) {
	if err = ix.db.QueryRow("SELECT COUNT(*) FROM logs").Scan(&logs); err != nil {
		return 0, 0, err
	}
	if err = ix.db.QueryRow("SELECT COUNT(*) FROM entities").Scan(&entities); err != nil {
		return 0, 0, err
	}
	return logs, entities, nil
}

// sanitize quotes each term so user input cannot break FTS query syntax.
func sanitize(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ReplaceAll(t, `"`, "")
		if t == "" {
			continue
		}
		quoted = append(quoted, `"`+t+`"`)
	}
	return strings.Join(quoted, " ")
}
