// Package knowledge implements the append-only entity/relation store format:
// one JSON object per line, deduplicated by entity name and by relation
// composite key.
package knowledge

import "fmt"

// Record type discriminators.
const (
	TypeEntity   = "entity"
	TypeRelation = "relation"
)

// Entity is a named knowledge node with accumulated observations.
// Names are dotted hierarchical strings (e.g. "nop.backend.session-tracker").
type Entity struct {
	Type         string   `json:"type"`
	Name         string   `json:"name"`
	EntityType   string   `json:"entityType,omitempty"`
	Observations []string `json:"observations,omitempty"`
}

// Relation is a directed, typed edge between two entity names.
type Relation struct {
	Type         string `json:"type"`
	From         string `json:"from"`
	To           string `json:"to"`
	RelationType string `json:"relationType"`
}

// Key is the composite identity of a relation.
func (r Relation) Key() string {
	return r.From + "\x00" + r.To + "\x00" + r.RelationType
}

// Set holds the decoded contents of a knowledge store, in first-seen order.
type Set struct {
	Entities  []Entity
	Relations []Relation
}

// Validate checks required fields on an entity line.
func (e *Entity) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("entity: 'name' is required")
	}
	return nil
}

// Validate checks required fields on a relation line.
func (r *Relation) Validate() error {
	if r.From == "" || r.To == "" {
		return fmt.Errorf("relation: 'from' and 'to' are required")
	}
	if r.RelationType == "" {
		return fmt.Errorf("relation: 'relationType' is required")
	}
	return nil
}
