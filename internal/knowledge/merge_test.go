package knowledge

import (
	"reflect"
	"testing"
)

func TestMerge_ObservationUnion(t *testing.T) {
	set := &Set{Entities: []Entity{
		{Type: TypeEntity, Name: "X", Observations: []string{"a", "b"}},
		{Type: TypeEntity, Name: "X", Observations: []string{"b", "c"}},
	}}
	merged := Merge(set, 10)
	if len(merged.Entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(merged.Entities))
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(merged.Entities[0].Observations, want) {
		t.Fatalf("observations = %v, want %v", merged.Entities[0].Observations, want)
	}
}

func TestMerge_CapKeepsMostRecent(t *testing.T) {
	set := &Set{Entities: []Entity{
		{Type: TypeEntity, Name: "X", Observations: []string{"a", "b", "c"}},
		{Type: TypeEntity, Name: "X", Observations: []string{"d", "e"}},
	}}
	merged := Merge(set, 3)
	want := []string{"c", "d", "e"}
	if !reflect.DeepEqual(merged.Entities[0].Observations, want) {
		t.Fatalf("observations = %v, want %v", merged.Entities[0].Observations, want)
	}
}

func TestMerge_PreservesFirstSeenEntityOrder(t *testing.T) {
	set := &Set{Entities: []Entity{
		{Type: TypeEntity, Name: "B"},
		{Type: TypeEntity, Name: "A"},
		{Type: TypeEntity, Name: "B"},
	}}
	merged := Merge(set, 10)
	if len(merged.Entities) != 2 || merged.Entities[0].Name != "B" || merged.Entities[1].Name != "A" {
		t.Fatalf("entity order = %v", merged.Entities)
	}
}

func TestMerge_FillsMissingEntityType(t *testing.T) {
	set := &Set{Entities: []Entity{
		{Type: TypeEntity, Name: "X"},
		{Type: TypeEntity, Name: "X", EntityType: "component"},
	}}
	merged := Merge(set, 10)
	if merged.Entities[0].EntityType != "component" {
		t.Fatalf("entityType = %q, want component", merged.Entities[0].EntityType)
	}
}

func TestMerge_RelationDedup(t *testing.T) {
	set := &Set{Relations: []Relation{
		{Type: TypeRelation, From: "X", To: "Y", RelationType: "USES"},
		{Type: TypeRelation, From: "X", To: "Y", RelationType: "USES"},
		{Type: TypeRelation, From: "X", To: "Y", RelationType: "PROPOSES"},
		{Type: TypeRelation, From: "Y", To: "X", RelationType: "USES"},
	}}
	merged := Merge(set, 10)
	if len(merged.Relations) != 3 {
		t.Fatalf("relations = %d, want 3", len(merged.Relations))
	}
}

func TestMerge_Idempotent(t *testing.T) {
	set := &Set{
		Entities: []Entity{
			{Type: TypeEntity, Name: "X", Observations: []string{"a", "b"}},
			{Type: TypeEntity, Name: "Y", Observations: []string{"c"}},
			{Type: TypeEntity, Name: "X", Observations: []string{"b", "c", "d"}},
		},
		Relations: []Relation{
			{Type: TypeRelation, From: "X", To: "Y", RelationType: "USES"},
			{Type: TypeRelation, From: "X", To: "Y", RelationType: "USES"},
		},
	}
	once := Merge(set, 3)
	twice := Merge(once, 3)
	if !Equal(once, twice) {
		t.Fatalf("merge not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMerge_ZeroCapDisablesTruncation(t *testing.T) {
	set := &Set{Entities: []Entity{
		{Type: TypeEntity, Name: "X", Observations: []string{"a", "b", "c", "d"}},
	}}
	merged := Merge(set, 0)
	if len(merged.Entities[0].Observations) != 4 {
		t.Fatalf("observations = %v", merged.Entities[0].Observations)
	}
}

func TestMerge_DedupsWithinSingleEntity(t *testing.T) {
	set := &Set{Entities: []Entity{
		{Type: TypeEntity, Name: "X", Observations: []string{"a", "a", "b"}},
	}}
	merged := Merge(set, 10)
	want := []string{"a", "b"}
	if !reflect.DeepEqual(merged.Entities[0].Observations, want) {
		t.Fatalf("observations = %v, want %v", merged.Entities[0].Observations, want)
	}
}
