package erd

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mvidal/strata/pkg/layers"
)

const workspaceDSL = `
// Workspace Collaboration System

users [icon: users] {
    id string @pk
    displayName string
}

teams [icon: users, color: #3b82f6] {
    id string @pk
    name string
}

workspaces [icon: home] {
    id string @pk
    teamId string @fk
}

audit [icon: file] {
    id string @pk
}

// Relationships
users.id <> teams.id
chat.workspaceId > workspaces.id
workspaces.teamId > teams.id
invite.inviterId < users.id
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(workspaceDSL))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	wantEntities := []string{"users", "teams", "workspaces", "audit"}
	if !reflect.DeepEqual(doc.Entities, wantEntities) {
		t.Errorf("Entities = %v, want %v", doc.Entities, wantEntities)
	}

	wantRelations := []layers.Relation{
		{Left: "chat", Right: "workspaces"},
		{Left: "workspaces", Right: "teams"},
		// "invite < users" is reversed: users precedes invite.
		{Left: "users", Right: "invite"},
	}
	if !reflect.DeepEqual(doc.Relations, wantRelations) {
		t.Errorf("Relations = %v, want %v", doc.Relations, wantRelations)
	}

	wantUndirected := []layers.Relation{{Left: "users", Right: "teams"}}
	if !reflect.DeepEqual(doc.Undirected, wantUndirected) {
		t.Errorf("Undirected = %v, want %v", doc.Undirected, wantUndirected)
	}
}

func TestIsolated(t *testing.T) {
	doc, err := Parse([]byte(workspaceDSL))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// audit is declared but touched by no relationship line.
	want := []string{"audit"}
	if got := doc.Isolated(); !reflect.DeepEqual(got, want) {
		t.Errorf("Isolated = %v, want %v", got, want)
	}
}

func TestRelationSet(t *testing.T) {
	doc, err := Parse([]byte("a.x > b.y\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	set := doc.RelationSet("demo")
	if set.Name != "demo" {
		t.Errorf("Name = %q, want demo", set.Name)
	}
	if len(set.Relations) != 1 || set.Relations[0] != (layers.Relation{Left: "a", Right: "b"}) {
		t.Errorf("Relations = %v, want [{a b}]", set.Relations)
	}
}

func TestParsePropertyLinesIgnored(t *testing.T) {
	// Property lines inside blocks must never be read as relationships,
	// even if an attribute value were to contain an operator character.
	input := `
x [note: a>b] {
    threshold string
}
x.id > y.id
`
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []layers.Relation{{Left: "x", Right: "y"}}
	if !reflect.DeepEqual(doc.Relations, want) {
		t.Errorf("Relations = %v, want %v", doc.Relations, want)
	}
}

func TestParseMalformedRelationship(t *testing.T) {
	_, err := Parse([]byte("users.id >\n"))
	if !errors.Is(err, ErrMalformedRelationship) {
		t.Errorf("err = %v, want ErrMalformedRelationship", err)
	}
}
