// Package erd parses entity-relationship definitions into relation sets.
//
// The format declares entities as attribute blocks and relationships as
// standalone lines between them:
//
//	users [icon: users] {
//	    id string @pk
//	}
//
//	// chats belong to a workspace
//	chat.workspaceId > workspaces.id
//	users.id <> teams.id
//
// Relationship operators:
//   - ">"  directed: the left entity precedes the right one
//   - "<"  directed, reversed: the right entity precedes the left one
//   - "<>" many-to-many: connects entities without imposing an order
//
// Only directed relationships feed the layer classifier; many-to-many
// lines are kept so callers can tell connected entities from isolated
// ones. Field names in relationship endpoints ("chat.workspaceId") are
// dropped - layering operates on entities.
package erd

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mvidal/strata/pkg/layers"
)

// ErrMalformedRelationship is returned when a relationship line is missing
// an endpoint.
var ErrMalformedRelationship = errors.New("malformed relationship")

var entityPattern = regexp.MustCompile(`(?s)(\w+)\s*\[[^\]]*\]\s*\{[^}]*\}`)

// Document is a parsed ERD definition.
type Document struct {
	Entities   []string          // declared entities, in declaration order
	Relations  []layers.Relation // directed relationships
	Undirected []layers.Relation // many-to-many relationships
}

// RelationSet converts the document's directed relationships into the wire
// format consumed by the classifier, named after the given source.
func (d *Document) RelationSet(name string) layers.RelationSet {
	return layers.RelationSet{Name: name, Relations: d.Relations}
}

// Isolated returns declared entities that appear in no relationship line at
// all, in declaration order. Such entities never reach the classifier
// (its only ingestion point is a relation), so callers typically report
// them.
func (d *Document) Isolated() []string {
	connected := make(map[string]struct{})
	for _, r := range d.Relations {
		connected[r.Left] = struct{}{}
		connected[r.Right] = struct{}{}
	}
	for _, r := range d.Undirected {
		connected[r.Left] = struct{}{}
		connected[r.Right] = struct{}{}
	}

	var isolated []string
	for _, e := range d.Entities {
		if _, ok := connected[e]; !ok {
			isolated = append(isolated, e)
		}
	}
	return isolated
}

// ParseFile reads and parses an ERD definition file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses an ERD definition.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}

	for _, m := range entityPattern.FindAllStringSubmatch(string(data), -1) {
		doc.Entities = append(doc.Entities, m[1])
	}

	depth := 0
	for i, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		// Relationship lines only occur outside entity blocks; property
		// lines inside a block are skipped by tracking brace depth.
		inBlock := depth > 0
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if inBlock || strings.Contains(line, "{") {
			continue
		}

		if err := doc.parseRelationship(line, i+1); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func (d *Document) parseRelationship(line string, lineno int) error {
	// "<>" must be checked first; it contains both single operators.
	switch {
	case strings.Contains(line, "<>"):
		left, right, err := endpoints(line, "<>", lineno)
		if err != nil {
			return err
		}
		d.Undirected = append(d.Undirected, layers.Relation{Left: left, Right: right})
	case strings.Contains(line, ">"):
		left, right, err := endpoints(line, ">", lineno)
		if err != nil {
			return err
		}
		d.Relations = append(d.Relations, layers.Relation{Left: left, Right: right})
	case strings.Contains(line, "<"):
		left, right, err := endpoints(line, "<", lineno)
		if err != nil {
			return err
		}
		// "a < b" means b precedes a.
		d.Relations = append(d.Relations, layers.Relation{Left: right, Right: left})
	}
	return nil
}

// endpoints splits a relationship line on op and reduces each side to its
// entity name (the part before the first dot).
func endpoints(line, op string, lineno int) (string, string, error) {
	lhs, rhs, _ := strings.Cut(line, op)
	left := entityOf(lhs)
	right := entityOf(rhs)
	if left == "" || right == "" {
		return "", "", fmt.Errorf("line %d: %w: %q", lineno, ErrMalformedRelationship, line)
	}
	return left, right, nil
}

func entityOf(side string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(side), ".")
	return strings.TrimSpace(name)
}
