package layers

import (
	"errors"
	"fmt"

	"github.com/mvidal/strata/pkg/classifier"
)

// ErrEmptyEndpoint is returned when a relation is missing one of its sides.
// The engine itself accepts any identifier, but a blank endpoint in a wire
// document is always an authoring mistake.
var ErrEmptyEndpoint = errors.New("relation endpoint must not be empty")

// Relation is the wire form of a directed precedence fact.
type Relation struct {
	Left  string `json:"left" bson:"left"`
	Right string `json:"right" bson:"right"`
}

// RelationSet is a named collection of relations, the input document for
// classification.
type RelationSet struct {
	Name      string     `json:"name,omitempty" bson:"name,omitempty"`
	Relations []Relation `json:"relations" bson:"relations"`
}

// Validate checks that every relation has both endpoints.
func (s RelationSet) Validate() error {
	for i, r := range s.Relations {
		if r.Left == "" || r.Right == "" {
			return fmt.Errorf("relation %d: %w", i, ErrEmptyEndpoint)
		}
	}
	return nil
}

// Stats mirrors classifier.Stats with serialization tags.
type Stats struct {
	Entities  int `json:"entities" bson:"entities"`
	Relations int `json:"relations" bson:"relations"`
	Distances int `json:"distances" bson:"distances"`
}

// Layering is the wire form of a classification result: ordered layer
// buckets and the engine statistics that produced them.
type Layering struct {
	Layers [][]string `json:"layers" bson:"layers"`
	Stats  Stats      `json:"stats" bson:"stats"`
}

// Classify runs the full engine over a relation set and returns the wire
// result. Options are forwarded to the classifier (e.g. an observer).
func Classify(set RelationSet, opts ...classifier.Option) Layering {
	c := classifier.New(opts...)
	rels := make([]classifier.Relation, len(set.Relations))
	for i, r := range set.Relations {
		rels[i] = classifier.Relation{Left: r.Left, Right: r.Right}
	}
	c.AddRelations(rels...)

	stats := c.Stats()
	return Layering{
		Layers: c.ComputeLayers(),
		Stats: Stats{
			Entities:  stats.Entities,
			Relations: stats.Relations,
			Distances: stats.Distances,
		},
	}
}
