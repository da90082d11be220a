// Package store persists named classification results.
//
// A classification document pairs the input relation set with the layering
// it produced, under a generated ID. Backends:
//   - [MemoryStore]: in-process map for development and tests
//   - [MongoStore]: MongoDB for server deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mvidal/strata/pkg/layers"
)

// ErrNotFound is returned when a classification does not exist.
var ErrNotFound = errors.New("classification not found")

// Classification is a persisted classification result.
type Classification struct {
	ID        string            `json:"id" bson:"_id"`
	Name      string            `json:"name,omitempty" bson:"name,omitempty"`
	Relations []layers.Relation `json:"relations" bson:"relations"`
	Layers    [][]string        `json:"layers" bson:"layers"`
	Stats     layers.Stats      `json:"stats" bson:"stats"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
}

// New builds a classification document with a fresh ID and timestamp.
func New(set layers.RelationSet, result layers.Layering) *Classification {
	return &Classification{
		ID:        uuid.NewString(),
		Name:      set.Name,
		Relations: set.Relations,
		Layers:    result.Layers,
		Stats:     result.Stats,
		CreatedAt: time.Now().UTC(),
	}
}

// Store persists classification documents.
type Store interface {
	// Save inserts or replaces a classification by ID.
	Save(ctx context.Context, c *Classification) error

	// Get returns the classification with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Classification, error)

	// List returns all classifications, newest first.
	List(ctx context.Context) ([]*Classification, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
