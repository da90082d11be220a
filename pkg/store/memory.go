package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory store for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Classification
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Classification)}
}

// Save inserts or replaces a classification by ID.
func (s *MemoryStore) Save(ctx context.Context, c *Classification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *c
	s.docs[c.ID] = &copied
	return nil
}

// Get returns the classification with the given ID, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Classification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

// List returns all classifications, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]*Classification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Classification, 0, len(s.docs))
	for _, doc := range s.docs {
		copied := *doc
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
