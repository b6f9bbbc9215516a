// Package memory provides an in-memory ResultStore, used by the CLI and in
// tests where no external store is configured.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/mendelian/mendel/pkg/ports"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*ports.RunResult
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]*ports.RunResult)}
}

// Save persists the result in memory.
func (s *Store) Save(ctx context.Context, result *ports.RunResult) error {
	copied := *result
	copied.Labels = slices.Clone(result.Labels)
	copied.Counts = maps.Clone(result.Counts)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[result.ID] = &copied
	return nil
}

// Load retrieves a result by run ID.
func (s *Store) Load(ctx context.Context, id string) (*ports.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.data[id]
	if !ok {
		return nil, ports.ErrRunNotFound
	}

	// Copy on read so callers can't mutate stored results by pointer.
	ret := *result
	ret.Labels = slices.Clone(result.Labels)
	ret.Counts = maps.Clone(result.Counts)
	return &ret, nil
}

// Delete removes a result.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the IDs of all stored runs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
