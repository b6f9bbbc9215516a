// Package ports defines the interfaces between the simulation core and its
// host collaborators: result persistence and rendering stay outside the
// core, behind these contracts.
package ports

import (
	"context"
	"errors"
	"time"
)

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// RunResult is the persistable snapshot of a finished simulation run.
// Labels preserves first-occurrence order; Counts maps label to occurrences.
type RunResult struct {
	ID        string            `json:"id"`
	Name      string            `json:"name,omitempty"`
	Trials    uint64            `json:"trials"`
	Seed      *uint64           `json:"seed,omitempty"`
	Labels    []string          `json:"labels"`
	Counts    map[string]uint64 `json:"counts"`
	CreatedAt time.Time         `json:"created_at"`
}

// ResultStore persists finished run results so reporting layers can fetch
// them later. Persistence is a host concern; the simulation core never
// touches a store.
type ResultStore interface {
	// Save persists the result under its ID.
	Save(ctx context.Context, result *RunResult) error

	// Load retrieves a result by run ID.
	// Returns ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, id string) (*RunResult, error)

	// Delete removes a result by run ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored runs.
	List(ctx context.Context) ([]string, error)
}
