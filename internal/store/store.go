// Package store contains the persistence adapters for the travel planner.
// Every adapter stores the full place collection behind the same contract:
// one wholesale read at startup, one wholesale write after every mutation.
// No adapter is transactional; the in-memory collection held by the planner
// is the source of truth and the store is an eventually-consistent mirror.
package store

import (
	"context"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

// Store is the uniform persistence contract, regardless of backing store.
//
// Load is called once at startup. Callers must treat any error as "start
// from an empty collection"; a malformed or missing payload is never fatal.
//
// SaveAll overwrites the stored collection after every create/update/delete.
// It is best effort: callers log failures but never roll back in-memory
// state. When two writers race against the same store, the last full write
// wins; concurrent editors are a documented limitation, not a handled case.
type Store interface {
	Load(ctx context.Context) ([]domain.Place, error)
	SaveAll(ctx context.Context, places []domain.Place) error
}
