// Package planner holds the authoritative in-memory place collection and the
// view state derived from it. All mutation goes through a small set of named
// operations so the persistence side effect stays co-located with the state
// change and the whole thing is testable without any rendering layer.
//
// The collection is loaded wholesale at startup and written wholesale after
// every mutation. Writes are best effort: a failed save is logged and
// reported, but in-memory state never rolls back: memory is the source of
// truth and the store an eventually-consistent mirror.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nrazizahmr/planner/backend/internal/domain"
	"github.com/nrazizahmr/planner/backend/internal/store"
)

// Planner owns the place collection and its view state. Methods are safe for
// concurrent use; a single mutex serializes mutations within this process.
// Concurrent writers against the same backing store from other processes
// remain uncoordinated.
type Planner struct {
	mu    sync.Mutex
	store store.Store
	log   *slog.Logger

	now   func() time.Time
	newID func() uuid.UUID

	places []domain.Place
	view   domain.ViewState
}

// New constructs a Planner persisting through st. The collection starts
// empty; call Load to pull the stored copy.
func New(st store.Store, log *slog.Logger) *Planner {
	return &Planner{
		store: st,
		log:   log,
		now:   time.Now,
		newID: uuid.New,
		view:  domain.ViewState{Mode: domain.ViewModeGrid},
	}
}

// Load replaces the collection with whatever the store holds. A failed or
// malformed read is never fatal: it is logged and the planner starts from an
// empty collection. Categories are normalized on the way in so the closed-set
// invariant holds even for payloads written by older iterations.
func (p *Planner) Load(ctx context.Context) {
	places, err := p.store.Load(ctx)
	if err != nil {
		p.log.Warn("could not load saved places, starting empty", "error", err)
		places = nil
	}
	for i := range places {
		places[i].Category = domain.NormalizeCategory(places[i].Category)
	}

	p.mu.Lock()
	p.places = places
	p.mu.Unlock()

	p.log.Info("places loaded", "count", len(places))
}

// Places returns a snapshot of the full collection in display order
// (newest first, as maintained by Create prepending).
func (p *Planner) Places() []domain.Place {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Place, len(p.places))
	copy(out, p.places)
	return out
}

// Get returns the place with the given id, or domain.ErrNotFound.
func (p *Planner) Get(id uuid.UUID) (domain.Place, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pl := range p.places {
		if pl.ID == id {
			return pl, nil
		}
	}
	return domain.Place{}, domain.ErrNotFound
}

// Create assigns a fresh id and the current timestamp to the draft, prepends
// the new place to the collection, and persists. The returned bool reports
// whether the save reached the store; the place is part of the in-memory
// collection either way.
func (p *Planner) Create(ctx context.Context, draft domain.PlaceDraft) (domain.Place, bool, error) {
	if draft.Name == "" {
		return domain.Place{}, false, validationErr("name is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	place := domain.Place{
		ID:        p.newID(),
		CreatedAt: p.now(),
	}
	draft.Apply(&place)

	p.places = append([]domain.Place{place}, p.places...)
	return place, p.persist(ctx), nil
}

// Update replaces the mutable fields of an existing place with the draft,
// preserving id and createdAt, then persists.
func (p *Planner) Update(ctx context.Context, id uuid.UUID, draft domain.PlaceDraft) (domain.Place, bool, error) {
	if draft.Name == "" {
		return domain.Place{}, false, validationErr("name is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.places {
		if p.places[i].ID != id {
			continue
		}
		draft.Apply(&p.places[i])
		return p.places[i], p.persist(ctx), nil
	}
	return domain.Place{}, false, domain.ErrNotFound
}

// Delete removes the place with the given id and persists. If the deleted
// place was open in detail view, the detail view is closed as a side effect.
func (p *Planner) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.places {
		if p.places[i].ID != id {
			continue
		}
		p.places = append(p.places[:i], p.places[i+1:]...)
		if p.view.Detail != nil && *p.view.Detail == id {
			p.view.Detail = nil
		}
		return p.persist(ctx), nil
	}
	return false, domain.ErrNotFound
}

// View returns the current view state.
func (p *Planner) View() domain.ViewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// SetQuery sets the free-text search query.
func (p *Planner) SetQuery(q string) {
	p.mu.Lock()
	p.view.Query = q
	p.mu.Unlock()
}

// SetFilter sets the category filter. The zero value selects all categories;
// anything else must be one of the closed-set values.
func (p *Planner) SetFilter(c domain.Category) error {
	if c != "" && !c.Valid() {
		return validationErr("unknown category")
	}
	p.mu.Lock()
	p.view.Category = c
	p.mu.Unlock()
	return nil
}

// SetViewMode switches between grid and table rendering.
func (p *Planner) SetViewMode(m domain.ViewMode) error {
	if !m.Valid() {
		return validationErr("unknown view mode")
	}
	p.mu.Lock()
	p.view.Mode = m
	p.mu.Unlock()
	return nil
}

// OpenDetail opens the detail view on the place with the given id.
func (p *Planner) OpenDetail(id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pl := range p.places {
		if pl.ID == id {
			p.view.Detail = &id
			return nil
		}
	}
	return domain.ErrNotFound
}

// CloseDetail closes the detail view if one is open.
func (p *Planner) CloseDetail() {
	p.mu.Lock()
	p.view.Detail = nil
	p.mu.Unlock()
}

// Visible derives the filtered subset under the current query and category
// filter. The derivation is pure: it never mutates state and is recomputed
// on every call.
func (p *Planner) Visible() []domain.Place {
	p.mu.Lock()
	defer p.mu.Unlock()
	return domain.Visible(p.places, p.view.Query, p.view.Category)
}

// VisibleWith derives the filtered subset under an explicit query and filter,
// without touching the stored view state. Used for one-off reads that
// override the current filters.
func (p *Planner) VisibleWith(query string, filter domain.Category) []domain.Place {
	p.mu.Lock()
	defer p.mu.Unlock()
	return domain.Visible(p.places, query, filter)
}

// persist writes the full collection to the store. Must be called with the
// mutex held. Failures are logged and reported through the return value but
// never propagate; the in-memory collection stays authoritative.
func (p *Planner) persist(ctx context.Context) bool {
	if err := p.store.SaveAll(ctx, p.places); err != nil {
		p.log.Error("save failed, in-memory state kept", "error", err)
		return false
	}
	return true
}

// validationErr wraps domain.ErrValidation with a human-readable message so
// handlers can both match the sentinel and surface the detail.
func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}
