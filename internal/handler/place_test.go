package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

func seedPlace(name string, cat domain.Category, tags ...string) domain.Place {
	return domain.Place{
		ID:        uuid.New(),
		Name:      name,
		Category:  cat,
		Tags:      tags,
		CreatedAt: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

// TestListPlaces_visibleSubset verifies GET /places returns the filtered
// subset and that query parameters override stored view state transiently.
func TestListPlaces_visibleSubset(t *testing.T) {
	kopi := seedPlace("Kopi Kenangan", domain.CategoryCafe, "kopi", "murah")
	monas := seedPlace("Monas", domain.CategorySightseeing, "landmark")
	h, p := newTestServer(t, &mockStore{}, nil, kopi, monas)

	rec := do(h, http.MethodGet, "/places", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Place
	decode(t, rec, &got)
	require.Len(t, got, 2)

	// Transient override.
	rec = do(h, http.MethodGet, "/places?query=kenangan", "")
	decode(t, rec, &got)
	require.Len(t, got, 1)
	assert.Equal(t, kopi.ID, got[0].ID)
	assert.Empty(t, p.View().Query, "override did not mutate view state")

	rec = do(h, http.MethodGet, "/places?category=Sightseeing", "")
	decode(t, rec, &got)
	require.Len(t, got, 1)
	assert.Equal(t, monas.ID, got[0].ID)

	rec = do(h, http.MethodGet, "/places?category=Nightclub", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// TestCreatePlace_OK verifies POST /places creates, prepends, and reports
// the persistence outcome.
func TestCreatePlace_OK(t *testing.T) {
	h, p := newTestServer(t, &mockStore{}, nil, seedPlace("Kopi Kenangan", domain.CategoryCafe))

	rec := do(h, http.MethodPost, "/places",
		`{"name":"Monas","category":"Sightseeing","tags":["landmark"]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Place     domain.Place `json:"place"`
		Persisted bool         `json:"persisted"`
	}
	decode(t, rec, &body)
	assert.True(t, body.Persisted)
	assert.NotEqual(t, uuid.Nil, body.Place.ID)
	assert.Equal(t, domain.CategorySightseeing, body.Place.Category)

	all := p.Places()
	require.Len(t, all, 2)
	assert.Equal(t, body.Place.ID, all[0].ID)
}

// TestCreatePlace_validation maps a missing name to 422.
func TestCreatePlace_validation(t *testing.T) {
	h, _ := newTestServer(t, &mockStore{}, nil)

	rec := do(h, http.MethodPost, "/places", `{"category":"Cafe"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

// TestCreatePlace_malformedBody maps undecodable JSON to 400.
func TestCreatePlace_malformedBody(t *testing.T) {
	h, _ := newTestServer(t, &mockStore{}, nil)

	rec := do(h, http.MethodPost, "/places", `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestGetPlace covers found, missing, and malformed-id lookups.
func TestGetPlace(t *testing.T) {
	place := seedPlace("Kopi Kenangan", domain.CategoryCafe)
	h, _ := newTestServer(t, &mockStore{}, nil, place)

	rec := do(h, http.MethodGet, "/places/"+place.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Place
	decode(t, rec, &got)
	assert.Equal(t, place.ID, got.ID)

	rec = do(h, http.MethodGet, "/places/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(h, http.MethodGet, "/places/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestUpdatePlace_OK verifies PUT /places/{id} replaces mutable fields and
// preserves id and createdAt.
func TestUpdatePlace_OK(t *testing.T) {
	place := seedPlace("Kopi Kenangan", domain.CategoryCafe, "kopi")
	h, _ := newTestServer(t, &mockStore{}, nil, place)

	rec := do(h, http.MethodPut, "/places/"+place.ID.String(),
		`{"name":"Kopi Kenangan","category":"Cafe","tags":["kopi"],"rating":5}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Place domain.Place `json:"place"`
	}
	decode(t, rec, &body)
	assert.Equal(t, place.ID, body.Place.ID)
	assert.True(t, place.CreatedAt.Equal(body.Place.CreatedAt))
	require.NotNil(t, body.Place.Rating)
	assert.Equal(t, 5.0, *body.Place.Rating)
}

// TestUpdatePlace_notFound maps an unknown id to 404.
func TestUpdatePlace_notFound(t *testing.T) {
	h, _ := newTestServer(t, &mockStore{}, nil)

	rec := do(h, http.MethodPut, "/places/"+uuid.NewString(), `{"name":"X"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestDeletePlace_OK verifies DELETE removes the record and reports the
// persistence outcome.
func TestDeletePlace_OK(t *testing.T) {
	place := seedPlace("Kopi Kenangan", domain.CategoryCafe)
	h, p := newTestServer(t, &mockStore{}, nil, place)

	rec := do(h, http.MethodDelete, "/places/"+place.ID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]bool
	decode(t, rec, &body)
	assert.True(t, body["deleted"])
	assert.True(t, body["persisted"])
	assert.Empty(t, p.Places())
}

// TestDeletePlace_saveFailureStillDeletes verifies the best-effort contract
// end to end: a failing store keeps the deletion in memory and reports
// persisted=false instead of an error.
func TestDeletePlace_saveFailureStillDeletes(t *testing.T) {
	place := seedPlace("Kopi Kenangan", domain.CategoryCafe)
	st := &mockStore{
		saveAll: func(ctx context.Context, _ []domain.Place) error {
			return context.DeadlineExceeded
		},
	}
	h, p := newTestServer(t, st, nil, place)

	rec := do(h, http.MethodDelete, "/places/"+place.ID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]bool
	decode(t, rec, &body)
	assert.True(t, body["deleted"])
	assert.False(t, body["persisted"])
	assert.Empty(t, p.Places())
}
