package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

// TestGetView_defaults verifies the initial view state.
func TestGetView_defaults(t *testing.T) {
	h, _ := newTestServer(t, &mockStore{}, nil)

	rec := do(h, http.MethodGet, "/view", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.ViewState
	decode(t, rec, &got)
	assert.Empty(t, got.Query)
	assert.Empty(t, got.Category)
	assert.Equal(t, domain.ViewModeGrid, got.Mode)
	assert.Nil(t, got.Detail)
}

// TestUpdateView_partial verifies that omitted fields keep their current
// value while present fields are applied.
func TestUpdateView_partial(t *testing.T) {
	h, p := newTestServer(t, &mockStore{}, nil)

	rec := do(h, http.MethodPut, "/view", `{"query":"kopi","mode":"table"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	view := p.View()
	assert.Equal(t, "kopi", view.Query)
	assert.Equal(t, domain.ViewModeTable, view.Mode)
	assert.Empty(t, view.Category)

	// A second partial update leaves the query untouched.
	rec = do(h, http.MethodPut, "/view", `{"category":"Cafe"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view = p.View()
	assert.Equal(t, "kopi", view.Query)
	assert.Equal(t, domain.CategoryCafe, view.Category)
}

// TestUpdateView_invalidInputsRejectedWhole verifies validate-then-apply:
// a bad field fails the whole update and no other field changes.
func TestUpdateView_invalidInputsRejectedWhole(t *testing.T) {
	h, p := newTestServer(t, &mockStore{}, nil)

	rec := do(h, http.MethodPut, "/view", `{"query":"kopi","mode":"carousel"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
	assert.Empty(t, p.View().Query)

	rec = do(h, http.MethodPut, "/view", `{"category":"Nightclub"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// TestUpdateView_detail covers opening and closing the detail pane.
func TestUpdateView_detail(t *testing.T) {
	place := seedPlace("Kopi Kenangan", domain.CategoryCafe)
	h, p := newTestServer(t, &mockStore{}, nil, place)

	rec := do(h, http.MethodPut, "/view", fmt.Sprintf(`{"detail":%q}`, place.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, p.View().Detail)
	assert.Equal(t, place.ID, *p.View().Detail)

	// Unknown id is a 404, detail stays open on the previous place.
	rec = do(h, http.MethodPut, "/view", fmt.Sprintf(`{"detail":%q}`, uuid.New()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, p.View().Detail)

	// Empty string closes the pane.
	rec = do(h, http.MethodPut, "/view", `{"detail":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, p.View().Detail)
}
