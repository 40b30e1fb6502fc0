package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

// mutationResponse wraps a mutated place together with the save outcome.
// Persisted is false when the in-memory mutation succeeded but the
// best-effort store write did not; the place is live either way.
type mutationResponse struct {
	Place     domain.Place `json:"place"`
	Persisted bool         `json:"persisted"`
}

// listPlaces handles GET /places: the visible subset under the current view
// state. ?query= and ?category= override the stored filters for this read
// only, without mutating view state.
func (s *Server) listPlaces(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if !params.Has("query") && !params.Has("category") {
		writeJSON(w, http.StatusOK, s.places.Visible())
		return
	}

	view := s.view.View()
	query := view.Query
	if params.Has("query") {
		query = params.Get("query")
	}
	filter := view.Category
	if params.Has("category") {
		c, err := parseFilter(params.Get("category"))
		if err != nil {
			validation(w, err)
			return
		}
		filter = c
	}

	writeJSON(w, http.StatusOK, s.places.VisibleWith(query, filter))
}

// createPlace handles POST /places.
func (s *Server) createPlace(w http.ResponseWriter, r *http.Request) {
	var draft domain.PlaceDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	place, persisted, err := s.places.Create(r.Context(), draft)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			validation(w, err)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mutationResponse{Place: place, Persisted: persisted})
}

// getPlace handles GET /places/{id}.
func (s *Server) getPlace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	place, err := s.places.Get(id)
	if err != nil {
		notFound(w, "place not found")
		return
	}

	writeJSON(w, http.StatusOK, place)
}

// updatePlace handles PUT /places/{id}.
func (s *Server) updatePlace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var draft domain.PlaceDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	place, persisted, err := s.places.Update(r.Context(), id, draft)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFound(w, "place not found")
		case errors.Is(err, domain.ErrValidation):
			validation(w, err)
		default:
			internalError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, mutationResponse{Place: place, Persisted: persisted})
}

// deletePlace handles DELETE /places/{id}. Deletion is the post-confirmation
// action: the confirm prompt is the client's affair.
func (s *Server) deletePlace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	persisted, err := s.places.Delete(r.Context(), id)
	if err != nil {
		notFound(w, "place not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true, "persisted": persisted})
}

// pathID parses the {id} path parameter, writing a 404 for anything that is
// not a UUID, since a malformed id can never name an existing place.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, "place not found")
		return uuid.Nil, false
	}
	return id, true
}

// parseFilter maps a ?category= value onto the filter sentinel: empty and
// "all" select every category, anything else must be a closed-set value.
func parseFilter(s string) (domain.Category, error) {
	if s == "" || s == "all" {
		return "", nil
	}
	c := domain.Category(s)
	if !c.Valid() {
		return "", errors.New("validation error: unknown category")
	}
	return c, nil
}

// internalError reports an unexpected failure without leaking its detail.
func internalError(w http.ResponseWriter, _ error) {
	writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
