package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

// viewUpdate is the PUT /view body. Every field is optional; absent fields
// leave the corresponding view state untouched. Detail accepts a place id to
// open the detail view or the empty string to close it.
type viewUpdate struct {
	Query    *string `json:"query,omitempty"`
	Category *string `json:"category,omitempty"`
	Mode     *string `json:"mode,omitempty"`
	Detail   *string `json:"detail,omitempty"`
}

// getView handles GET /view.
func (s *Server) getView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.view.View())
}

// updateView handles PUT /view: a partial update of the view state.
// Invalid category or mode values are rejected wholesale: no field of a
// rejected update is applied.
func (s *Server) updateView(w http.ResponseWriter, r *http.Request) {
	var upd viewUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	// Validate before applying anything.
	var filter domain.Category
	if upd.Category != nil {
		c, err := parseFilter(*upd.Category)
		if err != nil {
			validation(w, err)
			return
		}
		filter = c
	}
	if upd.Mode != nil && !domain.ViewMode(*upd.Mode).Valid() {
		validation(w, errors.New("validation error: unknown view mode"))
		return
	}
	var detail uuid.UUID
	if upd.Detail != nil && *upd.Detail != "" {
		id, err := uuid.Parse(*upd.Detail)
		if err != nil {
			notFound(w, "place not found")
			return
		}
		detail = id
	}

	if upd.Query != nil {
		s.view.SetQuery(*upd.Query)
	}
	if upd.Category != nil {
		if err := s.view.SetFilter(filter); err != nil {
			validation(w, err)
			return
		}
	}
	if upd.Mode != nil {
		if err := s.view.SetViewMode(domain.ViewMode(*upd.Mode)); err != nil {
			validation(w, err)
			return
		}
	}
	if upd.Detail != nil {
		if *upd.Detail == "" {
			s.view.CloseDetail()
		} else if err := s.view.OpenDetail(detail); err != nil {
			notFound(w, "place not found")
			return
		}
	}

	writeJSON(w, http.StatusOK, s.view.View())
}
