package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

// extractRequest is the POST /extract body.
type extractRequest struct {
	URL string `json:"url"`
}

// postExtract handles POST /extract: it asks the AI backend for a structured
// guess at place attributes for the given link. The result is a form-fill
// default only, nothing is persisted here. Failures surface with a message
// inviting manual entry so the client can leave the draft untouched.
func (s *Server) postExtract(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		writeError(w, http.StatusServiceUnavailable, "extraction_error",
			"AI extraction is not configured")
		return
	}

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	info, err := s.extractor.ExtractPlaceInfo(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			validation(w, err)
			return
		}
		writeError(w, http.StatusBadGateway, "extraction_error",
			"AI could not read this link. Check the URL or fill the details manually.")
		return
	}

	writeJSON(w, http.StatusOK, info)
}
