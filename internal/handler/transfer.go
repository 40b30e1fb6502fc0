package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

// getExport handles GET /export. Use ?format=csv to receive CSV; default is
// pretty-printed JSON. Either way the response carries a Content-Disposition
// with a date-stamped download filename.
func (s *Server) getExport(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "csv" {
		body := s.transfer.ExportCSV()
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", attachment(s.transfer.ExportFilename("csv")))
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck // response already committed
		w.Write(body)
		return
	}

	body, err := s.transfer.ExportJSON()
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment(s.transfer.ExportFilename("json")))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(body)
}

// postImport handles POST /import: the request body is a JSON array of
// places, merged by id into the current collection. A body that is not a
// place array is rejected without touching existing state.
func (s *Server) postImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		badRequest(w, "could not read request body")
		return
	}

	count, persisted, err := s.transfer.ImportJSON(r.Context(), data)
	if err != nil {
		if errors.Is(err, domain.ErrImport) {
			writeError(w, http.StatusUnprocessableEntity, "import_error",
				"file is not a JSON array of places")
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"count": count, "persisted": persisted})
}

// attachment builds a Content-Disposition header value for filename.
func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
