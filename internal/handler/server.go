// Package handler implements the HTTP surface of the travel planner API.
// Handlers are thin: they map requests onto planner operations and domain
// objects onto JSON, holding no state of their own. Methods are split into
// per-concern files (place.go, view.go, transfer.go, extract.go) but all
// share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

// PlaceService defines the collection operations the place handlers depend
// on. Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without wiring a store.
type PlaceService interface {
	Get(id uuid.UUID) (domain.Place, error)
	Visible() []domain.Place
	VisibleWith(query string, filter domain.Category) []domain.Place
	Create(ctx context.Context, draft domain.PlaceDraft) (domain.Place, bool, error)
	Update(ctx context.Context, id uuid.UUID, draft domain.PlaceDraft) (domain.Place, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ViewService defines the view-state operations the view handlers depend on.
type ViewService interface {
	View() domain.ViewState
	SetQuery(q string)
	SetFilter(c domain.Category) error
	SetViewMode(m domain.ViewMode) error
	OpenDetail(id uuid.UUID) error
	CloseDetail()
}

// TransferService defines the export/import operations.
type TransferService interface {
	ExportJSON() ([]byte, error)
	ExportCSV() []byte
	ExportFilename(ext string) string
	ImportJSON(ctx context.Context, data []byte) (int, bool, error)
}

// Extractor defines the AI-extraction call. A nil Extractor on the Server
// means the feature is not configured and the endpoint reports as such.
type Extractor interface {
	ExtractPlaceInfo(ctx context.Context, url string) (domain.PlaceInfo, error)
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	places    PlaceService
	view      ViewService
	transfer  TransferService
	extractor Extractor
}

// NewServer constructs the Server with all its dependencies.
// Pass a nil extractor when no AI backend is configured.
func NewServer(places PlaceService, view ViewService, transfer TransferService, extractor Extractor) *Server {
	return &Server{places: places, view: view, transfer: transfer, extractor: extractor}
}

// Routes returns the full route table mounted on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)

	r.Route("/places", func(r chi.Router) {
		r.Get("/", s.listPlaces)
		r.Post("/", s.createPlace)
		r.Get("/{id}", s.getPlace)
		r.Put("/{id}", s.updatePlace)
		r.Delete("/{id}", s.deletePlace)
	})

	r.Get("/view", s.getView)
	r.Put("/view", s.updateView)

	r.Get("/export", s.getExport)
	r.Post("/import", s.postImport)
	r.Post("/extract", s.postExtract)

	return r
}

// getHealth handles GET /healthz. It returns HTTP 200 with {"status":"ok"}
// when the server is running.
func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the response is already committed at this point
	json.NewEncoder(w).Encode(v)
}
