package domain

import "github.com/google/uuid"

// ViewMode selects how the visible subset is rendered.
type ViewMode string

const (
	ViewModeGrid  ViewMode = "grid"
	ViewModeTable ViewMode = "table"
)

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	return m == ViewModeGrid || m == ViewModeTable
}

// ViewState is the UI state held alongside the collection: the free-text
// search query, the selected category filter (zero value means "all"), the
// active view mode, and the currently-open detail record (nil means none).
type ViewState struct {
	Query    string     `json:"query"`
	Category Category   `json:"category"`
	Mode     ViewMode   `json:"mode"`
	Detail   *uuid.UUID `json:"detail,omitempty"`
}
