package domain

// PlaceInfo is the AI-extraction result: a best-effort structured guess at
// place attributes derived from a map link. It is only ever merged into an
// in-progress form draft, never written to persisted state directly.
type PlaceInfo struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Rating      *float64 `json:"rating,omitempty"`
}
