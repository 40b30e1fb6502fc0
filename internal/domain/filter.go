package domain

import "strings"

// MatchesQuery reports whether the place matches a free-text search query.
// Matching is a case-insensitive substring test against the name, the
// address, and every tag. An empty query matches everything.
func (p Place) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Address), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Visible derives the filtered subset of places: a place is included iff it
// matches the search query AND the category filter. The zero-value category
// ("") is the "all categories" sentinel. The input slice is never modified;
// result order follows input order.
func Visible(places []Place, query string, filter Category) []Place {
	out := make([]Place, 0, len(places))
	for _, p := range places {
		if !p.MatchesQuery(query) {
			continue
		}
		if filter != "" && p.Category != filter {
			continue
		}
		out = append(out, p)
	}
	return out
}
