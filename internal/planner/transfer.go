package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

// csvHeader is the column row written first in every CSV export. Photo
// columns carry a placeholder marker instead of the embedded image data to
// keep exported files a manageable size.
var csvHeader = []string{
	"Name", "Category", "Address", "Description",
	"Place Photo (Base64)", "Menu Photo (Base64)",
	"References", "Tags", "Rating",
}

// photoPlaceholder replaces embedded image data in CSV exports.
const photoPlaceholder = "DATA_IMAGE"

// ExportJSON serializes the full collection as a pretty-printed place array.
// It is a pure read: stored state is unaffected. The output round-trips
// through ImportJSON with identical field values and ids.
func (p *Planner) ExportJSON() ([]byte, error) {
	places := p.Places()
	if places == nil {
		places = []domain.Place{}
	}
	out, err := json.MarshalIndent(places, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("planner.Planner.ExportJSON: %w", err)
	}
	return out, nil
}

// ExportCSV serializes a reduced column set of the full collection. Every
// field is double-quoted with internal quotes doubled, per standard CSV
// escaping. Like ExportJSON this is a pure, synchronous read.
func (p *Planner) ExportCSV() []byte {
	var b strings.Builder

	writeCSVRow(&b, csvHeader)
	for _, place := range p.Places() {
		writeCSVRow(&b, []string{
			place.Name,
			string(place.Category),
			place.Address,
			place.Description,
			csvPhoto(place.PlacePhotoURL),
			csvPhoto(place.MenuPhotoURL),
			joinReferences(place.References),
			strings.Join(place.Tags, ", "),
			csvRating(place.Rating),
		})
	}

	return []byte(b.String())
}

// ExportFilename returns the download filename for an export, stamped with
// the current date: planner_perjalanan_2006-01-02.<ext>.
func (p *Planner) ExportFilename(ext string) string {
	return "planner_perjalanan_" + p.now().Format("2006-01-02") + "." + ext
}

// ImportJSON parses data as a place array and merges it into the collection
// by id: the merge walks imported records first, then existing ones, keeping
// the first occurrence of each id. Imported records win ties, and
// importing the same file twice changes nothing. Anything that does not
// parse as a place array fails with domain.ErrImport and leaves existing
// state untouched. Returns the merged collection size and whether the merge
// reached the store.
func (p *Planner) ImportJSON(ctx context.Context, data []byte) (int, bool, error) {
	var imported []domain.Place
	if err := json.Unmarshal(data, &imported); err != nil {
		return 0, false, fmt.Errorf("planner.Planner.ImportJSON: %w: %v", domain.ErrImport, err)
	}
	for i := range imported {
		imported[i].Category = domain.NormalizeCategory(imported[i].Category)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	merged := make([]domain.Place, 0, len(imported)+len(p.places))
	seen := make(map[string]bool, len(imported)+len(p.places))
	for _, place := range append(imported, p.places...) {
		key := place.ID.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, place)
	}

	p.places = merged
	return len(merged), p.persist(ctx), nil
}

// writeCSVRow appends one row, quoting every field.
func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// csvPhoto reduces an embedded or remote photo URL to its placeholder.
func csvPhoto(url string) string {
	if url == "" {
		return ""
	}
	return photoPlaceholder
}

// joinReferences flattens the reference list to "title: url | title: url".
// Untitled references contribute just the URL.
func joinReferences(refs domain.References) string {
	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.Title != "" {
			parts = append(parts, r.Title+": "+r.URL)
		} else {
			parts = append(parts, r.URL)
		}
	}
	return strings.Join(parts, " | ")
}

// csvRating formats an optional rating, empty when absent.
func csvRating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}
