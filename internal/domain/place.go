// Package domain contains the core data types for the travel planner API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (store, planner, handler).
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Category classifies a place into one of a fixed set of seven values.
// The set is closed: anything outside it is normalized to CategoryOther
// before a place is saved.
type Category string

const (
	CategoryRestaurant  Category = "Restaurant"
	CategoryCafe        Category = "Cafe"
	CategorySightseeing Category = "Sightseeing"
	CategoryHotel       Category = "Hotel"
	CategoryShopping    Category = "Shopping"
	CategoryActivity    Category = "Activity"
	CategoryOther       Category = "Other"
)

// Categories returns all valid category values in display order.
func Categories() []Category {
	return []Category{
		CategoryRestaurant,
		CategoryCafe,
		CategorySightseeing,
		CategoryHotel,
		CategoryShopping,
		CategoryActivity,
		CategoryOther,
	}
}

// Valid reports whether c is one of the seven closed-set values.
func (c Category) Valid() bool {
	switch c {
	case CategoryRestaurant, CategoryCafe, CategorySightseeing,
		CategoryHotel, CategoryShopping, CategoryActivity, CategoryOther:
		return true
	}
	return false
}

// NormalizeCategory returns c unchanged when it is a valid category and
// CategoryOther otherwise. Empty strings and arbitrary values both default.
func NormalizeCategory(c Category) Category {
	if c.Valid() {
		return c
	}
	return CategoryOther
}

// Reference is a single external link attached to a place, e.g. a Google
// Maps link or a restaurant's menu page. Title is free text and may be empty.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// References is an ordered list of external links. Order is display order.
//
// Older payload shapes stored a single bare URL string instead of a list;
// UnmarshalJSON accepts both so imports and stored blobs from any iteration
// of the app decode into the same in-memory shape.
type References []Reference

// UnmarshalJSON decodes either a JSON array of {title, url} objects or a
// single URL string (the legacy referenceUrl shape). A bare string becomes
// one untitled reference; an empty string becomes an empty list.
func (r *References) UnmarshalJSON(data []byte) error {
	var list []Reference
	if err := json.Unmarshal(data, &list); err == nil {
		*r = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*r = nil
		return nil
	}
	*r = References{{URL: single}}
	return nil
}

// Place is a single bookmarked destination, the system's only entity.
// Places form a flat set keyed by ID; no relationships between them exist.
// ID and CreatedAt are assigned once at creation and never change.
type Place struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Category    Category   `json:"category"`
	Address     string     `json:"address"`
	Description string     `json:"description"`
	References  References `json:"references"`

	// Photo fields hold either a data URL (base64-embedded image) or a
	// remote URL. Empty means "no image"; clients render a placeholder.
	PlacePhotoURL string `json:"placePhotoUrl,omitempty"`
	MenuPhotoURL  string `json:"menuPhotoUrl,omitempty"`

	// Rating is out of 5. The range is a form-input hint, not enforced here.
	Rating *float64 `json:"rating,omitempty"`

	// Tags are free-text labels used for search matching only; they carry
	// no uniqueness or taxonomy semantics.
	Tags []string `json:"tags"`

	CreatedAt time.Time `json:"createdAt"`
}

// PlaceDraft carries the mutable fields of a place as submitted by the
// create/edit form. On create the draft becomes a new place with a fresh ID
// and timestamp; on edit it replaces the existing record's mutable fields
// wholesale, preserving ID and CreatedAt.
type PlaceDraft struct {
	Name          string     `json:"name"`
	Category      Category   `json:"category"`
	Address       string     `json:"address"`
	Description   string     `json:"description"`
	References    References `json:"references"`
	PlacePhotoURL string     `json:"placePhotoUrl,omitempty"`
	MenuPhotoURL  string     `json:"menuPhotoUrl,omitempty"`
	Rating        *float64   `json:"rating,omitempty"`
	Tags          []string   `json:"tags"`
}

// Apply overwrites the mutable fields of p with the draft's values.
// ID and CreatedAt are left untouched.
func (d PlaceDraft) Apply(p *Place) {
	p.Name = d.Name
	p.Category = NormalizeCategory(d.Category)
	p.Address = d.Address
	p.Description = d.Description
	p.References = d.References
	p.PlacePhotoURL = d.PlacePhotoURL
	p.MenuPhotoURL = d.MenuPhotoURL
	p.Rating = d.Rating
	p.Tags = d.Tags
}
