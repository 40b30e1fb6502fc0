package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore is the row-oriented storage variant: one row per place in the
// places table, read back ordered by created_at descending. Field names are
// translated between the application's camelCase JSON convention and the
// table's snake_case columns here and nowhere else; the domain model never
// carries both conventions.
type PostgresStore struct {
	db db
}

// NewPostgresStore constructs a PostgresStore backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewPostgresStore(db db) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load returns every stored place, newest first.
func (s *PostgresStore) Load(ctx context.Context) ([]domain.Place, error) {
	const q = `
		SELECT id, name, category, address, description, reference_url,
		       place_photo_url, menu_photo_url, rating, tags, created_at
		FROM places
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("store.PostgresStore.Load: %w", err)
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("store.PostgresStore.Load: scan: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store.PostgresStore.Load: rows: %w", err)
	}

	return places, nil
}

// SaveAll reconciles the table against the given collection: new ids are
// inserted, existing ids updated, and rows absent from the collection
// deleted. Callers keep the wholesale Load/SaveAll contract while the store
// itself only ever sees row operations.
func (s *PostgresStore) SaveAll(ctx context.Context, places []domain.Place) error {
	existing, err := s.existingIDs(ctx)
	if err != nil {
		return fmt.Errorf("store.PostgresStore.SaveAll: %w", err)
	}

	keep := make(map[uuid.UUID]bool, len(places))
	for _, p := range places {
		keep[p.ID] = true
		if existing[p.ID] {
			err = s.update(ctx, p)
		} else {
			err = s.insert(ctx, p)
		}
		if err != nil {
			return fmt.Errorf("store.PostgresStore.SaveAll: %w", err)
		}
	}

	for id := range existing {
		if keep[id] {
			continue
		}
		if err := s.delete(ctx, id); err != nil {
			return fmt.Errorf("store.PostgresStore.SaveAll: %w", err)
		}
	}

	return nil
}

// existingIDs returns the set of place ids currently stored.
func (s *PostgresStore) existingIDs(ctx context.Context) (map[uuid.UUID]bool, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM places`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[uuid.UUID(id.Bytes)] = true
	}
	return ids, rows.Err()
}

func (s *PostgresStore) insert(ctx context.Context, p domain.Place) error {
	const q = `
		INSERT INTO places (id, name, category, address, description, reference_url,
		                    place_photo_url, menu_photo_url, rating, tags, created_at)
		VALUES (@id, @name, @category, @address, @description, @reference_url,
		        @place_photo_url, @menu_photo_url, @rating, @tags, @created_at)`

	_, err := s.db.Exec(ctx, q, placeArgs(p))
	return err
}

func (s *PostgresStore) update(ctx context.Context, p domain.Place) error {
	const q = `
		UPDATE places
		SET name            = @name,
		    category        = @category,
		    address         = @address,
		    description     = @description,
		    reference_url   = @reference_url,
		    place_photo_url = @place_photo_url,
		    menu_photo_url  = @menu_photo_url,
		    rating          = @rating,
		    tags            = @tags,
		    created_at      = @created_at
		WHERE id = @id`

	_, err := s.db.Exec(ctx, q, placeArgs(p))
	return err
}

func (s *PostgresStore) delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx, `DELETE FROM places WHERE id = @id`, pgx.NamedArgs{"id": id})
	return err
}

// placeArgs maps a domain.Place onto the table's snake_case named arguments.
func placeArgs(p domain.Place) pgx.NamedArgs {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return pgx.NamedArgs{
		"id":              p.ID,
		"name":            p.Name,
		"category":        string(domain.NormalizeCategory(p.Category)),
		"address":         p.Address,
		"description":     p.Description,
		"reference_url":   encodeReferences(p.References),
		"place_photo_url": p.PlacePhotoURL,
		"menu_photo_url":  p.MenuPhotoURL,
		"rating":          p.Rating, // nil becomes NULL
		"tags":            tags,
		"created_at":      p.CreatedAt,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanPlace to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanPlace maps a single database row into a domain.Place.
// It handles the UUID, nullable rating, and reference shape conversions.
func scanPlace(s scanner) (domain.Place, error) {
	var (
		p      domain.Place
		id     pgtype.UUID
		refs   string
		rating pgtype.Float8
	)

	err := s.Scan(&id, &p.Name, &p.Category, &p.Address, &p.Description, &refs,
		&p.PlacePhotoURL, &p.MenuPhotoURL, &rating, &p.Tags, &p.CreatedAt)
	if err != nil {
		return domain.Place{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.Category = domain.NormalizeCategory(p.Category)
	p.References = decodeReferences(refs)
	if rating.Valid {
		r := rating.Float64
		p.Rating = &r
	}

	return p, nil
}

// encodeReferences serializes the reference list into the reference_url
// column. The column predates titled reference lists, so the encoded shape
// stays backward compatible: empty list → empty string, otherwise a JSON
// array of {title, url} objects.
func encodeReferences(refs domain.References) string {
	if len(refs) == 0 {
		return ""
	}
	raw, err := json.Marshal(refs)
	if err != nil {
		return ""
	}
	return string(raw)
}

// decodeReferences reverses encodeReferences. A bare URL string written by
// an older iteration of the app decodes as a single untitled reference.
func decodeReferences(s string) domain.References {
	if s == "" {
		return nil
	}
	var refs domain.References
	if err := json.Unmarshal([]byte(s), &refs); err == nil {
		return refs
	}
	return domain.References{{URL: s}}
}
