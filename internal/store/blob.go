package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

// BlobStore persists the collection against a single remote HTTP endpoint
// holding one opaque JSON blob (the spreadsheet-backed variant): GET returns
// the whole array, POST overwrites it. There is no authentication and the
// write response body carries no contract: the endpoint is treated as an
// eventually-consistent mirror, not an acknowledged store.
type BlobStore struct {
	endpoint string
	client   *http.Client
}

// NewBlobStore builds a BlobStore for the given endpoint URL.
func NewBlobStore(endpoint string) (*BlobStore, error) {
	if endpoint == "" {
		return nil, errors.New("store.NewBlobStore: endpoint is required")
	}
	return &BlobStore{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Load fetches the stored JSON array. An empty body decodes as an empty
// collection; anything that is not a place array is an error the caller
// recovers from by starting empty.
func (s *BlobStore) Load(ctx context.Context) ([]domain.Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("store.BlobStore.Load: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("store.BlobStore.Load: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store.BlobStore.Load: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("store.BlobStore.Load: read: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var places []domain.Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, fmt.Errorf("store.BlobStore.Load: decode: %w", err)
	}
	return places, nil
}

// SaveAll POSTs the full collection as a JSON array, overwriting the blob.
// A non-2xx status is reported as an error so callers can log it, but the
// response body is ignored either way.
func (s *BlobStore) SaveAll(ctx context.Context, places []domain.Place) error {
	raw, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("store.BlobStore.SaveAll: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("store.BlobStore.SaveAll: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("store.BlobStore.SaveAll: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("store.BlobStore.SaveAll: unexpected status %d", resp.StatusCode)
	}
	return nil
}
