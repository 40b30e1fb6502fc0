package extract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrazizahmr/planner/backend/internal/domain"
	"github.com/nrazizahmr/planner/backend/internal/extract"
)

// fakeBackend builds a client pointed at a test server that answers every
// generateContent call with the given handler.
func fakeBackend(t *testing.T, h http.HandlerFunc) *extract.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return extract.NewClient(extract.Config{Endpoint: srv.URL, APIKey: "test-key"})
}

// candidateBody wraps text in the generateContent response envelope.
func candidateBody(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

// TestExtractPlaceInfo_OK verifies the happy path: the model's JSON text is
// parsed into a PlaceInfo and the request carried the URL and the schema.
func TestExtractPlaceInfo_OK(t *testing.T) {
	var reqBody map[string]any
	client := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.URL.Path, ":generateContent")
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &reqBody))

		json.NewEncoder(w).Encode(candidateBody(
			`{"name":"Monas","category":"Sightseeing","address":"Gambir, Jakarta","description":"National monument.","tags":["landmark","sejarah","foto"],"rating":4.7}`))
	})

	info, err := client.ExtractPlaceInfo(context.Background(), "https://maps.example/monas")

	require.NoError(t, err)
	assert.Equal(t, "Monas", info.Name)
	assert.Equal(t, domain.CategorySightseeing, info.Category)
	assert.Equal(t, "Gambir, Jakarta", info.Address)
	assert.Len(t, info.Tags, 3)
	require.NotNil(t, info.Rating)
	assert.Equal(t, 4.7, *info.Rating)

	// The instruction must carry the URL; the schema must constrain category
	// to the closed enumeration.
	payload, _ := json.Marshal(reqBody)
	assert.Contains(t, string(payload), "https://maps.example/monas")
	assert.Contains(t, string(payload), "responseSchema")
	assert.Contains(t, string(payload), `"Sightseeing"`)
}

// TestExtractPlaceInfo_emptyURL is rejected before any network call.
func TestExtractPlaceInfo_emptyURL(t *testing.T) {
	called := false
	client := fakeBackend(t, func(http.ResponseWriter, *http.Request) { called = true })

	_, err := client.ExtractPlaceInfo(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, called)
}

// TestExtractPlaceInfo_freeTextOutput verifies that when the backend returns
// prose instead of JSON, the client raises ErrExtraction rather than
// propagating a parse failure.
func TestExtractPlaceInfo_freeTextOutput(t *testing.T) {
	client := fakeBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(candidateBody("Monas is a national monument in Jakarta."))
	})

	_, err := client.ExtractPlaceInfo(context.Background(), "https://maps.example/monas")

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

// TestExtractPlaceInfo_emptyResponse verifies that a response with no
// candidate text is ErrExtraction.
func TestExtractPlaceInfo_emptyResponse(t *testing.T) {
	client := fakeBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	_, err := client.ExtractPlaceInfo(context.Background(), "https://maps.example/monas")

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

// TestExtractPlaceInfo_backendError maps non-200 statuses to ErrExtraction.
func TestExtractPlaceInfo_backendError(t *testing.T) {
	client := fakeBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.ExtractPlaceInfo(context.Background(), "https://maps.example/monas")

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

// TestExtractPlaceInfo_invalidCategoryCoerced verifies that schema
// enforcement is defended client-side too: an out-of-enum category in
// otherwise valid output is coerced to Other instead of rejected.
func TestExtractPlaceInfo_invalidCategoryCoerced(t *testing.T) {
	client := fakeBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(candidateBody(
			`{"name":"X","category":"InvalidValue","address":"Y","description":"Z","tags":["a"]}`))
	})

	info, err := client.ExtractPlaceInfo(context.Background(), "https://maps.example/x")

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryOther, info.Category)
}
