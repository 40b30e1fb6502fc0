package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrazizahmr/planner/backend/internal/store"
	"github.com/nrazizahmr/planner/backend/testutil"
)

// TestNewRedisStore_requiresAddress rejects an empty address at build time;
// this much needs no running server.
func TestNewRedisStore_requiresAddress(t *testing.T) {
	_, err := store.NewRedisStore(store.RedisConfig{})

	assert.Error(t, err)
}

// TestRedisStore_roundTrip is an integration test against a real Redis,
// skipped automatically when TEST_REDIS_ADDRESS is not set. It verifies the
// blob round trip under the versioned key and the missing-key → empty case.
func TestRedisStore_roundTrip(t *testing.T) {
	client := testutil.NewRedisClient(t)
	ctx := context.Background()

	// Start from a clean key; restore nothing afterwards, the test DB is
	// disposable by contract.
	require.NoError(t, client.Del(ctx, store.PlacesKey).Err())

	rs, err := store.NewRedisStore(store.RedisConfig{Address: os.Getenv("TEST_REDIS_ADDRESS")})
	require.NoError(t, err)
	defer rs.Close()

	got, err := rs.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got, "missing key loads as empty collection")

	want := samplePlaces()
	require.NoError(t, rs.SaveAll(ctx, want))

	got, err = rs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// TestRedisStore_malformedPayload verifies a corrupt stored blob surfaces as
// an error rather than a panic or silent garbage.
func TestRedisStore_malformedPayload(t *testing.T) {
	client := testutil.NewRedisClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, store.PlacesKey, "not json", 0).Err())
	t.Cleanup(func() { client.Del(ctx, store.PlacesKey) })

	rs, err := store.NewRedisStore(store.RedisConfig{Address: os.Getenv("TEST_REDIS_ADDRESS")})
	require.NoError(t, err)
	defer rs.Close()

	_, err = rs.Load(ctx)

	assert.Error(t, err)
}
