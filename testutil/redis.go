package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient opens a Redis client connected to the server specified by
// the TEST_REDIS_ADDRESS environment variable.
//
// The test is skipped automatically if TEST_REDIS_ADDRESS is not set, so
// key-value store integration tests are opt-in the same way the database
// ones are. The client is closed automatically when the test finishes.
func NewRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDRESS not set; skipping integration test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Fatalf("testutil.NewRedisClient: ping: %v", err)
	}

	t.Cleanup(func() { client.Close() })
	return client
}
