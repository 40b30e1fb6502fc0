package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nrazizahmr/planner/backend/internal/domain"
)

// PlacesKey is the fixed key the entire collection is stored under as one
// JSON array. The version suffix is the compatibility contract: earlier
// iterations of the app used different key names, and changing it abandons
// whatever was saved under the old key. No migration between key versions
// is attempted.
const PlacesKey = "travel_planner_places_v3"

// connectTimeout bounds the startup ping that verifies the server is up.
const connectTimeout = 5 * time.Second

// RedisConfig holds connection settings for the key-value storage variant.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// RedisStore persists the collection as a single JSON blob under PlacesKey:
// one opaque value, read and written wholesale. It is the "local" storage
// variant and the default backend.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping
// before returning. The client is owned by the store; call Close to release it.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Address == "" {
		return nil, errors.New("store.NewRedisStore: address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("store.NewRedisStore: ping: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Load reads and decodes the stored collection. A missing key yields an
// empty collection with no error; a malformed payload yields an error the
// caller recovers from by starting empty.
func (s *RedisStore) Load(ctx context.Context) ([]domain.Place, error) {
	raw, err := s.client.Get(ctx, PlacesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store.RedisStore.Load: %w", err)
	}

	var places []domain.Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, fmt.Errorf("store.RedisStore.Load: decode: %w", err)
	}
	return places, nil
}

// SaveAll overwrites the stored blob with the full collection.
func (s *RedisStore) SaveAll(ctx context.Context, places []domain.Place) error {
	raw, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("store.RedisStore.SaveAll: encode: %w", err)
	}
	if err := s.client.Set(ctx, PlacesKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("store.RedisStore.SaveAll: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
