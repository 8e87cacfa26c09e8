package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/visitortrack/core/visitor"
)

// Compile-time check that Storage implements the visitor storage contract.
var _ visitor.Storage = (*Storage)(nil)

// defaultKey is where the snapshot document lives when no key is configured.
const defaultKey = "visitortrack:snapshot"

// Config contains Redis connection settings with environment variable mapping.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	Key            string        `env:"REDIS_SNAPSHOT_KEY" envDefault:"visitortrack:snapshot"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Storage persists the visitor snapshot as one JSON value under a single
// Redis key. The document is small enough that whole-value SET/GET beats any
// per-field structure, and it keeps the stored shape identical across all
// storage adapters.
type Storage struct {
	client redis.UniversalClient
	key    string
}

// New wraps an existing Redis client. Use Connect when the client should be
// established from configuration.
func New(client redis.UniversalClient, key string) (*Storage, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: nil redis client", visitor.ErrInvalidConfig)
	}
	if key == "" {
		key = defaultKey
	}
	return &Storage{client: client, key: key}, nil
}

// Connect establishes a Redis connection with retry logic and returns a
// storage bound to it. Connection is verified with a ping before returning,
// retrying on the configured interval until the attempts or the context run
// out.
func Connect(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client := redis.NewClient(opts)

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := 0; i < attempts; i++ {
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return New(client, cfg.Key)
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			client.Close()
			return nil, errors.Join(ErrRedisNotReady, lastErr, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	client.Close()
	return nil, errors.Join(ErrRedisNotReady, lastErr)
}

// Load fetches and decodes the snapshot value.
func (s *Storage) Load(ctx context.Context) (*visitor.Snapshot, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, visitor.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("get snapshot key: %w", err)
	}

	var snap visitor.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", visitor.ErrCorruptSnapshot, err)
	}
	return &snap, nil
}

// Save replaces the snapshot value. No TTL: retention is the Tracker's job.
func (s *Storage) Save(ctx context.Context, snap *visitor.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot key: %w", err)
	}
	return nil
}

// Healthcheck returns a function that verifies Redis connectivity, suitable
// for readiness probes.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
