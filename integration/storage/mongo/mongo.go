package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/visitortrack/core/visitor"
)

// Compile-time check that Storage implements the visitor storage contract.
var _ visitor.Storage = (*Storage)(nil)

// documentID is the fixed _id of the single snapshot document.
const documentID = "visitortrack-snapshot"

// Config contains MongoDB connection settings with environment variable
// mapping. Defaults are tuned for MongoDB Atlas, whose cold starts can take
// several seconds.
type Config struct {
	ConnectionURL  string        `env:"MONGODB_URL,required"`
	Database       string        `env:"MONGODB_DATABASE" envDefault:"visitortrack"`
	Collection     string        `env:"MONGODB_COLLECTION" envDefault:"snapshots"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	RetryAttempts  int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// snapshotDoc is the stored shape: the snapshot serialized to JSON bytes
// under a fixed id. Raw JSON rather than nested BSON keeps the document
// byte-identical with the other storage adapters and sidesteps BSON's
// restrictions on map keys.
type snapshotDoc struct {
	ID        string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Storage persists the visitor snapshot as one document in a MongoDB
// collection, replaced wholesale on every save.
type Storage struct {
	collection *mongo.Collection
}

// New wraps an existing collection. Use Connect when the client should be
// established from configuration.
func New(collection *mongo.Collection) (*Storage, error) {
	if collection == nil {
		return nil, fmt.Errorf("%w: nil mongo collection", visitor.ErrInvalidConfig)
	}
	return &Storage{collection: collection}, nil
}

// Connect establishes a MongoDB connection with retry logic and returns a
// storage bound to the configured collection. Connectivity is verified with
// a ping before returning.
func Connect(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts := options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetConnectTimeout(cfg.ConnectTimeout)

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := 0; i < attempts; i++ {
		client, err := mongo.Connect(opts)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return New(client.Database(cfg.Database).Collection(cfg.Collection))
			}
			client.Disconnect(ctx)
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToConnect, lastErr, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToConnect, lastErr)
}

// Load fetches and decodes the snapshot document.
func (s *Storage) Load(ctx context.Context) (*visitor.Snapshot, error) {
	var doc snapshotDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": documentID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, visitor.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("find snapshot document: %w", err)
	}

	var snap visitor.Snapshot
	if err := json.Unmarshal(doc.Data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", visitor.ErrCorruptSnapshot, err)
	}
	return &snap, nil
}

// Save upserts the snapshot document.
func (s *Storage) Save(ctx context.Context, snap *visitor.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	doc := snapshotDoc{
		ID:        documentID,
		Data:      b,
		UpdatedAt: time.Now().UTC(),
	}
	_, err = s.collection.ReplaceOne(ctx, bson.M{"_id": documentID}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert snapshot document: %w", err)
	}
	return nil
}

// Healthcheck returns a function that verifies MongoDB connectivity,
// suitable for readiness probes.
func Healthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, nil); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
