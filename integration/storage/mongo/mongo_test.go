package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/visitortrack/core/visitor"
	"github.com/dmitrymomot/visitortrack/integration/storage/mongo"
)

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := mongo.New(nil)
	assert.ErrorIs(t, err, visitor.ErrInvalidConfig)
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty url", func(t *testing.T) {
		t.Parallel()

		_, err := mongo.Connect(t.Context(), mongo.Config{})
		assert.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)
	})

	t.Run("gives up when mongodb is unreachable", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
		defer cancel()

		_, err := mongo.Connect(ctx, mongo.Config{
			ConnectionURL:  "mongodb://127.0.0.1:1",
			ConnectTimeout: 200 * time.Millisecond,
			RetryAttempts:  1,
			RetryInterval:  10 * time.Millisecond,
		})
		assert.ErrorIs(t, err, mongo.ErrFailedToConnect)
	})
}
