package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitortrack/core/config"
)

type sampleConfig struct {
	Name    string        `env:"CONFIG_TEST_NAME" envDefault:"fallback"`
	Days    int           `env:"CONFIG_TEST_DAYS" envDefault:"90"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"5s"`
}

type cachedConfig struct {
	Value string `env:"CONFIG_TEST_CACHED" envDefault:"first"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied when env unset", func(t *testing.T) {
		var cfg sampleConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "fallback", cfg.Name)
		assert.Equal(t, 90, cfg.Days)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_CACHED", "from-env")

		var first cachedConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, "from-env", first.Value)

		// Later environment changes are invisible: the type is cached.
		t.Setenv("CONFIG_TEST_CACHED", "changed")

		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "from-env", second.Value)
	})

	t.Run("nil target rejected", func(t *testing.T) {
		assert.Error(t, config.Load[sampleConfig](nil))
	})
}

func TestMustLoad(t *testing.T) {
	assert.NotPanics(t, func() {
		var cfg sampleConfig
		config.MustLoad(&cfg)
	})
}
