package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/visitortrack/core/logger"
)

func TestAttrHelpers(t *testing.T) {
	t.Parallel()

	t.Run("nil error yields empty attr", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Attr{}, logger.Error(nil))
	})

	t.Run("error attr carries the error", func(t *testing.T) {
		t.Parallel()
		err := errors.New("boom")
		attr := logger.Error(err)
		assert.Equal(t, "error", attr.Key)
	})

	t.Run("empty identifiers yield empty attrs", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Attr{}, logger.SessionID(""))
		assert.Equal(t, slog.Attr{}, logger.VisitorID(""))
		assert.Equal(t, slog.Attr{}, logger.DeviceID(""))
		assert.Equal(t, slog.Attr{}, logger.Key("k", nil))
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json formatter writes json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))

		log.Info("hello", logger.Component("test"))

		assert.Contains(t, buf.String(), `"component":"test"`)
	})

	t.Run("level filtering", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithLevel(slog.LevelWarn), logger.WithOutput(&buf))

		log.Info("dropped")
		log.Warn("kept")

		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("development preset enables debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("myapp"), logger.WithOutput(&buf))

		log.Debug("visible")

		assert.Contains(t, buf.String(), "visible")
		assert.Contains(t, buf.String(), "myapp")
	})
}
