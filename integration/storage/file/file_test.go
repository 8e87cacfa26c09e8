package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitortrack/core/visitor"
	"github.com/dmitrymomot/visitortrack/integration/storage/file"
	"github.com/dmitrymomot/visitortrack/pkg/geoip"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty path", func(t *testing.T) {
		t.Parallel()

		_, err := file.New("")
		assert.ErrorIs(t, err, visitor.ErrInvalidConfig)
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "sessions.json")
		_, err := file.New(path)
		require.NoError(t, err)

		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestLoadSave(t *testing.T) {
	t.Parallel()

	t.Run("missing file reports not found", func(t *testing.T) {
		t.Parallel()

		store, err := file.New(filepath.Join(t.TempDir(), "sessions.json"))
		require.NoError(t, err)

		_, err = store.Load(t.Context())
		assert.ErrorIs(t, err, visitor.ErrSnapshotNotFound)
	})

	t.Run("round trips through the tracker", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sessions.json")
		store, err := file.New(path)
		require.NoError(t, err)

		resolver := geoip.NewStatic(map[string]geoip.Location{
			"203.0.113.10": {Country: "Germany", City: "Berlin"},
		})
		tracker := visitor.New(t.Context(), store, visitor.WithResolver(resolver))
		sess := tracker.CreateSession(t.Context(), "visitor-1", visitor.RequestContext{
			IP:        "203.0.113.10",
			UserAgent: "Mozilla/5.0",
		})

		restarted := visitor.New(t.Context(), store, visitor.WithResolver(resolver))
		got, ok := restarted.GetSession(sess.ID)
		require.True(t, ok)
		assert.Equal(t, "Berlin, Germany", got.Location.Key())
	})

	t.Run("file is private", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sessions.json")
		store, err := file.New(path)
		require.NoError(t, err)

		tracker := visitor.New(t.Context(), store)
		tracker.CreateSession(t.Context(), "visitor-1", visitor.RequestContext{})

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("corrupt file reports corrupt snapshot", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sessions.json")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

		store, err := file.New(path)
		require.NoError(t, err)

		_, err = store.Load(t.Context())
		assert.ErrorIs(t, err, visitor.ErrCorruptSnapshot)
	})

	t.Run("save leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store, err := file.New(filepath.Join(dir, "sessions.json"))
		require.NoError(t, err)

		tracker := visitor.New(t.Context(), store)
		tracker.CreateSession(t.Context(), "visitor-1", visitor.RequestContext{})
		tracker.CreateSession(t.Context(), "visitor-2", visitor.RequestContext{})

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "sessions.json", entries[0].Name())
	})

	t.Run("pretty print produces indented output", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sessions.json")
		store, err := file.New(path, file.WithPrettyPrint())
		require.NoError(t, err)

		tracker := visitor.New(t.Context(), store)
		tracker.CreateSession(t.Context(), "visitor-1", visitor.RequestContext{})

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "\n  ")
	})
}
