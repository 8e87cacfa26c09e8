package visitor_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitortrack/core/visitor"
)

func TestSnapshotMigration(t *testing.T) {
	t.Parallel()

	t.Run("fills blocks missing from an older document", func(t *testing.T) {
		t.Parallel()

		// A minimal legacy document: sessions only, every other block absent.
		store := &memStorage{data: []byte(`{
			"user_sessions": {
				"legacy-session": {
					"session_id": "legacy-session",
					"visitor_id": "visitor-1",
					"start_time": "2026-02-20T10:00:00Z",
					"last_activity": "2026-02-20T10:05:00Z",
					"ip_address": "203.0.113.10",
					"page_views": 3,
					"is_active": true
				}
			}
		}`)}

		tracker := visitor.New(t.Context(), store, visitor.WithResolver(testResolver()))

		sess, ok := tracker.GetSession("legacy-session")
		require.True(t, ok)
		assert.Equal(t, 3, sess.PageViews)
		assert.True(t, sess.IsActive)
		assert.Equal(t, 1, tracker.Stats().ActiveSessions)

		// Missing blocks were defaulted: operations touching them work.
		tracker.UpdateActivity(t.Context(), "legacy-session", "view_change:map")
		tracker.CreateSession(t.Context(), "visitor-2", testRequest("203.0.113.20"))

		export := tracker.Export(t.Context())
		assert.Equal(t, "1.0", export.Meta.Version)
		assert.False(t, export.Meta.CreatedAt.IsZero())
		assert.Len(t, export.LoginHistory, 1)
		assert.NotEmpty(t, export.LocationHistory)
	})

	t.Run("persisted document round trips", func(t *testing.T) {
		t.Parallel()

		store := &memStorage{}
		tracker := visitor.New(t.Context(), store, visitor.WithResolver(testResolver()))

		sess := tracker.CreateSession(t.Context(), "visitor-1", testRequest("203.0.113.10"))
		tracker.UpdateActivity(t.Context(), sess.ID, "data_source_change:usgs")
		tracker.EndSession(t.Context(), sess.ID)

		var doc map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(store.data, &doc))
		for _, key := range []string{
			"user_sessions", "login_history", "security_events",
			"device_fingerprints", "location_history",
			"session_analytics", "visitor_metrics", "metadata",
		} {
			assert.Contains(t, doc, key)
		}

		restarted := visitor.New(t.Context(), store, visitor.WithResolver(testResolver()))
		got, ok := restarted.GetSession(sess.ID)
		require.True(t, ok)
		assert.Equal(t, sess.ID, got.ID)
		assert.False(t, got.IsActive)
		require.NotNil(t, got.EndTime)

		popular := restarted.Popular()
		require.Len(t, popular.DataSources, 1)
		assert.Equal(t, "usgs", popular.DataSources[0].Key)
	})

	t.Run("metadata tracks updates", func(t *testing.T) {
		t.Parallel()

		store := &memStorage{}
		tracker := visitor.New(t.Context(), store, visitor.WithResolver(testResolver()))

		tracker.CreateSession(t.Context(), "visitor-1", testRequest("203.0.113.10"))

		export := tracker.Export(t.Context())
		assert.False(t, export.Meta.CreatedAt.IsZero())
		assert.False(t, export.Meta.UpdatedAt.Before(export.Meta.CreatedAt))
	})
}
