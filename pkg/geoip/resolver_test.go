package geoip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitortrack/pkg/geoip"
)

func TestClientResolve(t *testing.T) {
	t.Parallel()

	t.Run("successful lookup", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/8.8.8.8", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"status": "success",
				"country": "United States",
				"regionName": "California",
				"city": "Mountain View",
				"timezone": "America/Los_Angeles",
				"isp": "Google LLC",
				"lat": 37.4056,
				"lon": -122.0775
			}`))
		}))
		defer srv.Close()

		client := geoip.New(geoip.WithBaseURL(srv.URL))
		loc := client.Resolve(context.Background(), "8.8.8.8")

		assert.Equal(t, "United States", loc.Country)
		assert.Equal(t, "California", loc.Region)
		assert.Equal(t, "Mountain View", loc.City)
		assert.Equal(t, "America/Los_Angeles", loc.Timezone)
		assert.Equal(t, "Google LLC", loc.ISP)
		require.NotNil(t, loc.Latitude)
		require.NotNil(t, loc.Longitude)
		assert.InDelta(t, 37.4056, *loc.Latitude, 0.0001)
		assert.Equal(t, "Mountain View, United States", loc.Key())
	})

	t.Run("loopback short-circuits without network call", func(t *testing.T) {
		t.Parallel()
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		client := geoip.New(geoip.WithBaseURL(srv.URL))

		for _, ip := range []string{"127.0.0.1", "::1", "0.0.0.0", "", "unknown", "localhost"} {
			loc := client.Resolve(context.Background(), ip)
			assert.Equal(t, geoip.Local(), loc, "ip %q should resolve locally", ip)
		}
		assert.False(t, called, "local addresses must not hit the lookup service")
	})

	t.Run("upstream failure status degrades to unknown", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
		}))
		defer srv.Close()

		client := geoip.New(geoip.WithBaseURL(srv.URL))
		assert.Equal(t, geoip.Unknown(), client.Resolve(context.Background(), "203.0.113.9"))
	})

	t.Run("non-200 response degrades to unknown", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := geoip.New(geoip.WithBaseURL(srv.URL))
		assert.Equal(t, geoip.Unknown(), client.Resolve(context.Background(), "203.0.113.9"))
	})

	t.Run("malformed payload degrades to unknown", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))
		defer srv.Close()

		client := geoip.New(geoip.WithBaseURL(srv.URL))
		assert.Equal(t, geoip.Unknown(), client.Resolve(context.Background(), "203.0.113.9"))
	})

	t.Run("timeout degrades to unknown instead of propagating", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client := geoip.New(geoip.WithBaseURL(srv.URL), geoip.WithTimeout(20*time.Millisecond))

		start := time.Now()
		loc := client.Resolve(context.Background(), "203.0.113.9")

		assert.Equal(t, geoip.Unknown(), loc)
		assert.Less(t, time.Since(start), 150*time.Millisecond, "lookup must be bounded by the configured timeout")
	})

	t.Run("unreachable endpoint degrades to unknown", func(t *testing.T) {
		t.Parallel()
		client := geoip.New(
			geoip.WithBaseURL("http://127.0.0.1:1"),
			geoip.WithTimeout(50*time.Millisecond),
		)
		assert.Equal(t, geoip.Unknown(), client.Resolve(context.Background(), "203.0.113.9"))
	})
}

func TestStaticResolve(t *testing.T) {
	t.Parallel()

	austin := geoip.Location{Country: "US", Region: "Texas", City: "Austin", Timezone: "America/Chicago", ISP: "Test ISP"}
	resolver := geoip.NewStatic(map[string]geoip.Location{
		"1.1.1.1": austin,
	})

	assert.Equal(t, austin, resolver.Resolve(context.Background(), "1.1.1.1"))
	assert.Equal(t, geoip.Local(), resolver.Resolve(context.Background(), "127.0.0.1"))
	assert.Equal(t, geoip.Unknown(), resolver.Resolve(context.Background(), "8.8.8.8"))
}
