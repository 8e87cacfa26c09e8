package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/visitortrack/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	t.Run("cloudflare header takes priority", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:443"
		r.Header.Set("CF-Connecting-IP", "203.0.113.7")
		r.Header.Set("X-Forwarded-For", "198.51.100.2")

		assert.Equal(t, "203.0.113.7", clientip.GetIP(r))
	})

	t.Run("x-forwarded-for picks leftmost valid address", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1, 10.0.0.2")

		assert.Equal(t, "203.0.113.7", clientip.GetIP(r))
	})

	t.Run("skips invalid entries in the chain", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "unknown, 203.0.113.7")

		assert.Equal(t, "203.0.113.7", clientip.GetIP(r))
	})

	t.Run("rejects unspecified address", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "198.51.100.2:1234"
		r.Header.Set("X-Real-IP", "0.0.0.0")

		assert.Equal(t, "198.51.100.2", clientip.GetIP(r))
	})

	t.Run("falls back to remote addr", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.9:50211"

		assert.Equal(t, "192.0.2.9", clientip.GetIP(r))
	})

	t.Run("normalizes ipv6", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "2001:db8:0:0:0:0:0:1")

		assert.Equal(t, "2001:db8::1", clientip.GetIP(r))
	})

	t.Run("unknown when nothing valid", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "not-an-address"

		assert.Equal(t, clientip.Unknown, clientip.GetIP(r))
	})
}
