package visitor

import (
	"net/http"

	"github.com/dmitrymomot/visitortrack/pkg/clientip"
)

// Client-hint headers a frontend can set alongside the regular request
// headers to sharpen the device fingerprint.
const (
	headerScreenResolution = "X-Screen-Resolution"
	headerTimezone         = "X-Timezone"
)

// RequestFromHTTP extracts tracking metadata from an incoming request:
// client IP (proxy-aware), user agent, and the optional screen-resolution
// and timezone hints.
func RequestFromHTTP(r *http.Request) RequestContext {
	return RequestContext{
		IP:               clientip.GetIP(r),
		UserAgent:        r.UserAgent(),
		ScreenResolution: r.Header.Get(headerScreenResolution),
		Timezone:         r.Header.Get(headerTimezone),
	}
}
