package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Unknown is returned when no valid client IP can be determined from the
// request. Callers persist it as-is; downstream geolocation treats it as a
// local/unresolvable address.
const Unknown = "unknown"

// ipHeaders lists proxy headers in priority order. CDN-set headers come
// first because they are written by infrastructure the client cannot spoof
// through, followed by the generic proxy conventions.
var ipHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
	"X-Client-IP",
}

// GetIP extracts the real client IP address from an HTTP request.
//
// Proxy headers are checked in priority order; X-Forwarded-For may contain a
// chain ("client, proxy1, proxy2") and the leftmost valid address wins. Every
// candidate is validated and normalized via net.ParseIP; the unspecified
// address 0.0.0.0 is rejected. Falls back to RemoteAddr for direct
// connections and returns Unknown when nothing valid is found.
func GetIP(r *http.Request) string {
	for _, header := range ipHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		for _, candidate := range strings.Split(value, ",") {
			if ip := normalize(candidate); ip != "" {
				return ip
			}
		}
	}

	// RemoteAddr is host:port for direct connections, but may be a bare
	// host when the request was constructed in tests.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}

	return Unknown
}

// normalize validates a candidate address and returns its canonical string
// form, or "" if the candidate is not a usable client IP.
func normalize(candidate string) string {
	ip := net.ParseIP(strings.TrimSpace(candidate))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
