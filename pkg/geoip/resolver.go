package geoip

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Resolver resolves a client IP address to an approximate location.
// Implementations never return an error: failures degrade to the Unknown
// sentinel so the write path of callers stays total.
type Resolver interface {
	Resolve(ctx context.Context, ip string) Location
}

// Config holds lookup service settings, loadable from the environment.
type Config struct {
	BaseURL string        `env:"GEOIP_BASE_URL" envDefault:"http://ip-api.com/json"`
	Timeout time.Duration `env:"GEOIP_TIMEOUT" envDefault:"5s"`
}

// Client resolves locations via the ip-api.com JSON endpoint. It issues a
// single outbound lookup per call with a hard timeout and no retries.
// Thread-safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for lookups.
// Useful for proxy configuration or test doubles.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the lookup endpoint. The IP address is appended as a
// path segment, matching the ip-api.com URL scheme.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout caps the lookup duration. Values above 5s are not recommended:
// the resolver sits on the session creation path.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates an ip-api.com backed resolver with a 5 second default timeout.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    "http://ip-api.com/json",
		timeout:    5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a resolver from environment-derived configuration.
func NewFromConfig(cfg Config) *Client {
	return New(WithBaseURL(cfg.BaseURL), WithTimeout(cfg.Timeout))
}

// lookupResponse mirrors the ip-api.com JSON payload.
type lookupResponse struct {
	Status     string  `json:"status"`
	Country    string  `json:"country"`
	RegionName string  `json:"regionName"`
	City       string  `json:"city"`
	Timezone   string  `json:"timezone"`
	ISP        string  `json:"isp"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

// Resolve maps an IP address to a location. Loopback, unspecified, empty and
// "unknown" addresses short-circuit to the Local sentinel without a network
// call. Any lookup failure degrades to the Unknown sentinel; this method
// never propagates an error or a context cancellation to the caller.
func (c *Client) Resolve(ctx context.Context, ip string) Location {
	if isLocal(ip) {
		return Local()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(ip), nil)
	if err != nil {
		return Unknown()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Unknown()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unknown()
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Unknown()
	}
	if payload.Status != "success" {
		return Unknown()
	}

	loc := Unknown()
	if payload.Country != "" {
		loc.Country = payload.Country
	}
	if payload.RegionName != "" {
		loc.Region = payload.RegionName
	}
	if payload.City != "" {
		loc.City = payload.City
	}
	if payload.Timezone != "" {
		loc.Timezone = payload.Timezone
	}
	if payload.ISP != "" {
		loc.ISP = payload.ISP
	}
	lat, lon := payload.Lat, payload.Lon
	loc.Latitude = &lat
	loc.Longitude = &lon

	return loc
}

// isLocal reports whether the address should resolve to the Local sentinel
// without an outbound lookup.
func isLocal(ip string) bool {
	switch ip {
	case "", "unknown", "localhost":
		return true
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		// Unparseable addresses are treated as local input noise rather
		// than being sent upstream.
		return true
	}

	return parsed.IsLoopback() || parsed.IsUnspecified()
}
