package visitor

import (
	"time"

	"github.com/dmitrymomot/visitortrack/pkg/fingerprint"
	"github.com/dmitrymomot/visitortrack/pkg/geoip"
)

// Session represents one continuous visit instance by a visitor, bounded by
// start and end. The ID is unique across the lifetime of the store; the
// VisitorID is a stable pseudo-identity supplied by the caller and may map
// to many sessions.
type Session struct {
	ID        string `json:"session_id"`
	VisitorID string `json:"visitor_id"`

	StartTime    time.Time  `json:"start_time"`
	LastActivity time.Time  `json:"last_activity"`
	EndTime      *time.Time `json:"end_time,omitempty"`

	IPAddress  string                 `json:"ip_address"`
	Location   geoip.Location         `json:"location"`
	DeviceID   string                 `json:"device_id"`
	DeviceInfo fingerprint.DeviceInfo `json:"device_info"`

	PageViews int      `json:"page_views"`
	Actions   []Action `json:"actions"`

	// DurationMinutes is derived: recomputed from StartTime on every
	// activity update, never accumulated.
	DurationMinutes float64 `json:"duration_minutes"`

	IsActive bool `json:"is_active"`

	SecurityFlags SecurityFlags `json:"security_flags"`
}

// Action is one entry in the append-only per-session activity sequence.
type Action struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
}

// SecurityFlags are advisory signals raised by heuristics during the session
// lifecycle. Each flag is write-once: set to true and never reset.
type SecurityFlags struct {
	SuspiciousActivity bool `json:"suspicious_activity"`
	MultipleLocations  bool `json:"multiple_locations"`
	RapidRequests      bool `json:"rapid_requests"`
}

// clone returns a deep value copy safe to hand out to readers while the
// original keeps being mutated under the store lock.
func (s *Session) clone() Session {
	out := *s
	if s.EndTime != nil {
		end := *s.EndTime
		out.EndTime = &end
	}
	if s.Actions != nil {
		out.Actions = make([]Action, len(s.Actions))
		copy(out.Actions, s.Actions)
	}
	return out
}
