package visitor

import (
	"time"

	"github.com/dmitrymomot/visitortrack/pkg/fingerprint"
	"github.com/dmitrymomot/visitortrack/pkg/geoip"
)

// RequestContext carries the per-visit client metadata supplied by the
// presentation layer. ScreenResolution and Timezone are optional client
// hints; missing values still produce a stable device identity.
type RequestContext struct {
	IP               string
	UserAgent        string
	ScreenResolution string
	Timezone         string
}

// DeviceRecord is the registry entry for one unique device fingerprint.
// LocationsUsed is append-only and deduplicated by "city, country"; it never
// shrinks, even when sessions are swept by retention.
type DeviceRecord struct {
	FirstSeen     time.Time              `json:"first_seen"`
	LastSeen      time.Time              `json:"last_seen"`
	DeviceInfo    fingerprint.DeviceInfo `json:"device_info"`
	SessionCount  int                    `json:"session_count"`
	LocationsUsed []geoip.Location       `json:"locations_used"`
}

func (d *DeviceRecord) clone() DeviceRecord {
	out := *d
	if d.LocationsUsed != nil {
		out.LocationsUsed = make([]geoip.Location, len(d.LocationsUsed))
		copy(out.LocationsUsed, d.LocationsUsed)
	}
	return out
}

// EventType classifies security events.
type EventType string

const (
	EventMultipleLocations  EventType = "multiple_locations"
	EventRapidRequests      EventType = "rapid_requests"
	EventSuspiciousActivity EventType = "suspicious_activity"
	EventSessionHijacking   EventType = "session_hijacking"
)

// Severity is the advisory weight of a security event.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severity maps an event type to its fixed severity. Unrecognized types
// default to low.
func (t EventType) Severity() Severity {
	switch t {
	case EventMultipleLocations:
		return SeverityMedium
	case EventRapidRequests:
		return SeverityLow
	case EventSuspiciousActivity:
		return SeverityHigh
	case EventSessionHijacking:
		return SeverityCritical
	default:
		return SeverityLow
	}
}

// SecurityEvent is an immutable advisory audit record. It flags an anomalous
// pattern; it is not an enforcement action.
type SecurityEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	EventType EventType      `json:"event_type"`
	SessionID string         `json:"session_id"`
	VisitorID string         `json:"visitor_id"`
	Details   map[string]any `json:"details"`
	Severity  Severity       `json:"severity"`
}

func (e SecurityEvent) clone() SecurityEvent {
	out := e
	if e.Details != nil {
		out.Details = make(map[string]any, len(e.Details))
		for k, v := range e.Details {
			out.Details[k] = v
		}
	}
	return out
}

// LoginRecord is an immutable append-only audit entry written once per
// session creation. Used only for export and audit, never mutated.
type LoginRecord struct {
	Timestamp time.Time      `json:"timestamp"`
	VisitorID string         `json:"visitor_id"`
	SessionID string         `json:"session_id"`
	IPAddress string         `json:"ip_address"`
	Location  geoip.Location `json:"location"`
	DeviceID  string         `json:"device_id"`
	Method    string         `json:"login_method"`
}

// LocationVisit is one entry in a visitor's location history.
type LocationVisit struct {
	Timestamp time.Time      `json:"timestamp"`
	Location  geoip.Location `json:"location"`
	IPAddress string         `json:"ip_address"`
	SessionID string         `json:"session_id"`
}
