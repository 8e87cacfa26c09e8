package visitor

import "time"

// schemaVersion stamps every persisted snapshot. Bump when the document
// layout changes in a way migrate cannot absorb implicitly.
const schemaVersion = "1.0"

// Snapshot is the single durable document owned by the Tracker: five named
// collections, the rolling analytics and metrics blocks, and a metadata
// block. It is rewritten whole on every mutation (last-writer-wins at
// document granularity, never partial updates).
type Snapshot struct {
	Sessions        map[string]*Session        `json:"user_sessions"`
	LoginHistory    []LoginRecord              `json:"login_history"`
	SecurityEvents  []SecurityEvent            `json:"security_events"`
	Devices         map[string]*DeviceRecord   `json:"device_fingerprints"`
	LocationHistory map[string][]LocationVisit `json:"location_history"`
	Analytics       Analytics                  `json:"session_analytics"`
	Metrics         Metrics                    `json:"visitor_metrics"`
	Meta            Meta                       `json:"metadata"`
}

// Meta describes the snapshot document itself.
type Meta struct {
	CreatedAt time.Time `json:"created_date"`
	UpdatedAt time.Time `json:"last_updated"`
	Version   string    `json:"version"`
}

// Analytics is the rolling security-oriented counter block. All fields are
// monotonic: retention sweeps remove records but never shrink these.
type Analytics struct {
	TotalLogins          int       `json:"total_logins"`
	SuspiciousActivities int       `json:"suspicious_activities"`
	UniqueLocations      StringSet `json:"unique_locations"`
	UniqueDevices        StringSet `json:"unique_devices"`
}

// Metrics is the rolling visitor-engagement block feeding summary stats and
// popular-item rankings. Monotonic, like Analytics.
type Metrics struct {
	UniqueVisitors StringSet `json:"unique_visitors"`
	TotalPageViews int       `json:"total_page_views"`
	DataSources    Counter   `json:"popular_data_sources"`
	Views          Counter   `json:"popular_views"`
	Actions        Counter   `json:"user_actions"`
}

// newSnapshot returns an empty document stamped at now.
func newSnapshot(now time.Time) *Snapshot {
	s := &Snapshot{}
	s.migrate(now)
	return s
}

// migrate fills in any block missing from an older or hand-edited document
// and stamps the schema version, so business logic always runs against a
// fully-populated structure. Invoked once at load time.
func (s *Snapshot) migrate(now time.Time) {
	if s.Sessions == nil {
		s.Sessions = make(map[string]*Session)
	}
	if s.LoginHistory == nil {
		s.LoginHistory = []LoginRecord{}
	}
	if s.SecurityEvents == nil {
		s.SecurityEvents = []SecurityEvent{}
	}
	if s.Devices == nil {
		s.Devices = make(map[string]*DeviceRecord)
	}
	if s.LocationHistory == nil {
		s.LocationHistory = make(map[string][]LocationVisit)
	}
	if s.Meta.CreatedAt.IsZero() {
		s.Meta.CreatedAt = now
	}
	s.Meta.Version = schemaVersion
}

// clone returns a deep copy safe to serialize or hand out while the
// original keeps being mutated under the store lock.
func (s *Snapshot) clone() Snapshot {
	out := Snapshot{
		Sessions:        make(map[string]*Session, len(s.Sessions)),
		LoginHistory:    make([]LoginRecord, len(s.LoginHistory)),
		SecurityEvents:  make([]SecurityEvent, 0, len(s.SecurityEvents)),
		Devices:         make(map[string]*DeviceRecord, len(s.Devices)),
		LocationHistory: make(map[string][]LocationVisit, len(s.LocationHistory)),
		Analytics: Analytics{
			TotalLogins:          s.Analytics.TotalLogins,
			SuspiciousActivities: s.Analytics.SuspiciousActivities,
			UniqueLocations:      s.Analytics.UniqueLocations.clone(),
			UniqueDevices:        s.Analytics.UniqueDevices.clone(),
		},
		Metrics: Metrics{
			UniqueVisitors: s.Metrics.UniqueVisitors.clone(),
			TotalPageViews: s.Metrics.TotalPageViews,
			DataSources:    s.Metrics.DataSources.clone(),
			Views:          s.Metrics.Views.clone(),
			Actions:        s.Metrics.Actions.clone(),
		},
		Meta: s.Meta,
	}
	for id, sess := range s.Sessions {
		copied := sess.clone()
		out.Sessions[id] = &copied
	}
	copy(out.LoginHistory, s.LoginHistory)
	for _, event := range s.SecurityEvents {
		out.SecurityEvents = append(out.SecurityEvents, event.clone())
	}
	for id, dev := range s.Devices {
		copied := dev.clone()
		out.Devices[id] = &copied
	}
	for visitorID, visits := range s.LocationHistory {
		copied := make([]LocationVisit, len(visits))
		copy(copied, visits)
		out.LocationHistory[visitorID] = copied
	}
	return out
}

// Export is a serializable copy of the entire durable state plus the export
// timestamp, suitable for download and audit.
type Export struct {
	Snapshot
	ExportedAt time.Time `json:"export_timestamp"`
}
