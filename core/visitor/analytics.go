package visitor

import "strings"

// topN bounds every popular-items ranking.
const topN = 10

// Action label prefixes routed into dedicated popularity counters. Anything
// else counts under the generic actions ranking.
const (
	actionDataSourceChange = "data_source_change"
	actionViewChange       = "view_change"
)

// recordAction routes an action label into the popularity counters. Labels of
// the form "data_source_change:<name>" and "view_change:<name>" feed the
// data-source and view rankings by the suffix; every label also counts in the
// generic actions ranking under its full text.
func (m *Metrics) recordAction(action string) {
	m.Actions.Inc(action)

	kind, value, ok := strings.Cut(action, ":")
	if !ok || value == "" {
		return
	}
	switch kind {
	case actionDataSourceChange:
		m.DataSources.Inc(value)
	case actionViewChange:
		m.Views.Inc(value)
	}
}

// SummaryStats is the aggregate engagement and security view of all tracked
// state, computed on demand.
type SummaryStats struct {
	UniqueVisitors            int     `json:"unique_visitors"`
	TotalPageViews            int     `json:"total_page_views"`
	TotalSessions             int     `json:"total_sessions"`
	ActiveSessions            int     `json:"active_sessions"`
	TotalLogins               int     `json:"total_logins"`
	UniqueLocations           int     `json:"unique_locations"`
	UniqueDevices             int     `json:"unique_devices"`
	AvgSessionDurationMinutes float64 `json:"avg_session_duration_minutes"`
	SecurityEventCount        int     `json:"security_event_count"`
}

// PopularItems holds the top-ranked data sources, views and actions, each
// limited to the ten highest counts. Ties preserve first-seen order.
type PopularItems struct {
	DataSources []CounterItem `json:"data_sources"`
	Views       []CounterItem `json:"views"`
	Actions     []CounterItem `json:"actions"`
}

// Stats computes the aggregate summary over the current state. The average
// session duration considers only sessions with a recorded duration; with no
// such sessions it reports zero.
func (t *Tracker) Stats() SummaryStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var durationSum float64
	var durationCount int
	for _, sess := range t.data.Sessions {
		if sess.DurationMinutes > 0 {
			durationSum += sess.DurationMinutes
			durationCount++
		}
	}
	var avg float64
	if durationCount > 0 {
		avg = round2(durationSum / float64(durationCount))
	}

	return SummaryStats{
		UniqueVisitors:            t.data.Metrics.UniqueVisitors.Len(),
		TotalPageViews:            t.data.Metrics.TotalPageViews,
		TotalSessions:             len(t.data.Sessions),
		ActiveSessions:            len(t.active),
		TotalLogins:               t.data.Analytics.TotalLogins,
		UniqueLocations:           t.data.Analytics.UniqueLocations.Len(),
		UniqueDevices:             t.data.Analytics.UniqueDevices.Len(),
		AvgSessionDurationMinutes: avg,
		SecurityEventCount:        len(t.data.SecurityEvents),
	}
}

// Popular returns the top-ten rankings for data sources, views and actions.
func (t *Tracker) Popular() PopularItems {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return PopularItems{
		DataSources: t.data.Metrics.DataSources.Top(topN),
		Views:       t.data.Metrics.Views.Top(topN),
		Actions:     t.data.Metrics.Actions.Top(topN),
	}
}

// recentEventsCap bounds the event sample included in a security summary.
const recentEventsCap = 10

// SecuritySummary aggregates security events: TotalEvents counts every
// recorded event regardless of age, while RecentEventCount, ByType,
// BySeverity and RecentEvents cover only the last windowDays days.
// RecentEvents holds the last ten in-window events in chronological order.
type SecuritySummary struct {
	WindowDays           int             `json:"window_days"`
	TotalEvents          int             `json:"total_events"`
	RecentEventCount     int             `json:"recent_event_count"`
	ByType               map[string]int  `json:"by_type"`
	BySeverity           map[string]int  `json:"by_severity"`
	SuspiciousActivities int             `json:"suspicious_activities"`
	UniqueLocations      int             `json:"unique_locations"`
	UniqueDevices        int             `json:"unique_devices"`
	RecentEvents         []SecurityEvent `json:"recent_events"`
}

// Security returns a summary of security events. windowDays bounds the
// recent-event breakdown; <= 0 defaults to 30.
func (t *Tracker) Security(windowDays int) SecuritySummary {
	if windowDays <= 0 {
		windowDays = 30
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	cutoff := t.now().AddDate(0, 0, -windowDays)
	summary := SecuritySummary{
		WindowDays:           windowDays,
		TotalEvents:          len(t.data.SecurityEvents),
		ByType:               make(map[string]int),
		BySeverity:           make(map[string]int),
		SuspiciousActivities: t.data.Analytics.SuspiciousActivities,
		UniqueLocations:      t.data.Analytics.UniqueLocations.Len(),
		UniqueDevices:        t.data.Analytics.UniqueDevices.Len(),
	}
	for _, event := range t.data.SecurityEvents {
		if event.Timestamp.Before(cutoff) {
			continue
		}
		summary.RecentEventCount++
		summary.ByType[string(event.EventType)]++
		summary.BySeverity[string(event.Severity)]++
		summary.RecentEvents = append(summary.RecentEvents, event.clone())
	}
	if len(summary.RecentEvents) > recentEventsCap {
		summary.RecentEvents = summary.RecentEvents[len(summary.RecentEvents)-recentEventsCap:]
	}
	return summary
}
