package visitor

import (
	"context"
	"slices"

	"github.com/dmitrymomot/visitortrack/core/logger"
)

// Cleanup removes sessions, login records, security events and location
// visits older than the given number of days, measured against the current
// clock. Active sessions past the cutoff are ended implicitly by removal.
// Returns the number of sessions removed. days <= 0 removes every record
// older than the current instant.
//
// Device fingerprints and the rolling analytics/metrics blocks are never
// swept: they are cumulative by design.
func (t *Tracker) Cleanup(ctx context.Context, days int) int {
	return t.sweep(ctx, days, days)
}

// MaybeCleanup rolls against the configured cleanup frequency and, on a hit,
// runs a retention sweep with the policy thresholds. Reports whether a sweep
// ran. Call it from a request path; the common case is a single integer
// comparison.
func (t *Tracker) MaybeCleanup(ctx context.Context) bool {
	if t.chance() >= t.policy.CleanupFrequencyPercent {
		return false
	}
	t.sweep(ctx, t.policy.SessionRetentionDays, t.policy.SecurityLogRetentionDays)
	return true
}

func (t *Tracker) sweep(ctx context.Context, sessionDays, securityDays int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	sessionCutoff := now.AddDate(0, 0, -sessionDays)
	securityCutoff := now.AddDate(0, 0, -securityDays)

	removed := 0
	for id, sess := range t.data.Sessions {
		if sess.StartTime.Before(sessionCutoff) {
			delete(t.data.Sessions, id)
			delete(t.active, id)
			removed++
		}
	}

	logins := len(t.data.LoginHistory)
	t.data.LoginHistory = slices.DeleteFunc(t.data.LoginHistory, func(r LoginRecord) bool {
		return r.Timestamp.Before(sessionCutoff)
	})
	logins -= len(t.data.LoginHistory)

	events := len(t.data.SecurityEvents)
	t.data.SecurityEvents = slices.DeleteFunc(t.data.SecurityEvents, func(e SecurityEvent) bool {
		return e.Timestamp.Before(securityCutoff)
	})
	events -= len(t.data.SecurityEvents)

	visits := 0
	for visitorID, history := range t.data.LocationHistory {
		before := len(history)
		history = slices.DeleteFunc(history, func(v LocationVisit) bool {
			return v.Timestamp.Before(sessionCutoff)
		})
		visits += before - len(history)
		if len(history) == 0 {
			delete(t.data.LocationHistory, visitorID)
			continue
		}
		t.data.LocationHistory[visitorID] = history
	}

	if removed+logins+events+visits > 0 {
		t.persist(ctx)
	}

	t.log.Info("retention sweep completed",
		logger.Component("tracker"),
		logger.Event("retention_sweep"),
		logger.Count("sessions_removed", removed),
		logger.Count("logins_removed", logins),
		logger.Count("events_removed", events),
		logger.Count("visits_removed", visits))

	return removed
}
