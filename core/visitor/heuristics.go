package visitor

import (
	"time"

	"github.com/dmitrymomot/visitortrack/core/logger"
)

// maxTrustedLocations is how many distinct locations a single device may be
// seen from before the tracker flags it. Two covers the common home/office
// split; a third distinct location is treated as anomalous.
const maxTrustedLocations = 2

// observeDevice updates the per-device record for the new session and runs
// the multiple-locations heuristic. Caller must hold the write lock.
//
// The heuristic fires only when a previously unseen location pushes the
// device past the trusted threshold; repeat visits from an already-known
// location never emit duplicate events.
func (t *Tracker) observeDevice(sess *Session, now time.Time) {
	dev, seen := t.data.Devices[sess.DeviceID]
	if !seen {
		dev = &DeviceRecord{
			FirstSeen:  now,
			DeviceInfo: sess.DeviceInfo,
		}
		t.data.Devices[sess.DeviceID] = dev
	}
	dev.LastSeen = now
	dev.SessionCount++

	known := false
	flagged := false
	key := sess.Location.Key()
	for _, loc := range dev.LocationsUsed {
		if loc.Key() == key {
			known = true
			break
		}
	}
	if !known {
		dev.LocationsUsed = append(dev.LocationsUsed, sess.Location)
		flagged = len(dev.LocationsUsed) > maxTrustedLocations
	}

	if !flagged {
		return
	}

	sess.SecurityFlags.MultipleLocations = true
	t.recordSecurityEvent(SecurityEvent{
		Timestamp: now,
		EventType: EventMultipleLocations,
		SessionID: sess.ID,
		VisitorID: sess.VisitorID,
		Details: map[string]any{
			"device_id":          sess.DeviceID,
			"new_location":       key,
			"previous_locations": len(dev.LocationsUsed) - 1,
		},
	})
}

// recordSecurityEvent appends the event with its derived severity and bumps
// the suspicious-activity counter. Caller must hold the write lock.
func (t *Tracker) recordSecurityEvent(event SecurityEvent) {
	event.Severity = event.EventType.Severity()
	t.data.SecurityEvents = append(t.data.SecurityEvents, event)
	t.data.Analytics.SuspiciousActivities++

	t.log.Warn("security event recorded",
		logger.Component("tracker"),
		logger.Event(string(event.EventType)),
		logger.SessionID(event.SessionID),
		logger.VisitorID(event.VisitorID),
		logger.Severity(string(event.Severity)))
}
