package visitor

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/visitortrack/core/logger"
	"github.com/dmitrymomot/visitortrack/pkg/fingerprint"
	"github.com/dmitrymomot/visitortrack/pkg/geoip"
)

// loginMethod tags every login-history record; the tracker only observes
// browser visits.
const loginMethod = "browser_session"

// Tracker owns all visitor tracking state: the durable snapshot document and
// the in-memory active-session cache. All mutation is serialized through a
// single lock held for the duration of the mutation plus the persistence
// write; readers take the same lock and receive copies.
//
// Every public operation is total: failures degrade (unknown location,
// logged persistence errors) rather than propagate. Construct one Tracker at
// process start and pass it by reference to every handler; there is no
// package-level instance.
type Tracker struct {
	mu sync.RWMutex

	storage  Storage
	resolver geoip.Resolver
	log      *slog.Logger
	policy   RetentionPolicy
	now      func() time.Time
	chance   func() int

	data *Snapshot

	// active is a derived, disposable view of sessions with IsActive=true,
	// keyed by session id. Dropped on shutdown and rebuilt from the durable
	// document on startup.
	active map[string]*Session
}

// New creates a Tracker backed by the given storage. A nil storage keeps all
// state in memory only. The previously persisted snapshot is loaded and
// migrated; a missing or malformed document degrades to an empty default and
// never blocks startup.
func New(ctx context.Context, storage Storage, opts ...Option) *Tracker {
	t := &Tracker{
		storage:  storage,
		resolver: geoip.New(),
		log:      slog.New(slog.DiscardHandler),
		policy:   defaultRetentionPolicy(),
		now:      defaultClock,
		chance:   defaultChance,
		active:   make(map[string]*Session),
	}
	if t.storage == nil {
		t.storage = noopStorage{}
	}
	for _, opt := range opts {
		opt(t)
	}

	t.data = t.loadSnapshot(ctx)
	for id, sess := range t.data.Sessions {
		if sess.IsActive {
			t.active[id] = sess
		}
	}

	return t
}

func (t *Tracker) loadSnapshot(ctx context.Context) *Snapshot {
	snap, err := t.storage.Load(ctx)
	switch {
	case err == nil:
		snap.migrate(t.now())
		return snap
	case errors.Is(err, ErrSnapshotNotFound):
		t.log.Debug("no visitor snapshot found, starting empty",
			logger.Component("tracker"))
	default:
		t.log.Warn("failed to load visitor snapshot, starting empty",
			logger.Component("tracker"),
			logger.Error(err))
	}
	return newSnapshot(t.now())
}

// CreateSession registers a new visit for visitorID and returns the created
// record. It never rejects a visitor: geolocation degrades to a sentinel and
// persistence failures are logged without rolling back the in-memory state.
//
// Geolocation is resolved before the store lock is acquired so a slow lookup
// never blocks unrelated concurrent sessions.
func (t *Tracker) CreateSession(ctx context.Context, visitorID string, rc RequestContext) Session {
	ip := rc.IP
	if ip == "" {
		ip = "unknown"
	}
	location := t.resolver.Resolve(ctx, ip)
	deviceID, deviceInfo := fingerprint.Generate(rc.UserAgent, rc.ScreenResolution, rc.Timezone)

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	sess := &Session{
		ID:           uuid.NewString(),
		VisitorID:    visitorID,
		StartTime:    now,
		LastActivity: now,
		IPAddress:    ip,
		Location:     location,
		DeviceID:     deviceID,
		DeviceInfo:   deviceInfo,
		PageViews:    1,
		Actions:      []Action{},
		IsActive:     true,
	}

	t.data.Sessions[sess.ID] = sess
	t.active[sess.ID] = sess

	t.data.LoginHistory = append(t.data.LoginHistory, LoginRecord{
		Timestamp: now,
		VisitorID: visitorID,
		SessionID: sess.ID,
		IPAddress: ip,
		Location:  location,
		DeviceID:  deviceID,
		Method:    loginMethod,
	})

	t.data.Analytics.TotalLogins++
	t.data.Analytics.UniqueLocations.Add(location.Key())
	t.data.Analytics.UniqueDevices.Add(deviceID)
	t.data.Metrics.UniqueVisitors.Add(visitorID)
	t.data.Metrics.TotalPageViews++

	t.observeDevice(sess, now)

	t.data.LocationHistory[visitorID] = append(t.data.LocationHistory[visitorID], LocationVisit{
		Timestamp: now,
		Location:  location,
		IPAddress: ip,
		SessionID: sess.ID,
	})

	t.persist(ctx)

	t.log.Info("session created",
		logger.Component("tracker"),
		logger.Event("session_created"),
		logger.SessionID(sess.ID),
		logger.VisitorID(visitorID),
		logger.ClientIP(ip),
		logger.DeviceID(deviceID),
		logger.LocationKey(location.Key()))

	return sess.clone()
}

// UpdateActivity records activity on a session: bumps last-activity and page
// views, recomputes the derived duration, and appends the optional action
// label. Unknown or already-ended sessions are a silent no-op (debug logged).
func (t *Tracker) UpdateActivity(ctx context.Context, sessionID, action string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, ok := t.active[sessionID]
	if !ok || !sess.IsActive {
		t.log.Debug("activity update for unknown or inactive session",
			logger.Component("tracker"),
			logger.SessionID(sessionID))
		return
	}

	now := t.now()
	sess.LastActivity = now
	sess.DurationMinutes = round2(now.Sub(sess.StartTime).Minutes())
	sess.PageViews++
	t.data.Metrics.TotalPageViews++

	if action != "" {
		sess.Actions = append(sess.Actions, Action{Timestamp: now, Action: action})
		t.data.Metrics.recordAction(action)
	}

	t.persist(ctx)
}

// EndSession marks a session inactive and stamps its end time. Idempotent:
// a second call changes nothing.
func (t *Tracker) EndSession(ctx context.Context, sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, ok := t.active[sessionID]
	if !ok || !sess.IsActive {
		return
	}

	now := t.now()
	sess.IsActive = false
	sess.EndTime = &now
	delete(t.active, sessionID)

	t.persist(ctx)

	t.log.Info("session ended",
		logger.Component("tracker"),
		logger.Event("session_ended"),
		logger.SessionID(sessionID),
		logger.Key("duration_minutes", sess.DurationMinutes))
}

// GetSession returns a copy of the session record, if it exists.
func (t *Tracker) GetSession(sessionID string) (Session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	sess, ok := t.data.Sessions[sessionID]
	if !ok {
		return Session{}, false
	}
	return sess.clone(), true
}

// GetVisitorSessions returns all sessions for a visitor, newest first.
func (t *Tracker) GetVisitorSessions(visitorID string) []Session {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var sessions []Session
	for _, sess := range t.data.Sessions {
		if sess.VisitorID == visitorID {
			sessions = append(sessions, sess.clone())
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
	return sessions
}

// GetLocationHistory returns the recorded location visits for a visitor in
// chronological order.
func (t *Tracker) GetLocationHistory(visitorID string) []LocationVisit {
	t.mu.RLock()
	defer t.mu.RUnlock()

	visits := t.data.LocationHistory[visitorID]
	out := make([]LocationVisit, len(visits))
	copy(out, visits)
	return out
}

// Export returns a deep serializable copy of the entire durable state plus
// an export timestamp. Read-only: the live state is not mutated.
func (t *Tracker) Export(ctx context.Context) Export {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return Export{
		Snapshot:   t.data.clone(),
		ExportedAt: t.now(),
	}
}

// persist writes the snapshot through the configured storage. Caller must
// hold the write lock. A write failure is logged and the in-memory mutation
// is retained: durability is best-effort and the operation is considered to
// have succeeded from the caller's perspective.
func (t *Tracker) persist(ctx context.Context) {
	t.data.Meta.UpdatedAt = t.now()
	if err := t.storage.Save(ctx, t.data); err != nil {
		t.log.Error("failed to persist visitor snapshot",
			logger.Component("tracker"),
			logger.Error(err))
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
