// Package visitor tracks anonymous visitor sessions for a web application:
// session lifecycle, IP geolocation, device fingerprinting, security
// heuristics, engagement metrics and retention sweeps.
//
// The Tracker is the single entry point. It owns one durable snapshot
// document (persisted whole through a pluggable Storage) and an in-memory
// cache of active sessions. All operations are total: geolocation failures
// degrade to sentinel locations and persistence failures are logged without
// surfacing to callers, so tracking never breaks the serving path.
//
// # Usage
//
//	store, err := file.New("data/sessions.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	tracker := visitor.New(ctx, store,
//		visitor.WithLogger(log),
//		visitor.WithRetentionPolicy(policy),
//	)
//
//	// Per request:
//	sess := tracker.CreateSession(ctx, visitorID, visitor.RequestFromHTTP(r))
//	tracker.UpdateActivity(ctx, sess.ID, "view_change:map")
//	tracker.MaybeCleanup(ctx)
//
// Sessions returned by the Tracker are copies; mutating them has no effect
// on tracked state.
package visitor
