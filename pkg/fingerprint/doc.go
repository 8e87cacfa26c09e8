// Package fingerprint derives stable device identifiers from client-presented
// metadata for visitor analytics and advisory security checks.
//
// The identifier is a deterministic 12-character hex digest of the User-Agent
// plus optional client hints (screen resolution, timezone). It is a weak
// device identity: good enough to group sessions by browser instance and to
// spot a fingerprint reused from several geographic locations, but not an
// authentication or enforcement mechanism.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/visitortrack/pkg/fingerprint"
//
//	deviceID, info := fingerprint.Generate(userAgent, screenRes, timezone)
//	// deviceID: "3f2a9c1b4d8e" (stable for identical inputs)
//	// info: the exact components that went into the digest
//
// # Determinism
//
// Generate is a pure function. Missing fields are substituted with "unknown"
// before hashing, so the same browser produces the same identifier whether or
// not it supplies client hints, and the digest input always has the same
// shape. Collisions between different inputs are possible only with
// cryptographic-hash-collision probability, which is acceptable for
// analytics-grade identity.
//
// # Limitations
//
// Device fingerprinting has inherent limits:
//   - Browser updates change User-Agent strings
//   - Users can modify or block client hints
//   - Identical corporate desktop fleets may share a fingerprint
//
// Treat matches and mismatches as signals, not facts.
package fingerprint
