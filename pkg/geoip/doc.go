// Package geoip resolves client IP addresses to approximate geographic
// locations for visitor analytics and advisory security checks.
//
// The package is built around a small Resolver interface so the
// network-backed implementation can be swapped for a deterministic stub in
// tests. Resolution is strictly best-effort: a Resolver never returns an
// error, and every failure mode degrades to a sentinel Location.
//
// # Sentinels
//
// Two sentinel locations cover the non-lookup paths:
//
//   - Local(): loopback, unspecified, empty, and "unknown" addresses.
//     Returned without any network call.
//   - Unknown(): lookup timeout, non-success status, malformed payload, or
//     an address the upstream service cannot place. A valid, final answer,
//     not a transient error.
//
// # Usage
//
//	resolver := geoip.New(geoip.WithTimeout(5 * time.Second))
//	loc := resolver.Resolve(ctx, "8.8.8.8")
//	fmt.Println(loc.Key()) // "Mountain View, United States"
//
// The Client issues a single GET to the ip-api.com JSON endpoint per call
// with a hard timeout and no retries. It should be called before acquiring
// any store lock: it is the only potentially slow operation on the session
// creation path.
//
// For tests, NewStatic provides a table-driven resolver with identical
// degradation behavior.
package geoip
