// Package clientip extracts real client IP addresses from HTTP requests.
//
// It handles the usual proxy headers in priority order to determine the
// actual client address, which is essential for geolocation and security
// logging in applications behind proxies, load balancers, or CDNs.
//
// # Header Priority
//
// Headers are checked in this order:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost valid address in the chain)
//  4. X-Real-IP (nginx and other proxies)
//  5. X-Client-IP
//  6. RemoteAddr (direct connection)
//
// # Usage
//
//	clientIP := clientip.GetIP(r)
//	location := resolver.Resolve(ctx, clientIP)
//
// All addresses are validated and normalized with net.ParseIP; the
// unspecified address 0.0.0.0 is rejected. IPv6 addresses, including
// IPv4-mapped forms, are handled in all headers. When no valid address can
// be determined the sentinel clientip.Unknown is returned rather than an
// error, matching the best-effort contract of the tracking pipeline.
package clientip
