package geoip

import "context"

// Static is a deterministic resolver backed by a fixed table keyed by IP
// address. It is intended for tests and offline environments where the
// network-backed Client cannot be used.
type Static struct {
	locations map[string]Location
}

// NewStatic creates a resolver that answers from the given table. Lookups
// for addresses missing from the table degrade exactly like the real client:
// local addresses resolve to the Local sentinel, everything else to Unknown.
func NewStatic(locations map[string]Location) *Static {
	table := make(map[string]Location, len(locations))
	for ip, loc := range locations {
		table[ip] = loc
	}
	return &Static{locations: table}
}

// Resolve answers from the static table, never touching the network.
func (s *Static) Resolve(_ context.Context, ip string) Location {
	if loc, ok := s.locations[ip]; ok {
		return loc
	}
	if isLocal(ip) {
		return Local()
	}
	return Unknown()
}
