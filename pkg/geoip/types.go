package geoip

// Location is an approximate, best-effort geographic position derived from a
// client IP address. Every field may be a sentinel value; callers must treat
// "Unknown" as a valid, final answer rather than a transient error.
type Location struct {
	Country   string   `json:"country"`
	Region    string   `json:"region"`
	City      string   `json:"city"`
	Timezone  string   `json:"timezone"`
	ISP       string   `json:"isp"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Key returns the "City, Country" string used to deduplicate locations in
// device history and unique-location analytics.
func (l Location) Key() string {
	return l.City + ", " + l.Country
}

// Local is the sentinel for loopback and unspecified addresses. Resolvers
// return it without any network call.
func Local() Location {
	return sentinel("Local")
}

// Unknown is the sentinel for every lookup failure: timeout, non-success
// status, malformed payload, or an address the upstream service cannot place.
func Unknown() Location {
	return sentinel("Unknown")
}

func sentinel(v string) Location {
	return Location{
		Country:  v,
		Region:   v,
		City:     v,
		Timezone: v,
		ISP:      v,
	}
}
