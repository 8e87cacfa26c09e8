package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	// unknownComponent substitutes missing client hints so the digest input
	// always has the same shape: "userAgent|screenResolution|timezone".
	unknownComponent = "unknown"

	// deviceIDLen is the truncated digest length. 12 hex characters (48 bits)
	// keeps identifiers short enough for logs and dashboards while making
	// accidental collisions unlikely at visitor-tracking scale.
	deviceIDLen = 12
)

// Generate derives a stable device identifier from client-presented metadata.
// Identical inputs always yield the identical identifier; there is no
// randomness and no I/O. Two different inputs collide only with
// cryptographic-hash-collision probability.
//
// Missing fields are substituted with "unknown" so a browser that withholds
// client hints still maps to a stable identity:
//
//	deviceID, info := fingerprint.Generate(r.UserAgent(), "", "")
func Generate(userAgent, screenResolution, timezone string) (string, DeviceInfo) {
	info := DeviceInfo{
		UserAgent:        orUnknown(userAgent),
		ScreenResolution: orUnknown(screenResolution),
		Timezone:         orUnknown(timezone),
	}

	// Join with a pipe delimiter to prevent ambiguity where
	// ["ab", "c"] and ["a", "bc"] would otherwise produce the same digest input.
	combined := strings.Join([]string{info.UserAgent, info.ScreenResolution, info.Timezone}, "|")
	hash := sha256.Sum256([]byte(combined))

	return hex.EncodeToString(hash[:])[:deviceIDLen], info
}

func orUnknown(s string) string {
	if s == "" {
		return unknownComponent
	}
	return s
}
