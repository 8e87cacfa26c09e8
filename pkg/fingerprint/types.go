package fingerprint

// DeviceInfo holds the raw components a device identifier was derived from.
// Fields that were missing on input are recorded as "unknown" so the stored
// record matches the digest input exactly.
type DeviceInfo struct {
	UserAgent        string `json:"user_agent"`
	ScreenResolution string `json:"screen_resolution"`
	Timezone         string `json:"timezone"`
}
