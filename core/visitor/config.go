package visitor

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/dmitrymomot/visitortrack/pkg/geoip"
)

// RetentionPolicy controls the retention sweep thresholds. Loadable from the
// environment via core/config.
type RetentionPolicy struct {
	// SessionRetentionDays bounds the age of session, login-history and
	// location-history records.
	SessionRetentionDays int `env:"SESSION_RETENTION_DAYS" envDefault:"90"`

	// SecurityLogRetentionDays bounds the age of security events.
	SecurityLogRetentionDays int `env:"SECURITY_LOG_RETENTION_DAYS" envDefault:"90"`

	// CleanupFrequencyPercent is the chance (0-100) that any given
	// MaybeCleanup call runs a sweep inline.
	CleanupFrequencyPercent int `env:"CLEANUP_FREQUENCY_PERCENT" envDefault:"1"`
}

// defaultRetentionPolicy mirrors the envDefault values for callers that
// construct a Tracker without touching the environment.
func defaultRetentionPolicy() RetentionPolicy {
	return RetentionPolicy{
		SessionRetentionDays:     90,
		SecurityLogRetentionDays: 90,
		CleanupFrequencyPercent:  1,
	}
}

// Option is a functional option for configuring the Tracker.
type Option func(*Tracker)

// WithResolver sets the geolocation resolver. Defaults to the network-backed
// ip-api.com client; tests inject geoip.NewStatic.
func WithResolver(r geoip.Resolver) Option {
	return func(t *Tracker) {
		if r != nil {
			t.resolver = r
		}
	}
}

// WithLogger sets the logger for operational events.
func WithLogger(log *slog.Logger) Option {
	return func(t *Tracker) {
		if log != nil {
			t.log = log
		}
	}
}

// WithRetentionPolicy sets the thresholds used by MaybeCleanup sweeps.
func WithRetentionPolicy(policy RetentionPolicy) Option {
	return func(t *Tracker) {
		t.policy = policy
	}
}

// WithClock replaces the time source. Test seam: lets retention and
// duration tests move the clock deterministically.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithChance replaces the probabilistic sweep roll, which must return a
// value in [0, 100). Test seam for MaybeCleanup.
func WithChance(chance func() int) Option {
	return func(t *Tracker) {
		if chance != nil {
			t.chance = chance
		}
	}
}

func defaultClock() time.Time {
	return time.Now().UTC()
}

func defaultChance() int {
	return rand.IntN(100)
}
