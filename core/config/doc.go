// Package config provides type-safe environment variable loading with
// caching using Go generics. Each configuration type is loaded once and
// cached for subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/visitortrack/core/config"
//
//	type RetentionConfig struct {
//		SessionDays     int `env:"SESSION_RETENTION_DAYS" envDefault:"90"`
//		CleanupPercent  int `env:"CLEANUP_FREQUENCY_PERCENT" envDefault:"1"`
//	}
//
//	func main() {
//		var cfg RetentionConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime;
// different types are cached independently. This makes configuration structs
// safe to load from any package without coordinating initialization order.
package config
