// Package logger provides structured logging utilities built on Go's
// standard slog package: a factory with environment presets and a set of
// pre-built attributes for the tracking domain.
//
// Create loggers using the factory function with functional options:
//
//	import "github.com/dmitrymomot/visitortrack/core/logger"
//
//	// Development: text format, debug level
//	log := logger.New(logger.WithDevelopment("visitortrack"))
//
//	// Production: JSON format, info level
//	log := logger.New(
//		logger.WithProduction("visitortrack"),
//		logger.WithAttr(slog.String("region", "eu-1")),
//	)
//
//	log.Info("session created",
//		logger.Component("tracker"),
//		logger.SessionID(id),
//		logger.ClientIP(ip),
//	)
//
// Attribute helpers follow the empty-Attr pattern: passing a nil error or an
// empty identifier yields an attribute that slog silently drops, so call
// sites never need nil checks.
package logger
