// Package redis persists the visitor tracking snapshot in Redis under a
// single key, for deployments where local disk is ephemeral.
//
// The package wraps the go-redis client with connection validation and retry
// logic for reliable startup against managed Redis services. The snapshot is
// stored as one JSON value: whole-document GET/SET keeps the stored shape
// identical to the file, mongo and s3 adapters.
//
// Usage:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	store, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	tracker := visitor.New(ctx, store)
//
// Connection URLs follow the standard redis:// and rediss:// (TLS) schemes.
package redis
