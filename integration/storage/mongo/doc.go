// Package mongo persists the visitor tracking snapshot as a single document
// in a MongoDB collection.
//
// The package wraps the official MongoDB Go driver with application-level
// retry logic tuned for managed deployments, particularly MongoDB Atlas,
// where cold starts and brief network interruptions could otherwise fail
// application startup.
//
// The snapshot is stored as raw JSON bytes under a fixed _id rather than as
// nested BSON: the stored shape stays byte-identical with the file, redis and
// s3 adapters, and BSON's restrictions on map keys never apply.
//
// Usage:
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	store, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	tracker := visitor.New(ctx, store)
package mongo
