// Package s3 persists the visitor tracking snapshot as a single JSON object
// in an S3 bucket.
//
// Supports AWS S3 and S3-compatible services (MinIO, Wasabi, DigitalOcean
// Spaces) via custom endpoints and path-style addressing. Credentials fall
// back to the standard AWS resolution chain (IAM roles, environment) when
// not provided explicitly.
//
// Usage:
//
//	var cfg s3.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	store, err := s3.New(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	tracker := visitor.New(ctx, store)
package s3
