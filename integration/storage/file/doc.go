// Package file persists the visitor tracking snapshot as a single JSON file
// on local disk with atomic replace semantics.
//
// This is the default storage for single-instance deployments: zero external
// dependencies, human-inspectable state, and crash safety via write-to-temp
// plus rename. For multi-instance deployments use the redis, mongo or s3
// adapters instead; the file adapter has no cross-process coordination.
//
// Usage:
//
//	store, err := file.New("data/sessions.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	tracker := visitor.New(ctx, store)
package file
