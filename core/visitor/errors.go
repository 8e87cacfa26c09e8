package visitor

import "errors"

var (
	// ErrSnapshotNotFound is returned by Storage implementations when no
	// snapshot has been persisted yet. The Tracker treats it as a normal
	// first-run condition, not a failure.
	ErrSnapshotNotFound = errors.New("visitor snapshot not found")

	// ErrCorruptSnapshot wraps deserialization failures of a persisted
	// snapshot. The Tracker recovers by starting from an empty document.
	ErrCorruptSnapshot = errors.New("corrupt visitor snapshot")

	// ErrInvalidConfig is returned by storage adapters on invalid
	// construction parameters.
	ErrInvalidConfig = errors.New("invalid storage configuration")
)
