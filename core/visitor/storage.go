package visitor

import "context"

// Storage persists the snapshot document. The Tracker is the exclusive
// owner of the stored data: no other component reads or writes it directly.
//
// Save receives the live snapshot while the store lock is held, which keeps
// concurrent mutations from interleaving into a corrupted stored document;
// implementations must serialize synchronously and must not retain the
// pointer after returning. Load is called once at startup.
type Storage interface {
	// Load returns the previously persisted snapshot, or
	// ErrSnapshotNotFound when none exists yet.
	Load(ctx context.Context) (*Snapshot, error)

	// Save writes the whole document. Whole-document rewrite: the previous
	// content is replaced, never partially updated.
	Save(ctx context.Context, snap *Snapshot) error
}

// noopStorage keeps state purely in memory. Used when the Tracker is
// constructed without a backing store (tests, ephemeral deployments).
type noopStorage struct{}

func (noopStorage) Load(context.Context) (*Snapshot, error) {
	return nil, ErrSnapshotNotFound
}

func (noopStorage) Save(context.Context, *Snapshot) error {
	return nil
}
