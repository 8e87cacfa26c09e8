package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/visitortrack/core/visitor"
)

// Compile-time check that Storage implements the visitor storage contract.
var _ visitor.Storage = (*Storage)(nil)

// Storage persists the visitor snapshot as a single JSON file on local disk.
// Writes go through a temp file in the same directory followed by a rename,
// so a crash mid-write never leaves a truncated document behind. The file is
// created with 0600: it contains IP addresses and location traces.
type Storage struct {
	path   string
	pretty bool
}

// Option configures the file storage.
type Option func(*Storage)

// WithPrettyPrint indents the stored JSON. Costs space, helps humans who
// inspect the file.
func WithPrettyPrint() Option {
	return func(s *Storage) {
		s.pretty = true
	}
}

// New creates a file-backed storage at path. The parent directory is created
// if missing.
func New(path string, opts ...Option) (*Storage, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty file path", visitor.ErrInvalidConfig)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create snapshot directory: %w", err)
		}
	}
	s := &Storage{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load reads and decodes the snapshot file.
func (s *Storage) Load(_ context.Context) (*visitor.Snapshot, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, visitor.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var snap visitor.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", visitor.ErrCorruptSnapshot, err)
	}
	return &snap, nil
}

// Save atomically replaces the snapshot file.
func (s *Storage) Save(_ context.Context, snap *visitor.Snapshot) error {
	var (
		b   []byte
		err error
	)
	if s.pretty {
		b, err = json.MarshalIndent(snap, "", "  ")
	} else {
		b, err = json.Marshal(snap)
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp snapshot file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}
	return nil
}
