package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"podigest/article"
)

// Snapshot is a persisted copy of a previously captured article collection,
// used as a last-resort seed when live refresh is unavailable.
type Snapshot struct {
	// CapturedAt is when the collection was fetched from the source.
	CapturedAt time.Time `json:"captured_at"`
	// Articles is the collection in sorted order.
	Articles []article.Article `json:"articles"`
}

// SnapshotStore reads and writes the snapshot file.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a store at the given path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Load reads the snapshot. A missing file returns os.ErrNotExist.
func (s *SnapshotStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", s.path, err)
	}
	return &snap, nil
}

// Save writes the snapshot atomically via temp file + rename, so a crash
// mid-write never leaves a truncated snapshot behind.
func (s *SnapshotStore) Save(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	w, err := newAtomicWriter(s.path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Abort()
		return fmt.Errorf("write snapshot: %w", err)
	}
	return w.Commit()
}

// atomicWriter writes a file via a temp file in the target directory and an
// atomic rename on commit.
type atomicWriter struct {
	path    string
	tmpPath string
	file    *os.File
}

func newAtomicWriter(path string) (*atomicWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".podigest-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &atomicWriter{path: path, tmpPath: tmpFile.Name(), file: tmpFile}, nil
}

func (w *atomicWriter) Write(p []byte) (int, error) {
	return w.file.Write(p)
}

// Commit syncs the temp file and renames it over the target.
func (w *atomicWriter) Commit() error {
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(w.tmpPath, w.path); err != nil {
		os.Remove(w.tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Abort discards the temp file without committing.
func (w *atomicWriter) Abort() error {
	w.file.Close()
	return os.Remove(w.tmpPath)
}
