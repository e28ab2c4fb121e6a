package writer

import (
	"os"
	"sync"
	"time"

	"jwright/internal/model"
)

// BackupStore is a LIFO stack of file snapshots. Unlike a map-keyed
// transaction, it never dedupes by path: snapshotting the same path twice
// pushes a second record, and revertAll unwinds the stack in LIFO order so
// the oldest recorded state wins at each path.
type BackupStore struct {
	mu        sync.Mutex
	snapshots []model.Snapshot
}

// NewBackupStore returns an empty store.
func NewBackupStore() *BackupStore {
	return &BackupStore{}
}

// Snapshot reads the current bytes of path and pushes a record. It is not
// an error for path not to exist yet (a CREATE write mode may target a new
// file); in that case the pushed record has a nil Bytes slice and
// RevertLast/RevertAll remove the file instead of writing to it.
func (b *BackupStore) Snapshot(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			data = nil
		} else {
			return err
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshots = append(b.snapshots, model.Snapshot{
		Path:      path,
		Bytes:     data,
		Timestamp: time.Now(),
	})
	return nil
}

// RevertLast pops the top record and writes its bytes back (or removes the
// file, if the record predates the file's existence). It is a no-op on an
// empty stack.
func (b *BackupStore) RevertLast() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revertLastLocked()
}

func (b *BackupStore) revertLastLocked() error {
	n := len(b.snapshots)
	if n == 0 {
		return nil
	}
	rec := b.snapshots[n-1]
	b.snapshots = b.snapshots[:n-1]
	return restore(rec)
}

// RevertAll pops records until the stack is empty, writing each in turn
// (LIFO order: the most recent snapshot is restored first, so the oldest
// recorded state at any given path is the one left standing).
func (b *BackupStore) RevertAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var firstErr error
	for len(b.snapshots) > 0 {
		if err := b.revertLastLocked(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Commit discards all records without writing. A no-op on an empty stack.
func (b *BackupStore) Commit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshots = nil
}

// Count exposes the current stack depth, for tests.
func (b *BackupStore) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.snapshots)
}

func restore(rec model.Snapshot) error {
	if rec.Bytes == nil {
		if _, err := os.Stat(rec.Path); err == nil {
			return os.Remove(rec.Path)
		}
		return nil
	}
	return os.WriteFile(rec.Path, rec.Bytes, 0644)
}
