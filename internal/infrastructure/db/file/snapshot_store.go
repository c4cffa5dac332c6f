// Package file persists store snapshots as JSON files replaced atomically on
// every write.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/99minutos/marketplace-system/internal/core/ports"
)

const (
	renameRetries = 30
	renameBackoff = 20 * time.Millisecond
)

// SnapshotStore keeps one JSON document at path. A write goes to a unique
// temp file in the same directory which is then renamed over path, so a
// reader sees either the old or the new document.
type SnapshotStore struct {
	path string
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Path is the snapshot file location.
func (s *SnapshotStore) Path() string { return s.path }

// Load decodes the snapshot into v. A missing or empty file reports found=false.
func (s *SnapshotStore) Load(_ context.Context, v any) (bool, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	return true, nil
}

// Save replaces the snapshot with v.
func (s *SnapshotStore) Save(ctx context.Context, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeAndSync(tmp, body); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := renameWithRetry(ctx, tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// Ping checks that the snapshot directory exists or can be created.
func (s *SnapshotStore) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot dir %s: %w", dir, err)
	}
	return nil
}

func writeAndSync(f *os.File, body []byte) error {
	if _, err := f.Write(body); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	return nil
}

// renameWithRetry retries permission failures, which happen while another
// process briefly holds the destination open on some platforms.
func renameWithRetry(ctx context.Context, from, to string) error {
	var err error
	for attempt := 0; attempt < renameRetries; attempt++ {
		if err = os.Rename(from, to); err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrPermission) {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("replace snapshot: %w", ctx.Err())
		case <-time.After(renameBackoff):
		}
	}
	return fmt.Errorf("replace snapshot: %w", err)
}
