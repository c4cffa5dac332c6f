package ports

import "context"

// SnapshotStore persists a store's complete state as one JSON document.
//
// Load reports found=false, with no error, when nothing has been saved yet.
// Save replaces the previous document atomically: a reader sees either the
// old or the new state, never a mix.
type SnapshotStore interface {
	Load(ctx context.Context, v any) (found bool, err error)
	Save(ctx context.Context, v any) error
	Ping(ctx context.Context) error
}
