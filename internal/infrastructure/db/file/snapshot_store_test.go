package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type state struct {
	Next  int               `json:"next"`
	Names map[string]string `json:"names"`
}

func TestSnapshotStore_MissingFileIsEmpty(t *testing.T) {
	s := NewSnapshotStore(filepath.Join(t.TempDir(), "none.json"))

	var st state
	found, err := s.Load(context.Background(), &st)
	require.NoError(t, err)
	require.False(t, found)
}

func TestSnapshotStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "db.json")
	s := NewSnapshotStore(path)

	require.NoError(t, s.Save(ctx, state{Next: 3, Names: map[string]string{"1": "a"}}))
	require.NoError(t, s.Save(ctx, state{Next: 4, Names: map[string]string{"1": "a", "2": "b"}}))

	var st state
	found, err := s.Load(ctx, &st)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 4, st.Next)
	require.Len(t, st.Names, 2)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSnapshotStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

	var st state
	_, err := NewSnapshotStore(path).Load(context.Background(), &st)
	require.ErrorContains(t, err, "decode snapshot")
}

func TestSnapshotStore_FailedSaveKeepsPreviousAndCleansUp(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	// A directory at the target path makes the rename fail.
	target := filepath.Join(dir, "db.json")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), nil, 0o600))

	err := NewSnapshotStore(target).Save(ctx, state{Next: 1})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "db.json", entries[0].Name())
}

func TestSnapshotStore_Unencodable(t *testing.T) {
	err := NewSnapshotStore(filepath.Join(t.TempDir(), "db.json")).Save(context.Background(), map[string]any{"f": func() {}})
	require.ErrorContains(t, err, "encode snapshot")
}
