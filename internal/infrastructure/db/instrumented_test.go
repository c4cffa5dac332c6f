package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubStore struct {
	saveErr error
	saved   int
	pinged  int
}

func (s *stubStore) Load(_ context.Context, v any) (bool, error) {
	*(v.(*int)) = 42
	return true, nil
}

func (s *stubStore) Save(context.Context, any) error {
	s.saved++
	return s.saveErr
}

func (s *stubStore) Ping(context.Context) error {
	s.pinged++
	return nil
}

func TestInstrument_Delegates(t *testing.T) {
	ctx := context.Background()
	inner := &stubStore{}
	s := Instrument(inner, "unit", "stub")

	var n int
	found, err := s.Load(ctx, &n)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 42, n)

	require.NoError(t, s.Save(ctx, struct{}{}))
	inner.saveErr = errors.New("boom")
	require.EqualError(t, s.Save(ctx, struct{}{}), "boom")
	require.Equal(t, 2, inner.saved)

	require.NoError(t, s.Ping(ctx))
	require.Equal(t, 1, inner.pinged)
}
