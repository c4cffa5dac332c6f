package redis

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// closedAddr returns a loopback address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: closedAddr(t), Timeout: 200 * time.Millisecond})
	require.ErrorContains(t, err, "redis ping")
}

func TestSnapshotStore_KeyAndErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: closedAddr(t), DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	s := NewSnapshotStore(client, "marketplace:snapshot:", "customer")
	require.Equal(t, "marketplace:snapshot:customer", s.key)

	var v map[string]any
	_, err := s.Load(context.Background(), &v)
	require.ErrorContains(t, err, "redis get marketplace:snapshot:customer")

	err = s.Save(context.Background(), map[string]int{"next": 1})
	require.ErrorContains(t, err, "redis set marketplace:snapshot:customer")

	require.Error(t, s.Ping(context.Background()))
}
