// Package db holds what the snapshot backends share.
package db

import (
	"context"
	"time"

	"github.com/99minutos/marketplace-system/internal/api/metrics"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

// instrumented records write counts and latency for a snapshot backend.
type instrumented struct {
	next    ports.SnapshotStore
	store   string
	backend string
}

// Instrument wraps next so every Save is counted under the store and backend labels.
func Instrument(next ports.SnapshotStore, store, backend string) ports.SnapshotStore {
	return &instrumented{next: next, store: store, backend: backend}
}

func (i *instrumented) Load(ctx context.Context, v any) (bool, error) {
	return i.next.Load(ctx, v)
}

func (i *instrumented) Save(ctx context.Context, v any) error {
	start := time.Now()
	err := i.next.Save(ctx, v)
	metrics.SnapshotWriteDuration.WithLabelValues(i.store, i.backend).Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.SnapshotWritesTotal.WithLabelValues(i.store, i.backend, result).Inc()
	return err
}

func (i *instrumented) Ping(ctx context.Context) error {
	return i.next.Ping(ctx)
}
