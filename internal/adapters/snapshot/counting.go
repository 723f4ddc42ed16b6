package snapshot

import (
	"context"

	"dispatch-route-planner/internal/ports"
)

// WriteErrors counts failed snapshot writes.
type WriteErrors interface {
	Inc()
}

// WithWriteErrorCounter wraps a store so that failed Save and Clear calls
// increment the given counter before the error is passed on. The registry
// swallows these errors, so the counter is the only durable signal.
func WithWriteErrorCounter(inner ports.SnapshotStore, errs WriteErrors) ports.SnapshotStore {
	if inner == nil || errs == nil {
		return inner
	}
	return &countingStore{inner: inner, errs: errs}
}

type countingStore struct {
	inner ports.SnapshotStore
	errs  WriteErrors
}

func (s *countingStore) Load(ctx context.Context) (ports.Snapshot, error) {
	return s.inner.Load(ctx)
}

func (s *countingStore) Save(ctx context.Context, snap ports.Snapshot) error {
	err := s.inner.Save(ctx, snap)
	if err != nil {
		s.errs.Inc()
	}
	return err
}

func (s *countingStore) Clear(ctx context.Context) error {
	err := s.inner.Clear(ctx)
	if err != nil {
		s.errs.Inc()
	}
	return err
}
