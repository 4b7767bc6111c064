package memory

import (
	"context"
	"sync"

	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/storage"
)

// PerformanceSnapshotStore is an in-memory implementation of
// storage.PerformanceSnapshotStore.
type PerformanceSnapshotStore struct {
	mu   sync.RWMutex
	data map[string]*domain.PerformanceSnapshot // keyed by ASIN
}

// NewPerformanceSnapshotStore creates a new in-memory snapshot store.
func NewPerformanceSnapshotStore() *PerformanceSnapshotStore {
	return &PerformanceSnapshotStore{
		data: make(map[string]*domain.PerformanceSnapshot),
	}
}

var _ storage.PerformanceSnapshotStore = (*PerformanceSnapshotStore)(nil)

// Upsert stores the snapshot, replacing any previous one for the ASIN.
func (s *PerformanceSnapshotStore) Upsert(_ context.Context, snap *domain.PerformanceSnapshot) error {
	if snap == nil || snap.ASIN == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapCopy := *snap
	s.data[snap.ASIN] = &snapCopy
	return nil
}

// GetLatestByASIN retrieves the current snapshot. Returns ErrNotFound if none.
func (s *PerformanceSnapshotStore) GetLatestByASIN(_ context.Context, asin string) (*domain.PerformanceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, exists := s.data[asin]
	if !exists {
		return nil, storage.ErrNotFound
	}

	snapCopy := *snap
	return &snapCopy, nil
}
