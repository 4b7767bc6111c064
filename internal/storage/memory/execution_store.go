package memory

import (
	"context"
	"sort"
	"sync"

	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/storage"
)

// ExecutionStore is an in-memory implementation of storage.ExecutionStore.
type ExecutionStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ExecutionRecord // keyed by run_id
}

// NewExecutionStore creates a new in-memory execution store.
func NewExecutionStore() *ExecutionStore {
	return &ExecutionStore{
		data: make(map[string]*domain.ExecutionRecord),
	}
}

var _ storage.ExecutionStore = (*ExecutionStore)(nil)

// Insert adds a run record. Returns ErrDuplicateKey if run_id exists.
func (s *ExecutionStore) Insert(_ context.Context, rec *domain.ExecutionRecord) error {
	if rec == nil || rec.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[rec.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	recCopy := *rec
	s.data[rec.RunID] = &recCopy
	return nil
}

// GetByRunID retrieves a run record. Returns ErrNotFound if not exists.
func (s *ExecutionStore) GetByRunID(_ context.Context, runID string) (*domain.ExecutionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.data[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	recCopy := *rec
	return &recCopy, nil
}

// ListRecent retrieves the most recent runs, newest first.
func (s *ExecutionStore) ListRecent(_ context.Context, limit int) ([]*domain.ExecutionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.ExecutionRecord, 0, len(s.data))
	for _, rec := range s.data {
		recCopy := *rec
		result = append(result, &recCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
