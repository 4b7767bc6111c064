package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/storage"
)

// RecommendationLogStore is an in-memory append-only audit log.
type RecommendationLogStore struct {
	mu   sync.RWMutex
	rows []*domain.RecommendationRecord
}

// NewRecommendationLogStore creates a new in-memory recommendation log.
func NewRecommendationLogStore() *RecommendationLogStore {
	return &RecommendationLogStore{}
}

var _ storage.RecommendationLogStore = (*RecommendationLogStore)(nil)

// Append adds audit rows.
func (s *RecommendationLogStore) Append(_ context.Context, records []*domain.RecommendationRecord) error {
	for _, r := range records {
		if r == nil || r.ASIN == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		rowCopy := *r
		rowCopy.Reasons = append([]string(nil), r.Reasons...)
		s.rows = append(s.rows, &rowCopy)
	}
	return nil
}

// GetByASIN retrieves all rows for an ASIN ordered by GeneratedAt ASC.
func (s *RecommendationLogStore) GetByASIN(_ context.Context, asin string) ([]*domain.RecommendationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.RecommendationRecord
	for _, r := range s.rows {
		if r.ASIN == asin {
			rowCopy := *r
			rowCopy.Reasons = append([]string(nil), r.Reasons...)
			result = append(result, &rowCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].GeneratedAt.Before(result[j].GeneratedAt)
	})
	return result, nil
}

// GetByTimeRange retrieves rows generated within [start, end] (inclusive).
func (s *RecommendationLogStore) GetByTimeRange(_ context.Context, start, end time.Time) ([]*domain.RecommendationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.RecommendationRecord
	for _, r := range s.rows {
		if !r.GeneratedAt.Before(start) && !r.GeneratedAt.After(end) {
			rowCopy := *r
			rowCopy.Reasons = append([]string(nil), r.Reasons...)
			result = append(result, &rowCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].GeneratedAt.Before(result[j].GeneratedAt)
	})
	return result, nil
}
