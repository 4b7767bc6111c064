package memory

import (
	"context"
	"sort"
	"sync"

	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/storage"
)

// ProductConfigStore is an in-memory implementation of storage.ProductConfigStore.
type ProductConfigStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ProductConfig // keyed by ASIN
}

// NewProductConfigStore creates a new in-memory product config store.
func NewProductConfigStore() *ProductConfigStore {
	return &ProductConfigStore{
		data: make(map[string]*domain.ProductConfig),
	}
}

var _ storage.ProductConfigStore = (*ProductConfigStore)(nil)

// Insert adds a new config. Returns ErrDuplicateKey if the ASIN exists.
func (s *ProductConfigStore) Insert(_ context.Context, cfg *domain.ProductConfig) error {
	if cfg == nil || cfg.ASIN == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[cfg.ASIN]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	cfgCopy := *cfg
	s.data[cfg.ASIN] = &cfgCopy
	return nil
}

// GetByASIN retrieves a config. Returns ErrNotFound if not exists.
func (s *ProductConfigStore) GetByASIN(_ context.Context, asin string) (*domain.ProductConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, exists := s.data[asin]
	if !exists {
		return nil, storage.ErrNotFound
	}

	cfgCopy := *cfg
	return &cfgCopy, nil
}

// List retrieves all configs ordered by ASIN ASC.
func (s *ProductConfigStore) List(_ context.Context) ([]*domain.ProductConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.ProductConfig, 0, len(s.data))
	for _, cfg := range s.data {
		cfgCopy := *cfg
		result = append(result, &cfgCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ASIN < result[j].ASIN
	})
	return result, nil
}

// ApplyUpdates applies a promotion diff to the stored config.
func (s *ProductConfigStore) ApplyUpdates(_ context.Context, asin string, updates *domain.ConfigUpdates) error {
	if updates.IsEmpty() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, exists := s.data[asin]
	if !exists {
		return storage.ErrNotFound
	}

	if updates.ExpectedRepeatOrdersMeasured != nil {
		v := *updates.ExpectedRepeatOrdersMeasured
		cfg.ExpectedRepeatOrdersMeasured = &v
	}
	if updates.SafetyFactorMeasured != nil {
		v := *updates.SafetyFactorMeasured
		cfg.SafetyFactorMeasured = &v
	}
	if updates.LtvMode != nil {
		cfg.LtvMode = *updates.LtvMode
	}
	if updates.IsNewProduct != nil {
		cfg.IsNewProduct = *updates.IsNewProduct
	}
	return nil
}
