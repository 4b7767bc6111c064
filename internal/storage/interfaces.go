package storage

import (
	"context"
	"time"

	"ppc-guardrail-lab/internal/domain"
)

// ProductConfigStore provides access to product_configs storage. The
// recommendation engine reads configs; only ApplyUpdates writes, and only
// through promotion diffs.
type ProductConfigStore interface {
	// Insert adds a new config. Returns ErrDuplicateKey if the ASIN exists.
	Insert(ctx context.Context, cfg *domain.ProductConfig) error

	// GetByASIN retrieves a config. Returns ErrNotFound if not exists.
	GetByASIN(ctx context.Context, asin string) (*domain.ProductConfig, error)

	// List retrieves all configs ordered by ASIN ASC.
	List(ctx context.Context) ([]*domain.ProductConfig, error)

	// ApplyUpdates applies a promotion diff to the stored config.
	// Returns ErrNotFound if the ASIN does not exist.
	ApplyUpdates(ctx context.Context, asin string, updates *domain.ConfigUpdates) error
}

// PerformanceSnapshotStore provides access to the latest live aggregates
// captured by the analytics collaborator.
type PerformanceSnapshotStore interface {
	// Upsert stores the snapshot, replacing any previous one for the ASIN.
	Upsert(ctx context.Context, s *domain.PerformanceSnapshot) error

	// GetLatestByASIN retrieves the current snapshot. Returns ErrNotFound if none.
	GetLatestByASIN(ctx context.Context, asin string) (*domain.PerformanceSnapshot, error)
}

// RecommendationLogStore is the append-only recommendation audit log.
type RecommendationLogStore interface {
	// Append adds audit rows. Rows are never updated.
	Append(ctx context.Context, records []*domain.RecommendationRecord) error

	// GetByASIN retrieves all rows for an ASIN ordered by GeneratedAt ASC.
	GetByASIN(ctx context.Context, asin string) ([]*domain.RecommendationRecord, error)

	// GetByTimeRange retrieves rows generated within [start, end] (inclusive).
	GetByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.RecommendationRecord, error)
}

// ExecutionStore records recommendation runs.
type ExecutionStore interface {
	// Insert adds a run record. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, rec *domain.ExecutionRecord) error

	// GetByRunID retrieves a run record. Returns ErrNotFound if not exists.
	GetByRunID(ctx context.Context, runID string) (*domain.ExecutionRecord, error)

	// ListRecent retrieves the most recent runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.ExecutionRecord, error)
}
