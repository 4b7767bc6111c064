package postgres

import (
	"context"
	"fmt"

	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/storage"
)

// ExecutionStore implements storage.ExecutionStore using PostgreSQL.
type ExecutionStore struct {
	pool *Pool
}

// NewExecutionStore creates a new ExecutionStore.
func NewExecutionStore(pool *Pool) *ExecutionStore {
	return &ExecutionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ExecutionStore = (*ExecutionStore)(nil)

// Insert adds a run record. Returns ErrDuplicateKey if run_id exists.
func (s *ExecutionStore) Insert(ctx context.Context, rec *domain.ExecutionRecord) error {
	if rec == nil || rec.RunID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO executions (
			run_id, started_at, finished_at, configs_evaluated, errors, status
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		rec.RunID, rec.StartedAt, rec.FinishedAt,
		rec.ConfigsEvaluated, rec.Errors, rec.Status,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert execution: %w", err)
	}
	return nil
}

// GetByRunID retrieves a run record. Returns ErrNotFound if not exists.
func (s *ExecutionStore) GetByRunID(ctx context.Context, runID string) (*domain.ExecutionRecord, error) {
	query := `
		SELECT run_id, started_at, finished_at, configs_evaluated, errors, status
		FROM executions
		WHERE run_id = $1
	`

	var rec domain.ExecutionRecord
	err := s.pool.QueryRow(ctx, query, runID).Scan(
		&rec.RunID, &rec.StartedAt, &rec.FinishedAt,
		&rec.ConfigsEvaluated, &rec.Errors, &rec.Status,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get execution by run id: %w", err)
	}
	return &rec, nil
}

// ListRecent retrieves the most recent runs, newest first.
func (s *ExecutionStore) ListRecent(ctx context.Context, limit int) ([]*domain.ExecutionRecord, error) {
	query := `
		SELECT run_id, started_at, finished_at, configs_evaluated, errors, status
		FROM executions
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent executions: %w", err)
	}
	defer rows.Close()

	var records []*domain.ExecutionRecord
	for rows.Next() {
		var rec domain.ExecutionRecord
		err := rows.Scan(
			&rec.RunID, &rec.StartedAt, &rec.FinishedAt,
			&rec.ConfigsEvaluated, &rec.Errors, &rec.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan execution row: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate execution rows: %w", err)
	}

	return records, nil
}
