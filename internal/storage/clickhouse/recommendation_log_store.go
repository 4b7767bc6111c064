package clickhouse

import (
	"context"
	"fmt"
	"time"

	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/storage"
)

// RecommendationLogStore implements storage.RecommendationLogStore using
// ClickHouse. The log is append-only; MergeTree ordering by (asin,
// generated_at) serves the two read paths directly.
type RecommendationLogStore struct {
	conn *Conn
}

// NewRecommendationLogStore creates a new RecommendationLogStore.
func NewRecommendationLogStore(conn *Conn) *RecommendationLogStore {
	return &RecommendationLogStore{conn: conn}
}

// Compile-time interface check.
var _ storage.RecommendationLogStore = (*RecommendationLogStore)(nil)

const recommendationLogColumns = `
	run_id, asin, generated_at,
	lifecycle_state, recommended_state, tacos_zone,
	current_tacos, tacos_max, base_target_acos, final_target_acos,
	bid_multiplier, stop, tightening_ratio,
	risk_level, growth_score, reasons
`

// Append adds audit rows via a single batch. Rows are never updated.
func (s *RecommendationLogStore) Append(ctx context.Context, records []*domain.RecommendationRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if r == nil || r.ASIN == "" {
			return storage.ErrInvalidInput
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO recommendation_log (`+recommendationLogColumns+`)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range records {
		var stop uint8
		if r.Stop {
			stop = 1
		}
		err = batch.Append(
			r.RunID, r.ASIN, r.GeneratedAt,
			string(r.LifecycleState), string(r.RecommendedState), string(r.TacosZone),
			r.CurrentTacos, r.TacosMax, r.BaseTargetAcos, r.FinalTargetAcos,
			r.BidMultiplier, stop, r.TighteningRatio,
			string(r.RiskLevel), r.GrowthScore, r.Reasons,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByASIN retrieves all rows for an ASIN ordered by GeneratedAt ASC.
func (s *RecommendationLogStore) GetByASIN(ctx context.Context, asin string) ([]*domain.RecommendationRecord, error) {
	query := `
		SELECT ` + recommendationLogColumns + `
		FROM recommendation_log
		WHERE asin = ?
		ORDER BY generated_at ASC
	`

	rows, err := s.conn.Query(ctx, query, asin)
	if err != nil {
		return nil, fmt.Errorf("query recommendation log by asin: %w", err)
	}
	defer rows.Close()

	return scanRecommendationRecords(rows)
}

// GetByTimeRange retrieves rows generated within [start, end] (inclusive).
func (s *RecommendationLogStore) GetByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.RecommendationRecord, error) {
	query := `
		SELECT ` + recommendationLogColumns + `
		FROM recommendation_log
		WHERE generated_at >= ? AND generated_at <= ?
		ORDER BY generated_at ASC
	`

	rows, err := s.conn.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query recommendation log by time range: %w", err)
	}
	defer rows.Close()

	return scanRecommendationRecords(rows)
}

// chRows is the subset of driver.Rows needed for scanning.
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanRecommendationRecords scans multiple rows into a slice.
func scanRecommendationRecords(rows chRows) ([]*domain.RecommendationRecord, error) {
	var records []*domain.RecommendationRecord

	for rows.Next() {
		var r domain.RecommendationRecord
		var lifecycleState, recommendedState, tacosZone, riskLevel string
		var stop uint8

		err := rows.Scan(
			&r.RunID, &r.ASIN, &r.GeneratedAt,
			&lifecycleState, &recommendedState, &tacosZone,
			&r.CurrentTacos, &r.TacosMax, &r.BaseTargetAcos, &r.FinalTargetAcos,
			&r.BidMultiplier, &stop, &r.TighteningRatio,
			&riskLevel, &r.GrowthScore, &r.Reasons,
		)
		if err != nil {
			return nil, fmt.Errorf("scan recommendation log row: %w", err)
		}

		r.LifecycleState = domain.LifecycleState(lifecycleState)
		r.RecommendedState = domain.LifecycleState(recommendedState)
		r.TacosZone = domain.TacosZone(tacosZone)
		r.RiskLevel = domain.RiskLevel(riskLevel)
		r.Stop = stop != 0
		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendation log rows: %w", err)
	}

	return records, nil
}
