package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/storage"
)

// ProductConfigStore implements storage.ProductConfigStore using PostgreSQL.
type ProductConfigStore struct {
	pool *Pool
}

// NewProductConfigStore creates a new ProductConfigStore.
func NewProductConfigStore(pool *Pool) *ProductConfigStore {
	return &ProductConfigStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ProductConfigStore = (*ProductConfigStore)(nil)

const productConfigColumns = `
	asin, profile_id, revenue_model, lifecycle_state, product_profile_type,
	margin_rate_normal, margin_rate_blended, margin_rate, price,
	ltv_mode, expected_repeat_orders_assumed, expected_repeat_orders_measured,
	safety_factor_assumed, safety_factor_measured,
	cumulative_loss, consecutive_loss_months, is_new_product,
	min_bid_multiplier, max_bid_multiplier, updated_at
`

// Insert adds a new config. Returns ErrDuplicateKey if the ASIN exists.
func (s *ProductConfigStore) Insert(ctx context.Context, cfg *domain.ProductConfig) error {
	if cfg == nil || cfg.ASIN == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO product_configs (
			asin, profile_id, revenue_model, lifecycle_state, product_profile_type,
			margin_rate_normal, margin_rate_blended, margin_rate, price,
			ltv_mode, expected_repeat_orders_assumed, expected_repeat_orders_measured,
			safety_factor_assumed, safety_factor_measured,
			cumulative_loss, consecutive_loss_months, is_new_product,
			min_bid_multiplier, max_bid_multiplier, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12,
			$13, $14,
			$15, $16, $17,
			$18, $19, now()
		)
	`

	_, err := s.pool.Exec(ctx, query,
		cfg.ASIN, cfg.ProfileID, cfg.RevenueModel, cfg.LifecycleState, cfg.ProductProfileType,
		cfg.MarginRateNormal, cfg.MarginRateBlended, cfg.MarginRate, cfg.Price,
		cfg.LtvMode, cfg.ExpectedRepeatOrdersAssumed, cfg.ExpectedRepeatOrdersMeasured,
		cfg.SafetyFactorAssumed, cfg.SafetyFactorMeasured,
		cfg.CumulativeLoss, cfg.ConsecutiveLossMonths, cfg.IsNewProduct,
		cfg.MinBidMultiplier, cfg.MaxBidMultiplier,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert product config: %w", err)
	}
	return nil
}

// GetByASIN retrieves a config. Returns ErrNotFound if not exists.
func (s *ProductConfigStore) GetByASIN(ctx context.Context, asin string) (*domain.ProductConfig, error) {
	query := `SELECT ` + productConfigColumns + ` FROM product_configs WHERE asin = $1`

	row := s.pool.QueryRow(ctx, query, asin)
	cfg, err := scanProductConfig(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get product config by asin: %w", err)
	}
	return cfg, nil
}

// List retrieves all configs ordered by ASIN ASC.
func (s *ProductConfigStore) List(ctx context.Context) ([]*domain.ProductConfig, error) {
	query := `SELECT ` + productConfigColumns + ` FROM product_configs ORDER BY asin ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list product configs: %w", err)
	}
	defer rows.Close()

	return scanProductConfigs(rows)
}

// ApplyUpdates applies a promotion diff to the stored config. Nil fields are
// untouched. Returns ErrNotFound if the ASIN does not exist.
func (s *ProductConfigStore) ApplyUpdates(ctx context.Context, asin string, updates *domain.ConfigUpdates) error {
	if updates.IsEmpty() {
		return nil
	}

	var ltvMode *string
	if updates.LtvMode != nil {
		v := string(*updates.LtvMode)
		ltvMode = &v
	}

	query := `
		UPDATE product_configs SET
			expected_repeat_orders_measured = COALESCE($2, expected_repeat_orders_measured),
			safety_factor_measured          = COALESCE($3, safety_factor_measured),
			ltv_mode                        = COALESCE($4, ltv_mode),
			is_new_product                  = COALESCE($5, is_new_product),
			updated_at                      = now()
		WHERE asin = $1
	`

	tag, err := s.pool.Exec(ctx, query,
		asin,
		updates.ExpectedRepeatOrdersMeasured,
		updates.SafetyFactorMeasured,
		ltvMode,
		updates.IsNewProduct,
	)
	if err != nil {
		return fmt.Errorf("apply product config updates: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanProductConfig scans a single row into a ProductConfig.
func scanProductConfig(row pgx.Row) (*domain.ProductConfig, error) {
	var c domain.ProductConfig

	err := row.Scan(
		&c.ASIN, &c.ProfileID, &c.RevenueModel, &c.LifecycleState, &c.ProductProfileType,
		&c.MarginRateNormal, &c.MarginRateBlended, &c.MarginRate, &c.Price,
		&c.LtvMode, &c.ExpectedRepeatOrdersAssumed, &c.ExpectedRepeatOrdersMeasured,
		&c.SafetyFactorAssumed, &c.SafetyFactorMeasured,
		&c.CumulativeLoss, &c.ConsecutiveLossMonths, &c.IsNewProduct,
		&c.MinBidMultiplier, &c.MaxBidMultiplier, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// scanProductConfigs scans multiple rows into a slice of ProductConfig.
func scanProductConfigs(rows pgx.Rows) ([]*domain.ProductConfig, error) {
	var configs []*domain.ProductConfig

	for rows.Next() {
		c, err := scanProductConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product config row: %w", err)
		}
		configs = append(configs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product config rows: %w", err)
	}

	return configs, nil
}
