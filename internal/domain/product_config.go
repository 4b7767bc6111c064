package domain

import "time"

// ProductConfig holds the per-ASIN economic configuration driving bid
// recommendations. Loaded read-only from the config repository per run;
// the engine never mutates it directly, only returns ConfigUpdates diffs.
type ProductConfig struct {
	ASIN      string
	ProfileID string

	RevenueModel       RevenueModel
	LifecycleState     LifecycleState
	ProductProfileType ProductProfileType

	// Margin rates are fractions in [0, 1].
	MarginRateNormal  float64
	MarginRateBlended float64
	// MarginRate is the legacy single margin field.
	//
	// Deprecated: use MarginRateNormal.
	MarginRate float64

	Price float64

	LtvMode LtvMode
	// ExpectedRepeatOrdersAssumed >= 1.
	ExpectedRepeatOrdersAssumed  float64
	ExpectedRepeatOrdersMeasured *float64
	// Safety factors are in (0, 1].
	SafetyFactorAssumed  float64
	SafetyFactorMeasured *float64

	CumulativeLoss        float64
	ConsecutiveLossMonths int
	IsNewProduct          bool

	// MaxBidMultiplier >= MinBidMultiplier, validated upstream.
	MinBidMultiplier float64
	MaxBidMultiplier float64

	UpdatedAt time.Time
}

// ConfigUpdates is the diff a promotion run may return. Nil fields are
// untouched; the repository owner applies non-nil fields to the stored config.
type ConfigUpdates struct {
	ExpectedRepeatOrdersMeasured *float64
	SafetyFactorMeasured         *float64
	LtvMode                      *LtvMode
	IsNewProduct                 *bool
}

// IsEmpty reports whether the diff carries no changes.
func (u *ConfigUpdates) IsEmpty() bool {
	if u == nil {
		return true
	}
	return u.ExpectedRepeatOrdersMeasured == nil &&
		u.SafetyFactorMeasured == nil &&
		u.LtvMode == nil &&
		u.IsNewProduct == nil
}
