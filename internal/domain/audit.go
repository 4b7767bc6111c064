package domain

import "time"

// RecommendationRecord is the flattened audit row appended per product per
// run. Plain serializable fields, suitable for an append-only log table.
type RecommendationRecord struct {
	RunID string
	ASIN  string

	GeneratedAt time.Time

	LifecycleState   LifecycleState
	RecommendedState LifecycleState
	TacosZone        TacosZone

	CurrentTacos    float64
	TacosMax        float64
	BaseTargetAcos  float64
	FinalTargetAcos float64

	BidMultiplier   float64
	Stop            bool
	TighteningRatio float64

	RiskLevel   RiskLevel
	GrowthScore float64

	Reasons []string
}

// ExecutionRecord summarizes one recommendation run for the execution log.
type ExecutionRecord struct {
	RunID string

	StartedAt  time.Time
	FinishedAt time.Time

	ConfigsEvaluated int
	Errors           int

	Status string
}

// Execution status values.
const (
	ExecutionStatusCompleted = "COMPLETED"
	ExecutionStatusPartial   = "PARTIAL"
	ExecutionStatusFailed    = "FAILED"
)
