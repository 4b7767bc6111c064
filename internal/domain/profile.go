package domain

// StageTacosControlParams are the per-(profile, lifecycle-stage) TACOS control
// parameters resolved from the static profile tables.
type StageTacosControlParams struct {
	// MinTacos/MaxTacos bound the healthy TACOS band for the stage.
	MinTacos float64
	MaxTacos float64

	// MidFactor derives tacosTargetMid from the capped ceiling.
	MidFactor float64

	// TacosAcuity scales how strongly TACOS deviation moves the ACOS target.
	TacosAcuity float64

	// StageAcosMin/StageAcosMax clamp the adjusted target ACOS.
	StageAcosMin float64
	StageAcosMax float64

	// TacosPenaltyFactorRed caps the target at tacosMax*factor while in RED.
	TacosPenaltyFactorRed float64

	// MaxConsecutiveLossMonths is the stage's loss-month tolerance.
	MaxConsecutiveLossMonths int
}

// LifecycleTacosZoneTolerance holds per-stage tolerance before zone dwell
// time triggers a transition recommendation.
type LifecycleTacosZoneTolerance struct {
	// OrangeToleranceMonths is how long ORANGE is tolerated without action.
	OrangeToleranceMonths int

	// RedToleranceMonthsForGrowth is how long RED is tolerated for a
	// growing candidate before demotion (LAUNCH_HARD only).
	RedToleranceMonthsForGrowth int
}

// ProductProfile is an immutable template of economic priors and control
// bands, keyed by ProductProfileType. Compiled-in constant data.
type ProductProfile struct {
	Type ProductProfileType

	DefaultMarginRate         float64
	PriorExpectedRepeatOrders float64
	PriorSafetyFactor         float64

	// Loss-budget multiples of expected LTV gross profit.
	LossBudgetMultipleInitial float64
	LossBudgetMultipleMature  float64

	StageControls  map[LifecycleState]StageTacosControlParams
	ZoneTolerances map[LifecycleState]LifecycleTacosZoneTolerance
}

// TacosControlContext is the derived, short-lived evaluation context for one
// (config, profile, currentTacos) triple. Created fresh per call; never persisted.
type TacosControlContext struct {
	TacosMax       float64 // theoretical ceiling after global cap
	TacosTargetMid float64
	CurrentTacos   float64
	TacosZone      TacosZone
	// TacosDelta is (targetMid-current)/max(targetMid, epsilon).
	// Positive means headroom, negative means overspend.
	TacosDelta float64

	Stage StageTacosControlParams

	IsGrowingCandidate bool
	OrangeZoneMonths   int
	RedZoneMonths      int
}
