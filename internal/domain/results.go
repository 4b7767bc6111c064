package domain

// TargetAcosAdjustmentResult exposes the zone, the raw and final target ACOS,
// and which clamps fired. Auditability fields are part of the contract.
type TargetAcosAdjustmentResult struct {
	Zone             TacosZone
	BaseAcos         float64
	AdjustmentFactor float64
	RawTargetAcos    float64
	FinalTargetAcos  float64

	StageMinClampApplied bool
	StageMaxClampApplied bool
	RedPenaltyApplied    bool
}

// TacosLifecycleJudgment is the lifecycle state machine's transition verdict.
// The caller persists any recommended stage change; the engine never does.
type TacosLifecycleJudgment struct {
	CurrentState     LifecycleState
	RecommendedState LifecycleState
	StateChanged     bool

	TargetAcosTighteningRecommended bool
	BidReductionRecommended         bool
	BidStopRecommended              bool

	Reasons  []string
	Warnings []string
}

// BidControlAction translates a judgment into a bid multiplier and an ACOS
// tightening ratio. Bid-amount arithmetic itself lives downstream.
type BidControlAction struct {
	BidMultiplier   float64
	Stop            bool
	TighteningRatio float64
	Reasons         []string
}

// RiskAssessment summarizes cumulative-loss risk at a point in time.
type RiskAssessment struct {
	CumulativeLoss             float64
	LossLimit                  float64
	CumulativeLossRatio        float64
	ConsecutiveLossMonths      int
	MaxConsecutiveLossMonths   int
	ConsecutiveLossMonthsRatio float64

	RiskLevel RiskLevel
	Reasons   []string
}

// GrowthCandidateResult reports organic-growth candidacy and the weighted
// growth score with its recommended stage.
type GrowthCandidateResult struct {
	IsGrowingCandidate bool

	OrganicGrowthOK bool
	RatingOK        bool
	ConversionOK    bool

	GrowthScore      float64 // 0-100
	RecommendedState LifecycleState

	Reasons []string
}

// ProfileAssignmentResult names the profile template chosen for a product.
type ProfileAssignmentResult struct {
	Type   ProductProfileType
	Reason string
}

// PromotionResult is the outcome of a new-product promotion run.
type PromotionResult struct {
	Promoted bool

	// Basis is the estimation basis for the repeat-order count.
	Basis LtvMode

	EstimatedRepeatOrders float64
	Confidence            float64

	// ConfigUpdates is nil when nothing should be written back.
	ConfigUpdates *ConfigUpdates

	Reasons []string
}
