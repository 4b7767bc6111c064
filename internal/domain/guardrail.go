package domain

// GuardrailContext is the per-keyword input assembled by the caller from live
// keyword, sale-calendar and budget-monitor data.
type GuardrailContext struct {
	Role            KeywordRole
	LifecycleState  LifecycleState
	SalePhase       SalePhase
	PresaleType     PresaleType
	LossBudgetState LossBudgetState
}

// RoleLifecycleGuardrails bundles the permitted bid-reduction actions and
// their numeric thresholds for one guardrail context. Pure value object.
type RoleLifecycleGuardrails struct {
	AllowStop       bool
	AllowNegative   bool
	AllowStrongDown bool

	MinClicksDown       int
	MinClicksStrongDown int
	MinClicksStop       int

	OverspendThresholdDown       float64
	OverspendThresholdStrongDown float64
	OverspendThresholdStop       float64

	// MaxDownStepRatio caps a single bid reduction (0.10 = at most -10%).
	MaxDownStepRatio float64

	Reason string
}
