// Package engine composes the per-product evaluation pipeline: profile
// resolution, growth assessment, TACOS zone control, lifecycle judgment,
// loss-budget risk, keyword guardrails and new-product promotion.
package engine

import (
	"errors"
	"time"

	"ppc-guardrail-lab/internal/assess"
	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/guardrail"
	"ppc-guardrail-lab/internal/lifecycle"
	"ppc-guardrail-lab/internal/ltv"
	"ppc-guardrail-lab/internal/profile"
	"ppc-guardrail-lab/internal/promotion"
	"ppc-guardrail-lab/internal/tacos"
)

// ErrNilConfig is returned when the input carries no product config.
var ErrNilConfig = errors.New("nil product config")

// Engine evaluates products. Stateless apart from the builder tunables;
// safe for concurrent use.
type Engine struct {
	builder *tacos.ContextBuilder
	clock   func() time.Time
}

// New creates an engine with the given context builder. A nil builder uses
// the defaults.
func New(builder *tacos.ContextBuilder) *Engine {
	if builder == nil {
		builder = tacos.NewContextBuilder()
	}
	return &Engine{
		builder: builder,
		clock:   time.Now,
	}
}

// KeywordInput is one keyword's requested action with the stats backing it.
type KeywordInput struct {
	KeywordID string
	Role      domain.KeywordRole

	Clicks         int
	OverspendRatio float64

	RequestedAction    domain.BidAction
	RequestedDownRatio float64
}

// ProductInput bundles everything one evaluation needs. The caller supplies
// the live zone history; the engine never persists dwell counters itself.
type ProductInput struct {
	Config *domain.ProductConfig

	CurrentTacos     float64
	OrangeZoneMonths int
	RedZoneMonths    int

	Growth      domain.GrowthAssessmentData
	Competition domain.CompetitionData
	Performance domain.PromotionPerformanceData

	SalePhase   domain.SalePhase
	PresaleType domain.PresaleType

	Keywords []KeywordInput
}

// KeywordRecommendation is the guardrail verdict for one keyword.
type KeywordRecommendation struct {
	KeywordID string
	Role      domain.KeywordRole

	RequestedAction domain.BidAction
	FinalAction     domain.BidAction
	Downgraded      bool

	// DownRatio is the clipped reduction step for down actions.
	DownRatio float64

	Rails domain.RoleLifecycleGuardrails
}

// Recommendation is the full evaluation result for one product.
type Recommendation struct {
	ASIN        string
	GeneratedAt time.Time

	ProfileType domain.ProductProfileType
	Context     *domain.TacosControlContext

	BaseTargetAcos float64
	Adjustment     *domain.TargetAcosAdjustmentResult

	Judgment *domain.TacosLifecycleJudgment
	Action   *domain.BidControlAction

	Risk            *domain.RiskAssessment
	LossBudgetState domain.LossBudgetState
	Growth          *domain.GrowthCandidateResult

	Keywords []KeywordRecommendation

	// Promotion is nil unless the product is in the new-product phase.
	Promotion *domain.PromotionResult
}

// Evaluate runs the full pipeline for one product. Pure over its input; the
// caller persists recommended state changes and promotion diffs.
func (e *Engine) Evaluate(in ProductInput) (*Recommendation, error) {
	cfg := in.Config
	if cfg == nil {
		return nil, ErrNilConfig
	}

	growth := assess.AssessGrowthCandidate(cfg.LifecycleState, in.Growth, in.Competition)

	ctx := e.builder.Build(cfg, tacos.ZoneHistory{
		CurrentTacos:       in.CurrentTacos,
		IsGrowingCandidate: growth.IsGrowingCandidate,
		OrangeZoneMonths:   in.OrangeZoneMonths,
		RedZoneMonths:      in.RedZoneMonths,
	})

	base := ltv.BaseTargetAcos(cfg)
	adjustment := tacos.AdjustTargetAcos(ltv.FinalTargetAcos(cfg), ctx)

	tol := profile.ZoneToleranceFor(cfg.ProductProfileType, cfg.LifecycleState)
	judgment := lifecycle.Judge(cfg.LifecycleState, ctx, tol)
	action := lifecycle.DetermineBidControlAction(judgment, ctx)

	risk := e.assessRisk(cfg)
	budgetState := assess.LossBudgetStateFor(risk.RiskLevel)

	rec := &Recommendation{
		ASIN:            cfg.ASIN,
		GeneratedAt:     e.clock().UTC(),
		ProfileType:     cfg.ProductProfileType,
		Context:         ctx,
		BaseTargetAcos:  base,
		Adjustment:      adjustment,
		Judgment:        judgment,
		Action:          action,
		Risk:            risk,
		LossBudgetState: budgetState,
		Growth:          growth,
	}

	for _, kw := range in.Keywords {
		rec.Keywords = append(rec.Keywords, e.evaluateKeyword(cfg, kw, in, budgetState))
	}

	if cfg.IsNewProduct {
		rec.Promotion = promotion.ExecutePromotion(cfg, in.Performance)
	}

	return rec, nil
}

// assessRisk derives the loss limit from the profile's budget multiple and
// the product's expected LTV gross profit, then grades the loss state.
func (e *Engine) assessRisk(cfg *domain.ProductConfig) *domain.RiskAssessment {
	p := profile.Get(cfg.ProductProfileType)
	stage := profile.StageControlFor(cfg.ProductProfileType, cfg.LifecycleState)

	multiple := p.LossBudgetMultipleMature
	if cfg.IsNewProduct {
		multiple = p.LossBudgetMultipleInitial
	}

	grossProfit := ltv.ExpectedLtvGrossProfit(cfg.Price, cfg.MarginRateNormal, effectiveRepeatOrders(cfg))
	lossLimit := ltv.ProductCumulativeLossLimit(grossProfit, multiple)

	return assess.AssessProductRisk(assess.RiskInput{
		CumulativeLoss:           cfg.CumulativeLoss,
		LossLimit:                lossLimit,
		ConsecutiveLossMonths:    cfg.ConsecutiveLossMonths,
		MaxConsecutiveLossMonths: stage.MaxConsecutiveLossMonths,
	})
}

// evaluateKeyword resolves the role guardrails and downgrades the requested
// action when it is forbidden or its evidence thresholds are not met.
func (e *Engine) evaluateKeyword(cfg *domain.ProductConfig, kw KeywordInput, in ProductInput, budgetState domain.LossBudgetState) KeywordRecommendation {
	rails := guardrail.GetRoleLifecycleGuardrails(domain.GuardrailContext{
		Role:            kw.Role,
		LifecycleState:  cfg.LifecycleState,
		SalePhase:       in.SalePhase,
		PresaleType:     in.PresaleType,
		LossBudgetState: budgetState,
	})

	final := kw.RequestedAction
	if !guardrail.IsActionAllowed(final, rails) {
		final = guardrail.FallbackAction(kw.Role, final, rails)
	}
	if !guardrail.MeetsActionThreshold(final, kw.Clicks, kw.OverspendRatio, rails) {
		final = domain.ActionKeep
	}

	out := KeywordRecommendation{
		KeywordID:       kw.KeywordID,
		Role:            kw.Role,
		RequestedAction: kw.RequestedAction,
		FinalAction:     final,
		Downgraded:      final != kw.RequestedAction,
		Rails:           rails,
	}

	switch final {
	case domain.ActionMildDown, domain.ActionStrongDown:
		out.DownRatio = guardrail.ClipDownRatio(kw.RequestedDownRatio, rails)
	}

	return out
}

// effectiveRepeatOrders picks the measured repeat count when the product runs
// in MEASURED mode and one exists, else the assumed prior.
func effectiveRepeatOrders(cfg *domain.ProductConfig) float64 {
	if cfg.LtvMode == domain.LtvModeMeasured && cfg.ExpectedRepeatOrdersMeasured != nil {
		return *cfg.ExpectedRepeatOrdersMeasured
	}
	return cfg.ExpectedRepeatOrdersAssumed
}

// ToRecord flattens a recommendation into an audit row.
func ToRecord(runID string, rec *Recommendation) *domain.RecommendationRecord {
	reasons := append([]string(nil), rec.Judgment.Reasons...)
	reasons = append(reasons, rec.Judgment.Warnings...)
	reasons = append(reasons, rec.Action.Reasons...)
	reasons = append(reasons, rec.Risk.Reasons...)

	return &domain.RecommendationRecord{
		RunID:            runID,
		ASIN:             rec.ASIN,
		GeneratedAt:      rec.GeneratedAt,
		LifecycleState:   rec.Judgment.CurrentState,
		RecommendedState: rec.Judgment.RecommendedState,
		TacosZone:        rec.Context.TacosZone,
		CurrentTacos:     rec.Context.CurrentTacos,
		TacosMax:         rec.Context.TacosMax,
		BaseTargetAcos:   rec.BaseTargetAcos,
		FinalTargetAcos:  rec.Adjustment.FinalTargetAcos,
		BidMultiplier:    rec.Action.BidMultiplier,
		Stop:             rec.Action.Stop,
		TighteningRatio:  rec.Action.TighteningRatio,
		RiskLevel:        rec.Risk.RiskLevel,
		GrowthScore:      rec.Growth.GrowthScore,
		Reasons:          reasons,
	}
}
