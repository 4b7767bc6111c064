package domain

// RevenueModel describes how a product earns over a customer's lifetime.
type RevenueModel string

const (
	RevenueModelLTV            RevenueModel = "LTV"
	RevenueModelSinglePurchase RevenueModel = "SINGLE_PURCHASE"
)

// LifecycleState is the product's advertising lifecycle stage.
// States form a linear forward path; HARVEST is terminal.
type LifecycleState string

const (
	LifecycleLaunchHard LifecycleState = "LAUNCH_HARD"
	LifecycleLaunchSoft LifecycleState = "LAUNCH_SOFT"
	LifecycleGrow       LifecycleState = "GROW"
	LifecycleHarvest    LifecycleState = "HARVEST"
)

// LtvMode selects between assumed (prior) and measured LTV parameters.
type LtvMode string

const (
	LtvModeAssumed  LtvMode = "ASSUMED"
	LtvModeMeasured LtvMode = "MEASURED"
)

// ProductProfileType keys the static profile template table.
type ProductProfileType string

const (
	ProfileDefault            ProductProfileType = "DEFAULT"
	ProfileSupplementHighLTV  ProductProfileType = "SUPPLEMENT_HIGH_LTV"
	ProfileSupplementStandard ProductProfileType = "SUPPLEMENT_STANDARD"
	ProfileSinglePurchase     ProductProfileType = "SINGLE_PURCHASE"
)

// TacosZone classifies current TACOS against the derived target and ceiling.
type TacosZone string

const (
	ZoneGreen  TacosZone = "GREEN"
	ZoneOrange TacosZone = "ORANGE"
	ZoneRed    TacosZone = "RED"
)

// KeywordRole is a keyword's strategic importance tier, most to least protected.
type KeywordRole string

const (
	RoleCore       KeywordRole = "CORE"
	RoleSupport    KeywordRole = "SUPPORT"
	RoleExperiment KeywordRole = "EXPERIMENT"
)

// SalePhase positions a recommendation run on the sale calendar.
type SalePhase string

const (
	SalePhaseNormal   SalePhase = "NORMAL"
	SalePhasePreSale  SalePhase = "PRE_SALE"
	SalePhaseSale     SalePhase = "SALE"
	SalePhasePostSale SalePhase = "POST_SALE"
)

// PresaleType distinguishes pre-sale bid tactics.
// HOLD_BACK deliberately keeps bids alive ahead of a sale, so strong
// reductions must be suppressed during that window.
type PresaleType string

const (
	PresaleNone     PresaleType = "NONE"
	PresaleHoldBack PresaleType = "HOLD_BACK"
	PresalePush     PresaleType = "PUSH"
)

// LossBudgetState classifies how much of the cumulative-loss allowance is consumed.
type LossBudgetState string

const (
	LossBudgetSafe     LossBudgetState = "SAFE"
	LossBudgetWarning  LossBudgetState = "WARNING"
	LossBudgetCritical LossBudgetState = "CRITICAL"
)

// RiskLevel grades cumulative-loss risk.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// BidAction is a bid-reduction action a guardrail may permit or forbid.
type BidAction string

const (
	ActionKeep       BidAction = "KEEP"
	ActionMildDown   BidAction = "MILD_DOWN"
	ActionStrongDown BidAction = "STRONG_DOWN"
	ActionStop       BidAction = "STOP"
	ActionNegative   BidAction = "NEGATIVE"
)
