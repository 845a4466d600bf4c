package domain

import "strings"

// LoanType selects the EMI ratio band, tenure and APR band. Unknown values
// fall back to LoanOther.
type LoanType string

const (
	LoanPersonal  LoanType = "personal"
	LoanHome      LoanType = "home"
	LoanEducation LoanType = "education"
	LoanBusiness  LoanType = "business"
	LoanVehicle   LoanType = "vehicle"
	LoanGold      LoanType = "gold"
	LoanOther     LoanType = "other"
)

// NormalizeLoanType lowercases and maps unknown values to LoanOther.
func NormalizeLoanType(raw string) LoanType {
	switch lt := LoanType(strings.ToLower(strings.TrimSpace(raw))); lt {
	case LoanPersonal, LoanHome, LoanEducation, LoanBusiness, LoanVehicle, LoanGold:
		return lt
	default:
		return LoanOther
	}
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// AffordabilityAssumptions reports the inputs behind an affordability result;
// the ranges are not useful without them.
type AffordabilityAssumptions struct {
	TenureMonths        int     `json:"tenure_months"`
	InterestRateAPRMid  float64 `json:"interest_rate_apr_mid"`
	NetMonthlyIncome    float64 `json:"income_net_monthly_used"`
	MonthlyExpenses     float64 `json:"expenses_monthly_estimated"`
	EMIRatioMin         float64 `json:"emi_ratio_min"`
	EMIRatioMax         float64 `json:"emi_ratio_max"`
	TierMultiplier      float64 `json:"tier_multiplier"`
}

type AffordabilityResult struct {
	LoanType             LoanType                 `json:"loan_type"`
	RiskTier             RiskTier                 `json:"risk_tier"`
	Assumptions          AffordabilityAssumptions `json:"assumptions"`
	SafeEMIRange         Range                    `json:"safe_emi_range"`
	DisposableAfterMaxEMI float64                 `json:"disposable_income_after_max_emi"`
	LoanAmountRange      Range                    `json:"recommended_loan_amount_range"`
	Notes                string                   `json:"notes"`
}

type RateRecommendation struct {
	RiskTier    RiskTier `json:"risk_tier"`
	LoanType    LoanType `json:"loan_type"`
	APRPercent  Range    `json:"apr_percent_range"`
	HybridScore *float64 `json:"hybrid_score,omitempty"`
	Notes       string   `json:"notes"`
}

// PlanInputs echoes the dataset figures an improvement plan was derived from.
type PlanInputs struct {
	MonthlyIncome     float64  `json:"income_monthly"`
	MonthlyExpenses   float64  `json:"expenses_monthly_est"`
	MonthlySavings    float64  `json:"savings_monthly_est"`
	MonthlyUPISpend   float64  `json:"upi_spend_monthly_est"`
	LatePayments      int      `json:"late_payments"`
	CreditUtilization *float64 `json:"credit_utilization"`
}

type ImprovementPlan struct {
	WeakAreas []string   `json:"weak_areas"`
	Tips      []string   `json:"tips"`
	Inputs    PlanInputs `json:"inputs_used"`
}

// LoanDecision is the loan-type adjusted read of a persisted behavior record.
type LoanDecision struct {
	LoanType       LoanType `json:"loan_type"`
	AdjustedScore  float64  `json:"adjusted_score"`
	RiskLabel      string   `json:"risk_label"`
	Recommendation string   `json:"recommendation"`
	MaxEMI         *float64 `json:"max_emi,omitempty"`
}
