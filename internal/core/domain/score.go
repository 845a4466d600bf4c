package domain

import "time"

// Behavior score category weights. The aggregate behavior score is the fixed
// weighted average of the six sub-scores using these weights.
const (
	WeightIncomeStability    = 0.15
	WeightSpendingDiscipline = 0.20
	WeightSavingsBehavior    = 0.20
	WeightPaymentDiscipline  = 0.25
	WeightDigitalBehavior    = 0.10
	WeightLifestyleStability = 0.10
)

type Insights struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// BehaviorScore is one scoring-oracle invocation's result. Every score field
// lies in [0,10]; Fallback marks records produced without an oracle response.
type BehaviorScore struct {
	IncomeStability    float64  `json:"income_stability_score"`
	SpendingDiscipline float64  `json:"spending_discipline_score"`
	SavingsBehavior    float64  `json:"savings_behavior_score"`
	PaymentDiscipline  float64  `json:"payment_discipline_score"`
	DigitalBehavior    float64  `json:"digital_behavior_score"`
	LifestyleStability float64  `json:"lifestyle_stability_score"`
	Aggregate          float64  `json:"behavior_score"`
	Explanation        string   `json:"explanation"`
	KeyInsights        Insights `json:"key_insights"`
	RedFlags           []string `json:"red_flags"`
	ImprovementTips    []string `json:"improvement_tips"`
	Fallback           bool     `json:"fallback,omitempty"`
}

// FallbackBehaviorScore is the neutral record used whenever the scoring
// oracle is unreachable or returns garbage. Every sub-score sits mid-band so
// downstream tiering degrades to Yellow rather than failing the pipeline.
func FallbackBehaviorScore() BehaviorScore {
	s := BehaviorScore{
		IncomeStability:    7.0,
		SpendingDiscipline: 7.0,
		SavingsBehavior:    7.0,
		PaymentDiscipline:  7.0,
		DigitalBehavior:    7.0,
		LifestyleStability: 7.0,
		Explanation:        "Automatic assessment based on standard scoring criteria; the behavioral model was unavailable.",
		KeyInsights: Insights{
			Positive: []string{"Financial documents were received and parsed"},
			Negative: []string{"Detailed behavioral analysis was not available for this run"},
		},
		RedFlags: []string{},
		ImprovementTips: []string{
			"Maintain a consistent savings rate of at least 10% of income",
			"Pay every EMI and bill on or before its due date",
		},
		Fallback: true,
	}
	s.Aggregate = s.WeightedAggregate()
	return s
}

// WeightedAggregate recomputes the aggregate from the six sub-scores.
func (s BehaviorScore) WeightedAggregate() float64 {
	return s.IncomeStability*WeightIncomeStability +
		s.SpendingDiscipline*WeightSpendingDiscipline +
		s.SavingsBehavior*WeightSavingsBehavior +
		s.PaymentDiscipline*WeightPaymentDiscipline +
		s.DigitalBehavior*WeightDigitalBehavior +
		s.LifestyleStability*WeightLifestyleStability
}

// RiskTier is the coarse classification of a hybrid score.
type RiskTier string

const (
	TierGreen  RiskTier = "Green"
	TierYellow RiskTier = "Yellow"
	TierRed    RiskTier = "Red"
)

func (t RiskTier) Label() string {
	switch t {
	case TierGreen:
		return "Low Risk"
	case TierRed:
		return "High Risk"
	default:
		return "Medium Risk"
	}
}

// VerifiedScore is the persisted outcome of one pipeline run, keyed by
// (user_id, doc_hash). Consumers must treat absent optional fields as null.
type VerifiedScore struct {
	UserID           string              `json:"user_id"`
	DocHash          string              `json:"doc_hash"`
	Dataset          VerifiedDataset     `json:"dataset"`
	Behavior         BehaviorScore       `json:"behavior"`
	HybridScore      float64             `json:"hybrid_score"`
	RiskTier         RiskTier            `json:"risk_tier"`
	Affordability    *AffordabilityResult `json:"affordability,omitempty"`
	InterestRate     *RateRecommendation  `json:"interest_rate,omitempty"`
	ImprovementPlan  *ImprovementPlan     `json:"improvement_plan,omitempty"`
	InsufficientData bool                `json:"insufficient_data,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

// SurveyAnswers carries the self-reported inputs for survey-mode scoring.
// None of these values are document-verified. UPI is the exception: when a
// parsed UPI ledger is available it rides along as the one verifiable signal.
type SurveyAnswers struct {
	EmploymentType         string      `json:"employment_type"`
	MonthlyIncome          float64     `json:"monthly_income"`
	MonthlyExpenses        float64     `json:"monthly_expenses"`
	MonthlySavings         float64     `json:"monthly_savings"`
	ExistingEMI            float64     `json:"existing_emi"`
	Dependents             int         `json:"dependents"`
	PaysRent               bool        `json:"pays_rent"`
	MissedPaymentsLastYear int         `json:"missed_payments_last_year"`
	UPI                    *UPIMetrics `json:"upi_metrics,omitempty"`
}
