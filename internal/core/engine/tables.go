// Package engine holds the deterministic decision layer: risk tiering,
// EMI affordability, interest rate recommendation, improvement plans and
// loan-type adjusted decisions. Everything here is a pure function of the
// verified dataset plus the rule tables; there is no model call and no I/O.
package engine

import "github.com/asingla/credscope/internal/core/domain"

// Tables collects every tunable rule constant. Defaults mirror the lending
// policy the product shipped with; deployments may override them via the
// pricing-tables config file.
type Tables struct {
	// MonthlyTotalThreshold gates the statement-span heuristic: an aggregate
	// at or above it is assumed to span StatementMonths months and is divided
	// down to a monthly figure. The threshold is a policy guess, not a
	// derived constant, and is kept overridable pending domain review.
	MonthlyTotalThreshold float64 `yaml:"monthly_total_threshold"`
	StatementMonths       float64 `yaml:"statement_months"`

	// GlobalEMIRatioCap bounds the effective max EMI ratio for every tier
	// and loan type.
	GlobalEMIRatioCap float64 `yaml:"global_emi_ratio_cap"`

	// GrossToNetFactor approximates net salary from gross when no net figure
	// was extracted.
	GrossToNetFactor float64 `yaml:"gross_to_net_factor"`

	TenureMonths map[domain.LoanType]int          `yaml:"tenure_months"`
	EMIBands     map[domain.LoanType]domain.Range `yaml:"emi_bands"`

	TierMaxMultiplier map[domain.RiskTier]float64 `yaml:"tier_max_multiplier"`
	RedMinRatioScale  float64                     `yaml:"red_min_ratio_scale"`

	BaseAPR      map[domain.RiskTier]domain.Range                      `yaml:"base_apr"`
	LoanTypeAPR  map[domain.LoanType]map[domain.RiskTier]domain.Range  `yaml:"loan_type_apr"`
	BureauWeight map[domain.LoanType]float64                           `yaml:"bureau_weight"`

	// DecisionEMISalaryRatio caps EMI affordability in loan decisions when a
	// net salary is known.
	DecisionEMISalaryRatio float64 `yaml:"decision_emi_salary_ratio"`
}

// DefaultTables returns the shipped lending policy.
func DefaultTables() Tables {
	return Tables{
		MonthlyTotalThreshold: 200000,
		StatementMonths:       3,
		GlobalEMIRatioCap:     0.40,
		GrossToNetFactor:      0.85,

		TenureMonths: map[domain.LoanType]int{
			domain.LoanPersonal:  24,
			domain.LoanHome:      240,
			domain.LoanEducation: 84,
			domain.LoanBusiness:  36,
			domain.LoanVehicle:   60,
			domain.LoanGold:      24,
			domain.LoanOther:     24,
		},

		// Secured and stable loan classes tolerate higher EMI ratios.
		EMIBands: map[domain.LoanType]domain.Range{
			domain.LoanHome:      {Min: 0.32, Max: 0.40},
			domain.LoanGold:      {Min: 0.30, Max: 0.40},
			domain.LoanEducation: {Min: 0.30, Max: 0.38},
			domain.LoanPersonal:  {Min: 0.28, Max: 0.35},
			domain.LoanVehicle:   {Min: 0.28, Max: 0.34},
			domain.LoanBusiness:  {Min: 0.25, Max: 0.33},
			domain.LoanOther:     {Min: 0.25, Max: 0.33},
		},

		TierMaxMultiplier: map[domain.RiskTier]float64{
			domain.TierGreen:  1.0,
			domain.TierYellow: 0.85,
			domain.TierRed:    0.65,
		},
		RedMinRatioScale: 0.9,

		BaseAPR: map[domain.RiskTier]domain.Range{
			domain.TierGreen:  {Min: 11, Max: 13},
			domain.TierYellow: {Min: 14, Max: 18},
			domain.TierRed:    {Min: 20, Max: 28},
		},

		// Loan type replaces the tier base entirely; personal/other keep it.
		LoanTypeAPR: map[domain.LoanType]map[domain.RiskTier]domain.Range{
			domain.LoanHome: {
				domain.TierGreen:  {Min: 8.5, Max: 10.5},
				domain.TierYellow: {Min: 10.5, Max: 13.0},
				domain.TierRed:    {Min: 13.5, Max: 16.5},
			},
			domain.LoanGold: {
				domain.TierGreen:  {Min: 9.5, Max: 12.0},
				domain.TierYellow: {Min: 12.0, Max: 15.0},
				domain.TierRed:    {Min: 16.0, Max: 22.0},
			},
			domain.LoanVehicle: {
				domain.TierGreen:  {Min: 9.5, Max: 12.0},
				domain.TierYellow: {Min: 12.0, Max: 16.0},
				domain.TierRed:    {Min: 17.0, Max: 23.0},
			},
			domain.LoanEducation: {
				domain.TierGreen:  {Min: 10.0, Max: 12.5},
				domain.TierYellow: {Min: 12.5, Max: 16.5},
				domain.TierRed:    {Min: 18.0, Max: 24.0},
			},
			domain.LoanBusiness: {
				domain.TierGreen:  {Min: 12.0, Max: 15.0},
				domain.TierYellow: {Min: 15.0, Max: 20.0},
				domain.TierRed:    {Min: 22.0, Max: 30.0},
			},
		},

		// Bureau weight per loan type for the adjusted decision score; the
		// behavior score carries the complement.
		BureauWeight: map[domain.LoanType]float64{
			domain.LoanHome:      0.60,
			domain.LoanVehicle:   0.55,
			domain.LoanGold:      0.50,
			domain.LoanEducation: 0.50,
			domain.LoanBusiness:  0.45,
			domain.LoanPersonal:  0.40,
			domain.LoanOther:     0.40,
		},

		DecisionEMISalaryRatio: 0.30,
	}
}

// Engine evaluates the rule tables. Zero-value maps fall back to "other" /
// Yellow entries so unknown inputs never panic.
type Engine struct {
	tables Tables
}

func New(tables Tables) *Engine {
	return &Engine{tables: tables}
}

func NewDefault() *Engine {
	return New(DefaultTables())
}

func (e *Engine) emiBand(loanType domain.LoanType) domain.Range {
	if band, ok := e.tables.EMIBands[loanType]; ok {
		return band
	}
	return e.tables.EMIBands[domain.LoanOther]
}

func (e *Engine) tenureMonths(loanType domain.LoanType) int {
	if months, ok := e.tables.TenureMonths[loanType]; ok {
		return months
	}
	return e.tables.TenureMonths[domain.LoanOther]
}

func (e *Engine) tierMultiplier(tier domain.RiskTier) float64 {
	if mult, ok := e.tables.TierMaxMultiplier[tier]; ok {
		return mult
	}
	return e.tables.TierMaxMultiplier[domain.TierYellow]
}

// monthlyFromTotal normalizes a statement aggregate to a monthly figure:
// large totals are assumed to span a multi-month statement.
func (e *Engine) monthlyFromTotal(total float64) float64 {
	if total <= 0 {
		return 0
	}
	if total >= e.tables.MonthlyTotalThreshold {
		return total / e.tables.StatementMonths
	}
	return total
}
