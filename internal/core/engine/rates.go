package engine

import "github.com/asingla/credscope/internal/core/domain"

// Rate recommends an APR range for a tier and loan type. Loan-type bands
// replace the tier base entirely; personal and unknown types keep the base.
// Purely advisory and deterministic: unknown tiers read as Yellow.
func (e *Engine) Rate(tier domain.RiskTier, loanType domain.LoanType, hybridScore *float64) domain.RateRecommendation {
	band, ok := e.tables.BaseAPR[tier]
	if !ok {
		tier = domain.TierYellow
		band = e.tables.BaseAPR[domain.TierYellow]
	}
	if overrides, ok := e.tables.LoanTypeAPR[loanType]; ok {
		if override, ok := overrides[tier]; ok {
			band = override
		}
	}
	return domain.RateRecommendation{
		RiskTier:    tier,
		LoanType:    loanType,
		APRPercent:  band,
		HybridScore: hybridScore,
		Notes:       "Recommendation based on verified risk tier + loan type. Final pricing depends on lender policy.",
	}
}
