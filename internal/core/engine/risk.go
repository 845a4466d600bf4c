package engine

import "github.com/asingla/credscope/internal/core/domain"

// Hybrid score blend weights and tier thresholds. The hybrid scale is
// roughly 0-1000: bureau scores run 300-900 and the behavior score is
// rescaled by 100.
const (
	BureauBlendWeight   = 0.4
	BehaviorBlendWeight = 0.6
	BehaviorRescale     = 100.0

	TierGreenFloor  = 750.0
	TierYellowFloor = 650.0
)

// HybridScore blends a bureau score with the behavior aggregate. Without a
// bureau score the behavior aggregate carries the full weight.
func HybridScore(bureauScore *int, behaviorAggregate float64) float64 {
	if bureauScore == nil {
		return behaviorAggregate * BehaviorRescale
	}
	return float64(*bureauScore)*BureauBlendWeight + behaviorAggregate*BehaviorRescale*BehaviorBlendWeight
}

// TierFor classifies a hybrid score. An absent score defaults to Yellow.
func TierFor(hybridScore *float64) domain.RiskTier {
	if hybridScore == nil {
		return domain.TierYellow
	}
	switch {
	case *hybridScore >= TierGreenFloor:
		return domain.TierGreen
	case *hybridScore >= TierYellowFloor:
		return domain.TierYellow
	default:
		return domain.TierRed
	}
}
