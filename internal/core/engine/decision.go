package engine

import "github.com/asingla/credscope/internal/core/domain"

// Adjusted-score recommendation cutoffs.
const (
	decisionApproveFloor  = 750.0
	decisionCautiousFloor = 650.0
	decisionWatchFloor    = 550.0
)

// Decision re-reads a persisted behavior record for a specific loan type:
// the bureau score and the rescaled behavior aggregate are blended with a
// loan-type specific weight and mapped onto fixed approval cutoffs. When a
// net salary is known the decision carries an EMI ceiling.
func (e *Engine) Decision(
	behavior domain.BehaviorScore,
	loanType domain.LoanType,
	bureauScore *int,
	netSalary *float64,
) domain.LoanDecision {
	bureauWeight, ok := e.tables.BureauWeight[loanType]
	if !ok {
		bureauWeight = e.tables.BureauWeight[domain.LoanOther]
	}

	behaviorScaled := behavior.Aggregate * BehaviorRescale
	var adjusted float64
	if bureauScore != nil {
		adjusted = float64(*bureauScore)*bureauWeight + behaviorScaled*(1-bureauWeight)
	} else {
		adjusted = behaviorScaled
	}

	label, recommendation := decisionBands(adjusted)

	decision := domain.LoanDecision{
		LoanType:       loanType,
		AdjustedScore:  round2(adjusted),
		RiskLabel:      label,
		Recommendation: recommendation,
	}
	if netSalary != nil && *netSalary > 0 {
		maxEMI := round2(*netSalary * e.tables.DecisionEMISalaryRatio)
		decision.MaxEMI = &maxEMI
	}
	return decision
}

func decisionBands(adjusted float64) (label, recommendation string) {
	switch {
	case adjusted >= decisionApproveFloor:
		return "Low Risk", "Approve"
	case adjusted >= decisionCautiousFloor:
		return "Moderate Risk", "Approve with caution"
	case adjusted >= decisionWatchFloor:
		return "Elevated Risk", "Caution"
	default:
		return "High Risk", "Reject"
	}
}
