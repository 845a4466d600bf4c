package engine

import (
	"math"

	"github.com/asingla/credscope/internal/core/domain"
)

// Affordability derives the safe EMI range and principal range for a loan
// type from verified income and expenses. Income resolution order: verified
// net salary, gross salary scaled to net, bank average monthly income, then
// the bank income total normalized to monthly.
func (e *Engine) Affordability(
	ds domain.VerifiedDataset,
	tier domain.RiskTier,
	loanType domain.LoanType,
	aprMid float64,
) domain.AffordabilityResult {
	income := e.resolveNetMonthlyIncome(ds)

	var expenses float64
	if ds.Bank != nil {
		expenses = e.monthlyFromTotal(ds.Bank.TotalExpenses)
	}
	disposable := math.Max(0, income-expenses)

	band := e.emiBand(loanType)
	tierMult := e.tierMultiplier(tier)

	minRatio := band.Min
	if tier == domain.TierRed {
		minRatio *= e.tables.RedMinRatioScale
	}
	maxRatio := math.Min(band.Max*tierMult, e.tables.GlobalEMIRatioCap)
	minRatio = math.Min(minRatio, maxRatio)

	safeEMIMax := math.Min(income*maxRatio, disposable)
	safeEMIMin := math.Min(income*minRatio, safeEMIMax)

	tenure := e.tenureMonths(loanType)

	return domain.AffordabilityResult{
		LoanType: loanType,
		RiskTier: tier,
		Assumptions: domain.AffordabilityAssumptions{
			TenureMonths:       tenure,
			InterestRateAPRMid: aprMid,
			NetMonthlyIncome:   income,
			MonthlyExpenses:    expenses,
			EMIRatioMin:        minRatio,
			EMIRatioMax:        maxRatio,
			TierMultiplier:     tierMult,
		},
		SafeEMIRange: domain.Range{
			Min: round2(safeEMIMin),
			Max: round2(safeEMIMax),
		},
		DisposableAfterMaxEMI: round2(disposable - safeEMIMax),
		LoanAmountRange: domain.Range{
			Min: round2(annuityPrincipal(safeEMIMin, aprMid, tenure)),
			Max: round2(annuityPrincipal(safeEMIMax, aprMid, tenure)),
		},
		Notes: "Estimates based on verified income/expenses. EMI capped by both ratio rules and disposable income.",
	}
}

func (e *Engine) resolveNetMonthlyIncome(ds domain.VerifiedDataset) float64 {
	if s := ds.Salary; s != nil {
		if s.NetSalary != nil && *s.NetSalary > 0 {
			return *s.NetSalary
		}
		if s.GrossSalary != nil && *s.GrossSalary > 0 {
			return *s.GrossSalary * e.tables.GrossToNetFactor
		}
	}
	if b := ds.Bank; b != nil {
		if b.AvgMonthlyIncome != nil && *b.AvgMonthlyIncome > 0 {
			return *b.AvgMonthlyIncome
		}
		return e.monthlyFromTotal(b.TotalIncome)
	}
	return 0
}

// annuityPrincipal converts an EMI into a present-value principal over the
// tenure: PV = EMI * (1 - (1+r)^-n) / r, degenerating to EMI * n at zero
// rate.
func annuityPrincipal(emi, aprPercent float64, tenureMonths int) float64 {
	if emi <= 0 || tenureMonths <= 0 {
		return 0
	}
	monthlyRate := aprPercent / 100.0 / 12.0
	if monthlyRate <= 0 {
		return emi * float64(tenureMonths)
	}
	return emi * (1 - math.Pow(1+monthlyRate, -float64(tenureMonths))) / monthlyRate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
