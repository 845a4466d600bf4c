package engine

import (
	"fmt"

	"github.com/asingla/credscope/internal/core/domain"
)

// Improvement plan rule thresholds.
const (
	savingsFloorRatio     = 0.10
	savingsTargetRatio    = 0.15
	expenseCeilingRatio   = 0.75
	expenseCutRatio       = 0.10
	upiSpendCeilingRatio  = 0.25
	upiSpendCutRatio      = 0.20
	highTxnCountThreshold = 60
	utilizationCeiling    = 50.0

	maxWeakAreas = 6
	maxTips      = 8
)

// ImprovementPlan runs the fixed-priority rule list over the verified
// dataset. Rules are independent, each contributing a weak-area label and a
// tip with a computed target where the data allows one. The tip list is
// never empty.
func (e *Engine) ImprovementPlan(ds domain.VerifiedDataset) domain.ImprovementPlan {
	income := e.planIncome(ds)

	var expenses, savings float64
	negativeBalance := false
	if b := ds.Bank; b != nil {
		expenses = e.monthlyFromTotal(b.TotalExpenses)
		savings = e.monthlyFromTotal(b.SavingsEstimate)
		negativeBalance = b.NegativeBalance
	}

	var upiSpend float64
	txnCount := 0
	if u := ds.UPI; u != nil {
		upiSpend = e.monthlyFromTotal(u.TotalSpend)
		txnCount = u.TransactionCount
	}

	latePayments := 0
	var utilization *float64
	if cb := ds.CreditBureau; cb != nil {
		latePayments = cb.LatePayments
		utilization = cb.CreditUtilization
	}

	var weakAreas, tips []string

	if income > 0 && savings < income*savingsFloorRatio {
		weakAreas = append(weakAreas, "Low savings buffer")
		target := income * savingsTargetRatio
		delta := target - savings
		if delta < 0 {
			delta = 0
		}
		tips = append(tips, fmt.Sprintf("Maintain at least ₹%.0f monthly savings buffer (increase by ₹%.0f).", target, delta))
	}

	if income > 0 && expenses > income*expenseCeilingRatio {
		weakAreas = append(weakAreas, "High expense ratio")
		tips = append(tips, fmt.Sprintf("Reduce monthly expenses by ~10%% (≈₹%.0f) to improve savings and EMI capacity.", expenses*expenseCutRatio))
	}

	if income > 0 && upiSpend > income*upiSpendCeilingRatio {
		weakAreas = append(weakAreas, "High UPI discretionary spend")
		tips = append(tips, fmt.Sprintf("Reduce UPI discretionary spend by 20%% (≈₹%.0f monthly).", upiSpend*upiSpendCutRatio))
	} else if upiSpend > 0 && txnCount > highTxnCountThreshold {
		weakAreas = append(weakAreas, "High transaction frequency")
		tips = append(tips, "Set weekly UPI spending caps and review top merchants every weekend.")
	}

	if latePayments > 0 {
		weakAreas = append(weakAreas, "Payment discipline risk")
		tips = append(tips, "Enable auto-pay for EMIs/credit card minimums and set bill reminders 3 days before due dates.")
	}

	if utilization != nil && *utilization >= utilizationCeiling {
		weakAreas = append(weakAreas, "High credit utilization")
		tips = append(tips, "Try keeping credit utilization under 30% by paying mid-cycle or splitting spends across cards.")
	}

	if negativeBalance {
		weakAreas = append(weakAreas, "Overdraft/negative balance risk")
		tips = append(tips, "Maintain a minimum balance buffer (e.g., ₹5,000–₹10,000) to avoid overdraft/penalty charges.")
	}

	if len(tips) == 0 {
		tips = []string{
			"Continue maintaining on-time payments to keep your verified risk stable.",
			"Track monthly income vs expenses to maintain a positive savings estimate.",
		}
	}

	weakAreas = dedupeStrings(weakAreas)
	if len(weakAreas) > maxWeakAreas {
		weakAreas = weakAreas[:maxWeakAreas]
	}
	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}

	return domain.ImprovementPlan{
		WeakAreas: weakAreas,
		Tips:      tips,
		Inputs: domain.PlanInputs{
			MonthlyIncome:     income,
			MonthlyExpenses:   expenses,
			MonthlySavings:    savings,
			MonthlyUPISpend:   upiSpend,
			LatePayments:      latePayments,
			CreditUtilization: utilization,
		},
	}
}

func (e *Engine) planIncome(ds domain.VerifiedDataset) float64 {
	if s := ds.Salary; s != nil && s.NetSalary != nil && *s.NetSalary > 0 {
		return *s.NetSalary
	}
	if b := ds.Bank; b != nil {
		if b.AvgMonthlyIncome != nil && *b.AvgMonthlyIncome > 0 {
			return *b.AvgMonthlyIncome
		}
		return e.monthlyFromTotal(b.TotalIncome)
	}
	return 0
}

// dedupeStrings keeps first-seen order.
func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
