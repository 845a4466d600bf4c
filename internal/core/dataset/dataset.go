// Package dataset assembles extractor outputs into the minimal verified
// dataset sent to the scoring oracle and decides whether that dataset carries
// enough signal to be worth scoring.
package dataset

import "github.com/asingla/credscope/internal/core/domain"

// Sections cap merchant categories to keep the oracle payload small.
const maxSectionMerchants = 5

// Build merges per-document metric records into one verified dataset. A nil
// input or a record carrying an extraction error yields a nil section; the
// section fields are a deliberate allow-list, not the full extractor output.
func Build(
	bureau *domain.BureauMetrics,
	bank *domain.BankMetrics,
	upi *domain.UPIMetrics,
	salary *domain.SalaryMetrics,
) domain.VerifiedDataset {
	var ds domain.VerifiedDataset

	if bank != nil && bank.Err == "" {
		ds.Bank = &domain.BankSection{
			TotalIncome:      bank.TotalIncome,
			SalaryCredits:    bank.SalaryCredits,
			AvgMonthlyIncome: bank.AvgMonthlyIncome,
			TotalExpenses:    bank.TotalExpenses,
			EMIPayments:      bank.EMIPayments,
			LateFees:         bank.LateFees,
			LargestExpense:   bank.LargestExpense,
			SavingsEstimate:  bank.SavingsEstimate,
			DigitalSpend:     bank.DigitalSpend,
			CashSpend:        bank.CashSpend,
			AvgBalance:       bank.AvgBalance,
			NegativeBalance:  bank.NegativeBalance,
		}
	}

	if upi != nil && upi.Err == "" {
		categories := upi.MerchantCategories
		if len(categories) > maxSectionMerchants {
			categories = categories[:maxSectionMerchants]
		}
		ds.UPI = &domain.UPISection{
			TransactionCount:     upi.TransactionCount,
			TotalSpend:           upi.TotalSpend,
			BillPayments:         upi.BillPayments,
			MerchantCategories:   categories,
			DigitalBehaviorIndex: upi.DigitalBehaviorIndex,
			RegularityPerDay:     upi.RegularityPerDay,
		}
	}

	if bureau != nil && bureau.Err == "" {
		ds.CreditBureau = &domain.BureauSection{
			Score:              bureau.Score,
			OpenLoans:          bureau.OpenLoans,
			LatePayments:       bureau.LatePayments,
			CreditUtilization:  bureau.CreditUtilization,
			CreditHistoryYears: bureau.CreditHistoryYears,
		}
	}

	if salary != nil && salary.Err == "" {
		ds.Salary = &domain.SalarySection{
			GrossSalary: salary.GrossSalary,
			NetSalary:   salary.NetSalary,
			IsRegular:   salary.IsRegular,
		}
	}

	return ds
}

// Validate reports whether the dataset carries at least one usable signal:
// any bank figure other than the negative-balance flag, a positive UPI
// numeric, a bureau score, or a gross salary. Invalid datasets must not be
// sent to the scoring oracle.
func Validate(ds domain.VerifiedDataset) bool {
	if b := ds.Bank; b != nil {
		if b.TotalIncome != 0 || b.SalaryCredits != 0 ||
			(b.AvgMonthlyIncome != nil && *b.AvgMonthlyIncome != 0) ||
			b.TotalExpenses != 0 || b.EMIPayments != 0 || b.LateFees != 0 ||
			b.LargestExpense != 0 || b.SavingsEstimate != 0 ||
			b.DigitalSpend != 0 || b.CashSpend != 0 || b.AvgBalance != 0 {
			return true
		}
	}
	if u := ds.UPI; u != nil {
		if u.TransactionCount > 0 || u.TotalSpend > 0 || u.BillPayments > 0 ||
			u.DigitalBehaviorIndex > 0 || u.RegularityPerDay > 0 {
			return true
		}
	}
	if cb := ds.CreditBureau; cb != nil && cb.Score != nil {
		return true
	}
	if s := ds.Salary; s != nil && s.GrossSalary != nil {
		return true
	}
	return false
}
