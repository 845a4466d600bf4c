package extract

import (
	"math"
	"testing"
)

func TestExtractBankAggregates(t *testing.T) {
	text := "Salary: 55,000.00 received\n" +
		"Total debit: 30,000\n" +
		"Closing balance 25,000"

	m := ExtractBank(text)
	if m.Err != "" {
		t.Fatalf("unexpected extraction error: %s", m.Err)
	}
	if m.TotalIncome != 55000 {
		t.Fatalf("expected income 55000, got %v", m.TotalIncome)
	}
	if m.SalaryCredits != 55000 {
		t.Fatalf("expected salary credits 55000, got %v", m.SalaryCredits)
	}
	if m.AvgMonthlyIncome == nil || *m.AvgMonthlyIncome != 55000 {
		t.Fatalf("expected avg monthly income 55000, got %v", m.AvgMonthlyIncome)
	}
	if m.TotalExpenses != 30000 {
		t.Fatalf("expected expenses 30000, got %v", m.TotalExpenses)
	}
	if m.LargestExpense != 30000 {
		t.Fatalf("expected largest expense 30000, got %v", m.LargestExpense)
	}
	if m.SavingsEstimate != 25000 {
		t.Fatalf("expected savings 25000, got %v", m.SavingsEstimate)
	}
	if m.AvgBalance != 25000 {
		t.Fatalf("expected avg balance 25000, got %v", m.AvgBalance)
	}
	if m.NegativeBalance {
		t.Fatalf("expected no overdraft signal")
	}
	// No EMI or fee keywords anywhere in the statement.
	if m.EMIPayments != 0 || m.LateFees != 0 {
		t.Fatalf("expected no EMI/fee totals, got emi=%v fees=%v", m.EMIPayments, m.LateFees)
	}
	if m.DigitalSpend != 0 || m.CashSpend != 30000 {
		t.Fatalf("expected all-cash spend, got digital=%v cash=%v", m.DigitalSpend, m.CashSpend)
	}
}

func TestExtractBankEMIKeywordGatesDebits(t *testing.T) {
	m := ExtractBank("EMI payment: 12,000")
	if m.TotalExpenses != 12000 {
		t.Fatalf("expected expenses 12000, got %v", m.TotalExpenses)
	}
	if m.EMIPayments != 12000 {
		t.Fatalf("expected EMI total 12000, got %v", m.EMIPayments)
	}
}

func TestExtractBankDigitalKeywordRoutesSpend(t *testing.T) {
	m := ExtractBank("UPI payment: 3,500.00")
	if m.DigitalSpend != 3500 {
		t.Fatalf("expected digital spend 3500, got %v", m.DigitalSpend)
	}
	if m.CashSpend != 0 {
		t.Fatalf("expected no cash spend, got %v", m.CashSpend)
	}
}

func TestExtractBankSmallCreditsAreNotSalary(t *testing.T) {
	m := ExtractBank("deposit: 4,000.00")
	if m.TotalIncome != 4000 {
		t.Fatalf("expected income 4000, got %v", m.TotalIncome)
	}
	if m.SalaryCredits != 0 || m.AvgMonthlyIncome != nil {
		t.Fatalf("small credit must not count as salary, got %v / %v", m.SalaryCredits, m.AvgMonthlyIncome)
	}
}

func TestExtractBankOverdraftFlag(t *testing.T) {
	m := ExtractBank("account went into overdraft")
	if !m.NegativeBalance {
		t.Fatalf("expected negative balance flag")
	}
}

func TestExtractBankBalanceStats(t *testing.T) {
	m := ExtractBank("balance: 10,000.00 on 01 March\navailable: 2,000.00 on 15 March")
	if m.MinBalance != 2000 || m.MaxBalance != 10000 {
		t.Fatalf("expected min 2000 max 10000, got %v / %v", m.MinBalance, m.MaxBalance)
	}
	if math.Abs(m.AvgBalance-6000) > 1e-9 {
		t.Fatalf("expected avg balance 6000, got %v", m.AvgBalance)
	}
}
