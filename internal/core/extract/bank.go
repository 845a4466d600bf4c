package extract

import (
	"fmt"
	"regexp"

	"github.com/asingla/credscope/internal/core/domain"
)

var (
	balanceRules = []rule{
		{re: regexp.MustCompile(`(?i)(?:balance|bal|available|closing)[\s:]*[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`), plausible: func(v float64) bool { return v > 0 }},
		{re: regexp.MustCompile(`(?i)[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)\s*(?:balance|bal|available)`), plausible: func(v float64) bool { return v > 0 }},
		{re: regexp.MustCompile(`(?i)opening\s*balance[\s:]*[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`), plausible: func(v float64) bool { return v > 0 }},
		{re: regexp.MustCompile(`(?i)closing\s*balance[\s:]*[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`), plausible: func(v float64) bool { return v > 0 }},
	}

	creditRules = []rule{
		{re: regexp.MustCompile(`(?i)credit[\s:]*[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)(?:salary|deposit|income|transfer\s*in)[\s:]*[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)\s*(?:credit|cr)`)},
	}

	debitRules = []rule{
		{re: regexp.MustCompile(`(?i)debit[\s:]*[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)(?:payment|withdrawal|transfer\s*out|expense)[\s:]*[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)\s*(?:debit|dr)`)},
	}

	// Salary-sized credits; anything above this floor is treated as a salary
	// credit even without an explicit label.
	salaryCreditFloor = 10000.0

	transactionKeywords = []string{"transaction", "debit", "credit", "payment", "transfer"}
	overdraftKeywords   = []string{"overdraft", "negative", "insufficient", "od"}
	digitalKeywords     = []string{"upi", "online", "neft", "imps", "rtgs", "net banking"}
	emiKeywords         = []string{"emi", "installment"}
	feeKeywords         = []string{"late", "fee", "charge"}
)

// ExtractBank pulls aggregate financial metrics out of bank statement text.
// EMI, late-fee and digital aggregates are keyword-gated: when the statement
// mentions the keyword anywhere, the matching debit totals count toward the
// aggregate. Same false-positive trade-off as the other extractors.
func ExtractBank(text string) (m domain.BankMetrics) {
	defer func() {
		if r := recover(); r != nil {
			m = domain.BankMetrics{Err: fmt.Sprintf("bank extraction: %v", r)}
		}
	}()

	balances := allAmounts(balanceRules, text)
	if len(balances) > 0 {
		sum := 0.0
		m.MinBalance = balances[0]
		m.MaxBalance = balances[0]
		for _, b := range balances {
			sum += b
			if b < m.MinBalance {
				m.MinBalance = b
			}
			if b > m.MaxBalance {
				m.MaxBalance = b
			}
		}
		m.AvgBalance = sum / float64(len(balances))
	}

	credits := allAmounts(creditRules, text)
	var salaryCredits []float64
	for _, c := range credits {
		m.TotalIncome += c
		if c > salaryCreditFloor {
			salaryCredits = append(salaryCredits, c)
			m.SalaryCredits += c
		}
	}
	if len(salaryCredits) > 0 {
		avg := m.SalaryCredits / float64(len(salaryCredits))
		m.AvgMonthlyIncome = &avg
	}

	debits := allAmounts(debitRules, text)
	hasEMI := containsAny(text, emiKeywords)
	hasFees := containsAny(text, feeKeywords)
	for _, d := range debits {
		m.TotalExpenses += d
		if d > m.LargestExpense {
			m.LargestExpense = d
		}
		if hasEMI {
			m.EMIPayments += d
		}
		if hasFees {
			m.LateFees += d
		}
	}

	m.SavingsEstimate = m.TotalIncome - m.TotalExpenses
	m.TransactionCount = countPresent(text, transactionKeywords)
	m.NegativeBalance = containsAny(text, overdraftKeywords)

	if containsAny(text, digitalKeywords) {
		m.DigitalSpend = m.TotalExpenses
	}
	m.CashSpend = m.TotalExpenses - m.DigitalSpend

	return m
}
