package domain

// VerifiedDataset is the merged, minimal, document-derived record sent to the
// scoring oracle. A section is nil when its source document was not supplied
// or its extraction hard-failed; section fields are an allow-list of the
// metrics that matter downstream, never the full extractor output.
type VerifiedDataset struct {
	Bank         *BankSection   `json:"bank,omitempty"`
	UPI          *UPISection    `json:"upi,omitempty"`
	CreditBureau *BureauSection `json:"credit_bureau,omitempty"`
	Salary       *SalarySection `json:"salary,omitempty"`
}

type BankSection struct {
	TotalIncome      float64  `json:"total_income"`
	SalaryCredits    float64  `json:"salary_credits"`
	AvgMonthlyIncome *float64 `json:"avg_monthly_income"`
	TotalExpenses    float64  `json:"total_expenses"`
	EMIPayments      float64  `json:"emi_payments"`
	LateFees         float64  `json:"late_fees"`
	LargestExpense   float64  `json:"largest_expense"`
	SavingsEstimate  float64  `json:"savings_estimate"`
	DigitalSpend     float64  `json:"digital_spend"`
	CashSpend        float64  `json:"cash_spend"`
	AvgBalance       float64  `json:"avg_balance"`
	NegativeBalance  bool     `json:"negative_balance"`
}

type UPISection struct {
	TransactionCount     int      `json:"upi_transaction_count"`
	TotalSpend           float64  `json:"upi_total_spend"`
	BillPayments         int      `json:"upi_bill_payments"`
	MerchantCategories   []string `json:"merchant_categories"`
	DigitalBehaviorIndex float64  `json:"digital_behavior_index"`
	RegularityPerDay     float64  `json:"regularity_per_day"`
}

type BureauSection struct {
	Score              *int     `json:"cibil_score"`
	OpenLoans          int      `json:"open_loans"`
	LatePayments       int      `json:"late_payments"`
	CreditUtilization  *float64 `json:"credit_utilization"`
	CreditHistoryYears *int     `json:"credit_history_length_years"`
}

type SalarySection struct {
	GrossSalary *float64 `json:"gross_salary"`
	NetSalary   *float64 `json:"net_salary"`
	IsRegular   bool     `json:"is_regular"`
}
