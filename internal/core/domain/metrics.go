package domain

// DocumentRole identifies which financial document a file represents.
type DocumentRole string

const (
	RoleCIBIL  DocumentRole = "cibil"
	RoleBank   DocumentRole = "bank"
	RoleUPI    DocumentRole = "upi"
	RoleSalary DocumentRole = "salary"
)

// Roles lists the accepted document roles in a stable order.
func Roles() []DocumentRole {
	return []DocumentRole{RoleCIBIL, RoleBank, RoleUPI, RoleSalary}
}

func (r DocumentRole) Valid() bool {
	switch r {
	case RoleCIBIL, RoleBank, RoleUPI, RoleSalary:
		return true
	}
	return false
}

// BureauMetrics is the flat record extracted from a credit bureau report.
// Nullable fields are pointers; count fields default to zero. Counting is
// keyword-occurrence based, so narrative mentions inflate the counts; that
// trade-off is accepted for robustness to layout variation.
type BureauMetrics struct {
	Score              *int     `json:"cibil_score"`
	OpenLoans          int      `json:"open_loans"`
	LatePayments       int      `json:"late_payments"`
	CreditUtilization  *float64 `json:"credit_utilization"`
	CreditHistoryYears *int     `json:"credit_history_length_years"`
	TotalCreditLimit   *float64 `json:"total_credit_limit"`
	Err                string   `json:"error,omitempty"`
}

// BankMetrics is the flat record extracted from a bank statement.
type BankMetrics struct {
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
	MinBalance       float64  `json:"min_balance"`
	MaxBalance       float64  `json:"max_balance"`
	TransactionCount int      `json:"transaction_count"`
	NegativeBalance  bool     `json:"negative_balance"`
	Err              string   `json:"error,omitempty"`
}

// UPIMetrics is the flat record extracted from a UPI transaction ledger.
type UPIMetrics struct {
	TransactionCount     int      `json:"upi_transaction_count"`
	TotalSpend           float64  `json:"upi_total_spend"`
	BillPayments         int      `json:"upi_bill_payments"`
	MerchantCategories   []string `json:"merchant_categories"`
	DigitalBehaviorIndex float64  `json:"digital_behavior_index"`
	AvgTransactionAmount float64  `json:"avg_transaction_amount"`
	RegularityPerDay     float64  `json:"regularity_per_day"`
	UniqueMerchants      int      `json:"unique_merchants"`
	Err                  string   `json:"error,omitempty"`
}

// SalaryMetrics is the flat record extracted from a salary slip.
type SalaryMetrics struct {
	GrossSalary     *float64 `json:"gross_salary"`
	NetSalary       *float64 `json:"net_salary"`
	TotalDeductions float64  `json:"total_deductions"`
	EmployeeID      string   `json:"emp_id,omitempty"`
	EmployeeName    string   `json:"emp_name,omitempty"`
	IsRegular       bool     `json:"is_regular"`
	SalaryMonth     string   `json:"salary_month,omitempty"`
	SalaryYear      string   `json:"salary_year,omitempty"`
	Err             string   `json:"error,omitempty"`
}
