package extract

import (
	"fmt"
	"regexp"

	"github.com/asingla/credscope/internal/core/domain"
)

var (
	grossSalaryRules = []rule{
		{re: regexp.MustCompile(`(?i)(?:gross|gross\s*salary|total\s*earnings)[\s:]*[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`), plausible: inRange(10000, 10000000)},
		{re: regexp.MustCompile(`(?i)[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)\s*(?:gross|gross\s*salary)`), plausible: inRange(10000, 10000000)},
	}

	netSalaryRules = []rule{
		{re: regexp.MustCompile(`(?i)(?:net|net\s*pay|take\s*home|total\s*payable)[\s:]*[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`), plausible: inRange(10000, 10000000)},
		{re: regexp.MustCompile(`(?i)[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)\s*(?:net|net\s*pay|take\s*home)`), plausible: inRange(10000, 10000000)},
	}

	deductionRules = []rule{
		{re: regexp.MustCompile(`(?i)(?:total\s*deductions?|deduction)[\s:]*[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`)},
		{re: regexp.MustCompile(`(?i)[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d{2})?)\s*(?:deduction|deductions)`)},
	}

	employeeIDRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:employee\s*id|emp\s*id|id)[\s:]*([A-Z0-9]{4,})`),
		regexp.MustCompile(`([A-Z]{2,}\d{4,})`),
	}

	// The name capture stays case-sensitive so it stops at the end of a
	// proper-cased name instead of swallowing the next label.
	employeeNameRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i:employee\s*name|name)[\s:]*([A-Z][a-z]+(?: [A-Z][a-z]+)+)`),
		regexp.MustCompile(`([A-Z][a-z]+ [A-Z][a-z]+)`),
	}

	salaryMonthYearRe = regexp.MustCompile(`(?i)(?:for\s*the\s*month\s*of|month)[\s:]*([A-Z][a-z]+)\s*(\d{4})`)
	monthMentionRe    = regexp.MustCompile(`(?i)(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*\s*\d{4}`)
)

// ExtractSalary pulls pay figures and employment hints out of salary slip
// text. Net falls back to gross minus deductions when no net line matches.
func ExtractSalary(text string) (m domain.SalaryMetrics) {
	defer func() {
		if r := recover(); r != nil {
			m = domain.SalaryMetrics{Err: fmt.Sprintf("salary extraction: %v", r)}
		}
	}()

	m.GrossSalary = firstAmount(grossSalaryRules, text)
	m.NetSalary = firstAmount(netSalaryRules, text)

	for _, d := range allAmounts(deductionRules, text) {
		m.TotalDeductions += d
	}
	if m.NetSalary == nil && m.GrossSalary != nil {
		net := *m.GrossSalary - m.TotalDeductions
		m.NetSalary = &net
	}

	for _, re := range employeeIDRes {
		if match := re.FindStringSubmatch(text); match != nil {
			m.EmployeeID = match[1]
			break
		}
	}
	for _, re := range employeeNameRes {
		if match := re.FindStringSubmatch(text); match != nil {
			m.EmployeeName = match[1]
			break
		}
	}

	if match := salaryMonthYearRe.FindStringSubmatch(text); match != nil {
		m.SalaryMonth = match[1]
		m.SalaryYear = match[2]
	}

	m.IsRegular = monthMentionRe.MatchString(text) && m.GrossSalary != nil
	return m
}
