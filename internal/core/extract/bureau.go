package extract

import (
	"fmt"
	"regexp"
	"time"

	"github.com/asingla/credscope/internal/core/domain"
)

var (
	bureauScoreRules = []rule{
		{re: regexp.MustCompile(`(?i)(?:CIBIL|credit\s*score|score)[\s:]*(\d{3})`), plausible: inRange(300, 900)},
		{re: regexp.MustCompile(`(?i)(\d{3})\s*(?:CIBIL|credit\s*score)`), plausible: inRange(300, 900)},
		{re: regexp.MustCompile(`(?i)score[\s:]*(\d{3})`), plausible: inRange(300, 900)},
	}

	utilizationRules = []rule{
		{re: regexp.MustCompile(`(?i)utilization[\s:]*(\d+(?:\.\d+)?)\s*%`), plausible: inRange(0, 100)},
		{re: regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*%\s*utilization`), plausible: inRange(0, 100)},
		{re: regexp.MustCompile(`(?i)credit\s*utilization[\s:]*(\d+(?:\.\d+)?)`), plausible: inRange(0, 100)},
	}

	creditLimitRules = []rule{
		{re: regexp.MustCompile(`(?i)(?:total\s*)?credit\s*limit[\s:]*[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d+)?)`)},
		{re: regexp.MustCompile(`(?i)limit[\s:]*[₹Rs]?\s*(\d+(?:,\d+)*(?:\.\d+)?)`)},
	}

	historyYearsRe  = regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?)\s*(?:of\s*)?(?:credit\s*)?history`)
	historyLabelRe  = regexp.MustCompile(`(?i)history[\s:]*(\d+)\s*(?:years?|yrs?)`)
	historySinceRe  = regexp.MustCompile(`(?i)since\s*(\d{4})`)
	latePaymentRes  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:late|delayed|overdue|missed).*?payment`),
		regexp.MustCompile(`(?i)payment.*?(?:late|delayed|overdue|missed)`),
		regexp.MustCompile(`(?i)DPD\s*\d+`),
	}

	loanKeywords = []string{"loan", "credit card", "mortgage", "personal loan", "home loan"}
)

// ExtractBureau pulls the credit-bureau metrics out of report text. A panic
// anywhere inside degrades to a zeroed record carrying the failure message so
// one bad document never aborts sibling extractions.
func ExtractBureau(text string) (m domain.BureauMetrics) {
	defer func() {
		if r := recover(); r != nil {
			m = domain.BureauMetrics{Err: fmt.Sprintf("bureau extraction: %v", r)}
		}
	}()

	if score := firstAmount(bureauScoreRules, text); score != nil {
		s := int(*score)
		m.Score = &s
	}

	m.OpenLoans = countOccurrences(text, loanKeywords)

	for _, re := range latePaymentRes {
		m.LatePayments += len(re.FindAllStringIndex(text, -1))
	}

	m.CreditUtilization = firstAmount(utilizationRules, text)
	m.CreditHistoryYears = extractHistoryYears(text, time.Now().Year())
	m.TotalCreditLimit = firstAmount(creditLimitRules, text)
	return m
}

func extractHistoryYears(text string, currentYear int) *int {
	if match := historyYearsRe.FindStringSubmatch(text); match != nil {
		if v, ok := parseAmount(match[1]); ok {
			years := int(v)
			return &years
		}
	}
	if match := historyLabelRe.FindStringSubmatch(text); match != nil {
		if v, ok := parseAmount(match[1]); ok {
			years := int(v)
			return &years
		}
	}
	if match := historySinceRe.FindStringSubmatch(text); match != nil {
		if v, ok := parseAmount(match[1]); ok {
			years := currentYear - int(v)
			return &years
		}
	}
	return nil
}
