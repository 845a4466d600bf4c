package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/asingla/credscope/internal/core/domain"
)

var (
	upiAmountRules = []rule{
		{re: regexp.MustCompile(`[₹Rs]?\s*(\d{1,3}(?:,\d{2,3})*(?:\.\d{2})?)`), plausible: inRange(1, 1000000)},
		{re: regexp.MustCompile(`(\d+\.\d{2})`), plausible: inRange(1, 1000000)},
	}

	upiTxnIDRe = regexp.MustCompile(`(?i)(?:ref|txn|upi)[\s:]*([A-Z0-9]{8,})`)

	upiMerchantRes = []*regexp.Regexp{
		regexp.MustCompile(`to\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		regexp.MustCompile(`(?i)merchant[\s:]*([A-Z][a-z]+)`),
		regexp.MustCompile(`(?i)paid\s+to\s+([A-Z][a-z]+)`),
	}

	upiTransactionKeywords = []string{"upi", "payment", "transfer", "debit", "credit", "successful"}
	billKeywords           = []string{"bill", "electricity", "water", "gas", "phone", "internet", "recharge", "mobile"}
	merchantKeywords       = []string{"merchant", "store", "shop", "restaurant", "food", "grocery"}

	amountColumnKeywords = []string{"amount", "rupee", "rs", "value"}
	dateColumnKeywords   = []string{"date", "time", "timestamp"}
	descColumnKeywords   = []string{"desc", "note", "remark", "narration", "merchant", "to"}

	ledgerDateLayouts = []string{
		"2006-01-02", "02/01/2006", "01/02/2006", "02-01-2006",
		"2006-01-02 15:04:05", "02 Jan 2006", "Jan 2, 2006",
	}
)

const maxMerchantCategories = 10

// ExtractUPIText pulls UPI ledger metrics out of free-form statement text.
func ExtractUPIText(text string) (m domain.UPIMetrics) {
	defer func() {
		if r := recover(); r != nil {
			m = domain.UPIMetrics{MerchantCategories: []string{}, Err: fmt.Sprintf("upi extraction: %v", r)}
		}
	}()
	m.MerchantCategories = []string{}

	amounts := firstRuleAmounts(upiAmountRules, text)
	txnIDs := upiTxnIDRe.FindAllString(text, -1)

	count := countPresent(text, upiTransactionKeywords)
	if len(amounts) > count {
		count = len(amounts)
	}
	if len(txnIDs) > count {
		count = len(txnIDs)
	}
	m.TransactionCount = count

	for _, a := range amounts {
		m.TotalSpend += a
	}
	if len(amounts) > 0 {
		m.AvgTransactionAmount = m.TotalSpend / float64(len(amounts))
	}

	m.BillPayments = countPresent(text, billKeywords)

	var merchants []string
	for _, re := range upiMerchantRes {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			merchants = append(merchants, match[1])
		}
	}
	m.MerchantCategories, m.UniqueMerchants = dedupeMerchants(merchants)

	// No reliable per-transaction dates in free text; assume a month.
	m.RegularityPerDay = float64(m.TransactionCount) / 30.0
	m.DigitalBehaviorIndex = digitalBehaviorIndex(m.RegularityPerDay, m.BillPayments, m.TransactionCount, m.UniqueMerchants)
	return m
}

// ExtractUPITable pulls the same metrics out of tabular ledger rows. The
// first row is treated as a header; amount/date/description columns are
// resolved by fuzzy name matching with positional defaults (amount=1, date=0)
// when nothing matches.
func ExtractUPITable(rows [][]string) (m domain.UPIMetrics) {
	defer func() {
		if r := recover(); r != nil {
			m = domain.UPIMetrics{MerchantCategories: []string{}, Err: fmt.Sprintf("upi ledger extraction: %v", r)}
		}
	}()
	m.MerchantCategories = []string{}

	if len(rows) < 2 {
		m.Err = "upi ledger extraction: no data rows"
		return m
	}
	header := rows[0]
	data := rows[1:]

	amountCol := resolveColumn(header, amountColumnKeywords, min(1, len(header)-1))
	dateCol := resolveColumn(header, dateColumnKeywords, 0)
	descCol := resolveColumn(header, descColumnKeywords, defaultDescColumn(len(header)))

	var (
		amounts   []float64
		dates     []time.Time
		merchants []string
	)
	for _, row := range data {
		if amountCol >= len(row) {
			continue
		}
		amount, ok := parseAmount(row[amountCol])
		if !ok {
			continue
		}
		if amount < 0 {
			amount = -amount
		}
		amounts = append(amounts, amount)

		if dateCol < len(row) {
			if ts, ok := parseLedgerDate(row[dateCol]); ok {
				dates = append(dates, ts)
			}
		}

		if descCol < len(row) {
			desc := strings.ToLower(row[descCol])
			if containsAny(desc, billKeywords) {
				m.BillPayments++
			}
			if containsAny(desc, merchantKeywords) {
				words := strings.Fields(row[descCol])
				if len(words) > 3 {
					words = words[:3]
				}
				merchants = append(merchants, strings.Join(words, " "))
			}
		}
	}

	m.TransactionCount = len(amounts)
	for _, a := range amounts {
		m.TotalSpend += a
	}
	if m.TransactionCount > 0 {
		m.AvgTransactionAmount = m.TotalSpend / float64(m.TransactionCount)
	}

	m.RegularityPerDay = ledgerRegularity(m.TransactionCount, dates)
	m.MerchantCategories, m.UniqueMerchants = dedupeMerchants(merchants)
	m.DigitalBehaviorIndex = digitalBehaviorIndex(m.RegularityPerDay, m.BillPayments, m.TransactionCount, m.UniqueMerchants)
	return m
}

// ledgerRegularity is transactions per day over the observed date range,
// assuming a 30-day window when no dates parse.
func ledgerRegularity(count int, dates []time.Time) float64 {
	if count == 0 {
		return 0
	}
	if len(dates) == 0 {
		return float64(count) / 30.0
	}
	minDate, maxDate := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}
	rangeDays := int(maxDate.Sub(minDate).Hours() / 24)
	if rangeDays < 1 {
		rangeDays = 1
	}
	return float64(count) / float64(rangeDays)
}

func parseLedgerDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range ledgerDateLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// resolveColumn finds the first header cell containing any keyword, falling
// back to the positional default.
func resolveColumn(header []string, keywords []string, fallback int) int {
	for i, name := range header {
		lower := strings.ToLower(name)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return i
			}
		}
	}
	return fallback
}

func defaultDescColumn(width int) int {
	if width > 2 {
		return 2
	}
	return 0
}

func dedupeMerchants(merchants []string) ([]string, int) {
	seen := make(map[string]struct{}, len(merchants))
	for _, name := range merchants {
		seen[name] = struct{}{}
	}
	unique := make([]string, 0, len(seen))
	for name := range seen {
		unique = append(unique, name)
	}
	sort.Strings(unique)
	total := len(unique)
	if len(unique) > maxMerchantCategories {
		unique = unique[:maxMerchantCategories]
	}
	return unique, total
}

// digitalBehaviorIndex blends transaction frequency, bill-payment share and
// merchant diversity into a 0-10 index.
func digitalBehaviorIndex(regularity float64, billPayments, txnCount, uniqueMerchants int) float64 {
	denominator := txnCount
	if denominator < 1 {
		denominator = 1
	}
	score := regularity*2 + float64(billPayments)/float64(denominator)*5 + float64(uniqueMerchants)/10
	if score > 10 {
		return 10
	}
	return score
}
