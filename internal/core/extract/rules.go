// Package extract derives fixed-shape metric records from statement-like
// plain text and tabular ledgers. Extraction is pure pattern matching plus
// arithmetic aggregation: no network, no model calls. Counting fields are
// keyword-occurrence counts over the whole text, which trades false positives
// from narrative co-occurrence for robustness to layout variation.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// rule pairs a candidate pattern with a plausibility check. Rule lists are
// evaluated in order; the first match whose captured value passes the check
// wins. A nil check accepts any parsed value.
type rule struct {
	re        *regexp.Regexp
	plausible func(v float64) bool
}

func inRange(lo, hi float64) func(float64) bool {
	return func(v float64) bool { return v >= lo && v <= hi }
}

// firstAmount returns the first plausible captured amount, or nil.
func firstAmount(rules []rule, text string) *float64 {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, ok := parseAmount(m[1])
		if !ok {
			continue
		}
		if r.plausible != nil && !r.plausible(v) {
			continue
		}
		return &v
	}
	return nil
}

// allAmounts collects every plausible captured amount across all rules.
func allAmounts(rules []rule, text string) []float64 {
	var out []float64
	for _, r := range rules {
		for _, m := range r.re.FindAllStringSubmatch(text, -1) {
			v, ok := parseAmount(m[1])
			if !ok {
				continue
			}
			if r.plausible != nil && !r.plausible(v) {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

// firstRuleAmounts collects every plausible amount from the first rule that
// matches anything. Used where rules overlap and would double count.
func firstRuleAmounts(rules []rule, text string) []float64 {
	for _, r := range rules {
		if out := allAmounts([]rule{r}, text); len(out) > 0 {
			return out
		}
	}
	return nil
}

// parseAmount strips grouping separators and currency noise before coercion.
func parseAmount(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.':
			return r
		default:
			return -1
		}
	}, raw)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// countOccurrences sums whole-word occurrences of every keyword.
func countOccurrences(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		total += len(re.FindAllStringIndex(text, -1))
	}
	return total
}

// countPresent counts how many keywords appear at least once.
func countPresent(text string, keywords []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
