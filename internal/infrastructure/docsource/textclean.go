package docsource

import (
	"regexp"
	"strings"
	"unicode"
)

// Boilerplate scrubbing keeps oracle payloads small: page headers, legal
// footers and repeated lines carry no financial signal.

var headerFooterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^page\s+\d+`),
	regexp.MustCompile(`^\d+\s+of\s+\d+`),
	regexp.MustCompile(`^confidential`),
	regexp.MustCompile(`^internal\s+use`),
	regexp.MustCompile(`^statement\s+period`),
	regexp.MustCompile(`^generated\s+on`),
	regexp.MustCompile(`^printed\s+on`),
	regexp.MustCompile(`^©\s*`),
	regexp.MustCompile(`^all\s+rights\s+reserved`),
	regexp.MustCompile(`^this\s+is\s+a\s+computer\s+generated`),
}

var termsKeywords = []string{
	"terms and conditions",
	"terms & conditions",
	"disclaimer",
	"liability",
	"warranty",
	"copyright",
	"trademark",
	"by using this",
	"you agree",
	"please note",
}

var usefulKeywords = []string{
	"debit", "credit", "balance", "transaction", "payment",
	"transfer", "upi", "emi", "loan", "salary", "deposit",
	"withdrawal", "fee", "charge", "interest",
}

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(` {2,}`)
)

// repeatWindow is how far back duplicate-line suppression looks.
const repeatWindow = 5

// CleanText strips headers, footers, legal boilerplate, near-duplicate lines
// and lines without any financial signal from extracted document text.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isHeaderFooter(trimmed) || isTermsLine(trimmed) {
			continue
		}
		if recentlySeen(kept, trimmed) {
			continue
		}
		if hasUsefulData(trimmed) {
			kept = append(kept, trimmed)
		}
	}

	cleaned := strings.Join(kept, "\n")
	cleaned = multiNewline.ReplaceAllString(cleaned, "\n\n")
	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

func isHeaderFooter(line string) bool {
	lower := strings.ToLower(line)
	for _, p := range headerFooterPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	// Very short lines without a digit are page furniture.
	if len(line) < 5 && !strings.ContainsFunc(line, unicode.IsDigit) {
		return true
	}
	return false
}

func isTermsLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range termsKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func recentlySeen(kept []string, line string) bool {
	start := len(kept) - repeatWindow
	if start < 0 {
		start = 0
	}
	for _, prev := range kept[start:] {
		if prev == line {
			return true
		}
	}
	return false
}

func hasUsefulData(line string) bool {
	if strings.ContainsFunc(line, unicode.IsDigit) {
		return true
	}
	lower := strings.ToLower(line)
	for _, kw := range usefulKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
