package docsource

import (
	"strings"
	"testing"
)

func TestCleanTextDropsBoilerplate(t *testing.T) {
	in := strings.Join([]string{
		"Page 1 of 3",
		"CONFIDENTIAL",
		"Statement Period: Jan 2025",
		"Salary credit: 55,000.00",
		"Terms and Conditions apply to all accounts",
		"Please note: charges may vary",
		"UPI payment 1,250.00 to Grocery Mart",
	}, "\n")

	got := CleanText(in)
	if strings.Contains(got, "Page 1") || strings.Contains(got, "CONFIDENTIAL") {
		t.Fatalf("header/footer lines survived: %q", got)
	}
	if strings.Contains(got, "Terms and Conditions") || strings.Contains(got, "Please note") {
		t.Fatalf("legal boilerplate survived: %q", got)
	}
	if !strings.Contains(got, "Salary credit: 55,000.00") || !strings.Contains(got, "UPI payment 1,250.00") {
		t.Fatalf("financial lines dropped: %q", got)
	}
}

func TestCleanTextSuppressesRepeatedLines(t *testing.T) {
	in := strings.Repeat("Debit 500.00 ATM withdrawal\n", 4) + "Credit 900.00 refund\n"
	got := CleanText(in)
	if strings.Count(got, "Debit 500.00") != 1 {
		t.Fatalf("duplicate lines not suppressed: %q", got)
	}
}

func TestCleanTextDropsLinesWithoutSignal(t *testing.T) {
	got := CleanText("hello world without any financial words\nloan repayment schedule\n")
	if strings.Contains(got, "hello world") {
		t.Fatalf("noise line survived: %q", got)
	}
	if !strings.Contains(got, "loan repayment") {
		t.Fatalf("keyword line dropped: %q", got)
	}
}

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	got := CleanText("Balance    1,000.00\n")
	if got != "Balance 1,000.00" {
		t.Fatalf("whitespace not collapsed: %q", got)
	}
}

func TestCleanTextEmptyInput(t *testing.T) {
	if got := CleanText(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
