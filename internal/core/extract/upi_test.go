package extract

import (
	"math"
	"testing"
)

func TestExtractUPITableResolvesColumnsByHeader(t *testing.T) {
	rows := [][]string{
		{"Date", "Amount (Rs)", "Narration"},
		{"2024-03-01", "500.00", "electricity bill payment"},
		{"2024-03-02", "250.00", "grocery store purchase"},
		{"2024-03-11", "1,250.00", "transfer to friend"},
	}

	m := ExtractUPITable(rows)
	if m.Err != "" {
		t.Fatalf("unexpected extraction error: %s", m.Err)
	}
	if m.TransactionCount != 3 {
		t.Fatalf("expected 3 transactions, got %d", m.TransactionCount)
	}
	if m.TotalSpend != 2000 {
		t.Fatalf("expected total spend 2000, got %v", m.TotalSpend)
	}
	if math.Abs(m.AvgTransactionAmount-2000.0/3.0) > 1e-9 {
		t.Fatalf("expected avg %v, got %v", 2000.0/3.0, m.AvgTransactionAmount)
	}
	// 10-day observed range.
	if math.Abs(m.RegularityPerDay-0.3) > 1e-9 {
		t.Fatalf("expected 0.3 txn/day, got %v", m.RegularityPerDay)
	}
	if m.BillPayments != 1 {
		t.Fatalf("expected 1 bill payment, got %d", m.BillPayments)
	}
	if m.UniqueMerchants != 1 {
		t.Fatalf("expected 1 merchant, got %d", m.UniqueMerchants)
	}
}

func TestExtractUPITablePositionalFallback(t *testing.T) {
	rows := [][]string{
		{"A", "B"},
		{"x", "100"},
		{"y", "200"},
	}

	m := ExtractUPITable(rows)
	if m.TransactionCount != 2 {
		t.Fatalf("expected 2 transactions via positional amount column, got %d", m.TransactionCount)
	}
	if m.TotalSpend != 300 {
		t.Fatalf("expected total spend 300, got %v", m.TotalSpend)
	}
	// No parseable dates; a 30-day window is assumed.
	if math.Abs(m.RegularityPerDay-2.0/30.0) > 1e-9 {
		t.Fatalf("expected 30-day fallback regularity, got %v", m.RegularityPerDay)
	}
}

func TestExtractUPITableNegativeAmountsAreSpend(t *testing.T) {
	rows := [][]string{
		{"date", "amount"},
		{"2024-01-01", "-750.00"},
	}

	m := ExtractUPITable(rows)
	if m.TotalSpend != 750 {
		t.Fatalf("expected 750 spend from negative ledger entry, got %v", m.TotalSpend)
	}
}

func TestExtractUPITableRejectsHeaderOnly(t *testing.T) {
	m := ExtractUPITable([][]string{{"date", "amount"}})
	if m.Err == "" {
		t.Fatalf("expected error for header-only ledger")
	}
}

func TestExtractUPIText(t *testing.T) {
	text := "UPI payment successful\n" +
		"Paid to Zomato ₹450.00\n" +
		"electricity bill recharge\n" +
		"merchant: Bigbasket"

	m := ExtractUPIText(text)
	if m.Err != "" {
		t.Fatalf("unexpected extraction error: %s", m.Err)
	}
	if m.TotalSpend != 450 {
		t.Fatalf("expected 450 spend, got %v", m.TotalSpend)
	}
	// upi, payment and successful each appear.
	if m.TransactionCount != 3 {
		t.Fatalf("expected 3 transactions, got %d", m.TransactionCount)
	}
	// bill, electricity and recharge each appear.
	if m.BillPayments != 3 {
		t.Fatalf("expected 3 bill payment signals, got %d", m.BillPayments)
	}
	if m.UniqueMerchants != 2 {
		t.Fatalf("expected Zomato and Bigbasket, got %v", m.MerchantCategories)
	}
	if m.DigitalBehaviorIndex <= 0 || m.DigitalBehaviorIndex > 10 {
		t.Fatalf("expected index in (0,10], got %v", m.DigitalBehaviorIndex)
	}
}

func TestDedupeMerchantsCapsCategories(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "a"}
	unique, total := dedupeMerchants(names)
	if total != 11 {
		t.Fatalf("expected 11 unique merchants, got %d", total)
	}
	if len(unique) != maxMerchantCategories {
		t.Fatalf("expected capped list of %d, got %d", maxMerchantCategories, len(unique))
	}
}
