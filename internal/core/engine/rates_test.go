package engine

import (
	"testing"

	"github.com/asingla/credscope/internal/core/domain"
)

func TestRateLoanTypeOverridesTierBase(t *testing.T) {
	e := NewDefault()

	rec := e.Rate(domain.TierGreen, domain.LoanHome, fptr(780))
	if rec.APRPercent.Min != 8.5 || rec.APRPercent.Max != 10.5 {
		t.Fatalf("expected home Green band 8.5-10.5, got %+v", rec.APRPercent)
	}
	if rec.HybridScore == nil || *rec.HybridScore != 780 {
		t.Fatalf("expected hybrid score echoed, got %v", rec.HybridScore)
	}
}

func TestRatePersonalKeepsTierBase(t *testing.T) {
	e := NewDefault()

	rec := e.Rate(domain.TierGreen, domain.LoanPersonal, nil)
	if rec.APRPercent.Min != 11 || rec.APRPercent.Max != 13 {
		t.Fatalf("expected base Green band 11-13 for personal, got %+v", rec.APRPercent)
	}
}

func TestRateRedBusiness(t *testing.T) {
	e := NewDefault()

	rec := e.Rate(domain.TierRed, domain.LoanBusiness, nil)
	if rec.APRPercent.Min != 22 || rec.APRPercent.Max != 30 {
		t.Fatalf("expected business Red band 22-30, got %+v", rec.APRPercent)
	}
}

func TestRateUnknownTierReadsAsYellow(t *testing.T) {
	e := NewDefault()

	rec := e.Rate(domain.RiskTier("weird"), domain.LoanPersonal, nil)
	if rec.RiskTier != domain.TierYellow {
		t.Fatalf("expected unknown tier coerced to Yellow, got %v", rec.RiskTier)
	}
	if rec.APRPercent.Min != 14 || rec.APRPercent.Max != 18 {
		t.Fatalf("expected Yellow base band 14-18, got %+v", rec.APRPercent)
	}
}
