package engine

import (
	"math"
	"testing"

	"github.com/asingla/credscope/internal/core/domain"
)

func TestDecisionBureauWeightVariesByLoanType(t *testing.T) {
	e := NewDefault()
	behavior := domain.BehaviorScore{Aggregate: 8.0}

	home := e.Decision(behavior, domain.LoanHome, iptr(720), nil)
	if math.Abs(home.AdjustedScore-752) > 1e-9 {
		t.Fatalf("expected home adjusted 752, got %v", home.AdjustedScore)
	}
	if home.Recommendation != "Approve" {
		t.Fatalf("expected Approve at 752, got %q", home.Recommendation)
	}

	personal := e.Decision(behavior, domain.LoanPersonal, iptr(720), nil)
	if math.Abs(personal.AdjustedScore-768) > 1e-9 {
		t.Fatalf("expected personal adjusted 768, got %v", personal.AdjustedScore)
	}
	if personal.AdjustedScore <= home.AdjustedScore {
		t.Fatalf("strong behavior must help more where bureau weight is lower")
	}
}

func TestDecisionWithoutBureauUsesBehaviorOnly(t *testing.T) {
	e := NewDefault()

	dec := e.Decision(domain.BehaviorScore{Aggregate: 7.0}, domain.LoanPersonal, nil, nil)
	if dec.AdjustedScore != 700 {
		t.Fatalf("expected 700, got %v", dec.AdjustedScore)
	}
	if dec.Recommendation != "Approve with caution" {
		t.Fatalf("expected cautious approval at 700, got %q", dec.Recommendation)
	}
	if dec.MaxEMI != nil {
		t.Fatalf("no salary means no EMI ceiling, got %v", *dec.MaxEMI)
	}
}

func TestDecisionBands(t *testing.T) {
	e := NewDefault()
	cases := []struct {
		aggregate float64
		label     string
		rec       string
	}{
		{8.0, "Low Risk", "Approve"},
		{7.0, "Moderate Risk", "Approve with caution"},
		{6.0, "Elevated Risk", "Caution"},
		{5.0, "High Risk", "Reject"},
	}
	for _, tc := range cases {
		dec := e.Decision(domain.BehaviorScore{Aggregate: tc.aggregate}, domain.LoanOther, nil, nil)
		if dec.RiskLabel != tc.label || dec.Recommendation != tc.rec {
			t.Fatalf("aggregate %v: expected %q/%q, got %q/%q",
				tc.aggregate, tc.label, tc.rec, dec.RiskLabel, dec.Recommendation)
		}
	}
}

func TestDecisionMaxEMIFromNetSalary(t *testing.T) {
	e := NewDefault()

	dec := e.Decision(domain.BehaviorScore{Aggregate: 8.0}, domain.LoanPersonal, nil, fptr(50000))
	if dec.MaxEMI == nil || *dec.MaxEMI != 15000 {
		t.Fatalf("expected max EMI 15000, got %v", dec.MaxEMI)
	}
}

func TestDecisionUnknownLoanTypeFallsBackToOtherWeight(t *testing.T) {
	e := NewDefault()
	behavior := domain.BehaviorScore{Aggregate: 8.0}

	unknown := e.Decision(behavior, domain.LoanType("boat"), iptr(720), nil)
	other := e.Decision(behavior, domain.LoanOther, iptr(720), nil)
	if unknown.AdjustedScore != other.AdjustedScore {
		t.Fatalf("expected other-weight fallback, got %v vs %v", unknown.AdjustedScore, other.AdjustedScore)
	}
}
