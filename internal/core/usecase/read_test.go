package usecase

import (
	"context"
	"testing"

	"github.com/asingla/credscope/internal/core/domain"
	"github.com/asingla/credscope/internal/core/engine"
)

func scoredFixture() (*submissionRepoFake, *scoreStoreFake, *SubmissionQueryUseCase) {
	net := 50000.0
	bureau := 720
	repo := &submissionRepoFake{sub: &domain.Submission{
		ID:      "sub-1",
		UserID:  "user-1",
		Status:  domain.SubmissionScored,
		DocHash: "hash-1",
	}}
	scores := &scoreStoreFake{cached: &domain.VerifiedScore{
		UserID:  "user-1",
		DocHash: "hash-1",
		Dataset: domain.VerifiedDataset{
			Salary:       &domain.SalarySection{NetSalary: &net, IsRegular: true},
			CreditBureau: &domain.BureauSection{Score: &bureau},
		},
		Behavior:    *scoredBehavior(),
		HybridScore: 768,
		RiskTier:    domain.TierGreen,
	}}
	return repo, scores, NewSubmissionQueryUseCase(repo, scores, engine.NewDefault())
}

func TestGetResultReturnsPersistedScore(t *testing.T) {
	_, scores, uc := scoredFixture()

	got, err := uc.GetResult(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("GetResult() error = %v", err)
	}
	if got.DocHash != scores.cached.DocHash {
		t.Fatalf("unexpected score: %+v", got)
	}
}

func TestGetResultRejectsUnscoredSubmission(t *testing.T) {
	repo, scores, _ := scoredFixture()
	repo.sub.Status = domain.SubmissionProcessing
	uc := NewSubmissionQueryUseCase(repo, scores, engine.NewDefault())

	if _, err := uc.GetResult(context.Background(), "sub-1"); !domain.IsKind(err, domain.ErrScoreNotFound) {
		t.Fatalf("expected score-not-found, got %v", err)
	}
}

func TestDecisionUsesRequestedLoanType(t *testing.T) {
	_, _, uc := scoredFixture()

	home, err := uc.Decision(context.Background(), "sub-1", domain.LoanHome)
	if err != nil {
		t.Fatalf("Decision() error = %v", err)
	}
	personal, err := uc.Decision(context.Background(), "sub-1", domain.LoanPersonal)
	if err != nil {
		t.Fatalf("Decision() error = %v", err)
	}
	if home.LoanType != domain.LoanHome || personal.LoanType != domain.LoanPersonal {
		t.Fatalf("loan types not echoed: %+v / %+v", home, personal)
	}
	// Home weights the bureau score heavier; with bureau 720 below the
	// rescaled behavior score the home decision must come out lower.
	if home.AdjustedScore >= personal.AdjustedScore {
		t.Fatalf("expected home < personal adjusted score, got %v >= %v", home.AdjustedScore, personal.AdjustedScore)
	}
	if home.MaxEMI == nil || *home.MaxEMI != 15000 {
		t.Fatalf("expected max EMI 15000, got %v", home.MaxEMI)
	}
}

func TestAffordabilityRecomputesPerLoanType(t *testing.T) {
	_, _, uc := scoredFixture()

	home, err := uc.Affordability(context.Background(), "sub-1", domain.LoanHome)
	if err != nil {
		t.Fatalf("Affordability() error = %v", err)
	}
	if home.LoanType != domain.LoanHome {
		t.Fatalf("loan type not echoed: %+v", home)
	}
	if home.SafeEMIRange.Max <= 0 || home.LoanAmountRange.Max <= home.LoanAmountRange.Min {
		t.Fatalf("degenerate affordability result: %+v", home)
	}
}
