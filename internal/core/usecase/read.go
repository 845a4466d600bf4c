package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/asingla/credscope/internal/core/domain"
	"github.com/asingla/credscope/internal/core/engine"
	"github.com/asingla/credscope/internal/core/ports"
)

// SubmissionQueryUseCase is the read side: submission state, the persisted
// score for a finished submission, and loan-type recomputations over it.
type SubmissionQueryUseCase struct {
	repo   ports.SubmissionRepository
	scores ports.ScoreStore
	engine *engine.Engine
}

func NewSubmissionQueryUseCase(
	repo ports.SubmissionRepository,
	scores ports.ScoreStore,
	eng *engine.Engine,
) *SubmissionQueryUseCase {
	return &SubmissionQueryUseCase{
		repo:   repo,
		scores: scores,
		engine: eng,
	}
}

func (uc *SubmissionQueryUseCase) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	sub, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch submission by id: %w", err)
	}
	return sub, nil
}

func (uc *SubmissionQueryUseCase) GetResult(ctx context.Context, id string) (*domain.VerifiedScore, error) {
	sub, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch submission by id: %w", err)
	}
	if sub.Status != domain.SubmissionScored || sub.DocHash == "" {
		return nil, domain.WrapError(domain.ErrScoreNotFound, "fetch result",
			fmt.Errorf("submission %s is %s", id, sub.Status))
	}
	score, err := uc.scores.Lookup(ctx, sub.UserID, sub.DocHash)
	if err != nil {
		return nil, fmt.Errorf("lookup score: %w", err)
	}
	if score == nil {
		return nil, domain.WrapError(domain.ErrScoreNotFound, "fetch result", errors.New("score record missing"))
	}
	return score, nil
}

// Decision recomputes the loan-type adjusted recommendation for a scored
// submission without re-running the pipeline.
func (uc *SubmissionQueryUseCase) Decision(ctx context.Context, id string, loanType domain.LoanType) (*domain.LoanDecision, error) {
	score, err := uc.GetResult(ctx, id)
	if err != nil {
		return nil, err
	}
	netSalary := netSalaryOf(score.Dataset)
	decision := uc.engine.Decision(score.Behavior, loanType, bureauScoreOf(score.Dataset), netSalary)
	return &decision, nil
}

// Affordability recomputes the affordability assessment for any loan type
// against the persisted dataset and tier.
func (uc *SubmissionQueryUseCase) Affordability(ctx context.Context, id string, loanType domain.LoanType) (*domain.AffordabilityResult, error) {
	score, err := uc.GetResult(ctx, id)
	if err != nil {
		return nil, err
	}
	hybrid := score.HybridScore
	rate := uc.engine.Rate(score.RiskTier, loanType, &hybrid)
	aprMid := (rate.APRPercent.Min + rate.APRPercent.Max) / 2
	result := uc.engine.Affordability(score.Dataset, score.RiskTier, loanType, aprMid)
	return &result, nil
}

func netSalaryOf(ds domain.VerifiedDataset) *float64 {
	if ds.Salary == nil {
		return nil
	}
	return ds.Salary.NetSalary
}
