package usecase

import (
	"context"
	"errors"

	"github.com/asingla/credscope/internal/core/domain"
	"github.com/asingla/credscope/internal/core/ports"
)

// SelfReportedScoreUseCase scores survey answers that were never verified
// against documents. The record it returns is advisory only and never enters
// the verified score store.
type SelfReportedScoreUseCase struct {
	scorer ports.BehaviorScorer
}

func NewSelfReportedScoreUseCase(scorer ports.BehaviorScorer) *SelfReportedScoreUseCase {
	return &SelfReportedScoreUseCase{scorer: scorer}
}

func (uc *SelfReportedScoreUseCase) Score(ctx context.Context, answers domain.SurveyAnswers) (*domain.BehaviorScore, error) {
	if err := validateAnswers(answers); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "score survey", err)
	}

	behavior, err := uc.scorer.ScoreSelfReported(ctx, answers)
	if err != nil || behavior == nil {
		fallback := domain.FallbackBehaviorScore()
		return &fallback, nil
	}
	return behavior, nil
}

func validateAnswers(a domain.SurveyAnswers) error {
	switch {
	case a.MonthlyIncome < 0:
		return errors.New("monthly income must not be negative")
	case a.MonthlyExpenses < 0:
		return errors.New("monthly expenses must not be negative")
	case a.MonthlySavings < 0:
		return errors.New("monthly savings must not be negative")
	case a.ExistingEMI < 0:
		return errors.New("existing emi must not be negative")
	case a.Dependents < 0:
		return errors.New("dependents must not be negative")
	case a.MissedPaymentsLastYear < 0:
		return errors.New("missed payments must not be negative")
	}
	return nil
}
