// Package scoring hardens the behavioral scorer: callers upstream rely on
// scoring never failing, so every error from the underlying oracle collapses
// into the neutral fallback record.
package scoring

import (
	"context"
	"log/slog"

	"github.com/asingla/credscope/internal/core/domain"
	"github.com/asingla/credscope/internal/core/ports"
)

type SafeScorer struct {
	inner          ports.BehaviorScorer
	logger         *slog.Logger
	recordFallback func()
}

// NewSafeScorer wraps inner so that it never returns an error. recordFallback
// is invoked once per absorbed failure; nil disables the hook.
func NewSafeScorer(inner ports.BehaviorScorer, logger *slog.Logger, recordFallback func()) *SafeScorer {
	return &SafeScorer{inner: inner, logger: logger, recordFallback: recordFallback}
}

func (s *SafeScorer) ScoreVerified(ctx context.Context, ds *domain.VerifiedDataset) (*domain.BehaviorScore, error) {
	score, err := s.inner.ScoreVerified(ctx, ds)
	return s.absorb("score_verified", score, err), nil
}

func (s *SafeScorer) ScoreSelfReported(ctx context.Context, answers domain.SurveyAnswers) (*domain.BehaviorScore, error) {
	score, err := s.inner.ScoreSelfReported(ctx, answers)
	return s.absorb("score_self_reported", score, err), nil
}

func (s *SafeScorer) absorb(operation string, score *domain.BehaviorScore, err error) *domain.BehaviorScore {
	if err == nil && score != nil {
		return score
	}
	s.logger.Error("oracle scoring failed, substituting fallback record", "operation", operation, "error", err)
	if s.recordFallback != nil {
		s.recordFallback()
	}
	fallback := domain.FallbackBehaviorScore()
	return &fallback
}
