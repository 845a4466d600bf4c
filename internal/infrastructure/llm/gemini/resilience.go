package gemini

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/asingla/credscope/internal/core/domain"
	"github.com/asingla/credscope/internal/core/ports"
	"github.com/asingla/credscope/internal/infrastructure/resilience"
)

// ResilientScorer runs oracle calls through the retry/breaker executor.
type ResilientScorer struct {
	inner    ports.BehaviorScorer
	executor *resilience.Executor
}

func NewResilientScorer(inner ports.BehaviorScorer, executor *resilience.Executor) *ResilientScorer {
	return &ResilientScorer{inner: inner, executor: executor}
}

func (s *ResilientScorer) ScoreVerified(ctx context.Context, ds *domain.VerifiedDataset) (*domain.BehaviorScore, error) {
	var score *domain.BehaviorScore
	err := s.executor.Execute(ctx, "gemini.score_verified", func(ctx context.Context) error {
		var callErr error
		score, callErr = s.inner.ScoreVerified(ctx, ds)
		return callErr
	}, classifyGeminiError)
	return score, wrapTemporaryIfNeeded("score verified dataset", err)
}

func (s *ResilientScorer) ScoreSelfReported(ctx context.Context, answers domain.SurveyAnswers) (*domain.BehaviorScore, error) {
	var score *domain.BehaviorScore
	err := s.executor.Execute(ctx, "gemini.score_self_reported", func(ctx context.Context) error {
		var callErr error
		score, callErr = s.inner.ScoreSelfReported(ctx, answers)
		return callErr
	}, classifyGeminiError)
	return score, wrapTemporaryIfNeeded("score survey answers", err)
}

func classifyGeminiError(err error) resilience.Verdict {
	if err == nil {
		return resilience.Verdict{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Verdict{Retryable: false, RecordFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.Verdict{Retryable: true, RecordFailure: true}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if isRetryableHTTPStatus(statusErr.StatusCode) {
			return resilience.Verdict{Retryable: true, RecordFailure: true}
		}
		return resilience.Verdict{Retryable: false, RecordFailure: false}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.Verdict{Retryable: true, RecordFailure: true}
	}

	return resilience.Verdict{Retryable: false, RecordFailure: true}
}

func wrapTemporaryIfNeeded(operation string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		return err
	}
	if classifyGeminiError(err).Retryable || resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	return err
}

func isRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
