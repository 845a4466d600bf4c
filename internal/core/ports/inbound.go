package ports

import (
	"context"
	"io"

	"github.com/asingla/credscope/internal/core/domain"
)

// SubmissionIngestor is the inbound contract for document upload orchestration.
type SubmissionIngestor interface {
	Submit(ctx context.Context, userID string, loanType domain.LoanType, uploads map[domain.DocumentRole]Upload) (*domain.Submission, error)
}

// Upload is one incoming document before it reaches storage.
type Upload struct {
	Filename string
	Body     io.Reader
}

// SubmissionReader is the inbound read model for submission state, results,
// and loan-type recomputations over a persisted score.
type SubmissionReader interface {
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	GetResult(ctx context.Context, id string) (*domain.VerifiedScore, error)
	Decision(ctx context.Context, id string, loanType domain.LoanType) (*domain.LoanDecision, error)
	Affordability(ctx context.Context, id string, loanType domain.LoanType) (*domain.AffordabilityResult, error)
}

// SubmissionProcessor is the inbound contract for asynchronous scoring.
type SubmissionProcessor interface {
	ProcessByID(ctx context.Context, submissionID string) error
}

// SelfReportedScorer scores unverified survey answers without documents.
type SelfReportedScorer interface {
	Score(ctx context.Context, answers domain.SurveyAnswers) (*domain.BehaviorScore, error)
}
