package ports

import (
	"context"
	"io"

	"github.com/asingla/credscope/internal/core/domain"
)

// SubmissionRepository persists and reads submission state.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) error
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus, errMessage string) error
	SetResult(ctx context.Context, id string, docHash string) error
}

// DocumentStore stores uploaded documents for the lifetime of one scoring run.
type DocumentStore interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// MessageQueue publishes/consumes submission events.
type MessageQueue interface {
	PublishSubmissionReceived(ctx context.Context, submissionID string) error
	SubscribeSubmissionReceived(ctx context.Context, handler func(context.Context, string) error) error
}

// DocumentContent is a decoded document payload. Rows is populated for
// tabular formats (xlsx, csv); Text for everything else. Text has already
// been stripped of boilerplate.
type DocumentContent struct {
	Text string
	Rows [][]string
}

// DocumentDecoder turns raw uploaded bytes into text or table rows.
type DocumentDecoder interface {
	Decode(ctx context.Context, filename string, data []byte) (DocumentContent, error)
}

// BehaviorScorer produces behavioral sub-scores from verified metrics or
// self-reported answers.
type BehaviorScorer interface {
	ScoreVerified(ctx context.Context, dataset *domain.VerifiedDataset) (*domain.BehaviorScore, error)
	ScoreSelfReported(ctx context.Context, answers domain.SurveyAnswers) (*domain.BehaviorScore, error)
}

// ScoreStore persists computed scores keyed by user and document digest.
type ScoreStore interface {
	Lookup(ctx context.Context, userID, docHash string) (*domain.VerifiedScore, error)
	Store(ctx context.Context, score *domain.VerifiedScore) error
}
