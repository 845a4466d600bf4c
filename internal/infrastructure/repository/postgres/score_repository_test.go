package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/asingla/credscope/internal/core/domain"
)

func newScoreRepoWithMock(t *testing.T) (*ScoreRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &ScoreRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestScoreLookupMissReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newScoreRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT payload").
		WithArgs("user-1", "hash-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Lookup(context.Background(), "user-1", "hash-1")
	if !domain.IsKind(err, domain.ErrScoreNotFound) {
		t.Fatalf("expected ErrScoreNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestScoreLookupUnmarshalsPayload(t *testing.T) {
	repo, mock, done := newScoreRepoWithMock(t)
	defer done()

	want := domain.VerifiedScore{
		UserID:      "user-1",
		DocHash:     "hash-1",
		HybridScore: 712.5,
		RiskTier:    domain.TierYellow,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	payload, _ := json.Marshal(want)

	mock.ExpectQuery("SELECT payload").
		WithArgs("user-1", "hash-1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	got, err := repo.Lookup(context.Background(), "user-1", "hash-1")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got.HybridScore != want.HybridScore || got.RiskTier != want.RiskTier {
		t.Fatalf("unexpected score: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestScoreStoreUpserts(t *testing.T) {
	repo, mock, done := newScoreRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO verified_scores").
		WithArgs("user-1", "hash-1", sqlmock.AnyArg(), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Store(context.Background(), &domain.VerifiedScore{
		UserID:    "user-1",
		DocHash:   "hash-1",
		RiskTier:  domain.TierGreen,
		CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
