package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asingla/credscope/internal/core/domain"
)

// ScoreRepository is the durable score store. Records are keyed by
// (user_id, doc_hash): re-uploading byte-identical documents overwrites the
// same row instead of growing history.
type ScoreRepository struct {
	db *sql.DB
}

func NewScoreRepository(db *sql.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082102)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS verified_scores (
	user_id TEXT NOT NULL,
	doc_hash TEXT NOT NULL,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (user_id, doc_hash)
);

CREATE INDEX IF NOT EXISTS idx_verified_scores_user_id ON verified_scores(user_id);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ScoreRepository) Lookup(ctx context.Context, userID, docHash string) (*domain.VerifiedScore, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT payload
FROM verified_scores
WHERE user_id = $1 AND doc_hash = $2
`, userID, docHash)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrScoreNotFound, "lookup score",
				fmt.Errorf("user %s hash %s", userID, docHash))
		}
		return nil, fmt.Errorf("scan score: %w", err)
	}

	var score domain.VerifiedScore
	if err := json.Unmarshal(payload, &score); err != nil {
		return nil, fmt.Errorf("unmarshal score payload: %w", err)
	}
	return &score, nil
}

func (r *ScoreRepository) Store(ctx context.Context, score *domain.VerifiedScore) error {
	payload, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("marshal score payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO verified_scores (user_id, doc_hash, payload, created_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (user_id, doc_hash)
DO UPDATE SET payload = EXCLUDED.payload, created_at = EXCLUDED.created_at
`, score.UserID, score.DocHash, payload, score.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}
