package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/asingla/credscope/internal/core/domain"
)

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *SubmissionRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	loan_type TEXT NOT NULL,
	documents JSONB NOT NULL DEFAULT '{}'::jsonb,
	status TEXT NOT NULL,
	doc_hash TEXT,
	error_message TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_user_id ON submissions(user_id);
CREATE INDEX IF NOT EXISTS idx_submissions_status ON submissions(status);
CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *domain.Submission) error {
	docsJSON, err := json.Marshal(sub.Documents)
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO submissions (
	id, user_id, loan_type, documents, status, doc_hash, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`,
		sub.ID, sub.UserID, string(sub.LoanType), docsJSON, string(sub.Status),
		sub.DocHash, sub.Error, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, loan_type, documents, status, doc_hash, error_message, created_at, updated_at
FROM submissions
WHERE id = $1
`, id)

	var sub domain.Submission
	var docsRaw []byte
	var loanType, status string
	var docHash, errMessage sql.NullString

	err := row.Scan(
		&sub.ID, &sub.UserID, &loanType, &docsRaw, &status,
		&docHash, &errMessage, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrSubmissionNotFound, "fetch submission", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan submission: %w", err)
	}

	if err := json.Unmarshal(docsRaw, &sub.Documents); err != nil {
		return nil, fmt.Errorf("unmarshal documents: %w", err)
	}
	sub.LoanType = domain.LoanType(loanType)
	sub.Status = domain.SubmissionStatus(status)
	sub.DocHash = docHash.String
	sub.Error = errMessage.String
	return &sub, nil
}

func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE submissions
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	return requireRow(res, "update submission status", id)
}

func (r *SubmissionRepository) SetResult(ctx context.Context, id string, docHash string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE submissions
SET doc_hash = $2, updated_at = $3
WHERE id = $1
`, id, docHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set submission result: %w", err)
	}
	return requireRow(res, "set submission result", id)
}

func requireRow(res sql.Result, operation, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrSubmissionNotFound, operation, fmt.Errorf("id %s", id))
	}
	return nil
}
