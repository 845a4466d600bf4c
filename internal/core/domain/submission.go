package domain

import "time"

type SubmissionStatus string

const (
	SubmissionUploaded   SubmissionStatus = "uploaded"
	SubmissionProcessing SubmissionStatus = "processing"
	SubmissionScored     SubmissionStatus = "scored"
	SubmissionFailed     SubmissionStatus = "failed"
)

// StoredDocument points at a transient source document. Files are deleted as
// soon as their metrics are extracted; the key is useless afterwards.
type StoredDocument struct {
	StorageKey string `json:"storage_key"`
	Filename   string `json:"filename"`
}

// Submission is one set of uploaded documents queued for scoring.
type Submission struct {
	ID        string                          `json:"id"`
	UserID    string                          `json:"user_id"`
	LoanType  LoanType                        `json:"loan_type"`
	Documents map[DocumentRole]StoredDocument `json:"documents"`
	Status    SubmissionStatus                `json:"status"`
	DocHash   string                          `json:"doc_hash,omitempty"`
	Error     string                          `json:"error,omitempty"`
	CreatedAt time.Time                       `json:"created_at"`
	UpdatedAt time.Time                       `json:"updated_at"`
}
