package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asingla/credscope/internal/core/domain"
	"github.com/asingla/credscope/internal/core/ports"
)

type SubmitDocumentsUseCase struct {
	repo    ports.SubmissionRepository
	storage ports.DocumentStore
	queue   ports.MessageQueue
}

func NewSubmitDocumentsUseCase(
	repo ports.SubmissionRepository,
	storage ports.DocumentStore,
	queue ports.MessageQueue,
) *SubmitDocumentsUseCase {
	return &SubmitDocumentsUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

func (uc *SubmitDocumentsUseCase) Submit(
	ctx context.Context,
	userID string,
	loanType domain.LoanType,
	uploads map[domain.DocumentRole]ports.Upload,
) (*domain.Submission, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "submit documents", errors.New("empty user id"))
	}
	if len(uploads) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "submit documents", errors.New("no documents supplied"))
	}
	for role := range uploads {
		if !role.Valid() {
			return nil, domain.WrapError(domain.ErrInvalidInput, "submit documents", fmt.Errorf("unknown document role %q", role))
		}
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	docs := make(map[domain.DocumentRole]domain.StoredDocument, len(uploads))
	for role, upload := range uploads {
		storageKey := fmt.Sprintf("%s_%s_%s", id, role, sanitizeFilename(upload.Filename))
		if err := uc.storage.Save(ctx, storageKey, upload.Body); err != nil {
			return nil, fmt.Errorf("save %s document: %w", role, err)
		}
		docs[role] = domain.StoredDocument{
			StorageKey: storageKey,
			Filename:   upload.Filename,
		}
	}

	sub := &domain.Submission{
		ID:        id,
		UserID:    userID,
		LoanType:  loanType,
		Documents: docs,
		Status:    domain.SubmissionUploaded,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	if err := uc.queue.PublishSubmissionReceived(ctx, sub.ID); err != nil {
		return nil, fmt.Errorf("publish submission event: %w", err)
	}

	return sub, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
