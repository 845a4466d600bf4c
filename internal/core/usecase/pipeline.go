package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/asingla/credscope/internal/core/dataset"
	"github.com/asingla/credscope/internal/core/dochash"
	"github.com/asingla/credscope/internal/core/domain"
	"github.com/asingla/credscope/internal/core/engine"
	"github.com/asingla/credscope/internal/core/extract"
	"github.com/asingla/credscope/internal/core/ports"
)

// ScoreSubmissionUseCase runs the full scoring pipeline for one submission:
// read the stored documents, fingerprint them, reuse a cached score when the
// exact same document set was scored before, otherwise extract metrics, build
// the verified dataset, score it and derive the downstream recommendations.
// Source documents are deleted on every exit path.
type ScoreSubmissionUseCase struct {
	repo    ports.SubmissionRepository
	storage ports.DocumentStore
	decoder ports.DocumentDecoder
	scorer  ports.BehaviorScorer
	scores  ports.ScoreStore
	engine  *engine.Engine
	logger  *slog.Logger
}

func NewScoreSubmissionUseCase(
	repo ports.SubmissionRepository,
	storage ports.DocumentStore,
	decoder ports.DocumentDecoder,
	scorer ports.BehaviorScorer,
	scores ports.ScoreStore,
	eng *engine.Engine,
	logger *slog.Logger,
) *ScoreSubmissionUseCase {
	return &ScoreSubmissionUseCase{
		repo:    repo,
		storage: storage,
		decoder: decoder,
		scorer:  scorer,
		scores:  scores,
		engine:  eng,
		logger:  logger,
	}
}

func (uc *ScoreSubmissionUseCase) ProcessByID(ctx context.Context, submissionID string) error {
	if err := uc.repo.UpdateStatus(ctx, submissionID, domain.SubmissionProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	score, err := uc.run(ctx, submissionID)
	if err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, submissionID, domain.SubmissionFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SetResult(ctx, submissionID, score.DocHash); err != nil {
		return fmt.Errorf("record result hash: %w", err)
	}
	if err := uc.repo.UpdateStatus(ctx, submissionID, domain.SubmissionScored, ""); err != nil {
		return fmt.Errorf("set status=scored: %w", err)
	}
	return nil
}

func (uc *ScoreSubmissionUseCase) run(ctx context.Context, submissionID string) (*domain.VerifiedScore, error) {
	sub, err := uc.repo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("fetch submission by id: %w", err)
	}
	if len(sub.Documents) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "score submission", errors.New("submission has no documents"))
	}

	files, err := uc.readDocuments(ctx, sub)
	// Uploaded files are transient: remove them whether scoring succeeds,
	// fails or is served from cache.
	defer uc.removeDocuments(ctx, sub)
	if err != nil {
		return nil, err
	}

	docHash := dochash.Digest(files)

	if cached, lookupErr := uc.scores.Lookup(ctx, sub.UserID, docHash); lookupErr == nil && cached != nil {
		uc.logger.Info("score served from cache", "submission_id", sub.ID, "doc_hash", docHash)
		return cached, nil
	} else if lookupErr != nil && !domain.IsKind(lookupErr, domain.ErrScoreNotFound) {
		uc.logger.Warn("score lookup failed, scoring from scratch", "submission_id", sub.ID, "error", lookupErr)
	}

	ds := uc.extractDataset(ctx, sub, files)

	behavior, insufficient := uc.scoreDataset(ctx, sub.ID, ds)

	bureauScore := bureauScoreOf(ds)
	hybrid := engine.HybridScore(bureauScore, behavior.Aggregate)
	tier := engine.TierFor(&hybrid)

	rate := uc.engine.Rate(tier, sub.LoanType, &hybrid)
	aprMid := (rate.APRPercent.Min + rate.APRPercent.Max) / 2
	afford := uc.engine.Affordability(ds, tier, sub.LoanType, aprMid)
	plan := uc.engine.ImprovementPlan(ds)

	score := &domain.VerifiedScore{
		UserID:           sub.UserID,
		DocHash:          docHash,
		Dataset:          ds,
		Behavior:         behavior,
		HybridScore:      hybrid,
		RiskTier:         tier,
		Affordability:    &afford,
		InterestRate:     &rate,
		ImprovementPlan:  &plan,
		InsufficientData: insufficient,
		CreatedAt:        time.Now().UTC(),
	}

	// A persistence failure must not discard a computed score; the caller
	// still gets the result and the next identical upload recomputes it.
	if storeErr := uc.scores.Store(ctx, score); storeErr != nil {
		uc.logger.Error("store score failed", "submission_id", sub.ID, "doc_hash", docHash, "error", storeErr)
	}

	return score, nil
}

func (uc *ScoreSubmissionUseCase) readDocuments(ctx context.Context, sub *domain.Submission) (map[domain.DocumentRole][]byte, error) {
	files := make(map[domain.DocumentRole][]byte, len(sub.Documents))
	for role, doc := range sub.Documents {
		body, err := uc.storage.Open(ctx, doc.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("open %s document: %w", role, err)
		}
		data, err := io.ReadAll(body)
		closeErr := body.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s document: %w", role, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("close %s document: %w", role, closeErr)
		}
		files[role] = data
	}
	return files, nil
}

func (uc *ScoreSubmissionUseCase) removeDocuments(ctx context.Context, sub *domain.Submission) {
	for role, doc := range sub.Documents {
		if err := uc.storage.Remove(ctx, doc.StorageKey); err != nil {
			uc.logger.Warn("remove source document failed",
				"submission_id", sub.ID, "role", string(role), "key", doc.StorageKey, "error", err)
		}
	}
}

// extractDataset decodes and parses each uploaded document. A document that
// cannot be decoded drops out of the dataset instead of failing the run.
func (uc *ScoreSubmissionUseCase) extractDataset(
	ctx context.Context,
	sub *domain.Submission,
	files map[domain.DocumentRole][]byte,
) domain.VerifiedDataset {
	var (
		bureau *domain.BureauMetrics
		bank   *domain.BankMetrics
		upi    *domain.UPIMetrics
		salary *domain.SalaryMetrics
	)

	for role, data := range files {
		content, err := uc.decoder.Decode(ctx, sub.Documents[role].Filename, data)
		if err != nil {
			uc.logger.Warn("decode document failed",
				"submission_id", sub.ID, "role", string(role), "error", err)
			continue
		}

		switch role {
		case domain.RoleCIBIL:
			m := extract.ExtractBureau(content.Text)
			bureau = &m
		case domain.RoleBank:
			m := extract.ExtractBank(content.Text)
			bank = &m
		case domain.RoleUPI:
			var m domain.UPIMetrics
			if len(content.Rows) > 0 {
				m = extract.ExtractUPITable(content.Rows)
			} else {
				m = extract.ExtractUPIText(content.Text)
			}
			upi = &m
		case domain.RoleSalary:
			m := extract.ExtractSalary(content.Text)
			salary = &m
		}
	}

	return dataset.Build(bureau, bank, upi, salary)
}

// scoreDataset invokes the behavioral scorer, falling back to the neutral
// record when the dataset is too thin or the scorer errors out. The second
// return reports whether the dataset was rejected as insufficient.
func (uc *ScoreSubmissionUseCase) scoreDataset(ctx context.Context, submissionID string, ds domain.VerifiedDataset) (domain.BehaviorScore, bool) {
	if !dataset.Validate(ds) {
		uc.logger.Warn("dataset below scoring threshold, using fallback record", "submission_id", submissionID)
		return domain.FallbackBehaviorScore(), true
	}

	behavior, err := uc.scorer.ScoreVerified(ctx, &ds)
	if err != nil || behavior == nil {
		uc.logger.Error("behavior scoring failed, using fallback record", "submission_id", submissionID, "error", err)
		return domain.FallbackBehaviorScore(), false
	}
	return *behavior, false
}

func bureauScoreOf(ds domain.VerifiedDataset) *int {
	if ds.CreditBureau == nil {
		return nil
	}
	return ds.CreditBureau.Score
}
