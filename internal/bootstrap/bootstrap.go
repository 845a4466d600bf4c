package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/asingla/credscope/internal/config"
	"github.com/asingla/credscope/internal/core/engine"
	"github.com/asingla/credscope/internal/core/ports"
	"github.com/asingla/credscope/internal/core/usecase"
	"github.com/asingla/credscope/internal/infrastructure/cache/redis"
	"github.com/asingla/credscope/internal/infrastructure/docsource"
	"github.com/asingla/credscope/internal/infrastructure/llm/gemini"
	"github.com/asingla/credscope/internal/infrastructure/queue/nats"
	"github.com/asingla/credscope/internal/infrastructure/repository/postgres"
	"github.com/asingla/credscope/internal/infrastructure/resilience"
	"github.com/asingla/credscope/internal/infrastructure/scoring"
	"github.com/asingla/credscope/internal/infrastructure/storage/localfs"
	"github.com/asingla/credscope/internal/observability/metrics"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue     ports.MessageQueue
	SubmitUC  ports.SubmissionIngestor
	QueryUC   ports.SubmissionReader
	SelfUC    ports.SelfReportedScorer
	ProcessUC ports.SubmissionProcessor

	WorkerMetrics *metrics.WorkerMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger, service string) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	submissions := postgres.NewSubmissionRepository(db)
	if err := submissions.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure submissions schema: %w", err)
	}
	scoreRepo := postgres.NewScoreRepository(db)
	if err := scoreRepo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure scores schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init document storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:        cfg.RetryMaxAttempts,
		RetryInitialBackoff:     time.Duration(cfg.RetryInitialBackoffMS) * time.Millisecond,
		RetryMaxBackoff:         time.Duration(cfg.RetryMaxBackoffMS) * time.Millisecond,
		BreakerEnabled:          cfg.BreakerEnabled,
		BreakerMinRequests:      uint32(cfg.BreakerMinRequests),
		BreakerFailureRatio:     cfg.BreakerFailureRatio,
		BreakerOpenTimeout:      time.Duration(cfg.BreakerOpenTimeoutSec) * time.Second,
		BreakerHalfOpenMaxCalls: uint32(cfg.BreakerHalfOpenMaxCalls),
	})

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	workerMetrics := metrics.NewWorkerMetrics(service)

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	scores := redis.NewScoreCache(redisClient, scoreRepo, cfg.ScoreCacheTTL, logger, func() {
		workerMetrics.RecordCacheHit(service)
	})

	geminiClient := gemini.New(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey, cfg.GeminiRPM)
	resilientScorer := gemini.NewResilientScorer(geminiClient, executor)
	scorer := scoring.NewSafeScorer(resilientScorer, logger, func() {
		workerMetrics.RecordOracleFallback(service)
	})

	tables, err := config.LoadPricingTables(cfg.PricingTablesPath)
	if err != nil {
		return nil, fmt.Errorf("load pricing tables: %w", err)
	}
	eng := engine.New(tables)

	decoder := docsource.NewDecoder()

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:     queue,
		SubmitUC:  usecase.NewSubmitDocumentsUseCase(submissions, storage, queue),
		QueryUC:   usecase.NewSubmissionQueryUseCase(submissions, scores, eng),
		SelfUC:    usecase.NewSelfReportedScoreUseCase(scorer),
		ProcessUC: usecase.NewScoreSubmissionUseCase(submissions, storage, decoder, scorer, scores, eng, logger),

		WorkerMetrics: workerMetrics,

		closeFn: func() {
			queue.Close()
			_ = redisClient.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
