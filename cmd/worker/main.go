package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asingla/credscope/internal/bootstrap"
	"github.com/asingla/credscope/internal/config"
	"github.com/asingla/credscope/internal/observability/logging"
)

const serviceName = "credscope-worker"

func main() {
	cfg := config.Load()
	logger := logging.New(serviceName, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger, serviceName)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: app.WorkerMetrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	log.Printf("worker subscribed to %s", cfg.NATSSubject)
	err = app.Queue.SubscribeSubmissionReceived(ctx, func(handlerCtx context.Context, submissionID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		if sub, err := app.QueryUC.GetByID(processCtx, submissionID); err == nil {
			app.WorkerMetrics.ObserveQueueLag(serviceName, time.Since(sub.CreatedAt))
		}

		app.WorkerMetrics.StartSubmission()
		start := time.Now()
		err := app.ProcessUC.ProcessByID(processCtx, submissionID)
		app.WorkerMetrics.FinishSubmission(serviceName, time.Since(start), err)
		return err
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
