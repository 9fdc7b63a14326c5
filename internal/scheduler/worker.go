package scheduler

import (
	"context"
	"errors"
	"fmt"

	"leadscout_backend/internal/business"
	leadservice "leadscout_backend/internal/leads/service"
	"leadscout_backend/platform/apperr"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Reconciler is the merger operation the worker runs.
type Reconciler interface {
	ReconcileInRegion(ctx context.Context, candidates []business.Result, owner, region string) (leadservice.ReconcileResult, error)
}

type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	reconciler Reconciler
	log        *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, reconciler Reconciler, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	w := &Worker{
		server:     server,
		mux:        asynq.NewServeMux(),
		reconciler: reconciler,
		log:        log,
	}
	w.mux.HandleFunc(TaskReconcileLeads, w.handleReconcile)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleReconcile runs one import. Malformed payloads and integrity or input
// errors are not retried; store failures are.
func (w *Worker) handleReconcile(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseReconcilePayload(task)
	if err != nil {
		return fmt.Errorf("%w: parse reconcile payload: %v", asynq.SkipRetry, err)
	}

	result, err := w.reconciler.ReconcileInRegion(ctx, payload.Candidates, payload.OwnerID, payload.Region)
	log := w.log.WithOwner(payload.OwnerID)
	if err != nil {
		log.Error("background reconcile failed",
			"created", result.Created, "updated", result.Updated, "skipped", result.Skipped, "error", err)
		if permanent(err) {
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		return err
	}

	log.Info("background reconcile completed",
		"created", result.Created, "updated", result.Updated, "skipped", result.Skipped)
	return nil
}

func permanent(err error) bool {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return false
	}
	switch appErr.Kind {
	case apperr.KindValidation, apperr.KindDataIntegrity, apperr.KindNotFound:
		return true
	default:
		return false
	}
}
