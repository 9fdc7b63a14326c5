package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"leadscout_backend/internal/events"
	"leadscout_backend/internal/geocode"
	apphttp "leadscout_backend/internal/http"
	"leadscout_backend/internal/http/router"
	"leadscout_backend/internal/leads"
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/handler"
	"leadscout_backend/internal/scheduler"
	"leadscout_backend/internal/search"
	"leadscout_backend/internal/snapshot"
	"leadscout_backend/internal/snapshot/kv"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/db"
	"leadscout_backend/platform/logger"
	"leadscout_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if strings.TrimSpace(cfg.GetJWTAccessSecret()) == "" {
		panic("JWT_ACCESS_SECRET is required")
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	if err := db.RunMigrations(ctx, pool); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	catalog, err := domain.LoadCatalog(cfg.GetPipelineCatalogPath())
	if err != nil {
		log.Error("failed to load pipeline catalog", "error", err, "path", cfg.GetPipelineCatalogPath())
		panic("failed to load pipeline catalog: " + err.Error())
	}

	snapshotStore, snapshotCloser, err := kv.Open(cfg, cfg.GetRedisTLSInsecure())
	if err != nil {
		log.Error("failed to open snapshot store", "error", err, "backend", cfg.GetSnapshotBackend())
		panic("failed to open snapshot store: " + err.Error())
	}
	defer func() { _ = snapshotCloser.Close() }()
	log.Info("snapshot store ready", "backend", cfg.GetSnapshotBackend())

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	enqueuer, closeScheduler := initImportScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	geocodeModule, err := geocode.NewModule(cfg, val, log)
	if err != nil {
		log.Error("failed to initialize geocode module", "error", err)
		panic("failed to initialize geocode module: " + err.Error())
	}

	leadsModule := leads.NewModule(leads.Deps{
		DB:            pool,
		Catalog:       catalog,
		EventBus:      eventBus,
		Validator:     val,
		Logger:        log,
		Enqueuer:      enqueuer,
		Photos:        search.PhotoLinker(cfg),
		DefaultRegion: cfg.GetDefaultPhoneRegion(),
	})

	slots := snapshot.NewSlots(snapshotStore, cfg.GetSnapshotKey(), log)
	searchModule := search.NewModule(cfg, geocodeModule.Resolver(), slots, leadsModule.Merger(), val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:    cfg,
		Logger:    log,
		Health:    db.NewPoolAdapter(pool),
		EventBus:  eventBus,
		Validator: val,
		Modules: []apphttp.Module{
			geocodeModule,
			searchModule,
			leadsModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
	}

	// Let in-flight event handlers (activity records) finish before the pool closes.
	eventBus.Wait()
	log.Info("server stopped")
}

func initImportScheduler(cfg config.SchedulerConfig, log *logger.Logger) (handler.ImportEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; background imports disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize import scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
