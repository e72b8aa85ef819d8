package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careconnect/internal/api"
	"careconnect/internal/app/service"
	"careconnect/internal/app/worker"
	"careconnect/internal/common/security"
	"careconnect/internal/domain/repository"
	"careconnect/internal/platform/config"
	"careconnect/internal/platform/database"
	"careconnect/internal/platform/logging"
	"careconnect/internal/platform/queue"
)

type stores struct {
	users      repository.UserRepository
	patients   repository.PatientRepository
	volunteers repository.VolunteerRepository
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.IsDevelopment())
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Storage
	st, db, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	// 3. Priority alerts
	alerts := service.NewNoopAlertPublisher()
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	workerDone := make(chan struct{})
	close(workerDone)

	if cfg.UseRedis() {
		rdb, err := queue.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()

		alertQueue := queue.NewAlertQueue(rdb, cfg.AlertQueueName)
		alerts = alertQueue
		workerDone = startAlertWorker(workerCtx, alertQueue, cfg, log)
		log.Info("priority alerts enabled", "queue", alertQueue.Name())
	} else {
		log.Info("REDIS_ADDR not set, priority alerts disabled")
	}

	// 4. Services and router
	tokens := security.NewTokenManager([]byte(cfg.JWTSecret), cfg.JWTExp)
	router := api.NewRouter(api.Services{
		Auth:       service.NewAuthService(st.users, tokens, cfg.BcryptCost, log),
		Patients:   service.NewPatientService(st.patients, alerts, log),
		Volunteers: service.NewVolunteerService(st.volunteers),
		Dashboard:  service.NewDashboardService(st.patients, st.volunteers),
	}, api.Options{
		AuthRateLimit: cfg.AuthRateLimit,
		AuthRateBurst: cfg.AuthRateBurst,
		StaticDir:     cfg.StaticDir,
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 5. Serve until signalled, then shut down gracefully
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.APIPort, "env", cfg.AppEnv, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-workerDone

	log.Info("server and worker stopped gracefully")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, *sql.DB, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn("using in-memory store, data is lost on restart")
		return &stores{
			users:      repository.NewMemoryUserRepository(),
			patients:   repository.NewMemoryPatientRepository(),
			volunteers: repository.NewMemoryVolunteerRepository(),
		}, nil, nil
	}

	db, err := database.Connect(ctx, cfg.DBConnStr())
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info("database connected and migrated")

	return &stores{
		users:      repository.NewPgUserRepository(db),
		patients:   repository.NewPgPatientRepository(db),
		volunteers: repository.NewPgVolunteerRepository(db),
	}, db, nil
}

func startAlertWorker(ctx context.Context, q *queue.AlertQueue, cfg *config.Config, log *slog.Logger) chan struct{} {
	var dispatcher worker.Dispatcher = worker.NewLogDispatcher(log)
	if cfg.AlertWebhookURL != "" {
		dispatcher = worker.NewWebhookDispatcher(cfg.AlertWebhookURL)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.NewAlertWorker(q, dispatcher, log.With("component", "alert_worker")).Start(ctx)
	}()
	return done
}
