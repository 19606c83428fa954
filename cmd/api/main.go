package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/anika2711garg/Planix-sub000/internal/auth"
	"github.com/anika2711garg/Planix-sub000/internal/config"
	"github.com/anika2711garg/Planix-sub000/internal/database"
	"github.com/anika2711garg/Planix-sub000/internal/logger"
	"github.com/anika2711garg/Planix-sub000/internal/planning"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
	"github.com/anika2711garg/Planix-sub000/internal/server"
	"github.com/anika2711garg/Planix-sub000/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, timeout time.Duration, log *zap.SugaredLogger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctxTimeout, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("closing database connection pool")
	if err := dbService.Close(); err != nil {
		log.Errorw("closing database connection pool", "error", err)
	}

	log.Info("server exiting")
	done <- true
}

func newServices(cfg *config.Config, repos *repository.Repositories, log *zap.SugaredLogger) server.Services {
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	runner := planning.NewExecRunner(cfg.Planning, log)
	if err := runner.Check(); err != nil {
		log.Warnw("rl planning unavailable until the planner script is installed", "error", err)
	}

	return server.Services{
		Auth:            service.NewAuthService(repos.Users, tokens, hasher, log),
		Users:           service.NewUserService(repos.Users),
		Teams:           service.NewTeamService(repos.Teams, repos.Users, log),
		Sprints:         service.NewSprintService(repos.Sprints),
		Backlog:         service.NewBacklogService(repos.Backlog),
		TaskCompletions: service.NewTaskCompletionService(repos.TaskCompletions),
		Notifications:   service.NewNotificationService(repos.Notifications),
		Velocity:        service.NewVelocityService(repos.Velocity),
		Planning:        service.NewPlanningService(repos.Backlog, repos.Sprints, repos.Velocity, repos.Metrics, runner, log),
		Reports:         service.NewReportService(repos.Sprints, repos.Teams, nil),
		Performance:     service.NewPerformanceService(repos.Sprints, repos.Teams, repos.Users, repos.Backlog, nil),
		Dashboard:       service.NewDashboardService(repos.Users, repos.Sprints, nil),
		SprintMetrics:   service.NewSprintMetricsService(repos.Sprints, repos.Users, repos.Metrics, log),
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	dbService, err := database.New(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := dbService.Migrate(ctx); err != nil {
		_ = dbService.Close()
		return fmt.Errorf("migrate database: %w", err)
	}

	svc := newServices(cfg, repository.New(dbService.GetDB()), log)

	if cfg.Auth.SeedPassword != "" {
		created, err := svc.Auth.SeedManager(ctx, cfg.Auth.SeedUsername, cfg.Auth.SeedEmail, cfg.Auth.SeedPassword)
		if err != nil {
			_ = dbService.Close()
			return fmt.Errorf("seed manager: %w", err)
		}
		if created {
			log.Infow("seeded manager account", "username", cfg.Auth.SeedUsername)
		}
	}

	apiServer := server.NewServer(cfg, svc, dbService, log)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, cfg.Server.ShutdownTimeout, log, done)

	log.Infow("starting server", "addr", apiServer.Addr)
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	<-done
	log.Info("graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
