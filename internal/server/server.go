package server

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/anika2711garg/Planix-sub000/internal/config"
	"github.com/anika2711garg/Planix-sub000/internal/database"
	"github.com/anika2711garg/Planix-sub000/internal/logger"
	"github.com/anika2711garg/Planix-sub000/internal/service"
)

// Services is everything the handlers call into.
type Services struct {
	Auth            service.AuthService
	Users           service.UserService
	Teams           service.TeamService
	Sprints         service.SprintService
	Backlog         service.BacklogService
	TaskCompletions service.TaskCompletionService
	Notifications   service.NotificationService
	Velocity        service.VelocityService
	Planning        service.PlanningService
	Reports         service.ReportService
	Performance     service.PerformanceService
	Dashboard       service.DashboardService
	SprintMetrics   service.SprintMetricsService
}

type Server struct {
	svc            Services
	db             database.Service
	log            *zap.SugaredLogger
	validate       *validator.Validate
	allowedOrigins []string
}

func newServer(svc Services, db database.Service, allowedOrigins []string, log *zap.SugaredLogger) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"https://*", "http://*"}
	}
	return &Server{
		svc:            svc,
		db:             db,
		log:            log.Named("http"),
		validate:       newValidator(),
		allowedOrigins: allowedOrigins,
	}
}

func NewServer(cfg *config.Config, svc Services, db database.Service, log *zap.SugaredLogger) *http.Server {
	appServer := newServer(svc, db, cfg.HTTP.AllowedOrigins, log)

	return &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		ErrorLog:     logger.StdLog(appServer.log),
	}
}
