package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", s.signupHandler)
		r.Post("/auth/signin", s.signinHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.With(requireRead).Get("/auth/me", s.meHandler)

			// CRUD resources: any role reads, managers and leaders write.
			r.Group(func(r chi.Router) {
				r.Use(writeGuard)

				r.Route("/user", func(r chi.Router) {
					r.Get("/", s.listUsersHandler)
					r.Post("/", s.createUserHandler)
					r.Put("/{id}", s.updateUserHandler)
					r.Delete("/{id}", s.deleteUserHandler)
				})
				r.Get("/available-users", s.availableUsersHandler)

				r.Route("/teams", func(r chi.Router) {
					r.Get("/", s.listTeamsHandler)
					r.Post("/", s.createTeamHandler)
					r.Put("/{id}", s.updateTeamHandler)
					r.Delete("/{id}", s.deleteTeamHandler)
				})

				r.Route("/sprints", func(r chi.Router) {
					r.Get("/", s.listSprintsHandler)
					r.Post("/", s.createSprintHandler)
					r.Put("/{id}", s.updateSprintHandler)
					r.Delete("/{id}", s.deleteSprintHandler)
				})

				r.Route("/backlog", func(r chi.Router) {
					r.Get("/", s.listBacklogHandler)
					r.Post("/", s.createBacklogItemHandler)
					r.Put("/{id}", s.updateBacklogItemHandler)
					r.Delete("/{id}", s.deleteBacklogItemHandler)
				})

				r.Route("/taskcompletion", func(r chi.Router) {
					r.Get("/", s.listTaskCompletionsHandler)
					r.Post("/", s.createTaskCompletionHandler)
					r.Put("/{id}", s.updateTaskCompletionHandler)
					r.Delete("/{id}", s.deleteTaskCompletionHandler)
				})

				r.Get("/notification", s.listNotificationsHandler)
				r.Post("/notification", s.createNotificationHandler)
				r.Put("/notification/{id}", s.updateNotificationHandler)
				r.Delete("/notification/{id}", s.deleteNotificationHandler)

				r.Route("/velocity", func(r chi.Router) {
					r.Get("/", s.listVelocityHandler)
					r.Post("/", s.createVelocityHandler)
					r.Put("/{id}", s.updateVelocityHandler)
					r.Delete("/{id}", s.deleteVelocityHandler)
				})

				r.Get("/ai-reorder", s.reorderItemsHandler)
				r.Post("/ai-reorder", s.reorderHandler)
				r.Get("/rl-planning", s.planRecommendationsHandler)
				r.Post("/rl-planning", s.planHandler)
				r.Post("/ai/update-sprint-metrics", s.updateSprintMetricsHandler)
			})

			r.Route("/team-members", func(r chi.Router) {
				r.With(requireRead).Get("/", s.teamMembersHandler)
				r.With(requireManager).Post("/", s.addTeamMemberHandler)
				r.With(requireManager).Delete("/", s.removeTeamMemberHandler)
			})

			// Any known role: the sprint board, marking notifications read and
			// the analytics.
			r.Group(func(r chi.Router) {
				r.Use(requireRead)

				r.Route("/sprint-tasks", func(r chi.Router) {
					r.Get("/", s.listSprintTasksHandler)
					r.Post("/", s.createSprintTaskHandler)
					r.Put("/{id}", s.updateBacklogItemHandler)
					r.Delete("/{id}", s.deleteBacklogItemHandler)
				})
				r.Put("/notification/{id}/read", s.markNotificationReadHandler)

				r.Get("/reports", s.reportHandler)
				r.Post("/reports", s.customReportHandler)

				r.Route("/performance", func(r chi.Router) {
					r.Get("/metrics", s.performanceMetricsHandler)
					r.Get("/team", s.performanceTeamHandler)
					r.Get("/sprints", s.performanceSprintsHandler)
					r.Get("/velocity", s.performanceVelocityHandler)
					r.Get("/burndown", s.performanceBurndownHandler)
					r.Get("/completion", s.performanceCompletionHandler)
				})

				r.Get("/dashboard", s.dashboardHandler)
			})
		})
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}
