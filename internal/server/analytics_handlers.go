package server

import (
	"errors"
	"net/http"

	"github.com/anika2711garg/Planix-sub000/internal/service"
)

func (s *Server) reorderItemsHandler(w http.ResponseWriter, r *http.Request) {
	sprintID, ok := queryID(w, r, "sprintId")
	if !ok {
		return
	}
	items, err := s.svc.Planning.Items(r.Context(), sprintID)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch backlog items")
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

func (s *Server) reorderHandler(w http.ResponseWriter, r *http.Request) {
	var req service.ReorderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.svc.Planning.Reorder(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to reorder backlog")
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) planHandler(w http.ResponseWriter, r *http.Request) {
	var req service.PlanRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.svc.Planning.Plan(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to get RL model prediction")
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) planRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	sprintID, ok := requiredQueryID(w, r, "sprintId", "Sprint ID is required")
	if !ok {
		return
	}
	recs, err := s.svc.Planning.Recommendations(r.Context(), sprintID)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch recommendations")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"success": true, "recommendations": recs})
}

func (s *Server) updateSprintMetricsHandler(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateSprintMetricsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	res, err := s.svc.SprintMetrics.Update(r.Context(), req.SprintID)
	if err != nil {
		s.writeError(w, r, err, "Failed to update sprint metrics")
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		report any
		err    error
	)

	switch r.URL.Query().Get("type") {
	case "sprint-summary":
		sprintID, ok := requiredQueryID(w, r, "sprintId", "Sprint ID is required for sprint summary")
		if !ok {
			return
		}
		report, err = s.svc.Reports.SprintSummary(ctx, sprintID)
	case "velocity":
		teamID, ok := queryID(w, r, "teamId")
		if !ok {
			return
		}
		period, ok := queryPeriod(w, r)
		if !ok {
			return
		}
		report, err = s.svc.Reports.Velocity(ctx, teamID, period)
	case "team-performance":
		teamID, ok := requiredQueryID(w, r, "teamId", "Team ID is required for team performance")
		if !ok {
			return
		}
		period, ok := queryPeriod(w, r)
		if !ok {
			return
		}
		report, err = s.svc.Reports.TeamPerformance(ctx, teamID, period)
	case "burndown":
		sprintID, ok := requiredQueryID(w, r, "sprintId", "Sprint ID is required for burndown analysis")
		if !ok {
			return
		}
		report, err = s.svc.Reports.Burndown(ctx, sprintID)
	case "available-sprints":
		teamID, ok := queryID(w, r, "teamId")
		if !ok {
			return
		}
		report, err = s.svc.Reports.AvailableSprints(ctx, teamID)
	default:
		respondWithError(w, http.StatusBadRequest, "Invalid report type")
		return
	}

	if err != nil {
		s.writeError(w, r, err, "Failed to generate report")
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

func (s *Server) customReportHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CustomReportRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	report, err := s.svc.Reports.Custom(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to generate custom report")
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

func (s *Server) performanceMetricsHandler(w http.ResponseWriter, r *http.Request) {
	metrics, err := s.svc.Performance.Metrics(r.Context())
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch performance metrics")
		return
	}
	respondWithJSON(w, http.StatusOK, metrics)
}

func (s *Server) performanceTeamHandler(w http.ResponseWriter, r *http.Request) {
	teamID, ok := queryID(w, r, "teamId")
	if !ok {
		return
	}
	workload, err := s.svc.Performance.Team(r.Context(), teamID)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch team performance")
		return
	}
	respondWithJSON(w, http.StatusOK, workload)
}

func (s *Server) performanceSprintsHandler(w http.ResponseWriter, r *http.Request) {
	sprintID, ok := queryID(w, r, "sprintId")
	if !ok {
		return
	}
	sprints, err := s.svc.Performance.Sprints(r.Context(), sprintID)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch sprint performance")
		return
	}
	respondWithJSON(w, http.StatusOK, sprints)
}

func (s *Server) performanceVelocityHandler(w http.ResponseWriter, r *http.Request) {
	teamID, ok := queryID(w, r, "teamId")
	if !ok {
		return
	}
	chart, err := s.svc.Performance.Velocity(r.Context(), teamID)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch velocity data")
		return
	}
	respondWithJSON(w, http.StatusOK, chart)
}

func (s *Server) performanceBurndownHandler(w http.ResponseWriter, r *http.Request) {
	sprintID, ok := queryID(w, r, "sprintId")
	if !ok {
		return
	}
	chart, err := s.svc.Performance.Burndown(r.Context(), sprintID)
	if errors.Is(err, service.ErrNoActiveSprint) {
		respondWithJSON(w, http.StatusOK, messageResponse{Message: "No active sprint found"})
		return
	}
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch burndown data")
		return
	}
	respondWithJSON(w, http.StatusOK, chart)
}

func (s *Server) performanceCompletionHandler(w http.ResponseWriter, r *http.Request) {
	teamID, ok := queryID(w, r, "teamId")
	if !ok {
		return
	}
	period, ok := queryPeriod(w, r)
	if !ok {
		return
	}
	metrics, err := s.svc.Performance.Completion(r.Context(), teamID, period)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch completion metrics")
		return
	}
	respondWithJSON(w, http.StatusOK, metrics)
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	dashboard, err := s.svc.Dashboard.ForUser(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch dashboard data")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"success": true, "data": dashboard})
}
