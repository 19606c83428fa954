package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

type UpdateSprintMetricsRequest struct {
	SprintID uint `json:"sprintId" validate:"required"`
}

type SprintMetricsResult struct {
	Message              string                       `json:"message"`
	VelocityMetric       *domain.VelocityMetric       `json:"velocityMetric"`
	WorkloadDistribution *domain.WorkloadDistribution `json:"workloadDistribution"`
}

type SprintMetricsService interface {
	// Update records the sprint's points per day and a workload entry for
	// the first member of its team.
	Update(ctx context.Context, sprintID uint) (*SprintMetricsResult, error)
}

type sprintMetricsService struct {
	sprints repository.SprintRepository
	users   repository.UserRepository
	metrics repository.MetricsRepository
	log     *zap.SugaredLogger
}

func NewSprintMetricsService(
	sprints repository.SprintRepository,
	users repository.UserRepository,
	metrics repository.MetricsRepository,
	log *zap.SugaredLogger,
) SprintMetricsService {
	return &sprintMetricsService{sprints: sprints, users: users, metrics: metrics, log: log.Named("service.metrics")}
}

func (s *sprintMetricsService) Update(ctx context.Context, sprintID uint) (*SprintMetricsResult, error) {
	sprint, err := s.sprints.FindDetailed(ctx, sprintID)
	if err != nil {
		return nil, notFound(err, "Sprint not found")
	}

	member, err := s.users.FirstInTeam(ctx, sprint.TeamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Invalidf("No team members found")
		}
		return nil, fmt.Errorf("load team member: %w", err)
	}

	total := domain.SumPoints(sprint.Items, false)
	days := max(sprint.DurationDays(), 1)
	velocity := &domain.VelocityMetric{
		SprintID:      sprint.ID,
		AveragePoints: float64(total) / float64(days),
	}
	workload := &domain.WorkloadDistribution{
		SprintID:        sprint.ID,
		UserID:          member.ID,
		AssignedPoints:  total,
		CompletedPoints: domain.SumPoints(sprint.Items, true),
	}
	if err := s.metrics.RecordSprintMetrics(ctx, velocity, workload); err != nil {
		return nil, fmt.Errorf("record metrics for sprint %d: %w", sprint.ID, err)
	}

	s.log.Infow("sprint metrics updated", "sprint_id", sprint.ID, "average_points", velocity.AveragePoints)
	return &SprintMetricsResult{
		Message:              "Sprint metrics updated successfully",
		VelocityMetric:       velocity,
		WorkloadDistribution: workload,
	}, nil
}
