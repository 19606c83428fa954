package service

import (
	"context"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

type CreateSprintRequest struct {
	Name          string `json:"name" validate:"required"`
	Goals         string `json:"goals"`
	StartDate     Date   `json:"startDate"`
	EndDate       Date   `json:"endDate"`
	TeamID        uint   `json:"teamId" validate:"required"`
	ScopeAdjusted bool   `json:"scopeAdjusted"`
}

type UpdateSprintRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1"`
	Goals         *string `json:"goals"`
	StartDate     *Date   `json:"startDate"`
	EndDate       *Date   `json:"endDate"`
	TeamID        *uint   `json:"teamId" validate:"omitempty,gt=0"`
	ScopeAdjusted *bool   `json:"scopeAdjusted"`
}

type SprintService interface {
	List(ctx context.Context) ([]domain.Sprint, error)
	Create(ctx context.Context, req CreateSprintRequest) (*domain.Sprint, error)
	Update(ctx context.Context, id uint, req UpdateSprintRequest) (*domain.Sprint, error)
	Delete(ctx context.Context, id uint) error
}

type sprintService struct {
	sprints repository.SprintRepository
}

func NewSprintService(sprints repository.SprintRepository) SprintService {
	return &sprintService{sprints: sprints}
}

func (s *sprintService) List(ctx context.Context) ([]domain.Sprint, error) {
	return s.sprints.List(ctx, repository.SprintFilter{})
}

func (s *sprintService) Create(ctx context.Context, req CreateSprintRequest) (*domain.Sprint, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, domain.Invalidf("startDate and endDate are required")
	}
	sprint := &domain.Sprint{
		Name:          req.Name,
		Goals:         req.Goals,
		StartDate:     req.StartDate.Time,
		EndDate:       req.EndDate.Time,
		TeamID:        req.TeamID,
		ScopeAdjusted: req.ScopeAdjusted,
	}
	if err := checkSprintDates(sprint); err != nil {
		return nil, err
	}
	if err := s.sprints.Create(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

func (s *sprintService) Update(ctx context.Context, id uint, req UpdateSprintRequest) (*domain.Sprint, error) {
	sprint, err := s.sprints.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Sprint %d not found", id)
	}

	if req.Name != nil {
		sprint.Name = *req.Name
	}
	if req.Goals != nil {
		sprint.Goals = *req.Goals
	}
	if req.StartDate != nil && !req.StartDate.IsZero() {
		sprint.StartDate = req.StartDate.Time
	}
	if req.EndDate != nil && !req.EndDate.IsZero() {
		sprint.EndDate = req.EndDate.Time
	}
	if req.TeamID != nil && *req.TeamID != sprint.TeamID {
		sprint.TeamID = *req.TeamID
		sprint.Team = nil
	}
	if req.ScopeAdjusted != nil {
		sprint.ScopeAdjusted = *req.ScopeAdjusted
	}
	if err := checkSprintDates(sprint); err != nil {
		return nil, err
	}

	if err := s.sprints.Update(ctx, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

func (s *sprintService) Delete(ctx context.Context, id uint) error {
	return notFound(s.sprints.Delete(ctx, id), "Sprint %d not found", id)
}

func checkSprintDates(s *domain.Sprint) error {
	if s.EndDate.Before(s.StartDate) {
		return domain.Invalidf("endDate must not be before startDate")
	}
	return nil
}
