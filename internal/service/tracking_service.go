package service

import (
	"context"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

// Times are in minutes.
type CreateTaskCompletionRequest struct {
	BacklogItemID uint    `json:"backlogItemId" validate:"required"`
	PlannedTime   int64   `json:"plannedTime" validate:"required,gt=0"`
	ActualTime    *int64  `json:"actualTime" validate:"omitempty,gte=0"`
	DelayReason   *string `json:"delayReason"`
}

type UpdateTaskCompletionRequest struct {
	BacklogItemID *uint   `json:"backlogItemId" validate:"omitempty,gt=0"`
	PlannedTime   *int64  `json:"plannedTime" validate:"omitempty,gt=0"`
	ActualTime    *int64  `json:"actualTime" validate:"omitempty,gte=0"`
	DelayReason   *string `json:"delayReason"`
}

type TaskCompletionService interface {
	List(ctx context.Context) ([]domain.TaskCompletion, error)
	Create(ctx context.Context, req CreateTaskCompletionRequest) (*domain.TaskCompletion, error)
	Update(ctx context.Context, id uint, req UpdateTaskCompletionRequest) (*domain.TaskCompletion, error)
	Delete(ctx context.Context, id uint) error
}

type taskCompletionService struct {
	repo repository.TaskCompletionRepository
}

func NewTaskCompletionService(repo repository.TaskCompletionRepository) TaskCompletionService {
	return &taskCompletionService{repo: repo}
}

func (s *taskCompletionService) List(ctx context.Context) ([]domain.TaskCompletion, error) {
	return s.repo.List(ctx)
}

func (s *taskCompletionService) Create(ctx context.Context, req CreateTaskCompletionRequest) (*domain.TaskCompletion, error) {
	if req.BacklogItemID == 0 || req.PlannedTime == 0 {
		return nil, domain.Invalidf("Backlog item ID and planned time are required")
	}
	if req.ActualTime != nil && *req.ActualTime < 0 {
		return nil, domain.Invalidf("Actual time cannot be negative")
	}
	tc := &domain.TaskCompletion{
		BacklogItemID: req.BacklogItemID,
		PlannedTime:   req.PlannedTime,
		ActualTime:    req.ActualTime,
		DelayReason:   req.DelayReason,
	}
	if err := s.repo.Create(ctx, tc); err != nil {
		return nil, err
	}
	return tc, nil
}

func (s *taskCompletionService) Update(ctx context.Context, id uint, req UpdateTaskCompletionRequest) (*domain.TaskCompletion, error) {
	tc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Task completion %d not found", id)
	}
	if req.ActualTime != nil && *req.ActualTime < 0 {
		return nil, domain.Invalidf("Actual time cannot be negative")
	}
	if req.BacklogItemID != nil && *req.BacklogItemID != tc.BacklogItemID {
		tc.BacklogItemID = *req.BacklogItemID
		tc.BacklogItem = nil
	}
	if req.PlannedTime != nil {
		tc.PlannedTime = *req.PlannedTime
	}
	if req.ActualTime != nil {
		tc.ActualTime = req.ActualTime
	}
	if req.DelayReason != nil {
		tc.DelayReason = req.DelayReason
	}
	if err := s.repo.Update(ctx, tc); err != nil {
		return nil, err
	}
	return tc, nil
}

func (s *taskCompletionService) Delete(ctx context.Context, id uint) error {
	return notFound(s.repo.Delete(ctx, id), "Task completion %d not found", id)
}

type CreateNotificationRequest struct {
	UserID  uint   `json:"userId" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=delay risk completion"`
	Message string `json:"message" validate:"required"`
}

type UpdateNotificationRequest struct {
	UserID  *uint   `json:"userId" validate:"omitempty,gt=0"`
	Type    *string `json:"type" validate:"omitempty,oneof=delay risk completion"`
	Message *string `json:"message" validate:"omitempty,min=1"`
	Read    *bool   `json:"read"`
}

var notificationTypes = map[string]bool{"delay": true, "risk": true, "completion": true}

type NotificationService interface {
	// List returns newest first, optionally only those of one user.
	List(ctx context.Context, userID *uint) ([]domain.Notification, error)
	Create(ctx context.Context, req CreateNotificationRequest) (*domain.Notification, error)
	Update(ctx context.Context, id uint, req UpdateNotificationRequest) (*domain.Notification, error)
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, userID *uint) ([]domain.Notification, error) {
	return s.repo.List(ctx, userID)
}

func (s *notificationService) Create(ctx context.Context, req CreateNotificationRequest) (*domain.Notification, error) {
	if req.UserID == 0 || req.Type == "" || req.Message == "" {
		return nil, domain.Invalidf("User ID, type, and message are required")
	}
	if !notificationTypes[req.Type] {
		return nil, domain.Invalidf("Invalid notification type")
	}
	n := &domain.Notification{UserID: req.UserID, Type: req.Type, Message: req.Message}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *notificationService) Update(ctx context.Context, id uint, req UpdateNotificationRequest) (*domain.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Notification %d not found", id)
	}
	if req.Type != nil {
		if !notificationTypes[*req.Type] {
			return nil, domain.Invalidf("Invalid notification type")
		}
		n.Type = *req.Type
	}
	if req.UserID != nil && *req.UserID != n.UserID {
		n.UserID = *req.UserID
		n.User = nil
	}
	if req.Message != nil {
		n.Message = *req.Message
	}
	if req.Read != nil {
		n.Read = *req.Read
	}
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uint) error {
	return notFound(s.repo.MarkRead(ctx, id), "Notification %d not found", id)
}

func (s *notificationService) Delete(ctx context.Context, id uint) error {
	return notFound(s.repo.Delete(ctx, id), "Notification %d not found", id)
}

type CreateVelocityRequest struct {
	SprintID      uint     `json:"sprintId" validate:"required"`
	AveragePoints *float64 `json:"averagePoints" validate:"required,gte=0"`
}

type UpdateVelocityRequest struct {
	SprintID      *uint    `json:"sprintId" validate:"omitempty,gt=0"`
	AveragePoints *float64 `json:"averagePoints" validate:"omitempty,gte=0"`
}

type VelocityService interface {
	List(ctx context.Context) ([]domain.VelocityMetric, error)
	Create(ctx context.Context, req CreateVelocityRequest) (*domain.VelocityMetric, error)
	Update(ctx context.Context, id uint, req UpdateVelocityRequest) (*domain.VelocityMetric, error)
	Delete(ctx context.Context, id uint) error
}

type velocityService struct {
	repo repository.VelocityRepository
}

func NewVelocityService(repo repository.VelocityRepository) VelocityService {
	return &velocityService{repo: repo}
}

func (s *velocityService) List(ctx context.Context) ([]domain.VelocityMetric, error) {
	return s.repo.List(ctx)
}

func (s *velocityService) Create(ctx context.Context, req CreateVelocityRequest) (*domain.VelocityMetric, error) {
	if req.SprintID == 0 || req.AveragePoints == nil {
		return nil, domain.Invalidf("Sprint ID and average points are required")
	}
	if *req.AveragePoints < 0 {
		return nil, domain.Invalidf("Average points cannot be negative")
	}
	m := &domain.VelocityMetric{SprintID: req.SprintID, AveragePoints: *req.AveragePoints}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *velocityService) Update(ctx context.Context, id uint, req UpdateVelocityRequest) (*domain.VelocityMetric, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Velocity metric %d not found", id)
	}
	if req.AveragePoints != nil {
		if *req.AveragePoints < 0 {
			return nil, domain.Invalidf("Average points cannot be negative")
		}
		m.AveragePoints = *req.AveragePoints
	}
	if req.SprintID != nil && *req.SprintID != m.SprintID {
		m.SprintID = *req.SprintID
		m.Sprint = nil
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *velocityService) Delete(ctx context.Context, id uint) error {
	return notFound(s.repo.Delete(ctx, id), "Velocity metric %d not found", id)
}
