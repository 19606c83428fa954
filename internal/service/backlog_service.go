package service

import (
	"context"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

type CreateBacklogItemRequest struct {
	Type         string `json:"type" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	StoryPoints  int    `json:"storyPoints" validate:"gte=0"`
	Priority     int    `json:"priority" validate:"gte=0"`
	Status       string `json:"status"`
	OwnerID      *uint  `json:"ownerId"`
	SprintID     *uint  `json:"sprintId"`
	Dependencies []uint `json:"dependencies"`
}

// UpdateBacklogItemRequest applies only the fields that are present. An
// ownerId or sprintId of 0 clears the reference.
type UpdateBacklogItemRequest struct {
	Type        *string `json:"type" validate:"omitempty,min=1"`
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	StoryPoints *int    `json:"storyPoints" validate:"omitempty,gte=0"`
	Priority    *int    `json:"priority" validate:"omitempty,gte=0"`
	Status      *string `json:"status"`
	OwnerID     *uint   `json:"ownerId"`
	SprintID    *uint   `json:"sprintId"`
}

// CreateSprintTaskRequest creates an item directly on a sprint board.
type CreateSprintTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	SprintID    uint   `json:"sprintId" validate:"required"`
	Description string `json:"description"`
	StoryPoints int    `json:"storyPoints" validate:"gte=0"`
	Priority    int    `json:"priority" validate:"gte=0"`
	Status      string `json:"status"`
	OwnerID     *uint  `json:"ownerId"`
	Type        string `json:"type"`
}

const defaultTaskType = "task"

type BacklogService interface {
	List(ctx context.Context) ([]domain.BacklogItem, error)
	Create(ctx context.Context, req CreateBacklogItemRequest) (*domain.BacklogItem, error)
	Update(ctx context.Context, id uint, req UpdateBacklogItemRequest) (*domain.BacklogItem, error)
	Delete(ctx context.Context, id uint) error

	// SprintTasks lists the items of a sprint, highest priority first.
	SprintTasks(ctx context.Context, sprintID uint) ([]domain.BacklogItem, error)
	CreateSprintTask(ctx context.Context, req CreateSprintTaskRequest) (*domain.BacklogItem, error)
}

type backlogService struct {
	items repository.BacklogRepository
}

func NewBacklogService(items repository.BacklogRepository) BacklogService {
	return &backlogService{items: items}
}

func (s *backlogService) List(ctx context.Context) ([]domain.BacklogItem, error) {
	return s.items.List(ctx, repository.ItemFilter{})
}

func (s *backlogService) Create(ctx context.Context, req CreateBacklogItemRequest) (*domain.BacklogItem, error) {
	if req.Type == "" || req.Title == "" {
		return nil, domain.Invalidf("Type and title are required")
	}
	status, err := statusOrDefault(req.Status)
	if err != nil {
		return nil, err
	}

	item := &domain.BacklogItem{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		StoryPoints: req.StoryPoints,
		Priority:    req.Priority,
		Status:      status,
		OwnerID:     nonZero(req.OwnerID),
		SprintID:    nonZero(req.SprintID),
	}
	if err := s.items.Create(ctx, item, req.Dependencies); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *backlogService) Update(ctx context.Context, id uint, req UpdateBacklogItemRequest) (*domain.BacklogItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Backlog item %d not found", id)
	}

	if req.Type != nil {
		item.Type = *req.Type
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.StoryPoints != nil {
		item.StoryPoints = *req.StoryPoints
	}
	if req.Priority != nil {
		item.Priority = *req.Priority
	}
	if req.Status != nil {
		status, ok := domain.NormalizeStatus(*req.Status)
		if !ok {
			return nil, domain.Invalidf("invalid status %q", *req.Status)
		}
		item.Status = status
	}
	if req.OwnerID != nil {
		item.OwnerID = nonZero(req.OwnerID)
		item.Owner = nil
	}
	if req.SprintID != nil {
		item.SprintID = nonZero(req.SprintID)
		item.Sprint = nil
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *backlogService) Delete(ctx context.Context, id uint) error {
	return notFound(s.items.Delete(ctx, id), "Backlog item %d not found", id)
}

func (s *backlogService) SprintTasks(ctx context.Context, sprintID uint) ([]domain.BacklogItem, error) {
	return s.items.List(ctx, repository.ItemFilter{
		SprintID: &sprintID,
		Order:    repository.OrderByPriorityDesc,
	})
}

func (s *backlogService) CreateSprintTask(ctx context.Context, req CreateSprintTaskRequest) (*domain.BacklogItem, error) {
	if req.Title == "" || req.SprintID == 0 {
		return nil, domain.Invalidf("Title and Sprint ID are required")
	}
	status, err := statusOrDefault(req.Status)
	if err != nil {
		return nil, err
	}
	itemType := req.Type
	if itemType == "" {
		itemType = defaultTaskType
	}

	sprintID := req.SprintID
	item := &domain.BacklogItem{
		Type:        itemType,
		Title:       req.Title,
		Description: req.Description,
		StoryPoints: req.StoryPoints,
		Priority:    req.Priority,
		Status:      status,
		OwnerID:     nonZero(req.OwnerID),
		SprintID:    &sprintID,
	}
	if err := s.items.Create(ctx, item, nil); err != nil {
		return nil, err
	}
	return item, nil
}

func statusOrDefault(s string) (domain.ItemStatus, error) {
	if s == "" {
		return domain.StatusTodo, nil
	}
	status, ok := domain.NormalizeStatus(s)
	if !ok {
		return "", domain.Invalidf("invalid status %q", s)
	}
	return status, nil
}

func nonZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}
