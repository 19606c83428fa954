package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/planning"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

const capacityPerMember = 40

type ReorderRequest struct {
	SprintID     *uint             `json:"sprintId"`
	Criteria     planning.Criteria `json:"criteria" validate:"omitempty,oneof=priority complexity dependencies sprint_readiness"`
	TeamCapacity float64           `json:"teamCapacity" validate:"gte=0"`
	SprintGoals  []string          `json:"sprintGoals"`
}

type ReorderItems struct {
	Success bool                 `json:"success"`
	Items   []domain.BacklogItem `json:"items"`
	Count   int                  `json:"count"`
}

type ReorderResponse struct {
	Success bool                   `json:"success"`
	Result  planning.ReorderResult `json:"result"`
	Message string                 `json:"message"`
}

type PlanRequest struct {
	SprintID uint `json:"sprintId" validate:"required"`
}

type PlanResponse struct {
	Success    bool                `json:"success"`
	Prediction planning.Prediction `json:"prediction"`
}

// PlanningService reorders backlog items with the scoring heuristic and asks
// the external planner for a sprint plan.
type PlanningService interface {
	// Items lists the items of a sprint, or the unassigned backlog when
	// sprintID is nil, lowest priority value first.
	Items(ctx context.Context, sprintID *uint) (*ReorderItems, error)
	Reorder(ctx context.Context, req ReorderRequest) (*ReorderResponse, error)
	Plan(ctx context.Context, req PlanRequest) (*PlanResponse, error)
	// Recommendations lists the stored planner recommendations of a sprint,
	// newest first.
	Recommendations(ctx context.Context, sprintID uint) ([]domain.SprintRecommendation, error)
}

type planningService struct {
	items    repository.BacklogRepository
	sprints  repository.SprintRepository
	velocity repository.VelocityRepository
	metrics  repository.MetricsRepository
	runner   planning.Runner
	log      *zap.SugaredLogger
}

func NewPlanningService(
	items repository.BacklogRepository,
	sprints repository.SprintRepository,
	velocity repository.VelocityRepository,
	metrics repository.MetricsRepository,
	runner planning.Runner,
	log *zap.SugaredLogger,
) PlanningService {
	return &planningService{
		items:    items,
		sprints:  sprints,
		velocity: velocity,
		metrics:  metrics,
		runner:   runner,
		log:      log.Named("service.planning"),
	}
}

func (s *planningService) Items(ctx context.Context, sprintID *uint) (*ReorderItems, error) {
	items, err := s.items.List(ctx, sprintItemFilter(sprintID, repository.OrderByPriorityAsc))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.BacklogItem{}
	}
	return &ReorderItems{Success: true, Items: items, Count: len(items)}, nil
}

func (s *planningService) Reorder(ctx context.Context, req ReorderRequest) (*ReorderResponse, error) {
	criteria := req.Criteria
	if criteria == "" {
		criteria = planning.CriteriaPriority
	}
	if !criteria.Valid() {
		return nil, domain.Invalidf("invalid criteria %q", criteria)
	}

	items, err := s.items.List(ctx, sprintItemFilter(req.SprintID, repository.OrderByCreated))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &domain.Error{Kind: domain.ErrNoItems, Msg: "No backlog items found for reordering"}
	}

	result := planning.Reorder(items, planning.ReorderOptions{
		Criteria:     criteria,
		TeamCapacity: req.TeamCapacity,
		SprintGoals:  req.SprintGoals,
	})

	if req.SprintID != nil {
		ids := make([]uint, len(result.Items))
		for i := range result.Items {
			ids[i] = result.Items[i].ID
			result.Items[i].Priority = i + 1
		}
		if err := s.items.SavePriorities(ctx, ids); err != nil {
			return nil, fmt.Errorf("save priorities for sprint %d: %w", *req.SprintID, err)
		}
		s.log.Infow("backlog reordered", "sprint_id", *req.SprintID, "criteria", criteria, "items", len(ids))
	}

	return &ReorderResponse{
		Success: true,
		Result:  result,
		Message: fmt.Sprintf("Successfully reordered %d items", len(result.Items)),
	}, nil
}

func (s *planningService) Plan(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	sprint, err := s.sprints.FindDetailed(ctx, req.SprintID)
	if err != nil {
		return nil, notFound(err, "Sprint not found")
	}

	members := 0
	if sprint.Team != nil {
		members = len(sprint.Team.Members)
	}
	velocity := 0.0
	latest, err := s.velocity.LatestForSprint(ctx, sprint.ID)
	switch {
	case err == nil:
		velocity = latest.AveragePoints
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("load velocity for sprint %d: %w", sprint.ID, err)
	}

	input := planning.BuildModelInput(sprint.Items, planning.PlanContext{
		TeamCapacity:    float64(members * capacityPerMember),
		CurrentVelocity: velocity,
		SprintGoals:     sprint.GoalList(),
	})

	out, err := s.runner.Predict(ctx, input)
	if err != nil {
		return nil, err
	}
	prediction := planning.ProcessOutput(*out, sprint.Items)

	ids := make([]uint, len(prediction.ReorderedItems))
	for i, it := range prediction.ReorderedItems {
		ids[i] = it.ID
		prediction.ReorderedItems[i].Position = i
	}
	recs := make([]domain.SprintRecommendation, len(prediction.Recommendations))
	for i, r := range prediction.Recommendations {
		recs[i] = domain.SprintRecommendation{
			SprintID:   sprint.ID,
			Type:       r.Type,
			Title:      r.Title,
			Message:    r.Message,
			Priority:   r.Priority,
			Confidence: prediction.Confidence,
		}
	}
	if err := s.items.SavePlan(ctx, ids, recs); err != nil {
		return nil, fmt.Errorf("save plan for sprint %d: %w", sprint.ID, err)
	}

	s.log.Infow("sprint planned", "sprint_id", sprint.ID, "items", len(ids), "recommendations", len(recs))
	return &PlanResponse{Success: true, Prediction: prediction}, nil
}

func (s *planningService) Recommendations(ctx context.Context, sprintID uint) ([]domain.SprintRecommendation, error) {
	if _, err := s.sprints.FindByID(ctx, sprintID); err != nil {
		return nil, notFound(err, "Sprint not found")
	}
	recs, err := s.metrics.ListRecommendations(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []domain.SprintRecommendation{}
	}
	return recs, nil
}

func sprintItemFilter(sprintID *uint, order repository.ItemOrder) repository.ItemFilter {
	if sprintID == nil {
		return repository.ItemFilter{Unassigned: true, Order: order}
	}
	return repository.ItemFilter{SprintID: sprintID, Order: order}
}
