package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/planning"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

type planningMocks struct {
	items    *backlogRepoMock
	sprints  *sprintRepoMock
	velocity *velocityRepoMock
	metrics  *metricsRepoMock
	runner   *runnerMock
}

func newPlanningService() (PlanningService, planningMocks) {
	m := planningMocks{
		items:    &backlogRepoMock{},
		sprints:  &sprintRepoMock{},
		velocity: &velocityRepoMock{},
		metrics:  &metricsRepoMock{},
		runner:   &runnerMock{},
	}
	svc := NewPlanningService(m.items, m.sprints, m.velocity, m.metrics, m.runner, zap.NewNop().Sugar())
	return svc, m
}

func TestPlanningService_ReorderSavesPriorities(t *testing.T) {
	svc, m := newPlanningService()
	sprintID := uint(5)

	m.items.On("List", mock.Anything, repository.ItemFilter{SprintID: &sprintID, Order: repository.OrderByCreated}).
		Return([]domain.BacklogItem{
			{ID: 1, Title: "Docs", Priority: 1, Status: domain.StatusTodo},
			{ID: 2, Title: "Login", Priority: 3, Status: domain.StatusTodo},
		}, nil)
	m.items.On("SavePriorities", mock.Anything, []uint{2, 1}).Return(nil)

	resp, err := svc.Reorder(context.Background(), ReorderRequest{SprintID: &sprintID})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Successfully reordered 2 items", resp.Message)
	require.Len(t, resp.Result.Items, 2)
	assert.Equal(t, uint(2), resp.Result.Items[0].ID)
	assert.Equal(t, 1, resp.Result.Items[0].Priority)
	assert.Equal(t, 2, resp.Result.Items[1].Priority)
	m.items.AssertExpectations(t)
}

func TestPlanningService_ReorderUnassignedDoesNotPersist(t *testing.T) {
	svc, m := newPlanningService()
	m.items.On("List", mock.Anything, repository.ItemFilter{Unassigned: true, Order: repository.OrderByCreated}).
		Return([]domain.BacklogItem{{ID: 1, Priority: 2}}, nil)

	resp, err := svc.Reorder(context.Background(), ReorderRequest{Criteria: planning.CriteriaComplexity})
	require.NoError(t, err)
	assert.Len(t, resp.Result.Items, 1)
	m.items.AssertNotCalled(t, "SavePriorities", mock.Anything, mock.Anything)
}

func TestPlanningService_ReorderErrors(t *testing.T) {
	svc, m := newPlanningService()

	_, err := svc.Reorder(context.Background(), ReorderRequest{Criteria: "alphabetical"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	m.items.On("List", mock.Anything, mock.Anything).Return([]domain.BacklogItem{}, nil)
	_, err = svc.Reorder(context.Background(), ReorderRequest{})
	require.ErrorIs(t, err, domain.ErrNoItems)
	assert.Equal(t, "No backlog items found for reordering", err.Error())
}

func TestPlanningService_ItemsNeverNil(t *testing.T) {
	svc, m := newPlanningService()
	m.items.On("List", mock.Anything, repository.ItemFilter{Unassigned: true, Order: repository.OrderByPriorityAsc}).
		Return(nil, nil)

	out, err := svc.Items(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Zero(t, out.Count)
}

func plannedSprint() *domain.Sprint {
	return &domain.Sprint{
		ID:    5,
		Goals: "login, search",
		Team:  &domain.Team{ID: 1, Members: []domain.User{{ID: 1}, {ID: 2}}},
		Items: []domain.BacklogItem{
			{ID: 1, Title: "Docs", StoryPoints: 2},
			{ID: 2, Title: "Login", StoryPoints: 5, Priority: 3},
		},
	}
}

func TestPlanningService_Plan(t *testing.T) {
	svc, m := newPlanningService()
	m.sprints.On("FindDetailed", mock.Anything, uint(5)).Return(plannedSprint(), nil)
	m.velocity.On("LatestForSprint", mock.Anything, uint(5)).Return(&domain.VelocityMetric{AveragePoints: 12}, nil)
	m.runner.On("Predict", mock.Anything, mock.MatchedBy(func(in planning.ModelInput) bool {
		return in.TeamCapacity == 80 && in.CurrentVelocity == 12 &&
			len(in.BacklogItems) == 2 && assert.ObjectsAreEqual([]string{"login", "search"}, in.SprintGoals)
	})).Return(&planning.ModelOutput{
		ReorderedItems: []planning.ItemRef{2, 1, 2, 99},
		HighRiskItems:  []json.RawMessage{json.RawMessage(`2`)},
		Confidence:     0.9,
	}, nil)
	m.items.On("SavePlan", mock.Anything, []uint{2, 1}, mock.MatchedBy(func(recs []domain.SprintRecommendation) bool {
		return len(recs) == 1 && recs[0].SprintID == 5 && recs[0].Type == "risk" && recs[0].Confidence == 0.9
	})).Return(nil)

	resp, err := svc.Plan(context.Background(), PlanRequest{SprintID: 5})
	require.NoError(t, err)
	require.Len(t, resp.Prediction.ReorderedItems, 2)
	assert.Equal(t, 0, resp.Prediction.ReorderedItems[0].Position)
	assert.Equal(t, 1, resp.Prediction.ReorderedItems[1].Position)
	assert.Equal(t, 0.9, resp.Prediction.Confidence)
	m.runner.AssertExpectations(t)
	m.items.AssertExpectations(t)
}

func TestPlanningService_PlanWithoutVelocityUsesDefault(t *testing.T) {
	svc, m := newPlanningService()
	m.sprints.On("FindDetailed", mock.Anything, uint(5)).Return(plannedSprint(), nil)
	m.velocity.On("LatestForSprint", mock.Anything, uint(5)).Return(nil, domain.ErrNotFound)
	m.runner.On("Predict", mock.Anything, mock.MatchedBy(func(in planning.ModelInput) bool {
		return in.CurrentVelocity == 30
	})).Return(&planning.ModelOutput{}, nil)
	m.items.On("SavePlan", mock.Anything, []uint{}, []domain.SprintRecommendation{}).Return(nil)

	resp, err := svc.Plan(context.Background(), PlanRequest{SprintID: 5})
	require.NoError(t, err)
	assert.Equal(t, 0.8, resp.Prediction.Confidence)
	m.runner.AssertExpectations(t)
}

func TestPlanningService_PlanRunnerFailure(t *testing.T) {
	svc, m := newPlanningService()
	m.sprints.On("FindDetailed", mock.Anything, uint(5)).Return(plannedSprint(), nil)
	m.velocity.On("LatestForSprint", mock.Anything, uint(5)).Return(nil, domain.ErrNotFound)
	m.runner.On("Predict", mock.Anything, mock.Anything).
		Return(nil, &domain.Error{Kind: domain.ErrPlanner, Msg: "planner exited with status 1"})

	_, err := svc.Plan(context.Background(), PlanRequest{SprintID: 5})
	require.ErrorIs(t, err, domain.ErrPlanner)
	m.items.AssertNotCalled(t, "SavePlan", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlanningService_PlanUnknownSprint(t *testing.T) {
	svc, m := newPlanningService()
	m.sprints.On("FindDetailed", mock.Anything, uint(9)).Return(nil, domain.ErrNotFound)

	_, err := svc.Plan(context.Background(), PlanRequest{SprintID: 9})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Sprint not found", err.Error())
	m.runner.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
}

func TestPlanningService_Recommendations(t *testing.T) {
	svc, m := newPlanningService()
	m.sprints.On("FindByID", mock.Anything, uint(5)).Return(&domain.Sprint{ID: 5}, nil)
	m.metrics.On("ListRecommendations", mock.Anything, uint(5)).Return(nil, nil)
	m.sprints.On("FindByID", mock.Anything, uint(6)).Return(nil, errors.New("connection reset"))

	recs, err := svc.Recommendations(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	_, err = svc.Recommendations(context.Background(), 6)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
