package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
)

func TestSprintMetricsService_Update(t *testing.T) {
	sprints, users, metrics := &sprintRepoMock{}, &userRepoMock{}, &metricsRepoMock{}
	svc := NewSprintMetricsService(sprints, users, metrics, zap.NewNop().Sugar())

	sprint := reportSprint()
	sprint.TeamID = 1
	sprints.On("FindDetailed", mock.Anything, uint(1)).Return(sprint, nil)
	users.On("FirstInTeam", mock.Anything, uint(1)).Return(&domain.User{ID: 4}, nil)
	metrics.On("RecordSprintMetrics", mock.Anything,
		mock.MatchedBy(func(v *domain.VelocityMetric) bool { return v.SprintID == 1 && v.AveragePoints == 2 }),
		mock.MatchedBy(func(w *domain.WorkloadDistribution) bool {
			return w.UserID == 4 && w.AssignedPoints == 20 && w.CompletedPoints == 8
		}),
	).Return(nil)

	res, err := svc.Update(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Sprint metrics updated successfully", res.Message)
	assert.Equal(t, 2.0, res.VelocityMetric.AveragePoints)
	metrics.AssertExpectations(t)
}

func TestSprintMetricsService_NoMembers(t *testing.T) {
	sprints, users, metrics := &sprintRepoMock{}, &userRepoMock{}, &metricsRepoMock{}
	svc := NewSprintMetricsService(sprints, users, metrics, zap.NewNop().Sugar())
	sprints.On("FindDetailed", mock.Anything, uint(1)).Return(&domain.Sprint{ID: 1, TeamID: 3}, nil)
	users.On("FirstInTeam", mock.Anything, uint(3)).Return(nil, domain.ErrNotFound)

	_, err := svc.Update(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "No team members found", err.Error())
	metrics.AssertNotCalled(t, "RecordSprintMetrics", mock.Anything, mock.Anything, mock.Anything)
}

func TestSprintMetricsService_UnknownSprint(t *testing.T) {
	sprints := &sprintRepoMock{}
	svc := NewSprintMetricsService(sprints, nil, nil, zap.NewNop().Sugar())
	sprints.On("FindDetailed", mock.Anything, uint(9)).Return(nil, domain.ErrNotFound)

	_, err := svc.Update(context.Background(), 9)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
