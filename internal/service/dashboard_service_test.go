package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
)

func TestDashboardService_EmptyCases(t *testing.T) {
	users, sprints := &userRepoMock{}, &sprintRepoMock{}
	svc := NewDashboardService(users, sprints, fixedClock(sprintStart))

	users.On("FindByID", mock.Anything, uint(1)).Return(nil, domain.ErrNotFound)
	users.On("FindByID", mock.Anything, uint(2)).Return(&domain.User{ID: 2}, nil)
	users.On("FindByID", mock.Anything, uint(3)).Return(&domain.User{ID: 3, TeamID: uintPtr(7)}, nil)
	sprints.On("CurrentForTeam", mock.Anything, uint(7), sprintStart).Return(nil, domain.ErrNotFound)

	for _, id := range []uint{1, 2, 3} {
		d, err := svc.ForUser(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, d.CurrentSprint)
		assert.NotNil(t, d.BurndownData)
		assert.NotNil(t, d.AIRecommendations)
	}
	sprints.AssertNumberOfCalls(t, "CurrentForTeam", 1)
}

func TestDashboardService_ForUser(t *testing.T) {
	now := sprintStart.AddDate(0, 0, 6)
	users, sprints := &userRepoMock{}, &sprintRepoMock{}
	svc := NewDashboardService(users, sprints, fixedClock(now))

	reason := "waiting on API keys"
	sprint := reportSprint()
	sprint.Items[2].TaskCompletions = []domain.TaskCompletion{{DelayReason: &reason}}
	users.On("FindByID", mock.Anything, uint(1)).Return(&domain.User{ID: 1, TeamID: uintPtr(1)}, nil)
	sprints.On("CurrentForTeam", mock.Anything, uint(1), now).Return(sprint, nil)

	d, err := svc.ForUser(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, d.CurrentSprint)
	assert.Equal(t, 4, d.CurrentSprint.DaysRemaining)
	assert.Equal(t, 40, d.CurrentSprint.ProgressPercentage)
	assert.Equal(t, "Medium", d.CurrentSprint.RiskLevel)

	require.Len(t, d.BurndownData, 11)
	assert.Equal(t, 20, *d.BurndownData[0].Actual)
	assert.Equal(t, 16, *d.BurndownData[3].Actual)
	assert.Equal(t, 12, *d.BurndownData[6].Actual)
	assert.Nil(t, d.BurndownData[6].Predicted)
	assert.Nil(t, d.BurndownData[7].Actual)
	assert.Equal(t, 11, *d.BurndownData[7].Predicted)
	assert.Equal(t, 7, *d.BurndownData[10].Predicted)
	assert.Equal(t, 0, d.BurndownData[10].Ideal)

	require.Len(t, d.AIRecommendations, 2)
	assert.Equal(t, "velocity", d.AIRecommendations[0].Type)
	assert.Equal(t, "blocker", d.AIRecommendations[1].Type)
	assert.Equal(t, "1 items are experiencing delays. Review and resolve blockers.", d.AIRecommendations[1].Message)
}

func TestDashboardService_HighRisk(t *testing.T) {
	now := sprintStart.AddDate(0, 0, 9)
	users, sprints := &userRepoMock{}, &sprintRepoMock{}
	svc := NewDashboardService(users, sprints, fixedClock(now))
	users.On("FindByID", mock.Anything, uint(1)).Return(&domain.User{ID: 1, TeamID: uintPtr(1)}, nil)
	sprints.On("CurrentForTeam", mock.Anything, uint(1), now).Return(reportSprint(), nil)

	d, err := svc.ForUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "High", d.CurrentSprint.RiskLevel)
	require.Len(t, d.AIRecommendations, 2)
	assert.Equal(t, "scope", d.AIRecommendations[0].Type)
	assert.Equal(t, "velocity", d.AIRecommendations[1].Type)
}
