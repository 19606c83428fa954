package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]ItemStatus{
		"todo":        StatusTodo,
		"TODO":        StatusTodo,
		"IN_PROGRESS": StatusInProgress,
		"in_progress": StatusInProgress,
		"In Progress": StatusInProgress,
		"in-progress": StatusInProgress,
		"Done":        StatusDone,
		" done ":      StatusDone,
	}
	for in, want := range cases {
		got, ok := NormalizeStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := NormalizeStatus("blocked")
	assert.False(t, ok)
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, RoleManager.CanWrite())
	assert.True(t, RoleLeader.CanWrite())
	assert.False(t, RoleDeveloper.CanWrite())
	assert.True(t, RoleDeveloper.CanRead())
	assert.False(t, Role("guest").CanRead())
	assert.True(t, RoleManager.IsManager())
	assert.False(t, RoleLeader.IsManager())
}

func TestSprintStatus(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s := Sprint{StartDate: start, EndDate: start.AddDate(0, 0, 14)}

	assert.Equal(t, SprintPlanning, s.Status(start.Add(-time.Hour)))
	assert.Equal(t, SprintActive, s.Status(start.AddDate(0, 0, 3)))
	assert.Equal(t, SprintCompleted, s.Status(start.AddDate(0, 0, 15)))
	assert.Equal(t, 14, s.DurationDays())
}

func TestSprintGoalList(t *testing.T) {
	s := Sprint{Goals: "login, payments,,  search "}
	assert.Equal(t, []string{"login", "payments", "search"}, s.GoalList())
	assert.Nil(t, Sprint{}.GoalList())
}

func TestPointsHelpers(t *testing.T) {
	reason := "waiting on review"
	items := []BacklogItem{
		{StoryPoints: 5, Status: StatusDone, Priority: 3},
		{StoryPoints: 3, Status: StatusTodo, Priority: 2},
		{StoryPoints: 8, Status: StatusInProgress, TaskCompletions: []TaskCompletion{{DelayReason: &reason}}},
	}
	assert.Equal(t, 16, SumPoints(items, false))
	assert.Equal(t, 5, SumPoints(items, true))
	assert.Equal(t, 1, CountDone(items))
	assert.Equal(t, "High", items[0].PriorityLabel())
	assert.Equal(t, "Medium", items[1].PriorityLabel())
	assert.Equal(t, "Low", items[2].PriorityLabel())
	assert.True(t, items[2].HasDelay())
	assert.False(t, items[0].HasDelay())
}
