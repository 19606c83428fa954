package planning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
)

func TestScore(t *testing.T) {
	longDesc := strings.Repeat("x", 60)

	tests := []struct {
		name string
		item domain.BacklogItem
		opts ReorderOptions
		want int
	}{
		{
			name: "zero priority counts as one",
			item: domain.BacklogItem{Status: domain.StatusTodo},
			opts: ReorderOptions{Criteria: CriteriaPriority},
			want: 20,
		},
		{
			name: "quick win in progress",
			item: domain.BacklogItem{Priority: 3, StoryPoints: 2, Status: domain.StatusInProgress},
			opts: ReorderOptions{Criteria: CriteriaPriority},
			want: 130,
		},
		{
			name: "done items floor at zero",
			item: domain.BacklogItem{Priority: 2, StoryPoints: 13, Status: domain.StatusDone},
			opts: ReorderOptions{Criteria: CriteriaPriority},
			want: 0,
		},
		{
			name: "complexity favours small items",
			item: domain.BacklogItem{Priority: 1, StoryPoints: 3},
			opts: ReorderOptions{Criteria: CriteriaComplexity},
			want: 70,
		},
		{
			name: "dependencies bonus for independent items",
			item: domain.BacklogItem{Priority: 1, StoryPoints: 5, Description: "Build API"},
			opts: ReorderOptions{Criteria: CriteriaDependencies},
			want: 55,
		},
		{
			name: "no dependencies bonus when description names one",
			item: domain.BacklogItem{Priority: 1, StoryPoints: 5, Description: "Depends on #3"},
			opts: ReorderOptions{Criteria: CriteriaDependencies},
			want: 30,
		},
		{
			name: "sprint readiness",
			item: domain.BacklogItem{Priority: 1, StoryPoints: 5, Description: longDesc},
			opts: ReorderOptions{Criteria: CriteriaReadiness},
			want: 65,
		},
		{
			name: "goal match is case insensitive",
			item: domain.BacklogItem{Priority: 1, Title: "Login page"},
			opts: ReorderOptions{Criteria: CriteriaPriority, SprintGoals: []string{"LOGIN", "payments", ""}},
			want: 60,
		},
		{
			name: "fits team capacity",
			item: domain.BacklogItem{Priority: 1, StoryPoints: 3},
			opts: ReorderOptions{Criteria: CriteriaPriority, TeamCapacity: 10},
			want: 55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.item, tt.opts))
		})
	}
}

func TestReorderIsStableAndDescending(t *testing.T) {
	items := []domain.BacklogItem{
		{ID: 1, Priority: 1, Status: domain.StatusTodo},
		{ID: 2, Priority: 3, StoryPoints: 2, Status: domain.StatusInProgress},
		{ID: 3, Priority: 1, Status: domain.StatusTodo},
	}

	res := Reorder(items, ReorderOptions{})
	require.Len(t, res.Items, 3)
	assert.Equal(t, []uint{2, 1, 3}, []uint{res.Items[0].ID, res.Items[1].ID, res.Items[2].ID})
	assert.Equal(t, 10, res.Confidence)
	assert.Contains(t, res.Reasoning, "Reordered 3 items based on business priority")
}

func TestReorderEmpty(t *testing.T) {
	res := Reorder(nil, ReorderOptions{Criteria: CriteriaComplexity})
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.Confidence)
	assert.Empty(t, res.Suggestions)
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 0, Confidence(nil))
	assert.Equal(t, 50, Confidence([]int{100, 100}))
	assert.Equal(t, 95, Confidence([]int{300}))
	assert.Equal(t, 15, Confidence([]int{40, 60}))
	assert.Equal(t, 10, Confidence([]int{0, 0}))
}

func TestSuggestions(t *testing.T) {
	items := []domain.BacklogItem{
		{StoryPoints: 0},
		{StoryPoints: 20, Priority: 6, Description: strings.Repeat("d", 40)},
		{StoryPoints: 5, Priority: 7, Description: "short"},
	}

	got := Suggestions(items)
	assert.Equal(t, []string{
		"1 items need story point estimation",
		"2 items need more detailed descriptions",
		"Consider breaking down 1 large items (>13 story points)",
		"Too many high-priority items - consider re-prioritizing",
	}, got)
}

func TestCriteriaValid(t *testing.T) {
	assert.True(t, CriteriaReadiness.Valid())
	assert.False(t, Criteria("random").Valid())
}
